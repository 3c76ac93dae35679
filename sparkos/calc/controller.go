package calc

import "errors"

// Scheduler delivers a timer back to the controller through Wake after the
// given number of ticks. Cancel withdraws a pending delivery; a delivery
// that races with Cancel is ignored by Wake.
type Scheduler interface {
	Schedule(id uint32, after uint64)
	Cancel(id uint32)
}

// Config tunes a Controller. Zero fields take the defaults.
type Config struct {
	FlashTicks uint64
	ErrorTicks uint64
	Precision  int32
	Mode       EvalMode
	TapeSize   int
}

const (
	DefaultFlashTicks = 300
	DefaultErrorTicks = 1500
	DefaultTapeSize   = 32
)

func (c Config) withDefaults() Config {
	if c.FlashTicks == 0 {
		c.FlashTicks = DefaultFlashTicks
	}
	if c.ErrorTicks == 0 {
		c.ErrorTicks = DefaultErrorTicks
	}
	if c.Precision <= 0 {
		c.Precision = DefaultPrecision
	}
	if c.TapeSize <= 0 {
		c.TapeSize = DefaultTapeSize
	}
	return c
}

type timerKind uint32

const (
	timerFlash timerKind = iota
	timerError
)

type timer struct {
	armed bool
	gen   uint32
	due   uint64
}

func (t *timer) id(kind timerKind) uint32 { return t.gen<<1 | uint32(kind) }

// View is what a front end renders.
type View struct {
	Display        string
	Expression     string
	LastExpression string
	Memory         float64
	MemoryActive   bool
	Error          bool
	Calculating    bool
	State          State
}

// Controller owns an Accumulator and the two transient display timers:
// the "calculating" highlight after a result and the error indicator that
// resets the calculator when it expires.
type Controller struct {
	// OnEvaluate, when set, observes every evaluation attempt that had
	// something to evaluate.
	OnEvaluate func(Result, error)

	cfg   Config
	sched Scheduler
	acc   Accumulator

	now    uint64
	gen    uint32
	timers [2]timer

	calculating bool
	failed      bool
	lastExpr    string
	tape        []string
}

// NewController creates a controller. With a nil Scheduler timers only
// fire from Tick.
func NewController(cfg Config, sched Scheduler) *Controller {
	cfg = cfg.withDefaults()
	c := &Controller{cfg: cfg, sched: sched}
	c.acc.Mode = cfg.Mode
	c.acc.Precision = cfg.Precision
	return c
}

// SetMode switches the evaluation mode for subsequent evaluations.
func (c *Controller) SetMode(m EvalMode) {
	c.cfg.Mode = m
	c.acc.Mode = m
}

func (c *Controller) Mode() EvalMode { return c.cfg.Mode }

func (c *Controller) View() View {
	v := View{
		Display:        c.acc.DisplayText(),
		Expression:     c.acc.Expression(),
		LastExpression: c.lastExpr,
		Memory:         c.acc.Memory(),
		MemoryActive:   c.acc.MemoryActive(),
		Calculating:    c.calculating,
		State:          c.acc.State(),
	}
	if c.failed {
		v.Display = "Error"
		v.Error = true
		v.State = StateError
	}
	return v
}

// Tape returns the most recent "expression = result" lines, oldest first.
func (c *Controller) Tape() []string {
	out := make([]string, len(c.tape))
	copy(out, c.tape)
	return out
}

// begin runs before every user action. A visible error is dropped and the
// reset it was waiting for is applied now.
func (c *Controller) begin() {
	if !c.failed {
		return
	}
	c.disarm(timerError)
	c.resetAfterError()
}

func (c *Controller) resetAfterError() {
	c.failed = false
	c.acc.ClearAll()
}

func (c *Controller) Digit(r rune) bool {
	c.begin()
	return c.acc.AppendDigit(r)
}

func (c *Controller) Operator(op Operator) {
	c.begin()
	c.acc.AppendOperator(op)
}

// Evaluate evaluates the pending expression. ErrEmpty leaves everything as
// it was; any other error shows the error indicator until the error timer
// fires or the next action.
func (c *Controller) Evaluate() (Result, error) {
	c.begin()
	res, err := c.acc.Evaluate()
	if errors.Is(err, ErrEmpty) {
		return res, err
	}
	if err != nil {
		c.failed = true
		c.calculating = false
		c.disarm(timerFlash)
		c.arm(timerError, c.cfg.ErrorTicks)
	} else {
		c.lastExpr = res.Expression
		c.record(res.Expression + " = " + res.Text)
		c.calculating = true
		c.arm(timerFlash, c.cfg.FlashTicks)
	}
	if c.OnEvaluate != nil {
		c.OnEvaluate(res, err)
	}
	return res, err
}

func (c *Controller) record(line string) {
	c.tape = append(c.tape, line)
	if over := len(c.tape) - c.cfg.TapeSize; over > 0 {
		c.tape = append(c.tape[:0], c.tape[over:]...)
	}
}

func (c *Controller) Clear() {
	c.begin()
	c.acc.ClearAll()
}

func (c *Controller) DeleteLast() {
	c.begin()
	c.acc.DeleteLast()
}

func (c *Controller) ToggleSign() {
	c.begin()
	c.acc.ToggleSign()
}

func (c *Controller) Apply(fn UnaryFunc) {
	c.begin()
	c.acc.Apply(fn)
}

func (c *Controller) MemoryAdd() {
	c.begin()
	c.acc.MemoryAdd()
}

func (c *Controller) MemoryRecall() {
	c.begin()
	c.acc.MemoryRecall()
}

func (c *Controller) MemoryClear() {
	c.begin()
	c.acc.MemoryClear()
}

// Key applies the calculator action bound to r and reports whether r is bound.
//
//	0-9 .      digits
//	+ - * / %  operators (× ÷ − also accepted)
//	=          evaluate
//	n r q      negate, square root, square
//	m l k      memory add, recall, clear
//	c x        clear, delete last
func (c *Controller) Key(r rune) bool {
	if r == '.' || (r >= '0' && r <= '9') {
		c.Digit(r)
		return true
	}
	if op, ok := ParseOperator(r); ok {
		c.Operator(op)
		return true
	}
	switch r {
	case '=':
		c.Evaluate()
	case 'n':
		c.ToggleSign()
	case 'r':
		c.Apply(FuncSqrt)
	case 'q':
		c.Apply(FuncSquare)
	case 'm':
		c.MemoryAdd()
	case 'l':
		c.MemoryRecall()
	case 'k':
		c.MemoryClear()
	case 'c':
		c.Clear()
	case 'x':
		c.DeleteLast()
	default:
		return false
	}
	return true
}

func (c *Controller) arm(kind timerKind, after uint64) {
	c.disarm(kind)
	c.gen++
	t := &c.timers[kind]
	t.armed = true
	t.gen = c.gen
	t.due = c.now + after
	if c.sched != nil {
		c.sched.Schedule(t.id(kind), after)
	}
}

func (c *Controller) disarm(kind timerKind) {
	t := &c.timers[kind]
	if !t.armed {
		return
	}
	t.armed = false
	if c.sched != nil {
		c.sched.Cancel(t.id(kind))
	}
}

// Wake delivers a scheduled timer. Wakes for superseded or cancelled timers
// are ignored. It reports whether the view changed.
func (c *Controller) Wake(id uint32) bool {
	kind := timerKind(id & 1)
	t := &c.timers[kind]
	if !t.armed || t.id(kind) != id {
		return false
	}
	c.fire(kind)
	return true
}

// Advance moves the controller's clock forward without firing timers.
// Callers that deliver timers through Wake still advance the clock so a
// later switch to Tick measures deadlines from the right origin.
func (c *Controller) Advance(now uint64) {
	if now > c.now {
		c.now = now
	}
}

// Tick advances the controller's clock and fires due timers. It reports
// whether the view changed.
func (c *Controller) Tick(now uint64) bool {
	c.Advance(now)
	changed := false
	for kind := range c.timers {
		t := &c.timers[kind]
		if t.armed && t.due <= c.now {
			c.fire(timerKind(kind))
			changed = true
		}
	}
	return changed
}

func (c *Controller) fire(kind timerKind) {
	c.timers[kind].armed = false
	switch kind {
	case timerFlash:
		c.calculating = false
	case timerError:
		c.resetAfterError()
	}
}
