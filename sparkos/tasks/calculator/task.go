package calculator

import (
	"errors"

	"tradecalc/hal"
	logclient "tradecalc/sparkos/client/logger"
	timeclient "tradecalc/sparkos/client/time"
	"tradecalc/sparkos/calc"
	"tradecalc/sparkos/gfx"
	"tradecalc/sparkos/kernel"
	"tradecalc/sparkos/proto"
	"tradecalc/sparkos/trading"
)

type mode uint8

const (
	modeBasic mode = iota
	modeTrading
)

// Config is the calculator task's share of the application config.
type Config struct {
	Calc    calc.Config
	Trading trading.Options
}

// Task is the calculator app: a basic calculator (F1) and the trading tools
// (F2). It is inactive until it receives MsgAppControl.
type Task struct {
	disp    hal.Display
	ep      kernel.Capability
	logCap  kernel.Capability
	timeCap kernel.Capability
	cfg     Config

	ctrl *calc.Controller
	logf func(format string, args ...any)

	active  bool
	polling bool
	mode    mode
	inbuf   []byte

	form     trading.Form
	tradeRes trading.Result
	tradeErr error

	fb hal.Framebuffer
	d  *gfx.Display
}

// New creates the task. ep must carry both rights: the task receives on it
// and hands out its send half to the time service for wakes.
func New(disp hal.Display, ep, logCap, timeCap kernel.Capability, cfg Config) *Task {
	return &Task{disp: disp, ep: ep, logCap: logCap, timeCap: timeCap, cfg: cfg}
}

// timeScheduler arms controller timers through the time service.
type timeScheduler struct {
	ctx     *kernel.Context
	timeCap kernel.Capability
	reply   kernel.Capability
	failed  func(error)
}

func (s *timeScheduler) Schedule(id uint32, after uint64) {
	if err := timeclient.Request(s.ctx, s.timeCap, s.reply, id, uint32(after)); err != nil {
		s.failed(err)
	}
}

func (s *timeScheduler) Cancel(id uint32) {
	if err := timeclient.Cancel(s.ctx, s.timeCap, s.reply, id); err != nil {
		s.failed(err)
	}
}

func (t *Task) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(t.ep.Restrict(kernel.RightRecv))
	if !ok {
		return
	}

	logf := func(format string, args ...any) {
		logclient.Logf(ctx, t.logCap, format, args...)
	}
	sched := &timeScheduler{
		ctx:     ctx,
		timeCap: t.timeCap,
		reply:   t.ep.Restrict(kernel.RightSend),
		failed:  t.fallBackToPolling,
	}
	t.setup(sched, logf)
	t.attach()

	ticks := make(chan uint64, 8)
	go func() {
		last := ctx.NowTick()
		for {
			last = ctx.WaitTick(last)
			select {
			case ticks <- last:
			default:
			}
		}
	}()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if !t.handleMessage(msg) {
				return
			}
		case now := <-ticks:
			t.onTick(now)
		}
	}
}

// setup wires the controller to its scheduler and log sink.
func (t *Task) setup(sched calc.Scheduler, logf func(string, ...any)) {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	t.logf = logf
	t.ctrl = calc.NewController(t.cfg.Calc, sched)
	t.ctrl.OnEvaluate = t.logEvaluation
}

func (t *Task) attach() {
	if t.disp == nil {
		return
	}
	t.fb = t.disp.Framebuffer()
	if t.fb != nil {
		t.d = gfx.New(t.fb)
	}
}

func (t *Task) logEvaluation(res calc.Result, err error) {
	if err != nil {
		t.logf("%v", err)
		return
	}
	t.logf("calc: %s = %s", res.Expression, res.Text)
}

func (t *Task) fallBackToPolling(err error) {
	if !t.polling {
		t.logf("calc: timer service unavailable, polling: %v", err)
	}
	t.polling = true
}

// handleMessage processes one inbound message. It reports false on shutdown.
func (t *Task) handleMessage(msg kernel.Message) bool {
	switch proto.Kind(msg.Kind) {
	case proto.MsgAppShutdown:
		t.active = false
		return false

	case proto.MsgAppControl:
		active, ok := proto.DecodeAppControlPayload(msg.Payload())
		if !ok {
			return true
		}
		t.active = active
		if active {
			t.logf("calc: active, %s evaluation", t.ctrl.Mode())
		}

	case proto.MsgTermInput:
		if !t.active {
			return true
		}
		t.handleInput(msg.Payload())

	case proto.MsgWake, proto.MsgError:
		id, err := timeclient.DecodeReply(msg)
		if err != nil {
			t.fallBackToPolling(err)
			return true
		}
		wasError := t.ctrl.View().Error
		if !t.ctrl.Wake(id) {
			return true
		}
		if wasError && !t.ctrl.View().Error {
			t.logf("calc: reset after error")
		}

	default:
		return true
	}

	t.render()
	return true
}

// onTick keeps the controller's clock current. Timers fire here only once
// the time service has failed; until then they arrive as wakes.
func (t *Task) onTick(now uint64) {
	if !t.polling {
		t.ctrl.Advance(now)
		return
	}
	wasError := t.ctrl.View().Error
	if !t.ctrl.Tick(now) {
		return
	}
	if wasError && !t.ctrl.View().Error {
		t.logf("calc: reset after error")
	}
	if t.active {
		t.render()
	}
}

func (t *Task) handleInput(b []byte) {
	t.inbuf = append(t.inbuf, b...)
	for len(t.inbuf) > 0 {
		n, k := nextKey(t.inbuf)
		if n == 0 {
			return
		}
		t.inbuf = t.inbuf[n:]
		t.handleKey(k)
	}
}

func (t *Task) handleKey(k key) {
	switch k.kind {
	case keyF1:
		t.mode = modeBasic
		return
	case keyF2:
		t.mode = modeTrading
		return
	case keyF3:
		next := calc.EvalChain
		if t.ctrl.Mode() == calc.EvalChain {
			next = calc.EvalStandard
		}
		t.ctrl.SetMode(next)
		t.logf("calc: %s evaluation", next)
		return
	}

	if t.mode == modeTrading {
		t.handleTradingKey(k)
		return
	}
	t.handleBasicKey(k)
}

func (t *Task) handleBasicKey(k key) {
	switch k.kind {
	case keyEnter:
		t.ctrl.Evaluate()
	case keyEsc:
		t.ctrl.Clear()
	case keyBackspace, keyDelete:
		t.ctrl.DeleteLast()
	case keyRune:
		t.ctrl.Key(k.r)
	}
}

func (t *Task) handleTradingKey(k key) {
	switch k.kind {
	case keyTab:
		t.form.NextTool()
		t.clearTradeResult()
	case keyDown:
		t.form.NextField()
	case keyUp:
		t.form.PrevField()
	case keyBackspace, keyDelete:
		t.form.Backspace()
	case keyEsc:
		t.form.Clear()
		t.clearTradeResult()
	case keyEnter:
		t.computeTrade()
	case keyRune:
		if k.r == '=' {
			t.computeTrade()
			return
		}
		t.form.Edit(k.r)
	}
}

func (t *Task) clearTradeResult() {
	t.tradeRes = nil
	t.tradeErr = nil
}

func (t *Task) computeTrade() {
	t.tradeRes, t.tradeErr = t.form.Compute(t.cfg.Trading)
	tool := t.form.Tool
	switch {
	case errors.Is(t.tradeErr, trading.ErrMissingFields):
		t.logf("trade %s: rejected: %v", tool, t.tradeErr)
	case t.tradeErr != nil:
		t.logf("trade %s: %v", tool, t.tradeErr)
	default:
		t.logf("trade %s: %s", tool, t.tradeRes.Headline())
	}
}
