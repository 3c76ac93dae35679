// Command calccli is a line-oriented front end for the calculator and the
// trading tools.
//
//	$ calccli
//	2+3*4=
//	2 + 3 * 4 = 14
//	14
//	rr 100 90 130
//	1:3.00
//	  Risk Amount: $10.00 (10.00%)
//	  ...
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"tradecalc/internal/buildinfo"
	"tradecalc/internal/config"
	"tradecalc/sparkos/calc"
	"tradecalc/sparkos/trading"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file.")
		mode       = flag.String("mode", "", "Evaluation mode: standard|chain (overrides config).")
		version    = flag.Bool("version", false, "Print the version and exit.")
	)
	flag.Parse()

	if *version {
		fmt.Println(buildinfo.String())
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatalf("%v", err)
	}
	if *mode != "" {
		cfg.Calculator.Evaluation = *mode
	}
	if err := cfg.Validate(); err != nil {
		fatalf("config: %v", err)
	}

	if err := run(os.Stdin, os.Stdout, cfg); err != nil {
		fatalf("%v", err)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "calccli: "+format+"\n", args...)
	os.Exit(2)
}

type session struct {
	out  io.Writer
	ctrl *calc.Controller
	opts trading.Options
	now  func() uint64
}

// newSession builds a session without a timer scheduler. The controller's
// flash and error timers are driven from now, sampled before each input
// line, so an "Error" left on screen clears once error_ms has passed.
func newSession(out io.Writer, cfg config.Config, now func() uint64) *session {
	s := &session{
		out:  out,
		ctrl: calc.NewController(cfg.CalcConfig(), nil),
		opts: cfg.TradingOptions(),
		now:  now,
	}
	s.ctrl.OnEvaluate = s.printEvaluation
	return s
}

// wallClock returns milliseconds since it was called.
func wallClock() func() uint64 {
	start := time.Now()
	return func() uint64 { return uint64(time.Since(start).Milliseconds()) }
}

func run(in io.Reader, out io.Writer, cfg config.Config) error {
	s := newSession(out, cfg, wallClock())

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if !s.line(strings.TrimSpace(sc.Text())) {
			return nil
		}
	}
	return sc.Err()
}

// line handles one input line and reports false on quit.
func (s *session) line(l string) bool {
	s.ctrl.Tick(s.now())
	if l == "" {
		return true
	}
	fields := strings.Fields(l)
	switch fields[0] {
	case "quit", "exit":
		return false
	case "help":
		s.help()
	case "tape":
		for _, t := range s.ctrl.Tape() {
			fmt.Fprintln(s.out, t)
		}
	case "mode":
		s.setMode(fields[1:])
	case "pos":
		s.trade(trading.ToolPosition, fields[1:])
	case "pl":
		s.trade(trading.ToolPnL, fields[1:])
	case "rr":
		s.trade(trading.ToolRiskReward, fields[1:])
	default:
		for _, r := range l {
			if r == ' ' {
				continue
			}
			if !s.ctrl.Key(r) {
				fmt.Fprintf(s.out, "unknown key %q\n", r)
			}
		}
		fmt.Fprintln(s.out, viewLine(s.ctrl.View()))
	}
	return true
}

func (s *session) printEvaluation(res calc.Result, err error) {
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "%s = %s\n", res.Expression, res.Text)
}

func (s *session) setMode(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(s.out, "mode: %s\n", s.ctrl.Mode())
		return
	}
	m, err := calc.ParseEvalMode(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	s.ctrl.SetMode(m)
	fmt.Fprintf(s.out, "mode: %s\n", m)
}

func (s *session) trade(tool trading.Tool, args []string) {
	if len(args) != 3 {
		labels := tool.Labels()
		fmt.Fprintf(s.out, "usage: %s <%s> <%s> <%s>\n", tool, labels[0], labels[1], labels[2])
		return
	}
	res, err := tool.Compute(trading.ParseField(args[0]), trading.ParseField(args[1]), trading.ParseField(args[2]), s.opts)
	switch {
	case errors.Is(err, trading.ErrMissingFields):
		fmt.Fprintln(s.out, "Please fill all fields")
		return
	case err != nil:
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, res.Headline())
	for _, l := range res.Lines() {
		fmt.Fprintln(s.out, "  "+l)
	}
}

func (s *session) help() {
	fmt.Fprint(s.out, `keys: 0-9 . + - * / % =   n negate   r sqrt   q square
      m M+   l MR   k MC   c clear   x delete last
pos <account> <risk%> <stop>     position size
pl <entry> <exit> <size>         profit and loss
rr <entry> <stop> <target>       risk/reward
mode [standard|chain]   tape   quit
`)
}

// viewLine renders the pending expression and operand on one line.
func viewLine(v calc.View) string {
	var s string
	switch {
	case v.Error:
		s = v.Display
	case v.State == calc.StateAfterOperator:
		s = strings.TrimSpace(v.Expression)
	case v.Expression != "":
		s = v.Expression + v.Display
	default:
		s = v.Display
	}
	if v.MemoryActive {
		s = "M " + s
	}
	return s
}
