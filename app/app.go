package app

import (
	"tradecalc/hal"
	"tradecalc/internal/config"
	"tradecalc/sparkos/kernel"
	"tradecalc/sparkos/services/logger"
	"tradecalc/sparkos/services/termkbd"
	timesvc "tradecalc/sparkos/services/time"
	"tradecalc/sparkos/tasks/boot"
	"tradecalc/sparkos/tasks/calculator"
)

type system struct {
	k *kernel.Kernel
}

// New initializes and starts the system with the default config.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, config.Default())
}

// NewWithConfig starts the system and returns the per-frame step hook for
// the host runner.
func NewWithConfig(h hal.HAL, cfg config.Config) func() error {
	_ = newSystem(h, cfg)
	return func() error { return nil }
}

func newSystem(h hal.HAL, cfg config.Config) *system {
	installPanicHandler(h)

	k := kernel.New()

	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	timeEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	calcEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	k.AddTask(logger.New(h.Logger(), logEP.Restrict(kernel.RightRecv)))
	k.AddTask(timesvc.New(timeEP))

	k.AddTask(calculator.New(
		h.Display(),
		calcEP,
		logEP.Restrict(kernel.RightSend),
		timeEP.Restrict(kernel.RightSend),
		calculator.Config{Calc: cfg.CalcConfig(), Trading: cfg.TradingOptions()},
	))
	k.AddTask(termkbd.New(h.Input(), calcEP.Restrict(kernel.RightSend)))
	k.AddTask(boot.New(logEP.Restrict(kernel.RightSend), calcEP.Restrict(kernel.RightSend)))

	if ht := h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			go func() {
				for seq := range ch {
					k.TickTo(seq)
				}
			}()
		}
	}

	return &system{k: k}
}
