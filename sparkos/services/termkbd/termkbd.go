package termkbd

import (
	"tradecalc/hal"
	"tradecalc/sparkos/kernel"
	"tradecalc/sparkos/proto"
)

const (
	// Ticks are 1 ms.
	repeatDelayTicks = 350
	repeatRateTicks  = 60
)

// Service turns HAL key events into VT100 byte sequences and delivers them
// as MsgTermInput to a single consumer. Navigation keys and backspace repeat
// while held.
type Service struct {
	in     hal.Input
	outCap kernel.Capability

	pending []byte

	held       hal.KeyCode
	heldBytes  []byte
	nextRepeat uint64
}

func New(in hal.Input, inputCap kernel.Capability) *Service {
	return &Service{in: in, outCap: inputCap}
}

func (s *Service) Run(ctx *kernel.Context) {
	if s.in == nil || s.in.Keyboard() == nil {
		return
	}
	events := s.in.Keyboard().Events()
	if events == nil {
		return
	}

	done := make(chan struct{})
	defer close(done)
	ticks := make(chan uint64, 16)
	go pumpTicks(ctx, done, ticks)

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.handleKey(ctx.NowTick(), ev)
		case tick := <-ticks:
			s.repeat(tick)
		}
		s.flush(ctx)
	}
}

// pumpTicks forwards kernel ticks to out until done is closed. A tick that
// finds out full is dropped.
func pumpTicks(ctx *kernel.Context, done <-chan struct{}, out chan<- uint64) {
	last := ctx.NowTick()
	for {
		select {
		case <-done:
			return
		default:
		}
		last = ctx.WaitTick(last)
		select {
		case out <- last:
		default:
		}
	}
}

func (s *Service) handleKey(now uint64, ev hal.KeyEvent) {
	if !ev.Press {
		if s.heldBytes != nil && ev.Code == s.held {
			s.heldBytes = nil
		}
		return
	}

	seq := vt100FromKey(ev)
	if len(seq) == 0 {
		return
	}
	s.pending = append(s.pending, seq...)

	if !repeatable(ev.Code) {
		return
	}
	s.held = ev.Code
	s.heldBytes = append(s.heldBytes[:0], seq...)
	s.nextRepeat = now + repeatDelayTicks
}

func (s *Service) repeat(tick uint64) {
	if s.heldBytes == nil || tick < s.nextRepeat {
		return
	}
	s.pending = append(s.pending, s.heldBytes...)
	s.nextRepeat = tick + repeatRateTicks
}

func (s *Service) flush(ctx *kernel.Context) {
	if len(s.pending) == 0 {
		return
	}
	if !s.outCap.Valid() {
		s.pending = nil
		return
	}

	chunk := s.pending
	if len(chunk) > kernel.MaxMessageBytes {
		chunk = chunk[:kernel.MaxMessageBytes]
	}
	switch ctx.SendToCapResult(s.outCap, uint16(proto.MsgTermInput), chunk, kernel.Capability{}) {
	case kernel.SendOK:
		s.pending = s.pending[len(chunk):]
	case kernel.SendErrQueueFull:
		// Retried on the next tick.
	default:
		s.pending = nil
	}
}

func repeatable(code hal.KeyCode) bool {
	switch code {
	case hal.KeyUp, hal.KeyDown, hal.KeyLeft, hal.KeyRight, hal.KeyBackspace, hal.KeyDelete:
		return true
	}
	return false
}

func vt100FromKey(ev hal.KeyEvent) []byte {
	if ev.Rune != 0 {
		return []byte(string(ev.Rune))
	}

	switch ev.Code {
	case hal.KeyEnter:
		return []byte{'\n'}
	case hal.KeyEscape:
		return []byte{0x1b}
	case hal.KeyBackspace:
		return []byte{0x7f}
	case hal.KeyTab:
		return []byte{'\t'}
	case hal.KeyUp:
		return []byte("\x1b[A")
	case hal.KeyDown:
		return []byte("\x1b[B")
	case hal.KeyRight:
		return []byte("\x1b[C")
	case hal.KeyLeft:
		return []byte("\x1b[D")
	case hal.KeyDelete:
		return []byte("\x1b[3~")
	case hal.KeyHome:
		return []byte("\x1b[H")
	case hal.KeyEnd:
		return []byte("\x1b[F")
	case hal.KeyF1:
		return []byte("\x1b[11~")
	case hal.KeyF2:
		return []byte("\x1b[12~")
	case hal.KeyF3:
		return []byte("\x1b[13~")
	default:
		return nil
	}
}
