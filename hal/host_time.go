package hal

import "time"

type hostTime struct {
	ch  chan uint64
	seq uint64

	last time.Time
	acc  time.Duration
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1024)}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

// step converts wall time elapsed since the previous call into 1 ms ticks.
// The first call emits a single tick.
func (t *hostTime) step() {
	t.stepAt(time.Now())
}

func (t *hostTime) stepAt(now time.Time) {
	if t.last.IsZero() {
		t.last = now
		t.emit(1)
		return
	}

	t.acc += now.Sub(t.last)
	t.last = now

	ticks := uint64(t.acc / time.Millisecond)
	if ticks == 0 {
		return
	}
	t.acc %= time.Millisecond
	t.emit(ticks)
}

// emit publishes n consecutive ticks. Ticks are dropped when the channel is
// full; consumers only care about the latest value.
func (t *hostTime) emit(n uint64) {
	for i := uint64(0); i < n; i++ {
		t.seq++
		select {
		case t.ch <- t.seq:
		default:
		}
	}
}
