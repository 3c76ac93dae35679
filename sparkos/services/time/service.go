package timesvc

import (
	"tradecalc/sparkos/kernel"
	"tradecalc/sparkos/proto"
)

const maxSleepers = 32

type sleeper struct {
	inUse bool
	due   uint64
	id    uint32
	reply kernel.Capability
}

// Service answers MsgSleep with MsgWake once the requested number of ticks
// has elapsed. A pending sleep can be withdrawn with MsgSleepCancel.
type Service struct {
	ep kernel.Capability

	now      uint64
	sleepers [maxSleepers]sleeper
}

func New(ep kernel.Capability) *Service {
	return &Service{ep: ep}
}

func (s *Service) Run(ctx *kernel.Context) {
	in, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}

	ticks := make(chan uint64, 1)
	go func() {
		last := ctx.NowTick()
		for {
			last = ctx.WaitTick(last)
			select {
			case ticks <- last:
			default:
				// Keep only the newest tick.
				select {
				case <-ticks:
				default:
				}
				ticks <- last
			}
		}
	}()

	s.now = ctx.NowTick()
	for {
		select {
		case msg, ok := <-in:
			if !ok {
				return
			}
			s.handle(ctx, msg)
		case tick := <-ticks:
			if tick > s.now {
				s.now = tick
			}
			s.wakeReady(ctx)
		}
	}
}

func (s *Service) handle(ctx *kernel.Context, msg kernel.Message) {
	if !msg.Cap.Valid() {
		return
	}
	switch proto.Kind(msg.Kind) {
	case proto.MsgSleep:
		requestID, dt, ok := proto.DecodeSleepPayload(msg.Payload())
		if !ok {
			s.replyError(ctx, msg.Cap, proto.ErrBadMessage, 0)
			return
		}
		if dt == 0 {
			ctx.SendTo(msg.Cap, uint16(proto.MsgWake), proto.RequestIDPayload(requestID))
			return
		}
		if now := ctx.NowTick(); now > s.now {
			s.now = now
		}
		if !s.schedule(s.now+uint64(dt), requestID, msg.Cap) {
			s.replyError(ctx, msg.Cap, proto.ErrOverflow, requestID)
		}
	case proto.MsgSleepCancel:
		requestID, ok := proto.DecodeRequestIDPayload(msg.Payload())
		if !ok {
			s.replyError(ctx, msg.Cap, proto.ErrBadMessage, 0)
			return
		}
		s.cancel(requestID, msg.Cap)
	}
}

func (s *Service) replyError(ctx *kernel.Context, to kernel.Capability, code proto.ErrCode, requestID uint32) {
	payload := proto.ErrorPayload(code, proto.MsgSleep, proto.RequestIDPayload(requestID))
	ctx.SendTo(to, uint16(proto.MsgError), payload)
}

func (s *Service) schedule(due uint64, requestID uint32, reply kernel.Capability) bool {
	for i := range s.sleepers {
		if s.sleepers[i].inUse {
			continue
		}
		s.sleepers[i] = sleeper{inUse: true, due: due, id: requestID, reply: reply}
		return true
	}
	return false
}

// cancel drops every pending sleeper with the same request ID and reply endpoint.
func (s *Service) cancel(requestID uint32, reply kernel.Capability) int {
	n := 0
	for i := range s.sleepers {
		sl := &s.sleepers[i]
		if sl.inUse && sl.id == requestID && sl.reply == reply {
			*sl = sleeper{}
			n++
		}
	}
	return n
}

func (s *Service) pending() int {
	n := 0
	for i := range s.sleepers {
		if s.sleepers[i].inUse {
			n++
		}
	}
	return n
}

func (s *Service) wakeReady(ctx *kernel.Context) {
	for i := range s.sleepers {
		sl := &s.sleepers[i]
		if !sl.inUse || sl.due > s.now {
			continue
		}
		ctx.SendTo(sl.reply, uint16(proto.MsgWake), proto.RequestIDPayload(sl.id))
		*sl = sleeper{}
	}
}
