package logger

import (
	"fmt"

	"tradecalc/hal"
	"tradecalc/sparkos/kernel"
	"tradecalc/sparkos/proto"
)

// Service forwards MsgLogLine payloads to the HAL logger, stamped with the
// tick at which they were received.
type Service struct {
	log hal.Logger
	ep  kernel.Capability
}

func New(log hal.Logger, ep kernel.Capability) *Service {
	return &Service{log: log, ep: ep}
}

func (s *Service) Run(ctx *kernel.Context) {
	for {
		msg, ok := ctx.Recv(s.ep)
		if !ok {
			return
		}
		if s.log == nil || proto.Kind(msg.Kind) != proto.MsgLogLine {
			continue
		}
		s.log.WriteLineString(stamp(ctx.NowTick(), msg.Payload()))
	}
}

// stamp renders "[sss.mmm] line" for a 1 ms tick.
func stamp(tick uint64, line []byte) string {
	return fmt.Sprintf("[%4d.%03d] %s", tick/1000, tick%1000, line)
}
