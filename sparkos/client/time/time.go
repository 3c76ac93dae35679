package time

import (
	"fmt"

	"tradecalc/sparkos/kernel"
	"tradecalc/sparkos/proto"
)

// Request asks the time service to send MsgWake(requestID) to reply after dt ticks.
// It does not wait for the wake.
func Request(ctx *kernel.Context, timeCap, reply kernel.Capability, requestID, dt uint32) error {
	if ctx == nil {
		return fmt.Errorf("time request: nil context")
	}
	res := ctx.SendToCapResult(timeCap, uint16(proto.MsgSleep), proto.SleepPayload(requestID, dt), reply)
	if res != kernel.SendOK {
		return fmt.Errorf("time request %d: %s", requestID, res)
	}
	return nil
}

// Cancel withdraws a pending Request made with the same reply capability.
func Cancel(ctx *kernel.Context, timeCap, reply kernel.Capability, requestID uint32) error {
	if ctx == nil {
		return fmt.Errorf("time cancel: nil context")
	}
	res := ctx.SendToCapResult(timeCap, uint16(proto.MsgSleepCancel), proto.RequestIDPayload(requestID), reply)
	if res != kernel.SendOK {
		return fmt.Errorf("time cancel %d: %s", requestID, res)
	}
	return nil
}

// DecodeReply interprets a message from the time service. For MsgError the
// returned error carries the code and the failing request ID.
func DecodeReply(msg kernel.Message) (requestID uint32, err error) {
	switch proto.Kind(msg.Kind) {
	case proto.MsgWake:
		id, ok := proto.DecodeRequestIDPayload(msg.Payload())
		if !ok {
			return 0, fmt.Errorf("time wake: bad payload")
		}
		return id, nil
	case proto.MsgError:
		code, ref, detail, ok := proto.DecodeErrorPayload(msg.Payload())
		if !ok {
			return 0, fmt.Errorf("time error: bad payload")
		}
		id, _ := proto.DecodeRequestIDPayload(detail)
		return id, fmt.Errorf("time error: code=%s ref=%s", code, ref)
	default:
		return 0, fmt.Errorf("time reply: unexpected %s", proto.Kind(msg.Kind))
	}
}
