package logger

import (
	"fmt"

	"tradecalc/sparkos/kernel"
	"tradecalc/sparkos/proto"
)

// Log sends a log line to the logger service. Lines longer than one message
// are truncated. Delivery is best effort.
func Log(ctx *kernel.Context, logCap kernel.Capability, line string) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidFromCap
	}
	payload := proto.LogLinePayload(line, kernel.MaxMessageBytes)
	return ctx.SendToCapResult(logCap, uint16(proto.MsgLogLine), payload, kernel.Capability{})
}

// Logf formats and logs a line, retrying a few ticks while the logger's queue is full.
func Logf(ctx *kernel.Context, logCap kernel.Capability, format string, args ...any) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidFromCap
	}
	payload := proto.LogLinePayload(fmt.Sprintf(format, args...), kernel.MaxMessageBytes)
	return ctx.SendToCapRetry(logCap, uint16(proto.MsgLogLine), payload, kernel.Capability{}, retryLimit)
}

const retryLimit = 4
