package boot

import (
	"tradecalc/internal/buildinfo"
	logclient "tradecalc/sparkos/client/logger"
	"tradecalc/sparkos/kernel"
	"tradecalc/sparkos/proto"
)

// Task logs the build banner and hands the screen to the foreground app.
type Task struct {
	logCap kernel.Capability
	appCap kernel.Capability
}

// New returns a boot task.
func New(logCap, appCap kernel.Capability) *Task {
	return &Task{logCap: logCap, appCap: appCap}
}

func (t *Task) Run(ctx *kernel.Context) {
	if ctx == nil {
		return
	}
	if t.logCap.Valid() {
		logclient.Logf(ctx, t.logCap, "boot: %s", buildinfo.String())
	}
	if !t.appCap.Valid() {
		return
	}
	res := ctx.SendToCapRetry(t.appCap, uint16(proto.MsgAppControl), proto.AppControlPayload(true), kernel.Capability{}, 8)
	if res != kernel.SendOK && t.logCap.Valid() {
		logclient.Logf(ctx, t.logCap, "boot: activate app: %s", res)
	}
}
