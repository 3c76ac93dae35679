package logger

import (
	"sync"
	"testing"
	"time"

	"tradecalc/sparkos/kernel"
	"tradecalc/sparkos/proto"
)

type captureLogger struct {
	mu    sync.Mutex
	lines []string
	got   chan struct{}
}

func (l *captureLogger) WriteLineString(s string) {
	l.mu.Lock()
	l.lines = append(l.lines, s)
	l.mu.Unlock()
	l.got <- struct{}{}
}

func (l *captureLogger) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

func TestStamp(t *testing.T) {
	if got := stamp(12345, []byte("hello")); got != "[  12.345] hello" {
		t.Fatalf("stamp=%q", got)
	}
}

func TestServiceWritesStampedLines(t *testing.T) {
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	log := &captureLogger{got: make(chan struct{}, 4)}

	k.TickTo(2500)
	k.AddTask(New(log, ep.Restrict(kernel.RightRecv)))
	k.AddTask(kernel.TaskFunc(func(ctx *kernel.Context) {
		ctx.SendTo(ep.Restrict(kernel.RightSend), uint16(proto.MsgWake), nil)
		ctx.SendTo(ep.Restrict(kernel.RightSend), uint16(proto.MsgLogLine), []byte("calc: ready"))
	}))

	select {
	case <-log.got:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for log line")
	}

	log.mu.Lock()
	defer log.mu.Unlock()
	if len(log.lines) != 1 || log.lines[0] != "[   2.500] calc: ready" {
		t.Fatalf("lines=%q", log.lines)
	}
}
