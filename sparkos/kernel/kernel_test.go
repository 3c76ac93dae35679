package kernel

import (
	"testing"
	"time"
)

func TestWaitTickReturnsAdvancedTick(t *testing.T) {
	k := New()
	ctx := &Context{k: k}

	done := make(chan uint64, 1)
	go func() { done <- ctx.WaitTick(0) }()

	k.TickTo(3)
	select {
	case got := <-done:
		if got != 3 {
			t.Fatalf("WaitTick=%d, want 3", got)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timed out waiting for tick")
	}

	k.TickTo(2)
	if got := ctx.NowTick(); got != 3 {
		t.Fatalf("NowTick after stale TickTo=%d, want 3", got)
	}
}

func TestTaskMessageRoundTrip(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)
	reply := k.NewEndpoint(RightSend | RightRecv)

	k.AddTask(TaskFunc(func(ctx *Context) {
		msg, ok := ctx.Recv(ep.Restrict(RightRecv))
		if !ok {
			return
		}
		ctx.SendTo(msg.Cap, msg.Kind+1, msg.Payload())
	}))

	ctx := &Context{k: k}
	if res := ctx.SendToCapResult(ep.Restrict(RightSend), 7, []byte("ping"), reply.Restrict(RightSend)); res != SendOK {
		t.Fatalf("send: %s", res)
	}

	ch, ok := ctx.RecvChan(reply.Restrict(RightRecv))
	if !ok {
		t.Fatal("expected recv channel")
	}
	select {
	case msg := <-ch:
		if msg.Kind != 8 || string(msg.Payload()) != "ping" {
			t.Fatalf("got kind=%d payload=%q", msg.Kind, msg.Payload())
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timed out waiting for reply")
	}
}

func TestRestrictDropsRights(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend)
	if ep.Restrict(RightRecv).Valid() {
		t.Fatal("expected invalid capability without shared rights")
	}

	ctx := &Context{k: k}
	if _, ok := ctx.RecvChan(ep); ok {
		t.Fatal("expected RecvChan to reject send-only capability")
	}
	if res := ctx.SendToCapResult(ep.Restrict(RightSend), 1, make([]byte, MaxMessageBytes+1), Capability{}); res != SendErrPayloadTooLarge {
		t.Fatalf("expected SendErrPayloadTooLarge, got %s", res)
	}
}

func TestTaskPanicReachesHandler(t *testing.T) {
	got := make(chan PanicInfo, 1)
	SetPanicHandler(func(info PanicInfo) { got <- info })
	defer SetPanicHandler(nil)

	k := New()
	k.AddTask(TaskFunc(func(ctx *Context) { panic("boom") }))

	select {
	case info := <-got:
		if info.Value != "boom" {
			t.Fatalf("panic value=%v, want boom", info.Value)
		}
		if len(info.Stack) == 0 {
			t.Fatal("expected captured stack")
		}
		if !InPanicMode() {
			t.Fatal("expected panic mode")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for panic handler")
	}
}
