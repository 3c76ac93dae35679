package kernel

import (
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// PanicInfo describes a panic recovered from a task.
type PanicInfo struct {
	TaskID TaskID
	Value  any
	Stack  []byte
}

var (
	panicActive  atomic.Bool
	panicOnce    sync.Once
	panicHandler atomic.Value // func(PanicInfo)
)

// InPanicMode reports whether a task has panicked.
func InPanicMode() bool {
	return panicActive.Load()
}

// SetPanicHandler installs the process-wide panic handler.
//
// Only the first panic reaches the handler. It must not panic itself.
func SetPanicHandler(fn func(PanicInfo)) {
	panicHandler.Store(fn)
}

func triggerPanic(info PanicInfo) {
	panicOnce.Do(func() {
		panicActive.Store(true)
		info.Stack = debug.Stack()
		fn, _ := panicHandler.Load().(func(PanicInfo))
		if fn != nil {
			fn(info)
		}
	})
}
