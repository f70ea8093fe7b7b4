package engine

import (
	"runtime"
	"runtime/debug"
)

// MemoryManager is the hook the engine calls to reclaim memory.
// It runs on the loop goroutine, once per frame while the configured
// debug button is held.
type MemoryManager interface {
	Collect()
}

// GoMemory forces a garbage collection and returns freed memory to the OS.
type GoMemory struct{}

// Collect runs the collector.
func (GoMemory) Collect() {
	runtime.GC()
	debug.FreeOSMemory()
}
