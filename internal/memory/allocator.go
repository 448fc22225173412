// Package memory implements pooled, recycled memory distribution between
// tasks: MemoryData wraps a payload with usage/release bookkeeping, and
// MemoryManager is the ITask that owns a MemoryPool and hands its contents
// out on request.
package memory

// Allocator constructs and releases payloads of type T for a memory pool.
// A Static memory manager calls AllocatePayload once per pool slot at
// startup and calls Free only at shutdown. A Dynamic memory manager defers
// AllocatePayload to the first request and calls Free once a release rule
// says the payload is done.
type Allocator[T any] interface {
	// AllocatePayload returns a new payload sized for numElements logical
	// elements (meaning is caller-defined: could be a slice length, a
	// buffer size, or ignored entirely for fixed-size payloads).
	AllocatePayload(numElements int) T

	// Free releases resources held by payload. For payloads backed by
	// Go's garbage collector this is often a no-op; it exists for
	// payloads wrapping external resources (file handles, off-heap
	// buffers, pinned host memory for a CUDA task).
	Free(payload T)
}

// ReleaseRule decides when a piece of memory handed to a task can be
// recycled back into its pool, based on how many times it has been used.
type ReleaseRule interface {
	// CanRelease reports whether memory used timesUsed times so far may
	// now be returned to its pool.
	CanRelease(timesUsed int) bool
}

// ReleaseAfterUses is a ReleaseRule that recycles memory once it has been
// used exactly n times, the most common case (n=1: release immediately
// after one use).
type ReleaseAfterUses int

func (n ReleaseAfterUses) CanRelease(timesUsed int) bool {
	return timesUsed >= int(n)
}

// AllocatorFunc adapts two functions to the Allocator interface.
type AllocatorFunc[T any] struct {
	Alloc func(numElements int) T
	Free_ func(T)
}

func (a AllocatorFunc[T]) AllocatePayload(numElements int) T { return a.Alloc(numElements) }
func (a AllocatorFunc[T]) Free(payload T) {
	if a.Free_ != nil {
		a.Free_(payload)
	}
}
