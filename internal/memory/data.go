package memory

import (
	"sync"

	"github.com/htgs-go/htgs/contracts"
)

// Data wraps a pooled payload of type T with the usage/release bookkeeping
// a MemoryManager needs to decide when it is safe to recycle. Tasks
// receive *Data[T] from Handle.RequestMemory and return it with
// Handle.ReleaseMemory once MemoryUsed/CanRelease says it is done.
type Data[T any] struct {
	mu sync.Mutex

	payload     T
	allocator   Allocator[T]
	rule        ReleaseRule
	managerName string
	pipelineID  int
	mmType      contracts.MMType
	timesUsed   int
	allocated   bool
}

// New creates a Data wrapper around payload, owned by the memory manager
// named managerName in pipeline replica pipelineID.
func New[T any](payload T, allocator Allocator[T], managerName string, pipelineID int, mmType contracts.MMType) *Data[T] {
	return &Data[T]{
		payload:     payload,
		allocator:   allocator,
		managerName: managerName,
		pipelineID:  pipelineID,
		mmType:      mmType,
		rule:        ReleaseAfterUses(1),
		allocated:   mmType == contracts.MMStatic,
	}
}

// Payload returns the wrapped value.
func (d *Data[T]) Payload() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.payload
}

// SetPayload replaces the wrapped value, used by Dynamic memory managers
// that defer allocation until the consuming task requests it.
func (d *Data[T]) SetPayload(v T) {
	d.mu.Lock()
	d.payload = v
	d.allocated = true
	d.mu.Unlock()
}

// SetReleaseRule overrides the default release-after-one-use rule.
func (d *Data[T]) SetReleaseRule(r ReleaseRule) {
	d.mu.Lock()
	d.rule = r
	d.mu.Unlock()
}

// MemoryUsed records one use of this memory, incrementing the counter the
// release rule evaluates.
func (d *Data[T]) MemoryUsed() {
	d.mu.Lock()
	d.timesUsed++
	d.mu.Unlock()
}

// CanReleaseMemory reports whether the release rule considers this memory
// done, based on the number of recorded uses.
func (d *Data[T]) CanReleaseMemory() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rule.CanRelease(d.timesUsed)
}

// MemFree releases the underlying payload via the allocator, used by
// Dynamic memory managers when memory is recycled rather than kept in the
// pool.
func (d *Data[T]) MemFree() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.allocated {
		d.allocator.Free(d.payload)
		d.allocated = false
	}
}

func (d *Data[T]) MemoryManagerName() string { return d.managerName }
func (d *Data[T]) PipelineID() int           { return d.pipelineID }
func (d *Data[T]) Type() contracts.MMType    { return d.mmType }

func (d *Data[T]) TimesUsed() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timesUsed
}

func (d *Data[T]) CanRelease() bool { return d.CanReleaseMemory() }

var _ contracts.AnyMemoryData = (*Data[int])(nil)
