package memory

import (
	"container/list"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Pool is a bounded collection of *Data[T] slots. The semaphore tracks how
// many slots are checked out so tryTake/AddMemory can stay non-blocking;
// the actual back-pressure a requester feels comes from Manager.ExecuteTask
// only pushing a slot onto its output connector once tryTake finds one
// free, and Handle.RequestMemory blocking on that connector.
type Pool[T any] struct {
	sem *semaphore.Weighted

	mu   sync.Mutex
	free *list.List // of *Data[T]
	size int64
}

// NewPool creates an empty pool with capacity size. Fill must be called
// before the first tryTake.
func NewPool[T any](size int) *Pool[T] {
	return &Pool[T]{
		sem:  semaphore.NewWeighted(int64(size)),
		free: list.New(),
		size: int64(size),
	}
}

// Fill populates the pool with size slots built by factory, and acquires
// no permits: the pool starts full.
func (p *Pool[T]) Fill(factory func(i int) *Data[T]) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := 0; i < int(p.size); i++ {
		p.free.PushBack(factory(i))
	}
}

// tryTake takes a slot without blocking, used by Manager's drain loop
// which already knows (via IsEmpty) that a slot should be available.
func (p *Pool[T]) tryTake() (*Data[T], bool) {
	if !p.sem.TryAcquire(1) {
		return nil, false
	}
	p.mu.Lock()
	e := p.free.Front()
	if e == nil {
		p.mu.Unlock()
		p.sem.Release(1)
		return nil, false
	}
	p.free.Remove(e)
	p.mu.Unlock()
	return e.Value.(*Data[T]), true
}

// AddMemory returns a slot to the pool, releasing one permit.
func (p *Pool[T]) AddMemory(d *Data[T]) {
	p.mu.Lock()
	p.free.PushBack(d)
	p.mu.Unlock()
	p.sem.Release(1)
}

// IsEmpty reports whether every slot is currently checked out.
func (p *Pool[T]) IsEmpty() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.free.Len() == 0
}

// ReleaseAll frees every payload still held by the pool, used at memory
// manager shutdown for every memory manager type.
func (p *Pool[T]) ReleaseAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for e := p.free.Front(); e != nil; e = e.Next() {
		e.Value.(*Data[T]).MemFree()
	}
	p.free.Init()
}
