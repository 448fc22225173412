// Package connector implements the blocking, type-safe queue that carries
// data between task manager replicas.
package connector

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/eapache/queue"
	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/htgs-go/htgs/contracts"
)

// Connector is a bounded-in-spirit, unbounded-in-practice blocking MPMC
// FIFO queue of T. Any number of producer threads push with Produce; any
// number of consumer threads pull with Consume. A producer count, set once
// at graph-build time via AddProducers and decremented with
// ProducerFinished, drives termination: the connector is terminated the
// instant the producer count reaches zero and the queue is empty, and that
// transition wakes every blocked consumer exactly once.
type Connector[T any] struct {
	name string
	dot  string

	mu    sync.Mutex
	q     *queue.Queue
	count atomic.Int64 // producerCount, see AddProducers/ProducerFinished

	dataReady chan struct{} // capacity 1: non-blocking send wakes one waiter
	termCh    chan struct{} // closed exactly once, on termination
	closeOnce sync.Once
	terminated bool
}

// New creates an unterminated, producer-count-zero connector named name.
// AddProducers must be called before the graph starts running or the
// connector will appear terminated immediately.
func New[T any](name string) *Connector[T] {
	return &Connector[T]{
		name:      name,
		dot:       uuid.NewString(),
		q:         queue.New(),
		dataReady: make(chan struct{}, 1),
		termCh:    make(chan struct{}),
	}
}

func (c *Connector[T]) Name() string { return c.name }

func (c *Connector[T]) TypeName() string {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return fmt.Sprintf("%T", zero)
	}
	return t.String()
}

func (c *Connector[T]) DotID() string { return c.dot }

// AddProducers registers n additional upstream threads that may still push
// into this connector.
func (c *Connector[T]) AddProducers(n int) {
	c.count.Add(int64(n))
}

// ProducerFinished records that one producer thread has stopped producing.
// When the count reaches zero the connector checks whether it can
// terminate and, if so, wakes every consumer blocked in Consume.
func (c *Connector[T]) ProducerFinished() {
	c.count.Dec()
	c.mu.Lock()
	c.checkTerminatedLocked()
	c.mu.Unlock()
}

// checkTerminatedLocked recomputes the terminated flag and, on the
// zero-producers-and-empty-queue transition, closes termCh so every
// blocked consumer wakes. Must be called with mu held.
func (c *Connector[T]) checkTerminatedLocked() {
	if c.terminated {
		return
	}
	if c.count.Load() <= 0 && c.q.Length() == 0 {
		c.terminated = true
		c.closeOnce.Do(func() { close(c.termCh) })
	}
}

// Produce pushes data onto the queue and wakes at most one waiting
// consumer.
func (c *Connector[T]) Produce(data T) {
	c.mu.Lock()
	c.q.Add(data)
	c.mu.Unlock()

	select {
	case c.dataReady <- struct{}{}:
	default:
	}
}

// Consume blocks until data is available or the connector terminates. The
// bool result is false only when the connector is drained and terminated.
func (c *Connector[T]) Consume() (T, bool) {
	for {
		c.mu.Lock()
		if c.q.Length() > 0 {
			v := c.q.Remove().(T)
			c.checkTerminatedLocked()
			c.mu.Unlock()
			return v, true
		}
		if c.terminated {
			c.mu.Unlock()
			var zero T
			return zero, false
		}
		c.mu.Unlock()

		select {
		case <-c.dataReady:
		case <-c.termCh:
		}
	}
}

// Poll behaves like Consume but also wakes on timeout: if no data arrives
// and the connector has not terminated within timeout, it returns with
// timedOut set and a zero-value T, letting a polling task wake on a fixed
// interval even absent input (e.g. to invoke ExecuteTask(null) on a timer).
// ok is true only when real data was returned; timedOut is true only on
// the timeout branch, never together with ok.
func (c *Connector[T]) Poll(timeout time.Duration) (data T, ok bool, timedOut bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		c.mu.Lock()
		if c.q.Length() > 0 {
			v := c.q.Remove().(T)
			c.checkTerminatedLocked()
			c.mu.Unlock()
			return v, true, false
		}
		if c.terminated {
			c.mu.Unlock()
			var zero T
			return zero, false, false
		}
		c.mu.Unlock()

		select {
		case <-c.dataReady:
		case <-c.termCh:
		case <-timer.C:
			var zero T
			return zero, false, true
		}
	}
}

// IsInputTerminated reports whether the connector has stopped producing
// and has no buffered data left, without blocking.
func (c *Connector[T]) IsInputTerminated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.terminated
}

// CloseQueue forces immediate termination regardless of producer count,
// used to tear down a graph before its producers finish naturally.
func (c *Connector[T]) CloseQueue() {
	c.mu.Lock()
	c.count.Store(0)
	c.terminated = true
	c.closeOnce.Do(func() { close(c.termCh) })
	c.mu.Unlock()
}

// Size returns the number of items currently queued.
func (c *Connector[T]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.q.Length()
}

// ConsumeAny is the type-erased form of Consume, used when a connector is
// reached by name rather than through a *Connector[T] reference.
func (c *Connector[T]) ConsumeAny() (any, bool) {
	v, ok := c.Consume()
	return v, ok
}

// ProduceAny is the type-erased form of Produce. It panics if v is not
// assignable to T, mirroring a programming error rather than a runtime
// condition callers should recover from.
func (c *Connector[T]) ProduceAny(v any) {
	c.Produce(v.(T))
}

var _ contracts.AnyConnector = (*Connector[int])(nil)
