package memory

import (
	"fmt"

	"github.com/htgs-go/htgs/contracts"
	"github.com/htgs-go/htgs/internal/htlog"
	"github.com/htgs-go/htgs/internal/task"
)

// Manager is the ITask that owns a Pool[T] and distributes its contents.
// It is wired into a graph exactly like any other task, via a
// task.Manager[*Data[T], *Data[T]] built around it, and typically runs
// with a single thread since the pool itself is not safe for concurrent
// tryTake/AddMemory pairs from multiple replicas.
//
// Static managers (contracts.MMStatic) allocate every slot up front and
// only ever recycle it; Dynamic managers (contracts.MMDynamic) allocate
// lazily on first request and free the payload once a release rule says
// it is done, keeping only the *Data[T] wrapper itself pooled.
type Manager[T any] struct {
	name      string
	pool      *Pool[T]
	allocator Allocator[T]
	poolSize  int
	mmType    contracts.MMType

	pipelineID int
}

// NewManager builds a memory manager named name backing a pool of
// poolSize slots.
func NewManager[T any](name string, poolSize int, allocator Allocator[T], mmType contracts.MMType) *Manager[T] {
	if allocator == nil {
		allocator = AllocatorFunc[T]{Alloc: func(int) T { var zero T; return zero }}
	}
	return &Manager[T]{
		name:      name,
		pool:      NewPool[T](poolSize),
		allocator: allocator,
		poolSize:  poolSize,
		mmType:    mmType,
	}
}

func (m *Manager[T]) Name() string { return fmt.Sprintf("MM(%s): %s", m.mmType, m.name) }

func (m *Manager[T]) Initialize(pipelineID, numPipelines int) {
	m.pipelineID = pipelineID
	allocate := m.mmType == contracts.MMStatic
	m.pool.Fill(func(i int) *Data[T] {
		var payload T
		if allocate {
			payload = m.allocator.AllocatePayload(m.poolSize)
		}
		d := New[T](payload, m.allocator, m.name, pipelineID, m.mmType)
		return d
	})
}

func (m *Manager[T]) ExecuteTask(data *Data[T], handle *task.Handle[*Data[T], *Data[T]]) {
	if data != nil {
		if data.PipelineID() == m.pipelineID {
			data.MemoryUsed()
			if data.CanReleaseMemory() {
				switch m.mmType {
				case contracts.MMStatic:
					m.pool.AddMemory(data)
				case contracts.MMDynamic:
					data.MemFree()
					m.pool.AddMemory(data)
				case contracts.MMUserManaged:
					m.pool.AddMemory(data)
				}
			}
		} else {
			htlog.Warn("memory manager %s received data from another pipeline", m.name)
		}
	}

	for !m.pool.IsEmpty() {
		d, ok := m.pool.tryTake()
		if !ok {
			break
		}
		if m.mmType == contracts.MMDynamic && !d.allocated {
			d.SetPayload(m.allocator.AllocatePayload(m.poolSize))
		}
		handle.AddResult(d)
	}
}

func (m *Manager[T]) Shutdown() {
	m.pool.ReleaseAll()
}

func (m *Manager[T]) Copy() task.ITask[*Data[T], *Data[T]] {
	return NewManager[T](m.name, m.poolSize, m.allocator, m.mmType)
}

var _ task.ITask[*Data[int], *Data[int]] = (*Manager[int])(nil)
