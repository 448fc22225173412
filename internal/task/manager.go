package task

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/htgs-go/htgs/contracts"
	"github.com/htgs-go/htgs/internal/connector"
	"github.com/htgs-go/htgs/internal/profile"
)

// Manager owns numThreads goroutine replicas of a single ITask[T, U],
// wiring them to one shared input and one shared output connector. It is
// the Go analogue of the original library's TaskManager: the graph talks
// to tasks exclusively through Manager (and its AnyTaskManager view), never
// by calling ITask methods directly.
type Manager[T, U any] struct {
	name       string
	task       ITask[T, U]
	numThreads int
	dot        string
	startTask  bool

	input  *connector.Connector[T]
	output *connector.Connector[U]

	memoryIn  map[string]contracts.AnyConnector
	memoryOut map[string]contracts.AnyConnector
	comm      *contracts.Communicator

	profiler profile.Sink

	pipelineID   int
	numPipelines int

	state     atomic.Int32 // contracts.ManagerState
	remaining atomic.Int64 // replicas still running, for the last-thread Finalizer hook
}

// NewManager creates a manager for task with the given replica count. A
// numThreads of 0 or less is invalid; graph construction rejects it with
// contracts.ErrInvalidNumThreads.
func NewManager[T, U any](name string, t ITask[T, U], numThreads int) *Manager[T, U] {
	return &Manager[T, U]{
		name:       name,
		task:       t,
		numThreads: numThreads,
		dot:        uuid.NewString(),
		memoryIn:   make(map[string]contracts.AnyConnector),
		memoryOut:  make(map[string]contracts.AnyConnector),
	}
}

// StartsImmediately marks the manager as invoking ExecuteTask once with a
// zero-value T before it ever pulls from its input connector, mirroring
// the original library's isStartTask flag. MemoryManager uses this to
// flush its pre-filled pool without waiting for a first recycled item.
func (m *Manager[T, U]) StartsImmediately(v bool) *Manager[T, U] {
	m.startTask = v
	return m
}

// WithProfiler attaches a profiling sink that records compute time, wait
// time, and max queue size for every replica this manager runs. A nil
// sink (the default) costs nothing beyond a per-item pointer check.
func (m *Manager[T, U]) WithProfiler(s profile.Sink) contracts.AnyTaskManager {
	m.profiler = s
	return m
}

// Underlying returns the ITask instance this manager was built from
// (replica 0's), letting graph construction reach into task-specific
// behavior that isn't part of ITask itself - e.g. attaching rules to a
// Bookkeeper.
func (m *Manager[T, U]) Underlying() ITask[T, U] { return m.task }

func (m *Manager[T, U]) Name() string       { return m.name }
func (m *Manager[T, U]) NumThreads() int    { return m.numThreads }
func (m *Manager[T, U]) PipelineID() int    { return m.pipelineID }
func (m *Manager[T, U]) DotID() string      { return m.dot }

func (m *Manager[T, U]) SetInputConnector(c contracts.AnyConnector) {
	if c == nil {
		m.input = nil
		return
	}
	typed, ok := c.(*connector.Connector[T])
	if !ok {
		panic(fmt.Sprintf("task %s: input connector type mismatch", m.name))
	}
	m.input = typed
}

func (m *Manager[T, U]) InputConnector() contracts.AnyConnector {
	if m.input == nil {
		return nil
	}
	return m.input
}

func (m *Manager[T, U]) SetOutputConnector(c contracts.AnyConnector) {
	if c == nil {
		m.output = nil
		return
	}
	typed, ok := c.(*connector.Connector[U])
	if !ok {
		panic(fmt.Sprintf("task %s: output connector type mismatch", m.name))
	}
	m.output = typed
}

func (m *Manager[T, U]) OutputConnector() contracts.AnyConnector {
	if m.output == nil {
		return nil
	}
	return m.output
}

// BindMemoryIn wires a named memory-request edge, reachable from
// ExecuteTask via Handle.RequestMemory(name).
func (m *Manager[T, U]) BindMemoryIn(name string, c contracts.AnyConnector) {
	m.memoryIn[name] = c
}

// BindMemoryOut wires a named memory-release edge, reachable from
// ExecuteTask via Handle.ReleaseMemory(name, data).
func (m *Manager[T, U]) BindMemoryOut(name string, c contracts.AnyConnector) {
	m.memoryOut[name] = c
}

func (m *Manager[T, U]) MemoryInEdges() map[string]contracts.AnyConnector  { return m.memoryIn }
func (m *Manager[T, U]) MemoryOutEdges() map[string]contracts.AnyConnector { return m.memoryOut }

// SetCommunicator binds the Communicator shared across an enclosing
// ExecutionPipeline's replicas, reachable from ExecuteTask via
// Handle.Communicator.
func (m *Manager[T, U]) SetCommunicator(c *contracts.Communicator) {
	m.comm = c
}

func (m *Manager[T, U]) Initialize(pipelineID, numPipelines int) {
	m.pipelineID = pipelineID
	m.numPipelines = numPipelines
	m.state.Store(int32(contracts.ManagerInitializing))
}

// Start launches one goroutine per replica. Replica 0 runs the ITask
// instance passed to NewManager; replicas 1..N-1 each run task.Copy().
func (m *Manager[T, U]) Start(wg *sync.WaitGroup) {
	m.remaining.Store(int64(m.numThreads))
	m.state.Store(int32(contracts.ManagerRunning))
	for i := 0; i < m.numThreads; i++ {
		wg.Add(1)
		replica := m.task
		if i > 0 {
			replica = m.task.Copy()
		}
		go m.run(replica, wg)
	}
}

func (m *Manager[T, U]) produce(data U) {
	if m.output != nil {
		m.output.Produce(data)
	}
}

func (m *Manager[T, U]) run(t ITask[T, U], wg *sync.WaitGroup) {
	defer wg.Done()

	t.Initialize(m.pipelineID, m.numPipelines)
	handle := &Handle[T, U]{mgr: m}

	if m.input == nil {
		// Graph-producer task: manufactures its own data, ExecuteTask is
		// invoked exactly once with the zero value of T.
		var zero T
		t.ExecuteTask(zero, handle)
	} else {
		if m.startTask {
			var zero T
			t.ExecuteTask(zero, handle)
		}
		poller, isPolling := any(t).(PollingTask)
		for {
			var data T
			var ok, timedOut bool

			waitStart := time.Now()
			if isPolling {
				data, ok, timedOut = m.input.Poll(poller.MicroTimeout())
			} else {
				data, ok = m.input.Consume()
			}
			if m.profiler != nil {
				m.profiler.RecordWait(m.name, time.Since(waitStart))
				m.profiler.RecordQueueSize(m.name, m.input.Size())
			}
			if timedOut {
				compStart := time.Now()
				t.ExecuteTask(data, handle)
				if m.profiler != nil {
					m.profiler.RecordCompute(m.name, time.Since(compStart))
				}
				continue
			}
			if !ok {
				break
			}
			compStart := time.Now()
			t.ExecuteTask(data, handle)
			if m.profiler != nil {
				m.profiler.RecordCompute(m.name, time.Since(compStart))
			}
		}
		if f, ok := any(t).(Finisher); ok {
			f.InputTerminated()
		}
		if term, ok := any(t).(Terminator); ok {
			for !term.CanTerminate(true) {
				time.Sleep(time.Millisecond)
			}
		}
	}

	t.Shutdown()

	if left := m.remaining.Dec(); left == 0 {
		if f, ok := any(t).(Finalizer); ok {
			f.ExecuteTaskFinal()
		}
		m.state.Store(int32(contracts.ManagerTerminated))
	}

	if m.output != nil {
		m.output.ProducerFinished()
	}
}

// Terminate force-closes the input connector, unblocking any replica
// waiting on it so Start's goroutines can exit without more data.
func (m *Manager[T, U]) Terminate() {
	if m.input != nil {
		m.input.CloseQueue()
	}
}

func (m *Manager[T, U]) IsTerminated() bool {
	return contracts.ManagerState(m.state.Load()) == contracts.ManagerTerminated
}

// Copy creates a new, unstarted manager for the same task type. When deep
// is true the underlying ITask is cloned via Copy(); when false the exact
// same instance is shared. Graph copies (and so ExecutionPipeline
// replicas) always use deep; rule state is shared across replicas through
// useLocks rule schedulers instead.
func (m *Manager[T, U]) Copy(deep bool) contracts.AnyTaskManager {
	t := m.task
	if deep {
		t = m.task.Copy()
	}
	return NewManager[T, U](m.name, t, m.numThreads).WithProfiler(m.profiler)
}

func (m *Manager[T, U]) GenDot(flags contracts.DotGenFlag) string {
	label := m.name
	if flags.Has(contracts.DotGenFlagShowInOutTypes) {
		var in T
		var out U
		label = fmt.Sprintf("%s\\n[%T -> %T]", m.name, in, out)
	}
	if flags.Has(contracts.DotGenFlagColorPipelines) {
		color := contracts.PipelineColor(m.pipelineID)
		return fmt.Sprintf("%q[label=%q,shape=box,style=filled,fillcolor=%q];\n", m.dot, label, color)
	}
	return fmt.Sprintf("%q[label=%q,shape=box];\n", m.dot, label)
}

var _ contracts.AnyTaskManager = (*Manager[int, int])(nil)
