package contracts

import (
	"sync"

	"github.com/htgs-go/htgs/internal/profile"
)

// =============================================================================
// Connector contracts
// =============================================================================

// AnyConnector is the type-erased view of a Connector[T]. A graph builder
// holds connectors as AnyConnector so edges between differently-typed tasks
// can live in the same bookkeeping structures; the concrete Connector[T]
// is recovered with a type assertion at the one place that needs T back.
type AnyConnector interface {
	// Name returns the human-readable edge name used in debug output and
	// DOT rendering.
	Name() string

	// TypeName returns the Go type name of the data flowing through the
	// connector, used for DOT annotations.
	TypeName() string

	// AddProducers increments the number of upstream producer threads
	// that may still push data into this connector. Graph construction
	// calls this once per producer-side thread before the graph runs;
	// it must never be called after the connector starts draining.
	AddProducers(n int)

	// ProducerFinished records that one producer thread has stopped
	// producing. Once the producer count reaches zero and the queue is
	// empty, the connector is terminated and every blocked consumer is
	// woken.
	ProducerFinished()

	// IsInputTerminated reports whether the connector has no producers
	// left and no buffered data, i.e. consumers will never receive
	// anything else from it.
	IsInputTerminated() bool

	// CloseQueue forces immediate termination, used when a graph is torn
	// down before its producers naturally finish.
	CloseQueue()

	// Size returns the number of items currently queued.
	Size() int

	// DotID returns the identifier used to render this connector as a
	// DOT graph node.
	DotID() string

	// ConsumeAny and ProduceAny are the type-erased counterparts of
	// Connector[T].Consume/Produce, used where a connector is reached
	// through a name rather than a typed reference - namely memory
	// request/release edges, which are looked up by memory manager name
	// out of a map[string]AnyConnector.
	ConsumeAny() (any, bool)
	ProduceAny(v any)
}

// =============================================================================
// Task manager contracts
// =============================================================================

// AnyTaskManager is the type-erased handle a graph uses to wire, start,
// and tear down one task's thread replica(s) without knowing the task's
// input/output types.
type AnyTaskManager interface {
	Name() string
	NumThreads() int
	PipelineID() int

	SetInputConnector(AnyConnector)
	InputConnector() AnyConnector
	SetOutputConnector(AnyConnector)
	OutputConnector() AnyConnector

	// BindMemoryIn and BindMemoryOut wire a named memory edge so
	// ExecuteTask can reach it through Handle.RequestMemory/ReleaseMemory.
	BindMemoryIn(name string, c AnyConnector)
	BindMemoryOut(name string, c AnyConnector)

	// MemoryInEdges and MemoryOutEdges expose the named memory edges bound
	// via BindMemoryIn/BindMemoryOut, keyed by memory manager name, for DOT
	// rendering.
	MemoryInEdges() map[string]AnyConnector
	MemoryOutEdges() map[string]AnyConnector

	// SetCommunicator binds the Communicator shared across an enclosing
	// ExecutionPipeline's replicas, reachable from ExecuteTask through
	// Handle.Communicator for out-of-band delivery.
	SetCommunicator(c *Communicator)

	// WithProfiler attaches a profiling sink that records compute time,
	// wait time, and max queue size for every replica this manager runs.
	WithProfiler(s profile.Sink) AnyTaskManager

	// Initialize binds the manager to its position within an enclosing
	// ExecutionPipeline (pipelineID of numPipelines) and initializes
	// every thread replica's underlying task.
	Initialize(pipelineID, numPipelines int)

	// Start launches one goroutine per thread replica, registering each
	// with wg so callers can wait for every replica to exit.
	Start(wg *sync.WaitGroup)

	// Terminate forces every replica's input connector closed,
	// unblocking any replica waiting on empty input.
	Terminate()

	// IsTerminated reports whether every replica has exited.
	IsTerminated() bool

	// Copy produces a new, unstarted manager for the same underlying
	// task type. When deep is true the underlying task itself is cloned
	// via its own Copy; when false the same task instance is shared
	// across the copy.
	Copy(deep bool) AnyTaskManager

	// GenDot renders this manager and its input/output edges as DOT.
	GenDot(flags DotGenFlag) string
}

// =============================================================================
// Memory contracts
// =============================================================================

// AnyMemoryData is the type-erased view of a MemoryData[T] handed out by a
// memory pool, used by release rules and profiling that don't need T.
type AnyMemoryData interface {
	MemoryManagerName() string
	PipelineID() int
	TimesUsed() int
	CanRelease() bool
}
