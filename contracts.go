package htgs

import "github.com/htgs-go/htgs/contracts"

// AnyTaskManager is the non-generic view every Manager[T, U] satisfies,
// letting a Runtime or Builder hold differently-typed managers in one
// slice.
type AnyTaskManager = contracts.AnyTaskManager

// AnyConnector is the non-generic view every Connector[T] satisfies.
type AnyConnector = contracts.AnyConnector

// Communicator is an address-indexed connector registry shared across
// every replica of a graph inside an ExecutionPipeline, used for
// out-of-band delivery - reached from ExecuteTask via Handle.Communicator.
type Communicator = contracts.Communicator

// CommAddress identifies one registration in a Communicator.
type CommAddress = contracts.CommAddress

// NoData is the input type for a graph producer task: one that
// manufactures its own output instead of reacting to upstream input.
type NoData = contracts.NoData

// MMType identifies how a memory manager owns the memory it distributes
// (see MMStatic/MMDynamic/MMUserManaged in graph.go).
type MMType = contracts.MMType

// DotGenFlag controls optional detail included when rendering a graph to
// Graphviz DOT notation.
type DotGenFlag = contracts.DotGenFlag

const (
	DotGenFlagNone           = contracts.DotGenFlagNone
	DotGenFlagHideMemEdges   = contracts.DotGenFlagHideMemEdges
	DotGenFlagShowInOutTypes = contracts.DotGenFlagShowInOutTypes
	DotGenFlagColorPipelines = contracts.DotGenFlagColorPipelines
)

// Sentinel errors returned by graph construction, runtime, and memory
// operations - see contracts.Err* for the full set this package wraps.
var (
	ErrTaskNotInGraph    = contracts.ErrTaskNotInGraph
	ErrGraphCycle        = contracts.ErrGraphCycle
	ErrGraphFinalized    = contracts.ErrGraphFinalized
	ErrNoGraphConsumer   = contracts.ErrNoGraphConsumer
	ErrNoGraphProducer   = contracts.ErrNoGraphProducer
	ErrDuplicateMemEdge  = contracts.ErrDuplicateMemEdge
	ErrUnknownMemoryEdge = contracts.ErrUnknownMemoryEdge
	ErrInvalidNumThreads = contracts.ErrInvalidNumThreads
)
