// Package contracts defines the shared vocabulary of the runtime: the
// non-generic interfaces, sentinel errors and small value types that let
// heterogeneous, differently-typed task graph components be stored and
// driven through a single container without reflection.
//
// Go has no template instantiation, so the type-erasure the original C++
// library gets from its AnyITask/AnyConnector/AnyTaskManager base classes
// is modeled here the same way: every generic, typed component
// (Connector[T], Manager[T,U], ...) implements one of these non-generic
// interfaces so a graph can hold a slice of differently-typed tasks.
package contracts

// MMType identifies how a memory manager owns the memory it distributes.
type MMType int

const (
	// MMStatic allocates its pool once at initialization and frees it at
	// shutdown. Memory handed to a task is always recycled back into the
	// pool, never freed early.
	MMStatic MMType = iota
	// MMDynamic does not pre-allocate; allocation is deferred to the
	// consuming task and memory is freed (not recycled) once a release
	// rule indicates it is no longer needed.
	MMDynamic
	// MMUserManaged hands out raw pool slots without any automatic
	// allocation or release bookkeeping; the task is fully responsible.
	MMUserManaged
)

func (t MMType) String() string {
	switch t {
	case MMStatic:
		return "static"
	case MMDynamic:
		return "dynamic"
	case MMUserManaged:
		return "user-managed"
	default:
		return "unknown"
	}
}

// DotGenFlag controls optional detail included when rendering a graph to
// Graphviz DOT notation.
type DotGenFlag int

const (
	DotGenFlagNone DotGenFlag = 0
	// DotGenFlagHideMemEdges omits memory-manager edges from the render.
	DotGenFlagHideMemEdges DotGenFlag = 1 << iota
	// DotGenFlagShowInOutTypes annotates edges with their Go type name.
	DotGenFlagShowInOutTypes
	// DotGenFlagColorPipelines colors replicas from the same execution
	// pipeline stage with a shared fill color.
	DotGenFlagColorPipelines
)

func (f DotGenFlag) Has(flag DotGenFlag) bool {
	return f&flag != 0
}

// pipelineColorPalette is the fixed set of Graphviz color names
// DotGenFlagColorPipelines cycles through, keyed by pipelineID modulo its
// length, so adjacent pipelines render visually distinguishable without
// pulling in a color library.
var pipelineColorPalette = []string{
	"lightblue", "lightpink", "lightyellow", "lightgreen",
	"lightsalmon", "lightcyan", "plum", "khaki",
}

// PipelineColor picks a stable Graphviz color name for a replica's
// pipelineID.
func PipelineColor(pipelineID int) string {
	return pipelineColorPalette[pipelineID%len(pipelineColorPalette)]
}

// NoData is the input type for a "graph producer task": one that
// manufactures its own output during a single ExecuteTask call instead of
// reacting to an upstream connector.
type NoData struct{}

// TaskGraphAddress identifies a specific replica of a graph inside the
// pipeline it was replicated into. Communicator registrations are keyed by
// CommAddress, not by this type.
type TaskGraphAddress struct {
	PipelineID   int
	NumPipelines int
}
