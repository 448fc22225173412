package htgs

import (
	"github.com/htgs-go/htgs/contracts"
	"github.com/htgs-go/htgs/internal/graph"
	"github.com/htgs-go/htgs/internal/memory"
	"github.com/htgs-go/htgs/internal/rules"
)

// Graph is the typed front door onto a task graph: In is the type callers
// push in with ProduceData, Out is the type they pull out with
// ConsumeData. Its B field is the underlying builder, exported so callers
// can reach Builder-level operations (Tasks, Finalize, RenderDot) without
// importing internal/graph themselves.
//
// A finalized Graph can itself be wrapped as a Task via AsTask, letting one
// graph be nested as a single node of another - directly, or through
// NewExecutionPipeline for a replicated nested graph.
type Graph[In, Out any] = graph.TaskGraphConf[In, Out]

// NewGraph creates an empty, mutable graph named name.
func NewGraph[In, Out any](name string) *Graph[In, Out] {
	return graph.NewTaskGraphConf[In, Out](name)
}

// SetGraphConsumerTask designates m as the entry point for data pushed in
// with Graph.ProduceData.
func SetGraphConsumerTask[In, Out, U any](g *Graph[In, Out], m *Manager[In, U]) error {
	return graph.SetGraphConsumerTask[In, Out, U](g, m)
}

// AddGraphProducerTask designates m as the graph's own output source,
// reachable from the outside via Graph.ConsumeData.
func AddGraphProducerTask[In, Out, T any](g *Graph[In, Out], m *Manager[T, Out]) error {
	return graph.AddGraphProducerTask[In, Out, T](g, m)
}

// Builder is the non-generic bookkeeping core behind a Graph: the task
// registry and the recorded edge operations needed to replay a graph's
// wiring when ExecutionPipeline clones it. Every Graph exposes its own
// Builder through its B field.
type Builder = graph.Builder

// AddEdge connects producer's output to consumer's input with a shared
// connector, reconciling connectors already bound on either side (so
// AddEdge composes into fan-in/fan-out wiring across repeated calls). b
// is a graph's Builder, reached through Graph.B.
func AddEdge[T, U, W any](b *Builder, producer *Manager[T, U], consumer *Manager[U, W]) error {
	return graph.AddEdge[T, U, W](b, producer, consumer)
}

// AddRuleEdge attaches rule to bookkeeperMgr's underlying Bookkeeper[T],
// registering the rule as one more producer on consumer's input connector
// (created if consumer has none yet). useLocks controls what an ExecutionPipeline replica of this edge gets:
// false gives each replica an independent copy of rule; true shares this
// exact rule instance (and a single mutex) across every replica.
func AddRuleEdge[T, U, W any](b *Builder, bookkeeperMgr *Manager[T, contracts.NoData], rule Rule[T, U], consumer *Manager[U, W], useLocks bool) error {
	return graph.AddRuleEdge[T, U, W](b, bookkeeperMgr, rule, consumer, useLocks)
}

// AddMemoryManagerEdge wires a named memory edge: mm's output becomes the
// request connector getter pulls from via Handle.RequestMemory(name), and
// mm's input becomes the release connector getter pushes spent memory
// back into via Handle.ReleaseMemory(name, ...).
func AddMemoryManagerEdge[M any](b *Builder, name string, getter contracts.AnyTaskManager, mm *Manager[*MemoryData[M], *MemoryData[M]]) error {
	return graph.AddMemoryManagerEdge[M](b, name, getter, mm)
}

// BindExternalRelease routes a task outside the memory manager's usual
// getter/releaser pair into the same named release edge.
func BindExternalRelease(b *Builder, name string, releaser contracts.AnyTaskManager) error {
	return graph.BindExternalRelease(b, name, releaser)
}

// Rule is a single fan-out decision a Bookkeeper applies to every item it
// receives; RuleHandle is the narrow API it forwards results through.
type Rule[T, U any] = rules.IRule[T, U]
type RuleHandle[U any] = rules.RuleHandle[U]

// StatelessRule is an embeddable Rule base for rules with no state to
// flush on shutdown - the common case.
type StatelessRule[T, U any] = rules.StatelessRule[T, U]

// Bookkeeper fans every item it receives out to a fixed set of rules via
// AddRuleEdge, each with its own output type and connector.
type Bookkeeper[T any] = rules.Bookkeeper[T]

// NewBookkeeper creates an empty Bookkeeper; wire it into a graph with
// AddTask, then attach rules with AddRuleEdge.
func NewBookkeeper[T any](name string) *Bookkeeper[T] {
	return rules.NewBookkeeper[T](name)
}

// MemoryData wraps one payload handed out by a MemoryManager, tracking
// use-count and release eligibility per the manager's ReleaseRule.
type MemoryData[M any] = memory.Data[M]

// MemoryAllocator allocates and frees a memory manager's payload type.
type MemoryAllocator[M any] = memory.Allocator[M]

// ReleaseRule decides, after a task marks a MemoryData used, whether it
// is eligible to return to its pool.
type ReleaseRule = memory.ReleaseRule

// ReleaseAfterUses is a ReleaseRule that releases a slot after it has
// been used a fixed number of times.
type ReleaseAfterUses = memory.ReleaseAfterUses

// MemoryManager owns a bounded pool of MemoryData[M] slots and
// distributes them to whichever task is wired as the edge's getter.
type MemoryManager[M any] = memory.Manager[M]

// NewMemoryManager builds a memory manager named name backing a pool of
// poolSize slots of type M, owned the way mmType describes (Static,
// Dynamic, or UserManaged).
func NewMemoryManager[M any](name string, poolSize int, allocator MemoryAllocator[M], mmType contracts.MMType) *MemoryManager[M] {
	return memory.NewManager[M](name, poolSize, allocator, mmType)
}

const (
	MMStatic      = contracts.MMStatic
	MMDynamic     = contracts.MMDynamic
	MMUserManaged = contracts.MMUserManaged
)
