// Package htgs is the public embedding surface of the Hybrid CPU+GPU
// Task-Graph Scheduler: everything a caller needs to author a task, wire
// it into a graph, and run that graph, re-exported from internal/* so a
// program outside this module never has to import an internal package
// (which the Go toolchain forbids anyway).
//
// A typical caller implements Task[T, U], registers it on a Graph with
// NewManager and AddEdge, Finalizes the graph, and drives it with a
// Runtime:
//
//	g := htgs.NewGraph[string, string]("pipeline")
//	src := htgs.NewManager[string, string]("upper", upperTask{}, 1)
//	g.AddTask(src)
//	htgs.SetGraphConsumerTask(g, src)
//	htgs.AddGraphProducerTask(g, src)
//	g.Finalize()
//
//	rt := htgs.NewRuntime(g.B.Tasks(), 0, 1)
//	rt.ExecuteGraph()
//	g.ProduceData("hello")
//	g.FinishedProducingData()
//	out, ok, _ := g.ConsumeData()
//	rt.WaitForRuntime(nil)
package htgs

import (
	"github.com/htgs-go/htgs/internal/task"
)

// Task is the unit of work a graph schedules: T is the type a replica
// consumes, U the type it produces. Implementations are copied once per
// extra thread/replica via Copy, so any mutable state a task keeps across
// calls must either be safe to duplicate or explicitly shared (e.g. a
// Bookkeeper's rules).
type Task[T, U any] = task.ITask[T, U]

// Handle is the narrow API ExecuteTask uses to produce output, look up
// its position within an enclosing ExecutionPipeline, reach named memory
// edges, and address another replica through a Communicator.
type Handle[T, U any] = task.Handle[T, U]

// Finisher is an optional Task extension invoked once a replica's input
// has terminated, before Shutdown, letting stateful tasks (e.g. a
// batching rule) flush pending output.
type Finisher = task.Finisher

// Finalizer is an optional Task extension invoked exactly once, on the
// last replica to exit, after every replica of a Manager has terminated.
type Finalizer = task.Finalizer

// PollingTask is an optional Task extension for a task that must wake on
// a fixed interval even absent input. A task implementing it has
// ExecuteTask invoked with the zero value of T on every MicroTimeout
// expiry in addition to on real data.
type PollingTask = task.PollingTask

// Manager owns one or more replica goroutines of a single Task[T, U],
// wired into a graph via AddTask and one of AddEdge/AddRuleEdge/
// AddMemoryManagerEdge.
type Manager[T, U any] = task.Manager[T, U]

// NewManager creates a Manager for t with the given replica count.
func NewManager[T, U any](name string, t Task[T, U], numThreads int) *Manager[T, U] {
	return task.NewManager[T, U](name, t, numThreads)
}
