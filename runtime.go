package htgs

import "github.com/htgs-go/htgs/internal/runtime"

// Runtime drives the task managers registered in a Finalized Graph:
// spawning one goroutine per task-manager replica, waiting for them all
// to exit naturally, or forcing early termination.
type Runtime = runtime.TaskGraphRuntime

// NewRuntime creates a Runtime over tasks (typically g.B.Tasks() for some
// Graph g). pipelineID/numPipelines default to 0/1 outside of an
// ExecutionPipeline.
func NewRuntime(tasks []AnyTaskManager, pipelineID, numPipelines int) *Runtime {
	return runtime.New(tasks, pipelineID, numPipelines)
}
