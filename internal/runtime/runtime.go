// Package runtime owns the thread lifecycle of a finalized task graph:
// spawning one goroutine per task-manager replica, waiting for them all to
// exit naturally, or forcing early termination.
package runtime

import (
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/htgs-go/htgs/contracts"
)

// TaskGraphRuntime drives the task managers registered in a finalized
// graph.Builder without importing package graph itself, so it can equally
// well drive a bare slice of managers assembled by hand (e.g. in tests) -
// it only needs the contracts.AnyTaskManager view.
type TaskGraphRuntime struct {
	tasks        []contracts.AnyTaskManager
	pipelineID   int
	numPipelines int

	wg      sync.WaitGroup
	started bool
	mu      sync.Mutex
}

// New creates a runtime over tasks. pipelineID/numPipelines are forwarded
// to every task manager's Initialize, letting a runtime drive one replica
// of an ExecutionPipeline as easily as a standalone graph (both default to
// 0/1 outside of one).
func New(tasks []contracts.AnyTaskManager, pipelineID, numPipelines int) *TaskGraphRuntime {
	if numPipelines <= 0 {
		numPipelines = 1
	}
	return &TaskGraphRuntime{tasks: tasks, pipelineID: pipelineID, numPipelines: numPipelines}
}

// ExecuteGraph initializes and starts every task manager's replicas. It is
// an error to call it twice on the same runtime.
func (r *TaskGraphRuntime) ExecuteGraph() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return contracts.ErrRuntimeAlreadyStarted
	}
	r.started = true
	for _, t := range r.tasks {
		t.Initialize(r.pipelineID, r.numPipelines)
		t.Start(&r.wg)
	}
	return nil
}

// WaitForRuntime blocks until every task manager's replicas have exited
// naturally (their input connectors terminated and drained). errFn, if
// non-nil, is called once per task manager, each call in its own errgroup
// goroutine; WaitForRuntime then waits for every errFn call and every
// replica to return, and reports the first non-nil error errFn returned.
// An error does not end the wait early. Pass nil to do a plain join.
func (r *TaskGraphRuntime) WaitForRuntime(errFn func(contracts.AnyTaskManager) error) error {
	if errFn == nil {
		r.wg.Wait()
		return nil
	}

	var g errgroup.Group
	for _, t := range r.tasks {
		t := t
		g.Go(func() error {
			return errFn(t)
		})
	}
	err := g.Wait()
	r.wg.Wait()
	return err
}

// TerminateAll forces every task manager's input connector closed,
// unblocking any replica still waiting on empty input, then joins them.
func (r *TaskGraphRuntime) TerminateAll() {
	for _, t := range r.tasks {
		t.Terminate()
	}
	r.wg.Wait()
}

// IsFinished reports whether every task manager has fully terminated.
func (r *TaskGraphRuntime) IsFinished() bool {
	for _, t := range r.tasks {
		if !t.IsTerminated() {
			return false
		}
	}
	return true
}
