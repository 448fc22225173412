package task

import (
	"fmt"
	"time"

	"github.com/htgs-go/htgs/contracts"
)

// Handle is the narrow, synchronous API ExecuteTask uses to produce
// output and interact with named memory edges, without exposing the
// Manager's goroutine and connector plumbing.
type Handle[T, U any] struct {
	mgr *Manager[T, U]
}

// AddResult pushes data onto this task's output connector. It is safe to
// call zero, one, or many times per ExecuteTask invocation.
func (h *Handle[T, U]) AddResult(data U) {
	h.mgr.produce(data)
}

// PipelineID returns the replica's position within an enclosing
// ExecutionPipeline, or 0 outside of one.
func (h *Handle[T, U]) PipelineID() int { return h.mgr.pipelineID }

// NumPipelines returns the size of the enclosing ExecutionPipeline, or 1
// outside of one.
func (h *Handle[T, U]) NumPipelines() int {
	if h.mgr.numPipelines == 0 {
		return 1
	}
	return h.mgr.numPipelines
}

// Name returns the owning task manager's name, used for log/debug output.
func (h *Handle[T, U]) Name() string { return h.mgr.name }

// Communicator returns the Communicator shared across an enclosing
// ExecutionPipeline's replicas, or nil outside of one. A task uses it for
// out-of-band delivery: looking up another replica's registered
// connector by (pipelineId, address) and pushing directly into it via
// AnyConnector.ProduceAny, bypassing the normal producer/consumer edges.
func (h *Handle[T, U]) Communicator() *contracts.Communicator { return h.mgr.comm }

// RequestMemory pulls one item from the named memory edge, blocking until
// the memory manager has a free slot. Callers type-assert the result to
// the concrete *memory.Data[M] they requested; a mismatched type
// assertion indicates the edge name was wired to the wrong payload type.
func (h *Handle[T, U]) RequestMemory(managerName string) (any, error) {
	conn, ok := h.mgr.memoryIn[managerName]
	if !ok {
		return nil, fmt.Errorf("%s: %w", managerName, contracts.ErrUnknownMemoryEdge)
	}
	waitStart := time.Now()
	v, ok := conn.ConsumeAny()
	if h.mgr.profiler != nil {
		h.mgr.profiler.RecordMemoryWait(h.mgr.name, time.Since(waitStart))
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", managerName, contracts.ErrGraphFinalized)
	}
	return v, nil
}

// ReleaseMemory returns a piece of memory to the named edge, either back
// into the graph's own memory manager or out to an edge routed outside the
// graph, per the memory edge's configured destination.
func (h *Handle[T, U]) ReleaseMemory(managerName string, data any) error {
	conn, ok := h.mgr.memoryOut[managerName]
	if !ok {
		return fmt.Errorf("%s: %w", managerName, contracts.ErrUnknownMemoryEdge)
	}
	conn.ProduceAny(data)
	return nil
}
