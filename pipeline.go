package htgs

import (
	"github.com/htgs-go/htgs/internal/pipeline"
)

// InputRule decides whether one input record should be forwarded to a
// given replica of an ExecutionPipeline. All attached rules must agree
// for a record to reach a replica.
type InputRule[In any] = pipeline.InputRule[In]

// BroadcastRule is the default input rule: it forwards every record to
// every replica.
type BroadcastRule[In any] = pipeline.BroadcastRule[In]

// ExecutionPipeline is itself a Task[In, Out]: wiring it into an
// enclosing Graph like any other task actually fans out to numPipelines
// independent deep copies of template, routing each incoming item to
// whichever replicas its input rules select.
type ExecutionPipeline[In, Out any] = pipeline.ExecutionPipeline[In, Out]

// NewExecutionPipeline builds an ExecutionPipeline that expands template
// into numPipelines independent replicas when the enclosing graph
// initializes it. template must already be Finalized.
func NewExecutionPipeline[In, Out any](name string, template *Graph[In, Out], numPipelines int) *ExecutionPipeline[In, Out] {
	return pipeline.New[In, Out](name, template, numPipelines)
}
