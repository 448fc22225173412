package graph

import (
	"fmt"
	"sync"

	"github.com/htgs-go/htgs/internal/task"
)

// graphTask wraps a finalized TaskGraphConf so it can be plugged into an
// outer graph as a single ITask[In, Out] node, the Go analogue of the
// original library's TGTask: AddEdge/AddRuleEdge/SetGraphConsumerTask/
// AddGraphProducerTask treat it exactly like any other task, unaware that
// ExecuteTask is actually driving an independent inner graph's own task
// managers.
type graphTask[In, Out any] struct {
	name     string
	template *TaskGraphConf[In, Out]

	inner    *TaskGraphConf[In, Out]
	tasksWG  sync.WaitGroup
	buildErr error

	drainOnce sync.Once
	drainWG   sync.WaitGroup

	pipelineID   int
	numPipelines int
}

// AsTask wraps g as an ITask[In, Out] usable as a node of an outer graph,
// e.g. SetGraphConsumerTask(outer, innerAsManager) or AddEdge(outer.B, x,
// innerAsManager). g must already be Finalized. Each AsTask call produces
// an independent wrapper; Copy further clones the underlying graph, so the
// same template can be wrapped more than once (including nested inside an
// ExecutionPipeline).
func (g *TaskGraphConf[In, Out]) AsTask(name string) task.ITask[In, Out] {
	return &graphTask[In, Out]{name: name, template: g}
}

// Initialize eagerly clones the template graph and starts every one of its
// task managers, mirroring TGTask::initialize launching the wrapped
// TaskGraphRuntime up front rather than waiting for the first item.
func (t *graphTask[In, Out]) Initialize(pipelineID, numPipelines int) {
	t.pipelineID = pipelineID
	t.numPipelines = numPipelines

	inner, err := t.template.Copy(fmt.Sprintf("%s-inner", t.name))
	if err != nil {
		t.buildErr = fmt.Errorf("graph task %s: build inner graph: %w", t.name, err)
		return
	}
	for _, m := range inner.B.Tasks() {
		m.Initialize(pipelineID, numPipelines)
		m.Start(&t.tasksWG)
	}
	t.inner = inner
}

func (t *graphTask[In, Out]) startDrain(handle *task.Handle[In, Out]) {
	t.drainOnce.Do(func() {
		t.drainWG.Add(1)
		go func() {
			defer t.drainWG.Done()
			for {
				v, ok, err := t.inner.ConsumeData()
				if err != nil || !ok {
					return
				}
				handle.AddResult(v)
			}
		}()
	})
}

func (t *graphTask[In, Out]) ExecuteTask(data In, handle *task.Handle[In, Out]) {
	if t.buildErr != nil {
		return
	}
	t.startDrain(handle)
	_ = t.inner.ProduceData(data)
}

// Shutdown signals the inner graph's consumer that no more data is coming
// and joins its task-manager and drain goroutines, mirroring TGTask's
// shutdown waiting on its owned TaskGraphRuntime.
func (t *graphTask[In, Out]) Shutdown() {
	if t.buildErr != nil {
		return
	}
	_ = t.inner.FinishedProducingData()
	t.tasksWG.Wait()
	t.drainWG.Wait()
}

func (t *graphTask[In, Out]) Name() string { return t.name }

func (t *graphTask[In, Out]) Copy() task.ITask[In, Out] {
	return &graphTask[In, Out]{name: t.name, template: t.template}
}

var _ task.ITask[int, int] = (*graphTask[int, int])(nil)
