// Package pipeline implements ExecutionPipeline, the task that owns N
// independent deep copies of a graph and routes each incoming item to
// whichever replicas its input rules select.
package pipeline

import (
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/htgs-go/htgs/contracts"
	"github.com/htgs-go/htgs/internal/graph"
	"github.com/htgs-go/htgs/internal/task"
)

// InputRule decides whether one input record should be forwarded to a
// given replica of an ExecutionPipeline. All attached rules must agree for
// a record to reach a replica.
type InputRule[In any] interface {
	// Accepts reports whether data should be forwarded to the replica at
	// pipelineID out of numPipelines total replicas.
	Accepts(data In, pipelineID, numPipelines int) bool

	// Copy returns a new rule instance, used when an ExecutionPipeline
	// itself is cloned (e.g. nested inside another ExecutionPipeline).
	Copy() InputRule[In]
}

// BroadcastRule is the default input rule: it forwards every record to
// every replica.
type BroadcastRule[In any] struct{}

func (BroadcastRule[In]) Accepts(In, int, int) bool { return true }
func (BroadcastRule[In]) Copy() InputRule[In]       { return BroadcastRule[In]{} }

// ExecutionPipeline is itself a task.ITask[In, Out]: an enclosing graph
// wires it in exactly like any other task, unaware that ExecuteTask
// actually fans out to N independent replica graphs rather than doing the
// work itself.
type ExecutionPipeline[In, Out any] struct {
	name         string
	numPipelines int
	template     *graph.TaskGraphConf[In, Out]
	rules        []InputRule[In]

	replicas []*graph.TaskGraphConf[In, Out]
	comm     *contracts.Communicator
	buildErr error
	tasksWG  sync.WaitGroup

	drainOnce sync.Once
	drainWG   sync.WaitGroup

	pipelineID   int
	outerNumPipe int
}

// New builds an ExecutionPipeline that will expand template into
// numPipelines independent replicas at Initialize. template must already be
// finalized; each replica is produced via template.Copy at that point,
// mirroring ExecutionPipeline::addGraph in the original library.
func New[In, Out any](name string, template *graph.TaskGraphConf[In, Out], numPipelines int) *ExecutionPipeline[In, Out] {
	return &ExecutionPipeline[In, Out]{
		name:         name,
		numPipelines: numPipelines,
		template:     template,
	}
}

// AddInputRule attaches a routing rule. With no rules attached, every
// record is broadcast to every replica.
func (p *ExecutionPipeline[In, Out]) AddInputRule(r InputRule[In]) *ExecutionPipeline[In, Out] {
	p.rules = append(p.rules, r)
	return p
}

func (p *ExecutionPipeline[In, Out]) accepts(data In, replicaID int) bool {
	for _, r := range p.rules {
		if !r.Accepts(data, replicaID, p.numPipelines) {
			return false
		}
	}
	return true
}

// Initialize eagerly builds the N replica graphs, binds the shared
// Communicator and starts every replica's task-manager goroutines, mirroring
// ExecutionPipeline::initialize spawning every replica's threads up front in
// the original library rather than waiting for the first unit of data.
func (p *ExecutionPipeline[In, Out]) Initialize(pipelineID, numPipelines int) {
	p.pipelineID = pipelineID
	p.outerNumPipe = numPipelines

	p.comm = contracts.NewCommunicator()
	p.replicas = make([]*graph.TaskGraphConf[In, Out], p.numPipelines)
	for i := 0; i < p.numPipelines; i++ {
		rep, err := p.template.Copy(fmt.Sprintf("%s-replica-%d", p.name, i))
		if err != nil {
			p.buildErr = fmt.Errorf("execution pipeline %s: build replica %d: %w", p.name, i, err)
			return
		}
		rep.BindCommunicator(p.comm, i, p.name)
		for _, m := range rep.B.Tasks() {
			m.Initialize(i, p.numPipelines)
			m.Start(&p.tasksWG)
		}
		p.replicas[i] = rep
	}
}

// startDrain launches one goroutine per replica forwarding its output onto
// handle. It runs lazily on the first ExecuteTask call because a Handle -
// unlike replica construction - only exists once the enclosing Manager
// starts delivering data; replica construction and startup already happened
// eagerly in Initialize.
func (p *ExecutionPipeline[In, Out]) startDrain(handle *task.Handle[In, Out]) {
	p.drainOnce.Do(func() {
		for _, rep := range p.replicas {
			p.drainWG.Add(1)
			go func(rep *graph.TaskGraphConf[In, Out]) {
				defer p.drainWG.Done()
				for {
					v, ok, err := rep.ConsumeData()
					if err != nil || !ok {
						return
					}
					handle.AddResult(v)
				}
			}(rep)
		}
	})
}

func (p *ExecutionPipeline[In, Out]) ExecuteTask(data In, handle *task.Handle[In, Out]) {
	if p.buildErr != nil {
		return
	}
	p.startDrain(handle)
	for i, rep := range p.replicas {
		if p.accepts(data, i) {
			_ = rep.ProduceData(data)
		}
	}
}

// Shutdown signals every replica that no more data is coming, then joins
// their task-manager goroutines and drain goroutines in parallel via
// errgroup - the Go analogue of ExecutionPipeline::shutdown's
// thread-per-replica join in the original library. Since Initialize always
// builds the replicas eagerly, this runs even for a pipeline that never
// received a single input item.
func (p *ExecutionPipeline[In, Out]) Shutdown() {
	if p.buildErr != nil {
		return
	}
	var g errgroup.Group
	for _, rep := range p.replicas {
		rep := rep
		g.Go(func() error {
			return rep.FinishedProducingData()
		})
	}
	_ = g.Wait()

	p.tasksWG.Wait()
	p.drainWG.Wait()
}

func (p *ExecutionPipeline[In, Out]) Name() string { return p.name }

// Communicator returns the Communicator shared across this pipeline's
// replicas, populated once Initialize has run.
func (p *ExecutionPipeline[In, Out]) Communicator() *contracts.Communicator { return p.comm }

func (p *ExecutionPipeline[In, Out]) Copy() task.ITask[In, Out] {
	clone := New(p.name, p.template, p.numPipelines)
	for _, r := range p.rules {
		clone.rules = append(clone.rules, r.Copy())
	}
	return clone
}

var _ task.ITask[int, int] = (*ExecutionPipeline[int, int])(nil)
