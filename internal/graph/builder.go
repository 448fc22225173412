// Package graph implements declarative task-graph assembly: TaskGraphConf
// collects tasks and edges while mutable, Finalize freezes it, and Copy
// replays the same edges against freshly cloned tasks to produce an
// independent, structurally identical graph - the mechanism
// ExecutionPipeline uses to replicate a graph N ways.
package graph

import (
	"fmt"
	"sync"

	"github.com/htgs-go/htgs/contracts"
)

// edgeOp replays one edge's wiring against a graph built from cloned
// tasks. clone maps each original task manager registered in the source
// graph to its counterpart in the new one.
type edgeOp func(nb *Builder, clone map[contracts.AnyTaskManager]contracts.AnyTaskManager) error

// Builder is the non-generic bookkeeping core shared by every
// TaskGraphConf[In, Out] instantiation: the task registry, the recorded
// edge operations needed to replay this graph's wiring elsewhere, and the
// two tasks (if any) designated to receive/produce the graph's own
// external input/output.
type Builder struct {
	Name string

	mu       sync.RWMutex
	tasks    []contracts.AnyTaskManager
	present  map[contracts.AnyTaskManager]bool
	memNames map[string]bool
	memRel   map[string]contracts.AnyConnector
	edges    []edgeOp

	consumer contracts.AnyTaskManager
	producer contracts.AnyTaskManager

	// consumerOp/producerOp replay SetGraphConsumerTask/AddGraphProducerTask
	// against a cloned graph's tasks during Copy. They are set by those
	// generic functions (package graph, conf.go) rather than by Builder
	// itself, since only the caller knows the consumer/producer's real
	// output/input type parameter.
	consumerOp func(nb *Builder, clone map[contracts.AnyTaskManager]contracts.AnyTaskManager) error
	producerOp func(nb *Builder, clone map[contracts.AnyTaskManager]contracts.AnyTaskManager) error

	finalized bool
}

// NewBuilder creates an empty, unfinalized graph named name.
func NewBuilder(name string) *Builder {
	return &Builder{
		Name:     name,
		present:  make(map[contracts.AnyTaskManager]bool),
		memNames: make(map[string]bool),
		memRel:   make(map[string]contracts.AnyConnector),
	}
}

// AddTask registers a task manager in the graph. It must be called before
// any edge referencing it.
func (b *Builder) AddTask(m contracts.AnyTaskManager) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.finalized {
		return contracts.ErrGraphFinalized
	}
	if b.present[m] {
		return nil
	}
	if m.NumThreads() < 1 {
		return fmt.Errorf("%s: %w", m.Name(), contracts.ErrInvalidNumThreads)
	}
	b.present[m] = true
	b.tasks = append(b.tasks, m)
	return nil
}

func (b *Builder) contains(m contracts.AnyTaskManager) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.present[m]
}

func (b *Builder) checkMutable() error {
	if b.finalized {
		return contracts.ErrGraphFinalized
	}
	return nil
}

// Tasks returns every registered task manager, in registration order.
func (b *Builder) Tasks() []contracts.AnyTaskManager {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]contracts.AnyTaskManager, len(b.tasks))
	copy(out, b.tasks)
	return out
}

// SetGraphConsumer designates m as the task that receives data produced
// into the graph from outside (via TaskGraphConf.ProduceData).
func (b *Builder) SetGraphConsumer(m contracts.AnyTaskManager) error {
	if !b.contains(m) {
		return fmt.Errorf("graph consumer: %w", contracts.ErrTaskNotInGraph)
	}
	b.mu.Lock()
	b.consumer = m
	b.mu.Unlock()
	return nil
}

// SetGraphProducer designates m as the task whose output is exposed to
// callers outside the graph (via TaskGraphConf.ConsumeData).
func (b *Builder) SetGraphProducer(m contracts.AnyTaskManager) error {
	if !b.contains(m) {
		return fmt.Errorf("graph producer: %w", contracts.ErrTaskNotInGraph)
	}
	b.mu.Lock()
	b.producer = m
	b.mu.Unlock()
	return nil
}

// Finalize freezes the graph against further AddTask/edge calls. It
// detects cycles among registered tasks using the connector graph implied
// by the edges applied so far - the same white/gray/black DFS coloring the
// teacher's dependency resolver uses for its DAG.
func (b *Builder) Finalize() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.finalized {
		return contracts.ErrGraphFinalized
	}
	if err := detectCycle(b.tasks); err != nil {
		return err
	}
	b.finalized = true
	return nil
}

func (b *Builder) IsFinalized() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.finalized
}

// color marks used by detectCycle's DFS.
type color int

const (
	white color = iota
	gray
	black
)

// detectCycle walks the graph formed by each task's output connector
// pointing at whichever tasks share it as their input connector. Because
// connectors, not an explicit adjacency list, carry the edges, adjacency
// is recovered by matching each task's output AnyConnector against every
// other task's input AnyConnector.
func detectCycle(tasks []contracts.AnyTaskManager) error {
	adj := make(map[contracts.AnyTaskManager][]contracts.AnyTaskManager, len(tasks))
	for _, t := range tasks {
		out := t.OutputConnector()
		if out == nil {
			continue
		}
		for _, u := range tasks {
			if u == t {
				continue
			}
			if in := u.InputConnector(); in != nil && in == out {
				adj[t] = append(adj[t], u)
			}
		}
	}

	colors := make(map[contracts.AnyTaskManager]color, len(tasks))
	var visit func(t contracts.AnyTaskManager) error
	visit = func(t contracts.AnyTaskManager) error {
		colors[t] = gray
		for _, n := range adj[t] {
			switch colors[n] {
			case gray:
				return fmt.Errorf("%s -> %s: %w", t.Name(), n.Name(), contracts.ErrGraphCycle)
			case white:
				if err := visit(n); err != nil {
					return err
				}
			}
		}
		colors[t] = black
		return nil
	}

	for _, t := range tasks {
		if colors[t] == white {
			if err := visit(t); err != nil {
				return err
			}
		}
	}
	return nil
}

// Copy clones every registered task manager (deep, so each gets its own
// ITask instance) and replays every recorded edge against the clones,
// producing a structurally identical, independent graph. It is the
// primitive ExecutionPipeline uses to replicate a graph N ways.
func (b *Builder) Copy(name string) (*Builder, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	nb := NewBuilder(name)
	clone := make(map[contracts.AnyTaskManager]contracts.AnyTaskManager, len(b.tasks))
	for _, t := range b.tasks {
		c := t.Copy(true)
		clone[t] = c
		if err := nb.AddTask(c); err != nil {
			return nil, err
		}
	}
	for _, op := range b.edges {
		if err := op(nb, clone); err != nil {
			return nil, err
		}
	}
	if b.consumerOp != nil {
		if err := b.consumerOp(nb, clone); err != nil {
			return nil, err
		}
	}
	if b.producerOp != nil {
		if err := b.producerOp(nb, clone); err != nil {
			return nil, err
		}
	}
	return nb, nil
}
