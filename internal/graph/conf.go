package graph

import (
	"github.com/htgs-go/htgs/contracts"
	"github.com/htgs-go/htgs/internal/connector"
	"github.com/htgs-go/htgs/internal/task"
)

// TaskGraphConf is the typed front door onto a Builder: In is the type
// callers push in with ProduceData, Out is the type they pull out with
// ConsumeData. Construction is mutable (AddTask/edges); Finalize freezes
// it before TaskGraphRuntime ever starts a thread against it.
type TaskGraphConf[In, Out any] struct {
	B *Builder

	consumerConn *connector.Connector[In]
	producerConn *connector.Connector[Out]

	comm *contracts.Communicator
}

// NewTaskGraphConf creates an empty, mutable graph named name.
func NewTaskGraphConf[In, Out any](name string) *TaskGraphConf[In, Out] {
	return &TaskGraphConf[In, Out]{B: NewBuilder(name)}
}

func (g *TaskGraphConf[In, Out]) Name() string { return g.B.Name }

// AddTask registers m in the graph.
func (g *TaskGraphConf[In, Out]) AddTask(m contracts.AnyTaskManager) error {
	return g.B.AddTask(m)
}

// SetGraphConsumerTask designates m as the entry point for data this
// graph's caller produces with ProduceData. m's own output type U is free
// since only its input side (In) matters to the enclosing graph.
func SetGraphConsumerTask[In, Out, U any](g *TaskGraphConf[In, Out], m *task.Manager[In, U]) error {
	if err := g.B.SetGraphConsumer(m); err != nil {
		return err
	}
	typed, ok := m.InputConnector().(*connector.Connector[In])
	if !ok {
		typed = connector.New[In](g.B.Name + "-input")
		m.SetInputConnector(typed)
	}
	typed.AddProducers(1)
	g.consumerConn = typed

	g.B.consumerOp = func(nb *Builder, clone map[contracts.AnyTaskManager]contracts.AnyTaskManager) error {
		nm, ok := clone[m].(*task.Manager[In, U])
		if !ok {
			return contracts.ErrTaskNotInGraph
		}
		return SetGraphConsumerTask[In, Out, U](&TaskGraphConf[In, Out]{B: nb}, nm)
	}
	return nil
}

// AddGraphProducerTask designates m as the graph's own output source. m's
// own input type T is free since only its output side (Out) matters.
func AddGraphProducerTask[In, Out, T any](g *TaskGraphConf[In, Out], m *task.Manager[T, Out]) error {
	if err := g.B.SetGraphProducer(m); err != nil {
		return err
	}
	typed, ok := m.OutputConnector().(*connector.Connector[Out])
	if !ok {
		typed = connector.New[Out](g.B.Name + "-output")
		typed.AddProducers(m.NumThreads())
		m.SetOutputConnector(typed)
	}
	g.producerConn = typed

	g.B.producerOp = func(nb *Builder, clone map[contracts.AnyTaskManager]contracts.AnyTaskManager) error {
		nm, ok := clone[m].(*task.Manager[T, Out])
		if !ok {
			return contracts.ErrTaskNotInGraph
		}
		return AddGraphProducerTask[In, Out, T](&TaskGraphConf[In, Out]{B: nb}, nm)
	}
	return nil
}

// Finalize freezes the graph, rejecting any AddTask/edge call made
// afterward and detecting cycles among its registered tasks.
func (g *TaskGraphConf[In, Out]) Finalize() error {
	return g.B.Finalize()
}

// BindCommunicator registers this graph's designated consumer connector
// (its entry point) in c under (pipelineID, address), and hands c to
// every task in the graph so ExecuteTask can reach it through
// Handle.Communicator. ExecutionPipeline calls this once per replica it
// expands, sharing one Communicator instance across all of them so a
// task in one replica can address another by (pipelineID, address).
func (g *TaskGraphConf[In, Out]) BindCommunicator(c *contracts.Communicator, pipelineID int, address string) {
	g.comm = c
	if g.consumerConn != nil {
		c.Register(pipelineID, address, g.consumerConn)
	}
	for _, m := range g.B.Tasks() {
		m.SetCommunicator(c)
	}
}

// Communicator returns the Communicator this graph was bound to via
// BindCommunicator, or nil outside of an ExecutionPipeline.
func (g *TaskGraphConf[In, Out]) Communicator() *contracts.Communicator { return g.comm }

// ProduceData pushes data into the graph's designated consumer task. It
// is only valid to call before FinishedProducingData.
func (g *TaskGraphConf[In, Out]) ProduceData(data In) error {
	if g.consumerConn == nil {
		return contracts.ErrNoGraphConsumer
	}
	g.consumerConn.Produce(data)
	return nil
}

// FinishedProducingData signals that no more external data is coming into
// this graph, letting termination propagate through it.
func (g *TaskGraphConf[In, Out]) FinishedProducingData() error {
	if g.consumerConn == nil {
		return contracts.ErrNoGraphConsumer
	}
	g.consumerConn.ProducerFinished()
	return nil
}

// ConsumeData pulls one item from the graph's designated producer task,
// blocking until one is available or the graph's output has terminated.
func (g *TaskGraphConf[In, Out]) ConsumeData() (Out, bool, error) {
	if g.producerConn == nil {
		var zero Out
		return zero, false, contracts.ErrNoGraphProducer
	}
	v, ok := g.producerConn.Consume()
	return v, ok, nil
}

// IsOutputTerminated reports whether the graph's designated producer task
// has stopped producing and has nothing left buffered.
func (g *TaskGraphConf[In, Out]) IsOutputTerminated() bool {
	if g.producerConn == nil {
		return true
	}
	return g.producerConn.IsInputTerminated()
}

// Copy clones this graph's tasks and edges into a new, independent
// TaskGraphConf, used by ExecutionPipeline to build each replica.
func (g *TaskGraphConf[In, Out]) Copy(name string) (*TaskGraphConf[In, Out], error) {
	nb, err := g.B.Copy(name)
	if err != nil {
		return nil, err
	}
	ng := &TaskGraphConf[In, Out]{B: nb}
	if g.consumerConn != nil && nb.consumer != nil {
		ng.consumerConn, _ = nb.consumer.InputConnector().(*connector.Connector[In])
	}
	if g.producerConn != nil && nb.producer != nil {
		ng.producerConn, _ = nb.producer.OutputConnector().(*connector.Connector[Out])
	}
	return ng, nil
}
