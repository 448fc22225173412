package graph

import (
	"fmt"

	"github.com/htgs-go/htgs/contracts"
	"github.com/htgs-go/htgs/internal/connector"
	"github.com/htgs-go/htgs/internal/memory"
	"github.com/htgs-go/htgs/internal/rules"
	"github.com/htgs-go/htgs/internal/task"
)

// AddEdge connects producer's output to consumer's input with a shared
// Connector[U]. If producer already has an output connector (a previous
// AddEdge attached a different consumer to it), that connector is reused
// so both consumers pull from the same queue rather than each getting
// their own copy of producer's output. Symmetrically, if consumer already
// has an input connector from a different producer, that one is reused
// instead, modeling fan-in. The two can only be reconciled when they agree
// or at most one side already has a connector; genuinely conflicting
// reuse (both sides already wired to two different connectors) is
// rejected.
func AddEdge[T, U, W any](b *Builder, producer *task.Manager[T, U], consumer *task.Manager[U, W]) error {
	if err := b.checkMutable(); err != nil {
		return err
	}
	if !b.contains(producer) {
		return fmt.Errorf("producer %s: %w", producer.Name(), contracts.ErrTaskNotInGraph)
	}
	if !b.contains(consumer) {
		return fmt.Errorf("consumer %s: %w", consumer.Name(), contracts.ErrTaskNotInGraph)
	}

	conn, isNew, err := reconcileConnector[U](producer.OutputConnector(), consumer.InputConnector(), producer.Name()+"->"+consumer.Name())
	if err != nil {
		return err
	}
	if isNew {
		conn.AddProducers(producer.NumThreads())
	}
	producer.SetOutputConnector(conn)
	consumer.SetInputConnector(conn)

	b.edges = append(b.edges, func(nb *Builder, clone map[contracts.AnyTaskManager]contracts.AnyTaskManager) error {
		np, ok := clone[producer].(*task.Manager[T, U])
		if !ok {
			return fmt.Errorf("clone producer %s: %w", producer.Name(), contracts.ErrTaskNotInGraph)
		}
		nc, ok := clone[consumer].(*task.Manager[U, W])
		if !ok {
			return fmt.Errorf("clone consumer %s: %w", consumer.Name(), contracts.ErrTaskNotInGraph)
		}
		return AddEdge[T, U, W](nb, np, nc)
	})
	return nil
}

// reconcileConnector picks the connector an edge should use given what's
// already bound on each side.
func reconcileConnector[U any](producerSide, consumerSide contracts.AnyConnector, name string) (*connector.Connector[U], bool, error) {
	switch {
	case producerSide == nil && consumerSide == nil:
		return connector.New[U](name), true, nil
	case producerSide != nil && consumerSide == nil:
		c, ok := producerSide.(*connector.Connector[U])
		if !ok {
			return nil, false, fmt.Errorf("edge %s: %w", name, contracts.ErrInvalidInput)
		}
		return c, false, nil
	case producerSide == nil && consumerSide != nil:
		c, ok := consumerSide.(*connector.Connector[U])
		if !ok {
			return nil, false, fmt.Errorf("edge %s: %w", name, contracts.ErrInvalidInput)
		}
		return c, false, nil
	default:
		if producerSide != consumerSide {
			return nil, false, fmt.Errorf("edge %s: producer and consumer already bound to different connectors: %w", name, contracts.ErrInvalidInput)
		}
		c, ok := producerSide.(*connector.Connector[U])
		if !ok {
			return nil, false, fmt.Errorf("edge %s: %w", name, contracts.ErrInvalidInput)
		}
		return c, false, nil
	}
}

// AddRuleEdge attaches rule to bookkeeperMgr's underlying Bookkeeper[T],
// feeding consumer's input connector. If consumer already has an input
// connector (from an earlier edge or rule), the rule produces into that
// one; otherwise a new connector is created. Either way the rule is
// registered as one more producer on it, so each rule's own termination
// counts down the consumer's input independently.
//
// useLocks controls what an ExecutionPipeline replica of this edge gets:
// when false (the common case), each replica's Bookkeeper gets its own
// independent copy of rule, with no state shared across replicas. When
// true, every replica shares this exact rule instance, guarded by a single
// mutex, so state one replica's data accumulates in the rule is visible to
// the decision made for the next replica's data - the original library's
// "rule serialization" mode.
func AddRuleEdge[T, U, W any](b *Builder, bookkeeperMgr *task.Manager[T, contracts.NoData], rule rules.IRule[T, U], consumer *task.Manager[U, W], useLocks bool) error {
	if err := b.checkMutable(); err != nil {
		return err
	}
	if !b.contains(bookkeeperMgr) {
		return fmt.Errorf("bookkeeper %s: %w", bookkeeperMgr.Name(), contracts.ErrTaskNotInGraph)
	}
	if !b.contains(consumer) {
		return fmt.Errorf("consumer %s: %w", consumer.Name(), contracts.ErrTaskNotInGraph)
	}
	bk, ok := bookkeeperMgr.Underlying().(*rules.Bookkeeper[T])
	if !ok {
		return fmt.Errorf("%s is not a bookkeeper: %w", bookkeeperMgr.Name(), contracts.ErrInvalidInput)
	}

	conn, _, err := reconcileConnector[U](nil, consumer.InputConnector(), rule.Name()+"->"+consumer.Name())
	if err != nil {
		return err
	}
	conn.AddProducers(1)
	consumer.SetInputConnector(conn)
	rs := rules.NewRuleScheduler[T, U](rule, conn, useLocks)
	bk.AddRule(rs)

	b.edges = append(b.edges, func(nb *Builder, clone map[contracts.AnyTaskManager]contracts.AnyTaskManager) error {
		nbk, ok := clone[bookkeeperMgr].(*task.Manager[T, contracts.NoData])
		if !ok {
			return fmt.Errorf("clone bookkeeper %s: %w", bookkeeperMgr.Name(), contracts.ErrTaskNotInGraph)
		}
		nc, ok := clone[consumer].(*task.Manager[U, W])
		if !ok {
			return fmt.Errorf("clone consumer %s: %w", consumer.Name(), contracts.ErrTaskNotInGraph)
		}
		newBk, ok := nbk.Underlying().(*rules.Bookkeeper[T])
		if !ok {
			return fmt.Errorf("%s is not a bookkeeper: %w", nbk.Name(), contracts.ErrInvalidInput)
		}

		nconn, _, err := reconcileConnector[U](nil, nc.InputConnector(), rule.Name()+"->"+nc.Name())
		if err != nil {
			return err
		}
		nconn.AddProducers(1)
		nc.SetInputConnector(nconn)

		var nrs *rules.RuleScheduler[T, U]
		if useLocks {
			nrs = rs.Copy(true, nconn)
		} else {
			nrs = rules.NewRuleScheduler[T, U](rule.Copy(), nconn, false)
		}
		newBk.AddRule(nrs)
		return nil
	})
	return nil
}

// AddMemoryManagerEdge wires a named memory edge: mm's output becomes the
// request connector getter pulls from via Handle.RequestMemory(name), and
// mm's input becomes the release connector getter (and any task later
// bound with BindExternalRelease) pushes spent memory back into via
// Handle.ReleaseMemory(name, ...).
func AddMemoryManagerEdge[M any](b *Builder, name string, getter contracts.AnyTaskManager, mm *task.Manager[*memory.Data[M], *memory.Data[M]]) error {
	if err := b.checkMutable(); err != nil {
		return err
	}
	if !b.contains(getter) {
		return fmt.Errorf("memory getter %s: %w", getter.Name(), contracts.ErrTaskNotInGraph)
	}
	if !b.contains(mm) {
		return fmt.Errorf("memory manager %s: %w", mm.Name(), contracts.ErrTaskNotInGraph)
	}
	b.mu.Lock()
	if b.memNames[name] {
		b.mu.Unlock()
		return fmt.Errorf("%s: %w", name, contracts.ErrDuplicateMemEdge)
	}
	b.memNames[name] = true
	b.mu.Unlock()

	reqConn := connector.New[*memory.Data[M]](name + "-request")
	relConn := connector.New[*memory.Data[M]](name + "-release")
	reqConn.AddProducers(1)
	relConn.AddProducers(getter.NumThreads())

	mm.SetInputConnector(relConn)
	mm.SetOutputConnector(reqConn)
	mm.StartsImmediately(true)

	getter.BindMemoryIn(name, reqConn)
	getter.BindMemoryOut(name, relConn)

	b.mu.Lock()
	b.memRel[name] = relConn
	b.mu.Unlock()

	b.edges = append(b.edges, func(nb *Builder, clone map[contracts.AnyTaskManager]contracts.AnyTaskManager) error {
		ng, ok := clone[getter]
		if !ok {
			return fmt.Errorf("clone memory getter %s: %w", getter.Name(), contracts.ErrTaskNotInGraph)
		}
		nmm, ok := clone[mm].(*task.Manager[*memory.Data[M], *memory.Data[M]])
		if !ok {
			return fmt.Errorf("clone memory manager %s: %w", mm.Name(), contracts.ErrTaskNotInGraph)
		}
		return AddMemoryManagerEdge[M](nb, name, ng, nmm)
	})
	return nil
}

// BindExternalRelease routes a task outside the memory manager's usual
// getter/releaser pair into the same named release edge, so memory
// acquired by one task in the graph can be released by a different task
// downstream - the "outside graph" release pattern.
func BindExternalRelease(b *Builder, name string, releaser contracts.AnyTaskManager) error {
	if err := b.checkMutable(); err != nil {
		return err
	}
	b.mu.RLock()
	conn, ok := b.memRel[name]
	b.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%s: %w", name, contracts.ErrUnknownMemoryEdge)
	}
	releaser.BindMemoryOut(name, conn)
	return nil
}
