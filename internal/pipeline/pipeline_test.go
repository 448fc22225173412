package pipeline

import (
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/htgs-go/htgs/internal/connector"
	"github.com/htgs-go/htgs/internal/graph"
	"github.com/htgs-go/htgs/internal/task"
)

type double struct{}

func (double) Initialize(int, int)                            {}
func (double) ExecuteTask(data int, h *task.Handle[int, int]) { h.AddResult(data * 2) }
func (double) Shutdown()                                      {}
func (double) Name() string                                   { return "double" }
func (double) Copy() task.ITask[int, int]                     { return double{} }

func newSingleTaskTemplate(t *testing.T, name string) *graph.TaskGraphConf[int, int] {
	t.Helper()
	g := graph.NewTaskGraphConf[int, int](name)
	m := task.NewManager[int, int]("double", double{}, 1)
	if err := g.AddTask(m); err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if err := graph.SetGraphConsumerTask[int, int, int](g, m); err != nil {
		t.Fatalf("SetGraphConsumerTask: %v", err)
	}
	if err := graph.AddGraphProducerTask[int, int, int](g, m); err != nil {
		t.Fatalf("AddGraphProducerTask: %v", err)
	}
	if err := g.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	return g
}

func runOuterManager(t *testing.T, it task.ITask[int, int], items []int) []int {
	t.Helper()
	m := task.NewManager[int, int]("outer", it, 1)

	in := connector.New[int]("outer-in")
	out := connector.New[int]("outer-out")
	in.AddProducers(1)
	out.AddProducers(1)
	m.SetInputConnector(in)
	m.SetOutputConnector(out)

	m.Initialize(0, 1)
	var wg sync.WaitGroup
	m.Start(&wg)

	var got []int
	var collectWG sync.WaitGroup
	collectWG.Add(1)
	go func() {
		defer collectWG.Done()
		for {
			v, ok := out.Consume()
			if !ok {
				return
			}
			got = append(got, v)
		}
	}()

	for _, v := range items {
		in.Produce(v)
	}
	in.ProducerFinished()

	wg.Wait()
	collectWG.Wait()
	return got
}

func TestExecutionPipelineBroadcastsToEveryReplica(t *testing.T) {
	template := newSingleTaskTemplate(t, "bcast")
	ep := New[int, int]("ep", template, 4)

	items := make([]int, 10)
	for i := range items {
		items[i] = i
	}
	got := runOuterManager(t, ep, items)

	if len(got) != 40 {
		t.Fatalf("expected 40 outputs from 4-way broadcast of 10 items, got %d", len(got))
	}
}

func TestExecutionPipelineInputRuleRoutesByModulo(t *testing.T) {
	const n = 4
	template := newSingleTaskTemplate(t, "mod")
	ep := New[int, int]("ep-mod", template, n)
	ep.AddInputRule(moduloRule{n: n})

	items := make([]int, 16)
	for i := range items {
		items[i] = i
	}
	got := runOuterManager(t, ep, items)
	if len(got) != 16 {
		t.Fatalf("expected 16 outputs total (each item routed to exactly one replica), got %d", len(got))
	}

	sort.Ints(got)
	want := make([]int, 16)
	for i := range want {
		want[i] = i * 2
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

type moduloRule struct{ n int }

func (r moduloRule) Accepts(data int, pipelineID, numPipelines int) bool {
	return data%r.n == pipelineID
}
func (r moduloRule) Copy() InputRule[int] { return r }

func TestExecutionPipelineShutsDownReplicasWithNoInput(t *testing.T) {
	const n = 3
	template := newSingleTaskTemplate(t, "ep-empty")
	ep := New[int, int]("ep-empty", template, n)

	got := runOuterManager(t, ep, nil)
	if len(got) != 0 {
		t.Fatalf("expected no output from a pipeline that received no input, got %v", got)
	}

	comm := ep.Communicator()
	if comm == nil || comm.Size() != n {
		t.Fatalf("expected replicas to be built and registered at Initialize even with no input, got comm=%v", comm)
	}
}

func TestExecutionPipelineCommunicatorRegistersEachReplicaByAddress(t *testing.T) {
	const n = 3
	template := newSingleTaskTemplate(t, "ep-comm")
	ep := New[int, int]("ep-comm", template, n)

	runOuterManager(t, ep, []int{1})

	comm := ep.Communicator()
	if comm == nil {
		t.Fatalf("expected Communicator to be populated after Initialize")
	}
	if comm.Size() != n {
		t.Fatalf("Communicator.Size() = %d, want %d", comm.Size(), n)
	}
	for i := 0; i < n; i++ {
		conn, ok := comm.Lookup(i, "ep-comm")
		if !ok {
			t.Fatalf("expected a connector registered for replica %d", i)
		}
		want := fmt.Sprintf("ep-comm-replica-%d-input", i)
		if conn.Name() != want {
			t.Fatalf("replica %d connector name = %q, want %q", i, conn.Name(), want)
		}
	}
}
