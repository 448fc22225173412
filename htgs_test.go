package htgs_test

import (
	"testing"

	"github.com/htgs-go/htgs"
)

type addOne struct{ name string }

func (a *addOne) Initialize(int, int)                            {}
func (a *addOne) ExecuteTask(data int, h *htgs.Handle[int, int]) { h.AddResult(data + 1) }
func (a *addOne) Shutdown()                                      {}
func (a *addOne) Name() string                                   { return a.name }
func (a *addOne) Copy() htgs.Task[int, int]                      { return &addOne{name: a.name} }

// TestEmbeddingAPIBuildsAndRunsAGraph exercises the package exactly as an
// external program would: it never imports anything under internal/.
func TestEmbeddingAPIBuildsAndRunsAGraph(t *testing.T) {
	g := htgs.NewGraph[int, int]("linear")

	mA := htgs.NewManager[int, int]("A", &addOne{name: "A"}, 1)
	mB := htgs.NewManager[int, int]("B", &addOne{name: "B"}, 1)

	if err := g.AddTask(mA); err != nil {
		t.Fatalf("AddTask A: %v", err)
	}
	if err := g.AddTask(mB); err != nil {
		t.Fatalf("AddTask B: %v", err)
	}
	if err := htgs.AddEdge[int, int, int](g.B, mA, mB); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if err := htgs.SetGraphConsumerTask[int, int, int](g, mA); err != nil {
		t.Fatalf("SetGraphConsumerTask: %v", err)
	}
	if err := htgs.AddGraphProducerTask[int, int, int](g, mB); err != nil {
		t.Fatalf("AddGraphProducerTask: %v", err)
	}
	if err := g.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	rt := htgs.NewRuntime(g.B.Tasks(), 0, 1)
	if err := rt.ExecuteGraph(); err != nil {
		t.Fatalf("ExecuteGraph: %v", err)
	}

	if err := g.ProduceData(5); err != nil {
		t.Fatalf("ProduceData: %v", err)
	}
	if err := g.FinishedProducingData(); err != nil {
		t.Fatalf("FinishedProducingData: %v", err)
	}

	v, ok, err := g.ConsumeData()
	if err != nil || !ok || v != 7 {
		t.Fatalf("ConsumeData() = %d, %v, %v; want 7, true, nil", v, ok, err)
	}

	if err := rt.WaitForRuntime(nil); err != nil {
		t.Fatalf("WaitForRuntime: %v", err)
	}
}
