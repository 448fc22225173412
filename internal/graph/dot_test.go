package graph

import (
	"strings"
	"testing"

	"github.com/htgs-go/htgs/contracts"
	"github.com/htgs-go/htgs/internal/memory"
	"github.com/htgs-go/htgs/internal/task"
)

type byteAllocator struct{}

func (byteAllocator) AllocatePayload(numElements int) []byte { return make([]byte, numElements) }
func (byteAllocator) Free(payload []byte)                    {}

func newMemoryWiredGraph(t *testing.T) *Builder {
	t.Helper()

	g := NewTaskGraphConf[int, int]("mem-graph")
	getter := task.NewManager[int, int]("getter", &add1{name: "getter"}, 1)
	mm := task.NewManager[*memory.Data[[]byte], *memory.Data[[]byte]](
		"pool", memory.NewManager[[]byte]("pool", 2, byteAllocator{}, contracts.MMStatic), 1)

	if err := g.AddTask(getter); err != nil {
		t.Fatalf("AddTask getter: %v", err)
	}
	if err := g.AddTask(mm); err != nil {
		t.Fatalf("AddTask mm: %v", err)
	}
	if err := AddMemoryManagerEdge[[]byte](g.B, "pool", getter, mm); err != nil {
		t.Fatalf("AddMemoryManagerEdge: %v", err)
	}
	if err := SetGraphConsumerTask[int, int, int](g, getter); err != nil {
		t.Fatalf("SetGraphConsumerTask: %v", err)
	}
	if err := AddGraphProducerTask[int, int, int](g, getter); err != nil {
		t.Fatalf("AddGraphProducerTask: %v", err)
	}
	return g.B
}

func TestRenderDotHideMemEdgesOmitsMemoryConnectors(t *testing.T) {
	b := newMemoryWiredGraph(t)

	withMem := b.RenderDot(contracts.DotGenFlagNone)
	if !strings.Contains(withMem, "pool-request") || !strings.Contains(withMem, "pool-release") {
		t.Fatalf("expected memory edges to be rendered by default, got:\n%s", withMem)
	}

	hidden := b.RenderDot(contracts.DotGenFlagHideMemEdges)
	if strings.Contains(hidden, "pool-request") || strings.Contains(hidden, "pool-release") {
		t.Fatalf("expected DotGenFlagHideMemEdges to omit memory edges, got:\n%s", hidden)
	}
}

func TestRenderDotColorPipelinesSetsFillColor(t *testing.T) {
	mA := task.NewManager[int, int]("A", &add1{name: "A"}, 1)
	mA.Initialize(2, 4)

	g := NewTaskGraphConf[int, int]("colored")
	if err := g.AddTask(mA); err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if err := SetGraphConsumerTask[int, int, int](g, mA); err != nil {
		t.Fatalf("SetGraphConsumerTask: %v", err)
	}
	if err := AddGraphProducerTask[int, int, int](g, mA); err != nil {
		t.Fatalf("AddGraphProducerTask: %v", err)
	}

	plain := g.B.RenderDot(contracts.DotGenFlagNone)
	if strings.Contains(plain, "fillcolor") {
		t.Fatalf("expected no fillcolor without DotGenFlagColorPipelines, got:\n%s", plain)
	}

	colored := g.B.RenderDot(contracts.DotGenFlagColorPipelines)
	if !strings.Contains(colored, "fillcolor") {
		t.Fatalf("expected DotGenFlagColorPipelines to set fillcolor, got:\n%s", colored)
	}
}
