package ctl

import (
	"testing"

	"github.com/htgs-go/htgs/config"
	"github.com/htgs-go/htgs/internal/runtime"
)

func TestAssembleRunsAThreeStageStringPipeline(t *testing.T) {
	cfg := &config.GraphConfig{Graph: config.Graph{
		Name:     "demo",
		Consumer: "a",
		Producer: "c",
		Tasks: []config.TaskConfig{
			{ID: "a", Kind: "trim"},
			{ID: "b", Kind: "upper"},
			{ID: "c", Kind: "reverse"},
		},
		Edges: []config.EdgeConfig{
			{From: "a", To: "b"},
			{From: "b", To: "c"},
		},
	}}

	g, err := Assemble(cfg, DefaultKinds())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	rt := runtime.New(g.B.Tasks(), 0, 1)
	if err := rt.ExecuteGraph(); err != nil {
		t.Fatalf("ExecuteGraph: %v", err)
	}

	if err := g.ProduceData("  hello "); err != nil {
		t.Fatalf("ProduceData: %v", err)
	}
	if err := g.FinishedProducingData(); err != nil {
		t.Fatalf("FinishedProducingData: %v", err)
	}

	got, ok, err := g.ConsumeData()
	if err != nil || !ok {
		t.Fatalf("ConsumeData: %v, %v, %v", got, ok, err)
	}
	if want := "OLLEH"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	rt.TerminateAll()
}

func TestAssembleRejectsUnknownKind(t *testing.T) {
	cfg := &config.GraphConfig{Graph: config.Graph{
		Name:     "demo",
		Consumer: "a",
		Producer: "a",
		Tasks:    []config.TaskConfig{{ID: "a", Kind: "does-not-exist"}},
	}}

	if _, err := Assemble(cfg, DefaultKinds()); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}
