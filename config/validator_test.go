package config

import (
	"errors"
	"testing"
)

func TestValidator_NilConfig(t *testing.T) {
	v := NewValidator(nil)
	err := v.Validate(nil)
	if !errors.Is(err, ErrConfigEmpty) {
		t.Fatalf("expected ErrConfigEmpty, got %v", err)
	}
}

func TestValidator_GraphNameEmpty(t *testing.T) {
	v := NewValidator(nil)
	cfg := &GraphConfig{Graph: Graph{Tasks: []TaskConfig{{ID: "a", Kind: "upper"}}}}
	err := v.Validate(cfg)
	if !errors.Is(err, ErrGraphNameEmpty) {
		t.Fatalf("expected ErrGraphNameEmpty, got %v", err)
	}
}

func TestValidator_NoTasks(t *testing.T) {
	v := NewValidator(nil)
	cfg := &GraphConfig{Graph: Graph{Name: "test"}}
	err := v.Validate(cfg)
	if !errors.Is(err, ErrNoTasks) {
		t.Fatalf("expected ErrNoTasks, got %v", err)
	}
}

func TestValidator_TaskIDEmpty(t *testing.T) {
	v := NewValidator(nil)
	cfg := &GraphConfig{Graph: Graph{
		Name:  "test",
		Tasks: []TaskConfig{{ID: "", Kind: "upper"}},
	}}
	err := v.Validate(cfg)
	if !errors.Is(err, ErrTaskIDEmpty) {
		t.Fatalf("expected ErrTaskIDEmpty, got %v", err)
	}
}

func TestValidator_DuplicateTaskID(t *testing.T) {
	v := NewValidator(nil)
	cfg := &GraphConfig{Graph: Graph{
		Name: "test",
		Tasks: []TaskConfig{
			{ID: "a", Kind: "upper"},
			{ID: "a", Kind: "lower"},
		},
	}}
	err := v.Validate(cfg)
	if !errors.Is(err, ErrTaskIDDuplicate) {
		t.Fatalf("expected ErrTaskIDDuplicate, got %v", err)
	}
}

func TestValidator_TaskKindEmpty(t *testing.T) {
	v := NewValidator(nil)
	cfg := &GraphConfig{Graph: Graph{
		Name:  "test",
		Tasks: []TaskConfig{{ID: "a", Kind: ""}},
	}}
	err := v.Validate(cfg)
	if !errors.Is(err, ErrTaskKindEmpty) {
		t.Fatalf("expected ErrTaskKindEmpty, got %v", err)
	}
}

func TestValidator_UnknownTaskKind(t *testing.T) {
	v := NewValidator(map[string]bool{"upper": true})
	cfg := &GraphConfig{Graph: Graph{
		Name:  "test",
		Tasks: []TaskConfig{{ID: "a", Kind: "unknown"}},
	}}
	err := v.Validate(cfg)
	if !errors.Is(err, ErrUnknownTaskKind) {
		t.Fatalf("expected ErrUnknownTaskKind, got %v", err)
	}
}

func TestValidator_InvalidNumThreads(t *testing.T) {
	v := NewValidator(nil)
	cfg := &GraphConfig{Graph: Graph{
		Name:  "test",
		Tasks: []TaskConfig{{ID: "a", Kind: "upper", NumThreads: -1}},
	}}
	err := v.Validate(cfg)
	if !errors.Is(err, ErrInvalidNumThreads) {
		t.Fatalf("expected ErrInvalidNumThreads, got %v", err)
	}
}

func TestValidator_EdgeRefNotFound(t *testing.T) {
	v := NewValidator(nil)
	cfg := &GraphConfig{Graph: Graph{
		Name:  "test",
		Tasks: []TaskConfig{{ID: "a", Kind: "upper"}},
		Edges: []EdgeConfig{{From: "a", To: "nonexistent"}},
	}}
	err := v.Validate(cfg)
	if !errors.Is(err, ErrEdgeRefNotFound) {
		t.Fatalf("expected ErrEdgeRefNotFound, got %v", err)
	}
}

func TestValidator_CycleDetected_SelfReference(t *testing.T) {
	v := NewValidator(nil)
	cfg := &GraphConfig{Graph: Graph{
		Name:  "test",
		Tasks: []TaskConfig{{ID: "a", Kind: "upper"}},
		Edges: []EdgeConfig{{From: "a", To: "a"}},
	}}
	err := v.Validate(cfg)
	if !errors.Is(err, ErrCycleDetected) {
		t.Fatalf("expected ErrCycleDetected, got %v", err)
	}
}

func TestValidator_CycleDetected_TwoNodes(t *testing.T) {
	v := NewValidator(nil)
	cfg := &GraphConfig{Graph: Graph{
		Name: "test",
		Tasks: []TaskConfig{
			{ID: "a", Kind: "upper"},
			{ID: "b", Kind: "lower"},
		},
		Edges: []EdgeConfig{
			{From: "a", To: "b"},
			{From: "b", To: "a"},
		},
	}}
	err := v.Validate(cfg)
	if !errors.Is(err, ErrCycleDetected) {
		t.Fatalf("expected ErrCycleDetected, got %v", err)
	}
}

func TestValidator_CycleDetected_ThreeNodes(t *testing.T) {
	v := NewValidator(nil)
	cfg := &GraphConfig{Graph: Graph{
		Name: "test",
		Tasks: []TaskConfig{
			{ID: "a", Kind: "upper"},
			{ID: "b", Kind: "lower"},
			{ID: "c", Kind: "trim"},
		},
		Edges: []EdgeConfig{
			{From: "a", To: "b"},
			{From: "b", To: "c"},
			{From: "c", To: "a"},
		},
	}}
	err := v.Validate(cfg)
	if !errors.Is(err, ErrCycleDetected) {
		t.Fatalf("expected ErrCycleDetected, got %v", err)
	}
}

func TestValidator_NoConsumer(t *testing.T) {
	v := NewValidator(nil)
	cfg := &GraphConfig{Graph: Graph{
		Name:     "test",
		Producer: "a",
		Tasks:    []TaskConfig{{ID: "a", Kind: "upper"}},
	}}
	err := v.Validate(cfg)
	if !errors.Is(err, ErrNoConsumer) {
		t.Fatalf("expected ErrNoConsumer, got %v", err)
	}
}

func TestValidator_ConsumerNotFound(t *testing.T) {
	v := NewValidator(nil)
	cfg := &GraphConfig{Graph: Graph{
		Name:     "test",
		Consumer: "nonexistent",
		Producer: "a",
		Tasks:    []TaskConfig{{ID: "a", Kind: "upper"}},
	}}
	err := v.Validate(cfg)
	if !errors.Is(err, ErrConsumerNotFound) {
		t.Fatalf("expected ErrConsumerNotFound, got %v", err)
	}
}

func TestValidator_NoProducer(t *testing.T) {
	v := NewValidator(nil)
	cfg := &GraphConfig{Graph: Graph{
		Name:     "test",
		Consumer: "a",
		Tasks:    []TaskConfig{{ID: "a", Kind: "upper"}},
	}}
	err := v.Validate(cfg)
	if !errors.Is(err, ErrNoProducer) {
		t.Fatalf("expected ErrNoProducer, got %v", err)
	}
}

func TestValidator_ValidConfig_LinearChain(t *testing.T) {
	v := NewValidator(nil)
	cfg := &GraphConfig{Graph: Graph{
		Name:     "default-graph",
		Consumer: "analysis",
		Producer: "validation",
		Tasks: []TaskConfig{
			{ID: "analysis", Kind: "upper"},
			{ID: "architecture", Kind: "lower"},
			{ID: "implementation", Kind: "trim"},
			{ID: "validation", Kind: "reverse"},
		},
		Edges: []EdgeConfig{
			{From: "analysis", To: "architecture"},
			{From: "architecture", To: "implementation"},
			{From: "implementation", To: "validation"},
		},
	}}
	err := v.Validate(cfg)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidator_ValidConfig_DAGDiamond(t *testing.T) {
	v := NewValidator(nil)
	// Diamond pattern: a -> (b, c) -> d
	cfg := &GraphConfig{Graph: Graph{
		Name:     "dag-graph",
		Consumer: "a",
		Producer: "d",
		Tasks: []TaskConfig{
			{ID: "a", Kind: "upper"},
			{ID: "b", Kind: "lower"},
			{ID: "c", Kind: "trim"},
			{ID: "d", Kind: "reverse"},
		},
		Edges: []EdgeConfig{
			{From: "a", To: "b"},
			{From: "a", To: "c"},
			{From: "b", To: "d"},
			{From: "c", To: "d"},
		},
	}}
	err := v.Validate(cfg)
	if err != nil {
		t.Fatalf("expected no error for DAG diamond, got %v", err)
	}
}

func TestValidator_ValidConfig_NoEdges(t *testing.T) {
	v := NewValidator(nil)
	cfg := &GraphConfig{Graph: Graph{
		Name:     "single-task",
		Consumer: "a",
		Producer: "a",
		Tasks:    []TaskConfig{{ID: "a", Kind: "upper"}},
	}}
	err := v.Validate(cfg)
	if err != nil {
		t.Fatalf("expected no error for a single task, got %v", err)
	}
}

func TestValidator_RestrictsToKnownKinds(t *testing.T) {
	v := NewValidator(map[string]bool{"upper": true, "lower": true})
	cfg := &GraphConfig{Graph: Graph{
		Name:     "known-kinds",
		Consumer: "a",
		Producer: "b",
		Tasks: []TaskConfig{
			{ID: "a", Kind: "upper"},
			{ID: "b", Kind: "lower"},
		},
		Edges: []EdgeConfig{{From: "a", To: "b"}},
	}}
	if err := v.Validate(cfg); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
