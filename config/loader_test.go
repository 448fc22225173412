package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoader_LoadFromBytes_ValidJSON(t *testing.T) {
	l := NewLoader(nil)
	data := []byte(`{
		"graph": {
			"name": "test-graph",
			"consumer": "a",
			"producer": "c",
			"tasks": [
				{"id": "a", "kind": "upper"},
				{"id": "b", "kind": "trim"},
				{"id": "c", "kind": "reverse"}
			],
			"edges": [
				{"from": "a", "to": "b"},
				{"from": "b", "to": "c"}
			]
		}
	}`)

	cfg, err := l.LoadFromBytes(data)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.Graph.Name != "test-graph" {
		t.Fatalf("expected name=test-graph, got %s", cfg.Graph.Name)
	}
	if len(cfg.Graph.Tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(cfg.Graph.Tasks))
	}
}

func TestLoader_LoadFromBytes_EmptyData(t *testing.T) {
	l := NewLoader(nil)
	_, err := l.LoadFromBytes([]byte{})
	if !errors.Is(err, ErrConfigEmpty) {
		t.Fatalf("expected ErrConfigEmpty, got %v", err)
	}
}

func TestLoader_LoadFromBytes_InvalidJSON(t *testing.T) {
	l := NewLoader(nil)
	data := []byte(`{invalid json}`)

	_, err := l.LoadFromBytes(data)
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}

	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected json.SyntaxError, got %T: %v", err, err)
	}
}

func TestLoader_LoadFromBytes_EmptyObject(t *testing.T) {
	l := NewLoader(nil)
	data := []byte(`{}`)

	_, err := l.LoadFromBytes(data)
	if !errors.Is(err, ErrGraphNameEmpty) {
		t.Fatalf("expected ErrGraphNameEmpty for empty object, got %v", err)
	}
}

func TestLoader_LoadFromBytes_EmptyGraph(t *testing.T) {
	l := NewLoader(nil)
	data := []byte(`{"graph": {"name": "test"}}`)

	_, err := l.LoadFromBytes(data)
	if !errors.Is(err, ErrNoTasks) {
		t.Fatalf("expected ErrNoTasks, got %v", err)
	}
}

func TestLoader_LoadFromBytes_UnknownKind(t *testing.T) {
	l := NewLoader(map[string]bool{"upper": true})
	data := []byte(`{
		"graph": {
			"name": "kind-flow",
			"consumer": "a",
			"producer": "a",
			"tasks": [{"id": "a", "kind": "does-not-exist"}]
		}
	}`)

	_, err := l.LoadFromBytes(data)
	if !errors.Is(err, ErrUnknownTaskKind) {
		t.Fatalf("expected ErrUnknownTaskKind, got %v", err)
	}
}

func TestLoader_LoadFromFile_NotFound(t *testing.T) {
	l := NewLoader(nil)
	_, err := l.LoadFromFile("/nonexistent/path/config.json")
	if err == nil {
		t.Fatal("expected error for missing file")
	}

	var pathErr *os.PathError
	if !errors.As(err, &pathErr) {
		t.Fatalf("expected os.PathError in chain, got %v", err)
	}
	if !os.IsNotExist(pathErr) {
		t.Fatalf("expected os.IsNotExist to be true, got error: %v", pathErr)
	}
}

func TestLoader_LoadFromFile_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "graph.json")

	data := []byte(`{
		"graph": {
			"name": "file-test",
			"consumer": "a",
			"producer": "b",
			"tasks": [
				{"id": "a", "kind": "upper"},
				{"id": "b", "kind": "lower", "num_threads": 2}
			],
			"edges": [{"from": "a", "to": "b"}]
		}
	}`)

	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	l := NewLoader(nil)
	cfg, err := l.LoadFromFile(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.Graph.Name != "file-test" {
		t.Fatalf("expected name=file-test, got %s", cfg.Graph.Name)
	}
	if cfg.Graph.Tasks[1].NumThreads != 2 {
		t.Fatalf("expected task b num_threads=2, got %d", cfg.Graph.Tasks[1].NumThreads)
	}
}

func TestLoader_LoadFromFile_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "invalid.json")

	if err := os.WriteFile(path, []byte(`{broken`), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	l := NewLoader(nil)
	_, err := l.LoadFromFile(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON file")
	}

	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected json.SyntaxError in chain, got %v", err)
	}
}

func TestLoader_LoadFromFile_ValidationError(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "invalid-graph.json")

	data := []byte(`{
		"graph": {
			"name": "cycle-test",
			"consumer": "a",
			"producer": "b",
			"tasks": [
				{"id": "a", "kind": "upper"},
				{"id": "b", "kind": "lower"}
			],
			"edges": [
				{"from": "a", "to": "b"},
				{"from": "b", "to": "a"}
			]
		}
	}`)

	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	l := NewLoader(nil)
	_, err := l.LoadFromFile(path)
	if !errors.Is(err, ErrCycleDetected) {
		t.Fatalf("expected ErrCycleDetected, got %v", err)
	}
}
