package api

import (
	"fmt"
	"sync"
	"time"

	"github.com/htgs-go/htgs/config"
	"github.com/htgs-go/htgs/internal/graph"
	"github.com/htgs-go/htgs/internal/profile"
	"github.com/htgs-go/htgs/internal/runtime"
)

// GraphEntry is one loaded, running graph.
type GraphEntry struct {
	Name      string
	Config    *config.GraphConfig
	G         *graph.TaskGraphConf[string, string]
	Runtime   *runtime.TaskGraphRuntime
	Profiler  *profile.MemorySink
	CreatedAt time.Time
}

// GraphStore provides thread-safe in-memory storage for loaded graphs,
// keyed by name.
type GraphStore struct {
	mu     sync.RWMutex
	graphs map[string]*GraphEntry
}

// NewGraphStore creates an empty GraphStore.
func NewGraphStore() *GraphStore {
	return &GraphStore{graphs: make(map[string]*GraphEntry)}
}

// Register stores entry under its name. Returns ErrGraphExists if a graph
// with that name is already loaded.
func (s *GraphStore) Register(entry *GraphEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.graphs[entry.Name]; exists {
		return fmt.Errorf("graph %s: %w", entry.Name, ErrGraphExists)
	}
	entry.CreatedAt = time.Now()
	s.graphs[entry.Name] = entry
	return nil
}

// Get returns the named graph entry, if loaded.
func (s *GraphStore) Get(name string) (*GraphEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.graphs[name]
	return e, ok
}

// List returns every loaded graph's name.
func (s *GraphStore) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.graphs))
	for name := range s.graphs {
		names = append(names, name)
	}
	return names
}

// Remove terminates and forgets the named graph, if loaded.
func (s *GraphStore) Remove(name string) {
	s.mu.Lock()
	entry, ok := s.graphs[name]
	delete(s.graphs, name)
	s.mu.Unlock()

	if ok {
		entry.Runtime.TerminateAll()
	}
}
