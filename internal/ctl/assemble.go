package ctl

import (
	"fmt"

	"github.com/htgs-go/htgs/config"
	"github.com/htgs-go/htgs/internal/graph"
	"github.com/htgs-go/htgs/internal/task"
)

// Assemble builds a finalized graph.TaskGraphConf[string, string] from cfg,
// instantiating one task.Manager per config.TaskConfig via kinds and wiring
// every config.EdgeConfig with graph.AddEdge. Validate should already have
// been run (Loader.LoadFromBytes/LoadFromFile does this); Assemble still
// reports an unknown kind itself so it can be used directly against a
// hand-built GraphConfig that skipped the loader.
func Assemble(cfg *config.GraphConfig, kinds KindRegistry) (*graph.TaskGraphConf[string, string], error) {
	g := graph.NewTaskGraphConf[string, string](cfg.Graph.Name)

	managers := make(map[string]*task.Manager[string, string], len(cfg.Graph.Tasks))
	for _, tc := range cfg.Graph.Tasks {
		ctor, ok := kinds[tc.Kind]
		if !ok {
			return nil, fmt.Errorf("task %s: unknown kind %q", tc.ID, tc.Kind)
		}
		numThreads := tc.NumThreads
		if numThreads <= 0 {
			numThreads = 1
		}
		mgr := task.NewManager[string, string](tc.ID, ctor(), numThreads)
		if err := g.AddTask(mgr); err != nil {
			return nil, fmt.Errorf("task %s: %w", tc.ID, err)
		}
		managers[tc.ID] = mgr
	}

	for _, e := range cfg.Graph.Edges {
		if err := graph.AddEdge[string, string, string](g.B, managers[e.From], managers[e.To]); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
	}

	if err := graph.SetGraphConsumerTask[string, string, string](g, managers[cfg.Graph.Consumer]); err != nil {
		return nil, fmt.Errorf("consumer %s: %w", cfg.Graph.Consumer, err)
	}
	if err := graph.AddGraphProducerTask[string, string, string](g, managers[cfg.Graph.Producer]); err != nil {
		return nil, fmt.Errorf("producer %s: %w", cfg.Graph.Producer, err)
	}

	if err := g.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize: %w", err)
	}
	return g, nil
}
