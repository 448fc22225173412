package config

import "fmt"

// Validator validates graph configurations. knownKinds, when non-nil,
// restricts every task's kind to a registered value - the loader's caller
// supplies the kind registry it will actually be able to instantiate.
type Validator struct {
	knownKinds map[string]bool
}

// NewValidator creates a configuration validator. A nil knownKinds skips
// kind-registration checking.
func NewValidator(knownKinds map[string]bool) *Validator {
	return &Validator{knownKinds: knownKinds}
}

// Validate performs comprehensive validation of a GraphConfig. Returns nil
// if valid, or an error describing the first validation failure.
func (v *Validator) Validate(cfg *GraphConfig) error {
	if cfg == nil {
		return ErrConfigEmpty
	}

	if cfg.Graph.Name == "" {
		return ErrGraphNameEmpty
	}

	if len(cfg.Graph.Tasks) == 0 {
		return ErrNoTasks
	}

	taskIDs := make(map[string]bool)
	for i, t := range cfg.Graph.Tasks {
		if t.ID == "" {
			return fmt.Errorf("task[%d]: %w", i, ErrTaskIDEmpty)
		}
		if taskIDs[t.ID] {
			return fmt.Errorf("task.id=%s: %w", t.ID, ErrTaskIDDuplicate)
		}
		taskIDs[t.ID] = true

		if t.Kind == "" {
			return fmt.Errorf("task.id=%s: %w", t.ID, ErrTaskKindEmpty)
		}
		if v.knownKinds != nil && !v.knownKinds[t.Kind] {
			return fmt.Errorf("task.id=%s kind=%s: %w", t.ID, t.Kind, ErrUnknownTaskKind)
		}
		if t.NumThreads < 0 {
			return fmt.Errorf("task.id=%s: %w", t.ID, ErrInvalidNumThreads)
		}
	}

	for _, e := range cfg.Graph.Edges {
		if !taskIDs[e.From] {
			return fmt.Errorf("edge from=%s: %w", e.From, ErrEdgeRefNotFound)
		}
		if !taskIDs[e.To] {
			return fmt.Errorf("edge to=%s: %w", e.To, ErrEdgeRefNotFound)
		}
	}

	if err := v.detectCycle(cfg.Graph.Tasks, cfg.Graph.Edges); err != nil {
		return err
	}

	if cfg.Graph.Consumer == "" {
		return ErrNoConsumer
	}
	if !taskIDs[cfg.Graph.Consumer] {
		return fmt.Errorf("graph.consumer=%s: %w", cfg.Graph.Consumer, ErrConsumerNotFound)
	}

	if cfg.Graph.Producer == "" {
		return ErrNoProducer
	}
	if !taskIDs[cfg.Graph.Producer] {
		return fmt.Errorf("graph.producer=%s: %w", cfg.Graph.Producer, ErrProducerNotFound)
	}

	return nil
}

// detectCycle uses DFS with color marking to detect cycles among the
// declared edges. Colors: 0=white (unvisited), 1=gray (visiting),
// 2=black (visited).
func (v *Validator) detectCycle(tasks []TaskConfig, edges []EdgeConfig) error {
	adjacency := make(map[string][]string)
	for _, t := range tasks {
		if _, exists := adjacency[t.ID]; !exists {
			adjacency[t.ID] = []string{}
		}
	}
	for _, e := range edges {
		adjacency[e.From] = append(adjacency[e.From], e.To)
	}

	colors := make(map[string]int)
	for _, t := range tasks {
		colors[t.ID] = 0 // white
	}

	for _, t := range tasks {
		if colors[t.ID] == 0 {
			if v.hasCycle(t.ID, colors, adjacency) {
				return fmt.Errorf("starting from task.id=%s: %w", t.ID, ErrCycleDetected)
			}
		}
	}

	return nil
}

// hasCycle performs DFS to detect cycles.
func (v *Validator) hasCycle(node string, colors map[string]int, adj map[string][]string) bool {
	colors[node] = 1 // gray (visiting)

	for _, next := range adj[node] {
		if colors[next] == 1 { // back edge to gray node
			return true
		}
		if colors[next] == 0 { // white (unvisited)
			if v.hasCycle(next, colors, adj) {
				return true
			}
		}
		// black (visited) - skip
	}

	colors[node] = 2 // black (visited)
	return false
}
