// Package api provides the HTTP introspection and control-plane layer for
// a running HTGS graph: loading a declarative config, rendering it to DOT,
// and serving its profiling snapshot.
package api

import (
	"sort"

	"github.com/htgs-go/htgs/internal/profile"
)

// LoadGraphRequest is the request body for POST /api/v1/graphs: a raw
// config.GraphConfig document, loaded and assembled the same way
// cmd/htgsctl does.
type LoadGraphRequest struct {
	Graph GraphDTO `json:"graph"`
}

// GraphDTO mirrors config.Graph for the request body's shape. The handlers
// do not decode into it: HandleLoadGraph feeds the raw body straight to
// config.Loader, so the same validation path cmd/htgsctl uses applies here.
type GraphDTO struct {
	Name     string    `json:"name"`
	Consumer string    `json:"consumer"`
	Producer string    `json:"producer"`
	Tasks    []TaskDTO `json:"tasks"`
	Edges    []EdgeDTO `json:"edges"`
}

// TaskDTO mirrors config.TaskConfig.
type TaskDTO struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"`
	NumThreads int    `json:"num_threads,omitempty"`
}

// EdgeDTO mirrors config.EdgeConfig.
type EdgeDTO struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// GraphSummaryDTO is the response body describing a loaded graph.
type GraphSummaryDTO struct {
	Name      string   `json:"name"`
	Tasks     []string `json:"tasks"`
	Finished  bool     `json:"finished"`
	CreatedAt int64    `json:"created_at"`
}

// TaskStatsDTO mirrors profile.TaskStats for JSON responses.
type TaskStatsDTO struct {
	Name          string `json:"name"`
	ComputeTimeMs int64  `json:"compute_time_ms"`
	WaitTimeMs    int64  `json:"wait_time_ms"`
	MemoryWaitMs  int64  `json:"memory_wait_time_ms"`
	MaxQueueSize  int    `json:"max_queue_size"`
	Samples       int    `json:"samples"`
}

// ProfileToResponse converts a profiling snapshot into a stable, sorted
// response slice.
func ProfileToResponse(snap map[string]profile.TaskStats) []TaskStatsDTO {
	out := make([]TaskStatsDTO, 0, len(snap))
	for name, st := range snap {
		out = append(out, TaskStatsDTO{
			Name:          name,
			ComputeTimeMs: st.ComputeTime.Milliseconds(),
			WaitTimeMs:    st.WaitTime.Milliseconds(),
			MemoryWaitMs:  st.MemoryWaitTime.Milliseconds(),
			MaxQueueSize:  st.MaxQueueSize,
			Samples:       st.Samples,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ErrorDTO represents an error in the response.
type ErrorDTO struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
