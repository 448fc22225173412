package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/htgs-go/htgs/config"
	"github.com/htgs-go/htgs/contracts"
	"github.com/htgs-go/htgs/internal/ctl"
	"github.com/htgs-go/htgs/internal/profile"
	"github.com/htgs-go/htgs/internal/runtime"
)

// maxRequestBodySize limits the size of incoming request bodies (4MB).
const maxRequestBodySize = 4 * 1024 * 1024

// Handlers contains the HTTP handler methods for the API.
type Handlers struct {
	store *GraphStore
	kinds ctl.KindRegistry
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store *GraphStore, kinds ctl.KindRegistry) *Handlers {
	return &Handlers{store: store, kinds: kinds}
}

// HandleHealth handles GET /healthz.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]string{"status": "ok"})
}

// HandleLoadGraph handles POST /api/v1/graphs: loads, assembles, and starts
// a graph from a raw config.GraphConfig JSON body.
func (h *Handlers) HandleLoadGraph(w http.ResponseWriter, r *http.Request) {
	limited := io.LimitReader(r.Body, maxRequestBodySize+1)
	body, err := io.ReadAll(limited)
	if err != nil {
		WriteError(w, fmt.Errorf("failed to read request body: %w", contracts.ErrInvalidInput))
		return
	}
	if len(body) > maxRequestBodySize {
		WriteError(w, fmt.Errorf("request body too large (max %d bytes): %w", maxRequestBodySize, contracts.ErrInvalidInput))
		return
	}

	loader := config.NewLoader(h.kinds.Names())
	cfg, err := loader.LoadFromBytes(body)
	if err != nil {
		WriteError(w, err)
		return
	}

	g, err := ctl.Assemble(cfg, h.kinds)
	if err != nil {
		WriteError(w, err)
		return
	}

	sink := profile.NewMemorySink()
	for _, m := range g.B.Tasks() {
		m.WithProfiler(sink)
	}

	rt := runtime.New(g.B.Tasks(), 0, 1)
	if err := rt.ExecuteGraph(); err != nil {
		WriteError(w, err)
		return
	}

	entry := &GraphEntry{
		Name:     cfg.Graph.Name,
		Config:   cfg,
		G:        g,
		Runtime:  rt,
		Profiler: sink,
	}
	if err := h.store.Register(entry); err != nil {
		rt.TerminateAll()
		WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	writeJSON(w, summarize(entry))
}

// HandleGetGraph handles GET /api/v1/graphs/{name}.
func (h *Handlers) HandleGetGraph(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	entry, ok := h.store.Get(name)
	if !ok {
		WriteError(w, fmt.Errorf("graph %s: %w", name, ErrGraphNotFound))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, summarize(entry))
}

// HandleGraphDot handles GET /api/v1/graphs/{name}/dot.
func (h *Handlers) HandleGraphDot(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	entry, ok := h.store.Get(name)
	if !ok {
		WriteError(w, fmt.Errorf("graph %s: %w", name, ErrGraphNotFound))
		return
	}

	var flags contracts.DotGenFlag
	if r.URL.Query().Get("types") == "true" {
		flags |= contracts.DotGenFlagShowInOutTypes
	}

	w.Header().Set("Content-Type", "text/vnd.graphviz")
	fmt.Fprint(w, entry.G.B.RenderDot(flags))
}

// HandleGraphProfile handles GET /api/v1/graphs/{name}/profile.
func (h *Handlers) HandleGraphProfile(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	entry, ok := h.store.Get(name)
	if !ok {
		WriteError(w, fmt.Errorf("graph %s: %w", name, ErrGraphNotFound))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, ProfileToResponse(entry.Profiler.Snapshot()))
}

// HandleTerminateGraph handles POST /api/v1/graphs/{name}/terminate.
func (h *Handlers) HandleTerminateGraph(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if _, ok := h.store.Get(name); !ok {
		WriteError(w, fmt.Errorf("graph %s: %w", name, ErrGraphNotFound))
		return
	}
	h.store.Remove(name)

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]string{"status": "terminated"})
}

func summarize(entry *GraphEntry) GraphSummaryDTO {
	tasks := entry.G.B.Tasks()
	names := make([]string, len(tasks))
	for i, t := range tasks {
		names[i] = t.Name()
	}
	return GraphSummaryDTO{
		Name:      entry.Name,
		Tasks:     names,
		Finished:  entry.Runtime.IsFinished(),
		CreatedAt: entry.CreatedAt.Unix(),
	}
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		_ = err
	}
}
