package api

import (
	"context"
	"net/http"
	"time"

	"github.com/htgs-go/htgs/internal/ctl"
)

// Server is the HTTP introspection server for running HTGS graphs.
type Server struct {
	store      *GraphStore
	httpServer *http.Server
	handlers   *Handlers
}

// NewServer creates a new Server instance listening on addr, with kinds as
// the registry every loaded graph config is validated and assembled
// against.
func NewServer(addr string, kinds ctl.KindRegistry) *Server {
	store := NewGraphStore()
	handlers := NewHandlers(store, kinds)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handlers.HandleHealth)
	mux.HandleFunc("POST /api/v1/graphs", handlers.HandleLoadGraph)
	mux.HandleFunc("GET /api/v1/graphs/{name}", handlers.HandleGetGraph)
	mux.HandleFunc("GET /api/v1/graphs/{name}/dot", handlers.HandleGraphDot)
	mux.HandleFunc("GET /api/v1/graphs/{name}/profile", handlers.HandleGraphProfile)
	mux.HandleFunc("POST /api/v1/graphs/{name}/terminate", handlers.HandleTerminateGraph)

	return &Server{
		store:    store,
		handlers: handlers,
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start starts the HTTP server. Blocks until the server is stopped or an
// error occurs.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server, terminating every loaded graph
// first.
func (s *Server) Shutdown(ctx context.Context) error {
	for _, name := range s.store.List() {
		s.store.Remove(name)
	}
	return s.httpServer.Shutdown(ctx)
}

// Store returns the GraphStore, for testing purposes.
func (s *Server) Store() *GraphStore { return s.store }

// Handlers returns the Handlers, for testing purposes.
func (s *Server) Handlers() *Handlers { return s.handlers }
