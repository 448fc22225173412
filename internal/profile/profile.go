// Package profile implements the optional profiling sink: compute time,
// wait time, max queue size, and memory-wait time collected per task
// manager, matching the synchronous in-process metrics the original
// library gathers when built with its PROFILE directive (no websocket
// streaming variant - that is explicitly out of scope).
package profile

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sink receives profiling events as a graph runs. Implementations must be
// safe for concurrent use: every task-manager replica reports through the
// same Sink instance.
type Sink interface {
	// RecordCompute reports time spent inside one ExecuteTask call.
	RecordCompute(taskName string, d time.Duration)

	// RecordWait reports time spent blocked in Consume waiting for input.
	RecordWait(taskName string, d time.Duration)

	// RecordQueueSize reports the input connector's queue size observed
	// right after an item was pulled off it; a sink only needs to keep
	// the maximum it has seen.
	RecordQueueSize(taskName string, size int)

	// RecordMemoryWait reports time spent blocked in Handle.RequestMemory.
	RecordMemoryWait(taskName string, d time.Duration)
}

// NoopSink discards every event. NewSession uses it when given a nil sink;
// a Manager with no profiler attached holds a nil Sink instead and skips
// recording with a nil check.
type NoopSink struct{}

func (NoopSink) RecordCompute(string, time.Duration)    {}
func (NoopSink) RecordWait(string, time.Duration)       {}
func (NoopSink) RecordQueueSize(string, int)            {}
func (NoopSink) RecordMemoryWait(string, time.Duration) {}

// TaskStats accumulates one task manager's profiling data across however
// many items it has processed.
type TaskStats struct {
	ComputeTime    time.Duration
	WaitTime       time.Duration
	MemoryWaitTime time.Duration
	MaxQueueSize   int
	Samples        int
}

// MemorySink is an in-memory recording Sink suitable for tests and for a
// profiling snapshot served by the api package - it is the synchronous
// counterpart of the original library's TaskManagerProfile/TaskGraphProfiler
// pair, keeping one running TaskStats per task name.
type MemorySink struct {
	mu    sync.Mutex
	stats map[string]*TaskStats
}

// NewMemorySink creates an empty recording sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{stats: make(map[string]*TaskStats)}
}

func (s *MemorySink) entry(taskName string) *TaskStats {
	st, ok := s.stats[taskName]
	if !ok {
		st = &TaskStats{}
		s.stats[taskName] = st
	}
	return st
}

func (s *MemorySink) RecordCompute(taskName string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.entry(taskName)
	st.ComputeTime += d
	st.Samples++
}

func (s *MemorySink) RecordWait(taskName string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry(taskName).WaitTime += d
}

func (s *MemorySink) RecordQueueSize(taskName string, size int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.entry(taskName)
	if size > st.MaxQueueSize {
		st.MaxQueueSize = size
	}
}

func (s *MemorySink) RecordMemoryWait(taskName string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry(taskName).MemoryWaitTime += d
}

// Snapshot returns a copy of every task's accumulated stats, safe to read
// while the graph keeps running.
func (s *MemorySink) Snapshot() map[string]TaskStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]TaskStats, len(s.stats))
	for name, st := range s.stats {
		out[name] = *st
	}
	return out
}

// Session pairs a Sink with a stable, opaque uuid identifying one profiling
// run.
type Session struct {
	ID   string
	Sink Sink
}

// NewSession starts a profiling session over sink. A nil sink defaults to
// NoopSink so callers can always dereference Session.Sink.
func NewSession(sink Sink) *Session {
	if sink == nil {
		sink = NoopSink{}
	}
	return &Session{ID: uuid.NewString(), Sink: sink}
}
