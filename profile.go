package htgs

import "github.com/htgs-go/htgs/internal/profile"

// ProfileSink receives per-task timing and queue-depth samples from a
// Manager wired with WithProfiler. A Manager with no profiler records
// nothing; MemorySink keeps an in-process snapshot usable from tests or an
// introspection endpoint.
type ProfileSink = profile.Sink

// NoopProfileSink discards every sample; NewProfileSession uses it when
// given a nil sink.
type NoopProfileSink = profile.NoopSink

// MemoryProfileSink accumulates per-task compute/wait/queue-size/memory-
// wait samples in memory, readable via Snapshot.
type MemoryProfileSink = profile.MemorySink

// NewMemoryProfileSink creates an empty MemoryProfileSink.
func NewMemoryProfileSink() *MemoryProfileSink {
	return profile.NewMemorySink()
}

// ProfileStats is one task's accumulated compute/wait/queue-size/memory-
// wait samples, as returned by MemoryProfileSink.Snapshot.
type ProfileStats = profile.TaskStats

// ProfileSession pairs a ProfileSink with an opaque id for one profiling
// run.
type ProfileSession = profile.Session

// NewProfileSession starts a ProfileSession backed by sink.
func NewProfileSession(sink ProfileSink) *ProfileSession {
	return profile.NewSession(sink)
}
