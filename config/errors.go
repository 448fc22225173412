package config

import "errors"

// Sentinel errors for graph configuration validation.
var (
	// ErrConfigEmpty is returned when the config data is empty (zero bytes)
	// or nil.
	ErrConfigEmpty = errors.New("graph configuration is empty")

	// ErrGraphNameEmpty is returned when graph.name is empty.
	ErrGraphNameEmpty = errors.New("graph.name is required")

	// ErrNoTasks is returned when graph.tasks is empty.
	ErrNoTasks = errors.New("graph.tasks must not be empty")

	// ErrTaskIDEmpty is returned when a task has an empty id.
	ErrTaskIDEmpty = errors.New("task.id is required")

	// ErrTaskIDDuplicate is returned when two tasks have the same id.
	ErrTaskIDDuplicate = errors.New("duplicate task.id")

	// ErrTaskKindEmpty is returned when a task has an empty kind.
	ErrTaskKindEmpty = errors.New("task.kind is required")

	// ErrUnknownTaskKind is returned when a task's kind is not registered
	// with the loader's kind registry.
	ErrUnknownTaskKind = errors.New("unknown task.kind")

	// ErrInvalidNumThreads is returned when a task's num_threads is negative.
	ErrInvalidNumThreads = errors.New("task.num_threads must not be negative")

	// ErrEdgeRefNotFound is returned when an edge's from/to references an
	// unknown task id.
	ErrEdgeRefNotFound = errors.New("edge references unknown task id")

	// ErrCycleDetected is returned when a cycle is detected in the declared
	// edges.
	ErrCycleDetected = errors.New("cycle detected in graph edges")

	// ErrNoConsumer is returned when graph.consumer is empty.
	ErrNoConsumer = errors.New("graph.consumer is required")

	// ErrConsumerNotFound is returned when graph.consumer references an
	// unknown task id.
	ErrConsumerNotFound = errors.New("graph.consumer references unknown task id")

	// ErrNoProducer is returned when graph.producer is empty.
	ErrNoProducer = errors.New("graph.producer is required")

	// ErrProducerNotFound is returned when graph.producer references an
	// unknown task id.
	ErrProducerNotFound = errors.New("graph.producer references unknown task id")
)
