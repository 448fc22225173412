// Package task hosts the thread-per-replica task manager that binds a
// user ITask implementation to its input/output connectors and drives its
// execution loop.
package task

import "time"

// ITask is the unit of work a caller implements. A Manager[T, U] owns one
// or more goroutine replicas that each hold their own ITask instance
// (replica 0 uses the instance passed to NewManager, replicas 1..N-1 use
// Copy) and feed it data pulled from the bound input connector.
//
// To declare a task with no input edge (a "graph producer" that manufactures
// its own data rather than reacting to an upstream task), implement
// ITask[contracts.NoData, U]; Manager invokes ExecuteTask exactly once with
// a zero-value contracts.NoData instead of looping over an input connector.
type ITask[T, U any] interface {
	// Initialize is invoked once per replica before any data is
	// delivered, receiving this replica's position within any enclosing
	// ExecutionPipeline.
	Initialize(pipelineID, numPipelines int)

	// ExecuteTask processes one input item, optionally producing zero or
	// more outputs via handle.AddResult and optionally requesting or
	// releasing pooled memory via handle.
	ExecuteTask(data T, handle *Handle[T, U])

	// Shutdown is invoked once per replica after its input connector has
	// terminated.
	Shutdown()

	// Name returns the task's display name.
	Name() string

	// Copy returns a new instance for an additional thread replica or
	// graph clone. Implementations that hold no mutable per-item state
	// may safely return a shallow copy of themselves.
	Copy() ITask[T, U]
}

// Finisher is an optional ITask extension invoked exactly once per replica
// when its input connector terminates, before Shutdown. Bookkeeper uses
// this to flush any output its rules are still holding.
type Finisher interface {
	InputTerminated()
}

// Terminator is an optional ITask extension polled every millisecond, right
// after Finisher.InputTerminated, letting a task still flushing buffered state
// (e.g. a Bookkeeper rule batching a partial group) hold its replica open
// past its own input's termination until CanTerminate reports true.
// inputTerminated is always true by the time Manager calls this; it is
// threaded through to match the original library's two-step shutdown
// protocol, which also consults canTerminate before InputTerminated fires.
type Terminator interface {
	CanTerminate(inputTerminated bool) bool
}

// Finalizer is an optional ITask extension invoked exactly once, on
// whichever replica happens to be the last of a multi-threaded manager to
// finish, mirroring the original library's processTaskFunctionTerminated
// hook for replica-wide teardown (e.g. releasing a shared resource).
type Finalizer interface {
	ExecuteTaskFinal()
}

// PollingTask is an optional ITask extension for a task that must wake on
// a fixed interval even absent input, mirroring the original library's
// microTimeoutTime polling mode. When a replica's ITask implements this,
// Manager pulls from its input connector with Connector.Poll instead of
// Consume, and on every timeout invokes ExecuteTask with a zero-value T
// rather than blocking indefinitely for real data.
type PollingTask interface {
	// MicroTimeout returns how long the manager's run loop waits for real
	// input before waking the task with a zero-value ExecuteTask call.
	MicroTimeout() time.Duration
}
