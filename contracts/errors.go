package contracts

import "errors"

// Sentinel errors for the runtime layer.
var (
	// Graph construction errors
	ErrTaskNotInGraph     = errors.New("task is not registered in this graph")
	ErrGraphCycle         = errors.New("cycle detected in task graph")
	ErrGraphFinalized     = errors.New("graph already finalized")
	ErrGraphNotFinalized  = errors.New("graph not finalized")
	ErrNoGraphConsumer    = errors.New("graph has no consumer task bound")
	ErrNoGraphProducer    = errors.New("graph has no producer task bound")
	ErrDuplicateMemEdge   = errors.New("memory edge name already used in this graph")
	ErrUnknownMemoryEdge  = errors.New("unknown memory manager edge name")
	ErrInvalidNumThreads  = errors.New("number of threads must be at least 1")

	// Runtime errors
	ErrRuntimeNotExecuted    = errors.New("runtime has not been executed")
	ErrRuntimeTerminated     = errors.New("runtime already terminated")
	ErrRuntimeAlreadyStarted = errors.New("runtime already executed")

	// Memory errors
	ErrMemoryPoolExhausted = errors.New("memory pool exhausted")
	ErrForeignPipelineData = errors.New("memory data received from another pipeline")
	ErrNilAllocator        = errors.New("memory allocator must not be nil")

	// CUDA/device errors
	ErrNoCudaDevices    = errors.New("no CUDA devices available")
	ErrPeerAccessFailed = errors.New("peer access could not be enabled")
	ErrInvalidDeviceID  = errors.New("invalid device id")

	// Input validation
	ErrInvalidInput = errors.New("invalid input: nil or malformed")
	ErrNilTask      = errors.New("task must not be nil")
)
