package cuda

import (
	"github.com/htgs-go/htgs/internal/task"
)

// ICudaTask is the GPU-bound counterpart of task.ITask[T, U]: instead of a
// bare Initialize/Shutdown pair, it receives the Device it has been bound
// to so its hooks can read the device's cuda id and peer-access state.
type ICudaTask[T, U any] interface {
	// InitializeCudaGPU is called once per replica after dev has been
	// bound to a concrete GPU, analogous to the original library's
	// initializeCudaGPU hook run after device/stream setup.
	InitializeCudaGPU(dev *Device)

	// ExecuteTask processes one input item with dev available for
	// RequiresCopy/AutoCopy decisions.
	ExecuteTask(data T, handle *task.Handle[T, U], dev *Device)

	// ShutdownCuda releases any GPU-side resources the task allocated.
	ShutdownCuda()

	Name() string

	// Copy returns a new instance for an additional thread replica or
	// graph clone; GPUManager gives the copy its own fresh Device.
	Copy() ICudaTask[T, U]
}

// GPUManager adapts an ICudaTask[T, U] into a plain task.ITask[T, U] so it
// can be registered with task.NewManager and wired into a graph exactly
// like any other task; the graph and runtime layers never need to know a
// task is GPU-bound.
type GPUManager[T, U any] struct {
	inner ICudaTask[T, U]
	dev   *Device
}

// New wraps inner as a GPUManager bound to cudaIDs (one entry per
// ExecutionPipeline replica the enclosing Manager will run). If this
// ICudaTask is added into an ExecutionPipeline, the length of cudaIDs
// should match the number of replicas.
func New[T, U any](inner ICudaTask[T, U], cudaIDs []int, autoEnablePeerAccess bool) *GPUManager[T, U] {
	return &GPUManager[T, U]{
		inner: inner,
		dev:   newDevice(cudaIDs, autoEnablePeerAccess),
	}
}

// Device returns the GPU binding this manager's replica has been
// assigned, valid after Initialize has run.
func (g *GPUManager[T, U]) Device() *Device { return g.dev }

func (g *GPUManager[T, U]) Initialize(pipelineID, numPipelines int) {
	if err := g.dev.initialize(pipelineID); err != nil {
		// Mirrors the original library's HTGS_ASSERT on an invalid cuda
		// id: a misconfigured device list is a programming error the
		// graph cannot recover from at runtime, not a data condition.
		panic(err)
	}
	g.inner.InitializeCudaGPU(g.dev)
}

func (g *GPUManager[T, U]) ExecuteTask(data T, handle *task.Handle[T, U]) {
	g.inner.ExecuteTask(data, handle, g.dev)
}

func (g *GPUManager[T, U]) Shutdown() { g.inner.ShutdownCuda() }

func (g *GPUManager[T, U]) Name() string { return g.inner.Name() }

func (g *GPUManager[T, U]) Copy() task.ITask[T, U] {
	return &GPUManager[T, U]{
		inner: g.inner.Copy(),
		dev:   newDevice(g.dev.cudaIDs, g.dev.autoEnablePeerAccess),
	}
}

var _ task.ITask[int, int] = (*GPUManager[int, int])(nil)
