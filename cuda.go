package htgs

import "github.com/htgs-go/htgs/internal/cuda"

// CudaTask is a Task extension for GPU-bound work: in addition to
// ExecuteTask, it binds to a specific device at Initialize and releases
// any device-side state in ShutdownCuda.
type CudaTask[T, U any] = cuda.ICudaTask[T, U]

// GPUManager wraps a CudaTask, binding it to one of a fixed set of CUDA
// device ids and optionally enabling peer access between them before the
// first ExecuteTask call.
type GPUManager[T, U any] = cuda.GPUManager[T, U]

// NewGPUManager builds a GPUManager over inner, bound to one of cudaIDs.
func NewGPUManager[T, U any](inner CudaTask[T, U], cudaIDs []int, autoEnablePeerAccess bool) *GPUManager[T, U] {
	return cuda.New[T, U](inner, cudaIDs, autoEnablePeerAccess)
}

// Device is the device handle a GPUManager binds its inner CudaTask to.
type Device = cuda.Device
