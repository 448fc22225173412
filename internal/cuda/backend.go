// Package cuda implements ICudaTask, a task that is bound to one GPU per
// ExecutionPipeline replica and that can automatically copy memory between
// GPUs that lack peer-to-peer access. The actual CUDA runtime calls sit
// behind a small Backend seam so the package builds and runs (in
// simulation) on any machine; a real backend can be linked in with the
// cuda build tag.
package cuda

// runtimeBackend abstracts the handful of CUDA runtime entry points
// ICudaTask needs: how many devices exist, and whether one device can
// access another's memory directly.
type runtimeBackend interface {
	DeviceCount() int
	CanAccessPeer(self, peer int) bool
	EnablePeerAccess(self, peer int) error
}

// Backend is the active runtime backend. The default, simulatedBackend,
// lets ICudaTask's peer-access bookkeeping be exercised and tested without
// any GPU present. Building with -tags cuda swaps this for a real backend
// (see backend_cuda.go).
var Backend runtimeBackend = simulatedBackend{}

// simulatedBackend models an idealized multi-GPU machine where every
// device can access every other device's memory directly - i.e. no
// autoCopy is ever required. Override the package-level Backend variable
// to simulate restricted topologies instead.
type simulatedBackend struct{}

func (simulatedBackend) DeviceCount() int { return 1 << 8 }

func (simulatedBackend) CanAccessPeer(self, peer int) bool { return self != peer }

func (simulatedBackend) EnablePeerAccess(self, peer int) error { return nil }
