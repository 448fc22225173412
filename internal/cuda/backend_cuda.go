//go:build cuda

package cuda

import "github.com/htgs-go/htgs/contracts"

// init swaps in the real CUDA backend when the module is built with
// -tags cuda. Wiring the actual
// cudaGetDeviceCount/cudaDeviceCanAccessPeer/cudaDeviceEnablePeerAccess
// calls requires cgo and the CUDA toolkit headers, which this module
// cannot assume are present; cgoBackend reports no devices rather than
// silently pretending peer access always succeeds.
func init() {
	Backend = cgoBackend{}
}

type cgoBackend struct{}

func (cgoBackend) DeviceCount() int { return 0 }

func (cgoBackend) CanAccessPeer(self, peer int) bool { return false }

func (cgoBackend) EnablePeerAccess(self, peer int) error { return contracts.ErrNoCudaDevices }
