package cuda

import (
	"fmt"
	"sync"

	"go.uber.org/atomic"

	"github.com/htgs-go/htgs/contracts"
)

// Device is the per-replica GPU binding handed to an ICudaTask's hooks. It
// is created once per GPUManager and populated by initialize once the
// manager learns its pipelineID, mirroring the original library's
// ICudaTask::initialize binding cudaId = cudaIds[pipelineId].
type Device struct {
	cudaIDs              []int
	autoEnablePeerAccess bool

	// id is read from ExecuteTask (this replica's own hot path) and can
	// also be inspected by a sibling replica coordinating a cross-GPU
	// copy, so it is kept atomic rather than behind the nonPeerDevIDs
	// mutex.
	id atomic.Int32

	mu            sync.Mutex
	nonPeerDevIDs map[int]bool

	pipelineID int
}

func newDevice(cudaIDs []int, autoEnablePeerAccess bool) *Device {
	return &Device{cudaIDs: cudaIDs, autoEnablePeerAccess: autoEnablePeerAccess}
}

// initialize binds this device to cudaIDs[pipelineID] and, unless peer
// access was disabled at construction, probes every other configured GPU:
// those it can access directly are enabled for peer access; the rest are
// recorded in nonPeerDevIDs so RequiresCopy later reports them as needing
// an explicit autoCopy.
func (d *Device) initialize(pipelineID int) error {
	if pipelineID < 0 || pipelineID >= len(d.cudaIDs) {
		return fmt.Errorf("pipeline id %d has no cuda id configured: %w", pipelineID, contracts.ErrInvalidDeviceID)
	}
	cudaID := d.cudaIDs[pipelineID]
	if cudaID >= Backend.DeviceCount() {
		return fmt.Errorf("cuda id %d exceeds device count %d: %w", cudaID, Backend.DeviceCount(), contracts.ErrInvalidDeviceID)
	}

	d.pipelineID = pipelineID
	d.id.Store(int32(cudaID))

	d.mu.Lock()
	d.nonPeerDevIDs = make(map[int]bool)
	d.mu.Unlock()

	if !d.autoEnablePeerAccess {
		return nil
	}
	for _, peerID := range d.cudaIDs {
		if peerID == cudaID {
			continue
		}
		if Backend.CanAccessPeer(cudaID, peerID) {
			if err := Backend.EnablePeerAccess(cudaID, peerID); err != nil {
				return fmt.Errorf("enable peer access %d->%d: %w", cudaID, peerID, contracts.ErrPeerAccessFailed)
			}
			continue
		}
		d.mu.Lock()
		d.nonPeerDevIDs[peerID] = true
		d.mu.Unlock()
	}
	return nil
}

// CudaID returns the device id this replica is bound to.
func (d *Device) CudaID() int { return int(d.id.Load()) }

// PipelineID returns the ExecutionPipeline replica index this device was
// initialized for.
func (d *Device) PipelineID() int { return d.pipelineID }

// RequiresCopy reports whether data produced by the replica bound to
// srcPipelineID must be explicitly copied onto this device rather than
// accessed directly via peer-to-peer addressing.
func (d *Device) RequiresCopy(srcPipelineID int) bool {
	if srcPipelineID < 0 || srcPipelineID >= len(d.cudaIDs) {
		return true
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.nonPeerDevIDs[d.cudaIDs[srcPipelineID]]
}

// AutoCopy runs copyFn, which copies from srcPipelineID's GPU into this
// device, when RequiresCopy reports a copy is needed, returning whether
// the copy occurred. The caller's copyFn carries the buffers and element
// count, so Device stays independent of any one buffer type.
func (d *Device) AutoCopy(srcPipelineID int, copyFn func()) bool {
	if !d.RequiresCopy(srcPipelineID) {
		return false
	}
	copyFn()
	return true
}
