package contracts

import "sync"

// CommAddress identifies one registration in a Communicator: the replica
// (PipelineID) that owns the connector and a caller-chosen Address within
// that replica (e.g. a consumer task's name).
type CommAddress struct {
	PipelineID int
	Address    string
}

// Communicator is an address-indexed connector registry shared by every
// replica of a graph inside an ExecutionPipeline, used for out-of-band
// delivery: a task or rule that needs to signal a sibling replica or
// subgraph directly - bypassing the normal producer/consumer edges -
// looks up the target's registered connector here by (pipelineId,
// address) instead of holding a direct reference to it, which would
// defeat the whole point of replicating the graph in the first place.
type Communicator struct {
	mu    sync.RWMutex
	byKey map[CommAddress]AnyConnector
}

// NewCommunicator creates an empty communicator.
func NewCommunicator() *Communicator {
	return &Communicator{byKey: make(map[CommAddress]AnyConnector)}
}

// Register associates (pipelineID, address) with conn, overwriting any
// previous registration for that key.
func (c *Communicator) Register(pipelineID int, address string, conn AnyConnector) {
	c.mu.Lock()
	c.byKey[CommAddress{pipelineID, address}] = conn
	c.mu.Unlock()
}

// Lookup returns the connector registered for (pipelineID, address), if
// any.
func (c *Communicator) Lookup(pipelineID int, address string) (AnyConnector, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	conn, ok := c.byKey[CommAddress{pipelineID, address}]
	return conn, ok
}

// Size returns the number of registered addresses.
func (c *Communicator) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byKey)
}
