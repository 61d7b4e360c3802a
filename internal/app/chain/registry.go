package chain

import "hub_balance/internal/domain/entity"

// Status is the connection state of a registry.
type Status string

const (
	StatusDisconnected Status = "disconnected"
	StatusConnecting   Status = "connecting"
	StatusConnected    Status = "connected"
)

// Registry gives access to the connected chains.
type Registry interface {
	// Get returns a connected chain by id.
	Get(id entity.ChainID) (*Chain, bool)

	// Chains returns the ids of the connected chains in registry order.
	Chains() []entity.ChainID

	Status() Status
}
