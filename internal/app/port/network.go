package port

//go:generate mockgen -destination=mocks/mock_chain_client.go -package=mocks hub_balance/internal/app/port ChainClient,ChainClientProvider

import (
	"context"
	"encoding/json"

	"hub_balance/internal/domain/entity"
)

// ChainClient is the typed access to one connected chain: its active modules,
// decoded storage reads and storage shape compatibility.
type ChainClient interface {
	// ActiveModules returns the module names of the current runtime.
	ActiveModules(ctx context.Context) ([]string, error)

	// CompatibilityToken describes the storage shapes of the current runtime.
	CompatibilityToken(ctx context.Context) (entity.CompatibilityToken, error)

	// IsCompatible reports whether item can be decoded safely under token.
	IsCompatible(item entity.StorageItem, token entity.CompatibilityToken) bool

	// GetValues reads item for every key. The result has one element per key,
	// nil where the storage entry does not exist.
	GetValues(ctx context.Context, item entity.StorageItem, keys []entity.StorageKey) ([]json.RawMessage, error)

	// GetEntries lists the entries of a storage map, optionally under a partial key.
	GetEntries(ctx context.Context, item entity.StorageItem, prefix entity.StorageKey) ([]entity.StorageEntry, error)

	// Close releases the connection.
	Close()
}

// ChainClientProvider dials chain clients.
type ChainClientProvider interface {
	// Dial connects to the first reachable endpoint of the chain.
	Dial(ctx context.Context, chain entity.ChainInfo) (ChainClient, error)
}

// ChainDefinitionProvider provides the static definitions of known chains.
type ChainDefinitionProvider interface {
	// All returns every known chain definition.
	All() []entity.ChainInfo

	// ByID returns a chain definition by its id.
	ByID(id entity.ChainID) (entity.ChainInfo, bool)

	// ByNetwork returns the relay chain and system parachains of a network, relay first.
	ByNetwork(network string) []entity.ChainInfo
}
