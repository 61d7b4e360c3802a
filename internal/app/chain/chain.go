// Package chain holds the handle of a connected chain and its capability table.
package chain

import (
	"context"
	"sync"

	"hub_balance/internal/app/pallet"
	"hub_balance/internal/app/port"
	"hub_balance/internal/domain/entity"
)

// Capability names an entry of the capability table.
type Capability string

const (
	CapSystem           Capability = "system"
	CapBalances         Capability = "balances"
	CapVesting          Capability = "vesting"
	CapStaking          Capability = "staking"
	CapConvictionVoting Capability = "convictionVoting"
	CapDelegatedStaking Capability = "delegatedStaking"
	CapAssets           Capability = "assets"
	CapPoolAssets       Capability = "poolAssets"
	CapForeignAssets    Capability = "foreignAssets"

	CapBalanceOf Capability = "balanceOf"
	CapAssetAPI  Capability = "assetApi"
)

// BalanceResolver computes the balance of a set of addresses on one chain.
type BalanceResolver interface {
	BalanceOf(ctx context.Context, accounts []string) (*entity.AccountBalance, error)
}

// AssetAPI serves the asset modules of one chain.
type AssetAPI interface {
	GetAssets(ctx context.Context) ([]entity.Asset, error)
	GetAssetBalance(ctx context.Context, accounts []string, module entity.Module, assetID string) (*entity.AssetHoldings, error)
	GetBalances(ctx context.Context, accounts []string) ([]entity.AssetBalance, error)
}

// Chain is a connected chain. Its capability table is filled by the composer
// before the chain is published and only read afterwards.
type Chain struct {
	descriptor entity.RuntimeDescriptor
	client     port.ChainClient
	token      entity.CompatibilityToken

	mu    sync.RWMutex
	caps  map[Capability]any
	order []Capability
}

func New(descriptor entity.RuntimeDescriptor, client port.ChainClient, token entity.CompatibilityToken) *Chain {
	if descriptor.Modules == nil {
		descriptor.Modules = entity.NewModuleSet()
	}
	descriptor.SpecVersion = token.SpecVersion
	return &Chain{
		descriptor: descriptor,
		client:     client,
		token:      token,
		caps:       make(map[Capability]any),
	}
}

func (c *Chain) ID() entity.ChainID {
	return c.descriptor.ID
}

func (c *Chain) Descriptor() entity.RuntimeDescriptor {
	return c.descriptor
}

func (c *Chain) Decimals() int {
	return c.descriptor.Asset.Decimals
}

func (c *Chain) Client() port.ChainClient {
	return c.client
}

// Runtime is the context the module query sets of this chain read through.
func (c *Chain) Runtime(log port.Logger) pallet.Runtime {
	return pallet.Runtime{
		Chain:   c.descriptor.ID,
		Modules: c.descriptor.Modules,
		Client:  c.client,
		Token:   c.token,
		Logger:  log,
	}
}

// Attach adds impl under capability. An existing entry is kept and false is returned.
func (c *Chain) Attach(capability Capability, impl any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.caps[capability]; ok {
		return false
	}
	c.caps[capability] = impl
	c.order = append(c.order, capability)
	return true
}

func (c *Chain) Has(capability Capability) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.caps[capability]
	return ok
}

// Capabilities lists the attached capabilities in attach order.
func (c *Chain) Capabilities() []Capability {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Capability(nil), c.order...)
}

func (c *Chain) get(capability Capability) any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.caps[capability]
}

func lookup[T any](c *Chain, capability Capability) (T, bool) {
	v, ok := c.get(capability).(T)
	return v, ok
}

func (c *Chain) System() (*pallet.System, bool) {
	return lookup[*pallet.System](c, CapSystem)
}

func (c *Chain) Balances() (*pallet.Balances, bool) {
	return lookup[*pallet.Balances](c, CapBalances)
}

func (c *Chain) Vesting() (*pallet.Vesting, bool) {
	return lookup[*pallet.Vesting](c, CapVesting)
}

func (c *Chain) Staking() (*pallet.Staking, bool) {
	return lookup[*pallet.Staking](c, CapStaking)
}

func (c *Chain) ConvictionVoting() (*pallet.ConvictionVoting, bool) {
	return lookup[*pallet.ConvictionVoting](c, CapConvictionVoting)
}

func (c *Chain) DelegatedStaking() (*pallet.DelegatedStaking, bool) {
	return lookup[*pallet.DelegatedStaking](c, CapDelegatedStaking)
}

// AssetModuleCapabilities maps the asset modules to their capability.
var AssetModuleCapabilities = map[entity.Module]Capability{
	entity.ModuleAssets:        CapAssets,
	entity.ModulePoolAssets:    CapPoolAssets,
	entity.ModuleForeignAssets: CapForeignAssets,
}

// AssetModule returns the query set of an asset module.
func (c *Chain) AssetModule(module entity.Module) (pallet.AssetModule, bool) {
	capability, ok := AssetModuleCapabilities[module]
	if !ok {
		return nil, false
	}
	return lookup[pallet.AssetModule](c, capability)
}

// AssetModules returns the attached asset query sets in a fixed order.
func (c *Chain) AssetModules() []pallet.AssetModule {
	var out []pallet.AssetModule
	for _, m := range []entity.Module{entity.ModuleAssets, entity.ModulePoolAssets, entity.ModuleForeignAssets} {
		if am, ok := c.AssetModule(m); ok {
			out = append(out, am)
		}
	}
	return out
}

func (c *Chain) BalanceOf() (BalanceResolver, bool) {
	return lookup[BalanceResolver](c, CapBalanceOf)
}

func (c *Chain) Assets() (AssetAPI, bool) {
	return lookup[AssetAPI](c, CapAssetAPI)
}
