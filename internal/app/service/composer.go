package service

import (
	"hub_balance/internal/app/chain"
	"hub_balance/internal/app/pallet"
	"hub_balance/internal/app/port"
	"hub_balance/internal/domain/entity"
	"hub_balance/internal/pkg/logger"
)

type moduleStep struct {
	module     entity.Module
	capability chain.Capability
	build      func(rt pallet.Runtime) any
}

// moduleSteps is the closed list of known modules, in attach order: base balances first,
// then the modules whose locks they explain, then assets.
var moduleSteps = []moduleStep{
	{entity.ModuleSystem, chain.CapSystem, func(rt pallet.Runtime) any { return pallet.NewSystem(rt) }},
	{entity.ModuleBalances, chain.CapBalances, func(rt pallet.Runtime) any { return pallet.NewBalances(rt) }},
	{entity.ModuleVesting, chain.CapVesting, func(rt pallet.Runtime) any { return pallet.NewVesting(rt) }},
	{entity.ModuleStaking, chain.CapStaking, func(rt pallet.Runtime) any { return pallet.NewStaking(rt) }},
	{entity.ModuleConvictionVoting, chain.CapConvictionVoting, func(rt pallet.Runtime) any { return pallet.NewConvictionVoting(rt) }},
	{entity.ModuleDelegatedStaking, chain.CapDelegatedStaking, func(rt pallet.Runtime) any { return pallet.NewDelegatedStaking(rt) }},
	{entity.ModuleAssets, chain.CapAssets, func(rt pallet.Runtime) any { return pallet.NewAssets(rt) }},
	{entity.ModulePoolAssets, chain.CapPoolAssets, func(rt pallet.Runtime) any { return pallet.NewPoolAssets(rt) }},
	{entity.ModuleForeignAssets, chain.CapForeignAssets, func(rt pallet.Runtime) any { return pallet.NewForeignAssets(rt) }},
}

// Composer fills the capability table of a chain from its active module set.
type Composer struct {
	logger port.Logger
}

func NewComposer(l port.Logger) *Composer {
	if l == nil {
		l = logger.Nop()
	}
	return &Composer{logger: l}
}

// Compose attaches a query set for every known module the chain includes, then the
// balanceOf resolver and, when an asset module is present, the asset API.
// Capabilities already attached are left untouched, so composing twice is harmless.
func (c *Composer) Compose(ch *chain.Chain) *chain.Chain {
	modules := ch.Descriptor().Modules
	log := c.logger.With("chain", string(ch.ID()))
	rt := ch.Runtime(c.logger)

	hasAssets := false
	for _, step := range moduleSteps {
		if !modules.Has(step.module) {
			log.Debug("module not in runtime, skipping", "module", string(step.module))
			continue
		}
		if _, ok := chain.AssetModuleCapabilities[step.module]; ok {
			hasAssets = true
		}
		if ch.Has(step.capability) {
			continue
		}
		ch.Attach(step.capability, step.build(rt))
	}

	if !ch.Has(chain.CapBalanceOf) {
		ch.Attach(chain.CapBalanceOf, NewBalanceResolver(ch, c.logger))
	}
	if hasAssets && !ch.Has(chain.CapAssetAPI) {
		ch.Attach(chain.CapAssetAPI, NewAssetService(ch, c.logger))
	}

	log.Debug("chain composed", "capabilities", len(ch.Capabilities()))
	return ch
}
