package networkdefinition

import (
	"fmt"
	"sort"
	"strings"

	"hub_balance/internal/app/port"
	"hub_balance/internal/domain/entity"
)

// Relay networks with a built-in chain table.
const (
	NetworkPolkadot = "polkadot"
	NetworkKusama   = "kusama"
	NetworkWestend  = "westend"
)

// Predefined relay chains
var ( //nolint:gochecknoglobals // Global for definitions
	Polkadot = entity.ChainInfo{
		ID:         "polkadot",
		Name:       "Polkadot",
		Network:    NetworkPolkadot,
		SS58Prefix: 0,
		Asset:      entity.NativeAsset{Symbol: "DOT", Name: "Polkadot", Decimals: 10},
	}
	Kusama = entity.ChainInfo{
		ID:         "kusama",
		Name:       "Kusama",
		Network:    NetworkKusama,
		SS58Prefix: 2,
		Asset:      entity.NativeAsset{Symbol: "KSM", Name: "Kusama", Decimals: 12},
	}
	Westend = entity.ChainInfo{
		ID:         "westend",
		Name:       "Westend",
		Network:    NetworkWestend,
		SS58Prefix: 42,
		Asset:      entity.NativeAsset{Symbol: "WND", Name: "Westend", Decimals: 12},
	}
)

// allKnownDefinitions lists every built-in chain, relay first within a network.
var allKnownDefinitions = []entity.ChainInfo{ //nolint:gochecknoglobals // Global for definitions
	Polkadot,
	systemParachain(Polkadot, "pah", "Polkadot Asset Hub", 1000),
	systemParachain(Polkadot, "pcl", "Polkadot Collectives", 1001),
	systemParachain(Polkadot, "pbh", "Polkadot Bridge Hub", 1002),
	systemParachain(Polkadot, "ppl", "Polkadot People", 1004),
	systemParachain(Polkadot, "pct", "Polkadot Coretime", 1005),

	Kusama,
	systemParachain(Kusama, "kah", "Kusama Asset Hub", 1000),
	systemParachain(Kusama, "kbh", "Kusama Bridge Hub", 1002),
	systemParachain(Kusama, "kpl", "Kusama People", 1004),
	systemParachain(Kusama, "kct", "Kusama Coretime", 1005),

	Westend,
	systemParachain(Westend, "wah", "Westend Asset Hub", 1000),
	systemParachain(Westend, "wcl", "Westend Collectives", 1001),
	systemParachain(Westend, "wbh", "Westend Bridge Hub", 1002),
	systemParachain(Westend, "wpl", "Westend People", 1004),
	systemParachain(Westend, "wct", "Westend Coretime", 1005),
}

// systemParachain derives a system parachain that shares the relay's asset and address format.
func systemParachain(relay entity.ChainInfo, id entity.ChainID, name string, paraID uint32) entity.ChainInfo {
	return entity.ChainInfo{
		ID:         id,
		Name:       name,
		Network:    relay.Network,
		ParaID:     paraID,
		SS58Prefix: relay.SS58Prefix,
		Asset:      relay.Asset,
	}
}

// IsKnownNetwork reports whether network has a built-in chain table.
func IsKnownNetwork(network string) bool {
	switch strings.ToLower(network) {
	case NetworkPolkadot, NetworkKusama, NetworkWestend:
		return true
	}
	return false
}

// KnownChains returns the built-in chains of network, relay first.
func KnownChains(network string) []entity.ChainInfo {
	network = strings.ToLower(network)
	out := make([]entity.ChainInfo, 0, 6)
	for _, def := range allKnownDefinitions {
		if def.Network == network {
			out = append(out, def)
		}
	}
	return out
}

// Selection picks the chains to serve.
type Selection struct {
	Network   string              // relay network
	Chains    []string            // subset of the network's chain ids; empty means all
	Endpoints map[string][]string // chain id -> gateway URLs
	Custom    []entity.ChainInfo  // chains outside the built-in table, with their endpoints
}

// NetworkDefinitionProvider implements port.ChainDefinitionProvider over the built-in
// table and the custom chains of a Selection.
type NetworkDefinitionProvider struct {
	logger          port.Logger
	allChainDefs    map[entity.ChainID]entity.ChainInfo
	activeChainDefs []entity.ChainInfo
}

var _ port.ChainDefinitionProvider = (*NetworkDefinitionProvider)(nil)

// NewNetworkDefinitionProvider activates the selected chains. Selected ids that are
// not part of the network, and chains left without endpoints, are skipped with a warning.
func NewNetworkDefinitionProvider(log port.Logger, sel Selection) *NetworkDefinitionProvider {
	p := &NetworkDefinitionProvider{
		logger:          log,
		allChainDefs:    make(map[entity.ChainID]entity.ChainInfo, len(allKnownDefinitions)+len(sel.Custom)),
		activeChainDefs: make([]entity.ChainInfo, 0),
	}
	for _, def := range allKnownDefinitions {
		p.allChainDefs[def.ID] = def
	}

	candidates := KnownChains(sel.Network)
	if len(sel.Chains) > 0 {
		wanted := make(map[entity.ChainID]struct{}, len(sel.Chains))
		for _, id := range sel.Chains {
			wanted[entity.ChainID(strings.ToLower(strings.TrimSpace(id)))] = struct{}{}
		}
		filtered := candidates[:0:0]
		for _, def := range candidates {
			if _, ok := wanted[def.ID]; ok {
				filtered = append(filtered, def)
				delete(wanted, def.ID)
			}
		}
		for id := range wanted {
			p.logger.Warn(fmt.Sprintf("Chain '%s' is not part of network '%s'. Skipping.", id, sel.Network))
		}
		candidates = filtered
	}

	for _, custom := range sel.Custom {
		if custom.ID == "" {
			p.logger.Warn("Custom chain without id. Skipping.", "name", custom.Name)
			continue
		}
		if _, exists := p.allChainDefs[custom.ID]; exists {
			p.logger.Warn(fmt.Sprintf("Custom chain '%s' shadows a built-in chain. Skipping.", custom.ID))
			continue
		}
		if custom.Network == "" {
			custom.Network = strings.ToLower(sel.Network)
		}
		p.allChainDefs[custom.ID] = custom
		candidates = append(candidates, custom)
	}

	for _, def := range candidates {
		if urls := sel.Endpoints[string(def.ID)]; len(urls) > 0 {
			def.Endpoints = append([]string(nil), urls...)
		}
		if len(def.Endpoints) == 0 {
			p.logger.Warn(fmt.Sprintf("Chain '%s' has no endpoints configured. Skipping.", def.ID))
			continue
		}
		p.allChainDefs[def.ID] = def
		p.activeChainDefs = append(p.activeChainDefs, def)
		p.logger.Debug(fmt.Sprintf("  - Active chain: %s (ID: %s, ParaID: %d, endpoints: %d)", def.Name, def.ID, def.ParaID, len(def.Endpoints)))
	}

	if len(p.activeChainDefs) == 0 {
		p.logger.Warn("No chains are active.", "network", sel.Network)
	} else {
		p.logger.Info(fmt.Sprintf("NetworkDefinitionProvider initialized. Active chains: %d", len(p.activeChainDefs)))
	}
	return p
}

// All returns the active chain definitions in connect order.
func (p *NetworkDefinitionProvider) All() []entity.ChainInfo {
	if p == nil {
		return []entity.ChainInfo{}
	}
	defsCopy := make([]entity.ChainInfo, len(p.activeChainDefs))
	copy(defsCopy, p.activeChainDefs)
	return defsCopy
}

// ByID returns a chain definition by id, active or not.
func (p *NetworkDefinitionProvider) ByID(id entity.ChainID) (entity.ChainInfo, bool) {
	if p == nil {
		return entity.ChainInfo{}, false
	}
	for _, def := range p.activeChainDefs {
		if def.ID == id {
			return def, true
		}
	}
	def, ok := p.allChainDefs[id]
	if ok {
		p.logger.Debug(fmt.Sprintf("Chain '%s' found in all definitions but it is not active.", id))
	}
	return def, ok
}

// ByNetwork returns the known chains of a relay network, relay first, then by para id.
func (p *NetworkDefinitionProvider) ByNetwork(network string) []entity.ChainInfo {
	if p == nil {
		return []entity.ChainInfo{}
	}
	network = strings.ToLower(network)
	out := make([]entity.ChainInfo, 0)
	for _, def := range p.allChainDefs {
		if def.Network == network {
			out = append(out, def)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ParaID != out[j].ParaID {
			return out[i].ParaID < out[j].ParaID
		}
		return out[i].ID < out[j].ID
	})
	return out
}
