package entity

import (
	"sort"
	"strings"
)

// ChainID is the short identifier of a chain (e.g. "polkadot", "pah").
type ChainID string

// Module is the name of a runtime module (pallet) as reported by the runtime metadata.
type Module string

// Known runtime modules.
const (
	ModuleSystem           Module = "System"
	ModuleBalances         Module = "Balances"
	ModuleAssets           Module = "Assets"
	ModulePoolAssets       Module = "PoolAssets"
	ModuleForeignAssets    Module = "ForeignAssets"
	ModuleStaking          Module = "Staking"
	ModuleVesting          Module = "Vesting"
	ModuleConvictionVoting Module = "ConvictionVoting"
	ModuleDelegatedStaking Module = "DelegatedStaking"
	ModuleReferenda        Module = "Referenda"
)

// NativeAsset describes the native token of a chain.
type NativeAsset struct {
	Symbol   string `json:"symbol" yaml:"symbol"`
	Name     string `json:"name" yaml:"name"`
	Decimals int    `json:"decimals" yaml:"decimals"`
}

// ChainInfo is the static definition of a chain, known before connecting.
type ChainInfo struct {
	ID         ChainID     `json:"id" yaml:"id"`
	Name       string      `json:"name" yaml:"name"`
	Network    string      `json:"network" yaml:"network"` // relay network the chain belongs to
	ParaID     uint32      `json:"paraId" yaml:"paraId"`   // 0 for a relay chain
	SS58Prefix uint16      `json:"ss58Prefix" yaml:"ss58Prefix"`
	Asset      NativeAsset `json:"asset" yaml:"asset"`
	Endpoints  []string    `json:"-" yaml:"endpoints"`
}

// IsRelay reports whether the chain is the relay chain of its network.
func (c ChainInfo) IsRelay() bool {
	return c.ParaID == 0
}

// ModuleSet is the set of active runtime modules of a connected chain.
// It is built once at connect time and never mutated afterwards.
type ModuleSet map[Module]struct{}

// NewModuleSet builds a set from module names, ignoring blanks.
func NewModuleSet(names ...string) ModuleSet {
	set := make(ModuleSet, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		set[Module(n)] = struct{}{}
	}
	return set
}

// Has reports whether m is active.
func (s ModuleSet) Has(m Module) bool {
	_, ok := s[m]
	return ok
}

// List returns the module names sorted alphabetically.
func (s ModuleSet) List() []string {
	out := make([]string, 0, len(s))
	for m := range s {
		out = append(out, string(m))
	}
	sort.Strings(out)
	return out
}

// RuntimeDescriptor identifies a connected chain together with its active module set.
type RuntimeDescriptor struct {
	ChainInfo
	Modules     ModuleSet `json:"-"`
	SpecVersion uint32    `json:"specVersion"`
}
