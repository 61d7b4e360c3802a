package networkdefinition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hub_balance/internal/domain/entity"
	"hub_balance/internal/pkg/logger"
)

func TestKnownChains(t *testing.T) {
	tests := []struct {
		network string
		ids     []entity.ChainID
	}{
		{NetworkPolkadot, []entity.ChainID{"polkadot", "pah", "pcl", "pbh", "ppl", "pct"}},
		{NetworkKusama, []entity.ChainID{"kusama", "kah", "kbh", "kpl", "kct"}},
		{"Westend", []entity.ChainID{"westend", "wah", "wcl", "wbh", "wpl", "wct"}},
		{"rococo", nil},
	}
	for _, tt := range tests {
		t.Run(tt.network, func(t *testing.T) {
			var ids []entity.ChainID
			for _, c := range KnownChains(tt.network) {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.ids, ids)
		})
	}

	pah := KnownChains(NetworkKusama)[1]
	assert.Equal(t, uint16(2), pah.SS58Prefix)
	assert.Equal(t, "KSM", pah.Asset.Symbol)
	assert.Equal(t, 12, pah.Asset.Decimals)
	assert.False(t, pah.IsRelay())
	assert.True(t, IsKnownNetwork("POLKADOT"))
	assert.False(t, IsKnownNetwork("rococo"))
}

func TestNetworkDefinitionProvider(t *testing.T) {
	p := NewNetworkDefinitionProvider(logger.Nop(), Selection{
		Network: NetworkPolkadot,
		Chains:  []string{"pah", "polkadot", "kah", "pct"},
		Endpoints: map[string][]string{
			"polkadot": {"ws://relay:9944"},
			"pah":      {"http://pah-1:8545", "http://pah-2:8545"},
		},
		Custom: []entity.ChainInfo{
			{ID: "hydra", Name: "Hydration", ParaID: 2034, Endpoints: []string{"http://hydra"}},
			{ID: "pah", Name: "shadow", Endpoints: []string{"http://x"}},
		},
	})

	all := p.All()
	require.Len(t, all, 3)
	assert.Equal(t, entity.ChainID("polkadot"), all[0].ID)
	assert.Equal(t, entity.ChainID("pah"), all[1].ID)
	assert.Equal(t, []string{"http://pah-1:8545", "http://pah-2:8545"}, all[1].Endpoints)
	assert.Equal(t, entity.ChainID("hydra"), all[2].ID)
	assert.Equal(t, NetworkPolkadot, all[2].Network)

	def, ok := p.ByID("pct")
	require.True(t, ok, "inactive chains are still known")
	assert.Empty(t, def.Endpoints)

	_, ok = p.ByID("nope")
	assert.False(t, ok)

	network := p.ByNetwork(NetworkPolkadot)
	require.Len(t, network, 7)
	assert.Equal(t, entity.ChainID("polkadot"), network[0].ID)
	assert.Equal(t, entity.ChainID("hydra"), network[6].ID)
}

func TestNetworkDefinitionProvider_Nil(t *testing.T) {
	var p *NetworkDefinitionProvider
	assert.Empty(t, p.All())
	_, ok := p.ByID("polkadot")
	assert.False(t, ok)
}
