package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"hub_balance/internal/app/chain"
	"hub_balance/internal/pkg/logger"
)

func TestComposer_AttachesPresentModulesOnly(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	f, err := logger.NewFactoryWithCore(core, "debug", nil)
	require.NoError(t, err)

	ch, _ := newChain(t, "pah", "System", "Balances", "Assets", "ForeignAssets", "Referenda")
	NewComposer(f.Port("Composer")).Compose(ch)

	assert.Equal(t, []chain.Capability{
		chain.CapSystem, chain.CapBalances, chain.CapAssets, chain.CapForeignAssets,
		chain.CapBalanceOf, chain.CapAssetAPI,
	}, ch.Capabilities())

	_, ok := ch.Staking()
	assert.False(t, ok)

	skipped := logs.FilterMessage("module not in runtime, skipping").All()
	assert.Len(t, skipped, 5)
	for _, e := range skipped {
		assert.Equal(t, zapcore.DebugLevel, e.Level)
	}
}

func TestComposer_Idempotent(t *testing.T) {
	ch, _ := newChain(t, "polkadot", "System", "Balances", "Staking", "Vesting", "ConvictionVoting")
	c := NewComposer(nil)

	c.Compose(ch)
	first := ch.Capabilities()
	resolver, _ := ch.BalanceOf()

	c.Compose(ch)
	assert.Equal(t, first, ch.Capabilities())

	count := 0
	for _, capability := range ch.Capabilities() {
		if capability == chain.CapBalanceOf {
			count++
		}
	}
	assert.Equal(t, 1, count)

	again, _ := ch.BalanceOf()
	assert.Same(t, resolver.(*BalanceResolver), again.(*BalanceResolver))
}

func TestComposer_NoAssetModulesNoAssetAPI(t *testing.T) {
	ch, _ := newChain(t, "kusama", "System", "Balances")
	NewComposer(nil).Compose(ch)

	_, ok := ch.Assets()
	assert.False(t, ok)
	_, ok = ch.BalanceOf()
	assert.True(t, ok)
}
