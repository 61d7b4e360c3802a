package network

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"hub_balance/internal/app/chain"
	"hub_balance/internal/app/port"
	"hub_balance/internal/app/port/mocks"
	"hub_balance/internal/app/service"
	"hub_balance/internal/domain/entity"
	networkdefinition "hub_balance/internal/infrastructure/network/definition"
	"hub_balance/internal/pkg/logger"
)

func definitions() *networkdefinition.NetworkDefinitionProvider {
	return networkdefinition.NewNetworkDefinitionProvider(logger.Nop(), networkdefinition.Selection{
		Network: networkdefinition.NetworkPolkadot,
		Chains:  []string{"polkadot", "pah", "ppl"},
		Endpoints: map[string][]string{
			"polkadot": {"ws://relay"},
			"pah":      {"http://pah"},
			"ppl":      {"http://ppl"},
		},
	})
}

func byID(id entity.ChainID) gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		info, ok := x.(entity.ChainInfo)
		return ok && info.ID == id
	})
}

func TestConnector_ConnectSkipsFailingChains(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockChainClientProvider(ctrl)

	relay := mocks.NewMockChainClient(ctrl)
	relay.EXPECT().ActiveModules(gomock.Any()).Return([]string{"System", "Balances", "Staking"}, nil)
	relay.EXPECT().CompatibilityToken(gomock.Any()).Return(entity.CompatibilityToken{SpecVersion: 1_005_000}, nil)
	relay.EXPECT().Close().Times(1)

	people := mocks.NewMockChainClient(ctrl)
	people.EXPECT().ActiveModules(gomock.Any()).Return(nil, errors.New("method not found"))
	people.EXPECT().Close().Times(1)

	provider.EXPECT().Dial(gomock.Any(), byID("polkadot")).Return(relay, nil)
	provider.EXPECT().Dial(gomock.Any(), byID("pah")).Return(nil, errors.New("all endpoints failed"))
	provider.EXPECT().Dial(gomock.Any(), byID("ppl")).Return(people, nil)

	c := NewConnector(definitions(), provider, service.NewComposer(nil), 2, zap.NewNop(), nil)
	assert.Equal(t, chain.StatusDisconnected, c.Status())

	require.NoError(t, c.Connect(context.Background()))
	assert.Equal(t, chain.StatusConnected, c.Status())
	assert.Equal(t, []entity.ChainID{"polkadot"}, c.Chains())

	ch, ok := c.Get("polkadot")
	require.True(t, ok)
	assert.Equal(t, uint32(1_005_000), ch.Descriptor().SpecVersion)
	assert.True(t, ch.Has(chain.CapStaking))
	assert.True(t, ch.Has(chain.CapBalanceOf))
	assert.False(t, ch.Has(chain.CapAssetAPI))

	_, ok = c.Get("pah")
	assert.False(t, ok)

	// already connected: no dials
	require.NoError(t, c.Connect(context.Background()))

	c.Disconnect()
	assert.Equal(t, chain.StatusDisconnected, c.Status())
	assert.Empty(t, c.Chains())
	_, ok = c.Get("polkadot")
	assert.False(t, ok)
}

func TestConnector_NoChainConnected(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockChainClientProvider(ctrl)
	provider.EXPECT().Dial(gomock.Any(), gomock.Any()).Return(nil, errors.New("refused")).Times(3)

	c := NewConnector(definitions(), provider, service.NewComposer(nil), 0, zap.NewNop(), nil)
	err := c.Connect(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoChainConnected))
	assert.Equal(t, chain.StatusDisconnected, c.Status())
}

func TestConnector_KeepsDefinitionOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockChainClientProvider(ctrl)
	provider.EXPECT().Dial(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, info entity.ChainInfo) (port.ChainClient, error) {
		client := mocks.NewMockChainClient(ctrl)
		client.EXPECT().ActiveModules(gomock.Any()).Return([]string{"Balances"}, nil)
		client.EXPECT().CompatibilityToken(gomock.Any()).Return(entity.CompatibilityToken{}, nil)
		client.EXPECT().Close().AnyTimes()
		return client, nil
	}).Times(3)

	c := NewConnector(definitions(), provider, service.NewComposer(nil), 3, zap.NewNop(), nil)
	require.NoError(t, c.Connect(context.Background()))
	assert.Equal(t, []entity.ChainID{"polkadot", "pah", "ppl"}, c.Chains())
	c.Disconnect()
}

func TestConnector_DebugOverrideThroughRootLogger(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockChainClientProvider(ctrl)
	provider.EXPECT().Dial(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, info entity.ChainInfo) (port.ChainClient, error) {
		client := mocks.NewMockChainClient(ctrl)
		client.EXPECT().ActiveModules(gomock.Any()).Return([]string{"System", "Balances"}, nil)
		client.EXPECT().CompatibilityToken(gomock.Any()).Return(entity.CompatibilityToken{SpecVersion: 1}, nil)
		client.EXPECT().Close().AnyTimes()
		return client, nil
	}).Times(3)

	core, logs := observer.New(zapcore.DebugLevel)
	f, err := logger.NewFactoryWithCore(core, "info", map[string]string{"Connector": "debug"})
	require.NoError(t, err)

	// same wiring as cmd/hub_balance: the root logger is handed over unnamed
	c := NewConnector(definitions(), provider, service.NewComposer(f.Port("Composer")), 2, f.Named(""), nil)
	require.NoError(t, c.Connect(context.Background()))
	c.Disconnect()

	ready := logs.FilterMessage("Chain ready").All()
	require.Len(t, ready, 3)
	for _, e := range ready {
		assert.Equal(t, "Connector", e.LoggerName)
		assert.Equal(t, zapcore.DebugLevel, e.Level)
	}
	assert.Equal(t, 3, logs.FilterMessage("Chain disconnected").Len())
}
