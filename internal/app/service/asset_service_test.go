package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hub_balance/internal/app/pallet"
	"hub_balance/internal/domain/entity"
	huberrors "hub_balance/internal/pkg/errors"
)

func TestAssetService_GetAssets(t *testing.T) {
	ch, client := newChain(t, "pah", "Assets", "PoolAssets")
	client.EXPECT().GetEntries(gomock.Any(), pallet.AssetItem(entity.ModuleAssets), gomock.Any()).
		Return([]entity.StorageEntry{{Keys: []json.RawMessage{json.RawMessage(`1984`)}, Value: json.RawMessage(`{"owner":"o","supply":"1","status":"Live"}`)}}, nil)
	client.EXPECT().GetEntries(gomock.Any(), pallet.AssetItem(entity.ModulePoolAssets), gomock.Any()).
		Return(nil, errors.New("pool assets down"))
	NewComposer(nil).Compose(ch)

	api, ok := ch.Assets()
	require.True(t, ok)

	got, err := api.GetAssets(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1984", got[0].ID)
	assert.Equal(t, entity.ModuleAssets, got[0].Module)
}

func TestAssetService_GetBalances_AllModulesFail(t *testing.T) {
	ch, client := newChain(t, "pah", "Assets", "ForeignAssets")
	client.EXPECT().GetEntries(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("down")).Times(2)
	NewComposer(nil).Compose(ch)

	api, _ := ch.Assets()
	_, err := api.GetBalances(context.Background(), []string{alice})
	require.Error(t, err)
	assert.True(t, errors.Is(err, huberrors.ErrAggregateFailure))
}

func TestAssetService_GetBalances_InvalidArgument(t *testing.T) {
	ch, client := newChain(t, "pah", "Assets")
	client.EXPECT().GetEntries(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	NewComposer(nil).Compose(ch)

	api, _ := ch.Assets()
	_, err := api.GetBalances(context.Background(), nil)
	assert.True(t, errors.Is(err, huberrors.ErrInvalidArgument))

	_, err = api.GetBalances(context.Background(), []string{alice, bob})
	assert.True(t, errors.Is(err, huberrors.ErrInvalidArgument))
}

func TestAssetService_GetAssetBalance(t *testing.T) {
	ch := composedChain(t, "pah", storage{values: map[string]string{
		"Assets.Account": `{"balance":"500","status":"Liquid","reason":"Sufficient"}`,
	}}, "Assets")

	api, _ := ch.Assets()
	got, err := api.GetAssetBalance(context.Background(), []string{alice}, entity.ModuleAssets, "1984")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "500", got.Balances[0].Balance.String())

	_, err = api.GetAssetBalance(context.Background(), []string{alice}, entity.ModulePoolAssets, "1")
	assert.True(t, errors.Is(err, huberrors.ErrCapabilityUnavailable))
}
