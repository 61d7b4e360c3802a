package pallet

import (
	"context"
	"encoding/json"
	"strings"

	"hub_balance/internal/domain/entity"
	huberrors "hub_balance/internal/pkg/errors"
)

// ForeignAssets reads assets bridged from other consensus systems, keyed by XCM location.
type ForeignAssets struct {
	querySet
}

func NewForeignAssets(rt Runtime) *ForeignAssets {
	return &ForeignAssets{querySet: newQuerySet(rt, entity.ModuleForeignAssets)}
}

// GetAssets lists the foreign assets. The id of each asset is its location JSON.
func (f *ForeignAssets) GetAssets(ctx context.Context) ([]entity.Asset, error) {
	if err := f.requireModule(); err != nil {
		return nil, err
	}
	item := AssetItem(f.module)

	entries, err := f.entries(ctx, item, nil)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Asset, 0, len(entries))
	for _, e := range entries {
		if len(e.Keys) == 0 {
			continue
		}
		d, ok, err := decode[assetDetails](e.Value)
		if err != nil {
			return nil, f.decodeError(item, err)
		}
		if !ok {
			continue
		}
		location := append(json.RawMessage(nil), e.Keys[0]...)
		out = append(out, entity.Asset{
			ID:           string(location),
			Module:       f.module,
			Location:     location,
			AssetDetails: d.toEntity(),
		})
	}
	return out, nil
}

func (f *ForeignAssets) ListAssets(ctx context.Context) ([]entity.Asset, error) {
	return f.GetAssets(ctx)
}

// GetAssetBalance reads the balance of the asset at the given location JSON for every account.
func (f *ForeignAssets) GetAssetBalance(ctx context.Context, accounts []string, assetID string) (*entity.AssetHoldings, error) {
	if err := f.validateAccounts(accounts); err != nil {
		return nil, err
	}
	location := json.RawMessage(strings.TrimSpace(assetID))
	if !json.Valid(location) || isAbsent(location) {
		return nil, f.errorf(huberrors.ErrInvalidArgument, "asset id %q is not a location", assetID)
	}
	if err := f.requireModule(); err != nil {
		return nil, err
	}

	keys := make([]entity.StorageKey, len(accounts))
	for i, acc := range accounts {
		keys[i] = entity.StorageKey{location, acc}
	}
	return readHoldings(ctx, f.querySet, string(location), accounts, keys)
}

// GetAssetsBalance lists the foreign assets, then reads the balance of each for a single account.
func (f *ForeignAssets) GetAssetsBalance(ctx context.Context, accounts []string) ([]entity.AssetBalance, error) {
	if err := f.beginSingle(accounts); err != nil {
		return nil, err
	}
	if err := f.compatible(AssetAccountItem(f.module)); err != nil {
		return nil, err
	}

	assets, err := f.GetAssets(ctx)
	if err != nil {
		return nil, err
	}

	keys := make([]entity.StorageKey, 0, len(assets))
	ids := make([]string, 0, len(assets))
	for _, asset := range assets {
		keys = append(keys, entity.StorageKey{asset.Location, accounts[0]})
		ids = append(ids, asset.ID)
	}
	return readBalances(ctx, f.querySet, ids, accounts[0], keys)
}
