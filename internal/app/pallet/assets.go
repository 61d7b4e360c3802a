package pallet

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"hub_balance/internal/domain/entity"
	huberrors "hub_balance/internal/pkg/errors"
)

// AssetModule is the read surface shared by Assets, PoolAssets and ForeignAssets.
type AssetModule interface {
	Module() entity.Module
	ListAssets(ctx context.Context) ([]entity.Asset, error)
	GetAssetBalance(ctx context.Context, accounts []string, assetID string) (*entity.AssetHoldings, error)
	GetAssetsBalance(ctx context.Context, accounts []string) ([]entity.AssetBalance, error)
}

// Assets reads an asset module keyed by numeric ids. It serves both Assets and PoolAssets.
type Assets struct {
	querySet
}

func NewAssets(rt Runtime) *Assets {
	return &Assets{querySet: newQuerySet(rt, entity.ModuleAssets)}
}

func NewPoolAssets(rt Runtime) *Assets {
	return &Assets{querySet: newQuerySet(rt, entity.ModulePoolAssets)}
}

type assetDetails struct {
	Owner        string          `json:"owner"`
	Issuer       string          `json:"issuer"`
	Admin        string          `json:"admin"`
	Freezer      string          `json:"freezer"`
	Supply       amount          `json:"supply"`
	Deposit      amount          `json:"deposit"`
	MinBalance   amount          `json:"min_balance"`
	IsSufficient bool            `json:"is_sufficient"`
	Accounts     uint32          `json:"accounts"`
	Sufficients  uint32          `json:"sufficients"`
	Approvals    uint32          `json:"approvals"`
	Status       json.RawMessage `json:"status"`
}

func (d assetDetails) toEntity() entity.AssetDetails {
	return entity.AssetDetails{
		Owner:        d.Owner,
		Issuer:       d.Issuer,
		Admin:        d.Admin,
		Freezer:      d.Freezer,
		Supply:       d.Supply.Int(),
		Deposit:      d.Deposit.Int(),
		MinBalance:   d.MinBalance.Int(),
		IsSufficient: d.IsSufficient,
		Accounts:     d.Accounts,
		Sufficients:  d.Sufficients,
		Approvals:    d.Approvals,
		Status:       toEnum(d.Status),
	}
}

type assetAccount struct {
	Balance amount          `json:"balance"`
	Status  json.RawMessage `json:"status"`
	Reason  json.RawMessage `json:"reason"`
}

func (a assetAccount) toBalance(module entity.Module, assetID, address string) entity.AssetBalance {
	return entity.AssetBalance{
		AssetID: assetID,
		Module:  module,
		Address: address,
		Balance: a.Balance.Int(),
		Status:  toEnum(a.Status).Type,
		Reason:  toEnum(a.Reason),
	}
}

// GetAssets lists the assets of the module, or only assetID when it is set.
func (a *Assets) GetAssets(ctx context.Context, assetID *uint32) ([]entity.Asset, error) {
	if err := a.requireModule(); err != nil {
		return nil, err
	}
	item := AssetItem(a.module)

	if assetID != nil {
		raw, err := a.values(ctx, item, []entity.StorageKey{{*assetID}})
		if err != nil {
			return nil, err
		}
		d, ok, err := decode[assetDetails](raw[0])
		if err != nil {
			return nil, a.decodeError(item, err)
		}
		if !ok {
			return []entity.Asset{}, nil
		}
		return []entity.Asset{{
			ID:           strconv.FormatUint(uint64(*assetID), 10),
			Module:       a.module,
			AssetDetails: d.toEntity(),
		}}, nil
	}

	entries, err := a.entries(ctx, item, nil)
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
			return nil, a.decodeError(item, err)
		}
		if !ok {
			continue
		}
		out = append(out, entity.Asset{
			ID:           keyText(e.Keys[0]),
			Module:       a.module,
			AssetDetails: d.toEntity(),
		})
	}
	return out, nil
}

func (a *Assets) ListAssets(ctx context.Context) ([]entity.Asset, error) {
	return a.GetAssets(ctx, nil)
}

// GetAssetBalance reads the balance of one asset for every account. Accounts
// without an entry are skipped; nil is returned when none has one.
func (a *Assets) GetAssetBalance(ctx context.Context, accounts []string, assetID string) (*entity.AssetHoldings, error) {
	if err := a.validateAccounts(accounts); err != nil {
		return nil, err
	}
	id, err := a.parseAssetID(assetID)
	if err != nil {
		return nil, err
	}
	if err := a.requireModule(); err != nil {
		return nil, err
	}

	keys := make([]entity.StorageKey, len(accounts))
	for i, acc := range accounts {
		keys[i] = entity.StorageKey{id, acc}
	}
	return readHoldings(ctx, a.querySet, strconv.FormatUint(uint64(id), 10), accounts, keys)
}

// GetAssetsBalance lists the assets, then reads the balance of each for a single account.
func (a *Assets) GetAssetsBalance(ctx context.Context, accounts []string) ([]entity.AssetBalance, error) {
	if err := a.beginSingle(accounts); err != nil {
		return nil, err
	}
	if err := a.compatible(AssetAccountItem(a.module)); err != nil {
		return nil, err
	}

	assets, err := a.GetAssets(ctx, nil)
	if err != nil {
		return nil, err
	}

	keys := make([]entity.StorageKey, 0, len(assets))
	ids := make([]string, 0, len(assets))
	for _, asset := range assets {
		id, err := strconv.ParseUint(asset.ID, 10, 32)
		if err != nil {
			continue
		}
		keys = append(keys, entity.StorageKey{uint32(id), accounts[0]})
		ids = append(ids, asset.ID)
	}
	return readBalances(ctx, a.querySet, ids, accounts[0], keys)
}

func (a *Assets) parseAssetID(assetID string) (uint32, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(assetID), 10, 32)
	if err != nil {
		return 0, a.errorf(huberrors.ErrInvalidArgument, "asset id %q is not numeric", assetID)
	}
	return uint32(id), nil
}

// readHoldings reads one asset for several accounts, keeping existing entries only.
func readHoldings(ctx context.Context, q querySet, assetID string, accounts []string, keys []entity.StorageKey) (*entity.AssetHoldings, error) {
	item := AssetAccountItem(q.module)
	raw, err := q.values(ctx, item, keys)
	if err != nil {
		return nil, err
	}

	balances := []entity.AssetBalance{}
	for i, r := range raw {
		acc, ok, err := decode[assetAccount](r)
		if err != nil {
			return nil, q.decodeError(item, err)
		}
		if ok {
			balances = append(balances, acc.toBalance(q.module, assetID, accounts[i]))
		}
	}
	if len(balances) == 0 {
		return nil, nil
	}
	return &entity.AssetHoldings{AssetID: assetID, Module: q.module, Balances: balances}, nil
}

// readBalances reads several assets for one account, keeping existing entries only.
func readBalances(ctx context.Context, q querySet, ids []string, account string, keys []entity.StorageKey) ([]entity.AssetBalance, error) {
	out := []entity.AssetBalance{}
	if len(keys) == 0 {
		return out, nil
	}

	item := AssetAccountItem(q.module)
	raw, err := q.values(ctx, item, keys)
	if err != nil {
		return nil, err
	}
	for i, r := range raw {
		acc, ok, err := decode[assetAccount](r)
		if err != nil {
			return nil, q.decodeError(item, err)
		}
		if ok {
			out = append(out, acc.toBalance(q.module, ids[i], account))
		}
	}
	return out, nil
}

// keyText renders a storage key part: strings without their quotes, anything else as raw JSON.
func keyText(raw json.RawMessage) string {
	var s string
	if err := jsonAPI.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

// toEnum accepts "Variant" or {"type": "Variant", "value": ...}.
func toEnum(raw json.RawMessage) entity.Enum {
	if isAbsent(raw) {
		return entity.Enum{}
	}
	var s string
	if err := jsonAPI.Unmarshal(raw, &s); err == nil {
		return entity.Enum{Type: s}
	}
	var e entity.Enum
	if err := jsonAPI.Unmarshal(raw, &e); err != nil {
		return entity.Enum{}
	}
	return e
}
