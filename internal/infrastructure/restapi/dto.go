package restapi

import (
	"encoding/json"
	"math/big"

	"hub_balance/internal/app/chain"
	"hub_balance/internal/domain/entity"
	"hub_balance/internal/pkg/utils"
)

// Amount is a planck amount with its human rendering.
type Amount struct {
	Raw       string `json:"raw"`
	Formatted string `json:"formatted"`
}

func newAmount(v *big.Int, decimals int) Amount {
	if v == nil {
		v = new(big.Int)
	}
	return Amount{Raw: v.String(), Formatted: utils.FormatBigInt(v, decimals)}
}

type BalanceDetailDTO struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Reason    string `json:"reason,omitempty"`
	Value     Amount `json:"value"`
	HasDetail bool   `json:"hasDetail"`
}

type LocationDTO struct {
	Chain    entity.ChainID `json:"chain"`
	Decimals int            `json:"decimals"`
	Total    Amount         `json:"total"`
}

type BalanceDTO struct {
	Total           Amount             `json:"total"`
	Transferrable   Amount             `json:"transferrable"`
	Reserved        Amount             `json:"reserved"`
	Locked          Amount             `json:"locked"`
	Allocated       Amount             `json:"allocated"`
	ReservedDetails []BalanceDetailDTO `json:"reservedDetails"`
	LockedDetails   []BalanceDetailDTO `json:"lockedDetails"`
	Locations       []LocationDTO      `json:"locations"`
}

// BalanceResponse is the body of the balance endpoints.
type BalanceResponse struct {
	Data     BalanceDTO            `json:"data"`
	Failures []entity.ChainFailure `json:"failures"`
}

// toBalanceDTO renders b with decimals for the aggregated amounts; locations use their own.
func toBalanceDTO(b *entity.AccountBalance, decimals int) BalanceDTO {
	out := BalanceDTO{
		Total:           newAmount(b.Total, decimals),
		Transferrable:   newAmount(b.Transferrable, decimals),
		Reserved:        newAmount(b.Reserved, decimals),
		Locked:          newAmount(b.Locked, decimals),
		Allocated:       newAmount(b.Allocated, decimals),
		ReservedDetails: toDetailDTOs(b.ReservedDetails, decimals),
		LockedDetails:   toDetailDTOs(b.LockedDetails, decimals),
		Locations:       make([]LocationDTO, 0, len(b.Locations)),
	}
	for _, l := range b.Locations {
		out.Locations = append(out.Locations, LocationDTO{
			Chain:    l.Chain,
			Decimals: l.Decimals,
			Total:    newAmount(l.Total, l.Decimals),
		})
	}
	return out
}

func toDetailDTOs(details []entity.BalanceDetail, decimals int) []BalanceDetailDTO {
	out := make([]BalanceDetailDTO, 0, len(details))
	for _, d := range details {
		out = append(out, BalanceDetailDTO{
			ID:        d.ID,
			Kind:      string(d.Kind),
			Reason:    d.Reason,
			Value:     newAmount(d.Value, decimals),
			HasDetail: d.HasDetail(),
		})
	}
	return out
}

type ChainDTO struct {
	entity.ChainInfo
	SpecVersion  uint32   `json:"specVersion"`
	Modules      []string `json:"modules"`
	Capabilities []string `json:"capabilities"`
}

func toChainDTO(ch *chain.Chain) ChainDTO {
	desc := ch.Descriptor()
	caps := ch.Capabilities()
	names := make([]string, 0, len(caps))
	for _, c := range caps {
		names = append(names, string(c))
	}
	return ChainDTO{
		ChainInfo:    desc.ChainInfo,
		SpecVersion:  desc.SpecVersion,
		Modules:      desc.Modules.List(),
		Capabilities: names,
	}
}

type AssetDTO struct {
	ID           string          `json:"id"`
	Module       entity.Module   `json:"module"`
	Location     json.RawMessage `json:"location,omitempty"`
	Owner        string          `json:"owner,omitempty"`
	Supply       string          `json:"supply"`
	MinBalance   string          `json:"minBalance"`
	IsSufficient bool            `json:"isSufficient"`
	Accounts     uint32          `json:"accounts"`
	Status       string          `json:"status"`
}

func toAssetDTO(a entity.Asset) AssetDTO {
	return AssetDTO{
		ID:           a.ID,
		Module:       a.Module,
		Owner:        a.Owner,
		Supply:       bigString(a.Supply),
		MinBalance:   bigString(a.MinBalance),
		IsSufficient: a.IsSufficient,
		Accounts:     a.Accounts,
		Status:       a.Status.Type,
		Location:     a.Location,
	}
}

type AssetBalanceDTO struct {
	AssetID string        `json:"assetId"`
	Module  entity.Module `json:"module"`
	Address string        `json:"address"`
	Balance string        `json:"balance"`
	Status  string        `json:"status"`
	Reason  string        `json:"reason"`
}

func toAssetBalanceDTOs(balances []entity.AssetBalance) []AssetBalanceDTO {
	out := make([]AssetBalanceDTO, 0, len(balances))
	for _, b := range balances {
		out = append(out, AssetBalanceDTO{
			AssetID: b.AssetID,
			Module:  b.Module,
			Address: b.Address,
			Balance: bigString(b.Balance),
			Status:  b.Status,
			Reason:  b.Reason.Type,
		})
	}
	return out
}

type AccountDTO struct {
	ID        string   `json:"id"`
	Addresses []string `json:"addresses"`
}

func toAccountDTO(a *entity.Account) AccountDTO {
	return AccountDTO{ID: a.ID, Addresses: a.Addresses()}
}

func bigString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
