package entity

import (
	"context"
	"math/big"
)

// RawBalance is the per-account balance data of the System and Balances modules.
type RawBalance struct {
	Free     *big.Int `json:"free"`
	Reserved *big.Int `json:"reserved"`
	Frozen   *big.Int `json:"frozen"`
}

// ModuleBalance is the sum of RawBalance values over a set of accounts.
type ModuleBalance struct {
	Total         *big.Int `json:"total"`
	Transferrable *big.Int `json:"transferrable"`
	Reserved      *big.Int `json:"reserved"`
	Locked        *big.Int `json:"locked"`
}

// NewModuleBalance returns the additive identity.
func NewModuleBalance() ModuleBalance {
	return ModuleBalance{
		Total:         new(big.Int),
		Transferrable: new(big.Int),
		Reserved:      new(big.Int),
		Locked:        new(big.Int),
	}
}

// AddRaw accumulates one account:
// total += free + reserved, transferrable += free - frozen, locked += frozen.
// Frozen is part of free, so it is not added to total.
func (m *ModuleBalance) AddRaw(r RawBalance) {
	free := orZero(r.Free)
	reserved := orZero(r.Reserved)
	frozen := orZero(r.Frozen)

	m.Total.Add(m.Total, free)
	m.Total.Add(m.Total, reserved)
	m.Transferrable.Add(m.Transferrable, free)
	m.Transferrable.Sub(m.Transferrable, frozen)
	m.Reserved.Add(m.Reserved, reserved)
	m.Locked.Add(m.Locked, frozen)
}

// DetailKind tells which on-chain mechanism restricts a balance.
type DetailKind string

const (
	DetailLock    DetailKind = "lock"
	DetailFreeze  DetailKind = "freeze"
	DetailReserve DetailKind = "reserve"
	DetailHold    DetailKind = "hold"
)

// DetailFetcher lazily loads the module-specific detail behind a lock or reserve entry.
type DetailFetcher func(ctx context.Context) (any, error)

// BalanceDetail is one lock, freeze, reserve or hold entry.
type BalanceDetail struct {
	Value  *big.Int      `json:"value"`
	ID     string        `json:"id"` // lower-cased, trimmed source identifier
	Kind   DetailKind    `json:"kind"`
	Reason string        `json:"reason,omitempty"`
	Fetch  DetailFetcher `json:"-"`
}

// HasDetail reports whether a lazy fetcher is attached.
func (d BalanceDetail) HasDetail() bool {
	return d.Fetch != nil
}

// Resolve runs the lazy fetcher. It returns nil when none is attached.
func (d BalanceDetail) Resolve(ctx context.Context) (any, error) {
	if d.Fetch == nil {
		return nil, nil
	}
	return d.Fetch(ctx)
}

// Location is the contribution of one chain to an account balance.
type Location struct {
	Total    *big.Int `json:"total"`
	Chain    ChainID  `json:"chain"`
	Decimals int      `json:"decimals"`
}

// AccountBalance is the unified balance of an account, per chain or across chains.
// Invariant: Total == Transferrable + Reserved + Locked.
// Allocated is the vesting part of Locked and is not added to Total.
type AccountBalance struct {
	Total           *big.Int        `json:"total"`
	Transferrable   *big.Int        `json:"transferrable"`
	Reserved        *big.Int        `json:"reserved"`
	Locked          *big.Int        `json:"locked"`
	Allocated       *big.Int        `json:"allocated"`
	ReservedDetails []BalanceDetail `json:"reservedDetails"`
	LockedDetails   []BalanceDetail `json:"lockedDetails"`
	Locations       []Location      `json:"locations"`
}

// NewAccountBalance returns the additive identity with no locations.
func NewAccountBalance() *AccountBalance {
	return &AccountBalance{
		Total:           new(big.Int),
		Transferrable:   new(big.Int),
		Reserved:        new(big.Int),
		Locked:          new(big.Int),
		Allocated:       new(big.Int),
		ReservedDetails: []BalanceDetail{},
		LockedDetails:   []BalanceDetail{},
		Locations:       []Location{},
	}
}

// IsZero reports whether transferrable, reserved and locked are all zero.
func (b *AccountBalance) IsZero() bool {
	return b.Transferrable.Sign() == 0 && b.Reserved.Sign() == 0 && b.Locked.Sign() == 0
}

// ComponentSum returns Transferrable + Reserved + Locked.
func (b *AccountBalance) ComponentSum() *big.Int {
	sum := new(big.Int).Add(b.Transferrable, b.Reserved)
	return sum.Add(sum, b.Locked)
}

// LocationSum returns the sum of all location totals.
func (b *AccountBalance) LocationSum() *big.Int {
	sum := new(big.Int)
	for _, l := range b.Locations {
		sum.Add(sum, orZero(l.Total))
	}
	return sum
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
