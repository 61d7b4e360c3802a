package pallet

import (
	"context"
	"encoding/json"

	"golang.org/x/sync/errgroup"

	"hub_balance/internal/domain/entity"
	huberrors "hub_balance/internal/pkg/errors"
)

// Balances reads the Balances module: the account map and the lock, reserve, freeze and hold vectors.
type Balances struct {
	querySet
}

func NewBalances(rt Runtime) *Balances {
	return &Balances{querySet: newQuerySet(rt, entity.ModuleBalances)}
}

// BalanceWithDetails is the summed balance plus every detail entry found for the accounts.
type BalanceWithDetails struct {
	entity.ModuleBalance
	Locks    []entity.BalanceDetail
	Reserves []entity.BalanceDetail
	Freezes  []entity.BalanceDetail
	Holds    []entity.BalanceDetail
}

type balanceLock struct {
	ID      sourceID `json:"id"`
	Amount  amount   `json:"amount"`
	Reasons enumName `json:"reasons"`
}

type idAmount struct {
	ID     sourceID `json:"id"`
	Amount amount   `json:"amount"`
}

// AccountBalance sums Balances.Account over accounts. A missing account adds nothing.
func (b *Balances) AccountBalance(ctx context.Context, accounts []string) (entity.ModuleBalance, error) {
	if err := b.begin(accounts); err != nil {
		return entity.ModuleBalance{}, err
	}

	raw, err := b.values(ctx, BalancesAccount, accountKeys(accounts))
	if err != nil {
		return entity.ModuleBalance{}, err
	}

	sum := entity.NewModuleBalance()
	for _, r := range raw {
		acc, ok, err := decode[rawBalance](r)
		if err != nil {
			return entity.ModuleBalance{}, b.decodeError(BalancesAccount, err)
		}
		if ok {
			sum.AddRaw(acc.toEntity())
		}
	}
	return sum, nil
}

// AccountBalanceWithDetails reads the balance and the four detail vectors in parallel.
// A failed detail read yields an empty list; only a failed balance read fails the call.
func (b *Balances) AccountBalanceWithDetails(ctx context.Context, accounts []string) (*BalanceWithDetails, error) {
	if err := b.begin(accounts); err != nil {
		return nil, err
	}

	var (
		balance    entity.ModuleBalance
		balanceErr error
		out        BalanceWithDetails
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		balance, balanceErr = b.AccountBalance(gctx, accounts)
		return nil
	})
	g.Go(func() error {
		out.Locks = b.details(gctx, BalancesLocks, accounts, decodeLocks)
		return nil
	})
	g.Go(func() error {
		out.Reserves = b.details(gctx, BalancesReserves, accounts, decodeIDAmounts(entity.DetailReserve))
		return nil
	})
	g.Go(func() error {
		out.Freezes = b.details(gctx, BalancesFreezes, accounts, decodeIDAmounts(entity.DetailFreeze))
		return nil
	})
	g.Go(func() error {
		out.Holds = b.details(gctx, BalancesHolds, accounts, decodeIDAmounts(entity.DetailHold))
		return nil
	})
	_ = g.Wait()

	if balanceErr != nil {
		return nil, balanceErr
	}
	out.ModuleBalance = balance
	return &out, nil
}

type detailDecoder func(raw json.RawMessage) ([]entity.BalanceDetail, error)

// details reads one detail vector per account and flattens them. Any failure degrades to an empty list.
func (b *Balances) details(ctx context.Context, item entity.StorageItem, accounts []string, dec detailDecoder) []entity.BalanceDetail {
	out := []entity.BalanceDetail{}

	raw, err := b.values(ctx, item, accountKeys(accounts))
	if err != nil {
		b.log.Debug("detail read failed, continuing without it",
			"item", item.Path(), "code", huberrors.CodePartialSourceFailure, "error", err)
		return out
	}

	for _, r := range raw {
		entries, err := dec(r)
		if err != nil {
			b.log.Debug("detail decode failed, continuing without it",
				"item", item.Path(), "code", huberrors.CodePartialSourceFailure, "error", err)
			return []entity.BalanceDetail{}
		}
		out = append(out, entries...)
	}
	return out
}

func decodeLocks(raw json.RawMessage) ([]entity.BalanceDetail, error) {
	locks, _, err := decode[[]balanceLock](raw)
	if err != nil {
		return nil, err
	}
	out := make([]entity.BalanceDetail, 0, len(locks))
	for _, l := range locks {
		out = append(out, entity.BalanceDetail{
			Value:  l.Amount.Int(),
			ID:     l.ID.ID,
			Kind:   entity.DetailLock,
			Reason: string(l.Reasons),
		})
	}
	return out, nil
}

func decodeIDAmounts(kind entity.DetailKind) detailDecoder {
	return func(raw json.RawMessage) ([]entity.BalanceDetail, error) {
		entries, _, err := decode[[]idAmount](raw)
		if err != nil {
			return nil, err
		}
		out := make([]entity.BalanceDetail, 0, len(entries))
		for _, e := range entries {
			out = append(out, entity.BalanceDetail{
				Value:  e.Amount.Int(),
				ID:     e.ID.ID,
				Kind:   kind,
				Reason: e.ID.Reason,
			})
		}
		return out, nil
	}
}
