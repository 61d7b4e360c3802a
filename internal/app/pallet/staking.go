package pallet

import (
	"context"
	"encoding/json"

	"hub_balance/internal/domain/entity"
)

type Staking struct {
	querySet
}

func NewStaking(rt Runtime) *Staking {
	return &Staking{querySet: newQuerySet(rt, entity.ModuleStaking)}
}

type unlockChunk struct {
	Value amount `json:"value"`
	Era   uint32 `json:"era"`
}

type stakingLedger struct {
	Stash     string        `json:"stash"`
	Total     amount        `json:"total"`
	Active    amount        `json:"active"`
	Unlocking []unlockChunk `json:"unlocking"`
}

func (l stakingLedger) toEntity() entity.StakingLedger {
	out := entity.StakingLedger{
		Stash:     l.Stash,
		Total:     l.Total.Int(),
		Active:    l.Active.Int(),
		Unlocking: make([]entity.UnlockChunk, 0, len(l.Unlocking)),
	}
	for _, c := range l.Unlocking {
		out.Unlocking = append(out.Unlocking, entity.UnlockChunk{Value: c.Value.Int(), Era: c.Era})
	}
	return out
}

// AccountBalance resolves the bonded stash of every account, then reads its ledger.
// Accounts with no bonded stash or no ledger are dropped.
func (s *Staking) AccountBalance(ctx context.Context, accounts []string) ([]entity.StakingLedger, error) {
	if err := s.begin(accounts); err != nil {
		return nil, err
	}

	bonded, err := s.values(ctx, StakingBonded, accountKeys(accounts))
	if err != nil {
		return nil, err
	}

	stashes := make([]string, 0, len(bonded))
	for _, r := range bonded {
		stash, ok, err := decode[string](r)
		if err != nil {
			return nil, s.decodeError(StakingBonded, err)
		}
		if ok && stash != "" {
			stashes = append(stashes, stash)
		}
	}
	if len(stashes) == 0 {
		return []entity.StakingLedger{}, nil
	}

	return s.ledgers(ctx, stashes)
}

// LockDetails reads the ledgers keyed directly by the accounts.
func (s *Staking) LockDetails(ctx context.Context, accounts []string) ([]entity.StakingLedger, error) {
	if err := s.begin(accounts); err != nil {
		return nil, err
	}
	return s.ledgers(ctx, accounts)
}

func (s *Staking) ledgers(ctx context.Context, keys []string) ([]entity.StakingLedger, error) {
	raw, err := s.values(ctx, StakingLedger, accountKeys(keys))
	if err != nil {
		return nil, err
	}
	return decodeLedgers(raw, func(err error) error { return s.decodeError(StakingLedger, err) })
}

func decodeLedgers(raw []json.RawMessage, wrap func(error) error) ([]entity.StakingLedger, error) {
	out := []entity.StakingLedger{}
	for _, r := range raw {
		l, ok, err := decode[stakingLedger](r)
		if err != nil {
			return nil, wrap(err)
		}
		if ok {
			out = append(out, l.toEntity())
		}
	}
	return out, nil
}
