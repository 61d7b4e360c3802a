package pallet

import (
	"context"
	"math/big"

	"hub_balance/internal/domain/entity"
)

type Vesting struct {
	querySet
}

func NewVesting(rt Runtime) *Vesting {
	return &Vesting{querySet: newQuerySet(rt, entity.ModuleVesting)}
}

type vestingSchedule struct {
	Locked        amount `json:"locked"`
	PerBlock      amount `json:"per_block"`
	StartingBlock uint32 `json:"starting_block"`
}

// Schedules returns every vesting schedule of the accounts, in account order.
func (v *Vesting) Schedules(ctx context.Context, accounts []string) ([]entity.VestingSchedule, error) {
	if err := v.begin(accounts); err != nil {
		return nil, err
	}

	raw, err := v.values(ctx, VestingVesting, accountKeys(accounts))
	if err != nil {
		return nil, err
	}

	out := []entity.VestingSchedule{}
	for _, r := range raw {
		schedules, _, err := decode[[]vestingSchedule](r)
		if err != nil {
			return nil, v.decodeError(VestingVesting, err)
		}
		for _, s := range schedules {
			out = append(out, entity.VestingSchedule{
				Locked:        s.Locked.Int(),
				PerBlock:      s.PerBlock.Int(),
				StartingBlock: s.StartingBlock,
			})
		}
	}
	return out, nil
}

// AccountBalance sums locked and per_block over all schedules.
func (v *Vesting) AccountBalance(ctx context.Context, accounts []string) (entity.VestingBalance, error) {
	schedules, err := v.Schedules(ctx, accounts)
	if err != nil {
		return entity.VestingBalance{}, err
	}

	out := entity.VestingBalance{Locked: new(big.Int), PerBlock: new(big.Int)}
	for _, s := range schedules {
		out.Locked.Add(out.Locked, s.Locked)
		out.PerBlock.Add(out.PerBlock, s.PerBlock)
	}
	return out, nil
}
