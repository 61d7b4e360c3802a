package pallet

import (
	"context"

	"hub_balance/internal/domain/entity"
)

// System reads balances held in System.Account.
type System struct {
	querySet
}

func NewSystem(rt Runtime) *System {
	return &System{querySet: newQuerySet(rt, entity.ModuleSystem)}
}

type systemAccountInfo struct {
	Data rawBalance `json:"data"`
}

type rawBalance struct {
	Free     amount `json:"free"`
	Reserved amount `json:"reserved"`
	Frozen   amount `json:"frozen"`
}

func (r rawBalance) toEntity() entity.RawBalance {
	return entity.RawBalance{Free: r.Free.Int(), Reserved: r.Reserved.Int(), Frozen: r.Frozen.Int()}
}

// AccountBalance sums the balances of accounts. A missing account adds nothing.
func (s *System) AccountBalance(ctx context.Context, accounts []string) (entity.ModuleBalance, error) {
	if err := s.begin(accounts); err != nil {
		return entity.ModuleBalance{}, err
	}

	raw, err := s.values(ctx, SystemAccount, accountKeys(accounts))
	if err != nil {
		return entity.ModuleBalance{}, err
	}

	sum := entity.NewModuleBalance()
	for _, r := range raw {
		info, ok, err := decode[systemAccountInfo](r)
		if err != nil {
			return entity.ModuleBalance{}, s.decodeError(SystemAccount, err)
		}
		if ok {
			sum.AddRaw(info.Data.toEntity())
		}
	}
	return sum, nil
}
