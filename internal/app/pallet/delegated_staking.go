package pallet

import (
	"context"
	"math/big"

	"hub_balance/internal/domain/entity"
)

type DelegatedStaking struct {
	querySet
}

func NewDelegatedStaking(rt Runtime) *DelegatedStaking {
	return &DelegatedStaking{querySet: newQuerySet(rt, entity.ModuleDelegatedStaking)}
}

type delegation struct {
	Agent  string `json:"agent"`
	Amount amount `json:"amount"`
}

// AccountBalance sums the amounts the accounts delegated and lists the distinct agents.
func (d *DelegatedStaking) AccountBalance(ctx context.Context, accounts []string) (entity.DelegationBalance, error) {
	if err := d.begin(accounts); err != nil {
		return entity.DelegationBalance{}, err
	}

	raw, err := d.values(ctx, DelegatedStakingDelegators, accountKeys(accounts))
	if err != nil {
		return entity.DelegationBalance{}, err
	}

	out := entity.DelegationBalance{Delegated: new(big.Int), Agents: []string{}}
	seen := make(map[string]struct{})
	for _, r := range raw {
		del, ok, err := decode[delegation](r)
		if err != nil {
			return entity.DelegationBalance{}, d.decodeError(DelegatedStakingDelegators, err)
		}
		if !ok {
			continue
		}
		out.Delegated.Add(out.Delegated, del.Amount.Int())
		if _, dup := seen[del.Agent]; !dup && del.Agent != "" {
			seen[del.Agent] = struct{}{}
			out.Agents = append(out.Agents, del.Agent)
		}
	}
	return out, nil
}
