package entity

import "math/big"

// UnlockChunk is a part of a staking ledger that becomes free at Era.
type UnlockChunk struct {
	Value *big.Int `json:"value"`
	Era   uint32   `json:"era"`
}

// StakingLedger is the decoded value of Staking.Ledger.
type StakingLedger struct {
	Stash     string        `json:"stash"`
	Total     *big.Int      `json:"total"`
	Active    *big.Int      `json:"active"`
	Unlocking []UnlockChunk `json:"unlocking"`
}

// VestingSchedule is one entry of Vesting.Vesting.
type VestingSchedule struct {
	Locked        *big.Int `json:"locked"`
	PerBlock      *big.Int `json:"per_block"`
	StartingBlock uint32   `json:"starting_block"`
}

// VestingBalance sums vesting schedules.
type VestingBalance struct {
	Locked   *big.Int `json:"locked"`
	PerBlock *big.Int `json:"perBlock"`
}

// BlocksRemaining estimates the blocks left until everything is released.
// Integer division: the remainder stays in Locked.
func (v VestingBalance) BlocksRemaining() *big.Int {
	if v.PerBlock == nil || v.PerBlock.Sign() == 0 || v.Locked == nil {
		return new(big.Int)
	}
	return new(big.Int).Quo(v.Locked, v.PerBlock)
}

// Delegation is the decoded value of DelegatedStaking.Delegators.
type Delegation struct {
	Agent  string   `json:"agent"`
	Amount *big.Int `json:"amount"`
}

// DelegationBalance sums delegations over a set of accounts.
type DelegationBalance struct {
	Delegated *big.Int `json:"delegated"`
	Agents    []string `json:"agents"`
}
