package pallet

import "hub_balance/internal/domain/entity"

// Storage items read by the query sets, with the field paths each decoder relies on.
var (
	SystemAccount = entity.StorageItem{Module: entity.ModuleSystem, Name: "Account", Fields: []string{"data.free", "data.reserved", "data.frozen"}}

	BalancesAccount  = entity.StorageItem{Module: entity.ModuleBalances, Name: "Account", Fields: []string{"free", "reserved", "frozen"}}
	BalancesLocks    = entity.StorageItem{Module: entity.ModuleBalances, Name: "Locks", Fields: []string{"id", "amount", "reasons"}}
	BalancesReserves = entity.StorageItem{Module: entity.ModuleBalances, Name: "Reserves", Fields: []string{"id", "amount"}}
	BalancesFreezes  = entity.StorageItem{Module: entity.ModuleBalances, Name: "Freezes", Fields: []string{"id", "amount"}}
	BalancesHolds    = entity.StorageItem{Module: entity.ModuleBalances, Name: "Holds", Fields: []string{"id", "amount"}}

	VestingVesting = entity.StorageItem{Module: entity.ModuleVesting, Name: "Vesting", Fields: []string{"locked", "per_block", "starting_block"}}

	StakingBonded = entity.StorageItem{Module: entity.ModuleStaking, Name: "Bonded"}
	StakingLedger = entity.StorageItem{Module: entity.ModuleStaking, Name: "Ledger", Fields: []string{"stash", "total", "active", "unlocking"}}

	ConvictionVotingClassLocksFor = entity.StorageItem{Module: entity.ModuleConvictionVoting, Name: "ClassLocksFor"}
	ConvictionVotingVotingFor     = entity.StorageItem{Module: entity.ModuleConvictionVoting, Name: "VotingFor"}

	ReferendaReferendumInfoFor = entity.StorageItem{Module: entity.ModuleReferenda, Name: "ReferendumInfoFor"}

	DelegatedStakingDelegators = entity.StorageItem{Module: entity.ModuleDelegatedStaking, Name: "Delegators", Fields: []string{"agent", "amount"}}
)

var assetDetailFields = []string{
	"owner", "issuer", "admin", "freezer", "supply", "deposit", "min_balance",
	"is_sufficient", "accounts", "sufficients", "approvals", "status",
}

var assetAccountFields = []string{"balance", "status", "reason"}

// AssetItem is the asset details map of an asset module.
func AssetItem(module entity.Module) entity.StorageItem {
	return entity.StorageItem{Module: module, Name: "Asset", Fields: assetDetailFields}
}

// AssetAccountItem is the per-account balance map of an asset module.
func AssetAccountItem(module entity.Module) entity.StorageItem {
	return entity.StorageItem{Module: module, Name: "Account", Fields: assetAccountFields}
}
