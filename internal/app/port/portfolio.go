package port

import (
	"context"

	"hub_balance/internal/domain/entity"
)

// BalanceService aggregates account balances across connected chains.
type BalanceService interface {
	// Balance returns the balance of account on chainID, or across all chains when chainID is nil.
	Balance(ctx context.Context, account *entity.Account, chainID *entity.ChainID) (*entity.AccountBalance, error)

	// BalanceReport is Balance plus the chains whose contribution was dropped.
	BalanceReport(ctx context.Context, account *entity.Account, chainID *entity.ChainID) (*entity.AccountBalance, []entity.ChainFailure, error)
}
