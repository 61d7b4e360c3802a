package service

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"hub_balance/internal/app/chain"
	"hub_balance/internal/app/pallet"
	"hub_balance/internal/app/port"
	"hub_balance/internal/domain/entity"
	huberrors "hub_balance/internal/pkg/errors"
	"hub_balance/internal/pkg/logger"
	"hub_balance/internal/pkg/utils"
)

// Lock and hold ids with a module able to explain them.
const (
	lockIDVesting          = "vesting"
	lockIDStaking          = "staking"
	lockIDConvictionVoting = "pyconvot"
	holdIDDelegatedStaking = "delegatedstaking"
)

// BalanceResolver merges the System and Balances views of an account on one chain.
type BalanceResolver struct {
	chain  *chain.Chain
	logger port.Logger
}

func NewBalanceResolver(ch *chain.Chain, l port.Logger) *BalanceResolver {
	if l == nil {
		l = logger.Nop()
	}
	return &BalanceResolver{chain: ch, logger: l.With("chain", string(ch.ID()))}
}

// BalanceOf returns the balance of accounts on the chain. System and Balances are read
// concurrently; a failure of one is tolerated, a failure of both is an AggregateFailure.
// For every field the first non-zero value wins, System first.
func (r *BalanceResolver) BalanceOf(ctx context.Context, accounts []string) (*entity.AccountBalance, error) {
	chainID := string(r.chain.ID())
	if len(accounts) == 0 {
		return nil, huberrors.New(huberrors.ErrInvalidArgument, chainID, "", "no account provided")
	}

	system, hasSystem := r.chain.System()
	balances, hasBalances := r.chain.Balances()
	if !hasSystem && !hasBalances {
		return r.identity(), nil
	}

	var (
		sysBalance entity.ModuleBalance
		sysErr     error
		details    *pallet.BalanceWithDetails
		detailsErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	if hasSystem {
		g.Go(func() error {
			sysBalance, sysErr = system.AccountBalance(gctx, accounts)
			return nil
		})
	}
	if hasBalances {
		g.Go(func() error {
			details, detailsErr = balances.AccountBalanceWithDetails(gctx, accounts)
			return nil
		})
	}
	_ = g.Wait()

	sysOK := hasSystem && sysErr == nil
	balOK := hasBalances && detailsErr == nil

	switch {
	case !sysOK && !balOK:
		cause := multierr.Combine(sysErr, detailsErr)
		reasons := make([]string, 0, 2)
		for _, e := range multierr.Errors(cause) {
			reasons = append(reasons, e.Error())
		}
		return nil, huberrors.Wrap(huberrors.ErrAggregateFailure, chainID, attemptedModules(hasSystem, hasBalances),
			cause, fmt.Sprintf("failed to read balance from every source: %s", strings.Join(reasons, "; ")))
	case hasSystem && !sysOK:
		r.logger.Debug("system balance failed, using balances", "code", huberrors.CodePartialSourceFailure, "error", sysErr)
	case hasBalances && !balOK:
		r.logger.Debug("balances read failed, using system", "code", huberrors.CodePartialSourceFailure, "error", detailsErr)
	}

	var sys, bal entity.ModuleBalance
	if sysOK {
		sys = sysBalance
	}
	if balOK {
		bal = details.ModuleBalance
	}

	out := entity.NewAccountBalance()
	out.Transferrable = utils.FirstNonZero(sys.Transferrable, bal.Transferrable)
	out.Reserved = utils.FirstNonZero(sys.Reserved, bal.Reserved)
	out.Locked = utils.FirstNonZero(sys.Locked, bal.Locked)

	if out.IsZero() {
		return r.identity(), nil
	}

	if balOK {
		addr := append([]string(nil), accounts...)
		out.LockedDetails = r.withFetchers(addr, details.Locks, details.Freezes)
		out.ReservedDetails = r.withFetchers(addr, details.Reserves, details.Holds)

		for _, d := range details.Locks {
			if d.ID == lockIDVesting {
				out.Allocated.Add(out.Allocated, d.Value)
			}
		}
	}

	out.Total = out.ComponentSum()
	out.Locations = []entity.Location{{
		Total:    new(big.Int).Set(out.Total),
		Chain:    r.chain.ID(),
		Decimals: r.chain.Decimals(),
	}}
	return out, nil
}

// identity is the zero balance, with the chain still listed as a location.
func (r *BalanceResolver) identity() *entity.AccountBalance {
	out := entity.NewAccountBalance()
	out.Locations = []entity.Location{{
		Total:    new(big.Int),
		Chain:    r.chain.ID(),
		Decimals: r.chain.Decimals(),
	}}
	return out
}

// withFetchers concatenates detail lists and attaches a lazy fetcher to every entry
// a module of this chain can explain.
func (r *BalanceResolver) withFetchers(accounts []string, lists ...[]entity.BalanceDetail) []entity.BalanceDetail {
	out := []entity.BalanceDetail{}
	for _, list := range lists {
		for _, d := range list {
			d.Fetch = r.fetcherFor(d, accounts)
			out = append(out, d)
		}
	}
	return out
}

func (r *BalanceResolver) fetcherFor(d entity.BalanceDetail, accounts []string) entity.DetailFetcher {
	switch {
	case d.ID == lockIDVesting:
		if v, ok := r.chain.Vesting(); ok {
			return func(ctx context.Context) (any, error) { return v.AccountBalance(ctx, accounts) }
		}
	case d.ID == lockIDStaking:
		if s, ok := r.chain.Staking(); ok {
			return func(ctx context.Context) (any, error) { return s.LockDetails(ctx, accounts) }
		}
	case d.ID == lockIDConvictionVoting:
		if cv, ok := r.chain.ConvictionVoting(); ok {
			return func(ctx context.Context) (any, error) { return cv.LockDetails(ctx, accounts) }
		}
	case d.Kind == entity.DetailHold && strings.Contains(d.ID, holdIDDelegatedStaking):
		if ds, ok := r.chain.DelegatedStaking(); ok {
			return func(ctx context.Context) (any, error) { return ds.AccountBalance(ctx, accounts) }
		}
	}
	return nil
}

// attemptedModules names the balance sources that were read, System first.
func attemptedModules(hasSystem, hasBalances bool) string {
	modules := make([]string, 0, 2)
	if hasSystem {
		modules = append(modules, "System")
	}
	if hasBalances {
		modules = append(modules, "Balances")
	}
	return strings.Join(modules, ",")
}
