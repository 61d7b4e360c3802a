package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"hub_balance/internal/app/chain"
	"hub_balance/internal/app/port"
	"hub_balance/internal/domain/entity"
	huberrors "hub_balance/internal/pkg/errors"
	"hub_balance/internal/pkg/logger"
	"hub_balance/internal/pkg/metrics"
)

// AccountAggregator implements port.BalanceService over the chains of a registry.
type AccountAggregator struct {
	registry chain.Registry
	logger   port.Logger
	metrics  *metrics.Metrics
}

var _ port.BalanceService = (*AccountAggregator)(nil)

// NewAccountAggregator creates an aggregator. m may be nil.
func NewAccountAggregator(registry chain.Registry, l port.Logger, m *metrics.Metrics) *AccountAggregator {
	if l == nil {
		l = logger.Nop()
	}
	return &AccountAggregator{registry: registry, logger: l, metrics: m}
}

type chainOutcome struct {
	chain   entity.ChainID
	balance *entity.AccountBalance
	err     error
	skipped bool
}

// Balance returns the balance of account on chainID, or summed over every connected chain.
func (a *AccountAggregator) Balance(ctx context.Context, account *entity.Account, chainID *entity.ChainID) (*entity.AccountBalance, error) {
	b, _, err := a.BalanceReport(ctx, account, chainID)
	return b, err
}

// BalanceReport is Balance plus a record of every chain that failed. A failing chain
// never aborts the others; it only disappears from the locations.
func (a *AccountAggregator) BalanceReport(ctx context.Context, account *entity.Account, chainID *entity.ChainID) (*entity.AccountBalance, []entity.ChainFailure, error) {
	if a.registry.Status() != chain.StatusConnected {
		return nil, nil, huberrors.New(huberrors.ErrNotConnected, "", "", "")
	}
	if account == nil || account.Len() == 0 {
		return nil, nil, huberrors.New(huberrors.ErrInvalidArgument, "", "", "account has no address")
	}
	addresses := account.Addresses()

	if chainID != nil {
		return a.single(ctx, *chainID, addresses)
	}

	ids := a.registry.Chains()
	outcomes := make([]chainOutcome, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id // per-iteration copy (go 1.21 loop semantics)
		g.Go(func() error {
			outcomes[i] = a.resolve(gctx, id, addresses)
			return nil
		})
	}
	_ = g.Wait()

	failures := []entity.ChainFailure{}
	for _, o := range outcomes {
		if o.err == nil {
			continue
		}
		a.logger.Warn("chain dropped from balance", "chain", string(o.chain), "error", o.err)
		a.metrics.ChainFailure(string(o.chain), "balance")
		failures = append(failures, toChainFailure(o.chain, o.err))
	}

	out, err := fold(outcomes)
	if err != nil {
		return nil, failures, err
	}
	a.logger.Debug("balance aggregated", "chains", len(ids), "failed", len(failures), "total", out.Total.String())
	return out, failures, nil
}

func (a *AccountAggregator) single(ctx context.Context, id entity.ChainID, addresses []string) (*entity.AccountBalance, []entity.ChainFailure, error) {
	ch, ok := a.registry.Get(id)
	if !ok {
		return nil, nil, huberrors.Newf(huberrors.ErrChainNotFound, string(id), "", "chain %s is not connected", id)
	}
	resolver, ok := ch.BalanceOf()
	if !ok {
		return nil, nil, huberrors.Newf(huberrors.ErrUnsupportedOperation, string(id), "", "chain %s has no balanceOf", id)
	}

	b, err := resolver.BalanceOf(ctx, addresses)
	if err != nil {
		a.metrics.ChainFailure(string(id), "balance")
		return nil, nil, err
	}
	out, err := fold([]chainOutcome{{chain: id, balance: b}})
	return out, []entity.ChainFailure{}, err
}

func (a *AccountAggregator) resolve(ctx context.Context, id entity.ChainID, addresses []string) chainOutcome {
	ch, ok := a.registry.Get(id)
	if !ok {
		return chainOutcome{chain: id, skipped: true}
	}
	resolver, ok := ch.BalanceOf()
	if !ok {
		a.logger.Debug("chain has no balanceOf, skipping", "chain", string(id))
		return chainOutcome{chain: id, skipped: true}
	}
	b, err := resolver.BalanceOf(ctx, addresses)
	return chainOutcome{chain: id, balance: b, err: err}
}

// fold sums the chain balances in registry order and checks that the total equals
// both the sum of its components and the sum of its locations.
func fold(outcomes []chainOutcome) (*entity.AccountBalance, error) {
	out := entity.NewAccountBalance()
	for _, o := range outcomes {
		if o.skipped || o.err != nil || o.balance == nil {
			continue
		}
		b := o.balance
		out.Transferrable.Add(out.Transferrable, b.Transferrable)
		out.Reserved.Add(out.Reserved, b.Reserved)
		out.Locked.Add(out.Locked, b.Locked)
		out.Allocated.Add(out.Allocated, b.Allocated)
		out.Total.Add(out.Total, b.Total)
		out.ReservedDetails = append(out.ReservedDetails, b.ReservedDetails...)
		out.LockedDetails = append(out.LockedDetails, b.LockedDetails...)
		for _, loc := range b.Locations {
			if loc.Total != nil && loc.Total.Sign() != 0 {
				out.Locations = append(out.Locations, loc)
			}
		}
	}

	components := out.ComponentSum()
	locations := out.LocationSum()
	if out.Total.Cmp(components) != 0 || out.Total.Cmp(locations) != 0 {
		return nil, huberrors.WithDetails(
			huberrors.New(huberrors.ErrInvariantViolation, "", "", "total does not match its parts"),
			map[string]string{
				"total":         out.Total.String(),
				"transferrable": out.Transferrable.String(),
				"reserved":      out.Reserved.String(),
				"locked":        out.Locked.String(),
				"locations":     locations.String(),
			})
	}
	return out, nil
}

func toChainFailure(id entity.ChainID, err error) entity.ChainFailure {
	f := entity.ChainFailure{Chain: id, Code: huberrors.Code(err), Message: err.Error()}
	var herr *huberrors.Error
	if huberrors.As(err, &herr) {
		f.Module = herr.Module
	}
	return f
}
