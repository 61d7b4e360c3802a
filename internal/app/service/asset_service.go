package service

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"hub_balance/internal/app/chain"
	"hub_balance/internal/app/pallet"
	"hub_balance/internal/app/port"
	"hub_balance/internal/domain/entity"
	huberrors "hub_balance/internal/pkg/errors"
	"hub_balance/internal/pkg/logger"
)

// AssetService serves the Assets, PoolAssets and ForeignAssets modules of one chain.
type AssetService struct {
	chain  *chain.Chain
	logger port.Logger
}

func NewAssetService(ch *chain.Chain, l port.Logger) *AssetService {
	if l == nil {
		l = logger.Nop()
	}
	return &AssetService{chain: ch, logger: l.With("chain", string(ch.ID()))}
}

type moduleResult[T any] struct {
	module entity.Module
	value  T
	err    error
}

// fanOut runs fn on every asset module of the chain and keeps results in module order.
func fanOut[T any](ctx context.Context, modules []pallet.AssetModule, fn func(context.Context, pallet.AssetModule) (T, error)) []moduleResult[T] {
	results := make([]moduleResult[T], len(modules))
	g, gctx := errgroup.WithContext(ctx)
	for i, m := range modules {
		i, m := i, m // per-iteration copy (go 1.21 loop semantics)
		g.Go(func() error {
			v, err := fn(gctx, m)
			results[i] = moduleResult[T]{module: m.Module(), value: v, err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// GetAssets lists the assets of every asset module. A failing module is logged and skipped.
func (s *AssetService) GetAssets(ctx context.Context) ([]entity.Asset, error) {
	modules := s.chain.AssetModules()
	if len(modules) == 0 {
		return nil, huberrors.New(huberrors.ErrCapabilityUnavailable, string(s.chain.ID()), "", "no asset module in runtime")
	}

	results := fanOut(ctx, modules, func(ctx context.Context, m pallet.AssetModule) ([]entity.Asset, error) {
		return m.ListAssets(ctx)
	})
	return collect(s, results)
}

// GetAssetBalance reads one asset of module for the accounts.
func (s *AssetService) GetAssetBalance(ctx context.Context, accounts []string, module entity.Module, assetID string) (*entity.AssetHoldings, error) {
	if len(accounts) == 0 {
		return nil, huberrors.New(huberrors.ErrInvalidArgument, string(s.chain.ID()), string(module), "no account provided")
	}
	m, ok := s.chain.AssetModule(module)
	if !ok {
		return nil, huberrors.Newf(huberrors.ErrCapabilityUnavailable, string(s.chain.ID()), string(module),
			"%s is not an asset module of the runtime", module)
	}
	return m.GetAssetBalance(ctx, accounts, assetID)
}

// GetBalances reads every asset balance of a single account across the asset modules.
func (s *AssetService) GetBalances(ctx context.Context, accounts []string) ([]entity.AssetBalance, error) {
	if len(accounts) == 0 {
		return nil, huberrors.New(huberrors.ErrInvalidArgument, string(s.chain.ID()), "", "no account provided")
	}
	modules := s.chain.AssetModules()
	if len(modules) == 0 {
		return nil, huberrors.New(huberrors.ErrCapabilityUnavailable, string(s.chain.ID()), "", "no asset module in runtime")
	}

	results := fanOut(ctx, modules, func(ctx context.Context, m pallet.AssetModule) ([]entity.AssetBalance, error) {
		return m.GetAssetsBalance(ctx, accounts)
	})
	return collect(s, results)
}

// collect concatenates module results. It fails only when every module failed;
// an InvalidArgument from a module is returned as is.
func collect[T any](s *AssetService, results []moduleResult[[]T]) ([]T, error) {
	out := []T{}
	var errs error
	failed := 0
	for _, r := range results {
		if r.err != nil {
			if huberrors.Is(r.err, huberrors.ErrInvalidArgument) {
				return nil, r.err
			}
			failed++
			errs = multierr.Append(errs, r.err)
			s.logger.Warn("asset module failed", "module", string(r.module), "error", r.err)
			continue
		}
		out = append(out, r.value...)
	}
	if failed > 0 && failed == len(results) {
		return nil, huberrors.Wrap(huberrors.ErrAggregateFailure, string(s.chain.ID()), "", errs,
			fmt.Sprintf("all %d asset modules failed", failed))
	}
	return out, nil
}
