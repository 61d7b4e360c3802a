package client

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"hub_balance/internal/app/port"
	"hub_balance/internal/domain/entity"
	"hub_balance/internal/infrastructure/configloader"
	"hub_balance/internal/pkg/metrics"
)

// gatewayClientProvider implements the port.ChainClientProvider interface.
type gatewayClientProvider struct {
	cfg     configloader.RpcClientConfig
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewGatewayClientProvider creates a provider dialing gateway clients with cfg.
// m may be nil.
func NewGatewayClientProvider(cfg configloader.RpcClientConfig, logger *zap.Logger, m *metrics.Metrics) port.ChainClientProvider {
	return &gatewayClientProvider{
		cfg:     cfg,
		logger:  logger.Named("GatewayClient"),
		metrics: m,
	}
}

// Dial tries the chain's endpoints in order and returns a client for the first one
// that answers hub_activeModules. Every chain gets its own rate limiter.
func (p *gatewayClientProvider) Dial(ctx context.Context, chain entity.ChainInfo) (port.ChainClient, error) {
	if len(chain.Endpoints) == 0 {
		return nil, fmt.Errorf("chain %s has no endpoints", chain.ID)
	}

	limiter := rate.NewLimiter(rate.Limit(p.cfg.RateLimit), p.cfg.BurstLimit)
	var errs error
	for _, endpoint := range chain.Endpoints {
		c, err := p.dialEndpoint(ctx, chain.ID, endpoint, limiter)
		if err == nil {
			p.logger.Info("Connected to gateway", zap.String("chain", string(chain.ID)), zap.String("endpoint", endpoint))
			return c, nil
		}
		p.logger.Warn("Gateway endpoint unavailable, trying next",
			zap.String("chain", string(chain.ID)), zap.String("endpoint", endpoint), zap.Error(err))
		errs = multierr.Append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}
	return nil, fmt.Errorf("all gateway endpoints failed for chain %s: %w", chain.ID, errs)
}

func (p *gatewayClientProvider) dialEndpoint(ctx context.Context, chainID entity.ChainID, endpoint string, limiter *rate.Limiter) (*GatewayClient, error) {
	dialCtx, cancel := context.WithTimeout(ctx, p.cfg.DialTimeout())
	defer cancel()

	t, err := dialTransport(dialCtx, endpoint, p.cfg.CallTimeout())
	if err != nil {
		return nil, err
	}
	c := &GatewayClient{
		chain:       chainID,
		endpoint:    endpoint,
		transport:   t,
		limiter:     limiter,
		callTimeout: p.cfg.CallTimeout(),
		maxKeys:     p.cfg.MaxKeysPerCall,
		metrics:     p.metrics,
		logger:      p.logger.With(zap.String("chain", string(chainID))),
	}
	if _, err := c.ActiveModules(dialCtx); err != nil {
		t.Close()
		return nil, err
	}
	return c, nil
}
