// Package network connects the configured chains and keeps them as a chain.Registry.
package network

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"hub_balance/internal/app/chain"
	"hub_balance/internal/app/port"
	"hub_balance/internal/app/service"
	"hub_balance/internal/domain/entity"
	"hub_balance/internal/pkg/metrics"
)

// ErrNoChainConnected is returned by Connect when every chain failed.
var ErrNoChainConnected = errors.New("no chain could be connected")

// Connector dials the chains of a definitions provider and serves them as a chain.Registry.
type Connector struct {
	definitions port.ChainDefinitionProvider
	clients     port.ChainClientProvider
	composer    *service.Composer
	maxDials    int
	logger      *zap.Logger
	metrics     *metrics.Metrics

	connectMu sync.Mutex // serializes Connect and Disconnect

	mu     sync.RWMutex
	status chain.Status
	chains map[entity.ChainID]*chain.Chain
	order  []entity.ChainID
}

var _ chain.Registry = (*Connector)(nil)

// NewConnector creates a disconnected connector. maxDials bounds concurrent dials; m may be nil.
func NewConnector(
	definitions port.ChainDefinitionProvider,
	clients port.ChainClientProvider,
	composer *service.Composer,
	maxDials int,
	logger *zap.Logger,
	m *metrics.Metrics,
) *Connector {
	if maxDials <= 0 {
		maxDials = 1
	}
	return &Connector{
		definitions: definitions,
		clients:     clients,
		composer:    composer,
		maxDials:    maxDials,
		logger:      logger.Named("Connector"),
		metrics:     m,
		status:      chain.StatusDisconnected,
		chains:      make(map[entity.ChainID]*chain.Chain),
	}
}

// Connect dials every defined chain, composes it and publishes it in definition order.
// A chain that fails is logged and skipped; Connect fails only when none succeeds.
// Calling Connect while connected is a no-op.
func (c *Connector) Connect(ctx context.Context) error {
	c.connectMu.Lock()
	defer c.connectMu.Unlock()

	if c.Status() == chain.StatusConnected {
		return nil
	}
	c.setStatus(chain.StatusConnecting)

	defs := c.definitions.All()
	c.logger.Info("Connecting chains", zap.Int("count", len(defs)), zap.Int("maxConcurrentDials", c.maxDials))

	connected := make([]*chain.Chain, len(defs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxDials)
	for i, def := range defs {
		i, def := i, def // per-iteration copy (go 1.21 loop semantics)
		g.Go(func() error {
			ch, err := c.connectChain(gctx, def)
			if err != nil {
				c.logger.Warn("Chain skipped", zap.String("chain", string(def.ID)), zap.Error(err))
				c.metrics.ChainFailure(string(def.ID), "connect")
				return nil // handled
			}
			connected[i] = ch
			return nil
		})
	}
	_ = g.Wait()

	chains := make(map[entity.ChainID]*chain.Chain, len(defs))
	order := make([]entity.ChainID, 0, len(defs))
	for _, ch := range connected {
		if ch == nil {
			continue
		}
		chains[ch.ID()] = ch
		order = append(order, ch.ID())
	}

	if len(order) == 0 {
		c.setStatus(chain.StatusDisconnected)
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrNoChainConnected, err)
		}
		return ErrNoChainConnected
	}

	c.mu.Lock()
	c.chains = chains
	c.order = order
	c.status = chain.StatusConnected
	c.mu.Unlock()

	c.metrics.SetConnectedChains(len(order))
	c.logger.Info("Chains connected", zap.Int("connected", len(order)), zap.Int("skipped", len(defs)-len(order)))
	return nil
}

func (c *Connector) connectChain(ctx context.Context, def entity.ChainInfo) (*chain.Chain, error) {
	client, err := c.clients.Dial(ctx, def)
	if err != nil {
		return nil, err
	}

	modules, err := client.ActiveModules(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to read active modules: %w", err)
	}
	token, err := client.CompatibilityToken(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to read compatibility token: %w", err)
	}

	ch := chain.New(entity.RuntimeDescriptor{ChainInfo: def, Modules: entity.NewModuleSet(modules...)}, client, token)
	c.composer.Compose(ch)
	c.logger.Debug("Chain ready",
		zap.String("chain", string(def.ID)),
		zap.Uint32("specVersion", token.SpecVersion),
		zap.Strings("modules", ch.Descriptor().Modules.List()))
	return ch, nil
}

// Disconnect closes every client and empties the registry.
func (c *Connector) Disconnect() {
	c.connectMu.Lock()
	defer c.connectMu.Unlock()

	c.mu.Lock()
	chains := c.chains
	c.chains = make(map[entity.ChainID]*chain.Chain)
	c.order = nil
	c.status = chain.StatusDisconnected
	c.mu.Unlock()

	for id, ch := range chains {
		ch.Client().Close()
		c.logger.Debug("Chain disconnected", zap.String("chain", string(id)))
	}
	c.metrics.SetConnectedChains(0)
	c.logger.Info("Disconnected", zap.Int("chains", len(chains)))
}

func (c *Connector) Get(id entity.ChainID) (*chain.Chain, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ch, ok := c.chains[id]
	return ch, ok
}

func (c *Connector) Chains() []entity.ChainID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]entity.ChainID(nil), c.order...)
}

func (c *Connector) Status() chain.Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

func (c *Connector) setStatus(s chain.Status) {
	c.mu.Lock()
	c.status = s
	c.mu.Unlock()
}
