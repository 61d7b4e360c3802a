package client

import (
	"bytes"
	"context"
	stdjson "encoding/json"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"hub_balance/internal/app/port"
	"hub_balance/internal/domain/entity"
	"hub_balance/internal/pkg/metrics"
	"hub_balance/internal/pkg/utils"
)

// Gateway JSON-RPC methods.
const (
	methodActiveModules = "hub_activeModules"
	methodCompatibility = "hub_compatibility"
	methodGetValues     = "hub_getValues"
	methodGetEntries    = "hub_getEntries"
)

var nullValue = []byte("null")

// GatewayClient implements port.ChainClient for one chain gateway endpoint.
type GatewayClient struct {
	chain       entity.ChainID
	endpoint    string
	transport   transport
	limiter     *rate.Limiter
	callTimeout time.Duration
	maxKeys     int
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

var _ port.ChainClient = (*GatewayClient)(nil)

// Endpoint returns the URL the client is connected to.
func (c *GatewayClient) Endpoint() string {
	return c.endpoint
}

// call runs one rate-limited RPC under the per-call timeout.
func (c *GatewayClient) call(ctx context.Context, result any, method string, args ...any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	started := time.Now()
	err := c.transport.CallContext(callCtx, result, method, args...)
	c.metrics.ObserveRPC(string(c.chain), method, started, err)
	if err != nil {
		c.logger.Debug("RPC call failed", zap.String("method", method), zap.Error(err))
		return fmt.Errorf("%s on %s: %w", method, c.chain, err)
	}
	return nil
}

// batch sends elems as one JSON-RPC batch, waiting on the limiter once per element.
func (c *GatewayClient) batch(ctx context.Context, method string, elems []rpc.BatchElem) error {
	for range elems {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}
	callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	started := time.Now()
	err := c.transport.BatchCallContext(callCtx, elems)
	if err == nil {
		for _, e := range elems {
			if e.Error != nil {
				err = e.Error
				break
			}
		}
	}
	c.metrics.ObserveRPC(string(c.chain), method, started, err)
	if err != nil {
		c.logger.Debug("RPC batch failed", zap.String("method", method), zap.Int("size", len(elems)), zap.Error(err))
		return fmt.Errorf("%s on %s: %w", method, c.chain, err)
	}
	return nil
}

func (c *GatewayClient) ActiveModules(ctx context.Context) ([]string, error) {
	var modules []string
	if err := c.call(ctx, &modules, methodActiveModules); err != nil {
		return nil, err
	}
	return modules, nil
}

func (c *GatewayClient) CompatibilityToken(ctx context.Context) (entity.CompatibilityToken, error) {
	var token entity.CompatibilityToken
	if err := c.call(ctx, &token, methodCompatibility); err != nil {
		return entity.CompatibilityToken{}, err
	}
	if token.Items == nil {
		token.Items = map[string][]string{}
	}
	return token, nil
}

// IsCompatible reports whether every field item expects is present in the live shape.
func (c *GatewayClient) IsCompatible(item entity.StorageItem, token entity.CompatibilityToken) bool {
	return token.Supports(item)
}

// GetValues reads item for every key, maxKeysPerCall keys per request. All requests
// of one read go out in a single batch.
func (c *GatewayClient) GetValues(ctx context.Context, item entity.StorageItem, keys []entity.StorageKey) ([]stdjson.RawMessage, error) {
	if len(keys) == 0 {
		return []stdjson.RawMessage{}, nil
	}

	chunks := utils.Batch(keys, c.maxKeys)
	results := make([][]stdjson.RawMessage, len(chunks))
	if len(chunks) == 1 {
		if err := c.call(ctx, &results[0], methodGetValues, string(item.Module), item.Name, chunks[0]); err != nil {
			return nil, err
		}
	} else {
		elems := make([]rpc.BatchElem, len(chunks))
		for i, chunk := range chunks {
			elems[i] = rpc.BatchElem{
				Method: methodGetValues,
				Args:   []any{string(item.Module), item.Name, chunk},
				Result: &results[i],
			}
		}
		if err := c.batch(ctx, methodGetValues, elems); err != nil {
			return nil, err
		}
	}

	out := make([]stdjson.RawMessage, 0, len(keys))
	for i, chunk := range chunks {
		if len(results[i]) != len(chunk) {
			return nil, fmt.Errorf("%s on %s: got %d values for %d keys of %s", methodGetValues, c.chain, len(results[i]), len(chunk), item.Path())
		}
		for _, v := range results[i] {
			if len(v) == 0 || bytes.Equal(bytes.TrimSpace(v), nullValue) {
				v = nil
			}
			out = append(out, v)
		}
	}
	return out, nil
}

// GetEntries lists the entries of item under prefix. A nil prefix lists the whole map.
func (c *GatewayClient) GetEntries(ctx context.Context, item entity.StorageItem, prefix entity.StorageKey) ([]entity.StorageEntry, error) {
	if prefix == nil {
		prefix = entity.StorageKey{}
	}
	var entries []entity.StorageEntry
	if err := c.call(ctx, &entries, methodGetEntries, string(item.Module), item.Name, prefix); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []entity.StorageEntry{}
	}
	return entries, nil
}

func (c *GatewayClient) Close() {
	c.transport.Close()
	c.logger.Debug("Gateway client closed", zap.String("endpoint", c.endpoint))
}
