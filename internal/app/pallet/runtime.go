// Package pallet implements the read operations of each runtime module a chain may include.
// A query set only ever reads storage of its own module and never combines results with
// other modules; merging is done by the balance resolver.
package pallet

import (
	"context"
	"encoding/json"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"hub_balance/internal/app/port"
	"hub_balance/internal/domain/entity"
	huberrors "hub_balance/internal/pkg/errors"
	"hub_balance/internal/pkg/logger"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Runtime is the per-chain context a query set reads through.
type Runtime struct {
	Chain   entity.ChainID
	Modules entity.ModuleSet
	Client  port.ChainClient
	Token   entity.CompatibilityToken
	Logger  port.Logger
}

// querySet holds what every module query set shares.
type querySet struct {
	rt     Runtime
	module entity.Module
	log    port.Logger
}

func newQuerySet(rt Runtime, module entity.Module) querySet {
	log := rt.Logger
	if log == nil {
		log = logger.Nop()
	}
	return querySet{
		rt:     rt,
		module: module,
		log:    log.With("chain", string(rt.Chain), "module", string(module)),
	}
}

// Module returns the runtime module the query set reads.
func (q querySet) Module() entity.Module {
	return q.module
}

// begin runs the checks every account operation starts with, before any I/O.
func (q querySet) begin(accounts []string) error {
	if err := q.validateAccounts(accounts); err != nil {
		return err
	}
	return q.requireModule()
}

// beginSingle is begin for operations that accept exactly one account.
func (q querySet) beginSingle(accounts []string) error {
	if err := q.validateAccounts(accounts); err != nil {
		return err
	}
	if len(accounts) > 1 {
		return q.errorf(huberrors.ErrInvalidArgument, "only one address is supported at a time")
	}
	return q.requireModule()
}

func (q querySet) validateAccounts(accounts []string) error {
	if len(accounts) == 0 {
		return q.errorf(huberrors.ErrInvalidArgument, "no account provided")
	}
	for i, a := range accounts {
		if strings.TrimSpace(a) == "" {
			return q.errorf(huberrors.ErrInvalidArgument, "account %d is blank", i)
		}
	}
	return nil
}

func (q querySet) requireModule() error {
	if !q.rt.Modules.Has(q.module) {
		return q.errorf(huberrors.ErrCapabilityUnavailable, "%s is not included in the %s runtime", q.module, q.rt.Chain)
	}
	return nil
}

func (q querySet) compatible(item entity.StorageItem) error {
	if !q.rt.Client.IsCompatible(item, q.rt.Token) {
		return q.errorf(huberrors.ErrRuntimeIncompatible, "%s is not compatible with the current runtime", item.Path())
	}
	return nil
}

// values checks compatibility, then reads item for every key.
func (q querySet) values(ctx context.Context, item entity.StorageItem, keys []entity.StorageKey) ([]json.RawMessage, error) {
	if err := q.compatible(item); err != nil {
		return nil, err
	}
	raw, err := q.rt.Client.GetValues(ctx, item, keys)
	if err != nil {
		return nil, huberrors.Wrap(huberrors.ErrQueryFailed, string(q.rt.Chain), string(q.module), err, "failed to read "+item.Path())
	}
	if len(raw) != len(keys) {
		return nil, q.errorf(huberrors.ErrQueryFailed, "%s returned %d values for %d keys", item.Path(), len(raw), len(keys))
	}
	return raw, nil
}

// entries checks compatibility, then lists the entries of a storage map.
func (q querySet) entries(ctx context.Context, item entity.StorageItem, prefix entity.StorageKey) ([]entity.StorageEntry, error) {
	if err := q.compatible(item); err != nil {
		return nil, err
	}
	out, err := q.rt.Client.GetEntries(ctx, item, prefix)
	if err != nil {
		return nil, huberrors.Wrap(huberrors.ErrQueryFailed, string(q.rt.Chain), string(q.module), err, "failed to list "+item.Path())
	}
	return out, nil
}

func (q querySet) errorf(kind *huberrors.Error, format string, args ...any) error {
	return huberrors.Newf(kind, string(q.rt.Chain), string(q.module), format, args...)
}

func (q querySet) decodeError(item entity.StorageItem, err error) error {
	return huberrors.Wrap(huberrors.ErrRuntimeIncompatible, string(q.rt.Chain), string(q.module), err, "failed to decode "+item.Path())
}

// decode unmarshals a storage value. ok is false for an absent entry.
func decode[T any](raw json.RawMessage) (value T, ok bool, err error) {
	if isAbsent(raw) {
		return value, false, nil
	}
	if err := jsonAPI.Unmarshal(raw, &value); err != nil {
		return value, false, err
	}
	return value, true, nil
}

func isAbsent(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null"
}

func accountKeys(accounts []string) []entity.StorageKey {
	keys := make([]entity.StorageKey, len(accounts))
	for i, a := range accounts {
		keys[i] = entity.StorageKey{a}
	}
	return keys
}
