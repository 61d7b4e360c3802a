package service

import (
	"context"
	"encoding/json"
	"testing"

	"go.uber.org/mock/gomock"

	"hub_balance/internal/app/chain"
	"hub_balance/internal/app/port/mocks"
	"hub_balance/internal/domain/entity"
)

const (
	alice = "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"
	bob   = "5FHneW46xGXgs5mUiveU4sbTyGBzmstUspZC92UhjJM694ty"
)

// storage answers GetValues by storage path. Every key of a call gets the same value;
// an empty string is an absent entry.
type storage struct {
	values map[string]string
	errs   map[string]error
}

func (s storage) getValues(_ context.Context, item entity.StorageItem, keys []entity.StorageKey) ([]json.RawMessage, error) {
	if err, ok := s.errs[item.Path()]; ok {
		return nil, err
	}
	out := make([]json.RawMessage, len(keys))
	if v := s.values[item.Path()]; v != "" {
		for i := range out {
			out[i] = json.RawMessage(v)
		}
	}
	return out, nil
}

func newChain(t *testing.T, id entity.ChainID, modules ...string) (*chain.Chain, *mocks.MockChainClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	client := mocks.NewMockChainClient(ctrl)
	client.EXPECT().IsCompatible(gomock.Any(), gomock.Any()).Return(true).AnyTimes()

	desc := entity.RuntimeDescriptor{
		ChainInfo: entity.ChainInfo{ID: id, Name: string(id), Asset: entity.NativeAsset{Symbol: "DOT", Decimals: 10}},
		Modules:   entity.NewModuleSet(modules...),
	}
	return chain.New(desc, client, entity.CompatibilityToken{SpecVersion: 1}), client
}

// composedChain is newChain plus Compose, with GetValues served from s.
func composedChain(t *testing.T, id entity.ChainID, s storage, modules ...string) *chain.Chain {
	t.Helper()
	ch, client := newChain(t, id, modules...)
	client.EXPECT().GetValues(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(s.getValues).AnyTimes()
	return NewComposer(nil).Compose(ch)
}

type fakeRegistry struct {
	status chain.Status
	order  []entity.ChainID
	chains map[entity.ChainID]*chain.Chain
}

func newFakeRegistry(chains ...*chain.Chain) *fakeRegistry {
	r := &fakeRegistry{status: chain.StatusConnected, chains: make(map[entity.ChainID]*chain.Chain)}
	for _, c := range chains {
		r.order = append(r.order, c.ID())
		r.chains[c.ID()] = c
	}
	return r
}

func (r *fakeRegistry) Get(id entity.ChainID) (*chain.Chain, bool) {
	c, ok := r.chains[id]
	return c, ok
}

func (r *fakeRegistry) Chains() []entity.ChainID {
	return append([]entity.ChainID(nil), r.order...)
}

func (r *fakeRegistry) Status() chain.Status {
	return r.status
}

func systemAccount(free, reserved, frozen string) string {
	return `{"nonce":0,"data":{"free":"` + free + `","reserved":"` + reserved + `","frozen":"` + frozen + `"}}`
}

func balancesAccount(free, reserved, frozen string) string {
	return `{"free":"` + free + `","reserved":"` + reserved + `","frozen":"` + frozen + `"}`
}
