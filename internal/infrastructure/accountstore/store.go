package accountstore

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"hub_balance/internal/app/port"
	"hub_balance/internal/domain/entity"
)

// CacheStore implements port.AccountStore over go-cache. Accounts expire ttl after
// their last write.
type CacheStore struct {
	mu    sync.Mutex // guards read-modify-write in Update
	cache *cache.Cache
}

var _ port.AccountStore = (*CacheStore)(nil)

func NewCacheStore(ttl, cleanupInterval time.Duration) *CacheStore {
	return &CacheStore{cache: cache.New(ttl, cleanupInterval)}
}

// Save stores a copy of account, assigning a random ID when it has none.
func (s *CacheStore) Save(account *entity.Account) *entity.Account {
	stored := clone(account)
	if stored.ID == "" {
		stored.ID = newID()
	}
	s.cache.Set(stored.ID, stored, cache.DefaultExpiration)
	return clone(stored)
}

func (s *CacheStore) Get(id string) (*entity.Account, bool) {
	v, found := s.cache.Get(id)
	if !found {
		return nil, false
	}
	return clone(v.(*entity.Account)), true
}

func (s *CacheStore) Update(id string, fn func(account *entity.Account)) (*entity.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, found := s.cache.Get(id)
	if !found {
		return nil, false
	}
	updated := clone(v.(*entity.Account))
	fn(updated)
	updated.ID = id
	s.cache.Set(id, updated, cache.DefaultExpiration)
	return clone(updated), true
}

func (s *CacheStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.cache.Get(id); !found {
		return false
	}
	s.cache.Delete(id)
	return true
}

func clone(a *entity.Account) *entity.Account {
	if a == nil {
		return entity.NewAccount("")
	}
	return entity.NewAccount(a.ID, a.Addresses()...)
}

func newID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
