package accountstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hub_balance/internal/domain/entity"
)

const (
	alice = "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"
	bob   = "5FHneW46xGXgs5mUiveU4sbTyGBzmstUspZC92UhjJM694ty"
)

func TestCacheStore(t *testing.T) {
	s := NewCacheStore(time.Hour, time.Minute)

	saved := s.Save(entity.NewAccount("", alice))
	require.NotEmpty(t, saved.ID)
	assert.Len(t, saved.ID, 16)

	got, ok := s.Get(saved.ID)
	require.True(t, ok)
	assert.Equal(t, []string{alice}, got.Addresses())

	// returned accounts are copies
	got.Add(bob)
	again, _ := s.Get(saved.ID)
	assert.Equal(t, 1, again.Len())

	updated, ok := s.Update(saved.ID, func(a *entity.Account) {
		a.Add(bob)
		a.Remove(alice)
		a.ID = "renamed"
	})
	require.True(t, ok)
	assert.Equal(t, saved.ID, updated.ID)
	assert.Equal(t, []string{bob}, updated.Addresses())

	_, ok = s.Update("missing", func(*entity.Account) { t.Fatal("must not run") })
	assert.False(t, ok)

	assert.True(t, s.Delete(saved.ID))
	assert.False(t, s.Delete(saved.ID))
	_, ok = s.Get(saved.ID)
	assert.False(t, ok)
}

func TestCacheStore_KeepsGivenID(t *testing.T) {
	s := NewCacheStore(time.Hour, time.Minute)
	saved := s.Save(entity.NewAccount("default", alice, bob))
	assert.Equal(t, "default", saved.ID)

	got, ok := s.Get("default")
	require.True(t, ok)
	assert.Equal(t, 2, got.Len())
}

func TestCacheStore_Expiry(t *testing.T) {
	s := NewCacheStore(20*time.Millisecond, time.Hour)
	saved := s.Save(entity.NewAccount("", alice))

	require.Eventually(t, func() bool {
		_, ok := s.Get(saved.ID)
		return !ok
	}, time.Second, 10*time.Millisecond)
}
