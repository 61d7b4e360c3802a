package entity

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount(t *testing.T) {
	a := NewAccount("main", "addr1", " addr2 ", "", "addr1")
	assert.Equal(t, []string{"addr1", "addr2"}, a.Addresses())

	t.Run("add skips duplicates", func(t *testing.T) {
		assert.Equal(t, 1, a.Add("addr3", "addr2"))
		assert.Equal(t, 3, a.Len())
	})

	t.Run("remove", func(t *testing.T) {
		assert.True(t, a.Remove("addr2"))
		assert.False(t, a.Remove("addr2"))
		assert.Equal(t, []string{"addr1", "addr3"}, a.Addresses())
	})

	t.Run("addresses is a copy", func(t *testing.T) {
		list := a.Addresses()
		list[0] = "changed"
		assert.True(t, a.Contains("addr1"))
	})

	t.Run("clear", func(t *testing.T) {
		a.Clear()
		assert.Equal(t, 0, a.Len())
		assert.Empty(t, a.Addresses())
	})
}

func TestModuleSet(t *testing.T) {
	set := NewModuleSet("System", "Balances", " ", "Vesting")

	assert.True(t, set.Has(ModuleSystem))
	assert.False(t, set.Has(ModuleStaking))
	assert.Equal(t, []string{"Balances", "System", "Vesting"}, set.List())
}

func TestModuleBalance_AddRaw(t *testing.T) {
	m := NewModuleBalance()
	m.AddRaw(RawBalance{Free: big.NewInt(100), Reserved: big.NewInt(20), Frozen: big.NewInt(30)})
	m.AddRaw(RawBalance{Free: big.NewInt(5)})

	assert.Equal(t, "125", m.Total.String())
	assert.Equal(t, "75", m.Transferrable.String())
	assert.Equal(t, "20", m.Reserved.String())
	assert.Equal(t, "30", m.Locked.String())
}

func TestAccountBalance(t *testing.T) {
	b := NewAccountBalance()
	assert.True(t, b.IsZero())
	assert.Equal(t, 0, b.ComponentSum().Sign())

	b.Transferrable.SetInt64(5)
	b.Reserved.SetInt64(3)
	b.Locked.SetInt64(2)
	b.Locations = append(b.Locations, Location{Total: big.NewInt(4), Chain: "a"}, Location{Total: big.NewInt(6), Chain: "b"})

	assert.False(t, b.IsZero())
	assert.Equal(t, "10", b.ComponentSum().String())
	assert.Equal(t, "10", b.LocationSum().String())
}

func TestBalanceDetail_Resolve(t *testing.T) {
	d := BalanceDetail{Value: big.NewInt(1), ID: "vesting"}
	assert.False(t, d.HasDetail())
	v, err := d.Resolve(context.Background())
	require.NoError(t, err)
	assert.Nil(t, v)

	calls := 0
	d.Fetch = func(context.Context) (any, error) {
		calls++
		return "detail", nil
	}
	assert.True(t, d.HasDetail())
	assert.Equal(t, 0, calls)
	v, err = d.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "detail", v)
	assert.Equal(t, 1, calls)
}

func TestCompatibilityToken_Supports(t *testing.T) {
	item := StorageItem{Module: ModuleSystem, Name: "Account", Fields: []string{"data.free", "data.frozen"}}

	tests := []struct {
		name  string
		token CompatibilityToken
		want  bool
	}{
		{
			name:  "superset",
			token: CompatibilityToken{Items: map[string][]string{"System.Account": {"nonce", "data.free", "data.frozen", "data.flags"}}},
			want:  true,
		},
		{
			name:  "missing field",
			token: CompatibilityToken{Items: map[string][]string{"System.Account": {"data.free", "data.misc_frozen"}}},
			want:  false,
		},
		{
			name:  "missing item",
			token: CompatibilityToken{Items: map[string][]string{}},
			want:  false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.token.Supports(item))
		})
	}
}

func TestVestingBalance_BlocksRemaining(t *testing.T) {
	v := VestingBalance{Locked: big.NewInt(1000), PerBlock: big.NewInt(3)}
	assert.Equal(t, "333", v.BlocksRemaining().String())
	assert.Equal(t, "1000", v.Locked.String())

	assert.Equal(t, "0", VestingBalance{Locked: big.NewInt(5), PerBlock: big.NewInt(0)}.BlocksRemaining().String())
}

func TestConviction_LockPeriods(t *testing.T) {
	want := []uint32{0, 1, 2, 4, 8, 16, 32}
	for i, c := range Convictions {
		assert.Equal(t, want[i], c.LockPeriods(), string(c))
	}
}

func TestAccount_Pubkeys(t *testing.T) {
	hexKey := "0xd43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"
	a := NewAccount("a", "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY", hexKey)

	keys, err := a.Pubkeys()
	require.NoError(t, err)
	assert.Equal(t, hexKey, keys["5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"])
	assert.Equal(t, hexKey, keys[hexKey])

	a.Add("not-an-address")
	_, err = a.Pubkeys()
	assert.Error(t, err)
}
