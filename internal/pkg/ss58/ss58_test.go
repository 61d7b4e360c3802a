package ss58

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const alicePub = "d43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		address string
		prefix  uint16
	}{
		{name: "polkadot", address: "15oF4uVJwmo4TdGW7VfQxNLavjCXviqxT9S1MgbjMNHr6Sp5", prefix: 0},
		{name: "kusama", address: "HNZata7iMYWmk5RvZRTiAsSDhV8366zq2YGb3tLH5Upf74F", prefix: 2},
		{name: "generic", address: "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY", prefix: 42},
		{name: "two byte prefix", address: "VdvKmYJfD4VXA9fzz1SbmCo2eYHSzUFbaDCZSuaNKJAe8YNg6", prefix: 1284},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			prefix, pub, err := Decode(tc.address)
			require.NoError(t, err)
			assert.Equal(t, tc.prefix, prefix)
			assert.Equal(t, alicePub, hex.EncodeToString(pub))
		})
	}
}

func TestEncode(t *testing.T) {
	pub, err := hex.DecodeString(alicePub)
	require.NoError(t, err)

	for _, prefix := range []uint16{0, 2, 42, 1284} {
		addr, err := Encode(prefix, pub)
		require.NoError(t, err)

		gotPrefix, gotPub, err := Decode(addr)
		require.NoError(t, err)
		assert.Equal(t, prefix, gotPrefix)
		assert.Equal(t, pub, gotPub)
	}

	addr, err := Encode(42, pub)
	require.NoError(t, err)
	assert.Equal(t, "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY", addr)

	_, err = Encode(0, pub[:20])
	assert.ErrorIs(t, err, ErrInvalidLength)
	_, err = Encode(20000, pub)
	assert.ErrorIs(t, err, ErrInvalidPrefix)
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    error
	}{
		{name: "empty", address: "", want: ErrInvalidBase58},
		{name: "bad character", address: "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKut0Y", want: ErrInvalidBase58},
		{name: "bad checksum", address: "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQZ", want: ErrInvalidChecksum},
		{name: "too short", address: "11111", want: ErrInvalidLength},
		{name: "reserved prefix", address: "5Grwva", want: ErrInvalidPrefix},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Decode(tc.address)
			assert.ErrorIs(t, err, tc.want)
			assert.False(t, IsValid(tc.address))
		})
	}
}

func TestAddressPubkey(t *testing.T) {
	t.Run("ss58", func(t *testing.T) {
		got, err := AddressPubkey("15oF4uVJwmo4TdGW7VfQxNLavjCXviqxT9S1MgbjMNHr6Sp5")
		require.NoError(t, err)
		assert.Equal(t, "0x"+alicePub, got)
	})

	t.Run("evm address passes through", func(t *testing.T) {
		addr := "0x742d35Cc6634C0532925a3b844Bc454e4438f44e"
		got, err := AddressPubkey(addr)
		require.NoError(t, err)
		assert.Equal(t, addr, got)
	})

	t.Run("hex public key passes through", func(t *testing.T) {
		got, err := AddressPubkey("0x" + alicePub)
		require.NoError(t, err)
		assert.Equal(t, "0x"+alicePub, got)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := AddressPubkey("not-an-address")
		assert.Error(t, err)
	})
}
