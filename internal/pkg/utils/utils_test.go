package utils

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBigInt(t *testing.T) {
	tests := []struct {
		name     string
		amount   *big.Int
		decimals int
		want     string
	}{
		{name: "nil", amount: nil, decimals: 10, want: "0"},
		{name: "zero", amount: big.NewInt(0), decimals: 10, want: "0"},
		{name: "no decimals", amount: big.NewInt(42), decimals: 0, want: "42"},
		{name: "fraction", amount: big.NewInt(12345000000), decimals: 10, want: "1.2345"},
		{name: "whole", amount: big.NewInt(30000000000), decimals: 10, want: "3"},
		{name: "below one", amount: big.NewInt(5), decimals: 12, want: "0.000000000005"},
		{name: "negative", amount: big.NewInt(-15), decimals: 1, want: "-1.5"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatBigInt(tc.amount, tc.decimals))
		})
	}

	huge, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	assert.Equal(t, "12345678901234567890.123456789", FormatBigInt(huge, 10))
}

func TestSumBigInts(t *testing.T) {
	assert.Equal(t, "6", SumBigInts(big.NewInt(1), nil, big.NewInt(5)).String())
	assert.Equal(t, "0", SumBigInts().String())
}

func TestFirstNonZero(t *testing.T) {
	a := big.NewInt(0)
	b := big.NewInt(7)

	got := FirstNonZero(nil, a, b)
	assert.Equal(t, "7", got.String())

	got.SetInt64(1)
	assert.Equal(t, "7", b.String(), "result must be a copy")

	assert.Equal(t, "0", FirstNonZero(nil, a).String())
}

func TestBatch(t *testing.T) {
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, Batch([]int{1, 2, 3, 4, 5}, 2))
	assert.Equal(t, [][]string{{"a", "b"}}, Batch([]string{"a", "b"}, 0))
	assert.Equal(t, [][]int{}, Batch([]int{}, 3))
}
