package utils

import (
	"math/big"
	"strings"
)

// FormatBigInt renders amount as a decimal number with the given number of decimals,
// trimming trailing zeros. Exact: no float conversion.
// Example: amount=12345000000, decimals=10 => "1.2345"
func FormatBigInt(amount *big.Int, decimals int) string {
	if amount == nil {
		return "0"
	}
	if decimals <= 0 {
		return amount.String()
	}

	neg := amount.Sign() < 0
	digits := new(big.Int).Abs(amount).String()
	if len(digits) <= decimals {
		digits = strings.Repeat("0", decimals-len(digits)+1) + digits
	}

	whole := digits[:len(digits)-decimals]
	frac := strings.TrimRight(digits[len(digits)-decimals:], "0")

	out := whole
	if frac != "" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

// SumBigInts adds values, treating nil as zero.
func SumBigInts(values ...*big.Int) *big.Int {
	sum := new(big.Int)
	for _, v := range values {
		if v != nil {
			sum.Add(sum, v)
		}
	}
	return sum
}

// FirstNonZero returns a copy of the first non-nil, non-zero value, or zero.
func FirstNonZero(values ...*big.Int) *big.Int {
	for _, v := range values {
		if v != nil && v.Sign() != 0 {
			return new(big.Int).Set(v)
		}
	}
	return new(big.Int)
}
