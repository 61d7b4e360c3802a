// Package ss58 decodes and encodes Substrate SS58 addresses.
package ss58

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/blake2b"
)

const (
	base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

	checksumLen  = 2
	publicKeyLen = 32

	// highest prefix that fits in the two-byte encoding
	maxPrefix = 16383
)

var (
	ErrInvalidBase58   = errors.New("invalid base58 encoding")
	ErrInvalidChecksum = errors.New("invalid ss58 checksum")
	ErrInvalidLength   = errors.New("invalid ss58 address length")
	ErrInvalidPrefix   = errors.New("invalid ss58 prefix")

	checksumPrefix = []byte("SS58PRE")

	//nolint:gochecknoglobals // base58 decoding table
	base58Index = func() map[rune]int64 {
		m := make(map[rune]int64, len(base58Alphabet))
		for i, c := range base58Alphabet {
			m[c] = int64(i)
		}
		return m
	}()
)

// Decode returns the address prefix and the 32-byte public key of an SS58 address.
func Decode(address string) (uint16, []byte, error) {
	raw, err := base58Decode(address)
	if err != nil {
		return 0, nil, err
	}
	if len(raw) == 0 {
		return 0, nil, ErrInvalidLength
	}

	var (
		prefix    uint16
		prefixLen int
	)
	switch {
	case raw[0] < 64:
		prefix, prefixLen = uint16(raw[0]), 1
	case raw[0] < 128:
		if len(raw) < 2 {
			return 0, nil, ErrInvalidLength
		}
		lower := (raw[0] << 2) | (raw[1] >> 6)
		upper := raw[1] & 0x3f
		prefix, prefixLen = uint16(lower)|uint16(upper)<<8, 2
	default:
		return 0, nil, fmt.Errorf("%w: first byte 0x%02x", ErrInvalidPrefix, raw[0])
	}

	if len(raw) != prefixLen+publicKeyLen+checksumLen {
		return 0, nil, fmt.Errorf("%w: %d bytes", ErrInvalidLength, len(raw))
	}

	body := raw[:len(raw)-checksumLen]
	expected := checksum(body)
	if !bytes.Equal(raw[len(raw)-checksumLen:], expected) {
		return 0, nil, ErrInvalidChecksum
	}

	pub := make([]byte, publicKeyLen)
	copy(pub, body[prefixLen:])
	return prefix, pub, nil
}

// Encode builds the SS58 address of a 32-byte public key.
func Encode(prefix uint16, pubkey []byte) (string, error) {
	if len(pubkey) != publicKeyLen {
		return "", fmt.Errorf("%w: public key has %d bytes", ErrInvalidLength, len(pubkey))
	}
	if prefix > maxPrefix {
		return "", fmt.Errorf("%w: %d", ErrInvalidPrefix, prefix)
	}

	var body []byte
	if prefix < 64 {
		body = append(body, byte(prefix))
	} else {
		first := byte((prefix&0x00fc)>>2) | 0x40
		second := byte(prefix>>8) | byte((prefix&0x0003)<<6)
		body = append(body, first, second)
	}
	body = append(body, pubkey...)
	body = append(body, checksum(body)...)

	return base58Encode(body), nil
}

// AddressPubkey returns the hex public key behind an address.
// Hex input (20-byte "0x" addresses and 32-byte "0x" keys) is returned unchanged.
func AddressPubkey(address string) (string, error) {
	address = strings.TrimSpace(address)
	if strings.HasPrefix(address, "0x") && (len(address) == 42 || len(address) == 66) {
		return address, nil
	}
	_, pub, err := Decode(address)
	if err != nil {
		return "", err
	}
	return "0x" + hex.EncodeToString(pub), nil
}

// IsValid reports whether address is a well-formed SS58 address.
func IsValid(address string) bool {
	_, _, err := Decode(address)
	return err == nil
}

func checksum(body []byte) []byte {
	h, _ := blake2b.New512(nil)
	h.Write(checksumPrefix)
	h.Write(body)
	return h.Sum(nil)[:checksumLen]
}

func base58Decode(s string) ([]byte, error) {
	if s == "" {
		return nil, ErrInvalidBase58
	}

	leadingOnes := 0
	for _, c := range s {
		if c != '1' {
			break
		}
		leadingOnes++
	}

	result := new(big.Int)
	base := big.NewInt(58)
	for _, c := range s {
		v, ok := base58Index[c]
		if !ok {
			return nil, fmt.Errorf("%w: invalid character '%c'", ErrInvalidBase58, c)
		}
		result.Mul(result, base)
		result.Add(result, big.NewInt(v))
	}

	decoded := result.Bytes()
	out := make([]byte, leadingOnes+len(decoded))
	copy(out[leadingOnes:], decoded)
	return out, nil
}

func base58Encode(input []byte) string {
	leadingZeros := 0
	for _, b := range input {
		if b != 0 {
			break
		}
		leadingZeros++
	}

	x := new(big.Int).SetBytes(input)
	base := big.NewInt(58)
	mod := new(big.Int)

	var out []byte
	for x.Sign() > 0 {
		x.DivMod(x, base, mod)
		out = append(out, base58Alphabet[mod.Int64()])
	}
	for i := 0; i < leadingZeros; i++ {
		out = append(out, base58Alphabet[0])
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}
