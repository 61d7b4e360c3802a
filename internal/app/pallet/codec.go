package pallet

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"hub_balance/internal/domain/entity"
)

// amount decodes a balance given as a JSON number, a decimal string or a 0x hex string.
type amount struct {
	v *big.Int
}

func (a *amount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		a.v = nil
		return nil
	}
	v := new(big.Int)
	var ok bool
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		_, ok = v.SetString(s[2:], 16)
	} else {
		_, ok = v.SetString(s, 10)
	}
	if !ok {
		return fmt.Errorf("invalid amount %q", s)
	}
	a.v = v
	return nil
}

// Int returns a copy of the amount, zero when absent.
func (a amount) Int() *big.Int {
	if a.v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(a.v)
}

// sourceID decodes the identifier of a lock, reserve, freeze or hold. The chain
// encodes it either as an 8-byte id (hex or text) or as a reason enum.
type sourceID struct {
	ID     string
	Reason string
}

func (s *sourceID) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var text string
		if err := jsonAPI.Unmarshal(b, &text); err != nil {
			return err
		}
		s.ID = normalizeID(text)
		return nil
	}

	var e entity.Enum
	if err := jsonAPI.Unmarshal(b, &e); err != nil {
		return err
	}
	s.ID = normalizeID(e.Type)
	if !isAbsent(e.Value) {
		var inner entity.Enum
		if err := jsonAPI.Unmarshal(e.Value, &inner); err == nil && inner.Type != "" {
			s.Reason = inner.Type
		}
	}
	return nil
}

// normalizeID lower-cases and trims an identifier, decoding "0x" hex ids to text first.
func normalizeID(id string) string {
	if strings.HasPrefix(id, "0x") {
		if b, err := hex.DecodeString(id[2:]); err == nil {
			id = string(b)
		}
	}
	id = strings.Trim(id, "\x00")
	return strings.ToLower(strings.TrimSpace(id))
}

// enumName decodes a value given either as a plain string or as {"type": ...}.
type enumName string

func (n *enumName) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := jsonAPI.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = enumName(s)
		return nil
	}
	var e entity.Enum
	if err := jsonAPI.Unmarshal(b, &e); err != nil {
		return err
	}
	*n = enumName(e.Type)
	return nil
}
