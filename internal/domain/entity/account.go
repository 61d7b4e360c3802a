package entity

import (
	"fmt"
	"strings"

	"hub_balance/internal/pkg/ss58"
)

// Account groups the addresses queried together as one balance subject.
type Account struct {
	ID        string   `json:"id"`
	addresses []string // insertion order, no duplicates
}

// NewAccount creates an account with the given addresses. Blank and duplicate addresses are skipped.
func NewAccount(id string, addresses ...string) *Account {
	a := &Account{ID: id}
	a.Add(addresses...)
	return a
}

// Add appends addresses that are not already present and returns how many were added.
func (a *Account) Add(addresses ...string) int {
	added := 0
	for _, addr := range addresses {
		addr = strings.TrimSpace(addr)
		if addr == "" || a.Contains(addr) {
			continue
		}
		a.addresses = append(a.addresses, addr)
		added++
	}
	return added
}

// Remove deletes an address and reports whether it was present.
func (a *Account) Remove(address string) bool {
	address = strings.TrimSpace(address)
	for i, addr := range a.addresses {
		if addr == address {
			a.addresses = append(a.addresses[:i], a.addresses[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes all addresses.
func (a *Account) Clear() {
	a.addresses = nil
}

// Contains reports whether address belongs to the account.
func (a *Account) Contains(address string) bool {
	for _, addr := range a.addresses {
		if addr == address {
			return true
		}
	}
	return false
}

// Addresses returns a copy of the address list.
func (a *Account) Addresses() []string {
	out := make([]string, len(a.addresses))
	copy(out, a.addresses)
	return out
}

// Len returns the number of addresses.
func (a *Account) Len() int {
	return len(a.addresses)
}

// Pubkeys maps every address to its 0x-prefixed public key.
func (a *Account) Pubkeys() (map[string]string, error) {
	out := make(map[string]string, len(a.addresses))
	for _, addr := range a.addresses {
		pk, err := ss58.AddressPubkey(addr)
		if err != nil {
			return nil, fmt.Errorf("address %s: %w", addr, err)
		}
		out[addr] = pk
	}
	return out, nil
}
