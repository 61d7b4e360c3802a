package port

import "hub_balance/internal/domain/entity"

// AccountStore keeps accounts between calls.
type AccountStore interface {
	// Save stores the account under its ID, assigning one if empty.
	Save(account *entity.Account) *entity.Account
	// Get returns a copy of a stored account.
	Get(id string) (*entity.Account, bool)
	// Update applies fn to a stored account and saves the result.
	Update(id string, fn func(account *entity.Account)) (*entity.Account, bool)
	// Delete removes an account and reports whether it existed.
	Delete(id string) bool
}

// AccountProvider loads predefined accounts, e.g. from a wallet file.
type AccountProvider interface {
	GetAccount() (*entity.Account, error)
}
