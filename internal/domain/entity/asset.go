package entity

import (
	"encoding/json"
	"math/big"
)

// Enum is a decoded runtime enum variant: {"type": "Live"} or {"type": "DepositHeld", "value": 10}.
type Enum struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
}

// AssetDetails is the decoded value of <Module>.Asset.
type AssetDetails struct {
	Owner        string   `json:"owner"`
	Issuer       string   `json:"issuer"`
	Admin        string   `json:"admin"`
	Freezer      string   `json:"freezer"`
	Supply       *big.Int `json:"supply"`
	Deposit      *big.Int `json:"deposit"`
	MinBalance   *big.Int `json:"min_balance"`
	IsSufficient bool     `json:"is_sufficient"`
	Accounts     uint32   `json:"accounts"`
	Sufficients  uint32   `json:"sufficients"`
	Approvals    uint32   `json:"approvals"`
	Status       Enum     `json:"status"`
}

// Asset is one fungible asset of an asset module.
// ID is the decimal asset id for Assets/PoolAssets and the compact JSON location for ForeignAssets.
type Asset struct {
	ID       string          `json:"id"`
	Module   Module          `json:"module"`
	Location json.RawMessage `json:"location,omitempty"`
	AssetDetails
}

// AssetAccount is the decoded value of <Module>.Account.
type AssetAccount struct {
	Balance *big.Int `json:"balance"`
	Status  Enum     `json:"status"` // Liquid, Frozen or Blocked
	Reason  Enum     `json:"reason"` // Consumer, Sufficient, DepositHeld, DepositRefunded, DepositFrom
}

// AssetBalance is the balance of one address in one asset.
type AssetBalance struct {
	AssetID string   `json:"assetId"`
	Module  Module   `json:"module"`
	Address string   `json:"address"`
	Balance *big.Int `json:"balance"`
	Status  string   `json:"status"`
	Reason  Enum     `json:"reason"`
}

// AssetHoldings groups the existing balances of one asset.
type AssetHoldings struct {
	AssetID  string         `json:"assetId"`
	Module   Module         `json:"module"`
	Balances []AssetBalance `json:"balances"`
}
