package entity

// ChainFailure records a chain whose contribution to a multi-chain balance was dropped.
type ChainFailure struct {
	Chain   ChainID `json:"chain"`
	Module  string  `json:"module,omitempty"`
	Code    string  `json:"code"`
	Message string  `json:"message"`
}
