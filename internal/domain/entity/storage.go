package entity

import "encoding/json"

// StorageItem names a runtime storage item together with the field paths
// a reader expects to find in its decoded value.
type StorageItem struct {
	Module Module
	Name   string
	Fields []string
}

// Path returns the "Module.Name" form used as key in compatibility tokens.
func (s StorageItem) Path() string {
	return string(s.Module) + "." + s.Name
}

// StorageKey holds the key arguments of one storage read, e.g. [account] or [assetId, account].
type StorageKey []any

// StorageEntry is one entry of a storage map: decoded key arguments and value.
type StorageEntry struct {
	Keys  []json.RawMessage `json:"keys"`
	Value json.RawMessage   `json:"value"`
}

// CompatibilityToken describes the storage shapes of the runtime a client is connected to.
type CompatibilityToken struct {
	SpecVersion uint32              `json:"specVersion"`
	Items       map[string][]string `json:"items"`
}

// Supports reports whether every field path of item exists in the live shape.
// Extra fields on the chain side are fine; missing ones are not.
func (t CompatibilityToken) Supports(item StorageItem) bool {
	live, ok := t.Items[item.Path()]
	if !ok {
		return false
	}
	have := make(map[string]struct{}, len(live))
	for _, f := range live {
		have[f] = struct{}{}
	}
	for _, f := range item.Fields {
		if _, ok := have[f]; !ok {
			return false
		}
	}
	return true
}
