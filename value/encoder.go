package value

import (
	"encoding/json"
)

// Encoder serializes a structured value into a byte sequence for binding.
// Implementations must be deterministic, equal values encode to equal bytes.
type Encoder interface {
	Encode(v Value) ([]byte, error)
}

// JSONEncoder serializes values with encoding/json. Byte sequences encode as
// base64 strings and temporal values as RFC 3339 strings.
type JSONEncoder struct{}

// Encode return the JSON encoding of v
func (JSONEncoder) Encode(v Value) ([]byte, error) {
	return json.Marshal(v)
}

// MarshalJSON implements json.Marshaler over the plain Go counterpart of the
// value tree
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.native())
}
