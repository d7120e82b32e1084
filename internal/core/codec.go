package core

import (
	"errors"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

var (
	errNotJSONObject = errors.New("expected a JSON object")
	errNotCBORMap    = errors.New("expected a CBOR map")
)

// JSON decoding rejects duplicate member names and matches names case-sensitively.
// Encoding sorts map members so identical claims give identical tokens.

// MarshalJSON encodes v as a JSON object.
func MarshalJSON(v any) ([]byte, error) {
	return json.Marshal(v, json.Deterministic(true))
}

// UnmarshalJSON decodes untrusted JSON into v.
func UnmarshalJSON(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// UnmarshalJSONObject is UnmarshalJSON for data that must hold an object; null and
// other top-level values are rejected.
func UnmarshalJSONObject(data []byte, v any) error {
	if jsontext.Value(data).Kind() != '{' {
		return errNotJSONObject
	}
	return UnmarshalJSON(data, v)
}

var (
	cborEncMode = mustEncMode()
	cborDecMode = mustDecMode()
)

func mustEncMode() cbor.EncMode {
	mode, err := cbor.EncOptions{
		Sort:      cbor.SortCoreDeterministic,
		ByteArray: cbor.ByteArrayToByteSlice,
	}.EncMode()
	if err != nil {
		panic("core: invalid CBOR encoding options: " + err.Error())
	}
	return mode
}

// Limits keep decoding of untrusted claims bounded in time and memory.
func mustDecMode() cbor.DecMode {
	mode, err := cbor.DecOptions{
		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
		MaxNestedLevels:  16,
		MaxArrayElements: 4096,
		MaxMapPairs:      4096,
		IndefLength:      cbor.IndefLengthForbidden,
		DefaultMapType:   reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("core: invalid CBOR decoding options: " + err.Error())
	}
	return mode
}

// MarshalCBOR encodes v with deterministic map ordering.
func MarshalCBOR(v any) ([]byte, error) {
	return cborEncMode.Marshal(v)
}

// UnmarshalCBOR decodes untrusted CBOR into v. Duplicate map keys are rejected.
func UnmarshalCBOR(data []byte, v any) error {
	return cborDecMode.Unmarshal(data, v)
}

// UnmarshalCBORMap is UnmarshalCBOR for data that must hold a map; null, undefined
// and other top-level items are rejected.
func UnmarshalCBORMap(data []byte, v any) error {
	if !isCBORMap(data) {
		return errNotCBORMap
	}
	return UnmarshalCBOR(data, v)
}

// isCBORMap reports whether the first data item has major type 5.
func isCBORMap(data []byte) bool {
	return len(data) > 0 && data[0]>>5 == 5
}

// IsCBORNull reports whether raw is the CBOR null or undefined simple value.
func IsCBORNull(raw []byte) bool {
	return len(raw) == 1 && (raw[0] == 0xf6 || raw[0] == 0xf7)
}
