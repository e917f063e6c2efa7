// Package firestore implements the typed-value wire codec and REST document
// gateway for the Firestore backend. The wire format wraps every scalar in a
// single-key object naming its kind ({"integerValue": "42"}); this package
// converts between that representation and plain JSON-like Go values.
package firestore

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Kind identifies the wire type of a Value.
type Kind int

// The eleven documented wire kinds, plus Unknown for forward compatibility
// with kinds this client does not model.
const (
	KindNull Kind = iota
	KindBool
	KindInteger
	KindDouble
	KindString
	KindTimestamp
	KindReference
	KindGeoPoint
	KindBytes
	KindArray
	KindMap
	KindUnknown
)

// String returns the wire field name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "nullValue"
	case KindBool:
		return "booleanValue"
	case KindInteger:
		return "integerValue"
	case KindDouble:
		return "doubleValue"
	case KindString:
		return "stringValue"
	case KindTimestamp:
		return "timestampValue"
	case KindReference:
		return "referenceValue"
	case KindGeoPoint:
		return "geoPointValue"
	case KindBytes:
		return "bytesValue"
	case KindArray:
		return "arrayValue"
	case KindMap:
		return "mapValue"
	default:
		return "unknown"
	}
}

// LatLng is the payload of a geo-point value.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Value is a single typed value in the document store's wire protocol.
// Exactly one payload field is meaningful for a given Kind:
//
//	Bool        KindBool
//	Double      KindDouble
//	Str         KindString, KindInteger (decimal string), KindTimestamp,
//	            KindReference, KindBytes
//	Geo         KindGeoPoint
//	Values      KindArray
//	Fields      KindMap
//	Raw         KindUnknown (original wire bytes)
type Value struct {
	Kind   Kind
	Bool   bool
	Double float64
	Str    string
	Geo    LatLng
	Values []Value
	Fields map[string]Value
	Raw    json.RawMessage
}

// Constructors for the common kinds.

// Null returns a null value.
func Null() Value { return Value{Kind: KindNull} }

// Boolean returns a boolean value.
func Boolean(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Integer returns an integer value. The wire carries integers as decimal
// strings; the payload is formatted here so encoding is bit-for-bit stable.
func Integer(n int64) Value { return Value{Kind: KindInteger, Str: strconv.FormatInt(n, 10)} }

// Float returns a double value.
func Float(f float64) Value { return Value{Kind: KindDouble, Double: f} }

// String returns a string value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Array returns an array value.
func Array(vs ...Value) Value { return Value{Kind: KindArray, Values: vs} }

// Map returns a map value.
func Map(fields map[string]Value) Value { return Value{Kind: KindMap, Fields: fields} }

// Encode converts a native JSON-like value into its typed wire form.
//
// Numbers follow the store's quirk: integral values become the integer kind
// carrying a decimal-string payload; fractional values become the double
// kind with a native numeric payload. Encode never fails; inputs outside
// the JSON-like set are stringified.
func Encode(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case bool:
		return Boolean(x)
	case int:
		return Integer(int64(x))
	case int32:
		return Integer(int64(x))
	case int64:
		return Integer(x)
	case float32:
		return Encode(float64(x))
	case float64:
		if isIntegral(x) {
			return Integer(int64(x))
		}
		return Float(x)
	case string:
		return String(x)
	case []any:
		vs := make([]Value, len(x))
		for i, e := range x {
			vs[i] = Encode(e)
		}
		return Array(vs...)
	case map[string]any:
		return Map(EncodeFields(x))
	case Value:
		return x
	default:
		return String(fmt.Sprint(x))
	}
}

// EncodeFields converts a flat native object into a wire fields map.
func EncodeFields(obj map[string]any) map[string]Value {
	fields := make(map[string]Value, len(obj))
	for k, v := range obj {
		fields[k] = Encode(v)
	}
	return fields
}

// Decode converts a typed wire value back to a native JSON-like value.
//
// Integer payloads are parsed back to numbers, falling back to the raw
// string when unparsable; timestamp, reference, geo-point and bytes kinds
// collapse to their carried payload and are never re-encoded as those kinds.
// Decode never fails.
func Decode(v Value) any {
	switch v.Kind {
	case KindNull:
		return nil
	case KindBool:
		return v.Bool
	case KindInteger:
		if n, err := strconv.ParseInt(v.Str, 10, 64); err == nil {
			return float64(n)
		}
		return v.Str
	case KindDouble:
		return v.Double
	case KindString, KindTimestamp, KindReference, KindBytes:
		return v.Str
	case KindGeoPoint:
		return map[string]any{
			"latitude":  v.Geo.Latitude,
			"longitude": v.Geo.Longitude,
		}
	case KindArray:
		out := make([]any, len(v.Values))
		for i, e := range v.Values {
			out[i] = Decode(e)
		}
		return out
	case KindMap:
		return DecodeFields(v.Fields)
	default:
		var raw any
		if err := json.Unmarshal(v.Raw, &raw); err != nil {
			return string(v.Raw)
		}
		return raw
	}
}

// DecodeFields converts a wire fields map into a flat native object.
func DecodeFields(fields map[string]Value) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = Decode(v)
	}
	return out
}

// MarshalJSON writes the single-key wire representation.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNull:
		return []byte(`{"nullValue":null}`), nil
	case KindBool:
		return wrapJSON("booleanValue", v.Bool)
	case KindInteger:
		return wrapJSON("integerValue", v.Str)
	case KindDouble:
		return wrapJSON("doubleValue", v.Double)
	case KindString:
		return wrapJSON("stringValue", v.Str)
	case KindTimestamp:
		return wrapJSON("timestampValue", v.Str)
	case KindReference:
		return wrapJSON("referenceValue", v.Str)
	case KindBytes:
		return wrapJSON("bytesValue", v.Str)
	case KindGeoPoint:
		return wrapJSON("geoPointValue", v.Geo)
	case KindArray:
		return wrapJSON("arrayValue", map[string]any{"values": v.Values})
	case KindMap:
		return wrapJSON("mapValue", map[string]any{"fields": v.Fields})
	default:
		if len(v.Raw) > 0 {
			return v.Raw, nil
		}
		return []byte(`{"nullValue":null}`), nil
	}
}

func wrapJSON(key string, payload any) ([]byte, error) {
	inner, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []byte(`{"` + key + `":` + string(inner) + `}`), nil
}

// UnmarshalJSON reads the single-key wire representation. Unrecognized kinds
// are preserved verbatim under KindUnknown rather than rejected.
func (v *Value) UnmarshalJSON(data []byte) error {
	var wire map[string]json.RawMessage
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	if _, ok := wire["nullValue"]; ok {
		*v = Null()
		return nil
	}
	if raw, ok := wire["booleanValue"]; ok {
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return err
		}
		*v = Boolean(b)
		return nil
	}
	if raw, ok := wire["integerValue"]; ok {
		// The store sends integers as decimal strings, but be lenient and
		// accept a bare number too.
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			s = string(raw)
		}
		*v = Value{Kind: KindInteger, Str: s}
		return nil
	}
	if raw, ok := wire["doubleValue"]; ok {
		var f float64
		if err := json.Unmarshal(raw, &f); err != nil {
			return err
		}
		*v = Float(f)
		return nil
	}
	for key, kind := range map[string]Kind{
		"stringValue":    KindString,
		"timestampValue": KindTimestamp,
		"referenceValue": KindReference,
		"bytesValue":     KindBytes,
	} {
		if raw, ok := wire[key]; ok {
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return err
			}
			*v = Value{Kind: kind, Str: s}
			return nil
		}
	}
	if raw, ok := wire["geoPointValue"]; ok {
		var geo LatLng
		if err := json.Unmarshal(raw, &geo); err != nil {
			return err
		}
		*v = Value{Kind: KindGeoPoint, Geo: geo}
		return nil
	}
	if raw, ok := wire["arrayValue"]; ok {
		var arr struct {
			Values []Value `json:"values"`
		}
		if err := json.Unmarshal(raw, &arr); err != nil {
			return err
		}
		*v = Value{Kind: KindArray, Values: arr.Values}
		return nil
	}
	if raw, ok := wire["mapValue"]; ok {
		var m struct {
			Fields map[string]Value `json:"fields"`
		}
		if err := json.Unmarshal(raw, &m); err != nil {
			return err
		}
		if m.Fields == nil {
			m.Fields = map[string]Value{}
		}
		*v = Value{Kind: KindMap, Fields: m.Fields}
		return nil
	}

	*v = Value{Kind: KindUnknown, Raw: append(json.RawMessage(nil), data...)}
	return nil
}

// isIntegral reports whether f carries an exact integer representable as int64.
func isIntegral(f float64) bool {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	if f != math.Trunc(f) {
		return false
	}
	return f >= math.MinInt64 && f < math.MaxInt64
}
