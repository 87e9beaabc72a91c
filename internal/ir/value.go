package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"unicode/utf16"
)

// IRValue is a sealed interface over the JSON shapes a WOQL document can hold.
// Only IRNull, IRString, IRInt, IRNumber, IRBool, IRArray and IRObject
// implement it.
type IRValue interface {
	irValue() // Sealed - only these types implement it
}

// IRNull represents a JSON null value.
type IRNull struct{}

func (IRNull) irValue() {}

// MarshalJSON implements json.Marshaler for IRNull.
func (IRNull) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// IRString represents a string value.
type IRString string

func (IRString) irValue() {}

// IRInt represents an integral number.
type IRInt int64

func (IRInt) irValue() {}

// IRNumber represents a non-integral number as its decimal text, e.g. "3.25".
// Keeping the text avoids float formatting drift between encode passes, so
// a decoded document re-encodes to identical bytes.
type IRNumber string

func (IRNumber) irValue() {}

// MarshalJSON implements json.Marshaler for IRNumber.
func (n IRNumber) MarshalJSON() ([]byte, error) {
	if !json.Valid([]byte(n)) {
		return nil, fmt.Errorf("invalid JSON number %q", string(n))
	}
	return []byte(n), nil
}

// IRBool represents a boolean value.
type IRBool bool

func (IRBool) irValue() {}

// IRArray represents an array of IRValue elements.
type IRArray []IRValue

func (IRArray) irValue() {}

// IRObject represents a map of string keys to IRValue elements.
// Use SortedKeys() for deterministic iteration.
type IRObject map[string]IRValue

func (IRObject) irValue() {}

// NewIRNumber formats f as an IRNumber. Integral floats become IRInt so that
// 2.0 and 2 encode the same way.
func NewIRNumber(f float64) IRValue {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return IRInt(int64(f))
	}
	return IRNumber(strconv.FormatFloat(f, 'f', -1, 64))
}

// IRPair is a key/value pair for Obj.
// Example: Obj(O("@type", IRString("True")))
type IRPair struct {
	Key   string
	Value IRValue
}

// O returns an IRPair.
func O(key string, value IRValue) IRPair {
	return IRPair{Key: key, Value: value}
}

// Obj creates an IRObject from pairs.
func Obj(pairs ...IRPair) IRObject {
	obj := make(IRObject, len(pairs))
	for _, p := range pairs {
		obj[p.Key] = p.Value
	}
	return obj
}

// Type returns the "@type" of the object, or "" when absent or not a string.
func (obj IRObject) Type() string {
	s, _ := obj["@type"].(IRString)
	return string(s)
}

// SortedKeys returns keys in RFC 8785 canonical order (UTF-16 code units).
// Go's sort.Strings uses UTF-8 byte order, which differs for astral runes.
func (obj IRObject) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

// compareKeysRFC8785 compares strings by UTF-16 code units.
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	for i := 0; i < min(len(a16), len(b16)); i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}

	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	}
	return 0
}

// UnmarshalJSON implements json.Unmarshaler for IRObject.
func (obj *IRObject) UnmarshalJSON(data []byte) error {
	val, err := UnmarshalIRValue(data)
	if err != nil {
		return err
	}
	o, ok := val.(IRObject)
	if !ok {
		return fmt.Errorf("expected JSON object, got %T", val)
	}
	*obj = o
	return nil
}

// UnmarshalJSON implements json.Unmarshaler for IRArray.
func (arr *IRArray) UnmarshalJSON(data []byte) error {
	val, err := UnmarshalIRValue(data)
	if err != nil {
		return err
	}
	a, ok := val.(IRArray)
	if !ok {
		return fmt.Errorf("expected JSON array, got %T", val)
	}
	*arr = a
	return nil
}

// MarshalJSON implements json.Marshaler for IRObject with sorted keys.
func (obj IRObject) MarshalJSON() ([]byte, error) {
	return MarshalCanonical(obj)
}

// MarshalJSON implements json.Marshaler for IRArray.
func (arr IRArray) MarshalJSON() ([]byte, error) {
	return MarshalCanonical(arr)
}

// MarshalIRValue marshals an IRValue to canonical JSON bytes.
func MarshalIRValue(v IRValue) ([]byte, error) {
	return MarshalCanonical(v)
}

// UnmarshalIRValue decodes JSON into an IRValue. Numbers without a fraction
// or exponent become IRInt, all others IRNumber.
func UnmarshalIRValue(data []byte) (IRValue, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after top-level JSON value")
	}
	return FromGo(raw)
}

// FromGo converts a decoded Go value (as produced by encoding/json, or built
// by hand) into an IRValue.
func FromGo(v any) (IRValue, error) {
	switch val := v.(type) {
	case nil:
		return IRNull{}, nil
	case IRValue:
		return val, nil
	case bool:
		return IRBool(val), nil
	case string:
		return IRString(val), nil
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return IRInt(n), nil
		}
		if _, err := val.Float64(); err != nil {
			return nil, fmt.Errorf("invalid number %q", val)
		}
		return IRNumber(val), nil
	case int:
		return IRInt(val), nil
	case int64:
		return IRInt(val), nil
	case int32:
		return IRInt(val), nil
	case uint32:
		return IRInt(val), nil
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil, fmt.Errorf("number %v has no JSON representation", val)
		}
		return NewIRNumber(val), nil
	case float32:
		return FromGo(float64(val))
	case []any:
		arr := make(IRArray, len(val))
		for i, elem := range val {
			irElem, err := FromGo(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr[i] = irElem
		}
		return arr, nil
	case map[string]any:
		obj := make(IRObject, len(val))
		for k, elem := range val {
			irElem, err := FromGo(elem)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			obj[k] = irElem
		}
		return obj, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return IRInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return IRNumber(strconv.FormatUint(u, 10)), nil
		}
		return IRInt(int64(u)), nil
	case reflect.Slice, reflect.Array:
		arr := make(IRArray, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			irElem, err := FromGo(rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr[i] = irElem
		}
		return arr, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		obj := make(IRObject, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k := iter.Key().String()
			irElem, err := FromGo(iter.Value().Interface())
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			obj[k] = irElem
		}
		return obj, nil
	}
	return nil, fmt.Errorf("unsupported type: %T", v)
}

// ToGo converts an IRValue to plain Go values (map[string]any, []any, string,
// int64, json.Number, bool, nil). Useful for handing documents to libraries
// that expect encoding/json shapes.
func ToGo(v IRValue) any {
	switch val := v.(type) {
	case IRString:
		return string(val)
	case IRInt:
		return int64(val)
	case IRNumber:
		return json.Number(val)
	case IRBool:
		return bool(val)
	case IRArray:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = ToGo(elem)
		}
		return out
	case IRObject:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = ToGo(elem)
		}
		return out
	default:
		return nil
	}
}
