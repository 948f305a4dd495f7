// Package jsonvalue models decoded JSON as an explicit sum type so that
// schema-free walkers can inspect shape without reflection.
package jsonvalue

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
)

// Kind identifies which variant a Value holds
type Kind uint8

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// Field is one member of an object, kept in document order
type Field struct {
	Key   string
	Value Value
}

// Value is an immutable JSON value. The zero Value is null.
type Value struct {
	kind   Kind
	b      bool
	s      string // string contents, or the number literal
	items  []Value
	fields []Field
}

func NullValue() Value { return Value{} }

func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

func StringValue(s string) Value { return Value{kind: String, s: s} }

func ArrayValue(items ...Value) Value { return Value{kind: Array, items: items} }

func ObjectValue(fields ...Field) Value { return Value{kind: Object, fields: fields} }

// NumberValue keeps the literal as written so large integers survive intact
func NumberValue(literal string) Value { return Value{kind: Number, s: literal} }

// IntValue is a convenience for building documents in code
func IntValue(n int64) Value { return NumberValue(strconv.FormatInt(n, 10)) }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == Null }

// Items returns the elements of an array; nil for other kinds
func (v Value) Items() []Value { return v.items }

// Fields returns the members of an object in document order
func (v Value) Fields() []Field { return v.fields }

// Str returns the contents of a string value
func (v Value) Str() (string, bool) {
	if v.kind != String {
		return "", false
	}
	return v.s, true
}

// Bool returns the contents of a bool value
func (v Value) Bool() (bool, bool) {
	if v.kind != Bool {
		return false, false
	}
	return v.b, true
}

// Int returns a number value as int64. Fractional numbers are truncated
// toward zero; values outside the int64 range report false.
func (v Value) Int() (int64, bool) {
	if v.kind != Number {
		return 0, false
	}
	if n, err := strconv.ParseInt(v.s, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(v.s, 64)
	if err != nil || math.IsNaN(f) || f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// Get looks up an object member. Duplicate keys resolve to the last one.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != Object {
		return Value{}, false
	}
	for i := len(v.fields) - 1; i >= 0; i-- {
		if v.fields[i].Key == key {
			return v.fields[i].Value, true
		}
	}
	return Value{}, false
}

// GetString is Get followed by Str, treating "" as absent
func (v Value) GetString(key string) (string, bool) {
	field, ok := v.Get(key)
	if !ok {
		return "", false
	}
	s, ok := field.Str()
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// FromAny converts the output of encoding/json (or equivalent literals) into a
// Value. Map keys are sorted since Go maps carry no order. Unsupported types
// become null.
func FromAny(in any) Value {
	switch t := in.(type) {
	case nil:
		return NullValue()
	case Value:
		return t
	case bool:
		return BoolValue(t)
	case string:
		return StringValue(t)
	case json.Number:
		return NumberValue(t.String())
	case float64:
		return NumberValue(strconv.FormatFloat(t, 'f', -1, 64))
	case float32:
		return NumberValue(strconv.FormatFloat(float64(t), 'f', -1, 32))
	case int:
		return IntValue(int64(t))
	case int64:
		return IntValue(t)
	case int32:
		return IntValue(int64(t))
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			items[i] = FromAny(item)
		}
		return ArrayValue(items...)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]Field, len(keys))
		for i, k := range keys {
			fields[i] = Field{Key: k, Value: FromAny(t[k])}
		}
		return ObjectValue(fields...)
	default:
		return NullValue()
	}
}
