package prefs

import (
	"fmt"
	"strconv"
)

// Kind identifies which member of the Value union is populated.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a dynamically typed preference value.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
}

// BoolValue wraps a boolean.
func BoolValue(v bool) Value { return Value{kind: KindBool, b: v} }

// IntValue wraps a signed integer.
func IntValue(v int64) Value { return Value{kind: KindInt, i: v} }

// FloatValue wraps a floating-point number.
func FloatValue(v float64) Value { return Value{kind: KindFloat, f: v} }

// StringValue wraps a string.
func StringValue(v string) Value { return Value{kind: KindString, s: v} }

// Kind reports which member of the union is set.
func (v Value) Kind() Kind { return v.kind }

func (v Value) AsBool() bool { return v.b }

func (v Value) AsInt() int64 { return v.i }

func (v Value) AsFloat() float64 { return v.f }

func (v Value) AsString() string { return v.s }

// Any returns the underlying Go value.
func (v Value) Any() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	default:
		return v.s
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		return v.s
	}
}

// Coerce infers a typed value from optional raw input. The trial order is
// fixed: missing or "true", "false", base-10 int64, float64, then the raw
// string unchanged.
func Coerce(input *string) Value {
	if input == nil {
		return BoolValue(true)
	}
	for _, attempt := range coercions {
		if v, ok := attempt(*input); ok {
			return v
		}
	}
	return StringValue(*input)
}

var coercions = []func(string) (Value, bool){
	func(s string) (Value, bool) { return BoolValue(true), s == "true" },
	func(s string) (Value, bool) { return BoolValue(false), s == "false" },
	func(s string) (Value, bool) {
		i, err := strconv.ParseInt(s, 10, 64)
		return IntValue(i), err == nil
	},
	func(s string) (Value, bool) {
		f, err := strconv.ParseFloat(s, 64)
		return FloatValue(f), err == nil
	},
}

// valueOf converts a decoded document leaf into a Value.
func valueOf(raw any) (Value, error) {
	switch v := raw.(type) {
	case bool:
		return BoolValue(v), nil
	case int:
		return IntValue(int64(v)), nil
	case int64:
		return IntValue(v), nil
	case uint64:
		return IntValue(int64(v)), nil
	case float64:
		return FloatValue(v), nil
	case string:
		return StringValue(v), nil
	case interface{ Int64() (int64, error) }:
		if i, err := v.Int64(); err == nil {
			return IntValue(i), nil
		}
		if f, ok := v.(interface{ Float64() (float64, error) }); ok {
			if x, err := f.Float64(); err == nil {
				return FloatValue(x), nil
			}
		}
	}
	return Value{}, fmt.Errorf("unsupported preference value %v (%T)", raw, raw)
}
