// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package node

import (
	"fmt"
	"math"
)

// Any converts v into plain Go values: nil for null, and bool, int64,
// float64, string, []any or map[string]any for the other kinds. Lists and
// maps are converted recursively and share no storage with v.
func (v *Value) Any() any {
	switch v.Kind() {
	case BoolKind:
		return v.b
	case IntKind:
		return v.i
	case DoubleKind:
		return v.f
	case StringKind:
		return v.s
	case ListKind:
		out := make([]any, len(*v.list))
		for i, elt := range *v.list {
			out[i] = elt.Any()
		}
		return out
	case MapKind:
		out := make(map[string]any, len(v.m))
		for key, elt := range v.m {
			out[key] = elt.Any()
		}
		return out
	}
	return nil
}

// FromAny converts a plain Go value into a *Value. It accepts nil, bool, all
// the built-in integer and floating-point types, string, []any, []*Value,
// map[string]any, map[string]*Value and *Value. A *Value is returned as-is,
// and the contents of []*Value and map[string]*Value are not copied.
//
// FromAny panics if v or any value inside it has another type, or if an
// unsigned integer does not fit in an int64.
func FromAny(v any) *Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case *Value:
		return t
	case bool:
		return Bool(t)
	case int:
		return Int(int64(t))
	case int8:
		return Int(int64(t))
	case int16:
		return Int(int64(t))
	case int32:
		return Int(int64(t))
	case int64:
		return Int(t)
	case uint:
		return fromUint(uint64(t))
	case uint8:
		return Int(int64(t))
	case uint16:
		return Int(int64(t))
	case uint32:
		return Int(int64(t))
	case uint64:
		return fromUint(t)
	case float32:
		return Double(float64(t))
	case float64:
		return Double(t)
	case string:
		return String(t)
	case []*Value:
		return List(t...)
	case []any:
		out := List()
		for _, elt := range t {
			out.Append(FromAny(elt))
		}
		return out
	case map[string]*Value:
		out := Map()
		for key, elt := range t {
			out.Set(key, elt)
		}
		return out
	case map[string]any:
		out := Map()
		for key, elt := range t {
			out.Set(key, FromAny(elt))
		}
		return out
	default:
		panic(fmt.Sprintf("node: unsupported type %T", v))
	}
}

func fromUint(u uint64) *Value {
	if u > math.MaxInt64 {
		panic(fmt.Sprintf("node: value %d out of range for int64", u))
	}
	return Int(int64(u))
}
