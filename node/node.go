// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package node defines a dynamically-typed value tree for JSON data.
//
// A *Value holds exactly one of seven kinds of payload: null, a Boolean, a
// 64-bit integer, a 64-bit floating-point number, a string, a list of values,
// or a map from string keys to values. Values are constructed only by the
// functions Null, Bool, Int, Double, String, List and Map.
//
// The payload accessors (Bool, Int, Double, Text, Index, Get, and so on)
// panic if called on a value of the wrong kind, in the manner of the reflect
// package. Use Kind to check the kind of a value before accessing it.
package node

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies the kind of payload carried by a Value.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid    Kind = iota // the zero Value, not constructed by a factory
	NullKind               // null
	BoolKind               // true or false
	IntKind                // 64-bit signed integer
	DoubleKind             // 64-bit floating point
	StringKind             // string
	ListKind               // ordered sequence of values
	MapKind                // string keys to values
)

var kindStr = [...]string{
	Invalid:    "invalid",
	NullKind:   "null",
	BoolKind:   "bool",
	IntKind:    "int",
	DoubleKind: "double",
	StringKind: "string",
	ListKind:   "list",
	MapKind:    "map",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[k]
}

// A Value is a JSON value. The zero Value is not valid; use the factory
// functions to construct values.
//
// A Value does not refer to the container that holds it. A List or Map value
// owns its elements unless the caller stores the same *Value in more than one
// place.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	list *[]*Value // shared by shallow copies
	m    map[string]*Value
}

// Null returns a new null value.
func Null() *Value { return &Value{kind: NullKind} }

// Bool returns a new Boolean value.
func Bool(b bool) *Value { return &Value{kind: BoolKind, b: b} }

// Int returns a new integer value.
func Int(z int64) *Value { return &Value{kind: IntKind, i: z} }

// Double returns a new floating-point value.
func Double(f float64) *Value { return &Value{kind: DoubleKind, f: f} }

// String returns a new string value.
func String(s string) *Value { return &Value{kind: StringKind, s: s} }

// List returns a new list value containing the given elements, in order.
func List(elts ...*Value) *Value {
	lst := make([]*Value, 0, len(elts))
	lst = append(lst, elts...)
	return &Value{kind: ListKind, list: &lst}
}

// Map returns a new empty map value.
func Map() *Value { return &Value{kind: MapKind, m: make(map[string]*Value)} }

// Kind reports the kind of v. It returns Invalid if v == nil.
func (v *Value) Kind() Kind {
	if v == nil {
		return Invalid
	}
	return v.kind
}

// IsNull reports whether v is a null value.
func (v *Value) IsNull() bool { return v.Kind() == NullKind }

func (v *Value) mustBe(k Kind, method string) {
	if got := v.Kind(); got != k {
		panic(fmt.Sprintf("node: call of Value.%s on %s value", method, got))
	}
}

func (v *Value) mustBeContainer(method string) {
	if got := v.Kind(); got != ListKind && got != MapKind {
		panic(fmt.Sprintf("node: call of Value.%s on %s value", method, got))
	}
}

// Bool returns the payload of a Boolean value.
func (v *Value) Bool() bool { v.mustBe(BoolKind, "Bool"); return v.b }

// Int returns the payload of an integer value.
func (v *Value) Int() int64 { v.mustBe(IntKind, "Int"); return v.i }

// Double returns the payload of a floating-point value.
func (v *Value) Double() float64 { v.mustBe(DoubleKind, "Double"); return v.f }

// Text returns the payload of a string value.
func (v *Value) Text() string { v.mustBe(StringKind, "Text"); return v.s }

// Len returns the number of elements of a list or entries of a map.
func (v *Value) Len() int {
	v.mustBeContainer("Len")
	if v.kind == ListKind {
		return len(*v.list)
	}
	return len(v.m)
}

// Elements returns the elements of a list value. The slice is shared with v,
// and is only valid until the next call to Append.
func (v *Value) Elements() []*Value { v.mustBe(ListKind, "Elements"); return *v.list }

// Index returns the element at offset i of a list value. It panics if i is
// out of range.
func (v *Value) Index(i int) *Value { v.mustBe(ListKind, "Index"); return (*v.list)[i] }

// SetIndex replaces the element at offset i of a list value with elt. It
// panics if i is out of range.
func (v *Value) SetIndex(i int, elt *Value) { v.mustBe(ListKind, "SetIndex"); (*v.list)[i] = elt }

// Append adds elts to the end of a list value.
func (v *Value) Append(elts ...*Value) {
	v.mustBe(ListKind, "Append")
	*v.list = append(*v.list, elts...)
}

// Entries returns the contents of a map value. The map is shared with v.
func (v *Value) Entries() map[string]*Value { v.mustBe(MapKind, "Entries"); return v.m }

// Get returns the value of key in a map value, or nil if key is not present.
func (v *Value) Get(key string) *Value { v.mustBe(MapKind, "Get"); return v.m[key] }

// Lookup returns the value of key in a map value, and reports whether key was
// present.
func (v *Value) Lookup(key string) (*Value, bool) {
	v.mustBe(MapKind, "Lookup")
	elt, ok := v.m[key]
	return elt, ok
}

// Set adds or replaces the value of key in a map value.
func (v *Value) Set(key string, elt *Value) { v.mustBe(MapKind, "Set"); v.m[key] = elt }

// Delete removes key from a map value, if it is present.
func (v *Value) Delete(key string) { v.mustBe(MapKind, "Delete"); delete(v.m, key) }

// Keys returns the keys of a map value in lexicographic order.
func (v *Value) Keys() []string {
	v.mustBe(MapKind, "Keys")
	return slices.Sorted(maps.Keys(v.m))
}

// Equal reports whether v and o are structurally equal: they have the same
// kind, and their payloads are equal. Lists are equal if their elements are
// pairwise equal in order; maps are equal if they have the same keys, and the
// values of each key are equal.
func (v *Value) Equal(o *Value) bool {
	if v == o {
		return true
	} else if v == nil || o == nil || v.kind != o.kind {
		return false
	}
	switch v.kind {
	case BoolKind:
		return v.b == o.b
	case IntKind:
		return v.i == o.i
	case DoubleKind:
		return v.f == o.f
	case StringKind:
		return v.s == o.s
	case ListKind:
		return slices.EqualFunc(*v.list, *o.list, (*Value).Equal)
	case MapKind:
		return maps.EqualFunc(v.m, o.m, (*Value).Equal)
	}
	return true // null and invalid have no payload
}

// Copy returns a shallow copy of v. For a list or map, the copy shares its
// contents with v, so that changes made through either are visible in both.
func (v *Value) Copy() *Value {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}

// DeepCopy returns a copy of v that shares no lists or maps with v.
func (v *Value) DeepCopy() *Value {
	if v == nil {
		return nil
	}
	switch v.kind {
	case ListKind:
		lst := make([]*Value, len(*v.list))
		for i, elt := range *v.list {
			lst[i] = elt.DeepCopy()
		}
		return &Value{kind: ListKind, list: &lst}
	case MapKind:
		m := make(map[string]*Value, len(v.m))
		for key, elt := range v.m {
			m[key] = elt.DeepCopy()
		}
		return &Value{kind: MapKind, m: m}
	}
	return v.Copy()
}

// String renders v in a compact human-readable form for diagnostics. Map
// keys are rendered in sorted order. The result is not guaranteed to be
// valid JSON.
func (v *Value) String() string {
	var sb strings.Builder
	v.render(&sb)
	return sb.String()
}

func (v *Value) render(sb *strings.Builder) {
	switch v.Kind() {
	case NullKind:
		sb.WriteString("null")
	case BoolKind:
		sb.WriteString(strconv.FormatBool(v.b))
	case IntKind:
		sb.WriteString(strconv.FormatInt(v.i, 10))
	case DoubleKind:
		sb.WriteString(strconv.FormatFloat(v.f, 'g', -1, 64))
	case StringKind:
		sb.WriteString(strconv.Quote(v.s))
	case ListKind:
		sb.WriteByte('[')
		for i, elt := range *v.list {
			if i > 0 {
				sb.WriteString(", ")
			}
			elt.render(sb)
		}
		sb.WriteByte(']')
	case MapKind:
		sb.WriteByte('{')
		for i, key := range v.Keys() {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.Quote(key))
			sb.WriteString(": ")
			v.m[key].render(sb)
		}
		sb.WriteByte('}')
	default:
		sb.WriteString("<invalid>")
	}
}
