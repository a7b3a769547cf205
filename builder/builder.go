// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package builder assembles the events of a jstream parse into a value tree.
//
// The generic Builder constructs values of any type T through a Factory,
// which supplies the constructors for each kind of JSON value and the
// operations to fill lists and maps. The Build function is the common case,
// building a *node.Value tree:
//
//	v, err := builder.Build(`{"a": [1, 2.5, null]}`)
//	if err != nil {
//	   log.Fatalf("Build failed: %v", err)
//	}
//	fmt.Println(v.Get("a").Index(1).Double()) // 2.5
package builder

import (
	"github.com/jl95/jstream"
	"github.com/jl95/jstream/node"
)

// A Factory constructs and fills values of type T on behalf of a Builder.
type Factory[T any] interface {
	// Null returns a value representing null.
	Null() T

	// Bool returns a value representing a Boolean constant.
	Bool(b bool) T

	// Number returns a value representing a number, given its text: decimal
	// digits with at most one decimal point. If the number cannot be
	// represented, Number reports an error, and the build fails.
	Number(text string) (T, error)

	// String returns a value representing a string.
	String(s string) T

	// List returns a new, empty list value.
	List() T

	// Map returns a new, empty map value.
	Map() T

	// Append adds elt to the end of the list value lst.
	Append(lst, elt T)

	// Insert adds, or replaces, key with value elt in the map value m.
	Insert(m T, key string, elt T)
}

// A Builder constructs values of type T from JSON text. A Builder has no
// mutable state, and may be used by multiple goroutines concurrently.
type Builder[T any] struct {
	f Factory[T]
}

// New constructs a Builder that uses f to construct values.
func New[T any](f Factory[T]) *Builder[T] { return &Builder[T]{f: f} }

// Build parses text as a single JSON document and returns the root value.
// If parsing fails, Build returns the zero value of T and the error from the
// parser, which has concrete type [*jstream.SyntaxError].
func (b *Builder[T]) Build(text string) (T, error) {
	a := &assembler[T]{f: b.f}
	if err := jstream.Parse(text, a); err != nil {
		var zero T
		return zero, err
	}
	return a.root, nil
}

// BuildBytes behaves as Build, but consumes its input from data.
func (b *Builder[T]) BuildBytes(data []byte) (T, error) {
	a := &assembler[T]{f: b.f}
	if err := jstream.ParseBytes(data, a); err != nil {
		var zero T
		return zero, err
	}
	return a.root, nil
}

var nodes = New[*node.Value](NodeFactory{})

// Build parses text as a single JSON document and returns the corresponding
// *node.Value tree.
func Build(text string) (*node.Value, error) { return nodes.Build(text) }

// BuildBytes behaves as Build, but consumes its input from data.
func BuildBytes(data []byte) (*node.Value, error) { return nodes.BuildBytes(data) }

// An assembler implements the jstream.Handler interface to construct a single
// value from the events of one parse.
type assembler[T any] struct {
	f    Factory[T]
	root T
	stk  []T // open lists and maps, innermost last

	key    string // pending map key
	hasKey bool
}

// add attaches v to the innermost open container, or makes it the root if no
// container is open. If open is true, v becomes the innermost container.
func (a *assembler[T]) add(v T, open bool) error {
	if n := len(a.stk); n == 0 {
		a.root = v
	} else if a.hasKey {
		a.f.Insert(a.stk[n-1], a.key, v)
		a.key, a.hasKey = "", false
	} else {
		a.f.Append(a.stk[n-1], v)
	}
	if open {
		a.stk = append(a.stk, v)
	}
	return nil
}

func (a *assembler[T]) pop() error {
	var zero T
	n := len(a.stk) - 1
	a.stk[n] = zero
	a.stk = a.stk[:n]
	return nil
}

func (a *assembler[T]) Null() error           { return a.add(a.f.Null(), false) }
func (a *assembler[T]) True() error           { return a.add(a.f.Bool(true), false) }
func (a *assembler[T]) False() error          { return a.add(a.f.Bool(false), false) }
func (a *assembler[T]) String(s string) error { return a.add(a.f.String(s), false) }
func (a *assembler[T]) BeginArray() error     { return a.add(a.f.List(), true) }
func (a *assembler[T]) EndArray() error       { return a.pop() }
func (a *assembler[T]) BeginObject() error    { return a.add(a.f.Map(), true) }
func (a *assembler[T]) EndObject() error      { return a.pop() }

func (a *assembler[T]) Number(text string) error {
	v, err := a.f.Number(text)
	if err != nil {
		return err
	}
	return a.add(v, false)
}

func (a *assembler[T]) Key(key string) error {
	a.key, a.hasKey = key, true
	return nil
}
