// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements traversal over the structure of a node.Value.
package cursor

import (
	"fmt"

	"github.com/jl95/jstream/node"
)

// Path follows path from v, with elements as described for Cursor.Down, and
// returns the value it reaches.
func Path(v *node.Value, path ...any) (*node.Value, error) {
	c := New(v).Down(path...)
	if err := c.Err(); err != nil {
		return nil, err
	}
	return c.Value(), nil
}

// PathKind behaves as Path, but also reports an error if the value at the end
// of path does not have kind k.
func PathKind(v *node.Value, k node.Kind, path ...any) (*node.Value, error) {
	got, err := Path(v, path...)
	if err != nil {
		return nil, err
	} else if got.Kind() != k {
		return nil, fmt.Errorf("wrong value kind %v, want %v", got.Kind(), k)
	}
	return got, nil
}

// A Cursor records a position inside a tree of values, along with the values
// visited on the way down from its origin.
type Cursor struct {
	org *node.Value
	stk []*node.Value
	err error
}

// New constructs a new Cursor to traverse the structure of origin.
func New(origin *node.Value) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin value of c.
func (c *Cursor) Origin() *node.Value { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Value returns the value at the current position.
func (c *Cursor) Value() *node.Value {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1]
}

// Path returns the values from the origin to the current position, inclusive.
func (c *Cursor) Path() []*node.Value {
	return append([]*node.Value{c.org}, c.stk...)
}

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves c to the parent of the current value. At the origin it does
// nothing. It returns c.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset returns c to its origin and discards any error.
func (c *Cursor) Reset() { c.stk = c.stk[:0]; c.err = nil }

// Down traverses a sequential path into the structure of c starting from the
// current value, where path elements are either strings (denoting map keys),
// integers (denoting offsets into lists), or functions (see below). If the
// path cannot be completely consumed, traversal stops at the last value
// reached and an error is recorded. Use Err to recover the error.
//
// If a path element is a string, the corresponding value must be a map, and
// the string selects the value of that key.
//
// If a path element is an integer, the corresponding value must be a list,
// and the integer resolves to an index in the list. Negative indices count
// backward from the end (-1 is last, -2 second last). An error is reported if
// the index is out of bounds.
//
// If a path element is a function, the function is executed and its result
// becomes the next value in the sequence. The function must have a signature
//
//	func(*node.Value) (*node.Value, error)
//
// If the function reports an error, traversal stops and the error is recorded.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil
	cur := c.Value()
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			if cur.Kind() != node.MapKind {
				return c.failf("cannot traverse %v with %q", cur.Kind(), elt)
			}
			next, ok := cur.Lookup(t)
			if !ok {
				return c.failf("key %q not found", t)
			}
			cur = c.push(next)

		case int:
			if cur.Kind() != node.ListKind {
				return c.failf("cannot traverse %v with %v", cur.Kind(), elt)
			}
			i, ok := listIndex(cur.Len(), t)
			if !ok {
				return c.failf("list index %d out of bounds (n=%d)", i, cur.Len())
			}
			cur = c.push(cur.Index(i))

		case func(*node.Value) (*node.Value, error):
			next, err := t(cur)
			if err != nil {
				c.err = err
				return c
			}
			cur = c.push(next)

		default:
			return c.failf("invalid path element %T", elt)
		}
	}
	return c
}

func (c *Cursor) push(v *node.Value) *node.Value { c.stk = append(c.stk, v); return v }

func (c *Cursor) failf(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf(msg, args...)
	return c
}

// listIndex resolves i as an index into a list of length n.
func listIndex(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}
