// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package builder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jl95/jstream/node"
)

// NodeFactory is a Factory that constructs *node.Value trees. A number
// containing a decimal point becomes a Double; otherwise it becomes an Int.
type NodeFactory struct{}

func (NodeFactory) Null() *node.Value           { return node.Null() }
func (NodeFactory) Bool(b bool) *node.Value     { return node.Bool(b) }
func (NodeFactory) String(s string) *node.Value { return node.String(s) }
func (NodeFactory) List() *node.Value           { return node.List() }
func (NodeFactory) Map() *node.Value            { return node.Map() }

func (NodeFactory) Append(lst, elt *node.Value) { lst.Append(elt) }

func (NodeFactory) Insert(m *node.Value, key string, elt *node.Value) { m.Set(key, elt) }

// Number reports an error wrapping strconv.ErrRange if text does not fit the
// chosen representation.
func (NodeFactory) Number(text string) (*node.Value, error) {
	if strings.Contains(text, ".") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, numberError(text, err)
		}
		return node.Double(f), nil
	}
	z, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, numberError(text, err)
	}
	return node.Int(z), nil
}

func numberError(text string, err error) error {
	var nerr *strconv.NumError
	if errors.As(err, &nerr) {
		err = nerr.Err
	}
	return fmt.Errorf("number %q: %w", text, err)
}
