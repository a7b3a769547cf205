// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"fmt"

	"github.com/jl95/jstream/internal/escape"

	"go4.org/mem"
)

// A Handler handles events from parsing an input document. If a method
// reports an error, parsing stops and that error is returned to the caller,
// wrapped in a [*SyntaxError].
//
// The parser ensures that objects and arrays are correctly balanced, and that
// within an object every Key is followed by exactly one value.
type Handler interface {
	// Report a null constant.
	Null() error

	// Report a number. The text is the raw lexeme from the input, a sequence of
	// decimal digits with at most one decimal point. The handler decides how to
	// interpret it.
	Number(text string) error

	// Report a string value. The text has been unquoted and unescaped.
	String(s string) error

	// Report a true constant.
	True() error

	// Report a false constant.
	False() error

	// Begin a new array.
	BeginArray() error

	// End the most-recently-opened array.
	EndArray() error

	// Begin a new object.
	BeginObject() error

	// End the most-recently-opened object.
	EndObject() error

	// Report the key of an object member. The text has been unquoted and
	// unescaped. The value of the member is the next value reported.
	Key(key string) error
}

// Parse parses text as a single JSON document and delivers events to h. Parse
// returns nil if the input was fully processed without error. In case of
// error, the returned error has type [*SyntaxError], and no further events
// are delivered.
//
// Each call uses its own parse state, so it is safe to call Parse
// concurrently from multiple goroutines (with distinct handlers).
func Parse(text string, h Handler) error { return parse(mem.S(text), h) }

// ParseBytes behaves as [Parse], but consumes its input from data. The
// contents of data must not be modified until ParseBytes returns.
func ParseBytes(data []byte, h Handler) error { return parse(mem.B(data), h) }

// A state is a lexical state of the parser.
type state byte

const (
	beforeValue state = iota
	inNumber
	inWord
	inString
	inStringEscaping
	afterValue
	beforeKey
	afterKey
)

var stateStr = [...]string{
	beforeValue:      "before value",
	inNumber:         "in number",
	inWord:           "in word",
	inString:         "in string",
	inStringEscaping: "in string escape",
	afterValue:       "after value",
	beforeKey:        "before key",
	afterKey:         "after key",
}

func (s state) String() string {
	if int(s) >= len(stateStr) {
		return "invalid state"
	}
	return stateStr[s]
}

// A container is the kind of an open array or object.
type container byte

const (
	array container = iota
	object
)

func (c container) String() string {
	if c == array {
		return "array"
	}
	return "object"
}

// A parser is the context for a single call of parse.
type parser struct {
	src   mem.RO
	h     Handler
	pos   int         // scan cursor
	left  int         // start offset of the current lexeme
	state state       // current lexical state
	stk   []container // open containers, innermost last
	inKey bool        // the current string is an object key
	empty bool        // the previous token opened a container
	dot   bool        // the current number has a decimal point
}

func parse(src mem.RO, h Handler) error {
	p := &parser{src: src, h: h}
	for p.pos < p.src.Len() {
		if err := p.step(p.src.At(p.pos)); err != nil {
			return err
		}
	}
	return p.finish()
}

// step processes the byte c at the current position. A state may change
// without consuming c, in which case c is dispatched again in the new state.
func (p *parser) step(c byte) error {
	switch p.state {
	case beforeValue:
		return p.beforeValue(c)
	case inNumber:
		return p.inNumber(c)
	case inWord:
		if isWordByte(c) {
			p.pos++
			return nil
		}
		return p.endWord()
	case inString:
		return p.inString(c)
	case inStringEscaping:
		if _, ok := escape.Decode(c); !ok {
			return p.fail("inescapable character %q", p.char())
		}
		p.pos++
		p.state = inString
		return nil
	case afterValue:
		return p.afterValue(c)
	case beforeKey:
		return p.beforeKey(c)
	case afterKey:
		if isSpace(c) {
			p.pos++
		} else if c == ':' {
			p.pos++
			p.state = beforeValue
		} else {
			return p.fail("expected %q after object key, got %q", ':', p.char())
		}
		return nil
	default:
		panic(fmt.Sprintf("invalid parser state %d", p.state))
	}
}

func (p *parser) beforeValue(c byte) error {
	if isSpace(c) {
		p.pos++
		return nil
	}
	empty := p.empty
	p.empty = false

	switch {
	case isNumByte(c):
		p.dot = c == '.'
		p.begin(inNumber)
	case c == 'n' || c == 't' || c == 'f':
		p.begin(inWord)
	case c == '"':
		p.inKey = false
		p.begin(inString)
	case c == '[':
		return p.open(array, beforeValue, p.h.BeginArray)
	case c == '{':
		return p.open(object, beforeKey, p.h.BeginObject)
	case (c == ']' || c == '}') && empty:
		// An empty array or object; the closer is handled after the "value".
		p.state = afterValue
	default:
		return p.fail("invalid starting character %q", p.char())
	}
	return nil
}

func (p *parser) inNumber(c byte) error {
	switch {
	case isDigit(c):
		p.pos++
	case c == '.':
		if p.dot {
			return p.fail("invalid number: extra decimal point")
		}
		p.dot = true
		p.pos++
	default:
		return p.endNumber()
	}
	return nil
}

func (p *parser) inString(c byte) error {
	switch c {
	case '\\':
		p.pos++
		p.state = inStringEscaping
	case '"':
		dec, err := escape.Unquote(p.src.SliceTo(p.pos).SliceFrom(p.left + 1))
		if err != nil {
			return p.failAt(p.left, "%v", err)
		}
		p.pos++
		if p.inKey {
			p.state = afterKey
			return p.check(p.h.Key(string(dec)))
		}
		p.state = afterValue
		return p.check(p.h.String(string(dec)))
	default:
		p.pos++
	}
	return nil
}

func (p *parser) afterValue(c byte) error {
	switch {
	case isSpace(c):
		p.pos++
	case c == ',':
		top, ok := p.top()
		if !ok {
			return p.fail("separator %q not expected", c)
		}
		p.pos++
		if top == array {
			p.state = beforeValue
		} else {
			p.state = beforeKey
		}
	case c == ']':
		return p.close(array, c, p.h.EndArray)
	case c == '}':
		return p.close(object, c, p.h.EndObject)
	default:
		return p.fail("invalid character %q after value", p.char())
	}
	return nil
}

func (p *parser) beforeKey(c byte) error {
	if isSpace(c) {
		p.pos++
		return nil
	}
	empty := p.empty
	p.empty = false

	switch {
	case c == '"':
		p.inKey = true
		p.begin(inString)
	case c == '}' && empty:
		p.state = afterValue
	default:
		return p.fail("invalid character %q before object key", p.char())
	}
	return nil
}

// finish handles the end of the input.
func (p *parser) finish() error {
	switch p.state {
	case inString, inStringEscaping:
		return p.failAt(p.left, "unterminated string")
	case inNumber, inWord:
		// A bare top-level literal is terminated by the end of input.
		if len(p.stk) == 0 {
			var err error
			if p.state == inNumber {
				err = p.endNumber()
			} else {
				err = p.endWord()
			}
			if err != nil {
				return err
			}
		}
	}
	if top, ok := p.top(); ok {
		return p.fail("unterminated input: unclosed %s", top)
	} else if p.state != afterValue {
		return p.fail("unterminated input")
	}
	return nil
}

// begin starts a new lexeme at the current position in state s.
func (p *parser) begin(s state) {
	p.left = p.pos
	p.pos++
	p.state = s
}

// lexeme returns the text of the current lexeme.
func (p *parser) lexeme() mem.RO { return p.src.SliceTo(p.pos).SliceFrom(p.left) }

func (p *parser) endNumber() error {
	text := p.lexeme()
	if text.Len() == 1 && p.dot {
		return p.failAt(p.left, "invalid number %q: no digits", text.StringCopy())
	}
	p.state = afterValue
	return p.check(p.h.Number(text.StringCopy()))
}

func (p *parser) endWord() error {
	word := p.lexeme()
	var event func() error
	switch {
	case word.Equal(mem.S("true")):
		event = p.h.True
	case word.Equal(mem.S("false")):
		event = p.h.False
	case word.Equal(mem.S("null")):
		event = p.h.Null
	default:
		return p.failAt(p.left, "invalid word %q", word.StringCopy())
	}
	p.state = afterValue
	return p.check(event())
}

func (p *parser) open(c container, next state, event func() error) error {
	p.stk = append(p.stk, c)
	p.left = p.pos
	p.pos++
	p.state = next
	p.empty = true
	return p.check(event())
}

func (p *parser) close(want container, c byte, event func() error) error {
	top, ok := p.top()
	if !ok {
		return p.fail("bad closing character %q: no open %s", c, want)
	} else if top != want {
		return p.fail("bad closing character %q: not in %s", c, want)
	}
	p.stk = p.stk[:len(p.stk)-1]
	p.left = p.pos
	p.pos++
	return p.check(event())
}

func (p *parser) top() (container, bool) {
	if len(p.stk) == 0 {
		return 0, false
	}
	return p.stk[len(p.stk)-1], true
}

// char returns the rune at the current position, for diagnostics.
func (p *parser) char() rune {
	r, _ := mem.DecodeRune(p.src.SliceFrom(p.pos))
	return r
}

func (p *parser) fail(msg string, args ...any) error { return p.failAt(p.pos, msg, args...) }

func (p *parser) failAt(pos int, msg string, args ...any) error {
	return &SyntaxError{
		Location: lineCol(p.src, pos),
		Offset:   pos,
		State:    p.state.String(),
		Message:  fmt.Sprintf(msg, args...),
	}
}

// check wraps an error reported by the handler, if any.
func (p *parser) check(err error) error {
	if err == nil {
		return nil
	}
	return &SyntaxError{
		Location: lineCol(p.src, p.left),
		Offset:   p.left,
		State:    p.state.String(),
		Message:  err.Error(),
		err:      err,
	}
}

// SyntaxError is the concrete type of errors reported by the parser.
type SyntaxError struct {
	Location LineCol
	Offset   int    // byte offset of the error, 0-based
	State    string // lexical state of the parser
	Message  string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s (%s): %s", s.Location, s.State, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }

func isSpace(c byte) bool {
	return c == ' ' || c == '\r' || c == '\n' || c == '\t'
}

func isDigit(c byte) bool   { return '0' <= c && c <= '9' }
func isNumByte(c byte) bool { return c == '.' || isDigit(c) }

// isWordByte reports whether c occurs in any of "true", "false", "null".
func isWordByte(c byte) bool {
	switch c {
	case 'a', 'e', 'f', 'l', 'n', 'r', 's', 't', 'u':
		return true
	}
	return false
}
