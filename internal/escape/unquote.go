// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles unquoting of JSON strings.
package escape

import (
	"errors"
	"fmt"

	"go4.org/mem"
)

var (
	// ErrIncomplete is reported for a backslash at the end of the input.
	ErrIncomplete = errors.New("incomplete escape sequence")

	// ErrBareQuote is reported for a double quotation mark that is not escaped.
	ErrBareQuote = errors.New("unescaped quotation mark")
)

// Decode reports the character denoted by the escape letter b, and whether b
// is one of the recognized escape letters. Unicode escapes (\u) are not
// recognized.
func Decode(b byte) (byte, bool) {
	switch b {
	case '"', '\\', '/':
		return b, true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	}
	return 0, false
}

// Unquote decodes a byte slice containing the JSON encoding of a string. The
// input must have the enclosing double quotation marks already removed.
//
// Each two-character escape sequence is replaced by the single character it
// denotes. Decoding is one pass over src: a decoded backslash is never read as
// the start of another escape. Unquote reports an error for an unrecognized or
// incomplete escape sequence, or a quotation mark that is not escaped.
func Unquote(src mem.RO) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return appendText(dec, src)
	}

	var err error
	for src.Len() != 0 {
		dec, err = appendText(dec, src.SliceTo(i))
		if err != nil {
			return nil, err
		}

		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, ErrIncomplete
		}
		b, ok := Decode(src.At(0))
		if !ok {
			r, _ := mem.DecodeRune(src)
			return nil, fmt.Errorf("inescapable character %q", r)
		}
		dec = append(dec, b)
		src = src.SliceFrom(1)

		// Look for the next escape sequence, and if one is not found we can blit
		// the rest of the input and go home.
		i = mem.IndexByte(src, '\\')
		if i < 0 {
			return appendText(dec, src)
		}
	}
	return dec, nil
}

// appendText appends unescaped text to dec.
func appendText(dec []byte, text mem.RO) ([]byte, error) {
	if mem.IndexByte(text, '"') >= 0 {
		return nil, ErrBareQuote
	}
	return mem.Append(dec, text), nil
}
