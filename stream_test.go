// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jl95/jstream"
)

func TestStream(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"null", "Null"},
		{"true", "True"},
		{"false", "False"},
		{"4242", "Number <4242>"},
		{"   42.42 \t\r\n", "Number <42.42>"},
		{".5", "Number <.5>"},
		{"5.", "Number <5.>"},
		{"007", "Number <007>"},
		{`""`, "String <>"},
		{`"a b c"`, "String <a b c>"},
		{`"foo\"bar"`, `String <foo"bar>`},
		{`"foo\\bar"`, `String <foo\bar>`},
		{`"\\n"`, `String <\n>`},
		{`"\/\t"`, "String </\t>"},
		{"\"caf\u00e9\"", "String <caf\u00e9>"},

		{`[]`, "BeginArray\nEndArray"},
		{`{}`, "BeginObject\nEndObject"},
		{"{ \n }", "BeginObject\nEndObject"},
		{"[\t]", "BeginArray\nEndArray"},

		{`["abc",123,true]`, `
BeginArray
String <abc>
Number <123>
True
EndArray`},

		{" [ \"abc\" ,\n 123 ,\ttrue ]\r\n", `
BeginArray
String <abc>
Number <123>
True
EndArray`},

		{`{"a":[1,{"b":null}],"c":true}`, `
BeginObject
Key <a>
BeginArray
Number <1>
BeginObject
Key <b>
Null
EndObject
EndArray
Key <c>
True
EndObject`},

		{`{"k\"ey" : "v\\al"}`, `
BeginObject
Key <k"ey>
String <v\al>
EndObject`},

		{`[[],{},[[]]]`, `
BeginArray
BeginArray
EndArray
BeginObject
EndObject
BeginArray
BeginArray
EndArray
EndArray
EndArray`},

		{`[1.5,2,false]`, `
BeginArray
Number <1.5>
Number <2>
False
EndArray`},
	}

	for _, test := range tests {
		th := new(testHandler)
		if err := jstream.Parse(test.input, th); err != nil {
			t.Errorf("Parse %#q failed: %v", test.input, err)
		}
		if diff := diffStrings(test.want, th.output()); diff != "" {
			t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestStreamErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
		estr  string
	}{
		// Empty input.
		{``, ``, `at 1:0 (before value): unterminated input`},
		{"  \n", ``, `at 2:0 (before value): unterminated input`},

		// Unbalanced arrays.
		{`[1,2`, "BeginArray\nNumber <1>",
			`at 1:4 (in number): unterminated input: unclosed array`},
		{`[[]`, "BeginArray\nBeginArray\nEndArray",
			`at 1:3 (after value): unterminated input: unclosed array`},
		{`[1,2]]`, "BeginArray\nNumber <1>\nNumber <2>\nEndArray",
			`at 1:5 (after value): bad closing character ']': no open array`},
		{`]`, ``, `at 1:0 (before value): invalid starting character ']'`},
		{`[1}`, "BeginArray\nNumber <1>",
			`at 1:2 (after value): bad closing character '}': not in object`},
		{`[1,]`, "BeginArray\nNumber <1>",
			`at 1:3 (before value): invalid starting character ']'`},

		// Unbalanced objects.
		{`{`, `BeginObject`,
			`at 1:1 (before key): unterminated input: unclosed object`},
		{`{"a":1]`, "BeginObject\nKey <a>\nNumber <1>",
			`at 1:6 (after value): bad closing character ']': not in array`},
		{`{"a":1,}`, "BeginObject\nKey <a>\nNumber <1>",
			`at 1:7 (before key): invalid character '}' before object key`},
		{`{"a":}`, "BeginObject\nKey <a>",
			`at 1:5 (before value): invalid starting character '}'`},
		{`{"a" 1}`, "BeginObject\nKey <a>",
			`at 1:5 (after key): expected ':' after object key, got '1'`},
		{`{1:2}`, `BeginObject`,
			`at 1:1 (before key): invalid character '1' before object key`},
		{`{"a"`, "BeginObject\nKey <a>",
			`at 1:4 (after key): unterminated input: unclosed object`},

		// Trailing input after a complete value.
		{`42  42`, `Number <42>`,
			`at 1:4 (after value): invalid character '4' after value`},
		{`true false`, `True`,
			`at 1:5 (after value): invalid character 'f' after value`},
		{`1,2`, `Number <1>`,
			`at 1:1 (after value): separator ',' not expected`},

		// Invalid values.
		{`tr  ue`, ``, `at 1:0 (in word): invalid word "tr"`},
		{`nul`, ``, `at 1:0 (in word): invalid word "nul"`},
		{`nulll`, ``, `at 1:0 (in word): invalid word "nulll"`},
		{`-1`, ``, `at 1:0 (before value): invalid starting character '-'`},
		{`1e5`, `Number <1>`,
			`at 1:1 (after value): invalid character 'e' after value`},
		{`1.2.3`, ``, `at 1:3 (in number): invalid number: extra decimal point`},
		{`.`, ``, `at 1:0 (in number): invalid number ".": no digits`},
		{`[.]`, `BeginArray`, `at 1:1 (in number): invalid number ".": no digits`},
		{`"abc`, ``, `at 1:0 (in string): unterminated string`},
		{`"abc\`, ``, `at 1:0 (in string escape): unterminated string`},
		{`"foo\xbar"`, ``, `at 1:5 (in string escape): inescapable character 'x'`},
		{"\"\x5cu0041\"", ``, `at 1:2 (in string escape): inescapable character 'u'`},
		{`x`, ``, `at 1:0 (before value): invalid starting character 'x'`},
		{"\u00e9", ``, "at 1:0 (before value): invalid starting character '\u00e9'"},

		// Locations span lines.
		{"[\n  true,\n  x]", "BeginArray\nTrue",
			`at 3:2 (before value): invalid starting character 'x'`},
	}

	for _, test := range tests {
		th := new(testHandler)
		err := jstream.Parse(test.input, th)
		if err == nil {
			t.Errorf("Parse %#q did not report an error", test.input)
			continue
		}
		var serr *jstream.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("Parse %#q: got error %T, want *SyntaxError", test.input, err)
		}

		if diff := diffStrings(test.want, th.output()); diff != "" {
			t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", test.input, diff)
		}
		if diff := diffStrings(test.estr, err.Error()); diff != "" {
			t.Errorf("Input: %#q\nError: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestParseBytes(t *testing.T) {
	const input = `{"x":null, "y":[true]}`
	var a, b testHandler
	if err := jstream.Parse(input, &a); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if err := jstream.ParseBytes([]byte(input), &b); err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}
	if diff := diffStrings(a.output(), b.output()); diff != "" {
		t.Errorf("Output: (-Parse, +ParseBytes)\n%s", diff)
	}
}

func TestHandlerError(t *testing.T) {
	errStop := errors.New("stop here")
	th := &testHandler{fail: "Number <2>", err: errStop}

	err := jstream.Parse(`[1, 2, 3]`, th)
	if !errors.Is(err, errStop) {
		t.Fatalf("Parse: got error %v, want %v", err, errStop)
	}
	const want = `at 1:4 (after value): stop here`
	if got := err.Error(); got != want {
		t.Errorf("Error: got %q, want %q", got, want)
	}

	// No events are delivered after the handler fails.
	if diff := diffStrings("BeginArray\nNumber <1>\nNumber <2>", th.output()); diff != "" {
		t.Errorf("Output: (-want, +got)\n%s", diff)
	}
}

func TestConcurrentParse(t *testing.T) {
	inputs := []string{
		`{"a":[1,{"b":null}],"c":true}`,
		`[1.5, "two", [false]]`,
		`"just a string"`,
		`[[[[[[]]]]]]`,
	}
	want := make([]string, len(inputs))
	for i, in := range inputs {
		th := new(testHandler)
		if err := jstream.Parse(in, th); err != nil {
			t.Fatalf("Parse %#q failed: %v", in, err)
		}
		want[i] = th.output()
	}

	const rounds = 16
	var wg sync.WaitGroup
	got := make([]string, rounds*len(inputs))
	for r := range rounds {
		for i, in := range inputs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				th := new(testHandler)
				if err := jstream.Parse(in, th); err != nil {
					t.Errorf("Parse %#q failed: %v", in, err)
				}
				got[r*len(inputs)+i] = th.output()
			}()
		}
	}
	wg.Wait()
	for j, out := range got {
		if diff := diffStrings(want[j%len(inputs)], out); diff != "" {
			t.Errorf("Round %d input %d: (-want, +got)\n%s", j/len(inputs), j%len(inputs), diff)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input, want string
		fail        bool
	}{
		{`""`, "", false},
		{`"foo\"bar"`, `foo"bar`, false},
		{`"a\\\\b"`, `a\\b`, false},
		{`"tab\there"`, "tab\there", false},
		{`noquotes`, "", true},
		{`"`, "", true},
		{`"bad\q"`, "", true},
		{`"end\"`, "", true},
		{`"a"b"`, "", true},
		{`"\"ok\""`, `"ok"`, false},
	}
	for _, tc := range tests {
		got, err := jstream.Unquote(tc.input)
		if err != nil {
			if !tc.fail {
				t.Errorf("Unquote(%#q): unexpected error: %v", tc.input, err)
			}
			continue
		} else if tc.fail {
			t.Errorf("Unquote(%#q): got %#q, want error", tc.input, got)
		}
		if got != tc.want {
			t.Errorf("Unquote(%#q): got %#q, want %#q", tc.input, got, tc.want)
		}
	}
}

func diffStrings(want, got string) string {
	return cmp.Diff(strings.Split(strings.TrimSpace(want), "\n"),
		strings.Split(strings.TrimSpace(got), "\n"))
}

// testHandler records one line of output per event. If fail is set, the
// event whose output matches it reports err.
type testHandler struct {
	buf  bytes.Buffer
	fail string
	err  error
}

func (t *testHandler) pr(msg string, args ...any) error {
	line := fmt.Sprintf(msg, args...)
	t.buf.WriteString(line + "\n")
	if t.fail != "" && line == t.fail {
		return t.err
	}
	return nil
}

func (t *testHandler) output() string { return t.buf.String() }

func (t *testHandler) Null() error              { return t.pr("Null") }
func (t *testHandler) True() error              { return t.pr("True") }
func (t *testHandler) False() error             { return t.pr("False") }
func (t *testHandler) Number(text string) error { return t.pr("Number <%s>", text) }
func (t *testHandler) String(s string) error    { return t.pr("String <%s>", s) }
func (t *testHandler) BeginArray() error        { return t.pr("BeginArray") }
func (t *testHandler) EndArray() error          { return t.pr("EndArray") }
func (t *testHandler) BeginObject() error       { return t.pr("BeginObject") }
func (t *testHandler) EndObject() error         { return t.pr("EndObject") }
func (t *testHandler) Key(key string) error     { return t.pr("Key <%s>", key) }
