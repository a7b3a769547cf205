// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jstream implements an event-driven JSON stream parser.
//
// # Streaming
//
// The parser works by calling methods on a Handler value to report the
// structure of the input. The whole document must be available before parsing
// starts. In case of error, parsing is terminated and an error of concrete
// type *jstream.SyntaxError is returned.
//
//	if err := jstream.Parse(input, handler); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// # Handlers
//
// The Handler interface accepts parser events. The methods of a handler
// correspond to the syntax of JSON values:
//
//	JSON type  | Methods                   | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | BeginObject, EndObject    | { ... }
//	member key | Key                       | "key": (value follows)
//	array      | BeginArray, EndArray      | [ ... ]
//	constant   | True, False, Null         | true, false, null
//	number     | Number                    | 12, 0.5
//	string     | String                    | "text"
//
// The parser ensures that corresponding Begin and End methods are correctly
// paired, or that a SyntaxError is reported. To construct a value tree from
// the events, use the builder package.
//
// # Grammar
//
// The accepted grammar is a subset of JSON:
//
//   - Numbers have no sign and no exponent: digits with at most one decimal
//     point, for example 42, 4.2, .5 or 5.
//   - Strings support the escapes \\ \" \/ \b \f \n \r \t. Unicode escapes
//     are not supported and are reported as errors.
//   - Comments and trailing commas are not accepted.
//
// A bare top-level scalar such as 42 or "text" is a valid document.
package jstream
