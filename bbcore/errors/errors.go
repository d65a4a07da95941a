/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package errors provides the error taxonomy shared across the bbdb packages.
//
// This package defines the error types used when lexing and parsing BBDB
// database text, when validating model entities, and when unmarshaling
// entities from JSON or YAML. By centralizing these types, the package gives
// the whole bbdb surface one consistent error handling story.
//
// The errors in this package are intentionally simple value carriers with
// stable message formats. They are designed to be:
//
//   - easy to construct from lexing / parsing / unmarshaling code,
//   - easy to recognize via type assertions or errors.As,
//   - and easy for users to understand when surfaced in logs or diagnostics.
//
// # Error Types
//
//   - SyntaxError
//     Returned when the tokenizer or a grammar cannot match the input at some
//     position. Carries the 1-based line and column of the failure. Parsing
//     is all-or-nothing: a SyntaxError means no database was produced.
//
//   - UnsupportedVersionError
//     Returned by the strict grammar lookup when an explicit, unrecognized
//     file format version is requested. The default (non-strict) behavior
//     falls back to the oldest supported grammar instead of failing.
//
//   - ConsistencyWarning
//     A non-fatal diagnostic describing a duplicate mapping key (phone,
//     address or field tag) encountered during a parse. Warnings implement
//     the error interface so they can be aggregated and logged, but they
//     never abort parsing; the duplicate is resolved by overwriting the
//     value while retaining the first occurrence's position.
//
//   - ValidationError
//     Returned when validation of a model type fails. Use this in Validate()
//     methods to report constraint violations or invalid field values.
//
//   - UnmarshalError
//     Returned when unmarshaling data into a model type fails due to invalid
//     input, parse errors or constraint violations.
package errors

import "strconv"

// SyntaxError is returned when the tokenizer or a grammar cannot match the
// input at some position.
//
// Line and Column are 1-based and anchored to the start of the offending
// token (or, for an unterminated string, to the opening quote). Reason is a
// short human-readable description of what was expected or found.
//
// A SyntaxError always means the whole parse failed; no partial database is
// ever returned alongside one.
type SyntaxError struct {
	// Line is the 1-based line number of the failure.
	Line int

	// Column is the 1-based column number of the failure.
	Column int

	// Reason describes what went wrong, for example "unterminated string"
	// or `expected "]", found atom "nil"`.
	Reason string
}

// Error implements the error interface for SyntaxError.
//
// The error message format is:
//
//	"bbdb: syntax error at line {Line}, column {Column}: {Reason}"
//
// The format is intentionally stable so that callers can rely on it for
// diagnostics, while still preferring errors.As where possible.
func (e *SyntaxError) Error() string {
	return "bbdb: syntax error at line " + strconv.Itoa(e.Line) +
		", column " + strconv.Itoa(e.Column) + ": " + e.Reason
}

// UnsupportedVersionError is returned when an explicit, unrecognized file
// format version is requested from the strict grammar lookup.
//
// The non-strict lookup never returns this error; it falls back to the
// oldest supported grammar for unknown versions, which matches how BBDB
// itself treats files without a recognizable version header.
type UnsupportedVersionError struct {
	// Version is the file format version that has no registered grammar.
	Version int
}

// Error implements the error interface for UnsupportedVersionError.
//
// The error message format is:
//
//	"bbdb: unsupported file format version: {Version}"
func (e *UnsupportedVersionError) Error() string {
	return "bbdb: unsupported file format version: " + strconv.Itoa(e.Version)
}

// ConsistencyWarning records a duplicate mapping key observed while parsing
// a record's phone, address or field collection.
//
// Duplicate tags are resolved by overwriting with the later value while
// keeping the position of the first occurrence, so a warning never aborts a
// parse. Warnings are collected by the parser and exposed for diagnostics;
// treat them as a data quality signal, not a failure.
type ConsistencyWarning struct {
	// Kind names the collection the duplicate was seen in: "phone",
	// "address" or "field".
	Kind string

	// Tag is the duplicated mapping key.
	Tag string

	// Line is the 1-based line the duplicate entry started on.
	Line int
}

// Error implements the error interface for ConsistencyWarning.
//
// The error message format is:
//
//	"bbdb: duplicate {Kind} tag {Tag} at line {Line} (last value wins)"
func (w *ConsistencyWarning) Error() string {
	return "bbdb: duplicate " + w.Kind + " tag " + strconv.Quote(w.Tag) +
		" at line " + strconv.Itoa(w.Line) + " (last value wins)"
}

// ValidationError is returned when validation of a model type fails.
//
// Type identifies the logical name of the type being validated (for example,
// "Record", "Address"), Field optionally identifies which field failed
// validation, Reason provides a human-readable explanation of the failure,
// and Value optionally contains the problematic value.
//
// This error is used by Validate() methods in model types to report
// constraint violations or invalid field values.
//
// # Example
//
//	func (p Phone) Validate() error {
//	    if len(p.Digits) > 0 && p.Text != "" {
//	        return &errors.ValidationError{
//	            Type:   "Phone",
//	            Reason: "cannot carry both digits and free-form text",
//	        }
//	    }
//	    return nil
//	}
type ValidationError struct {
	// Type is the logical name of the type being validated.
	Type string

	// Field is the name of the field that failed validation.
	// May be empty if the error applies to the entire type.
	Field string

	// Reason is a short, human-readable explanation of why validation failed.
	Reason string

	// Value optionally contains the invalid value.
	// May be nil if not applicable or if the value should not be logged.
	Value any
}

// Error implements the error interface for ValidationError.
//
// The error message format is:
//
//	"bbdb: invalid {Type}.{Field}: {Reason}" (when Field is specified)
//	"bbdb: invalid {Type}: {Reason}" (when Field is empty)
//
// For example:
//
//	"bbdb: invalid Address.Zipcode: must not contain newlines"
//	"bbdb: invalid Phone: cannot carry both digits and free-form text"
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "bbdb: invalid " + e.Type + "." + e.Field + ": " + e.Reason
	}
	return "bbdb: invalid " + e.Type + ": " + e.Reason
}

// UnmarshalError is returned when unmarshaling data into a model type fails.
//
// Type identifies the logical type being populated (for example, "Record"),
// Data contains the original raw payload (typically a JSON fragment), and
// Reason provides a human-readable description of what went wrong.
//
// This struct is intended to be surfaced directly in diagnostics or logs so
// that users can understand why their payload could not be interpreted.
// Callers MAY wrap UnmarshalError with additional context when propagating
// it further up the stack.
type UnmarshalError struct {
	// Type is the logical name of the type being unmarshaled into.
	Type string

	// Data is the raw input that failed to unmarshal.
	//
	// Callers MAY choose to log or redact this field depending on privacy
	// and size considerations; contact data is PII.
	Data []byte

	// Reason is a short, human-readable explanation of the failure.
	Reason string
}

// Error implements the error interface for UnmarshalError.
//
// The error message format is:
//
//	"bbdb: cannot unmarshal {Type}: {Reason}"
//
// The Data field is intentionally not included in the formatted message to
// avoid leaking contact data into logs; callers can log it separately when
// appropriate.
func (e *UnmarshalError) Error() string {
	return "bbdb: cannot unmarshal " + e.Type + ": " + e.Reason
}
