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

// Package model defines the core contracts that all bbdb domain model types
// MUST implement to ensure consistency, type safety, and proper behavior
// across the whole module.
//
// Every domain type representing a contact database entity (Database, Record,
// Address, Phone) SHOULD implement the Model interface or its constituent
// parts (Validatable, Serializable, Loggable, Identifiable, ZeroCheckable).
// These interfaces establish a common contract for validation, serialization,
// logging, and identity that enables generic operations and guarantees safety
// at compile time.
//
// The contracts in this package prioritize data integrity and debuggability,
// with one bbdb-specific emphasis: contact data is PII. Names, phone numbers,
// postal addresses and network handles MUST NOT leak into production logs,
// which is why Loggable distinguishes a Redacted form from the full String
// form.
//
// Unless explicitly documented otherwise, implementations are not thread-safe
// for concurrent mutation. Parsed entities are safe for concurrent reads once
// returned; callers MUST synchronize any concurrent writes.
//
// Types implementing Model can be used with the generic helper functions
// provided in this package, such as ValidateAll, FilterZero, ToJSON, ToYAML,
// Clone, and Equal.
package model

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Model is the root interface combining all fundamental contracts required
// for bbdb domain types. Any type implementing Model gains automatic support
// for validation, serialization to JSON and YAML, safe logging with PII
// protection, type identification, and zero-value detection.
//
// Implementations MUST satisfy all embedded interfaces: Validatable ensures
// data integrity by checking invariants; Serializable provides round-trip
// JSON and YAML encoding; Loggable offers both safe (redacted) and unsafe
// (full) string representations; Identifiable supplies a canonical type name;
// and ZeroCheckable detects empty or uninitialized instances.
//
// Model instances returned by parsing are treated as immutable until the
// caller chooses to mutate them through the documented mutation operations.
// Methods defined by Model MUST NOT mutate the receiver.
//
// Example implementation:
//
//	type MyModel struct {
//	    Field string
//	}
//
//	func (m MyModel) Validate() error {
//	    if strings.ContainsAny(m.Field, "\n\r") {
//	        return errors.New("field must be single-line")
//	    }
//	    return nil
//	}
//
//	func (m MyModel) TypeName() string { return "MyModel" }
//	func (m MyModel) IsZero() bool { return m.Field == "" }
//	func (m MyModel) Redacted() string { return "MyModel{...}" }
//	func (m MyModel) String() string { return "MyModel{Field:" + m.Field + "}" }
//	// ... MarshalJSON, UnmarshalJSON, MarshalYAML, UnmarshalYAML
//
//	var _ Model = (*MyModel)(nil)  // Compile-time check
type Model interface {
	Validatable
	Serializable
	Loggable
	Identifiable
	ZeroCheckable
}

// Validatable defines the contract for types that validate their own state
// to ensure data integrity. Every model type MUST implement Validate to
// verify that all invariants hold and that the instance is in a consistent
// state suitable for serialization or persistence.
//
// The Validate method MUST verify cross-field consistency (for example,
// that a Phone does not carry both structured digits and free-form text),
// recursively validate any nested objects by calling their Validate methods,
// and return nil if and only if the instance is fully valid. When validation
// fails, the returned error MUST describe what is invalid in a way that
// helps callers diagnose and fix the problem; prefer specific messages like
// "Phone cannot carry both digits and free-form text" over generic ones.
//
// Validate MUST be fast, deterministic, and idempotent. It MUST NOT mutate
// the receiver, MUST NOT have side effects, and MUST NOT depend on external
// mutable state.
//
// Note that, unlike many domains, an entirely empty contact entity is a
// valid one: the file format permits records whose every optional group is
// nil and whose names are empty strings. Implementations therefore accept
// their zero value unless a structural invariant is broken.
type Validatable interface {
	// Validate checks that the instance satisfies all invariants and is
	// ready for use. It returns nil if the instance is valid, or a
	// descriptive error explaining what is wrong if validation fails.
	//
	// This method MUST NOT mutate the receiver and MUST NOT have side
	// effects. It MUST be safe to call concurrently with other reads
	// but not with concurrent writes.
	Validate() error
}

// Serializable defines the contract for types that can be serialized to and
// deserialized from JSON and YAML formats. All model types MUST support both
// formats to enable interchange with tooling that does not speak the native
// BBDB text format, debugging output, and fixtures in tests.
//
// Implementations MUST call Validate before marshaling so that only valid
// instances are serialized, and MUST call Validate after unmarshaling so
// that deserialized data meets all invariants. A value serialized to JSON
// and then deserialized MUST equal the original value, and the same MUST
// hold for YAML. Collections with a significant insertion order (the phone,
// address and field tag maps) MUST serialize as ordered arrays of entries,
// never as JSON objects, so the round trip preserves order.
//
// Implementations SHOULD use the "type alias" pattern to avoid infinite
// recursion: define a local type alias to the model type, cast the receiver
// to the alias, and delegate to the standard library's marshal or unmarshal
// function.
//
// Note that JSON and YAML are interchange encodings only. The canonical
// on-disk representation of a database is the BBDB text format produced by
// the format package, not either of these.
type Serializable interface {
	json.Marshaler
	json.Unmarshaler
	yaml.Marshaler
	yaml.Unmarshaler
}

// Loggable defines the contract for types that provide safe string
// representations for logging and debugging. All model types MUST implement
// Loggable because every entity in this domain carries PII: names, phone
// numbers, postal addresses, and network handles.
//
// The Redacted method returns a string representation suitable for
// production logging. It MUST hide the actual contact data while preserving
// enough shape information for debugging, typically the type name, counts,
// and at most initials. The String method returns a human-readable
// representation that MAY include the full contact data; it is intended for
// development, debugging, and test assertions only and MUST NEVER be used
// for production logging.
//
// Both methods MUST be fast, deterministic, free of side effects, and safe
// to call concurrently. If a type contains nested Loggable objects, Redacted
// SHOULD call Redacted on them to keep redaction consistent throughout the
// object graph.
type Loggable interface {
	// Redacted returns a safe string representation suitable for logging in
	// production. This method MUST redact or mask all contact data (names,
	// numbers, addresses, handles) while preserving enough information for
	// debugging.
	//
	// This method MUST NOT mutate the receiver, MUST NOT have side effects,
	// and MUST be safe to call concurrently.
	Redacted() string

	// String returns a human-readable representation of the instance. This
	// method MAY include contact data and MUST NOT be used for production
	// logging. Use Redacted instead for logging.
	//
	// This method MUST NOT mutate the receiver, MUST NOT have side effects,
	// and MUST be safe to call concurrently.
	String() string
}

// Identifiable defines the contract for types that can identify themselves
// by a canonical type name. All model types MUST provide a type name to
// enable debugging, logging, and error reporting.
//
// The type name returned by TypeName MUST be constant for a given type,
// unique within the bbdb domain, in CamelCase (for example, "Record",
// "Address", "PhoneMap"), and without a package prefix. TypeName MUST be
// fast, SHOULD return a string constant, MUST NOT have side effects, and
// MUST be safe to call concurrently.
type Identifiable interface {
	// TypeName returns the canonical name of this model type. The name MUST
	// be constant for the type, unique within bbdb, in CamelCase, and
	// without a package prefix.
	//
	// This method MUST NOT mutate the receiver, MUST NOT have side effects,
	// and MUST be safe to call concurrently.
	TypeName() string
}

// ZeroCheckable defines the contract for types that can report whether they
// are in a zero or empty state. In this domain the zero state is load-bearing:
// the file format cannot distinguish a nil group from an empty one, so an
// empty collection and an absent collection are the same observable state,
// and both serialize back to the literal nil token.
//
// IsZero MUST return true if and only if the instance is semantically empty:
// all scalar fields empty and all collections without elements. IsZero MUST
// be fast, deterministic, idempotent, free of side effects, and safe to call
// concurrently.
type ZeroCheckable interface {
	// IsZero reports whether this instance is in a zero or empty state,
	// meaning it contains no meaningful data.
	//
	// This method MUST NOT mutate the receiver, MUST NOT have side effects,
	// and MUST be safe to call concurrently.
	IsZero() bool
}

// Comparable defines the contract for types that can be compared for
// equality. The file format defines no domain ordering for records, so
// equality is the only comparison the model offers; where two records must
// be compared (typically in tests), they are compared field by field, never
// by identity.
//
// The Equal method MUST be reflexive, symmetric, transitive, and consistent.
// Equal SHOULD compare all semantically significant fields, using deep
// equality for nested objects and preserving the significance of insertion
// order in the tag maps. Equal MUST NOT mutate the receiver or the argument,
// MUST NOT have side effects, and MUST be safe to call concurrently.
type Comparable[T any] interface {
	// Equal reports whether this instance is equal to another instance of
	// the same type. It returns true if both instances represent the same
	// logical value, false otherwise.
	//
	// This method MUST NOT mutate the receiver or the argument, MUST NOT
	// have side effects, and MUST be safe to call concurrently.
	Equal(other T) bool
}

// Cloneable defines the contract for types that can create deep copies of
// themselves. Because all mutation operations on contact entities work
// in place, callers that need to mutate a record while keeping the parsed
// original SHOULD clone first.
//
/// The Clone method MUST create a deep copy: the returned instance shares no
// references with the original, so modifying the clone MUST NOT affect the
// original, and vice versa. The cloned instance MUST be valid if the
// original is valid. Clone MUST NOT mutate the receiver, MUST NOT have side
// effects, and MUST be safe to call concurrently.
type Cloneable[T any] interface {
	// Clone creates a deep copy of this instance. The returned instance has
	// the same value but shares no references with the original.
	//
	// This method MUST NOT mutate the receiver, MUST NOT have side effects,
	// and MUST be safe to call concurrently.
	Clone() T
}
