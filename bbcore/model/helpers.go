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

package model

import (
	"encoding/json"
	"fmt"

	"dirpx.dev/rxmerr"
	"gopkg.in/yaml.v3"
)

// ValidateAll validates a slice of models and returns all validation errors
// encountered, not just the first one. This is the natural entry point for
// validating every record of a freshly built database before serializing it.
//
// The function iterates through each model in the provided slice and invokes
// its Validate method. When a model fails validation, the error is wrapped
// with the model's position in the slice (zero-indexed) and its type name
// obtained from TypeName, so callers can identify exactly which entities
// failed and why.
//
// If one or more models fail validation, ValidateAll returns a single
// combined error aggregating all individual failures via rxmerr.Collector.
// If all models pass, the function returns nil. The function never panics
// and always processes the entire slice even when early elements fail,
// ensuring complete error reporting. Empty slices are considered valid.
//
// Example usage for batch validation before writing a database:
//
//	if err := model.ValidateAll(db.Records); err != nil {
//	    return err
//	}
func ValidateAll[T Model](models []T) error {
	c := rxmerr.NewCollector()

	for i, m := range models {
		if err := m.Validate(); err != nil {
			c.Append(fmt.Errorf("model[%d] (%s): %w", i, m.TypeName(), err))
		}
	}

	return c.Err()
}

// FilterZero returns a new slice containing only non-zero models by removing
// all instances where IsZero returns true. In this domain a zero record is a
// contact with no names, no collections and no metadata; filtering them out
// before serialization avoids emitting lines that carry no information.
//
// The returned slice is always a new allocation and never shares backing
// array storage with the input slice. If all models in the input are zero,
// the function returns an empty slice (not nil). If the input slice is empty
// or nil, the function returns an empty non-nil slice. The function does not
// validate models; it only checks for zero values using IsZero.
func FilterZero[T Model](models []T) []T {
	result := make([]T, 0, len(models))

	for _, m := range models {
		if !m.IsZero() {
			result = append(result, m)
		}
	}

	return result
}

// MustValidate validates a model and panics if validation fails. It is
// intended for test fixtures and package initialization, where an invalid
// model is a programming error rather than a recoverable runtime condition.
//
// If validation succeeds, MustValidate returns the model unchanged, allowing
// inline initialization patterns. If validation fails, the function panics
// with a message that includes the model's type name and the validation
// error. Callers MUST NOT use MustValidate in code paths that handle
// external input; parse failures there are ordinary errors.
//
// Example usage in test setup where invalid data indicates a test bug:
//
//	rec := model.MustValidate(fixtureRecord())
func MustValidate[T Model](m T) T {
	if err := m.Validate(); err != nil {
		panic(fmt.Sprintf("model validation failed for %s: %v", m.TypeName(), err))
	}
	return m
}

// SafeString returns a string representation of a model that is safe for
// logging by default but can optionally include the full contact data when
// explicitly requested.
//
// When unsafe is false (the only acceptable value for production logging),
// SafeString invokes the model's Redacted method, masking names, numbers,
// addresses and handles. When unsafe is true, SafeString invokes String and
// the output MAY contain PII; callers MUST only do this in controlled
// debugging scenarios where the output destination is secured.
//
// Example usage showing safe production logging and unsafe debug logging:
//
//	log.Info("parsed", "record", model.SafeString(rec, false))  // Redacted()
//	log.Debug("detail", "record", model.SafeString(rec, true))  // String() (UNSAFE)
func SafeString[T Model](m T, unsafe bool) string {
	if unsafe {
		return m.String()
	}
	return m.Redacted()
}

// ToJSON converts a model to JSON bytes after validating that the model is
// in a consistent state. If validation fails, ToJSON returns an error that
// wraps the validation failure with the model type from TypeName, and no
// marshaling is attempted. The model's MarshalJSON method is called if
// implemented, which is how the ordered tag maps keep their insertion order
// in the output.
//
// Example:
//
//	data, err := model.ToJSON(rec)
//	if err != nil {
//	    return err
//	}
func ToJSON[T Model](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return json.Marshal(m)
}

// ToYAML converts a model to YAML bytes after validating that the model is
// in a consistent state. If validation fails, ToYAML returns an error that
// wraps the validation failure with the model type from TypeName, and no
// marshaling is attempted. The model's MarshalYAML method is called if
// implemented.
//
// Example:
//
//	data, err := model.ToYAML(db)
//	if err != nil {
//	    return err
//	}
func ToYAML[T Model](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return yaml.Marshal(m)
}

// FromJSON parses JSON bytes into a model and validates the result, so that
// malformed or inconsistent data from external sources is rejected at the
// boundary rather than propagating through the system.
//
// Callers MUST provide a pointer to a model variable that will receive the
// unmarshaled result. If FromJSON returns an error, the model variable's
// state is undefined and MUST NOT be used.
//
// Example:
//
//	var rec contact.Record
//	if err := model.FromJSON(data, &rec); err != nil {
//	    return err
//	}
func FromJSON[T Model](data []byte, m *T) error {
	if err := json.Unmarshal(data, m); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	if err := (*m).Validate(); err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}
	return nil
}

// FromYAML parses YAML bytes into a model and validates the result, with the
// same contract as FromJSON but for YAML input.
//
// Example:
//
//	var db contact.Database
//	if err := model.FromYAML(data, &db); err != nil {
//	    return err
//	}
func FromYAML[T Model](data []byte, m *T) error {
	if err := yaml.Unmarshal(data, m); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	if err := (*m).Validate(); err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}
	return nil
}

// Clone creates a deep copy of a model by serializing it to JSON and then
// deserializing back into a new instance. Because all mutation operations on
// contact entities work in place, this is the supported way to mutate a
// record while keeping the parsed original intact.
//
// The JSON round trip guarantees a deep copy: nested collections, ordered
// tag maps and address pointers are all reproduced by value. Types that need
// a faster copy SHOULD implement Cloneable[T] with hand-written logic; for
// general-purpose code this generic Clone favors simplicity and correctness.
//
// Callers MUST check the returned error before using the cloned model. If
// Clone returns an error, the model return value is a zero-value instance
// that MUST NOT be used.
//
// Example:
//
//	copy, err := model.Clone(rec)
//	if err != nil {
//	    return err
//	}
//	copy.SetCompany("Slate Rock & Gravel")  // original rec unchanged
func Clone[T Model](m T) (T, error) {
	var zero T

	data, err := json.Marshal(m)
	if err != nil {
		return zero, fmt.Errorf("clone marshal failed: %w", err)
	}

	var clone T
	if err := json.Unmarshal(data, &clone); err != nil {
		return zero, fmt.Errorf("clone unmarshal failed: %w", err)
	}

	return clone, nil
}

// Equal compares two models for equality by serializing both to JSON and
// comparing the representations byte for byte. Because the ordered tag maps
// marshal as arrays of entries, this comparison honors insertion order, which
// is semantically significant in this format.
//
// If either marshaling operation fails, Equal returns false without
// attempting to compare partial results, so comparison errors are never
// mistaken for equality. Types that are compared frequently SHOULD implement
// Comparable[T] with field-by-field logic instead; the concrete contact
// entities all do.
//
// Example:
//
//	if model.Equal(got, want) {
//	    return nil
//	}
func Equal[T Model](a, b T) bool {
	dataA, errA := json.Marshal(a)
	dataB, errB := json.Marshal(b)

	if errA != nil || errB != nil {
		return false
	}

	return string(dataA) == string(dataB)
}
