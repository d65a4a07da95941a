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

package contact

import (
	"encoding/json"
	"fmt"
	"strings"

	"dirpx.dev/bbdb/bbcore/errors"
	"dirpx.dev/bbdb/bbcore/model"
	"gopkg.in/yaml.v3"
)

// Address is one postal address attached to a record under a tag.
//
// Location holds the free-text street lines in order; the remaining fields
// are plain strings where the empty string means absent. The file format
// has no structure below this level, so no field is interpreted further.
//
// Addresses are usually created through Record.AddAddress, which stores a
// fresh Address in the record and returns a pointer for in-place filling:
//
//	home := rec.AddAddress("Home")
//	home.AddLocation("345 Cavestone Road")
//	home.SetCity("Bedrock")
//
// This type implements the model.Model interface.
type Address struct {
	// Location is the ordered sequence of free-text street lines.
	Location []string `json:"location,omitempty" yaml:"location,omitempty"`

	// City is the city name; empty means absent.
	City string `json:"city,omitempty" yaml:"city,omitempty"`

	// State is the state or region; empty means absent.
	State string `json:"state,omitempty" yaml:"state,omitempty"`

	// Zipcode is the postal code, kept as text; empty means absent.
	Zipcode string `json:"zipcode,omitempty" yaml:"zipcode,omitempty"`

	// Country is the country name; empty means absent.
	Country string `json:"country,omitempty" yaml:"country,omitempty"`
}

// Compile-time assertions that Address implements the model contracts.
var (
	_ model.Model               = (*Address)(nil)
	_ model.Comparable[Address] = Address{}
	_ model.Cloneable[Address]  = Address{}
)

// NewAddress returns an empty Address ready for in-place filling.
func NewAddress() *Address {
	return &Address{}
}

// AddLocation appends one street line.
func (a *Address) AddLocation(line string) {
	a.Location = append(a.Location, line)
}

// SetCity sets the city name.
func (a *Address) SetCity(city string) {
	a.City = city
}

// SetState sets the state or region.
func (a *Address) SetState(state string) {
	a.State = state
}

// SetZipcode sets the postal code.
func (a *Address) SetZipcode(zipcode string) {
	a.Zipcode = zipcode
}

// SetCountry sets the country name.
func (a *Address) SetCountry(country string) {
	a.Country = country
}

// String returns a single-line human-readable rendering: the street lines
// then city, state, zipcode and country, comma-separated, skipping absent
// parts. The zero value returns the empty string.
func (a Address) String() string {
	parts := make([]string, 0, len(a.Location)+4)
	parts = append(parts, a.Location...)
	for _, s := range []string{a.City, a.State, a.Zipcode, a.Country} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// Redacted returns a safe representation for logging. Postal addresses are
// PII, so only the shape is revealed.
func (a Address) Redacted() string {
	return fmt.Sprintf("Address{%d lines}", len(a.Location))
}

// TypeName implements model.Identifiable.
func (a Address) TypeName() string {
	return "Address"
}

// IsZero reports whether every field is empty.
func (a Address) IsZero() bool {
	return len(a.Location) == 0 && a.City == "" && a.State == "" &&
		a.Zipcode == "" && a.Country == ""
}

// Equal reports whether two addresses have identical fields, including the
// order of location lines.
func (a Address) Equal(other Address) bool {
	if len(a.Location) != len(other.Location) {
		return false
	}
	for i := range a.Location {
		if a.Location[i] != other.Location[i] {
			return false
		}
	}
	return a.City == other.City && a.State == other.State &&
		a.Zipcode == other.Zipcode && a.Country == other.Country
}

// Clone returns a deep copy. The location lines share no storage with the
// original.
func (a Address) Clone() Address {
	out := a
	if a.Location != nil {
		out.Location = append([]string(nil), a.Location...)
	}
	return out
}

// Validate implements model.Validatable.
//
// Every string must be single-line; the wire format keeps a whole record on
// one line, and a newline inside any value would corrupt it. The zero value
// is valid.
func (a Address) Validate() error {
	for i, line := range a.Location {
		if strings.ContainsAny(line, "\n\r") {
			return &errors.ValidationError{
				Type:   "Address",
				Field:  "Location",
				Reason: fmt.Sprintf("line %d must be single-line", i),
			}
		}
	}
	for _, f := range []struct{ name, value string }{
		{"City", a.City},
		{"State", a.State},
		{"Zipcode", a.Zipcode},
		{"Country", a.Country},
	} {
		if strings.ContainsAny(f.value, "\n\r") {
			return &errors.ValidationError{
				Type:   "Address",
				Field:  f.name,
				Reason: "must be single-line",
			}
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler, validating before serializing.
func (a Address) MarshalJSON() ([]byte, error) {
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", a.TypeName(), err)
	}
	type address Address
	return json.Marshal(address(a))
}

// UnmarshalJSON implements json.Unmarshaler, validating after decoding.
func (a *Address) UnmarshalJSON(data []byte) error {
	type address Address
	var tmp address
	if err := json.Unmarshal(data, &tmp); err != nil {
		return &errors.UnmarshalError{Type: "Address", Data: data, Reason: err.Error()}
	}
	*a = Address(tmp)
	return a.Validate()
}

// MarshalYAML implements yaml.Marshaler, validating before serializing.
func (a Address) MarshalYAML() (interface{}, error) {
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", a.TypeName(), err)
	}
	type address Address
	return address(a), nil
}

// UnmarshalYAML implements yaml.Unmarshaler, validating after decoding.
func (a *Address) UnmarshalYAML(node *yaml.Node) error {
	type address Address
	var tmp address
	if err := node.Decode(&tmp); err != nil {
		return &errors.UnmarshalError{Type: "Address", Reason: err.Error()}
	}
	*a = Address(tmp)
	return a.Validate()
}
