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
	"strconv"
	"strings"

	"dirpx.dev/bbdb/bbcore/errors"
	"dirpx.dev/bbdb/bbcore/model"
	"gopkg.in/yaml.v3"
)

// Phone is one phone number attached to a record under a tag.
//
// A phone value takes exactly one of two shapes, mirroring the file format:
// a structured number, an ordered sequence of non-negative integers (area
// code, exchange, number, possibly an extension), or a free-form string for
// numbers outside any numbering plan ("+44 20 7946 0958 ext. 3"). The two
// shapes are mutually exclusive; a value carrying both fails validation.
//
// The zero value represents "no phone" and is valid at the type level, but
// a PhoneMap entry MUST NOT be zero: on the wire every phone entry has
// either digits or text.
//
// This type implements the model.Model interface.
type Phone struct {
	// Digits is the structured form: the number broken into its ordered
	// integer groups as they appear in the file. Empty when Text is used.
	Digits []int64 `json:"digits,omitempty" yaml:"digits,flow,omitempty"`

	// Text is the free-form, non-numbering-plan form. Empty when Digits is
	// used.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
}

// Compile-time assertions that Phone implements the model contracts.
var (
	_ model.Model             = (*Phone)(nil)
	_ model.Comparable[Phone] = Phone{}
	_ model.Cloneable[Phone]  = Phone{}
)

// NewPhoneDigits returns a structured Phone built from integer groups.
func NewPhoneDigits(digits ...int64) Phone {
	return Phone{Digits: digits}
}

// NewPhoneText returns a free-form Phone.
func NewPhoneText(text string) Phone {
	return Phone{Text: text}
}

// IsText reports whether the value is the free-form shape.
func (p Phone) IsText() bool {
	return p.Text != ""
}

// String returns the phone as it reads in the file: integer groups joined
// by single spaces, or the free-form text verbatim. The zero value returns
// the empty string.
func (p Phone) String() string {
	if p.IsText() {
		return p.Text
	}
	parts := make([]string, len(p.Digits))
	for i, d := range p.Digits {
		parts[i] = strconv.FormatInt(d, 10)
	}
	return strings.Join(parts, " ")
}

// Redacted returns a safe representation for logging. Phone numbers are PII,
// so only the shape is revealed: the number of digit groups for structured
// values, or "text" for free-form ones.
func (p Phone) Redacted() string {
	if p.IsZero() {
		return "Phone{}"
	}
	if p.IsText() {
		return "Phone{text}"
	}
	return fmt.Sprintf("Phone{%d groups}", len(p.Digits))
}

// TypeName implements model.Identifiable.
func (p Phone) TypeName() string {
	return "Phone"
}

// IsZero reports whether the value carries neither digits nor text.
func (p Phone) IsZero() bool {
	return len(p.Digits) == 0 && p.Text == ""
}

// Equal reports whether two phone values have the same shape and content.
func (p Phone) Equal(other Phone) bool {
	if p.Text != other.Text {
		return false
	}
	if len(p.Digits) != len(other.Digits) {
		return false
	}
	for i := range p.Digits {
		if p.Digits[i] != other.Digits[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy. The digit groups share no storage with the
// original.
func (p Phone) Clone() Phone {
	out := p
	if p.Digits != nil {
		out.Digits = append([]int64(nil), p.Digits...)
	}
	return out
}

// Validate implements model.Validatable.
//
// A Phone is valid when it is zero, or when it carries exactly one of the
// two shapes. Structured digits MUST be non-negative (the grammar only
// produces `[0-9]+`), and free-form text MUST be a single line so that the
// record stays on one line on the wire.
func (p Phone) Validate() error {
	if len(p.Digits) > 0 && p.Text != "" {
		return &errors.ValidationError{
			Type:   "Phone",
			Reason: "cannot carry both digits and free-form text",
		}
	}
	for _, d := range p.Digits {
		if d < 0 {
			return &errors.ValidationError{
				Type:   "Phone",
				Field:  "Digits",
				Reason: "must not be negative",
				Value:  d,
			}
		}
	}
	if strings.ContainsAny(p.Text, "\n\r") {
		return &errors.ValidationError{
			Type:   "Phone",
			Field:  "Text",
			Reason: "must be single-line",
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler, validating before serializing.
func (p Phone) MarshalJSON() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", p.TypeName(), err)
	}
	type phone Phone
	return json.Marshal(phone(p))
}

// UnmarshalJSON implements json.Unmarshaler, validating after decoding.
func (p *Phone) UnmarshalJSON(data []byte) error {
	type phone Phone
	var tmp phone
	if err := json.Unmarshal(data, &tmp); err != nil {
		return &errors.UnmarshalError{Type: "Phone", Data: data, Reason: err.Error()}
	}
	*p = Phone(tmp)
	return p.Validate()
}

// MarshalYAML implements yaml.Marshaler, validating before serializing.
func (p Phone) MarshalYAML() (interface{}, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", p.TypeName(), err)
	}
	type phone Phone
	return phone(p), nil
}

// UnmarshalYAML implements yaml.Unmarshaler, validating after decoding.
func (p *Phone) UnmarshalYAML(node *yaml.Node) error {
	type phone Phone
	var tmp phone
	if err := node.Decode(&tmp); err != nil {
		return &errors.UnmarshalError{Type: "Phone", Reason: err.Error()}
	}
	*p = Phone(tmp)
	return p.Validate()
}
