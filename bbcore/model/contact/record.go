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
	"regexp"
	"strings"
	"time"

	"dirpx.dev/bbdb/bbcore/errors"
	"dirpx.dev/bbdb/bbcore/model"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const (
	// fieldTagPattern is the shape a free-form field tag must have. Field
	// tags are written unquoted on the wire (as the left side of a dotted
	// pair), so they are restricted to the atom alphabet: ASCII letters,
	// digits and hyphens. Phone and address tags are quoted strings and
	// carry no such restriction.
	fieldTagPattern = `^[A-Za-z0-9-]+$`

	// StampLayout is the date layout used for the Creation and Timestamp
	// slots of extended-format records, matching what BBDB itself writes.
	StampLayout = "2006-01-02"
)

// FieldTagRegexp is the compiled form of fieldTagPattern. It is safe for
// concurrent use and treated as a read-only, process-wide singleton.
var FieldTagRegexp = regexp.MustCompile(fieldTagPattern)

// Record represents one contact.
//
// FirstName and LastName are required in the sense that their slots always
// exist on the wire, but either may be the empty string. The Affix, UUID,
// Creation and Timestamp fields only exist in the extended file format;
// the compact format neither reads nor writes them. The reserved cache slot
// of the file format is always nil and therefore has no field here.
//
// All collections keep insertion order. An absent collection and an empty
// one are the same observable state: the grammar cannot express "present
// but empty" (bare parentheses are a parse failure), so nil on the wire
// loads as an empty collection and an empty collection serializes back to
// nil.
//
// Mutation operations work in place and never remove data implicitly; use
// the Remove method of the relevant map for explicit removal.
//
// This type implements the model.Model interface.
type Record struct {
	// FirstName is the contact's first name; may be empty.
	FirstName string `json:"firstname" yaml:"firstname"`

	// LastName is the contact's last name; may be empty.
	LastName string `json:"lastname" yaml:"lastname"`

	// Affix is the ordered list of name suffixes ("Jr.", "PhD").
	// Extended format only.
	Affix []string `json:"affix,omitempty" yaml:"affix,omitempty"`

	// AKA is the ordered list of alternate names.
	AKA []string `json:"aka,omitempty" yaml:"aka,omitempty"`

	// Company is the employer or organization; empty means absent.
	Company string `json:"company,omitempty" yaml:"company,omitempty"`

	// Phone maps phone tags to numbers in insertion order.
	Phone PhoneMap `json:"phone" yaml:"phone"`

	// Address maps address tags to addresses in insertion order.
	Address AddressMap `json:"address" yaml:"address"`

	// Net is the ordered list of network identifiers (mail addresses,
	// handles).
	Net []string `json:"net,omitempty" yaml:"net,omitempty"`

	// Fields maps user-defined field tags to free-form text in insertion
	// order. Tags used here accumulate into the owning Database's
	// UserFields registry.
	Fields FieldMap `json:"fields" yaml:"fields"`

	// UUID is the record's opaque unique identifier. Extended format only.
	UUID string `json:"uuid,omitempty" yaml:"uuid,omitempty"`

	// Creation is the opaque creation stamp, conventionally YYYY-MM-DD.
	// Extended format only.
	Creation string `json:"creation,omitempty" yaml:"creation,omitempty"`

	// Timestamp is the opaque last-modification stamp, conventionally
	// YYYY-MM-DD. Extended format only.
	Timestamp string `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
}

// Compile-time assertions that Record implements the model contracts.
var (
	_ model.Model              = (*Record)(nil)
	_ model.Comparable[Record] = Record{}
	_ model.Cloneable[Record]  = Record{}
)

// NewRecord returns a Record with the given names and empty collections.
// Extended-format metadata (UUID, Creation, Timestamp) is left empty; call
// EnsureUUID and Touch when targeting the extended format.
func NewRecord(firstname, lastname string) *Record {
	return &Record{FirstName: firstname, LastName: lastname}
}

// Name returns the derived display name: firstname and lastname joined by a
// single space, trimmed. It is a view, not a stored field.
func (r Record) Name() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

// SetName sets both name parts.
func (r *Record) SetName(firstname, lastname string) {
	r.FirstName = firstname
	r.LastName = lastname
}

// SetFirstName sets the first name.
func (r *Record) SetFirstName(firstname string) {
	r.FirstName = firstname
}

// SetLastName sets the last name.
func (r *Record) SetLastName(lastname string) {
	r.LastName = lastname
}

// SetCompany sets the company; the empty string means absent.
func (r *Record) SetCompany(company string) {
	r.Company = company
}

// AddAffix appends a name suffix.
func (r *Record) AddAffix(affix string) {
	r.Affix = append(r.Affix, affix)
}

// AddAKA appends an alternate name.
func (r *Record) AddAKA(name string) {
	r.AKA = append(r.AKA, name)
}

// AddNet appends a network identifier.
func (r *Record) AddNet(name string) {
	r.Net = append(r.Net, name)
}

// SetPhone stores a phone number under tag, replacing any existing value
// while keeping the tag's first-seen position.
func (r *Record) SetPhone(tag string, phone Phone) {
	r.Phone.Set(tag, phone)
}

// AddAddress stores a fresh empty Address under tag, replacing any existing
// value while keeping the tag's first-seen position, and returns a pointer
// to it for in-place filling.
func (r *Record) AddAddress(tag string) *Address {
	a := NewAddress()
	r.Address.Set(tag, a)
	return a
}

// SetField stores free-form text under a user-defined field tag, replacing
// any existing value while keeping the tag's first-seen position.
func (r *Record) SetField(tag, text string) {
	r.Fields.Set(tag, text)
}

// EnsureUUID assigns a random UUID when none is set. It returns the
// record's UUID.
func (r *Record) EnsureUUID() string {
	if r.UUID == "" {
		r.UUID = uuid.NewString()
	}
	return r.UUID
}

// Touch stamps Timestamp, and Creation when still empty, with the current
// UTC date in StampLayout. Only the extended format serializes these slots.
func (r *Record) Touch() {
	now := time.Now().UTC().Format(StampLayout)
	r.Timestamp = now
	if r.Creation == "" {
		r.Creation = now
	}
}

// String returns a full debug rendering including contact data. Use
// Redacted for logging.
func (r Record) String() string {
	return fmt.Sprintf("Record{Name:%q, Company:%q, AKA:%v, Phone:%d, Address:%d, Net:%v, Fields:%d}",
		r.Name(), r.Company, r.AKA, r.Phone.Len(), r.Address.Len(), r.Net, r.Fields.Len())
}

// Redacted returns a safe representation for logging: initials plus
// collection sizes, no contact data.
func (r Record) Redacted() string {
	return fmt.Sprintf("Record{%s, phone:%d, address:%d, net:%d, fields:%d}",
		initials(r.FirstName, r.LastName), r.Phone.Len(), r.Address.Len(),
		len(r.Net), r.Fields.Len())
}

func initials(names ...string) string {
	var b strings.Builder
	for _, name := range names {
		for _, c := range name {
			b.WriteRune(c)
			b.WriteByte('.')
			break
		}
	}
	if b.Len() == 0 {
		return "anonymous"
	}
	return b.String()
}

// TypeName implements model.Identifiable.
func (r Record) TypeName() string {
	return "Record"
}

// IsZero reports whether the record carries no data at all.
func (r Record) IsZero() bool {
	return r.FirstName == "" && r.LastName == "" && len(r.Affix) == 0 &&
		len(r.AKA) == 0 && r.Company == "" && r.Phone.Len() == 0 &&
		r.Address.Len() == 0 && len(r.Net) == 0 && r.Fields.Len() == 0 &&
		r.UUID == "" && r.Creation == "" && r.Timestamp == ""
}

// Equal reports whether two records are deeply equal, field by field,
// honoring the insertion order of every collection. The format defines no
// domain ordering for records, so equality is the only comparison offered.
func (r Record) Equal(other Record) bool {
	if r.FirstName != other.FirstName || r.LastName != other.LastName ||
		r.Company != other.Company || r.UUID != other.UUID ||
		r.Creation != other.Creation || r.Timestamp != other.Timestamp {
		return false
	}
	if !stringsEqual(r.Affix, other.Affix) ||
		!stringsEqual(r.AKA, other.AKA) ||
		!stringsEqual(r.Net, other.Net) {
		return false
	}
	if !r.Phone.EqualFunc(other.Phone, Phone.Equal) {
		return false
	}
	if !r.Address.EqualFunc(other.Address, func(a, b *Address) bool {
		if a == nil || b == nil {
			return a == b
		}
		return a.Equal(*b)
	}) {
		return false
	}
	return r.Fields.EqualFunc(other.Fields, func(a, b string) bool { return a == b })
}

// Clone returns a deep copy: slices, tag maps and the addresses behind
// them share no storage with the original.
func (r Record) Clone() Record {
	out := r
	out.Affix = cloneStrings(r.Affix)
	out.AKA = cloneStrings(r.AKA)
	out.Net = cloneStrings(r.Net)
	out.Phone = r.Phone.CloneFunc(Phone.Clone)
	out.Address = r.Address.CloneFunc(func(a *Address) *Address {
		if a == nil {
			return nil
		}
		c := a.Clone()
		return &c
	})
	out.Fields = r.Fields.CloneFunc(func(s string) string { return s })
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Validate implements model.Validatable.
//
// Validation rules:
//   - every string value MUST be single-line (records live on one line),
//   - phone entries MUST be non-zero and valid,
//   - address entries MUST be non-nil and valid,
//   - field tags MUST match FieldTagRegexp, because they serialize unquoted.
//
// An entirely empty record is valid; the format allows it.
func (r Record) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"FirstName", r.FirstName},
		{"LastName", r.LastName},
		{"Company", r.Company},
		{"UUID", r.UUID},
		{"Creation", r.Creation},
		{"Timestamp", r.Timestamp},
	} {
		if strings.ContainsAny(f.value, "\n\r") {
			return &errors.ValidationError{
				Type:   "Record",
				Field:  f.name,
				Reason: "must be single-line",
			}
		}
	}
	for _, group := range []struct {
		name   string
		values []string
	}{
		{"Affix", r.Affix},
		{"AKA", r.AKA},
		{"Net", r.Net},
	} {
		for _, v := range group.values {
			if strings.ContainsAny(v, "\n\r") {
				return &errors.ValidationError{
					Type:   "Record",
					Field:  group.name,
					Reason: "entries must be single-line",
				}
			}
		}
	}

	var err error
	r.Phone.Range(func(tag string, p Phone) bool {
		if p.IsZero() {
			err = &errors.ValidationError{
				Type:   "Record",
				Field:  "Phone",
				Reason: fmt.Sprintf("entry %q carries neither digits nor text", tag),
			}
			return false
		}
		if verr := p.Validate(); verr != nil {
			err = fmt.Errorf("phone entry %q: %w", tag, verr)
			return false
		}
		return true
	})
	if err != nil {
		return err
	}

	r.Address.Range(func(tag string, a *Address) bool {
		if a == nil {
			err = &errors.ValidationError{
				Type:   "Record",
				Field:  "Address",
				Reason: fmt.Sprintf("entry %q is nil", tag),
			}
			return false
		}
		if verr := a.Validate(); verr != nil {
			err = fmt.Errorf("address entry %q: %w", tag, verr)
			return false
		}
		return true
	})
	if err != nil {
		return err
	}

	r.Fields.Range(func(tag, text string) bool {
		if !FieldTagRegexp.MatchString(tag) {
			err = &errors.ValidationError{
				Type:   "Record",
				Field:  "Fields",
				Reason: fmt.Sprintf("tag %q is not a valid atom (letters, digits, hyphens)", tag),
				Value:  tag,
			}
			return false
		}
		if strings.ContainsAny(text, "\n\r") {
			err = &errors.ValidationError{
				Type:   "Record",
				Field:  "Fields",
				Reason: fmt.Sprintf("value for tag %q must be single-line", tag),
			}
			return false
		}
		return true
	})
	return err
}

// MarshalJSON implements json.Marshaler, validating before serializing.
func (r Record) MarshalJSON() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", r.TypeName(), err)
	}
	type record Record
	return json.Marshal(record(r))
}

// UnmarshalJSON implements json.Unmarshaler, validating after decoding.
func (r *Record) UnmarshalJSON(data []byte) error {
	type record Record
	var tmp record
	if err := json.Unmarshal(data, &tmp); err != nil {
		return &errors.UnmarshalError{Type: "Record", Data: data, Reason: err.Error()}
	}
	*r = Record(tmp)
	return r.Validate()
}

// MarshalYAML implements yaml.Marshaler, validating before serializing.
func (r Record) MarshalYAML() (interface{}, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", r.TypeName(), err)
	}
	type record Record
	return record(r), nil
}

// UnmarshalYAML implements yaml.Unmarshaler, validating after decoding.
func (r *Record) UnmarshalYAML(node *yaml.Node) error {
	type record Record
	var tmp record
	if err := node.Decode(&tmp); err != nil {
		return &errors.UnmarshalError{Type: "Record", Reason: err.Error()}
	}
	*r = Record(tmp)
	return r.Validate()
}
