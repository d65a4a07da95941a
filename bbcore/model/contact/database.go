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

// Package contact holds the in-memory representation of a BBDB contact
// database: Database, Record, Address, Phone, and the insertion-ordered
// tag maps backing the phone, address and free-form field collections.
//
// Entities are created empty via constructors or populated by the format
// package's grammar-driven parser, then mutated in place through the add
// and set operations. Nothing is removed implicitly; explicit Remove calls
// on the tag maps are the only way data leaves a collection.
//
// All entities implement the model.Model contract, including PII-safe
// Redacted forms for logging and order-preserving JSON/YAML interchange.
// The canonical text form, however, is produced and consumed by the format
// package, not by these marshal methods.
package contact

import (
	"encoding/json"
	"fmt"
	"strings"

	"dirpx.dev/bbdb/bbcore/errors"
	"dirpx.dev/bbdb/bbcore/model"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultCoding is the text encoding name written to the header of new
	// databases, matching what GNU Emacs expects to find there.
	DefaultCoding = "utf-8-emacs"

	// DefaultVersion is the file format version assigned to new databases.
	DefaultVersion = 6
)

// Database is an ordered sequence of contact records plus file-level
// metadata: the text encoding name, the file format version, and the
// registry of user-defined field tags.
//
// UserFields is append-only and order-preserving: tags appear in the order
// they were first registered, and RegisterFieldTags folds in any tags used
// by records but not yet listed. The serializer runs that accumulation
// before writing, so the emitted header always covers every tag in use.
//
// This type implements the model.Model interface.
type Database struct {
	// Coding is the text encoding name recorded in the file header.
	Coding string `json:"coding" yaml:"coding"`

	// Version is the file format version; it selects the grammar used to
	// parse the file and the layout used to serialize it.
	Version int `json:"version" yaml:"version"`

	// UserFields is the ordered, append-only registry of user-defined
	// field tags.
	UserFields []string `json:"userfields,omitempty" yaml:"userfields,omitempty"`

	// Records is the ordered sequence of contacts.
	Records []*Record `json:"records,omitempty" yaml:"records,omitempty"`
}

// Compile-time assertions that Database implements the model contracts.
var (
	_ model.Model                = (*Database)(nil)
	_ model.Comparable[Database] = Database{}
	_ model.Cloneable[Database]  = Database{}
)

// NewDatabase returns an empty Database with DefaultCoding and
// DefaultVersion.
func NewDatabase() *Database {
	return &Database{Coding: DefaultCoding, Version: DefaultVersion}
}

// Add appends a new record with the given names and returns it for further
// filling.
func (db *Database) Add(firstname, lastname string) *Record {
	r := NewRecord(firstname, lastname)
	db.Records = append(db.Records, r)
	return r
}

// Append appends an existing record.
func (db *Database) Append(r *Record) {
	db.Records = append(db.Records, r)
}

// RegisterFieldTag appends tag to the UserFields registry if not already
// present and reports whether it was added. The registry never reorders or
// drops tags.
func (db *Database) RegisterFieldTag(tag string) bool {
	for _, t := range db.UserFields {
		if t == tag {
			return false
		}
	}
	db.UserFields = append(db.UserFields, tag)
	return true
}

// RegisterFieldTags folds every record's field tags into the UserFields
// registry in first-seen order, walking the records in sequence.
func (db *Database) RegisterFieldTags() {
	for _, r := range db.Records {
		if r == nil {
			continue
		}
		for _, tag := range r.Fields.Tags() {
			db.RegisterFieldTag(tag)
		}
	}
}

// Len returns the number of records.
func (db *Database) Len() int {
	return len(db.Records)
}

// String returns a full debug rendering including record names. Use
// Redacted for logging.
func (db Database) String() string {
	names := make([]string, len(db.Records))
	for i, r := range db.Records {
		if r != nil {
			names[i] = r.Name()
		}
	}
	return fmt.Sprintf("Database{Coding:%q, Version:%d, UserFields:%v, Records:%v}",
		db.Coding, db.Version, db.UserFields, names)
}

// Redacted returns a safe representation for logging: metadata and record
// count only, no contact data. Coding, version and field tags are schema,
// not PII.
func (db Database) Redacted() string {
	return fmt.Sprintf("Database{coding:%s, version:%d, userfields:%d, records:%d}",
		db.Coding, db.Version, len(db.UserFields), len(db.Records))
}

// TypeName implements model.Identifiable.
func (db Database) TypeName() string {
	return "Database"
}

// IsZero reports whether the database is empty and carries no metadata.
func (db Database) IsZero() bool {
	return db.Coding == "" && db.Version == 0 && len(db.UserFields) == 0 &&
		len(db.Records) == 0
}

// Equal reports whether two databases are deeply equal: same metadata, same
// registry in the same order, and pairwise equal records in the same order.
func (db Database) Equal(other Database) bool {
	if db.Coding != other.Coding || db.Version != other.Version {
		return false
	}
	if !stringsEqual(db.UserFields, other.UserFields) {
		return false
	}
	if len(db.Records) != len(other.Records) {
		return false
	}
	for i := range db.Records {
		a, b := db.Records[i], other.Records[i]
		if a == nil || b == nil {
			if a != b {
				return false
			}
			continue
		}
		if !a.Equal(*b) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy: the registry, the record sequence and every
// record behind it share no storage with the original.
func (db Database) Clone() Database {
	out := db
	out.UserFields = cloneStrings(db.UserFields)
	if db.Records != nil {
		out.Records = make([]*Record, len(db.Records))
		for i, r := range db.Records {
			if r == nil {
				continue
			}
			c := r.Clone()
			out.Records[i] = &c
		}
	}
	return out
}

// Validate implements model.Validatable.
//
// Validation rules:
//   - Coding MUST be non-empty and single-line (it is embedded in the
//     header comment),
//   - Version MUST be positive,
//   - UserFields entries MUST be valid atoms (they are written
//     whitespace-separated inside parentheses),
//   - every record MUST validate.
func (db Database) Validate() error {
	if db.Coding == "" {
		return &errors.ValidationError{
			Type:   "Database",
			Field:  "Coding",
			Reason: "must not be empty",
		}
	}
	if strings.ContainsAny(db.Coding, "\n\r;") {
		return &errors.ValidationError{
			Type:   "Database",
			Field:  "Coding",
			Reason: "must be single-line without semicolons",
		}
	}
	if db.Version <= 0 {
		return &errors.ValidationError{
			Type:   "Database",
			Field:  "Version",
			Reason: "must be positive",
			Value:  db.Version,
		}
	}
	for _, tag := range db.UserFields {
		if !FieldTagRegexp.MatchString(tag) {
			return &errors.ValidationError{
				Type:   "Database",
				Field:  "UserFields",
				Reason: fmt.Sprintf("tag %q is not a valid atom (letters, digits, hyphens)", tag),
				Value:  tag,
			}
		}
	}
	for i, r := range db.Records {
		if r == nil {
			return &errors.ValidationError{
				Type:   "Database",
				Field:  "Records",
				Reason: fmt.Sprintf("record %d is nil", i),
			}
		}
		if err := r.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler, validating before serializing.
func (db Database) MarshalJSON() ([]byte, error) {
	if err := db.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", db.TypeName(), err)
	}
	type database Database
	return json.Marshal(database(db))
}

// UnmarshalJSON implements json.Unmarshaler, validating after decoding.
func (db *Database) UnmarshalJSON(data []byte) error {
	type database Database
	var tmp database
	if err := json.Unmarshal(data, &tmp); err != nil {
		return &errors.UnmarshalError{Type: "Database", Data: data, Reason: err.Error()}
	}
	*db = Database(tmp)
	return db.Validate()
}

// MarshalYAML implements yaml.Marshaler, validating before serializing.
func (db Database) MarshalYAML() (interface{}, error) {
	if err := db.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", db.TypeName(), err)
	}
	type database Database
	return database(db), nil
}

// UnmarshalYAML implements yaml.Unmarshaler, validating after decoding.
func (db *Database) UnmarshalYAML(node *yaml.Node) error {
	type database Database
	var tmp database
	if err := node.Decode(&tmp); err != nil {
		return &errors.UnmarshalError{Type: "Database", Reason: err.Error()}
	}
	*db = Database(tmp)
	return db.Validate()
}
