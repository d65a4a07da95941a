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

	"gopkg.in/yaml.v3"
)

// TagMap is an insertion-ordered mapping from tag strings to values, the
// backing structure for the phone, address and free-form field collections
// of a Record.
//
// Keys are unique within a map. Setting an existing tag overwrites the value
// but retains the position of the first occurrence, which is exactly how
// duplicate tags are resolved during parsing (last value wins, first
// position kept). Iteration via Tags and Range always follows first-seen
// order, and that order is what the serializer emits.
//
// The zero value is an empty map ready for use. TagMap is not safe for
// concurrent mutation.
type TagMap[V any] struct {
	tags    []string
	entries map[string]V
}

// tagMapEntry is the interchange form of one TagMap entry. Tag maps
// serialize to JSON and YAML as ordered arrays of these, never as objects,
// so insertion order survives a round trip.
type tagMapEntry[V any] struct {
	Tag   string `json:"tag" yaml:"tag"`
	Value V      `json:"value" yaml:"value"`
}

// Set stores value under tag, creating the entry if it does not exist. It
// reports whether an existing entry was overwritten. On overwrite the tag
// keeps the position of its first occurrence.
func (m *TagMap[V]) Set(tag string, value V) bool {
	if m.entries == nil {
		m.entries = make(map[string]V)
	}
	_, replaced := m.entries[tag]
	if !replaced {
		m.tags = append(m.tags, tag)
	}
	m.entries[tag] = value
	return replaced
}

// Get returns the value stored under tag and whether the tag is present.
func (m TagMap[V]) Get(tag string) (V, bool) {
	v, ok := m.entries[tag]
	return v, ok
}

// Has reports whether tag is present.
func (m TagMap[V]) Has(tag string) bool {
	_, ok := m.entries[tag]
	return ok
}

// Tags returns the tags in first-seen order. The returned slice is a copy;
// mutating it does not affect the map.
func (m TagMap[V]) Tags() []string {
	out := make([]string, len(m.tags))
	copy(out, m.tags)
	return out
}

// Len returns the number of entries.
func (m TagMap[V]) Len() int {
	return len(m.tags)
}

// Remove deletes the entry stored under tag and reports whether it existed.
// Removal is the only way data leaves a collection; no operation removes
// entries implicitly.
func (m *TagMap[V]) Remove(tag string) bool {
	if _, ok := m.entries[tag]; !ok {
		return false
	}
	delete(m.entries, tag)
	for i, t := range m.tags {
		if t == tag {
			m.tags = append(m.tags[:i], m.tags[i+1:]...)
			break
		}
	}
	return true
}

// Range calls fn for each entry in first-seen order. Iteration stops early
// if fn returns false. fn MUST NOT mutate the map.
func (m TagMap[V]) Range(fn func(tag string, value V) bool) {
	for _, tag := range m.tags {
		if !fn(tag, m.entries[tag]) {
			return
		}
	}
}

// CloneFunc returns a deep copy of the map, cloning each value with clone.
// The copy preserves insertion order and shares no storage with the
// original.
func (m TagMap[V]) CloneFunc(clone func(V) V) TagMap[V] {
	var out TagMap[V]
	m.Range(func(tag string, value V) bool {
		out.Set(tag, clone(value))
		return true
	})
	return out
}

// EqualFunc reports whether two maps hold the same tags in the same order
// with values equal under eq.
func (m TagMap[V]) EqualFunc(other TagMap[V], eq func(a, b V) bool) bool {
	if len(m.tags) != len(other.tags) {
		return false
	}
	for i, tag := range m.tags {
		if other.tags[i] != tag {
			return false
		}
		if !eq(m.entries[tag], other.entries[tag]) {
			return false
		}
	}
	return true
}

// MarshalJSON implements json.Marshaler. The map serializes as an ordered
// array of {tag, value} objects; an empty map serializes as [].
func (m TagMap[V]) MarshalJSON() ([]byte, error) {
	out := make([]tagMapEntry[V], 0, len(m.tags))
	for _, tag := range m.tags {
		out = append(out, tagMapEntry[V]{Tag: tag, Value: m.entries[tag]})
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler, accepting the ordered array
// form produced by MarshalJSON. Duplicate tags in the input follow the usual
// resolution: last value wins, first position retained.
func (m *TagMap[V]) UnmarshalJSON(data []byte) error {
	var entries []tagMapEntry[V]
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("cannot unmarshal tag map: %w", err)
	}
	*m = TagMap[V]{}
	for _, e := range entries {
		m.Set(e.Tag, e.Value)
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler with the same ordered-array form as
// MarshalJSON.
func (m TagMap[V]) MarshalYAML() (interface{}, error) {
	out := make([]tagMapEntry[V], 0, len(m.tags))
	for _, tag := range m.tags {
		out = append(out, tagMapEntry[V]{Tag: tag, Value: m.entries[tag]})
	}
	return out, nil
}

// UnmarshalYAML implements yaml.Unmarshaler, accepting the ordered array
// form produced by MarshalYAML.
func (m *TagMap[V]) UnmarshalYAML(node *yaml.Node) error {
	var entries []tagMapEntry[V]
	if err := node.Decode(&entries); err != nil {
		return fmt.Errorf("cannot unmarshal tag map: %w", err)
	}
	*m = TagMap[V]{}
	for _, e := range entries {
		m.Set(e.Tag, e.Value)
	}
	return nil
}

// PhoneMap maps phone tags (such as "Home" or "Office") to Phone values.
type PhoneMap = TagMap[Phone]

// AddressMap maps address tags to Address values. Values are pointers so
// that an address obtained from AddAddress can be filled in place.
type AddressMap = TagMap[*Address]

// FieldMap maps user-defined field tags to free-form text.
type FieldMap = TagMap[string]
