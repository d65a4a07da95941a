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

package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"dirpx.dev/bbdb/bbcore/model/contact"
)

// Serialize renders db in its file form: three header comment lines
// followed by one bracketed record per line. The record layout follows
// the grammar registered for db.Version; empty collections and an empty
// company render as nil, while the name and extended metadata slots stay
// quoted strings. Serialize is total for well-formed databases and never
// mutates its argument.
func Serialize(db *contact.Database) string {
	coding := db.Coding
	if coding == "" {
		coding = contact.DefaultCoding
	}
	version := db.Version
	if version == 0 {
		version = contact.DefaultVersion
	}
	extended := GrammarFor(version).Extended()

	var b strings.Builder
	fmt.Fprintf(&b, ";; -*-coding: %s;-*-\n", coding)
	fmt.Fprintf(&b, ";;; file-version: %d\n", version)
	fmt.Fprintf(&b, ";;; user-fields: (%s)\n", strings.Join(userFieldTags(db), " "))

	for _, rec := range db.Records {
		writeRecord(&b, rec, extended)
	}
	return b.String()
}

// Write renders db in its file form onto w.
func Write(w io.Writer, db *contact.Database) error {
	_, err := io.WriteString(w, Serialize(db))
	return err
}

// userFieldTags merges the registered user field tags with every field
// tag appearing in a record, preserving first-seen order.
func userFieldTags(db *contact.Database) []string {
	seen := make(map[string]bool, len(db.UserFields))
	tags := make([]string, 0, len(db.UserFields))
	add := func(tag string) {
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	for _, tag := range db.UserFields {
		add(tag)
	}
	for _, rec := range db.Records {
		rec.Fields.Range(func(tag string, _ string) bool {
			add(tag)
			return true
		})
	}
	return tags
}

// writeRecord renders one record as a single bracketed line. The name and
// extended metadata slots are always quoted, even when empty; only the
// company and the collections may collapse to nil.
func writeRecord(b *strings.Builder, rec *contact.Record, extended bool) {
	parts := []string{
		Quote(rec.FirstName),
		Quote(rec.LastName),
	}
	if extended {
		parts = append(parts, stringList(rec.Affix))
	}
	parts = append(parts,
		stringList(rec.AKA),
		stringOrNil(rec.Company),
		phoneSlot(rec.Phone),
		addressSlot(rec.Address),
		stringList(rec.Net),
		fieldSlot(rec.Fields),
	)
	if extended {
		parts = append(parts,
			Quote(rec.UUID),
			Quote(rec.Creation),
			Quote(rec.Timestamp),
		)
	}
	parts = append(parts, "nil") // cache

	b.WriteByte('[')
	b.WriteString(strings.Join(parts, " "))
	b.WriteString("]\n")
}

func stringOrNil(s string) string {
	if s == "" {
		return "nil"
	}
	return Quote(s)
}

func stringList(list []string) string {
	if len(list) == 0 {
		return "nil"
	}
	quoted := make([]string, len(list))
	for i, s := range list {
		quoted[i] = Quote(s)
	}
	return "(" + strings.Join(quoted, " ") + ")"
}

func phoneSlot(phones contact.PhoneMap) string {
	if phones.Len() == 0 {
		return "nil"
	}
	var entries []string
	phones.Range(func(tag string, phone contact.Phone) bool {
		entries = append(entries, "["+Quote(tag)+" "+phoneNumber(phone)+"]")
		return true
	})
	return "(" + strings.Join(entries, " ") + ")"
}

func phoneNumber(phone contact.Phone) string {
	if phone.IsText() {
		return Quote(phone.Text)
	}
	groups := make([]string, len(phone.Digits))
	for i, d := range phone.Digits {
		groups[i] = strconv.FormatInt(d, 10)
	}
	return "(" + strings.Join(groups, " ") + ")"
}

func addressSlot(addresses contact.AddressMap) string {
	if addresses.Len() == 0 {
		return "nil"
	}
	var entries []string
	addresses.Range(func(tag string, addr *contact.Address) bool {
		entries = append(entries, "["+strings.Join([]string{
			Quote(tag),
			stringList(addr.Location),
			Quote(addr.City),
			Quote(addr.State),
			Quote(addr.Zipcode),
			Quote(addr.Country),
		}, " ")+"]")
		return true
	})
	return "(" + strings.Join(entries, " ") + ")"
}

func fieldSlot(fields contact.FieldMap) string {
	if fields.Len() == 0 {
		return "nil"
	}
	var pairs []string
	fields.Range(func(tag string, text string) bool {
		pairs = append(pairs, "("+tag+" . "+Quote(text)+")")
		return true
	})
	return "(" + strings.Join(pairs, " ") + ")"
}
