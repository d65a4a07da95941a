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

package contact_test

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"dirpx.dev/bbdb/bbcore/model/contact"
)

func fredRecord() *contact.Record {
	rec := contact.NewRecord("Fred", "Flintstone")
	rec.SetCompany("Slate Rock")
	rec.SetPhone("Home", contact.NewPhoneDigits(555, 1234))
	rec.AddNet("fred@bedrock.org")
	rec.SetField("spouse", "Wilma")
	return rec
}

func TestRecord_Name(t *testing.T) {
	tests := []struct {
		name      string
		firstname string
		lastname  string
		want      string
	}{
		{"both parts", "Fred", "Flintstone", "Fred Flintstone"},
		{"first only", "Fred", "", "Fred"},
		{"last only", "", "Flintstone", "Flintstone"},
		{"neither", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := contact.NewRecord(tt.firstname, tt.lastname)
			if got := rec.Name(); got != tt.want {
				t.Errorf("Name() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecord_Mutators(t *testing.T) {
	rec := contact.NewRecord("Fred", "Flintstone")

	rec.SetName("Frederick", "Flintstone")
	if rec.FirstName != "Frederick" {
		t.Errorf("FirstName = %q, want Frederick", rec.FirstName)
	}
	rec.SetFirstName("Fred")
	rec.SetLastName("Flintston")
	rec.SetLastName("Flintstone")

	rec.AddAffix("Sr.")
	rec.AddAKA("Twinkletoes")
	rec.AddAKA("Fred the Great")
	if want := []string{"Twinkletoes", "Fred the Great"}; !reflect.DeepEqual(rec.AKA, want) {
		t.Errorf("AKA = %v, want %v", rec.AKA, want)
	}

	rec.AddNet("fred@bedrock.org")
	rec.SetPhone("Home", contact.NewPhoneDigits(555, 1234))
	rec.SetField("spouse", "Wilma")

	home := rec.AddAddress("Home")
	home.SetCity("Bedrock")
	if addr, _ := rec.Address.Get("Home"); addr.City != "Bedrock" {
		t.Error("AddAddress() pointer does not fill the stored address")
	}
}

func TestRecord_EnsureUUID(t *testing.T) {
	rec := contact.NewRecord("Fred", "Flintstone")
	if rec.UUID != "" {
		t.Fatalf("new record UUID = %q, want empty", rec.UUID)
	}

	first := rec.EnsureUUID()
	if first == "" {
		t.Fatal("EnsureUUID() returned empty")
	}
	if second := rec.EnsureUUID(); second != first {
		t.Errorf("EnsureUUID() = %q on second call, want %q unchanged", second, first)
	}
}

func TestRecord_Touch(t *testing.T) {
	rec := contact.NewRecord("Fred", "Flintstone")
	rec.Touch()

	today := time.Now().UTC().Format(contact.StampLayout)
	if rec.Creation != today {
		t.Errorf("Creation = %q, want %q", rec.Creation, today)
	}
	if rec.Timestamp != today {
		t.Errorf("Timestamp = %q, want %q", rec.Timestamp, today)
	}

	rec.Creation = "2020-01-01"
	rec.Touch()
	if rec.Creation != "2020-01-01" {
		t.Errorf("Touch() overwrote Creation = %q, want 2020-01-01 kept", rec.Creation)
	}
	if rec.Timestamp != today {
		t.Errorf("Timestamp = %q, want %q", rec.Timestamp, today)
	}
}

func TestRecord_Redacted(t *testing.T) {
	rec := fredRecord()
	got := rec.Redacted()
	if strings.Contains(got, "Fred") || strings.Contains(got, "Flintstone") ||
		strings.Contains(got, "Wilma") || strings.Contains(got, "bedrock") {
		t.Errorf("Redacted() = %q leaks contact data", got)
	}
	if !strings.Contains(got, "F.F.") {
		t.Errorf("Redacted() = %q, want initials F.F.", got)
	}

	if got := contact.NewRecord("", "").Redacted(); !strings.Contains(got, "anonymous") {
		t.Errorf("Redacted() = %q for empty names, want anonymous marker", got)
	}
}

func TestRecord_IsZero(t *testing.T) {
	if !contact.NewRecord("", "").IsZero() {
		t.Error("IsZero() = false for empty record, want true")
	}
	if contact.NewRecord("Fred", "").IsZero() {
		t.Error("IsZero() = true with a name, want false")
	}
	rec := contact.NewRecord("", "")
	rec.SetField("spouse", "Wilma")
	if rec.IsZero() {
		t.Error("IsZero() = true with fields, want false")
	}
}

func TestRecord_Equal(t *testing.T) {
	a := fredRecord()
	if !a.Equal(*fredRecord()) {
		t.Error("Equal() = false for identical records")
	}

	b := fredRecord()
	b.SetPhone("Home", contact.NewPhoneDigits(555, 4321))
	if a.Equal(*b) {
		t.Error("Equal() = true after phone change")
	}

	c := fredRecord()
	c.SetField("kids", "Pebbles")
	if a.Equal(*c) {
		t.Error("Equal() = true after extra field")
	}
}

func TestRecord_Clone(t *testing.T) {
	orig := fredRecord()
	home := orig.AddAddress("Home")
	home.SetCity("Bedrock")
	orig.AddAKA("Twinkletoes")

	clone := orig.Clone()
	if !clone.Equal(*orig) {
		t.Fatalf("Clone() not equal to original:\nclone: %v\norig:  %v", clone, *orig)
	}

	clone.SetPhone("Home", contact.NewPhoneDigits(555, 4321))
	clone.AKA[0] = "Freddy"
	clone.SetField("kids", "Pebbles")
	if addr, ok := clone.Address.Get("Home"); ok {
		addr.SetCity("Granitetown")
	}

	if p, _ := orig.Phone.Get("Home"); !p.Equal(contact.NewPhoneDigits(555, 1234)) {
		t.Errorf("mutating clone changed original phone: %v", p)
	}
	if orig.AKA[0] != "Twinkletoes" {
		t.Errorf("mutating clone changed original AKA: %v", orig.AKA)
	}
	if orig.Fields.Has("kids") {
		t.Error("adding field to clone added it to original")
	}
	if addr, _ := orig.Address.Get("Home"); addr.City != "Bedrock" {
		t.Errorf("mutating clone's address changed original: got %q", addr.City)
	}
}

func TestRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*contact.Record)
		wantErr bool
	}{
		{"well-formed", func(*contact.Record) {}, false},
		{"empty record valid", nil, false},
		{
			"newline in name",
			func(r *contact.Record) { r.FirstName = "Fred\nFlintstone" },
			true,
		},
		{
			"newline in aka entry",
			func(r *contact.Record) { r.AddAKA("a\nb") },
			true,
		},
		{
			"zero phone entry",
			func(r *contact.Record) { r.SetPhone("Home", contact.Phone{}) },
			true,
		},
		{
			"invalid phone entry",
			func(r *contact.Record) {
				r.SetPhone("Home", contact.Phone{Digits: []int64{1}, Text: "x"})
			},
			true,
		},
		{
			"field tag with space",
			func(r *contact.Record) { r.SetField("bad tag", "x") },
			true,
		},
		{
			"field tag with dot",
			func(r *contact.Record) { r.SetField("a.b", "x") },
			true,
		},
		{
			"multiline field value",
			func(r *contact.Record) { r.SetField("spouse", "a\nb") },
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec *contact.Record
			if tt.mutate == nil {
				rec = contact.NewRecord("", "")
			} else {
				rec = fredRecord()
				tt.mutate(rec)
			}
			err := rec.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecord_JSONRoundTrip(t *testing.T) {
	orig := fredRecord()
	orig.EnsureUUID()
	orig.Touch()

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var got contact.Record
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !got.Equal(*orig) {
		t.Errorf("round trip = %s, want equal record", data)
	}
}

func TestFieldTagRegexp(t *testing.T) {
	valid := []string{"spouse", "mail-alias", "x509", "A1-b2"}
	for _, tag := range valid {
		if !contact.FieldTagRegexp.MatchString(tag) {
			t.Errorf("FieldTagRegexp rejects %q, want accept", tag)
		}
	}
	invalid := []string{"", "two words", "tab\there", "dotted.tag", `quoted"`}
	for _, tag := range invalid {
		if contact.FieldTagRegexp.MatchString(tag) {
			t.Errorf("FieldTagRegexp accepts %q, want reject", tag)
		}
	}
}
