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

package format_test

import (
	stderrors "errors"
	"reflect"
	"testing"

	"dirpx.dev/bbdb/bbcore/errors"
	"dirpx.dev/bbdb/bbcore/format"
)

const fredFile = `;; -*-coding: utf-8-emacs;-*-
;;; file-version: 6
;;; user-fields: (spouse)
["Fred" "Flintstone" nil "Slate Rock" (["Home" (555 1234)]) nil ("fred@bedrock.org") ((spouse . "Wilma") (kids . "Pebbles")) nil]
`

func TestParse(t *testing.T) {
	db, err := format.Parse(fredFile)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if db.Coding != "utf-8-emacs" {
		t.Errorf("Coding = %q, want utf-8-emacs", db.Coding)
	}
	if db.Version != 6 {
		t.Errorf("Version = %d, want 6", db.Version)
	}
	if db.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", db.Len())
	}
	if got := db.Records[0].Name(); got != "Fred Flintstone" {
		t.Errorf("Name() = %q, want %q", got, "Fred Flintstone")
	}

	// Field tags from records join the declared user fields in order.
	if want := []string{"spouse", "kids"}; !reflect.DeepEqual(db.UserFields, want) {
		t.Errorf("UserFields = %v, want %v", db.UserFields, want)
	}
}

func TestParse_VersionDispatch(t *testing.T) {
	extendedBody := `["Fred" "Flintstone" nil nil nil nil nil nil nil nil "2026-01-02" "2026-01-03" nil]`

	tests := []struct {
		name        string
		text        string
		opts        []format.Option
		wantVersion int
	}{
		{
			"declared version 9 selects extended layout",
			";;; file-version: 9\n" + extendedBody,
			nil,
			9,
		},
		{
			"no declaration defaults to oldest",
			`["Fred" nil nil nil nil nil nil nil nil]`,
			nil,
			2,
		},
		{
			"hint applies when undeclared",
			extendedBody,
			[]format.Option{format.WithVersionHint(9)},
			9,
		},
		{
			"declaration beats hint",
			";;; file-version: 2\n" + `["Fred" nil nil nil nil nil nil nil nil]`,
			[]format.Option{format.WithVersionHint(9)},
			2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := format.Parse(tt.text, tt.opts...)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if db.Version != tt.wantVersion {
				t.Errorf("Version = %d, want %d", db.Version, tt.wantVersion)
			}
		})
	}
}

func TestParse_UnknownVersionFallsBack(t *testing.T) {
	text := ";;; file-version: 11\n" + `["Fred" nil nil nil nil nil nil nil nil]`

	db, err := format.Parse(text)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	// The declared version is kept even though the oldest grammar ran.
	if db.Version != 11 {
		t.Errorf("Version = %d, want 11", db.Version)
	}
}

func TestParse_StrictVersion(t *testing.T) {
	text := ";;; file-version: 11\n" + `["Fred" nil nil nil nil nil nil nil nil]`

	_, err := format.Parse(text, format.WithStrictVersion())
	if err == nil {
		t.Fatal("Parse() error = nil, want UnsupportedVersionError")
	}
	var verErr *errors.UnsupportedVersionError
	if !stderrors.As(err, &verErr) {
		t.Fatalf("error type = %T, want *errors.UnsupportedVersionError", err)
	}
	if verErr.Version != 11 {
		t.Errorf("Version = %d, want 11", verErr.Version)
	}
}

func TestParse_Empty(t *testing.T) {
	db, err := format.Parse("")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if db.Len() != 0 {
		t.Errorf("Len() = %d, want 0", db.Len())
	}
}

func TestParse_SyntaxErrorFailsWhole(t *testing.T) {
	text := "[\"Fred\" nil nil nil nil nil nil nil nil]\n[\"Barney\" nil]\n"
	_, err := format.Parse(text)
	if err == nil {
		t.Fatal("Parse() error = nil, want SyntaxError")
	}
	var syntaxErr *errors.SyntaxError
	if !stderrors.As(err, &syntaxErr) {
		t.Fatalf("error type = %T, want *errors.SyntaxError", err)
	}
}

func TestParseAll_Warnings(t *testing.T) {
	text := `["Fred" nil nil nil (["Home" (555 1111)] ["Home" (555 2222)]) ` +
		`(["Home" nil "Bedrock" "" "" ""] ["Home" nil "Granitetown" "" "" ""]) nil nil nil]`

	res, err := format.ParseAll(text)
	if err != nil {
		t.Fatalf("ParseAll() error = %v", err)
	}
	if len(res.Warnings) != 2 {
		t.Fatalf("got %d warnings, want 2", len(res.Warnings))
	}
	if res.Warnings[0].Kind != "phone" || res.Warnings[1].Kind != "address" {
		t.Errorf("warning kinds = %q, %q; want phone, address",
			res.Warnings[0].Kind, res.Warnings[1].Kind)
	}

	addr, _ := res.Database.Records[0].Address.Get("Home")
	if addr.City != "Granitetown" {
		t.Errorf("City = %q, want Granitetown (last value wins)", addr.City)
	}
}
