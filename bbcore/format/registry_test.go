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

func TestGrammarFor(t *testing.T) {
	tests := []struct {
		name         string
		version      int
		wantVersion  int
		wantExtended bool
	}{
		{"oldest", 2, 2, false},
		{"compact middle", 4, 4, false},
		{"last compact", 6, 6, false},
		{"first extended", 7, 7, true},
		{"canonical extended", 9, 9, true},
		{"unknown falls back to oldest", 12, 2, false},
		{"zero falls back to oldest", 0, 2, false},
		{"negative falls back to oldest", -1, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := format.GrammarFor(tt.version)
			if g.Version() != tt.wantVersion {
				t.Errorf("Version() = %d, want %d", g.Version(), tt.wantVersion)
			}
			if g.Extended() != tt.wantExtended {
				t.Errorf("Extended() = %v, want %v", g.Extended(), tt.wantExtended)
			}
		})
	}
}

func TestStrictGrammarFor(t *testing.T) {
	g, err := format.StrictGrammarFor(9)
	if err != nil {
		t.Fatalf("StrictGrammarFor(9) error = %v", err)
	}
	if !g.Extended() {
		t.Error("Extended() = false, want true")
	}

	_, err = format.StrictGrammarFor(1)
	if err == nil {
		t.Fatal("StrictGrammarFor(1) error = nil, want UnsupportedVersionError")
	}
	var verErr *errors.UnsupportedVersionError
	if !stderrors.As(err, &verErr) {
		t.Fatalf("error type = %T, want *errors.UnsupportedVersionError", err)
	}
	if verErr.Version != 1 {
		t.Errorf("Version = %d, want 1", verErr.Version)
	}
}

func TestGrammarsAreShared(t *testing.T) {
	if format.GrammarFor(9) != format.GrammarFor(9) {
		t.Error("GrammarFor(9) returned distinct grammars, want one shared instance")
	}
	if format.OldestGrammar() != format.GrammarFor(format.OldestVersion) {
		t.Error("OldestGrammar() does not match GrammarFor(OldestVersion)")
	}
	if format.LatestGrammar() != format.GrammarFor(format.LatestVersion) {
		t.Error("LatestGrammar() does not match GrammarFor(LatestVersion)")
	}
}

func TestSupportedVersions(t *testing.T) {
	want := []int{2, 3, 4, 5, 6, 7, 8, 9}
	if got := format.SupportedVersions(); !reflect.DeepEqual(got, want) {
		t.Errorf("SupportedVersions() = %v, want %v", got, want)
	}
}
