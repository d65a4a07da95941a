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
	"regexp"
	"strconv"
	"strings"
)

const (
	// codingPattern extracts the text encoding name from a header comment
	// such as ";; -*-coding: utf-8-emacs;-*-". The value is stored
	// verbatim.
	codingPattern = `coding: (.+);`

	// fileVersionPattern extracts the file format version from a header
	// comment such as ";;; file-version: 6".
	fileVersionPattern = `file-version: (\d+)`

	// fileFormatPattern extracts the file format version from its older
	// "file-format" spelling, accepted as a synonym. The file-version
	// spelling is tried first on each line.
	fileFormatPattern = `file-format: (\d+)`

	// userFieldsPattern extracts the registered user field tags from a
	// header comment such as ";;; user-fields: (spouse kids)". The match
	// is split on whitespace.
	userFieldsPattern = `user-fields: \((.+)\)`
)

var (
	codingRegexp      = regexp.MustCompile(codingPattern)
	fileFormatRegexp  = regexp.MustCompile(fileFormatPattern)
	fileVersionRegexp = regexp.MustCompile(fileVersionPattern)
	userFieldsRegexp  = regexp.MustCompile(userFieldsPattern)
)

// Properties holds the file-level metadata extracted from header comment
// lines before grammar parsing.
type Properties struct {
	// Coding is the text encoding name, verbatim; empty when no coding
	// line was seen.
	Coding string

	// Version is the declared file format version; meaningful only when
	// HasVersion is true.
	Version int

	// HasVersion reports whether any version property was present.
	HasVersion bool

	// UserFields is the declared user field tag registry, in file order.
	UserFields []string
}

// ScanProperties scans every comment line of text (lines starting with a
// semicolon) for file properties and returns the extracted metadata.
//
// Each property regexp is matched anywhere within the line. The first
// occurrence of a property wins; later occurrences never overwrite it.
// Within one line the file-version spelling beats the file-format synonym.
// Lines that match no pattern, including malformed property lines, are
// silently ignored; property extraction never fails.
func ScanProperties(text string) Properties {
	var props Properties

	for _, line := range strings.Split(text, "\n") {
		if !strings.HasPrefix(line, ";") {
			continue
		}
		if props.Coding == "" {
			if m := codingRegexp.FindStringSubmatch(line); m != nil {
				props.Coding = m[1]
			}
		}
		if !props.HasVersion {
			m := fileVersionRegexp.FindStringSubmatch(line)
			if m == nil {
				m = fileFormatRegexp.FindStringSubmatch(line)
			}
			if m != nil {
				if v, err := strconv.Atoi(m[1]); err == nil {
					props.Version = v
					props.HasVersion = true
				}
			}
		}
		if props.UserFields == nil {
			if m := userFieldsRegexp.FindStringSubmatch(line); m != nil {
				if fields := strings.Fields(m[1]); len(fields) > 0 {
					props.UserFields = fields
				}
			}
		}
	}

	return props
}
