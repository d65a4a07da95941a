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
	"strings"

	"dirpx.dev/bbdb/bbcore/errors"
)

// Quote wraps s in double quotes, escaping every embedded `"` as `\"`.
// No other character is escaped; this is the file format's whole escaping
// story, and Unquote inverts it exactly.
func Quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// Unquote strips the surrounding double quotes from s and resolves `\"`
// escapes, exactly inverting Quote. It fails if s is not wrapped in quotes
// or if its closing quote is escaped away.
func Unquote(s string) (string, error) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", &errors.SyntaxError{
			Line:   1,
			Column: 1,
			Reason: "not a quoted string",
		}
	}

	body := s[1 : len(s)-1]
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '\\' && i+1 < len(body) && body[i+1] == '"' {
			b.WriteByte('"')
			i++
			continue
		}
		if c == '"' {
			return "", &errors.SyntaxError{
				Line:   1,
				Column: i + 2,
				Reason: "unescaped quote inside string",
			}
		}
		b.WriteByte(c)
	}
	return b.String(), nil
}
