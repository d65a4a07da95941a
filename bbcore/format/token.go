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

import "strconv"

// TokenKind identifies the lexical category of a Token.
type TokenKind int

const (
	// TokenEOF marks the end of input.
	TokenEOF TokenKind = iota

	// TokenString is a quoted string with the `\"` escapes already
	// resolved.
	TokenString

	// TokenAtom is a bare word of letters, digits and hyphens that is not
	// all digits and not the nil keyword.
	TokenAtom

	// TokenInt is an unsigned decimal integer literal.
	TokenInt

	// TokenNil is the literal nil keyword, the format's marker for an
	// absent optional value or collection.
	TokenNil

	// TokenLParen is "(".
	TokenLParen

	// TokenRParen is ")".
	TokenRParen

	// TokenLBracket is "[".
	TokenLBracket

	// TokenRBracket is "]".
	TokenRBracket

	// TokenDot is the "." separating the two halves of a dotted pair.
	TokenDot
)

// String returns a short name for the kind, used in error messages.
func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "end of input"
	case TokenString:
		return "string"
	case TokenAtom:
		return "atom"
	case TokenInt:
		return "integer"
	case TokenNil:
		return "nil"
	case TokenLParen:
		return `"("`
	case TokenRParen:
		return `")"`
	case TokenLBracket:
		return `"["`
	case TokenRBracket:
		return `"]"`
	case TokenDot:
		return `"."`
	default:
		return "unknown"
	}
}

// Token is one lexical unit of BBDB database text.
//
// Text carries the unescaped value for strings and the literal spelling for
// atoms and integers. Int carries the parsed value for integer tokens.
// Line and Column are 1-based and anchored to the token's first character.
type Token struct {
	Kind   TokenKind
	Text   string
	Int    int64
	Line   int
	Column int
}

// describe renders the token for "expected X, found Y" diagnostics.
func (t Token) describe() string {
	switch t.Kind {
	case TokenString:
		return "string " + strconv.Quote(t.Text)
	case TokenAtom:
		return "atom " + strconv.Quote(t.Text)
	case TokenInt:
		return "integer " + t.Text
	default:
		return t.Kind.String()
	}
}
