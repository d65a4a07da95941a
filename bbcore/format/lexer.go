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
	"strconv"
	"strings"

	"dirpx.dev/bbdb/bbcore/errors"
)

// Lexer turns BBDB database text into a lazy sequence of tokens.
//
// The lexer skips whitespace and comments. A semicolon starts a comment
// running to the end of the line; comment lines never reach the grammar as
// data tokens, but the property extractor scans them separately before
// parsing (see ScanProperties).
//
// Call Next repeatedly; it returns a TokenEOF token once the input is
// exhausted and keeps returning it thereafter. A Lexer is single-use and
// not safe for concurrent access.
type Lexer struct {
	input string
	pos   int
	line  int
	col   int
}

// NewLexer returns a Lexer over text positioned at line 1, column 1.
func NewLexer(text string) *Lexer {
	return &Lexer{input: text, line: 1, col: 1}
}

// advance consumes one byte, maintaining the line and column counters.
// The token alphabet is ASCII; multibyte runes only occur inside quoted
// strings and comments, where columns are byte-based like the rest of the
// diagnostics.
func (lx *Lexer) advance() byte {
	c := lx.input[lx.pos]
	lx.pos++
	if c == '\n' {
		lx.line++
		lx.col = 1
	} else {
		lx.col++
	}
	return c
}

func (lx *Lexer) eof() bool {
	return lx.pos >= len(lx.input)
}

// skip consumes whitespace and comments until the next token or EOF.
func (lx *Lexer) skip() {
	for !lx.eof() {
		switch lx.input[lx.pos] {
		case ' ', '\t', '\v', '\f', '\r', '\n':
			lx.advance()
		case ';':
			for !lx.eof() && lx.input[lx.pos] != '\n' {
				lx.advance()
			}
		default:
			return
		}
	}
}

func isAtomChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == '-'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Next returns the next token. On a lexical failure (unterminated string,
// unexpected character, integer overflow) it returns a SyntaxError carrying
// the position of the offending token.
func (lx *Lexer) Next() (Token, error) {
	lx.skip()

	tok := Token{Line: lx.line, Column: lx.col}
	if lx.eof() {
		tok.Kind = TokenEOF
		return tok, nil
	}

	switch c := lx.input[lx.pos]; {
	case c == '(':
		lx.advance()
		tok.Kind = TokenLParen
		return tok, nil
	case c == ')':
		lx.advance()
		tok.Kind = TokenRParen
		return tok, nil
	case c == '[':
		lx.advance()
		tok.Kind = TokenLBracket
		return tok, nil
	case c == ']':
		lx.advance()
		tok.Kind = TokenRBracket
		return tok, nil
	case c == '.':
		lx.advance()
		tok.Kind = TokenDot
		return tok, nil
	case c == '"':
		return lx.lexString(tok)
	case isAtomChar(c):
		return lx.lexWord(tok)
	default:
		return tok, &errors.SyntaxError{
			Line:   tok.Line,
			Column: tok.Column,
			Reason: "unexpected character " + strconv.QuoteRune(rune(c)),
		}
	}
}

// lexString scans a quoted string starting at the opening quote. The only
// escape is `\"` for an embedded quote; a backslash before any other
// character is literal. Strings cannot span lines: records live on one
// line, so a newline before the closing quote means the string is
// unterminated.
func (lx *Lexer) lexString(tok Token) (Token, error) {
	lx.advance() // opening quote

	var b strings.Builder
	for !lx.eof() {
		c := lx.input[lx.pos]
		if c == '\n' {
			break
		}
		lx.advance()
		switch {
		case c == '"':
			tok.Kind = TokenString
			tok.Text = b.String()
			return tok, nil
		case c == '\\' && !lx.eof() && lx.input[lx.pos] == '"':
			lx.advance()
			b.WriteByte('"')
		default:
			b.WriteByte(c)
		}
	}

	return tok, &errors.SyntaxError{
		Line:   tok.Line,
		Column: tok.Column,
		Reason: "unterminated string",
	}
}

// lexWord scans a run of atom characters and classifies it: all digits is
// an integer, the nil keyword is TokenNil, anything else is an atom.
func (lx *Lexer) lexWord(tok Token) (Token, error) {
	start := lx.pos
	digitsOnly := true
	for !lx.eof() && isAtomChar(lx.input[lx.pos]) {
		if !isDigit(lx.input[lx.pos]) {
			digitsOnly = false
		}
		lx.advance()
	}
	word := lx.input[start:lx.pos]

	switch {
	case word == "nil":
		tok.Kind = TokenNil
		tok.Text = word
	case digitsOnly:
		n, err := strconv.ParseInt(word, 10, 64)
		if err != nil {
			return tok, &errors.SyntaxError{
				Line:   tok.Line,
				Column: tok.Column,
				Reason: "integer " + word + " overflows 64 bits",
			}
		}
		tok.Kind = TokenInt
		tok.Text = word
		tok.Int = n
	default:
		tok.Kind = TokenAtom
		tok.Text = word
	}
	return tok, nil
}
