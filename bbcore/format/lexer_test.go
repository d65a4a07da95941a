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
	"testing"

	"dirpx.dev/bbdb/bbcore/errors"
	"dirpx.dev/bbdb/bbcore/format"
)

// lexAll drains the lexer and returns every token up to and including EOF.
func lexAll(t *testing.T, text string) []format.Token {
	t.Helper()
	lx := format.NewLexer(text)
	var toks []format.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		toks = append(toks, tok)
		if tok.Kind == format.TokenEOF {
			return toks
		}
	}
}

func TestLexer_Kinds(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []format.TokenKind
	}{
		{
			"punctuation",
			"( ) [ ] .",
			[]format.TokenKind{
				format.TokenLParen, format.TokenRParen,
				format.TokenLBracket, format.TokenRBracket,
				format.TokenDot, format.TokenEOF,
			},
		},
		{
			"words",
			`nil spouse 555 "text"`,
			[]format.TokenKind{
				format.TokenNil, format.TokenAtom,
				format.TokenInt, format.TokenString, format.TokenEOF,
			},
		},
		{
			"empty input",
			"",
			[]format.TokenKind{format.TokenEOF},
		},
		{
			"comment only",
			";;; file-version: 6",
			[]format.TokenKind{format.TokenEOF},
		},
		{
			"comment between tokens",
			"nil ; trailing comment\nnil",
			[]format.TokenKind{format.TokenNil, format.TokenNil, format.TokenEOF},
		},
		{
			"no whitespace between punctuation",
			`["Fred"(555)]`,
			[]format.TokenKind{
				format.TokenLBracket, format.TokenString,
				format.TokenLParen, format.TokenInt, format.TokenRParen,
				format.TokenRBracket, format.TokenEOF,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := lexAll(t, tt.text)
			if len(toks) != len(tt.want) {
				t.Fatalf("got %d tokens, want %d", len(toks), len(tt.want))
			}
			for i, tok := range toks {
				if tok.Kind != tt.want[i] {
					t.Errorf("token %d = %v, want %v", i, tok.Kind, tt.want[i])
				}
			}
		})
	}
}

func TestLexer_StringEscapes(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain", `"Fred"`, "Fred"},
		{"empty", `""`, ""},
		{"escaped quote", `"\"Yabba dabba doo!\""`, `"Yabba dabba doo!"`},
		{"literal backslash", `"C:\temp"`, `C:\temp`},
		{"semicolon inside string", `"not; a comment"`, "not; a comment"},
		{"unicode", `"Ms. Grüße"`, "Ms. Grüße"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx := format.NewLexer(tt.text)
			tok, err := lx.Next()
			if err != nil {
				t.Fatalf("Next() error = %v", err)
			}
			if tok.Kind != format.TokenString {
				t.Fatalf("Kind = %v, want %v", tok.Kind, format.TokenString)
			}
			if tok.Text != tt.want {
				t.Errorf("Text = %q, want %q", tok.Text, tt.want)
			}
		})
	}
}

func TestLexer_Integers(t *testing.T) {
	lx := format.NewLexer("555 1234 0")
	wants := []int64{555, 1234, 0}
	for _, want := range wants {
		tok, err := lx.Next()
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if tok.Kind != format.TokenInt {
			t.Fatalf("Kind = %v, want %v", tok.Kind, format.TokenInt)
		}
		if tok.Int != want {
			t.Errorf("Int = %d, want %d", tok.Int, want)
		}
	}
}

func TestLexer_AtomWithDigitsAndHyphens(t *testing.T) {
	lx := format.NewLexer("mail-alias x509")
	for _, want := range []string{"mail-alias", "x509"} {
		tok, err := lx.Next()
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if tok.Kind != format.TokenAtom {
			t.Fatalf("Kind = %v, want %v", tok.Kind, format.TokenAtom)
		}
		if tok.Text != want {
			t.Errorf("Text = %q, want %q", tok.Text, want)
		}
	}
}

func TestLexer_Positions(t *testing.T) {
	lx := format.NewLexer(";; header\n[\"Fred\" nil]")
	tok, err := lx.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if tok.Line != 2 || tok.Column != 1 {
		t.Errorf("bracket at line %d column %d, want line 2 column 1", tok.Line, tok.Column)
	}
	tok, err = lx.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if tok.Line != 2 || tok.Column != 2 {
		t.Errorf("string at line %d column %d, want line 2 column 2", tok.Line, tok.Column)
	}
}

func TestLexer_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"unterminated string at EOF", `"Fred`},
		{"unterminated string at newline", "\"Fred\nnil"},
		{"unexpected character", "{"},
		{"integer overflow", "99999999999999999999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx := format.NewLexer(tt.text)
			_, err := lx.Next()
			if err == nil {
				t.Fatal("Next() error = nil, want SyntaxError")
			}
			var syntaxErr *errors.SyntaxError
			if !stderrors.As(err, &syntaxErr) {
				t.Errorf("error type = %T, want *errors.SyntaxError", err)
			}
		})
	}
}

func TestLexer_EOFIsSticky(t *testing.T) {
	lx := format.NewLexer("nil")
	if _, err := lx.Next(); err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		tok, err := lx.Next()
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if tok.Kind != format.TokenEOF {
			t.Errorf("Kind = %v, want %v", tok.Kind, format.TokenEOF)
		}
	}
}
