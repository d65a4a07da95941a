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

	"dirpx.dev/bbdb/bbcore/errors"
	"dirpx.dev/bbdb/bbcore/model/contact"
)

// Grammar parses record expressions for one family of file format
// versions. Grammars are immutable and shared; obtain one through
// GrammarFor or StrictGrammarFor.
type Grammar struct {
	version  int
	extended bool
}

// Version returns the file format version this grammar was registered
// under.
func (g *Grammar) Version() int {
	return g.version
}

// Extended reports whether records carry the affix, uuid, creation and
// timestamp slots.
func (g *Grammar) Extended() bool {
	return g.extended
}

// ParseRecords parses every record expression in text, skipping comment
// lines, and returns the records in file order together with any
// consistency warnings raised while resolving duplicate tags.
func (g *Grammar) ParseRecords(text string) ([]*contact.Record, []*errors.ConsistencyWarning, error) {
	p := &parser{lex: NewLexer(text), extended: g.extended}
	if err := p.next(); err != nil {
		return nil, nil, err
	}

	var records []*contact.Record
	for p.tok.Kind != TokenEOF {
		if p.tok.Kind != TokenLBracket {
			return nil, nil, p.errf("expected record, got %s", p.tok.describe())
		}
		rec, err := p.parseRecord()
		if err != nil {
			return nil, nil, err
		}
		records = append(records, rec)
	}
	return records, p.warnings, nil
}

// parser is a single-lookahead recursive descent parser over the token
// stream. The tok field always holds the next unconsumed token.
type parser struct {
	lex      *Lexer
	tok      Token
	extended bool
	warnings []*errors.ConsistencyWarning
}

func (p *parser) next() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// errf builds a syntax error anchored at the current lookahead token.
func (p *parser) errf(format string, args ...any) error {
	return &errors.SyntaxError{
		Line:   p.tok.Line,
		Column: p.tok.Column,
		Reason: fmt.Sprintf(format, args...),
	}
}

// expect consumes and returns the current token when it has the wanted
// kind, and fails with a syntax error otherwise.
func (p *parser) expect(kind TokenKind) (Token, error) {
	if p.tok.Kind != kind {
		return Token{}, p.errf("expected %s, got %s", kind, p.tok.describe())
	}
	tok := p.tok
	if err := p.next(); err != nil {
		return Token{}, err
	}
	return tok, nil
}

// warn records a duplicate-tag consistency warning. Parsing continues;
// the last value for the tag wins.
func (p *parser) warn(kind, tag string, line int) {
	p.warnings = append(p.warnings, &errors.ConsistencyWarning{
		Kind: kind,
		Tag:  tag,
		Line: line,
	})
}

// parseRecord parses one bracketed record expression. The lookahead must
// be the opening bracket.
func (p *parser) parseRecord() (*contact.Record, error) {
	if _, err := p.expect(TokenLBracket); err != nil {
		return nil, err
	}

	rec := contact.NewRecord("", "")

	// The firstname slot is always a string; only the lastname may be nil.
	nameTok, err := p.expect(TokenString)
	if err != nil {
		return nil, err
	}
	rec.FirstName = nameTok.Text
	if rec.LastName, err = p.parseStringOrNil(); err != nil {
		return nil, err
	}
	if p.extended {
		if rec.Affix, err = p.parseStringList(); err != nil {
			return nil, err
		}
	}
	if rec.AKA, err = p.parseStringList(); err != nil {
		return nil, err
	}
	if rec.Company, err = p.parseStringOrNil(); err != nil {
		return nil, err
	}
	if err = p.parsePhones(rec); err != nil {
		return nil, err
	}
	if err = p.parseAddresses(rec); err != nil {
		return nil, err
	}
	if rec.Net, err = p.parseStringList(); err != nil {
		return nil, err
	}
	if err = p.parseFields(rec); err != nil {
		return nil, err
	}
	if p.extended {
		if rec.UUID, err = p.parseStringOrNil(); err != nil {
			return nil, err
		}
		if rec.Creation, err = p.parseStringOrNil(); err != nil {
			return nil, err
		}
		if rec.Timestamp, err = p.parseStringOrNil(); err != nil {
			return nil, err
		}
	}

	// The cache slot is never populated on disk.
	if p.tok.Kind != TokenNil {
		return nil, p.errf("expected nil cache, got %s", p.tok.describe())
	}
	if err = p.next(); err != nil {
		return nil, err
	}
	if _, err = p.expect(TokenRBracket); err != nil {
		return nil, err
	}
	return rec, nil
}

// parseStringOrNil parses a quoted string or the nil marker, which reads
// as the empty string.
func (p *parser) parseStringOrNil() (string, error) {
	switch p.tok.Kind {
	case TokenNil:
		if err := p.next(); err != nil {
			return "", err
		}
		return "", nil
	case TokenString:
		text := p.tok.Text
		if err := p.next(); err != nil {
			return "", err
		}
		return text, nil
	default:
		return "", p.errf("expected string or nil, got %s", p.tok.describe())
	}
}

// parseStringList parses a parenthesized list of one or more strings, or
// the nil marker for an empty list. An empty pair of parentheses is not
// valid.
func (p *parser) parseStringList() ([]string, error) {
	if p.tok.Kind == TokenNil {
		if err := p.next(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}

	var list []string
	for {
		tok, err := p.expect(TokenString)
		if err != nil {
			return nil, err
		}
		list = append(list, tok.Text)
		if p.tok.Kind == TokenRParen {
			break
		}
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	return list, nil
}

// parsePhones parses the phone slot: nil, or a parenthesized list of one
// or more phone entries. Duplicate tags raise a consistency warning and
// keep the later number.
func (p *parser) parsePhones(rec *contact.Record) error {
	if p.tok.Kind == TokenNil {
		return p.next()
	}
	if _, err := p.expect(TokenLParen); err != nil {
		return err
	}

	for {
		tag, phone, line, err := p.parsePhoneEntry()
		if err != nil {
			return err
		}
		if rec.Phone.Set(tag, phone) {
			p.warn("phone", tag, line)
		}
		if p.tok.Kind == TokenRParen {
			break
		}
	}
	return p.next()
}

// parsePhoneEntry parses one bracketed phone entry. The number is either
// a parenthesized group of integers, a run of bare integers, or a quoted
// string for numbers that do not break into groups.
func (p *parser) parsePhoneEntry() (string, contact.Phone, int, error) {
	var zero contact.Phone

	if _, err := p.expect(TokenLBracket); err != nil {
		return "", zero, 0, err
	}
	tagTok, err := p.expect(TokenString)
	if err != nil {
		return "", zero, 0, err
	}

	var phone contact.Phone
	switch p.tok.Kind {
	case TokenLParen:
		if err := p.next(); err != nil {
			return "", zero, 0, err
		}
		var digits []int64
		for {
			tok, err := p.expect(TokenInt)
			if err != nil {
				return "", zero, 0, err
			}
			digits = append(digits, tok.Int)
			if p.tok.Kind == TokenRParen {
				break
			}
		}
		if err := p.next(); err != nil {
			return "", zero, 0, err
		}
		phone = contact.NewPhoneDigits(digits...)
	case TokenInt:
		var digits []int64
		for p.tok.Kind == TokenInt {
			digits = append(digits, p.tok.Int)
			if err := p.next(); err != nil {
				return "", zero, 0, err
			}
		}
		phone = contact.NewPhoneDigits(digits...)
	case TokenString:
		phone = contact.NewPhoneText(p.tok.Text)
		if err := p.next(); err != nil {
			return "", zero, 0, err
		}
	default:
		return "", zero, 0, p.errf("expected phone number, got %s", p.tok.describe())
	}

	if _, err := p.expect(TokenRBracket); err != nil {
		return "", zero, 0, err
	}
	return tagTok.Text, phone, tagTok.Line, nil
}

// parseAddresses parses the address slot: nil, or a parenthesized list of
// one or more address entries. Duplicate tags raise a consistency warning
// and keep the later address.
func (p *parser) parseAddresses(rec *contact.Record) error {
	if p.tok.Kind == TokenNil {
		return p.next()
	}
	if _, err := p.expect(TokenLParen); err != nil {
		return err
	}

	for {
		tag, addr, line, err := p.parseAddressEntry()
		if err != nil {
			return err
		}
		if rec.Address.Set(tag, addr) {
			p.warn("address", tag, line)
		}
		if p.tok.Kind == TokenRParen {
			break
		}
	}
	return p.next()
}

// parseAddressEntry parses one bracketed address entry: a tag, a location
// list, then the city, state, zipcode and country strings.
func (p *parser) parseAddressEntry() (string, *contact.Address, int, error) {
	if _, err := p.expect(TokenLBracket); err != nil {
		return "", nil, 0, err
	}
	tagTok, err := p.expect(TokenString)
	if err != nil {
		return "", nil, 0, err
	}

	addr := contact.NewAddress()
	if addr.Location, err = p.parseStringList(); err != nil {
		return "", nil, 0, err
	}
	if addr.City, err = p.parseStringOrNil(); err != nil {
		return "", nil, 0, err
	}
	if addr.State, err = p.parseStringOrNil(); err != nil {
		return "", nil, 0, err
	}
	if addr.Zipcode, err = p.parseStringOrNil(); err != nil {
		return "", nil, 0, err
	}
	if addr.Country, err = p.parseStringOrNil(); err != nil {
		return "", nil, 0, err
	}

	if _, err := p.expect(TokenRBracket); err != nil {
		return "", nil, 0, err
	}
	return tagTok.Text, addr, tagTok.Line, nil
}

// parseFields parses the fields slot: nil, or a parenthesized list of one
// or more dotted pairs binding an atom tag to a string value. Duplicate
// tags raise a consistency warning and keep the later value.
func (p *parser) parseFields(rec *contact.Record) error {
	if p.tok.Kind == TokenNil {
		return p.next()
	}
	if _, err := p.expect(TokenLParen); err != nil {
		return err
	}

	for {
		if _, err := p.expect(TokenLParen); err != nil {
			return err
		}
		if p.tok.Kind != TokenAtom && p.tok.Kind != TokenInt {
			return p.errf("expected field tag, got %s", p.tok.describe())
		}
		tag := p.tok.Text
		line := p.tok.Line
		if err := p.next(); err != nil {
			return err
		}
		if _, err := p.expect(TokenDot); err != nil {
			return err
		}
		value, err := p.expect(TokenString)
		if err != nil {
			return err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return err
		}
		if rec.Fields.Set(tag, value.Text) {
			p.warn("field", tag, line)
		}
		if p.tok.Kind == TokenRParen {
			break
		}
	}
	return p.next()
}
