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
	"go.uber.org/zap"

	"dirpx.dev/bbdb/bbcore/errors"
	"dirpx.dev/bbdb/bbcore/model/contact"
)

// Option configures a Parse or ParseAll invocation.
type Option func(*parseConfig)

type parseConfig struct {
	versionHint int
	hasHint     bool
	strict      bool
	logger      *zap.Logger
}

// WithVersionHint sets the file format version assumed when the text
// declares none. Without a hint, undeclared files parse with the oldest
// grammar.
func WithVersionHint(version int) Option {
	return func(c *parseConfig) {
		c.versionHint = version
		c.hasHint = true
	}
}

// WithStrictVersion makes parsing fail with an UnsupportedVersionError
// when the effective version has no registered grammar, instead of
// falling back to the oldest one.
func WithStrictVersion() Option {
	return func(c *parseConfig) {
		c.strict = true
	}
}

// WithLogger sets the logger that receives one warn entry per
// consistency warning. The default is a no-op logger; parsing itself
// never logs errors, it returns them.
func WithLogger(logger *zap.Logger) Option {
	return func(c *parseConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// ParseResult is the full outcome of a successful parse: the database and
// any consistency warnings raised while building it.
type ParseResult struct {
	Database *contact.Database

	// Warnings lists duplicate-tag resolutions in input order. They are
	// advisory; the database already reflects the last-value-wins
	// outcome.
	Warnings []*errors.ConsistencyWarning
}

// Parse reads a complete database file from text. It extracts the file
// properties from comment lines, selects the grammar for the effective
// version, and parses every record. Parsing is all or nothing: any
// malformed expression fails the whole invocation.
//
// Callers that need the consistency warnings should use ParseAll.
func Parse(text string, opts ...Option) (*contact.Database, error) {
	res, err := ParseAll(text, opts...)
	if err != nil {
		return nil, err
	}
	return res.Database, nil
}

// ParseAll is Parse with the consistency warnings included in the result.
func ParseAll(text string, opts ...Option) (*ParseResult, error) {
	cfg := parseConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	props := ScanProperties(text)

	version := OldestVersion
	switch {
	case props.HasVersion:
		version = props.Version
	case cfg.hasHint:
		version = cfg.versionHint
	}

	var grammar *Grammar
	if cfg.strict {
		g, err := StrictGrammarFor(version)
		if err != nil {
			return nil, err
		}
		grammar = g
	} else {
		grammar = GrammarFor(version)
	}

	records, warnings, err := grammar.ParseRecords(text)
	if err != nil {
		return nil, err
	}

	db := contact.NewDatabase()
	db.Version = version
	if props.Coding != "" {
		db.Coding = props.Coding
	}
	db.UserFields = props.UserFields
	db.Records = records
	db.RegisterFieldTags()

	for _, w := range warnings {
		cfg.logger.Warn("duplicate tag",
			zap.String("kind", w.Kind),
			zap.String("tag", w.Tag),
			zap.Int("line", w.Line),
		)
	}

	return &ParseResult{Database: db, Warnings: warnings}, nil
}
