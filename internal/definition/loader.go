// Package definition loads attribute definition documents.
//
// A definition document is a JSON mapping from attribute key to attribute
// metadata. Loading parses the document, validates it against a compiled
// schema, and only then decodes it into the typed model. Parse failures,
// schema violations, and decode failures are distinct, recoverable errors.
package definition

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/dshills/canconfig/internal/attribute"
	"github.com/dshills/canconfig/internal/schema"
)

// stringSource identifies in-memory documents in error messages.
const stringSource = "<string>"

// Loader loads and validates definition documents. The schema is compiled
// once when the Loader is built and reused for every load.
type Loader struct {
	validator *schema.Validator
	logger    *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a loader that validates documents with the given
// validator.
func NewLoader(validator *schema.Validator, opts ...Option) *Loader {
	l := &Loader{validator: validator}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	return l
}

// LoadFile reads, validates, and decodes a definition document from disk.
func (l *Loader) LoadFile(path string) (attribute.Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading definition file: %w", err)
	}
	return l.load(path, data)
}

// LoadString validates and decodes a definition document held in memory.
func (l *Loader) LoadString(data string) (attribute.Set, error) {
	return l.load(stringSource, []byte(data))
}

// load is the single implementation behind both source variants.
func (l *Loader) load(source string, data []byte) (attribute.Set, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}

	if err := l.validator.ValidateSource(source, doc); err != nil {
		return nil, err
	}

	var set attribute.Set
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, &DecodeError{Source: source, Err: err}
	}

	l.logger.Debug("loaded attribute definitions",
		slog.String("source", source),
		slog.Int("attributes", len(set)))
	return set, nil
}
