// Package valuestore reads and writes the flat key=value file holding the
// current values of all attributes.
//
// The file is INI-shaped. Device values live in the unnamed section at the
// top of the file; named sections (for example [network] on the CANPi) belong
// to other services and are read past on load and preserved untouched on
// write. Which section this package consults is an explicit option, with the
// unnamed section as the documented default.
package valuestore

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"gopkg.in/ini.v1"

	"github.com/dshills/canconfig/internal/attribute"
	"github.com/dshills/canconfig/internal/backup"
)

// ErrNotExist reports that the value-store file is absent. Callers wanting
// "no prior values, use defaults" semantics test for it with errors.Is and
// skip reconciliation.
var ErrNotExist = errors.New("value store file does not exist")

// Store reads and writes one value-store file layout.
type Store struct {
	section string
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithSection selects a named section instead of the unnamed default
// section.
func WithSection(name string) Option {
	return func(s *Store) {
		s.section = name
	}
}

// WithLogger sets the logger used for reconciliation diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates a Store. With no options it targets the unnamed section and
// logs through slog.Default.
func New(opts ...Option) *Store {
	s := &Store{section: ini.DefaultSection}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.section == "" {
		s.section = ini.DefaultSection
	}
	return s
}

// Reconcile overlays the values found at path onto set. For every key in the
// consulted section that also exists in set, the entry's Current is replaced
// with the stored value; all other fields are preserved. Keys absent from
// set are returned as diagnostics and logged, never fatal. The set is
// mutated in place.
//
// A missing file satisfies errors.Is(err, ErrNotExist).
func (s *Store) Reconcile(set attribute.Set, path string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotExist, path)
		}
		return nil, fmt.Errorf("stat value store: %w", err)
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	var unknown []string
	for _, key := range cfg.Section(s.section).Keys() {
		attr, ok := set[key.Name()]
		if !ok {
			unknown = append(unknown, key.Name())
			s.logger.Warn("value store key has no attribute definition",
				slog.String("key", key.Name()),
				slog.String("path", path))
			continue
		}
		attr.Current = key.Value()
		set[key.Name()] = attr
	}
	return unknown, nil
}

// Write serializes every attribute's current value to path as key=value
// lines in the configured section, in sorted key order. Sections other than
// the configured one survive unchanged when the file already exists.
//
// With makeBackup set, any pre-existing file is first copied aside with a
// timestamp suffix; backup failure is logged and the write proceeds.
func (s *Store) Write(set attribute.Set, path string, makeBackup bool) error {
	exists := true
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat value store: %w", err)
		}
		exists = false
	}

	if makeBackup && exists {
		if bak, err := backup.Timestamped(path); err != nil {
			s.logger.Warn("value store backup failed",
				slog.String("path", path),
				slog.String("error", err.Error()))
		} else {
			s.logger.Debug("value store backed up", slog.String("backup", bak))
		}
	}

	cfg := ini.Empty()
	if exists {
		loaded, err := ini.Load(path)
		if err != nil {
			return &ParseError{Path: path, Err: err}
		}
		cfg = loaded
	}

	section := cfg.Section(s.section)
	for _, k := range set.Keys() {
		section.Key(k).SetValue(set[k].Current)
	}

	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("writing value store: %w", err)
	}
	return nil
}
