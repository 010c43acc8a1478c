package config

import (
	"fmt"
	"log/slog"

	"github.com/dshills/canconfig/internal/attribute"
	"github.com/dshills/canconfig/internal/definition"
	"github.com/dshills/canconfig/internal/schema"
	"github.com/dshills/canconfig/internal/valuestore"
)

// Config is the owning structure for all attribute state. The zero state is
// uninitialized; LoadConfiguration or LoadDefaults initializes it.
type Config struct {
	loader *definition.Loader
	store  *valuestore.Store
	logger *slog.Logger

	validator *schema.Validator
	section   string

	// attrs is nil until a load succeeds.
	attrs attribute.Set

	// unrecognized holds the value-store keys with no matching definition
	// from the most recent reconciliation.
	unrecognized []string
}

// Option configures a Config.
type Option func(*Config)

// WithValidator overrides the embedded definition schema.
func WithValidator(v *schema.Validator) Option {
	return func(c *Config) {
		c.validator = v
	}
}

// WithSection selects a named value-store section instead of the unnamed
// default section.
func WithSection(name string) Option {
	return func(c *Config) {
		c.section = name
	}
}

// WithLogger sets the logger for the whole pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.logger = logger
	}
}

// New creates an uninitialized Config. It fails only if the embedded
// definition schema cannot be compiled, which means the binary itself is
// broken.
func New(opts ...Option) (*Config, error) {
	c := &Config{}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.validator == nil {
		v, err := schema.LoadEmbedded()
		if err != nil {
			return nil, err
		}
		c.validator = v
	}

	c.loader = definition.NewLoader(c.validator, definition.WithLogger(c.logger))

	storeOpts := []valuestore.Option{valuestore.WithLogger(c.logger)}
	if c.section != "" {
		storeOpts = append(storeOpts, valuestore.WithSection(c.section))
	}
	c.store = valuestore.New(storeOpts...)

	return c, nil
}

// Loaded reports whether a load has succeeded.
func (c *Config) Loaded() bool {
	return c.attrs != nil
}

// LoadConfiguration loads the definition document at defnPath, then overlays
// the current values found in the value-store at cfgPath. On success the
// Config is initialized. A missing value-store file fails with
// valuestore.ErrNotExist; callers that want to run on defaults instead use
// LoadDefaults.
func (c *Config) LoadConfiguration(defnPath, cfgPath string) error {
	set, err := c.loader.LoadFile(defnPath)
	if err != nil {
		return err
	}

	unknown, err := c.store.Reconcile(set, cfgPath)
	if err != nil {
		return err
	}

	c.attrs = set
	c.unrecognized = unknown
	return nil
}

// LoadDefaults loads the definition document alone, leaving every
// attribute's current value as defined. On success the Config is
// initialized.
func (c *Config) LoadDefaults(defnPath string) error {
	set, err := c.loader.LoadFile(defnPath)
	if err != nil {
		return err
	}
	c.attrs = set
	c.unrecognized = nil
	return nil
}

// Reconcile overlays the value-store at cfgPath onto the loaded attributes.
// Reconciling the same file again is idempotent.
func (c *Config) Reconcile(cfgPath string) error {
	if c.attrs == nil {
		return fmt.Errorf("%w: reconcile requires a loaded configuration", ErrNotInitialized)
	}
	unknown, err := c.store.Reconcile(c.attrs, cfgPath)
	if err != nil {
		return err
	}
	c.unrecognized = unknown
	return nil
}

// Unrecognized returns the value-store keys from the most recent
// reconciliation that had no matching attribute definition.
func (c *Config) Unrecognized() []string {
	return c.unrecognized
}

// Attribute returns the attribute stored under key. Absence is a normal
// outcome, reported by the second return value.
func (c *Config) Attribute(key string) (attribute.Attribute, bool) {
	a, ok := c.attrs[key]
	return a, ok
}

// SetAttribute overwrites or inserts the full definition stored under key.
// It fails only when no configuration has been loaded; inserting a
// previously absent key succeeds.
func (c *Config) SetAttribute(key string, a attribute.Attribute) error {
	if c.attrs == nil {
		return fmt.Errorf("%w: set %q", ErrNotInitialized, key)
	}
	c.attrs[key] = a
	return nil
}

// SetCurrent replaces only the current value of the attribute under key,
// leaving the rest of its definition intact.
func (c *Config) SetCurrent(key, value string) error {
	if c.attrs == nil {
		return fmt.Errorf("%w: set %q", ErrNotInitialized, key)
	}
	a, ok := c.attrs[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAttribute, key)
	}
	a.Current = value
	c.attrs[key] = a
	return nil
}

// Attributes returns a new set holding only the attributes with the given
// behaviour.
func (c *Config) Attributes(b attribute.Behaviour) attribute.Set {
	return c.attrs.FilterByBehaviour(b)
}

// All returns a copy of the full attribute set.
func (c *Config) All() attribute.Set {
	return c.attrs.Clone()
}

// Write serializes every attribute's current value to the value-store at
// path. With makeBackup set, any existing file is copied aside first; a
// failed backup is logged and the write proceeds.
func (c *Config) Write(path string, makeBackup bool) error {
	if c.attrs == nil {
		return fmt.Errorf("%w: write requires a loaded configuration", ErrNotInitialized)
	}
	return c.store.Write(c.attrs, path, makeBackup)
}
