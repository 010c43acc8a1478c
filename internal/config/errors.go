package config

import "errors"

// Errors returned by configuration operations.
var (
	// ErrNotInitialized indicates an operation that needs attribute state
	// was called before any configuration was loaded. This is a usage
	// error in the calling code, not a configuration problem.
	ErrNotInitialized = errors.New("configuration not loaded")

	// ErrUnknownAttribute indicates the named attribute has no definition.
	ErrUnknownAttribute = errors.New("unknown attribute")
)
