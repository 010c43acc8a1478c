package definition

import "fmt"

// ParseError indicates a definition document is not well-formed JSON.
type ParseError struct {
	// Source identifies the failing document (file path or "<string>").
	Source string
	// Err is the underlying parse error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing definition document %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// DecodeError indicates a schema-valid document could not be decoded into
// the typed attribute model. This points at a mismatch between the deployed
// schema and the model, not at user input.
type DecodeError struct {
	// Source identifies the failing document.
	Source string
	// Err is the underlying decode error.
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding definition document %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}
