package valuestore

import "fmt"

// ParseError indicates the value-store file exists but could not be parsed.
type ParseError struct {
	// Path is the file that failed to parse.
	Path string
	// Err is the underlying parser error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing value store %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
