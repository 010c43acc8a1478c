package schema

import (
	"fmt"
	"strings"
)

// CompileError indicates the schema document itself could not be compiled.
// The schema is a deploy-time artifact, so this is a configuration error of
// the installation rather than of user input.
type CompileError struct {
	// Name identifies the schema source (file path or resource name).
	Name string
	// Err is the underlying compiler error.
	Err error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return fmt.Sprintf("compiling schema %s: %v", e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Err
}

// Violation is one schema violation within a document.
type Violation struct {
	// Path is the JSON pointer to the offending value ("" is the root).
	Path string
	// Message describes the violation.
	Message string
}

// String renders the violation as "path: message".
func (v Violation) String() string {
	if v.Path == "" {
		return v.Message
	}
	return v.Path + ": " + v.Message
}

// ViolationError reports that a well-formed document failed schema
// validation. It carries the document's identity when available.
type ViolationError struct {
	// Source identifies the failing document (file path or "<document>").
	Source string
	// Schema identifies the schema the document was checked against.
	Schema string
	// Violations lists the individual failures.
	Violations []Violation
}

// Error implements the error interface.
func (e *ViolationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s does not conform to schema %s", e.Source, e.Schema)
	for _, v := range e.Violations {
		b.WriteString("\n\t")
		b.WriteString(v.String())
	}
	return b.String()
}
