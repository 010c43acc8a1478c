// Package schema validates attribute definition documents against a JSON
// Schema before they are decoded into the typed model.
//
// A schema is compiled once into a Validator and reused for every
// validation. The canonical definition schema ships embedded in the binary;
// deployments with custom definition formats may compile their own.
package schema

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed canconfig.schema.json
var schemaFS embed.FS

const embeddedName = "canconfig.schema.json"

// Validator holds a compiled schema and checks documents against it.
type Validator struct {
	name   string
	schema *jsonschema.Schema
}

// Compile reads and compiles a schema file. Compilation failure means the
// deployed schema artifact is broken and is returned as a *CompileError.
func Compile(path string) (*Validator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema file: %w", err)
	}
	return CompileString(path, string(data))
}

// CompileString compiles a schema held in memory. The name identifies the
// schema in error messages.
func CompileString(name, doc string) (*Validator, error) {
	sch, err := jsonschema.CompileString(name, doc)
	if err != nil {
		return nil, &CompileError{Name: name, Err: err}
	}
	return &Validator{name: name, schema: sch}, nil
}

var (
	embeddedOnce sync.Once
	embeddedVal  *Validator
	embeddedErr  error
)

// LoadEmbedded compiles the embedded definition schema. The result is cached
// for the process lifetime.
func LoadEmbedded() (*Validator, error) {
	embeddedOnce.Do(func() {
		data, err := schemaFS.ReadFile(embeddedName)
		if err != nil {
			embeddedErr = fmt.Errorf("reading embedded schema: %w", err)
			return
		}
		embeddedVal, embeddedErr = CompileString(embeddedName, string(data))
	})
	return embeddedVal, embeddedErr
}

// Name returns the identity of the compiled schema.
func (v *Validator) Name() string {
	return v.name
}

// Validate checks a decoded JSON document against the schema. doc must be
// the generic form produced by json.Unmarshal into any.
func (v *Validator) Validate(doc any) error {
	return v.ValidateSource("<document>", doc)
}

// ValidateSource is Validate with an explicit document identity (typically a
// file path) carried into any resulting *ViolationError.
func (v *Validator) ValidateSource(source string, doc any) error {
	err := v.schema.Validate(doc)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if errors.As(err, &ve) {
		return &ViolationError{
			Source:     source,
			Schema:     v.name,
			Violations: flatten(ve),
		}
	}
	return fmt.Errorf("validating %s: %w", source, err)
}

// flatten collects the leaf causes of a validation error, each carrying the
// instance location within the document.
func flatten(ve *jsonschema.ValidationError) []Violation {
	if len(ve.Causes) == 0 {
		return []Violation{{Path: ve.InstanceLocation, Message: ve.Message}}
	}
	var out []Violation
	for _, cause := range ve.Causes {
		out = append(out, flatten(cause)...)
	}
	return out
}
