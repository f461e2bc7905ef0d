// Package validator checks emitted fact tables against an embedded CUE
// schema before they are written out.
package validator

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaSource string

// Validator holds a compiled schema.
type Validator struct {
	schema cue.Value
}

// New compiles the embedded schema.
func New() (*Validator, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource)
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// ValidateJSON checks a JSON document against the schema and returns a
// descriptive error on any violation.
func (v *Validator) ValidateJSON(data []byte) error {
	ctx := v.schema.Context()
	value := ctx.CompileBytes(data)
	if err := value.Err(); err != nil {
		return fmt.Errorf("parsing document: %w", err)
	}

	unified := v.schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema validation: %s", errors.Details(err, nil))
	}
	return nil
}
