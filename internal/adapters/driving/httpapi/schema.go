package httpapi

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed diff_request.schema.json
var diffRequestSchema []byte

var (
	diffSchemaOnce sync.Once
	diffSchema     *jsonschema.Schema
	diffSchemaErr  error
)

// compiledDiffSchema compiles the embedded diff request schema once.
func compiledDiffSchema() (*jsonschema.Schema, error) {
	diffSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("diff_request.schema.json", bytes.NewReader(diffRequestSchema)); err != nil {
			diffSchemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		diffSchema, diffSchemaErr = compiler.Compile("diff_request.schema.json")
	})
	return diffSchema, diffSchemaErr
}

// validateDiffRequest checks a decoded request body against the schema.
func validateDiffRequest(v any) error {
	schema, err := compiledDiffSchema()
	if err != nil {
		return err
	}
	return schema.Validate(v)
}
