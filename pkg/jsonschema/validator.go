// Package jsonschema validates JSON documents against JSON Schema
package jsonschema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidationErrors represents a collection of validation errors
type ValidationErrors []error

// Error implements the error interface for ValidationErrors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, err := range ve {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Schema is a compiled JSON Schema, safe for concurrent use
type Schema struct {
	name     string
	compiled *jsonschema.Schema
}

// Compile compiles schema text. name is used in error messages only.
// Formats such as date-time are asserted, not just annotated.
func Compile(name, schemaStr string) (*Schema, error) {
	resource := name + ".json"

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	if err := compiler.AddResource(resource, strings.NewReader(schemaStr)); err != nil {
		return nil, fmt.Errorf("invalid schema %s: %w", name, err)
	}

	compiled, err := compiler.Compile(resource)
	if err != nil {
		return nil, fmt.Errorf("invalid schema %s: %w", name, err)
	}

	return &Schema{name: name, compiled: compiled}, nil
}

// Name returns the name the schema was compiled with
func (s *Schema) Name() string {
	return s.name
}

// Validate checks a JSON document and returns every violation found.
// A nil result means the document is valid.
func (s *Schema) Validate(document []byte) ValidationErrors {
	var data interface{}
	if err := json.Unmarshal(document, &data); err != nil {
		return ValidationErrors{fmt.Errorf("invalid JSON: %w", err)}
	}

	err := s.compiled.Validate(data)
	if err == nil {
		return nil
	}

	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) {
		return extractValidationErrors(validationErr)
	}
	return ValidationErrors{err}
}

// extractValidationErrors flattens the leaf causes of a ValidationError
func extractValidationErrors(err *jsonschema.ValidationError) ValidationErrors {
	if len(err.Causes) == 0 {
		location := err.InstanceLocation
		if location == "" {
			location = "/"
		}
		return ValidationErrors{fmt.Errorf("validation error at %s: %s", location, err.Message)}
	}

	var errors ValidationErrors
	for _, cause := range err.Causes {
		errors = append(errors, extractValidationErrors(cause)...)
	}
	return errors
}
