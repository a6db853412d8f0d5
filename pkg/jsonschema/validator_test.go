package jsonschema

import (
	"strings"
	"testing"
)

const healthSchema = `{
	"type": "object",
	"required": ["status", "timestamp"],
	"properties": {
		"status": { "const": "healthy" },
		"timestamp": { "type": "string", "format": "date-time" }
	},
	"additionalProperties": false
}`

func TestSchema_ValidateTable(t *testing.T) {
	tests := []struct {
		name                 string
		schema               string
		json                 string
		expectedValid        bool
		expectedCompileError bool
	}{
		{
			name:          "Valid document",
			schema:        healthSchema,
			json:          `{"status": "healthy", "timestamp": "2024-05-06T07:08:09.123Z"}`,
			expectedValid: true,
		},
		{
			name:          "Missing required property",
			schema:        healthSchema,
			json:          `{"status": "healthy"}`,
			expectedValid: false,
		},
		{
			name:          "Wrong constant",
			schema:        healthSchema,
			json:          `{"status": "degraded", "timestamp": "2024-05-06T07:08:09.123Z"}`,
			expectedValid: false,
		},
		{
			name:          "Invalid date-time format",
			schema:        healthSchema,
			json:          `{"status": "healthy", "timestamp": "yesterday"}`,
			expectedValid: false,
		},
		{
			name:                 "Invalid schema",
			schema:               `{"type": "object", "properties": {"id": {"type": "invalid-type"}}}`,
			json:                 `{"id": 1}`,
			expectedCompileError: true,
		},
		{
			name:          "Invalid JSON",
			schema:        healthSchema,
			json:          `{"status": `,
			expectedValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, err := Compile("health", tt.schema)
			if tt.expectedCompileError {
				if err == nil {
					t.Error("Expected a compile error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			valid := len(schema.Validate([]byte(tt.json))) == 0
			if valid != tt.expectedValid {
				t.Errorf("Expected valid=%v, got %v", tt.expectedValid, valid)
			}
		})
	}
}

func TestSchema_Validate(t *testing.T) {
	schema, err := Compile("health", healthSchema)
	if err != nil {
		t.Fatalf("Error compiling schema: %v", err)
	}

	if schema.Name() != "health" {
		t.Errorf("Expected name health, got %s", schema.Name())
	}

	if errs := schema.Validate([]byte(`{"status":"healthy","timestamp":"2024-01-01T00:00:00.000Z"}`)); errs != nil {
		t.Errorf("Expected no errors, got %v", errs)
	}

	errs := schema.Validate([]byte(`{"status":"down","extra":1}`))
	if len(errs) < 2 {
		t.Fatalf("Expected several errors, got %v", errs)
	}
	if !strings.Contains(errs.Error(), "validation error at") {
		t.Errorf("Unexpected error text: %s", errs.Error())
	}

	errs = schema.Validate([]byte(`not json`))
	if len(errs) != 1 || !strings.Contains(errs[0].Error(), "invalid JSON") {
		t.Errorf("Expected invalid JSON error, got %v", errs)
	}
}

func TestCompile_InvalidSchema(t *testing.T) {
	_, err := Compile("broken", `{"type": 12}`)
	if err == nil {
		t.Fatal("Expected an error compiling an invalid schema")
	}
	if !strings.Contains(err.Error(), "invalid schema broken") {
		t.Errorf("Unexpected error text: %s", err.Error())
	}
}

func TestValidationErrors_Error(t *testing.T) {
	var empty ValidationErrors
	if empty.Error() != "" {
		t.Errorf("Expected empty string, got %q", empty.Error())
	}
}
