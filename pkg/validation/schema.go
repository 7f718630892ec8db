package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaValidator compiles Swagger schemas to JSON Schema validators and
// caches them by key.
type SchemaValidator struct {
	mu       sync.Mutex
	compiled map[string]*jsonschema.Schema
	failed   map[string]error
}

// NewSchemaValidator creates an empty validator cache.
func NewSchemaValidator() *SchemaValidator {
	return &SchemaValidator{
		compiled: make(map[string]*jsonschema.Schema),
		failed:   make(map[string]error),
	}
}

// Validate checks value against schema. key identifies the schema in the
// cache; an empty key disables caching. location labels the errors.
func (v *SchemaValidator) Validate(key string, schema map[string]any, value any, location string) *Result {
	result := NewResult()
	if schema == nil {
		return result
	}

	compiled, err := v.compile(key, schema)
	if err != nil {
		result.AddError(NewSchemaError("", location, fmt.Sprintf("schema compilation error: %v", err)))
		return result
	}

	if err := compiled.Validate(value); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			parseSchemaErrors(validationErr, location, result)
		} else {
			result.AddError(NewSchemaError("", location, err.Error()))
		}
	}
	return result
}

func (v *SchemaValidator) compile(key string, schema map[string]any) (*jsonschema.Schema, error) {
	if key != "" {
		v.mu.Lock()
		s, ok := v.compiled[key]
		failure := v.failed[key]
		v.mu.Unlock()
		if ok {
			return s, nil
		}
		if failure != nil {
			return nil, failure
		}
	}

	data, err := json.Marshal(Draft4(schema))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft4
	if err := compiler.AddResource("schema.json", strings.NewReader(string(data))); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	s, err := compiler.Compile("schema.json")

	if key != "" {
		v.mu.Lock()
		if err != nil {
			v.failed[key] = err
		} else {
			v.compiled[key] = s
		}
		v.mu.Unlock()
	}
	return s, err
}

// parseSchemaErrors flattens the leaf causes of a validation error.
func parseSchemaErrors(err *jsonschema.ValidationError, location string, result *Result) {
	if len(err.Causes) == 0 {
		result.AddError(NewSchemaError(extractFieldFromPath(err.InstanceLocation), location, err.Message))
		return
	}
	for _, cause := range err.Causes {
		parseSchemaErrors(cause, location, result)
	}
}

// extractFieldFromPath converts a JSON pointer to dot notation.
func extractFieldFromPath(path string) string {
	if path == "" || path == "/" {
		return ""
	}
	path = strings.TrimPrefix(path, "/")
	return strings.ReplaceAll(path, "/", ".")
}

// Draft4 returns a copy of a Swagger 2.0 schema that draft 4 accepts:
// x-nullable widens the type with null, extensible enums (x-ms-enum
// modelAsString) lose their enum, and Swagger-only keywords and formats are
// dropped.
func Draft4(schema map[string]any) map[string]any {
	out, _ := draft4(schema, false).(map[string]any)
	return out
}

func draft4(v any, names bool) any {
	switch node := v.(type) {
	case map[string]any:
		if names {
			out := make(map[string]any, len(node))
			for k, child := range node {
				out[k] = draft4(child, false)
			}
			return out
		}
		return draft4Schema(node)
	case []any:
		out := make([]any, len(node))
		for i, child := range node {
			out[i] = draft4(child, false)
		}
		return out
	default:
		return v
	}
}

func draft4Schema(node map[string]any) map[string]any {
	out := make(map[string]any, len(node))
	for k, child := range node {
		switch {
		case k == "discriminator", k == "format", k == "example", k == "readOnly", k == "externalDocs":
			continue
		case strings.HasPrefix(k, "x-"):
			continue
		case k == "required":
			if _, ok := child.([]any); !ok {
				continue
			}
			out[k] = child
		case k == "type":
			if child == "file" {
				continue
			}
			out[k] = child
		case k == "enum", k == "default":
			out[k] = child
		case k == "properties", k == "definitions", k == "patternProperties":
			out[k] = draft4(child, true)
		default:
			out[k] = draft4(child, false)
		}
	}

	if nullable, _ := node["x-nullable"].(bool); nullable {
		if t, ok := out["type"].(string); ok {
			out["type"] = []any{t, "null"}
		}
		if enum, ok := out["enum"].([]any); ok {
			out["enum"] = append(append([]any(nil), enum...), nil)
		}
	}
	if ext, ok := node["x-ms-enum"].(map[string]any); ok {
		if modelAsString, _ := ext["modelAsString"].(bool); modelAsString {
			delete(out, "enum")
		}
	}
	return out
}
