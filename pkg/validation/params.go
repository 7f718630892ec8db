package validation

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/getmockd/armmock/pkg/swagger"
)

var patternCache sync.Map

// ValidateParameters checks the declared non-body parameters of op against
// the values bound from a request. values holds coerced values as produced by
// example.GenExampleParameters; a declared parameter missing from values was
// absent from the request.
func ValidateParameters(op *swagger.Operation, values map[string]any) (*Result, error) {
	declared, err := op.Parameters()
	if err != nil {
		return nil, err
	}

	result := NewResult()
	for _, p := range declared {
		if p.In == swagger.InBody || p.In == swagger.InFormData {
			continue
		}
		value, ok := values[p.Name]
		if !ok {
			if p.Required {
				result.AddError(NewRequiredError(p.Name, p.In))
			}
			continue
		}
		validateParameter(p, value, result)
	}
	return result, nil
}

func validateParameter(p *swagger.Parameter, value any, result *Result) {
	if !matchesType(p.Type, value) {
		result.AddError(NewTypeError(p.Name, p.In, p.Type, value))
		return
	}
	if s, ok := value.(string); ok && p.Pattern != "" {
		if re := compilePattern(p.Pattern); re != nil && !re.MatchString(s) {
			result.AddError(NewPatternError(p.Name, p.In, p.Pattern, s))
		}
	}
	if len(p.Enum) > 0 && !inEnum(p.Enum, value) {
		result.AddError(NewEnumError(p.Name, p.In, p.Enum, value))
	}
}

// matchesType reports whether a coerced value has the declared type. Values
// that failed coercion are still strings.
func matchesType(typ string, value any) bool {
	switch typ {
	case "integer", "number":
		_, ok := value.(float64)
		return ok
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "array":
		_, ok := value.([]any)
		return ok
	default:
		return true
	}
}

func inEnum(enum []any, value any) bool {
	for _, allowed := range enum {
		if fmt.Sprint(allowed) == fmt.Sprint(value) {
			return true
		}
	}
	return false
}

func compilePattern(pattern string) *regexp.Regexp {
	if re, ok := patternCache.Load(pattern); ok {
		return re.(*regexp.Regexp)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil
	}
	patternCache.Store(pattern, re)
	return re
}

// ValidateBody checks the request body against the declared body parameter.
func (v *SchemaValidator) ValidateBody(op *swagger.Operation, body any) (*Result, error) {
	declared, err := op.Parameters()
	if err != nil {
		return nil, err
	}
	result := NewResult()
	for _, p := range declared {
		if p.In != swagger.InBody {
			continue
		}
		if body == nil {
			if p.Required {
				result.AddError(NewRequiredError(p.Name, LocationBody))
			}
			continue
		}
		result.Merge(v.Validate(op.File.Path+"#"+op.Method+" "+op.Path+"#body", p.Schema, body, LocationBody))
	}
	return result, nil
}

// ValidateResponse checks a response body against the schema declared for
// the status code. Undeclared statuses fall back to the default response.
func (v *SchemaValidator) ValidateResponse(op *swagger.Operation, status string, body any) (*Result, error) {
	declared := status
	if _, ok := op.Spec.Responses[status]; !ok {
		declared = "default"
	}
	schema, err := op.ResponseSchema(declared)
	if err != nil {
		return nil, err
	}
	key := op.File.Path + "#" + op.Method + " " + op.Path + "#" + declared
	return v.Validate(key, schema, body, LocationResponse), nil
}
