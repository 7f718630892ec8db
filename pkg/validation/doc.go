// Package validation checks live ARM requests and recorded responses against
// the Swagger declarations of an operation.
//
// Parameter validation covers the declared path, query and header parameters:
// presence of required ones, declared scalar type, pattern and enum. Bodies
// and example responses are validated with JSON Schema (draft 4, which
// Swagger 2.0 schemas are a dialect of) after Swagger-only keywords are
// translated or dropped.
//
// Failures are collected in a Result of FieldErrors rather than stopping at
// the first one:
//
//	result, err := validation.ValidateParameters(op, params)
//	if err != nil {
//	    return err
//	}
//	if !result.Valid {
//	    return validation.NewRequestError(result)
//	}
package validation
