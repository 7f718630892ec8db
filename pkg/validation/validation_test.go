package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/armmock/internal/testspec"
	"github.com/getmockd/armmock/pkg/swagger"
)

func fixtureOperation(t *testing.T, id string) *swagger.Operation {
	t.Helper()
	root := testspec.Write(t)
	f, err := swagger.NewLoader().Load(testspec.Path(root, testspec.SpecPath))
	require.NoError(t, err)
	ops, err := f.Operations()
	require.NoError(t, err)
	for _, op := range ops {
		if op.ID() == id {
			return op
		}
	}
	t.Fatalf("operation %s not found", id)
	return nil
}

func TestValidateParameters(t *testing.T) {
	op := fixtureOperation(t, "Things_ListBySubscription")

	tests := []struct {
		name      string
		values    map[string]any
		wantCodes []string
	}{
		{
			name:   "valid",
			values: map[string]any{"subscriptionId": "sub1", "api-version": "2021-01-01", "$top": float64(5)},
		},
		{
			name:   "optional omitted",
			values: map[string]any{"subscriptionId": "sub1", "api-version": "2021-01-01"},
		},
		{
			name:      "required missing",
			values:    map[string]any{"subscriptionId": "sub1"},
			wantCodes: []string{ErrCodeRequired},
		},
		{
			name:      "wrong type",
			values:    map[string]any{"subscriptionId": "sub1", "api-version": "2021-01-01", "$top": "lots"},
			wantCodes: []string{ErrCodeType},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateParameters(op, tt.values)
			require.NoError(t, err)
			var codes []string
			for _, fe := range result.Errors {
				codes = append(codes, fe.Code)
			}
			assert.Equal(t, tt.wantCodes, codes)
			assert.Equal(t, len(tt.wantCodes) == 0, result.Valid)
		})
	}
}

func TestValidateParametersPattern(t *testing.T) {
	op := fixtureOperation(t, "Things_Get")
	base := map[string]any{"subscriptionId": "sub1", "resourceGroupName": "rg1", "api-version": "2021-01-01"}

	base["thingName"] = "thing1"
	result, err := ValidateParameters(op, base)
	require.NoError(t, err)
	assert.True(t, result.Valid)

	base["thingName"] = "x!"
	result, err = ValidateParameters(op, base)
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, ErrCodePattern, result.Errors[0].Code)
	assert.Equal(t, "path.thingName: must match pattern '^[a-zA-Z0-9-]{3,24}$'", result.Errors[0].Error())
}

func TestValidateBody(t *testing.T) {
	op := fixtureOperation(t, "Things_CreateOrUpdate")
	v := NewSchemaValidator()

	result, err := v.ValidateBody(op, map[string]any{
		"location":   "eastus",
		"properties": map[string]any{"size": float64(2), "provisioningState": "Whatever"},
	})
	require.NoError(t, err)
	assert.True(t, result.Valid, "%v", result.Errors)

	result, err = v.ValidateBody(op, map[string]any{"properties": map[string]any{"size": "big"}})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	fields := map[string]bool{}
	for _, fe := range result.Errors {
		fields[fe.Field] = true
		assert.Equal(t, LocationBody, fe.Location)
	}
	assert.True(t, fields["properties.size"], "%v", result.Errors)

	result, err = v.ValidateBody(op, nil)
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, ErrCodeRequired, result.Errors[0].Code)
}

func TestValidateResponse(t *testing.T) {
	op := fixtureOperation(t, "Things_Get")
	v := NewSchemaValidator()
	ex, err := op.Example("Get a thing")
	require.NoError(t, err)

	result, err := v.ValidateResponse(op, "200", ex.Responses["200"].Body)
	require.NoError(t, err)
	assert.True(t, result.Valid, "%v", result.Errors)

	result, err = v.ValidateResponse(op, "200", map[string]any{"location": float64(1)})
	require.NoError(t, err)
	assert.False(t, result.Valid)

	result, err = v.ValidateResponse(op, "500", map[string]any{"error": map[string]any{"code": "X"}})
	require.NoError(t, err)
	assert.True(t, result.Valid, "undeclared status uses the default response")
}

func TestDraft4(t *testing.T) {
	in := map[string]any{
		"type":                "object",
		"discriminator":       "kind",
		"x-ms-azure-resource": true,
		"required":            []any{"kind"},
		"properties": map[string]any{
			"kind":     map[string]any{"type": "string", "enum": []any{"a", "b"}, "x-ms-enum": map[string]any{"modelAsString": true}},
			"format":   map[string]any{"type": "string", "format": "duration", "x-nullable": true},
			"required": map[string]any{"type": "boolean", "required": true},
			"upload":   map[string]any{"type": "file"},
		},
	}
	want := map[string]any{
		"type":     "object",
		"required": []any{"kind"},
		"properties": map[string]any{
			"kind":     map[string]any{"type": "string"},
			"format":   map[string]any{"type": []any{"string", "null"}},
			"required": map[string]any{"type": "boolean"},
			"upload":   map[string]any{},
		},
	}
	assert.Equal(t, want, Draft4(in))
}

func TestSchemaValidatorCachesCompileFailures(t *testing.T) {
	v := NewSchemaValidator()
	bad := map[string]any{"type": "object", "properties": map[string]any{"x": map[string]any{"type": "no-such-type"}}}

	r1 := v.Validate("bad", bad, map[string]any{}, LocationBody)
	r2 := v.Validate("bad", bad, map[string]any{}, LocationBody)
	assert.False(t, r1.Valid)
	assert.False(t, r2.Valid)
	assert.Equal(t, r1.Errors[0].Message, r2.Errors[0].Message)

	assert.True(t, v.Validate("", nil, "anything", LocationBody).Valid)
}

func TestRequestError(t *testing.T) {
	result := NewResult()
	result.AddError(NewRequiredError("api-version", LocationQuery))
	result.AddError(NewSchemaError("", LocationBody, "bad body"))

	err := NewRequestError(result)
	assert.Equal(t, 400, err.StatusCode())
	assert.Contains(t, err.Error(), "query.api-version")

	ce := err.CloudError()
	assert.Equal(t, "InvalidRequestContent", ce.Code)
	require.Len(t, ce.Details, 2)
	assert.Equal(t, "query.api-version", ce.Details[0].Target)
	assert.Equal(t, "body", ce.Details[1].Target)
	assert.Equal(t, ErrCodeRequired, ce.Details[0].Code)
}
