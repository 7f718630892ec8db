package responder

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/uuid"

	"github.com/getmockd/armmock/pkg/arm"
	"github.com/getmockd/armmock/pkg/swagger"
)

const (
	// maxMockDepth bounds nesting of mocked values.
	maxMockDepth = 12

	// maxMockItems caps mocked array lengths.
	maxMockItems = 3

	mockStringLength = 8
	mockLocation     = "eastus"
	mockKey          = "additionalProp"
)

// Mocker produces response payloads from declared response schemas.
type Mocker struct {
	// Now returns the timestamp used for date-time values.
	Now func() time.Time
	// NewID returns the value used for uuid values.
	NewID func() string

	schemas sync.Map // key -> *openapi3.Schema
}

// NewMocker creates a mocker using the wall clock and random UUIDs.
func NewMocker() *Mocker {
	return &Mocker{
		Now:   func() time.Time { return time.Now().UTC() },
		NewID: uuid.NewString,
	}
}

// MockResponse mocks the response declared for status. Accepted and created
// responses of long-running operations carry the polling header pointing at
// pollURL.
func (m *Mocker) MockResponse(op *swagger.Operation, status, pollURL string) (*swagger.ExampleResponse, error) {
	declared, err := op.Response(status)
	if err != nil {
		return nil, err
	}
	out := &swagger.ExampleResponse{Headers: m.mockHeaders(op, status, pollURL)}
	if declared == nil || declared.Schema == nil {
		return out, nil
	}

	key := op.File.Path + "#" + op.Method + " " + op.Path + "#" + status
	schema, err := m.schema(key, declared.Schema)
	if err != nil {
		return nil, fmt.Errorf("mocking %s response %s: %w", op.ID(), status, err)
	}
	body := m.Mock(schema, "response body")
	if body == nil {
		body = map[string]any{}
	}
	out.Body = body
	return out, nil
}

func (m *Mocker) mockHeaders(op *swagger.Operation, status, pollURL string) map[string]any {
	if !op.IsLongRunning() || (status != "201" && status != "202") {
		return nil
	}
	name := arm.HeaderNameLocation
	if via, _ := op.Spec.LongRunningOptions["final-state-via"].(string); strings.EqualFold(via, "azure-async-operation") {
		name = arm.HeaderNameAsyncOperation
	}
	return map[string]any{name: pollURL}
}

// schema converts an inlined Swagger schema to the openapi3 model, caching by
// key when one is given.
func (m *Mocker) schema(key string, raw map[string]any) (*openapi3.Schema, error) {
	if key != "" {
		if cached, ok := m.schemas.Load(key); ok {
			return cached.(*openapi3.Schema), nil
		}
	}
	schema, err := ToOpenAPI(raw)
	if err != nil {
		return nil, err
	}
	if key != "" {
		m.schemas.Store(key, schema)
	}
	return schema, nil
}

// ToOpenAPI decodes an inlined Swagger 2.0 schema into the openapi3 model.
// Keywords whose Swagger form the model cannot hold are dropped.
func ToOpenAPI(raw map[string]any) (*openapi3.Schema, error) {
	data, err := json.Marshal(sanitize(raw))
	if err != nil {
		return nil, err
	}
	schema := &openapi3.Schema{}
	if err := json.Unmarshal(data, schema); err != nil {
		return nil, err
	}
	return schema, nil
}

// sanitize copies a schema, removing Swagger-only shapes: string
// discriminators, boolean exclusive bounds, tuple items and non-array
// required lists.
func sanitize(v any) any {
	node, ok := v.(map[string]any)
	if !ok {
		return v
	}
	out := make(map[string]any, len(node))
	for k, child := range node {
		switch k {
		case "discriminator", "exclusiveMinimum", "exclusiveMaximum":
			continue
		case "required":
			if _, ok := child.([]any); ok {
				out[k] = child
			}
		case "items", "additionalProperties", "not":
			switch c := child.(type) {
			case map[string]any:
				out[k] = sanitize(c)
			case bool:
				if k == "additionalProperties" {
					out[k] = c
				}
			}
		case "properties", "definitions":
			props, ok := child.(map[string]any)
			if !ok {
				continue
			}
			cp := make(map[string]any, len(props))
			for name, prop := range props {
				cp[name] = sanitize(prop)
			}
			out[k] = cp
		case "allOf", "anyOf", "oneOf":
			list, ok := child.([]any)
			if !ok {
				continue
			}
			cp := make([]any, 0, len(list))
			for _, item := range list {
				cp = append(cp, sanitize(item))
			}
			out[k] = cp
		default:
			out[k] = child
		}
	}
	return out
}

// Mock returns a value conforming to schema. name is the property the value
// is generated for.
func (m *Mocker) Mock(schema *openapi3.Schema, name string) any {
	return m.mock(schema, name, 0)
}

func (m *Mocker) mock(schema *openapi3.Schema, name string, depth int) any {
	if schema == nil || depth > maxMockDepth {
		return nil
	}
	if schema.Example != nil {
		return schema.Example
	}
	if len(schema.Enum) > 0 {
		return schema.Enum[0]
	}
	if schema.Default != nil {
		return schema.Default
	}

	switch {
	case isType(schema, openapi3.TypeObject), len(schema.Properties) > 0, len(schema.AllOf) > 0:
		return m.mockObject(schema, depth)
	case isType(schema, openapi3.TypeArray):
		return m.mockArray(schema, name, depth)
	case isType(schema, openapi3.TypeString):
		return m.mockString(schema, name)
	case isType(schema, openapi3.TypeInteger):
		return math.Ceil(m.mockNumber(schema, 1))
	case isType(schema, openapi3.TypeNumber):
		return m.mockNumber(schema, 1.5)
	case isType(schema, openapi3.TypeBoolean):
		return true
	}
	if len(schema.OneOf) > 0 && schema.OneOf[0] != nil {
		return m.mock(schema.OneOf[0].Value, name, depth+1)
	}
	if len(schema.AnyOf) > 0 && schema.AnyOf[0] != nil {
		return m.mock(schema.AnyOf[0].Value, name, depth+1)
	}
	return nil
}

func isType(schema *openapi3.Schema, typ string) bool {
	return schema.Type != nil && schema.Type.Is(typ)
}

// properties merges allOf parents under the schema's own properties.
func properties(schema *openapi3.Schema, out map[string]*openapi3.Schema) {
	for _, parent := range schema.AllOf {
		if parent != nil && parent.Value != nil {
			properties(parent.Value, out)
		}
	}
	for name, prop := range schema.Properties {
		if prop != nil && prop.Value != nil {
			out[name] = prop.Value
		}
	}
}

func (m *Mocker) mockObject(schema *openapi3.Schema, depth int) any {
	props := make(map[string]*openapi3.Schema)
	properties(schema, props)

	obj := make(map[string]any, len(props))
	for name, prop := range props {
		// Secrets are never echoed in responses.
		if isTrue(prop.Extensions["x-ms-secret"]) {
			continue
		}
		if v := m.mock(prop, name, depth+1); v != nil {
			obj[name] = v
		}
	}
	if extra := schema.AdditionalProperties.Schema; extra != nil && extra.Value != nil {
		if _, taken := obj[mockKey]; !taken {
			if v := m.mock(extra.Value, mockKey, depth+1); v != nil {
				obj[mockKey] = v
			}
		}
	}
	return obj
}

func (m *Mocker) mockArray(schema *openapi3.Schema, name string, depth int) any {
	count := 1
	if schema.MinItems > uint64(count) {
		count = int(schema.MinItems)
	}
	if schema.MaxItems != nil && *schema.MaxItems < uint64(count) {
		count = int(*schema.MaxItems)
	}
	if count > maxMockItems {
		count = maxMockItems
	}

	items := make([]any, 0, count)
	if schema.Items == nil || schema.Items.Value == nil {
		return items
	}
	for i := 0; i < count; i++ {
		if v := m.mock(schema.Items.Value, name, depth+1); v != nil {
			items = append(items, v)
		}
	}
	return items
}

func (m *Mocker) mockString(schema *openapi3.Schema, name string) any {
	switch strings.ToLower(schema.Format) {
	case "date-time":
		return m.Now().Format(time.RFC3339)
	case "date":
		return m.Now().Format(time.DateOnly)
	case "duration":
		return "PT1H"
	case "uuid":
		return m.NewID()
	case "uri", "url":
		return "https://contoso.com/" + strings.ToLower(name)
	case "byte":
		return "dGVzdA=="
	case "arm-id":
		return "/subscriptions/00000000-0000-0000-0000-000000000000/resourceGroups/mockGroup"
	}
	if strings.EqualFold(name, "location") {
		return mockLocation
	}

	length := mockStringLength
	if int(schema.MinLength) > length {
		length = int(schema.MinLength)
	}
	if schema.MaxLength != nil && int(*schema.MaxLength) < length {
		length = int(*schema.MaxLength)
	}
	if length < 1 {
		length = 1
	}
	return strings.Repeat("a", length)
}

func (m *Mocker) mockNumber(schema *openapi3.Schema, fallback float64) float64 {
	switch {
	case schema.Min != nil && schema.Max != nil:
		return *schema.Min + (*schema.Max-*schema.Min)/2
	case schema.Min != nil:
		return math.Max(*schema.Min, fallback)
	case schema.Max != nil:
		return math.Min(*schema.Max, fallback)
	default:
		return fallback
	}
}

func isTrue(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case json.RawMessage:
		return string(t) == "true"
	default:
		return false
	}
}
