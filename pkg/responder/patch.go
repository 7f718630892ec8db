package responder

import (
	"net/http"
	"net/url"
	"regexp"
	"strings"

	azarm "github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/google/uuid"

	"github.com/getmockd/armmock/pkg/arm"
	"github.com/getmockd/armmock/pkg/exchange"
	"github.com/getmockd/armmock/pkg/swagger"
)

// MockedResourceType is the type stamped on payloads whose request URL names
// no resource provider.
const MockedResourceType = "Microsoft.Unknown/mockedResourceType"

const (
	placeholderName     = "resourceName"
	mockSubscriptionID  = "00000000-0000-0000-0000-000000000000"
	mockResourceGroup   = "mockGroup"
	userAssignedIDsProp = "userassignedidentities"
)

var (
	specialChars       = regexp.MustCompile(`[{}\[\]()]`)
	userAssignedIDForm = regexp.MustCompile(`(?i)^/subscriptions/.+/providers/Microsoft\.ManagedIdentity/userAssignedIdentities/.+`)
)

// ResourceTypeOf returns the ARM resource type a URL path addresses, e.g.
// Microsoft.Mock/things/widgets. Collection paths take the type of their
// members.
func ResourceTypeOf(path string) string {
	segments := arm.Segments(path)
	if len(segments) == 0 {
		return MockedResourceType
	}
	if arm.IsListPath(segments) {
		path = strings.TrimSuffix(path, "/") + "/" + placeholderName
	}
	id, err := azarm.ParseResourceID(path)
	if err != nil || id.ResourceType.Namespace == "" {
		return MockedResourceType
	}
	return id.ResourceType.String()
}

func isValidID(id string) bool {
	if id == "" || strings.Contains(id, MockedResourceType) {
		return false
	}
	segments := strings.Split(id, "/")
	if len(segments) < 3 {
		return false
	}
	if strings.EqualFold(segments[1], "subscriptions") {
		if _, err := uuid.Parse(segments[2]); err != nil {
			return false
		}
	}
	return strings.HasPrefix(id, "/") && len(id) > 1 && !specialChars.MatchString(id)
}

func isValidType(t string) bool {
	if t == "" || t == MockedResourceType {
		return false
	}
	return strings.Contains(t, ".") && !specialChars.MatchString(t)
}

// PatchExampleResponses rewrites placeholder id, type and user-assigned
// identity values of every response in ex to match the live request.
func PatchExampleResponses(ex *swagger.Example, req *exchange.Request) {
	path := req.Path()
	resourceType := ResourceTypeOf(path)
	owners := ownerSegments(path)

	for _, res := range ex.Responses {
		if res == nil {
			continue
		}
		patchIDAndType(res.Body, req.Method, path, resourceType)
		res.Body = mockUserAssignedIdentities(res.Body, owners, false)
	}
}

func patchIDAndType(body any, method, path, resourceType string) {
	if obj, ok := body.(map[string]any); ok {
		if id, _ := obj["id"].(string); id != "" && !isValidID(id) {
			switch method {
			case http.MethodPut, http.MethodGet, http.MethodPatch:
				obj["id"] = path
			}
		}
		patchType(obj, resourceType)
		if list, ok := obj["value"].([]any); ok {
			patchItems(list, path, resourceType)
		}
	}
	if list, ok := body.([]any); ok {
		patchItems(list, path, resourceType)
	}
}

func patchType(obj map[string]any, resourceType string) {
	t, exists := obj["type"]
	if !exists {
		return
	}
	if s, _ := t.(string); !isValidType(s) {
		obj["type"] = resourceType
	}
}

func patchItems(list []any, path, resourceType string) {
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if id, _ := obj["id"].(string); id != "" && !isValidID(id) {
			name, _ := obj["name"].(string)
			if name == "" {
				name = placeholderName
			}
			obj["id"] = path + "/" + name
		}
		patchType(obj, resourceType)
	}
}

// ownerSegments maps lower-cased type segments to the names that follow them.
func ownerSegments(path string) map[string]string {
	segments := arm.Segments(path)
	out := make(map[string]string, len(segments)/2)
	for i := 1; i < len(segments); i += 2 {
		name := segments[i]
		if decoded, err := url.PathUnescape(name); err == nil {
			name = decoded
		}
		out[strings.ToLower(segments[i-1])] = name
	}
	return out
}

// mockUserAssignedIdentities replaces keys of userAssignedIdentities maps
// that are not identity resource ids with one in the request's subscription
// and resource group.
func mockUserAssignedIdentities(v any, owners map[string]string, inIdentities bool) any {
	switch t := v.(type) {
	case []any:
		for i, item := range t {
			t[i] = mockUserAssignedIdentities(item, owners, false)
		}
		return t
	case map[string]any:
		out := make(map[string]any, len(t))
		for key, item := range t {
			if inIdentities && !userAssignedIDForm.MatchString(key) {
				key = mockedIdentityID(owners)
			}
			out[key] = mockUserAssignedIdentities(item, owners, strings.EqualFold(key, userAssignedIDsProp))
		}
		return out
	default:
		return v
	}
}

func mockedIdentityID(owners map[string]string) string {
	subscription := owners["subscriptions"]
	if subscription == "" {
		subscription = mockSubscriptionID
	}
	group := owners["resourcegroups"]
	if group == "" {
		group = mockResourceGroup
	}
	return "/subscriptions/" + subscription + "/resourceGroups/" + group + "/providers/Microsoft.ManagedIdentity/userAssignedIdentities/mocked"
}

// replaceProperty sets every property named key, at any depth, to value.
func replaceProperty(v any, key string, value any) {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			if k == key {
				t[k] = value
				continue
			}
			replaceProperty(child, key, value)
		}
	case []any:
		for _, child := range t {
			replaceProperty(child, key, value)
		}
	}
}

// clone deep-copies decoded JSON.
func clone(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[k] = clone(child)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = clone(child)
		}
		return out
	default:
		return v
	}
}

func cloneExample(ex *swagger.Example) *swagger.Example {
	cp := &swagger.Example{
		ID:          ex.ID,
		Path:        ex.Path,
		Title:       ex.Title,
		OperationID: ex.OperationID,
		Parameters:  make(map[string]any, len(ex.Parameters)),
		Responses:   make(map[string]*swagger.ExampleResponse, len(ex.Responses)),
	}
	for k, v := range ex.Parameters {
		cp.Parameters[k] = clone(v)
	}
	for status, res := range ex.Responses {
		if res == nil {
			cp.Responses[status] = &swagger.ExampleResponse{}
			continue
		}
		var headers map[string]any
		if res.Headers != nil {
			headers, _ = clone(res.Headers).(map[string]any)
		}
		cp.Responses[status] = &swagger.ExampleResponse{Headers: headers, Body: clone(res.Body)}
	}
	return cp
}
