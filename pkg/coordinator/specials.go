package coordinator

import (
	"embed"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/getmockd/armmock/pkg/arm"
	"github.com/getmockd/armmock/pkg/exchange"
	"github.com/getmockd/armmock/pkg/specindex"
)

//go:embed specials/*.json
var specialFiles embed.FS

const (
	mockTenantID         = "00000000-0000-0000-0000-000000000000"
	mockLocation         = "eastus"
	cannedSubscriptionID = "/subscriptions/0000000-0000-0000-0000-000000000000"
)

// special produces the canned payload of one built-in URL shape.
type special struct {
	name    string
	matches func(segments []string) bool
	payload func(c *Coordinator, req *exchange.Request, segments []string) any
}

var specials = []special{
	{
		name: "subscription",
		matches: func(s []string) bool {
			return len(s) == 2 && strings.EqualFold(s[0], "subscriptions")
		},
		payload: subscriptionPayload,
	},
	{
		name: "resourceGroup",
		matches: func(s []string) bool {
			return len(s) == 4 && strings.EqualFold(s[0], "subscriptions") && strings.EqualFold(s[2], "resourceGroups")
		},
		payload: resourceGroupPayload,
	},
	{
		name: "locations",
		matches: func(s []string) bool {
			return len(s) == 3 && strings.EqualFold(s[0], "subscriptions") && strings.EqualFold(s[2], "locations")
		},
		payload: locationsPayload,
	},
	{
		name: "tenants",
		matches: func(s []string) bool {
			return len(s) == 1 && strings.EqualFold(s[0], "tenants")
		},
		payload: func(*Coordinator, *exchange.Request, []string) any {
			return loadSpecial("tenants.json")
		},
	},
}

// HandleSpecials serves the built-in URLs that no spec declares. It only
// applies to URLs without a provider namespace and reports ok=false for
// every other shape.
func (c *Coordinator) HandleSpecials(req *exchange.Request, vreq *specindex.ValidationRequest) (status string, body any, ok bool) {
	if vreq.Provider != arm.UnknownProvider {
		return "", nil, false
	}
	segments := vreq.Segments()
	for _, s := range specials {
		if s.matches(segments) {
			c.log.Debug("serving built-in payload", "special", s.name, "method", req.Method, "path", vreq.Path)
			return "200", s.payload(c, req, segments), true
		}
	}
	return "", nil, false
}

func subscriptionPayload(_ *Coordinator, _ *exchange.Request, segments []string) any {
	id := unescape(segments[1])
	policies := map[string]any{
		"locationPlacementId": "Public_2014-09-01",
		"quotaId":             "PayAsYouGo_2014-09-01",
		"spendingLimit":       "Off",
	}
	return map[string]any{
		"id":                   "/subscriptions/" + id,
		"authorizationSource":  "RoleBased",
		"managedByTenants":     []any{},
		"subscriptionId":       id,
		"tenantId":             mockTenantID,
		"displayName":          "Mocked Subscription",
		"state":                "Enabled",
		"subscriptionPolicies": policies,
	}
}

// resourceGroupPayload also records creates and deletes in the resource
// pool so resources below the group can be created under cascading.
func resourceGroupPayload(c *Coordinator, req *exchange.Request, segments []string) any {
	switch req.Method {
	case http.MethodPut, http.MethodDelete:
		outcome := c.responder.Pool().Update(req.Method, req.URL, req.Body)
		c.log.Debug("resource pool updated", "method", req.Method, "path", req.Path(), "outcome", outcome.String())
	}

	location, tags := mockLocation, any(map[string]any{})
	if body, ok := req.Body.(map[string]any); ok {
		if l, ok := body["location"].(string); ok && l != "" {
			location = l
		}
		if t, ok := body["tags"].(map[string]any); ok {
			tags = t
		}
	}
	return map[string]any{
		"id":         "/subscriptions/" + unescape(segments[1]) + "/resourceGroups/" + unescape(segments[3]),
		"name":       unescape(segments[3]),
		"type":       "Microsoft.Resources/resourceGroups",
		"location":   location,
		"managedBy":  nil,
		"tags":       tags,
		"properties": map[string]any{"provisioningState": "Succeeded"},
	}
}

func locationsPayload(_ *Coordinator, _ *exchange.Request, segments []string) any {
	prefix := "/subscriptions/" + unescape(segments[1])
	data, err := specialFiles.ReadFile("specials/locations.json")
	if err != nil {
		panic(err)
	}
	data = []byte(strings.ReplaceAll(string(data), cannedSubscriptionID, prefix))
	return decodeSpecial(data)
}

func loadSpecial(name string) any {
	data, err := specialFiles.ReadFile("specials/" + name)
	if err != nil {
		panic(err)
	}
	return decodeSpecial(data)
}

// decodeSpecial decodes an embedded payload. Every call returns a fresh
// value, so callers may modify it.
func decodeSpecial(data []byte) any {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		panic("coordinator: invalid embedded payload: " + err.Error())
	}
	return v
}

func unescape(segment string) string {
	if s, err := url.PathUnescape(segment); err == nil {
		return s
	}
	return segment
}
