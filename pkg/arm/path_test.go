package arm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const apimService = "/subscriptions/sub1/resourceGroups/rg1/providers/Microsoft.ApiManagement/service/svc1"

func TestPathOf(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"origin form", "/subscriptions/s1?api-version=2020-01-01", "/subscriptions/s1"},
		{"absolute", "https://localhost:8443/subscriptions/s1?x=1", "/subscriptions/s1"},
		{"absolute without path", "https://localhost", "/"},
		{"fragment", "/tenants#top", "/tenants"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PathOf(tt.url))
		})
	}
}

func TestSegments(t *testing.T) {
	assert.Equal(t, []string{"subscriptions", "s1", "resourceGroups", "rg1"},
		Segments("https://h/subscriptions/s1//resourceGroups/rg1/?api-version=1"))
	assert.Empty(t, Segments("/"))
}

func TestProviderNamespace(t *testing.T) {
	assert.Equal(t, "microsoft.apimanagement", ProviderNamespace(Segments(apimService)))
	assert.Equal(t, UnknownProvider, ProviderNamespace(Segments("/subscriptions/s1/resourceGroups/rg1")))
	assert.Equal(t, "microsoft.insights", ProviderNamespace(Segments(
		apimService+"/providers/Microsoft.Insights/diagnosticSettings/d1")))
	assert.Equal(t, UnknownProvider, ProviderNamespace(Segments("/subscriptions/s1/providers")))
}

func TestResourceType(t *testing.T) {
	assert.Equal(t, "service/users", ResourceType(Segments(apimService+"/users/u1")))
	assert.Equal(t, "", ResourceType(Segments("/subscriptions/s1")))
}

func TestIsManagementLevel(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		level int
		want  bool
	}{
		{"generic name level", "/A/a1/B/b1", 2, true},
		{"generic type level", "/A/a1/B/b1", 3, false},
		{"generic leaf", "/A/a1/B/b1", 4, true},
		{"subscription id is implicit", "/subscriptions/s1/resourceGroups/rg1", 2, false},
		{"resource group", "/subscriptions/s1/resourceGroups/rg1", 4, true},
		{"providers segment", apimService, 5, false},
		{"provider namespace", apimService, 6, false},
		{"resource type", apimService, 7, false},
		{"resource name", apimService, 8, true},
		{"child resource", apimService + "/users/u1", 10, true},
		{"extension provider namespace", apimService + "/providers/Microsoft.Insights/diagnosticSettings/d1", 10, false},
		{"extension resource", apimService + "/providers/Microsoft.Insights/diagnosticSettings/d1", 12, true},
		{"out of range", "/A/a1", 3, false},
		{"zero", "/A/a1", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsManagementLevel(tt.level, Segments(tt.url)))
		})
	}
}

func TestIsManagementURL(t *testing.T) {
	assert.True(t, IsManagementURL(apimService+"?api-version=2021-08-01"))
	assert.False(t, IsManagementURL(apimService+"/users"))
}

func TestIsListPath(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"/A/a1/B", true},
		{"/A/a1/B/b1", false},
		{"/subscriptions/s1/resourceGroups", true},
		{"/subscriptions/s1/resourceGroups/rg1", false},
		{"/subscriptions/s1/resourceGroups/rg1/providers/Microsoft.Web/sites", true},
		{"/subscriptions/s1/resourceGroups/rg1/providers/Microsoft.Web/sites/site1", false},
		{"/subscriptions/s1/providers/Microsoft.Web", false},
		{"/tenants", true},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, IsListPath(Segments(tt.url)))
		})
	}
}
