package specindex

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/armmock/internal/testspec"
	"github.com/getmockd/armmock/pkg/arm"
)

func newFixtureIndex(t *testing.T) *Index {
	t.Helper()
	ix := New(Config{Root: testspec.Write(t)})
	require.NoError(t, ix.Initialize(context.Background()))
	return ix
}

func TestIndexLifecycle(t *testing.T) {
	ix := New(Config{Root: testspec.Write(t)})
	status, err := ix.Status()
	assert.Equal(t, NotInitialized, status)
	assert.NoError(t, err)

	_, err = ix.Match(testspec.ThingPath, "GET", "")
	assert.ErrorIs(t, err, ErrNotInitialized)

	require.NoError(t, ix.Initialize(context.Background()))
	status, _ = ix.Status()
	assert.Equal(t, Initialized, status)
	assert.Equal(t, 2, ix.Files())
	assert.Equal(t, 12, ix.Operations())
	assert.Equal(t, []string{"microsoft.mock"}, ix.Providers())
	assert.Equal(t, []string{"2021-01-01", "2022-01-01"}, ix.APIVersions("Microsoft.Mock"))
}

func TestIndexInitializeFailure(t *testing.T) {
	ix := New(Config{Root: filepath.Join(t.TempDir(), "missing")})
	err := ix.Initialize(context.Background())
	require.Error(t, err)

	status, statusErr := ix.Status()
	assert.Equal(t, InitializationFailed, status)
	assert.Equal(t, err, statusErr)
	assert.Equal(t, "InitializationFailed", status.String())
}

func TestIndexInitializeCanceled(t *testing.T) {
	ix := New(Config{Root: testspec.Write(t)})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, ix.Initialize(ctx), context.Canceled)
}

func TestIndexEmptyRoot(t *testing.T) {
	ix := New(Config{Root: t.TempDir()})
	require.NoError(t, ix.Initialize(context.Background()))
	assert.Zero(t, ix.Operations())

	res, err := ix.Match("/subscriptions/sub1", "GET", "")
	require.NoError(t, err)
	assert.Empty(t, res.Operations)
	assert.Contains(t, res.Reason, arm.UnknownProvider)
}

func TestIndexSkipsInvalidDocuments(t *testing.T) {
	root := testspec.Write(t)
	dir := filepath.Join(root, "specification", "other", "resource-manager")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "oas3.json"), []byte(`{"openapi":"3.0.1","paths":{}}`), 0o644))

	ix := New(Config{Root: root})
	require.NoError(t, ix.Initialize(context.Background()))
	assert.Equal(t, 2, ix.Files())
}

func TestIndexMatch(t *testing.T) {
	ix := newFixtureIndex(t)

	tests := []struct {
		name       string
		url        string
		method     string
		apiVersion string
		wantID     string
		wantAPI    string
	}{
		{
			name:    "get thing",
			url:     testspec.ThingPath + "?api-version=2021-01-01",
			method:  "GET",
			wantID:  "Things_Get",
			wantAPI: "2021-01-01",
		},
		{
			name:    "absolute url and lower-case method",
			url:     "https://management.azure.com" + testspec.ThingPath + "?api-version=2021-01-01",
			method:  "put",
			wantID:  "Things_CreateOrUpdate",
			wantAPI: "2021-01-01",
		},
		{
			name:    "list by subscription",
			url:     testspec.ThingsPath + "?api-version=2021-01-01",
			method:  "GET",
			wantID:  "Things_ListBySubscription",
			wantAPI: "2021-01-01",
		},
		{
			name:    "child resource",
			url:     testspec.WidgetPath + "?api-version=2021-01-01",
			method:  "GET",
			wantID:  "Widgets_Get",
			wantAPI: "2021-01-01",
		},
		{
			name:    "x-ms-paths query constraint",
			url:     testspec.ThingPath + "?api-version=2021-01-01&action=restart",
			method:  "POST",
			wantID:  "Things_Restart",
			wantAPI: "2021-01-01",
		},
		{
			name:       "explicit version overrides query",
			url:        testspec.ThingPath + "?api-version=2021-01-01",
			method:     "GET",
			apiVersion: "2022-01-01",
			wantID:     "Things_Get",
			wantAPI:    "2022-01-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ix.Match(tt.url, tt.method, tt.apiVersion)
			require.NoError(t, err)
			require.NotEmpty(t, res.Operations, res.Reason)
			assert.Equal(t, tt.wantID, res.Last().ID())
			assert.Equal(t, tt.wantAPI, res.Last().APIVersion)
			assert.Equal(t, tt.wantAPI, res.APIVersion)
		})
	}
}

func TestIndexMatchUnknownVersion(t *testing.T) {
	ix := newFixtureIndex(t)

	res, err := ix.Match(testspec.ThingPath, "GET", arm.UnknownAPIVersion)
	require.NoError(t, err)
	require.Len(t, res.Operations, 2)
	assert.Equal(t, "2021-01-01", res.Operations[0].APIVersion)
	assert.Equal(t, "2022-01-01", res.Last().APIVersion)

	res, err = ix.Match(testspec.ThingPath, "GET", "")
	require.NoError(t, err)
	assert.Len(t, res.Operations, 2, "missing api-version searches every version")
}

func TestIndexMatchMisses(t *testing.T) {
	ix := newFixtureIndex(t)

	tests := []struct {
		name       string
		url        string
		method     string
		wantReason string
	}{
		{"unknown version", testspec.ThingPath + "?api-version=1999-01-01", "GET", "no spec registered"},
		{"unknown provider", "/subscriptions/sub1/providers/Microsoft.Other/things?api-version=2021-01-01", "GET", "microsoft.other"},
		{"method not declared", testspec.ThingsPath + "?api-version=2021-01-01", "DELETE", "no operation"},
		{"query constraint unmet", testspec.ThingPath + "?api-version=2021-01-01", "POST", "no operation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ix.Match(tt.url, tt.method, "")
			require.NoError(t, err)
			assert.Empty(t, res.Operations)
			assert.Nil(t, res.Last())
			assert.Contains(t, res.Reason, tt.wantReason)
		})
	}
}

func TestIndexMatchAmbiguous(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "specification", "amb", "resource-manager", "Microsoft.Amb", "stable", "2020-01-01")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	doc := `{"swagger":"2.0","info":{"title":"amb","version":"2020-01-01"},"paths":{
	  "/providers/Microsoft.Amb/items/{a}": {"get": {"operationId": "Items_GetA", "responses": {"200": {"description": "OK"}}}},
	  "/providers/Microsoft.Amb/items/{b}": {"get": {"operationId": "Items_GetB", "responses": {"200": {"description": "OK"}}}},
	  "/providers/Microsoft.Amb/items/default": {"get": {"operationId": "Items_GetDefault", "responses": {"200": {"description": "OK"}}}}
	}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "amb.json"), []byte(doc), 0o644))

	ix := New(Config{Root: root})
	require.NoError(t, ix.Initialize(context.Background()))

	_, err := ix.Match("/providers/Microsoft.Amb/items/x?api-version=2020-01-01", "GET", "")
	var amb *AmbiguousMatchError
	require.ErrorAs(t, err, &amb)
	assert.Len(t, amb.Candidates, 2)
	assert.NotNil(t, amb.Last())
	assert.Equal(t, 400, amb.StatusCode())
	assert.Contains(t, amb.Error(), "Items_GetA")

	res, err := ix.Match("/providers/Microsoft.Amb/items/default?api-version=2020-01-01", "GET", "")
	require.NoError(t, err, "a literal template outranks the placeholders")
	assert.Equal(t, "Items_GetDefault", res.Last().ID())
	assert.Len(t, res.Operations, 3)
}

func TestIndexProviderPlaceholder(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "specification", "resources", "resource-manager", "Microsoft.Resources", "stable", "2021-04-01")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	doc := `{"swagger":"2.0","info":{"title":"res","version":"2021-04-01"},"paths":{
	  "/subscriptions/{subscriptionId}/providers/{resourceProviderNamespace}": {"get": {"operationId": "Providers_Get", "responses": {"200": {"description": "OK"}}}}
	}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "resources.json"), []byte(doc), 0o644))

	ix := New(Config{Root: root})
	require.NoError(t, ix.Initialize(context.Background()))

	for _, ns := range []string{"Microsoft.Compute", "Microsoft.Web"} {
		res, err := ix.Match(fmt.Sprintf("/subscriptions/s/providers/%s?api-version=2021-04-01", ns), "GET", "")
		require.NoError(t, err)
		require.NotEmpty(t, res.Operations, res.Reason)
		assert.Equal(t, "Providers_Get", res.Last().ID())
	}
}

func TestIndexProviderPlaceholderDefersToProvider(t *testing.T) {
	ix := New(Config{Root: testspec.WriteGeneric(t)})
	require.NoError(t, ix.Initialize(context.Background()))

	tests := []struct {
		name       string
		url        string
		apiVersion string
		want       string
	}{
		{
			name: "provider lacks the version",
			url:  testspec.ChildPath + "?api-version=" + testspec.APIVersionGeneric,
		},
		{
			name:       "provider serves every version",
			url:        testspec.ChildPath + "?api-version=" + testspec.APIVersionGeneric,
			apiVersion: arm.UnknownAPIVersion,
			want:       "Children_Get",
		},
		{
			name: "provider declares the version",
			url:  testspec.ChildPath + "?api-version=" + testspec.APIVersionChild,
			want: "Children_Get",
		},
		{
			name: "provider absent from the tree",
			url:  "/subscriptions/sub1/resourceGroups/rg1/providers/Microsoft.Compute/virtualMachines/vm1/extensions/ext1?api-version=" + testspec.APIVersionGeneric,
			want: "Resources_Get",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ix.Match(tt.url, "GET", tt.apiVersion)
			require.NoError(t, err)
			if tt.want == "" {
				assert.Empty(t, res.Operations)
				assert.NotEmpty(t, res.Reason)
				return
			}
			require.NotEmpty(t, res.Operations, res.Reason)
			assert.Equal(t, tt.want, res.Last().ID())
		})
	}
}

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest("https://localhost:8443"+testspec.WidgetPath+"?api-version=2021-01-01", "get")
	require.NoError(t, err)
	assert.Equal(t, "microsoft.mock", req.Provider)
	assert.Equal(t, "things/widgets", req.ResourceType)
	assert.Equal(t, "2021-01-01", req.APIVersion)
	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "localhost:8443", req.Host)
	assert.Equal(t, testspec.WidgetPath, req.Path)
	assert.Len(t, req.Segments(), 10)

	req, err = ParseRequest("/subscriptions/sub1", "GET")
	require.NoError(t, err)
	assert.Equal(t, arm.UnknownProvider, req.Provider)
	assert.Equal(t, arm.UnknownAPIVersion, req.APIVersion)
}
