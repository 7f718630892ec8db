package responder

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/armmock/internal/testspec"
	"github.com/getmockd/armmock/pkg/exchange"
	"github.com/getmockd/armmock/pkg/swagger"
)

const resourceGroupPath = "/subscriptions/sub1/resourceGroups/rg1"

func TestGenStatefulResponseExistence(t *testing.T) {
	stateful := Profile{Stateful: true}

	t.Run("stateful get of unknown resource", func(t *testing.T) {
		r := New(Config{CascadeEnabled: true})
		err := r.GenStatefulResponse(newRequest(t, "GET", testspec.ThingPath, nil, nil), exchange.NewResponse(), stateful, "200", nil)

		var notFound *ResourceNotFoundError
		require.True(t, errors.As(err, &notFound), "got %v", err)
		assert.Equal(t, http.StatusNotFound, notFound.StatusCode())
		assert.Equal(t, "ResourceNotFound", notFound.Code())
	})

	t.Run("stateless get of unknown resource", func(t *testing.T) {
		r := New(Config{CascadeEnabled: true})
		resp := exchange.NewResponse()
		require.NoError(t, r.GenStatefulResponse(newRequest(t, "GET", testspec.ThingPath, nil, nil), resp, Profile{}, "200", nil))
		assert.Equal(t, "200", resp.StatusCode)
	})

	t.Run("list urls skip the existence check", func(t *testing.T) {
		r := New(Config{CascadeEnabled: true})
		assert.NoError(t, r.GenStatefulResponse(newRequest(t, "GET", testspec.ThingsPath, nil, nil), exchange.NewResponse(), stateful, "200", nil))
	})

	t.Run("create without parent", func(t *testing.T) {
		r := New(Config{CascadeEnabled: true})
		err := r.GenStatefulResponse(newRequest(t, "PUT", testspec.ThingPath, nil, createBody), exchange.NewResponse(), stateful, "200", nil)

		var rejected *ResourceCreateRejectedError
		require.True(t, errors.As(err, &rejected), "got %v", err)
		assert.Equal(t, "NoParentResource", rejected.Code())
	})

	t.Run("stateless create without parent", func(t *testing.T) {
		r := New(Config{CascadeEnabled: true})
		assert.NoError(t, r.GenStatefulResponse(newRequest(t, "PUT", testspec.ThingPath, nil, createBody), exchange.NewResponse(), Profile{}, "200", nil))
		assert.False(t, r.Pool().HasURL(testspec.ThingPath))
	})
}

func TestGenStatefulResponseLifecycle(t *testing.T) {
	r := New(Config{CascadeEnabled: true})
	stateful := Profile{Stateful: true}
	step := func(method, path string) error {
		return r.GenStatefulResponse(newRequest(t, method, path+"?api-version=2021-01-01", nil, nil), exchange.NewResponse(), stateful, "200", nil)
	}

	require.NoError(t, step("PUT", resourceGroupPath))
	require.NoError(t, step("PUT", testspec.ThingPath))
	require.NoError(t, step("GET", testspec.ThingPath))
	require.NoError(t, step("PATCH", testspec.ThingPath))
	require.NoError(t, step("DELETE", resourceGroupPath))

	var notFound *ResourceNotFoundError
	assert.True(t, errors.As(step("GET", testspec.ThingPath), &notFound), "deleting the group removes its resources")
	assert.True(t, errors.As(step("DELETE", testspec.ThingPath), &notFound))

	r.Reset()
	assert.Zero(t, r.Pool().Count())
}

func TestGenStatefulResponseBody(t *testing.T) {
	payload := func() *swagger.ExampleResponse {
		return &swagger.ExampleResponse{Body: map[string]any{
			"name":       "example",
			"nextLink":   "https://next",
			"properties": map[string]any{"provisioningState": "Creating"},
			"value": []any{
				map[string]any{"name": "item", "properties": map[string]any{"provisioningState": "Failed"}},
			},
		}}
	}

	t.Run("patched after the request", func(t *testing.T) {
		r := New(Config{})
		resp := exchange.NewResponse()
		src := payload()

		require.NoError(t, r.GenStatefulResponse(newRequest(t, "PUT", testspec.ThingPath, nil, nil), resp, Profile{}, "201", src))
		assert.Equal(t, "201", resp.StatusCode)
		assert.Equal(t, map[string]any{
			"name":       "thing1",
			"nextLink":   nil,
			"properties": map[string]any{"provisioningState": "Succeeded"},
			"value": []any{
				map[string]any{"name": "item", "properties": map[string]any{"provisioningState": "Succeeded"}},
			},
		}, resp.Body)
		assert.Equal(t, payload(), src, "payload is not modified")
	})

	t.Run("pinned example keeps its name", func(t *testing.T) {
		r := New(Config{})
		resp := exchange.NewResponse()

		require.NoError(t, r.GenStatefulResponse(newRequest(t, "PUT", testspec.ThingPath, pin("Create a thing"), nil), resp, Profile{}, "200", payload()))
		assert.Equal(t, "example", resp.Body.(map[string]any)["name"])
	})

	t.Run("escaped name", func(t *testing.T) {
		r := New(Config{})
		resp := exchange.NewResponse()

		require.NoError(t, r.GenStatefulResponse(newRequest(t, "GET", "/subscriptions/sub1/resourceGroups/rg1/providers/Microsoft.Mock/things/a%20b", nil, nil), resp, Profile{}, "200", payload()))
		assert.Equal(t, "a b", resp.Body.(map[string]any)["name"])
	})

	t.Run("non-string name is kept", func(t *testing.T) {
		r := New(Config{})
		resp := exchange.NewResponse()

		require.NoError(t, r.GenStatefulResponse(newRequest(t, "GET", testspec.ThingPath, nil, nil), resp, Profile{}, "200", &swagger.ExampleResponse{Body: map[string]any{"name": float64(1)}}))
		assert.Equal(t, map[string]any{"name": float64(1)}, resp.Body)
	})

	t.Run("empty payload", func(t *testing.T) {
		r := New(Config{})
		resp := exchange.NewResponse()

		require.NoError(t, r.GenStatefulResponse(newRequest(t, "DELETE", testspec.ThingPath, nil, nil), resp, Profile{}, "204", nil))
		assert.Equal(t, "204", resp.StatusCode)
		assert.Nil(t, resp.Body)
	})
}
