package coordinator

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/armmock/internal/testspec"
	"github.com/getmockd/armmock/pkg/exchange"
	"github.com/getmockd/armmock/pkg/lro"
	"github.com/getmockd/armmock/pkg/metrics"
	"github.com/getmockd/armmock/pkg/responder"
	"github.com/getmockd/armmock/pkg/specindex"
	"github.com/getmockd/armmock/pkg/swagger"
	"github.com/getmockd/armmock/pkg/validation"
)

const (
	host        = "https://localhost"
	apiVersion  = "?api-version=2021-01-01"
	thingURL    = host + testspec.ThingPath + apiVersion
	callbackURL = thingURL + "&lro-callback=true"
	groupURL    = host + "/subscriptions/sub1/resourceGroups/rg1" + apiVersion
)

func newCoordinator(t *testing.T, cfg Config, cascade bool) *Coordinator {
	t.Helper()
	ix := specindex.New(specindex.Config{Root: testspec.Write(t)})
	c := New(cfg, ix, responder.New(responder.Config{CascadeEnabled: cascade}), nil)
	require.NoError(t, c.Initialize(context.Background()))
	return c
}

func newRequest(t *testing.T, method, target string, header http.Header, body any) *exchange.Request {
	t.Helper()
	req, err := exchange.NewRequest(method, target, header, body)
	require.NoError(t, err)
	return req
}

func generate(t *testing.T, c *Coordinator, req *exchange.Request, profile responder.Profile) (*exchange.Response, error) {
	t.Helper()
	resp := exchange.NewResponse()
	err := c.GenerateResponse(context.Background(), req, resp, profile)
	return resp, err
}

type fakeIndex struct {
	match func(rawURL, method, apiVersion string) (*specindex.MatchResult, error)
	calls []string
}

func (f *fakeIndex) Match(rawURL, method, apiVersion string) (*specindex.MatchResult, error) {
	f.calls = append(f.calls, apiVersion)
	return f.match(rawURL, method, apiVersion)
}

func (f *fakeIndex) Initialize(context.Context) error { return nil }

func (f *fakeIndex) Status() (specindex.Status, error) { return specindex.Initialized, nil }

func fixtureOperations(t *testing.T) map[string]*swagger.Operation {
	t.Helper()
	f, err := swagger.NewLoader().Load(testspec.Path(testspec.Write(t), testspec.SpecPath))
	require.NoError(t, err)
	ops, err := f.Operations()
	require.NoError(t, err)
	out := make(map[string]*swagger.Operation, len(ops))
	for _, op := range ops {
		out[op.ID()] = op
	}
	return out
}

func TestSearch(t *testing.T) {
	c := newCoordinator(t, Config{}, false)

	t.Run("declared api-version", func(t *testing.T) {
		op, version, err := c.Search(newRequest(t, "GET", thingURL, nil, nil))
		require.NoError(t, err)
		assert.Equal(t, "Things_Get", op.ID())
		assert.Equal(t, "2021-01-01", version)
	})

	t.Run("unknown api-version falls back", func(t *testing.T) {
		op, _, err := c.Search(newRequest(t, "GET", host+testspec.ThingPath+"?api-version=2030-01-01", nil, nil))
		require.NoError(t, err)
		assert.Equal(t, "Things_Get", op.ID())
		assert.Equal(t, "2022-01-01", op.APIVersion, "the last registered version wins")
	})

	t.Run("no match", func(t *testing.T) {
		_, _, err := c.Search(newRequest(t, "GET", host+"/subscriptions/sub1/providers/Microsoft.Other/things"+apiVersion, nil, nil))

		var noMatch *NoOperationMatchError
		require.True(t, errors.As(err, &noMatch), "got %v", err)
		assert.Contains(t, noMatch.Reason, "2021-01-01", "the first attempt's reason is kept")
		assert.Equal(t, http.StatusBadRequest, noMatch.StatusCode())
		assert.Equal(t, "InvalidResourceType", noMatch.Code())
	})
}

func TestSearchPrefersProviderOverGenericTemplate(t *testing.T) {
	ix := specindex.New(specindex.Config{Root: testspec.WriteGeneric(t)})
	c := New(Config{}, ix, responder.New(responder.Config{}), nil)
	require.NoError(t, c.Initialize(context.Background()))

	op, version, err := c.Search(newRequest(t, "GET", host+testspec.ChildPath+"?api-version="+testspec.APIVersionGeneric, nil, nil))
	require.NoError(t, err)
	assert.Equal(t, "Children_Get", op.ID())
	assert.Equal(t, testspec.APIVersionChild, op.APIVersion)
	assert.Equal(t, "unknown", version)
}

func TestSearchRetriesOnce(t *testing.T) {
	ix := &fakeIndex{match: func(_, _, apiVersion string) (*specindex.MatchResult, error) {
		return &specindex.MatchResult{APIVersion: apiVersion, Reason: "attempt " + apiVersion}, nil
	}}
	c := New(Config{}, ix, responder.New(responder.Config{}), nil)

	_, _, err := c.Search(newRequest(t, "GET", thingURL, nil, nil))
	var noMatch *NoOperationMatchError
	require.True(t, errors.As(err, &noMatch), "got %v", err)
	assert.Equal(t, "attempt ", noMatch.Reason)
	assert.Equal(t, []string{"", "unknown"}, ix.calls)
}

func TestSearchAmbiguous(t *testing.T) {
	ops := fixtureOperations(t)
	ix := &fakeIndex{match: func(_, method, _ string) (*specindex.MatchResult, error) {
		return nil, &specindex.AmbiguousMatchError{Method: method, Candidates: []*swagger.Operation{ops["Things_Get"], ops["Widgets_Get"]}}
	}}
	c := New(Config{}, ix, responder.New(responder.Config{}), nil)

	op, version, err := c.Search(newRequest(t, "GET", thingURL, nil, nil))
	require.NoError(t, err)
	assert.Equal(t, "Widgets_Get", op.ID())
	assert.Equal(t, "2021-01-01", version)
}

func TestSearchNotInitialized(t *testing.T) {
	ix := specindex.New(specindex.Config{Root: testspec.Write(t)})
	c := New(Config{}, ix, responder.New(responder.Config{}), nil)

	_, err := generate(t, c, newRequest(t, "GET", thingURL, nil, nil), responder.Profile{})
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestGenerateResponse(t *testing.T) {
	c := newCoordinator(t, Config{}, false)

	t.Run("get from example", func(t *testing.T) {
		resp, err := generate(t, c, newRequest(t, "GET", thingURL, nil, nil), responder.Profile{})
		require.NoError(t, err)
		assert.Equal(t, "200", resp.StatusCode)

		body := resp.Body.(map[string]any)
		assert.Equal(t, "thing1", body["name"])
		assert.Equal(t, "Succeeded", body["properties"].(map[string]any)["provisioningState"])
	})

	t.Run("long-running create and poll", func(t *testing.T) {
		resp, err := generate(t, c, newRequest(t, "PUT", thingURL, nil, map[string]any{"location": "westus"}), responder.Profile{})
		require.NoError(t, err)
		assert.Equal(t, "200", resp.StatusCode)
		assert.Equal(t, callbackURL, resp.Headers.Get("Location"))
		assert.Equal(t, "0", resp.Headers.Get("Retry-After"))
		assert.Equal(t, "thing1", resp.Body.(map[string]any)["name"], "renamed after the request path")

		poll, err := generate(t, c, newRequest(t, "GET", callbackURL, nil, nil), responder.Profile{})
		require.NoError(t, err)
		assert.Equal(t, "200", poll.StatusCode)
		body := poll.Body.(map[string]any)
		assert.Equal(t, "Succeeded", body["status"])
		assert.Equal(t, "westus", body["location"], "the poll reuses the create example")
	})

	t.Run("long-running delete without polling operation", func(t *testing.T) {
		resp, err := generate(t, c, newRequest(t, "DELETE", thingURL, nil, nil), responder.Profile{})
		require.NoError(t, err)
		assert.Equal(t, "200", resp.StatusCode)
		assert.Empty(t, resp.Headers.Get("Location"))
	})

	t.Run("always error", func(t *testing.T) {
		_, err := generate(t, c, newRequest(t, "GET", thingURL, nil, nil), responder.Profile{AlwaysError: http.StatusServiceUnavailable})

		var fault *IntentionalFaultError
		require.True(t, errors.As(err, &fault), "got %v", err)
		assert.Equal(t, http.StatusServiceUnavailable, fault.StatusCode())
		assert.Equal(t, "IntentionalError", fault.Code())
	})

	t.Run("unmatched", func(t *testing.T) {
		target := host + "/subscriptions/sub1/resourceGroups/rg1/providers/Microsoft.Mock/gadgets/g1" + apiVersion
		_, err := generate(t, c, newRequest(t, "GET", target, nil, nil), responder.Profile{})

		var noMatch *NoOperationMatchError
		assert.True(t, errors.As(err, &noMatch), "got %v", err)
	})

	t.Run("special resource group", func(t *testing.T) {
		resp, err := generate(t, c, newRequest(t, "PUT", groupURL, nil, nil), responder.Profile{})
		require.NoError(t, err)
		assert.Equal(t, "200", resp.StatusCode)
		assert.Equal(t, map[string]any{"provisioningState": "Succeeded"}, resp.Body.(map[string]any)["properties"])
	})
}

func TestGenerateResponseStateful(t *testing.T) {
	c := newCoordinator(t, Config{}, true)
	stateful := responder.Profile{Stateful: true}
	var notFound *responder.ResourceNotFoundError

	_, err := generate(t, c, newRequest(t, "GET", thingURL, nil, nil), stateful)
	require.True(t, errors.As(err, &notFound), "got %v", err)

	_, err = generate(t, c, newRequest(t, "PUT", thingURL, nil, map[string]any{"location": "westus"}), stateful)
	var rejected *responder.ResourceCreateRejectedError
	require.True(t, errors.As(err, &rejected), "got %v", err)

	_, err = generate(t, c, newRequest(t, "PUT", groupURL, nil, nil), stateful)
	require.NoError(t, err)
	_, err = generate(t, c, newRequest(t, "PUT", thingURL, nil, map[string]any{"location": "westus"}), stateful)
	require.NoError(t, err)

	resp, err := generate(t, c, newRequest(t, "GET", thingURL, nil, nil), stateful)
	require.NoError(t, err)
	assert.Equal(t, "200", resp.StatusCode)

	_, err = generate(t, c, newRequest(t, "DELETE", groupURL, nil, nil), stateful)
	require.NoError(t, err)
	_, err = generate(t, c, newRequest(t, "GET", thingURL, nil, nil), stateful)
	assert.True(t, errors.As(err, &notFound), "deleting the group removes the thing, got %v", err)

	require.True(t, c.Responder().Pool().Update("PUT", groupURL, nil).OK())
	c.ResetState()
	assert.Zero(t, c.Responder().Pool().Count())
}

func TestGenerateResponseValidation(t *testing.T) {
	c := newCoordinator(t, Config{ValidateRequest: true}, false)

	tests := []struct {
		name   string
		method string
		target string
		body   any
		field  string
	}{
		{name: "pattern", method: "GET", target: host + "/subscriptions/sub1/resourceGroups/rg1/providers/Microsoft.Mock/things/x" + apiVersion, field: "thingName"},
		{name: "missing api-version", method: "GET", target: host + testspec.ThingPath, field: "api-version"},
		{name: "body schema", method: "PATCH", target: thingURL, body: map[string]any{"properties": map[string]any{"size": "big"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := generate(t, c, newRequest(t, tt.method, tt.target, nil, tt.body), responder.Profile{})

			var invalid *validation.RequestError
			require.True(t, errors.As(err, &invalid), "got %v", err)
			if tt.field != "" {
				require.NotEmpty(t, invalid.Result.Errors)
				assert.Equal(t, tt.field, invalid.Result.Errors[0].Field)
			}
		})
	}

	resp, err := generate(t, c, newRequest(t, "GET", thingURL, nil, nil), responder.Profile{})
	require.NoError(t, err)
	assert.Equal(t, "200", resp.StatusCode)
}

func TestFindLROGetFailure(t *testing.T) {
	ops := fixtureOperations(t)
	ix := &fakeIndex{match: func(_, _, apiVersion string) (*specindex.MatchResult, error) {
		return &specindex.MatchResult{APIVersion: apiVersion, Reason: "none"}, nil
	}}
	c := New(Config{}, ix, responder.New(responder.Config{}), nil)
	req := newRequest(t, "POST", host+testspec.ThingPath+"/start"+apiVersion, nil, nil)

	callback, err := c.FindLROGet(context.Background(), req, ops["Things_Start"], "2021-01-01")
	require.NoError(t, err, "a declared 200 degrades to a synchronous call")
	assert.Empty(t, callback)

	asyncOnly := *ops["Things_Start"]
	spec := *asyncOnly.Spec
	spec.Responses = map[string]*swagger.Response{"202": spec.Responses["202"]}
	asyncOnly.Spec = &spec

	_, err = c.FindLROGet(context.Background(), req, &asyncOnly, "2021-01-01")
	var notFound *lro.PollingCallbackNotFoundError
	assert.True(t, errors.As(err, &notFound), "got %v", err)
}

func TestProfileFor(t *testing.T) {
	c := New(Config{Profiles: map[string]responder.Profile{
		responder.DefaultProfile: {Stateful: true},
		"faulty":                 {AlwaysError: 500},
	}}, &fakeIndex{}, responder.New(responder.Config{}), nil)

	assert.Equal(t, responder.Profile{Stateful: true}, c.ProfileFor(newRequest(t, "GET", thingURL, nil, nil)))
	assert.Equal(t, responder.Profile{AlwaysError: 500}, c.ProfileFor(newRequest(t, "GET", thingURL, http.Header{"Mock-Profile": {"faulty"}}, nil)))
	assert.Equal(t, responder.Profile{Stateful: true}, c.ProfileFor(newRequest(t, "GET", thingURL, http.Header{"Mock-Profile": {"missing"}}, nil)))
}

func TestSetMetrics(t *testing.T) {
	c := newCoordinator(t, Config{}, false)
	reg := prometheus.NewPedanticRegistry()
	c.SetMetrics(metrics.New(reg))

	_, err := generate(t, c, newRequest(t, "PUT", groupURL, nil, nil), responder.Profile{})
	require.NoError(t, err)
	_, err = generate(t, c, newRequest(t, "GET", thingURL, nil, nil), responder.Profile{})
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(reg, "armmock_searches_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one series per outcome")

	count, err = testutil.GatherAndCount(reg, "armmock_resources")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	m := metrics.New(prometheus.NewPedanticRegistry())
	require.NotPanics(t, func() {
		c.SetMetrics(m)
		c.SetMetrics(m)
	}, "the resource gauge is registered once per registry")
}
