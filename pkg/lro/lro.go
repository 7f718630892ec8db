// Package lro discovers the polling URL of long-running ARM operations.
//
// ARM long-running mutations are polled through a GET on the resource they
// act on. The resolver walks back from the request path, probing GET
// operations at resource-name boundaries, and picks the first whose success
// schema is the same as the mutation's.
package lro

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/getmockd/armmock/pkg/arm"
	"github.com/getmockd/armmock/pkg/exchange"
	"github.com/getmockd/armmock/pkg/logging"
	"github.com/getmockd/armmock/pkg/specindex"
	"github.com/getmockd/armmock/pkg/swagger"
)

// MaxTruncations bounds how many trailing segments the search removes.
const MaxTruncations = 4

// Matcher matches a URL to spec operations.
type Matcher interface {
	Match(rawURL, method, apiVersion string) (*specindex.MatchResult, error)
}

// PollingCallbackNotFoundError reports that no polling GET was found.
type PollingCallbackNotFoundError struct {
	Method string
	URL    string
}

func (e *PollingCallbackNotFoundError) Error() string {
	return fmt.Sprintf("no polling operation found for long-running %s %s", e.Method, e.URL)
}

// StatusCode returns the HTTP status for the error.
func (e *PollingCallbackNotFoundError) StatusCode() int { return http.StatusInternalServerError }

// Code returns the ARM error code.
func (e *PollingCallbackNotFoundError) Code() string { return "LroCallbackNotFound" }

// Resolver finds polling URLs.
type Resolver struct {
	matcher Matcher
	log     *slog.Logger
}

// NewResolver creates a resolver probing through m.
func NewResolver(m Matcher) *Resolver {
	return &Resolver{matcher: m, log: logging.Nop()}
}

// SetLogger sets the operational logger.
func (r *Resolver) SetLogger(log *slog.Logger) {
	if log != nil {
		r.log = log
	}
}

// Find returns the polling URL for req, matched to the long-running op. The
// returned URL carries the original query plus lro-callback=true.
func (r *Resolver) Find(ctx context.Context, req *exchange.Request, op *swagger.Operation, apiVersion string) (string, error) {
	want, err := op.ResponseSchema("200")
	if err != nil {
		return "", err
	}

	query := "?"
	if i := strings.IndexByte(req.URL, '?'); i >= 0 && i < len(req.URL)-1 {
		query = req.URL[i:] + "&"
	}
	query += arm.QueryLROCallback + "=true"

	segments := arm.Segments(req.Path())
	n := len(segments)
	for removed := 0; removed <= MaxTruncations && removed < n; removed++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		// After the first probe only resource-name boundaries are tried;
		// ARM resource paths have an even number of segments.
		current := segments[:n-removed]
		if removed > 0 && len(current)%2 != 0 {
			continue
		}

		candidate := req.Protocol + "://" + req.Host + "/" + strings.Join(current, "/") + query
		found, err := r.probe(candidate, apiVersion, want)
		if err != nil {
			return "", err
		}
		if found {
			r.log.Debug("resolved polling url", "operationId", op.ID(), "url", candidate, "removed", removed)
			return candidate, nil
		}
	}
	return "", &PollingCallbackNotFoundError{Method: req.Method, URL: req.URL}
}

// probe reports whether a GET at candidate has the wanted success schema.
// Only schema resolution failures are returned; match failures mean try the
// next candidate.
func (r *Resolver) probe(candidate, apiVersion string, want map[string]any) (bool, error) {
	res, err := r.matcher.Match(candidate, http.MethodGet, apiVersion)
	var ambiguous *specindex.AmbiguousMatchError
	switch {
	case errors.As(err, &ambiguous):
		return true, nil
	case err != nil:
		r.log.Debug("polling probe failed", "url", candidate, "error", err)
		return false, nil
	}

	get := res.Last()
	if get == nil {
		return false, nil
	}
	got, err := get.ResponseSchema("200")
	if err != nil {
		return false, err
	}
	return cmp.Equal(want, got), nil
}
