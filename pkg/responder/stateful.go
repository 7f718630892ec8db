package responder

import (
	"net/http"
	"net/url"

	"github.com/getmockd/armmock/pkg/arm"
	"github.com/getmockd/armmock/pkg/exchange"
	"github.com/getmockd/armmock/pkg/swagger"
)

const provisioningSucceeded = "Succeeded"

// GenStatefulResponse reconciles a synthesized payload with the resource pool
// and writes it to resp.
//
// Under a stateful profile, GET, DELETE and PATCH on a management-level URL
// require the resource to exist, and creates rejected by the cascade policy
// fail. The pool is updated for every request. Paging links are cleared,
// provisioning states report success, and payloads not pinned to an example
// are renamed after the last path segment.
func (r *Responder) GenStatefulResponse(req *exchange.Request, resp *exchange.Response, profile Profile, status string, payload *swagger.ExampleResponse) error {
	path := req.Path()
	if profile.Stateful {
		switch req.Method {
		case http.MethodGet, http.MethodDelete, http.MethodPatch:
			if arm.IsManagementURL(path) && !r.pool.HasURL(path) {
				return &ResourceNotFoundError{URL: path}
			}
		}
	}

	outcome := r.pool.Update(req.Method, req.URL, req.Body)
	r.log.Debug("resource pool updated", "method", req.Method, "path", path, "outcome", outcome.String())
	if profile.Stateful && !outcome.OK() {
		return &ResourceCreateRejectedError{URL: path}
	}

	var body any
	if payload != nil {
		body = clone(payload.Body)
	}
	switch t := body.(type) {
	case map[string]any, []any:
		replaceProperty(t, "nextLink", nil)
		replaceProperty(t, "provisioningState", provisioningSucceeded)
		if _, pinned := req.HeaderValue(arm.HeaderNameExampleID); !pinned {
			renameAfterPath(t, path)
		}
	}

	resp.Set(status, body, nil)
	return nil
}

// renameAfterPath sets a top-level string name to the last path segment.
func renameAfterPath(body any, path string) {
	obj, ok := body.(map[string]any)
	if !ok {
		return
	}
	if _, isString := obj["name"].(string); !isString {
		return
	}
	segments := arm.Segments(path)
	if len(segments) == 0 {
		return
	}
	name := segments[len(segments)-1]
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	obj["name"] = name
}
