package responder

import (
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/getmockd/armmock/pkg/arm"
	"github.com/getmockd/armmock/pkg/exchange"
	"github.com/getmockd/armmock/pkg/swagger"
)

// IsLROCallback reports whether the query marks a long-running poll.
func IsLROCallback(query url.Values) bool {
	return query.Get(arm.QueryLROCallback) == "true"
}

// ChooseStatus picks the example response to return.
//
// The first call of a long-running operation prefers 202 with a Location
// header, then 201 with Azure-AsyncOperation, then 200 with Location. A poll
// returns the terminal 200, 204 or 201 after a 202, and 200 otherwise. Other
// calls take the status nearest to 200.
func ChooseStatus(query url.Values, resp *exchange.Response, responses map[string]*swagger.ExampleResponse, lroCallback string) (string, *swagger.ExampleResponse, error) {
	callback := IsLROCallback(query)

	switch {
	case callback:
		var order []int
		switch {
		case has(responses, http.StatusAccepted):
			order = []int{http.StatusOK, http.StatusNoContent, http.StatusCreated}
		default:
			order = []int{http.StatusOK}
		}
		for _, status := range order {
			if code, ret, ok := find(responses, status); ok {
				return code, ret, nil
			}
		}
	case lroCallback != "":
		if code, ret, ok := find(responses, http.StatusAccepted); ok {
			setPollingHeader(resp, arm.HeaderNameLocation, lroCallback)
			return code, ret, nil
		}
		if code, ret, ok := find(responses, http.StatusCreated); ok {
			setPollingHeader(resp, arm.HeaderNameAsyncOperation, lroCallback)
			return code, ret, nil
		}
		if code, ret, ok := find(responses, http.StatusOK); ok {
			setPollingHeader(resp, arm.HeaderNameLocation, lroCallback)
			return code, ret, nil
		}
	default:
		if code, ret, ok := nearest(responses, http.StatusOK); ok {
			return code, ret, nil
		}
	}
	return "", nil, &WrongExampleResponseError{Reason: "no usable status among [" + strings.Join(codes(responses), ", ") + "]"}
}

func has(responses map[string]*swagger.ExampleResponse, status int) bool {
	_, ok := responses[strconv.Itoa(status)]
	return ok
}

func find(responses map[string]*swagger.ExampleResponse, status int) (string, *swagger.ExampleResponse, bool) {
	code := strconv.Itoa(status)
	ret, ok := responses[code]
	return code, ret, ok
}

// nearest returns the numeric status closest to target. Ties go to the
// lower code.
func nearest(responses map[string]*swagger.ExampleResponse, target int) (string, *swagger.ExampleResponse, bool) {
	best, bestDistance := "", -1
	for _, code := range codes(responses) {
		n, err := strconv.Atoi(code)
		if err != nil {
			continue
		}
		distance := n - target
		if distance < 0 {
			distance = -distance
		}
		if bestDistance < 0 || distance < bestDistance {
			best, bestDistance = code, distance
		}
	}
	if bestDistance < 0 {
		return "", nil, false
	}
	return best, responses[best], true
}

// codes returns the response keys in ascending numeric order, non-numeric
// keys last.
func codes(responses map[string]*swagger.ExampleResponse) []string {
	out := make([]string, 0, len(responses))
	for code := range responses {
		out = append(out, code)
	}
	sort.Slice(out, func(i, j int) bool {
		a, errA := strconv.Atoi(out[i])
		b, errB := strconv.Atoi(out[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return out[i] < out[j]
		}
	})
	return out
}

func setPollingHeader(resp *exchange.Response, name, lroCallback string) {
	if resp.Headers == nil {
		resp.Headers = http.Header{}
	}
	resp.Headers.Set(name, lroCallback)
	resp.Headers.Set(arm.HeaderNameRetryAfter, "0")
}
