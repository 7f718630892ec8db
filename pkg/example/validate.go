package example

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/getmockd/armmock/pkg/exchange"
	"github.com/getmockd/armmock/pkg/swagger"
)

// MismatchError reports a live parameter that disagrees with the pinned example.
type MismatchError struct {
	Location ParameterType
	Name     string
	Actual   any
	Expected any
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("example does not match request: %s parameter %q is %s, example has %s",
		e.Location, e.Name, render(e.Actual), render(e.Expected))
}

// StatusCode returns the HTTP status for the error.
func (e *MismatchError) StatusCode() int { return http.StatusBadRequest }

// Code returns the ARM error code.
func (e *MismatchError) Code() string { return "ExampleNotMatch" }

func render(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

// ValidateRequestByExample checks every live parameter the example also
// records. Null-valued object keys are ignored on both sides and RFC 3339
// timestamps compare by instant.
func ValidateRequestByExample(ex *swagger.Example, req *exchange.Request, op *swagger.Operation) error {
	params, types, err := GenExampleParameters(op, req)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		expected, ok := ex.Parameters[name]
		if !ok || expected == nil {
			continue
		}
		actual := params[name]
		if !Equal(actual, expected) {
			return &MismatchError{Location: types[name], Name: name, Actual: actual, Expected: expected}
		}
	}
	return nil
}

// Equal compares two decoded JSON values, ignoring null-valued object keys and
// comparing RFC 3339 timestamps by instant.
func Equal(a, b any) bool {
	return cmp.Equal(RemoveNullValueKeys(a), RemoveNullValueKeys(b), cmp.Comparer(equalStrings))
}

func equalStrings(a, b string) bool {
	if a == b {
		return true
	}
	ta, errA := time.Parse(time.RFC3339Nano, a)
	tb, errB := time.Parse(time.RFC3339Nano, b)
	return errA == nil && errB == nil && ta.Equal(tb)
}

// RemoveNullValueKeys returns a copy of v without object keys whose value is
// null, at any depth.
func RemoveNullValueKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if val == nil {
				continue
			}
			out[k] = RemoveNullValueKeys(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = RemoveNullValueKeys(val)
		}
		return out
	default:
		return v
	}
}
