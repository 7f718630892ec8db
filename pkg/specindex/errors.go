package specindex

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getmockd/armmock/pkg/swagger"
)

// ErrNotInitialized is returned by Match before a successful Initialize.
var ErrNotInitialized = errors.New("spec index is not initialized")

// AmbiguousMatchError is returned when the most specific candidates for a
// request come from different templates with equal specificity.
type AmbiguousMatchError struct {
	Method     string
	Path       string
	Candidates []*swagger.Operation
}

func (e *AmbiguousMatchError) Error() string {
	names := make([]string, len(e.Candidates))
	for i, op := range e.Candidates {
		names[i] = op.ID()
	}
	return fmt.Sprintf("%s %s matches more than one operation: %s", e.Method, e.Path, strings.Join(names, ", "))
}

// StatusCode returns the HTTP status for the error.
func (e *AmbiguousMatchError) StatusCode() int { return http.StatusBadRequest }

// Code returns the ARM error code.
func (e *AmbiguousMatchError) Code() string { return "AmbiguousOperation" }

// Last returns the candidate a caller should fall back to.
func (e *AmbiguousMatchError) Last() *swagger.Operation {
	if len(e.Candidates) == 0 {
		return nil
	}
	return e.Candidates[len(e.Candidates)-1]
}
