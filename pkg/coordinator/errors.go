package coordinator

import (
	"fmt"
	"net/http"

	"github.com/getmockd/armmock/pkg/arm"
	"github.com/getmockd/armmock/pkg/specindex"
)

// ErrNotInitialized is returned while the spec index is not ready.
var ErrNotInitialized = specindex.ErrNotInitialized

// NoOperationMatchError reports that no spec operation matches a request,
// with or without its declared API version.
type NoOperationMatchError struct {
	Method string
	URL    string
	Reason string
}

func (e *NoOperationMatchError) Error() string {
	return fmt.Sprintf("no operation matches %s %s: %s", e.Method, e.URL, e.Reason)
}

// StatusCode returns the HTTP status for the error.
func (e *NoOperationMatchError) StatusCode() int { return http.StatusBadRequest }

// Code returns the ARM error code.
func (e *NoOperationMatchError) Code() string { return arm.CloudErrorCodeInvalidResourceType }

// IntentionalFaultError is the failure forced by a profile's alwaysError
// setting.
type IntentionalFaultError struct {
	Status int
}

func (e *IntentionalFaultError) Error() string {
	return fmt.Sprintf("intentional fault with status %d", e.Status)
}

// StatusCode returns the configured status, or 500 when it is not a valid
// HTTP status.
func (e *IntentionalFaultError) StatusCode() int {
	if e.Status < 100 || e.Status > 999 {
		return http.StatusInternalServerError
	}
	return e.Status
}

// Code returns the ARM error code.
func (e *IntentionalFaultError) Code() string { return "IntentionalError" }
