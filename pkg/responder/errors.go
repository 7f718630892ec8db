package responder

import (
	"fmt"
	"net/http"
)

// ExampleNotFoundError is returned when the requested example id is not
// declared for the operation, or the operation declares no examples.
type ExampleNotFoundError struct {
	OperationID string
	ID          string
}

func (e *ExampleNotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("operation %s declares no examples", e.OperationID)
	}
	return fmt.Sprintf("example %q not found for operation %s", e.ID, e.OperationID)
}

// StatusCode returns the HTTP status code for this error.
func (e *ExampleNotFoundError) StatusCode() int { return http.StatusBadRequest }

// Code returns the ARM error code.
func (e *ExampleNotFoundError) Code() string { return "ExampleNotFound" }

// ResourceCreateRejectedError is returned under a stateful profile when the
// cascade policy refuses a create because a parent resource does not exist.
type ResourceCreateRejectedError struct {
	URL string
}

func (e *ResourceCreateRejectedError) Error() string {
	return fmt.Sprintf("parent resource of %s does not exist", e.URL)
}

// StatusCode returns the HTTP status code for this error.
func (e *ResourceCreateRejectedError) StatusCode() int { return http.StatusBadRequest }

// Code returns the ARM error code.
func (e *ResourceCreateRejectedError) Code() string { return "NoParentResource" }

// ResourceNotFoundError is returned under a stateful profile when a read,
// update or delete addresses a resource that was never created.
type ResourceNotFoundError struct {
	URL string
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("resource %s not found", e.URL)
}

// StatusCode returns the HTTP status code for this error.
func (e *ResourceNotFoundError) StatusCode() int { return http.StatusNotFound }

// Code returns the ARM error code.
func (e *ResourceNotFoundError) Code() string { return "ResourceNotFound" }

// WrongExampleResponseError is returned when an example has no response
// usable for the request, or its response does not fit the declared schema.
type WrongExampleResponseError struct {
	OperationID string
	Status      string
	Reason      string
}

func (e *WrongExampleResponseError) Error() string {
	msg := "unusable example response"
	if e.OperationID != "" {
		msg += " for " + e.OperationID
	}
	if e.Status != "" {
		msg += " (status " + e.Status + ")"
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// StatusCode returns the HTTP status code for this error.
func (e *WrongExampleResponseError) StatusCode() int { return http.StatusInternalServerError }

// Code returns the ARM error code.
func (e *WrongExampleResponseError) Code() string { return "WrongExampleResponse" }
