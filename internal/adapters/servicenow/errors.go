package servicenow

import (
	"errors"
	"fmt"
)

// APIError is a non-2xx answer from the change API.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
	Detail     string
	Body       string
}

// APIErrorResponse is the error envelope the Table and Change APIs use:
// {"error": {"message": "...", "detail": "..."}, "status": "failure"}.
type APIErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	} `json:"error"`
	Status string `json:"status"`
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "" && e.Detail != "":
		return fmt.Sprintf("servicenow error: %s: %s (status: %d)", e.Message, e.Detail, e.StatusCode)
	case e.Message != "":
		return fmt.Sprintf("servicenow error: %s (status: %d)", e.Message, e.StatusCode)
	default:
		return fmt.Sprintf("servicenow returned status %d", e.StatusCode)
	}
}

// Payload returns the raw response body so callers can log exactly what the
// service sent.
func (e *APIError) Payload() string {
	return e.Body
}

func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}
