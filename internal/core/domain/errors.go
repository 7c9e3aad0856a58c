package domain

import (
	"errors"
	"fmt"
)

// LifecycleError represents a failure of one step of a change request run.
type LifecycleError struct {
	Code    string
	Message string
	Err     error
}

func (e *LifecycleError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *LifecycleError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeInvalidInput     = "INVALID_INPUT"
	ErrCodeCreateFailed     = "CREATE_FAILED"
	ErrCodeTransitionFailed = "TRANSITION_FAILED"
	ErrCodeSinkWriteFailed  = "SINK_WRITE_FAILED"
)

var ErrMissingSysID = errors.New("create response did not contain a sys_id")

func NewInputError(err error) *LifecycleError {
	return &LifecycleError{
		Code:    ErrCodeInvalidInput,
		Message: "overrides must be a JSON object",
		Err:     err,
	}
}

func NewCreateError(err error) *LifecycleError {
	return &LifecycleError{
		Code:    ErrCodeCreateFailed,
		Message: "change request creation failed",
		Err:     err,
	}
}

func NewTransitionError(index, state int, err error) *LifecycleError {
	return &LifecycleError{
		Code:    ErrCodeTransitionFailed,
		Message: fmt.Sprintf("transition %d to state %d failed", index, state),
		Err:     err,
	}
}

func NewSinkWriteError(err error) *LifecycleError {
	return &LifecycleError{
		Code:    ErrCodeSinkWriteFailed,
		Message: "could not write to output sink",
		Err:     err,
	}
}

// IsErrorCode reports whether err is a LifecycleError with the given code.
func IsErrorCode(err error, code string) bool {
	var lcErr *LifecycleError
	if errors.As(err, &lcErr) {
		return lcErr.Code == code
	}
	return false
}

// PayloadError is implemented by remote errors that carry the response body
// the service sent back.
type PayloadError interface {
	error
	Payload() string
}

// ErrorPayload returns the remote error payload when err carries one and the
// error message otherwise.
func ErrorPayload(err error) string {
	if err == nil {
		return ""
	}
	var pe PayloadError
	if errors.As(err, &pe) && pe.Payload() != "" {
		return pe.Payload()
	}
	return err.Error()
}
