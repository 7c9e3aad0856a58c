package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/DanielPopoola/changebot/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

type payloadErr struct {
	body string
}

func (e *payloadErr) Error() string   { return "remote said no" }
func (e *payloadErr) Payload() string { return e.body }

func TestErrorPayload(t *testing.T) {
	t.Run("prefers remote payload", func(t *testing.T) {
		err := domain.NewCreateError(&payloadErr{body: `{"error":{"message":"bad"}}`})

		assert.Equal(t, `{"error":{"message":"bad"}}`, domain.ErrorPayload(err))
	})

	t.Run("falls back to message", func(t *testing.T) {
		err := fmt.Errorf("error making request: %w", errors.New("connection refused"))

		assert.Equal(t, "error making request: connection refused", domain.ErrorPayload(err))
	})

	t.Run("empty payload falls back to message", func(t *testing.T) {
		assert.Equal(t, "remote said no", domain.ErrorPayload(&payloadErr{}))
	})

	t.Run("nil", func(t *testing.T) {
		assert.Equal(t, "", domain.ErrorPayload(nil))
	})
}

func TestIsErrorCode(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", domain.NewTransitionError(1, 2, errors.New("boom")))

	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeTransitionFailed))
	assert.False(t, domain.IsErrorCode(err, domain.ErrCodeCreateFailed))
	assert.False(t, domain.IsErrorCode(errors.New("plain"), domain.ErrCodeCreateFailed))
	assert.EqualError(t, err, "wrapped: transition 1 to state 2 failed: boom")
}
