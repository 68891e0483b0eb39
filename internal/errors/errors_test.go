package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err:  &AppError{Code: ErrCodeNotFound, Message: "key not found"},
			want: "key not found",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeInternal,
				Message: "failed to persist",
				Cause:   errors.New("disk full"),
			},
			want: "failed to persist: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(cause, ErrCodeInternal, "wrapped error")

	assert.ErrorIs(t, err, cause)
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "nothing"))
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{name: "not found", err: NotFound("missing"), check: IsNotFound},
		{name: "not found formatted", err: NotFoundf("route %q", "/x"), check: IsNotFound},
		{name: "validation", err: Validation("bad"), check: IsValidation},
		{name: "validation field", err: ValidationField("email", "bad"), check: IsValidation},
		{name: "unauthorized", err: Wrap(errors.New("401"), ErrCodeUnauthorized, "nope"), check: IsUnauthorized},
		{name: "internal", err: Internalf("boom %d", 1), check: IsInternal},
		{name: "wrapped by fmt", err: fmt.Errorf("ctx: %w", NotFound("missing")), check: IsNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.False(t, tt.check(errors.New("plain")))
		})
	}
}

func TestFromContext(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{name: "deadline", err: context.DeadlineExceeded, want: ErrCodeTimeout},
		{name: "wrapped deadline", err: fmt.Errorf("push: %w", context.DeadlineExceeded), want: ErrCodeTimeout},
		{name: "canceled", err: context.Canceled, want: ErrCodeCanceled},
		{name: "other", err: errors.New("boom"), want: ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromContext(tt.err, "navigation interrupted")

			assert.Equal(t, tt.want, GetCode(err))
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, "navigation interrupted", err.Message)
		})
	}
	assert.Nil(t, FromContext(nil, "nothing"))
}

func TestGetCodeAndField(t *testing.T) {
	err := fmt.Errorf("login: %w", ValidationField("password", "too short"))

	assert.Equal(t, ErrCodeValidation, GetCode(err))
	assert.Equal(t, "password", GetField(err))
	assert.Equal(t, ErrorCode(""), GetCode(errors.New("plain")))
	assert.Equal(t, "", GetField(NotFound("x")))
}

func TestAPIError_Shapes(t *testing.T) {
	server := &APIError{Message: "Email already registered", Status: 409, Data: map[string]any{"message": "Email already registered"}}
	assert.True(t, server.Responded())
	assert.False(t, server.NoResponse())
	assert.Equal(t, "Email already registered (status 409)", server.Error())

	offline := &APIError{Message: "Could not connect to the server", Status: StatusNoResponse, Cause: errors.New("dial tcp: refused")}
	assert.True(t, offline.NoResponse())
	assert.False(t, offline.Responded())
	assert.Contains(t, offline.Error(), "dial tcp: refused")

	broken := &APIError{Message: "bad url", Status: StatusRequestFailed}
	assert.True(t, broken.RequestFailed())
}

func TestAsAPIError(t *testing.T) {
	wrapped := fmt.Errorf("sign in: %w", &APIError{Message: "Unauthorized", Status: 401})

	apiErr, ok := AsAPIError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, 401, apiErr.Status)
	assert.True(t, IsUnauthorizedStatus(wrapped))

	_, ok = AsAPIError(errors.New("plain"))
	assert.False(t, ok)
	assert.False(t, IsUnauthorizedStatus(&APIError{Status: 500}))
}
