package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors_Status(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    *APIError
		status int
		kind   Kind
	}{
		{name: "weak password", err: NewErrWeakPassword("length", "too short"), status: http.StatusBadRequest, kind: KindWeakPassword},
		{name: "email taken", err: NewErrEmailIsTaken(), status: http.StatusBadRequest, kind: KindDuplicateEmail},
		{name: "password mismatch", err: NewErrPasswordMismatch(), status: http.StatusBadRequest, kind: KindPasswordMismatch},
		{name: "validation", err: NewErrValidation("bad %s", "title"), status: http.StatusBadRequest, kind: KindValidation},
		{name: "invalid credentials", err: NewErrInvalidCredentials(), status: http.StatusUnauthorized, kind: KindInvalidCredentials},
		{name: "inactive", err: NewErrAccountInactive(), status: http.StatusUnauthorized, kind: KindAccountInactive},
		{name: "missing token", err: NewErrMissingAuthorizationToken(), status: http.StatusUnauthorized, kind: KindUnauthenticated},
		{name: "wrong scheme", err: NewErrInvalidAuthorizationScheme(), status: http.StatusUnauthorized, kind: KindUnauthenticated},
		{name: "expired", err: NewErrTokenExpired(), status: http.StatusUnauthorized, kind: KindTokenExpired},
		{name: "invalid token", err: NewErrInvalidAuthorizationToken(), status: http.StatusUnauthorized, kind: KindInvalidToken},
		{name: "forbidden", err: NewErrForbidden(), status: http.StatusForbidden, kind: KindForbidden},
		{name: "task not found", err: NewErrTaskNotFound(), status: http.StatusNotFound, kind: KindNotFound},
		{name: "rate limited", err: NewErrRateLimited(), status: http.StatusTooManyRequests, kind: KindRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.kind, tt.err.Kind)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestAPIError_IsAndAs(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("handler: %w", NewErrForbidden())

	assert.ErrorIs(t, wrapped, NewErrForbidden())
	assert.NotErrorIs(t, wrapped, NewErrTaskNotFound())
	assert.False(t, errors.Is(errors.New("plain"), NewErrForbidden()))

	apiErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, "Access denied", apiErr.Message)

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
}

func TestAPIError_IsAuthentication(t *testing.T) {
	t.Parallel()

	assert.True(t, NewErrMissingAuthorizationToken().IsAuthentication())
	assert.True(t, NewErrTokenExpired().IsAuthentication())
	assert.True(t, NewErrInvalidAuthorizationToken().IsAuthentication())
	assert.False(t, NewErrInvalidCredentials().IsAuthentication())
	assert.False(t, NewErrForbidden().IsAuthentication())
}
