// Package apierror defines the user-visible error taxonomy of the API.
// Every error here is terminal: it is reported to the caller as-is and never
// retried. Anything that is not an *APIError is a server fault.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies an APIError independently of its message.
type Kind string

const (
	KindWeakPassword       Kind = "weak_password"
	KindDuplicateEmail     Kind = "duplicate_email"
	KindPasswordMismatch   Kind = "password_mismatch"
	KindValidation         Kind = "validation"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindAccountInactive    Kind = "account_inactive"
	KindUnauthenticated    Kind = "unauthenticated"
	KindTokenExpired       Kind = "token_expired"
	KindInvalidToken       Kind = "invalid_token"
	KindForbidden          Kind = "forbidden"
	KindNotFound           Kind = "not_found"
	KindRateLimited        Kind = "rate_limited"
)

// APIError is an error that is safe to show to the client.
type APIError struct {
	Kind    Kind
	Status  int
	Message string
	// Rule is the failing password rule for KindWeakPassword.
	Rule string
}

func (e *APIError) Error() string {
	return e.Message
}

// Is matches another *APIError of the same kind, so errors.Is works against
// the values returned by the constructors.
func (e *APIError) Is(target error) bool {
	var t *APIError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// As extracts an *APIError from err.
func As(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsAuthentication reports whether the error should carry a bearer challenge.
func (e *APIError) IsAuthentication() bool {
	switch e.Kind {
	case KindUnauthenticated, KindTokenExpired, KindInvalidToken:
		return true
	}
	return false
}

func NewErrWeakPassword(rule, message string) *APIError {
	return &APIError{Kind: KindWeakPassword, Status: http.StatusBadRequest, Message: message, Rule: rule}
}

func NewErrEmailIsTaken() *APIError {
	return &APIError{Kind: KindDuplicateEmail, Status: http.StatusBadRequest, Message: "Email already registered"}
}

func NewErrPasswordMismatch() *APIError {
	return &APIError{Kind: KindPasswordMismatch, Status: http.StatusBadRequest, Message: "Passwords do not match"}
}

func NewErrValidation(format string, args ...any) *APIError {
	return &APIError{Kind: KindValidation, Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// NewErrInvalidCredentials is shared by "no such user" and "wrong password".
func NewErrInvalidCredentials() *APIError {
	return &APIError{Kind: KindInvalidCredentials, Status: http.StatusUnauthorized, Message: "Invalid email or password"}
}

func NewErrAccountInactive() *APIError {
	return &APIError{Kind: KindAccountInactive, Status: http.StatusUnauthorized, Message: "Account is inactive"}
}

func NewErrMissingAuthorizationToken() *APIError {
	return &APIError{Kind: KindUnauthenticated, Status: http.StatusUnauthorized, Message: "No authorization token provided"}
}

func NewErrInvalidAuthorizationScheme() *APIError {
	return &APIError{Kind: KindUnauthenticated, Status: http.StatusUnauthorized, Message: "Invalid authentication scheme. Use Bearer token."}
}

func NewErrUserNoLongerExists() *APIError {
	return &APIError{Kind: KindUnauthenticated, Status: http.StatusUnauthorized, Message: "User not found"}
}

func NewErrTokenExpired() *APIError {
	return &APIError{Kind: KindTokenExpired, Status: http.StatusUnauthorized, Message: "Token has expired"}
}

func NewErrInvalidAuthorizationToken() *APIError {
	return &APIError{Kind: KindInvalidToken, Status: http.StatusUnauthorized, Message: "Could not validate credentials"}
}

func NewErrTokenMissingUser() *APIError {
	return &APIError{Kind: KindInvalidToken, Status: http.StatusUnauthorized, Message: "Invalid token: missing user information"}
}

func NewErrForbidden() *APIError {
	return &APIError{Kind: KindForbidden, Status: http.StatusForbidden, Message: "Access denied"}
}

func NewErrTaskNotFound() *APIError {
	return &APIError{Kind: KindNotFound, Status: http.StatusNotFound, Message: "Task not found"}
}

func NewErrUserNotFound() *APIError {
	return &APIError{Kind: KindNotFound, Status: http.StatusNotFound, Message: "User not found"}
}

func NewErrRateLimited() *APIError {
	return &APIError{Kind: KindRateLimited, Status: http.StatusTooManyRequests, Message: "Rate limit exceeded. Please try again later."}
}
