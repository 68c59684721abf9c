package model

import "time"

// TokenType is reported to clients alongside every access token.
const TokenType = "bearer"

// SignupParams contains parameters to register a user.
// ConfirmPassword and Name are optional.
type SignupParams struct {
	Email           string
	Password        string
	ConfirmPassword *string
	Name            *string
}

// SigninParams contains parameters to sign a user in.
type SigninParams struct {
	Email    string
	Password string
}

// AuthSession is the result of a successful signup or signin.
type AuthSession struct {
	User        PublicUser
	AccessToken string
	ExpiresAt   time.Time
	ExpiresIn   time.Duration
}
