package model

import "time"

// DefaultTokenTTL is the lifetime of an access token when none is configured.
const DefaultTokenTTL = 7 * 24 * time.Hour

// TokenClaims is the identity bound into an issued token.
type TokenClaims struct {
	UserID int64
	Email  string
}

// TokenData is the verified identity recovered from a token.
// UserID is zero when the token carried only an email.
type TokenData struct {
	UserID int64
	Email  string
}

// IssuedToken is a signed token and its absolute expiry.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenManager issues and verifies access tokens.
type TokenManager interface {
	Issue(claims TokenClaims, ttl time.Duration) (IssuedToken, error)
	Verify(token string) (TokenData, error)
}

// PasswordHasher hashes and verifies user passwords.
//
// VerifyDummy costs as much as Verify but checks against no real digest. It
// keeps signin for an unknown email as slow as a wrong password.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
	VerifyDummy(password string)
}
