package token

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/tasktracker-server/internal/model"
)

// Claims is the claim set written into every access token.
// The user id is carried twice: as a string in sub and as a number in user_id.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"user_id"`
	Email  string `json:"email,omitempty"`
}

// userIDClaims lists the claim names that may carry the user id, in lookup order.
var userIDClaims = []string{"user_id", "sub"}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey []byte
	now       func() time.Time
}

// Option configures a JWT.
type Option func(*JWT)

// WithClock replaces the wall clock used for iat, exp and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(j *JWT) {
		j.now = now
	}
}

var _ model.TokenManager = (*JWT)(nil)

// NewJWT creates a new JWT token manager with the provided secret key.
func NewJWT(secretKey string, opts ...Option) *JWT {
	j := &JWT{secretKey: []byte(secretKey), now: time.Now}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Issue signs an HS256 token for claims that expires after ttl.
// A non-positive ttl uses DefaultTokenTTL.
func (j *JWT) Issue(claims model.TokenClaims, ttl time.Duration) (model.IssuedToken, error) {
	if ttl <= 0 {
		ttl = model.DefaultTokenTTL
	}

	now := j.now()
	expiresAt := now.Add(ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(claims.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: claims.UserID,
		Email:  claims.Email,
	})

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return model.IssuedToken{}, fmt.Errorf("failed to sign access token: %w", err)
	}

	return model.IssuedToken{Token: tokenString, ExpiresAt: expiresAt}, nil
}

// Verify checks the signature and expiry of tokenString and recovers the identity.
// It returns model.ErrTokenExpired for a correctly signed but expired token and
// model.ErrTokenInvalid for everything else.
func (j *JWT) Verify(tokenString string) (model.TokenData, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
		jwt.WithStrictDecoding(),
	)

	claims := jwt.MapClaims{}
	_, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.TokenData{}, fmt.Errorf("%w: %v", model.ErrTokenExpired, err)
		}
		return model.TokenData{}, fmt.Errorf("%w: %v", model.ErrTokenInvalid, err)
	}

	data := model.TokenData{UserID: lookupUserID(claims)}
	if email, ok := claims["email"].(string); ok {
		data.Email = strings.TrimSpace(email)
	}

	if data.UserID == 0 && data.Email == "" {
		return model.TokenData{}, fmt.Errorf("%w: token carries no identity", model.ErrTokenInvalid)
	}

	return data, nil
}

// lookupUserID returns the first positive integer found under userIDClaims.
// Numbers decode as float64 and must be integral; strings must parse as base 10.
func lookupUserID(claims jwt.MapClaims) int64 {
	for _, name := range userIDClaims {
		switch v := claims[name].(type) {
		case float64:
			if v > 0 && v == math.Trunc(v) && v < math.MaxInt64 {
				return int64(v)
			}
		case string:
			id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err == nil && id > 0 {
				return id
			}
		}
	}
	return 0
}

// Lookup is the verify-or-none form of Verify: any failure yields false.
func (j *JWT) Lookup(tokenString string) (model.TokenData, bool) {
	data, err := j.Verify(tokenString)
	if err != nil {
		return model.TokenData{}, false
	}
	return data, true
}
