package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/tasktracker-server/internal/model"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func signMap(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestJWT_Roundtrip(t *testing.T) {
	j := NewJWT("secret")

	issued, err := j.Issue(model.TokenClaims{UserID: 42, Email: "a@example.com"}, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, issued.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), issued.ExpiresAt, 5*time.Second)

	got, err := j.Verify(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, model.TokenData{UserID: 42, Email: "a@example.com"}, got)
}

func TestJWT_Issue_Claims(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	j := NewJWT("secret", WithClock(fixedClock(now)))

	issued, err := j.Issue(model.TokenClaims{UserID: 7, Email: "b@example.com"}, 0)
	require.NoError(t, err)
	assert.Equal(t, now.Add(model.DefaultTokenTTL), issued.ExpiresAt)

	claims := &Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(issued.Token, claims)
	require.NoError(t, err)
	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "b@example.com", claims.Email)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, now.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, now.Add(model.DefaultTokenTTL).Unix(), claims.ExpiresAt.Unix())
}

func TestJWT_Issue_UniqueIDs(t *testing.T) {
	j := NewJWT("secret", WithClock(fixedClock(time.Now())))

	a, err := j.Issue(model.TokenClaims{UserID: 1}, time.Hour)
	require.NoError(t, err)
	b, err := j.Issue(model.TokenClaims{UserID: 1}, time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, a.Token, b.Token)
}

func TestJWT_Verify_Expired(t *testing.T) {
	issuedAt := time.Now()
	issuer := NewJWT("secret", WithClock(fixedClock(issuedAt)))
	issued, err := issuer.Issue(model.TokenClaims{UserID: 1}, time.Minute)
	require.NoError(t, err)

	later := NewJWT("secret", WithClock(fixedClock(issuedAt.Add(2*time.Minute))))
	_, err = later.Verify(issued.Token)
	require.ErrorIs(t, err, model.ErrTokenExpired)
	assert.NotErrorIs(t, err, model.ErrTokenInvalid)
}

func TestJWT_Verify_ExpiredWithWrongSecretIsInvalid(t *testing.T) {
	issuedAt := time.Now()
	issuer := NewJWT("other", WithClock(fixedClock(issuedAt)))
	issued, err := issuer.Issue(model.TokenClaims{UserID: 1}, time.Minute)
	require.NoError(t, err)

	later := NewJWT("secret", WithClock(fixedClock(issuedAt.Add(time.Hour))))
	_, err = later.Verify(issued.Token)
	require.ErrorIs(t, err, model.ErrTokenInvalid)
}

func TestJWT_Verify_Invalid(t *testing.T) {
	t.Parallel()

	j := NewJWT("secret")
	valid, err := j.Issue(model.TokenClaims{UserID: 1}, time.Hour)
	require.NoError(t, err)

	parts := strings.Split(valid.Token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	wrongSecret, err := NewJWT("different").Issue(model.TokenClaims{UserID: 1}, time.Hour)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": 1,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not.a.jwt"},
		{name: "tampered signature", token: tampered},
		{name: "wrong secret", token: wrongSecret.Token},
		{name: "alg none", token: none},
		{name: "missing exp", token: signMap(t, "secret", jwt.MapClaims{"user_id": 1})},
		{name: "no identity", token: signMap(t, "secret", jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})},
		{name: "fractional id and no email", token: signMap(t, "secret", jwt.MapClaims{
			"user_id": 1.5,
			"exp":     time.Now().Add(time.Hour).Unix(),
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := j.Verify(tt.token)
			require.ErrorIs(t, err, model.ErrTokenInvalid)
		})
	}
}

func TestJWT_Verify_IdentityAliases(t *testing.T) {
	t.Parallel()

	j := NewJWT("secret")
	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name   string
		claims jwt.MapClaims
		want   model.TokenData
	}{
		{
			name:   "numeric user_id",
			claims: jwt.MapClaims{"user_id": 5, "exp": exp},
			want:   model.TokenData{UserID: 5},
		},
		{
			name:   "string user_id",
			claims: jwt.MapClaims{"user_id": "6", "exp": exp},
			want:   model.TokenData{UserID: 6},
		},
		{
			name:   "sub only",
			claims: jwt.MapClaims{"sub": "9", "exp": exp},
			want:   model.TokenData{UserID: 9},
		},
		{
			name:   "user_id wins over sub",
			claims: jwt.MapClaims{"user_id": 3, "sub": "4", "exp": exp},
			want:   model.TokenData{UserID: 3},
		},
		{
			name:   "unusable user_id falls back to sub",
			claims: jwt.MapClaims{"user_id": "abc", "sub": "8", "exp": exp},
			want:   model.TokenData{UserID: 8},
		},
		{
			name:   "email only",
			claims: jwt.MapClaims{"email": "c@example.com", "exp": exp},
			want:   model.TokenData{Email: "c@example.com"},
		},
		{
			name:   "non-numeric sub with email",
			claims: jwt.MapClaims{"sub": "c@example.com", "email": "c@example.com", "exp": exp},
			want:   model.TokenData{Email: "c@example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := j.Verify(signMap(t, "secret", tt.claims))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJWT_Lookup(t *testing.T) {
	t.Parallel()

	j := NewJWT("secret")
	issued, err := j.Issue(model.TokenClaims{UserID: 11}, time.Hour)
	require.NoError(t, err)

	data, ok := j.Lookup(issued.Token)
	assert.True(t, ok)
	assert.Equal(t, int64(11), data.UserID)

	data, ok = j.Lookup("garbage")
	assert.False(t, ok)
	assert.Zero(t, data)
}

const base64URLAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

func TestJWT_Verify_RejectsAnySingleCharacterChange(t *testing.T) {
	t.Parallel()

	j := NewJWT("secret")
	issued, err := j.Issue(model.TokenClaims{UserID: 7}, time.Hour)
	require.NoError(t, err)

	for pos := 0; pos < len(issued.Token); pos++ {
		if issued.Token[pos] == '.' {
			continue
		}
		for _, c := range []byte(base64URLAlphabet) {
			if c == issued.Token[pos] {
				continue
			}
			changed := []byte(issued.Token)
			changed[pos] = c

			data, err := j.Verify(string(changed))
			if !assert.ErrorIs(t, err, model.ErrTokenInvalid, "position %d/%d %q -> %q accepted as %+v", pos, len(issued.Token), issued.Token[pos], c, data) {
				return
			}
		}
	}
}

func TestJWT_Verify_RejectsChangedSignaturePaddingBits(t *testing.T) {
	t.Parallel()

	j := NewJWT("secret")
	issued, err := j.Issue(model.TokenClaims{UserID: 7}, time.Hour)
	require.NoError(t, err)

	// A 32-byte HMAC encodes to 43 characters; the last one carries two unused bits.
	last := len(issued.Token) - 1
	idx := strings.IndexByte(base64URLAlphabet, issued.Token[last])
	require.GreaterOrEqual(t, idx, 0)

	changed := []byte(issued.Token)
	changed[last] = base64URLAlphabet[idx^1]

	_, err = j.Verify(string(changed))
	assert.ErrorIs(t, err, model.ErrTokenInvalid)
}
