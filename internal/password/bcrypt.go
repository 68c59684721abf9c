// Package password hashes user passwords and checks their strength.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/tasktracker-server/internal/model"
)

// DefaultCost is the bcrypt cost used in production.
const DefaultCost = 12

var _ model.PasswordHasher = (*Bcrypt)(nil)

// Bcrypt implements PasswordHasher with bcrypt. The digest embeds a fresh
// 16-byte salt and the cost, so Verify needs nothing but the digest.
type Bcrypt struct {
	cost  int
	dummy []byte
}

// NewBcrypt creates a hasher with the given cost. Values outside bcrypt's
// range fall back to DefaultCost.
func NewBcrypt(cost int) (*Bcrypt, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy digest: %w", err)
	}

	return &Bcrypt{cost: cost, dummy: dummy}, nil
}

// Cost returns the configured bcrypt cost.
func (b *Bcrypt) Cost() int {
	return b.cost
}

// Hash returns a salted bcrypt digest of password.
func (b *Bcrypt) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether password matches digest. A malformed digest is a mismatch.
func (b *Bcrypt) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// VerifyDummy burns the same CPU as a real Verify against a digest nobody owns.
// Signin calls it for unknown emails so both failure paths take similar time.
func (b *Bcrypt) VerifyDummy(password string) {
	_ = bcrypt.CompareHashAndPassword(b.dummy, []byte(password))
}
