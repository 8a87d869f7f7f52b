// Package password wraps bcrypt hashing for credential storage and verification.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor used for all stored hashes.
const Cost = 12

// Hasher hashes and verifies plaintext passwords.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher with the fixed work factor.
func NewHasher() *Hasher {
	return &Hasher{cost: Cost}
}

// Hash returns the bcrypt hash of the plaintext password.
func (h *Hasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored hash.
// It returns false for any mismatch or malformed hash, never an error.
func (h *Hasher) Verify(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
