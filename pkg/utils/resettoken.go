package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// NewResetToken generates a password-reset secret: 32 random bytes in
// hex with the owning user's id appended, so the reset handler can be
// reached without any other identifying input.
func NewResetToken(userID string) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf) + userID, nil
}

// HashResetToken returns the hex SHA-256 digest of a reset secret.
// The secret already carries 256 bits of fresh entropy, so a fast
// unsalted hash is sufficient here; lookups compare digests only.
func HashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
