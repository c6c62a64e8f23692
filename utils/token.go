package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
)

// NewVerificationToken returns a URL-safe random token for email
// verification links. 32 bytes of entropy, never stored raw.
func NewVerificationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashVerificationToken is the digest persisted in place of the raw token.
func HashVerificationToken(raw string) []byte {
	sum := sha256.Sum256([]byte(raw))
	return sum[:]
}
