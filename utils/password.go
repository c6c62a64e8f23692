package utils

import (
	"crypto/sha256"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// bcrypt truncates input at 72 bytes; pre-hash longer passwords so the
// whole value still contributes to the digest.
func normalizePasswordBytes(password string) []byte {
	b := []byte(password)
	if len(b) > 72 {
		sum := sha256.Sum256(b)
		return sum[:]
	}
	return b
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(normalizePasswordBytes(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), normalizePasswordBytes(password)) == nil
}
