package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// DefaultTokenBytes yields a 32 character hex token
const DefaultTokenBytes = 16

// GenerateToken returns a random hex string of n bytes, used to make
// one-time download paths unguessable
func GenerateToken(n int) (string, error) {
	if n <= 0 {
		n = DefaultTokenBytes
	}
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
