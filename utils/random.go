package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateRandomString returns n random hex characters.
func GenerateRandomString(n int) string {
	b := make([]byte, (n+1)/2)
	if _, err := rand.Read(b); err != nil {
		panic("failed to read random bytes")
	}
	return hex.EncodeToString(b)[:n]
}
