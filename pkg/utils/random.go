package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateRandomToken returns a hex string of the given length, or "" if the
// system random source fails.
func GenerateRandomToken(length int) string {
	if length <= 0 {
		return ""
	}
	bytes := make([]byte, (length+1)/2)
	if _, err := rand.Read(bytes); err != nil {
		return ""
	}
	return hex.EncodeToString(bytes)[:length]
}
