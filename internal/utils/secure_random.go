package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// GenerateSecureRandomString returns lengthInBytes random bytes, hex encoded.
// lengthInBytes=8 gives a 16-character string.
func GenerateSecureRandomString(lengthInBytes int) (string, error) {
	if lengthInBytes <= 0 {
		return "", fmt.Errorf("lengthInBytes must be positive")
	}
	b := make([]byte, lengthInBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateReference returns prefix followed by an upper-case random hex suffix, e.g. PZT-3F9A12C4D0E1B2A7.
func GenerateReference(prefix string) (string, error) {
	suffix, err := GenerateSecureRandomString(8)
	if err != nil {
		return "", err
	}
	return prefix + strings.ToUpper(suffix), nil
}
