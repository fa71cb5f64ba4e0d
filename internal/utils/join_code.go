package utils

import (
	"crypto/rand"
	"fmt"

	"github.com/mr-tron/base58"
)

// GenerateJoinCode creates a random join code of the given length using the
// base58 alphabet, which drops the ambiguous characters 0, O, I and l so
// codes can be read aloud or written on a whiteboard.
func GenerateJoinCode(length int) (string, error) {
	// base58 never encodes n bytes into fewer than n characters
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate join code: %w", err)
	}
	return base58.Encode(b)[:length], nil
}
