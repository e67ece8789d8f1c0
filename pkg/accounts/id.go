package accounts

import (
	"crypto/rand"
	"encoding/hex"
)

// IDGenerator produces account identifiers
type IDGenerator func() (string, error)

// idBytes is the amount of randomness in a generated id (16 hex characters)
const idBytes = 8

// RandomID returns a random base-16 identifier.
func RandomID() (string, error) {
	b := make([]byte, idBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
