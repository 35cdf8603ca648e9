package booking

import (
	"crypto/rand"
	"fmt"
)

const (
	referencePrefix   = "BT"
	referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	referenceLength   = 8
)

// NewReference returns a booking reference of the form "BT" followed by
// eight random uppercase alphanumeric characters. Uniqueness is enforced
// by the database; callers retry on collision.
func NewReference() (string, error) {
	buf := make([]byte, referenceLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = referenceAlphabet[int(b)%len(referenceAlphabet)]
	}
	return referencePrefix + string(buf), nil
}
