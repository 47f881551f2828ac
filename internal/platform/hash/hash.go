// Package hash provides one-way password hashing for stored credentials.
package hash

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// cost is the bcrypt work factor. 10 keeps hashing in the tens of
// milliseconds on current hardware.
const cost = bcrypt.DefaultCost

// Hash returns a salted bcrypt digest of the given plaintext password.
func Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether the plaintext password matches the stored digest.
// A malformed digest fails closed: it returns false, never an error.
func Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
