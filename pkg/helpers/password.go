package helpers

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MaxSecretLength is the longest input bcrypt accepts. Anything longer is
// rejected instead of being silently truncated by the algorithm.
const MaxSecretLength = 72

// ErrSecretTooLong is returned by Hash for inputs over MaxSecretLength bytes.
var ErrSecretTooLong = errors.New("secret exceeds 72 bytes")

// Hasher wraps bcrypt with a fixed work factor. Cost 12 keeps a single
// verification around the 100ms mark on current hardware.
type Hasher struct {
	Cost int
}

func NewHasher() *Hasher {
	return &Hasher{Cost: 12}
}

// Hash hashes the plain text secret using bcrypt
func (h *Hasher) Hash(plain string) (string, error) {
	if len(plain) > MaxSecretLength {
		return "", ErrSecretTooLong
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare checks a bcrypt hash against a plain secret in constant time.
// A mismatch is reported as false, never as an error.
func (h *Hasher) Compare(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
