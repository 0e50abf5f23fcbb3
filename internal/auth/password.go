package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the fixed work factor for password hashing.
// The salt and cost are encoded in the hash itself, so verification needs
// nothing beyond the stored string.
const bcryptCost = 12

// Hasher applies a one-way transform to plaintext passwords
type Hasher struct{}

func NewHasher() *Hasher {
	return &Hasher{}
}

// Hash creates a salted bcrypt hash from a password
func (h *Hasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether a password matches the stored hash.
// A mismatched credential is not an error; it returns false.
func (h *Hasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
