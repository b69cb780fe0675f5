// Package password wraps bcrypt behind the two operations the use cases
// need: one-way salted hashing and verification. Hashing is explicit in the
// registration and change-password flows; nothing hashes implicitly on
// persistence.
package password

import "golang.org/x/crypto/bcrypt"

// DefaultCost is the bcrypt work factor used by Hash.
const DefaultCost = bcrypt.DefaultCost

// Hash derives a salted digest from the plaintext. A fresh salt is generated
// on every call, so the same plaintext never produces the same digest twice.
func Hash(plain string) (string, error) {
	return HashWithCost(plain, DefaultCost)
}

// HashWithCost is Hash with an explicit bcrypt cost.
func HashWithCost(plain string, cost int) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plain matches digest. A malformed digest is treated
// as a mismatch, never an error.
func Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
