package service

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the application's historical hashing policy. Raising it
// strengthens stored digests at the price of slower register/login.
const bcryptCost = 10

// PasswordHasher wraps bcrypt behind the two operations the auth flow needs.
// The salt is embedded in the digest, so hashing the same plaintext twice
// yields different digests.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: bcryptCost}
}

// Hash produces a salted one-way digest of plaintext. An empty plaintext is
// still hashed; password policy is enforced at the transport layer.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext reproduces digest. A wrong password is
// false, never an error; comparison is constant-time inside bcrypt.
func (h *PasswordHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
