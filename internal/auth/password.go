package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Passwords hashes and checks passwords with bcrypt
type Passwords struct {
	cost int
}

// NewPasswords creates a hasher. cost <= 0 uses bcrypt.DefaultCost.
func NewPasswords(cost int) *Passwords {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &Passwords{cost: cost}
}

// Hash hashes a password for storage
func (p *Passwords) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether password matches hash
func (p *Passwords) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
