package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher defines the interface for hashing plaintext passwords.
type PasswordHasher interface {
	// Hash returns the hash of the given plaintext password.
	Hash(password string) (string, error)
}

// PasswordVerifier defines the interface for comparing passwords.
type PasswordVerifier interface {
	// Compare compares a hashed password with its possible plaintext
	// equivalent. Returns nil on success, or an error on failure
	// (e.g., mismatch).
	Compare(hashedPassword, password string) error
}

// BcryptService implements PasswordHasher and PasswordVerifier using bcrypt.
type BcryptService struct {
	cost int
}

// NewBcryptService creates a new BcryptService with the given cost.
// A cost outside bcrypt's valid range falls back to the library default.
func NewBcryptService(cost int) *BcryptService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptService{cost: cost}
}

// Hash implements the PasswordHasher interface using bcrypt.
func (s *BcryptService) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Compare implements the PasswordVerifier interface using bcrypt.
func (s *BcryptService) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
