package auth

import (
	"fmt"

	"nutrilens/config"
	domainerrors "nutrilens/internal/domain/errors"
	"nutrilens/internal/domain/service"

	"golang.org/x/crypto/bcrypt"
)

const (
	defaultMinPasswordLength = 8
	// bcrypt ignores everything past 72 bytes
	maxBcryptPasswordLength = 72
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost      int
	minLength int
	maxLength int
}

// NewBcryptHasher is the constructor for bcryptHasher.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	h := &bcryptHasher{
		cost:      bcrypt.DefaultCost,
		minLength: defaultMinPasswordLength,
		maxLength: maxBcryptPasswordLength,
	}

	if cfg.Auth != nil && cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
		h.cost = cfg.Auth.BcryptCost
	}
	if cfg.PasswordStrength != nil {
		if cfg.PasswordStrength.MinLength > 0 {
			h.minLength = cfg.PasswordStrength.MinLength
		}
		if cfg.PasswordStrength.MaxLength > 0 && cfg.PasswordStrength.MaxLength < maxBcryptPasswordLength {
			h.maxLength = cfg.PasswordStrength.MaxLength
		}
	}

	return h
}

// Hash generates a salted hash from a plaintext password using bcrypt.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)

	return string(bytes), err
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	switch {
	case len(password) < h.minLength:
		return domainerrors.NewValidationError("password", fmt.Sprintf("password must be at least %d characters", h.minLength))
	case len(password) > h.maxLength:
		return domainerrors.NewValidationError("password", fmt.Sprintf("password must be at most %d bytes", h.maxLength))
	default:
		return nil
	}
}
