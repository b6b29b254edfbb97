package service

import (
	"fmt"
	"strings"

	"github.com/whitebirds/internal/config"
)

const (
	passwordSpecialChars = `!@#$%^&*(),.?":{}|<>`
	// bcrypt ignores input past this many bytes and GenerateFromPassword rejects it
	passwordMaxBytes = 72
)

// PasswordPolicyError lists every rule the password broke.
type PasswordPolicyError struct {
	Violations []string
}

func (e *PasswordPolicyError) Error() string {
	return strings.Join(e.Violations, "; ")
}

func (e *PasswordPolicyError) Is(target error) bool {
	return target == ErrWeakPassword
}

func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	var violations []string

	if policy.MinLength > 0 && len([]rune(password)) < policy.MinLength {
		violations = append(violations, fmt.Sprintf("Password must be at least %d characters", policy.MinLength))
	}
	if len(password) > passwordMaxBytes {
		violations = append(violations, fmt.Sprintf("Password must be at most %d bytes", passwordMaxBytes))
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasNumber = true
		case strings.ContainsRune(passwordSpecialChars, r):
			hasSpecial = true
		}
	}

	if policy.RequireUpper && !hasUpper {
		violations = append(violations, "Password must contain at least one uppercase letter")
	}
	if policy.RequireLower && !hasLower {
		violations = append(violations, "Password must contain at least one lowercase letter")
	}
	if policy.RequireNumber && !hasNumber {
		violations = append(violations, "Password must contain at least one number")
	}
	if policy.RequireSpecial && !hasSpecial {
		violations = append(violations, "Password must contain at least one special character")
	}

	if len(violations) > 0 {
		return &PasswordPolicyError{Violations: violations}
	}
	return nil
}
