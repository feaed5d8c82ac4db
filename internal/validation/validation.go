// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"unicode"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var digitRegex = regexp.MustCompile(`[0-9]`)

// ValidatePassword checks if a password meets the account security policy:
// at least 9 characters with an uppercase letter, a lowercase letter and a digit.
func ValidatePassword(password string) error {
	if len(password) < 9 {
		return fmt.Errorf("a palavra-passe deve ter pelo menos 9 caracteres")
	}

	// Check maximum length (prevent unreasonable inputs)
	if len(password) > 128 {
		return fmt.Errorf("a palavra-passe não pode exceder 128 caracteres")
	}

	hasUpper := false
	hasLower := false
	for _, r := range password {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if unicode.IsLower(r) {
			hasLower = true
		}
	}
	if !hasUpper {
		return fmt.Errorf("a palavra-passe deve conter pelo menos uma letra maiúscula")
	}
	if !hasLower {
		return fmt.Errorf("a palavra-passe deve conter pelo menos uma letra minúscula")
	}

	if !digitRegex.MatchString(password) {
		return fmt.Errorf("a palavra-passe deve conter pelo menos um número")
	}

	return nil
}

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("formato de email inválido")
	}

	if len(email) > 254 {
		return fmt.Errorf("o email não pode exceder 254 caracteres")
	}

	return nil
}
