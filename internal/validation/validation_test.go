package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"Valid password", "Segura123", true},
		{"Valid long password", "UmaPalavraPasseMuitoLonga42", true},
		{"Too short", "Abc123", false},
		{"Exactly nine chars", "Abcdefg12", true},
		{"No uppercase", "segura123", false},
		{"No lowercase", "SEGURA123", false},
		{"No digit", "SeguraSegura", false},
		{"Too long", "Aa1" + strings.Repeat("x", 126), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		valid bool
	}{
		{"Valid email", "user@example.com", true},
		{"Valid with plus", "user+tag@example.co.uk", true},
		{"Missing at", "userexample.com", false},
		{"Missing domain", "user@", false},
		{"Missing TLD", "user@example", false},
		{"Spaces", "user name@example.com", false},
		{"Too long", strings.Repeat("a", 250) + "@b.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
