package password_test

import (
	"strings"
	"testing"

	"github.com/craftbase/account-service/internal/password"
	"github.com/stretchr/testify/assert"
)

func TestDefaultPolicy(t *testing.T) {
	policy := password.Default()

	tests := []struct {
		name     string
		password string
		attrs    []string
		wantErr  bool
	}{
		{
			name:     "Strong password",
			password: "Sw9!xyz12",
			attrs:    []string{"a@x.com", "A A"},
			wantErr:  false,
		},
		{
			name:     "Too short",
			password: "Ab1!xyz",
			wantErr:  true,
		},
		{
			name:     "Longer than the bcrypt limit",
			password: strings.Repeat("Sw9!xyz12e", 9),
			wantErr:  true,
		},
		{
			name:     "Exactly at the bcrypt limit",
			password: strings.Repeat("Sw9!xyz1", 9),
			wantErr:  false,
		},
		{
			name:     "Entirely numeric",
			password: "92837465102",
			wantErr:  true,
		},
		{
			name:     "Common password",
			password: "password123",
			wantErr:  true,
		},
		{
			name:     "Common password mixed case",
			password: "Password123",
			wantErr:  true,
		},
		{
			name:     "Contains email local-part",
			password: "janedoe2024",
			attrs:    []string{"jane.doe@example.com"},
			wantErr:  true,
		},
		{
			name:     "Contains username",
			password: "xXmontgomeryXx",
			attrs:    []string{"montgomery"},
			wantErr:  true,
		},
		{
			name:     "Unrelated to attributes",
			password: "tr0mb0ne!Quartet",
			attrs:    []string{"jane.doe@example.com", "Jane Doe"},
			wantErr:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.Validate(tt.password, tt.attrs...)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCustomPolicyOrder(t *testing.T) {
	// A policy with only a length rule must not reject numeric passwords.
	policy := password.New(password.MinLength(4))

	assert.NoError(t, policy.Validate("1234"))
	assert.Error(t, policy.Validate("123"))
}

func TestSimilarityIgnoresShortFragments(t *testing.T) {
	policy := password.New(password.NotSimilarToAttributes{})

	// "a" and "x" fragments are too short to be meaningful.
	assert.NoError(t, policy.Validate("Sw9!xyz12", "a@x.com"))
}
