// Package password implements the account password strength policy.
//
// A Policy is an ordered list of rules; the first rule that rejects wins.
// Handlers treat a policy error as a client-correctable validation failure
// on the password field.
package password

import (
	"errors"
	"strings"
	"unicode"
)

// Rule checks one aspect of password strength. attrs carries user
// attributes (email, username, full name) the password must not resemble.
type Rule interface {
	Check(password string, attrs []string) error
}

type Policy struct {
	rules []Rule
}

// MaxPasswordBytes is the bcrypt input limit. Longer passwords are a client
// error, not a hashing failure.
const MaxPasswordBytes = 72

// Default returns the standard policy: length bounds, not purely numeric,
// not similar to user attributes, not a commonly breached password.
func Default() *Policy {
	return New(
		MinLength(8),
		MaxLength(MaxPasswordBytes),
		NotNumeric{},
		NotSimilarToAttributes{},
		NotCommon{},
	)
}

func New(rules ...Rule) *Policy {
	return &Policy{rules: rules}
}

// Validate runs every rule in order and returns the first rejection.
func (p *Policy) Validate(password string, attrs ...string) error {
	for _, r := range p.rules {
		if err := r.Check(password, attrs); err != nil {
			return err
		}
	}
	return nil
}

type MinLength int

func (m MinLength) Check(password string, _ []string) error {
	if len(password) < int(m) {
		return errors.New("password is too short, it must contain at least 8 characters")
	}
	return nil
}

type MaxLength int

func (m MaxLength) Check(password string, _ []string) error {
	if len(password) > int(m) {
		return errors.New("password is too long, it must not exceed 72 characters")
	}
	return nil
}

type NotNumeric struct{}

func (NotNumeric) Check(password string, _ []string) error {
	for _, r := range password {
		if !unicode.IsDigit(r) {
			return nil
		}
	}
	return errors.New("password is entirely numeric")
}

// NotSimilarToAttributes rejects passwords that contain, or are contained
// in, any user attribute. Attributes are also split on @ and non-alphanumeric
// separators so "jane.doe@example.com" guards "janedoe" style passwords.
type NotSimilarToAttributes struct{}

func (NotSimilarToAttributes) Check(password string, attrs []string) error {
	pw := strings.ToLower(password)
	for _, attr := range attrs {
		for _, part := range splitAttribute(attr) {
			if len(part) < 4 {
				continue
			}
			if strings.Contains(pw, part) || strings.Contains(part, pw) {
				return errors.New("password is too similar to your personal information")
			}
		}
	}
	return nil
}

func splitAttribute(attr string) []string {
	lower := strings.ToLower(strings.TrimSpace(attr))
	if lower == "" {
		return nil
	}
	parts := []string{lower}
	fields := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	parts = append(parts, fields...)
	if len(fields) > 1 {
		parts = append(parts, strings.Join(fields, ""))
	}
	return parts
}

type NotCommon struct{}

func (NotCommon) Check(password string, _ []string) error {
	if _, ok := commonPasswords[strings.ToLower(password)]; ok {
		return errors.New("password is too common")
	}
	return nil
}
