package domain

import (
	"strings"
	"unicode/utf8"
)

const (
	minPasswordLength = 8
	passwordSpecials  = "@$!%*?&"

	// MaxPasswordBytes is the longest input bcrypt hashes without truncation.
	MaxPasswordBytes = 72
)

// IsStrongPassword reports whether p is at least eight characters long and holds at
// least one lowercase letter, one uppercase letter, one digit and one of
// @$!%*?&. Other characters are allowed.
func IsStrongPassword(p string) bool {
	if utf8.RuneCountInString(p) < minPasswordLength {
		return false
	}

	var lower, upper, digit, special bool
	for _, r := range p {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return lower && upper && digit && special
}

// PasswordTooLong reports whether p exceeds what the password hasher accepts.
func PasswordTooLong(p string) bool {
	return len(p) > MaxPasswordBytes
}
