// Package auth provides credential validation and the interactive login and
// registration forms.
package auth

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// MinPasswordLength is the shortest password the server accepts
	MinPasswordLength = 8

	// MinAge is the youngest age allowed to register
	MinAge = 13

	// MaxAge is a sanity cap on the age field
	MaxAge = 120
)

// emailRegex is a pragmatic shape check, not a full RFC 5322 parser.
// The server does its own verification.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// usernameRegex allows letters, digits, underscores and dots, 3 to 32 chars
var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.]{3,32}$`)

// ValidateUsername checks a username for the registration and login forms
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username must be 3-32 characters (letters, numbers, _ or .)")
	}
	return nil
}

// ValidateEmail checks that an address at least looks like an email
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("that doesn't look like an email address")
	}
	return nil
}

// ValidatePassword enforces the minimum length
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// ValidateName checks the display name field
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

// ValidateAge parses and bounds-checks the age field
func ValidateAge(age string) error {
	age = strings.TrimSpace(age)
	if age == "" {
		return fmt.Errorf("age is required")
	}
	n, err := strconv.Atoi(age)
	if err != nil {
		return fmt.Errorf("age must be a number")
	}
	if n < MinAge {
		return fmt.Errorf("you must be at least %d to register", MinAge)
	}
	if n > MaxAge {
		return fmt.Errorf("age must be %d or less", MaxAge)
	}
	return nil
}

// ValidateBirthday checks for a YYYY-MM-DD date that isn't in the future
func ValidateBirthday(birthday string) error {
	birthday = strings.TrimSpace(birthday)
	if birthday == "" {
		return fmt.Errorf("birthday is required")
	}
	t, err := time.Parse("2006-01-02", birthday)
	if err != nil {
		return fmt.Errorf("birthday must be YYYY-MM-DD")
	}
	if t.After(time.Now()) {
		return fmt.Errorf("birthday cannot be in the future")
	}
	return nil
}
