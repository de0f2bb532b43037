package auth

import (
	"strconv"
	"strings"

	huh "charm.land/huh/v2"
)

// Credentials are the login form results
type Credentials struct {
	Username string
	Password string
}

// Registration carries the registration form results
type Registration struct {
	Name     string
	Username string
	Email    string
	Password string
	Age      int
	Birthday string
}

// RunLoginForm prompts for username and password interactively
func RunLoginForm() (Credentials, error) {
	var creds Credentials

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&creds.Username).
				Validate(ValidateUsername),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&creds.Password).
				Validate(func(s string) error {
					if s == "" {
						return ValidatePassword(s)
					}
					return nil
				}),
		),
	)

	if err := form.Run(); err != nil {
		return Credentials{}, err
	}
	creds.Username = strings.TrimSpace(creds.Username)
	return creds, nil
}

// RunRegisterForm prompts for the full registration details interactively
func RunRegisterForm() (Registration, error) {
	var (
		reg    Registration
		ageStr string
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Description("How should we greet you?").
				Value(&reg.Name).
				Validate(ValidateName),
			huh.NewInput().
				Title("Username").
				Value(&reg.Username).
				Validate(ValidateUsername),
			huh.NewInput().
				Title("Email").
				Value(&reg.Email).
				Validate(ValidateEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&reg.Password).
				Validate(ValidatePassword),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Age").
				Value(&ageStr).
				Validate(ValidateAge),
			huh.NewInput().
				Title("Birthday").
				Description("YYYY-MM-DD").
				Value(&reg.Birthday).
				Validate(ValidateBirthday),
		),
	)

	if err := form.Run(); err != nil {
		return Registration{}, err
	}

	reg.Name = strings.TrimSpace(reg.Name)
	reg.Username = strings.TrimSpace(reg.Username)
	reg.Email = strings.TrimSpace(reg.Email)
	reg.Birthday = strings.TrimSpace(reg.Birthday)
	reg.Age, _ = strconv.Atoi(strings.TrimSpace(ageStr))
	return reg, nil
}
