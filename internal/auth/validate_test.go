package auth

import (
	"strings"
	"testing"
	"time"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "juan_dela.cruz", false},
		{"minimum length", "abc", false},
		{"empty", "", true},
		{"too short", "ab", true},
		{"too long", strings.Repeat("a", 33), true},
		{"spaces", "juan cruz", true},
		{"special chars", "juan!", true},
		{"surrounding whitespace trimmed", "  juan  ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUsername(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "juan@example.com", false},
		{"subdomain", "juan@mail.example.ph", false},
		{"empty", "", true},
		{"no at sign", "juanexample.com", true},
		{"no domain dot", "juan@example", true},
		{"spaces", "juan @example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("hunter22"); err != nil {
		t.Errorf("8-char password should pass, got %v", err)
	}
	if err := ValidatePassword("short"); err == nil {
		t.Error("short password should fail")
	}
	if err := ValidatePassword(""); err == nil {
		t.Error("empty password should fail")
	}
}

func TestValidateAge(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"20", false},
		{"13", false},
		{"12", true},
		{"121", true},
		{"", true},
		{"abc", true},
	}

	for _, tt := range tests {
		err := ValidateAge(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateAge(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestValidateBirthday(t *testing.T) {
	if err := ValidateBirthday("2000-06-12"); err != nil {
		t.Errorf("valid date should pass, got %v", err)
	}
	if err := ValidateBirthday("12/06/2000"); err == nil {
		t.Error("wrong format should fail")
	}
	if err := ValidateBirthday(""); err == nil {
		t.Error("empty should fail")
	}

	future := time.Now().AddDate(1, 0, 0).Format("2006-01-02")
	if err := ValidateBirthday(future); err == nil {
		t.Error("future date should fail")
	}
}

func TestValidateName(t *testing.T) {
	if err := ValidateName("Juan"); err != nil {
		t.Errorf("valid name should pass, got %v", err)
	}
	if err := ValidateName("   "); err == nil {
		t.Error("blank name should fail")
	}
}
