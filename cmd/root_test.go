package cmd

import (
	"strings"
	"testing"
)

func TestSubcommandsRegistered(t *testing.T) {
	want := []string{"login", "register", "export", "list", "history", "clean"}
	for _, name := range want {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestVersionTemplate(t *testing.T) {
	version, commit, date = "1.2.3", "abc1234", "2026-01-01"
	got := versionTemplate()
	if !strings.Contains(got, "1.2.3") || !strings.Contains(got, "abc1234") {
		t.Errorf("versionTemplate() = %q", got)
	}

	commit = "none"
	got = versionTemplate()
	if strings.Contains(got, "commit") {
		t.Errorf("versionTemplate() without commit = %q", got)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"n\n", false},
		{"\n", false},
		{"maybe\n", false},
	}

	for _, tt := range tests {
		got := confirm(strings.NewReader(tt.input), "Continue?")
		if got != tt.want {
			t.Errorf("confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
