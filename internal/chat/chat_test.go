package chat

import (
	"strings"
	"testing"
)

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: DefaultTitle,
		},
		{
			name:     "whitespace only",
			input:    "   \n\t  ",
			expected: DefaultTitle,
		},
		{
			name:     "short message unchanged",
			input:    "Recommend OPM music",
			expected: "Recommend OPM music",
		},
		{
			name:     "first line only",
			input:    "Hello there\nsecond line ignored",
			expected: "Hello there",
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "  Happy playlist please  ",
			expected: "Happy playlist please",
		},
		{
			name:     "long message truncated with ellipsis",
			input:    strings.Repeat("a", 60),
			expected: strings.Repeat("a", 40) + "…",
		},
		{
			name:     "exactly max length not truncated",
			input:    strings.Repeat("b", 40),
			expected: strings.Repeat("b", 40),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveTitle(tt.input); got != tt.expected {
				t.Errorf("DeriveTitle(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDeriveTitle_Graphemes(t *testing.T) {
	// 45 flag emoji (each is a multi-rune grapheme); truncation must not
	// split one in half.
	flag := "🇵🇭"
	input := strings.Repeat(flag, 45)
	got := DeriveTitle(input)

	if !strings.HasSuffix(got, "…") {
		t.Fatalf("expected truncated title to end with ellipsis, got %q", got)
	}
	body := strings.TrimSuffix(got, "…")
	if len(body)%len(flag) != 0 {
		t.Errorf("truncation split a grapheme: body length %d not a multiple of %d", len(body), len(flag))
	}
	if strings.Count(body, flag) != TitleMaxGraphemes {
		t.Errorf("expected %d graphemes, got %d", TitleMaxGraphemes, strings.Count(body, flag))
	}
}
