package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindUnknown, "unknown error"},
		{KindNotFound, "not found"},
		{KindInvalid, "invalid"},
		{KindAuth, "authentication required"},
		{KindIO, "I/O error"},
		{KindNetwork, "network error"},
		{KindServer, "server error"},
		{KindConfig, "configuration error"},
		{Kind(999), "unknown error"}, // Unknown kind
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("Kind.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "with op and context",
			err:      &Error{Op: "test.Op", Context: "some context", Err: errors.New("underlying error")},
			expected: "test.Op: some context: underlying error",
		},
		{
			name:     "with op only",
			err:      &Error{Op: "test.Op", Err: errors.New("underlying error")},
			expected: "test.Op: underlying error",
		},
		{
			name:     "without op",
			err:      &Error{Err: errors.New("underlying error")},
			expected: "underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &Error{Op: "test.Op", Err: underlying}

	if got := err.Unwrap(); got != underlying {
		t.Errorf("Error.Unwrap() = %v, want %v", got, underlying)
	}
}

func TestIs(t *testing.T) {
	authErr := AuthRequired("api.NewChat")
	if !Is(authErr, KindAuth) {
		t.Error("Is() should report KindAuth for AuthRequired errors")
	}
	if Is(authErr, KindNotFound) {
		t.Error("Is() should not report KindNotFound for AuthRequired errors")
	}
	if Is(errors.New("plain"), KindAuth) {
		t.Error("Is() should not match plain errors")
	}
}

func TestIs_Wrapped(t *testing.T) {
	inner := SessionNotFound("abc123")
	wrapped := fmt.Errorf("while reconciling: %w", inner)

	if !Is(wrapped, KindNotFound) {
		t.Error("Is() should unwrap through fmt.Errorf wrapping")
	}
	if GetKind(wrapped) != KindNotFound {
		t.Errorf("GetKind() = %v, want KindNotFound", GetKind(wrapped))
	}
}

func TestGetKind_Plain(t *testing.T) {
	if got := GetKind(errors.New("plain")); got != KindUnknown {
		t.Errorf("GetKind(plain) = %v, want KindUnknown", got)
	}
}

func TestServerRejected(t *testing.T) {
	err := ServerRejected("api.SendMessage", 500, "")
	if !Is(err, KindServer) {
		t.Error("ServerRejected should produce KindServer")
	}
	if got := err.Error(); got != "api.SendMessage: server returned status 500" {
		t.Errorf("unexpected message: %q", got)
	}
}
