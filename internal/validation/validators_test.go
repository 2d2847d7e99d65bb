package validation

import (
	"strings"
	"testing"
)

func TestStruct(t *testing.T) {
	t.Parallel()

	type signupPayload struct {
		Name     string `validate:"required"`
		Email    string `validate:"required,email"`
		Password string `validate:"required,min=8"`
	}

	tests := []struct {
		name        string
		payload     signupPayload
		expectError bool
		errContains string
	}{
		{
			name:    "valid payload",
			payload: signupPayload{Name: "Ada", Email: "ada@x.com", Password: "secret123"},
		},
		{
			name:        "missing name",
			payload:     signupPayload{Email: "ada@x.com", Password: "secret123"},
			expectError: true,
			errContains: "name",
		},
		{
			name:        "bad email",
			payload:     signupPayload{Name: "Ada", Email: "not-an-email", Password: "secret123"},
			expectError: true,
			errContains: "email",
		},
		{
			name:        "short password",
			payload:     signupPayload{Name: "Ada", Email: "ada@x.com", Password: "short"},
			expectError: true,
			errContains: "password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Struct(tt.payload)
			if tt.expectError {
				if err == nil {
					t.Fatal("Expected validation error")
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("Expected error mentioning %q, got %q", tt.errContains, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
		})
	}
}

func TestSanitizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trims whitespace", input: "  hello  ", want: "hello"},
		{name: "keeps newlines and tabs", input: "a\nb\tc", want: "a\nb\tc"},
		{name: "strips control characters", input: "a\x00b\x1bc", want: "abc"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := SanitizeText(tt.input); got != tt.want {
				t.Errorf("SanitizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
