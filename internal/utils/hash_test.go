package utils

import (
	"strings"
	"testing"
)

func TestGenerateRandomToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		token, err := GenerateRandomToken(32)
		if err != nil {
			t.Fatalf("GenerateRandomToken() error: %v", err)
		}
		if len(token) < 32 {
			t.Errorf("token %q shorter than expected", token)
		}
		if strings.ContainsAny(token, "+/=") {
			t.Errorf("token %q is not URL safe", token)
		}
		if seen[token] {
			t.Errorf("duplicate token generated: %s", token)
		}
		seen[token] = true
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "lowercases", input: "Kid@Example.COM", expected: "kid@example.com"},
		{name: "trims whitespace", input: "  kid@example.com ", expected: "kid@example.com"},
		{name: "already normal", input: "kid@example.com", expected: "kid@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeEmail(tt.input); got != tt.expected {
				t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
