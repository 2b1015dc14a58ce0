package security_test

import (
	"testing"

	"github.com/venuehub/venuehub-backend/pkg/config"
	"github.com/venuehub/venuehub-backend/pkg/security"
)

func TestGenerateNumericCode(t *testing.T) {
	code, err := security.GenerateNumericCode(6)
	if err != nil {
		t.Fatalf("GenerateNumericCode returned error: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("expected 6 digits, got %q", code)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			t.Fatalf("unexpected character %q in %q", r, code)
		}
	}
	if _, err := security.GenerateNumericCode(0); err == nil {
		t.Fatal("expected error for zero length")
	}
}

func TestCodeMatchesBindsSubject(t *testing.T) {
	hash := security.HashCode("Guest@Example.com", "123456")
	if !security.CodeMatches("guest@example.com", " 123456 ", hash) {
		t.Fatal("expected code to match regardless of email casing and padding")
	}
	if security.CodeMatches("guest@example.com", "654321", hash) {
		t.Fatal("wrong code matched")
	}
	if security.CodeMatches("other@example.com", "123456", hash) {
		t.Fatal("code matched for a different subject")
	}
}

func TestCheckPasswordPolicy(t *testing.T) {
	cfg := config.PasswordConfig{MinLength: 8}
	cases := map[string]bool{
		"short1":       false,
		"lettersonly!": false,
		"12345678":     false,
		"wedding2026":  true,
	}
	for pw, ok := range cases {
		err := security.CheckPasswordPolicy(pw, cfg)
		if ok && err != nil {
			t.Fatalf("expected %q to pass, got %v", pw, err)
		}
		if !ok && err == nil {
			t.Fatalf("expected %q to fail", pw)
		}
	}
}
