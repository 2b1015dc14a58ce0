package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"unicode"

	"github.com/venuehub/venuehub-backend/pkg/config"
)

// GenerateNumericCode returns a uniformly random string of length digits.
func GenerateNumericCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("length must be positive")
	}
	var b strings.Builder
	b.Grow(length)
	ten := big.NewInt(10)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("generating code: %w", err)
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String(), nil
}

// HashCode returns the hex sha256 of a one-time code bound to subject, so a
// leaked Redis value cannot be replayed for another account.
func HashCode(subject, code string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(subject)) + ":" + strings.TrimSpace(code)))
	return hex.EncodeToString(sum[:])
}

// CodeMatches compares a presented code against a stored hash in constant time.
func CodeMatches(subject, code, storedHash string) bool {
	computed := HashCode(subject, code)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}

// CheckPasswordPolicy enforces the configured minimum length and requires at
// least one letter and one digit.
func CheckPasswordPolicy(password string, cfg config.PasswordConfig) error {
	minLen := cfg.MinLength
	if minLen <= 0 {
		minLen = 8
	}
	if len([]rune(password)) < minLen {
		return fmt.Errorf("password must be at least %d characters", minLen)
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("password must contain letters and digits")
	}
	return nil
}
