package helper

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lower = cases.Lower(language.Und)

// NormalizeEmail trims and lowercases an address the way ad platforms expect
// before hashing.
func NormalizeEmail(email string) string {
	return lower.String(strings.TrimSpace(email))
}

// NormalizePhone keeps digits only.
func NormalizePhone(phone string) string {
	var sb strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// SHA256Hex returns the lowercase hex SHA-256 digest of value.
func SHA256Hex(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

// HashEmail is the one-way match token for an address. Empty input stays empty.
func HashEmail(email string) string {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return ""
	}
	return SHA256Hex(normalized)
}
