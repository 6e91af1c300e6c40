package helper

import (
	"os"
	"strings"
)

// GetEnv returns the trimmed value of key, or the first non-empty fallback
// when the variable is unset or blank.
func GetEnv(key string, fallback ...string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	for _, f := range fallback {
		if f != "" {
			return f
		}
	}
	return ""
}
