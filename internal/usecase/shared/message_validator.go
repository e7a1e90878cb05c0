package shared

import (
	"strings"
	"unicode/utf8"

	"github.com/runoshun/syntern/internal/domain"
)

// ValidateMessage normalizes line endings, trims whitespace and rejects empty text.
// Returns the cleaned message if valid, otherwise returns domain.ErrEmptyMessage.
func ValidateMessage(message string) (string, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(message, "\r\n", "\n"))
	if cleaned == "" {
		return "", domain.ErrEmptyMessage
	}
	return cleaned, nil
}

// Truncate returns the first n runes of s, followed by suffix when s was cut.
func Truncate(s string, n int, suffix string) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + suffix
}

// TruncateBytes cuts s to at most n bytes without splitting a rune.
func TruncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
