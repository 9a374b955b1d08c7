package errors

import (
	"strings"
	"unicode"
)

// ValidateIdentifier validates a provider dataset/indicator identifier.
// It rejects identifiers that could be used for path traversal or URL
// injection when interpolated into provider request paths.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - No path traversal sequences (.., //)
//   - No null bytes or backslashes
//   - Maximum length of 128 characters
//
// Provider-specific validation (dataflow prefixes, element names) is done
// separately by the provider fetchers.
func ValidateIdentifier(id string) error {
	if id == "" {
		return New(ErrCodeInvalidIndicator, "identifier cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidIndicator, "identifier too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidIndicator, "identifier contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash
		" ",    // Identifiers are single tokens in every supported API
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidIndicator, "identifier contains invalid characters: %q", pattern)
		}
	}

	return nil
}
