package errors

import (
	"strings"
	"unicode"
)

// MaxSourceLength bounds a source label supplied by a client.
const MaxSourceLength = 256

// ValidateSource validates a client-supplied source label, such as the
// ?source= parameter of the HTTP service. Labels end up in logs, reports and
// metrics, so the rules are intentionally conservative:
//   - No empty labels
//   - Maximum length of MaxSourceLength bytes
//   - No control characters or null bytes
//   - No path traversal sequences (..)
//   - No backslashes
func ValidateSource(source string) error {
	if source == "" {
		return New(ErrCodeInvalidSource, "source cannot be empty")
	}

	if len(source) > MaxSourceLength {
		return New(ErrCodeInvalidSource, "source too long (max %d characters)", MaxSourceLength)
	}

	for _, r := range source {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSource, "source contains invalid control characters")
		}
	}

	if strings.Contains(source, "..") {
		return New(ErrCodeInvalidSource, "source cannot contain path traversal sequences (..)")
	}

	if strings.Contains(source, "\\") {
		return New(ErrCodeInvalidSource, "source cannot contain backslashes")
	}

	return nil
}
