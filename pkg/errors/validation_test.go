package errors

import (
	"strings"
	"testing"
)

func TestValidateSource(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "payload", false},
		{"filename", "orders.json", false},
		{"relative path", "fixtures/orders.yaml", false},
		{"with spaces", "request body", false},
		{"max length", strings.Repeat("a", MaxSourceLength), false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", MaxSourceLength+1), true},
		{"path traversal", "../../etc/passwd", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSource(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSource(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidSource) {
				t.Errorf("ValidateSource(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidFormat,
		ErrCodeInvalidPolicy,
		ErrCodeInvalidConfig,
		ErrCodeInvalidSource,
		ErrCodeTooLarge,
		ErrCodeFileNotFound,
		ErrCodeCircularReference,
		ErrCodeUnsupportedType,
		ErrCodeDepthExceeded,
		ErrCodeInternal,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
