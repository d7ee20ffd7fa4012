package catalog

import (
	"strings"

	"catalogage/internal/services"
)

// EANLength is the number of digits in a product code.
const EANLength = 13

// NormalizeEAN trims surrounding whitespace from a scanned or typed code.
func NormalizeEAN(code string) string {
	return strings.TrimSpace(code)
}

// ValidateEAN reports a validation error unless code is exactly 13 ASCII digits.
func ValidateEAN(code string) error {
	if len(code) != EANLength {
		return services.Wrap(services.ErrValidation, "catalog", "ean", "expected 13 digits, got "+quote(code), nil)
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return services.Wrap(services.ErrValidation, "catalog", "ean", "non-digit character in "+quote(code), nil)
		}
	}
	return nil
}
