package common

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ValidateName checks that name can be stored both as a registry record
// and, verbatim, as a blob key.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("empty name: %w", ErrInvalidName)
	}

	if len(name) > MaxNameLength {
		return fmt.Errorf("name longer than %d bytes: %w", MaxNameLength, ErrInvalidName)
	}

	if !utf8.ValidString(name) {
		return fmt.Errorf("name is not valid UTF-8: %w", ErrInvalidName)
	}

	if strings.ContainsAny(name, "/\\") || name == "." || name == ".." {
		return fmt.Errorf("name %q must not contain path elements: %w", name, ErrInvalidName)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("name contains control character %U: %w", r, ErrInvalidName)
		}
	}

	return nil
}
