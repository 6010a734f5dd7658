package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds asset names, which also become output file names.
const maxNameLength = 128

// ValidateAssetName validates an asset name for safety and correctness.
// Asset names are used to derive output file names, so the rules reject
// anything that could escape the output directory:
//   - No empty names
//   - No control characters or whitespace
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateAssetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "asset name cannot be empty")
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "asset name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidName, "asset name %q contains whitespace or control characters", name)
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidName, "asset name %q contains invalid characters: %q", name, pattern)
		}
	}

	return nil
}

// ValidateGlyph checks that a legend key is exactly one printable rune.
func ValidateGlyph(key string) (rune, error) {
	runes := []rune(key)
	if len(runes) != 1 {
		return 0, New(ErrCodeInvalidDocument, "legend key %q must be a single character", key)
	}
	if unicode.IsControl(runes[0]) {
		return 0, New(ErrCodeInvalidDocument, "legend key %q is a control character", key)
	}
	return runes[0], nil
}

// ValidatePath validates an output path segment for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
