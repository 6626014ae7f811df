package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds scene names and cell ids accepted from untrusted input.
const maxNameLength = 256

// ValidateSceneName validates a scene name supplied to the HTTP service or CLI.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 256 characters
func ValidateSceneName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "scene name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "scene name too long (max %d characters)", maxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "scene name contains invalid control characters")
		}
	}
	for _, pattern := range []string{"..", "/", "\\", "\x00"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidInput, "scene name contains invalid characters: %q", pattern)
		}
	}
	return nil
}

// ValidateCellID validates an explicit cell id from a scene file.
// Empty ids are allowed: they mean "use the positional default".
func ValidateCellID(id string) error {
	if len(id) > maxNameLength {
		return New(ErrCodeInvalidScene, "cell id too long (max %d characters)", maxNameLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidScene, "cell id %q contains control characters", id)
		}
	}
	return nil
}

// ValidatePath validates a file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}
