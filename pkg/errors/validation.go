package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxIdentifierLength bounds component ids, pin names, and net names.
const MaxIdentifierLength = 128

// identifierRegex matches component ids and net names: a letter or underscore
// followed by letters, digits, underscores, or dashes.
var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// ValidateComponentID validates a component identifier.
//
// The rules mirror what the CDL grammar accepts so that circuits loaded from
// JSON or YAML cannot smuggle in ids the text format could never express:
//   - No empty ids
//   - Maximum length of MaxIdentifierLength
//   - Must start with a letter or underscore
//   - No dots (the pin separator) or whitespace
func ValidateComponentID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "component id cannot be empty")
	}
	if len(id) > MaxIdentifierLength {
		return New(ErrCodeInvalidInput, "component id too long (max %d characters)", MaxIdentifierLength)
	}
	if !identifierRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid component id: %q", id)
	}
	return nil
}

// ValidateNetName validates an explicit net declaration name.
// The reserved ground name "0" is accepted so a circuit can declare its
// ground net by hand.
func ValidateNetName(name string) error {
	if name == "0" {
		return nil
	}
	if name == "" {
		return New(ErrCodeInvalidInput, "net name cannot be empty")
	}
	if len(name) > MaxIdentifierLength {
		return New(ErrCodeInvalidInput, "net name too long (max %d characters)", MaxIdentifierLength)
	}
	if !identifierRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid net name: %q", name)
	}
	return nil
}

// ValidatePinName validates a pin name. Pin names are looser than ids since
// the geometry registry uses names like "+", "V-", and "1".
func ValidatePinName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "pin name cannot be empty")
	}
	if len(name) > MaxIdentifierLength {
		return New(ErrCodeInvalidInput, "pin name too long (max %d characters)", MaxIdentifierLength)
	}
	for _, r := range name {
		if unicode.IsSpace(r) || unicode.IsControl(r) || r == '.' {
			return New(ErrCodeInvalidInput, "pin name contains invalid characters: %q", name)
		}
	}
	return nil
}

// ValidatePath validates a relative output path for safety.
// It prevents path traversal when the API or config names output files.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
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

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
