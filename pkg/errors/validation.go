package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxFieldNameLength bounds field names accepted in a form schema.
const maxFieldNameLength = 128

// fieldNameRegex matches names usable both as JSON keys and as HTML name attributes.
var fieldNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.\-]*$`)

// ValidateFieldName validates a form field name declared in a schema.
//
// The rules are conservative because the name ends up in HTML attributes,
// JSON keys and URL-encoded form bodies:
//   - No empty names
//   - No control characters
//   - Maximum length of 128 characters
//   - Letters, digits, underscore, dot and dash only, not starting with a digit
func ValidateFieldName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidSchema, "field name cannot be empty")
	}

	if len(name) > maxFieldNameLength {
		return New(ErrCodeInvalidSchema, "field name too long (max %d characters)", maxFieldNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSchema, "field name contains invalid control characters")
		}
	}

	if !fieldNameRegex.MatchString(name) {
		return New(ErrCodeInvalidSchema, "invalid field name: %q", name)
	}

	return nil
}

// ValidatePath validates a user-supplied file path for import or export.
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

// ValidateDownloadName validates a download filename.
// It must be a simple basename without path components.
func ValidateDownloadName(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidInput, "download filename cannot be empty")
	}

	if strings.ContainsAny(filename, "/\\\"") {
		return New(ErrCodeInvalidInput, "download filename cannot contain path separators or quotes")
	}

	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidInput, "download filename cannot be a hidden file")
	}

	return nil
}
