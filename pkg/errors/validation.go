package errors

import (
	"strings"
	"unicode"
)

// ValidateWorkspaceID validates a workspace identifier used in store keys
// and API paths. The rules are intentionally conservative:
//   - No empty IDs
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateWorkspaceID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidWorkspace, "workspace ID cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidWorkspace, "workspace ID too long (max 128 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidWorkspace, "workspace ID contains control characters")
		}
	}
	for _, pattern := range []string{"..", "/", "\\", "\x00"} {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidWorkspace, "workspace ID contains invalid characters: %q", pattern)
		}
	}
	return nil
}

// ValidateFormat validates a render format name against the supported set.
func ValidateFormat(format string, supported []string) error {
	for _, s := range supported {
		if format == s {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unknown format %q (supported: %s)", format, strings.Join(supported, ", "))
}
