package errors

import (
	"strings"
	"unicode"
)

// ValidateGraphName validates the graph name used to derive output file names.
// The name becomes "<name>.gv" inside the output directory, so it must be a
// plain basename:
//   - No empty names
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateGraphName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "graph name cannot be empty")
	}

	const maxNameLength = 128
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "graph name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "graph name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidName, "graph name cannot contain path separators")
	}
	if name == "." || name == ".." {
		return New(ErrCodeInvalidName, "graph name cannot be %q", name)
	}

	return nil
}

// ValidateJointDepth validates the depth from which edges are routed through
// joint nodes. Zero routes every edge, including the root's.
func ValidateJointDepth(depth int) error {
	if depth < 0 {
		return New(ErrCodeInvalidInput, "joint depth must not be negative, got %d", depth)
	}
	return nil
}
