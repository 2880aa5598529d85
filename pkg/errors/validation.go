package errors

import (
	"strings"
	"unicode"
)

const maxPackageName = 256

// ValidatePackageName checks that name is safe to pass to the package
// manager as a single argument.
//
// Rejected:
//   - empty names
//   - names longer than 256 characters
//   - control characters and null bytes
//   - a leading '-', which pip would read as an option
//   - whitespace, path separators and shell metacharacters
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}

	if len(name) > maxPackageName {
		return New(ErrCodeInvalidPackage, "package name too long (max %d characters)", maxPackageName)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPackage, "package name %q contains control characters", name)
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidPackage, "package name %q contains whitespace", name)
		}
	}

	if strings.HasPrefix(name, "-") {
		return New(ErrCodeInvalidPackage, "package name %q looks like an option", name)
	}

	if i := strings.IndexAny(name, `/\;|&$<>`+"`"); i >= 0 {
		return New(ErrCodeInvalidPackage, "package name %q contains invalid character %q", name, name[i])
	}

	return nil
}

// ValidateFilenameRoot checks the filename root used to name output files.
// It must be non-empty, must not end in a path separator and must not
// contain control characters.
func ValidateFilenameRoot(root string) error {
	if strings.TrimSpace(root) == "" {
		return New(ErrCodeInvalidPath, "filename root cannot be empty")
	}

	if strings.HasSuffix(root, "/") || strings.HasSuffix(root, `\`) {
		return New(ErrCodeInvalidPath, "filename root %q names a directory", root)
	}

	for _, r := range root {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "filename root contains control characters")
		}
	}

	return nil
}
