package errors

import (
	"os"
	"strings"
	"unicode"
)

// ValidateScanRoot validates a directory path before a scan starts.
// It rejects paths that cannot name a real directory and surfaces a
// precise code for each failure mode.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Must exist and be a directory (symlinks to directories are
//     rejected, matching the scanner's refusal to follow links)
func ValidateScanRoot(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "scan root cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || (unicode.IsControl(r) && r != '\t') {
			return New(ErrCodeInvalidPath, "scan root contains control characters")
		}
	}

	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return Wrap(ErrCodeFileNotFound, err, "no such directory: %s", path)
	}
	if err != nil {
		return Wrap(ErrCodeInvalidPath, err, "cannot stat %s", path)
	}
	if !info.IsDir() {
		return New(ErrCodeInvalidPath, "not a directory: %s", path)
	}
	return nil
}

// ValidFormats lists the output formats render commands accept.
var ValidFormats = []string{"svg", "png", "pdf", "json", "dot"}

// ValidateFormat checks an output format name against [ValidFormats].
func ValidateFormat(format string) error {
	for _, f := range ValidFormats {
		if format == f {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unknown format %q (valid: %s)", format, strings.Join(ValidFormats, ", "))
}

// ValidateDimensions checks a render frame size. Both dimensions must
// be positive and small enough that rasterized output stays tractable.
func ValidateDimensions(width, height float64) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidDimensions, "dimensions must be positive, got %gx%g", width, height)
	}
	const maxSide = 1 << 16
	if width > maxSide || height > maxSide {
		return New(ErrCodeInvalidDimensions, "dimensions too large, got %gx%g (max %d per side)", width, height, maxSide)
	}
	return nil
}
