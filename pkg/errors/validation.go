package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateColumns checks the column count for a column layout.
// It must be checked before any division or file I/O happens.
func ValidateColumns(columns int) error {
	if columns < 1 {
		return InvalidArgument("columns must be >= 1, got %d", columns)
	}
	return nil
}

// ValidateInputPath validates an input image path.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Must not name a directory-like target ("." or a trailing separator)
func ValidateInputPath(path string) error {
	if path == "" {
		return InvalidArgument("input path cannot be empty")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return InvalidArgument("input path contains invalid characters: %q", path)
		}
	}

	if path == "." || strings.HasSuffix(path, string(filepath.Separator)) {
		return InvalidArgument("input path must name a file: %q", path)
	}

	return nil
}

// ValidateOutputPath validates the destination image path.
// It must have a file name and must not be one of the inputs.
func ValidateOutputPath(output string, inputs []string) error {
	if err := ValidateInputPath(output); err != nil {
		return InvalidArgument("invalid output path: %s", UserMessage(err))
	}

	clean := filepath.Clean(output)
	for _, in := range inputs {
		if filepath.Clean(in) == clean {
			return InvalidArgument("output path %q would overwrite an input image", output)
		}
	}
	return nil
}
