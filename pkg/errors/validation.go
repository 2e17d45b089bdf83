package errors

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// ValidateStatementPath validates the path of a statement export before it
// is opened. Only .csv files are accepted.
func ValidateStatementPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "statement path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		return New(ErrCodeInvalidPath, "statement must be a .csv export: %s", filepath.Base(path))
	}

	return nil
}

// monthRegex matches "YYYY-MM".
var monthRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ValidateMonth validates a month argument such as "2019-09".
// An empty string is accepted and means "all months".
func ValidateMonth(month string) error {
	if month == "" {
		return nil
	}
	if !monthRegex.MatchString(month) {
		return New(ErrCodeInvalidMonth, "invalid month %q (expected YYYY-MM)", month)
	}
	return nil
}

// ValidateFormats validates output formats against the supported set.
func ValidateFormats(formats []string, supported map[string]bool) error {
	if len(formats) == 0 {
		return New(ErrCodeInvalidFormat, "at least one output format is required")
	}
	for _, f := range formats {
		if !supported[f] {
			return New(ErrCodeInvalidFormat, "unsupported format %q", f)
		}
	}
	return nil
}
