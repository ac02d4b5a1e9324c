package utils

import (
	"strings"
)

// SplitList splits a string by any of the given separators, trimming
// whitespace around each part and dropping empty parts.
// E.g., "Cannot find module, MODULE_NOT_FOUND" becomes ["Cannot find module", "MODULE_NOT_FOUND"].
func SplitList(s string, separators []rune) []string {
	if len(separators) == 0 {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		return []string{s}
	}

	isSeparator := func(r rune) bool {
		for _, sep := range separators {
			if r == sep {
				return true
			}
		}
		return false
	}

	var parts []string
	for _, part := range strings.FieldsFunc(s, isSeparator) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

// StripCarriageReturns removes every '\r' from the line, not only a trailing one.
func StripCarriageReturns(line string) string {
	return strings.ReplaceAll(line, "\r", "")
}

// CleanLine is the form of a line used for matching: carriage returns
// removed and surrounding whitespace trimmed.
func CleanLine(line string) string {
	return strings.TrimSpace(StripCarriageReturns(line))
}
