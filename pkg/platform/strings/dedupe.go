// Package strings provides string manipulation utilities.
package strings

import (
	"strings"
)

// DedupeAndTrim removes duplicates and blank entries, trimming whitespace
// from each element. The first occurrence keeps its position.
//
// Example:
//
//	DedupeAndTrim([]string{"  foo ", "bar", "foo", "", "  "})
//	// Returns: []string{"foo", "bar"}
func DedupeAndTrim[S ~[]E, E ~string](values S) S {
	if len(values) == 0 {
		return values
	}

	seen := make(map[E]struct{}, len(values))
	result := make(S, 0, len(values))

	for _, v := range values {
		trimmed := E(strings.TrimSpace(string(v)))
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}
