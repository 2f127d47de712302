package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxNodeIDLength bounds node identifiers. City names are short; anything
// longer is almost certainly a malformed input file.
const maxNodeIDLength = 256

// ValidateNodeID validates a node identifier.
//
// The validation rules are intentionally conservative:
//   - No empty or whitespace-only names
//   - No control characters (they break DOT output and terminal rendering)
//   - Maximum length of 256 bytes
func ValidateNodeID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidInput, "node id cannot be empty")
	}

	if len(id) > maxNodeIDLength {
		return New(ErrCodeInvalidInput, "node id too long (max %d characters)", maxNodeIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node id %q contains control characters", id)
		}
	}

	return nil
}

// ValidateWeight checks that an edge weight is a finite, non-negative number.
func ValidateWeight(u, v string, w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return New(ErrCodeInvalidEdge, "edge %s-%s has non-finite weight %v", u, v, w)
	}
	if w < 0 {
		return New(ErrCodeInvalidEdge, "edge %s-%s has negative weight %v", u, v, w)
	}
	return nil
}
