package domain

import (
	"fmt"
	"strings"
)

// parseLabel maps a user-facing label onto its position in labels.
// Matching ignores case and surrounding whitespace.
func parseLabel[T ~int](kind string, labels []string, s string) (T, error) {
	s = strings.TrimSpace(s)
	for i, l := range labels {
		if strings.EqualFold(l, s) {
			return T(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown %s %q (want one of %s)", ErrInvalidInput, kind, s, strings.Join(labels, ", "))
}

func labelOf(labels []string, i int) string {
	if i < 0 || i >= len(labels) {
		return fmt.Sprintf("invalid(%d)", i)
	}
	return labels[i]
}
