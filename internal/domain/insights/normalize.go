package insights

import (
	"strings"
	"unicode"
)

// normalizePlace folds case and collapses punctuation so "Нижний  Новгород"
// and "нижний-новгород" count together.
func normalizePlace(place string) string {
	lowered := strings.ToLower(strings.TrimSpace(place))
	var builder strings.Builder
	builder.Grow(len(lowered))
	lastSpace := true
	for _, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			builder.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(builder.String())
}
