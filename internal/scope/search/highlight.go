package search

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// Format wraps every maximal run of matched rune positions in text with the
// surround markers. A nil surround returns text unchanged. Indices may be
// unsorted or repeated; positions outside text are ignored. A run that
// reaches the end of text is closed with the suffix.
func Format(text string, indices []int, surround *Surround) string {
	if surround == nil {
		return text
	}

	matched := slices.Clone(indices)
	slices.Sort(matched)
	matched = slices.Compact(matched)

	var b strings.Builder
	b.Grow(len(text) + len(matched)*(len(surround.Prefix)+len(surround.Suffix)))

	next := 0 // cursor into matched
	inRun := false
	pos := 0
	for i := 0; i < len(text); {
		_, size := utf8.DecodeRuneInString(text[i:])
		for next < len(matched) && matched[next] < pos {
			next++
		}
		hit := next < len(matched) && matched[next] == pos

		if hit && !inRun {
			b.WriteString(surround.Prefix)
		}
		if !hit && inRun {
			b.WriteString(surround.Suffix)
		}
		// Invalid bytes are copied through as-is, one position each.
		b.WriteString(text[i : i+size])
		i += size

		inRun = hit
		pos++
	}
	if inRun {
		b.WriteString(surround.Suffix)
	}

	return b.String()
}
