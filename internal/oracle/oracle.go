// Package oracle provides the fuzzy matching backends used by the search
// engine. Every constructor returns a fresh instance; instances are not
// safe for concurrent use.
package oracle

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/dsjohal14/fuzzr/internal/scope/search"
)

// Registered oracle names.
const (
	NameFZF    = "fzf"
	NameSahilm = "sahilm"

	// Default is used when no oracle is named.
	Default = NameFZF
)

var factories = map[string]func() search.Oracle{
	NameFZF:    func() search.Oracle { return NewFZF(FZFOptions{Case: CaseSmart, Normalize: true}) },
	NameSahilm: func() search.Oracle { return NewSahilm() },
}

// New builds the oracle registered under name. The empty name selects Default.
func New(name string) (search.Oracle, error) {
	if name == "" {
		name = Default
	}
	factory, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown oracle %q (available: %v)", name, Names())
	}
	return factory(), nil
}

// Names lists the registered oracles in sorted order.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// runePositions converts byte offsets into text to rune positions. Offsets
// that do not start a rune are dropped.
func runePositions(text string, offsets []int) []int {
	if len(offsets) == 0 {
		return nil
	}

	byOffset := make(map[int]int, utf8.RuneCountInString(text))
	pos := 0
	for i := range text {
		byOffset[i] = pos
		pos++
	}

	out := make([]int, 0, len(offsets))
	for _, off := range offsets {
		if p, ok := byOffset[off]; ok {
			out = append(out, p)
		}
	}
	return out
}
