package oracle

import (
	"slices"
	"sync"
	"unicode"

	"github.com/dsjohal14/fuzzr/internal/scope/search"
	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// CaseMode controls case sensitivity of the fzf oracle.
type CaseMode int

const (
	// CaseSmart is case sensitive only when the query has an upper case letter.
	CaseSmart CaseMode = iota
	CaseIgnore
	CaseRespect
)

// FZFOptions configures the fzf oracle.
type FZFOptions struct {
	Case CaseMode

	// Normalize folds latin diacritics so "e" matches "é".
	Normalize bool
}

var initScheme sync.Once

// FZF matches with fzf's FuzzyMatchV2 algorithm. Positions are rune indices.
type FZF struct {
	opts FZFOptions
	slab *util.Slab
}

// NewFZF creates an fzf oracle with its own scratch slab.
func NewFZF(opts FZFOptions) *FZF {
	initScheme.Do(func() { algo.Init("default") })
	return &FZF{
		opts: opts,
		slab: util.MakeSlab(100*1024, 2048),
	}
}

// Match implements search.Oracle.
func (o *FZF) Match(text, query string) (search.Match, bool, error) {
	pattern := []rune(query)
	caseSensitive := o.caseSensitive(pattern)
	if !caseSensitive {
		for i, r := range pattern {
			pattern[i] = unicode.ToLower(r)
		}
	}
	if o.opts.Normalize {
		pattern = algo.NormalizeRunes(pattern)
	}

	chars := util.ToChars([]byte(text))
	res, pos := algo.FuzzyMatchV2(caseSensitive, o.opts.Normalize, true, &chars, pattern, true, o.slab)
	if res.Start < 0 {
		return search.Match{}, false, nil
	}

	var indices []int
	if pos != nil {
		indices = slices.Clone(*pos)
		slices.Sort(indices)
	}
	return search.Match{Score: int64(res.Score), Indices: indices}, true, nil
}

func (o *FZF) caseSensitive(pattern []rune) bool {
	switch o.opts.Case {
	case CaseRespect:
		return true
	case CaseIgnore:
		return false
	}
	for _, r := range pattern {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
