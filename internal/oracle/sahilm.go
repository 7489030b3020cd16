package oracle

import (
	"github.com/dsjohal14/fuzzr/internal/scope/search"
	"github.com/sahilm/fuzzy"
)

// Sahilm matches with github.com/sahilm/fuzzy, which favours matches at word
// starts and after separators.
type Sahilm struct {
	candidate [1]string
}

// NewSahilm creates a sahilm/fuzzy oracle.
func NewSahilm() *Sahilm {
	return &Sahilm{}
}

// Match implements search.Oracle.
func (o *Sahilm) Match(text, query string) (search.Match, bool, error) {
	o.candidate[0] = text
	matches := fuzzy.Find(query, o.candidate[:])
	if len(matches) == 0 {
		return search.Match{}, false, nil
	}

	m := matches[0]
	return search.Match{
		Score:   int64(m.Score),
		Indices: runePositions(text, m.MatchedIndexes),
	}, true, nil
}
