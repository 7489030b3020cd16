package search

// Match is a successful oracle answer.
type Match struct {
	// Score ranks the match; higher is more relevant.
	Score int64

	// Indices are the 0-based rune positions of text that matched.
	Indices []int
}

// Oracle decides whether text fuzzy-matches query. It returns ok=false when
// there is no match. Implementations are not assumed to be safe for
// concurrent use.
type Oracle interface {
	Match(text, query string) (m Match, ok bool, err error)
}

// OracleFunc adapts a plain function to the Oracle interface.
type OracleFunc func(text, query string) (Match, bool, error)

// Match calls f(text, query).
func (f OracleFunc) Match(text, query string) (Match, bool, error) {
	return f(text, query)
}
