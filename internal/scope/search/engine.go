// Package search ranks candidates against a query using a pluggable fuzzy
// matching oracle and renders the matched positions of each result.
package search

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Engine runs ranked searches with a fixed oracle and options. It keeps no
// state between calls; whether it may be shared across goroutines depends
// on the oracle.
type Engine struct {
	oracle Oracle
	opts   Options
	text   textFunc
	logger zerolog.Logger
}

// NewEngine validates opts and binds them to oracle.
func NewEngine(oracle Oracle, opts Options) (*Engine, error) {
	if oracle == nil {
		return nil, configError("oracle is required")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return &Engine{
		oracle: oracle,
		opts:   opts,
		text:   resolveText(opts.Stringify),
		logger: zerolog.Nop(),
	}, nil
}

// WithLogger sets the logger used for per-search debug summaries.
func (e *Engine) WithLogger(logger zerolog.Logger) *Engine {
	e.logger = logger
	return e
}

// Options returns the options the engine was built with.
func (e *Engine) Options() Options {
	return e.opts
}

// Search matches every candidate against query and returns the matches
// ranked by score descending, then original position ascending. The first
// error aborts the search and no results are returned.
func (e *Engine) Search(items Source, query string) ([]Result, error) {
	if items == nil {
		return []Result{}, nil
	}

	start := time.Now()
	coll := newCollector(e.opts.Dedup)
	index := 0

	for item, err := range items {
		if err != nil {
			return nil, &Error{Kind: KindItemType, Index: index, Msg: "reading candidates", Err: err}
		}

		text, err := e.text(item, index)
		if err != nil {
			return nil, err
		}

		m, ok, err := e.match(text, query, index)
		if err != nil {
			return nil, err
		}
		if ok {
			coll.insert(&Result{
				Item:      item,
				Index:     index,
				Score:     m.Score,
				Formatted: Format(text, m.Indices, e.opts.Surround),
			})
		}
		index++
	}

	results := coll.drain()

	e.logger.Debug().
		Int("candidates", index).
		Int("matched", len(results)).
		Dur("took", time.Since(start)).
		Msg("search completed")

	return results, nil
}

// Matches reports whether the oracle accepts text for query.
func (e *Engine) Matches(text, query string) (bool, error) {
	_, ok, err := e.match(text, query, -1)
	return ok, err
}

func (e *Engine) match(text, query string, index int) (m Match, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &Error{Kind: KindOracle, Index: index, Msg: fmt.Sprintf("oracle panicked: %v", r)}
		}
	}()

	m, ok, err = e.oracle.Match(text, query)
	if err != nil {
		return Match{}, false, &Error{Kind: KindOracle, Index: index, Err: err}
	}
	return m, ok, nil
}

// Search is a one-shot NewEngine followed by Engine.Search.
func Search(items Source, query string, oracle Oracle, opts Options) ([]Result, error) {
	e, err := NewEngine(oracle, opts)
	if err != nil {
		return nil, err
	}
	return e.Search(items, query)
}
