package search

import "iter"

// Source yields candidates in their original order. A non-nil error aborts
// the search with an item_type error.
type Source = iter.Seq2[any, error]

// FromSlice returns a Source over items.
func FromSlice[T any](items []T) Source {
	return func(yield func(any, error) bool) {
		for _, item := range items {
			if !yield(item, nil) {
				return
			}
		}
	}
}

// FromSeq returns a Source over an arbitrary sequence.
func FromSeq[T any](seq iter.Seq[T]) Source {
	return func(yield func(any, error) bool) {
		for item := range seq {
			if !yield(item, nil) {
				return
			}
		}
	}
}

// FromStrings is FromSlice for plain text candidates.
func FromStrings(items ...string) Source {
	return FromSlice(items)
}
