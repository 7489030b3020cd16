package search

import (
	"errors"
	"fmt"
)

// Kind classifies why a search failed.
type Kind string

const (
	// KindConfiguration covers malformed options, rejected before any candidate is scanned.
	KindConfiguration Kind = "configuration"

	// KindItemType covers candidates that are not text when no stringifier is set,
	// and failures of the candidate sequence itself.
	KindItemType Kind = "item_type"

	// KindStringify covers stringifier failures.
	KindStringify Kind = "stringify"

	// KindOracle covers unexpected failures of the matching oracle.
	KindOracle Kind = "oracle"
)

// Error is returned by every failing search operation. A failed search
// never returns partial results.
type Error struct {
	Kind Kind

	// Index is the original position of the offending candidate, or -1.
	Index int

	Msg string
	Err error
}

// Sentinels for errors.Is checks against a kind.
var (
	ErrConfiguration = &Error{Kind: KindConfiguration, Index: -1}
	ErrItemType      = &Error{Kind: KindItemType, Index: -1}
	ErrStringify     = &Error{Kind: KindStringify, Index: -1}
	ErrOracle        = &Error{Kind: KindOracle, Index: -1}
)

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s error", e.Kind)
	if e.Index >= 0 {
		msg = fmt.Sprintf("%s (item %d)", msg, e.Index)
	}
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// KindOf reports the kind of err, or "" if err is not a search error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func configError(format string, args ...any) *Error {
	return &Error{Kind: KindConfiguration, Index: -1, Msg: fmt.Sprintf(format, args...)}
}
