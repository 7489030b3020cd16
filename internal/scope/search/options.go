package search

import (
	"fmt"
	"reflect"
)

// Option keys recognised by ParseOptions.
const (
	KeySurroundMatchesWith = "surroundMatchesWith"
	KeyToString            = "toString"
	KeyDedup               = "dedup"
)

// Surround holds the markers placed around each run of matched characters.
type Surround struct {
	Prefix string
	Suffix string
}

// StringifyFunc turns a candidate into the text the oracle matches against.
type StringifyFunc func(item any) (string, error)

// DedupPolicy decides what happens when two matching candidates are equal.
type DedupPolicy int

const (
	// DedupFirst keeps the earliest of equal candidates.
	DedupFirst DedupPolicy = iota

	// DedupLast keeps the latest of equal candidates.
	DedupLast

	// DedupNone keeps every candidate.
	DedupNone
)

func (p DedupPolicy) String() string {
	switch p {
	case DedupFirst:
		return "first"
	case DedupLast:
		return "last"
	case DedupNone:
		return "none"
	default:
		return fmt.Sprintf("DedupPolicy(%d)", int(p))
	}
}

// ParseDedupPolicy maps "first", "last" or "none" to a policy. The empty
// string is DedupFirst.
func ParseDedupPolicy(s string) (DedupPolicy, error) {
	switch s {
	case "", "first":
		return DedupFirst, nil
	case "last":
		return DedupLast, nil
	case "none":
		return DedupNone, nil
	default:
		return DedupFirst, configError("unknown dedup policy %q", s)
	}
}

// Options configures a single Engine. The zero value means no highlighting,
// native text candidates and first-occurrence deduplication.
type Options struct {
	// Surround enables highlighting when non-nil.
	Surround *Surround

	// Stringify is used to obtain match text. When nil, candidates must be
	// strings or fmt.Stringers.
	Stringify StringifyFunc

	Dedup DedupPolicy
}

// Validate checks fields that cannot be expressed by the type system.
func (o Options) Validate() error {
	switch o.Dedup {
	case DedupFirst, DedupLast, DedupNone:
	default:
		return configError("invalid dedup policy %d", int(o.Dedup))
	}
	return nil
}

// ParseOptions builds Options from a loosely typed map, such as decoded JSON
// or a host binding. Recognised keys:
//
//	surroundMatchesWith  nil, or an array of exactly two strings
//	toString             nil, or a function of one item returning a string
//	dedup                nil, or "first" | "last" | "none"
//
// Unknown keys are ignored. Any malformed value is a configuration error.
func ParseOptions(raw map[string]any) (Options, error) {
	var opts Options
	if raw == nil {
		return opts, nil
	}

	if v, ok := raw[KeySurroundMatchesWith]; ok && v != nil {
		s, err := parseSurround(v)
		if err != nil {
			return Options{}, err
		}
		opts.Surround = s
	}

	if v, ok := raw[KeyToString]; ok && v != nil {
		fn, err := parseStringify(v)
		if err != nil {
			return Options{}, err
		}
		opts.Stringify = fn
	}

	if v, ok := raw[KeyDedup]; ok && v != nil {
		s, isString := v.(string)
		if !isString {
			return Options{}, configError("%s must be a string, got %T", KeyDedup, v)
		}
		p, err := ParseDedupPolicy(s)
		if err != nil {
			return Options{}, err
		}
		opts.Dedup = p
	}

	return opts, nil
}

func parseSurround(v any) (*Surround, error) {
	var parts []any
	switch t := v.(type) {
	case []any:
		parts = t
	case []string:
		for _, s := range t {
			parts = append(parts, s)
		}
	case [2]string:
		parts = []any{t[0], t[1]}
	default:
		return nil, configError("%s must be an array of two strings, got %T", KeySurroundMatchesWith, v)
	}

	if len(parts) != 2 {
		return nil, configError("%s must have exactly 2 elements, got %d", KeySurroundMatchesWith, len(parts))
	}
	prefix, ok := parts[0].(string)
	if !ok {
		return nil, configError("%s[0] must be a string, got %T", KeySurroundMatchesWith, parts[0])
	}
	suffix, ok := parts[1].(string)
	if !ok {
		return nil, configError("%s[1] must be a string, got %T", KeySurroundMatchesWith, parts[1])
	}
	return &Surround{Prefix: prefix, Suffix: suffix}, nil
}

func parseStringify(v any) (StringifyFunc, error) {
	switch fn := v.(type) {
	case StringifyFunc:
		return fn, nil
	case func(any) (string, error):
		return fn, nil
	case func(any) string:
		return func(item any) (string, error) { return fn(item), nil }, nil
	}
	if reflect.TypeOf(v).Kind() == reflect.Func {
		return nil, configError("%s has unsupported signature %T", KeyToString, v)
	}
	return nil, configError("%s must be callable, got %T", KeyToString, v)
}

// textFunc resolves the match text of a candidate at position index.
type textFunc func(item any, index int) (string, error)

// resolveText picks the text source once per engine.
func resolveText(stringify StringifyFunc) textFunc {
	if stringify == nil {
		return nativeText
	}
	return func(item any, index int) (text string, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &Error{Kind: KindStringify, Index: index, Msg: fmt.Sprintf("stringifier panicked: %v", r)}
			}
		}()
		text, err = stringify(item)
		if err != nil {
			return "", &Error{Kind: KindStringify, Index: index, Err: err}
		}
		return text, nil
	}
}

func nativeText(item any, index int) (string, error) {
	switch t := item.(type) {
	case string:
		return t, nil
	case fmt.Stringer:
		return t.String(), nil
	default:
		return "", &Error{
			Kind:  KindItemType,
			Index: index,
			Msg:   fmt.Sprintf("item of type %T is not text and no stringifier is configured", item),
		}
	}
}
