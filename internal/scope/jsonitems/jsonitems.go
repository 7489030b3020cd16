// Package jsonitems adapts JSON-encoded candidates to the search engine.
// JSON strings are searched as native text; any other value is kept as an
// opaque Item and needs a gjson path to produce its text.
package jsonitems

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dsjohal14/fuzzr/internal/scope/search"
	"github.com/tidwall/gjson"
)

// Item is a compact JSON value. It is comparable, so equal values are
// deduplicated by the engine, and it marshals back to the same JSON.
type Item string

// MarshalJSON returns the stored JSON.
func (i Item) MarshalJSON() ([]byte, error) {
	return []byte(i), nil
}

// Decode converts raw JSON values into engine candidates.
func Decode(raw []json.RawMessage) ([]any, error) {
	out := make([]any, len(raw))
	for i, msg := range raw {
		v, err := decodeOne(msg)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

func decodeOne(msg json.RawMessage) (any, error) {
	trimmed := bytes.TrimSpace(msg)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, err
		}
		return s, nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return nil, err
	}
	return Item(buf.String()), nil
}

// FieldStringifier returns a stringifier reading the gjson path from each
// Item. The value at path must be a JSON string. Plain string candidates
// are their own text.
func FieldStringifier(path string) search.StringifyFunc {
	return func(item any) (string, error) {
		switch v := item.(type) {
		case string:
			return v, nil
		case Item:
			res := gjson.Get(string(v), path)
			if !res.Exists() {
				return "", fmt.Errorf("path %q not found in %s", path, v)
			}
			if res.Type != gjson.String {
				return "", fmt.Errorf("path %q is %s, not a string", path, res.Type)
			}
			return res.Str, nil
		default:
			return "", fmt.Errorf("unsupported item type %T", item)
		}
	}
}

// ParseOptions parses options decoded from JSON. A string toString value is
// taken as a gjson path; every other shape is validated by
// search.ParseOptions.
func ParseOptions(raw map[string]any) (search.Options, error) {
	if path, ok := raw[search.KeyToString].(string); ok {
		if path == "" {
			return search.Options{}, &search.Error{
				Kind:  search.KindConfiguration,
				Index: -1,
				Msg:   fmt.Sprintf("%s path %q is not valid", search.KeyToString, path),
			}
		}
		copied := make(map[string]any, len(raw))
		for k, v := range raw {
			copied[k] = v
		}
		copied[search.KeyToString] = FieldStringifier(path)
		raw = copied
	}
	return search.ParseOptions(raw)
}
