package search

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptions(t *testing.T) {
	t.Run("nil map", func(t *testing.T) {
		opts, err := ParseOptions(nil)
		require.NoError(t, err)
		assert.Nil(t, opts.Surround)
		assert.Nil(t, opts.Stringify)
		assert.Equal(t, DedupFirst, opts.Dedup)
	})

	t.Run("surround from decoded JSON", func(t *testing.T) {
		opts, err := ParseOptions(map[string]any{KeySurroundMatchesWith: []any{"<", ">"}})
		require.NoError(t, err)
		assert.Equal(t, &Surround{Prefix: "<", Suffix: ">"}, opts.Surround)
	})

	t.Run("surround from string slice", func(t *testing.T) {
		opts, err := ParseOptions(map[string]any{KeySurroundMatchesWith: []string{"**", "**"}})
		require.NoError(t, err)
		assert.Equal(t, "**", opts.Surround.Suffix)
	})

	t.Run("explicit nil values are absent", func(t *testing.T) {
		opts, err := ParseOptions(map[string]any{KeySurroundMatchesWith: nil, KeyToString: nil})
		require.NoError(t, err)
		assert.Nil(t, opts.Surround)
		assert.Nil(t, opts.Stringify)
	})

	t.Run("unknown keys ignored", func(t *testing.T) {
		_, err := ParseOptions(map[string]any{"caseSensitive": true})
		assert.NoError(t, err)
	})

	t.Run("stringify signatures", func(t *testing.T) {
		fns := []any{
			StringifyFunc(func(item any) (string, error) { return "x", nil }),
			func(item any) (string, error) { return "x", nil },
			func(item any) string { return "x" },
		}
		for _, fn := range fns {
			opts, err := ParseOptions(map[string]any{KeyToString: fn})
			require.NoError(t, err)
			text, err := opts.Stringify(1)
			require.NoError(t, err)
			assert.Equal(t, "x", text)
		}
	})

	t.Run("dedup", func(t *testing.T) {
		opts, err := ParseOptions(map[string]any{KeyDedup: "last"})
		require.NoError(t, err)
		assert.Equal(t, DedupLast, opts.Dedup)
	})
}

func TestParseOptionsConfigurationErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{"surround with one element", map[string]any{KeySurroundMatchesWith: []any{"only-one"}}},
		{"surround with three elements", map[string]any{KeySurroundMatchesWith: []any{"a", "b", "c"}}},
		{"surround with non-string element", map[string]any{KeySurroundMatchesWith: []any{"<", 5}}},
		{"surround not an array", map[string]any{KeySurroundMatchesWith: "<>"}},
		{"surround as object", map[string]any{KeySurroundMatchesWith: map[string]any{"prefix": "<"}}},
		{"toString not callable", map[string]any{KeyToString: "name"}},
		{"toString wrong signature", map[string]any{KeyToString: func(a, b int) int { return a + b }}},
		{"dedup not a string", map[string]any{KeyDedup: 1}},
		{"dedup unknown", map[string]any{KeyDedup: "sometimes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOptions(tt.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfiguration), "got %v", err)
		})
	}
}

func TestConfigurationErrorBeforeMatching(t *testing.T) {
	oracle := &subsequenceOracle{}

	run := func(raw map[string]any) ([]Result, error) {
		opts, err := ParseOptions(raw)
		if err != nil {
			return nil, err
		}
		return Search(FromStrings("apple", "grape"), "ap", oracle, opts)
	}

	_, err := run(map[string]any{KeySurroundMatchesWith: []any{"only-one"}})
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Zero(t, oracle.calls)
}

func TestParseDedupPolicy(t *testing.T) {
	for _, p := range []DedupPolicy{DedupFirst, DedupLast, DedupNone} {
		got, err := ParseDedupPolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	got, err := ParseDedupPolicy("")
	require.NoError(t, err)
	assert.Equal(t, DedupFirst, got)
}
