package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dsjohal14/fuzzr/internal/scope/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DATABASE_URL", "DATA_DIR", "FUZZR_CONFIG", "FUZZR_ORACLE", "FUZZR_DEDUP", "FUZZR_MAX_ITEMS"} {
		t.Setenv(key, "")
	}
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCommand(strings.NewReader(stdin), &out, &errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSearchLines(t *testing.T) {
	isolateEnv(t)

	out, err := run(t, "apple\nbanana\ngrape\n", "search", "ap", "--prefix", "[", "--suffix", "]")
	require.NoError(t, err)
	assert.Equal(t, "[ap]ple\ngr[ap]e\n", out)
}

func TestSearchWithoutMarkers(t *testing.T) {
	isolateEnv(t)

	out, err := run(t, "apple\nbanana\ngrape\n", "search", "ap")
	require.NoError(t, err)
	assert.Equal(t, "apple\ngrape\n", out)
}

func TestSearchFromFile(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("grape\napple\n"), 0o644))

	out, err := run(t, "", "search", "ap", path)
	require.NoError(t, err)
	assert.Equal(t, "apple\ngrape\n", out)

	_, err = run(t, "", "search", "ap", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestSearchScores(t *testing.T) {
	isolateEnv(t)

	out, err := run(t, "banana\napple\n", "search", "ap", "--scores")
	require.NoError(t, err)

	fields := strings.Split(strings.TrimSpace(out), "\t")
	require.Len(t, fields, 3)
	assert.Equal(t, "1", fields[1])
	assert.Equal(t, "apple", fields[2])
}

func TestSearchLimit(t *testing.T) {
	isolateEnv(t)

	out, err := run(t, "apple\ngrape\n", "search", "ap", "-n", "1")
	require.NoError(t, err)
	assert.Equal(t, "apple\n", out)

	_, err = run(t, "apple\n", "search", "ap", "-n", "-1")
	assert.Error(t, err)
}

func TestSearchJSONOutput(t *testing.T) {
	isolateEnv(t)

	out, err := run(t, "apple\nbanana\ngrape\n", "search", "ap", "-o", "json", "--prefix", "<", "--suffix", ">")
	require.NoError(t, err)

	var results []struct {
		Item      string `json:"item"`
		Index     int    `json:"index"`
		Score     int64  `json:"score"`
		Formatted string `json:"formatted"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "apple", results[0].Item)
	assert.Equal(t, 0, results[0].Index)
	assert.Equal(t, "<ap>ple", results[0].Formatted)
	assert.Equal(t, 2, results[1].Index)
	assert.GreaterOrEqual(t, results[0].Score, results[1].Score)

	_, err = run(t, "apple\n", "search", "ap", "-o", "yaml")
	assert.Error(t, err)
}

func TestSearchJSONInputWithField(t *testing.T) {
	isolateEnv(t)
	input := `[{"name":"apple","id":1},{"name":"banana","id":2},{"name":"grape","id":3}]`

	out, err := run(t, input, "search", "ap", "--json", "--field", "name", "-o", "json")
	require.NoError(t, err)

	var results []struct {
		Item  map[string]any `json:"item"`
		Index int            `json:"index"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, float64(1), results[0].Item["id"])
	assert.Equal(t, 2, results[1].Index)
}

func TestSearchJSONInputErrors(t *testing.T) {
	isolateEnv(t)

	_, err := run(t, `{"not":"an array"}`, "search", "ap", "--json")
	assert.Error(t, err)

	_, err = run(t, `[{"name":"apple"}]`, "search", "ap", "--json")
	assert.ErrorIs(t, err, search.ErrItemType)

	_, err = run(t, `[{"title":"apple"}]`, "search", "ap", "--json", "--field", "name")
	assert.ErrorIs(t, err, search.ErrStringify)
}

func TestSearchDedup(t *testing.T) {
	isolateEnv(t)

	out, err := run(t, "apple\napple\n", "search", "ap", "--scores")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, out, "\t0\t")

	out, err = run(t, "apple\napple\n", "search", "ap", "--scores", "--dedup", "last")
	require.NoError(t, err)
	assert.Contains(t, out, "\t1\t")

	out, err = run(t, "apple\napple\n", "search", "ap", "--dedup", "none")
	require.NoError(t, err)
	assert.Equal(t, "apple\napple\n", out)

	_, err = run(t, "apple\n", "search", "ap", "--dedup", "sometimes")
	assert.ErrorIs(t, err, search.ErrConfiguration)
}

func TestSearchSahilmOracle(t *testing.T) {
	isolateEnv(t)

	out, err := run(t, "apple\nbanana\n", "--oracle", "sahilm", "search", "ap", "--prefix", "[", "--suffix", "]")
	require.NoError(t, err)
	assert.Equal(t, "[ap]ple\n", out)

	_, err = run(t, "apple\n", "--oracle", "nope", "search", "ap")
	assert.Error(t, err)
}

func TestSearchColorIgnoredOffTerminal(t *testing.T) {
	isolateEnv(t)

	out, err := run(t, "apple\n", "search", "ap", "--color")
	require.NoError(t, err)
	assert.Equal(t, "apple\n", out)
}

func TestSearchConfiguredSurround(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "fuzzr.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search:\n  surround: [\"*\", \"*\"]\n"), 0o644))
	t.Setenv("FUZZR_CONFIG", path)

	out, err := run(t, "apple\n", "search", "ap")
	require.NoError(t, err)
	assert.Equal(t, "*ap*ple\n", out)

	out, err = run(t, "apple\n", "search", "ap", "--plain")
	require.NoError(t, err)
	assert.Equal(t, "apple\n", out)
}

func TestMatch(t *testing.T) {
	isolateEnv(t)

	out, err := run(t, "", "match", "apple", "ap")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = run(t, "", "match", "banana", "ap")
	assert.ErrorIs(t, err, errNoMatch)
	assert.Equal(t, "false\n", out)

	out, err = run(t, "", "match", "-q", "banana", "ap")
	assert.ErrorIs(t, err, errNoMatch)
	assert.Empty(t, out)
}

func TestCollectionLifecycle(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()

	out, err := run(t, "apple\nbanana\ngrape\n", "--data-dir", dir, "collection", "put", "fruit")
	require.NoError(t, err)
	assert.Equal(t, "stored 3 items in fruit\n", out)

	out, err = run(t, "", "--data-dir", dir, "collection", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "fruit")

	out, err = run(t, "", "--data-dir", dir, "collection", "search", "fruit", "ap", "--prefix", "[", "--suffix", "]")
	require.NoError(t, err)
	assert.Equal(t, "[ap]ple\ngr[ap]e\n", out)

	_, err = run(t, "", "--data-dir", dir, "collection", "rm", "fruit")
	require.NoError(t, err)

	_, err = run(t, "", "--data-dir", dir, "collection", "search", "fruit", "ap")
	assert.Error(t, err)

	_, err = run(t, "", "--data-dir", dir, "collection", "rm", "fruit")
	assert.Error(t, err)
}

func TestCollectionPutJSON(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	input := `[{"name":"apple"},{"name":"grape"}]`

	_, err := run(t, input, "--data-dir", dir, "collection", "put", "--json", "fruit")
	require.NoError(t, err)

	out, err := run(t, "", "--data-dir", dir, "collection", "search", "fruit", "gr", "--field", "name", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "grape"`)

	_, err = run(t, "not json", "--data-dir", dir, "collection", "put", "--json", "fruit")
	assert.Error(t, err)

	_, err = run(t, "apple\n", "--data-dir", dir, "collection", "put", "bad name")
	assert.Error(t, err)
}

func TestMarkersFrom(t *testing.T) {
	s := markersFrom("\x1b[1;38;5;141mX\x1b[0m")
	require.NotNil(t, s)
	assert.Equal(t, "\x1b[1;38;5;141m", s.Prefix)
	assert.Equal(t, "\x1b[0m", s.Suffix)

	assert.Nil(t, markersFrom("X"))
	assert.Nil(t, markersFrom(""))
}

func TestWriteResultsError(t *testing.T) {
	results := []search.Result{{Item: "apple", Formatted: "apple"}}
	assert.Error(t, writeResults(failingWriter{}, "text", false, results))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }
