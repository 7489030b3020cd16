package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dsjohal14/fuzzr/internal/scope/search"
	"github.com/mattn/go-isatty"
)

// colorSurround returns ANSI markers for w, or nil when w is not a
// terminal or has no color support.
func colorSurround(w io.Writer) *search.Surround {
	f, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return nil
	}

	style := lipgloss.NewRenderer(w).NewStyle().
		Foreground(lipgloss.Color("#A78BFA")).
		Bold(true)
	return markersFrom(style.Render("X"))
}

// markersFrom splits a styled single "X" into the escape sequences around it.
func markersFrom(rendered string) *search.Surround {
	i := strings.Index(rendered, "X")
	if i < 0 || rendered == "X" {
		return nil
	}
	return &search.Surround{Prefix: rendered[:i], Suffix: rendered[i+1:]}
}

func writeResults(w io.Writer, format string, scores bool, results []search.Result) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	for _, r := range results {
		var err error
		if scores {
			_, err = fmt.Fprintf(w, "%d\t%d\t%s\n", r.Score, r.Index, r.Formatted)
		} else {
			_, err = fmt.Fprintln(w, r.Formatted)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
