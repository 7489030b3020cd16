package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dsjohal14/fuzzr/internal/oracle"
	"github.com/dsjohal14/fuzzr/internal/scope/jsonitems"
	"github.com/dsjohal14/fuzzr/internal/scope/search"
	"github.com/spf13/cobra"
)

// searchFlags are shared by "search" and "collection search".
type searchFlags struct {
	prefix   string
	suffix   string
	color    bool
	field    string
	dedup    string
	limit    int
	output   string
	jsonIn   bool
	noMarker bool
	scores   bool
}

func (f *searchFlags) register(cmd *cobra.Command, withInput bool) {
	fs := cmd.Flags()
	fs.StringVar(&f.prefix, "prefix", "", "marker inserted before each run of matched characters")
	fs.StringVar(&f.suffix, "suffix", "", "marker inserted after each run of matched characters")
	fs.BoolVar(&f.color, "color", false, "highlight matches with terminal colors (TTY only)")
	fs.BoolVar(&f.noMarker, "plain", false, "disable highlighting, including configured defaults")
	fs.StringVar(&f.field, "field", "", "gjson path to the text of JSON object items")
	fs.StringVar(&f.dedup, "dedup", "", "policy for equal items: first, last or none")
	fs.IntVarP(&f.limit, "limit", "n", 0, "maximum results to print (0 = all)")
	fs.StringVarP(&f.output, "output", "o", "text", "output format: text or json")
	fs.BoolVar(&f.scores, "scores", false, "prefix text output with score and original index")
	if withInput {
		fs.BoolVar(&f.jsonIn, "json", false, "read input as a JSON array instead of lines")
	}
}

// options resolves engine options from the flags over the configured
// defaults.
func (f *searchFlags) options(a *app) (search.Options, error) {
	opts, err := a.cfg.SearchOptions()
	if err != nil {
		return search.Options{}, err
	}

	switch {
	case f.noMarker:
		opts.Surround = nil
	case f.color:
		if s := colorSurround(a.out); s != nil {
			opts.Surround = s
		}
	case f.prefix != "" || f.suffix != "":
		opts.Surround = &search.Surround{Prefix: f.prefix, Suffix: f.suffix}
	}

	if f.field != "" {
		opts.Stringify = jsonitems.FieldStringifier(f.field)
	}
	if f.dedup != "" {
		p, err := search.ParseDedupPolicy(f.dedup)
		if err != nil {
			return search.Options{}, err
		}
		opts.Dedup = p
	}
	return opts, nil
}

func (f *searchFlags) validate() error {
	if f.output != "text" && f.output != "json" {
		return fmt.Errorf("unknown output format %q", f.output)
	}
	if f.limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}
	return nil
}

func newSearchCommand(a *app) *cobra.Command {
	var flags searchFlags

	cmd := &cobra.Command{
		Use:   "search QUERY [FILE]",
		Short: "Rank candidates from FILE or stdin against QUERY",
		Long: `Rank candidates against QUERY, best match first.

Candidates are read one per line, or as a JSON array with --json. JSON
object items need --field to select the text to match.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.validate(); err != nil {
				return err
			}

			in := a.in
			if len(args) == 2 && args[1] != "-" {
				f, err := os.Open(args[1])
				if err != nil {
					return fmt.Errorf("failed to open input: %w", err)
				}
				defer func() { _ = f.Close() }()
				in = f
			}

			var source search.Source
			if flags.jsonIn {
				items, err := readJSONItems(in)
				if err != nil {
					return err
				}
				source = search.FromSlice(items)
			} else {
				source = lines(in)
			}

			return a.runSearch(&flags, source, args[0])
		},
	}

	flags.register(cmd, true)
	return cmd
}

func (a *app) runSearch(flags *searchFlags, source search.Source, query string) error {
	opts, err := flags.options(a)
	if err != nil {
		return err
	}
	o, err := oracle.New(a.cfg.Search.Oracle)
	if err != nil {
		return err
	}
	engine, err := search.NewEngine(o, opts)
	if err != nil {
		return err
	}

	results, err := engine.WithLogger(a.logger).Search(source, query)
	if err != nil {
		return err
	}

	if flags.limit > 0 && flags.limit < len(results) {
		results = results[:flags.limit]
	}
	return writeResults(a.out, flags.output, flags.scores, results)
}

// lines yields each line of r as a text candidate.
func lines(r io.Reader) search.Source {
	return func(yield func(any, error) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			if !yield(scanner.Text(), nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(nil, err)
		}
	}
}

func readJSONItems(r io.Reader) ([]any, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("input is not a JSON array: %w", err)
	}
	return jsonitems.Decode(raw)
}
