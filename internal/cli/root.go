// Package cli implements the fuzzr command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dsjohal14/fuzzr/internal/libs/config"
	"github.com/dsjohal14/fuzzr/internal/libs/obs"
	"github.com/dsjohal14/fuzzr/internal/oracle"
	"github.com/dsjohal14/fuzzr/internal/scope/db"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// errNoMatch makes the process exit with status 1 without printing anything.
var errNoMatch = errors.New("no match")

// app carries state shared by all subcommands.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	cfg      *config.Config
	logger   zerolog.Logger
	oracle   string
	logLevel string
	dataDir  string
}

// NewRootCommand builds the fuzzr command tree reading candidates from in
// and writing results to out.
func NewRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "fuzzr",
		Short:         "Ranked fuzzy search with match highlighting",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&a.oracle, "oracle", "", fmt.Sprintf("matching oracle %v", oracle.Names()))
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level for diagnostics on stderr")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "collection store directory (default from DATA_DIR)")

	root.AddCommand(
		newSearchCommand(a),
		newMatchCommand(a),
		newCollectionCommand(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.oracle != "" {
		cfg.Search.Oracle = a.oracle
	}
	if a.dataDir != "" {
		cfg.DataDir = a.dataDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.logger = obs.NewLogger(a.errOut, "cli").Level(obs.ParseLevel(a.logLevel))
	a.logger.Debug().Str("command", cmd.Name()).Str("oracle", cfg.Search.Oracle).Msg("starting")
	return nil
}

func (a *app) openStore(ctx context.Context) (db.Storage, error) {
	return db.Open(ctx, a.cfg.DatabaseURL, a.cfg.DataDir)
}

// Execute runs the CLI against the process's standard streams and returns
// the exit status.
func Execute(args []string) int {
	root := NewRootCommand(os.Stdin, os.Stdout, os.Stderr)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		if errors.Is(err, errNoMatch) {
			return 1
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 2
	}
	return 0
}
