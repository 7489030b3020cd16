package cli

import (
	"fmt"

	"github.com/dsjohal14/fuzzr/internal/oracle"
	"github.com/dsjohal14/fuzzr/internal/scope/search"
	"github.com/spf13/cobra"
)

func newMatchCommand(a *app) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "match TEXT QUERY",
		Short: "Report whether TEXT fuzzy-matches QUERY (exit status 1 if not)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := oracle.New(a.cfg.Search.Oracle)
			if err != nil {
				return err
			}
			engine, err := search.NewEngine(o, search.Options{})
			if err != nil {
				return err
			}

			ok, err := engine.Matches(args[0], args[1])
			if err != nil {
				return err
			}
			if !quiet {
				fmt.Fprintln(a.out, ok)
			}
			if !ok {
				return errNoMatch
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print nothing, only set the exit status")
	return cmd
}
