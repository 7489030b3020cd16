package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dsjohal14/fuzzr/internal/scope/db"
	"github.com/dsjohal14/fuzzr/internal/scope/jsonitems"
	"github.com/dsjohal14/fuzzr/internal/scope/search"
	"github.com/spf13/cobra"
)

func newCollectionCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "collection",
		Aliases: []string{"col"},
		Short:   "Manage stored candidate collections",
	}

	cmd.AddCommand(
		newCollectionPutCommand(a),
		newCollectionListCommand(a),
		newCollectionRemoveCommand(a),
		newCollectionSearchCommand(a),
	)
	return cmd
}

func newCollectionPutCommand(a *app) *cobra.Command {
	var jsonIn bool

	cmd := &cobra.Command{
		Use:   "put NAME [FILE]",
		Short: "Create or replace a collection from FILE or stdin",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := a.in
			if len(args) == 2 && args[1] != "-" {
				f, err := os.Open(args[1])
				if err != nil {
					return fmt.Errorf("failed to open input: %w", err)
				}
				defer func() { _ = f.Close() }()
				in = f
			}

			var items []json.RawMessage
			if jsonIn {
				if err := json.NewDecoder(in).Decode(&items); err != nil {
					return fmt.Errorf("input is not a JSON array: %w", err)
				}
			} else {
				for line, err := range lines(in) {
					if err != nil {
						return fmt.Errorf("failed to read input: %w", err)
					}
					encoded, err := json.Marshal(line)
					if err != nil {
						return err
					}
					items = append(items, encoded)
				}
			}

			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			c, err := store.Put(cmd.Context(), db.Collection{Name: args[0], Items: items})
			if err != nil {
				return err
			}
			if err := store.Flush(); err != nil {
				return err
			}

			a.logger.Info().Str("collection", c.Name).Int("items", len(c.Items)).Msg("collection stored")
			fmt.Fprintf(a.out, "stored %d items in %s\n", len(c.Items), c.Name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonIn, "json", false, "read input as a JSON array instead of lines")
	return cmd
}

func newCollectionListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			sums, err := store.List(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tITEMS\tUPDATED")
			for _, s := range sums {
				fmt.Fprintf(tw, "%s\t%d\t%s\n", s.Name, s.ItemCount, s.UpdatedAt.Format("2006-01-02 15:04:05"))
			}
			return tw.Flush()
		},
	}
}

func newCollectionRemoveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm NAME",
		Aliases: []string{"delete"},
		Short:   "Delete a collection",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			return store.Flush()
		},
	}
}

func newCollectionSearchCommand(a *app) *cobra.Command {
	var flags searchFlags

	cmd := &cobra.Command{
		Use:   "search NAME QUERY",
		Short: "Rank a stored collection against QUERY",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.validate(); err != nil {
				return err
			}

			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			c, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			items, err := jsonitems.Decode(c.Items)
			if err != nil {
				return err
			}

			return a.runSearch(&flags, search.FromSlice(items), args[1])
		},
	}

	flags.register(cmd, false)
	return cmd
}
