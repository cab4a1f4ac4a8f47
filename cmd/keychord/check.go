package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/keychord/internal/config/loader"
	"github.com/dshills/keychord/internal/input/keymap"
)

func newCheckCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "check [FILE]",
		Short: "Validate a user keymap against the defaults",
		Long: `check parses a user keymap and merges it with the default bindings,
reporting the first invalid record. FILE defaults to the configured
user keymap. Unlike other commands, a missing FILE is an error.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.settings.UserKeymap
			if len(args) == 1 {
				path = args[0]
			}
			return c.check(cmd.OutOrStdout(), path)
		},
	}
}

func (c *cli) check(w io.Writer, path string) error {
	var user []keymap.Record
	if path != "" {
		records, err := c.loader.LoadFile(path)
		if err != nil {
			return err
		}
		user = records
	}

	table, err := keymap.Load(loader.DefaultRecords(c.logger), user, c.loadOptions())
	if err != nil {
		return err
	}

	var fromUser int
	for _, b := range table.Bindings() {
		if b.Source == keymap.SourceUser {
			fromUser++
		}
	}
	source := "defaults only"
	if path != "" {
		source = fmt.Sprintf("%d records in %s", len(user), path)
	}
	_, err = fmt.Fprintf(w, "ok: %d bindings, %d from user (%s)\n", table.Len(), fromUser, source)
	return err
}
