package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/keychord/internal/dispatcher"
	"github.com/dshills/keychord/internal/input"
	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/keymap"
)

type resolveOptions struct {
	when []string
	gap  time.Duration
}

func newResolveCmd(c *cli) *cobra.Command {
	var opts resolveOptions
	cmd := &cobra.Command{
		Use:   "resolve KEYS...",
		Short: "Trace how a key sequence resolves",
		Long: `resolve feeds keystrokes through the engine and prints each outcome.
Every argument may hold several whitespace-separated keystrokes:

  keychord resolve "ctrl+k ctrl+c" --when editor-focused,has-selection
  keychord resolve ctrl+k --gap 2s ctrl+c

Time is simulated. --gap advances the clock between keystrokes, which
lets a chord time out.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.resolve(cmd.OutOrStdout(), args, opts)
		},
	}
	f := cmd.Flags()
	f.StringSliceVar(&opts.when, "when", []string{"editor-focused"}, "conditions that hold")
	f.DurationVar(&opts.gap, "gap", 0, "simulated time between keystrokes")
	return cmd
}

func (c *cli) resolve(w io.Writer, args []string, opts resolveOptions) error {
	platform := c.settings.ResolvedPlatform()
	seq, err := key.ParseSequence(strings.Join(args, " "), platform)
	if err != nil {
		return err
	}
	ctx, err := keymap.ContextFrom(opts.when...)
	if err != nil {
		return err
	}
	table, err := c.loadTable()
	if err != nil {
		return err
	}

	clock := keymap.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	cfg := c.handlerConfig()
	cfg.Clock = clock
	h := input.NewHandler(table,
		dispatcher.New(c.registry, dispatcher.DefaultConfig()),
		input.NewMutableContext(ctx),
		cfg)
	defer h.Close()

	for i, k := range seq {
		if i > 0 && opts.gap > 0 {
			clock.Advance(opts.gap)
			if out, ok := h.Tick(); ok {
				if _, err := fmt.Fprintln(w, out); err != nil {
					return err
				}
			}
		}
		out, ok := h.HandleKeystroke(k)
		if !ok {
			continue
		}
		if _, err := fmt.Fprintln(w, out); err != nil {
			return err
		}
	}

	if pending := h.PendingKeys(); pending != "" {
		_, err = fmt.Fprintf(w, "pending: %s (waiting up to %s)\n", pending, h.Config().ChordTimeout)
	}
	return err
}
