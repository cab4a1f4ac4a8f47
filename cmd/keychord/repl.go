package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/keychord/internal/config/loader"
	"github.com/dshills/keychord/internal/config/watcher"
	"github.com/dshills/keychord/internal/dispatcher"
	"github.com/dshills/keychord/internal/input"
	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/keymap"
	"github.com/dshills/keychord/internal/input/tcellkey"
	"github.com/dshills/keychord/internal/log"
)

// ErrNotTerminal is returned by repl when stdin is not a terminal.
var ErrNotTerminal = errors.New("repl needs an interactive terminal")

func newReplCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Try bindings interactively",
		Long: `repl reads keys from the terminal and shows how each one resolves.

  F2  toggle has-selection     F3  toggle multiple cursors
  F4  toggle modal             F5  switch editor/sidebar focus
  Ctrl+C quits.

A mouse click or losing focus cancels a pending chord. A user keymap
that fails to load is reported and the defaults are used. With --watch
the user keymap is reloaded when it changes; a broken edit keeps the
current bindings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.repl(cmd.Context())
		},
	}
	cmd.Flags().BoolP("watch", "w", false, "reload the user keymap when the file changes")
	cobra.CheckErr(bindFlags(c.v, cmd.Flags(), map[string]string{"watch": "watch"}))
	return cmd
}

func (c *cli) repl(ctx context.Context) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return ErrNotTerminal
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.EnableFocus()

	editor := newReplEditor()
	view := newReplView(screen, c.settings.ResolvedPlatform(), editor)

	// Log lines go to the screen unless a log file was given.
	logger := c.logger
	if c.logFile == "" {
		level, format := c.settings.Logging()
		logger = log.NewFormat(view, format, level)
	}
	opts := c.loadOptions()
	opts.Logger = logger

	userPath := c.settings.UserKeymap
	if userPath != "" {
		userPath = loader.ExpandPath(userPath)
	}
	table, err := c.tableOrDefaults(userPath, opts)
	if err != nil {
		return err
	}

	cfg := c.handlerConfig()
	cfg.Logger = logger
	cfg.CaseImpliesShift = true
	h := input.NewHandler(table, dispatcher.New(c.registry, dispatcher.DefaultConfig()), input.EditorContext(editor), cfg)
	defer h.Close()
	h.Hooks().RegisterWithOptions(input.LoggingHook{Logger: logger}, "log", input.HookPriorityLow)
	view.pending = h.PendingKeys

	if c.settings.Watch && userPath != "" {
		stop, err := c.watchKeymap(h, userPath, opts)
		if err != nil {
			return err
		}
		defer stop()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan key.RawEvent)
	go c.pollEvents(ctx, cancel, screen, h, view, events)

	view.draw()
	err = h.Run(ctx, events, input.DefaultTickInterval, view.outcome)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// pollEvents translates terminal events until ctx is done or Ctrl+C is
// pressed. Function keys F2..F5 change the context instead of resolving.
func (c *cli) pollEvents(ctx context.Context, cancel context.CancelFunc, screen tcell.Screen, h *input.Handler, view *replView, events chan<- key.RawEvent) {
	defer cancel()
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			screen.Sync()
			view.draw()
		case *redrawEvent:
			view.draw()
		case *tcell.EventFocus:
			if !ev.Focused && h.Cancel(input.CancelFocus) {
				view.note("chord cancelled (focus lost)")
			}
		case *tcell.EventMouse:
			if ev.Buttons()&tcell.ButtonPrimary != 0 && h.Cancel(input.CancelPointer) {
				view.note("chord cancelled (pointer)")
			}
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC {
				return
			}
			if view.toggle(ev.Key()) {
				continue
			}
			select {
			case events <- tcellkey.FromEvent(ev):
			case <-ctx.Done():
				return
			}
		}
	}
}

// watchKeymap reloads the user keymap into h whenever the file changes.
func (c *cli) watchKeymap(h *input.Handler, path string, opts keymap.LoadOptions) (func(), error) {
	logger := log.For(opts.Logger, log.CatWatcher)
	w, err := watcher.New(watcher.WithLogger(opts.Logger))
	if err != nil {
		return nil, err
	}
	w.OnChange(func(ev watcher.Event) {
		table, err := c.loader.LoadTable(path, opts)
		if err != nil {
			logger.Error("keymap reload failed, keeping current bindings",
				"file", filepath.Base(ev.Path), "error", err)
			return
		}
		h.Reload(table)
		logger.Info("keymap reloaded", "file", filepath.Base(ev.Path), "op", ev.Op.String(), "bindings", table.Len())
	})
	w.Start()
	if err := w.Watch(path); err != nil {
		_ = w.Stop()
		return nil, err
	}
	return func() { _ = w.Stop() }, nil
}
