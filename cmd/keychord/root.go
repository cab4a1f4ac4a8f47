package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dshills/keychord/internal/config"
	"github.com/dshills/keychord/internal/config/loader"
	"github.com/dshills/keychord/internal/dispatcher"
	"github.com/dshills/keychord/internal/input"
	"github.com/dshills/keychord/internal/input/keymap"
	"github.com/dshills/keychord/internal/log"
)

// cli carries the state shared by every subcommand. It is filled in by
// the root command's PersistentPreRunE.
type cli struct {
	v       *viper.Viper
	cfgFile string
	logFile string

	settings config.Settings
	logger   *slog.Logger
	closeLog func()
	registry *dispatcher.Registry
	loader   *loader.Loader
}

func newRootCmd(version string) *cobra.Command {
	c := &cli{
		v:      config.NewViper(),
		loader: loader.New(),
	}

	root := &cobra.Command{
		Use:   "keychord",
		Short: "Context-aware keybinding resolution",
		Long: `keychord resolves keystrokes and chords against a layered keymap:
built-in defaults with an optional user keymap (YAML, TOML or JSON) on top.

Use it to validate a keymap, list the effective bindings, trace how a
sequence of keys resolves, or try bindings interactively.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.closeLog != nil {
				c.closeLog()
			}
		},
	}

	f := root.PersistentFlags()
	f.StringVarP(&c.cfgFile, "config", "c", "", "settings file (yaml, toml or json)")
	f.StringVar(&c.logFile, "log-file", "", "write logs to this file instead of stderr")
	f.StringP("user-keymap", "u", "", "user keymap file")
	f.String("platform", "", "platform: macos, windows or linux (default: running system)")
	f.Duration("chord-timeout", keymap.DefaultChordTimeout, "how long a pending chord waits")
	f.String("chord-policy", keymap.ChordWait.String(), `"wait" or "eager"`)
	f.String("log-level", "info", "debug, info, warn or error")
	f.String("log-format", string(log.FormatText), `"text" or "json"`)

	cobra.CheckErr(bindFlags(c.v, f, map[string]string{
		"user-keymap":   "user_keymap",
		"platform":      "platform",
		"chord-timeout": "chord_timeout",
		"chord-policy":  "chord_policy",
		"log-level":     "log_level",
		"log-format":    "log_format",
	}))

	root.AddCommand(
		newCheckCmd(c),
		newBindingsCmd(c),
		newResolveCmd(c),
		newReplCmd(c),
	)
	return root
}

// bindFlags binds each flag to the viper key it maps to.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	for flag, key := range keys {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return fmt.Errorf("binding --%s: %w", flag, err)
		}
	}
	return nil
}

// setup reads settings and builds the logger and command registry.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	path := c.cfgFile
	if path != "" {
		path = loader.ExpandPath(path)
	}
	s, err := config.Load(c.v, path)
	if err != nil {
		return err
	}
	c.settings = s

	level, format := s.Logging()
	if c.logFile != "" {
		logger, closeFn, err := log.Open(loader.ExpandPath(c.logFile), format, level)
		if err != nil {
			return err
		}
		c.logger, c.closeLog = logger, closeFn
	} else {
		c.logger = log.NewFormat(cmd.ErrOrStderr(), format, level)
	}

	c.registry = dispatcher.DefaultRegistry()
	log.For(c.logger, log.CatCLI).Debug("settings loaded",
		"config", c.cfgFile,
		"platform", s.ResolvedPlatform().String(),
		"policy", s.ChordPolicy,
		"timeout", s.ChordTimeout)
	return nil
}

func (c *cli) loadOptions() keymap.LoadOptions {
	return keymap.LoadOptions{
		Platform: c.settings.ResolvedPlatform(),
		Commands: c.registry,
		Logger:   c.logger,
	}
}

// loadTable builds the effective table from the defaults and the
// configured user keymap.
func (c *cli) loadTable() (*keymap.Table, error) {
	return c.tableOrDefaults(c.settings.UserKeymap, c.loadOptions())
}

// tableOrDefaults loads the user keymap at path over the defaults. A user
// keymap that fails to load is logged and the defaults are used alone;
// only check treats it as fatal.
func (c *cli) tableOrDefaults(path string, opts keymap.LoadOptions) (*keymap.Table, error) {
	table, err := c.loader.LoadTable(path, opts)
	if err == nil {
		return table, nil
	}
	log.For(opts.Logger, log.CatCLI).Error("user keymap rejected, using defaults",
		"file", path, "error", err)
	return keymap.Load(loader.DefaultRecords(opts.Logger), nil, opts)
}

// handlerConfig maps settings onto a handler configuration.
func (c *cli) handlerConfig() input.Config {
	cfg := input.DefaultConfig()
	cfg.ChordTimeout = c.settings.ChordTimeout
	cfg.Policy = c.settings.Policy()
	cfg.Platform = c.settings.ResolvedPlatform()
	cfg.SuppressRepeat = c.settings.SuppressRepeat
	// Validate has already parsed these.
	keys, _ := c.settings.CancelKeystrokes()
	cfg.CancelKeys = keys
	cfg.Logger = c.logger
	return cfg
}
