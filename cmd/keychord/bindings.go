package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/rivo/uniseg"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/keychord/internal/config/loader"
	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/keymap"
)

type bindingsOptions struct {
	command      string
	when         []string
	allPlatforms bool
	format       string
}

func newBindingsCmd(c *cli) *cobra.Command {
	var opts bindingsOptions
	cmd := &cobra.Command{
		Use:   "bindings",
		Short: "List the effective bindings",
		Long: `bindings lists the merged default and user bindings with their
platform display strings. With --when only bindings whose conditions hold
in that context are shown. --format yaml writes a keymap that check and
--user-keymap accept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.bindings(cmd.OutOrStdout(), opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.command, "command", "", "only bindings whose command contains this text")
	f.StringSliceVar(&opts.when, "when", nil, "only bindings active under these conditions")
	f.BoolVar(&opts.allPlatforms, "all-platforms", false, "include bindings restricted to other platforms")
	f.StringVarP(&opts.format, "format", "o", "table", "table, json or yaml")
	return cmd
}

func (c *cli) bindings(w io.Writer, opts bindingsOptions) error {
	table, err := c.loadTable()
	if err != nil {
		return err
	}
	platform := c.settings.ResolvedPlatform()

	var ctx keymap.Context
	if len(opts.when) > 0 {
		if ctx, err = keymap.ContextFrom(opts.when...); err != nil {
			return err
		}
	}

	var selected []keymap.Binding
	for _, b := range table.Bindings() {
		if !opts.allPlatforms && !b.Platform.Allows(platform) {
			continue
		}
		if len(opts.when) > 0 && !b.Active(ctx, platform) {
			continue
		}
		if opts.command != "" && !strings.Contains(strings.ToLower(string(b.Command)), strings.ToLower(opts.command)) {
			continue
		}
		selected = append(selected, b)
	}

	switch opts.format {
	case "table":
		return writeBindingsTable(w, selected, platform)
	case "json":
		data, err := bindingsJSON(selected, platform)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "yaml":
		records := make([]keymap.Record, len(selected))
		for i, b := range selected {
			records[i] = b.Record()
		}
		data, err := loader.MarshalYAML(records)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}
}

func writeBindingsTable(w io.Writer, bindings []keymap.Binding, platform key.Platform) error {
	rows := [][]string{{"KEYS", "COMMAND", "WHEN", "PLATFORM", "SOURCE"}}
	for _, b := range bindings {
		p := b.Platform.String()
		if p == "" {
			p = "-"
		}
		rows = append(rows, []string{
			b.Pattern.Display(displayPlatform(b, platform)),
			string(b.Command),
			conditionList(b.When),
			p,
			b.Source.String(),
		})
	}
	return writeColumns(w, rows)
}

// writeColumns writes rows as left-aligned columns. Widths are measured in
// terminal cells so macOS modifier glyphs line up.
func writeColumns(w io.Writer, rows [][]string) error {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i == len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], uniseg.StringWidth(cell))
		}
	}

	var sb strings.Builder
	for _, row := range rows {
		sb.Reset()
		for i, cell := range row {
			sb.WriteString(cell)
			if i < len(row)-1 {
				sb.WriteString(strings.Repeat(" ", widths[i]-uniseg.StringWidth(cell)+2))
			}
		}
		sb.WriteByte('\n')
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

func conditionList(conds []keymap.Condition) string {
	if len(conds) == 0 {
		return "-"
	}
	names := make([]string, len(conds))
	for i, c := range conds {
		names[i] = c.String()
	}
	return strings.Join(names, ",")
}

type jsonField struct {
	name  string
	value any
}

// bindingsJSON renders bindings as an indented JSON document:
//
//	{"platform": "linux", "bindings": [{"keys": "ctrl+s", "display": "Ctrl+S", ...}]}
func bindingsJSON(bindings []keymap.Binding, platform key.Platform) ([]byte, error) {
	doc := []byte(`{"bindings":[]}`)
	doc, err := sjson.SetBytes(doc, "platform", platform.String())
	if err != nil {
		return nil, err
	}

	for i, b := range bindings {
		fields := []jsonField{
			{"keys", b.Pattern.String()},
			{"display", b.Pattern.Display(displayPlatform(b, platform))},
			{"command", string(b.Command)},
			{"source", b.Source.String()},
		}
		if len(b.When) > 0 {
			fields = append(fields, jsonField{"when", b.Record().When})
		}
		if b.Platform != key.PlatformAny {
			fields = append(fields, jsonField{"platform", b.Platform.String()})
		}

		prefix := fmt.Sprintf("bindings.%d.", i)
		for _, f := range fields {
			if doc, err = sjson.SetBytes(doc, prefix+f.name, f.value); err != nil {
				return nil, fmt.Errorf("encoding %s: %w", b.Pattern, err)
			}
		}
	}
	pretty := bytes.TrimSpace([]byte(gjson.GetBytes(doc, "@pretty").Raw))
	return append(pretty, '\n'), nil
}

// displayPlatform is the platform whose glyphs a binding is shown with:
// its own restriction if it has one.
func displayPlatform(b keymap.Binding, running key.Platform) key.Platform {
	if b.Platform != key.PlatformAny {
		return b.Platform
	}
	return running
}
