package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"view-binder/bind"
	"view-binder/options"
	"view-binder/warehouse"
)

const (
	formatText = "text"
	formatYAML = "yaml"
)

var version = color.New(color.FgGreen, color.Bold).Sprint("0.1.0") + "-dev"

// app carries the state shared by the subcommands of one invocation.
type app struct {
	format string
	binder *bind.Binder
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "viewbind",
		Short:         "Inspect and render bound views",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "TOML configuration file")
	flags.String("format", formatText, "output format (text|yaml)")
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("debug", false, "trace pairing decisions and disable the plan cache")

	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return a.setup(cmd)
	}

	root.AddCommand(newFieldsCmd(a), newPairsCmd(a), newRenderCmd(a), newTypesCmd())

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()

	format, _ := flags.GetString("format")
	switch format {
	case formatText, formatYAML:
		a.format = format
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	colorFlag, _ := flags.GetString("color")
	switch colorFlag {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		color.NoColor = !isTerminal(cmd.OutOrStdout())
	default:
		return fmt.Errorf("unknown color mode: %s", colorFlag)
	}

	path, _ := flags.GetString("config")
	cfg, err := options.LoadFile(path)
	if err != nil {
		return err
	}
	if debug, _ := flags.GetBool("debug"); debug {
		cfg.Debug = true
	}

	var opts []bind.Option
	if cfg.Debug {
		opts = append(opts, bind.WithLogger(log.New(cmd.ErrOrStderr(), log.Prefix(), 0)))
	}
	if err := bind.Configure(cfg, opts...); err != nil {
		return err
	}
	a.binder = bind.Default()

	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// lookupType resolves a warehouse type name, or any registered view name.
func lookupType(name string) (reflect.Type, error) {
	if t, ok := warehouse.Types()[name]; ok {
		return t, nil
	}
	if t, ok := bind.Lookup(name); ok {
		return t, nil
	}

	return nil, fmt.Errorf("unknown type %q (known: %s)", name, strings.Join(typeNames(), ", "))
}

func typeNames() []string {
	names := make([]string, 0, len(warehouse.Types()))
	for n := range warehouse.Types() {
		names = append(names, n)
	}
	sort.Strings(names)

	return names
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}

	return enc.Close()
}

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the known type names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, n := range typeNames() {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}
