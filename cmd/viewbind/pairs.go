package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"view-binder/bind"
	"view-binder/internal/diagnostic"
	"view-binder/internal/match"
)

var verdictColors = map[string]*color.Color{
	match.VerdictBuiltinStr:       color.New(color.FgCyan),
	match.VerdictConstructibleStr: color.New(color.FgMagenta),
	match.VerdictAssignableStr:    color.New(color.FgGreen),
}

var severityColors = map[diagnostic.DiagnosticSeverity]*color.Color{
	diagnostic.DiagnosticError:   color.New(color.FgRed, color.Bold),
	diagnostic.DiagnosticWarning: color.New(color.FgYellow),
	diagnostic.DiagnosticInfo:    color.New(color.Faint),
}

type pairsReport struct {
	Pair        string                  `yaml:"pair"`
	Pairs       []bind.PairInfo         `yaml:"pairs"`
	Diagnostics []diagnostic.Diagnostic `yaml:"diagnostics,omitempty"`
}

func newPairsCmd(a *app) *cobra.Command {
	var explain bool

	cmd := &cobra.Command{
		Use:   "pairs <view> <source>",
		Short: "Show which properties of source bind into view",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := lookupType(args[0])
			if err != nil {
				return err
			}
			source, err := lookupType(args[1])
			if err != nil {
				return err
			}

			pairs, err := a.binder.Pairs(target, source)
			if err != nil {
				return err
			}

			report := pairsReport{
				Pair:  bind.Pair{Target: target, Source: source}.String(),
				Pairs: pairs,
			}
			if explain {
				d := a.binder.Explain(target, source)
				report.Diagnostics = d.All()
			}

			if a.format == formatYAML {
				return writeYAML(cmd.OutOrStdout(), report)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, report.Pair)

			tbl := newTable("TARGET", "SOURCE", "TYPE", "VERDICT")
			for _, p := range pairs {
				tbl.add(plain(p.Target), plain(p.Source), plain(p.Type), cell{text: p.Verdict, paint: verdictColors[p.Verdict]})
			}
			if err := tbl.write(out); err != nil {
				return err
			}

			for _, d := range report.Diagnostics {
				fmt.Fprintln(out, severityColors[d.Severity].Sprintf("%s: %s", d.Severity, d))
			}

			return nil
		},
	}
	cmd.Flags().BoolVar(&explain, "explain", false, "also report unbound properties and their reasons")

	return cmd
}
