package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"view-binder/internal/analyze"
)

type fieldInfo struct {
	Name       string `yaml:"name"`
	GoName     string `yaml:"go_name"`
	Type       string `yaml:"type"`
	Visibility string `yaml:"visibility"`
	Owner      string `yaml:"owner"`
}

func newFieldsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fields <type>",
		Short: "List the properties the binder sees on a type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := lookupType(args[0])
			if err != nil {
				return err
			}

			fm, err := analyze.Default().Fields(t)
			if err != nil {
				return err
			}

			infos := make([]fieldInfo, 0, fm.Len())
			for _, f := range fm.Fields() {
				infos = append(infos, fieldInfo{
					Name:       f.Name,
					GoName:     f.GoName,
					Type:       f.Type.String(),
					Visibility: f.Visibility.String(),
					Owner:      f.Owner.Short(),
				})
			}

			if a.format == formatYAML {
				return writeYAML(cmd.OutOrStdout(), infos)
			}

			dim := color.New(color.Faint)
			tbl := newTable("PROPERTY", "FIELD", "TYPE", "VISIBILITY", "OWNER")
			for _, f := range infos {
				vis := plain(f.Visibility)
				if f.Visibility != analyze.VisibilityPublic.String() {
					vis.paint = dim
				}
				tbl.add(plain(f.Name), plain(f.GoName), plain(f.Type), vis, plain(f.Owner))
			}

			return tbl.write(cmd.OutOrStdout())
		},
	}
}
