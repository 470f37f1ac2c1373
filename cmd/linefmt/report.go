package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rahilshah3105/code-line-formatter/render"
)

func newReportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Inspect archived runs",
	}

	var format string
	show := &cobra.Command{
		Use:   "show <archive>",
		Short: "Print an archived report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := render.ReadArchive(args[0])
			if err != nil {
				return err
			}
			f := format
			if f == "" {
				f = a.cfg.Output.Format
			}
			if f != "text" && f != "json" {
				return fmt.Errorf("unsupported format %q (must be text or json)", f)
			}
			out := cmd.OutOrStdout()
			if f == "text" {
				if err := writeHeader(out, archive.Source, a.useColor(out), false); err != nil {
					return err
				}
			}
			return writeReport(out, archive.Report, f, render.TextOptions{Color: a.useColor(out)})
		},
	}
	show.Flags().StringVar(&format, "format", "", "output format (text|json)")

	cmd.AddCommand(show)
	return cmd
}
