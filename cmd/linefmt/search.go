package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rahilshah3105/code-line-formatter/search"
)

func newSearchCmd(a *app) *cobra.Command {
	var (
		caseSensitive bool
		countOnly     bool
	)
	cmd := &cobra.Command{
		Use:   "search <query> [file|-]",
		Short: "Highlight occurrences of a query",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 1 {
				path = args[1]
			}
			_, text, err := input(cmd, path)
			if err != nil {
				return err
			}

			matches := search.Find(text, args[0], search.Options{CaseSensitive: caseSensitive})
			out := cmd.OutOrStdout()
			if countOnly {
				_, err := fmt.Fprintln(out, len(matches))
				return err
			}

			lines := strings.Split(search.Highlight(text, matches, a.marker(out)), "\n")

			printed := map[int]bool{}
			for _, m := range matches {
				if printed[m.Line] || m.Line > len(lines) {
					continue
				}
				printed[m.Line] = true
				if _, err := fmt.Fprintf(out, "%d: %s\n", m.Line, lines[m.Line-1]); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintf(out, "%d %s\n", len(matches), plural(len(matches), "match", "matches"))
			return err
		},
	}
	cmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false, "match letter case exactly")
	cmd.Flags().BoolVar(&countOnly, "count", false, "print only the number of matches")
	return cmd
}

// marker highlights matches in color on terminals and in brackets otherwise.
func (a *app) marker(w io.Writer) func(string) string {
	if !a.useColor(w) {
		return search.Brackets("[", "]")
	}
	hl := color.New(color.FgBlack, color.BgYellow)
	hl.EnableColor()
	return func(s string) string { return hl.Sprint(s) }
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
