package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rahilshah3105/code-line-formatter/layout"
	"github.com/rahilshah3105/code-line-formatter/search"
)

func newViewCmd(a *app) *cobra.Command {
	var (
		split    float64
		width    int
		unescape bool
		mode     string
		find     string
		match    int
		caseSens bool
	)
	cmd := &cobra.Command{
		Use:   "view [file|-]",
		Short: "Show text and its escaped form side by side",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := a.codec(mode)
			if err != nil {
				return err
			}
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			_, text, err := input(cmd, path)
			if err != nil {
				return err
			}
			text = trimNewline(text)

			if !cmd.Flags().Changed("split") {
				split = a.cfg.Layout.Split
			}
			if !cmd.Flags().Changed("width") {
				width = a.viewWidth(cmd)
			}
			s := layout.NewSplit(split)

			left := layout.Pane{Title: "Source", Body: text}
			right := layout.Pane{Title: "Escaped", Body: codec.Escape(text)}
			if unescape {
				left = layout.Pane{Title: "Escaped", Body: text}
				right = layout.Pane{Title: "Source", Body: codec.Unescape(text)}
			}
			// The escaped side is a single line; wrap it to its pane.
			lw, rw := s.Widths(width)
			if unescape {
				left.Body = runewidth.Wrap(left.Body, lw)
			} else {
				right.Body = runewidth.Wrap(right.Body, rw)
			}

			out := cmd.OutOrStdout()
			footer := ""
			if find != "" {
				results := search.Panes([]search.Pane{
					{Name: left.Title, Text: left.Body},
					{Name: right.Title, Text: right.Body},
				}, find, search.Options{CaseSensitive: caseSens})
				mark := a.marker(out)
				left.Body = search.Highlight(left.Body, results[0].Matches, mark)
				right.Body = search.Highlight(right.Body, results[1].Matches, mark)
				footer = matchFooter(results, find, match)
			}

			if _, err := fmt.Fprintln(out, layout.Render(left, right, width, s)); err != nil {
				return err
			}
			if footer != "" {
				_, err = fmt.Fprintln(out, footer)
			}
			return err
		},
	}
	cmd.Flags().Float64Var(&split, "split", layout.DefaultRatio, "left pane share of the width (0.2-0.8)")
	cmd.Flags().IntVar(&width, "width", 0, "total width in columns (default: terminal width or config)")
	cmd.Flags().BoolVar(&unescape, "unescape", false, "treat the input as an escaped line")
	cmd.Flags().StringVar(&mode, "mode", "", "codec mode (json|legacy)")
	cmd.Flags().StringVar(&find, "find", "", "highlight this query in both panes")
	cmd.Flags().IntVar(&match, "match", 1, "report the Nth match of --find; negative counts from the end")
	cmd.Flags().BoolVar(&caseSens, "case-sensitive", false, "match --find letter case exactly")
	return cmd
}

// matchFooter describes the nth hit of results, stepping the cursor the way
// next/previous navigation would.
func matchFooter(results search.Results, query string, n int) string {
	cur := search.NewCursor(results)
	if cur.Len() == 0 {
		return fmt.Sprintf("no matches for %q", query)
	}
	if n == 0 {
		n = 1
	}
	for ; n > 0; n-- {
		cur.Next()
	}
	for ; n < 0; n++ {
		cur.Prev()
	}
	hit, _ := cur.Current()
	return fmt.Sprintf("match %d/%d in %s at line %d, column %d",
		cur.Position()+1, cur.Len(), hit.Pane, hit.Match.Line, hit.Match.Column)
}

func (a *app) viewWidth(cmd *cobra.Command) int {
	if f, ok := cmd.OutOrStdout().(*os.File); ok && isTerminal(f) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return a.cfg.Layout.Width
}
