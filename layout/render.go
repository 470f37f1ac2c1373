package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Pane is one side of a split view.
type Pane struct {
	Title string
	Body  string
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	dividerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Render draws left and right side by side in width columns. Lines longer
// than their pane are truncated with "...".
func Render(left, right Pane, width int, s Split) string {
	lw, rw := s.Widths(width)
	if lw == 0 || rw == 0 {
		return ""
	}
	l := block(left, lw)
	r := block(right, rw)
	n := max(len(l), len(r))

	divider := strings.TrimSuffix(strings.Repeat("│\n", n), "\n")
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(lw).Render(strings.Join(l, "\n")),
		dividerStyle.Render(divider),
		lipgloss.NewStyle().Width(rw).Render(strings.Join(r, "\n")),
	)
}

func block(p Pane, width int) []string {
	var lines []string
	if p.Title != "" {
		lines = append(lines, titleStyle.Render(truncate(p.Title, width)))
	}
	for _, line := range strings.Split(strings.ReplaceAll(p.Body, "\t", "    "), "\n") {
		lines = append(lines, truncate(line, width))
	}
	return lines
}

func truncate(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
