package diagnose

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/rahilshah3105/code-line-formatter/console"
)

// FailedMarker is the terminal entry of every failure report.
const FailedMarker = "Execution failed"

const (
	bannerRule   = "============"
	linePrefix   = "Line %d: "
	nearLabel    = "Near: "
	ellipsis     = "..."
	stackPrefix  = "  → "
	failedMarker = "> "
	plainMarker  = "  "
)

// Render turns a classification into ordered report entries. It never
// panics and always ends with the FailedMarker entry.
func Render(c Classification, src SourceLines, opts Options) (out []console.Entry) {
	opts = opts.WithDefaults()
	defer func() {
		if r := recover(); r != nil {
			out = minimal(c)
		}
	}()

	r := &report{}
	r.add(console.SeverityError, Banner(c))
	r.add(console.SeverityError, headline(c))

	singleSyntax := c.Kind == SyntaxFailure && src.SingleLine()
	if singleSyntax {
		r.snippet(c, src, opts)
	} else if c.Located() {
		r.location(c)
	}

	if c.Identifier != "" {
		r.add(console.SeverityWarn, "Undefined identifier: "+c.Identifier)
	}
	for _, h := range Hints(c, src) {
		r.add(console.SeverityWarn, "Hint: "+h)
	}

	if len(c.StackFrames) > 0 {
		r.add(console.SeverityInfo, "Stack trace:")
		for _, f := range c.StackFrames {
			r.add(console.SeverityInfo, stackPrefix+f)
		}
	}

	if !singleSyntax && c.Located() && c.Location.Line >= 2 && src.Len() > 1 {
		r.context(c.Location.Line, src, opts.ContextLines)
	}

	r.add(console.SeverityError, FailedMarker)
	return r.entries
}

// Banner returns the framed title line for c.
func Banner(c Classification) string {
	return bannerRule + " " + c.Kind.Title(c.Category) + " " + bannerRule
}

func headline(c Classification) string {
	category := c.Category
	if category == "" {
		category = UnknownCategory
	}
	if c.RawMessage == "" {
		return category
	}
	return category + ": " + c.RawMessage
}

func minimal(c Classification) []console.Entry {
	return []console.Entry{
		{Kind: console.SeverityError, Message: Banner(c)},
		{Kind: console.SeverityError, Message: headline(c)},
		{Kind: console.SeverityError, Message: FailedMarker},
	}
}

type report struct {
	entries []console.Entry
}

func (r *report) add(kind console.Severity, msg string) {
	r.entries = append(r.entries, console.Entry{Kind: kind, Message: msg})
}

func (r *report) location(c Classification) {
	loc := c.Location
	if loc.Column > 0 {
		r.add(console.SeverityError, fmt.Sprintf("Location: line %d, column %d", loc.Line, loc.Column))
	} else {
		r.add(console.SeverityError, fmt.Sprintf("Location: line %d", loc.Line))
	}
	if c.SourceLine == "" {
		return
	}
	prefix := fmt.Sprintf(linePrefix, loc.Line)
	r.add(console.SeverityError, prefix+c.SourceLine)
	if loc.Column > 0 {
		r.add(console.SeverityError, Caret(prefix, c.SourceLine, loc.Column))
	}
}

func (r *report) snippet(c Classification, src SourceLines, opts Options) {
	line, _ := src.Line(1)
	runes := []rune(line)
	if !c.Located() || c.Location.Column <= 0 {
		preview := line
		if len(runes) > opts.PreviewChars {
			preview = string(runes[:opts.PreviewChars]) + ellipsis
		}
		r.add(console.SeverityInfo, "Preview: "+preview)
		return
	}

	col := c.Location.Column
	r.add(console.SeverityError, fmt.Sprintf("Location: column %d", col))
	idx := min(max(col-1, 0), len(runes))
	start := max(0, idx-opts.SnippetRadius)
	end := min(len(runes), idx+opts.SnippetRadius+1)

	var lead string
	if start > 0 {
		lead = ellipsis
	}
	var tail string
	if end < len(runes) {
		tail = ellipsis
	}
	window := string(runes[start:end])
	r.add(console.SeverityError, nearLabel+lead+window+tail)
	r.add(console.SeverityError, Caret(nearLabel+lead, window, idx-start+1))
}

func (r *report) context(failing int, src SourceLines, radius int) {
	lo := max(1, failing-radius)
	hi := min(src.Len(), failing+radius)
	width := len(strconv.Itoa(hi))
	r.add(console.SeverityInfo, "Context:")
	for n := lo; n <= hi; n++ {
		text, _ := src.Line(n)
		marker, kind := plainMarker, console.SeverityInfo
		if n == failing {
			marker, kind = failedMarker, console.SeverityError
		}
		r.add(kind, fmt.Sprintf("%s%*d | %s", marker, width, n, text))
	}
}

// Caret returns a line with a caret under the 1-based column of text, when
// text is printed after prefix. Tabs before the column are kept so the caret
// lines up under them; wide runes count for their display width.
func Caret(prefix, text string, column int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", runewidth.StringWidth(prefix)))
	runes := []rune(text)
	n := min(max(column-1, 0), len(runes))
	for _, r := range runes[:n] {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	b.WriteByte('^')
	return b.String()
}
