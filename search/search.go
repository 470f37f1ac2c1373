// Package search finds substring matches across text panes and steps a
// cursor through them.
package search

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Options controls matching.
type Options struct {
	// CaseSensitive disables Unicode simple case folding.
	CaseSensitive bool
}

// Match is one occurrence of the query.
type Match struct {
	// Start and End are byte offsets into the searched text.
	Start int `json:"start"`
	End   int `json:"end"`
	// Line and Column are 1-based; Column counts runes.
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Text returns the matched substring of text.
func (m Match) Text(text string) string {
	return text[m.Start:m.End]
}

// Find returns the non-overlapping matches of query in text, left to right.
// An empty query matches nothing.
func Find(text, query string, opts Options) []Match {
	if query == "" || text == "" {
		return nil
	}
	q := []rune(query)
	var out []Match
	line, lineStart := 1, 0
	for i := 0; i < len(text); {
		if end, ok := matchAt(text, i, q, opts.CaseSensitive); ok {
			out = append(out, Match{
				Start:  i,
				End:    end,
				Line:   line,
				Column: utf8.RuneCountInString(text[lineStart:i]) + 1,
			})
			for j := i; j < end; j++ {
				if text[j] == '\n' {
					line++
					lineStart = j + 1
				}
			}
			i = end
			continue
		}
		if text[i] == '\n' {
			line++
			lineStart = i + 1
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return out
}

// matchAt reports whether q occurs at byte offset i of text and returns the
// byte offset just past it.
func matchAt(text string, i int, q []rune, caseSensitive bool) (int, bool) {
	for _, want := range q {
		if i >= len(text) {
			return 0, false
		}
		got, size := utf8.DecodeRuneInString(text[i:])
		if got != want && (caseSensitive || !equalFold(got, want)) {
			return 0, false
		}
		i += size
	}
	return i, true
}

// equalFold reports whether a and b are equal under simple case folding.
func equalFold(a, b rune) bool {
	if a == b {
		return true
	}
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}

// Highlight wraps every match in text with mark. Matches must come from
// Find on the same text.
func Highlight(text string, matches []Match, mark func(string) string) string {
	if len(matches) == 0 || mark == nil {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	prev := 0
	for _, m := range matches {
		if m.Start < prev || m.End > len(text) || m.Start > m.End {
			continue
		}
		b.WriteString(text[prev:m.Start])
		b.WriteString(mark(text[m.Start:m.End]))
		prev = m.End
	}
	b.WriteString(text[prev:])
	return b.String()
}

// Brackets returns a mark function that wraps matches in open and close.
func Brackets(open, close string) func(string) string {
	return func(s string) string { return open + s + close }
}
