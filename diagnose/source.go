package diagnose

import "strings"

// SourceLines is a read-only line view over a script. Lines are stored
// 0-based and addressed 1-based.
type SourceLines struct {
	text  string
	lines []string
}

// NewSourceLines splits text on newlines. A trailing carriage return is
// dropped from each line. Empty text has one empty line.
func NewSourceLines(text string) SourceLines {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return SourceLines{text: text, lines: lines}
}

// Len returns the number of lines.
func (s SourceLines) Len() int {
	return len(s.lines)
}

// Line returns the 1-based line n.
func (s SourceLines) Line(n int) (string, bool) {
	if n < 1 || n > len(s.lines) {
		return "", false
	}
	return s.lines[n-1], true
}

// Text returns the original script text.
func (s SourceLines) Text() string {
	return s.text
}

// SingleLine reports whether the script has exactly one line.
func (s SourceLines) SingleLine() bool {
	return len(s.lines) == 1
}
