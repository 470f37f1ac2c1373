package diagnose

import (
	"regexp"
	"strings"
)

// Failure is the native failure metadata handed over by an engine.
type Failure struct {
	// Category is the native failure category ("SyntaxError", ...).
	// Empty when the engine exposes none.
	Category string
	// Message is the native message without the category prefix.
	Message string
	// Stack is the native trace text.
	Stack string
	// SourceName is the name the script was compiled under.
	SourceName string
	// WrapperLines is the number of synthetic lines placed before the script.
	WrapperLines int
}

// Classification is the derived record for one thrown failure.
type Classification struct {
	Kind        Kind      `json:"kind" msgpack:"kind"`
	Category    string    `json:"category" msgpack:"category"`
	RawMessage  string    `json:"message" msgpack:"message"`
	Location    *Location `json:"location,omitempty" msgpack:"location,omitempty"`
	SourceLine  string    `json:"sourceLine,omitempty" msgpack:"sourceLine,omitempty"`
	StackFrames []string  `json:"stackFrames,omitempty" msgpack:"stackFrames,omitempty"`
	// Identifier is the unbound name of a reference failure.
	Identifier string `json:"identifier,omitempty" msgpack:"identifier,omitempty"`
	// Matcher names the strategy that recovered Location.
	Matcher string `json:"matcher,omitempty" msgpack:"matcher,omitempty"`
}

// Located reports whether a line position was recovered.
func (c Classification) Located() bool {
	return c.Location != nil && c.Location.Line > 0
}

var notDefinedRe = regexp.MustCompile(`['"]?([\p{L}\p{N}_$.]+)['"]? is not defined`)

// Classify builds the classification for f against the script src.
func Classify(f Failure, src SourceLines, opts Options) (c Classification) {
	opts = opts.WithDefaults()
	category := strings.TrimSpace(f.Category)
	if category == "" {
		category = UnknownCategory
	}
	c = Classification{
		Kind:       KindOf(category),
		Category:   category,
		RawMessage: f.Message,
	}
	defer func() {
		if r := recover(); r != nil {
			c = Classification{Kind: KindOf(category), Category: category, RawMessage: f.Message}
		}
	}()

	ev := Evidence{
		Message:      f.Message,
		Stack:        f.Stack,
		SourceName:   f.SourceName,
		WrapperLines: f.WrapperLines,
	}
	if loc, name, ok := locateNamed(ev, opts.Matchers); ok {
		c.Location = &loc
		c.Matcher = name
	} else if src.SingleLine() {
		if pos, ok := PositionToken(f.Message); ok {
			c.Location = &Location{Line: 1, Column: pos + 1}
			c.Matcher = "position-token"
		}
	}

	if c.Location != nil {
		if line, ok := src.Line(c.Location.Line); ok {
			c.SourceLine = line
		}
	}

	c.StackFrames = stackFrames(f.Stack, opts.StackLines)

	if c.Kind == ReferenceFailure {
		if m := notDefinedRe.FindStringSubmatch(f.Message); m != nil {
			c.Identifier = m[1]
		}
	}
	return c
}

func locateNamed(ev Evidence, matchers []Matcher) (Location, string, bool) {
	for _, m := range matchers {
		if m == nil {
			continue
		}
		if loc, ok := safeMatch(m, ev); ok {
			return loc, m.Name(), true
		}
	}
	return Location{}, "", false
}

// stackFrames returns up to limit trimmed trace lines, or nil when the trace
// is not multi-line.
func stackFrames(stack string, limit int) []string {
	var lines []string
	for _, l := range strings.Split(stack, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) < 2 {
		return nil
	}
	if len(lines) > limit {
		lines = lines[:limit]
	}
	return lines
}
