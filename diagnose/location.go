package diagnose

import (
	"regexp"
	"strconv"
)

// Location is a 1-based position inside the script. A zero Column means the
// column is unknown.
type Location struct {
	Line   int `json:"line" msgpack:"line"`
	Column int `json:"column,omitempty" msgpack:"column,omitempty"`
}

// Evidence is the textual failure metadata a Matcher inspects.
type Evidence struct {
	// Message is the native failure message.
	Message string
	// Stack is the native multi-line trace, if any.
	Stack string
	// SourceName is the name the script was compiled under.
	SourceName string
	// WrapperLines is the number of synthetic lines the engine placed
	// before the script text.
	WrapperLines int
}

// Matcher recovers a location from failure evidence.
//
// Contract:
// - Match must not panic; Locate recovers anyway and treats a panic as no match.
// - Match returns false when it finds nothing; that is not an error.
type Matcher interface {
	Name() string
	Match(ev Evidence) (Location, bool)
}

// MatcherFunc adapts a function to the Matcher interface.
type MatcherFunc struct {
	Label string
	Fn    func(ev Evidence) (Location, bool)
}

// Name returns the matcher label.
func (m MatcherFunc) Name() string { return m.Label }

// Match calls Fn.
func (m MatcherFunc) Match(ev Evidence) (Location, bool) {
	if m.Fn == nil {
		return Location{}, false
	}
	return m.Fn(ev)
}

var (
	anonymousFrameRe = regexp.MustCompile(`(?:<anonymous>:|\(anonymous\):\s*Line\s+)(\d+):(\d+)`)
	evalFrameRe      = regexp.MustCompile(`(?:<eval>:|at eval \([^)]*?:)(\d+):(\d+)`)
	messageLineRe    = regexp.MustCompile(`(?i)\bline\s+(\d+)(?:\s*[:,]\s*(?:col(?:umn)?\s*)?(\d+))?`)
	positionRe       = regexp.MustCompile(`(?i)\bposition\s+(\d+)`)
)

// AnonymousFrame matches "<anonymous>:L:C" frames and "(anonymous): Line L:C"
// parser messages.
var AnonymousFrame Matcher = MatcherFunc{Label: "anonymous-frame", Fn: func(ev Evidence) (Location, bool) {
	return firstPair(anonymousFrameRe, ev.Stack, ev.Message)
}}

// NamedSource matches frames that name the compiled source, as in
// "script.js:L:C" or "script.js: Line L:C". The engine's synthetic wrapper
// lines are subtracted.
var NamedSource Matcher = MatcherFunc{Label: "named-source", Fn: func(ev Evidence) (Location, bool) {
	if ev.SourceName == "" {
		return Location{}, false
	}
	re, err := regexp.Compile(regexp.QuoteMeta(ev.SourceName) + `:\s*(?:Line\s+)?(\d+):(\d+)`)
	if err != nil {
		return Location{}, false
	}
	loc, ok := firstPair(re, ev.Stack, ev.Message)
	if !ok {
		return Location{}, false
	}
	loc.Line -= ev.WrapperLines
	if loc.Line < 1 {
		loc.Line = 1
	}
	return loc, true
}}

// EvalFrame matches evaluation frames such as "<eval>:L:C".
var EvalFrame Matcher = MatcherFunc{Label: "eval-frame", Fn: func(ev Evidence) (Location, bool) {
	return firstPair(evalFrameRe, ev.Stack, ev.Message)
}}

// MessageLine scans the message for an explicit "line N" token, with an
// optional column.
var MessageLine Matcher = MatcherFunc{Label: "message-line", Fn: func(ev Evidence) (Location, bool) {
	m := messageLineRe.FindStringSubmatch(ev.Message)
	if m == nil {
		return Location{}, false
	}
	line, ok := atoiPositive(m[1])
	if !ok {
		return Location{}, false
	}
	col, _ := atoiPositive(m[2])
	return Location{Line: line, Column: col}, true
}}

// DefaultMatchers is the priority order used by Classify.
var DefaultMatchers = []Matcher{AnonymousFrame, NamedSource, EvalFrame, MessageLine}

// Locate tries matchers in order and returns the first location found.
func Locate(ev Evidence, matchers []Matcher) (Location, bool) {
	loc, _, ok := locateNamed(ev, matchers)
	return loc, ok
}

func safeMatch(m Matcher, ev Evidence) (loc Location, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			loc, ok = Location{}, false
		}
	}()
	loc, ok = m.Match(ev)
	if ok && loc.Line < 1 {
		return Location{}, false
	}
	return loc, ok
}

// PositionToken extracts a 0-based "position N" character offset from a
// message.
func PositionToken(message string) (int, bool) {
	m := positionRe.FindStringSubmatch(message)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// firstPair returns the first line/column pair re finds in texts, in order.
func firstPair(re *regexp.Regexp, texts ...string) (Location, bool) {
	for _, text := range texts {
		if text == "" {
			continue
		}
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		line, ok := atoiPositive(m[1])
		if !ok {
			continue
		}
		col, _ := atoiPositive(m[2])
		return Location{Line: line, Column: col}, true
	}
	return Location{}, false
}

func atoiPositive(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
