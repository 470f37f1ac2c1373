package diagnose

import "strings"

// hintRule emits its hints when any needle occurs in the failure message or,
// when inSource is set, in the offending source line.
type hintRule struct {
	needles  []string
	inSource bool
	hints    []string
}

func (r hintRule) matches(message, source string) bool {
	for _, n := range r.needles {
		if strings.Contains(message, n) {
			return true
		}
		if r.inSource && strings.Contains(source, n) {
			return true
		}
	}
	return false
}

var syntaxRules = []hintRule{
	{
		needles:  []string{"import ", "export ", "Cannot use import statement"},
		inSource: true,
		hints:    []string{"Module syntax (import/export) is not available; run the code as a plain script."},
	},
	{
		needles: []string{"Unexpected token", "Unexpected identifier", "Unexpected number", "Unexpected string"},
		hints: []string{
			"Check for missing or extra brackets, parentheses, or braces.",
			"Check for a missing comma or operator between expressions.",
			"Check that every string literal is closed with a matching quote.",
		},
	},
	{
		needles: []string{"Unexpected end of input", "Unexpected EOF", "Unexpected end"},
		hints:   []string{"The script ends before a block, call, or string is closed."},
	},
	{
		needles: []string{"Invalid or unexpected token", "Unterminated", "Invalid regular expression"},
		hints:   []string{"Look for an unterminated string, template, or regular expression literal."},
	},
}

var referenceRules = []hintRule{
	{
		needles: []string{"is not defined"},
		hints: []string{
			"Declare the name with let, const, or var before using it.",
			"Check the spelling and letter case of the name.",
		},
	},
	{
		needles: []string{"before initialization", "Cannot access"},
		hints:   []string{"A let or const binding is used before its declaration runs."},
	},
}

var typeRules = []hintRule{
	{
		needles: []string{"is not a function"},
		hints:   []string{"The called value is not a function; check the name and what it holds."},
	},
	{
		needles: []string{"Cannot read property", "Cannot read properties", "of undefined", "of null"},
		hints:   []string{"A value is undefined or null; check it before accessing its properties."},
	},
	{
		needles: []string{"Cannot set property"},
		hints:   []string{"Properties can only be assigned on objects."},
	},
	{
		needles: []string{"Assignment to constant variable"},
		hints:   []string{"A const binding cannot be reassigned; declare it with let instead."},
	},
	{
		needles: []string{"is not a constructor"},
		hints:   []string{"Only classes and constructor functions can be called with new."},
	},
}

var genericRules = []hintRule{
	{
		needles: []string{"Maximum call stack size exceeded", "stack overflow"},
		hints:   []string{"Check for unbounded recursion."},
	},
	{
		needles: []string{"Invalid array length"},
		hints:   []string{"Array lengths must be non-negative integers below 2^32."},
	},
	{
		needles: []string{"interrupted", "Interrupted", "deadline exceeded"},
		hints:   []string{"Execution was interrupted; the script may contain a long-running or infinite loop."},
	},
}

const (
	typeFallbackHint = "Check the runtime type of the values used in the failing operation."
	unescapeHint     = "If this is escaped single-line code, unescape it before running."
)

// Hints returns the advisory lines for c raised against src.
func Hints(c Classification, src SourceLines) []string {
	var rules []hintRule
	switch c.Kind {
	case SyntaxFailure:
		rules = syntaxRules
	case ReferenceFailure:
		rules = referenceRules
	case TypeFailure:
		rules = typeRules
	default:
		rules = genericRules
	}

	var out []string
	for _, r := range rules {
		if r.matches(c.RawMessage, c.SourceLine) {
			out = append(out, r.hints...)
		}
	}
	switch {
	case c.Kind == TypeFailure && len(out) == 0:
		out = append(out, typeFallbackHint)
	case c.Kind == SyntaxFailure && src.SingleLine() && strings.Contains(src.Text(), `\n`):
		out = append(out, unescapeHint)
	}
	return out
}
