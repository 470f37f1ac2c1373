package diagnose

// Options tunes classification and rendering.
type Options struct {
	// Matchers are tried in order to recover a location.
	// Default: DefaultMatchers.
	Matchers []Matcher
	// StackLines caps the trace lines shown, between 5 and 8. Default: 6.
	StackLines int
	// ContextLines is the number of neighbours shown on each side of the
	// failing line. Default: 2.
	ContextLines int
	// SnippetRadius is the number of characters shown on each side of the
	// failing column of a single-line script. Default: 30.
	SnippetRadius int
	// PreviewChars is the length of the single-line preview shown when no
	// column is known. Default: 80.
	PreviewChars int
}

const (
	minStackLines        = 5
	maxStackLines        = 8
	defaultStackLines    = 6
	defaultContextLines  = 2
	defaultSnippetRadius = 30
	defaultPreviewChars  = 80
)

// DefaultOptions returns Options with every default applied.
func DefaultOptions() Options {
	return Options{}.WithDefaults()
}

// WithDefaults returns o with every unset field defaulted and StackLines
// clamped to its range.
func (o Options) WithDefaults() Options {
	if o.Matchers == nil {
		o.Matchers = DefaultMatchers
	}
	switch {
	case o.StackLines == 0:
		o.StackLines = defaultStackLines
	case o.StackLines < minStackLines:
		o.StackLines = minStackLines
	case o.StackLines > maxStackLines:
		o.StackLines = maxStackLines
	}
	if o.ContextLines <= 0 {
		o.ContextLines = defaultContextLines
	}
	if o.SnippetRadius <= 0 {
		o.SnippetRadius = defaultSnippetRadius
	}
	if o.PreviewChars <= 0 {
		o.PreviewChars = defaultPreviewChars
	}
	return o
}
