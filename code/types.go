package code

import (
	"time"

	"github.com/rahilshah3105/code-line-formatter/console"
	"github.com/rahilshah3105/code-line-formatter/diagnose"
)

// ExecuteParams specifies one script execution.
type ExecuteParams struct {
	// Code is the script text to execute.
	Code string `json:"code"`

	// SourceName is the name the script is compiled under.
	// If empty, the executor's configured name is used.
	SourceName string `json:"sourceName,omitempty"`

	// Timeout specifies the maximum duration for execution.
	// If zero, the executor's default timeout is used.
	Timeout time.Duration `json:"timeout,omitempty"`

	// Globals are host bindings visible to the script. They are layered over
	// the executor's configured globals.
	Globals map[string]any `json:"globals,omitempty"`
}

// ExecuteResult contains what an Engine observed for a normal completion.
type ExecuteResult struct {
	// Value is the script's completion value, exported to Go.
	Value any `json:"value,omitempty"`

	// HasValue reports whether the script produced a value at all.
	HasValue bool `json:"hasValue"`

	// WrapperLines is the number of synthetic lines the engine placed
	// before the script.
	WrapperLines int `json:"wrapperLines,omitempty"`

	// DurationMs is the execution time in milliseconds.
	DurationMs int64 `json:"durationMs"`
}

// Report is the ordered outcome of one run. It carries no timing so the
// same script always yields the same report.
type Report struct {
	// Entries is the timeline of the run.
	Entries []console.Entry `json:"entries" msgpack:"entries"`

	// Failure is the classification of the thrown failure, nil on success.
	Failure *diagnose.Classification `json:"failure,omitempty" msgpack:"failure,omitempty"`

	// Lines is the script's line count.
	Lines int `json:"lines" msgpack:"lines"`

	// Chars is the script's character count.
	Chars int `json:"chars" msgpack:"chars"`
}

// OK reports whether the run completed normally.
func (r Report) OK() bool {
	return r.Failure == nil
}

// Count returns the number of entries with the given severity.
func (r Report) Count(kind console.Severity) int {
	n := 0
	for _, e := range r.Entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
