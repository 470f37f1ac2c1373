// Package render presents execution reports as colored text or JSON and
// archives them in msgpack form.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/rahilshah3105/code-line-formatter/code"
	"github.com/rahilshah3105/code-line-formatter/console"
)

// TextOptions controls Text output.
type TextOptions struct {
	// Color enables ANSI colors regardless of the terminal.
	Color bool
	// Kinds, when non-empty, restricts output to these severities.
	Kinds []console.Severity
}

const tagWidth = len("[success]")

var severityAttrs = map[console.Severity][]color.Attribute{
	console.SeverityInfo:    {color.FgCyan},
	console.SeverityLog:     {color.FgWhite},
	console.SeverityWarn:    {color.FgYellow, color.Bold},
	console.SeverityError:   {color.FgRed, color.Bold},
	console.SeveritySuccess: {color.FgGreen, color.Bold},
}

// Text writes one line per entry, tagged with its severity. Continuation
// lines of multi-line messages are indented under the message.
func Text(w io.Writer, entries []console.Entry, opts TextOptions) error {
	palette := make(map[console.Severity]*color.Color, len(severityAttrs))
	for sev, attrs := range severityAttrs {
		c := color.New(attrs...)
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		palette[sev] = c
	}

	indent := strings.Repeat(" ", tagWidth+1)
	for _, e := range entries {
		if !wanted(e.Kind, opts.Kinds) {
			continue
		}
		tag := fmt.Sprintf("%-*s", tagWidth, "["+string(e.Kind)+"]")
		if c, ok := palette[e.Kind]; ok {
			tag = c.Sprint(tag)
		}
		msg := strings.ReplaceAll(e.Message, "\n", "\n"+indent)
		if _, err := fmt.Fprintf(w, "%s %s\n", tag, msg); err != nil {
			return err
		}
	}
	return nil
}

func wanted(kind console.Severity, kinds []console.Severity) bool {
	if len(kinds) == 0 {
		return true
	}
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// JSON writes report as indented JSON.
func JSON(w io.Writer, report code.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(report)
}
