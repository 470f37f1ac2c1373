// Package linecodec converts between multi-line source text and a single-line
// escaped form.
//
// The JSON mode is fully reversible: Unescape(Escape(s)) == s for every s,
// including text that is not valid UTF-8. The legacy mode only swaps
// newlines for "\n" and double quotes for single quotes, and cannot restore
// the quotes.
package linecodec

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects an escaping strategy.
type Mode string

const (
	// ModeJSON applies JSON string escaping.
	ModeJSON Mode = "json"
	// ModeLegacy applies naive newline and quote substitution.
	ModeLegacy Mode = "legacy"
)

// ErrUnknownMode is returned by ParseMode for unrecognized names.
var ErrUnknownMode = errors.New("unknown codec mode")

// ParseMode parses a mode name. The empty string selects ModeJSON.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeJSON:
		return ModeJSON, nil
	case ModeLegacy:
		return ModeLegacy, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Reversible reports whether Unescape restores Escape's input exactly.
func (m Mode) Reversible() bool {
	return m != ModeLegacy
}

// Codec escapes and unescapes text in one mode. The zero value uses ModeJSON.
type Codec struct {
	Mode Mode
}

// Escape converts text into its single-line form.
func (c Codec) Escape(s string) string {
	if c.Mode == ModeLegacy {
		return legacyEscaper.Replace(s)
	}
	return Escape(s)
}

// Unescape converts a single-line form back into text.
func (c Codec) Unescape(s string) string {
	if c.Mode == ModeLegacy {
		return strings.ReplaceAll(s, `\n`, "\n")
	}
	return Unescape(s)
}

var legacyEscaper = strings.NewReplacer("\n", `\n`, `"`, `'`)
