package code

import (
	"fmt"
	"strings"
	"time"

	"github.com/rahilshah3105/code-line-formatter/console"
	"github.com/rahilshah3105/code-line-formatter/diagnose"
)

// DefaultSourceName is the name scripts are compiled under when none is set.
const DefaultSourceName = "script.js"

// Config holds the configuration for an executor.
type Config struct {
	// Engine is the pluggable script execution engine.
	// Required.
	Engine Engine

	// Console is the channel table armed for each run. Its original channels
	// receive every console call after it is recorded.
	// Defaults to console.Discard().
	Console *console.Console

	// Logger is an optional logger for observability.
	Logger Logger

	// DefaultTimeout is the default execution timeout when not specified
	// in ExecuteParams. If zero, no default timeout is applied.
	DefaultTimeout time.Duration

	// SourceName is the default compile name. Defaults to DefaultSourceName.
	SourceName string

	// Diagnostics tunes failure classification and rendering.
	Diagnostics diagnose.Options

	// Globals are host bindings visible to every script. Empty by default.
	Globals map[string]any

	// History, when set, receives every report.
	History *History
}

// Validate checks that all required fields are set.
// Returns ErrConfiguration if any required field is missing or invalid.
func (c *Config) Validate() error {
	var missing []string

	if c.Engine == nil {
		missing = append(missing, "Engine")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s",
			ErrConfiguration, strings.Join(missing, ", "))
	}
	if c.DefaultTimeout < 0 {
		return fmt.Errorf("%w: DefaultTimeout must not be negative", ErrConfiguration)
	}
	if c.Diagnostics.StackLines < 0 || c.Diagnostics.ContextLines < 0 {
		return fmt.Errorf("%w: diagnostic line counts must not be negative", ErrConfiguration)
	}
	return nil
}

// applyDefaults sets default values for optional fields.
func (c *Config) applyDefaults() {
	if c.Console == nil {
		c.Console = console.Discard()
	}
	if c.Logger == nil {
		c.Logger = nopLogger{}
	}
	if c.SourceName == "" {
		c.SourceName = DefaultSourceName
	}
	c.Diagnostics = c.Diagnostics.WithDefaults()
}
