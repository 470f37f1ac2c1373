// Package config loads linefmt configuration files.
//
// A file may be YAML, TOML or JSON, chosen by extension. Every format is
// decoded into a generic tree, checked against the embedded JSON Schema, and
// then decoded over Default().
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/rahilshah3105/code-line-formatter/diagnose"
	"github.com/rahilshah3105/code-line-formatter/runtime/gojaengine"
)

var (
	// ErrInvalid indicates a configuration rejected by the schema.
	ErrInvalid = errors.New("config validation failed")

	// ErrUnsupportedFormat indicates a file extension with no decoder.
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// FileNames are the names Find looks for, in order.
var FileNames = []string{"linefmt.yaml", "linefmt.yml", "linefmt.toml", "linefmt.json"}

// Config is the complete file configuration.
type Config struct {
	Engine      Engine      `json:"engine"`
	Diagnostics Diagnostics `json:"diagnostics"`
	Codec       Codec       `json:"codec"`
	Output      Output      `json:"output"`
	Layout      Layout      `json:"layout"`
	History     History     `json:"history"`
}

// Engine configures script execution.
type Engine struct {
	// Timeout is a Go duration string. Empty means no timeout.
	Timeout          string         `json:"timeout,omitempty"`
	SourceName       string         `json:"sourceName"`
	Strict           bool           `json:"strict"`
	MaxCallStackSize int            `json:"maxCallStackSize,omitempty"`
	Globals          map[string]any `json:"globals,omitempty"`
}

// Diagnostics tunes failure reports.
type Diagnostics struct {
	StackLines    int `json:"stackLines"`
	ContextLines  int `json:"contextLines"`
	SnippetRadius int `json:"snippetRadius"`
	PreviewChars  int `json:"previewChars"`
}

// Codec selects the escape mode.
type Codec struct {
	Mode string `json:"mode"`
}

// Output controls report presentation.
type Output struct {
	Format string `json:"format"`
	Color  string `json:"color"`
}

// Layout controls the split view.
type Layout struct {
	Split float64 `json:"split"`
	Width int     `json:"width"`
}

// History bounds the in-memory report history.
type History struct {
	Size int `json:"size"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	opts := diagnose.DefaultOptions()
	return Config{
		Engine: Engine{
			SourceName:       "script.js",
			MaxCallStackSize: gojaengine.DefaultMaxCallStackSize,
		},
		Diagnostics: Diagnostics{
			StackLines:    opts.StackLines,
			ContextLines:  opts.ContextLines,
			SnippetRadius: opts.SnippetRadius,
			PreviewChars:  opts.PreviewChars,
		},
		Codec:   Codec{Mode: "json"},
		Output:  Output{Format: "text", Color: "auto"},
		Layout:  Layout{Split: 0.5, Width: 100},
		History: History{Size: 32},
	}
}

// Timeout parses Engine.Timeout.
func (c Config) Timeout() (time.Duration, error) {
	if c.Engine.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Engine.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: engine.timeout: %w", ErrInvalid, err)
	}
	return d, nil
}

// DiagnoseOptions converts the diagnostics section.
func (c Config) DiagnoseOptions() diagnose.Options {
	return diagnose.Options{
		StackLines:    c.Diagnostics.StackLines,
		ContextLines:  c.Diagnostics.ContextLines,
		SnippetRadius: c.Diagnostics.SnippetRadius,
		PreviewChars:  c.Diagnostics.PreviewChars,
	}.WithDefaults()
}

// Find returns the first config file from FileNames present in dir.
func Find(dir string) (string, bool) {
	for _, name := range FileNames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

// Load reads, validates and decodes the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data, strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse validates and decodes data in the given format ("yaml", "yml",
// "toml" or "json").
func Parse(data []byte, format string) (Config, error) {
	tree, err := decodeTree(data, strings.ToLower(format))
	if err != nil {
		return Config{}, err
	}

	raw, err := json.Marshal(tree)
	if err != nil {
		return Config{}, fmt.Errorf("normalize config: %w", err)
	}
	if err := ValidateJSON(raw); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if _, err := cfg.Timeout(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeTree(data []byte, format string) (map[string]any, error) {
	tree := map[string]any{}
	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case "toml":
		if _, err := toml.Decode(string(data), &tree); err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if tree == nil {
		tree = map[string]any{}
	}
	return tree, nil
}
