package toolkit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonwraymond/tooldiscovery/tooldoc"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rahilshah3105/code-line-formatter/code"
	"github.com/rahilshah3105/code-line-formatter/linecodec"
	"github.com/rahilshah3105/code-line-formatter/search"
)

// Namespace is the namespace of the built-in tools.
const Namespace = "linefmt"

// Built-in tool names.
const (
	ToolRunScript    = "run_script"
	ToolEscapeText   = "escape_text"
	ToolUnescapeText = "unescape_text"
	ToolSearchText   = "search_text"
	ToolRecentRuns   = "recent_runs"
)

// BuiltinOptions configures the built-in tools.
type BuiltinOptions struct {
	// Executor runs scripts for run_script. If nil, run_script is not registered.
	Executor code.Executor

	// History backs recent_runs. It should be the history the Executor
	// records into. If nil, recent_runs is not registered.
	History *code.History

	// Codec is the default codec of escape_text and unescape_text.
	// A zero Codec uses JSON mode.
	Codec linecodec.Codec
}

// Builtins returns a backend holding the built-in tools.
func Builtins(opts BuiltinOptions) *Backend {
	if opts.Codec.Mode == "" {
		opts.Codec.Mode = linecodec.ModeJSON
	}
	b := NewBackend(Namespace)
	defs := []ToolDef{
		escapeTool(opts.Codec),
		unescapeTool(opts.Codec),
		searchTool(),
	}
	if opts.Executor != nil {
		defs = append(defs, runTool(opts.Executor))
	}
	if opts.History != nil {
		defs = append(defs, historyTool(opts.History))
	}
	for _, def := range defs {
		def.Title = title(def.Name)
		if err := b.Register(def); err != nil {
			// Built-in definitions are static; a failure here is a programming error.
			panic(err)
		}
	}
	return b
}

func title(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}

func runTool(exec code.Executor) ToolDef {
	return ToolDef{
		Name:        ToolRunScript,
		Description: "Run a JavaScript snippet and return its captured console output with a diagnosis of any error.",
		InputSchema: object(map[string]any{
			"code":      prop("string", "Script source"),
			"timeoutMs": prop("integer", "Execution limit in milliseconds"),
		}, "code"),
		Annotations: &mcp.ToolAnnotations{Title: "Run Script"},
		Tags:        []string{"javascript", "run", "diagnose"},
		Doc: tooldoc.DocEntry{
			Summary: "Executes a script and reports console output, return value and error diagnosis",
			Notes:   "Every failure is reported inside the result; the call itself only fails on bad arguments.",
			Examples: []tooldoc.ToolExample{
				{Title: "Reference error", Args: map[string]any{"code": "console.log(1)\nundefinedVar"}},
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (any, error) {
			src, err := stringArg(args, "code", true)
			if err != nil {
				return nil, err
			}
			ms, err := intArg(args, "timeoutMs")
			if err != nil {
				return nil, err
			}
			return exec.RunParams(ctx, code.ExecuteParams{
				Code:    src,
				Timeout: time.Duration(ms) * time.Millisecond,
			}), nil
		},
	}
}

func historyTool(h *code.History) ToolDef {
	return ToolDef{
		Name:        ToolRecentRuns,
		Description: "List the reports of the most recent script runs, oldest first.",
		InputSchema: object(map[string]any{
			"limit": prop("integer", "Maximum number of reports; zero returns all"),
		}),
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
		Tags:        []string{"javascript", "history", "report"},
		Handler: func(_ context.Context, args map[string]any) (any, error) {
			limit, err := intArg(args, "limit")
			if err != nil {
				return nil, err
			}
			runs := h.Snapshot()
			if limit > 0 && int64(len(runs)) > limit {
				runs = runs[int64(len(runs))-limit:]
			}
			return map[string]any{"runs": runs, "total": h.Len()}, nil
		},
	}
}

func escapeTool(def linecodec.Codec) ToolDef {
	return ToolDef{
		Name:        ToolEscapeText,
		Description: "Escape multi-line text into a single line using JSON string escaping.",
		InputSchema: object(map[string]any{
			"text": prop("string", "Text to escape"),
			"mode": modeProp(),
		}, "text"),
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true, IdempotentHint: true},
		Tags:        []string{"text", "escape", "format"},
		Handler: func(_ context.Context, args map[string]any) (any, error) {
			return transform(args, def, linecodec.Codec.Escape)
		},
	}
}

func unescapeTool(def linecodec.Codec) ToolDef {
	return ToolDef{
		Name:        ToolUnescapeText,
		Description: "Unescape a single escaped line back into multi-line text.",
		InputSchema: object(map[string]any{
			"text": prop("string", "Escaped text"),
			"mode": modeProp(),
		}, "text"),
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true, IdempotentHint: true},
		Tags:        []string{"text", "unescape", "format"},
		Handler: func(_ context.Context, args map[string]any) (any, error) {
			return transform(args, def, linecodec.Codec.Unescape)
		},
	}
}

func searchTool() ToolDef {
	return ToolDef{
		Name:        ToolSearchText,
		Description: "Find every occurrence of a query in text with its line and column.",
		InputSchema: object(map[string]any{
			"text":          prop("string", "Text to search"),
			"query":         prop("string", "Substring to find"),
			"caseSensitive": prop("boolean", "Match letter case exactly"),
		}, "text", "query"),
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true, IdempotentHint: true},
		Tags:        []string{"text", "search", "highlight"},
		Handler: func(_ context.Context, args map[string]any) (any, error) {
			text, err := stringArg(args, "text", true)
			if err != nil {
				return nil, err
			}
			query, err := stringArg(args, "query", false)
			if err != nil {
				return nil, err
			}
			cs, _ := args["caseSensitive"].(bool)
			matches := search.Find(text, query, search.Options{CaseSensitive: cs})
			if matches == nil {
				matches = []search.Match{}
			}
			return map[string]any{"matches": matches, "total": len(matches)}, nil
		},
	}
}

func transform(args map[string]any, def linecodec.Codec, fn func(linecodec.Codec, string) string) (any, error) {
	text, err := stringArg(args, "text", true)
	if err != nil {
		return nil, err
	}
	codec := def
	if raw, ok := args["mode"].(string); ok && raw != "" {
		mode, err := linecodec.ParseMode(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidArgs, err)
		}
		codec.Mode = mode
	}
	return map[string]any{"text": fn(codec, text), "mode": string(codec.Mode)}, nil
}

func stringArg(args map[string]any, key string, required bool) (string, error) {
	v, ok := args[key]
	if !ok {
		if required {
			return "", fmt.Errorf("%w: missing %q", ErrInvalidArgs, key)
		}
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q must be a string", ErrInvalidArgs, key)
	}
	return s, nil
}

// intArg accepts the numeric forms JSON decoding and Go callers produce.
func intArg(args map[string]any, key string) (int64, error) {
	var n int64
	switch v := args[key].(type) {
	case nil:
		return 0, nil
	case int:
		n = int64(v)
	case int64:
		n = v
	case float64:
		if v != float64(int64(v)) {
			return 0, fmt.Errorf("%w: %q must be an integer", ErrInvalidArgs, key)
		}
		n = int64(v)
	default:
		return 0, fmt.Errorf("%w: %q must be a number", ErrInvalidArgs, key)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %q must not be negative", ErrInvalidArgs, key)
	}
	return n, nil
}

func object(props map[string]any, required ...string) map[string]any {
	s := map[string]any{"type": "object", "properties": props}
	if len(required) > 0 {
		req := make([]any, len(required))
		for i, r := range required {
			req[i] = r
		}
		s["required"] = req
	}
	return s
}

func prop(typ, desc string) map[string]any {
	return map[string]any{"type": typ, "description": desc}
}

func modeProp() map[string]any {
	return map[string]any{
		"type":        "string",
		"enum":        []any{string(linecodec.ModeJSON), string(linecodec.ModeLegacy)},
		"description": "Codec mode",
	}
}
