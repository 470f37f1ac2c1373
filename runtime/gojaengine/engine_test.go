package gojaengine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rahilshah3105/code-line-formatter/code"
	"github.com/rahilshah3105/code-line-formatter/console"
)

func newEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return e
}

func execute(t *testing.T, e *Engine, src string) ([]console.Entry, code.ExecuteResult, error) {
	t.Helper()
	buf := console.NewBuffer()
	cp := console.Discard().Intercept(buf)
	defer cp.Release()
	res, err := e.Execute(context.Background(), code.ExecuteParams{Code: src, SourceName: "script.js"}, cp)
	return buf.Entries(), res, err
}

func asCodeError(t *testing.T, err error) *code.CodeError {
	t.Helper()
	var ce *code.CodeError
	if !errors.As(err, &ce) {
		t.Fatalf("error = %v (%T), want *code.CodeError", err, err)
	}
	return ce
}

func TestNew_RejectsNegativeStack(t *testing.T) {
	if _, err := New(Config{MaxCallStackSize: -1}); !errors.Is(err, code.ErrConfiguration) {
		t.Errorf("New() error = %v, want ErrConfiguration", err)
	}
}

func TestExecute_ConsoleAndReturnValue(t *testing.T) {
	entries, res, err := execute(t, newEngine(t, Config{}), `console.log("a", 1); console.warn({b: 2}); console.debug("d"); 40 + 2`)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	want := []console.Entry{
		{Kind: console.SeverityLog, Message: "a 1"},
		{Kind: console.SeverityWarn, Message: "{\n  \"b\": 2\n}"},
		{Kind: console.SeverityLog, Message: "d"},
	}
	if len(entries) != len(want) {
		t.Fatalf("entries = %+v", entries)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, entries[i], want[i])
		}
	}
	if !res.HasValue || res.Value != int64(42) {
		t.Errorf("result = %+v, want 42", res)
	}
}

func TestExecute_UndefinedCompletionHasNoValue(t *testing.T) {
	_, res, err := execute(t, newEngine(t, Config{}), "var x = 1;")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.HasValue {
		t.Errorf("result = %+v, want no value", res)
	}
}

func TestExecute_ConsoleMarkers(t *testing.T) {
	entries, _, err := execute(t, newEngine(t, Config{}),
		`function named() {}; console.log(named); console.error(new TypeError("bad")); console.info(undefined, null)`)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	got := []string{entries[0].Message, entries[1].Message, entries[2].Message}
	want := []string{"[Function: named]", "TypeError: bad", "undefined null"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExecute_BuiltinObjects(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{name: "date", code: "console.log(new Date(0))", want: "1970-01-01T00:00:00.000Z"},
		{name: "nested date", code: "console.log({at: new Date(1500)})", want: "{\n  \"at\": \"1970-01-01T00:00:01.500Z\"\n}"},
		{name: "map", code: "console.log(new Map([[1, 2], ['k', 'v']]))", want: "{\n  \"1\": 2,\n  \"k\": \"v\"\n}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, _, err := execute(t, newEngine(t, Config{}), tt.code)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if len(entries) != 1 || entries[0].Message != tt.want {
				t.Errorf("entries = %+v, want message %q", entries, tt.want)
			}
		})
	}
}

func TestExecute_ReferenceError(t *testing.T) {
	entries, _, err := execute(t, newEngine(t, Config{}), "console.log(1)\nundefinedVar")
	ce := asCodeError(t, err)
	if ce.Category != "ReferenceError" || ce.Message != "undefinedVar is not defined" {
		t.Errorf("CodeError = %+v", ce)
	}
	if !strings.Contains(ce.Stack, "script.js:2:") {
		t.Errorf("Stack = %q, want a script.js:2 frame", ce.Stack)
	}
	if !errors.Is(err, code.ErrCodeExecution) {
		t.Error("expected ErrCodeExecution")
	}
	if len(entries) != 1 || entries[0].Message != "1" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestExecute_SyntaxError(t *testing.T) {
	entries, _, err := execute(t, newEngine(t, Config{}), "console.log('never')\nvar x = ;")
	ce := asCodeError(t, err)
	if ce.Category != "SyntaxError" {
		t.Errorf("Category = %q", ce.Category)
	}
	if !strings.Contains(ce.Message, "Line 2:") {
		t.Errorf("Message = %q, want parser position", ce.Message)
	}
	if len(entries) != 0 {
		t.Errorf("syntax error ran statements: %+v", entries)
	}
}

func TestExecute_EvalSyntaxErrorMessage(t *testing.T) {
	_, _, err := execute(t, newEngine(t, Config{}), `eval("var x = ")`)
	ce := asCodeError(t, err)
	if ce.Category != "SyntaxError" {
		t.Errorf("Category = %q, want SyntaxError", ce.Category)
	}
	if strings.HasPrefix(ce.Message, "SyntaxError:") {
		t.Errorf("Message = %q repeats the category", ce.Message)
	}
	if got := ce.Error(); strings.Count(got, "SyntaxError") != 1 {
		t.Errorf("Error() = %q, want the category once", got)
	}
}

func TestExecute_TypeError(t *testing.T) {
	_, _, err := execute(t, newEngine(t, Config{}), "var o = null;\no.x")
	if ce := asCodeError(t, err); ce.Category != "TypeError" {
		t.Errorf("Category = %q, want TypeError", ce.Category)
	}
}

func TestExecute_ThrownPrimitive(t *testing.T) {
	_, _, err := execute(t, newEngine(t, Config{}), `throw "boom"`)
	ce := asCodeError(t, err)
	if ce.Category != "" || ce.Message != "boom" {
		t.Errorf("CodeError = %+v", ce)
	}
}

func TestExecute_StrictWrapper(t *testing.T) {
	_, res, err := execute(t, newEngine(t, Config{Strict: true}), "undeclared = 1")
	ce := asCodeError(t, err)
	if ce.Category != "ReferenceError" || ce.WrapperLines != 1 {
		t.Errorf("CodeError = %+v", ce)
	}
	if res.WrapperLines != 1 {
		t.Errorf("WrapperLines = %d, want 1", res.WrapperLines)
	}
}

func TestExecute_Globals(t *testing.T) {
	e := newEngine(t, Config{Globals: map[string]any{"greeting": "hi"}})
	buf := console.NewBuffer()
	cp := console.Discard().Intercept(buf)
	defer cp.Release()

	res, err := e.Execute(context.Background(), code.ExecuteParams{
		Code:       `greeting + " " + name`,
		SourceName: "script.js",
		Globals:    map[string]any{"name": "bob"},
	}, cp)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Value != "hi bob" {
		t.Errorf("Value = %v, want %q", res.Value, "hi bob")
	}
}

func TestExecute_FreshRuntimePerRun(t *testing.T) {
	e := newEngine(t, Config{})
	if _, _, err := execute(t, e, "var leaked = 1;"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	_, res, err := execute(t, e, "typeof leaked")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Value != "undefined" {
		t.Errorf("typeof leaked = %v, want undefined", res.Value)
	}
}

func TestExecute_DeadlineInterrupts(t *testing.T) {
	e := newEngine(t, Config{})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := e.Execute(ctx, code.ExecuteParams{Code: "for (;;) {}", SourceName: "script.js"}, nil)
	ce := asCodeError(t, err)
	if ce.Category != code.CategoryInterrupted {
		t.Errorf("Category = %q", ce.Category)
	}
	if !errors.Is(err, code.ErrLimitExceeded) {
		t.Errorf("error = %v, want ErrLimitExceeded", err)
	}
}

func TestExecute_CanceledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newEngine(t, Config{}).Execute(ctx, code.ExecuteParams{Code: "1"}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if errors.Is(err, code.ErrLimitExceeded) {
		t.Error("cancellation must not be reported as a limit")
	}
}

func TestExecute_StackOverflow(t *testing.T) {
	_, _, err := execute(t, newEngine(t, Config{MaxCallStackSize: 64}), "function r() { return r(); }\nr();")
	if ce := asCodeError(t, err); ce.Category != "RangeError" {
		t.Errorf("Category = %q, want RangeError", ce.Category)
	}
}
