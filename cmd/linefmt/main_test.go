package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rahilshah3105/code-line-formatter/code"
	"github.com/rahilshah3105/code-line-formatter/toolkit"
)

// execute runs the CLI with args and returns stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--color", "never"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestEscapeUnescape(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"escape stdin drops final newline", "a\n\"b\"\n", []string{"escape"}, `a\n\"b\"` + "\n"},
		{"escape keep newline", "a\n", []string{"escape", "--keep-newline"}, `a\n` + "\n"},
		{"escape text legacy", "", []string{"escape", "--mode", "legacy", "--text", "x\"y"}, "x'y\n"},
		{"unescape text", "", []string{"unescape", "--text", `a\tb`}, "a\tb\n"},
		{"unescape stdin", `if (x) {\n  y()\n}`, []string{"unescape"}, "if (x) {\n  y()\n}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, tt.stdin, tt.args...)
			if err != nil {
				t.Fatalf("execute() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEscapeFile(t *testing.T) {
	p := writeFile(t, "in.js", "let a = 1;\nlet b = 2;\n")
	got, err := execute(t, "", "escape", p)
	if err != nil {
		t.Fatal(err)
	}
	if got != `let a = 1;\nlet b = 2;`+"\n" {
		t.Errorf("output = %q", got)
	}

	if _, err := execute(t, "", "escape", "--text", "x", p); err == nil {
		t.Error("escape with --text and a file should fail")
	}
}

func TestRunSuccess(t *testing.T) {
	got, err := execute(t, "", "run", "-e", "console.log('hi')")
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	for _, want := range []string{"[info]    Execution started", "[log]     hi", "[success] Script executed successfully"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunFailure(t *testing.T) {
	got, err := execute(t, "", "run", "-e", "console.log(1)\nundefinedVar")
	if !errors.Is(err, errScriptFailed) {
		t.Fatalf("run error = %v, want errScriptFailed", err)
	}
	for _, want := range []string{
		"ReferenceError: undefinedVar is not defined",
		"Location: line 2, column 1",
		"[error]   Execution failed",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunOnly(t *testing.T) {
	got, err := execute(t, "", "run", "--only", "log", "-e", "console.log('a'); console.warn('b')")
	if err != nil {
		t.Fatal(err)
	}
	if got != "[log]     a\n" {
		t.Errorf("output = %q, want only the log entry", got)
	}
}

func TestRunJSON(t *testing.T) {
	got, err := execute(t, "", "run", "--format", "json", "-e", "1 + 1")
	if err != nil {
		t.Fatal(err)
	}
	var report code.Report
	if err := json.Unmarshal([]byte(got), &report); err != nil {
		t.Fatalf("output is not a report: %v\n%s", err, got)
	}
	found := false
	for _, e := range report.Entries {
		if e.Message == "Return value: 2" {
			found = true
		}
	}
	if !found {
		t.Errorf("entries = %+v, want a return value of 2", report.Entries)
	}
}

func TestRunFilesInOrder(t *testing.T) {
	a := writeFile(t, "a.js", "console.log('first')")
	b := writeFile(t, "b.js", "console.log('second')")

	got, err := execute(t, "", "run", "--jobs", "2", a, b)
	if err != nil {
		t.Fatal(err)
	}
	ia, ib := strings.Index(got, "== "+a+" =="), strings.Index(got, "== "+b+" ==")
	if ia < 0 || ib < 0 || ia > ib {
		t.Errorf("headers out of order:\n%s", got)
	}
	if strings.Index(got, "first") > strings.Index(got, "second") {
		t.Errorf("reports out of order:\n%s", got)
	}
	if !strings.HasSuffix(got, "\n2 scripts run, 0 failed\n") {
		t.Errorf("missing run summary:\n%s", got)
	}
}

func TestRunArchiveAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.msgpack")
	if _, err := execute(t, "", "run", "--archive", path, "-e", "null.x"); !errors.Is(err, errScriptFailed) {
		t.Fatalf("run error = %v, want errScriptFailed", err)
	}

	got, err := execute(t, "", "report", "show", path)
	if err != nil {
		t.Fatalf("report show error = %v", err)
	}
	if !strings.Contains(got, "== <eval> ==") || !strings.Contains(got, "TypeError") {
		t.Errorf("report show output:\n%s", got)
	}

	a := writeFile(t, "a.js", "1")
	if _, err := execute(t, "", "run", "--archive", path, a, a); err == nil {
		t.Error("--archive with two scripts should fail")
	}
}

func TestSearch(t *testing.T) {
	got, err := execute(t, "foo bar\nbaz Foo\nnone", "search", "foo")
	if err != nil {
		t.Fatal(err)
	}
	want := "1: [foo] bar\n2: baz [Foo]\n2 matches\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	got, _ = execute(t, "foo Foo", "search", "--case-sensitive", "--count", "foo")
	if got != "1\n" {
		t.Errorf("count = %q, want 1", got)
	}
}

func TestView(t *testing.T) {
	got, err := execute(t, "a\nb\n", "view", "--width", "40")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Source", "Escaped", `a\nb`, "│"} {
		if !strings.Contains(got, want) {
			t.Errorf("view output missing %q:\n%s", want, got)
		}
	}
}

func TestViewFind(t *testing.T) {
	got, err := execute(t, "foo\nbar foo\n", "view", "--width", "80", "--find", "foo")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "[foo]") || !strings.HasSuffix(got, "match 1/4 in Source at line 1, column 1\n") {
		t.Errorf("view --find output:\n%s", got)
	}

	got, err = execute(t, "foo\nbar foo\n", "view", "--width", "80", "--find", "foo", "--match", "-1")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(got, "match 4/4 in Escaped at line 1, column 10\n") {
		t.Errorf("view --match -1 output:\n%s", got)
	}

	got, _ = execute(t, "abc", "view", "--width", "80", "--find", "zzz")
	if !strings.HasSuffix(got, `no matches for "zzz"`+"\n") {
		t.Errorf("view without hits:\n%s", got)
	}
}

func TestTools(t *testing.T) {
	got, err := execute(t, "", "tools", "list")
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"linefmt:escape_text", "linefmt:recent_runs", "linefmt:run_script", "linefmt:search_text", "linefmt:unescape_text"} {
		if !strings.Contains(got, id) {
			t.Errorf("tools list missing %s:\n%s", id, got)
		}
	}

	got, err = execute(t, "", "tools", "call", "linefmt:escape_text", "--args", `{"text":"a\nb"}`)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, `"text": "a\\nb"`) {
		t.Errorf("tools call output:\n%s", got)
	}

	got, err = execute(t, "", "tools", "describe", "--full", "linefmt:run_script")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "Input schema:") {
		t.Errorf("tools describe output:\n%s", got)
	}

	if _, err := execute(t, "", "tools", "call", "escape_text"); !errors.Is(err, toolkit.ErrInvalidToolID) {
		t.Errorf("call without namespace error = %v, want ErrInvalidToolID", err)
	}
}

func TestConfigFile(t *testing.T) {
	p := writeFile(t, "linefmt.yaml", "codec:\n  mode: legacy\n")
	got, err := execute(t, "", "--config", p, "escape", "--text", `say "hi"`)
	if err != nil {
		t.Fatal(err)
	}
	if got != "say 'hi'\n" {
		t.Errorf("output = %q, want legacy escaping", got)
	}

	bad := writeFile(t, "linefmt.yaml", "codec:\n  mode: yaml\n")
	if _, err := execute(t, "", "--config", bad, "escape", "--text", "x"); err == nil {
		t.Error("invalid config should fail")
	}
}

func TestGlobalFlagErrors(t *testing.T) {
	if _, err := execute(t, "", "--log-level", "loud", "version"); err == nil {
		t.Error("unknown log level should fail")
	}
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--color", "sometimes", "version"})
	if err := cmd.Execute(); err == nil {
		t.Error("unknown color mode should fail")
	}
}

func TestVersion(t *testing.T) {
	got, err := execute(t, "", "version", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(got), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Tool != "linefmt" || payload.Version != version {
		t.Errorf("payload = %+v", payload)
	}
}
