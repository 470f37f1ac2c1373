package code

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rahilshah3105/code-line-formatter/console"
	"github.com/rahilshah3105/code-line-formatter/diagnose"
)

func TestExecutor_Interface(t *testing.T) {
	t.Helper()
	var _ Executor = (*DefaultExecutor)(nil)
}

func TestNewDefaultExecutor_ValidConfig(t *testing.T) {
	exec, err := NewDefaultExecutor(Config{Engine: &mockEngine{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exec == nil {
		t.Fatal("expected non-nil executor")
	}
}

func TestNewDefaultExecutor_InvalidConfig(t *testing.T) {
	_, err := NewDefaultExecutor(Config{})
	if err == nil {
		t.Fatal("expected error for invalid config")
	}
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}

func TestRun_SuccessLayout(t *testing.T) {
	engine := &mockEngine{script: func(_ context.Context, sink console.Sink) {
		sink.Log("hello", 1)
	}}
	report := newTestExecutor(engine).Run(context.Background(), "a\nb")

	want := []console.Entry{
		{Kind: console.SeverityInfo, Message: MarkerStarted},
		{Kind: console.SeverityInfo, Message: "Total lines: 2"},
		{Kind: console.SeverityInfo, Message: "Characters: 3"},
		{Kind: console.SeverityLog, Message: "hello 1"},
		{Kind: console.SeverityInfo, Message: MarkerCompleted},
		{Kind: console.SeveritySuccess, Message: MarkerSucceeded},
	}
	if len(report.Entries) != len(want) {
		t.Fatalf("entries = %q, want %d entries", messages(report), len(want))
	}
	for i := range want {
		if report.Entries[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, report.Entries[i], want[i])
		}
	}
	if !report.OK() || report.Lines != 2 || report.Chars != 3 {
		t.Errorf("report = %+v", report)
	}
}

func TestRun_ReturnValue(t *testing.T) {
	engine := &mockEngine{executeResult: ExecuteResult{Value: map[string]any{"a": 1}, HasValue: true}}
	report := newTestExecutor(engine).Run(context.Background(), "({a: 1})")

	got := messages(report)
	if got[3] != "Return value: {\n  \"a\": 1\n}" {
		t.Errorf("return value entry = %q", got[3])
	}
	if report.Entries[3].Kind != console.SeverityLog {
		t.Errorf("return value kind = %q, want log", report.Entries[3].Kind)
	}
}

func TestRun_NoReturnValue(t *testing.T) {
	report := newTestExecutor(&mockEngine{}).Run(context.Background(), "x")
	for _, m := range messages(report) {
		if strings.HasPrefix(m, valuePrefix) {
			t.Errorf("unexpected return value entry %q", m)
		}
	}
}

func TestRun_FailureIsReported(t *testing.T) {
	engine := &mockEngine{
		script: func(_ context.Context, sink console.Sink) { sink.Log(1) },
		executeErr: &CodeError{
			Category: "ReferenceError",
			Message:  "undefinedVar is not defined",
			Stack:    "ReferenceError: undefinedVar is not defined\n\tat script.js:2:1(6)",
		},
	}
	report := newTestExecutor(engine).Run(context.Background(), "console.log(1)\nundefinedVar")

	if report.OK() {
		t.Fatal("expected a failure")
	}
	if report.Failure.Kind != diagnose.ReferenceFailure || report.Failure.Identifier != "undefinedVar" {
		t.Errorf("failure = %+v", report.Failure)
	}
	if report.Failure.Location == nil || report.Failure.Location.Line != 2 {
		t.Errorf("location = %+v, want line 2", report.Failure.Location)
	}

	got := messages(report)
	logIdx, bannerIdx := -1, -1
	banners := 0
	for i, m := range got {
		if m == "1" && report.Entries[i].Kind == console.SeverityLog {
			logIdx = i
		}
		if strings.HasPrefix(m, "============") {
			banners++
			bannerIdx = i
		}
		if m == MarkerSucceeded || m == MarkerCompleted {
			t.Errorf("failed run contains %q", m)
		}
	}
	if banners != 1 {
		t.Errorf("banners = %d, want 1", banners)
	}
	if logIdx < 0 || logIdx > bannerIdx {
		t.Errorf("log entry index %d not before banner %d", logIdx, bannerIdx)
	}
	if got[len(got)-1] != MarkerFailed {
		t.Errorf("last entry = %q, want %q", got[len(got)-1], MarkerFailed)
	}
}

func TestRun_EnginePanicIsReported(t *testing.T) {
	report := newTestExecutor(&mockEngine{panicValue: "engine exploded"}).Run(context.Background(), "x")
	if report.OK() {
		t.Fatal("expected panic to be reported as a failure")
	}
	if report.Failure.Category != CategoryInternal || report.Failure.RawMessage != "engine exploded" {
		t.Errorf("failure = %+v", report.Failure)
	}
	if last := report.Entries[len(report.Entries)-1]; last.Message != MarkerFailed {
		t.Errorf("last entry = %+v", last)
	}
}

func TestRun_PlainErrorIsReported(t *testing.T) {
	report := newTestExecutor(&mockEngine{executeErr: errors.New("boom")}).Run(context.Background(), "x")
	if report.Failure == nil || report.Failure.Kind != diagnose.GenericFailure {
		t.Fatalf("failure = %+v", report.Failure)
	}
	if report.Failure.RawMessage != "boom" {
		t.Errorf("message = %q", report.Failure.RawMessage)
	}
}

func TestRun_DeadlineIsInterrupted(t *testing.T) {
	logger := &recordingLogger{}
	exec, _ := NewDefaultExecutor(Config{
		Engine: &mockEngine{executeErr: context.DeadlineExceeded},
		Logger: logger,
	})
	report := exec.RunParams(context.Background(), ExecuteParams{Code: "for(;;){}", Timeout: time.Second})
	if report.Failure == nil || report.Failure.Category != CategoryInterrupted {
		t.Fatalf("failure = %+v", report.Failure)
	}
	if !logger.has("WARN", "execution limit exceeded") {
		t.Errorf("expected limit warning, got %q", logger.lines)
	}
}

func TestRunParams_AppliesDefaults(t *testing.T) {
	engine := &mockEngine{}
	exec, _ := NewDefaultExecutor(Config{
		Engine:         engine,
		DefaultTimeout: time.Minute,
		SourceName:     "main.js",
		Globals:        map[string]any{"a": 1, "b": 2},
	})
	exec.RunParams(context.Background(), ExecuteParams{Code: "x", Globals: map[string]any{"b": 3}})

	calls := engine.calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calls))
	}
	got := calls[0]
	if got.SourceName != "main.js" || got.Timeout != time.Minute {
		t.Errorf("params = %+v", got)
	}
	if got.Globals["a"] != 1 || got.Globals["b"] != 3 {
		t.Errorf("globals = %v", got.Globals)
	}
	if !engine.lastDeadline {
		t.Error("expected a context deadline")
	}
}

func TestRun_DefaultScopeIsEmpty(t *testing.T) {
	engine := &mockEngine{}
	newTestExecutor(engine).Run(context.Background(), "x")
	if g := engine.calls()[0].Globals; g != nil {
		t.Errorf("globals = %v, want nil", g)
	}
}

func TestRun_ChannelsRestored(t *testing.T) {
	var forwarded []string
	var mu sync.Mutex
	record := func(args ...any) {
		mu.Lock()
		defer mu.Unlock()
		forwarded = append(forwarded, console.Format(args...))
	}
	con := console.New(console.Channels{Info: record, Log: record, Warn: record, Error: record})

	engine := &mockEngine{
		script: func(_ context.Context, sink console.Sink) {
			sink.Warn("inside")
			con.Log("host call during run")
		},
		executeErr: &CodeError{Category: "TypeError", Message: "x is not a function"},
	}
	exec, _ := NewDefaultExecutor(Config{Engine: engine, Console: con})
	report := exec.Run(context.Background(), "x()")

	if con.Intercepted() || con.Depth() != 0 {
		t.Error("console still intercepted after run")
	}
	got := messages(report)
	if !containsStr(strings.Join(got, "\n"), "host call during run") {
		t.Errorf("host call not captured: %q", got)
	}
	if len(forwarded) != 2 {
		t.Errorf("forwarded = %q, want both calls forwarded", forwarded)
	}
}

func TestRun_Idempotent(t *testing.T) {
	engine := &mockEngine{executeErr: &CodeError{Category: "SyntaxError", Message: "Unexpected token ';' at position 8"}}
	exec := newTestExecutor(engine)
	first := messages(exec.Run(context.Background(), "var x = ;"))
	second := messages(exec.Run(context.Background(), "var x = ;"))
	if strings.Join(first, "\n") != strings.Join(second, "\n") {
		t.Errorf("reports differ:\n%q\n%q", first, second)
	}
}

func TestRun_ConcurrentRunsAreIsolated(t *testing.T) {
	engine := EngineFunc(func(_ context.Context, params ExecuteParams, sink console.Sink) (ExecuteResult, error) {
		sink.Log(params.Code)
		return ExecuteResult{}, nil
	})
	exec := newTestExecutor(engine)

	var wg sync.WaitGroup
	reports := make([]Report, 16)
	for i := range reports {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reports[i] = exec.Run(context.Background(), strings.Repeat("x", i+1))
		}(i)
	}
	wg.Wait()

	for i, r := range reports {
		if got := r.Count(console.SeverityLog); got != 1 {
			t.Errorf("report %d has %d log entries, want 1", i, got)
		}
	}
}

func TestRun_RecordsHistory(t *testing.T) {
	history := NewHistory(2)
	exec, _ := NewDefaultExecutor(Config{Engine: &mockEngine{}, History: history})
	exec.Run(context.Background(), "a")
	exec.Run(context.Background(), "bb")
	exec.Run(context.Background(), "ccc")

	snap := history.Snapshot()
	if len(snap) != 2 || snap[0].Chars != 2 || snap[1].Chars != 3 {
		t.Errorf("history = %+v", snap)
	}
}
