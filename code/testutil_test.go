package code

import (
	"context"
	"fmt"
	"sync"

	"github.com/rahilshah3105/code-line-formatter/console"
)

// mockEngine implements Engine for testing.
type mockEngine struct {
	mu sync.Mutex

	// Configurable behaviour
	executeResult ExecuteResult
	executeErr    error
	panicValue    any
	// script is called with the sink before returning, to emit console output.
	script func(ctx context.Context, sink console.Sink)

	// Call tracking
	executeCalls []ExecuteParams
	lastDeadline bool
}

func (m *mockEngine) Execute(ctx context.Context, params ExecuteParams, sink console.Sink) (ExecuteResult, error) {
	m.mu.Lock()
	m.executeCalls = append(m.executeCalls, params)
	_, m.lastDeadline = ctx.Deadline()
	m.mu.Unlock()

	if m.script != nil {
		m.script(ctx, sink)
	}
	if m.panicValue != nil {
		panic(m.panicValue)
	}
	return m.executeResult, m.executeErr
}

func (m *mockEngine) calls() []ExecuteParams {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ExecuteParams, len(m.executeCalls))
	copy(out, m.executeCalls)
	return out
}

// recordingLogger implements Logger for testing.
type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) log(level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf("%s %s %v", level, msg, args))
}

func (l *recordingLogger) Info(msg string, args ...any)  { l.log("INFO", msg, args) }
func (l *recordingLogger) Warn(msg string, args ...any)  { l.log("WARN", msg, args) }
func (l *recordingLogger) Error(msg string, args ...any) { l.log("ERROR", msg, args) }

func (l *recordingLogger) has(level, msg string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	prefix := level + " " + msg + " "
	for _, line := range l.lines {
		if len(line) >= len(prefix) && line[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}

func newTestExecutor(engine Engine) *DefaultExecutor {
	exec, err := NewDefaultExecutor(Config{Engine: engine})
	if err != nil {
		panic(err)
	}
	return exec
}

func messages(r Report) []string {
	out := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		out[i] = e.Message
	}
	return out
}

func containsStr(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
