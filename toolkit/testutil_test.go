package toolkit

import (
	"context"
	"sync"
	"testing"

	"github.com/rahilshah3105/code-line-formatter/code"
	"github.com/rahilshah3105/code-line-formatter/console"
)

// stubExecutor records the params it was asked to run.
type stubExecutor struct {
	mu     sync.Mutex
	params []code.ExecuteParams
	report code.Report
}

func (s *stubExecutor) Run(ctx context.Context, script string) code.Report {
	return s.RunParams(ctx, code.ExecuteParams{Code: script})
}

func (s *stubExecutor) RunParams(_ context.Context, params code.ExecuteParams) code.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = append(s.params, params)
	return s.report
}

func (s *stubExecutor) last() code.ExecuteParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.params) == 0 {
		return code.ExecuteParams{}
	}
	return s.params[len(s.params)-1]
}

func okReport() code.Report {
	return code.Report{
		Entries: []console.Entry{
			{Kind: console.SeverityLog, Message: "hi"},
			{Kind: console.SeveritySuccess, Message: code.MarkerSucceeded},
		},
		Lines: 1,
		Chars: 16,
	}
}

func newTestCatalog(t *testing.T) (*Catalog, *stubExecutor) {
	t.Helper()
	exec := &stubExecutor{report: okReport()}
	c, err := NewCatalog(context.Background(), Builtins(BuiltinOptions{Executor: exec}))
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	return c, exec
}
