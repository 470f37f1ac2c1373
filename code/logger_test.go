package code

import (
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLogger_SlogSatisfiesInterface(t *testing.T) {
	t.Helper()
	var _ Logger = (*slog.Logger)(nil)
}

func TestLogger_RunSummary(t *testing.T) {
	var sb strings.Builder
	logger := slog.New(slog.NewTextHandler(&sb, nil))
	exec, _ := NewDefaultExecutor(Config{Engine: &mockEngine{}, Logger: logger})
	exec.Run(context.Background(), "x")

	if !strings.Contains(sb.String(), "script executed") {
		t.Errorf("log output = %q", sb.String())
	}
}
