package code

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/rahilshah3105/code-line-formatter/console"
	"github.com/rahilshah3105/code-line-formatter/diagnose"
)

// Report markers.
const (
	MarkerStarted   = "Execution started"
	MarkerCompleted = "Execution completed"
	MarkerSucceeded = "Script executed successfully"
	MarkerFailed    = diagnose.FailedMarker

	linesPrefix = "Total lines: "
	charsPrefix = "Characters: "
	valuePrefix = "Return value: "
)

// Categories used for failures the engine did not classify itself.
const (
	CategoryInterrupted = "InterruptedError"
	CategoryInternal    = "Error"
)

// Executor is the main entry point for running scripts.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines; an interrupted script is reported, not returned.
// - Errors: none. Every failure, including engine panics, ends up in the Report.
// - Ownership: params are read-only; the returned Report is caller-owned.
type Executor interface {
	// Run executes script with the executor's defaults.
	Run(ctx context.Context, script string) Report

	// RunParams executes params.Code, applying defaults for unset fields.
	RunParams(ctx context.Context, params ExecuteParams) Report
}

// DefaultExecutor is the standard implementation of Executor.
type DefaultExecutor struct {
	cfg Config
}

// NewDefaultExecutor creates a new DefaultExecutor with the given configuration.
// Returns ErrConfiguration if any required field is missing.
func NewDefaultExecutor(cfg Config) (*DefaultExecutor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &DefaultExecutor{cfg: cfg}, nil
}

// Run executes script with the executor's defaults.
func (e *DefaultExecutor) Run(ctx context.Context, script string) Report {
	return e.RunParams(ctx, ExecuteParams{Code: script})
}

// RunParams executes params.Code and returns its report.
func (e *DefaultExecutor) RunParams(ctx context.Context, params ExecuteParams) Report {
	if params.SourceName == "" {
		params.SourceName = e.cfg.SourceName
	}
	if params.Timeout == 0 {
		params.Timeout = e.cfg.DefaultTimeout
	}
	params.Globals = mergeGlobals(e.cfg.Globals, params.Globals)

	src := diagnose.NewSourceLines(params.Code)
	buf := console.NewBuffer()

	start := time.Now()
	failure := e.capture(ctx, params, src, buf)
	duration := time.Since(start).Milliseconds()

	report := Report{
		Entries: buf.Entries(),
		Failure: failure,
		Lines:   src.Len(),
		Chars:   utf8.RuneCountInString(params.Code),
	}

	if failure != nil {
		e.cfg.Logger.Warn("script failed",
			"source", params.SourceName,
			"kind", string(failure.Kind),
			"category", failure.Category,
			"durationMs", duration)
	} else {
		e.cfg.Logger.Info("script executed",
			"source", params.SourceName,
			"entries", len(report.Entries),
			"durationMs", duration)
	}
	if e.cfg.History != nil {
		e.cfg.History.Add(report)
	}
	return report
}

// capture runs the script with the console armed and returns the failure
// classification, if any. The capture is released on every path.
func (e *DefaultExecutor) capture(ctx context.Context, params ExecuteParams, src diagnose.SourceLines, buf *console.Buffer) (failure *diagnose.Classification) {
	cp := e.cfg.Console.Intercept(buf)
	defer cp.Release()
	defer func() {
		if r := recover(); r != nil {
			e.cfg.Logger.Error("engine panic", "source", params.SourceName, "panic", fmt.Sprint(r))
			failure = e.fail(buf, src, diagnose.Failure{
				Category:   CategoryInternal,
				Message:    fmt.Sprint(r),
				SourceName: params.SourceName,
			})
		}
	}()

	buf.Append(console.SeverityInfo, MarkerStarted)
	buf.Append(console.SeverityInfo, linesPrefix+strconv.Itoa(src.Len()))
	buf.Append(console.SeverityInfo, charsPrefix+strconv.Itoa(utf8.RuneCountInString(params.Code)))

	if params.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, params.Timeout)
		defer cancel()
	}

	result, err := e.cfg.Engine.Execute(ctx, params, cp)
	if err != nil {
		if errors.Is(err, ErrLimitExceeded) || errors.Is(err, context.DeadlineExceeded) {
			e.cfg.Logger.Warn("execution limit exceeded",
				"source", params.SourceName,
				"timeout", params.Timeout.String(),
				"error", ErrLimitExceeded.Error())
		}
		return e.fail(buf, src, failureOf(err, params))
	}

	if result.HasValue {
		buf.Append(console.SeverityLog, valuePrefix+console.FormatValue(result.Value))
	}
	buf.Append(console.SeverityInfo, MarkerCompleted)
	buf.Append(console.SeveritySuccess, MarkerSucceeded)
	return nil
}

func (e *DefaultExecutor) fail(buf *console.Buffer, src diagnose.SourceLines, f diagnose.Failure) *diagnose.Classification {
	c := diagnose.Classify(f, src, e.cfg.Diagnostics)
	buf.AppendEntries(diagnose.Render(c, src, e.cfg.Diagnostics)...)
	return &c
}

// failureOf extracts classification input from an engine error.
func failureOf(err error, params ExecuteParams) diagnose.Failure {
	var ce *CodeError
	if errors.As(err, &ce) {
		f := ce.Failure()
		if f.SourceName == "" {
			f.SourceName = params.SourceName
		}
		return f
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return diagnose.Failure{
			Category:   CategoryInterrupted,
			Message:    fmt.Sprintf("execution interrupted: timeout after %v", params.Timeout),
			SourceName: params.SourceName,
		}
	case errors.Is(err, context.Canceled):
		return diagnose.Failure{
			Category:   CategoryInterrupted,
			Message:    "execution interrupted: canceled",
			SourceName: params.SourceName,
		}
	}
	return diagnose.Failure{
		Category:   CategoryInternal,
		Message:    err.Error(),
		SourceName: params.SourceName,
	}
}

func mergeGlobals(base, overlay map[string]any) map[string]any {
	if len(base) == 0 && len(overlay) == 0 {
		return nil
	}
	out := make(map[string]any, len(base)+len(overlay))
	maps.Copy(out, base)
	maps.Copy(out, overlay)
	return out
}
