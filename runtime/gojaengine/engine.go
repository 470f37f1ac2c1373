package gojaengine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dop251/goja"

	"github.com/rahilshah3105/code-line-formatter/code"
	"github.com/rahilshah3105/code-line-formatter/console"
)

const strictPrologue = "\"use strict\";\n"

// Config configures an Engine.
type Config struct {
	// Globals are bound in every runtime before params.Globals.
	Globals map[string]any

	// Strict runs scripts in strict mode by prepending a directive line.
	Strict bool

	// MaxCallStackSize limits call depth. Zero means DefaultMaxCallStackSize.
	MaxCallStackSize int
}

// DefaultMaxCallStackSize is the call depth limit applied when none is
// configured. goja's own limit is bounded only by memory, so unbounded
// recursion would never surface as a RangeError without it.
const DefaultMaxCallStackSize = 10000

// Engine implements code.Engine on goja.
type Engine struct {
	globals      map[string]any
	strict       bool
	maxCallStack int
	wrapperLines int
}

// New creates a new Engine with the given configuration.
func New(cfg Config) (*Engine, error) {
	if cfg.MaxCallStackSize < 0 {
		return nil, fmt.Errorf("%w: MaxCallStackSize must not be negative", code.ErrConfiguration)
	}
	if cfg.MaxCallStackSize == 0 {
		cfg.MaxCallStackSize = DefaultMaxCallStackSize
	}
	e := &Engine{
		globals:      cfg.Globals,
		strict:       cfg.Strict,
		maxCallStack: cfg.MaxCallStackSize,
	}
	if cfg.Strict {
		e.wrapperLines = 1
	}
	return e, nil
}

// Execute implements code.Engine.
func (e *Engine) Execute(ctx context.Context, params code.ExecuteParams, sink console.Sink) (code.ExecuteResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return code.ExecuteResult{}, interrupted(ctx, err.Error(), "", params.SourceName)
	}

	source := params.Code
	if e.strict {
		source = strictPrologue + source
	}
	prg, err := goja.Compile(params.SourceName, source, false)
	if err != nil {
		return code.ExecuteResult{}, e.mapError(ctx, err, params.SourceName)
	}

	vm := goja.New()
	vm.SetMaxCallStackSize(e.maxCallStack)
	if err := e.bind(vm, params.Globals, sink); err != nil {
		return code.ExecuteResult{}, err
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	start := time.Now()
	v, err := vm.RunProgram(prg)
	result := code.ExecuteResult{
		WrapperLines: e.wrapperLines,
		DurationMs:   time.Since(start).Milliseconds(),
	}
	if err != nil {
		return result, e.mapError(ctx, err, params.SourceName)
	}
	if v != nil && !goja.IsUndefined(v) {
		result.Value = exportValue(v)
		result.HasValue = true
	}
	return result, nil
}

func (e *Engine) bind(vm *goja.Runtime, globals map[string]any, sink console.Sink) error {
	for _, scope := range []map[string]any{e.globals, globals} {
		for name, value := range scope {
			if err := vm.Set(name, value); err != nil {
				return fmt.Errorf("%w: bind global %q: %w", code.ErrConfiguration, name, err)
			}
		}
	}
	if sink == nil {
		return nil
	}

	con := vm.NewObject()
	channels := map[string]func(args ...any){
		"log":   sink.Log,
		"debug": sink.Log,
		"info":  sink.Info,
		"warn":  sink.Warn,
		"error": sink.Error,
	}
	for name, fn := range channels {
		if err := con.Set(name, func(call goja.FunctionCall) goja.Value {
			args := make([]any, len(call.Arguments))
			for i, a := range call.Arguments {
				args[i] = exportValue(a)
			}
			fn(args...)
			return goja.Undefined()
		}); err != nil {
			return fmt.Errorf("bind console.%s: %w", name, err)
		}
	}
	return vm.Set("console", con)
}

func (e *Engine) mapError(ctx context.Context, err error, sourceName string) error {
	var syntaxErr *goja.CompilerSyntaxError
	if errors.As(err, &syntaxErr) {
		return &code.CodeError{
			Category:     "SyntaxError",
			Message:      syntaxErr.Message,
			Stack:        syntaxErr.Error(),
			SourceName:   sourceName,
			WrapperLines: e.wrapperLines,
			Err:          err,
		}
	}

	var interruptErr *goja.InterruptedError
	if errors.As(err, &interruptErr) {
		return interrupted(ctx, fmt.Sprint(interruptErr.Value()), interruptErr.String(), sourceName)
	}

	var overflow *goja.StackOverflowError
	if errors.As(err, &overflow) {
		return &code.CodeError{
			Category:     "RangeError",
			Message:      "Maximum call stack size exceeded",
			Stack:        overflow.String(),
			SourceName:   sourceName,
			WrapperLines: e.wrapperLines,
			Err:          err,
		}
	}

	var ex *goja.Exception
	if errors.As(err, &ex) {
		category, message := describeThrown(ex.Value())
		return &code.CodeError{
			Category:     category,
			Message:      message,
			Stack:        ex.String(),
			SourceName:   sourceName,
			WrapperLines: e.wrapperLines,
			Err:          err,
		}
	}

	return &code.CodeError{
		Message:      err.Error(),
		SourceName:   sourceName,
		WrapperLines: e.wrapperLines,
		Err:          err,
	}
}

func interrupted(ctx context.Context, cause, stack, sourceName string) error {
	err := ctx.Err()
	if errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("%w: %w", code.ErrLimitExceeded, err)
	}
	return &code.CodeError{
		Category:   code.CategoryInterrupted,
		Message:    "execution interrupted: " + cause,
		Stack:      stack,
		SourceName: sourceName,
		Err:        err,
	}
}
