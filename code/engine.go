package code

import (
	"context"

	"github.com/rahilshah3105/code-line-formatter/console"
)

// Engine is the pluggable script execution capability.
//
// The Engine should:
//   - Execute the script with only the globals given in params
//   - Route script console calls to sink
//   - Report the completion value in ExecuteResult when there is one
//   - Return a *CodeError carrying the native category, message and trace
//     when the script throws
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines and stop the script when ctx is done.
// - Errors: script failures should return CodeError where possible; callers use errors.As.
// - Ownership: params are read-only; returned ExecuteResult is caller-owned.
type Engine interface {
	// Execute runs the script in params.Code.
	Execute(ctx context.Context, params ExecuteParams, sink console.Sink) (ExecuteResult, error)
}

// EngineFunc adapts a function to the Engine interface.
type EngineFunc func(ctx context.Context, params ExecuteParams, sink console.Sink) (ExecuteResult, error)

// Execute calls f.
func (f EngineFunc) Execute(ctx context.Context, params ExecuteParams, sink console.Sink) (ExecuteResult, error) {
	return f(ctx, params, sink)
}
