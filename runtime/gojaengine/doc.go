// Package gojaengine provides a code.Engine backed by the goja ECMAScript
// interpreter.
//
// Every execution gets a fresh goja.Runtime. The only bindings a script sees
// are the standard built-ins, a console object wired to the run's sink, and
// the globals passed in the engine config and the execution params.
//
// # Failures
//
// Compile errors surface as CodeError values with category "SyntaxError" and
// the parser's "name: Line L:C message" text. Thrown values surface with the
// category taken from the thrown object's name and the interpreter's full
// trace as Stack. A context deadline or cancellation interrupts the VM; the
// resulting CodeError has category "InterruptedError" and wraps
// code.ErrLimitExceeded when the deadline passed.
package gojaengine
