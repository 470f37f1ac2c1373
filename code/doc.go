// Package code runs script snippets and turns their outcome into an ordered
// execution report.
//
// A run arms a fresh console capture, executes the script through a
// pluggable [Engine], and records every console call the script makes in the
// order it happens, interleaved with the executor's own markers. A thrown
// failure is classified by the diagnose package and rendered into the same
// report; it is never returned as an error.
//
// # Architecture
//
//   - [Engine]: the narrow capability that executes script text. It receives
//     the per-run [console.Sink] and an explicit globals scope.
//   - [Executor]: the entry point. [DefaultExecutor.Run] always returns a
//     [Report], whatever the script does.
//   - [History]: an optional bounded record of recent reports.
//
// # Report Layout
//
// A successful run yields:
//
//	info    Execution started
//	info    Total lines: N
//	info    Characters: N
//	...     console output of the script
//	log     Return value: X        (only when the script produced a value)
//	info    Execution completed
//	success Script executed successfully
//
// A failed run ends with the rendered diagnostic and the terminal
// "Execution failed" entry.
//
// # Limits
//
// Timeouts are applied via context deadline. An engine error caused by the
// deadline is logged as [ErrLimitExceeded] and reported as an interrupted run.
package code
