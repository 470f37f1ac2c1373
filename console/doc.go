// Package console captures console-style output produced while a script runs.
//
// A [Console] is a table of four logging channels (info, log, warn, error)
// created with the host's original channels. [Console.Intercept] arms the
// table for one execution: every channel call is formatted with [Format],
// appended to the execution's [Buffer], and forwarded to the original channel
// so external observers still see the output. [Capture.Release] restores the
// originals.
//
// # Reentrancy
//
// Intercepts nest. The originals are saved when the first capture is armed and
// restored only when the last active capture is released, so overlapping
// executions never restore the table to another run's hooks.
//
// # Sinks
//
// A [Capture] is also a [Sink]. Engines bind the script's console object to
// the capture they are handed instead of the shared table, which keeps each
// run's script output in that run's buffer even when runs overlap.
package console
