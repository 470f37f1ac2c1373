// Package diagnose turns a script engine's native failure metadata into a
// human-readable report.
//
// The pipeline is:
//
//  1. [KindOf] maps the native category ("SyntaxError", "ReferenceError", ...)
//     onto the [Kind] taxonomy.
//  2. [Locate] runs an ordered list of [Matcher] strategies over the trace and
//     message text. The first strategy that recovers a line wins. Location
//     recovery is best effort: engines expose positions only as text, so the
//     result may be empty.
//  3. [Classify] combines both with the script's [SourceLines] into a
//     [Classification].
//  4. [Render] assembles the ordered report entries: banner, message,
//     location with caret, hints, stack, context window, terminal marker.
//
// Every step is total: malformed input yields less detail, never a panic.
package diagnose
