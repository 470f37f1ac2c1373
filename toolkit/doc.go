// Package toolkit exposes the formatter's operations as discoverable tools.
//
// Tools are plain handlers grouped into a Backend. A Catalog indexes the
// tools of one or more backends for search and dispatches calls by tool ID
// ("namespace:name"). NewMCPServer publishes a catalog over the Model Context
// Protocol so agents can run scripts and transform text:
//
//	backend := toolkit.Builtins(toolkit.BuiltinOptions{Executor: exec})
//	catalog, _ := toolkit.NewCatalog(ctx, backend)
//	out, _ := catalog.Call(ctx, "linefmt:escape_text", map[string]any{"text": "a\nb"})
//
// Built-in tools live under the "linefmt" namespace:
//
//   - run_script: execute a script and return its Report
//   - escape_text: collapse text into one escaped line
//   - unescape_text: expand an escaped line back into text
//   - search_text: find query occurrences with line and column
//   - recent_runs: list the reports kept in the run history
package toolkit
