// Command linefmt escapes and unescapes code lines, runs scripts with
// diagnosed error reports, and serves both as MCP tools.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// errScriptFailed makes the process exit non-zero after a report was printed.
var errScriptFailed = errors.New("script failed")

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "linefmt",
		Short:         "Single-line code formatter and script diagnostics",
		Long:          `linefmt collapses code into one escaped line and back, and runs scripts with structured error reports.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: linefmt.{yaml,yml,toml,json} in the working directory)")
	root.PersistentFlags().StringVar(&a.colorMode, "color", "", "colorize output (auto|always|never)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level on stderr (debug|info|warn|error)")

	root.AddCommand(
		newEscapeCmd(a),
		newUnescapeCmd(a),
		newRunCmd(a),
		newReportCmd(a),
		newSearchCmd(a),
		newViewCmd(a),
		newToolsCmd(a),
		newMCPCmd(a),
		newVersionCmd(),
	)
	return root
}

// main executes the root command. A failed script exits with status 1
// without an extra message; other errors are printed to stderr first.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errScriptFailed) {
			fmt.Fprintln(os.Stderr, "linefmt:", err)
		}
		os.Exit(1)
	}
}
