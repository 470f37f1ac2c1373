package main

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rahilshah3105/code-line-formatter/code"
	"github.com/rahilshah3105/code-line-formatter/console"
	"github.com/rahilshah3105/code-line-formatter/render"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))

type runOptions struct {
	format  string
	jobs    int
	archive string
	timeout time.Duration
	only    []string
	eval    string
}

type script struct {
	source string
	text   string
}

func newRunCmd(a *app) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run [file...]",
		Short: "Run scripts and print their captured output and diagnosis",
		Long: `Run executes each script in a fresh runtime and prints the ordered log of
engine markers, console output and, on failure, a diagnosed error report.
Without file arguments the script is read from stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScripts(cmd, a, opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.format, "format", "", "output format (text|json); defaults to the config file")
	cmd.Flags().IntVar(&opts.jobs, "jobs", 0, "max scripts run in parallel (0=auto)")
	cmd.Flags().StringVar(&opts.archive, "archive", "", "write the run to this msgpack archive (single script only)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "execution limit per script; overrides the config file")
	cmd.Flags().StringSliceVar(&opts.only, "only", nil, "print only these severities (info,log,warn,error,success)")
	cmd.Flags().StringVarP(&opts.eval, "eval", "e", "", "run this code instead of reading files")
	return cmd
}

func runScripts(cmd *cobra.Command, a *app, opts *runOptions, args []string) error {
	format := opts.format
	if format == "" {
		format = a.cfg.Output.Format
	}
	if format != "text" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be text or json)", format)
	}
	kinds, err := parseKinds(opts.only)
	if err != nil {
		return err
	}

	scripts, err := collectScripts(cmd, opts, args)
	if err != nil {
		return err
	}
	if opts.archive != "" && len(scripts) != 1 {
		return fmt.Errorf("--archive needs exactly one script, got %d", len(scripts))
	}

	exec, history, err := a.executor(len(scripts))
	if err != nil {
		return err
	}

	jobs := opts.jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	reports := make([]code.Report, len(scripts))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(jobs)
	for i, s := range scripts {
		g.Go(func() error {
			reports[i] = exec.RunParams(ctx, code.ExecuteParams{Code: s.text, Timeout: opts.timeout})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	color := a.useColor(out)
	failed := 0
	for i, report := range reports {
		if len(reports) > 1 && format == "text" {
			if err := writeHeader(out, scripts[i].source, color, i > 0); err != nil {
				return err
			}
		}
		if err := writeReport(out, report, format, render.TextOptions{Color: color, Kinds: kinds}); err != nil {
			return err
		}
		if !report.OK() {
			failed++
		}
	}

	if opts.archive != "" {
		if err := render.WriteArchive(opts.archive, render.Archive{
			Version: render.ArchiveVersion,
			Source:  scripts[0].source,
			Script:  scripts[0].text,
			Report:  reports[0],
		}); err != nil {
			return err
		}
		a.logger.Info("archive written", "path", opts.archive)
	}

	if len(reports) > 1 && format == "text" {
		if err := writeSummary(out, history); err != nil {
			return err
		}
	}
	if failed > 0 {
		return errScriptFailed
	}
	return nil
}

// writeSummary counts the runs recorded in history.
func writeSummary(w io.Writer, history *code.History) error {
	runs := history.Snapshot()
	failed := 0
	for _, r := range runs {
		if !r.OK() {
			failed++
		}
	}
	_, err := fmt.Fprintf(w, "\n%d %s run, %d failed\n", len(runs), plural(len(runs), "script", "scripts"), failed)
	return err
}

func collectScripts(cmd *cobra.Command, opts *runOptions, args []string) ([]script, error) {
	if cmd.Flags().Changed("eval") {
		if len(args) > 0 {
			return nil, fmt.Errorf("--eval and file arguments cannot be used together")
		}
		return []script{{source: "<eval>", text: opts.eval}}, nil
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	scripts := make([]script, 0, len(args))
	for _, path := range args {
		source, text, err := input(cmd, path)
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, script{source: source, text: text})
	}
	return scripts, nil
}

func parseKinds(raw []string) ([]console.Severity, error) {
	kinds := make([]console.Severity, 0, len(raw))
	for _, r := range raw {
		k, err := console.ParseSeverity(r)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func writeHeader(w io.Writer, source string, color, gap bool) error {
	if gap {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	title := "== " + source + " =="
	if color {
		title = headerStyle.Render(title)
	}
	_, err := fmt.Fprintln(w, title)
	return err
}

func writeReport(w io.Writer, report code.Report, format string, opts render.TextOptions) error {
	if format == "json" {
		return render.JSON(w, report)
	}
	return render.Text(w, report.Entries, opts)
}
