package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rahilshah3105/code-line-formatter/code"
	"github.com/rahilshah3105/code-line-formatter/config"
	"github.com/rahilshah3105/code-line-formatter/console"
	"github.com/rahilshah3105/code-line-formatter/linecodec"
	"github.com/rahilshah3105/code-line-formatter/runtime/gojaengine"
)

// app carries the state shared by every subcommand.
type app struct {
	configPath string
	colorMode  string
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
}

func (a *app) setup(cmd *cobra.Command) error {
	level, err := parseLevel(a.logLevel)
	if err != nil {
		return err
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	a.cfg = config.Default()
	path := a.configPath
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			path, _ = config.Find(wd)
		}
	}
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		a.cfg = cfg
		a.logger.Debug("config loaded", "path", path)
	}

	if a.colorMode == "" {
		a.colorMode = a.cfg.Output.Color
	}
	switch a.colorMode {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("unsupported color mode %q (must be auto, always or never)", a.colorMode)
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("unsupported log level %q", s)
	}
	return level, nil
}

// useColor resolves the color mode for w. In auto mode only terminals get
// color.
func (a *app) useColor(w io.Writer) bool {
	switch a.colorMode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func (a *app) codec(override string) (linecodec.Codec, error) {
	raw := a.cfg.Codec.Mode
	if override != "" {
		raw = override
	}
	mode, err := linecodec.ParseMode(raw)
	if err != nil {
		return linecodec.Codec{}, err
	}
	return linecodec.Codec{Mode: mode}, nil
}

// executor builds a goja-backed executor from the loaded configuration,
// recording into a history sized by history.size but holding at least
// minHistory reports. Console output of scripts is forwarded to the debug log
// after capture.
func (a *app) executor(minHistory int) (*code.DefaultExecutor, *code.History, error) {
	timeout, err := a.cfg.Timeout()
	if err != nil {
		return nil, nil, err
	}
	engine, err := gojaengine.New(gojaengine.Config{
		Globals:          a.cfg.Engine.Globals,
		Strict:           a.cfg.Engine.Strict,
		MaxCallStackSize: a.cfg.Engine.MaxCallStackSize,
	})
	if err != nil {
		return nil, nil, err
	}
	history := code.NewHistory(max(a.cfg.History.Size, minHistory))
	exec, err := code.NewDefaultExecutor(code.Config{
		Engine:         engine,
		Console:        console.New(a.forwardChannels()),
		Logger:         a.logger,
		DefaultTimeout: timeout,
		SourceName:     a.cfg.Engine.SourceName,
		Diagnostics:    a.cfg.DiagnoseOptions(),
		History:        history,
	})
	if err != nil {
		return nil, nil, err
	}
	return exec, history, nil
}

func (a *app) forwardChannels() console.Channels {
	forward := func(name string) console.Func {
		return func(args ...any) {
			a.logger.Debug("script console", "channel", name, "message", console.Format(args...))
		}
	}
	return console.Channels{
		Info:  forward("info"),
		Log:   forward("log"),
		Warn:  forward("warn"),
		Error: forward("error"),
	}
}

// input returns the text named by the argument list: a file path, "-" for
// stdin, or stdin when no path is given.
func input(cmd *cobra.Command, path string) (string, string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return "<stdin>", string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read input: %w", err)
	}
	return path, string(data), nil
}
