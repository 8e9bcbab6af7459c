// sdpcheck parses session description files and prints a structured report
// of each one, followed by a summary.
//
// Usage:
//
//	sdpcheck [flags] [files or directories...]
//
// When no file or directory is given, the configured directory is scanned.
// The exit code is 1 when any file is missing or fails to parse.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bluenviron/gosdp/internal/config"
	"github.com/bluenviron/gosdp/internal/report"
)

type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func (e exitError) ExitCode() int {
	return e.code
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: level}
	if isTerminal(w) {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}

func run(args []string, stdout io.Writer, stderr io.Writer) error {
	var configPath string
	var dir string
	var pattern string
	var output string
	var color bool
	var reconstruct bool
	var logLevel string
	var contentBase string

	defaults := config.Default()

	flagSet := pflag.NewFlagSet("sdpcheck", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&configPath, "config", "", "path to a YAML configuration file")
	flagSet.StringVar(&dir, "dir", defaults.Dir, "directory scanned when no file is given")
	flagSet.StringVar(&pattern, "pattern", defaults.Pattern, "glob used to find files inside directories")
	flagSet.StringVarP(&output, "output", "o", string(defaults.Output), "output format (text or yaml)")
	flagSet.BoolVar(&color, "color", defaults.Color, "style text output when writing to a terminal")
	flagSet.BoolVar(&reconstruct, "reconstruct", defaults.Reconstruct, "print the reconstructed description of each file")
	flagSet.StringVar(&logLevel, "log-level", defaults.LogLevel, "log level (debug, info, warn, error)")
	flagSet.StringVar(&contentBase, "content-base", defaults.ContentBase,
		"absolute URL used to resolve the control URL of each media")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(stderr, flagSet)
			return nil
		}
		return err
	}

	if help, _ := flagSet.GetBool("help"); help {
		printHelp(stderr, flagSet)
		return nil
	}

	cfg := defaults
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}

	if flagSet.Changed("dir") {
		cfg.Dir = dir
	}
	if flagSet.Changed("pattern") {
		cfg.Pattern = pattern
	}
	if flagSet.Changed("output") {
		cfg.Output = config.Output(output)
	}
	if flagSet.Changed("color") {
		cfg.Color = color
	}
	if flagSet.Changed("reconstruct") {
		cfg.Reconstruct = reconstruct
	}
	if flagSet.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flagSet.Changed("content-base") {
		cfg.ContentBase = contentBase
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := cfg.SlogLevel()
	logger := newLogger(stderr, level)

	inputs := flagSet.Args()
	if len(inputs) == 0 {
		inputs = []string{cfg.Dir}
	}

	files, err := discover(inputs, cfg.Pattern)
	if err != nil {
		return err
	}

	logger.Debug("files discovered", "count", len(files), "pattern", cfg.Pattern)

	results := make([]report.Result, len(files))
	for i, fpath := range files {
		results[i] = checkFile(logger, fpath)
	}

	switch cfg.Output {
	case config.OutputYAML:
		if err := report.WriteYAML(stdout, results); err != nil {
			return err
		}

	default:
		p := report.NewPrinter(stdout, cfg.Color && isTerminal(stdout))
		p.ContentBase, _ = cfg.ContentBaseURL()
		p.Banner(len(results))
		for _, r := range results {
			p.Result(r, cfg.Reconstruct)
		}
		p.Summary(results)
	}

	if _, failed := report.Count(results); failed > 0 {
		return exitError{code: 1}
	}
	return nil
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `sdpcheck - parse session description files and report their contents.

Usage:
  sdpcheck [flags] [files or directories...]

Examples:
  # Check every .sdp file in the current directory
  sdpcheck

  # Check two files and print a YAML document
  sdpcheck -o yaml offer.sdp answer.sdp

  # Check a directory without the reconstructed output
  sdpcheck --reconstruct=false ./captures

  # Print the control URL of each media of a stream
  sdpcheck --content-base rtsp://10.0.0.1:554/stream/ stream.sdp

Flags:
`)
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}
