package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/bluenviron/gosdp/internal/report"
	"github.com/bluenviron/gosdp/pkg/sdp"
)

// discover expands directories into the files matching pattern.
// Paths that cannot be found are kept, so that they are reported as missing.
func discover(inputs []string, pattern string) ([]string, error) {
	var files []string

	for _, input := range inputs {
		fi, err := os.Stat(input)
		if err != nil || !fi.IsDir() {
			files = append(files, input)
			continue
		}

		matches, err := filepath.Glob(filepath.Join(input, pattern))
		if err != nil {
			return nil, err
		}

		sort.Strings(matches)
		files = append(files, matches...)
	}

	return files, nil
}

func checkFile(logger *slog.Logger, fpath string) report.Result {
	logger = logger.With("file", fpath)

	byts, err := os.ReadFile(fpath)
	if err != nil {
		logger.Warn("unable to read file", "error", err)
		return report.Result{File: fpath, Err: err}
	}

	d := sdp.Decoder{
		OnSkippedLine: func(line string) {
			logger.Debug("skipped malformed line", "line", line)
		},
		OnAttributeFallback: func(attr sdp.Generic, err error) {
			logger.Debug("attribute kept as generic", "name", attr.Key, "error", err)
		},
	}

	s, err := d.Decode(byts)
	if err != nil {
		logger.Warn("parse failed", "error", err)
		return report.Result{File: fpath, Err: err}
	}

	logger.Debug("parsed", "media", len(s.Media), "attributes", len(s.Attributes))

	return report.Result{File: fpath, Session: s}
}
