// Package report renders the results of sdpcheck.
package report

import (
	"errors"
	"io/fs"
	"strconv"

	"github.com/bluenviron/gosdp/pkg/liberrors"
	"github.com/bluenviron/gosdp/pkg/sdp"
)

// Kind is the outcome of checking a file.
type Kind string

// outcomes.
const (
	KindOK      Kind = "ok"
	KindMissing Kind = "missing"
	KindIO      Kind = "io"
	KindParse   Kind = "parse"
)

// Result is the result of checking a file.
type Result struct {
	File    string
	Session *sdp.Session
	Err     error
}

// Kind returns the outcome.
func (r Result) Kind() Kind {
	if r.Err == nil {
		return KindOK
	}

	if errors.Is(r.Err, fs.ErrNotExist) {
		return KindMissing
	}

	var mf liberrors.ErrMalformedField
	var mo liberrors.ErrMissingOrigin
	if errors.As(r.Err, &mf) || errors.As(r.Err, &mo) {
		return KindParse
	}

	return KindIO
}

// Failed returns whether the file failed to be checked.
func (r Result) Failed() bool {
	return r.Err != nil
}

// DescribeTiming returns a human-readable description of a t= field.
func DescribeTiming(t sdp.Timing) string {
	if t.IsUnbounded() {
		return "0 0 (permanent/unbounded session)"
	}

	var start string
	if t.Start == 0 {
		start = "0 (immediate start)"
	} else {
		start = strconv.FormatUint(t.Start, 10) + " (NTP seconds since 1900-01-01)"
	}

	var stop string
	if t.Stop == 0 {
		stop = "0 (no end)"
	} else {
		stop = strconv.FormatUint(t.Stop, 10) + " (NTP seconds since 1900-01-01)"
	}

	return start + " -> " + stop
}

// Count returns the number of passed and failed results.
func Count(results []Result) (int, int) {
	passed := 0
	for _, r := range results {
		if !r.Failed() {
			passed++
		}
	}
	return passed, len(results) - passed
}
