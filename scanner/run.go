// scanner/run.go
package scanner

import (
	"bufio"
	"fmt"
	"io"
	"time"
)

// RunConfig is everything a run needs besides the output sink.
type RunConfig struct {
	Match            MatchOptions
	Target           string // File path, or the file name to look for in recursive mode
	Workers          int
	Root             string
	RespectGitignore bool
	ExcludeDirs      []string
	Color            bool
	Logger           Logger
	Opener           Opener
}

// Run scans the configured target and writes every matched, in-window line to
// out. It fails for an invalid pattern, a malformed glob, or, outside
// recursive mode, when the single target cannot be read. In recursive mode
// per-file failures are logged and collected in the Summary instead.
func Run(cfg RunConfig, out io.Writer) (Summary, error) {
	startTime := time.Now()
	var summary Summary

	spec, err := NewMatchSpec(cfg.Match)
	if err != nil {
		return summary, err
	}

	log := cfg.Logger
	if log == nil {
		log = nopLogger{}
	}
	log.Debugf("Using %s strategy over %s", spec.Strategy().Kind(), spec.Window())

	formatter := NewFormatter(spec.Recursive(), spec.ShowLineNumber(), cfg.Color)
	w := bufio.NewWriter(out)
	write := func(o MatchOutcome) {
		fmt.Fprintln(w, formatter.Render(o))
		summary.Matches++
	}

	dispatcher := &Dispatcher{
		Workers: cfg.Workers,
		Opener:  cfg.Opener,
		Discoverer: &Discoverer{
			Root:             cfg.Root,
			RespectGitignore: cfg.RespectGitignore,
			ExcludeDirs:      cfg.ExcludeDirs,
			Logger:           log,
		},
		Logger: log,
	}

	if !spec.Recursive() {
		summary.Files = 1
		scanErr := dispatcher.ScanOne(cfg.Target, spec, func(o MatchOutcome) {
			if o.Matched {
				write(o)
			}
		})
		if err := w.Flush(); err != nil {
			return summary, fmt.Errorf("writing results: %w", err)
		}
		if scanErr != nil {
			return summary, scanErr
		}
		log.Infof("Scan complete. Found %d matches in %.2fs.", summary.Matches, time.Since(startTime).Seconds())
		return summary, nil
	}

	deliveries, err := dispatcher.Dispatch(cfg.Target, spec)
	if err != nil {
		return summary, err
	}
	for delivery := range deliveries {
		if delivery.Err == nil || delivery.Err.Op != "walk" {
			summary.Files++
		}
		for _, o := range delivery.Outcomes {
			write(o)
		}
		if delivery.Err != nil {
			summary.Failures = append(summary.Failures, delivery.Err)
			log.Warnf("Skipping %s: %v", delivery.Path, delivery.Err)
		}
	}
	if err := w.Flush(); err != nil {
		return summary, fmt.Errorf("writing results: %w", err)
	}

	log.Infof("Scan complete. Found %d matches in %d files (%d failed) in %.2fs.",
		summary.Matches, summary.Files, len(summary.Failures), time.Since(startTime).Seconds())
	return summary, nil
}
