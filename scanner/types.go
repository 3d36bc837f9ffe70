// scanner/types.go
package scanner

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPattern is returned when the pattern text does not compile as a regular expression.
	ErrInvalidPattern = errors.New("invalid pattern")
	// ErrInvalidWindow is returned for negative line window bounds.
	ErrInvalidWindow = errors.New("invalid line window")
	// ErrBadGlob is returned when a recursive target cannot be turned into a glob pattern.
	ErrBadGlob = errors.New("malformed glob pattern")
	// ErrInvalidUTF8 is returned by line sources for lines that are not valid UTF-8.
	ErrInvalidUTF8 = errors.New("line is not valid UTF-8")
)

// MatchOptions holds the resolved settings a MatchSpec is built from.
type MatchOptions struct {
	Pattern        string
	CaseSensitive  bool
	UseRegex       bool
	Substitute     bool
	Replacement    string // Only used when Substitute is set
	ShowLineNumber bool
	Recursive      bool
	WindowStart    int // 0 = unset
	WindowEnd      int // 0 = unset
}

// MatchOutcome is the verdict for one evaluated line.
type MatchOutcome struct {
	Matched    bool
	Content    string // Original or substituted line
	SourceFile string
	LineNumber int // 1-based
}

// ScanTask pairs a discovered file with the MatchSpec it is scanned against.
type ScanTask struct {
	Path string
	Spec *MatchSpec
}

// FileError reports a failure confined to a single file.
type FileError struct {
	Path string
	Line int    // 0 when the failure is not tied to a line
	Op   string // "walk", "open" or "read"
	Err  error
}

func (e *FileError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s %s:%d: %v", e.Op, e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Summary describes a finished run.
type Summary struct {
	Files    int // Files whose scan was attempted
	Matches  int // Lines written to the output sink
	Failures []*FileError
}

// Logger is the subset of logger.ConsoleLogger the scanner reports through.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
