// scanner/scanner.go
package scanner

import (
	"errors"
	"io"
)

// ScanLines drives one file's lines through a MatchSpec's window and strategy.
// Every in-window line produces exactly one outcome, passed to emit in line
// order; lines outside the window produce none. Line numbers count every line
// read. A read failure stops the scan and is returned as a *FileError; outcomes
// already emitted stand.
func ScanLines(src LineSource, path string, spec *MatchSpec, emit func(MatchOutcome)) error {
	window := spec.Window()
	windowed := window.IsSet()
	strategy := spec.Strategy()

	lineNumber := 0
	for {
		line, err := src.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return &FileError{Path: path, Line: lineNumber + 1, Op: "read", Err: err}
		}
		lineNumber++

		// The window is checked first so skipped lines never reach the regex engine.
		if windowed && !window.Contains(lineNumber) {
			continue
		}

		matched, content := strategy.Match(line)
		emit(MatchOutcome{
			Matched:    matched,
			Content:    content,
			SourceFile: path,
			LineNumber: lineNumber,
		})
	}
}

// ScanFile opens path with opener and scans it with ScanLines.
func ScanFile(opener Opener, path string, spec *MatchSpec, emit func(MatchOutcome)) error {
	src, closer, err := opener.Open(path)
	if err != nil {
		return &FileError{Path: path, Op: "open", Err: err}
	}
	defer closer.Close()

	return ScanLines(src, path, spec, emit)
}
