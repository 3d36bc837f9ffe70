// scanner/format.go
package scanner

import (
	"strconv"

	"github.com/fatih/color"
)

// Render formats a matched outcome. The filename is shown in recursive mode,
// the line number when requested:
//
//	"<file>: <line>: <content>"
//	"<line>: <content>"
//	"<file>: <content>"
//	"<content>"
func Render(o MatchOutcome, showFileName, showLineNumber bool) string {
	return compose(o.SourceFile, strconv.Itoa(o.LineNumber), o.Content, showFileName, showLineNumber)
}

func compose(file, line, content string, showFileName, showLineNumber bool) string {
	switch {
	case showFileName && showLineNumber:
		return file + ": " + line + ": " + content
	case showLineNumber:
		return line + ": " + content
	case showFileName:
		return file + ": " + content
	default:
		return content
	}
}

// Formatter renders outcomes with fixed visibility flags and, optionally,
// coloured filename and line-number prefixes.
type Formatter struct {
	ShowFileName   bool
	ShowLineNumber bool

	fileColor *color.Color
	lineColor *color.Color
}

// NewFormatter returns a Formatter. When colorize is set the prefixes are
// coloured regardless of whether the output is a terminal.
func NewFormatter(showFileName, showLineNumber, colorize bool) *Formatter {
	f := &Formatter{ShowFileName: showFileName, ShowLineNumber: showLineNumber}
	if colorize {
		f.fileColor = color.New(color.FgMagenta)
		f.fileColor.EnableColor()
		f.lineColor = color.New(color.FgGreen)
		f.lineColor.EnableColor()
	}
	return f
}

func (f *Formatter) Render(o MatchOutcome) string {
	if f.fileColor == nil {
		return Render(o, f.ShowFileName, f.ShowLineNumber)
	}
	file := f.fileColor.Sprint(o.SourceFile)
	line := f.lineColor.Sprint(strconv.Itoa(o.LineNumber))
	return compose(file, line, o.Content, f.ShowFileName, f.ShowLineNumber)
}
