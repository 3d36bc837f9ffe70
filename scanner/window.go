// scanner/window.go
package scanner

import "fmt"

// LineWindow restricts matching to a range of 1-based line numbers.
// A zero bound is unset. Both bounds are inclusive, so Start > End
// (both set) is an empty window.
type LineWindow struct {
	Start int
	End   int
}

// NewLineWindow validates the bounds and returns the window.
func NewLineWindow(start, end int) (LineWindow, error) {
	if start < 0 || end < 0 {
		return LineWindow{}, fmt.Errorf("%w: bounds must not be negative (from %d, until %d)", ErrInvalidWindow, start, end)
	}
	return LineWindow{Start: start, End: end}, nil
}

// IsSet reports whether either bound is configured.
func (w LineWindow) IsSet() bool {
	return w.Start > 0 || w.End > 0
}

// Contains reports whether line is eligible for matching.
func (w LineWindow) Contains(line int) bool {
	switch {
	case w.Start == 0 && w.End == 0:
		return true
	case w.Start > 0 && w.End > 0:
		return w.Start <= line && line <= w.End
	case w.Start > 0:
		return line >= w.Start
	default:
		return line <= w.End
	}
}

func (w LineWindow) String() string {
	switch {
	case !w.IsSet():
		return "all lines"
	case w.End == 0:
		return fmt.Sprintf("lines %d-", w.Start)
	case w.Start == 0:
		return fmt.Sprintf("lines -%d", w.End)
	default:
		return fmt.Sprintf("lines %d-%d", w.Start, w.End)
	}
}
