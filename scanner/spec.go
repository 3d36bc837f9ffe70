// scanner/spec.go
package scanner

import (
	"fmt"
	"regexp"

	"golang.org/x/text/cases"
)

// MatchSpec is the immutable description of what counts as a match and how a
// matched line is rewritten. It is built once per run and shared read-only by
// every scan worker.
type MatchSpec struct {
	pattern        *regexp.Regexp
	query          string
	caseSensitive  bool
	useRegex       bool
	doSubstitute   bool
	replacement    string
	showLineNumber bool
	recursive      bool
	window         LineWindow
	strategy       Strategy
}

// NewMatchSpec compiles the pattern, folds the literal query when matching is
// case-insensitive and selects the line strategy. The pattern must compile even
// when a literal strategy ends up being used.
func NewMatchSpec(opts MatchOptions) (*MatchSpec, error) {
	re, err := regexp.Compile(opts.Pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}
	window, err := NewLineWindow(opts.WindowStart, opts.WindowEnd)
	if err != nil {
		return nil, err
	}

	query := opts.Pattern
	if !opts.CaseSensitive {
		query = foldCase(query)
	}

	spec := &MatchSpec{
		pattern:        re,
		query:          query,
		caseSensitive:  opts.CaseSensitive,
		useRegex:       opts.UseRegex,
		doSubstitute:   opts.Substitute,
		showLineNumber: opts.ShowLineNumber,
		recursive:      opts.Recursive,
		window:         window,
	}
	if opts.Substitute {
		spec.replacement = opts.Replacement
	}
	spec.strategy = SelectStrategy(spec)
	return spec, nil
}

// foldCase applies Unicode case folding. A Caser keeps state between calls,
// so each call gets its own.
func foldCase(s string) string {
	return cases.Fold().String(s)
}

// Query returns the literal query, already folded when matching is case-insensitive.
func (s *MatchSpec) Query() string { return s.query }

// Expr returns the source text of the compiled pattern.
func (s *MatchSpec) Expr() string { return s.pattern.String() }

func (s *MatchSpec) CaseSensitive() bool  { return s.caseSensitive }
func (s *MatchSpec) UseRegex() bool       { return s.useRegex }
func (s *MatchSpec) Substitute() bool     { return s.doSubstitute }
func (s *MatchSpec) Replacement() string  { return s.replacement }
func (s *MatchSpec) ShowLineNumber() bool { return s.showLineNumber }
func (s *MatchSpec) Recursive() bool      { return s.recursive }
func (s *MatchSpec) Window() LineWindow   { return s.window }

// Strategy returns the line strategy chosen at construction.
func (s *MatchSpec) Strategy() Strategy { return s.strategy }
