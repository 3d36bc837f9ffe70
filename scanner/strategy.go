// scanner/strategy.go
package scanner

import (
	"regexp"
	"strings"
)

// StrategyKind tags one of the four line-evaluation behaviours.
type StrategyKind int

const (
	LiteralSearch StrategyKind = iota
	LiteralFoldSearch
	RegexSearch
	RegexSubstitute
)

func (k StrategyKind) String() string {
	switch k {
	case LiteralSearch:
		return "literal"
	case LiteralFoldSearch:
		return "literal-fold"
	case RegexSearch:
		return "regex"
	case RegexSubstitute:
		return "regex-substitute"
	default:
		return "unknown"
	}
}

// Strategy decides whether a line matches and what content it yields.
// Implementations are pure and safe for concurrent use.
type Strategy interface {
	Kind() StrategyKind
	Match(line string) (matched bool, content string)
}

// SelectStrategy picks the strategy for spec. Regex mode wins over the
// case-sensitivity flag, which only applies to literal queries.
func SelectStrategy(spec *MatchSpec) Strategy {
	switch {
	case spec.useRegex && spec.doSubstitute:
		return regexSubstitute{re: spec.pattern, replacement: spec.replacement}
	case spec.useRegex:
		return regexSearch{re: spec.pattern}
	case spec.caseSensitive:
		return literalSearch{query: spec.query}
	default:
		return literalFoldSearch{query: spec.query}
	}
}

type literalSearch struct {
	query string
}

func (literalSearch) Kind() StrategyKind { return LiteralSearch }

func (s literalSearch) Match(line string) (bool, string) {
	return strings.Contains(line, s.query), line
}

// literalFoldSearch holds a query that was folded when the MatchSpec was built.
type literalFoldSearch struct {
	query string
}

func (literalFoldSearch) Kind() StrategyKind { return LiteralFoldSearch }

func (s literalFoldSearch) Match(line string) (bool, string) {
	return strings.Contains(foldCase(line), s.query), line
}

type regexSearch struct {
	re *regexp.Regexp
}

func (regexSearch) Kind() StrategyKind { return RegexSearch }

func (s regexSearch) Match(line string) (bool, string) {
	return s.re.MatchString(line), line
}

// regexSubstitute replaces every non-overlapping occurrence, leftmost first.
// $1, $name and ${name} in the replacement expand to capture groups.
type regexSubstitute struct {
	re          *regexp.Regexp
	replacement string
}

func (regexSubstitute) Kind() StrategyKind { return RegexSubstitute }

func (s regexSubstitute) Match(line string) (bool, string) {
	if !s.re.MatchString(line) {
		return false, line
	}
	return true, s.re.ReplaceAllString(line, s.replacement)
}
