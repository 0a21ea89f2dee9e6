// Package query compiles a user-facing search request (a pattern string plus
// match/sort flags) into a Query the database package's search strategies
// can run directly, mirroring original_source's query.rs.
package query

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/example/ixsearch/internal/ixerr"
	"github.com/example/ixsearch/internal/status"
)

// SortOrder is the direction results are delivered in.
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

// Query is an immutable, compiled search request. Build one with
// QueryBuilder; Query itself exposes only readers, since it is shared
// read-only across the search strategies' goroutines.
type Query struct {
	raw          string
	regex        *regexp.Regexp
	regexEnabled bool
	matchPath    bool
	anchoredPath bool

	sortBy              status.Kind
	sortOrder           SortOrder
	sortDirsBeforeFiles bool
}

// IsEmpty reports whether the query string is empty, meaning every entry
// matches (the Passthrough strategy, spec §4.4).
func (q *Query) IsEmpty() bool { return q.raw == "" }

// MatchPath reports whether the compiled query matches against a path
// (component-wise, full, or regex) rather than the basename alone.
func (q *Query) MatchPath() bool { return q.matchPath }

// RegexEnabled reports whether the user supplied an actual regular
// expression, as opposed to a literal string escaped into one.
func (q *Query) RegexEnabled() bool { return q.regexEnabled }

// AnchoredPath reports the caller's assertion that a matching ancestor path
// implies every descendant also matches, letting the search strategy
// dispatcher pick the short-circuiting Full-path strategy over the
// conservative Regex-path one. See QueryBuilder.AnchoredPath.
func (q *Query) AnchoredPath() bool { return q.anchoredPath }

// Regex returns the compiled pattern. Safe for concurrent use across
// goroutines; strategies that want a private clone can call Regex().Copy().
func (q *Query) Regex() *regexp.Regexp { return q.regex }

func (q *Query) SortBy() status.Kind       { return q.sortBy }
func (q *Query) SortOrder() SortOrder      { return q.sortOrder }
func (q *Query) SortDirsBeforeFiles() bool { return q.sortDirsBeforeFiles }

// QueryBuilder accumulates flags before compiling a Query. Mirrors the
// Query API in spec §6.2.
type QueryBuilder struct {
	raw             string
	caseInsensitive bool
	regex           bool
	matchPath       bool
	autoMatchPath   bool
	anchoredPath    bool

	sortBy              status.Kind
	sortOrder           SortOrder
	sortDirsBeforeFiles bool
}

// NewQueryBuilder starts a builder for the given query string, sorting by
// Basename ascending by default.
func NewQueryBuilder(raw string) *QueryBuilder {
	return &QueryBuilder{raw: raw, sortBy: status.Basename}
}

func (b *QueryBuilder) CaseInsensitive(yes bool) *QueryBuilder {
	b.caseInsensitive = yes
	return b
}

// Regex sets whether raw is an actual regular expression rather than a
// literal string to be escaped.
func (b *QueryBuilder) Regex(yes bool) *QueryBuilder {
	b.regex = yes
	return b
}

// MatchPath forces matching against a path instead of the basename alone.
func (b *QueryBuilder) MatchPath(yes bool) *QueryBuilder {
	b.matchPath = yes
	return b
}

// AutoMatchPath enables resolving MatchPath from the query string itself,
// per should_match_path (spec §4.4): on if the string contains the
// platform's path separator.
func (b *QueryBuilder) AutoMatchPath(yes bool) *QueryBuilder {
	b.autoMatchPath = yes
	return b
}

// AnchoredPath is an [ADD] supplement: an advanced caller's assertion that,
// for a regex+match-path query, a matching ancestor implies every descendant
// also matches (e.g. a pattern anchored only at the start, like `^proj/src`).
// Spec §4.5 documents Full-path as "a variant that can still short-circuit
// on anchored ancestors" without giving a way to detect that automatically;
// this leaves the decision to the caller instead of silently dropping the
// strategy. Defaults to false, which keeps the conservative Regex-path
// strategy (spec scenario S5 depends on this default).
func (b *QueryBuilder) AnchoredPath(yes bool) *QueryBuilder {
	b.anchoredPath = yes
	return b
}

func (b *QueryBuilder) SortBy(kind status.Kind) *QueryBuilder {
	b.sortBy = kind
	return b
}

func (b *QueryBuilder) SortOrder(order SortOrder) *QueryBuilder {
	b.sortOrder = order
	return b
}

func (b *QueryBuilder) SortDirsBeforeFiles(yes bool) *QueryBuilder {
	b.sortDirsBeforeFiles = yes
	return b
}

// Build compiles the accumulated options into a Query. Returns a
// RegexBuildError if the pattern (literal-escaped or not) fails to compile.
func (b *QueryBuilder) Build() (*Query, error) {
	pattern := b.raw
	if !b.regex {
		pattern = regexp.QuoteMeta(pattern)
	}
	if b.caseInsensitive {
		pattern = "(?i)" + pattern
	}

	var re *regexp.Regexp
	if b.raw != "" {
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return nil, ixerr.NewRegexBuild(err)
		}
		re = compiled
	}

	matchPath := b.matchPath
	if !matchPath && b.autoMatchPath {
		matchPath = shouldMatchPath(b.regex, b.raw)
	}

	return &Query{
		raw:                 b.raw,
		regex:               re,
		regexEnabled:        b.regex,
		matchPath:           matchPath,
		anchoredPath:        b.anchoredPath,
		sortBy:              b.sortBy,
		sortOrder:           b.sortOrder,
		sortDirsBeforeFiles: b.sortDirsBeforeFiles,
	}, nil
}

// shouldMatchPath is should_match_path from original_source's query.rs: a
// plain substring test for the OS path separator, not a parse of the
// pattern's regex syntax tree (that HIR-walking helper in regex_helper.rs is
// never called by should_match_path itself — see SPEC_FULL.md §4.4).
func shouldMatchPath(regexEnabled bool, pattern string) bool {
	if os.PathSeparator == '\\' && regexEnabled {
		return strings.Contains(pattern, `\\`)
	}
	return strings.ContainsRune(pattern, os.PathSeparator)
}

// String returns a short debug description, useful in logs.
func (q *Query) String() string {
	return fmt.Sprintf("Query{%q matchPath=%v regex=%v sortBy=%v}", q.raw, q.matchPath, q.regexEnabled, q.sortBy)
}
