package query

import (
	"testing"

	"github.com/example/ixsearch/internal/status"
)

func TestBuildLiteralEscapesMeta(t *testing.T) {
	q, err := NewQueryBuilder("a.b+c").Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !q.Regex().MatchString("a.b+c") {
		t.Error("literal pattern should match its own exact text")
	}
	if q.Regex().MatchString("aXbXc") {
		t.Error("literal pattern must not be treated as regex metacharacters")
	}
}

func TestBuildRegexMode(t *testing.T) {
	q, err := NewQueryBuilder(`a.*c`).Regex(true).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !q.Regex().MatchString("aXXXc") {
		t.Error("regex pattern should match via .*")
	}
}

func TestBuildInvalidRegex(t *testing.T) {
	_, err := NewQueryBuilder(`(unterminated`).Regex(true).Build()
	if err == nil {
		t.Fatal("expected a RegexBuildError for an invalid pattern")
	}
}

func TestBuildCaseInsensitive(t *testing.T) {
	q, err := NewQueryBuilder("FOO").CaseInsensitive(true).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !q.Regex().MatchString("foo") {
		t.Error("case-insensitive query should match lowercase text")
	}
}

func TestEmptyQueryIsPassthrough(t *testing.T) {
	q, err := NewQueryBuilder("").Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !q.IsEmpty() {
		t.Error("empty raw pattern should report IsEmpty")
	}
}

func TestAutoMatchPathDetectsSeparator(t *testing.T) {
	q, err := NewQueryBuilder("a/b").AutoMatchPath(true).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !q.MatchPath() {
		t.Error("a pattern containing the path separator should auto-enable MatchPath")
	}

	q2, err := NewQueryBuilder("plainname").AutoMatchPath(true).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if q2.MatchPath() {
		t.Error("a pattern without a path separator should not auto-enable MatchPath")
	}
}

func TestMatchPathExplicitOverridesAuto(t *testing.T) {
	q, err := NewQueryBuilder("plain").MatchPath(true).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !q.MatchPath() {
		t.Error("explicit MatchPath(true) should always win")
	}
}

func TestAnchoredPathDefaultsFalse(t *testing.T) {
	q, err := NewQueryBuilder(`^a/.*\.log$`).Regex(true).MatchPath(true).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if q.AnchoredPath() {
		t.Error("AnchoredPath must default to false so Regex-path stays the default strategy (scenario S5)")
	}
}

func TestAnchoredPathOptIn(t *testing.T) {
	q, err := NewQueryBuilder(`^a/`).Regex(true).MatchPath(true).AnchoredPath(true).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !q.AnchoredPath() {
		t.Error("AnchoredPath(true) should be reflected on the compiled Query")
	}
}

func TestSortDefaults(t *testing.T) {
	q, err := NewQueryBuilder("x").Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if q.SortBy() != status.Basename {
		t.Errorf("default SortBy = %v, want Basename", q.SortBy())
	}
	if q.SortOrder() != Ascending {
		t.Errorf("default SortOrder = %v, want Ascending", q.SortOrder())
	}
}
