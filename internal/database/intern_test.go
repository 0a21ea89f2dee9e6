package database

import "testing"

func TestInternerDeduplicates(t *testing.T) {
	in := newInterner()
	a := in.intern("readme.md")
	b := in.intern("readme.md")
	if a != b {
		t.Errorf("interning the same name twice produced different spans: %v vs %v", a, b)
	}
	if len(in.arena) != len("readme.md") {
		t.Errorf("arena length = %d, want %d (no duplicate bytes appended)", len(in.arena), len("readme.md"))
	}
}

func TestInternerDistinctNames(t *testing.T) {
	in := newInterner()
	a := in.intern("foo")
	b := in.intern("bar")
	if a == b {
		t.Error("distinct names must not share a span")
	}
	if len(in.arena) != len("foobar") {
		t.Errorf("arena length = %d, want %d", len(in.arena), len("foobar"))
	}
}

func TestInternerHashCollisionSafe(t *testing.T) {
	// Different names that might share a bucket must still round-trip to
	// their own distinct content, not someone else's.
	in := newInterner()
	names := []string{"a", "ab", "abc", "b", "ba", "bca"}
	spans := make(map[string]nameSpan)
	for _, n := range names {
		spans[n] = in.intern(n)
	}
	for _, n := range names {
		span := spans[n]
		got := string(in.arena[span.start : span.start+uint32(span.len)])
		if got != n {
			t.Errorf("interned span for %q resolved to %q", n, got)
		}
	}
}
