package database

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/example/ixsearch/internal/query"
	"github.com/example/ixsearch/internal/status"
)

// buildSampleTree lays out:
//
//	root/
//	  a/
//	    b1.log
//	    b2.txt
//	  c.log
func buildSampleTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "a"), 0o755); err != nil {
		t.Fatal(err)
	}
	files := []string{
		filepath.Join(root, "a", "b1.log"),
		filepath.Join(root, "a", "b2.txt"),
		filepath.Join(root, "c.log"),
	}
	for _, f := range files {
		if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func buildSampleDatabase(t *testing.T) *Database {
	t.Helper()
	root := buildSampleTree(t)
	db, err := NewBuilder().AddDir(root).FastSort(Basename).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return db
}

func pathSet(t *testing.T, db *Database, ids []EntryID) []string {
	t.Helper()
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = filepath.ToSlash(db.Entry(id).Path())
	}
	sort.Strings(out)
	return out
}

func TestBuildBasicTree(t *testing.T) {
	db := buildSampleDatabase(t)
	// root, a/, a/b1.log, a/b2.txt, c.log
	if db.NumEntries() != 5 {
		t.Fatalf("NumEntries = %d, want 5", db.NumEntries())
	}
}

func TestFastSortRequiresIndexed(t *testing.T) {
	_, err := NewBuilder().AddDir(t.TempDir()).FastSort(Size).Build()
	if err == nil {
		t.Fatal("expected an error requesting fast-sort on a non-indexed attribute")
	}
}

func TestSearchBasenameLiteral(t *testing.T) {
	db := buildSampleDatabase(t)
	q, err := query.NewQueryBuilder("b1.log").Build()
	if err != nil {
		t.Fatal(err)
	}
	ids, err := db.Search(context.Background(), q)
	if err != nil {
		t.Fatal(err)
	}
	got := pathSet(t, db, ids)
	if len(got) != 1 || filepath.Base(got[0]) != "b1.log" {
		t.Errorf("got %v, want exactly one match for b1.log", got)
	}
}

func TestSearchBasenameRegex(t *testing.T) {
	db := buildSampleDatabase(t)
	q, err := query.NewQueryBuilder(`\.log$`).Regex(true).Build()
	if err != nil {
		t.Fatal(err)
	}
	ids, err := db.Search(context.Background(), q)
	if err != nil {
		t.Fatal(err)
	}
	got := pathSet(t, db, ids)
	if len(got) != 2 {
		t.Errorf("got %v, want 2 .log matches", got)
	}
}

func TestSearchComponentWisePathShortCircuits(t *testing.T) {
	// Scenario S4: a literal directory-component match short-circuits to
	// every descendant, without re-testing each child's own basename.
	// The literal query is tested against the root's full path first, so the
	// directory gets a name that cannot occur in the temp directory's own
	// generated path.
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "qzx"), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, f := range []string{
		filepath.Join(root, "qzx", "b1.log"),
		filepath.Join(root, "qzx", "b2.txt"),
		filepath.Join(root, "c.log"),
	} {
		if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	db, err := NewBuilder().AddDir(root).Build()
	if err != nil {
		t.Fatal(err)
	}
	q, err := query.NewQueryBuilder("qzx").MatchPath(true).Build()
	if err != nil {
		t.Fatal(err)
	}
	ids, err := db.Search(context.Background(), q)
	if err != nil {
		t.Fatal(err)
	}
	got := pathSet(t, db, ids)
	// "qzx" itself, plus both of its children, all short-circuited in.
	if len(got) != 3 {
		t.Errorf("got %v, want the dir \"qzx\" plus its 2 children", got)
	}
}

func TestSearchRegexPathDoesNotShortCircuit(t *testing.T) {
	// Scenario S5: an anchored regex over the full path with match_path+regex
	// must default to Regex-path, which never short-circuits on an ancestor.
	db := buildSampleDatabase(t)
	// Unanchored at the start since the assembled full path carries the temp
	// directory's own absolute prefix ahead of "a/...".
	q, err := query.NewQueryBuilder(`a/.*\.log$`).Regex(true).MatchPath(true).Build()
	if err != nil {
		t.Fatal(err)
	}
	if q.AnchoredPath() {
		t.Fatal("test construction error: AnchoredPath must be false")
	}
	ids, err := db.Search(context.Background(), q)
	if err != nil {
		t.Fatal(err)
	}
	got := pathSet(t, db, ids)
	if len(got) != 1 || filepath.Base(got[0]) != "b1.log" {
		t.Errorf("got %v, want exactly a/b1.log", got)
	}
}

func TestSearchFullPathAnchoredShortCircuits(t *testing.T) {
	db := buildSampleDatabase(t)
	q, err := query.NewQueryBuilder(`^.*/a$`).Regex(true).MatchPath(true).AnchoredPath(true).Build()
	if err != nil {
		t.Fatal(err)
	}
	ids, err := db.Search(context.Background(), q)
	if err != nil {
		t.Fatal(err)
	}
	got := pathSet(t, db, ids)
	if len(got) != 3 {
		t.Errorf("got %v, want dir \"a\" plus its 2 children via short-circuit", got)
	}
}

func TestSearchPassthroughOnEmptyQuery(t *testing.T) {
	db := buildSampleDatabase(t)
	q, err := query.NewQueryBuilder("").Build()
	if err != nil {
		t.Fatal(err)
	}
	ids, err := db.Search(context.Background(), q)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != db.NumEntries() {
		t.Errorf("passthrough returned %d ids, want all %d entries", len(ids), db.NumEntries())
	}
}

func TestSearchAbort(t *testing.T) {
	db := buildSampleDatabase(t)
	q, err := query.NewQueryBuilder(".").Regex(true).Build()
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := db.Search(ctx, q); err == nil {
		t.Error("expected an abort error from an already-cancelled context")
	}
}

func TestFastSortAscendingDescending(t *testing.T) {
	db := buildSampleDatabase(t)
	q, err := query.NewQueryBuilder("").SortBy(status.Basename).Build()
	if err != nil {
		t.Fatal(err)
	}
	asc, err := db.Search(context.Background(), q)
	if err != nil {
		t.Fatal(err)
	}

	qd, err := query.NewQueryBuilder("").SortBy(status.Basename).SortOrder(query.Descending).Build()
	if err != nil {
		t.Fatal(err)
	}
	desc, err := db.Search(context.Background(), qd)
	if err != nil {
		t.Fatal(err)
	}

	if len(asc) != len(desc) {
		t.Fatalf("length mismatch: %d vs %d", len(asc), len(desc))
	}
	for i := range asc {
		if asc[i] != desc[len(desc)-1-i] {
			t.Fatalf("descending sort is not simply the reverse of ascending at index %d", i)
		}
	}
}

func TestNonIndexedSortFallsBackToSlowPath(t *testing.T) {
	// Scenario S7: sorting by an attribute with no fast-sort permutation
	// must still work, via the collect-then-sort fallback.
	root := buildSampleTree(t)
	db, err := NewBuilder().AddDir(root).Index(Size).Build()
	if err != nil {
		t.Fatal(err)
	}
	q, err := query.NewQueryBuilder("").SortBy(status.Size).Build()
	if err != nil {
		t.Fatal(err)
	}
	ids, err := db.Search(context.Background(), q)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != db.NumEntries() {
		t.Errorf("got %d ids, want all %d entries", len(ids), db.NumEntries())
	}
}

func TestSortDirsBeforeFiles(t *testing.T) {
	db := buildSampleDatabase(t)
	q, err := query.NewQueryBuilder("").SortDirsBeforeFiles(true).Build()
	if err != nil {
		t.Fatal(err)
	}
	ids, err := db.Search(context.Background(), q)
	if err != nil {
		t.Fatal(err)
	}
	sawFile := false
	for _, id := range ids {
		e := db.Entry(id)
		if !e.IsDir() {
			sawFile = true
		} else if sawFile {
			t.Fatalf("directory %q appeared after a file in dirs-first order", e.Path())
		}
	}
}

func TestExtensionSemantics(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"file.txt", ".bashrc", "noext"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	db, err := NewBuilder().AddDir(root).Index(Extension).Build()
	if err != nil {
		t.Fatal(err)
	}
	got := map[string]string{}
	for _, e := range db.Entries() {
		got[e.Basename()] = e.Extension()
	}
	if got["file.txt"] != "txt" {
		t.Errorf("file.txt extension = %q, want txt", got["file.txt"])
	}
	if got[".bashrc"] != "" {
		t.Errorf(".bashrc extension = %q, want empty (dotfile, not an extension)", got[".bashrc"])
	}
	if got["noext"] != "" {
		t.Errorf("noext extension = %q, want empty", got["noext"])
	}
}

func TestDisjointRootsNotSubsumed(t *testing.T) {
	r1 := t.TempDir()
	r2 := t.TempDir()
	if err := os.WriteFile(filepath.Join(r1, "f1"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(r2, "f2"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	db, err := NewBuilder().AddDir(r1).AddDir(r2).Build()
	if err != nil {
		t.Fatal(err)
	}
	if len(db.RootEntries()) != 2 {
		t.Errorf("got %d roots, want 2 distinct roots", len(db.RootEntries()))
	}
}
