package database

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIgnorePatternsExcludeMatches(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ".ixignore"), []byte("*.log\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"keep.txt", "drop.log"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	db, err := NewBuilder().AddDir(root).IgnorePatterns(true).Build()
	if err != nil {
		t.Fatal(err)
	}

	seen := map[string]bool{}
	for _, e := range db.Entries() {
		if !e.IsDir() {
			seen[e.Basename()] = true
		}
	}
	if !seen["keep.txt"] {
		t.Error("keep.txt should be present")
	}
	if seen["drop.log"] {
		t.Error("drop.log should be excluded by .ixignore's *.log rule")
	}
}

func TestIgnorePatternsOffByDefault(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ".ixignore"), []byte("*.log\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "drop.log"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	db, err := NewBuilder().AddDir(root).Build()
	if err != nil {
		t.Fatal(err)
	}

	found := false
	for _, e := range db.Entries() {
		if e.Basename() == "drop.log" {
			found = true
		}
	}
	if !found {
		t.Error("drop.log should be present when IgnorePatterns is not enabled")
	}
}
