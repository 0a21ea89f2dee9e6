package database

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCanonicalizeDirsSubsumesNestedRoot(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	out, err := canonicalizeDirs([]string{root, sub})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Fatalf("got %v, want the subdirectory subsumed into its parent root", out)
	}
}

func TestCanonicalizeDirsKeepsDisjointRoots(t *testing.T) {
	r1 := t.TempDir()
	r2 := t.TempDir()

	out, err := canonicalizeDirs([]string{r1, r2})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("got %v, want 2 disjoint roots kept", out)
	}
}
