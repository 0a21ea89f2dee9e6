package database

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// ignoreNames are the ignore-file basenames consulted at each directory when
// ignore patterns are enabled, in preference order.
var ignoreNames = []string{".ixignore", ".gitignore"}

// ignoreRule anchors a compiled pattern set to the directory it was read
// from, so matches can be evaluated against a path relative to that base.
type ignoreRule struct {
	base string // absolute directory the ignore file lives in
	m    *ignore.GitIgnore
}

// readIgnoreRule looks for an ignore file directly inside dir and compiles
// it, or returns a zero ignoreRule (m == nil) if none is present.
func readIgnoreRule(dir string) ignoreRule {
	for _, name := range ignoreNames {
		lines := readIgnoreLines(filepath.Join(dir, name))
		if len(lines) > 0 {
			return ignoreRule{base: dir, m: ignore.CompileIgnoreLines(lines...)}
		}
	}
	return ignoreRule{}
}

func readIgnoreLines(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	s := bufio.NewScanner(f)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// ignoredByChain evaluates an inherited chain of ignoreRule (outermost
// first) against the absolute path of a candidate entry, additive to
// ignore_hidden rather than a replacement for it.
func ignoredByChain(chain []ignoreRule, absPath string) bool {
	ignored := false
	for _, r := range chain {
		if r.m == nil {
			continue
		}
		rel, err := filepath.Rel(r.base, absPath)
		if err != nil || rel == "." {
			continue
		}
		if r.m.MatchesPath(filepath.ToSlash(rel)) {
			ignored = true
		}
	}
	return ignored
}
