package database

// Regex-path's traversal is identical to Full-path's except for whether a
// match short-circuits its subtree, so both live on the shared
// traverseFullPath/traverseFullPathRoots walk in fullpath.go; see
// matchRegexPath there. This file exists to keep the one-file-per-strategy
// layout original_source's database/search/filters/ uses (regex_path.rs is
// its own file there too, for the same reason: the two filters differ by a
// single boolean, not by shape).
