package fixer

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultInclude lists the files the fixer knows how to rewrite.
var DefaultInclude = []string{"**/*.{js,jsx,ts,tsx,mjs,cjs,html,vue,css}"}

// DefaultExclude skips dependency and build output directories at any depth.
var DefaultExclude = []string{
	"**/node_modules/**",
	"**/.git/**",
	"**/dist/**",
	"**/build/**",
	"**/.next/**",
}

// DiscoverFiles walks root and returns the files matching include and not
// matching exclude, sorted. Patterns are doublestar globs relative to root;
// nil slices select the defaults. Walk errors are logged and skipped.
func DiscoverFiles(root string, include, exclude []string, logger *slog.Logger) ([]string, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(include) == 0 {
		include = DefaultInclude
	}
	if exclude == nil {
		exclude = DefaultExclude
	}

	for _, pattern := range include {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid include pattern: %s", pattern)
		}
	}
	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern: %s", pattern)
		}
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("walk error", "path", path, "error", err)
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if matchAny(exclude, rel) || (d.IsDir() && matchAny(exclude, rel+"/")) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		if matchAny(include, rel) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	sort.Strings(files)
	logger.Debug("discovered files", "root", root, "count", len(files))
	return files, nil
}

func matchAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
