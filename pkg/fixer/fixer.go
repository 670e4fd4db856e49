// Package fixer rewrites shorthand tokens in the class attributes of whole
// files: JSX and TSX through tree-sitter, HTML and Vue templates through an
// HTML lexer, and @apply lists through a CSS lexer.
package fixer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/gnana997/twbracket/pkg/parser"
	"github.com/gnana997/twbracket/pkg/rewrite"
	"github.com/gnana997/twbracket/pkg/util"
)

// FileResult is the outcome for one file.
type FileResult struct {
	Path     string `json:"path"`
	Rewrites int    `json:"rewrites"`
	Changed  bool   `json:"changed"`
	Written  bool   `json:"written"`
	Output   []byte `json:"-"`
}

// Report summarizes a FixFiles run.
type Report struct {
	Files        []FileResult `json:"files"`
	FilesScanned int          `json:"files_scanned"`
	FilesChanged int          `json:"files_changed"`
	FilesFailed  int          `json:"files_failed"`
	Rewrites     int          `json:"rewrites"`
	DurationMs   int64        `json:"duration_ms"`
}

// Options configures a Fixer. Zero values pick defaults.
type Options struct {
	Aliases *rewrite.AliasTable
	Workers int
	Files   util.FileCache
	Logger  *slog.Logger
}

// Fixer rewrites files. It is safe for concurrent use.
type Fixer struct {
	aliases   *rewrite.AliasTable
	parsers   *parser.Manager
	files     util.FileCache
	ownsFiles bool
	workers   int
	logger    *slog.Logger
}

// New creates a Fixer. Close releases its parsers.
func New(opts Options) *Fixer {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Aliases == nil {
		opts.Aliases = rewrite.DefaultAliases()
	}
	workers := util.GetOptimalPoolSizeWithOverride(opts.Workers)

	f := &Fixer{
		aliases: opts.Aliases,
		parsers: parser.NewManager(workers, opts.Logger),
		files:   opts.Files,
		workers: workers,
		logger:  opts.Logger,
	}
	if f.files == nil {
		cfg := util.DefaultFileCacheConfig()
		cfg.Logger = opts.Logger
		f.files = util.NewFileCache(cfg)
		f.ownsFiles = true
	}
	return f
}

// Close releases parsers and, when the Fixer created it, the file cache.
func (f *Fixer) Close() error {
	err := f.parsers.Close()
	if f.ownsFiles {
		err = multierr.Append(err, f.files.Close())
	}
	return err
}

// Supported reports whether path has an extension the fixer handles.
func Supported(path string) bool {
	return kindForPath(path) != kindUnknown
}

type sourceKind int

const (
	kindUnknown sourceKind = iota
	kindScript
	kindMarkup
	kindStylesheet
)

func kindForPath(path string) sourceKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".vue":
		return kindMarkup
	case ".css":
		return kindStylesheet
	}
	if parser.GrammarForPath(path) != parser.GrammarUnknown {
		return kindScript
	}
	return kindUnknown
}

// FixSource rewrites src, choosing the reader by path's extension. The
// path is not read or written.
func (f *Fixer) FixSource(path string, src []byte) (FileResult, error) {
	result := FileResult{Path: path}

	var edits []edit
	switch kindForPath(path) {
	case kindScript:
		tree, err := f.parsers.ParseFile(src, path)
		if err != nil {
			return result, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		edits = jsxEdits(f.aliases, tree.RootNode(), src)
		tree.Close()
	case kindMarkup:
		edits = markupEdits(f.aliases, src)
	case kindStylesheet:
		edits = stylesheetEdits(f.aliases, src)
	default:
		return result, fmt.Errorf("unsupported file type: %s", path)
	}

	out, n := applyEdits(src, edits)
	result.Output = out
	result.Rewrites = n
	result.Changed = n > 0
	return result, nil
}

// FixFile reads path, rewrites it and writes it back when write is set and
// something changed.
func (f *Fixer) FixFile(path string, write bool) (FileResult, error) {
	src, err := f.files.Read(path)
	if err != nil {
		return FileResult{Path: path}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	result, err := f.FixSource(path, src)
	if err != nil || !result.Changed || !write {
		return result, err
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, result.Output, mode); err != nil {
		return result, fmt.Errorf("failed to write %s: %w", path, err)
	}
	f.files.Invalidate(path)
	result.Written = true

	f.logger.Debug("file rewritten", "path", path, "rewrites", result.Rewrites)
	return result, nil
}

// FixFiles fixes paths with a pool of workers. Per-file failures do not stop
// the run; they are combined into the returned error and counted in the
// report. Report.Files keeps the order of paths and omits failed files.
func (f *Fixer) FixFiles(paths []string, write bool) (Report, error) {
	start := time.Now()

	type outcome struct {
		result FileResult
		err    error
	}
	outcomes := make([]outcome, len(paths))

	jobs := make(chan int)
	var wg sync.WaitGroup
	workers := min(f.workers, len(paths))
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				r, err := f.FixFile(paths[i], write)
				outcomes[i] = outcome{result: r, err: err}
			}
		}()
	}
	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var (
		report Report
		errs   error
	)
	report.FilesScanned = len(paths)
	for _, o := range outcomes {
		if o.err != nil {
			report.FilesFailed++
			errs = multierr.Append(errs, o.err)
			continue
		}
		o.result.Output = nil
		report.Files = append(report.Files, o.result)
		if o.result.Changed {
			report.FilesChanged++
			report.Rewrites += o.result.Rewrites
		}
	}
	report.DurationMs = time.Since(start).Milliseconds()

	f.logger.Info("fix complete",
		"files", report.FilesScanned,
		"changed", report.FilesChanged,
		"failed", report.FilesFailed,
		"rewrites", report.Rewrites,
		"write", write,
		"duration_ms", report.DurationMs)

	return report, errs
}
