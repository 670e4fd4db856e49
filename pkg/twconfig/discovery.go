package twconfig

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/gnana997/twbracket/pkg/util"
)

// DefaultConfigFileNames are looked up in each workspace folder, in order.
var DefaultConfigFileNames = []string{"tailwind.config.js", "tailwind.config.ts"}

// ScanResult describes the outcome of one workspace scan.
type ScanResult struct {
	// Path is the config file the overrides came from, "" when none was usable.
	Path string `json:"path"`
	// Entries is the number of spacing overrides now in effect.
	Entries int `json:"entries"`
}

// Scanner locates the config file of a workspace and loads its spacing
// overrides into an Overrides cache.
//
// Scans are serialized; the overrides cache is the only state they write.
type Scanner struct {
	overrides *Overrides
	files     util.FileCache
	names     []string
	logger    *slog.Logger

	mu sync.Mutex
}

// NewScanner creates a scanner writing into overrides. names defaults to
// DefaultConfigFileNames and files to a fresh FileCache when nil.
func NewScanner(overrides *Overrides, files util.FileCache, names []string, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	if files == nil {
		files = util.NewFileCache(&util.FileCacheConfig{MaxFiles: 16, Logger: logger})
	}
	if len(names) == 0 {
		names = DefaultConfigFileNames
	}
	return &Scanner{
		overrides: overrides,
		files:     files,
		names:     slices.Clone(names),
		logger:    logger,
	}
}

// Overrides returns the cache the scanner writes to.
func (s *Scanner) Overrides() *Overrides {
	return s.overrides
}

// IsConfigFile reports whether path names one of the watched config files.
func (s *Scanner) IsConfigFile(path string) bool {
	return slices.Contains(s.names, filepath.Base(path))
}

// Scan resets the overrides and loads them from the first readable config
// file. Folders are visited in order and, within a folder, file names in
// order; the scan stops at the first file that could be read. Read failures
// are logged and skipped, never returned.
func (s *Scanner) Scan(folders []string) ScanResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.overrides.Reset()

	if len(folders) == 0 {
		s.logger.Debug("no workspace folders to scan")
		return ScanResult{}
	}

	for _, folder := range folders {
		for _, name := range s.names {
			path := filepath.Join(folder, name)
			if _, err := os.Stat(path); err != nil {
				if !errors.Is(err, fs.ErrNotExist) {
					s.logger.Warn("cannot stat tailwind config", "path", path, "error", err)
				}
				continue
			}

			content, err := s.files.Read(path)
			if err != nil {
				s.logger.Warn("failed to read tailwind config", "path", path, "error", err)
				continue
			}

			entries := ExtractOverrides(string(content))
			s.overrides.Replace(entries, path)

			s.logger.Info("tailwind config scanned", "path", path, "entries", len(entries))
			return ScanResult{Path: path, Entries: len(entries)}
		}
	}

	s.logger.Info("no tailwind config found", "folders", len(folders))
	return ScanResult{}
}
