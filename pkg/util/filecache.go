// FileCache gives read access to workspace files through memory-mapped
// regions that are re-mapped when the file changes on disk.
//
// **Use Cases:**
//  1. Config scanning: tailwind.config files are re-read on every save; an
//     unchanged file is served from its existing mapping.
//  2. Batch fixing: source files are read once per run, in parallel.
//
// **Staleness:**
//   - Each mapping remembers the size and modification time it was made from
//   - Read() stats the file first and re-maps when either changed
//   - Invalidate() drops a mapping eagerly (e.g. before the file is rewritten)
package util

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/edsrzf/mmap-go"
)

// FileCache reads files through cached memory mappings.
//
// Thread-safe: all methods may be called concurrently.
type FileCache interface {
	// Read returns a private copy of the file's current content.
	//
	// The copy is never backed by the mapping, so callers may keep or modify
	// it after the file changes or the cache is closed.
	Read(filePath string) ([]byte, error)

	// Invalidate unmaps filePath if it is cached.
	Invalidate(filePath string)

	// Size returns the number of cached mappings.
	Size() int

	// Stats returns cache metrics.
	Stats() FileCacheStats

	// Close unmaps everything. The cache may not be used afterwards.
	Close() error
}

// FileCacheConfig controls FileCache behavior.
type FileCacheConfig struct {
	// MaxFiles bounds the number of cached mappings. When reached, further
	// files are read with os.ReadFile and not cached. 0 means unlimited.
	MaxFiles int

	// Logger for warnings. If nil, uses slog.Default().
	Logger *slog.Logger
}

// DefaultFileCacheConfig returns defaults sized for one workspace.
func DefaultFileCacheConfig() *FileCacheConfig {
	return &FileCacheConfig{
		MaxFiles: 4096,
	}
}

// FileCacheStats tracks cache activity.
type FileCacheStats struct {
	FilesCached  int
	CacheHits    int64
	CacheMisses  int64
	Remaps       int64
	MmapFailures int64
}

// mappedFile is one cached mapping.
type mappedFile struct {
	data    mmap.MMap
	file    *os.File
	size    int64
	modTime time.Time
}

func (mf *mappedFile) release() error {
	var errs []error
	if mf.data != nil {
		if err := mf.data.Unmap(); err != nil {
			errs = append(errs, fmt.Errorf("unmap: %w", err))
		}
	}
	if mf.file != nil {
		if err := mf.file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close: %w", err))
		}
	}
	return errors.Join(errs...)
}

type fileCacheImpl struct {
	config *FileCacheConfig
	logger *slog.Logger

	mu    sync.Mutex
	files map[string]*mappedFile

	hits         atomic.Int64
	misses       atomic.Int64
	remaps       atomic.Int64
	mmapFailures atomic.Int64
}

// NewFileCache creates a FileCache. If config is nil, uses DefaultFileCacheConfig().
func NewFileCache(config *FileCacheConfig) FileCache {
	if config == nil {
		config = DefaultFileCacheConfig()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &fileCacheImpl{
		config: config,
		logger: logger,
		files:  make(map[string]*mappedFile),
	}
}

func (fc *fileCacheImpl) Read(filePath string) ([]byte, error) {
	stat, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file %q: %w", filePath, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%q is a directory", filePath)
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()

	if mf, ok := fc.files[filePath]; ok {
		if mf.size == stat.Size() && mf.modTime.Equal(stat.ModTime()) {
			fc.hits.Add(1)
			return bytes.Clone(mf.data), nil
		}
		fc.remaps.Add(1)
		fc.dropLocked(filePath, mf)
	}
	fc.misses.Add(1)

	// Empty files cannot be mapped; nothing to cache either.
	if stat.Size() == 0 {
		return []byte{}, nil
	}

	if fc.config.MaxFiles > 0 && len(fc.files) >= fc.config.MaxFiles {
		return os.ReadFile(filePath)
	}

	mf, err := fc.mapFile(filePath)
	if err != nil {
		fc.mmapFailures.Add(1)
		fc.logger.Warn("mmap failed, reading file directly", "file", filePath, "error", err)
		data, readErr := os.ReadFile(filePath)
		if readErr != nil {
			return nil, fmt.Errorf("failed to read file %q: %w", filePath, readErr)
		}
		return data, nil
	}

	fc.files[filePath] = mf
	return bytes.Clone(mf.data), nil
}

// mapFile opens and maps filePath read-only.
func (fc *fileCacheImpl) mapFile(filePath string) (*mappedFile, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	data, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		file.Close()
		return nil, err
	}
	return &mappedFile{
		data:    data,
		file:    file,
		size:    stat.Size(),
		modTime: stat.ModTime(),
	}, nil
}

// dropLocked releases a mapping. Must be called with mu held.
func (fc *fileCacheImpl) dropLocked(filePath string, mf *mappedFile) {
	delete(fc.files, filePath)
	if err := mf.release(); err != nil {
		fc.logger.Warn("failed to release mapping", "file", filePath, "error", err)
	}
}

func (fc *fileCacheImpl) Invalidate(filePath string) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	if mf, ok := fc.files[filePath]; ok {
		fc.dropLocked(filePath, mf)
	}
}

func (fc *fileCacheImpl) Size() int {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return len(fc.files)
}

func (fc *fileCacheImpl) Stats() FileCacheStats {
	return FileCacheStats{
		FilesCached:  fc.Size(),
		CacheHits:    fc.hits.Load(),
		CacheMisses:  fc.misses.Load(),
		Remaps:       fc.remaps.Load(),
		MmapFailures: fc.mmapFailures.Load(),
	}
}

func (fc *fileCacheImpl) Close() error {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	var errs []error
	for path, mf := range fc.files {
		if err := mf.release(); err != nil {
			errs = append(errs, fmt.Errorf("%q: %w", path, err))
		}
	}
	fc.files = make(map[string]*mappedFile)

	fc.logger.Debug("FileCache closed",
		"cache_hits", fc.hits.Load(),
		"cache_misses", fc.misses.Load(),
		"remaps", fc.remaps.Load())

	return errors.Join(errs...)
}
