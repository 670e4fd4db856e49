package twconfig

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchOptions configures a Watcher.
type WatchOptions struct {
	// DebounceMs groups bursts of events for the same file. Default 200.
	DebounceMs int

	// OnScan, if set, is called after every rescan the watcher triggers.
	OnScan func(ScanResult)
}

// Watcher rescans the workspace whenever a config file in one of the
// workspace folders is created, written, removed or renamed.
//
// Only folder roots are watched; config files are looked up at the root of
// each folder and nowhere else.
//
// **Usage:**
//
//	w, err := NewWatcher(scanner, WatchOptions{}, logger)
//	if err != nil {
//	    return err
//	}
//	defer w.Stop()
//	err = w.Start(folders)
type Watcher struct {
	watcher *fsnotify.Watcher
	scanner *Scanner
	logger  *slog.Logger
	options WatchOptions

	// Debouncing
	debounceTimers map[string]*time.Timer
	debounceMu     sync.Mutex

	// Lifecycle and folder set
	folders  []string
	stopChan chan struct{}
	started  bool
	stopped  bool
	mu       sync.Mutex
}

// NewWatcher creates a watcher driving scanner.
func NewWatcher(scanner *Scanner, options WatchOptions, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if options.DebounceMs <= 0 {
		options.DebounceMs = 200
	}
	return &Watcher{
		watcher:        fsw,
		scanner:        scanner,
		logger:         logger,
		options:        options,
		debounceTimers: make(map[string]*time.Timer),
		stopChan:       make(chan struct{}),
	}, nil
}

// Start watches folders and begins the event loop. It does not scan; callers
// scan once themselves so the initial result is available synchronously.
func (w *Watcher) Start(folders []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return errors.New("watcher already stopped")
	}
	if w.started {
		return errors.New("watcher already started")
	}

	if err := w.setFoldersLocked(folders); err != nil {
		return err
	}

	w.started = true
	go w.eventLoop()

	w.logger.Info("config watcher started", "folders", len(folders))
	return nil
}

// SetFolders replaces the watched folder set. Folders that cannot be watched
// are logged and skipped; the returned error joins those failures.
func (w *Watcher) SetFolders(folders []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return errors.New("watcher already stopped")
	}
	return w.setFoldersLocked(folders)
}

func (w *Watcher) setFoldersLocked(folders []string) error {
	for _, old := range w.folders {
		if !slices.Contains(folders, old) {
			if err := w.watcher.Remove(old); err != nil {
				w.logger.Debug("failed to unwatch folder", "path", old, "error", err)
			}
		}
	}

	var errs []error
	watched := make([]string, 0, len(folders))
	for _, folder := range folders {
		if err := w.watcher.Add(folder); err != nil {
			w.logger.Warn("failed to watch folder", "path", folder, "error", err)
			errs = append(errs, fmt.Errorf("watch %s: %w", folder, err))
			continue
		}
		watched = append(watched, folder)
	}

	// Scans use the full folder list so precedence matches the host's order,
	// even when a folder could not be watched.
	w.folders = slices.Clone(folders)
	w.logger.Debug("watching folders", "count", len(watched))
	return errors.Join(errs...)
}

// Folders returns the current folder set.
func (w *Watcher) Folders() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.folders)
}

// Stop stops the watcher. Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopChan)

	w.debounceMu.Lock()
	for _, timer := range w.debounceTimers {
		timer.Stop()
	}
	w.debounceTimers = make(map[string]*time.Timer)
	w.debounceMu.Unlock()

	err := w.watcher.Close()
	w.logger.Info("config watcher stopped")
	return err
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("config watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !w.scanner.IsConfigFile(event.Name) {
		return
	}
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return
	}

	w.logger.Debug("config file event", "op", event.Op.String(), "file", event.Name)
	w.debounceRescan(event.Name)
}

// debounceRescan schedules a rescan after the debounce delay. Repeated events
// for the same file within the window collapse into one rescan.
func (w *Watcher) debounceRescan(filePath string) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, exists := w.debounceTimers[filePath]; exists {
		timer.Stop()
	}

	w.debounceTimers[filePath] = time.AfterFunc(
		time.Duration(w.options.DebounceMs)*time.Millisecond,
		func() {
			w.debounceMu.Lock()
			delete(w.debounceTimers, filePath)
			w.debounceMu.Unlock()

			w.rescan()
		},
	)
}

func (w *Watcher) rescan() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	folders := slices.Clone(w.folders)
	w.mu.Unlock()

	result := w.scanner.Scan(folders)
	if w.options.OnScan != nil {
		w.options.OnScan(result)
	}
}

// Stats returns watcher statistics.
func (w *Watcher) Stats() WatcherStats {
	w.debounceMu.Lock()
	pending := len(w.debounceTimers)
	w.debounceMu.Unlock()

	w.mu.Lock()
	defer w.mu.Unlock()
	return WatcherStats{
		PendingRescans: pending,
		Folders:        len(w.folders),
		IsRunning:      w.started && !w.stopped,
	}
}

// WatcherStats contains watcher statistics.
type WatcherStats struct {
	PendingRescans int
	Folders        int
	IsRunning      bool
}
