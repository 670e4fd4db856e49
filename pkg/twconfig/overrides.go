package twconfig

import (
	"maps"
	"sync"
)

// Overrides holds the spacing scale scraped from the active config file.
//
// It is replaced as a whole on every scan; readers never observe a partially
// applied scan, although they may observe the empty state between the reset
// and the replacement.
type Overrides struct {
	mu      sync.RWMutex
	entries map[string]string
	source  string
}

// NewOverrides returns an empty cache.
func NewOverrides() *Overrides {
	return &Overrides{entries: map[string]string{}}
}

// Replace swaps in entries scraped from source. A nil map empties the cache.
func (o *Overrides) Replace(entries map[string]string, source string) {
	next := make(map[string]string, len(entries))
	maps.Copy(next, entries)

	o.mu.Lock()
	o.entries = next
	o.source = source
	o.mu.Unlock()
}

// Reset empties the cache.
func (o *Overrides) Reset() {
	o.Replace(nil, "")
}

// Get returns the length literal for a scale key such as "72".
func (o *Overrides) Get(key string) (string, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	v, ok := o.entries[key]
	return v, ok
}

// Snapshot returns a copy of all entries.
func (o *Overrides) Snapshot() map[string]string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return maps.Clone(o.entries)
}

// Source returns the path of the file the entries came from ("" when none).
func (o *Overrides) Source() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.source
}

// Len returns the number of entries.
func (o *Overrides) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.entries)
}
