package index

import (
	"sync"
	"time"
)

// MemoryIndex holds the current snapshot and swaps it atomically on reload.
// Readers keep using the snapshot they fetched even if a reload happens meanwhile.
type MemoryIndex struct {
	mu         sync.RWMutex
	current    *Snapshot
	lastReload time.Time // Timestamp of last snapshot swap
	reloads    int
}

// NewMemoryIndex creates an empty memory index
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{}
}

// Update replaces the current snapshot
func (idx *MemoryIndex) Update(snap *Snapshot) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.current = snap
	idx.lastReload = time.Now()
	idx.reloads++
}

// Current returns the active snapshot, false before the first load
func (idx *MemoryIndex) Current() (*Snapshot, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.current, idx.current != nil
}

// Fingerprint returns the fingerprint of the active snapshot, "" before the first load
func (idx *MemoryIndex) Fingerprint() string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.current == nil {
		return ""
	}
	return idx.current.Fingerprint
}

// Reloads returns how many snapshots have been installed
func (idx *MemoryIndex) Reloads() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.reloads
}

// GetLastReload returns the timestamp of the last snapshot swap
func (idx *MemoryIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}
