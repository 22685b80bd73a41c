package persona

import (
	"sort"
	"sync"
)

// Entry pairs a persona config with its optional web context. A persona is
// "enhanced" exactly when WebContext is non-nil, so the base and enhanced
// views can never disagree about which ids exist.
type Entry struct {
	Config     Config
	WebContext *WebContext
}

// Enhanced reports whether the entry carries dated web context.
func (e Entry) Enhanced() bool {
	return e.WebContext != nil
}

// Registry maps persona ids to their configuration. It is populated once at
// startup and read-mostly afterwards; registration stays available for test
// scaffolding.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewRegistry returns a registry preloaded with the supplied entries.
func NewRegistry(seed map[string]Entry) *Registry {
	entries := make(map[string]Entry, len(seed))
	for id, entry := range seed {
		entries[id] = entry
	}
	return &Registry{entries: entries}
}

// Register stores a base persona under the given id.
func (r *Registry) Register(id string, cfg Config) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = Entry{Config: cfg}
}

// RegisterEnhanced stores a persona together with its web context.
func (r *Registry) RegisterEnhanced(id string, cfg Config, webContext *WebContext) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = Entry{Config: cfg, WebContext: webContext}
}

// Get looks up a persona by id.
func (r *Registry) Get(id string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[id]
	return entry, ok
}

// IDs returns the sorted list of registered persona ids.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
