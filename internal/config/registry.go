package config

import "sync"

// Registry caches loaded configurations by app id for the duration of a
// session. Trees are handed out by pointer and grow as elements are
// inspected.
type Registry struct {
	mu      sync.Mutex
	src     Source
	entries map[string]*DesktopConfig
}

// NewRegistry creates a registry reading from src.
func NewRegistry(src Source) *Registry {
	return &Registry{
		src:     src,
		entries: make(map[string]*DesktopConfig),
	}
}

// Source returns the source the registry reads from.
func (r *Registry) Source() Source { return r.src }

// Get returns the cached configuration for appID, loading it on first use.
func (r *Registry) Get(appID string) (*DesktopConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cfg, ok := r.entries[appID]; ok {
		return cfg, nil
	}
	cfg, err := Load(r.src, appID)
	if err != nil {
		return nil, err
	}
	r.entries[appID] = cfg
	return cfg, nil
}

// Invalidate drops the cached configuration for appID.
func (r *Registry) Invalidate(appID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, appID)
}
