package backend

import (
	"sync"

	"github.com/tilescape/tilescape"
)

// Factory creates a new backend instance for the given configuration.
type Factory func(cfg tilescape.Config) tilescape.Backend

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
	// Priority order for backend selection (first available wins).
	// Native > Software: native is faster when present, software is
	// the always-available fallback.
	priority = []string{Native, Software}
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it is replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns the registered backend names.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	return names
}

// IsRegistered checks whether a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// Get returns a new backend instance by name.
// Returns nil if the backend is not registered.
func Get(name string, cfg tilescape.Config) tilescape.Backend {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()
	if !ok {
		return nil
	}
	return factory(cfg)
}

// candidates returns backend names in selection order: the preferred
// name first when set, then the priority list, skipping duplicates and
// unregistered names.
func candidates(preferred string) []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	var names []string
	seen := make(map[string]bool)
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		if _, ok := factories[name]; !ok {
			return
		}
		seen[name] = true
		names = append(names, name)
	}
	add(preferred)
	for _, name := range priority {
		add(name)
	}
	return names
}
