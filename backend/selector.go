package backend

import (
	"fmt"
	"sync"

	"github.com/tilescape/tilescape"
)

// Selector is the facade callers render through. It picks a backend by
// preference, falls back down the priority list when initialization
// fails, and reports the switch through the OnBackendChanged callback.
//
// Selector itself implements tilescape.Backend, so a View drives it
// like any single backend.
type Selector struct {
	cfg tilescape.Config

	mu      sync.RWMutex
	active  tilescape.Backend
	changed func(name string)
}

// NewSelector creates a selector with the given configuration.
// No backend is chosen until Initialize.
func NewSelector(cfg tilescape.Config) *Selector {
	return &Selector{cfg: cfg}
}

// OnBackendChanged registers a callback fired whenever the active
// backend changes, including the first selection and fallback after a
// failed preferred backend.
func (s *Selector) OnBackendChanged(fn func(name string)) {
	s.mu.Lock()
	s.changed = fn
	s.mu.Unlock()
}

// Initialize selects and initializes a backend for the document. The
// preferred backend is tried first; each failure falls through to the
// next candidate. Re-initializing with a new document disposes the
// previous backend before the new one is chosen.
func (s *Selector) Initialize(src tilescape.Source, rootID string) error {
	if !src.Valid() {
		return fmt.Errorf("backend: initialize: empty source")
	}

	s.mu.Lock()
	if s.active != nil {
		s.active.Dispose()
		s.active = nil
	}
	preferred := s.cfg.PreferredBackend
	s.mu.Unlock()

	for _, name := range candidates(preferred) {
		b := Get(name, s.cfg)
		if b == nil {
			continue
		}
		if err := b.Initialize(src, rootID); err != nil {
			tilescape.Logger().Warn("backend init failed, falling back",
				"backend", name, "error", err)
			b.Dispose()
			continue
		}
		s.mu.Lock()
		s.active = b
		fn := s.changed
		s.mu.Unlock()

		tilescape.Logger().Info("backend selected", "backend", name)
		if fn != nil {
			fn(name)
		}
		return nil
	}
	return ErrBackendNotAvailable
}

// Name returns the active backend's name, or "none" before Initialize.
func (s *Selector) Name() string {
	if b := s.backend(); b != nil {
		return b.Name()
	}
	return "none"
}

// IsReady reports whether a backend is initialized.
func (s *Selector) IsReady() bool {
	b := s.backend()
	return b != nil && b.IsReady()
}

// RenderTile renders through the active backend. Calling it before a
// successful Initialize is a caller bug and fails fast.
func (s *Selector) RenderTile(coord tilescape.TileCoord) (*tilescape.RenderedTile, error) {
	b := s.backend()
	if b == nil {
		return nil, ErrNotInitialized
	}
	return b.RenderTile(coord)
}

// VisibleTiles delegates to the active backend. Before Initialize it
// falls back to the package-level tile math.
func (s *Selector) VisibleTiles(v tilescape.Viewport) []tilescape.TileCoord {
	if b := s.backend(); b != nil {
		return b.VisibleTiles(v)
	}
	return tilescape.VisibleTiles(v, 0)
}

// InvalidateTiles delegates to the active backend.
func (s *Selector) InvalidateTiles(nodeIDs []string) {
	if b := s.backend(); b != nil {
		b.InvalidateTiles(nodeIDs)
	}
}

// ClearCache delegates to the active backend.
func (s *Selector) ClearCache() {
	if b := s.backend(); b != nil {
		b.ClearCache()
	}
}

// Stats returns the active backend's stats, or zeros before Initialize.
func (s *Selector) Stats() tilescape.Stats {
	if b := s.backend(); b != nil {
		return b.Stats()
	}
	return tilescape.Stats{}
}

// Dispose releases the active backend.
func (s *Selector) Dispose() {
	s.mu.Lock()
	b := s.active
	s.active = nil
	s.mu.Unlock()
	if b != nil {
		b.Dispose()
	}
}

func (s *Selector) backend() tilescape.Backend {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}
