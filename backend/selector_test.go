package backend

import (
	"errors"
	"testing"

	"github.com/tilescape/tilescape"
)

// stubBackend is a minimal in-package test backend.
type stubBackend struct {
	name     string
	initErr  error
	ready    bool
	disposed bool
	renders  int
}

func (s *stubBackend) Name() string { return s.name }

func (s *stubBackend) Initialize(src tilescape.Source, rootID string) error {
	if s.initErr != nil {
		return s.initErr
	}
	s.ready = true
	return nil
}

func (s *stubBackend) IsReady() bool { return s.ready }

func (s *stubBackend) RenderTile(coord tilescape.TileCoord) (*tilescape.RenderedTile, error) {
	s.renders++
	return &tilescape.RenderedTile{Coord: coord}, nil
}

func (s *stubBackend) VisibleTiles(v tilescape.Viewport) []tilescape.TileCoord {
	return tilescape.VisibleTiles(v, 0)
}

func (s *stubBackend) InvalidateTiles([]string) {}
func (s *stubBackend) ClearCache()              {}
func (s *stubBackend) Stats() tilescape.Stats   { return tilescape.Stats{} }
func (s *stubBackend) Dispose()                 { s.disposed = true }

// withStubs installs test factories for the native and software slots
// and restores the registry afterwards.
func withStubs(t *testing.T, native, software *stubBackend) {
	t.Helper()
	prevNative, hadNative := factories[Native], IsRegistered(Native)
	prevSoftware, hadSoftware := factories[Software], IsRegistered(Software)

	if native != nil {
		Register(Native, func(tilescape.Config) tilescape.Backend { return native })
	} else {
		Unregister(Native)
	}
	if software != nil {
		Register(Software, func(tilescape.Config) tilescape.Backend { return software })
	} else {
		Unregister(Software)
	}

	t.Cleanup(func() {
		if hadNative {
			Register(Native, prevNative)
		} else {
			Unregister(Native)
		}
		if hadSoftware {
			Register(Software, prevSoftware)
		} else {
			Unregister(Software)
		}
	})
}

func testSource() tilescape.Source {
	doc := tilescape.NewMemDocument("root")
	doc.AddNode("root", map[string]any{"type": "CANVAS"})
	return tilescape.DocumentSource(doc)
}

func TestSelectorFallsBackWhenPreferredFails(t *testing.T) {
	native := &stubBackend{name: Native, initErr: errors.New("no native library")}
	software := &stubBackend{name: Software}
	withStubs(t, native, software)

	sel := NewSelector(tilescape.DefaultConfig())
	var changes []string
	sel.OnBackendChanged(func(name string) { changes = append(changes, name) })

	if err := sel.Initialize(testSource(), "root"); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if sel.Name() != Software {
		t.Errorf("active backend = %q, want software", sel.Name())
	}
	if !native.disposed {
		t.Error("failed candidate was not disposed")
	}
	if len(changes) != 1 || changes[0] != Software {
		t.Errorf("change notifications = %v, want [software]", changes)
	}
}

func TestSelectorHonorsPreference(t *testing.T) {
	native := &stubBackend{name: Native}
	software := &stubBackend{name: Software}
	withStubs(t, native, software)

	cfg := tilescape.DefaultConfig()
	cfg.PreferredBackend = Software
	sel := NewSelector(cfg)

	if err := sel.Initialize(testSource(), "root"); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if sel.Name() != Software {
		t.Errorf("active backend = %q, want the preferred software", sel.Name())
	}
}

func TestSelectorAllCandidatesFail(t *testing.T) {
	native := &stubBackend{name: Native, initErr: errors.New("nope")}
	software := &stubBackend{name: Software, initErr: errors.New("also nope")}
	withStubs(t, native, software)

	sel := NewSelector(tilescape.DefaultConfig())
	if err := sel.Initialize(testSource(), "root"); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("Initialize = %v, want ErrBackendNotAvailable", err)
	}
	if sel.IsReady() {
		t.Error("selector should not be ready")
	}
}

func TestSelectorRejectsInvalidSource(t *testing.T) {
	withStubs(t, nil, &stubBackend{name: Software})
	sel := NewSelector(tilescape.DefaultConfig())
	if err := sel.Initialize(tilescape.Source{}, "root"); err == nil {
		t.Error("empty source should fail")
	}
}

func TestSelectorBeforeInitialize(t *testing.T) {
	withStubs(t, nil, &stubBackend{name: Software})
	sel := NewSelector(tilescape.DefaultConfig())

	if sel.Name() != "none" {
		t.Errorf("Name = %q, want none", sel.Name())
	}
	if _, err := sel.RenderTile(tilescape.TileCoord{}); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("RenderTile = %v, want ErrNotInitialized", err)
	}
	// Tile math still works so callers can paint placeholders.
	vp := tilescape.Viewport{Width: 100, Height: 100, Scale: 1}
	if len(sel.VisibleTiles(vp)) == 0 {
		t.Error("VisibleTiles before init should use the fallback math")
	}
	// The remaining operations are safe no-ops.
	sel.InvalidateTiles([]string{"x"})
	sel.ClearCache()
	sel.Dispose()
}

func TestSelectorReinitializeDisposesPrevious(t *testing.T) {
	first := &stubBackend{name: Software}
	withStubs(t, nil, first)

	sel := NewSelector(tilescape.DefaultConfig())
	if err := sel.Initialize(testSource(), "root"); err != nil {
		t.Fatalf("first Initialize: %v", err)
	}

	second := &stubBackend{name: Software}
	Register(Software, func(tilescape.Config) tilescape.Backend { return second })

	if err := sel.Initialize(testSource(), "root"); err != nil {
		t.Fatalf("second Initialize: %v", err)
	}
	if !first.disposed {
		t.Error("previous backend was not disposed on reinitialize")
	}
	if !second.ready {
		t.Error("new backend not initialized")
	}
}

func TestRegistryCandidates(t *testing.T) {
	withStubs(t, &stubBackend{name: Native}, &stubBackend{name: Software})

	got := candidates("")
	if len(got) != 2 || got[0] != Native || got[1] != Software {
		t.Errorf("candidates = %v, want [native software]", got)
	}

	got = candidates(Software)
	if len(got) != 2 || got[0] != Software {
		t.Errorf("candidates with preference = %v, want software first", got)
	}

	got = candidates("bogus")
	if len(got) != 2 {
		t.Errorf("unregistered preference should be skipped: %v", got)
	}
}

func TestRegistryGet(t *testing.T) {
	withStubs(t, nil, &stubBackend{name: Software})

	if b := Get(Software, tilescape.DefaultConfig()); b == nil {
		t.Error("Get(software) = nil")
	}
	if b := Get("bogus", tilescape.DefaultConfig()); b != nil {
		t.Error("Get(bogus) should be nil")
	}
	if !IsRegistered(Software) || IsRegistered("bogus") {
		t.Error("IsRegistered answers wrong")
	}
}
