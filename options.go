package tilescape

import "time"

// Default configuration values.
const (
	// DefaultMaxCachedTiles bounds the tile cache.
	DefaultMaxCachedTiles = 256

	// DefaultViewportDebounce is how long viewport changes are
	// coalesced before visible tiles are recomputed.
	DefaultViewportDebounce = 75 * time.Millisecond
)

// Option configures a View or a backend during creation.
//
// Example:
//
//	view := tilescape.NewView(sel,
//	    tilescape.WithMaxCachedTiles(512),
//	    tilescape.WithPreferredBackend("software"))
type Option func(*Config)

// Config holds the resolved configuration. Backends receive it at
// Initialize through the options applied to the owning View.
type Config struct {
	MaxCachedTiles   int
	ViewportDebounce time.Duration
	PreferredBackend string
	ResourceDir      string
	DebugOverlay     bool
	TileSize         int
}

// DefaultConfig returns the configuration used when no options are given.
func DefaultConfig() Config {
	return Config{
		MaxCachedTiles:   DefaultMaxCachedTiles,
		ViewportDebounce: DefaultViewportDebounce,
		TileSize:         BaseTileSize,
	}
}

// ApplyOptions resolves opts over the defaults.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithMaxCachedTiles bounds the number of rendered tiles kept in
// memory. Values <= 0 restore the default.
func WithMaxCachedTiles(n int) Option {
	return func(c *Config) {
		if n <= 0 {
			n = DefaultMaxCachedTiles
		}
		c.MaxCachedTiles = n
	}
}

// WithViewportDebounce sets how long viewport changes are coalesced
// before tiles are requested. Zero disables debouncing; useful in
// tests.
func WithViewportDebounce(d time.Duration) Option {
	return func(c *Config) {
		if d < 0 {
			d = 0
		}
		c.ViewportDebounce = d
	}
}

// WithPreferredBackend names the backend tried first. When its
// initialization fails the selector falls back by priority.
func WithPreferredBackend(name string) Option {
	return func(c *Config) {
		c.PreferredBackend = name
	}
}

// WithResourceDir sets the directory image content hashes are resolved
// against before falling back to the document's blob table.
func WithResourceDir(dir string) Option {
	return func(c *Config) {
		c.ResourceDir = dir
	}
}

// WithDebugOverlay draws the tile grid and coordinate label on top of
// every rendered tile.
func WithDebugOverlay(enabled bool) Option {
	return func(c *Config) {
		c.DebugOverlay = enabled
	}
}

// WithTileSize overrides the base tile edge in pixels. Intended for
// tests; production documents use the default.
func WithTileSize(px int) Option {
	return func(c *Config) {
		if px > 0 {
			c.TileSize = px
		}
	}
}
