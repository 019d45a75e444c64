// Package server provides HTTP serving of noise tiles, either rendered
// on demand or read from an exported MBTiles database.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/forgeworks/noiseforge/internal/render"
	"github.com/forgeworks/noiseforge/internal/tile"
	"github.com/forgeworks/noiseforge/noise"
)

// TileServerConfig configures the on-demand tile server.
type TileServerConfig struct {
	Kind         string
	Options      noise.Options
	Seed         int64
	Mode         render.Mode
	CacheControl string
	BaseTileSize int
	Supersample  int
	Blur         float32
	// MaxConcurrentRenders bounds the number of tiles rendered at once.
	MaxConcurrentRenders int
	RenderTimeout        time.Duration
	// DisableCache skips the in-memory tile cache so every request renders.
	DisableCache bool
}

// TileServer renders noise tiles on demand and caches the encoded PNGs
// in memory. Rendering is deterministic, so a cached tile never goes stale.
type TileServer struct {
	logger *slog.Logger
	sem    chan struct{}
	cache  sync.Map // map[string][]byte - tile key -> PNG data
	locks  sync.Map // map[string]*sync.Mutex - tile key -> render lock
	cfg    TileServerConfig

	activeRenders  atomic.Int32
	totalRendered  atomic.Int64
	totalFailed    atomic.Int64
	currentRenders sync.Map // map[string]time.Time - tile key -> start time
}

// TileStatus represents the current status of the tile rendering system.
type TileStatus struct {
	Kind          string   `json:"kind"`
	Seed          int64    `json:"seed"`
	ActiveRenders int      `json:"active_renders"`
	TotalRendered int64    `json:"total_rendered"`
	TotalFailed   int64    `json:"total_failed"`
	CurrentTiles  []string `json:"current_tiles"`
	MaxConcurrent int      `json:"max_concurrent"`
	CachedTiles   int      `json:"cached_tiles"`
}

// NewTileServer creates an on-demand tile server for the given noise
// configuration. The kind is validated up front so a bad configuration
// fails at startup rather than on the first request.
func NewTileServer(cfg TileServerConfig, logger *slog.Logger) (*TileServer, error) {
	if cfg.Kind == "" {
		cfg.Kind = "fbm"
	}
	if _, err := noise.New(cfg.Kind, cfg.Options); err != nil {
		return nil, err
	}
	if cfg.BaseTileSize <= 0 {
		cfg.BaseTileSize = 256
	}
	if cfg.MaxConcurrentRenders <= 0 {
		cfg.MaxConcurrentRenders = 4
	}
	if cfg.RenderTimeout <= 0 {
		cfg.RenderTimeout = 30 * time.Second
	}
	if cfg.CacheControl == "" {
		cfg.CacheControl = "public, max-age=3600"
	}

	return &TileServer{
		cfg:    cfg,
		logger: logger,
		sem:    make(chan struct{}, cfg.MaxConcurrentRenders),
	}, nil
}

// Status returns the current status of the tile rendering system.
func (t *TileServer) Status() TileStatus {
	var currentTiles []string
	t.currentRenders.Range(func(key, _ any) bool {
		currentTiles = append(currentTiles, key.(string))
		return true
	})

	cached := 0
	t.cache.Range(func(_, _ any) bool {
		cached++
		return true
	})

	return TileStatus{
		Kind:          t.cfg.Kind,
		Seed:          t.cfg.Seed,
		ActiveRenders: int(t.activeRenders.Load()),
		TotalRendered: t.totalRendered.Load(),
		TotalFailed:   t.totalFailed.Load(),
		CurrentTiles:  currentTiles,
		MaxConcurrent: t.cfg.MaxConcurrentRenders,
		CachedTiles:   cached,
	}
}

// StatusHandler returns an HTTP handler for the status endpoint (JSON).
func (t *TileServer) StatusHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Cache-Control", "no-store")

		if err := json.NewEncoder(w).Encode(t.Status()); err != nil {
			t.log().Error("failed to encode status", "error", err)
			http.Error(w, "failed to encode status", http.StatusInternalServerError)
			return
		}
	})
}

// Handler returns the tile-serving HTTP handler.
func (t *TileServer) Handler() http.Handler {
	return http.HandlerFunc(t.serveTile)
}

func (t *TileServer) serveTile(w http.ResponseWriter, r *http.Request) {
	// Allow browser-based viewers to request tiles directly.
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	coords, suffix, ok := parseTilePath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Cache-Control", t.cfg.CacheControl)

	tileKey := coords.String() + suffix

	if !t.cfg.DisableCache {
		if data, ok := t.cache.Load(tileKey); ok {
			t.writePNG(w, data.([]byte))
			return
		}
	}

	// Serialize renders of the same tile so concurrent requests don't
	// duplicate work.
	mu := t.getLock(tileKey)
	mu.Lock()
	defer mu.Unlock()

	if !t.cfg.DisableCache {
		if data, ok := t.cache.Load(tileKey); ok {
			t.writePNG(w, data.([]byte))
			return
		}
	}

	select {
	case t.sem <- struct{}{}:
		defer func() { <-t.sem }()
	case <-r.Context().Done():
		http.Error(w, "request cancelled", http.StatusRequestTimeout)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), t.cfg.RenderTimeout)
	defer cancel()

	start := time.Now()
	t.activeRenders.Add(1)
	t.currentRenders.Store(tileKey, start)

	data, err := t.renderTile(ctx, coords, suffix)

	t.activeRenders.Add(-1)
	t.currentRenders.Delete(tileKey)

	if err != nil {
		t.totalFailed.Add(1)
		t.log().Error("failed to render tile", "coords", coords.String(), "suffix", suffix, "error", err)
		http.Error(w, fmt.Sprintf("failed to render tile %s: %v", tileKey, err), http.StatusInternalServerError)
		return
	}

	t.totalRendered.Add(1)
	t.log().Info("tile rendered on-demand",
		"coords", coords.String(), "suffix", suffix, "ms", time.Since(start).Milliseconds())

	if !t.cfg.DisableCache {
		t.cache.Store(tileKey, data)
	}

	t.writePNG(w, data)
}

// RenderTile renders the tile at the given coordinates and returns the
// encoded PNG. It satisfies worker.Renderer, so the same server config
// drives batch exports.
func (t *TileServer) RenderTile(ctx context.Context, coords tile.Coords) ([]byte, error) {
	return t.renderTile(ctx, coords, "")
}

func (t *TileServer) renderTile(ctx context.Context, coords tile.Coords, suffix string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	size := tileSizeForSuffix(t.cfg.BaseTileSize, suffix)
	img, err := render.Render(render.Params{
		Kind:        t.cfg.Kind,
		Options:     t.cfg.Options,
		Seed:        t.cfg.Seed,
		Width:       size,
		Height:      size,
		Window:      coords.Window(),
		Mode:        t.cfg.Mode,
		Supersample: t.cfg.Supersample,
		Blur:        t.cfg.Blur,
	})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := render.EncodePNG(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (t *TileServer) writePNG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(data); err != nil {
		t.log().Error("failed to write response", "error", err)
	}
}

func (t *TileServer) getLock(key string) *sync.Mutex {
	if v, ok := t.locks.Load(key); ok {
		return v.(*sync.Mutex)
	}
	mu := &sync.Mutex{}
	actual, _ := t.locks.LoadOrStore(key, mu)
	return actual.(*sync.Mutex)
}

func (t *TileServer) log() *slog.Logger {
	if t.logger != nil {
		return t.logger
	}
	return slog.Default()
}

// parseTilePath parses a tile path like /tiles/z6_x31_y22.png or
// /tiles/z6_x31_y22@2x.png. Returns tile coordinates, the size suffix,
// and a success flag.
func parseTilePath(requestPath string) (tile.Coords, string, bool) {
	if !strings.HasPrefix(requestPath, "/tiles/") {
		return tile.Coords{}, "", false
	}
	base := path.Base(requestPath)
	if !strings.HasSuffix(base, ".png") {
		return tile.Coords{}, "", false
	}
	name := strings.TrimSuffix(base, ".png")
	suffix := ""
	if strings.HasSuffix(name, "@2x") {
		suffix = "@2x"
		name = strings.TrimSuffix(name, "@2x")
	}

	coords, err := tile.ParseCoords(name)
	if err != nil {
		return tile.Coords{}, "", false
	}
	return coords, suffix, true
}

func tileSizeForSuffix(base int, suffix string) int {
	if suffix == "@2x" {
		return base * 2
	}
	return base
}
