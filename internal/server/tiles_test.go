package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/forgeworks/noiseforge/internal/mbtiles"
	"github.com/forgeworks/noiseforge/noise"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, cfg TileServerConfig) *TileServer {
	t.Helper()
	if cfg.Kind == "" {
		cfg.Kind = "fbm"
	}
	if cfg.Options == (noise.Options{}) {
		cfg.Options = noise.DefaultOptions()
	}
	if cfg.BaseTileSize == 0 {
		cfg.BaseTileSize = 64
	}
	srv, err := NewTileServer(cfg, testLogger())
	if err != nil {
		t.Fatalf("Failed to create tile server: %v", err)
	}
	return srv
}

func TestParseTilePath(t *testing.T) {
	t.Run("base tile", func(t *testing.T) {
		coords, suffix, ok := parseTilePath("/tiles/z6_x31_y22.png")
		if !ok {
			t.Fatalf("expected ok")
		}
		if suffix != "" {
			t.Fatalf("expected empty suffix, got %q", suffix)
		}
		if coords.String() != "z6_x31_y22" {
			t.Fatalf("unexpected coords: %s", coords.String())
		}
	})

	t.Run("hidpi tile", func(t *testing.T) {
		coords, suffix, ok := parseTilePath("/tiles/z5_x1_y2@2x.png")
		if !ok {
			t.Fatalf("expected ok")
		}
		if suffix != "@2x" {
			t.Fatalf("expected @2x suffix, got %q", suffix)
		}
		if coords.String() != "z5_x1_y2" {
			t.Fatalf("unexpected coords: %s", coords.String())
		}
	})

	t.Run("reject non-png", func(t *testing.T) {
		_, _, ok := parseTilePath("/tiles/z5_x1_y2.jpg")
		if ok {
			t.Fatalf("expected not ok")
		}
	})

	t.Run("reject other prefix", func(t *testing.T) {
		_, _, ok := parseTilePath("/demo/z5_x1_y2.png")
		if ok {
			t.Fatalf("expected not ok")
		}
	})
}

func TestNewTileServer_UnknownKind(t *testing.T) {
	_, err := NewTileServer(TileServerConfig{Kind: "perlinx"}, testLogger())
	if err == nil {
		t.Fatal("Expected error for unknown kind")
	}
}

func TestTileServer_ServeTile(t *testing.T) {
	srv := newTestServer(t, TileServerConfig{Seed: 42})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tiles/z3_x4_y2.png", nil)
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png content type, got %q", ct)
	}

	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("Response is not a valid PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 64 || bounds.Dy() != 64 {
		t.Errorf("Expected 64x64 tile, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestTileServer_HiDPITile(t *testing.T) {
	srv := newTestServer(t, TileServerConfig{Seed: 42})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tiles/z3_x4_y2@2x.png", nil)
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("Response is not a valid PNG: %v", err)
	}
	if img.Bounds().Dx() != 128 {
		t.Errorf("Expected 128px @2x tile, got %d", img.Bounds().Dx())
	}
}

func TestTileServer_CacheHit(t *testing.T) {
	srv := newTestServer(t, TileServerConfig{Seed: 7})

	fetch := func() []byte {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/tiles/z2_x1_y1.png", nil)
		srv.Handler().ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		return rec.Body.Bytes()
	}

	first := fetch()
	second := fetch()

	if srv.totalRendered.Load() != 1 {
		t.Errorf("Expected 1 render with cache enabled, got %d", srv.totalRendered.Load())
	}
	if !bytes.Equal(first, second) {
		t.Error("Cached tile differs from rendered tile")
	}
}

func TestTileServer_CacheDisabled(t *testing.T) {
	srv := newTestServer(t, TileServerConfig{Seed: 7, DisableCache: true})

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/tiles/z2_x1_y1.png", nil)
		srv.Handler().ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
	}

	if srv.totalRendered.Load() != 2 {
		t.Errorf("Expected 2 renders with cache disabled, got %d", srv.totalRendered.Load())
	}
}

func TestTileServer_NotFound(t *testing.T) {
	srv := newTestServer(t, TileServerConfig{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tiles/not-a-tile.png", nil)
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for malformed tile path, got %d", rec.Code)
	}
}

func TestTileServer_Status(t *testing.T) {
	srv := newTestServer(t, TileServerConfig{Kind: "worley", Seed: 99})

	// Render one tile so the counters move
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tiles/z1_x0_y0.png", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.StatusHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 from status, got %d", rec.Code)
	}

	var status TileStatus
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("Failed to decode status JSON: %v", err)
	}
	if status.Kind != "worley" {
		t.Errorf("Expected kind 'worley', got %q", status.Kind)
	}
	if status.Seed != 99 {
		t.Errorf("Expected seed 99, got %d", status.Seed)
	}
	if status.TotalRendered != 1 {
		t.Errorf("Expected 1 rendered, got %d", status.TotalRendered)
	}
	if status.CachedTiles != 1 {
		t.Errorf("Expected 1 cached tile, got %d", status.CachedTiles)
	}
}

func TestMBTilesHandler_ServeTile(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "noise.mbtiles")

	w, err := mbtiles.New(dbPath, mbtiles.DefaultMetadata("fbm", 1, [4]float64{-10, -10, 10, 10}, 0, 4))
	if err != nil {
		t.Fatalf("Failed to create mbtiles writer: %v", err)
	}

	pngData := []byte("not really a png, but served verbatim")
	if err := w.WriteTile(3, 4, 2, pngData); err != nil {
		t.Fatalf("Failed to write tile: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close writer: %v", err)
	}

	h, err := NewMBTilesHandler(MBTilesConfig{MBTilesPath: dbPath}, testLogger())
	if err != nil {
		t.Fatalf("Failed to create handler: %v", err)
	}
	defer h.Close()

	rec := httptest.NewRecorder()
	h.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tiles/z3_x4_y2.png", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !bytes.Equal(rec.Body.Bytes(), pngData) {
		t.Error("Served tile data does not match written data")
	}

	// Missing tile
	rec = httptest.NewRecorder()
	h.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tiles/z3_x0_y0.png", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for missing tile, got %d", rec.Code)
	}

	meta, err := h.Metadata()
	if err != nil {
		t.Fatalf("Failed to read metadata: %v", err)
	}
	if meta.Kind != "fbm" {
		t.Errorf("Expected kind 'fbm' in metadata, got %q", meta.Kind)
	}
}
