package mbtiles

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriter_New(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.mbtiles")

	metadata := DefaultMetadata("fbm", 42, [4]float64{-10, -10, 10, 10}, 0, 6)

	w, err := New(dbPath, metadata)
	if err != nil {
		t.Fatalf("Failed to create writer: %v", err)
	}
	defer w.Close()

	// Verify database file exists
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatal("Database file was not created")
	}

	// Verify schema exists
	var count int
	err = w.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='tiles'").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query schema: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected tiles table to exist, got count=%d", count)
	}

	// Verify metadata was inserted
	err = w.db.QueryRow("SELECT COUNT(*) FROM metadata").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query metadata: %v", err)
	}
	if count == 0 {
		t.Error("Expected metadata to be inserted")
	}
}

func TestWriter_WriteTile(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.mbtiles")

	w, err := New(dbPath, Metadata{Name: "Test", Format: "png"})
	if err != nil {
		t.Fatalf("Failed to create writer: %v", err)
	}
	defer w.Close()

	pngData := []byte("fake png data")

	err = w.WriteTile(6, 31, 22, pngData)
	if err != nil {
		t.Fatalf("Failed to write tile: %v", err)
	}

	// Flush to ensure it's written
	err = w.Flush()
	if err != nil {
		t.Fatalf("Failed to flush: %v", err)
	}

	var count int
	err = w.db.QueryRow("SELECT COUNT(*) FROM tiles").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query tiles: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 tile, got %d", count)
	}

	// Verify TMS coordinate conversion
	tmsY := (1 << 6) - 1 - 22
	var tileData []byte
	err = w.db.QueryRow(
		"SELECT tile_data FROM tiles WHERE zoom_level=? AND tile_column=? AND tile_row=?",
		6, 31, tmsY,
	).Scan(&tileData)
	if err != nil {
		t.Fatalf("Failed to find tile at TMS row %d: %v", tmsY, err)
	}

	// Stored data should be gzip-compressed, not the raw bytes
	decompressed, err := gzipDecompress(tileData)
	if err != nil {
		t.Fatalf("Failed to decompress stored tile: %v", err)
	}
	if string(decompressed) != string(pngData) {
		t.Errorf("Stored tile data mismatch: got %q, want %q", decompressed, pngData)
	}
}

func TestWriter_BatchFlush(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.mbtiles")

	w, err := New(dbPath, Metadata{Name: "Test", Format: "png"})
	if err != nil {
		t.Fatalf("Failed to create writer: %v", err)
	}
	defer w.Close()

	// Write one more tile than the batch size; the batch should
	// auto-flush once and hold the remainder.
	for i := 0; i <= DefaultBatchSize; i++ {
		if err := w.WriteTile(10, i, 0, []byte("tile")); err != nil {
			t.Fatalf("Failed to write tile %d: %v", i, err)
		}
	}

	var count int
	err = w.db.QueryRow("SELECT COUNT(*) FROM tiles").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query tiles: %v", err)
	}
	if count != DefaultBatchSize {
		t.Errorf("Expected %d tiles after auto-flush, got %d", DefaultBatchSize, count)
	}

	if err := w.Flush(); err != nil {
		t.Fatalf("Failed to flush: %v", err)
	}

	err = w.db.QueryRow("SELECT COUNT(*) FROM tiles").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query tiles: %v", err)
	}
	if count != DefaultBatchSize+1 {
		t.Errorf("Expected %d tiles after explicit flush, got %d", DefaultBatchSize+1, count)
	}
}

func TestWriter_OverwriteTile(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.mbtiles")

	w, err := New(dbPath, Metadata{Name: "Test", Format: "png"})
	if err != nil {
		t.Fatalf("Failed to create writer: %v", err)
	}
	defer w.Close()

	if err := w.WriteTile(4, 7, 5, []byte("first")); err != nil {
		t.Fatalf("Failed to write tile: %v", err)
	}
	if err := w.WriteTile(4, 7, 5, []byte("second")); err != nil {
		t.Fatalf("Failed to rewrite tile: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Failed to flush: %v", err)
	}

	var count int
	err = w.db.QueryRow("SELECT COUNT(*) FROM tiles").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query tiles: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 tile after overwrite, got %d", count)
	}
}

func TestMetadata_ToMap(t *testing.T) {
	meta := DefaultMetadata("worley", 7, [4]float64{-1, -2, 3, 4}, 2, 8)

	m := meta.ToMap()

	if m["name"] != "noiseforge" {
		t.Errorf("Expected name 'noiseforge', got %q", m["name"])
	}
	if m["noise_kind"] != "worley" {
		t.Errorf("Expected noise_kind 'worley', got %q", m["noise_kind"])
	}
	if m["noise_seed"] != "7" {
		t.Errorf("Expected noise_seed '7', got %q", m["noise_seed"])
	}
	if m["minzoom"] != "2" || m["maxzoom"] != "8" {
		t.Errorf("Unexpected zoom range: %q..%q", m["minzoom"], m["maxzoom"])
	}
	if m["bounds"] != "-1.000000,-2.000000,3.000000,4.000000" {
		t.Errorf("Unexpected bounds: %q", m["bounds"])
	}
	if m["center"] != "1.000000,1.000000,2" {
		t.Errorf("Unexpected center: %q", m["center"])
	}
}

func TestMetadata_ToMap_OmitsEmpty(t *testing.T) {
	m := Metadata{Name: "minimal"}.ToMap()

	if len(m) != 1 {
		t.Errorf("Expected only name key, got %v", m)
	}
	if _, ok := m["noise_seed"]; ok {
		t.Error("Seed should be omitted when kind is empty")
	}
}
