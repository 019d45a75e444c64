package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/forgeworks/noiseforge/internal/mbtiles"
	"github.com/forgeworks/noiseforge/internal/server"
	"github.com/forgeworks/noiseforge/internal/tile"
	"github.com/forgeworks/noiseforge/internal/worker"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export noise tiles for a bounding box",
	Long:  `Render noise tiles for a bounding box and zoom range into a folder or an MBTiles database.`,
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("bbox", "", "Bounding box: minLon,minLat,maxLon,maxLat (e.g., \"-10,-10,10,10\")")
	exportCmd.Flags().Int("zoom-min", 1, "Minimum zoom level")
	exportCmd.Flags().Int("zoom-max", 4, "Maximum zoom level")
	exportCmd.Flags().IntP("workers", "w", 0, "Number of parallel workers (default: number of CPUs)")
	exportCmd.Flags().Bool("progress", true, "Show progress bar")
	exportCmd.Flags().Bool("allow-failures", false, "Continue even if some tiles fail")

	exportCmd.Flags().Int("tile-size", 256, "Tile size in pixels")
	exportCmd.Flags().Bool("hidpi", false, "Also export 2x (@2x) tiles alongside the base tiles")
	exportCmd.Flags().String("mode", "gray", "Color mode (gray, terrain, regions)")
	exportCmd.Flags().Int("supersample", 1, "Supersampling factor (1 disables)")
	exportCmd.Flags().Float32("blur", 0, "Gaussian blur sigma applied after rendering (0 disables)")

	exportCmd.Flags().String("format", "folder", "Output format: folder or mbtiles")
	exportCmd.Flags().String("output-file", "", "Output file path for MBTiles format (e.g., noise.mbtiles)")
	exportCmd.Flags().String("folder-structure", "flat", "Folder structure for folder format: flat (z{z}_x{x}_y{y}.png) or nested ({z}/{x}/{y}.png)")

	registerNoiseFlags(exportCmd, "export")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"export.bbox", "bbox"},
		{"export.zoom_min", "zoom-min"},
		{"export.zoom_max", "zoom-max"},
		{"export.workers", "workers"},
		{"export.progress", "progress"},
		{"export.allow_failures", "allow-failures"},
		{"export.tile_size", "tile-size"},
		{"export.hidpi", "hidpi"},
		{"export.mode", "mode"},
		{"export.supersample", "supersample"},
		{"export.blur", "blur"},
		{"export.format", "format"},
		{"export.output_file", "output-file"},
		{"export.folder_structure", "folder-structure"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, exportCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	bboxStr := viper.GetString("export.bbox")
	zoomMin := viper.GetInt("export.zoom_min")
	zoomMax := viper.GetInt("export.zoom_max")
	workers := viper.GetInt("export.workers")
	showProgress := viper.GetBool("export.progress")
	allowFailures := viper.GetBool("export.allow_failures")
	tileSize := viper.GetInt("export.tile_size")
	hidpi := viper.GetBool("export.hidpi")
	format := viper.GetString("export.format")
	outputFile := viper.GetString("export.output_file")
	folderStructure := viper.GetString("export.folder_structure")
	outputDir := viper.GetString("output-dir")
	kind := viper.GetString("export.kind")
	seed := viper.GetInt64("export.seed")

	if format != "folder" && format != "mbtiles" {
		return fmt.Errorf("invalid format %q: must be 'folder' or 'mbtiles'", format)
	}
	if folderStructure != "flat" && folderStructure != "nested" {
		return fmt.Errorf("invalid folder-structure %q: must be 'flat' or 'nested'", folderStructure)
	}
	if format == "mbtiles" && outputFile == "" {
		return fmt.Errorf("--output-file is required when using --format=mbtiles")
	}
	if bboxStr == "" {
		return fmt.Errorf("--bbox is required")
	}

	bbox, err := parseBBox(bboxStr)
	if err != nil {
		return fmt.Errorf("invalid bbox: %w", err)
	}
	if zoomMin <= 0 || zoomMax <= 0 {
		return fmt.Errorf("--zoom-min and --zoom-max must be positive")
	}
	if zoomMin > zoomMax {
		return fmt.Errorf("--zoom-min (%d) must be <= --zoom-max (%d)", zoomMin, zoomMax)
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	mode, err := parseMode(viper.GetString("export.mode"))
	if err != nil {
		return err
	}
	opts, err := noiseOptionsFromConfig("export")
	if err != nil {
		return err
	}

	tiles := tile.TilesInBBox(bbox, zoomMin, zoomMax)
	totalTiles := len(tiles)
	if hidpi {
		totalTiles *= 2
	}

	logger.Info("Starting tile export",
		"kind", kind,
		"seed", seed,
		"bbox", bboxStr,
		"zoom_range", fmt.Sprintf("%d-%d", zoomMin, zoomMax),
		"tiles", len(tiles),
		"total_with_hidpi", totalTiles,
		"workers", workers,
		"format", format,
	)

	newRenderer := func(size int) (*server.TileServer, error) {
		return server.NewTileServer(server.TileServerConfig{
			Kind:         kind,
			Options:      opts,
			Seed:         seed,
			Mode:         mode,
			BaseTileSize: size,
			Supersample:  viper.GetInt("export.supersample"),
			Blur:         float32(viper.GetFloat64("export.blur")),
			DisableCache: true,
		}, logger)
	}

	// Sinks per format
	var mbtilesWriter, mbtilesWriterHiDPI *mbtiles.Writer
	if format == "mbtiles" {
		metadata := mbtiles.DefaultMetadata(kind, seed, bbox, zoomMin, zoomMax)

		mbtilesWriter, err = mbtiles.New(outputFile, metadata)
		if err != nil {
			return fmt.Errorf("failed to create MBTiles writer: %w", err)
		}
		defer mbtilesWriter.Close()

		if hidpi {
			hidpiFile := strings.TrimSuffix(outputFile, ".mbtiles") + "@2x.mbtiles"
			mbtilesWriterHiDPI, err = mbtiles.New(hidpiFile, metadata)
			if err != nil {
				return fmt.Errorf("failed to create HiDPI MBTiles writer: %w", err)
			}
			defer mbtilesWriterHiDPI.Close()
		}
	} else {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("Received interrupt signal, cancelling...")
		cancel()
	}()

	runPass := func(size int, suffix string, writer *mbtiles.Writer) error {
		renderer, err := newRenderer(size)
		if err != nil {
			return err
		}

		sink := func(r worker.Result) {
			if r.Err != nil {
				return
			}
			c := r.Task.Coords
			if writer != nil {
				if err := writer.WriteTile(int(c.Z), int(c.X), int(c.Y), r.Data); err != nil {
					logger.Error("Failed to write tile to MBTiles", "coords", c.String(), "error", err)
				}
				return
			}
			path := folderTilePath(outputDir, folderStructure, c, suffix)
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				logger.Error("Failed to create tile directory", "path", path, "error", err)
				return
			}
			if err := os.WriteFile(path, r.Data, 0o644); err != nil {
				logger.Error("Failed to write tile file", "path", path, "error", err)
			}
		}

		tasks := make([]worker.Task, 0, len(tiles))
		for _, coords := range tiles {
			tasks = append(tasks, worker.Task{Coords: coords})
		}

		progress := worker.NewProgress(len(tasks), showProgress)

		pool := worker.New(worker.Config{
			Workers:    workers,
			Renderer:   renderer,
			OnProgress: progress.Callback(),
			OnResult:   sink,
		})

		results := pool.Run(ctx, tasks)
		progress.Done()

		var failedCount int
		for _, r := range results {
			if r.Err != nil {
				failedCount++
				logger.Error("Tile render failed", "coords", r.Task.Coords.String(), "suffix", suffix, "error", r.Err)
			}
		}

		logger.Info(progress.Summary())

		if failedCount > 0 {
			if allowFailures {
				logger.Warn("Some tiles failed to render, continuing due to --allow-failures", "failed_count", failedCount)
			} else {
				return fmt.Errorf("%d tiles failed to render", failedCount)
			}
		}
		return nil
	}

	logger.Info("Rendering base tiles", "count", len(tiles))
	if err := runPass(tileSize, "", mbtilesWriter); err != nil {
		return err
	}

	if hidpi {
		logger.Info("Rendering HiDPI tiles", "count", len(tiles))
		if err := runPass(tileSize*2, "@2x", mbtilesWriterHiDPI); err != nil {
			return err
		}
	}

	if format == "mbtiles" {
		if err := mbtilesWriter.Flush(); err != nil {
			return fmt.Errorf("failed to flush MBTiles: %w", err)
		}
		if mbtilesWriterHiDPI != nil {
			if err := mbtilesWriterHiDPI.Flush(); err != nil {
				return fmt.Errorf("failed to flush HiDPI MBTiles: %w", err)
			}
		}
		logger.Info("MBTiles export complete", "output", outputFile)
	}

	return nil
}

// folderTilePath returns the on-disk path for a folder-format tile.
func folderTilePath(dir, structure string, c tile.Coords, suffix string) string {
	if structure == "nested" {
		name := strconv.FormatUint(uint64(c.Y), 10) + suffix + ".png"
		return filepath.Join(dir,
			strconv.FormatUint(uint64(c.Z), 10),
			strconv.FormatUint(uint64(c.X), 10),
			name)
	}
	return filepath.Join(dir, c.String()+suffix+".png")
}
