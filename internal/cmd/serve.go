package cmd

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/forgeworks/noiseforge/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve noise tiles over HTTP",
	Long: `Serve noise tiles over HTTP, rendered on demand from the configured
noise kind, or read from an exported MBTiles database when --mbtiles is set.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "127.0.0.1:8080", "Listen address (host:port)")
	serveCmd.Flags().String("mbtiles", "", "Serve tiles from this MBTiles file instead of rendering on demand")

	serveCmd.Flags().Int("tile-size", 256, "Base tile size in pixels (@2x requests render double)")
	serveCmd.Flags().String("mode", "gray", "Color mode (gray, terrain, regions)")
	serveCmd.Flags().Int("supersample", 1, "Supersampling factor (1 disables)")
	serveCmd.Flags().Float32("blur", 0, "Gaussian blur sigma applied after rendering (0 disables)")

	serveCmd.Flags().Bool("disable-cache", false, "Always re-render tiles instead of caching them in memory")
	serveCmd.Flags().Int("max-concurrent-renders", runtime.NumCPU(), "Max concurrent tile renders (default: number of CPUs)")
	serveCmd.Flags().Duration("render-timeout", 30*time.Second, "Timeout per tile render")
	serveCmd.Flags().String("cache-control", "public, max-age=3600", "Cache-Control header for served tiles")

	registerNoiseFlags(serveCmd, "serve")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"serve.addr", "addr"},
		{"serve.mbtiles", "mbtiles"},
		{"serve.tile_size", "tile-size"},
		{"serve.mode", "mode"},
		{"serve.supersample", "supersample"},
		{"serve.blur", "blur"},
		{"serve.disable_cache", "disable-cache"},
		{"serve.max_concurrent_renders", "max-concurrent-renders"},
		{"serve.render_timeout", "render-timeout"},
		{"serve.cache_control", "cache-control"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, serveCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	addr := viper.GetString("serve.addr")
	mbtilesPath := viper.GetString("serve.mbtiles")
	cacheControl := viper.GetString("serve.cache_control")

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	if mbtilesPath != "" {
		h, err := server.NewMBTilesHandler(server.MBTilesConfig{
			MBTilesPath:  mbtilesPath,
			CacheControl: cacheControl,
		}, logger)
		if err != nil {
			return err
		}
		defer h.Close()

		meta, err := h.Metadata()
		if err != nil {
			return fmt.Errorf("failed to read tileset metadata: %w", err)
		}

		mux.Handle("/tiles/", h.Handler())

		logger.Info("serving tiles from MBTiles",
			"addr", addr,
			"file", mbtilesPath,
			"kind", meta.Kind,
			"seed", meta.Seed,
			"zoom_range", fmt.Sprintf("%d-%d", meta.MinZoom, meta.MaxZoom),
		)
	} else {
		mode, err := parseMode(viper.GetString("serve.mode"))
		if err != nil {
			return err
		}
		opts, err := noiseOptionsFromConfig("serve")
		if err != nil {
			return err
		}

		ts, err := server.NewTileServer(server.TileServerConfig{
			Kind:                 viper.GetString("serve.kind"),
			Options:              opts,
			Seed:                 viper.GetInt64("serve.seed"),
			Mode:                 mode,
			BaseTileSize:         viper.GetInt("serve.tile_size"),
			Supersample:          viper.GetInt("serve.supersample"),
			Blur:                 float32(viper.GetFloat64("serve.blur")),
			DisableCache:         viper.GetBool("serve.disable_cache"),
			MaxConcurrentRenders: viper.GetInt("serve.max_concurrent_renders"),
			RenderTimeout:        viper.GetDuration("serve.render_timeout"),
			CacheControl:         cacheControl,
		}, logger)
		if err != nil {
			return err
		}

		mux.Handle("/tiles/", ts.Handler())
		mux.Handle("/status", ts.StatusHandler())

		logger.Info("tile server listening",
			"addr", addr,
			"kind", viper.GetString("serve.kind"),
			"seed", viper.GetInt64("serve.seed"),
			"max_concurrent_renders", viper.GetInt("serve.max_concurrent_renders"),
		)
	}

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	return srv.ListenAndServe()
}
