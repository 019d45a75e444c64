package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/forgeworks/noiseforge/internal/render"
	"github.com/forgeworks/noiseforge/noise"
)

// registerNoiseFlags adds the shared noise configuration flags to a command
// and binds them under the given viper prefix.
func registerNoiseFlags(c *cobra.Command, prefix string) {
	def := noise.DefaultOptions()

	c.Flags().String("kind", "fbm", fmt.Sprintf("Noise kind (%s)", strings.Join(noise.Kinds(), ", ")))
	c.Flags().Int64("seed", 1337, "Deterministic seed")
	c.Flags().Int("octaves", def.Octaves, "Number of fractal octaves")
	c.Flags().Float64("lacunarity", def.Lacunarity, "Frequency multiplier per octave")
	c.Flags().Float64("persistence", def.Persistence, "Amplitude multiplier per octave")
	c.Flags().Float64("gain", def.Gain, "Ridged multifractal gain")
	c.Flags().Float64("frequency", def.Frequency, "Base sampling frequency")
	c.Flags().Float64("amplitude", def.Amplitude, "Warp displacement amplitude")
	c.Flags().Float64("power", def.Power, "Turbulence output exponent")
	c.Flags().Float64("offset", def.Offset, "Ridged multifractal ridge offset")
	c.Flags().Float64("jitter", def.Jitter, "Cellular feature point jitter (0..1)")
	c.Flags().String("base", "gradient", "Base lattice kernel for fractals and warps (gradient, value)")
	c.Flags().String("metric", "euclidean", "Cellular distance metric (euclidean, manhattan, chebyshev)")
	c.Flags().String("cell-return", "f1", "Cellular return mode (f1, f2, f2-f1, mean, cell, distance, both)")

	bindFlags := []string{
		"kind", "seed", "octaves", "lacunarity", "persistence", "gain",
		"frequency", "amplitude", "power", "offset", "jitter",
		"base", "metric", "cell-return",
	}

	for _, name := range bindFlags {
		key := prefix + "." + strings.ReplaceAll(name, "-", "_")
		if err := viper.BindPFlag(key, c.Flags().Lookup(name)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", name, err))
		}
	}
}

// noiseOptionsFromConfig reads the bound noise flags back from viper.
func noiseOptionsFromConfig(prefix string) (noise.Options, error) {
	get := func(name string) string { return viper.GetString(prefix + "." + name) }

	base, err := parseKernel(get("base"))
	if err != nil {
		return noise.Options{}, err
	}
	metric, err := parseMetric(get("metric"))
	if err != nil {
		return noise.Options{}, err
	}
	ret, err := parseReturnMode(get("cell_return"))
	if err != nil {
		return noise.Options{}, err
	}

	return noise.Options{
		Octaves:     viper.GetInt(prefix + ".octaves"),
		Lacunarity:  viper.GetFloat64(prefix + ".lacunarity"),
		Persistence: viper.GetFloat64(prefix + ".persistence"),
		Gain:        viper.GetFloat64(prefix + ".gain"),
		Frequency:   viper.GetFloat64(prefix + ".frequency"),
		Amplitude:   viper.GetFloat64(prefix + ".amplitude"),
		Power:       viper.GetFloat64(prefix + ".power"),
		Offset:      viper.GetFloat64(prefix + ".offset"),
		Jitter:      viper.GetFloat64(prefix + ".jitter"),
		Base:        base,
		Metric:      metric,
		Return:      ret,
	}, nil
}

func parseKernel(s string) (noise.Kernel, error) {
	switch strings.ToLower(s) {
	case "gradient":
		return noise.KernelGradient, nil
	case "value":
		return noise.KernelValue, nil
	default:
		return 0, fmt.Errorf("unknown base kernel %q: must be 'gradient' or 'value'", s)
	}
}

func parseMetric(s string) (noise.Metric, error) {
	switch strings.ToLower(s) {
	case "euclidean":
		return noise.Euclidean, nil
	case "manhattan":
		return noise.Manhattan, nil
	case "chebyshev":
		return noise.Chebyshev, nil
	default:
		return 0, fmt.Errorf("unknown metric %q: must be 'euclidean', 'manhattan' or 'chebyshev'", s)
	}
}

func parseReturnMode(s string) (noise.ReturnMode, error) {
	switch strings.ToLower(s) {
	case "f1":
		return noise.ReturnF1, nil
	case "f2":
		return noise.ReturnF2, nil
	case "f2-f1":
		return noise.ReturnF2MinusF1, nil
	case "mean":
		return noise.ReturnF1F2Mean, nil
	case "cell":
		return noise.ReturnCellValue, nil
	case "distance":
		return noise.ReturnDistance, nil
	case "both":
		return noise.ReturnBoth, nil
	default:
		return 0, fmt.Errorf("unknown cell return mode %q", s)
	}
}

func parseMode(s string) (render.Mode, error) {
	switch strings.ToLower(s) {
	case "", "gray":
		return render.ModeGray, nil
	case "terrain":
		return render.ModeTerrain, nil
	case "regions":
		return render.ModeRegions, nil
	default:
		return "", fmt.Errorf("unknown render mode %q: must be 'gray', 'terrain' or 'regions'", s)
	}
}

// parseBBox parses a bounding box string "minLon,minLat,maxLon,maxLat" into [4]float64.
func parseBBox(s string) ([4]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return [4]float64{}, fmt.Errorf("expected 4 comma-separated values, got %d", len(parts))
	}

	var bbox [4]float64
	for i, part := range parts {
		val, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return [4]float64{}, fmt.Errorf("invalid number at position %d: %w", i, err)
		}
		bbox[i] = val
	}

	if bbox[0] >= bbox[2] {
		return [4]float64{}, fmt.Errorf("min x (%.4f) must be < max x (%.4f)", bbox[0], bbox[2])
	}
	if bbox[1] >= bbox[3] {
		return [4]float64{}, fmt.Errorf("min y (%.4f) must be < max y (%.4f)", bbox[1], bbox[3])
	}

	return bbox, nil
}
