// Package render rasterizes noise fields into images: grayscale fields,
// terrain-ramped heightmaps, and Voronoi region maps. It is a consumer of
// the noise engine, not part of it; all sampling goes through the public
// kernel contract.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/forgeworks/noiseforge/compose"
	"github.com/forgeworks/noiseforge/noise"
)

// Mode selects how sampled values are colored.
type Mode string

const (
	ModeGray    Mode = "gray"
	ModeTerrain Mode = "terrain"
	ModeRegions Mode = "regions"
)

// Params describes one rendering job. Window is the sampling rectangle
// [minX, minY, maxX, maxY] on the noise plane; pixels map linearly onto it.
type Params struct {
	Kind    string
	Options noise.Options
	Seed    int64
	Width   int
	Height  int
	Window  [4]float64
	Mode    Mode
	// Supersample > 1 renders at a multiple of the target size and
	// downscales, trading time for smoother output.
	Supersample int
	// Blur applies a gaussian blur with the given sigma after rendering
	// (0 disables it).
	Blur float32
	// Contrast adjusts contrast by a percentage in [-100, 100] after
	// rendering (0 disables it).
	Contrast float32
}

// Field samples the kernel over the window into a row-major grid of
// Width*Height values. Row 0 is the window's top edge (max Y), matching
// image space.
func Field(s noise.Sampler, seed int64, width, height int, window [4]float64) []float64 {
	values := make([]float64, width*height)
	spanX := window[2] - window[0]
	spanY := window[3] - window[1]
	for py := 0; py < height; py++ {
		y := window[3] - (float64(py)+0.5)/float64(height)*spanY
		for px := 0; px < width; px++ {
			x := window[0] + (float64(px)+0.5)/float64(width)*spanX
			values[py*width+px] = s.Sample2D(x, y, seed)
		}
	}
	return values
}

// Render produces an image for the given parameters. Unknown kernel kinds
// surface the registry error unchanged.
func Render(p Params) (image.Image, error) {
	if p.Width <= 0 || p.Height <= 0 {
		return nil, fmt.Errorf("image dimensions must be positive, got %dx%d", p.Width, p.Height)
	}
	if p.Window[2] <= p.Window[0] || p.Window[3] <= p.Window[1] {
		return nil, fmt.Errorf("degenerate sampling window %v", p.Window)
	}

	width, height := p.Width, p.Height
	if p.Supersample > 1 {
		width *= p.Supersample
		height *= p.Supersample
	}

	var img image.Image
	var err error
	switch p.Mode {
	case ModeRegions:
		img, err = renderRegions(p, width, height)
	case ModeTerrain:
		img, err = renderScalar(p, width, height, terrainColor)
	default:
		img, err = renderScalar(p, width, height, grayColor)
	}
	if err != nil {
		return nil, err
	}

	if p.Supersample > 1 {
		img = Downsample(img, p.Width, p.Height)
	}
	if p.Blur > 0 {
		img = Smooth(img, p.Blur)
	}
	if p.Contrast != 0 {
		img = Contrast(img, p.Contrast)
	}
	return img, nil
}

// renderScalar samples a scalar kernel and maps every value through color.
func renderScalar(p Params, width, height int, colorize func(v float64) color.RGBA) (image.Image, error) {
	s, err := noise.New(p.Kind, p.Options)
	if err != nil {
		return nil, err
	}

	values := Field(s, p.Seed, width, height, p.Window)
	lo, hi := valueRange(p.Kind)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, v := range values {
		c := colorize(compose.Clamp01(compose.MapRange(v, lo, hi, 0, 1)))
		img.SetRGBA(i%width, i/width, c)
	}
	return img, nil
}

// renderRegions colors each pixel by its owning Voronoi cell, shaded by the
// distance to the cell's feature point.
func renderRegions(p Params, width, height int) (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	spanX := p.Window[2] - p.Window[0]
	spanY := p.Window[3] - p.Window[1]
	for py := 0; py < height; py++ {
		y := p.Window[3] - (float64(py)+0.5)/float64(height)*spanY
		for px := 0; px < width; px++ {
			x := p.Window[0] + (float64(px)+0.5)/float64(width)*spanX
			cell := noise.VoronoiCell2D(x, y, p.Seed, p.Options)
			img.SetRGBA(px, py, regionColor(cell))
		}
	}
	return img, nil
}

// valueRange is the documented output range per kernel family, used to
// normalize values into [0,1] before coloring.
func valueRange(kind string) (lo, hi float64) {
	switch kind {
	case "turbulence", "worley", "voronoi":
		return 0, 1
	default:
		return -1, 1
	}
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

// EncodePNG encodes img to w, for callers streaming tiles instead of
// writing files.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
