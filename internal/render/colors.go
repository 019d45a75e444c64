package render

import (
	"image/color"

	"github.com/forgeworks/noiseforge/compose"
	"github.com/forgeworks/noiseforge/noise"
)

// terrainStops is a classic hypsometric ramp over normalized height: deep
// water through sand, grass, rock, snow.
var terrainStops = []struct {
	at  float64
	col color.RGBA
}{
	{0.00, color.RGBA{R: 12, G: 44, B: 92, A: 255}},
	{0.35, color.RGBA{R: 38, G: 98, B: 170, A: 255}},
	{0.45, color.RGBA{R: 215, G: 198, B: 146, A: 255}},
	{0.55, color.RGBA{R: 106, G: 152, B: 78, A: 255}},
	{0.75, color.RGBA{R: 121, G: 106, B: 92, A: 255}},
	{0.90, color.RGBA{R: 236, G: 240, B: 244, A: 255}},
	{1.00, color.RGBA{R: 255, G: 255, B: 255, A: 255}},
}

// regionPalette colors Voronoi regions; the owning cell hash picks the
// entry so a region keeps its color at every zoom.
var regionPalette = []color.RGBA{
	{R: 141, G: 211, B: 199, A: 255},
	{R: 255, G: 255, B: 179, A: 255},
	{R: 190, G: 186, B: 218, A: 255},
	{R: 251, G: 128, B: 114, A: 255},
	{R: 128, G: 177, B: 211, A: 255},
	{R: 253, G: 180, B: 98, A: 255},
	{R: 179, G: 222, B: 105, A: 255},
	{R: 252, G: 205, B: 229, A: 255},
}

func grayColor(v float64) color.RGBA {
	g := uint8(v*255 + 0.5)
	return color.RGBA{R: g, G: g, B: g, A: 255}
}

func terrainColor(v float64) color.RGBA {
	for i := 1; i < len(terrainStops); i++ {
		if v <= terrainStops[i].at {
			prev, cur := terrainStops[i-1], terrainStops[i]
			t := compose.MapRange(v, prev.at, cur.at, 0, 1)
			return lerpRGBA(prev.col, cur.col, t)
		}
	}
	return terrainStops[len(terrainStops)-1].col
}

func regionColor(cell noise.Cell2D) color.RGBA {
	base := regionPalette[noise.Hash2D(cell.X, cell.Y, 0)%len(regionPalette)]
	// Darken toward the feature point so region interiors read as filled.
	shade := 1 - 0.35*compose.Clamp01(cell.Distance)
	return color.RGBA{
		R: uint8(float64(base.R) * shade),
		G: uint8(float64(base.G) * shade),
		B: uint8(float64(base.B) * shade),
		A: 255,
	}
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	t = compose.Clamp01(t)
	return color.RGBA{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
		A: 255,
	}
}
