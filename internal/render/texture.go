package render

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/forgeworks/noiseforge/compose"
	"github.com/forgeworks/noiseforge/noise"
)

// TextureParams defines one seamless noise texture.
type TextureParams struct {
	Size      int
	BaseColor color.RGBA
	Variation float64
	Seed      int64
}

// TextureWriteResult reports which textures were written or skipped.
type TextureWriteResult struct {
	Written []string
	Skipped []string
}

var defaultTextureOrder = []string{"stone", "water", "moss", "sand", "parchment"}

var defaultTextureColors = map[string]color.RGBA{
	"stone":     {R: 136, G: 140, B: 141, A: 255},
	"water":     {R: 82, G: 136, B: 193, A: 255},
	"moss":      {R: 96, G: 138, B: 82, A: 255},
	"sand":      {R: 222, G: 203, B: 164, A: 255},
	"parchment": {R: 242, G: 234, B: 215, A: 255},
}

// WriteTextureSet generates the default seamless texture set into dir.
func WriteTextureSet(dir string, size int, seed int64, variation float64, overwrite bool) (TextureWriteResult, error) {
	result := TextureWriteResult{}
	if size <= 0 {
		return result, fmt.Errorf("size must be positive")
	}
	if variation < 0 || variation > 1 {
		return result, fmt.Errorf("variation must be within [0,1]")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return result, fmt.Errorf("failed to create texture dir: %w", err)
	}

	for i, name := range defaultTextureOrder {
		path := filepath.Join(dir, name+".png")
		if !overwrite {
			if _, err := os.Stat(path); err == nil {
				result.Skipped = append(result.Skipped, path)
				continue
			}
		}

		params := TextureParams{
			Size:      size,
			BaseColor: defaultTextureColors[name],
			Variation: variation,
			Seed:      seed + int64(i)*1000,
		}
		img, err := SeamlessTexture(params)
		if err != nil {
			return result, err
		}
		if err := WritePNG(path, img); err != nil {
			return result, err
		}
		result.Written = append(result.Written, path)
	}
	return result, nil
}

// SeamlessTexture renders a tileable texture: a domain-warped billow field
// blended across the tile edges so opposite borders match exactly.
func SeamlessTexture(p TextureParams) (*image.RGBA, error) {
	if p.Size <= 0 {
		return nil, fmt.Errorf("size must be positive")
	}
	variation := compose.Clamp01(p.Variation)

	opts := noise.DefaultOptions()
	opts.Octaves = 5
	opts.Frequency = 6
	opts.Persistence = 0.55

	warp := noise.DefaultOptions()
	warp.Octaves = 3
	warp.Frequency = 2
	warp.Amplitude = 0.08 + 0.12*variation

	img := image.NewRGBA(image.Rect(0, 0, p.Size, p.Size))
	baseR := float64(p.BaseColor.R)
	baseG := float64(p.BaseColor.G)
	baseB := float64(p.BaseColor.B)

	for py := 0; py < p.Size; py++ {
		v := (float64(py) + 0.5) / float64(p.Size)
		for px := 0; px < p.Size; px++ {
			u := (float64(px) + 0.5) / float64(p.Size)

			n := tileable(u, v, p.Seed, opts, warp) // [-1,1]
			amt := 0.5 + 0.5*n                      // [0,1]
			shade := 1 - variation*0.35*(1-amt)
			tint := variation * 0.12 * (amt - 0.5)

			img.SetRGBA(px, py, color.RGBA{
				R: clampByte(baseR*shade + 255*tint),
				G: clampByte(baseG*shade + 255*tint),
				B: clampByte(baseB*shade + 255*tint),
				A: 255,
			})
		}
	}
	return img, nil
}

// tileable blends four wrapped samples of the warped field with bilinear
// weights so the value is periodic over the unit square.
func tileable(u, v float64, seed int64, opts, warp noise.Options) float64 {
	sample := func(x, y float64) float64 {
		wx, wy := noise.WarpProgressive2D(x, y, seed, warp, 2)
		return noise.Billow2D(wx, wy, seed, opts)
	}
	return compose.Combine([]compose.Weighted{
		{Value: sample(u, v), Weight: (1 - u) * (1 - v)},
		{Value: sample(u-1, v), Weight: u * (1 - v)},
		{Value: sample(u, v-1), Weight: (1 - u) * v},
		{Value: sample(u-1, v-1), Weight: u * v},
	})
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
