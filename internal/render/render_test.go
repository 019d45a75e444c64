package render

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/forgeworks/noiseforge/noise"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams() Params {
	return Params{
		Kind:    "fbm",
		Options: noise.DefaultOptions(),
		Seed:    42,
		Width:   32,
		Height:  32,
		Window:  [4]float64{0, 0, 4, 4},
		Mode:    ModeGray,
	}
}

func TestRenderModes(t *testing.T) {
	for _, mode := range []Mode{ModeGray, ModeTerrain, ModeRegions} {
		t.Run(string(mode), func(t *testing.T) {
			p := testParams()
			p.Mode = mode
			if mode == ModeRegions {
				p.Kind = "voronoi"
				p.Options.Frequency = 2
			}
			img, err := Render(p)
			require.NoError(t, err)
			require.NotNil(t, img)
			assert.Equal(t, image.Rect(0, 0, 32, 32), img.Bounds())
		})
	}
}

func TestRenderDeterministic(t *testing.T) {
	p := testParams()
	a, err := Render(p)
	require.NoError(t, err)
	b, err := Render(p)
	require.NoError(t, err)

	ra := a.(*image.RGBA)
	rb := b.(*image.RGBA)
	assert.Equal(t, ra.Pix, rb.Pix, "same params must render identical images")
}

func TestRenderSeedChangesImage(t *testing.T) {
	p := testParams()
	a, err := Render(p)
	require.NoError(t, err)
	p.Seed = 43
	b, err := Render(p)
	require.NoError(t, err)

	assert.NotEqual(t, a.(*image.RGBA).Pix, b.(*image.RGBA).Pix)
}

func TestRenderInvalidInputs(t *testing.T) {
	p := testParams()
	p.Kind = "bogus"
	_, err := Render(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")

	p = testParams()
	p.Width = 0
	_, err = Render(p)
	require.Error(t, err)

	p = testParams()
	p.Window = [4]float64{1, 1, 1, 1}
	_, err = Render(p)
	require.Error(t, err)
}

func TestRenderSupersampleAndBlur(t *testing.T) {
	p := testParams()
	p.Supersample = 2
	p.Blur = 1.5
	p.Contrast = 20
	img, err := Render(p)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 32, 32), img.Bounds(), "output keeps the target size")
}

func TestFieldOrientation(t *testing.T) {
	s, err := noise.New("gradient", noise.DefaultOptions())
	require.NoError(t, err)

	values := Field(s, 7, 8, 8, [4]float64{0, 0, 2, 2})
	require.Len(t, values, 64)

	// Row 0 samples the top of the window (max Y).
	top := s.Sample2D(0.125, 2-0.125, 7)
	assert.Equal(t, top, values[0])
}

func TestTerrainColorRampEndpoints(t *testing.T) {
	deep := terrainColor(0)
	snow := terrainColor(1)
	assert.True(t, deep.B > deep.R, "low values should be water-blue")
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, snow)
}

func TestSeamlessTextureEdges(t *testing.T) {
	img, err := SeamlessTexture(TextureParams{
		Size:      64,
		BaseColor: color.RGBA{R: 120, G: 130, B: 140, A: 255},
		Variation: 1,
		Seed:      5,
	})
	require.NoError(t, err)

	// Opposite edges must be close: the blended field is periodic and the
	// edge pixels sit half a texel inside the seam.
	var sum, n int
	for y := 0; y < 64; y++ {
		l := img.RGBAAt(0, y)
		r := img.RGBAAt(63, y)
		for _, d := range []int{int(l.R) - int(r.R), int(l.G) - int(r.G), int(l.B) - int(r.B)} {
			if d < 0 {
				d = -d
			}
			sum += d
			n++
		}
	}
	mean := float64(sum) / float64(n)
	assert.Less(t, mean, 10.0, "opposite edges should nearly match")
}

func TestWriteTextureSet(t *testing.T) {
	dir := t.TempDir()

	result, err := WriteTextureSet(dir, 16, 9, 0.8, false)
	require.NoError(t, err)
	assert.Len(t, result.Written, len(defaultTextureOrder))
	assert.Empty(t, result.Skipped)

	for _, path := range result.Written {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
		assert.Equal(t, ".png", filepath.Ext(path))
	}

	// Second run without overwrite skips everything.
	result, err = WriteTextureSet(dir, 16, 9, 0.8, false)
	require.NoError(t, err)
	assert.Empty(t, result.Written)
	assert.Len(t, result.Skipped, len(defaultTextureOrder))
}
