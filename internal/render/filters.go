package render

import (
	"image"

	"github.com/disintegration/gift"
	"golang.org/x/image/draw"
)

// Smooth applies a gaussian blur to soften the rendered field; sigma
// controls the radius.
func Smooth(img image.Image, sigma float32) image.Image {
	g := gift.New(gift.GaussianBlur(sigma))
	dst := image.NewRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst
}

// Contrast adjusts contrast by pct in [-100, 100].
func Contrast(img image.Image, pct float32) image.Image {
	g := gift.New(gift.Contrast(pct))
	dst := image.NewRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst
}

// Downsample scales img to width x height with Catmull-Rom resampling,
// used to fold supersampled renders back to the target size.
func Downsample(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}
