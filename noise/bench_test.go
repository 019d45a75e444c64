package noise

import (
	"testing"

	"github.com/aquilax/go-perlin"
)

var benchSink float64

func BenchmarkGradient2D(b *testing.B) {
	for i := 0; i < b.N; i++ {
		benchSink = Gradient2D(float64(i)*0.01, 1.5, 42)
	}
}

func BenchmarkValue2D(b *testing.B) {
	for i := 0; i < b.N; i++ {
		benchSink = Value2D(float64(i)*0.01, 1.5, 42)
	}
}

func BenchmarkFBM2D(b *testing.B) {
	o := DefaultOptions()
	for i := 0; i < b.N; i++ {
		benchSink = FBM2D(float64(i)*0.01, 1.5, 42, o)
	}
}

func BenchmarkWorley2D(b *testing.B) {
	o := DefaultOptions()
	for i := 0; i < b.N; i++ {
		benchSink = Worley2D(float64(i)*0.01, 1.5, 42, o)
	}
}

// Reference point: the go-perlin generator used elsewhere in the ecosystem,
// with comparable octave settings.
func BenchmarkReferencePerlin2D(b *testing.B) {
	p := perlin.NewPerlin(2, 2, 6, 42)
	for i := 0; i < b.N; i++ {
		benchSink = p.Noise2D(float64(i)*0.01, 1.5)
	}
}
