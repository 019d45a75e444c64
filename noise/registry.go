package noise

import (
	"fmt"
	"sync"

	"github.com/ojrac/opensimplex-go"
)

// Sampler is a kernel bound to its options at construction. Sampling stays a
// pure function of (coordinates, seed); the options are resolved once, not
// re-dispatched per call.
type Sampler interface {
	Sample2D(x, y float64, seed int64) float64
	Sample3D(x, y, z float64, seed int64) float64
}

// Kinds returns the kernel names New recognizes, in stable order.
func Kinds() []string {
	return []string{
		"gradient", "value", "simplex",
		"fbm", "billow", "ridged", "turbulence",
		"worley", "voronoi", "warped",
	}
}

// New looks up a kernel by name and binds it to opts. Callers that want the
// documented defaults start from DefaultOptions and override fields. An
// unrecognized kind is the only error this package reports.
func New(kind string, opts Options) (Sampler, error) {
	switch kind {
	case "gradient":
		return baseSampler{opts: opts, kernel: KernelGradient}, nil
	case "value":
		return baseSampler{opts: opts, kernel: KernelValue}, nil
	case "simplex":
		return &simplexSampler{opts: opts}, nil
	case "fbm":
		return fractalSampler{opts: opts, f2: FBM2D, f3: FBM3D}, nil
	case "billow":
		return fractalSampler{opts: opts, f2: Billow2D, f3: Billow3D}, nil
	case "ridged":
		return fractalSampler{opts: opts, f2: Ridged2D, f3: Ridged3D}, nil
	case "turbulence":
		return fractalSampler{opts: opts, f2: Turbulence2D, f3: Turbulence3D}, nil
	case "worley":
		return fractalSampler{opts: opts, f2: Worley2D, f3: Worley3D}, nil
	case "voronoi":
		return fractalSampler{opts: opts, f2: Voronoi2D, f3: Voronoi3D}, nil
	case "warped":
		return warpedSampler{opts: opts}, nil
	default:
		return nil, fmt.Errorf("unknown noise kind %q", kind)
	}
}

// baseSampler wraps a single lattice kernel, scaling coordinates by the
// configured frequency.
type baseSampler struct {
	opts   Options
	kernel Kernel
}

func (s baseSampler) Sample2D(x, y float64, seed int64) float64 {
	f := s.opts.Frequency
	return sampleBase2(s.kernel, x*f, y*f, seed)
}

func (s baseSampler) Sample3D(x, y, z float64, seed int64) float64 {
	f := s.opts.Frequency
	return sampleBase3(s.kernel, x*f, y*f, z*f, seed)
}

// fractalSampler binds any (coords, seed, Options) kernel pair.
type fractalSampler struct {
	opts Options
	f2   func(x, y float64, seed int64, o Options) float64
	f3   func(x, y, z float64, seed int64, o Options) float64
}

func (s fractalSampler) Sample2D(x, y float64, seed int64) float64 {
	return s.f2(x, y, seed, s.opts)
}

func (s fractalSampler) Sample3D(x, y, z float64, seed int64) float64 {
	return s.f3(x, y, z, seed, s.opts)
}

// warpedSampler runs a fractal warp over the coordinate before sampling fBm
// at it, removing the grid alignment a plain fBm field shows.
type warpedSampler struct {
	opts Options
}

func (s warpedSampler) Sample2D(x, y float64, seed int64) float64 {
	wx, wy := WarpFractal2D(x, y, seed+warpSeedStep, s.opts)
	return FBM2D(wx, wy, seed, s.opts)
}

func (s warpedSampler) Sample3D(x, y, z float64, seed int64) float64 {
	wx, wy, wz := WarpFractal3D(x, y, z, seed+warpSeedStep, s.opts)
	return FBM3D(wx, wy, wz, seed, s.opts)
}

// simplexSampler adapts opensimplex to the Sampler contract. The library
// builds its permutation state per seed, so the last-used seed's generator
// is memoized; typical callers sample one seed many times.
type simplexSampler struct {
	opts Options

	mu   sync.Mutex
	seed int64
	gen  opensimplex.Noise
}

func (s *simplexSampler) forSeed(seed int64) opensimplex.Noise {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen == nil || s.seed != seed {
		s.gen = opensimplex.New(seed)
		s.seed = seed
	}
	return s.gen
}

func (s *simplexSampler) Sample2D(x, y float64, seed int64) float64 {
	f := s.opts.Frequency
	return s.forSeed(seed).Eval2(x*f, y*f)
}

func (s *simplexSampler) Sample3D(x, y, z float64, seed int64) float64 {
	f := s.opts.Frequency
	return s.forSeed(seed).Eval3(x*f, y*f, z*f)
}
