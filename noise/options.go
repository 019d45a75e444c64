package noise

// Kernel selects the base lattice kernel used by fractal combinators and
// domain warps.
type Kernel int

const (
	// KernelGradient is Perlin-style gradient noise (smooth, more hashing).
	KernelGradient Kernel = iota
	// KernelValue is hashed-value noise (cheaper, blockier at low frequency).
	KernelValue
)

// Metric selects the distance function used by cellular kernels.
type Metric int

const (
	Euclidean Metric = iota
	Manhattan
	Chebyshev
)

// ReturnMode selects what a cellular kernel derives from the F1/F2 scan.
// The first four apply to Worley, the last three to Voronoi.
type ReturnMode int

const (
	// ReturnF1 is the distance to the nearest feature point.
	ReturnF1 ReturnMode = iota
	// ReturnF2 is the distance to the second-nearest feature point.
	ReturnF2
	// ReturnF2MinusF1 sharpens cell boundaries into valleys.
	ReturnF2MinusF1
	// ReturnF1F2Mean averages the two nearest distances.
	ReturnF1F2Mean
	// ReturnCellValue is a per-cell pseudo-random identity in [0,1].
	ReturnCellValue
	// ReturnDistance is the clamped F1 distance.
	ReturnDistance
	// ReturnBoth blends cell value and distance 50/50.
	ReturnBoth
)

// Options configures fractal, cellular and warp kernels. An Options value is
// immutable from the kernels' point of view: it is passed by value and never
// retained across calls.
type Options struct {
	// Octaves is the number of fractal passes. Zero or negative octaves make
	// every combinator return 0 rather than divide by an empty amplitude sum.
	Octaves int
	// Lacunarity multiplies the frequency each octave (typically > 1).
	Lacunarity float64
	// Persistence multiplies the amplitude each octave (in (0,1) for
	// fBm/billow/turbulence).
	Persistence float64
	// Gain drives the ridged multifractal weight recurrence and its
	// spectral falloff.
	Gain float64
	// Frequency scales input coordinates before sampling.
	Frequency float64
	// Amplitude scales warp displacements; fractal outputs are normalized
	// by their accumulated amplitude, so it cancels there.
	Amplitude float64
	// Power is the exponent applied to the normalized turbulence sum.
	Power float64
	// Offset is the ridge offset of the ridged multifractal.
	Offset float64
	// Base selects the lattice kernel sampled by fractals and warps.
	Base Kernel
	// Metric selects the cellular distance function.
	Metric Metric
	// Return selects the cellular return mode.
	Return ReturnMode
	// Jitter in [0,1] scatters cellular feature points inside their cell;
	// 0 pins them to cell centers.
	Jitter float64
}

// DefaultOptions is the single definition of the documented defaults. Every
// layer that fills in unset options (CLI flags, the registry) starts from it.
func DefaultOptions() Options {
	return Options{
		Octaves:     6,
		Lacunarity:  2.0,
		Persistence: 0.5,
		Gain:        2.0,
		Frequency:   1.0,
		Amplitude:   1.0,
		Power:       1.0,
		Offset:      1.0,
		Base:        KernelGradient,
		Metric:      Euclidean,
		Return:      ReturnF1,
		Jitter:      1.0,
	}
}

// DefaultWarpAmplitude is the documented default displacement scale for
// domain warps, which move coordinates rather than produce values and so
// want a much larger amplitude than the unit-range kernels.
const DefaultWarpAmplitude = 30.0

// octaveSeedStep decorrelates octaves: octave i samples with
// seed + i*octaveSeedStep so successive octaves never share a lookup chain.
const octaveSeedStep = 1013

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
