package noise

// Fixed coordinate offsets that decorrelate the per-axis displacement
// samples of a warp. The values only need to be non-lattice-aligned and
// stable.
const (
	warpOffsetX = 5.2
	warpOffsetY = 1.3
	warpOffsetZ = 9.2
)

// warpSeedStep separates the per-axis seeds of fractal warps.
const warpSeedStep = 31337

// Warp2D displaces (x, y) by one base-kernel sample per axis scaled by
// o.Amplitude. Warps are pure coordinate transforms: the caller feeds the
// result into whichever kernel it likes. Amplitude 0 returns the input
// unchanged.
func Warp2D(x, y float64, seed int64, o Options) (float64, float64) {
	f := o.Frequency
	dx := sampleBase2(o.Base, x*f, y*f, seed)
	dy := sampleBase2(o.Base, (x+warpOffsetX)*f, (y+warpOffsetY)*f, seed)
	return x + dx*o.Amplitude, y + dy*o.Amplitude
}

// Warp3D is the 3D variant of Warp2D.
func Warp3D(x, y, z float64, seed int64, o Options) (float64, float64, float64) {
	f := o.Frequency
	dx := sampleBase3(o.Base, x*f, y*f, z*f, seed)
	dy := sampleBase3(o.Base, (x+warpOffsetX)*f, (y+warpOffsetY)*f, (z+warpOffsetZ)*f, seed)
	dz := sampleBase3(o.Base, (x+warpOffsetY)*f, (y+warpOffsetZ)*f, (z+warpOffsetX)*f, seed)
	return x + dx*o.Amplitude, y + dy*o.Amplitude, z + dz*o.Amplitude
}

// WarpFractal2D is Warp2D with a full fBm accumulation per axis, each axis
// on its own seed so the displacement fields stay uncorrelated.
func WarpFractal2D(x, y float64, seed int64, o Options) (float64, float64) {
	dx := FBM2D(x, y, seed, o)
	dy := FBM2D(x+warpOffsetX, y+warpOffsetY, seed+warpSeedStep, o)
	return x + dx*o.Amplitude, y + dy*o.Amplitude
}

// WarpFractal3D is the 3D variant of WarpFractal2D.
func WarpFractal3D(x, y, z float64, seed int64, o Options) (float64, float64, float64) {
	dx := FBM3D(x, y, z, seed, o)
	dy := FBM3D(x+warpOffsetX, y+warpOffsetY, z+warpOffsetZ, seed+warpSeedStep, o)
	dz := FBM3D(x+warpOffsetY, y+warpOffsetZ, z+warpOffsetX, seed+2*warpSeedStep, o)
	return x + dx*o.Amplitude, y + dy*o.Amplitude, z + dz*o.Amplitude
}

// WarpProgressive2D applies the basic warp layers times, each layer warping
// the already-warped coordinate with the amplitude divided by the 1-based
// layer index, compounding decaying distortion.
func WarpProgressive2D(x, y float64, seed int64, o Options, layers int) (float64, float64) {
	wx, wy := x, y
	for i := 1; i <= layers; i++ {
		lo := o
		lo.Amplitude = o.Amplitude / float64(i)
		wx, wy = Warp2D(wx, wy, seed, lo)
	}
	return wx, wy
}
