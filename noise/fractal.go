package noise

import "math"

// FBM2D accumulates o.Octaves octaves of the base kernel, scaling frequency
// by o.Lacunarity and amplitude by o.Persistence each pass, and normalizes
// by the accumulated amplitude. Output is in the base kernel's range
// (roughly [-1, 1]). Octaves <= 0 yields 0.
func FBM2D(x, y float64, seed int64, o Options) float64 {
	sum := 0.0
	norm := 0.0
	freq := o.Frequency
	amp := o.Amplitude
	for i := 0; i < o.Octaves; i++ {
		s := seed + int64(i)*octaveSeedStep
		sum += sampleBase2(o.Base, x*freq, y*freq, s) * amp
		norm += amp
		freq *= o.Lacunarity
		amp *= o.Persistence
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

// FBM3D is the 3D variant of FBM2D.
func FBM3D(x, y, z float64, seed int64, o Options) float64 {
	sum := 0.0
	norm := 0.0
	freq := o.Frequency
	amp := o.Amplitude
	for i := 0; i < o.Octaves; i++ {
		s := seed + int64(i)*octaveSeedStep
		sum += sampleBase3(o.Base, x*freq, y*freq, z*freq, s) * amp
		norm += amp
		freq *= o.Lacunarity
		amp *= o.Persistence
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

// Billow2D sums absolute octave values, producing the bulbous cloud-like
// field, then rescales the normalized [0,1] sum back to [-1, 1].
func Billow2D(x, y float64, seed int64, o Options) float64 {
	sum := 0.0
	norm := 0.0
	freq := o.Frequency
	amp := o.Amplitude
	for i := 0; i < o.Octaves; i++ {
		s := seed + int64(i)*octaveSeedStep
		sum += math.Abs(sampleBase2(o.Base, x*freq, y*freq, s)) * amp
		norm += amp
		freq *= o.Lacunarity
		amp *= o.Persistence
	}
	if norm == 0 {
		return 0
	}
	return sum/norm*2 - 1
}

// Billow3D is the 3D variant of Billow2D.
func Billow3D(x, y, z float64, seed int64, o Options) float64 {
	sum := 0.0
	norm := 0.0
	freq := o.Frequency
	amp := o.Amplitude
	for i := 0; i < o.Octaves; i++ {
		s := seed + int64(i)*octaveSeedStep
		sum += math.Abs(sampleBase3(o.Base, x*freq, y*freq, z*freq, s)) * amp
		norm += amp
		freq *= o.Lacunarity
		amp *= o.Persistence
	}
	if norm == 0 {
		return 0
	}
	return sum/norm*2 - 1
}

// Ridged2D is the ridged multifractal: each octave folds the signal into a
// ridge (offset - |noise|, squared) and feeds a weight recurrence so strong
// ridges suppress finer detail beneath them. The evaluation order (signal,
// then weight update, then spectral-weighted accumulate) is load-bearing;
// reordering changes the field.
func Ridged2D(x, y float64, seed int64, o Options) float64 {
	if o.Octaves <= 0 {
		return 0
	}
	sum := 0.0
	weight := 1.0
	freq := o.Frequency
	for i := 0; i < o.Octaves; i++ {
		s := seed + int64(i)*octaveSeedStep
		sig := sampleBase2(o.Base, x*freq, y*freq, s)
		sig = o.Offset - math.Abs(sig)
		sig *= sig
		sig *= weight
		weight = clamp01(sig * o.Gain)
		sum += sig * math.Pow(freq, -o.Gain)
		freq *= o.Lacunarity
	}
	return sum*1.25 - 1
}

// Ridged3D is the 3D variant of Ridged2D.
func Ridged3D(x, y, z float64, seed int64, o Options) float64 {
	if o.Octaves <= 0 {
		return 0
	}
	sum := 0.0
	weight := 1.0
	freq := o.Frequency
	for i := 0; i < o.Octaves; i++ {
		s := seed + int64(i)*octaveSeedStep
		sig := sampleBase3(o.Base, x*freq, y*freq, z*freq, s)
		sig = o.Offset - math.Abs(sig)
		sig *= sig
		sig *= weight
		weight = clamp01(sig * o.Gain)
		sum += sig * math.Pow(freq, -o.Gain)
		freq *= o.Lacunarity
	}
	return sum*1.25 - 1
}

// Turbulence2D sums absolute octave values like billow but keeps the
// normalized sum in [0,1] and raises it to o.Power, which sharpens or
// flattens the contrast of the field.
func Turbulence2D(x, y float64, seed int64, o Options) float64 {
	sum := 0.0
	norm := 0.0
	freq := o.Frequency
	amp := o.Amplitude
	for i := 0; i < o.Octaves; i++ {
		s := seed + int64(i)*octaveSeedStep
		sum += math.Abs(sampleBase2(o.Base, x*freq, y*freq, s)) * amp
		norm += amp
		freq *= o.Lacunarity
		amp *= o.Persistence
	}
	if norm == 0 {
		return 0
	}
	return math.Pow(sum/norm, o.Power)
}

// Turbulence3D is the 3D variant of Turbulence2D.
func Turbulence3D(x, y, z float64, seed int64, o Options) float64 {
	sum := 0.0
	norm := 0.0
	freq := o.Frequency
	amp := o.Amplitude
	for i := 0; i < o.Octaves; i++ {
		s := seed + int64(i)*octaveSeedStep
		sum += math.Abs(sampleBase3(o.Base, x*freq, y*freq, z*freq, s)) * amp
		norm += amp
		freq *= o.Lacunarity
		amp *= o.Persistence
	}
	if norm == 0 {
		return 0
	}
	return math.Pow(sum/norm, o.Power)
}
