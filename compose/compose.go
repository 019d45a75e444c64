// Package compose holds the thin numeric utilities host integrations use to
// shape noise values: range mapping, clamping, weighted combination, and a
// coordinate-hash convenience. It has no algorithmic content of its own.
package compose

import "github.com/forgeworks/noiseforge/noise"

// MapRange linearly remaps v from [inLo, inHi] to [outLo, outHi]. A
// degenerate input range returns outLo.
func MapRange(v, inLo, inHi, outLo, outHi float64) float64 {
	if inHi == inLo {
		return outLo
	}
	return outLo + (v-inLo)/(inHi-inLo)*(outHi-outLo)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Weighted pairs a pre-computed scalar with its blend weight.
type Weighted struct {
	Value  float64
	Weight float64
}

// Combine returns the weighted mean of the inputs. An empty slice or a zero
// total weight yields 0.
func Combine(parts []Weighted) float64 {
	sum := 0.0
	weight := 0.0
	for _, p := range parts {
		sum += p.Value * p.Weight
		weight += p.Weight
	}
	if weight == 0 {
		return 0
	}
	return sum / weight
}

// CoordHash returns a reproducible pseudo-random value in [0, 1] for an
// integer coordinate, handy for placement and palette decisions that do not
// need a coherent field.
func CoordHash(x, y int, seed int64) float64 {
	return float64(noise.Hash2D(x, y, seed)) / 255
}

// CoordHash3 is the 3D variant of CoordHash.
func CoordHash3(x, y, z int, seed int64) float64 {
	return float64(noise.Hash3D(x, y, z, seed)) / 255
}
