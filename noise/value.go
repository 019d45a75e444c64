package noise

import "math"

// cornerValue maps a lattice hash to a scalar in [-1, 1].
func cornerValue(h int) float64 {
	return float64(h)/127.5 - 1
}

// Value2D samples hashed-value noise at (x, y): each lattice corner
// contributes a single hashed scalar instead of a gradient dot product.
// Cheaper than Gradient2D but shows axis-aligned blocking at low frequency.
func Value2D(x, y float64, seed int64) float64 {
	s := int(seed)
	fx, fy := math.Floor(x), math.Floor(y)
	xi, yi := int(fx), int(fy)

	u := fade(x - fx)
	v := fade(y - fy)

	v00 := cornerValue(hash2(xi, yi, s))
	v10 := cornerValue(hash2(xi+1, yi, s))
	v01 := cornerValue(hash2(xi, yi+1, s))
	v11 := cornerValue(hash2(xi+1, yi+1, s))

	return lerp(lerp(v00, v10, u), lerp(v01, v11, u), v)
}

// Value3D samples hashed-value noise at (x, y, z).
func Value3D(x, y, z float64, seed int64) float64 {
	s := int(seed)
	fx, fy, fz := math.Floor(x), math.Floor(y), math.Floor(z)
	xi, yi, zi := int(fx), int(fy), int(fz)

	u := fade(x - fx)
	v := fade(y - fy)
	w := fade(z - fz)

	v000 := cornerValue(hash3(xi, yi, zi, s))
	v100 := cornerValue(hash3(xi+1, yi, zi, s))
	v010 := cornerValue(hash3(xi, yi+1, zi, s))
	v110 := cornerValue(hash3(xi+1, yi+1, zi, s))
	v001 := cornerValue(hash3(xi, yi, zi+1, s))
	v101 := cornerValue(hash3(xi+1, yi, zi+1, s))
	v011 := cornerValue(hash3(xi, yi+1, zi+1, s))
	v111 := cornerValue(hash3(xi+1, yi+1, zi+1, s))

	x00 := lerp(v000, v100, u)
	x10 := lerp(v010, v110, u)
	x01 := lerp(v001, v101, u)
	x11 := lerp(v011, v111, u)

	return lerp(lerp(x00, x10, v), lerp(x01, x11, v), w)
}

// sampleBase2 resolves the configured base kernel for fractals and warps.
func sampleBase2(k Kernel, x, y float64, seed int64) float64 {
	if k == KernelValue {
		return Value2D(x, y, seed)
	}
	return Gradient2D(x, y, seed)
}

func sampleBase3(k Kernel, x, y, z float64, seed int64) float64 {
	if k == KernelValue {
		return Value3D(x, y, z, seed)
	}
	return Gradient3D(x, y, z, seed)
}
