package noise

import "math"

// Axis decorrelation offsets for the per-axis feature jitter draws. Each
// axis hashes a shifted cell coordinate so the draws are independent.
const (
	jitterOffsetY = 1031
	jitterOffsetZ = 2063
)

// Cell2D is the full result of a 2D Voronoi query: the cell identity value,
// the raw (unclamped) F1 distance, and the owning cell's lattice coordinates.
type Cell2D struct {
	Value    float64
	Distance float64
	X, Y     int
}

// Cell3D is the 3D variant of Cell2D.
type Cell3D struct {
	Value    float64
	Distance float64
	X, Y, Z  int
}

// jitter01 maps a lattice hash to a jitter draw in [0, 1].
func jitter01(h int) float64 {
	return float64(h) / 255
}

func distance2(m Metric, dx, dy float64) float64 {
	switch m {
	case Manhattan:
		return math.Abs(dx) + math.Abs(dy)
	case Chebyshev:
		return math.Max(math.Abs(dx), math.Abs(dy))
	default:
		return math.Sqrt(dx*dx + dy*dy)
	}
}

func distance3(m Metric, dx, dy, dz float64) float64 {
	switch m {
	case Manhattan:
		return math.Abs(dx) + math.Abs(dy) + math.Abs(dz)
	case Chebyshev:
		return math.Max(math.Abs(dx), math.Max(math.Abs(dy), math.Abs(dz)))
	default:
		return math.Sqrt(dx*dx + dy*dy + dz*dz)
	}
}

// featurePoint2 places the jittered feature point of cell (cx, cy).
// Jitter 1 scatters it anywhere in the unit cell, jitter 0 pins it to the
// cell center.
func featurePoint2(cx, cy, seed int, jitter float64) (float64, float64) {
	jx := jitter01(hash2(cx, cy, seed))
	jy := jitter01(hash2(cx+jitterOffsetY, cy+jitterOffsetY, seed))
	px := float64(cx) + 0.5 + (jx-0.5)*jitter
	py := float64(cy) + 0.5 + (jy-0.5)*jitter
	return px, py
}

func featurePoint3(cx, cy, cz, seed int, jitter float64) (float64, float64, float64) {
	jx := jitter01(hash3(cx, cy, cz, seed))
	jy := jitter01(hash3(cx+jitterOffsetY, cy+jitterOffsetY, cz+jitterOffsetY, seed))
	jz := jitter01(hash3(cx+jitterOffsetZ, cy+jitterOffsetZ, cz+jitterOffsetZ, seed))
	px := float64(cx) + 0.5 + (jx-0.5)*jitter
	py := float64(cy) + 0.5 + (jy-0.5)*jitter
	pz := float64(cz) + 0.5 + (jz-0.5)*jitter
	return px, py, pz
}

// scan2 runs the 3x3 neighborhood scan around the scaled query point and
// returns the two nearest feature distances plus the cell owning F1. Ties
// keep the first smaller distance seen, so results are deterministic for a
// fixed scan order.
func scan2(x, y float64, seed int64, o Options) (f1, f2 float64, ownX, ownY int) {
	s := int(seed)
	px := x * o.Frequency
	py := y * o.Frequency
	xi := int(math.Floor(px))
	yi := int(math.Floor(py))

	f1 = math.MaxFloat64
	f2 = math.MaxFloat64
	for cy := yi - 1; cy <= yi+1; cy++ {
		for cx := xi - 1; cx <= xi+1; cx++ {
			fx, fy := featurePoint2(cx, cy, s, o.Jitter)
			d := distance2(o.Metric, px-fx, py-fy)
			if d < f1 {
				f2 = f1
				f1 = d
				ownX, ownY = cx, cy
			} else if d < f2 {
				f2 = d
			}
		}
	}
	return f1, f2, ownX, ownY
}

func scan3(x, y, z float64, seed int64, o Options) (f1, f2 float64, ownX, ownY, ownZ int) {
	s := int(seed)
	px := x * o.Frequency
	py := y * o.Frequency
	pz := z * o.Frequency
	xi := int(math.Floor(px))
	yi := int(math.Floor(py))
	zi := int(math.Floor(pz))

	f1 = math.MaxFloat64
	f2 = math.MaxFloat64
	for cz := zi - 1; cz <= zi+1; cz++ {
		for cy := yi - 1; cy <= yi+1; cy++ {
			for cx := xi - 1; cx <= xi+1; cx++ {
				fx, fy, fz := featurePoint3(cx, cy, cz, s, o.Jitter)
				d := distance3(o.Metric, px-fx, py-fy, pz-fz)
				if d < f1 {
					f2 = f1
					f1 = d
					ownX, ownY, ownZ = cx, cy, cz
				} else if d < f2 {
					f2 = d
				}
			}
		}
	}
	return f1, f2, ownX, ownY, ownZ
}

func worleyValue(f1, f2 float64, mode ReturnMode) float64 {
	switch mode {
	case ReturnF2:
		return clamp01(f2)
	case ReturnF2MinusF1:
		return clamp01(f2 - f1)
	case ReturnF1F2Mean:
		return clamp01((f1 + f2) / 2)
	default:
		return clamp01(f1)
	}
}

// Worley2D returns a feature-distance value in [0, 1] derived from the two
// nearest feature points per o.Return.
func Worley2D(x, y float64, seed int64, o Options) float64 {
	f1, f2, _, _ := scan2(x, y, seed, o)
	return worleyValue(f1, f2, o.Return)
}

// Worley3D is the 3D variant of Worley2D.
func Worley3D(x, y, z float64, seed int64, o Options) float64 {
	f1, f2, _, _, _ := scan3(x, y, z, seed, o)
	return worleyValue(f1, f2, o.Return)
}

// cellValue2 is the per-cell identity in [0, 1] used by Voronoi modes.
func cellValue2(cx, cy, seed int) float64 {
	return float64(hash2(cx, cy, seed)) / 255
}

func cellValue3(cx, cy, cz, seed int) float64 {
	return float64(hash3(cx, cy, cz, seed)) / 255
}

// Voronoi2D returns a cell-identity view of the feature scatter: the owning
// cell's pseudo-random value, the clamped F1 distance, or a 50/50 blend,
// per o.Return. Output is in [0, 1].
func Voronoi2D(x, y float64, seed int64, o Options) float64 {
	f1, _, cx, cy := scan2(x, y, seed, o)
	switch o.Return {
	case ReturnDistance:
		return clamp01(f1)
	case ReturnBoth:
		return 0.5*cellValue2(cx, cy, int(seed)) + 0.5*clamp01(f1)
	default:
		return cellValue2(cx, cy, int(seed))
	}
}

// Voronoi3D is the 3D variant of Voronoi2D.
func Voronoi3D(x, y, z float64, seed int64, o Options) float64 {
	f1, _, cx, cy, cz := scan3(x, y, z, seed, o)
	switch o.Return {
	case ReturnDistance:
		return clamp01(f1)
	case ReturnBoth:
		return 0.5*cellValue3(cx, cy, cz, int(seed)) + 0.5*clamp01(f1)
	default:
		return cellValue3(cx, cy, cz, int(seed))
	}
}

// VoronoiCell2D exposes the raw scan result for callers that need per-region
// metadata: the cell identity, the unclamped F1 distance, and the owning
// cell's lattice coordinates (stable keys for biomes, territories, palettes).
func VoronoiCell2D(x, y float64, seed int64, o Options) Cell2D {
	f1, _, cx, cy := scan2(x, y, seed, o)
	return Cell2D{
		Value:    cellValue2(cx, cy, int(seed)),
		Distance: f1,
		X:        cx,
		Y:        cy,
	}
}

// VoronoiCell3D is the 3D variant of VoronoiCell2D.
func VoronoiCell3D(x, y, z float64, seed int64, o Options) Cell3D {
	f1, _, cx, cy, cz := scan3(x, y, z, seed, o)
	return Cell3D{
		Value:    cellValue3(cx, cy, cz, int(seed)),
		Distance: f1,
		X:        cx,
		Y:        cy,
		Z:        cz,
	}
}
