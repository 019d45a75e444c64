package noise

import "math"

// grad2 holds the 8 gradient directions for 2D: the four axes and four
// diagonals. Deliberately not normalized; the output range stays roughly
// [-1,1] and is not clipped.
var grad2 = [8][2]float64{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
}

// grad3 holds the 12 gradient directions for 3D, the edge centers of a cube.
var grad3 = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

// fade is the quintic 6t^5 - 15t^4 + 10t^3: zero first and second
// derivatives at t=0 and t=1, so octave boundaries stay artifact-free.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func gradDot2(h int, x, y float64) float64 {
	g := &grad2[h&7]
	return g[0]*x + g[1]*y
}

func gradDot3(h int, x, y, z float64) float64 {
	g := &grad3[h%12]
	return g[0]*x + g[1]*y + g[2]*z
}

// Gradient2D samples Perlin-style gradient noise at (x, y). The result is
// approximately in [-1, 1] and is exactly 0 at integer lattice points.
func Gradient2D(x, y float64, seed int64) float64 {
	s := int(seed)
	fx, fy := math.Floor(x), math.Floor(y)
	xi, yi := int(fx), int(fy)
	dx, dy := x-fx, y-fy

	u := fade(dx)
	v := fade(dy)

	n00 := gradDot2(hash2(xi, yi, s), dx, dy)
	n10 := gradDot2(hash2(xi+1, yi, s), dx-1, dy)
	n01 := gradDot2(hash2(xi, yi+1, s), dx, dy-1)
	n11 := gradDot2(hash2(xi+1, yi+1, s), dx-1, dy-1)

	return lerp(lerp(n00, n10, u), lerp(n01, n11, u), v)
}

// Gradient3D samples Perlin-style gradient noise at (x, y, z).
func Gradient3D(x, y, z float64, seed int64) float64 {
	s := int(seed)
	fx, fy, fz := math.Floor(x), math.Floor(y), math.Floor(z)
	xi, yi, zi := int(fx), int(fy), int(fz)
	dx, dy, dz := x-fx, y-fy, z-fz

	u := fade(dx)
	v := fade(dy)
	w := fade(dz)

	n000 := gradDot3(hash3(xi, yi, zi, s), dx, dy, dz)
	n100 := gradDot3(hash3(xi+1, yi, zi, s), dx-1, dy, dz)
	n010 := gradDot3(hash3(xi, yi+1, zi, s), dx, dy-1, dz)
	n110 := gradDot3(hash3(xi+1, yi+1, zi, s), dx-1, dy-1, dz)
	n001 := gradDot3(hash3(xi, yi, zi+1, s), dx, dy, dz-1)
	n101 := gradDot3(hash3(xi+1, yi, zi+1, s), dx-1, dy, dz-1)
	n011 := gradDot3(hash3(xi, yi+1, zi+1, s), dx, dy-1, dz-1)
	n111 := gradDot3(hash3(xi+1, yi+1, zi+1, s), dx-1, dy-1, dz-1)

	x00 := lerp(n000, n100, u)
	x10 := lerp(n010, n110, u)
	x01 := lerp(n001, n101, u)
	x11 := lerp(n011, n111, u)

	return lerp(lerp(x00, x10, v), lerp(x01, x11, v), w)
}
