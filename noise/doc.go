// Package noise implements deterministic, seedable coherent noise kernels
// for 2D and 3D coordinates: gradient (Perlin-style) and hashed-value
// lattice noise, fractal combinators (fBm, billow, ridged multifractal,
// turbulence), cellular noise (Worley distances and Voronoi cell
// identities), and domain warping.
//
// Every function is a pure function of (coordinates, seed, options). The
// shared permutation table is built once at package init and never mutated,
// so all kernels are safe for concurrent use without coordination. The same
// inputs always produce bit-identical outputs.
package noise
