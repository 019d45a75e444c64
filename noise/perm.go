package noise

const tableMask = 255

// basePerm is Ken Perlin's reference permutation of 0..255. Using a fixed
// table keeps fields reproducible across processes and platforms; seeds
// decorrelate fields by offsetting the lookup chain, not by reshuffling.
var basePerm = [256]uint8{
	151, 160, 137, 91, 90, 15, 131, 13, 201, 95, 96, 53, 194, 233, 7, 225,
	140, 36, 103, 30, 69, 142, 8, 99, 37, 240, 21, 10, 23, 190, 6, 148,
	247, 120, 234, 75, 0, 26, 197, 62, 94, 252, 219, 203, 117, 35, 11, 32,
	57, 177, 33, 88, 237, 149, 56, 87, 174, 20, 125, 136, 171, 168, 68, 175,
	74, 165, 71, 134, 139, 48, 27, 166, 77, 146, 158, 231, 83, 111, 229, 122,
	60, 211, 133, 230, 220, 105, 92, 41, 55, 46, 245, 40, 244, 102, 143, 54,
	65, 25, 63, 161, 1, 216, 80, 73, 209, 76, 132, 187, 208, 89, 18, 169,
	200, 196, 135, 130, 116, 188, 159, 86, 164, 100, 109, 198, 173, 186, 3, 64,
	52, 217, 226, 250, 124, 123, 5, 202, 38, 147, 118, 126, 255, 82, 85, 212,
	207, 206, 59, 227, 47, 16, 58, 17, 182, 189, 28, 42, 223, 183, 170, 213,
	119, 248, 152, 2, 44, 154, 163, 70, 221, 153, 101, 155, 167, 43, 172, 9,
	129, 22, 39, 253, 19, 98, 108, 110, 79, 113, 224, 232, 178, 185, 112, 104,
	218, 246, 97, 228, 251, 34, 242, 193, 238, 210, 144, 12, 191, 179, 162, 241,
	81, 51, 145, 235, 249, 14, 239, 107, 49, 192, 214, 31, 181, 199, 106, 157,
	184, 84, 204, 176, 115, 121, 50, 45, 127, 4, 150, 254, 138, 236, 205, 93,
	222, 114, 67, 29, 24, 72, 243, 141, 128, 195, 78, 66, 215, 61, 156, 180,
}

// perm is basePerm doubled to 512 entries so chained lookups never need a
// modulo: the running hash is at most 255 and the next masked axis adds at
// most 255, keeping every index below 512.
var perm [512]uint8

func init() {
	for i, v := range basePerm {
		perm[i] = v
		perm[i+256] = v
	}
}

// hash2 folds two lattice coordinates and a seed into a byte. The seed
// offsets the first axis only, so distinct seeds walk different lookup
// chains over the same geometry.
func hash2(x, y, seed int) int {
	h := int(perm[(x+seed)&tableMask])
	return int(perm[h+(y&tableMask)])
}

// hash3 folds three lattice coordinates and a seed into a byte.
func hash3(x, y, z, seed int) int {
	h := int(perm[(x+seed)&tableMask])
	h = int(perm[h+(y&tableMask)])
	return int(perm[h+(z&tableMask)])
}

// Hash2D exposes the lattice hash for callers that need reproducible
// per-coordinate randomness (region keys, placement, palette picks).
// The result is in [0, 255].
func Hash2D(x, y int, seed int64) int {
	return hash2(x, y, int(seed))
}

// Hash3D is the 3D variant of Hash2D.
func Hash3D(x, y, z int, seed int64) int {
	return hash3(x, y, z, int(seed))
}
