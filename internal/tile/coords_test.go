package tile

import (
	"testing"
)

func TestCoordsString(t *testing.T) {
	tests := []struct {
		coords   Coords
		expected string
	}{
		{Coords{Z: 13, X: 4297, Y: 2754}, "z13_x4297_y2754"},
		{Coords{Z: 0, X: 0, Y: 0}, "z0_x0_y0"},
		{Coords{Z: 18, X: 12345, Y: 67890}, "z18_x12345_y67890"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.coords.String(); got != tt.expected {
				t.Errorf("String() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestCoordsPath(t *testing.T) {
	coords := Coords{Z: 13, X: 4297, Y: 2754}
	if got := coords.Path("png"); got != "z13_x4297_y2754.png" {
		t.Errorf("Path(png) = %s, want z13_x4297_y2754.png", got)
	}
}

func TestParseCoords(t *testing.T) {
	c, err := ParseCoords("z13_x4297_y2754")
	if err != nil {
		t.Fatalf("ParseCoords failed: %v", err)
	}
	if c != (Coords{Z: 13, X: 4297, Y: 2754}) {
		t.Errorf("ParseCoords = %+v", c)
	}

	if _, err := ParseCoords("nonsense"); err == nil {
		t.Error("ParseCoords accepted malformed input")
	}
}

func TestWindowNesting(t *testing.T) {
	// The root tile spans the whole plane; a child window must sit inside
	// its parent's window.
	root := NewCoords(0, 0, 0).Window()
	if root[0] >= root[2] || root[1] >= root[3] {
		t.Fatalf("degenerate root window: %v", root)
	}

	parent := NewCoords(3, 4, 2).Window()
	child := NewCoords(4, 8, 4).Window()
	if child[0] < parent[0]-1e-9 || child[2] > parent[2]+1e-9 ||
		child[1] < parent[1]-1e-9 || child[3] > parent[3]+1e-9 {
		t.Errorf("child window %v escapes parent %v", child, parent)
	}
}

func TestWindowAdjacency(t *testing.T) {
	// Horizontally adjacent tiles must share an edge so the sampled field
	// is continuous across tile seams.
	a := NewCoords(5, 10, 12).Window()
	b := NewCoords(5, 11, 12).Window()
	if diff := a[2] - b[0]; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("adjacent tiles do not share an edge: %g vs %g", a[2], b[0])
	}
}

func TestTilesInBBox(t *testing.T) {
	bbox := [4]float64{9.7, 52.3, 9.9, 52.4}

	tiles := TilesInBBox(bbox, 1, 3)
	if len(tiles) == 0 {
		t.Fatal("no tiles for valid bbox")
	}
	for _, c := range tiles {
		if c.Z < 1 || c.Z > 3 {
			t.Errorf("tile %s outside zoom range", c.String())
		}
	}

	// Higher zoom never yields fewer tiles over the same bbox.
	perZoom := map[uint32]int{}
	for _, c := range TilesInBBox(bbox, 4, 8) {
		perZoom[c.Z]++
	}
	for z := uint32(5); z <= 8; z++ {
		if perZoom[z] < perZoom[z-1] {
			t.Errorf("zoom %d has %d tiles, fewer than zoom %d with %d", z, perZoom[z], z-1, perZoom[z-1])
		}
	}
}
