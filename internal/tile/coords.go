// Package tile maps Web Mercator z/x/y tile coordinates onto the noise
// sampling plane. A tile's geographic bounds double as its sampling window,
// so neighboring tiles sample a continuous field and zooming refines it.
package tile

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
)

// Coords identifies a tile in the Web Mercator tile system (z/x/y).
type Coords struct {
	Z uint32
	X uint32
	Y uint32
}

// NewCoords creates Coords from zoom, x, y values.
func NewCoords(z, x, y uint32) Coords {
	return Coords{Z: z, X: x, Y: y}
}

// String returns the tile coordinate as "z{zoom}_x{x}_y{y}".
func (c Coords) String() string {
	return fmt.Sprintf("z%d_x%d_y%d", c.Z, c.X, c.Y)
}

// Path returns the flat file name for this tile.
func (c Coords) Path(extension string) string {
	return fmt.Sprintf("%s.%s", c.String(), extension)
}

// Tile returns the maptile.Tile for this coordinate.
func (c Coords) Tile() maptile.Tile {
	return maptile.New(c.X, c.Y, maptile.Zoom(c.Z))
}

// Window returns the sampling window for this tile as
// [minX, minY, maxX, maxY] on the noise plane (WGS84 degrees).
func (c Coords) Window() [4]float64 {
	bound := c.Tile().Bound()
	return [4]float64{
		bound.Min.Lon(),
		bound.Min.Lat(),
		bound.Max.Lon(),
		bound.Max.Lat(),
	}
}

// Center returns the center of the sampling window.
func (c Coords) Center() (float64, float64) {
	w := c.Window()
	return (w[0] + w[2]) / 2, (w[1] + w[3]) / 2
}

// ParseCoords parses a tile string like "z13_x4297_y2754".
func ParseCoords(s string) (Coords, error) {
	var c Coords
	if _, err := fmt.Sscanf(s, "z%d_x%d_y%d", &c.Z, &c.X, &c.Y); err != nil {
		return c, fmt.Errorf("invalid tile coordinate format: %s", s)
	}
	return c, nil
}

// TilesInBBox returns all tile coordinates within a bounding box across a
// zoom range, computed independently per zoom level.
// bbox is [minX, minY, maxX, maxY] on the noise plane.
func TilesInBBox(bbox [4]float64, zoomMin, zoomMax int) []Coords {
	minPoint := orb.Point{bbox[0], bbox[1]}
	maxPoint := orb.Point{bbox[2], bbox[3]}

	var tiles []Coords
	for z := zoomMin; z <= zoomMax; z++ {
		zoom := maptile.Zoom(z)

		minTile := maptile.At(minPoint, zoom)
		maxTile := maptile.At(maxPoint, zoom)

		minX, maxX := minTile.X, maxTile.X
		if minX > maxX {
			minX, maxX = maxX, minX
		}
		// Tile Y grows southward, so the geographic min/max invert.
		minY, maxY := minTile.Y, maxTile.Y
		if minY > maxY {
			minY, maxY = maxY, minY
		}

		for x := minX; x <= maxX; x++ {
			for y := minY; y <= maxY; y++ {
				tiles = append(tiles, NewCoords(uint32(z), x, y))
			}
		}
	}
	return tiles
}
