// Package mbtiles provides MBTiles format support for reading and writing
// tile databases of rendered noise fields.
package mbtiles

import (
	"fmt"
	"strconv"
)

// Metadata contains MBTiles metadata fields.
// Kind and Seed are noiseforge extensions stored under the
// "noise_kind" and "noise_seed" keys so an exported tileset
// records how it was generated.
type Metadata struct {
	Name        string // Human-readable tileset identifier
	Format      string // Tile data type (png, jpg, webp, pbf)
	Attribution string // Attribution text
	Description string // Human-readable description
	Type        string // "baselayer" or "overlay"
	Version     string // Version string
	Kind        string // Noise kind used to render the tiles
	Bounds      [4]float64
	Center      [3]float64
	Seed        int64 // Seed used to render the tiles
	MinZoom     int   // Minimum zoom level
	MaxZoom     int   // Maximum zoom level
}

// DefaultMetadata returns metadata for a noiseforge export of the given
// noise kind and seed over the given bounds.
func DefaultMetadata(kind string, seed int64, bounds [4]float64, minZoom, maxZoom int) Metadata {
	return Metadata{
		Name:        "noiseforge",
		Format:      "png",
		Attribution: "noiseforge",
		Description: fmt.Sprintf("Procedurally generated %s noise tiles", kind),
		Type:        "baselayer",
		Version:     "1.0",
		Kind:        kind,
		Seed:        seed,
		Bounds:      bounds,
		Center: [3]float64{
			(bounds[0] + bounds[2]) / 2,
			(bounds[1] + bounds[3]) / 2,
			float64(minZoom),
		},
		MinZoom: minZoom,
		MaxZoom: maxZoom,
	}
}

// ToMap converts Metadata to a map for database insertion.
func (m Metadata) ToMap() map[string]string {
	result := make(map[string]string)

	if m.Name != "" {
		result["name"] = m.Name
	}
	if m.Format != "" {
		result["format"] = m.Format
	}
	if m.MinZoom > 0 {
		result["minzoom"] = strconv.Itoa(m.MinZoom)
	}
	if m.MaxZoom > 0 {
		result["maxzoom"] = strconv.Itoa(m.MaxZoom)
	}
	if m.Bounds != [4]float64{} {
		result["bounds"] = fmt.Sprintf("%.6f,%.6f,%.6f,%.6f",
			m.Bounds[0], m.Bounds[1], m.Bounds[2], m.Bounds[3])
	}
	if m.Center != [3]float64{} {
		result["center"] = fmt.Sprintf("%.6f,%.6f,%d",
			m.Center[0], m.Center[1], int(m.Center[2]))
	}
	if m.Attribution != "" {
		result["attribution"] = m.Attribution
	}
	if m.Description != "" {
		result["description"] = m.Description
	}
	if m.Type != "" {
		result["type"] = m.Type
	}
	if m.Version != "" {
		result["version"] = m.Version
	}
	if m.Kind != "" {
		result["noise_kind"] = m.Kind
		result["noise_seed"] = strconv.FormatInt(m.Seed, 10)
	}

	return result
}
