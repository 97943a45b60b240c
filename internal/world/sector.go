// Package world provides the sector map: Voronoi tessellation, the sector
// adjacency graph, biome propagation, and placement of cities and resource
// nodes on top of it.
package world

import (
	"fmt"
	"strings"

	"github.com/talgya/sectormap/internal/geom"
)

// SectorID indexes a sector in its Map. It is the only way other
// structures refer to sectors.
type SectorID int

// Biome is the terrain type assigned to a sector.
type Biome uint8

const (
	BiomeNone      Biome = iota // Not yet assigned by propagation
	BiomePlains                 // Farmland, good for cities
	BiomeForest                 // Timber
	BiomeDesert                 // Settleable but barren
	BiomeMountains              // Ore
	BiomeWater                  // Lakes and inland seas
)

// Biomes lists every assignable biome in declaration order.
var Biomes = []Biome{BiomePlains, BiomeForest, BiomeDesert, BiomeMountains, BiomeWater}

// String returns a human-readable biome name.
func (b Biome) String() string {
	switch b {
	case BiomeNone:
		return "None"
	case BiomePlains:
		return "Plains"
	case BiomeForest:
		return "Forest"
	case BiomeDesert:
		return "Desert"
	case BiomeMountains:
		return "Mountains"
	case BiomeWater:
		return "Water"
	default:
		return "Unknown"
	}
}

// ParseBiome converts a case-insensitive biome name into a Biome.
func ParseBiome(name string) (Biome, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, b := range Biomes {
		if strings.ToLower(b.String()) == n {
			return b, nil
		}
	}
	if n == "mountain" {
		return BiomeMountains, nil
	}
	return BiomeNone, fmt.Errorf("unknown biome %q", name)
}

// MarshalText encodes the biome by name.
func (b Biome) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText accepts any name ParseBiome does, plus "None".
func (b *Biome) UnmarshalText(text []byte) error {
	if strings.EqualFold(strings.TrimSpace(string(text)), "none") {
		*b = BiomeNone
		return nil
	}
	v, err := ParseBiome(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// Sector is one polygon of the tessellation and one node of the map graph.
type Sector struct {
	ID SectorID `json:"id"`

	Site     geom.Point   `json:"site"`     // Generating point of the Voronoi cell
	Border   geom.Polygon `json:"border"`   // Counter-clockwise boundary
	Centroid geom.Point   `json:"centroid"` // Area-weighted centroid of Border

	Height float64 `json:"height"` // Noise sample, 0.0–1.0
	Biome  Biome   `json:"biome"`
	Cost   float64 `json:"cost"` // Traversal cost multiplier, floored at MinSectorCost

	// Adjacent sectors sharing a Voronoi edge, ascending by ID.
	Neighbors []SectorID `json:"neighbors"`
}

// Area returns the polygon area of the sector.
func (s *Sector) Area() float64 {
	return s.Border.Area()
}

// HasNeighbor reports whether id shares an edge with s.
func (s *Sector) HasNeighbor(id SectorID) bool {
	for _, n := range s.Neighbors {
		if n == id {
			return true
		}
	}
	return false
}
