package world

import (
	"errors"
	"fmt"

	"github.com/talgya/sectormap/internal/geom"
)

// ErrUnknownSector is returned when a SectorID does not name a sector in the map.
var ErrUnknownSector = errors.New("unknown sector")

// Map owns every sector of a generated world. Sectors are stored by ID so
// all cross references are plain indexes.
type Map struct {
	Width   float64   `json:"width"`
	Height  float64   `json:"height"`
	Sectors []*Sector `json:"sectors"`
}

// NewMap creates an empty map covering [0,width]×[0,height].
func NewMap(width, height float64) *Map {
	return &Map{Width: width, Height: height}
}

// Bounds returns the clip rectangle of the map.
func (m *Map) Bounds() geom.Rect {
	return geom.R(0, 0, m.Width, m.Height)
}

// Len returns the number of sectors.
func (m *Map) Len() int {
	return len(m.Sectors)
}

// Sector returns the sector with the given ID.
func (m *Map) Sector(id SectorID) (*Sector, error) {
	if id < 0 || int(id) >= len(m.Sectors) {
		return nil, fmt.Errorf("sector %d: %w", id, ErrUnknownSector)
	}
	return m.Sectors[id], nil
}

// MinSectorCost is the floor applied to cost multipliers. Edge costs never
// fall below centroid distance, which keeps straight-line estimates admissible.
const MinSectorCost = 1.0

// EdgeCost is the traversal cost between two adjacent sectors: centroid
// distance scaled by the mean of their cost multipliers, each clamped to
// MinSectorCost.
func (m *Map) EdgeCost(a, b *Sector) float64 {
	ca := max(a.Cost, MinSectorCost)
	cb := max(b.Cost, MinSectorCost)
	return a.Centroid.Dist(b.Centroid) * 0.5 * (ca + cb)
}

// TotalArea sums the polygon areas of all sectors.
func (m *Map) TotalArea() float64 {
	total := 0.0
	for _, s := range m.Sectors {
		total += s.Area()
	}
	return total
}

// Connected reports whether every sector is reachable from sector 0.
func (m *Map) Connected() bool {
	if len(m.Sectors) == 0 {
		return true
	}
	return len(m.Reachable(0)) == len(m.Sectors)
}

// Reachable returns the IDs reachable from start, in BFS order.
func (m *Map) Reachable(start SectorID) []SectorID {
	if _, err := m.Sector(start); err != nil {
		return nil
	}
	visited := make([]bool, len(m.Sectors))
	visited[start] = true
	order := []SectorID{start}
	for i := 0; i < len(order); i++ {
		for _, n := range m.Sectors[order[i]].Neighbors {
			if !visited[n] {
				visited[n] = true
				order = append(order, n)
			}
		}
	}
	return order
}

// BiomeCounts returns how many sectors carry each biome.
func (m *Map) BiomeCounts() map[Biome]int {
	counts := make(map[Biome]int)
	for _, s := range m.Sectors {
		counts[s.Biome]++
	}
	return counts
}

// String returns a summary of the map.
func (m *Map) String() string {
	return fmt.Sprintf("Map(%gx%g, sectors=%d)", m.Width, m.Height, m.Len())
}
