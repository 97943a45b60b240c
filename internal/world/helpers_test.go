package world

import (
	"github.com/talgya/sectormap/internal/entropy"
	"github.com/talgya/sectormap/internal/geom"
)

// gridMap builds a cols×rows map of unit-10 square sectors with
// 4-neighbour adjacency, all carrying biome b.
func gridMap(cols, rows int, b Biome) *Map {
	const cell = 10.0
	m := NewMap(float64(cols)*cell, float64(rows)*cell)
	id := func(x, y int) SectorID { return SectorID(y*cols + x) }
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			r := geom.R(float64(x)*cell, float64(y)*cell, float64(x+1)*cell, float64(y+1)*cell)
			poly := r.Polygon()
			s := &Sector{
				ID:       id(x, y),
				Site:     poly.Centroid(),
				Border:   poly,
				Centroid: poly.Centroid(),
				Height:   0.5,
				Biome:    b,
				Cost:     1,
			}
			// Ascending ID order: up, left, right, down.
			if y > 0 {
				s.Neighbors = append(s.Neighbors, id(x, y-1))
			}
			if x > 0 {
				s.Neighbors = append(s.Neighbors, id(x-1, y))
			}
			if x < cols-1 {
				s.Neighbors = append(s.Neighbors, id(x+1, y))
			}
			if y < rows-1 {
				s.Neighbors = append(s.Neighbors, id(x, y+1))
			}
			m.Sectors = append(m.Sectors, s)
		}
	}
	return m
}

func generated(seed int64, cfg GenConfig) (*Map, *entropy.Stream, error) {
	rs := entropy.NewStream(seed)
	m, err := Generate(cfg, rs)
	return m, rs, err
}
