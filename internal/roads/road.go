package roads

import (
	"fmt"
	"log/slog"

	"github.com/talgya/sectormap/internal/geom"
	"github.com/talgya/sectormap/internal/world"
)

// RoadID indexes a road in build order.
type RoadID int

// Road connects a city to one of its resource nodes.
type Road struct {
	ID     RoadID           `json:"id"`
	City   world.CityID     `json:"city"`
	Node   world.NodeID     `json:"node"`
	Start  world.SectorID   `json:"start"` // City sector
	End    world.SectorID   `json:"end"`   // Node sector
	Path   []world.SectorID `json:"path"`
	Cost   float64          `json:"cost"`
	Curve  *Curve           `json:"-"`
	Length float64          `json:"length"` // Arc length of Curve
}

// TravelTime returns how long a mover at speed units per second takes to
// cover the road.
func (r *Road) TravelTime(speed float64) float64 {
	if speed <= 0 {
		return 0
	}
	return r.Length / speed
}

// Route finds the least-cost path between two sectors and fits a curve
// through the centroids along it.
func Route(m *world.Map, start, end world.SectorID) (Path, *Curve, error) {
	path, err := FindPath(m, start, end)
	if err != nil {
		return Path{}, nil, err
	}
	points := make([]geom.Point, len(path.Sectors))
	for i, id := range path.Sectors {
		points[i] = m.Sectors[id].Centroid
	}
	return path, NewCurve(points), nil
}

// Build lays one road per (city, resource node) pair, cities in ID order
// and each city's nodes in placement order. A pair that cannot be routed
// is logged and skipped; the rest of the network is still built.
func Build(m *world.Map, cities []*world.City, nodes []*world.ResourceNode) []*Road {
	var roads []*Road
	for _, city := range cities {
		for _, nid := range city.ResourceNodes {
			if int(nid) < 0 || int(nid) >= len(nodes) {
				slog.Error("road skipped", "city", city.Name, "error", fmt.Errorf("node %d: unknown node", nid))
				continue
			}
			node := nodes[nid]
			path, curve, err := Route(m, city.Sector, node.Sector)
			if err != nil {
				slog.Error("road skipped: sector graph invariant violated",
					"city", city.Name,
					"node", node.ID,
					"error", err,
				)
				continue
			}
			roads = append(roads, &Road{
				ID:     RoadID(len(roads)),
				City:   city.ID,
				Node:   node.ID,
				Start:  city.Sector,
				End:    node.Sector,
				Path:   path.Sectors,
				Cost:   path.Cost,
				Curve:  curve,
				Length: curve.Length(),
			})
		}
	}
	slog.Info("roads built", "count", len(roads))
	return roads
}
