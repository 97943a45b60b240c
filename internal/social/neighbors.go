// Package social derives the relations between cities that later history
// and trade stages start from.
package social

import (
	"log/slog"
	"sort"

	"github.com/talgya/sectormap/internal/roads"
	"github.com/talgya/sectormap/internal/world"
)

// Neighbor describes another city as seen from one city.
type Neighbor struct {
	City         world.CityID `json:"city"`
	Distance     float64      `json:"distance"`      // Straight line between city centroids
	RoadDistance float64      `json:"road_distance"` // Arc length of the cheapest route
}

// Relations returns, for every city, all other reachable cities ordered by
// road distance, nearest first. Ties fall back to city ID. Each pair is
// routed once and shared by both ends.
func Relations(m *world.Map, cities []*world.City) map[world.CityID][]Neighbor {
	out := make(map[world.CityID][]Neighbor, len(cities))
	for _, c := range cities {
		out[c.ID] = nil
	}

	for i, a := range cities {
		for _, b := range cities[i+1:] {
			_, curve, err := roads.Route(m, a.Sector, b.Sector)
			if err != nil {
				slog.Warn("cities unreachable", "from", a.Name, "to", b.Name, "error", err)
				continue
			}
			straight := a.Position.Dist(b.Position)
			road := curve.Length()
			out[a.ID] = append(out[a.ID], Neighbor{City: b.ID, Distance: straight, RoadDistance: road})
			out[b.ID] = append(out[b.ID], Neighbor{City: a.ID, Distance: straight, RoadDistance: road})
		}
	}

	for _, ns := range out {
		sort.SliceStable(ns, func(i, j int) bool {
			if ns[i].RoadDistance != ns[j].RoadDistance {
				return ns[i].RoadDistance < ns[j].RoadDistance
			}
			return ns[i].City < ns[j].City
		})
	}
	return out
}

// Nearest returns the closest city by road, if any.
func Nearest(rel map[world.CityID][]Neighbor, id world.CityID) (Neighbor, bool) {
	ns := rel[id]
	if len(ns) == 0 {
		return Neighbor{}, false
	}
	return ns[0], true
}
