// Package roads finds least-cost routes across the sector graph and fits
// smooth curves through them.
package roads

import (
	"errors"
	"fmt"
	"math"

	"github.com/emirpasic/gods/queues/priorityqueue"
	"github.com/zyedidia/generic/mapset"

	"github.com/talgya/sectormap/internal/world"
)

// ErrNoPath is returned when the two sectors are not connected.
var ErrNoPath = errors.New("no path between sectors")

// Path is a walk through adjacent sectors, start first.
type Path struct {
	Sectors []world.SectorID `json:"sectors"`
	Cost    float64          `json:"cost"`
}

// openEntry is a frontier entry. seq breaks ties between equal f values
// in insertion order so the search is reproducible.
type openEntry struct {
	id  world.SectorID
	f   float64
	seq uint64
}

func byPriority(a, b interface{}) int {
	x, y := a.(openEntry), b.(openEntry)
	switch {
	case x.f < y.f:
		return -1
	case x.f > y.f:
		return 1
	case x.seq < y.seq:
		return -1
	case x.seq > y.seq:
		return 1
	}
	return 0
}

// FindPath returns the least-cost path from start to end, where stepping
// between neighbours costs Map.EdgeCost. The search runs from end back
// toward start, so following parent links from start yields the path in
// start-to-end order without reversing. The heuristic is the straight-line
// distance to start; EdgeCost clamps multipliers to world.MinSectorCost, so
// it never overestimates.
func FindPath(m *world.Map, start, end world.SectorID) (Path, error) {
	goal, err := m.Sector(start)
	if err != nil {
		return Path{}, err
	}
	if _, err := m.Sector(end); err != nil {
		return Path{}, err
	}
	if start == end {
		return Path{Sectors: []world.SectorID{start}}, nil
	}

	n := m.Len()
	g := make([]float64, n)
	parent := make([]world.SectorID, n)
	for i := range g {
		g[i] = math.Inf(1)
		parent[i] = -1
	}

	open := priorityqueue.NewWith(byPriority)
	closed := mapset.New[world.SectorID]()
	var seq uint64

	push := func(id world.SectorID) {
		h := m.Sectors[id].Centroid.Dist(goal.Centroid)
		open.Enqueue(openEntry{id: id, f: g[id] + h, seq: seq})
		seq++
	}

	g[end] = 0
	push(end)

	for !open.Empty() {
		v, _ := open.Dequeue()
		cur := v.(openEntry).id
		if closed.Has(cur) {
			continue
		}
		if cur == start {
			return Path{Sectors: walkParents(parent, start, end), Cost: g[start]}, nil
		}
		closed.Put(cur)

		from := m.Sectors[cur]
		for _, nb := range from.Neighbors {
			if closed.Has(nb) {
				continue
			}
			to := m.Sectors[nb]
			cost := g[cur] + m.EdgeCost(from, to)
			if cost < g[nb] {
				g[nb] = cost
				parent[nb] = cur
				push(nb)
			}
		}
	}

	return Path{}, fmt.Errorf("sectors %d and %d: %w", start, end, ErrNoPath)
}

func walkParents(parent []world.SectorID, start, end world.SectorID) []world.SectorID {
	path := []world.SectorID{start}
	for cur := start; cur != end; {
		cur = parent[cur]
		path = append(path, cur)
	}
	return path
}
