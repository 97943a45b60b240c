// Resource node placement: each city claims nearby production sites.
package world

import (
	"log/slog"

	"github.com/talgya/sectormap/internal/economy"
	"github.com/talgya/sectormap/internal/entropy"
	"github.com/talgya/sectormap/internal/geom"
)

// DefaultNodeAttempts bounds the sector draws spent on each desired node.
const DefaultNodeAttempts = 1000

// NodeID indexes a resource node in placement order.
type NodeID int

// NodeType is the kind of production site a node is.
type NodeType uint8

const (
	NodeFarm       NodeType = iota // Plains
	NodeMine                       // Mountains
	NodeLumbermill                 // Forest
)

// String returns a human-readable node type name.
func (t NodeType) String() string {
	switch t {
	case NodeFarm:
		return "Farm"
	case NodeMine:
		return "Mine"
	case NodeLumbermill:
		return "Lumbermill"
	default:
		return "Unknown"
	}
}

// Produces returns the single resource a node of this type yields.
func (t NodeType) Produces() economy.Resource {
	switch t {
	case NodeMine:
		return economy.ResourceOre
	case NodeLumbermill:
		return economy.ResourceLumber
	default:
		return economy.ResourceWheat
	}
}

// NodeTypeForBiome is the one rule deriving a node type from terrain.
// Desert, water and unassigned sectors cannot host a node.
func NodeTypeForBiome(b Biome) (NodeType, bool) {
	switch b {
	case BiomePlains:
		return NodeFarm, true
	case BiomeForest:
		return NodeLumbermill, true
	case BiomeMountains:
		return NodeMine, true
	default:
		return 0, false
	}
}

// ResourceNode is a production site owned by one city.
type ResourceNode struct {
	ID       NodeID           `json:"id"`
	Type     NodeType         `json:"type"`
	Produces economy.Resource `json:"produces"`
	Sector   SectorID         `json:"sector"`
	Position geom.Point       `json:"position"` // Centroid of the host sector
	City     CityID           `json:"city"`
}

// NodeConfig holds resource node placement parameters.
type NodeConfig struct {
	PerCity      IntRange   // Nodes wanted per city, inclusive
	CityDistance FloatRange // Allowed distance from the owning city
	MinSpacing   float64    // Minimum distance between any two nodes
	Deadzone     float64    // No node within this distance of the map edge
	Attempts     int        // Sector draw budget per desired node
}

// DefaultNodeConfig returns node placement settings for a full-size map.
func DefaultNodeConfig() NodeConfig {
	return NodeConfig{
		PerCity:      IntRange{Min: 2, Max: 5},
		CityDistance: FloatRange{Min: 12, Max: 45},
		MinSpacing:   10,
		Deadzone:     10,
		Attempts:     DefaultNodeAttempts,
	}
}

// PlaceResourceNodes gives each city, in ID order, a random number of nodes.
// Every node must sit strictly inside the deadzone on a free sector, keep
// CityDistance.Min from all cities and MinSpacing from all earlier nodes
// (of any city), lie within CityDistance.Max of its owner, be strictly
// nearer its owner than any other city, and be on a biome that yields a
// node type. When one node exhausts its draw budget the city's batch ends.
// Owners' ResourceNodes lists are filled in as nodes are placed.
func PlaceResourceNodes(m *Map, cities []*City, cfg NodeConfig, rs *entropy.Stream) []*ResourceNode {
	if m.Len() == 0 || len(cities) == 0 {
		return nil
	}

	budget := cfg.Attempts
	if budget <= 0 {
		budget = DefaultNodeAttempts
	}
	zone := m.Bounds().Inset(cfg.Deadzone)
	cityMinSq := cfg.CityDistance.Min * cfg.CityDistance.Min
	cityMaxSq := cfg.CityDistance.Max * cfg.CityDistance.Max
	spacingSq := cfg.MinSpacing * cfg.MinSpacing

	occupied := make(map[SectorID]bool, len(cities))
	for _, c := range cities {
		occupied[c.Sector] = true
	}

	var nodes []*ResourceNode
	for _, city := range cities {
		want := rs.IntRange(cfg.PerCity.Min, cfg.PerCity.Max)
		placed := 0

	desired:
		for placed < want {
			for attempt := 0; attempt < budget; attempt++ {
				sector := m.Sectors[rs.Intn(m.Len())]
				pos := sector.Centroid

				if !zone.StrictlyContains(pos) || occupied[sector.ID] {
					continue
				}
				if tooCloseToCity(pos, cities, cityMinSq) {
					continue
				}
				if tooCloseToNode(pos, nodes, spacingSq) {
					continue
				}
				ownDist := pos.DistSq(city.Position)
				if ownDist > cityMaxSq {
					continue
				}
				if nearerOtherCity(pos, ownDist, city.ID, cities) {
					continue
				}
				nodeType, ok := NodeTypeForBiome(sector.Biome)
				if !ok {
					continue
				}

				node := &ResourceNode{
					ID:       NodeID(len(nodes)),
					Type:     nodeType,
					Produces: nodeType.Produces(),
					Sector:   sector.ID,
					Position: pos,
					City:     city.ID,
				}
				nodes = append(nodes, node)
				occupied[sector.ID] = true
				city.ResourceNodes = append(city.ResourceNodes, node.ID)
				placed++
				continue desired
			}

			slog.Warn("resource node budget exhausted",
				"city", city.Name,
				"requested", want,
				"placed", placed,
				"attempts", budget,
			)
			break
		}
	}

	slog.Info("resource nodes placed", "count", len(nodes), "cities", len(cities))
	return nodes
}

func tooCloseToNode(pos geom.Point, nodes []*ResourceNode, minSq float64) bool {
	for _, n := range nodes {
		if n.Position.DistSq(pos) < minSq {
			return true
		}
	}
	return false
}

// nearerOtherCity reports whether some city other than owner is at least
// as close to pos as the owner is.
func nearerOtherCity(pos geom.Point, ownDistSq float64, owner CityID, cities []*City) bool {
	for _, c := range cities {
		if c.ID == owner {
			continue
		}
		if c.Position.DistSq(pos) <= ownDistSq {
			return true
		}
	}
	return false
}
