// Settlement placement: rejection-samples sectors for cities.
package world

import (
	"log/slog"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"github.com/talgya/sectormap/internal/entropy"
	"github.com/talgya/sectormap/internal/geom"
)

// DefaultCityAttempts bounds the sector draws spent placing cities.
const DefaultCityAttempts = 1000

// CityID indexes a city in placement order.
type CityID int

// City is a settlement anchored to one sector.
type City struct {
	ID         CityID     `json:"id"`
	Name       string     `json:"name"`
	Sector     SectorID   `json:"sector"`
	Position   geom.Point `json:"position"` // Centroid of the host sector
	Population uint32     `json:"population"`

	// Resource nodes owned by this city, in placement order.
	ResourceNodes []NodeID `json:"resource_nodes"`
}

// SettlementConfig holds city placement parameters.
type SettlementConfig struct {
	Count      int      // Cities wanted
	MinSpacing float64  // Minimum distance between any two cities
	Population IntRange // Starting population, inclusive
	Deadzone   float64  // No city within this distance of the map edge
	Biomes     []Biome  // Biomes a city may be founded on
	Names      []string // Name pool; empty uses DefaultCityNames
	Attempts   int      // Sector draw budget
}

// DefaultSettlementConfig returns placement settings for a full-size map.
func DefaultSettlementConfig() SettlementConfig {
	return SettlementConfig{
		Count:      12,
		MinSpacing: 80,
		Population: IntRange{Min: 200, Max: 2000},
		Deadzone:   25,
		Biomes:     []Biome{BiomePlains, BiomeDesert},
		Attempts:   DefaultCityAttempts,
	}
}

// PlaceCities draws random sectors until cfg.Count cities are placed or the
// attempt budget runs out. A candidate must be strictly inside the
// deadzone, on an unused sector, at least MinSpacing from every earlier
// city and on a permitted biome. Accepted cities draw a name without
// replacement from the pool, then a population.
func PlaceCities(m *Map, cfg SettlementConfig, rs *entropy.Stream) []*City {
	if m.Len() == 0 || cfg.Count <= 0 {
		return nil
	}

	budget := cfg.Attempts
	if budget <= 0 {
		budget = DefaultCityAttempts
	}
	pool := uniqueNames(cfg.Names)
	if len(pool) == 0 {
		pool = DefaultCityNames()
	}
	unused := make([]int, len(pool))
	for i := range unused {
		unused[i] = i
	}

	zone := m.Bounds().Inset(cfg.Deadzone)
	minSq := cfg.MinSpacing * cfg.MinSpacing
	occupied := make(map[SectorID]bool, cfg.Count)

	var cities []*City
	for attempt := 0; attempt < budget && len(cities) < cfg.Count; attempt++ {
		sector := m.Sectors[rs.Intn(m.Len())]
		pos := sector.Centroid

		if !zone.StrictlyContains(pos) {
			continue
		}
		if tooCloseToCity(pos, cities, minSq) {
			continue
		}
		if occupied[sector.ID] {
			continue
		}
		if !containsBiome(cfg.Biomes, sector.Biome) {
			continue
		}
		if len(unused) == 0 {
			slog.Warn("city name pool exhausted", "placed", len(cities), "pool", len(pool))
			break
		}

		pick := rs.Intn(len(unused))
		nameIdx := unused[pick]
		unused[pick] = unused[len(unused)-1]
		unused = unused[:len(unused)-1]

		occupied[sector.ID] = true
		cities = append(cities, &City{
			ID:         CityID(len(cities)),
			Name:       pool[nameIdx],
			Sector:     sector.ID,
			Position:   pos,
			Population: uint32(rs.IntRange(cfg.Population.Min, cfg.Population.Max)),
		})
	}

	if len(cities) < cfg.Count {
		slog.Warn("city placement budget exhausted", "requested", cfg.Count, "placed", len(cities), "attempts", budget)
	}
	slog.Info("cities placed", "count", len(cities))
	return cities
}

func tooCloseToCity(pos geom.Point, cities []*City, minSq float64) bool {
	for _, c := range cities {
		if c.Position.DistSq(pos) < minSq {
			return true
		}
	}
	return false
}

// uniqueNames drops blank and repeated names, keeping first occurrences in order.
func uniqueNames(names []string) []string {
	seen := mapset.New[string]()
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen.Has(n) {
			continue
		}
		seen.Put(n)
		out = append(out, n)
	}
	return out
}

func containsBiome(set []Biome, b Biome) bool {
	for _, s := range set {
		if s == b {
			return true
		}
	}
	return false
}

// DefaultCityNames builds the procedural name pool by combining syllables.
// The order is fixed so draws from it are reproducible.
func DefaultCityNames() []string {
	prefixes := []string{
		"Iron", "Green", "Ash", "Stone", "Mill", "Cross", "Black",
		"Silver", "Red", "White", "Dark", "Bright", "High", "Low",
		"Old", "New", "Far", "Deep", "Long", "Broad", "Gold", "Frost",
		"Storm", "Thorn", "Elm", "Oak", "Pine", "Copper", "River",
	}
	suffixes := []string{
		"haven", "ford", "hollow", "wick", "bridge", "gate", "keep",
		"stead", "wood", "field", "dale", "crest", "vale", "port",
		"town", "bury", "marsh", "well", "brook", "cliff", "moor",
		"ridge", "watch", "fall", "rest", "point", "reach", "helm",
	}

	names := make([]string, 0, len(prefixes)*len(suffixes))
	for _, p := range prefixes {
		for _, s := range suffixes {
			names = append(names, p+s)
		}
	}
	return names
}
