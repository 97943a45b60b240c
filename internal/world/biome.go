// Biome propagation: seeds a few sectors and floods biomes outward.
package world

import (
	"log/slog"

	"github.com/emirpasic/gods/queues/linkedlistqueue"

	"github.com/talgya/sectormap/internal/entropy"
)

// DefaultBiomeSeedAttempts bounds the draws spent looking for distinct seed sectors.
const DefaultBiomeSeedAttempts = 1000

// BiomeConfig holds biome propagation parameters.
type BiomeConfig struct {
	SeedCount int     // Sectors seeded before flooding
	Attempts  int     // Draw budget for finding distinct seed sectors
	Enabled   []Biome // Biomes a seed may be given
}

// DefaultBiomeConfig seeds land biomes only; water is opt-in.
func DefaultBiomeConfig() BiomeConfig {
	return BiomeConfig{
		SeedCount: 40,
		Attempts:  DefaultBiomeSeedAttempts,
		Enabled:   []Biome{BiomePlains, BiomeForest, BiomeDesert, BiomeMountains},
	}
}

// biomeSeed is a pending assignment in the flood-fill queue.
type biomeSeed struct {
	biome  Biome
	sector SectorID
}

// PropagateBiomes assigns a biome to every sector reachable from a seed.
// Seeds are distinct sectors picked at random, each with a uniformly random
// enabled biome. The flood is breadth-first across all seeds at once and
// the first biome to reach a sector keeps it, so region boundaries depend
// on seed draw order. Returns the number of seeds placed.
func PropagateBiomes(m *Map, cfg BiomeConfig, rs *entropy.Stream) int {
	if m.Len() == 0 || cfg.SeedCount <= 0 || len(cfg.Enabled) == 0 {
		return 0
	}

	budget := cfg.Attempts
	if budget <= 0 {
		budget = DefaultBiomeSeedAttempts
	}

	queue := linkedlistqueue.New()
	chosen := make(map[SectorID]bool, cfg.SeedCount)
	for attempt := 0; attempt < budget && len(chosen) < cfg.SeedCount; attempt++ {
		id := SectorID(rs.Intn(m.Len()))
		if chosen[id] {
			continue
		}
		chosen[id] = true
		queue.Enqueue(biomeSeed{
			biome:  cfg.Enabled[rs.Intn(len(cfg.Enabled))],
			sector: id,
		})
	}
	if len(chosen) < cfg.SeedCount {
		slog.Warn("biome seed budget exhausted",
			"requested", cfg.SeedCount,
			"placed", len(chosen),
			"attempts", budget,
		)
	}

	for !queue.Empty() {
		v, _ := queue.Dequeue()
		seed := v.(biomeSeed)
		sector := m.Sectors[seed.sector]
		if sector.Biome != BiomeNone {
			continue
		}
		sector.Biome = seed.biome
		for _, n := range sector.Neighbors {
			queue.Enqueue(biomeSeed{biome: seed.biome, sector: n})
		}
	}

	slog.Info("biomes propagated", "seeds", len(chosen), "sectors", m.Len())
	return len(chosen)
}
