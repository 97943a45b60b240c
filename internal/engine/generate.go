// Package engine runs the generation pipeline and exposes the finished
// world to its consumers.
package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/talgya/sectormap/internal/entropy"
	"github.com/talgya/sectormap/internal/roads"
	"github.com/talgya/sectormap/internal/social"
	"github.com/talgya/sectormap/internal/world"
)

// Generate builds a complete world from cfg. Stages run strictly in order
// (tessellation, biomes, cities, resource nodes, roads, relations) and all
// draw from one random stream seeded by cfg.Seed, so the same config
// always yields the same atlas. A zero seed is replaced by a random one,
// recorded in the returned atlas's Config.
func Generate(cfg Config) (*Atlas, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = entropy.RandomSeed()
		slog.Info("no seed configured, picked one", "seed", cfg.Seed)
	}

	start := time.Now()
	rs := entropy.NewStream(cfg.Seed)

	m, err := world.Generate(cfg.genConfig(), rs)
	if err != nil {
		return nil, fmt.Errorf("tessellation: %w", err)
	}

	world.PropagateBiomes(m, cfg.biomeConfig(), rs)
	cities := world.PlaceCities(m, cfg.settlementConfig(), rs)
	nodes := world.PlaceResourceNodes(m, cities, cfg.nodeConfig(), rs)
	network := roads.Build(m, cities, nodes)
	relations := social.Relations(m, cities)

	atlas := newAtlas(cfg, m, cities, nodes, network, relations)
	atlas.Draws = rs.Draws()

	slog.Info("world generated",
		"id", atlas.ID,
		"seed", cfg.Seed,
		"sectors", m.Len(),
		"cities", len(cities),
		"nodes", len(nodes),
		"roads", len(network),
		"draws", atlas.Draws,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return atlas, nil
}
