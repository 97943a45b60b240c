package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/talgya/sectormap/internal/world"
)

// ErrInvalidConfig marks a configuration rejected before generation starts.
var ErrInvalidConfig = errors.New("invalid configuration")

// Upper bounds on sizes generation will attempt.
const (
	MaxSectorCount  = 1 << 20
	MaxNodesPerCity = 1000
	MaxPopulation   = math.MaxUint32
)

// Config is the full set of generation options. Field tags name the keys
// accepted in config files and environment variables.
type Config struct {
	Seed int64 `mapstructure:"seed" json:"seed"` // 0 picks a random seed

	// Tessellation
	Width                float64 `mapstructure:"width" json:"width"`
	Height               float64 `mapstructure:"height" json:"height"`
	SectorCount          int     `mapstructure:"sector_count" json:"sector_count"`
	LloydIterations      int     `mapstructure:"lloyd_iterations" json:"lloyd_iterations"`
	BoundaryMargin       float64 `mapstructure:"boundary_margin" json:"boundary_margin"`
	HeightNoiseFrequency float64 `mapstructure:"height_noise_frequency" json:"height_noise_frequency"`
	HeightOctaves        int     `mapstructure:"height_octaves" json:"height_octaves"`
	SiteAttempts         int     `mapstructure:"site_attempts" json:"site_attempts"`

	// Biomes
	BiomeSeedCount int           `mapstructure:"biome_seed_count" json:"biome_seed_count"`
	BiomeAttempts  int           `mapstructure:"biome_attempts" json:"biome_attempts"`
	Biomes         []world.Biome `mapstructure:"biomes" json:"biomes"`

	// Cities
	CityCount           int            `mapstructure:"city_count" json:"city_count"`
	CityMinSpacing      float64        `mapstructure:"city_min_spacing" json:"city_min_spacing"`
	CityPopulationRange world.IntRange `mapstructure:"city_population_range" json:"city_population_range"`
	CityBoundaryMargin  float64        `mapstructure:"city_boundary_margin" json:"city_boundary_margin"`
	CityBiomes          []world.Biome  `mapstructure:"city_biomes" json:"city_biomes"`
	CityNames           []string       `mapstructure:"city_names" json:"city_names"`
	CityAttempts        int            `mapstructure:"city_attempts" json:"city_attempts"`

	// Resource nodes
	NodesPerCityRange     world.IntRange   `mapstructure:"nodes_per_city_range" json:"nodes_per_city_range"`
	NodeCityDistanceRange world.FloatRange `mapstructure:"node_city_distance_range" json:"node_city_distance_range"`
	NodeMinSpacing        float64          `mapstructure:"node_min_spacing" json:"node_min_spacing"`
	NodeBoundaryMargin    float64          `mapstructure:"node_boundary_margin" json:"node_boundary_margin"`
	NodeAttempts          int              `mapstructure:"node_attempts" json:"node_attempts"`
}

// DefaultConfig returns the settings of a full-size map.
func DefaultConfig() Config {
	gen := world.DefaultGenConfig()
	bio := world.DefaultBiomeConfig()
	city := world.DefaultSettlementConfig()
	node := world.DefaultNodeConfig()
	return fromStages(0, gen, bio, city, node)
}

// SmallTestConfig returns a tiny map for rapid iteration.
func SmallTestConfig() Config {
	c := fromStages(1,
		world.SmallTestConfig(),
		world.BiomeConfig{SeedCount: 6, Attempts: world.DefaultBiomeSeedAttempts, Enabled: world.DefaultBiomeConfig().Enabled},
		world.SettlementConfig{
			Count:      3,
			MinSpacing: 25,
			Population: world.IntRange{Min: 50, Max: 300},
			Deadzone:   10,
			Biomes:     []world.Biome{world.BiomePlains, world.BiomeDesert},
			Attempts:   world.DefaultCityAttempts,
		},
		world.NodeConfig{
			PerCity:      world.IntRange{Min: 1, Max: 3},
			CityDistance: world.FloatRange{Min: 6, Max: 30},
			MinSpacing:   5,
			Deadzone:     5,
			Attempts:     world.DefaultNodeAttempts,
		},
	)
	return c
}

func fromStages(seed int64, gen world.GenConfig, bio world.BiomeConfig, city world.SettlementConfig, node world.NodeConfig) Config {
	return Config{
		Seed:                  seed,
		Width:                 gen.Width,
		Height:                gen.Height,
		SectorCount:           gen.SectorCount,
		LloydIterations:       gen.LloydIterations,
		BoundaryMargin:        gen.BoundaryMargin,
		HeightNoiseFrequency:  gen.HeightFrequency,
		HeightOctaves:         gen.HeightOctaves,
		SiteAttempts:          gen.SiteAttempts,
		BiomeSeedCount:        bio.SeedCount,
		BiomeAttempts:         bio.Attempts,
		Biomes:                bio.Enabled,
		CityCount:             city.Count,
		CityMinSpacing:        city.MinSpacing,
		CityPopulationRange:   city.Population,
		CityBoundaryMargin:    city.Deadzone,
		CityBiomes:            city.Biomes,
		CityNames:             city.Names,
		CityAttempts:          city.Attempts,
		NodesPerCityRange:     node.PerCity,
		NodeCityDistanceRange: node.CityDistance,
		NodeMinSpacing:        node.MinSpacing,
		NodeBoundaryMargin:    node.Deadzone,
		NodeAttempts:          node.Attempts,
	}
}

// Validate rejects configurations generation cannot honour. Size and site
// problems keep their world sentinel as well as ErrInvalidConfig.
func (c Config) Validate() error {
	if err := c.genConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	switch {
	case c.SectorCount > MaxSectorCount:
		return fmt.Errorf("%w: sector_count %d exceeds %d", ErrInvalidConfig, c.SectorCount, MaxSectorCount)
	case c.LloydIterations < 0:
		return fmt.Errorf("%w: lloyd_iterations %d", ErrInvalidConfig, c.LloydIterations)
	case c.HeightNoiseFrequency <= 0:
		return fmt.Errorf("%w: height_noise_frequency %g", ErrInvalidConfig, c.HeightNoiseFrequency)
	case c.BiomeSeedCount < 0:
		return fmt.Errorf("%w: biome_seed_count %d", ErrInvalidConfig, c.BiomeSeedCount)
	case c.BiomeSeedCount > 0 && len(c.Biomes) == 0:
		return fmt.Errorf("%w: biome seeds requested with no enabled biomes", ErrInvalidConfig)
	case c.CityCount < 0:
		return fmt.Errorf("%w: city_count %d", ErrInvalidConfig, c.CityCount)
	case c.CityMinSpacing < 0 || c.NodeMinSpacing < 0:
		return fmt.Errorf("%w: negative spacing", ErrInvalidConfig)
	case c.CityBoundaryMargin < 0 || c.NodeBoundaryMargin < 0:
		return fmt.Errorf("%w: negative boundary margin", ErrInvalidConfig)
	case !c.CityPopulationRange.Valid() || c.CityPopulationRange.Min < 0 || int64(c.CityPopulationRange.Max) > MaxPopulation:
		return fmt.Errorf("%w: city_population_range %s", ErrInvalidConfig, c.CityPopulationRange)
	case !c.NodesPerCityRange.Valid() || c.NodesPerCityRange.Min < 0 || c.NodesPerCityRange.Max > MaxNodesPerCity:
		return fmt.Errorf("%w: nodes_per_city_range %s", ErrInvalidConfig, c.NodesPerCityRange)
	case !c.NodeCityDistanceRange.Valid() || c.NodeCityDistanceRange.Min < 0:
		return fmt.Errorf("%w: node_city_distance_range %s", ErrInvalidConfig, c.NodeCityDistanceRange)
	case c.SiteAttempts <= 0 || c.BiomeAttempts <= 0 || c.CityAttempts <= 0 || c.NodeAttempts <= 0:
		return fmt.Errorf("%w: attempt budgets must be positive", ErrInvalidConfig)
	}

	for _, b := range append(append([]world.Biome{}, c.Biomes...), c.CityBiomes...) {
		if b == world.BiomeNone || b > world.BiomeWater {
			return fmt.Errorf("%w: biome %s cannot be assigned", ErrInvalidConfig, b)
		}
	}
	return nil
}

func (c Config) genConfig() world.GenConfig {
	return world.GenConfig{
		Width:           c.Width,
		Height:          c.Height,
		SectorCount:     c.SectorCount,
		LloydIterations: c.LloydIterations,
		BoundaryMargin:  c.BoundaryMargin,
		HeightFrequency: c.HeightNoiseFrequency,
		HeightOctaves:   c.HeightOctaves,
		SiteAttempts:    c.SiteAttempts,
	}
}

func (c Config) biomeConfig() world.BiomeConfig {
	return world.BiomeConfig{
		SeedCount: c.BiomeSeedCount,
		Attempts:  c.BiomeAttempts,
		Enabled:   c.Biomes,
	}
}

func (c Config) settlementConfig() world.SettlementConfig {
	return world.SettlementConfig{
		Count:      c.CityCount,
		MinSpacing: c.CityMinSpacing,
		Population: c.CityPopulationRange,
		Deadzone:   c.CityBoundaryMargin,
		Biomes:     c.CityBiomes,
		Names:      c.CityNames,
		Attempts:   c.CityAttempts,
	}
}

func (c Config) nodeConfig() world.NodeConfig {
	return world.NodeConfig{
		PerCity:      c.NodesPerCityRange,
		CityDistance: c.NodeCityDistanceRange,
		MinSpacing:   c.NodeMinSpacing,
		Deadzone:     c.NodeBoundaryMargin,
		Attempts:     c.NodeAttempts,
	}
}
