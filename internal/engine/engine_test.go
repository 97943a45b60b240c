package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/sectormap/internal/world"
)

func landCities() Config {
	cfg := SmallTestConfig()
	cfg.CityBiomes = []world.Biome{world.BiomePlains, world.BiomeForest, world.BiomeDesert, world.BiomeMountains}
	return cfg
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(landCities())
	require.NoError(t, err)
	b, err := Generate(landCities())
	require.NoError(t, err)

	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, a.Draws, b.Draws)
	assert.Equal(t, a.Map, b.Map)
	assert.Equal(t, a.Cities, b.Cities)
	assert.Equal(t, a.Nodes, b.Nodes)
	assert.Equal(t, a.Roads, b.Roads)
	assert.Equal(t, a.Relations, b.Relations)
}

func TestGenerateSeedChangesWorld(t *testing.T) {
	cfg := landCities()
	a, err := Generate(cfg)
	require.NoError(t, err)
	cfg.Seed = 2
	b, err := Generate(cfg)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, a.Map.Sectors[0].Site, b.Map.Sectors[0].Site)
}

func TestGenerateSmallScenario(t *testing.T) {
	cfg := SmallTestConfig()
	cfg.Seed = 1
	cfg.Width, cfg.Height = 100, 100
	cfg.SectorCount = 50

	a, err := Generate(cfg)
	require.NoError(t, err)
	assert.True(t, a.Map.Connected())
	assert.InDelta(t, 10_000, a.Map.TotalArea(), 1e-6)

	for _, s := range a.Map.Sectors {
		assert.NotEqual(t, world.BiomeNone, s.Biome, "sector %d", s.ID)
		for _, n := range s.Neighbors {
			assert.True(t, a.Map.Sectors[n].HasNeighbor(s.ID))
		}
	}
}

func TestGenerateNoBiomeSeeds(t *testing.T) {
	cfg := SmallTestConfig()
	cfg.BiomeSeedCount = 0
	a, err := Generate(cfg)
	require.NoError(t, err)
	for _, s := range a.Map.Sectors {
		assert.Equal(t, world.BiomeNone, s.Biome)
	}
	assert.Empty(t, a.Cities, "no sector carries a city biome")
}

func TestGenerateNoCities(t *testing.T) {
	cfg := SmallTestConfig()
	cfg.CityCount = 0
	a, err := Generate(cfg)
	require.NoError(t, err)
	assert.Empty(t, a.Cities)
	assert.Empty(t, a.Nodes)
	assert.Empty(t, a.Roads)
	assert.Empty(t, a.Relations)
}

func TestGenerateRandomSeed(t *testing.T) {
	cfg := SmallTestConfig()
	cfg.Seed = 0
	a, err := Generate(cfg)
	require.NoError(t, err)
	assert.NotZero(t, a.Config.Seed)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		is     error
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, world.ErrDegenerateSize},
		{"negative height", func(c *Config) { c.Height = -5 }, world.ErrDegenerateSize},
		{"two sectors", func(c *Config) { c.SectorCount = 2 }, world.ErrTooFewSites},
		{"negative lloyd", func(c *Config) { c.LloydIterations = -1 }, ErrInvalidConfig},
		{"inverted population", func(c *Config) { c.CityPopulationRange = world.IntRange{Min: 9, Max: 1} }, ErrInvalidConfig},
		{"inverted nodes", func(c *Config) { c.NodesPerCityRange = world.IntRange{Min: 3, Max: 2} }, ErrInvalidConfig},
		{"inverted distance", func(c *Config) { c.NodeCityDistanceRange = world.FloatRange{Min: 30, Max: 6} }, ErrInvalidConfig},
		{"population beyond uint32", func(c *Config) { c.CityPopulationRange = world.IntRange{Min: 5e9, Max: 5e9} }, ErrInvalidConfig},
		{"unbounded nodes", func(c *Config) { c.NodesPerCityRange = world.IntRange{Min: 0, Max: math.MaxInt} }, ErrInvalidConfig},
		{"too many sectors", func(c *Config) { c.SectorCount = MaxSectorCount + 1 }, ErrInvalidConfig},
		{"negative cities", func(c *Config) { c.CityCount = -1 }, ErrInvalidConfig},
		{"zero budget", func(c *Config) { c.NodeAttempts = 0 }, ErrInvalidConfig},
		{"seeds without biomes", func(c *Config) { c.Biomes = nil }, ErrInvalidConfig},
		{"none biome", func(c *Config) { c.CityBiomes = []world.Biome{world.BiomeNone} }, ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := SmallTestConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.is)
			assert.ErrorIs(t, err, ErrInvalidConfig)

			_, genErr := Generate(cfg)
			assert.ErrorIs(t, genErr, tt.is)
		})
	}

	assert.NoError(t, DefaultConfig().Validate())
	assert.NoError(t, SmallTestConfig().Validate())
}

func TestAtlasLookups(t *testing.T) {
	a, err := Generate(landCities())
	require.NoError(t, err)
	require.NotEmpty(t, a.Cities)

	s, err := a.Sector(0)
	require.NoError(t, err)
	assert.Equal(t, world.SectorID(0), s.ID)
	_, err = a.Sector(world.SectorID(a.Map.Len()))
	assert.ErrorIs(t, err, world.ErrUnknownSector)

	for _, c := range a.Cities {
		got, err := a.City(c.ID)
		require.NoError(t, err)
		assert.Same(t, c, got)

		byName, err := a.CityByName(" " + c.Name + " ")
		require.NoError(t, err)
		assert.Same(t, c, byName)

		for _, nid := range c.ResourceNodes {
			n, err := a.Node(nid)
			require.NoError(t, err)
			assert.Equal(t, c.ID, n.City)

			r, err := a.Road(c.ID, nid)
			require.NoError(t, err)
			assert.Equal(t, c.Sector, r.Start)
			assert.Equal(t, n.Sector, r.End)
			assert.Equal(t, r.Start, r.Path[0])
			assert.Equal(t, r.End, r.Path[len(r.Path)-1])
		}
	}

	_, err = a.City(-1)
	assert.ErrorIs(t, err, ErrUnknownCity)
	_, err = a.CityByName("Nowhere")
	assert.ErrorIs(t, err, ErrUnknownCity)
	_, err = a.Node(world.NodeID(len(a.Nodes)))
	assert.ErrorIs(t, err, ErrUnknownNode)
	_, err = a.Road(0, world.NodeID(len(a.Nodes)))
	assert.ErrorIs(t, err, ErrUnknownRoad)
}

func TestAtlasSummary(t *testing.T) {
	a, err := Generate(landCities())
	require.NoError(t, err)

	sum := a.Summary()
	assert.Equal(t, a.ID.String(), sum.ID)
	assert.Equal(t, a.Map.Len(), sum.Sectors)
	assert.Equal(t, len(a.Cities), sum.Cities)
	assert.Equal(t, len(a.Roads), sum.Roads)

	total := 0
	for _, n := range sum.Biomes {
		total += n
	}
	assert.Equal(t, a.Map.Len(), total)

	var pop uint64
	for _, c := range a.Cities {
		pop += uint64(c.Population)
	}
	assert.Equal(t, pop, sum.TotalPopulation)
}
