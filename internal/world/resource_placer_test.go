package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/sectormap/internal/economy"
	"github.com/talgya/sectormap/internal/entropy"
	"github.com/talgya/sectormap/internal/geom"
)

func TestNodeTypeForBiome(t *testing.T) {
	tests := []struct {
		biome    Biome
		want     NodeType
		ok       bool
		produces economy.Resource
	}{
		{BiomePlains, NodeFarm, true, economy.ResourceWheat},
		{BiomeForest, NodeLumbermill, true, economy.ResourceLumber},
		{BiomeMountains, NodeMine, true, economy.ResourceOre},
		{BiomeDesert, 0, false, 0},
		{BiomeWater, 0, false, 0},
		{BiomeNone, 0, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.biome.String(), func(t *testing.T) {
			got, ok := NodeTypeForBiome(tt.biome)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
				assert.Equal(t, tt.produces, got.Produces())
			}
		})
	}
}

// mixedMap is a 30×30 grid whose columns cycle through every biome so
// each placement rule gets exercised.
func mixedMap() *Map {
	m := gridMap(30, 30, BiomePlains)
	for _, s := range m.Sectors {
		col := int(s.Centroid.X / 10)
		s.Biome = Biomes[col%len(Biomes)]
	}
	return m
}

func placeAll(seed int64) (*Map, []*City, []*ResourceNode, NodeConfig) {
	m := mixedMap()
	rs := entropy.NewStream(seed)
	cities := PlaceCities(m, SettlementConfig{
		Count:      4,
		MinSpacing: 100,
		Population: IntRange{Min: 50, Max: 60},
		Deadzone:   30,
		Biomes:     []Biome{BiomePlains, BiomeDesert},
		Attempts:   1000,
	}, rs)
	cfg := NodeConfig{
		PerCity:      IntRange{Min: 2, Max: 4},
		CityDistance: FloatRange{Min: 15, Max: 60},
		MinSpacing:   12,
		Deadzone:     10,
		Attempts:     1000,
	}
	nodes := PlaceResourceNodes(m, cities, cfg, rs)
	return m, cities, nodes, cfg
}

func TestPlaceResourceNodesRespectsConstraints(t *testing.T) {
	m, cities, nodes, cfg := placeAll(5)
	require.NotEmpty(t, cities)
	require.NotEmpty(t, nodes)

	zone := m.Bounds().Inset(cfg.Deadzone)
	for i, n := range nodes {
		assert.Equal(t, NodeID(i), n.ID)
		host := m.Sectors[n.Sector]
		assert.Equal(t, host.Centroid, n.Position)
		assert.True(t, zone.StrictlyContains(n.Position))

		want, ok := NodeTypeForBiome(host.Biome)
		require.True(t, ok, "node %d hosted on %s", n.ID, host.Biome)
		assert.Equal(t, want, n.Type)
		assert.Equal(t, want.Produces(), n.Produces)
		assert.NotEqual(t, BiomeDesert, host.Biome)
		assert.NotEqual(t, BiomeWater, host.Biome)

		owner := cities[n.City]
		ownDist := n.Position.Dist(owner.Position)
		assert.LessOrEqual(t, ownDist, cfg.CityDistance.Max)
		for _, c := range cities {
			assert.GreaterOrEqual(t, n.Position.Dist(c.Position), cfg.CityDistance.Min)
			if c.ID != owner.ID {
				assert.Less(t, ownDist, n.Position.Dist(c.Position))
			}
			assert.NotEqual(t, c.Sector, n.Sector)
		}
		for _, o := range nodes[:i] {
			assert.GreaterOrEqual(t, n.Position.Dist(o.Position), cfg.MinSpacing)
		}
		assert.Contains(t, owner.ResourceNodes, n.ID)
	}

	total := 0
	for _, c := range cities {
		assert.LessOrEqual(t, len(c.ResourceNodes), cfg.PerCity.Max)
		total += len(c.ResourceNodes)
	}
	assert.Equal(t, len(nodes), total)
}

func TestPlaceResourceNodesDeterministic(t *testing.T) {
	_, _, a, _ := placeAll(12)
	_, _, b, _ := placeAll(12)
	assert.Equal(t, a, b)
}

func TestPlaceResourceNodesBudgetExhaustion(t *testing.T) {
	m := gridMap(10, 10, BiomeDesert)
	city := &City{ID: 0, Name: "Ashford", Sector: 55, Position: m.Sectors[55].Centroid}
	cfg := DefaultNodeConfig()
	cfg.Attempts = 30
	cfg.PerCity = IntRange{Min: 3, Max: 3}

	rs := entropy.NewStream(1)
	nodes := PlaceResourceNodes(m, []*City{city}, cfg, rs)
	assert.Empty(t, nodes)
	assert.Empty(t, city.ResourceNodes)
	assert.Equal(t, uint64(30), rs.Draws(), "the first node's budget ends the batch")
}

func TestPlaceResourceNodesNoCities(t *testing.T) {
	m := gridMap(4, 4, BiomePlains)
	assert.Empty(t, PlaceResourceNodes(m, nil, DefaultNodeConfig(), entropy.NewStream(1)))
}

func TestNearerOtherCityTiesReject(t *testing.T) {
	cities := []*City{
		{ID: 0, Position: geom.Pt(0, 0)},
		{ID: 1, Position: geom.Pt(10, 0)},
	}
	mid := geom.Pt(5, 3)
	assert.True(t, nearerOtherCity(mid, mid.DistSq(cities[0].Position), 0, cities))
	near := geom.Pt(4, 0)
	assert.False(t, nearerOtherCity(near, near.DistSq(cities[0].Position), 0, cities))
}
