package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/sectormap/internal/engine"
	"github.com/talgya/sectormap/internal/world"
)

func loaded(t *testing.T) (*DB, *engine.Atlas) {
	t.Helper()
	cfg := engine.SmallTestConfig()
	cfg.CityBiomes = []world.Biome{world.BiomePlains, world.BiomeForest, world.BiomeDesert, world.BiomeMountains}
	atlas, err := engine.Generate(cfg)
	require.NoError(t, err)

	db, err := Open()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Load(atlas))
	return db, atlas
}

func TestBiomeCounts(t *testing.T) {
	db, atlas := loaded(t)
	rows, err := db.BiomeCounts()
	require.NoError(t, err)

	want := atlas.Map.BiomeCounts()
	assert.Len(t, rows, len(want))
	total, area := 0, 0.0
	for i, r := range rows {
		b, err := world.ParseBiome(r.Biome)
		require.NoError(t, err)
		assert.Equal(t, want[b], r.Sectors)
		if i > 0 {
			assert.GreaterOrEqual(t, rows[i-1].Sectors, r.Sectors)
		}
		total += r.Sectors
		area += r.Area
	}
	assert.Equal(t, atlas.Map.Len(), total)
	assert.InDelta(t, atlas.Map.TotalArea(), area, 1e-6)
}

func TestTopCities(t *testing.T) {
	db, atlas := loaded(t)
	require.NotEmpty(t, atlas.Cities)

	rows, err := db.TopCities(10)
	require.NoError(t, err)
	assert.Len(t, rows, len(atlas.Cities))
	for i, r := range rows {
		c, err := atlas.CityByName(r.Name)
		require.NoError(t, err)
		assert.Equal(t, int(c.ID), r.ID)
		assert.Equal(t, int64(c.Population), r.Population)
		assert.Equal(t, len(c.ResourceNodes), r.Nodes)
		if i > 0 {
			assert.GreaterOrEqual(t, rows[i-1].Population, r.Population)
		}
	}

	one, err := db.TopCities(1)
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, rows[0], one[0])
}

func TestRoadsForCity(t *testing.T) {
	db, atlas := loaded(t)
	for _, c := range atlas.Cities {
		rows, err := db.RoadsForCity(int(c.ID))
		require.NoError(t, err)
		assert.Len(t, rows, len(c.ResourceNodes))
		for i, r := range rows {
			road, err := atlas.Road(c.ID, world.NodeID(r.NodeID))
			require.NoError(t, err)
			assert.InDelta(t, road.Length, r.Length, 1e-9)
			assert.Equal(t, len(road.Path)-1, r.Hops)
			assert.Equal(t, int(c.Sector), r.StartSector)
			if i > 0 {
				assert.LessOrEqual(t, rows[i-1].Length, r.Length)
			}
		}
	}

	rows, err := db.RoadsForCity(-1)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestNodeCounts(t *testing.T) {
	db, atlas := loaded(t)
	rows, err := db.NodeCounts()
	require.NoError(t, err)
	total, value := 0, 0.0
	for _, r := range rows {
		total += r.Count
		value += r.Value
	}
	assert.Equal(t, len(atlas.Nodes), total)

	want := 0.0
	for _, n := range atlas.Nodes {
		want += n.Produces.BasePrice()
	}
	assert.InDelta(t, want, value, 1e-9)
}

func TestMeta(t *testing.T) {
	db, atlas := loaded(t)
	id, err := db.GetMeta("atlas_id")
	require.NoError(t, err)
	assert.Equal(t, atlas.ID.String(), id)

	require.NoError(t, db.SaveMeta("note", "first"))
	require.NoError(t, db.SaveMeta("note", "second"))
	v, err := db.GetMeta("note")
	require.NoError(t, err)
	assert.Equal(t, "second", v)

	_, err = db.GetMeta("absent")
	assert.Error(t, err)
}

func TestReloadReplaces(t *testing.T) {
	db, atlas := loaded(t)
	require.NoError(t, db.Load(atlas))
	rows, err := db.TopCities(100)
	require.NoError(t, err)
	assert.Len(t, rows, len(atlas.Cities))
}

func TestOpenIsPrivate(t *testing.T) {
	a, err := Open()
	require.NoError(t, err)
	defer a.Close()
	b, err := Open()
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, a.SaveMeta("k", "v"))
	v, err := a.GetMeta("k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	_, err = b.GetMeta("k")
	assert.Error(t, err, "catalogs share nothing")
}
