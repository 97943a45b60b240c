package catalog

// CityRow is one city with its resource node count.
type CityRow struct {
	ID         int     `db:"id"`
	Name       string  `db:"name"`
	Population int64   `db:"population"`
	Nodes      int     `db:"nodes"`
	RoadLength float64 `db:"road_length"`
}

// BiomeRow aggregates the sectors of one biome.
type BiomeRow struct {
	Biome   string  `db:"biome"`
	Sectors int     `db:"sectors"`
	Area    float64 `db:"area"`
}

// RoadRow is one road as stored in the catalog.
type RoadRow struct {
	ID          int     `db:"id"`
	NodeID      int     `db:"node_id"`
	NodeType    string  `db:"node_type"`
	StartSector int     `db:"start_sector"`
	EndSector   int     `db:"end_sector"`
	Hops        int     `db:"hops"`
	Cost        float64 `db:"cost"`
	Length      float64 `db:"length"`
}

// NodeRow counts resource nodes of one type.
type NodeRow struct {
	Type     string  `db:"type"`
	Produces string  `db:"produces"`
	Count    int     `db:"count"`
	Value    float64 `db:"value"` // Summed base price of one unit from each node
}

// TopCities returns the most populous cities first, ties by ID.
func (db *DB) TopCities(limit int) ([]CityRow, error) {
	var rows []CityRow
	err := db.conn.Select(&rows, `
		SELECT c.id, c.name, c.population,
			(SELECT COUNT(*) FROM nodes n WHERE n.city_id = c.id) AS nodes,
			(SELECT COALESCE(SUM(r.length), 0) FROM roads r WHERE r.city_id = c.id) AS road_length
		FROM cities c
		ORDER BY c.population DESC, c.id
		LIMIT ?`, limit)
	return rows, err
}

// BiomeCounts returns sector count and area per biome, largest first.
func (db *DB) BiomeCounts() ([]BiomeRow, error) {
	var rows []BiomeRow
	err := db.conn.Select(&rows, `
		SELECT biome, COUNT(*) AS sectors, SUM(area) AS area
		FROM sectors
		GROUP BY biome
		ORDER BY sectors DESC, biome`)
	return rows, err
}

// RoadsForCity returns a city's roads, shortest first.
func (db *DB) RoadsForCity(cityID int) ([]RoadRow, error) {
	var rows []RoadRow
	err := db.conn.Select(&rows, `
		SELECT r.id, r.node_id, n.type AS node_type, r.start_sector, r.end_sector,
			r.hops, r.cost, r.length
		FROM roads r
		JOIN nodes n ON n.id = r.node_id
		WHERE r.city_id = ?
		ORDER BY r.length, r.id`, cityID)
	return rows, err
}

// NodeCounts returns how many nodes of each type were placed.
func (db *DB) NodeCounts() ([]NodeRow, error) {
	var rows []NodeRow
	err := db.conn.Select(&rows, `
		SELECT type, produces, COUNT(*) AS count, SUM(base_price) AS value
		FROM nodes
		GROUP BY type, produces
		ORDER BY count DESC, type`)
	return rows, err
}
