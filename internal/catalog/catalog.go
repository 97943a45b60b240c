// Package catalog loads a generated atlas into SQLite so reports can be
// written as queries. The database lives in memory and is gone when it is
// closed.
package catalog

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/sectormap/internal/engine"
)

// memoryDSN names a private in-memory database.
const memoryDSN = ":memory:"

// DB wraps a SQLite connection holding one atlas.
type DB struct {
	conn *sqlx.DB
}

// Open creates an empty in-memory catalog.
func Open() (*DB, error) {
	conn, err := sqlx.Open("sqlite", memoryDSN)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	// Each connection to :memory: is a separate database.
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sectors (
		id INTEGER PRIMARY KEY,
		biome TEXT NOT NULL,
		height REAL NOT NULL,
		cost REAL NOT NULL,
		centroid_x REAL NOT NULL,
		centroid_y REAL NOT NULL,
		area REAL NOT NULL,
		neighbor_count INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS cities (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		sector_id INTEGER NOT NULL REFERENCES sectors(id),
		x REAL NOT NULL,
		y REAL NOT NULL,
		population INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS nodes (
		id INTEGER PRIMARY KEY,
		type TEXT NOT NULL,
		produces TEXT NOT NULL,
		base_price REAL NOT NULL,
		sector_id INTEGER NOT NULL REFERENCES sectors(id),
		city_id INTEGER NOT NULL REFERENCES cities(id),
		x REAL NOT NULL,
		y REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS roads (
		id INTEGER PRIMARY KEY,
		city_id INTEGER NOT NULL REFERENCES cities(id),
		node_id INTEGER NOT NULL REFERENCES nodes(id),
		start_sector INTEGER NOT NULL,
		end_sector INTEGER NOT NULL,
		hops INTEGER NOT NULL,
		cost REAL NOT NULL,
		length REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS world_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sectors_biome ON sectors(biome);
	CREATE INDEX IF NOT EXISTS idx_nodes_city ON nodes(city_id);
	CREATE INDEX IF NOT EXISTS idx_roads_city ON roads(city_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Load replaces the catalog contents with atlas.
func (db *DB) Load(atlas *engine.Atlas) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"roads", "nodes", "cities", "sectors", "world_meta"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	stmt, err := tx.Preparex(`INSERT INTO sectors
		(id, biome, height, cost, centroid_x, centroid_y, area, neighbor_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, s := range atlas.Map.Sectors {
		_, err := stmt.Exec(
			s.ID, s.Biome.String(), s.Height, s.Cost,
			s.Centroid.X, s.Centroid.Y, s.Area(), len(s.Neighbors),
		)
		if err != nil {
			return fmt.Errorf("insert sector %d: %w", s.ID, err)
		}
	}

	for _, c := range atlas.Cities {
		_, err := tx.Exec(`INSERT INTO cities
			(id, name, sector_id, x, y, population)
			VALUES (?, ?, ?, ?, ?, ?)`,
			c.ID, c.Name, c.Sector, c.Position.X, c.Position.Y, c.Population,
		)
		if err != nil {
			return fmt.Errorf("insert city %d: %w", c.ID, err)
		}
	}

	for _, n := range atlas.Nodes {
		_, err := tx.Exec(`INSERT INTO nodes
			(id, type, produces, base_price, sector_id, city_id, x, y)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			n.ID, n.Type.String(), n.Produces.String(), n.Produces.BasePrice(),
			n.Sector, n.City, n.Position.X, n.Position.Y,
		)
		if err != nil {
			return fmt.Errorf("insert node %d: %w", n.ID, err)
		}
	}

	for _, r := range atlas.Roads {
		_, err := tx.Exec(`INSERT INTO roads
			(id, city_id, node_id, start_sector, end_sector, hops, cost, length)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.City, r.Node, r.Start, r.End, len(r.Path)-1, r.Cost, r.Length,
		)
		if err != nil {
			return fmt.Errorf("insert road %d: %w", r.ID, err)
		}
	}

	meta := map[string]string{
		"atlas_id": atlas.ID.String(),
		"seed":     fmt.Sprintf("%d", atlas.Config.Seed),
		"width":    fmt.Sprintf("%g", atlas.Map.Width),
		"height":   fmt.Sprintf("%g", atlas.Map.Height),
	}
	for k, v := range meta {
		if _, err := tx.Exec("INSERT INTO world_meta (key, value) VALUES (?, ?)", k, v); err != nil {
			return fmt.Errorf("insert meta %s: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Debug("catalog loaded",
		"sectors", atlas.Map.Len(),
		"cities", len(atlas.Cities),
		"nodes", len(atlas.Nodes),
		"roads", len(atlas.Roads),
	)
	return nil
}

// SaveMeta stores a key-value pair in world metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO world_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM world_meta WHERE key = ?", key)
	return value, err
}
