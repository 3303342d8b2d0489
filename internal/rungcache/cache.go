// Package rungcache persists finished generation runs in SQLite, keyed by
// the seed and parameter hash that produced them, so a caller asking for
// the same map twice gets the stored tile data back instead of re-running
// the pipeline. Adapted from the teacher's internal/persistence package,
// which did the equivalent full-state save/load against a running
// simulation; here there is one immutable snapshot per run instead of a
// continuously-mutated world.
package rungcache

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/civmapgen/internal/hexgrid"
	"github.com/talgya/civmapgen/internal/ruleset"
	"github.com/talgya/civmapgen/internal/tilemap"
)

// DB wraps a SQLite connection holding cached generation runs.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
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
	CREATE TABLE IF NOT EXISTS runs (
		cache_key TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		params_json TEXT NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		wrap_x INTEGER NOT NULL,
		wrap_y INTEGER NOT NULL,
		orientation INTEGER NOT NULL,
		parity INTEGER NOT NULL,
		created_unix INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_tiles (
		cache_key TEXT NOT NULL,
		tile_index INTEGER NOT NULL,
		terrain_type INTEGER NOT NULL,
		base_terrain INTEGER NOT NULL,
		has_feature INTEGER NOT NULL,
		feature_id INTEGER NOT NULL,
		natural_wonder TEXT NOT NULL DEFAULT '',
		has_resource INTEGER NOT NULL,
		resource_id INTEGER NOT NULL,
		resource_qty INTEGER NOT NULL,
		is_river INTEGER NOT NULL,
		PRIMARY KEY (cache_key, tile_index)
	);

	CREATE TABLE IF NOT EXISTS run_civ_starts (
		cache_key TEXT NOT NULL,
		nation_id INTEGER NOT NULL,
		tile_index INTEGER NOT NULL,
		PRIMARY KEY (cache_key, nation_id)
	);

	CREATE TABLE IF NOT EXISTS run_city_states (
		cache_key TEXT NOT NULL,
		ordinal INTEGER NOT NULL,
		tile_index INTEGER NOT NULL,
		PRIMARY KEY (cache_key, ordinal)
	);

	CREATE INDEX IF NOT EXISTS idx_run_tiles_key ON run_tiles(cache_key);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Run is a cached generation result plus the grid geometry needed to
// reconstruct a TileMap.
type Run struct {
	CacheKey    string
	Seed        uint64
	ParamsJSON  string
	Grid        hexgrid.Grid
	Map         *tilemap.TileMap
	CivStarts   map[ruleset.NationID]hexgrid.Tile
	CityStates  []hexgrid.Tile
}

// Has reports whether a run is already cached under key.
func (db *DB) Has(key string) bool {
	var count int
	err := db.conn.Get(&count, "SELECT COUNT(*) FROM runs WHERE cache_key = ?", key)
	return err == nil && count > 0
}

// Save stores a completed run, overwriting any prior entry under the same
// key (a cache key is derived from seed+params, so a collision means the
// inputs were identical and the stored tiles would be the same anyway).
func (db *DB) Save(key string, seed uint64, paramsJSON string, r *Run) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM runs WHERE cache_key = ?", key); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM run_tiles WHERE cache_key = ?", key); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM run_civ_starts WHERE cache_key = ?", key); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM run_city_states WHERE cache_key = ?", key); err != nil {
		return err
	}

	g := r.Map.Grid
	_, err = tx.Exec(
		`INSERT INTO runs (cache_key, seed, params_json, width, height, wrap_x, wrap_y, orientation, parity, created_unix)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		key, seed, paramsJSON, g.Width, g.Height, boolToInt(g.WrapX), boolToInt(g.WrapY),
		int(g.Orientation), int(g.Parity), 0,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Preparex(`INSERT INTO run_tiles
		(cache_key, tile_index, terrain_type, base_terrain, has_feature, feature_id,
		 natural_wonder, has_resource, resource_id, resource_qty, is_river)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	n := g.TileCount()
	for i := 0; i < n; i++ {
		t := hexgrid.Tile(i)
		featureID, hasFeature := r.Map.Feature(t)
		wonderName, _ := r.Map.NaturalWonder(t)
		resID, qty, hasResource := r.Map.Resource(t)
		if _, err := stmt.Exec(
			key, i, int(r.Map.TerrainType(t)), int(r.Map.BaseTerrain(t)),
			boolToInt(hasFeature), int(featureID), wonderName,
			boolToInt(hasResource), int(resID), qty, boolToInt(r.Map.IsRiver(t)),
		); err != nil {
			return fmt.Errorf("insert tile %d: %w", i, err)
		}
	}

	for nationID, tile := range r.CivStarts {
		if _, err := tx.Exec(
			"INSERT INTO run_civ_starts (cache_key, nation_id, tile_index) VALUES (?, ?, ?)",
			key, int(nationID), int(tile),
		); err != nil {
			return fmt.Errorf("insert civ start: %w", err)
		}
	}

	for i, tile := range r.CityStates {
		if _, err := tx.Exec(
			"INSERT INTO run_city_states (cache_key, ordinal, tile_index) VALUES (?, ?, ?)",
			key, i, int(tile),
		); err != nil {
			return fmt.Errorf("insert city-state: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("cached generation run", "key", key, "tiles", n)
	return nil
}

// Load reconstructs a cached run's TileMap, civ starts, and city-state
// tiles. Returns (nil, false, nil) when key is not present.
func (db *DB) Load(key string) (*Run, bool, error) {
	type runRow struct {
		Seed        uint64 `db:"seed"`
		ParamsJSON  string `db:"params_json"`
		Width       int    `db:"width"`
		Height      int    `db:"height"`
		WrapX       int    `db:"wrap_x"`
		WrapY       int    `db:"wrap_y"`
		Orientation int    `db:"orientation"`
		Parity      int    `db:"parity"`
	}
	var rr runRow
	if err := db.conn.Get(&rr, "SELECT seed, params_json, width, height, wrap_x, wrap_y, orientation, parity FROM runs WHERE cache_key = ?", key); err != nil {
		return nil, false, nil
	}

	g, err := hexgrid.NewGrid(rr.Width, rr.Height, rr.WrapX != 0, rr.WrapY != 0, hexgrid.Orientation(rr.Orientation), hexgrid.Parity(rr.Parity))
	if err != nil {
		return nil, false, fmt.Errorf("reconstruct grid: %w", err)
	}
	tm := tilemap.New(g)

	type tileRow struct {
		TileIndex     int    `db:"tile_index"`
		TerrainType   int    `db:"terrain_type"`
		BaseTerrain   int    `db:"base_terrain"`
		HasFeature    int    `db:"has_feature"`
		FeatureID     int    `db:"feature_id"`
		NaturalWonder string `db:"natural_wonder"`
		HasResource   int    `db:"has_resource"`
		ResourceID    int    `db:"resource_id"`
		ResourceQty   int    `db:"resource_qty"`
		IsRiver       int    `db:"is_river"`
	}
	var tiles []tileRow
	if err := db.conn.Select(&tiles, "SELECT tile_index, terrain_type, base_terrain, has_feature, feature_id, natural_wonder, has_resource, resource_id, resource_qty, is_river FROM run_tiles WHERE cache_key = ?", key); err != nil {
		return nil, false, fmt.Errorf("load tiles: %w", err)
	}
	for _, row := range tiles {
		t := hexgrid.Tile(row.TileIndex)
		tm.SetTerrainType(t, tilemap.TerrainType(row.TerrainType))
		tm.SetBaseTerrain(t, tilemap.BaseTerrain(row.BaseTerrain))
		if row.HasFeature != 0 {
			tm.SetFeature(t, ruleset.FeatureID(row.FeatureID))
		}
		if row.NaturalWonder != "" {
			tm.SetNaturalWonder(t, row.NaturalWonder)
		}
		if row.HasResource != 0 {
			tm.SetResource(t, ruleset.ResourceID(row.ResourceID), row.ResourceQty)
		}
		if row.IsRiver != 0 {
			tm.SetRiver(t, true)
		}
	}

	type idRow struct {
		NationID  int `db:"nation_id"`
		TileIndex int `db:"tile_index"`
	}
	var civRows []idRow
	if err := db.conn.Select(&civRows, "SELECT nation_id, tile_index FROM run_civ_starts WHERE cache_key = ?", key); err != nil {
		return nil, false, fmt.Errorf("load civ starts: %w", err)
	}
	civStarts := make(map[ruleset.NationID]hexgrid.Tile, len(civRows))
	for _, row := range civRows {
		civStarts[ruleset.NationID(row.NationID)] = hexgrid.Tile(row.TileIndex)
	}

	type csRow struct {
		Ordinal   int `db:"ordinal"`
		TileIndex int `db:"tile_index"`
	}
	var csRows []csRow
	if err := db.conn.Select(&csRows, "SELECT ordinal, tile_index FROM run_city_states WHERE cache_key = ? ORDER BY ordinal", key); err != nil {
		return nil, false, fmt.Errorf("load city states: %w", err)
	}
	cityStates := make([]hexgrid.Tile, len(csRows))
	for _, row := range csRows {
		if row.Ordinal >= 0 && row.Ordinal < len(cityStates) {
			cityStates[row.Ordinal] = hexgrid.Tile(row.TileIndex)
		}
	}

	return &Run{
		CacheKey:   key,
		Seed:       rr.Seed,
		ParamsJSON: rr.ParamsJSON,
		Grid:       g,
		Map:        tm,
		CivStarts:  civStarts,
		CityStates: cityStates,
	}, true, nil
}

// Key derives a deterministic cache key from a seed and a JSON-encodable
// parameters value; callers typically pass generate.Parameters.
func Key(seed uint64, params any) (string, string, error) {
	b, err := json.Marshal(params)
	if err != nil {
		return "", "", fmt.Errorf("marshal params: %w", err)
	}
	return fmt.Sprintf("%d:%x", seed, fnv64a(b)), string(b), nil
}

func fnv64a(data []byte) uint64 {
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)
	h := uint64(offset64)
	for _, c := range data {
		h ^= uint64(c)
		h *= prime64
	}
	return h
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
