package rungcache_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/civmapgen/internal/hexgrid"
	"github.com/talgya/civmapgen/internal/ruleset"
	"github.com/talgya/civmapgen/internal/rungcache"
	"github.com/talgya/civmapgen/internal/tilemap"
)

func openTestDB(t *testing.T) *rungcache.DB {
	t.Helper()
	dir := t.TempDir()
	db, err := rungcache.Open(filepath.Join(dir, "cache.db"))
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDB_SaveThenLoadRoundTrips(t *testing.T) {
	db := openTestDB(t)

	g, err := hexgrid.NewGrid(4, 4, false, false, hexgrid.Pointy, hexgrid.Odd)
	assert.NoError(t, err)
	tm := tilemap.New(g)
	tm.SetTerrainType(hexgrid.Tile(0), tilemap.Hill)
	tm.SetBaseTerrain(hexgrid.Tile(0), tilemap.Plain)
	tm.SetResource(hexgrid.Tile(1), ruleset.ResourceID(3), 6)
	tm.SetRiver(hexgrid.Tile(2), true)

	run := &rungcache.Run{
		Map:        tm,
		CivStarts:  map[ruleset.NationID]hexgrid.Tile{0: hexgrid.Tile(5)},
		CityStates: []hexgrid.Tile{hexgrid.Tile(9), hexgrid.Tile(10)},
	}

	key, paramsJSON, err := rungcache.Key(42, map[string]int{"width": 4, "height": 4})
	assert.NoError(t, err)
	assert.NotEmpty(t, key)

	assert.False(t, db.Has(key))
	assert.NoError(t, db.Save(key, 42, paramsJSON, run))
	assert.True(t, db.Has(key))

	loaded, ok, err := db.Load(key)
	assert.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, tilemap.Hill, loaded.Map.TerrainType(hexgrid.Tile(0)))
	assert.Equal(t, tilemap.Plain, loaded.Map.BaseTerrain(hexgrid.Tile(0)))
	id, qty, has := loaded.Map.Resource(hexgrid.Tile(1))
	assert.True(t, has)
	assert.Equal(t, ruleset.ResourceID(3), id)
	assert.Equal(t, 6, qty)
	assert.True(t, loaded.Map.IsRiver(hexgrid.Tile(2)))
	assert.Equal(t, hexgrid.Tile(5), loaded.CivStarts[0])
	assert.Equal(t, []hexgrid.Tile{hexgrid.Tile(9), hexgrid.Tile(10)}, loaded.CityStates)
}

func TestDB_LoadMissingKeyReturnsFalse(t *testing.T) {
	db := openTestDB(t)
	_, ok, err := db.Load("nonexistent")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestKey_SameInputsProduceSameKey(t *testing.T) {
	k1, _, err := rungcache.Key(7, map[string]int{"a": 1})
	assert.NoError(t, err)
	k2, _, err := rungcache.Key(7, map[string]int{"a": 1})
	assert.NoError(t, err)
	assert.Equal(t, k1, k2)

	k3, _, err := rungcache.Key(7, map[string]int{"a": 2})
	assert.NoError(t, err)
	assert.NotEqual(t, k1, k3)
}

func TestDB_SaveOverwritesPriorEntryUnderSameKey(t *testing.T) {
	db := openTestDB(t)
	g, _ := hexgrid.NewGrid(2, 2, false, false, hexgrid.Pointy, hexgrid.Odd)

	key := "dup"
	run1 := &rungcache.Run{Map: tilemap.New(g), CivStarts: map[ruleset.NationID]hexgrid.Tile{}}
	assert.NoError(t, db.Save(key, 1, "{}", run1))

	tm2 := tilemap.New(g)
	tm2.SetTerrainType(hexgrid.Tile(0), tilemap.Mountain)
	run2 := &rungcache.Run{Map: tm2, CivStarts: map[ruleset.NationID]hexgrid.Tile{}}
	assert.NoError(t, db.Save(key, 1, "{}", run2))

	loaded, ok, err := db.Load(key)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, tilemap.Mountain, loaded.Map.TerrainType(hexgrid.Tile(0)))
}
