package wonders_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/civmapgen/internal/areas"
	"github.com/talgya/civmapgen/internal/hexgrid"
	"github.com/talgya/civmapgen/internal/rng"
	"github.com/talgya/civmapgen/internal/ruleset"
	"github.com/talgya/civmapgen/internal/tilemap"
	"github.com/talgya/civmapgen/internal/wonders"
)

func TestTargetCount_MatchesWorldSize(t *testing.T) {
	assert.Equal(t, 2, wonders.TargetCount(hexgrid.Duel))
	assert.Equal(t, 5, wonders.TargetCount(hexgrid.Standard))
	assert.Equal(t, 7, wonders.TargetCount(hexgrid.Huge))
}

func mountainGrid(t *testing.T) (hexgrid.Grid, *tilemap.TileMap) {
	t.Helper()
	g, err := hexgrid.NewGrid(20, 16, true, false, hexgrid.Pointy, hexgrid.Odd)
	assert.NoError(t, err)
	tm := tilemap.New(g)
	for i := 0; i < g.TileCount(); i++ {
		tm.SetTerrainType(hexgrid.Tile(i), tilemap.Flatland)
		tm.SetBaseTerrain(hexgrid.Tile(i), tilemap.Grassland)
	}
	tm.SetTerrainType(hexgrid.Tile(100), tilemap.Mountain)
	return g, tm
}

func TestPlace_PlacesSingleTileWonderOnMatchingTerrain(t *testing.T) {
	_, tm := mountainGrid(t)
	rs := ruleset.New()
	rs.AddNaturalWonder(ruleset.NaturalWonder{
		Name:         "Mount Fuji",
		OccursOnType: []string{"Mountain"},
	})

	placed := wonders.Place(tm, rs, nil, 1, rng.New(1))
	assert.Len(t, placed, 1)
	name, has := tm.NaturalWonder(placed[0])
	assert.True(t, has)
	assert.Equal(t, "Mount Fuji", name)
}

func TestPlace_StopsAtTargetCount(t *testing.T) {
	_, tm := mountainGrid(t)
	rs := ruleset.New()
	rs.AddNaturalWonder(ruleset.NaturalWonder{Name: "Fuji", OccursOnType: []string{"Mountain"}})
	rs.AddNaturalWonder(ruleset.NaturalWonder{Name: "Grassy", OccursOnBase: []string{"Grassland"}})

	placed := wonders.Place(tm, rs, nil, 1, rng.New(1))
	assert.Len(t, placed, 1)
}

func TestPlace_NoMatchingTerrainPlacesNothing(t *testing.T) {
	g, err := hexgrid.NewGrid(10, 10, true, false, hexgrid.Pointy, hexgrid.Odd)
	assert.NoError(t, err)
	tm := tilemap.New(g)
	rs := ruleset.New()
	rs.AddNaturalWonder(ruleset.NaturalWonder{Name: "Fuji", OccursOnType: []string{"Mountain"}})

	placed := wonders.Place(tm, rs, nil, 1, rng.New(1))
	assert.Empty(t, placed)
}

func TestPlace_NeverPlacesTheSameWonderTileTwice(t *testing.T) {
	_, tm := mountainGrid(t)
	tm.SetTerrainType(hexgrid.Tile(101), tilemap.Mountain)
	rs := ruleset.New()
	rs.AddNaturalWonder(ruleset.NaturalWonder{Name: "Fuji", OccursOnType: []string{"Mountain"}})

	placed := wonders.Place(tm, rs, nil, 2, rng.New(5))
	seen := map[hexgrid.Tile]bool{}
	for _, tl := range placed {
		assert.False(t, seen[tl])
		seen[tl] = true
	}
}

func TestPlace_HonorsAdjacencyUnique(t *testing.T) {
	g, err := hexgrid.NewGrid(10, 10, true, false, hexgrid.Pointy, hexgrid.Odd)
	assert.NoError(t, err)
	tm := tilemap.New(g)
	for i := 0; i < g.TileCount(); i++ {
		tm.SetTerrainType(hexgrid.Tile(i), tilemap.Flatland)
		tm.SetBaseTerrain(hexgrid.Tile(i), tilemap.Grassland)
	}
	center := hexgrid.Tile(50)
	for _, n := range g.Neighbors(center) {
		tm.SetTerrainType(n, tilemap.Mountain)
	}
	rs := ruleset.New()
	rs.AddNaturalWonder(ruleset.NaturalWonder{
		Name:    "RingedPeak",
		Uniques: []string{"Must be adjacent to 6 Mountain tiles"},
	})

	placed := wonders.Place(tm, rs, []areas.Area{}, 1, rng.New(1))
	assert.Len(t, placed, 1)
	assert.Equal(t, center, placed[0])
}
