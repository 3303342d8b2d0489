package luxury_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/civmapgen/internal/hexgrid"
	"github.com/talgya/civmapgen/internal/luxury"
	"github.com/talgya/civmapgen/internal/regions"
	"github.com/talgya/civmapgen/internal/rng"
	"github.com/talgya/civmapgen/internal/ruleset"
	"github.com/talgya/civmapgen/internal/tilemap"
)

func testGrid(t *testing.T) (hexgrid.Grid, *tilemap.TileMap) {
	t.Helper()
	g, err := hexgrid.NewGrid(20, 16, true, false, hexgrid.Pointy, hexgrid.Odd)
	assert.NoError(t, err)
	tm := tilemap.New(g)
	for i := 0; i < g.TileCount(); i++ {
		tl := hexgrid.Tile(i)
		tm.SetTerrainType(tl, tilemap.Flatland)
		tm.SetBaseTerrain(tl, tilemap.Grassland)
	}
	return g, tm
}

func TestTilesForBuckets_FiltersOutTilesWithExistingResources(t *testing.T) {
	g, tm := testGrid(t)
	rs := ruleset.New()
	id := rs.AddResource("Wheat", ruleset.CategoryBonus, 1, ruleset.QuantityTable{}, nil, 0, 1)
	tl := hexgrid.Tile(5)
	tm.SetResource(tl, id, 1)

	all := make([]hexgrid.Tile, 0, g.TileCount())
	for i := 0; i < g.TileCount(); i++ {
		all = append(all, hexgrid.Tile(i))
	}
	out := luxury.TilesForBuckets(tm, rs, all, []int{luxury.BucketDryGrassFlat})
	for _, o := range out {
		assert.NotEqual(t, tl, o)
	}
	assert.NotEmpty(t, out)
}

func TestTilesForBuckets_CoastalBucketRequiresCoastAdjacentToLand(t *testing.T) {
	g, tm := testGrid(t)
	waterTile := hexgrid.Tile(0)
	tm.SetTerrainType(waterTile, tilemap.Water)
	tm.SetBaseTerrain(waterTile, tilemap.Coast)
	rs := ruleset.New()

	all := make([]hexgrid.Tile, 0, g.TileCount())
	for i := 0; i < g.TileCount(); i++ {
		all = append(all, hexgrid.Tile(i))
	}
	out := luxury.TilesForBuckets(tm, rs, all, []int{luxury.BucketCoastNextToLand})
	assert.Contains(t, out, waterTile)
}

func TestPlaceSpecificNumber_PlacesUpToRatioCappedAmount(t *testing.T) {
	_, tm := testGrid(t)
	rs := ruleset.New()
	id := rs.AddResource("Wine", ruleset.CategoryLuxury, 10, ruleset.QuantityTable{}, nil, 0, 2)
	tiles := []hexgrid.Tile{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	unplaced := luxury.PlaceSpecificNumber(tm, id, 1, 10, 0.5, tilemap.LayerLuxury, true, 0, 2, tiles, rng.New(1))
	assert.Equal(t, 0, unplaced)

	count := 0
	for _, tl := range tiles {
		if tm.HasResource(tl) {
			count++
		}
	}
	assert.Equal(t, 5, count)
}

func TestPlaceSpecificNumber_SkipsTilesWithExistingResource(t *testing.T) {
	_, tm := testGrid(t)
	rs := ruleset.New()
	a := rs.AddResource("Wine", ruleset.CategoryLuxury, 10, ruleset.QuantityTable{}, nil, 0, 2)
	b := rs.AddResource("Silk", ruleset.CategoryLuxury, 10, ruleset.QuantityTable{}, nil, 0, 2)
	tm.SetResource(hexgrid.Tile(0), a, 1)

	unplaced := luxury.PlaceSpecificNumber(tm, b, 1, 1, 1.0, tilemap.LayerLuxury, true, 0, 2, []hexgrid.Tile{0}, rng.New(1))
	assert.Equal(t, 1, unplaced)
}

func TestProcessResourceList_PlacesResourcesAcrossPlotList(t *testing.T) {
	_, tm := testGrid(t)
	rs := ruleset.New()
	id := rs.AddResource("Iron", ruleset.CategoryStrategic, 10, ruleset.QuantityTable{}, nil, 0, 2)
	_ = rs

	tiles := make([]hexgrid.Tile, 0, 60)
	for i := 0; i < 60; i++ {
		tiles = append(tiles, hexgrid.Tile(i))
	}
	table := []luxury.WeightedResourceEntry{{ID: id, Weight: 1, Quantity: 3, MinRadius: 0, MaxRadius: 1}}

	luxury.ProcessResourceList(tm, 12, tilemap.LayerStrategic, tiles, table, rng.New(9))

	placed := 0
	for _, tl := range tiles {
		if tm.HasResource(tl) {
			placed++
		}
	}
	assert.GreaterOrEqual(t, placed, 1)
}

func TestAssignRoles_EveryRegionWithACandidateGetsALuxury(t *testing.T) {
	rs := ruleset.New()
	rs.AddResource("Wine", ruleset.CategoryLuxury, 10, ruleset.QuantityTable{}, nil, 0, 2)
	rs.AddResource("Sugar", ruleset.CategoryLuxury, 10, ruleset.QuantityTable{}, nil, 0, 2)
	rs.AddResource("Silk", ruleset.CategoryLuxury, 10, ruleset.QuantityTable{}, nil, 0, 2)

	regs := []*regions.Region{
		{Index: 0, RegionType: regions.RegionGrassland},
		{Index: 1, RegionType: regions.RegionGrassland},
	}

	roles := luxury.AssignRoles(rs, regs, 2, rng.New(1))
	for _, r := range regs {
		assert.True(t, r.HasLuxury)
	}
	total := 0
	for _, idxs := range roles.Regional {
		total += len(idxs)
	}
	assert.Equal(t, 2, total)
}

func TestAssignRoles_MarbleBecomesSpecialCaseWhenUnassigned(t *testing.T) {
	rs := ruleset.New()
	rs.AddResource("Marble", ruleset.CategoryLuxury, 10, ruleset.QuantityTable{}, nil, 0, 2)

	roles := luxury.AssignRoles(rs, nil, 2, rng.New(1))
	assert.True(t, roles.HasSpecial)
	marbleID, _ := rs.ResourceByName("Marble")
	assert.Equal(t, marbleID, roles.SpecialCase)
}

func TestPlaceStrategicsAndBonuses_PlacesAtLeastOneStrategicResource(t *testing.T) {
	g, tm := testGrid(t)
	rs := ruleset.New()
	rs.AddResource("Iron", ruleset.CategoryStrategic, 10, ruleset.QuantityTable{0, 6, 0, 0, 7}, []int{luxury.BucketDryGrassFlat, luxury.BucketFreshGrassFlat}, 1, 2)

	all := make([]hexgrid.Tile, 0, g.TileCount())
	for i := 0; i < g.TileCount(); i++ {
		all = append(all, hexgrid.Tile(i))
	}

	luxury.PlaceStrategicsAndBonuses(tm, rs, all, luxury.Standard, rng.New(3))

	found := false
	for _, tl := range all {
		if tm.HasResource(tl) {
			found = true
			break
		}
	}
	assert.True(t, found)
}

func TestRunLuxuryPipeline_PlacesRegionalLuxuryNearRegionStart(t *testing.T) {
	g, tm := testGrid(t)
	rs := ruleset.New()
	rs.AddResource("Wine", ruleset.CategoryLuxury, 10, ruleset.QuantityTable{}, nil, 0, 2)

	start := hexgrid.Tile(100)
	rect, err := hexgrid.NewRectangle(g, hexgrid.Offset{X: 0, Y: 0}, g.Width, g.Height)
	assert.NoError(t, err)
	r := &regions.Region{
		Index:        0,
		Rectangle:    rect,
		RegionType:   regions.RegionGrassland,
		FertilitySum: 1000,
		StartingTile: start,
		HasStart:     true,
	}
	regs := []*regions.Region{r}

	roles := luxury.AssignRoles(rs, regs, 1, rng.New(1))
	luxury.RunLuxuryPipeline(tm, rs, regs, roles, luxury.Standard, g.TileCount(), rng.New(1))

	found := false
	for _, tl := range g.TilesWithinDistance(start, 3) {
		if tm.HasResource(tl) {
			found = true
			break
		}
	}
	assert.True(t, found)
}
