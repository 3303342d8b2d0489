package worldgen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/civmapgen/internal/hexgrid"
	"github.com/talgya/civmapgen/internal/tilemap"
	"github.com/talgya/civmapgen/internal/worldgen"
)

func TestGenerate_ProducesBothLandAndWaterAtStandardLevels(t *testing.T) {
	g, err := hexgrid.NewGrid(40, 24, true, false, hexgrid.Pointy, hexgrid.Odd)
	assert.NoError(t, err)
	tm := tilemap.New(g)
	worldgen.Generate(tm, worldgen.Config{Seed: 1, SeaLevel: 0.42, MountainLvl: 0.82})

	water, land := 0, 0
	for i := 0; i < g.TileCount(); i++ {
		if tm.IsWater(hexgrid.Tile(i)) {
			water++
		} else {
			land++
		}
	}
	assert.Greater(t, water, 0)
	assert.Greater(t, land, 0)
}

func TestGenerate_IsDeterministicForAFixedSeed(t *testing.T) {
	g, err := hexgrid.NewGrid(30, 20, true, false, hexgrid.Pointy, hexgrid.Odd)
	assert.NoError(t, err)
	cfg := worldgen.Config{Seed: 42, SeaLevel: 0.42, MountainLvl: 0.82}

	tm1 := tilemap.New(g)
	worldgen.Generate(tm1, cfg)
	tm2 := tilemap.New(g)
	worldgen.Generate(tm2, cfg)

	for i := 0; i < g.TileCount(); i++ {
		tl := hexgrid.Tile(i)
		assert.Equal(t, tm1.TerrainType(tl), tm2.TerrainType(tl))
		assert.Equal(t, tm1.BaseTerrain(tl), tm2.BaseTerrain(tl))
		assert.Equal(t, tm1.IsRiver(tl), tm2.IsRiver(tl))
	}
}

func TestGenerate_DifferentSeedsProduceDifferentMaps(t *testing.T) {
	g, err := hexgrid.NewGrid(30, 20, true, false, hexgrid.Pointy, hexgrid.Odd)
	assert.NoError(t, err)

	tm1 := tilemap.New(g)
	worldgen.Generate(tm1, worldgen.Config{Seed: 1, SeaLevel: 0.42, MountainLvl: 0.82})
	tm2 := tilemap.New(g)
	worldgen.Generate(tm2, worldgen.Config{Seed: 2, SeaLevel: 0.42, MountainLvl: 0.82})

	differs := false
	for i := 0; i < g.TileCount(); i++ {
		tl := hexgrid.Tile(i)
		if tm1.BaseTerrain(tl) != tm2.BaseTerrain(tl) {
			differs = true
			break
		}
	}
	assert.True(t, differs)
}

func TestGenerate_WaterTilesAdjacentToLandBecomeCoast(t *testing.T) {
	g, err := hexgrid.NewGrid(40, 24, true, false, hexgrid.Pointy, hexgrid.Odd)
	assert.NoError(t, err)
	tm := tilemap.New(g)
	worldgen.Generate(tm, worldgen.Config{Seed: 5, SeaLevel: 0.42, MountainLvl: 0.82})

	foundCoast := false
	for i := 0; i < g.TileCount(); i++ {
		t := hexgrid.Tile(i)
		if tm.IsWater(t) && tm.BaseTerrain(t) == tilemap.Coast {
			foundCoast = true
			break
		}
	}
	assert.True(t, foundCoast)
}

func TestGenerate_RiversOnlyTraceOverNonWaterNonMountainTiles(t *testing.T) {
	g, err := hexgrid.NewGrid(40, 24, true, false, hexgrid.Pointy, hexgrid.Odd)
	assert.NoError(t, err)
	tm := tilemap.New(g)
	worldgen.Generate(tm, worldgen.Config{Seed: 9, SeaLevel: 0.42, MountainLvl: 0.82})

	for i := 0; i < g.TileCount(); i++ {
		t := hexgrid.Tile(i)
		if tm.IsRiver(t) {
			assert.False(t, tm.IsWater(t))
			assert.NotEqual(t, tilemap.Mountain, tm.TerrainType(t))
		}
	}
}
