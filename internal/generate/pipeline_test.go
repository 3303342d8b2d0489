package generate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/civmapgen/internal/generate"
	"github.com/talgya/civmapgen/internal/hexgrid"
	"github.com/talgya/civmapgen/internal/regions"
)

func smallParams(seed uint64, civs, cityStates int) generate.Parameters {
	p := generate.DefaultParameters(hexgrid.Small, seed)
	p.Width, p.Height = 36, 22
	p.CivilizationCount = civs
	p.CityStateCount = cityStates
	return p
}

func TestGenerate_TileCountMatchesGrid(t *testing.T) {
	rs := newTestRuleset(4)
	p := smallParams(77777777, 4, 8)
	p.Nations = allNations(rs, 4)

	res, err := generate.Generate(p, rs)
	assert.NoError(t, err)
	assert.Equal(t, p.Width*p.Height, res.Map.Grid.TileCount())
}

func TestGenerate_Determinism(t *testing.T) {
	rs := newTestRuleset(4)
	p := smallParams(12345, 4, 6)
	p.Nations = allNations(rs, 4)

	res1, err1 := generate.Generate(p, rs)
	assert.NoError(t, err1)
	res2, err2 := generate.Generate(p, rs)
	assert.NoError(t, err2)

	n := res1.Map.Grid.TileCount()
	for i := 0; i < n; i++ {
		tl := hexgrid.Tile(i)
		assert.Equal(t, res1.Map.TerrainType(tl), res2.Map.TerrainType(tl))
		assert.Equal(t, res1.Map.BaseTerrain(tl), res2.Map.BaseTerrain(tl))
		id1, q1, has1 := res1.Map.Resource(tl)
		id2, q2, has2 := res2.Map.Resource(tl)
		assert.Equal(t, has1, has2)
		if has1 {
			assert.Equal(t, id1, id2)
			assert.Equal(t, q1, q2)
		}
	}
	assert.Equal(t, res1.CivStarts, res2.CivStarts)
}

func TestGenerate_CivilizationCountMatchesRegions(t *testing.T) {
	rs := newTestRuleset(4)
	p := smallParams(99, 4, 4)
	p.Nations = allNations(rs, 4)

	res, err := generate.Generate(p, rs)
	assert.NoError(t, err)
	assert.Len(t, res.CivStarts, 4)
	for _, nid := range p.Nations {
		start, ok := res.CivStarts[nid]
		assert.True(t, ok)
		assert.GreaterOrEqual(t, int(start), 0)
		assert.Less(t, int(start), res.Map.Grid.TileCount())
	}
}

func TestGenerate_DuelStrategicBalancePlacesStrategicsNearStarts(t *testing.T) {
	rs := newTestRuleset(2)
	p := smallParams(1, 2, 4)
	p.WorldSize = hexgrid.Duel
	p.Width, p.Height = 30, 18
	p.ResourceSetting = generate.StrategicBalance
	p.Nations = allNations(rs, 2)

	res, err := generate.Generate(p, rs)
	assert.NoError(t, err)
	assert.Len(t, res.CivStarts, 2)

	ironID, _ := rs.ResourceByName("Iron")
	horsesID, _ := rs.ResourceByName("Horses")
	oilID, _ := rs.ResourceByName("Oil")

	for _, start := range res.CivStarts {
		ring := res.Map.Grid.TilesWithinDistance(start, 3)
		found := false
		for _, rt := range ring {
			id, _, has := res.Map.Resource(rt)
			if has && (id == ironID || id == horsesID || id == oilID) {
				found = true
				break
			}
		}
		assert.True(t, found, "expected a strategic resource within 3 rings of start %d", start)
	}
}

func TestGenerate_SparseTinyMapGenerates(t *testing.T) {
	rs := newTestRuleset(3)
	p := smallParams(2024, 3, 6)
	p.WorldSize = hexgrid.Tiny
	p.Width, p.Height = 24, 16
	p.ResourceSetting = generate.Sparse
	p.Nations = allNations(rs, 3)

	_, err := generate.Generate(p, rs)
	assert.NoError(t, err)
}

func TestGenerate_NaturalWondersAreUnique(t *testing.T) {
	rs := newTestRuleset(4)
	p := smallParams(7, 4, 4)
	p.Nations = allNations(rs, 4)

	res, err := generate.Generate(p, rs)
	assert.NoError(t, err)

	seen := map[hexgrid.Tile]bool{}
	for _, t2 := range res.NaturalWonders {
		assert.False(t, seen[t2], "wonder tile %d placed twice", t2)
		seen[t2] = true
	}
}

func TestGenerate_CoastalStartRequirement(t *testing.T) {
	rs := newTestRuleset(4)
	p := smallParams(42, 4, 8)
	p.StartsMustBeCoastal = true
	p.Nations = allNations(rs, 4)

	res, err := generate.Generate(p, rs)
	assert.NoError(t, err)

	forced := map[int]bool{}
	for _, idx := range res.ForcedRegions {
		forced[idx] = true
	}
	for _, r := range res.Regions {
		if forced[r.Index] {
			continue
		}
		assert.True(t, r.StartCondition.AlongOcean || r.Forced, "region %d start should be coastal or forced", r.Index)
	}
}

func TestGenerate_InsufficientLandErrorWhenTooManyCivs(t *testing.T) {
	rs := newTestRuleset(4)
	p := smallParams(5, 40, 4)
	p.Width, p.Height = 8, 8

	_, err := generate.Generate(p, rs)
	assert.Error(t, err)
	_, ok := err.(*generate.InsufficientLandError)
	assert.True(t, ok, "expected an InsufficientLandError, got %T: %v", err, err)
}

func TestGenerate_RegionsTileTheMap(t *testing.T) {
	rs := newTestRuleset(4)
	p := smallParams(321, 4, 4)
	p.RegionDivideMethod = regions.DivideWholeMap
	p.Nations = allNations(rs, 4)

	res, err := generate.Generate(p, rs)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, len(res.Regions), 1)

	covered := make([]int, res.Map.Grid.TileCount())
	for _, r := range res.Regions {
		for _, tl := range r.Rectangle.IterTiles(res.Map.Grid) {
			covered[tl]++
		}
	}
	for i, c := range covered {
		assert.Equal(t, 1, c, "tile %d covered %d times", i, c)
	}
}
