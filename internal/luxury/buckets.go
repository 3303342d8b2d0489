package luxury

import (
	"github.com/talgya/civmapgen/internal/hexgrid"
	"github.com/talgya/civmapgen/internal/ruleset"
	"github.com/talgya/civmapgen/internal/tilemap"
)

// Bucket indices into the 15 terrain categories of spec §4.12. Resource
// AllowedBuckets lists are ordered preference indices into this table.
const (
	BucketCoastNextToLand = iota
	BucketMarsh
	BucketFloodplain
	BucketHillOpen
	BucketHillCovered
	BucketHillJungle
	BucketHillForest
	BucketJungleFlat
	BucketForestFlat
	BucketDesertFlatPlain
	BucketPlainFlatPlain
	BucketDryGrassFlat
	BucketFreshGrassFlat
	BucketTundraInclForest
	BucketForestFlatNotTundra
	bucketCount
)

func hasFeatureNamed(tm *tilemap.TileMap, rs *ruleset.Ruleset, t hexgrid.Tile, name string) bool {
	f, ok := tm.Feature(t)
	if !ok || rs == nil {
		return false
	}
	def, err := rs.Feature(f)
	return err == nil && def.Name == name
}

// classifyBucket assigns a tile to the first matching bucket category, or
// -1 if the tile is not usable for luxury/bonus placement.
func classifyBucket(tm *tilemap.TileMap, rs *ruleset.Ruleset, t hexgrid.Tile) int {
	if tm.IsWater(t) {
		if tm.BaseTerrain(t) == tilemap.Coast {
			for _, n := range tm.Grid.Neighbors(t) {
				if !tm.IsWater(n) {
					return BucketCoastNextToLand
				}
			}
		}
		return -1
	}
	if hasFeatureNamed(tm, rs, t, "Marsh") {
		return BucketMarsh
	}
	if hasFeatureNamed(tm, rs, t, "Floodplain") {
		return BucketFloodplain
	}

	tt := tm.TerrainType(t)
	base := tm.BaseTerrain(t)
	jungle := hasFeatureNamed(tm, rs, t, "Jungle")
	forest := hasFeatureNamed(tm, rs, t, "Forest")

	if tt == tilemap.Hill {
		switch {
		case jungle:
			return BucketHillJungle
		case forest:
			return BucketHillCovered
		default:
			return BucketHillOpen
		}
	}
	if tt != tilemap.Flatland {
		return -1
	}

	if base == tilemap.Tundra {
		return BucketTundraInclForest
	}
	if jungle {
		return BucketJungleFlat
	}
	if forest {
		if base != tilemap.Tundra {
			return BucketForestFlatNotTundra
		}
		return BucketForestFlat
	}
	switch base {
	case tilemap.Desert:
		return BucketDesertFlatPlain
	case tilemap.Plain:
		return BucketPlainFlatPlain
	case tilemap.Grassland:
		if tm.IsFreshwater(t) {
			return BucketFreshGrassFlat
		}
		return BucketDryGrassFlat
	}
	return -1
}

// TilesForBuckets returns, as one slice in the order of tiles, every tile
// without a resource whose bucket is one of allowed. The order of allowed
// has no effect.
func TilesForBuckets(tm *tilemap.TileMap, rs *ruleset.Ruleset, tiles []hexgrid.Tile, allowed []int) []hexgrid.Tile {
	want := make(map[int]bool, len(allowed))
	for _, b := range allowed {
		want[b] = true
	}
	var out []hexgrid.Tile
	for _, t := range tiles {
		if tm.HasResource(t) {
			continue
		}
		b := classifyBucket(tm, rs, t)
		if b >= 0 && want[b] {
			out = append(out, t)
		}
	}
	return out
}
