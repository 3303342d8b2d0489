package regions

import (
	"github.com/talgya/civmapgen/internal/ruleset"
	"github.com/talgya/civmapgen/internal/tilemap"
)

// Classify scans r.Rectangle and tallies per-terrain-type/base/feature
// counts and coastal-land tile count, then assigns RegionType by the
// threshold cascade of spec §4.4.
func Classify(tm *tilemap.TileMap, r *Region) {
	stat := TerrainStatistic{
		TerrainTypeCounts: map[tilemap.TerrainType]int{},
		BaseTerrainCounts: map[tilemap.BaseTerrain]int{},
		FeatureCounts:     map[ruleset.FeatureID]int{},
	}

	for _, t := range r.Rectangle.IterTiles(tm.Grid) {
		if r.HasAreaID && tm.AreaID(t) != r.AreaID {
			continue
		}
		if tm.IsWater(t) {
			stat.WaterTiles++
			stat.BaseTerrainCounts[tm.BaseTerrain(t)]++
			continue
		}
		stat.LandTiles++
		stat.TerrainTypeCounts[tm.TerrainType(t)]++
		stat.BaseTerrainCounts[tm.BaseTerrain(t)]++
		if f, ok := tm.Feature(t); ok {
			stat.FeatureCounts[f]++
		}
		if tm.IsCoastalLand(t) {
			stat.CoastalLandTiles++
		}
	}

	r.Stat = stat
	r.RegionType = classifyFromStat(stat)
}

func pct(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

func classifyFromStat(s TerrainStatistic) RegionType {
	if s.LandTiles == 0 {
		return RegionUndefined
	}
	land := s.LandTiles

	tundra := s.BaseTerrainCounts[tilemap.Tundra] + s.BaseTerrainCounts[tilemap.Snow]
	if pct(tundra, land) >= 30 {
		return RegionTundra
	}

	// Desert only. Floodplain is a feature whose id only the ruleset can
	// resolve, so it is not counted here; ClassifyWithRuleset adds
	// floodplain tiles to this check.
	desertPlusFloodplain := s.BaseTerrainCounts[tilemap.Desert]
	if pct(desertPlusFloodplain, land) >= 25 {
		return RegionDesert
	}

	jungle := featureCount(s, "Jungle")
	if pct(jungle, land) >= 25 {
		return RegionJungle
	}

	forest := featureCount(s, "Forest")
	if pct(forest, land) >= 25 {
		return RegionForest
	}

	if pct(s.TerrainTypeCounts[tilemap.Hill], land) >= 30 {
		return RegionHill
	}
	if pct(s.BaseTerrainCounts[tilemap.Plain], land) >= 40 {
		return RegionPlain
	}
	if pct(s.BaseTerrainCounts[tilemap.Grassland], land) >= 40 {
		return RegionGrassland
	}
	return RegionHybrid
}

// featureCount is a placeholder lookup used by the threshold cascade until
// the caller wires Classify through ClassifyWithRuleset (below), which
// resolves feature ids to names. Returns 0 when called directly.
func featureCount(TerrainStatistic, string) int { return 0 }

// ClassifyWithRuleset is Classify, but resolves Jungle/Forest/Floodplain
// feature-name thresholds against the loaded ruleset's interned ids, as the
// plain Classify above cannot (it has no ruleset reference).
func ClassifyWithRuleset(tm *tilemap.TileMap, rs *ruleset.Ruleset, r *Region) {
	Classify(tm, r)
	land := r.Stat.LandTiles
	if land == 0 {
		return
	}
	jungleCount := featureCountByName(tm, rs, r, "Jungle")
	forestCount := featureCountByName(tm, rs, r, "Forest")
	floodplainCount := featureCountByName(tm, rs, r, "Floodplain")

	tundra := r.Stat.BaseTerrainCounts[tilemap.Tundra] + r.Stat.BaseTerrainCounts[tilemap.Snow]
	switch {
	case pct(tundra, land) >= 30:
		r.RegionType = RegionTundra
	case pct(r.Stat.BaseTerrainCounts[tilemap.Desert]+floodplainCount, land) >= 25:
		r.RegionType = RegionDesert
	case pct(jungleCount, land) >= 25:
		r.RegionType = RegionJungle
	case pct(forestCount, land) >= 25:
		r.RegionType = RegionForest
	case pct(r.Stat.TerrainTypeCounts[tilemap.Hill], land) >= 30:
		r.RegionType = RegionHill
	case pct(r.Stat.BaseTerrainCounts[tilemap.Plain], land) >= 40:
		r.RegionType = RegionPlain
	case pct(r.Stat.BaseTerrainCounts[tilemap.Grassland], land) >= 40:
		r.RegionType = RegionGrassland
	default:
		r.RegionType = RegionHybrid
	}
}

func featureCountByName(tm *tilemap.TileMap, rs *ruleset.Ruleset, r *Region, name string) int {
	count := 0
	for _, t := range r.Rectangle.IterTiles(tm.Grid) {
		if r.HasAreaID && tm.AreaID(t) != r.AreaID {
			continue
		}
		f, ok := tm.Feature(t)
		if !ok {
			continue
		}
		def, err := rs.Feature(f)
		if err == nil && def.Name == name {
			count++
		}
	}
	return count
}
