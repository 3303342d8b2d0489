package regions

import (
	"github.com/talgya/civmapgen/internal/hexgrid"
	"github.com/talgya/civmapgen/internal/tilemap"
)

// Fertility computes a positive desirability score per tile. Spec §4.3
// leaves this formula as an implementer policy ("not fully specified by the
// source... adopt a published Civ-style formula"); this is the published
// Civ5-style fertility used by the original generator's region step:
// impassable tiles score 0; flatland/hill score a base value with bonuses
// for grass/plain, rivers, and coastal access.
func Fertility(tm *tilemap.TileMap, t hexgrid.Tile) int {
	if tm.IsWater(t) {
		return 0
	}
	tt := tm.TerrainType(t)
	if tt == tilemap.Mountain {
		return 0
	}

	score := 1
	switch tt {
	case tilemap.Hill:
		score += 1
	case tilemap.Flatland:
		score += 2
	}

	switch tm.BaseTerrain(t) {
	case tilemap.Grassland:
		score += 2
	case tilemap.Plain:
		score += 1
	case tilemap.Desert:
		// no bonus
	case tilemap.Tundra:
		score -= 1
	case tilemap.Snow:
		score -= 2
	}
	if score < 0 {
		score = 0
	}

	if tm.IsRiver(t) {
		score += 2
	}
	if tm.IsCoastalLand(t) {
		score += 1
	}
	return score
}
