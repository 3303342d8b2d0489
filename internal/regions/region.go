// Package regions implements the region partitioner (§4.3) and region
// classifier (§4.4): dividing the habitable landmasses into one rectangle
// per civilization and tallying each region's terrain statistics.
package regions

import (
	"github.com/talgya/civmapgen/internal/hexgrid"
	"github.com/talgya/civmapgen/internal/ruleset"
	"github.com/talgya/civmapgen/internal/tilemap"
)

// RegionType classifies a region's dominant terrain character.
type RegionType uint8

const (
	RegionUndefined RegionType = iota
	RegionTundra
	RegionDesert
	RegionJungle
	RegionForest
	RegionHill
	RegionPlain
	RegionGrassland
	RegionHybrid
)

// TerrainStatistic tallies per-terrain-type/base/feature counts over a
// region's rectangle.
type TerrainStatistic struct {
	TerrainTypeCounts map[tilemap.TerrainType]int
	BaseTerrainCounts map[tilemap.BaseTerrain]int
	FeatureCounts     map[ruleset.FeatureID]int
	CoastalLandTiles  int
	LandTiles         int
	WaterTiles        int
}

// StartLocationCondition is the audit record produced by the starting-tile
// normalizer (§4.6), also consulted by the luxury role assigner (§4.11).
type StartLocationCondition struct {
	AlongOcean  bool
	NextToLake  bool
	IsRiver     bool
	NearRiver   bool
	NearMountain bool
}

// Region is a rectangular subset of a landmass assigned to one civilization.
type Region struct {
	Index          int
	Rectangle      hexgrid.Rectangle
	AreaID         int // -1 when partitioning ignores landmass
	HasAreaID      bool
	RegionType     RegionType
	Stat           TerrainStatistic
	Fertility      []int // per-tile, aligned with Rectangle.IterTiles order
	FertilitySum   int
	StartingTile   hexgrid.Tile
	HasStart       bool
	StartCondition StartLocationCondition
	LuxuryResource ruleset.ResourceID
	HasLuxury      bool
	Forced         bool // placed at a deterministic fallback (spec §7 InsufficientLand)
}

// AverageFertility returns fertility_sum / area_in_tiles.
func (r *Region) AverageFertility() float64 {
	n := r.Rectangle.Width * r.Rectangle.Height
	if n == 0 {
		return 0
	}
	return float64(r.FertilitySum) / float64(n)
}
