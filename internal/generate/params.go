// Package generate orchestrates the full map-generation pipeline (spec §2):
// fractal/terrain pass, area labeling, region partition/classification,
// starting-tile selection/normalization, civilization assignment, natural
// wonder placement, city-state placement, luxury role assignment, and
// resource placement, in that fixed order against one seeded rng.Source.
package generate

import (
	"github.com/talgya/civmapgen/internal/hexgrid"
	"github.com/talgya/civmapgen/internal/luxury"
	"github.com/talgya/civmapgen/internal/regions"
	"github.com/talgya/civmapgen/internal/ruleset"
)

// ResourceSetting controls the generosity of resource placement (spec §6).
type ResourceSetting uint8

const (
	Sparse ResourceSetting = iota
	Standard
	Abundant
	LegendaryStart
	StrategicBalance
)

func (s ResourceSetting) luxury() luxury.ResourceSetting { return luxury.ResourceSetting(s) }
func (s ResourceSetting) starts() int                     { return int(s) }

// Parameters is the full set of external inputs to Generate (spec §6).
type Parameters struct {
	Width, Height     int
	WrapX, WrapY      bool
	Orientation       hexgrid.Orientation
	Parity            hexgrid.Parity
	Seed              uint64
	MapType           string
	CivilizationCount int
	CityStateCount    int
	WorldSize         hexgrid.WorldSize
	ResourceSetting   ResourceSetting
	RegionDivideMethod regions.DivideMethod
	CustomRectangle   hexgrid.Rectangle
	StartsMustBeCoastal bool

	LargeLakeNum     int
	LakeMaxAreaSize  int
	CoastExpandChance []float64

	Nations []ruleset.NationID

	SeaLevel    float64
	MountainLvl float64
}

// DefaultParameters returns a Parameters with the world-size default grid
// and the spec's suggested tunables, for callers that only want to
// override a handful of fields.
func DefaultParameters(ws hexgrid.WorldSize, seed uint64) Parameters {
	w, h := hexgrid.DefaultGridSize(ws)
	return Parameters{
		Width: w, Height: h,
		WrapX: true, WrapY: false,
		Orientation: hexgrid.Pointy,
		Parity:      hexgrid.Odd,
		Seed:        seed,
		WorldSize:   ws,
		ResourceSetting:    Standard,
		RegionDivideMethod: regions.DivideContinent,
		LargeLakeNum:       2,
		LakeMaxAreaSize:    9,
		CoastExpandChance:  []float64{0.25, 0.25},
		SeaLevel:           0.42,
		MountainLvl:        0.82,
	}
}
