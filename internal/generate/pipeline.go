package generate

import (
	"log/slog"

	"github.com/talgya/civmapgen/internal/areas"
	"github.com/talgya/civmapgen/internal/citystates"
	"github.com/talgya/civmapgen/internal/civs"
	"github.com/talgya/civmapgen/internal/hexgrid"
	"github.com/talgya/civmapgen/internal/luxury"
	"github.com/talgya/civmapgen/internal/regions"
	"github.com/talgya/civmapgen/internal/rng"
	"github.com/talgya/civmapgen/internal/ruleset"
	"github.com/talgya/civmapgen/internal/starts"
	"github.com/talgya/civmapgen/internal/tilemap"
	"github.com/talgya/civmapgen/internal/wonders"
)

// Result is everything Generate hands back to the caller (spec §6 Outputs).
type Result struct {
	Map              *tilemap.TileMap
	Regions          []*regions.Region
	CivStarts        map[ruleset.NationID]hexgrid.Tile
	CityStateStarts  []hexgrid.Tile
	Areas            []areas.Area
	NaturalWonders   []hexgrid.Tile
	ForcedRegions    []int
	Shortfalls       []*PlacementShortfallError
}

// Generate runs the full deterministic pipeline of spec §2 against p and
// rs, consuming a single seeded rng.Source in the fixed order spec §5
// requires: terrain -> areas -> regions -> starts -> civs -> wonders ->
// city-states -> luxury roles -> resource placement.
func Generate(p Parameters, rs *ruleset.Ruleset) (*Result, error) {
	g, err := hexgrid.NewGrid(p.Width, p.Height, p.WrapX, p.WrapY, p.Orientation, p.Parity)
	if err != nil {
		return nil, &InvalidConfigurationError{Reason: err.Error()}
	}
	if p.RegionDivideMethod == regions.DivideCustomRectangle {
		if p.CustomRectangle.Width == 0 || p.CustomRectangle.Height == 0 {
			return nil, &InvalidConfigurationError{Reason: "custom rectangle has zero extent"}
		}
	}

	src := rng.New(p.Seed)
	tm := tilemap.New(g)

	slog.Info("generating terrain", "width", p.Width, "height", p.Height, "seed", p.Seed)
	wcfg := worldgenConfig(rs, p)
	generateTerrain(tm, wcfg)

	slog.Info("labeling areas")
	areaList := areas.Label(tm, p.LakeMaxAreaSize)

	slog.Info("partitioning regions", "civs", p.CivilizationCount, "method", p.RegionDivideMethod)
	regionList, forced := regions.Partition(tm, p.RegionDivideMethod, p.CivilizationCount, p.CustomRectangle, areaList)
	for i, r := range regionList {
		regions.ClassifyWithRuleset(tm, rs, r)
		r.Index = i
	}

	var forcedIdx []int
	if forced {
		slog.Warn("insufficient land for requested civilization count", "requested", p.CivilizationCount, "regions", len(regionList))
	}
	if len(regionList) < p.CivilizationCount {
		return nil, &InsufficientLandError{Requested: p.CivilizationCount, Available: len(regionList)}
	}

	slog.Info("selecting starting tiles", "regions", len(regionList))
	for _, r := range regionList {
		t, ok := starts.Select(tm, rs, r, p.StartsMustBeCoastal)
		if !ok {
			r.Forced = true
			forcedIdx = append(forcedIdx, r.Index)
			t = deterministicFallback(tm, r)
		}
		r.StartingTile = t
		r.HasStart = true
		tm.Layers.WriteCivStart(g, t)
		r.StartCondition = starts.Normalize(tm, rs, r, t, starts.ResourceSetting(p.ResourceSetting), src)
	}

	slog.Info("assigning civilizations to regions")
	assignments := civs.Assign(rs, p.Nations, regionList, src)
	civStarts := make(map[ruleset.NationID]hexgrid.Tile, len(assignments))
	for _, a := range assignments {
		civStarts[a.NationID] = a.Region.StartingTile
	}

	slog.Info("placing natural wonders")
	target := wonders.TargetCount(p.WorldSize)
	placedWonders := wonders.Place(tm, rs, areaList, target, src)

	slog.Info("assigning and placing city-states", "count", p.CityStateCount)
	cityStateAssignments := citystates.AssignRegions(regionList, nil, landAreasOnly(areaList), p.CityStateCount)
	var cityStateTiles []hexgrid.Tile
	for _, a := range cityStateAssignments {
		candidates := cityStateCandidates(tm, regionList, a.RegionIndex)
		t, ok := citystates.Place(tm, candidates, src)
		if ok {
			cityStateTiles = append(cityStateTiles, t)
		}
	}

	slog.Info("assigning luxury roles")
	roles := luxury.AssignRoles(rs, regionList, p.CivilizationCount, src)

	slog.Info("running resource placement pipeline")
	worldTiles := g.TileCount()
	luxury.RunLuxuryPipeline(tm, rs, regionList, roles, p.ResourceSetting.luxury(), worldTiles, src)

	landTiles := make([]hexgrid.Tile, 0, worldTiles)
	for i := 0; i < worldTiles; i++ {
		t := hexgrid.Tile(i)
		if !tm.IsWater(t) {
			landTiles = append(landTiles, t)
		}
	}
	luxury.PlaceStrategicsAndBonuses(tm, rs, landTiles, p.ResourceSetting.luxury(), src)

	applySugarFix(tm, rs)
	areaList = areas.Label(tm, p.LakeMaxAreaSize)

	return &Result{
		Map:             tm,
		Regions:         regionList,
		CivStarts:       civStarts,
		CityStateStarts: cityStateTiles,
		Areas:           areaList,
		NaturalWonders:  placedWonders,
		ForcedRegions:   forcedIdx,
	}, nil
}

func landAreasOnly(all []areas.Area) []areas.Area {
	var out []areas.Area
	for _, a := range all {
		if !a.IsWater {
			out = append(out, a)
		}
	}
	return out
}

func cityStateCandidates(tm *tilemap.TileMap, regionList []*regions.Region, regionIdx int) []hexgrid.Tile {
	if regionIdx < 0 {
		var out []hexgrid.Tile
		for i := 0; i < tm.Grid.TileCount(); i++ {
			out = append(out, hexgrid.Tile(i))
		}
		return out
	}
	for _, r := range regionList {
		if r.Index == regionIdx {
			return r.Rectangle.IterTiles(tm.Grid)
		}
	}
	return nil
}

// deterministicFallback is the spec §7 InsufficientLand forced-placement
// policy: the region's geometric center, coerced to Flatland/Grassland.
func deterministicFallback(tm *tilemap.TileMap, r *regions.Region) hexgrid.Tile {
	t := r.Rectangle.Center(tm.Grid)
	tm.SetTerrainType(t, tilemap.Flatland)
	tm.SetBaseTerrain(t, tilemap.Grassland)
	tm.ClearFeature(t)
	return t
}

// applySugarFix rewrites any Jungle+Sugar tile to Flatland/Grassland/Marsh
// (spec §4.12 post-pass "Sugar graphics fix").
func applySugarFix(tm *tilemap.TileMap, rs *ruleset.Ruleset) {
	marshID, hasMarsh := resourceFeatureByName(rs, "Marsh")
	if !hasMarsh {
		return
	}
	for i := 0; i < tm.Grid.TileCount(); i++ {
		t := hexgrid.Tile(i)
		id, _, hasResource := tm.Resource(t)
		if !hasResource {
			continue
		}
		resDef, err := rs.Resource(id)
		if err != nil || resDef.Name != "Sugar" {
			continue
		}
		f, hasFeature := tm.Feature(t)
		if !hasFeature {
			continue
		}
		featDef, err := rs.Feature(f)
		if err != nil || featDef.Name != "Jungle" {
			continue
		}
		tm.SetTerrainType(t, tilemap.Flatland)
		tm.SetBaseTerrain(t, tilemap.Grassland)
		tm.SetFeature(t, marshID)
	}
}

func resourceFeatureByName(rs *ruleset.Ruleset, name string) (ruleset.FeatureID, bool) {
	for fid := ruleset.FeatureID(0); ; fid++ {
		f, err := rs.Feature(fid)
		if err != nil {
			return 0, false
		}
		if f.Name == name {
			return fid, true
		}
	}
}

