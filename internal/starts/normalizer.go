package starts

import (
	"github.com/talgya/civmapgen/internal/hexgrid"
	"github.com/talgya/civmapgen/internal/regions"
	"github.com/talgya/civmapgen/internal/rng"
	"github.com/talgya/civmapgen/internal/ruleset"
	"github.com/talgya/civmapgen/internal/tilemap"
)

// ResourceSetting mirrors generate.ResourceSetting without importing it
// (avoids an import cycle; generate re-exports these as its own type).
type ResourceSetting uint8

const (
	Sparse ResourceSetting = iota
	Standard
	Abundant
	LegendaryStart
	StrategicBalance
)

type tally struct {
	food2, food3, food4       int
	hill, forest, oneHammer   int
	ocean, bad                int
	canHaveBonus, native2Food int
	grass, plain, jungle      int
	alongOcean, nextToLake    bool
	isRiver, nearRiver        bool
	nearMountain              bool
}

func featureNamed(tm *tilemap.TileMap, rs *ruleset.Ruleset, t hexgrid.Tile, name string) bool {
	f, ok := tm.Feature(t)
	if !ok || rs == nil {
		return false
	}
	def, err := rs.Feature(f)
	return err == nil && def.Name == name
}

func resourceIDOrZero(rs *ruleset.Ruleset, name string) (ruleset.ResourceID, bool) {
	if rs == nil {
		return 0, false
	}
	id, err := rs.ResourceByName(name)
	return id, err == nil
}

// Normalize audits a civ start's 1-ring and 2-ring and mutates the map to
// reach the fairness floor described in spec §4.6, returning the recorded
// start_location_condition.
func Normalize(tm *tilemap.TileMap, rs *ruleset.Ruleset, r *regions.Region, start hexgrid.Tile, setting ResourceSetting, src *rng.Source) regions.StartLocationCondition {
	g := tm.Grid

	// 1. Ice purge over the 1-ring.
	for _, t := range g.TilesAtDistance(start, 1) {
		if featureNamed(tm, rs, t, "Ice") {
			tm.ClearFeature(t)
		}
	}

	inner := append(g.TilesAtDistance(start, 1))
	outer := g.TilesAtDistance(start, 2)
	both := append(append([]hexgrid.Tile{}, inner...), outer...)

	ty := tallyStart(tm, rs, both)

	cond := regions.StartLocationCondition{
		AlongOcean:   ty.alongOcean,
		NextToLake:   ty.nextToLake,
		IsRiver:      ty.isRiver,
		NearRiver:    ty.nearRiver,
		NearMountain: ty.nearMountain,
	}

	// 3. Hammer rescue.
	innerHammer := 4*countHills(tm, inner) + 2*countForest(tm, rs, inner) + countOneHammer(tm, rs, inner)
	outerHammer := 4*countHills(tm, outer) + 2*countForest(tm, rs, outer) + countOneHammer(tm, rs, outer)
	if (outerHammer < 8 && innerHammer < 2) || innerHammer == 0 {
		tryHillRescue(tm, src, inner)
	}

	// 4. Strategic Balance injection.
	if setting == StrategicBalance {
		injectStrategicBalance(tm, rs, src, g, start)
	}

	// 5. Early hammer fix.
	earlyHammer := innerHammer // approximation of "early" production available
	if innerHammer < 3 && earlyHammer < 6 {
		tryEarlyHammerFix(tm, rs, src, outer)
	}

	// 6. Food-bonus ladder.
	applyFoodLadder(tm, rs, src, ty, start, inner, outer, setting)

	// 7. Stone injection.
	if ty.grass >= 9 && ty.plain == 0 {
		placeBonusOnDryGrass(tm, rs, src, append(append([]hexgrid.Tile{}, inner...), outer...), "Stone", 2)
	} else if ty.grass >= 6 && ty.plain <= 4 {
		placeBonusOnDryGrass(tm, rs, src, append(append([]hexgrid.Tile{}, inner...), outer...), "Stone", 1)
	}

	return cond
}

func tallyStart(tm *tilemap.TileMap, rs *ruleset.Ruleset, tiles []hexgrid.Tile) tally {
	var t tally
	for _, tile := range tiles {
		if tm.IsWater(tile) {
			if tm.BaseTerrain(tile) != tilemap.Lake {
				t.ocean++
			} else {
				t.nextToLake = true
			}
			continue
		}
		if tm.IsCoastalLand(tile) {
			t.alongOcean = true
		}
		if tm.IsRiver(tile) {
			t.isRiver = true
		}
		if tm.NearRiver(tile) {
			t.nearRiver = true
		}
		if tm.TerrainType(tile) == tilemap.Mountain {
			t.nearMountain = true
			t.bad++
			continue
		}
		if tm.TerrainType(tile) == tilemap.Hill {
			t.hill++
		}
		if featureNamed(tm, rs, tile, "Forest") {
			t.forest++
		}
		if featureNamed(tm, rs, tile, "Jungle") {
			t.jungle++
		}
		switch tm.BaseTerrain(tile) {
		case tilemap.Grassland:
			t.grass++
			t.food2++
			t.native2Food++
		case tilemap.Plain:
			t.plain++
			t.food2++
			t.native2Food++
		case tilemap.Snow:
			t.bad++
		case tilemap.Desert:
			if !featureNamed(tm, rs, tile, "Floodplain") {
				t.bad++
			} else {
				t.food2++
			}
		}
		if tm.TerrainType(tile) == tilemap.Flatland {
			t.canHaveBonus++
		}
	}
	return t
}

func countHills(tm *tilemap.TileMap, tiles []hexgrid.Tile) int {
	n := 0
	for _, t := range tiles {
		if tm.TerrainType(t) == tilemap.Hill {
			n++
		}
	}
	return n
}

func countForest(tm *tilemap.TileMap, rs *ruleset.Ruleset, tiles []hexgrid.Tile) int {
	n := 0
	for _, t := range tiles {
		if featureNamed(tm, rs, t, "Forest") {
			n++
		}
	}
	return n
}

func countOneHammer(tm *tilemap.TileMap, rs *ruleset.Ruleset, tiles []hexgrid.Tile) int {
	n := 0
	for _, t := range tiles {
		if tm.TerrainType(t) == tilemap.Flatland && tm.BaseTerrain(t) == tilemap.Plain {
			n++
		}
	}
	return n
}

// tryHillRescue shuffles the 1-ring and converts one eligible tile (no
// resource, not water, no forest, no river) to a Hill.
func tryHillRescue(tm *tilemap.TileMap, src *rng.Source, ring []hexgrid.Tile) {
	order := src.ShuffleInts(len(ring))
	for _, i := range order {
		t := ring[i]
		if tm.IsWater(t) || tm.HasResource(t) || tm.IsRiver(t) {
			continue
		}
		if _, has := tm.Feature(t); has {
			continue
		}
		if tm.TerrainType(t) == tilemap.Mountain {
			continue
		}
		tm.SetTerrainType(t, tilemap.Hill)
		return
	}
}

// injectStrategicBalance places one Iron, one Horses, one Oil within a
// 3-ring, preferring rings 1-2 and terrain per resource, falling back to
// ring 3 (spec §4.6 step 4).
func injectStrategicBalance(tm *tilemap.TileMap, rs *ruleset.Ruleset, src *rng.Source, g hexgrid.Grid, start hexgrid.Tile) {
	place := func(name string, preferred func(hexgrid.Tile) bool) {
		id, ok := resourceIDOrZero(rs, name)
		if !ok {
			return
		}
		ring3 := g.TilesWithinDistance(start, 3)
		order := src.ShuffleInts(len(ring3))
		// Preferred pass (ring 1-2, matching terrain).
		for _, i := range order {
			t := ring3[i]
			if tm.HasResource(t) || tm.IsWater(t) {
				continue
			}
			if g.HexDistance(start, t) > 2 {
				continue
			}
			if preferred(t) {
				tm.SetResource(t, id, 1)
				return
			}
		}
		// Fallback pass (ring 3, any eligible tile).
		for _, i := range order {
			t := ring3[i]
			if tm.HasResource(t) || tm.IsWater(t) {
				continue
			}
			if preferred(t) || tm.TerrainType(t) != tilemap.Mountain {
				tm.SetResource(t, id, 1)
				return
			}
		}
	}

	place("Iron", func(t hexgrid.Tile) bool {
		return tm.TerrainType(t) == tilemap.Hill || (tm.TerrainType(t) == tilemap.Flatland && featureNamed(tm, rs, t, "Forest"))
	})
	place("Horses", func(t hexgrid.Tile) bool {
		return tm.TerrainType(t) == tilemap.Flatland && (tm.BaseTerrain(t) == tilemap.Plain || tm.BaseTerrain(t) == tilemap.Grassland)
	})
	place("Oil", func(t hexgrid.Tile) bool {
		b := tm.BaseTerrain(t)
		return b == tilemap.Tundra || b == tilemap.Desert || b == tilemap.Snow || featureNamed(tm, rs, t, "Marsh")
	})
}

// tryEarlyHammerFix stamps a small (quantity=2) Horses-or-Iron on an
// eligible 2-ring flatland tile (spec §4.6 step 5).
func tryEarlyHammerFix(tm *tilemap.TileMap, rs *ruleset.Ruleset, src *rng.Source, outer []hexgrid.Tile) {
	name := "Horses"
	if src.Bool(0.5) {
		name = "Iron"
	}
	id, ok := resourceIDOrZero(rs, name)
	if !ok {
		return
	}
	order := src.ShuffleInts(len(outer))
	for _, i := range order {
		t := outer[i]
		if tm.HasResource(t) || tm.IsWater(t) {
			continue
		}
		if tm.TerrainType(t) != tilemap.Flatland {
			continue
		}
		tm.SetResource(t, id, 2)
		return
	}
}

// foodBonusCount is the step function of spec §4.6 step 6.
func foodBonusCount(total, inner, natives int, legendary bool) int {
	var n int
	switch {
	case total < 4 && inner == 0:
		n = 5
	case total < 6:
		n = 4
	case total < 8:
		n = 3
	case total < 12 && inner < 5:
		n = 3
	case total < 17 && (inner < 9 || natives <= 1):
		n = 2
	default:
		n = 1
	}
	if legendary {
		n += 2
	}
	return n
}

func applyFoodLadder(tm *tilemap.TileMap, rs *ruleset.Ruleset, src *rng.Source, ty tally, start hexgrid.Tile, inner, outer []hexgrid.Tile, setting ResourceSetting) {
	totalFoodScore := 4*ty.food4 + 2*ty.food3 + ty.food2
	innerFoodScore := 0
	for _, t := range inner {
		if tm.BaseTerrain(t) == tilemap.Grassland || tm.BaseTerrain(t) == tilemap.Plain {
			innerFoodScore++
		}
	}
	legendary := setting == LegendaryStart
	count := foodBonusCount(totalFoodScore, innerFoodScore, ty.native2Food, legendary)

	if ty.native2Food == 0 {
		// Swap one eligible pure-plain tile to Grassland.
		order := src.ShuffleInts(len(inner) + len(outer))
		all := append(append([]hexgrid.Tile{}, inner...), outer...)
		for _, i := range order {
			if i >= len(all) {
				continue
			}
			t := all[i]
			if tm.TerrainType(t) == tilemap.Flatland && tm.BaseTerrain(t) == tilemap.Plain {
				tm.SetBaseTerrain(t, tilemap.Grassland)
				break
			}
		}
	}

	innerCap := 2
	if legendary {
		innerCap = 3
	}
	outerCap := 4
	if legendary {
		outerCap = 5
	}

	oasisPlaced := false
	placeBonusRing := func(ring []hexgrid.Tile, cap int) {
		if count <= 0 {
			return
		}
		order := src.ShuffleInts(len(ring))
		placed := 0
		for _, i := range order {
			if placed >= cap || count <= 0 {
				return
			}
			t := ring[i]
			if tm.HasResource(t) || tm.IsWater(t) {
				continue
			}
			name, isOasis := pickFoodBonusName(tm, rs, t, !oasisPlaced)
			if name == "" {
				continue
			}
			id, ok := resourceIDOrZero(rs, name)
			if !ok {
				continue
			}
			tm.SetResource(t, id, 1)
			if isOasis {
				oasisPlaced = true
			}
			placed++
			count--
		}
	}

	placeBonusRing(inner, innerCap)
	placeBonusRing(outer, outerCap)

	if count > 0 {
		ring3 := tm.Grid.TilesAtDistance(start, 3)
		ring3Cap := 4
		if legendary {
			ring3Cap = 5
		}
		placeBonusRing(ring3, ring3Cap)
	}
}

func pickFoodBonusName(tm *tilemap.TileMap, rs *ruleset.Ruleset, t hexgrid.Tile, oasisAllowed bool) (string, bool) {
	base := tm.BaseTerrain(t)
	tt := tm.TerrainType(t)
	switch {
	case tt == tilemap.Flatland && base == tilemap.Grassland:
		return "Wheat", false
	case tt == tilemap.Flatland && base == tilemap.Plain:
		return "Wheat", false
	case base == tilemap.Desert && oasisAllowed:
		return "Oasis", true
	case featureNamed(tm, rs, t, "Jungle"):
		return "Banana", false
	case tt == tilemap.Hill:
		return "Sheep", false
	default:
		return "", false
	}
}

func placeBonusOnDryGrass(tm *tilemap.TileMap, rs *ruleset.Ruleset, src *rng.Source, ring []hexgrid.Tile, name string, count int) {
	id, ok := resourceIDOrZero(rs, name)
	if !ok {
		return
	}
	order := src.ShuffleInts(len(ring))
	placed := 0
	for _, i := range order {
		if placed >= count {
			return
		}
		t := ring[i]
		if tm.HasResource(t) || tm.IsWater(t) {
			continue
		}
		if tm.TerrainType(t) != tilemap.Flatland || tm.BaseTerrain(t) != tilemap.Grassland {
			continue
		}
		tm.SetResource(t, id, 1)
		placed++
	}
}
