package luxury

import (
	"github.com/talgya/civmapgen/internal/hexgrid"
	"github.com/talgya/civmapgen/internal/regions"
	"github.com/talgya/civmapgen/internal/rng"
	"github.com/talgya/civmapgen/internal/ruleset"
	"github.com/talgya/civmapgen/internal/tilemap"
)

// ResourceSetting mirrors generate.ResourceSetting (duplicated to avoid an
// import cycle between luxury and generate; generate's enum is the source
// of truth and converts to this one at the call site).
type ResourceSetting uint8

const (
	Sparse ResourceSetting = iota
	Standard
	Abundant
	LegendaryStart
	StrategicBalance
)

// regionCompensation tracks Phase 1's low-fertility top-ups so Phase 3 can
// discount them (spec §4.12 Phase 1/Phase 3).
type regionCompensation struct {
	perRegion map[int]int
}

// RunLuxuryPipeline executes the regional-at-start, regional-quota, random
// and second-luxury-at-start placement phases plus the Marble special case
// (spec §4.12). It places no luxury at city-state sites; the CityState role
// list is drawn on only as a fallback in the second-luxury phase.
func RunLuxuryPipeline(tm *tilemap.TileMap, rs *ruleset.Ruleset, regs []*regions.Region, roles RoleAssignment, setting ResourceSetting, worldTiles int, src *rng.Source) {
	comp := &regionCompensation{perRegion: map[int]int{}}

	regionalByID := map[ruleset.ResourceID]bool{}
	for id := range roles.Regional {
		regionalByID[id] = true
	}

	// --- Phase 1: regional exclusives at starts -----------------------
	for _, r := range regs {
		if !r.HasLuxury || !r.HasStart {
			continue
		}
		base := 1
		if setting == LegendaryStart {
			base = 2
		}
		if r.AverageFertility() < 2.5 {
			base++
		}
		land := r.Rectangle.Width * r.Rectangle.Height
		if land > 0 && float64(r.FertilitySum)/float64(land) < 4.0 {
			base++
			comp.perRegion[r.Index]++
		}

		res, err := rs.Resource(r.LuxuryResource)
		if err != nil {
			continue
		}
		ring2 := tm.Grid.TilesWithinDistance(r.StartingTile, 2)
		ring3 := tm.Grid.TilesWithinDistance(r.StartingTile, 3)

		placed := base - PlaceSpecificNumber(tm, r.LuxuryResource, 1, base, 0.5, tilemap.LayerLuxury, true, res.MinRadius, res.MaxRadius, ring2, src)
		if placed < base {
			remaining := base - placed
			placed2 := remaining - PlaceSpecificNumber(tm, r.LuxuryResource, 1, remaining, 1.0, tilemap.LayerLuxury, true, res.MinRadius, res.MaxRadius, ring3, src)
			placed += placed2
		}
		if placed < base && len(roles.Random) > 0 {
			sub := roles.Random[src.Intn(len(roles.Random))]
			PlaceSpecificNumber(tm, sub, 1, 1, 1.0, tilemap.LayerLuxury, true, 0, 2, ring2, src)
			comp.perRegion[r.Index]++
		}
	}

	// --- Phase 2: city-states -------------------------------------------
	// No luxury is placed at city-state sites, here or in the generate
	// package; roles.CityState is used only by Phase 5 below.

	// --- Phase 3: regional quotas -----------------------------------
	target := regionalQuotaTarget(worldTiles, len(regs))
	for _, r := range regs {
		if !r.HasLuxury {
			continue
		}
		count := regionCount(roles, r.LuxuryResource)
		quota := target
		if count > 0 {
			quota = (target + count - 1) / count
		}
		quota += comp.perRegion[r.Index] / 2
		quota -= comp.perRegion[r.Index]
		switch setting {
		case Sparse:
			quota--
		case Abundant:
			quota++
		}
		if quota < 1 {
			quota = 1
		}
		res, err := rs.Resource(r.LuxuryResource)
		if err != nil {
			continue
		}
		tiles := TilesForBuckets(tm, rs, r.Rectangle.IterTiles(tm.Grid), res.AllowedBuckets)
		PlaceSpecificNumber(tm, r.LuxuryResource, 1, quota, 1.0, tilemap.LayerLuxury, true, res.MinRadius, res.MaxRadius, tiles, src)
	}

	// --- Phase 4: random ------------------------------------------------
	if len(roles.Random) > 0 {
		worldTarget := randomWorldTarget(worldTiles) + src.Intn(maxInt(1, len(regs)))
		allTiles := make([]hexgrid.Tile, 0, tm.Grid.TileCount())
		for i := 0; i < tm.Grid.TileCount(); i++ {
			allTiles = append(allTiles, hexgrid.Tile(i))
		}
		shares := randomRatioTable(len(roles.Random))
		for i, id := range roles.Random {
			amount := int(float64(worldTarget) * shares[i])
			if amount <= 0 {
				continue
			}
			res, err := rs.Resource(id)
			minR, maxR := 4, 6
			if err == nil && res.MaxRadius > 0 {
				minR, maxR = res.MinRadius, res.MaxRadius
			}
			PlaceSpecificNumber(tm, id, 1, amount, 0.25, tilemap.LayerLuxury, true, minR, maxR, allTiles, src)
		}
	}

	// --- Phase 5: second luxury at starts --------------------------------
	if setting != Sparse {
		for _, r := range regs {
			if !r.HasStart {
				continue
			}
			pool := append([]ruleset.ResourceID{}, roles.Random...)
			if roles.HasSpecial && setting != StrategicBalance {
				pool = append(pool, roles.SpecialCase)
			}
			ring2 := tm.Grid.TilesWithinDistance(r.StartingTile, 2)
			placedSecond := false
			for _, id := range pool {
				res, err := rs.Resource(id)
				if err != nil {
					continue
				}
				tiles := TilesForBuckets(tm, rs, ring2, res.AllowedBuckets)
				if len(tiles) == 0 {
					continue
				}
				if PlaceSpecificNumber(tm, id, 1, 1, 1.0, tilemap.LayerLuxury, true, res.MinRadius, res.MaxRadius, tiles, src) == 0 {
					placedSecond = true
					break
				}
			}
			if placedSecond {
				continue
			}
			for _, id := range roles.CityState {
				res, err := rs.Resource(id)
				if err != nil {
					continue
				}
				tiles := TilesForBuckets(tm, rs, ring2, res.AllowedBuckets)
				if len(tiles) == 0 {
					continue
				}
				if PlaceSpecificNumber(tm, id, 1, 1, 1.0, tilemap.LayerLuxury, true, res.MinRadius, res.MaxRadius, ring2, src) == 0 {
					break
				}
				_ = tiles
			}
		}
	}

	// --- Marble special case -------------------------------------------
	if roles.HasSpecial {
		placeMarble(tm, rs, roles.SpecialCase, setting, len(regs), src)
	}
}

func regionCount(roles RoleAssignment, id ruleset.ResourceID) int {
	return len(roles.Regional[id])
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// regionalQuotaTarget picks the Phase 3 target from the total tile count
// alone: 1 below 1200 tiles, 2 below 2500, 4 below 4500, 6 below 7000 and
// 8 otherwise. regionCount does not affect the result.
func regionalQuotaTarget(worldTiles, regionCount int) int {
	switch {
	case worldTiles < 1200:
		return 1
	case worldTiles < 2500:
		return 2
	case worldTiles < 4500:
		return 4
	case worldTiles < 7000:
		return 6
	default:
		return 8
	}
}

func randomWorldTarget(worldTiles int) int {
	// Standard-size Normal world target is 60 per spec §4.12 Phase 4
	// example; scale roughly with tile count relative to Standard's 80x52.
	const standardTiles = 80 * 52
	return maxInt(10, 60*worldTiles/standardTiles)
}

// randomRatioTable splits 1.0 across n random-role luxury types: each type
// in turn takes 0.45 of what remains and the last takes the rest, so 2
// types -> [0.45,0.55] and 3 types -> [0.45,0.2475,0.3025].
func randomRatioTable(n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	remaining := 1.0
	for i := 0; i < n; i++ {
		var share float64
		if i == n-1 {
			share = remaining
		} else {
			share = remaining * 0.45
		}
		out[i] = share
		remaining -= share
	}
	return out
}

func placeMarble(tm *tilemap.TileMap, rs *ruleset.Ruleset, id ruleset.ResourceID, setting ResourceSetting, civCount int, src *rng.Source) {
	var mult float64
	switch setting {
	case Sparse:
		mult = 0.5
	case Abundant:
		mult = 0.9
	default:
		mult = 0.75
	}
	target := int(float64(civCount) * mult)
	if target <= 0 {
		return
	}

	var eligible []hexgrid.Tile
	for i := 0; i < tm.Grid.TileCount(); i++ {
		t := hexgrid.Tile(i)
		if tm.HasResource(t) || tm.Layers.Value(tilemap.LayerMarble, t) != 0 || tm.Layers.Value(tilemap.LayerLuxury, t) != 0 {
			continue
		}
		base := tm.BaseTerrain(t)
		tt := tm.TerrainType(t)
		switch {
		case tt == tilemap.Flatland && base == tilemap.Grassland && !tm.IsFreshwater(t):
			eligible = append(eligible, t)
		case tt == tilemap.Flatland && base == tilemap.Desert:
			eligible = append(eligible, t)
		case tt == tilemap.Flatland && base == tilemap.Plain && !tm.IsFreshwater(t):
			eligible = append(eligible, t)
		case tt == tilemap.Flatland && base == tilemap.Tundra:
			eligible = append(eligible, t)
		case tt == tilemap.Hill && base != tilemap.Snow:
			eligible = append(eligible, t)
		}
	}

	res, err := rs.Resource(id)
	minR, maxR := 0, 2
	if err == nil {
		minR, maxR = res.MinRadius, res.MaxRadius
	}
	PlaceSpecificNumber(tm, id, 1, target, 1.0, tilemap.LayerMarble, true, minR, maxR, eligible, src)
}
