// Package citystates implements the city-state assigner and placer
// (spec §4.10): distributing a city-state count across civ regions and
// uninhabited landmasses, then picking and stamping each one's start tile.
package citystates

import (
	"sort"

	"github.com/talgya/civmapgen/internal/areas"
	"github.com/talgya/civmapgen/internal/hexgrid"
	"github.com/talgya/civmapgen/internal/regions"
	"github.com/talgya/civmapgen/internal/rng"
	"github.com/talgya/civmapgen/internal/tilemap"
)

// Assignment records one city-state's region (if any) and chosen tile.
type Assignment struct {
	RegionIndex int // -1 when unassigned to any civ region
	Tile        hexgrid.Tile
	Forced      bool
}

// AssignRegions splits count city-states roughly half to regions (ranked
// by fertility-per-civ-need, highest first) and half to uninhabited
// landmasses, shifting extra slots toward regions that were forced to
// share a luxury type (spec §4.10).
func AssignRegions(regs []*regions.Region, sharedLuxuryRegionIdx map[int]bool, uninhabited []areas.Area, count int) []Assignment {
	toRegions := count / 2
	toLand := count - toRegions

	// Bonus slot for every region that had to share a luxury type, taken
	// from the uninhabited-landmass share when available.
	bonus := 0
	for _, shared := range sharedLuxuryRegionIdx {
		if shared {
			bonus++
		}
	}
	if bonus > 0 && toLand > 0 {
		shift := bonus
		if shift > toLand {
			shift = toLand
		}
		toRegions += shift
		toLand -= shift
	}
	if toRegions > len(regs)*4 {
		toRegions = len(regs) * 4
	}

	order := append([]*regions.Region{}, regs...)
	sort.SliceStable(order, func(i, j int) bool {
		return fertilityPerCivNeed(order[i]) > fertilityPerCivNeed(order[j])
	})

	var out []Assignment
	for i := 0; i < toRegions; i++ {
		if len(order) == 0 {
			break
		}
		r := order[i%len(order)]
		out = append(out, Assignment{RegionIndex: r.Index})
	}

	landAreas := areas.BySize(uninhabited, false)
	for i := 0; i < toLand; i++ {
		if len(landAreas) == 0 {
			// No uninhabited land: fall back to another region slot.
			if len(order) > 0 {
				out = append(out, Assignment{RegionIndex: order[i%len(order)].Index})
			}
			continue
		}
		out = append(out, Assignment{RegionIndex: -1})
	}

	return out
}

func fertilityPerCivNeed(r *regions.Region) float64 {
	n := r.Rectangle.Width * r.Rectangle.Height
	if n == 0 {
		return 0
	}
	return float64(r.FertilitySum) / float64(n)
}

// Place picks a starting tile for one city-state from candidates,
// preferring coastal-land, falling back to inland, then to forced
// collision (spec §4.10).
func Place(tm *tilemap.TileMap, candidates []hexgrid.Tile, src *rng.Source) (hexgrid.Tile, bool) {
	eligible := func(t hexgrid.Tile, allowCollision bool) bool {
		tt := tm.TerrainType(t)
		if tt != tilemap.Flatland && tt != tilemap.Hill {
			return false
		}
		if tm.BaseTerrain(t) == tilemap.Snow {
			return false
		}
		if tm.Layers.Value(tilemap.LayerCityState, t) != 0 {
			return false
		}
		if !allowCollision && tm.Layers.PlayerCollision[t] {
			return false
		}
		return true
	}

	var coastal, inland []hexgrid.Tile
	for _, t := range candidates {
		if !eligible(t, false) {
			continue
		}
		if tm.IsCoastalLand(t) {
			coastal = append(coastal, t)
		} else {
			inland = append(inland, t)
		}
	}

	pick := func(pool []hexgrid.Tile) (hexgrid.Tile, bool) {
		if len(pool) == 0 {
			return 0, false
		}
		return pool[src.Intn(len(pool))], true
	}

	if t, ok := pick(coastal); ok {
		stamp(tm, t)
		return t, true
	}
	if t, ok := pick(inland); ok {
		stamp(tm, t)
		return t, true
	}

	// Last resort: allow collision with an existing civ start.
	var forced []hexgrid.Tile
	for _, t := range candidates {
		if eligible(t, true) {
			forced = append(forced, t)
		}
	}
	if t, ok := pick(forced); ok {
		stamp(tm, t)
		return t, true
	}
	return 0, false
}

func stamp(tm *tilemap.TileMap, t hexgrid.Tile) {
	tm.Layers.WriteCityStateImpact(tm.Grid, t)
}
