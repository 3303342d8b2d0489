// Package wonders implements the natural wonder placer (spec §4.9):
// testing each wonder's terrain/freshwater/unique predicates tile by tile,
// preferring rarer wonders, and stamping the chosen tiles.
package wonders

import (
	"sort"

	"github.com/talgya/civmapgen/internal/areas"
	"github.com/talgya/civmapgen/internal/hexgrid"
	"github.com/talgya/civmapgen/internal/rng"
	"github.com/talgya/civmapgen/internal/ruleset"
	"github.com/talgya/civmapgen/internal/tilemap"
)

// TargetCount returns the number of natural wonders to place for a world
// size (spec §4.9).
func TargetCount(ws hexgrid.WorldSize) int {
	switch ws {
	case hexgrid.Duel:
		return 2
	case hexgrid.Tiny:
		return 3
	case hexgrid.Small:
		return 4
	case hexgrid.Standard:
		return 5
	case hexgrid.Large:
		return 6
	case hexgrid.Huge:
		return 7
	default:
		return 5
	}
}

func terrainTypeName(tt tilemap.TerrainType) string {
	switch tt {
	case tilemap.Water:
		return "Water"
	case tilemap.Flatland:
		return "Flatland"
	case tilemap.Hill:
		return "Hill"
	case tilemap.Mountain:
		return "Mountain"
	}
	return ""
}

func baseTerrainName(b tilemap.BaseTerrain) string {
	switch b {
	case tilemap.Ocean:
		return "Ocean"
	case tilemap.Coast:
		return "Coast"
	case tilemap.Lake:
		return "Lake"
	case tilemap.Grassland:
		return "Grassland"
	case tilemap.Plain:
		return "Plain"
	case tilemap.Desert:
		return "Desert"
	case tilemap.Tundra:
		return "Tundra"
	case tilemap.Snow:
		return "Snow"
	}
	return ""
}

func containsName(list []string, name string) bool {
	for _, s := range list {
		if s == name {
			return true
		}
	}
	return false
}

// matchesFilter tests a unique predicate's terrain/feature filter word
// against a tile, e.g. "Desert", "Coastal", "Forest".
func matchesFilter(tm *tilemap.TileMap, rs *ruleset.Ruleset, t hexgrid.Tile, filter string) bool {
	switch filter {
	case "Land":
		return !tm.IsWater(t)
	case "Water":
		return tm.IsWater(t)
	case "Coastal", "Coast":
		return tm.BaseTerrain(t) == tilemap.Coast
	case "Ocean":
		return tm.BaseTerrain(t) == tilemap.Ocean
	case "Hill", "Hills":
		return tm.TerrainType(t) == tilemap.Hill
	case "Mountain", "Mountains":
		return tm.TerrainType(t) == tilemap.Mountain
	}
	if base := baseTerrainFromName(filter); base >= 0 {
		return !tm.IsWater(t) && tm.BaseTerrain(t) == tilemap.BaseTerrain(base)
	}
	if f, ok := tm.Feature(t); ok && rs != nil {
		if def, err := rs.Feature(f); err == nil {
			return def.Name == filter
		}
	}
	return false
}

func baseTerrainFromName(name string) int {
	switch name {
	case "Grassland":
		return int(tilemap.Grassland)
	case "Plain":
		return int(tilemap.Plain)
	case "Desert":
		return int(tilemap.Desert)
	case "Tundra":
		return int(tilemap.Tundra)
	case "Snow":
		return int(tilemap.Snow)
	}
	return -1
}

func landmassRank(areaList []areas.Area, areaID int) int {
	land := areas.BySize(areaList, false)
	for i, a := range land {
		if a.ID == areaID {
			return i + 1
		}
	}
	return len(land) + 1
}

func testUnique(tm *tilemap.TileMap, rs *ruleset.Ruleset, areaList []areas.Area, t hexgrid.Tile, u ruleset.Unique) bool {
	g := tm.Grid
	switch u.Kind {
	case ruleset.UniqueAdjacentExactly:
		n := 0
		for _, nb := range g.Neighbors(t) {
			if matchesFilter(tm, rs, nb, u.Filter) {
				n++
			}
		}
		return n == u.N
	case ruleset.UniqueAdjacentRange:
		n := 0
		for _, nb := range g.Neighbors(t) {
			if matchesFilter(tm, rs, nb, u.Filter) {
				n++
			}
		}
		return n >= u.N && n <= u.M
	case ruleset.UniqueOnLargestLandmasses:
		if tm.IsWater(t) {
			return false
		}
		return landmassRank(areaList, tm.AreaID(t)) <= u.K
	case ruleset.UniqueNotOnLargestLandmasses:
		if tm.IsWater(t) {
			return true
		}
		return landmassRank(areaList, tm.AreaID(t)) > u.K
	default:
		return true
	}
}

// candidatesFor returns every tile satisfying a single-tile wonder's base
// predicates and uniques.
func candidatesFor(tm *tilemap.TileMap, rs *ruleset.Ruleset, areaList []areas.Area, w *ruleset.NaturalWonder, uniques []ruleset.Unique) []hexgrid.Tile {
	var out []hexgrid.Tile
	for i := 0; i < tm.Grid.TileCount(); i++ {
		t := hexgrid.Tile(i)
		if tm.Layers.Value(tilemap.LayerNaturalWonder, t) != 0 {
			continue
		}
		if tm.IsFreshwater(t) != w.IsFreshWater {
			continue
		}
		if len(w.OccursOnType) > 0 && !containsName(w.OccursOnType, terrainTypeName(tm.TerrainType(t))) {
			continue
		}
		if len(w.OccursOnBase) > 0 && !containsName(w.OccursOnBase, baseTerrainName(tm.BaseTerrain(t))) {
			continue
		}
		ok := true
		for _, u := range uniques {
			if u.Kind == ruleset.UniqueUnknown {
				continue
			}
			if !testUnique(tm, rs, areaList, t, u) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, t)
		}
	}
	return out
}

// isDualTileWonder reports whether a wonder's name follows the dual-tile
// convention (spec §4.9's Great Barrier Reef example): occurs only on
// water and requires a paired neighbor.
func isDualTileWonder(w *ruleset.NaturalWonder) bool {
	return w.Name == "Great Barrier Reef"
}

// dualTileCandidates finds ordered tile pairs (t, partner) satisfying the
// water-ring predicate of spec §4.9.
func dualTileCandidates(tm *tilemap.TileMap, rs *ruleset.Ruleset, t hexgrid.Tile) []hexgrid.Tile {
	g := tm.Grid
	if !tm.IsWater(t) || tm.BaseTerrain(t) == tilemap.Lake {
		return nil
	}
	var out []hexgrid.Tile
	for _, partner := range g.Neighbors(t) {
		if !tm.IsWater(partner) || tm.BaseTerrain(partner) == tilemap.Lake {
			continue
		}
		if tm.Layers.Value(tilemap.LayerNaturalWonder, partner) != 0 {
			continue
		}
		ring := unionNeighborsExcluding(tm, t, partner)
		if len(ring) != 8 {
			continue
		}
		coastCount := 0
		allEligible := true
		for _, r := range ring {
			if !tm.IsWater(r) || tm.BaseTerrain(r) == tilemap.Lake || matchesFilter(tm, rs, r, "Ice") {
				allEligible = false
				break
			}
			if tm.BaseTerrain(r) == tilemap.Coast {
				coastCount++
			}
		}
		if allEligible && coastCount >= 4 {
			out = append(out, partner)
		}
	}
	return out
}

func unionNeighborsExcluding(tm *tilemap.TileMap, a, b hexgrid.Tile) []hexgrid.Tile {
	g := tm.Grid
	seen := map[hexgrid.Tile]bool{a: true, b: true}
	var out []hexgrid.Tile
	for _, n := range append(g.Neighbors(a), g.Neighbors(b)...) {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// Place runs the full wonder placement pass over every wonder in the
// ruleset, rarest-candidate-count first, honoring Sort-by-candidate-count
// and per-wonder impact-layer collision checks (spec §4.9).
func Place(tm *tilemap.TileMap, rs *ruleset.Ruleset, areaList []areas.Area, target int, src *rng.Source) []hexgrid.Tile {
	type entry struct {
		id         ruleset.WonderID
		w          *ruleset.NaturalWonder
		uniques    []ruleset.Unique
		candidates []hexgrid.Tile
	}

	var entries []entry
	for _, id := range rs.AllWonderIDs() {
		w, err := rs.NaturalWonder(id)
		if err != nil {
			continue
		}
		uniques := ruleset.ParseUniques(w.Uniques)
		var cands []hexgrid.Tile
		if isDualTileWonder(w) {
			for i := 0; i < tm.Grid.TileCount(); i++ {
				t := hexgrid.Tile(i)
				if len(dualTileCandidates(tm, rs, t)) > 0 {
					cands = append(cands, t)
				}
			}
		} else {
			cands = candidatesFor(tm, rs, areaList, w, uniques)
		}
		entries = append(entries, entry{id: id, w: w, uniques: uniques, candidates: cands})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return len(entries[i].candidates) < len(entries[j].candidates)
	})

	var placed []hexgrid.Tile
	for _, e := range entries {
		if len(placed) >= target {
			break
		}
		if len(e.candidates) == 0 {
			continue
		}
		order := src.ShuffleInts(len(e.candidates))
		for _, idx := range order {
			t := e.candidates[idx]
			if tm.Layers.Value(tilemap.LayerNaturalWonder, t) != 0 {
				continue
			}
			if isDualTileWonder(e.w) {
				partners := dualTileCandidates(tm, rs, t)
				if len(partners) == 0 {
					continue
				}
				partner := partners[src.Intn(len(partners))]
				placeDualTile(tm, e.w, t, partner)
				placed = append(placed, t, partner)
			} else {
				placeSingleTile(tm, e.w, t)
				placed = append(placed, t)
			}
			break
		}
	}
	return placed
}

func placeSingleTile(tm *tilemap.TileMap, w *ruleset.NaturalWonder, t hexgrid.Tile) {
	g := tm.Grid
	tm.ClearFeature(t)
	if w.TurnsIntoType != "" {
		tm.SetTerrainType(t, terrainTypeFromName(w.TurnsIntoType))
	}
	if w.TurnsIntoBase != "" {
		tm.SetBaseTerrain(t, baseTerrainFromNameVal(w.TurnsIntoBase))
	}
	if w.Name == "Rock of Gibraltar" {
		for _, n := range g.Neighbors(t) {
			if tm.IsWater(n) {
				tm.SetBaseTerrain(n, tilemap.Coast)
			} else {
				tm.SetTerrainType(n, tilemap.Mountain)
			}
		}
		tm.SetTerrainType(t, tilemap.Flatland)
		tm.SetBaseTerrain(t, tilemap.Grassland)
	}
	tm.SetNaturalWonder(t, w.Name)
	tm.Layers.SaturateNaturalWonder(g)
	tm.Layers.WriteSingleMark(tilemap.LayerCityState, t)
	coastalizeWaterNeighbors(tm, t)
}

func placeDualTile(tm *tilemap.TileMap, w *ruleset.NaturalWonder, a, b hexgrid.Tile) {
	g := tm.Grid
	for _, t := range []hexgrid.Tile{a, b} {
		for _, n := range g.Neighbors(t) {
			if n == a || n == b {
				continue
			}
			if tm.IsWater(n) {
				tm.SetBaseTerrain(n, tilemap.Coast)
			}
		}
		tm.ClearFeature(t)
		tm.SetNaturalWonder(t, w.Name)
	}
	tm.Layers.SaturateNaturalWonder(g)
}

func terrainTypeFromName(name string) tilemap.TerrainType {
	switch name {
	case "Hill":
		return tilemap.Hill
	case "Mountain":
		return tilemap.Mountain
	case "Flatland":
		return tilemap.Flatland
	case "Water":
		return tilemap.Water
	}
	return tilemap.Flatland
}

func baseTerrainFromNameVal(name string) tilemap.BaseTerrain {
	if b := baseTerrainFromName(name); b >= 0 {
		return tilemap.BaseTerrain(b)
	}
	switch name {
	case "Ocean":
		return tilemap.Ocean
	case "Coast":
		return tilemap.Coast
	case "Lake":
		return tilemap.Lake
	}
	return tilemap.Grassland
}

// coastalizeWaterNeighbors turns any water tile adjacent to a newly
// non-water wonder tile into Coast, or Lake if it has a Lake neighbor
// itself (spec §4.9 final step).
func coastalizeWaterNeighbors(tm *tilemap.TileMap, wonderTile hexgrid.Tile) {
	g := tm.Grid
	if tm.IsWater(wonderTile) {
		return
	}
	for _, n := range g.Neighbors(wonderTile) {
		if !tm.IsWater(n) {
			continue
		}
		hasLakeNeighbor := false
		for _, nn := range g.Neighbors(n) {
			if tm.BaseTerrain(nn) == tilemap.Lake {
				hasLakeNeighbor = true
				break
			}
		}
		if hasLakeNeighbor {
			tm.SetBaseTerrain(n, tilemap.Lake)
		} else {
			tm.SetBaseTerrain(n, tilemap.Coast)
		}
	}
}
