// Package civs implements the civilization assigner (spec §4.7): pairing
// each civilization with exactly one region according to its declared
// coastal/river/region-type preferences.
package civs

import (
	"sort"

	"github.com/talgya/civmapgen/internal/regions"
	"github.com/talgya/civmapgen/internal/rng"
	"github.com/talgya/civmapgen/internal/ruleset"
	"github.com/talgya/civmapgen/internal/tilemap"
)

var regionTypeNames = map[regions.RegionType]string{
	regions.RegionUndefined:  "Undefined",
	regions.RegionTundra:     "Tundra",
	regions.RegionDesert:     "Desert",
	regions.RegionJungle:     "Jungle",
	regions.RegionForest:     "Forest",
	regions.RegionHill:       "Hill",
	regions.RegionPlain:      "Plain",
	regions.RegionGrassland:  "Grassland",
	regions.RegionHybrid:     "Hybrid",
}

func regionTypeName(rt regions.RegionType) string { return regionTypeNames[rt] }

func containsName(list []string, name string) bool {
	for _, s := range list {
		if s == name {
			return true
		}
	}
	return false
}

// Assignment maps a civilization's nation id to the region it was given.
type Assignment struct {
	NationID ruleset.NationID
	Region   *regions.Region
}

// Assign pairs every nation in civs with exactly one region in regs,
// following the coastal / river / priority / avoid / residual passes of
// spec §4.7. len(civs) must equal len(regs); regions are consumed exactly
// once.
func Assign(rs *ruleset.Ruleset, civs []ruleset.NationID, regs []*regions.Region, src *rng.Source) []Assignment {
	remainingRegions := append([]*regions.Region{}, regs...)
	remainingCivs := append([]ruleset.NationID{}, civs...)
	out := make([]Assignment, 0, len(civs))

	take := func(nid ruleset.NationID) {
		for i, c := range remainingCivs {
			if c == nid {
				remainingCivs = append(remainingCivs[:i], remainingCivs[i+1:]...)
				return
			}
		}
	}
	takeRegion := func(idx int) *regions.Region {
		r := remainingRegions[idx]
		remainingRegions = append(remainingRegions[:idx], remainingRegions[idx+1:]...)
		return r
	}

	nation := func(nid ruleset.NationID) *ruleset.Nation {
		n, err := rs.Nation(nid)
		if err != nil {
			return &ruleset.Nation{ID: nid}
		}
		return n
	}

	// --- Coastal pass -----------------------------------------------------
	var coastalCivs []ruleset.NationID
	for _, c := range remainingCivs {
		if nation(c).AlongOcean {
			coastalCivs = append(coastalCivs, c)
		}
	}
	if len(coastalCivs) > 0 {
		var coastalRegions, lakeRegions []int
		for i, r := range remainingRegions {
			if r.StartCondition.AlongOcean {
				coastalRegions = append(coastalRegions, i)
			} else if r.StartCondition.NextToLake {
				lakeRegions = append(lakeRegions, i)
			}
		}
		pool := append(append([]int{}, coastalRegions...), lakeRegions...)
		civOrder := src.ShuffleInts(len(coastalCivs))
		regionOrder := src.ShuffleInts(len(pool))
		n := len(civOrder)
		if len(regionOrder) < n {
			n = len(regionOrder)
		}
		assigned := make([]bool, len(remainingRegions))
		for i := 0; i < n; i++ {
			ridx := pool[regionOrder[i]]
			if assigned[ridx] {
				continue
			}
			assigned[ridx] = true
			nid := coastalCivs[civOrder[i]]
			out = append(out, Assignment{NationID: nid, Region: remainingRegions[ridx]})
			take(nid)
		}
		// Drain consumed regions, highest index first to keep indices valid.
		var toRemove []int
		for i, a := range assigned {
			if a {
				toRemove = append(toRemove, i)
			}
		}
		sort.Sort(sort.Reverse(sort.IntSlice(toRemove)))
		for _, i := range toRemove {
			takeRegion(i)
		}
	}

	// --- River pass ---------------------------------------------------
	var riverCivs []ruleset.NationID
	for _, c := range remainingCivs {
		if nation(c).AlongRiver {
			riverCivs = append(riverCivs, c)
		}
	}
	if len(riverCivs) > 0 {
		var riverOn, riverNear []int
		for i, r := range remainingRegions {
			if r.StartCondition.IsRiver {
				riverOn = append(riverOn, i)
			} else if r.StartCondition.NearRiver {
				riverNear = append(riverNear, i)
			}
		}
		pool := append(append([]int{}, riverOn...), riverNear...)
		civOrder := src.ShuffleInts(len(riverCivs))
		regionOrder := src.ShuffleInts(len(pool))
		n := len(civOrder)
		if len(regionOrder) < n {
			n = len(regionOrder)
		}
		assigned := make([]bool, len(remainingRegions))
		for i := 0; i < n; i++ {
			ridx := pool[regionOrder[i]]
			if assigned[ridx] {
				continue
			}
			assigned[ridx] = true
			nid := riverCivs[civOrder[i]]
			out = append(out, Assignment{NationID: nid, Region: remainingRegions[ridx]})
			take(nid)
		}
		var toRemove []int
		for i, a := range assigned {
			if a {
				toRemove = append(toRemove, i)
			}
		}
		sort.Sort(sort.Reverse(sort.IntSlice(toRemove)))
		for _, i := range toRemove {
			takeRegion(i)
		}
	}

	// --- Priority pass --------------------------------------------------
	var single, multi []ruleset.NationID
	for _, c := range remainingCivs {
		n := nation(c)
		switch len(n.RegionTypePriority) {
		case 0:
			// unconstrained, handled in residual pass
		case 1:
			single = append(single, c)
		default:
			multi = append(multi, c)
		}
	}
	sort.SliceStable(single, func(i, j int) bool {
		return regionTypeOrdinalOf(nation(single[i]).RegionTypePriority[0]) < regionTypeOrdinalOf(nation(single[j]).RegionTypePriority[0])
	})
	sort.SliceStable(multi, func(i, j int) bool {
		return len(nation(multi[i]).RegionTypePriority) < len(nation(multi[j]).RegionTypePriority)
	})

	for _, nid := range append(append([]ruleset.NationID{}, single...), multi...) {
		n := nation(nid)
		idx := -1
		for _, want := range n.RegionTypePriority {
			for i, r := range remainingRegions {
				if regionTypeName(r.RegionType) == want {
					idx = i
					break
				}
			}
			if idx >= 0 {
				break
			}
		}
		if idx < 0 {
			idx = fallbackPick(rs, remainingRegions, n.RegionTypePriority)
		}
		if idx < 0 || len(remainingRegions) == 0 {
			continue
		}
		r := takeRegion(idx)
		out = append(out, Assignment{NationID: nid, Region: r})
		take(nid)
	}

	// --- Avoid pass -------------------------------------------------------
	var avoiders []ruleset.NationID
	for _, c := range remainingCivs {
		if len(nation(c).AvoidRegionType) > 0 {
			avoiders = append(avoiders, c)
		}
	}
	sort.SliceStable(avoiders, func(i, j int) bool {
		return len(nation(avoiders[i]).AvoidRegionType) > len(nation(avoiders[j]).AvoidRegionType)
	})
	for _, nid := range avoiders {
		avoid := nation(nid).AvoidRegionType
		idx := -1
		for i, r := range remainingRegions {
			if !containsName(avoid, regionTypeName(r.RegionType)) {
				idx = i
				break
			}
		}
		if idx < 0 || len(remainingRegions) == 0 {
			continue
		}
		r := takeRegion(idx)
		out = append(out, Assignment{NationID: nid, Region: r})
		take(nid)
	}

	// --- Residual pass ------------------------------------------------
	civOrder := src.ShuffleInts(len(remainingCivs))
	regionOrder := src.ShuffleInts(len(remainingRegions))
	n := len(civOrder)
	if len(regionOrder) < n {
		n = len(regionOrder)
	}
	for i := 0; i < n; i++ {
		out = append(out, Assignment{NationID: remainingCivs[civOrder[i]], Region: remainingRegions[regionOrder[i]]})
	}

	return out
}

func regionTypeOrdinalOf(name string) int {
	for rt, n := range regionTypeNames {
		if n == name {
			return int(rt)
		}
	}
	return int(regions.RegionHybrid) + 1
}

// fallbackPick implements spec §4.7.1: for the civ's first requested
// RegionType, choose the remaining region maximizing a type-specific sum of
// terrain counts.
func fallbackPick(rs *ruleset.Ruleset, regs []*regions.Region, priority []string) int {
	if len(priority) == 0 || len(regs) == 0 {
		return -1
	}
	want := priority[0]
	best := -1
	bestScore := -1
	for i, r := range regs {
		score := fallbackScore(rs, r, want)
		if score > bestScore {
			bestScore = score
			best = i
		}
	}
	return best
}

func featureCountNamed(rs *ruleset.Ruleset, s regions.TerrainStatistic, name string) int {
	if rs == nil {
		return 0
	}
	total := 0
	for fid, n := range s.FeatureCounts {
		def, err := rs.Feature(fid)
		if err == nil && def.Name == name {
			total += n
		}
	}
	return total
}

func fallbackScore(rs *ruleset.Ruleset, r *regions.Region, regionTypeWanted string) int {
	s := r.Stat
	tundra := s.BaseTerrainCounts[tilemap.Tundra] + s.BaseTerrainCounts[tilemap.Snow]
	switch regionTypeWanted {
	case "Tundra":
		if tundra > 0 {
			return tundra
		}
		return tundra + featureCountNamed(rs, s, "Forest")
	case "Jungle":
		return featureCountNamed(rs, s, "Jungle")
	case "Forest":
		return featureCountNamed(rs, s, "Forest")
	case "Desert":
		return s.BaseTerrainCounts[tilemap.Desert] + featureCountNamed(rs, s, "Floodplain") + featureCountNamed(rs, s, "Oasis")
	case "Hill":
		return s.TerrainTypeCounts[tilemap.Hill] + s.TerrainTypeCounts[tilemap.Mountain]
	case "Plain":
		return s.BaseTerrainCounts[tilemap.Plain]
	case "Grassland":
		return s.BaseTerrainCounts[tilemap.Grassland] + featureCountNamed(rs, s, "Marsh")
	case "Hybrid":
		return s.BaseTerrainCounts[tilemap.Grassland] + s.BaseTerrainCounts[tilemap.Plain]
	default:
		return 0
	}
}
