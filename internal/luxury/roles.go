// Package luxury implements the luxury role assigner (spec §4.11) and the
// five-phase luxury/strategic/bonus placement pipeline (spec §4.12).
package luxury

import (
	"sort"

	"github.com/talgya/civmapgen/internal/regions"
	"github.com/talgya/civmapgen/internal/rng"
	"github.com/talgya/civmapgen/internal/ruleset"
)

// regionLuxuryTable is the region-type-specific weighted candidate table
// of spec §4.11; weights mirror the game's published regional luxury
// distribution. Water luxuries additionally require the region-level
// water/ocean checks applied in filterCandidate.
var regionLuxuryTable = map[regions.RegionType]map[string]float64{
	regions.RegionTundra:    {"Furs": 15, "Whales": 10, "Deer": 10},
	regions.RegionDesert:    {"Incense": 15, "Gold": 10, "Gems": 5},
	regions.RegionJungle:    {"Dyes": 15, "Gems": 10, "Citrus": 10, "Sugar": 10},
	regions.RegionForest:    {"Furs": 15, "Dyes": 10, "Silk": 10},
	regions.RegionHill:      {"Gold": 15, "Silver": 15, "Gems": 10},
	regions.RegionPlain:     {"Cotton": 15, "Wine": 10, "Incense": 5},
	regions.RegionGrassland: {"Wine": 15, "Sugar": 10, "Silk": 5},
	regions.RegionHybrid:    {"Cotton": 10, "Wine": 10, "Silver": 10},
}

var sharedFallbackTable = map[string]float64{
	"Marble": 10, "Ivory": 10, "Cotton": 10, "Wine": 10, "Silk": 10,
	"Sugar": 10, "Gems": 10, "Gold": 10, "Silver": 10, "Dyes": 10,
	"Incense": 10, "Furs": 10, "Citrus": 10, "Copper": 10, "Pearls": 10,
	"Whales": 10, "Crab": 10, "Truffles": 10,
}

var cityStateWeights = map[string]float64{
	"Marble": 5, "Ivory": 10, "Jade": 10, "Porcelain": 10, "Coral": 10,
	"Amber": 10, "Salt": 10, "Spices": 10, "Honey": 10, "Cocoa": 10,
	"Cotton": 5, "Wine": 5, "Silk": 5, "Sugar": 5, "Gems": 5,
}

const maxRegionsPerLuxury = 3

// RoleAssignment is the final division of every catalog luxury into the
// five disjoint role sets of spec §4.11.
type RoleAssignment struct {
	Regional    map[ruleset.ResourceID][]int // resource -> region indexes
	CityState   []ruleset.ResourceID
	SpecialCase ruleset.ResourceID
	HasSpecial  bool
	Random      []ruleset.ResourceID
	Disabled    []ruleset.ResourceID
}

func splitCap(civCount int) int {
	switch {
	case civCount > 12:
		return 3
	case civCount > 8:
		return 2
	default:
		return 1
	}
}

func isWaterLuxury(name string) bool {
	return name == "Whales" || name == "Pearls" || name == "Crab"
}

func waterLuxuryAllowed(name string, rt regions.RegionType) bool {
	switch name {
	case "Whales":
		return rt != regions.RegionJungle
	case "Pearls":
		return rt != regions.RegionTundra
	case "Crab":
		return rt != regions.RegionDesert
	}
	return true
}

// AssignRoles orders regions by RegionType ordinal (Undefined last) and
// assigns each a regional-exclusive luxury, then fills the city-state,
// special-case (Marble), random, and disabled sets.
func AssignRoles(rs *ruleset.Ruleset, regs []*regions.Region, civCount int, src *rng.Source) RoleAssignment {
	cap := splitCap(civCount)

	assignment := RoleAssignment{Regional: map[ruleset.ResourceID][]int{}}
	regionCount := map[string]int{}

	order := append([]*regions.Region{}, regs...)
	sort.SliceStable(order, func(i, j int) bool {
		oi, oj := order[i].RegionType, order[j].RegionType
		if oi == regions.RegionUndefined {
			oi = regions.RegionType(255)
		}
		if oj == regions.RegionUndefined {
			oj = regions.RegionType(255)
		}
		return oi < oj
	})

	resourceIDByName := map[string]ruleset.ResourceID{}
	for _, id := range rs.AllResourceIDs() {
		r, err := rs.Resource(id)
		if err != nil || r.Category != ruleset.CategoryLuxury {
			continue
		}
		resourceIDByName[r.Name] = id
	}

	assignedSet := map[string]bool{}

	for _, r := range order {
		name, ok := assignLuxuryToRegion(r, resourceIDByName, regionCount, assignedSet, cap, src)
		if !ok {
			continue
		}
		id := resourceIDByName[name]
		assignment.Regional[id] = append(assignment.Regional[id], r.Index)
		regionCount[name]++
		assignedSet[name] = true
		r.LuxuryResource = id
		r.HasLuxury = true
	}

	// City-state luxuries: three, weighted sample from cityStateWeights,
	// restricted to names not already assigned to a region. Marble is kept
	// out so that it stays available as the special case.
	csCandidates := map[string]float64{}
	for name, w := range cityStateWeights {
		if !assignedSet[name] && name != "Marble" {
			csCandidates[name] = w
		}
	}
	for i := 0; i < 3 && len(csCandidates) > 0; i++ {
		name := weightedSampleMap(csCandidates, src)
		if id, ok := resourceIDByName[name]; ok {
			assignment.CityState = append(assignment.CityState, id)
		}
		assignedSet[name] = true
		delete(csCandidates, name)
	}

	if id, ok := resourceIDByName["Marble"]; ok && !assignedSet["Marble"] {
		assignment.SpecialCase = id
		assignment.HasSpecial = true
		assignedSet["Marble"] = true
	}

	for name, id := range resourceIDByName {
		if assignedSet[name] {
			continue
		}
		assignment.Random = append(assignment.Random, id)
	}
	sort.Slice(assignment.Random, func(i, j int) bool { return assignment.Random[i] < assignment.Random[j] })

	return assignment
}

func assignLuxuryToRegion(r *regions.Region, byName map[string]ruleset.ResourceID, regionCount map[string]int, assignedSet map[string]bool, cap int, src *rng.Source) (string, bool) {
	candidates := map[string]float64{}
	for name, w := range regionLuxuryTable[r.RegionType] {
		if ok := filterCandidate(r, name, byName, regionCount, assignedSet, cap); ok {
			candidates[name] = w / float64(1+regionCount[name])
		}
	}
	if len(candidates) == 0 {
		for name, w := range sharedFallbackTable {
			if ok := filterCandidate(r, name, byName, regionCount, assignedSet, cap); ok && regionCount[name] < maxRegionsPerLuxury {
				candidates[name] = w / float64(1+regionCount[name])
			}
		}
	}
	if len(candidates) == 0 {
		for name := range byName {
			if isWaterLuxury(name) && filterCandidate(r, name, byName, regionCount, assignedSet, cap) {
				candidates[name] = 1
			}
		}
	}
	if len(candidates) == 0 {
		return "", false
	}
	return weightedSampleMap(candidates, src), true
}

func filterCandidate(r *regions.Region, name string, byName map[string]ruleset.ResourceID, regionCount map[string]int, assignedSet map[string]bool, cap int) bool {
	if _, ok := byName[name]; !ok {
		return false
	}
	if regionCount[name] >= cap {
		return false
	}
	assignedRegionTotal := 0
	for n, c := range regionCount {
		if c > 0 {
			assignedRegionTotal++
			_ = n
		}
	}
	if assignedRegionTotal >= 8 && regionCount[name] == 0 {
		return false
	}
	if isWaterLuxury(name) {
		if !r.StartCondition.AlongOcean {
			return false
		}
		if r.Stat.WaterTiles < 12 {
			return false
		}
		if !waterLuxuryAllowed(name, r.RegionType) {
			return false
		}
	}
	return true
}

func weightedSampleMap(candidates map[string]float64, src *rng.Source) string {
	names := make([]string, 0, len(candidates))
	for n := range candidates {
		names = append(names, n)
	}
	sort.Strings(names)
	weights := make([]float64, len(names))
	for i, n := range names {
		weights[i] = candidates[n]
	}
	idx := src.WeightedChoice(weights)
	return names[idx]
}
