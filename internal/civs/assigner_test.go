package civs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/civmapgen/internal/civs"
	"github.com/talgya/civmapgen/internal/regions"
	"github.com/talgya/civmapgen/internal/rng"
	"github.com/talgya/civmapgen/internal/ruleset"
)

func makeRegion(idx int, rt regions.RegionType, coastal, river bool) *regions.Region {
	return &regions.Region{
		Index:      idx,
		RegionType: rt,
		StartCondition: regions.StartLocationCondition{
			AlongOcean: coastal,
			IsRiver:    river,
		},
	}
}

func TestAssign_OneToOneBetweenCivsAndRegions(t *testing.T) {
	rs := ruleset.New()
	a := rs.AddNation(ruleset.Nation{Name: "Rome"})
	b := rs.AddNation(ruleset.Nation{Name: "Egypt"})
	c := rs.AddNation(ruleset.Nation{Name: "Greece"})
	civList := []ruleset.NationID{a, b, c}
	regs := []*regions.Region{
		makeRegion(0, regions.RegionGrassland, false, false),
		makeRegion(1, regions.RegionPlain, false, false),
		makeRegion(2, regions.RegionHill, false, false),
	}

	out := civs.Assign(rs, civList, regs, rng.New(1))
	assert.Len(t, out, 3)

	seenNations := map[ruleset.NationID]bool{}
	seenRegions := map[*regions.Region]bool{}
	for _, a := range out {
		assert.False(t, seenNations[a.NationID])
		seenNations[a.NationID] = true
		assert.False(t, seenRegions[a.Region])
		seenRegions[a.Region] = true
	}
}

func TestAssign_CoastalNationPrefersCoastalRegion(t *testing.T) {
	rs := ruleset.New()
	coastalNation := rs.AddNation(ruleset.Nation{Name: "England", AlongOcean: true})
	inlandNation := rs.AddNation(ruleset.Nation{Name: "Mongolia"})
	civList := []ruleset.NationID{coastalNation, inlandNation}
	regs := []*regions.Region{
		makeRegion(0, regions.RegionGrassland, false, false),
		makeRegion(1, regions.RegionPlain, true, false),
	}

	out := civs.Assign(rs, civList, regs, rng.New(1))
	assert.Len(t, out, 2)
	for _, a := range out {
		if a.NationID == coastalNation {
			assert.True(t, a.Region.StartCondition.AlongOcean)
		}
	}
}

func TestAssign_RegionTypePriorityHonoredWhenAvailable(t *testing.T) {
	rs := ruleset.New()
	n := rs.AddNation(ruleset.Nation{Name: "Russia", RegionTypePriority: []string{"Tundra"}})
	civList := []ruleset.NationID{n}
	regs := []*regions.Region{
		makeRegion(0, regions.RegionGrassland, false, false),
		makeRegion(1, regions.RegionTundra, false, false),
	}

	out := civs.Assign(rs, civList, regs, rng.New(1))
	assert.Len(t, out, 1)
	assert.Equal(t, regions.RegionTundra, out[0].Region.RegionType)
}

func TestAssign_AvoidRegionTypeIsRespectedWhenAlternativeExists(t *testing.T) {
	rs := ruleset.New()
	n := rs.AddNation(ruleset.Nation{Name: "Arabia", AvoidRegionType: []string{"Tundra"}})
	civList := []ruleset.NationID{n}
	regs := []*regions.Region{
		makeRegion(0, regions.RegionTundra, false, false),
		makeRegion(1, regions.RegionDesert, false, false),
	}

	out := civs.Assign(rs, civList, regs, rng.New(1))
	assert.Len(t, out, 1)
	assert.NotEqual(t, regions.RegionTundra, out[0].Region.RegionType)
}

func TestAssign_UnconstrainedNationsFillResidually(t *testing.T) {
	rs := ruleset.New()
	a := rs.AddNation(ruleset.Nation{Name: "A"})
	b := rs.AddNation(ruleset.Nation{Name: "B"})
	civList := []ruleset.NationID{a, b}
	regs := []*regions.Region{
		makeRegion(0, regions.RegionGrassland, false, false),
		makeRegion(1, regions.RegionPlain, false, false),
	}

	out := civs.Assign(rs, civList, regs, rng.New(42))
	assert.Len(t, out, 2)
}
