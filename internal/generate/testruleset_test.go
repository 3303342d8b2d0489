package generate_test

import "github.com/talgya/civmapgen/internal/ruleset"

// newTestRuleset builds a minimal-but-complete ruleset covering the
// features, resources, and nations the pipeline touches, standing in for
// a loaded JSONC ruleset file in tests.
func newTestRuleset(nationCount int) *ruleset.Ruleset {
	rs := ruleset.New()

	rs.AddFeature("Forest", false)
	rs.AddFeature("Jungle", false)
	rs.AddFeature("Marsh", false)
	rs.AddFeature("Floodplain", false)
	rs.AddFeature("Oasis", false)
	rs.AddFeature("Ice", true)

	rs.AddResource("Iron", ruleset.CategoryStrategic, 3, ruleset.QuantityTable{3, 6, 6, 6, 9}, []int{3, 4}, 1, 2)
	rs.AddResource("Horses", ruleset.CategoryStrategic, 3, ruleset.QuantityTable{3, 4, 4, 4, 6}, []int{10, 11}, 1, 2)
	rs.AddResource("Oil", ruleset.CategoryStrategic, 2, ruleset.QuantityTable{5, 7, 7, 7, 9}, []int{9, 13}, 1, 2)
	rs.AddResource("Uranium", ruleset.CategoryStrategic, 1, ruleset.QuantityTable{3, 4, 4, 4, 5}, []int{3}, 1, 2)
	rs.AddResource("Coal", ruleset.CategoryStrategic, 2, ruleset.QuantityTable{5, 7, 7, 7, 9}, []int{3, 8}, 1, 2)
	rs.AddResource("Aluminum", ruleset.CategoryStrategic, 1, ruleset.QuantityTable{6, 8, 8, 8, 10}, []int{9}, 1, 2)

	rs.AddResource("Wheat", ruleset.CategoryBonus, 5, ruleset.QuantityTable{1, 1, 1, 1, 1}, []int{10, 11, 12}, 0, 1)
	rs.AddResource("Sheep", ruleset.CategoryBonus, 4, ruleset.QuantityTable{1, 1, 1, 1, 1}, []int{3, 4}, 0, 1)
	rs.AddResource("Banana", ruleset.CategoryBonus, 3, ruleset.QuantityTable{1, 1, 1, 1, 1}, []int{7}, 0, 1)
	rs.AddResource("Oasis", ruleset.CategoryBonus, 2, ruleset.QuantityTable{1, 1, 1, 1, 1}, []int{9}, 0, 1)
	rs.AddResource("Stone", ruleset.CategoryBonus, 2, ruleset.QuantityTable{1, 1, 1, 1, 1}, []int{11, 12}, 0, 1)

	rs.AddResource("Wine", ruleset.CategoryLuxury, 15, ruleset.QuantityTable{0, 0, 0, 0, 0}, []int{11, 12}, 0, 2)
	rs.AddResource("Cotton", ruleset.CategoryLuxury, 15, ruleset.QuantityTable{0, 0, 0, 0, 0}, []int{10, 11}, 0, 2)
	rs.AddResource("Silver", ruleset.CategoryLuxury, 15, ruleset.QuantityTable{0, 0, 0, 0, 0}, []int{3, 4, 13, 11}, 0, 2)
	rs.AddResource("Gold", ruleset.CategoryLuxury, 15, ruleset.QuantityTable{0, 0, 0, 0, 0}, []int{3, 9}, 0, 2)
	rs.AddResource("Gems", ruleset.CategoryLuxury, 10, ruleset.QuantityTable{0, 0, 0, 0, 0}, []int{7, 9}, 0, 2)
	rs.AddResource("Dyes", ruleset.CategoryLuxury, 10, ruleset.QuantityTable{0, 0, 0, 0, 0}, []int{7, 8}, 0, 2)
	rs.AddResource("Furs", ruleset.CategoryLuxury, 10, ruleset.QuantityTable{0, 0, 0, 0, 0}, []int{13, 8}, 0, 2)
	rs.AddResource("Whales", ruleset.CategoryLuxury, 8, ruleset.QuantityTable{0, 0, 0, 0, 0}, []int{0}, 0, 2)
	rs.AddResource("Pearls", ruleset.CategoryLuxury, 8, ruleset.QuantityTable{0, 0, 0, 0, 0}, []int{0}, 0, 2)
	rs.AddResource("Crab", ruleset.CategoryLuxury, 8, ruleset.QuantityTable{0, 0, 0, 0, 0}, []int{0}, 0, 2)
	rs.AddResource("Marble", ruleset.CategoryLuxury, 6, ruleset.QuantityTable{0, 0, 0, 0, 0}, []int{9, 10, 11, 12, 13}, 0, 2)
	rs.AddResource("Incense", ruleset.CategoryLuxury, 10, ruleset.QuantityTable{0, 0, 0, 0, 0}, []int{9}, 0, 2)
	rs.AddResource("Sugar", ruleset.CategoryLuxury, 10, ruleset.QuantityTable{0, 0, 0, 0, 0}, []int{7}, 0, 2)
	rs.AddResource("Silk", ruleset.CategoryLuxury, 8, ruleset.QuantityTable{0, 0, 0, 0, 0}, []int{8}, 0, 2)
	rs.AddResource("Citrus", ruleset.CategoryLuxury, 8, ruleset.QuantityTable{0, 0, 0, 0, 0}, []int{7}, 0, 2)
	rs.AddResource("Deer", ruleset.CategoryLuxury, 8, ruleset.QuantityTable{0, 0, 0, 0, 0}, []int{13}, 0, 2)
	rs.AddResource("Copper", ruleset.CategoryLuxury, 6, ruleset.QuantityTable{0, 0, 0, 0, 0}, []int{3, 4}, 0, 2)
	rs.AddResource("Truffles", ruleset.CategoryLuxury, 6, ruleset.QuantityTable{0, 0, 0, 0, 0}, []int{14}, 0, 2)
	rs.AddResource("Ivory", ruleset.CategoryLuxury, 6, ruleset.QuantityTable{0, 0, 0, 0, 0}, []int{9, 10}, 0, 2)
	rs.AddResource("Jade", ruleset.CategoryLuxury, 6, ruleset.QuantityTable{0, 0, 0, 0, 0}, []int{7, 8}, 0, 2)
	rs.AddResource("Porcelain", ruleset.CategoryLuxury, 6, ruleset.QuantityTable{0, 0, 0, 0, 0}, []int{11, 12}, 0, 2)
	rs.AddResource("Coral", ruleset.CategoryLuxury, 6, ruleset.QuantityTable{0, 0, 0, 0, 0}, []int{0}, 0, 2)
	rs.AddResource("Amber", ruleset.CategoryLuxury, 6, ruleset.QuantityTable{0, 0, 0, 0, 0}, []int{13, 8}, 0, 2)
	rs.AddResource("Salt", ruleset.CategoryLuxury, 6, ruleset.QuantityTable{0, 0, 0, 0, 0}, []int{9}, 0, 2)
	rs.AddResource("Spices", ruleset.CategoryLuxury, 6, ruleset.QuantityTable{0, 0, 0, 0, 0}, []int{7, 8}, 0, 2)
	rs.AddResource("Honey", ruleset.CategoryLuxury, 6, ruleset.QuantityTable{0, 0, 0, 0, 0}, []int{11, 12}, 0, 2)
	rs.AddResource("Cocoa", ruleset.CategoryLuxury, 6, ruleset.QuantityTable{0, 0, 0, 0, 0}, []int{7}, 0, 2)

	rs.AddNaturalWonder(ruleset.NaturalWonder{
		Name: "Mount Fuji", IsFreshWater: false,
		OccursOnType: []string{"Mountain"}, OccursOnBase: []string{"Grassland"},
	})
	rs.AddNaturalWonder(ruleset.NaturalWonder{
		Name: "Great Barrier Reef", IsFreshWater: false,
		OccursOnType: []string{"Water"}, OccursOnBase: []string{"Ocean", "Coast"},
	})

	names := []string{"Rome", "Egypt", "Greece", "China", "India", "France", "England", "Germany", "Russia", "America", "Japan", "Persia"}
	for i := 0; i < nationCount && i < len(names); i++ {
		rs.AddNation(ruleset.Nation{Name: names[i]})
	}
	return rs
}

func allNations(rs *ruleset.Ruleset, n int) []ruleset.NationID {
	out := make([]ruleset.NationID, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, ruleset.NationID(i))
	}
	return out
}
