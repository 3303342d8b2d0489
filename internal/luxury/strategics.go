package luxury

import (
	"github.com/talgya/civmapgen/internal/hexgrid"
	"github.com/talgya/civmapgen/internal/rng"
	"github.com/talgya/civmapgen/internal/ruleset"
	"github.com/talgya/civmapgen/internal/tilemap"
)

// standardQuantity is the per-deposit quantity for Standard resource
// settings (spec §4.12 example table); Sparse, Abundant and
// StrategicBalance scale it by settingQuantityMultiplier, and
// LegendaryStart uses it unscaled.
var standardQuantity = map[string]int{
	"Uranium": 4, "Horses": 4, "Oil": 7, "Iron": 6, "Coal": 7, "Aluminum": 8,
}

func settingQuantityMultiplier(setting ResourceSetting) float64 {
	switch setting {
	case Sparse:
		return 0.75
	case Abundant, StrategicBalance:
		return 1.25
	default:
		return 1.0
	}
}

func quantityFor(name string, setting ResourceSetting) int {
	base, ok := standardQuantity[name]
	if !ok {
		base = 4
	}
	q := int(float64(base) * settingQuantityMultiplier(setting))
	if q < 1 {
		q = 1
	}
	return q
}

// PlaceStrategicsAndBonuses runs process_resource_list once for the
// Strategic resources and then once for the Bonus resources of the ruleset.
// Each run uses its category's layer and the union of the allowed terrain
// buckets of every resource in the category, so a resource is not limited
// to its own buckets. The frequency is fixed per category (12 for
// Strategic, 6 for Bonus); a resource's weight only sets how often it is
// chosen within the run.
func PlaceStrategicsAndBonuses(tm *tilemap.TileMap, rs *ruleset.Ruleset, landTiles []hexgrid.Tile, setting ResourceSetting, src *rng.Source) {
	byCategory := map[ruleset.ResourceCategory][]ruleset.ResourceID{}
	for _, id := range rs.AllResourceIDs() {
		res, err := rs.Resource(id)
		if err != nil {
			continue
		}
		if res.Category == ruleset.CategoryLuxury {
			continue
		}
		byCategory[res.Category] = append(byCategory[res.Category], id)
	}

	for _, category := range []ruleset.ResourceCategory{ruleset.CategoryStrategic, ruleset.CategoryBonus} {
		ids := byCategory[category]
		layer := tilemap.LayerBonus
		if category == ruleset.CategoryStrategic {
			layer = tilemap.LayerStrategic
		}
		var table []WeightedResourceEntry
		for _, id := range ids {
			res, err := rs.Resource(id)
			if err != nil {
				continue
			}
			qty := res.QuantityTable[int(setting)]
			if qty <= 0 {
				qty = quantityFor(res.Name, setting)
			}
			minR, maxR := res.MinRadius, res.MaxRadius
			if maxR == 0 {
				minR, maxR = 1, 2
			}
			table = append(table, WeightedResourceEntry{
				ID: id, Weight: res.Weight, Quantity: qty, MinRadius: minR, MaxRadius: maxR,
			})
		}
		if len(table) == 0 {
			continue
		}
		tiles := bucketsForTable(tm, rs, landTiles, ids)
		frequency := frequencyFor(category)
		ProcessResourceList(tm, frequency, layer, tiles, table, src)
	}
}

func bucketsForTable(tm *tilemap.TileMap, rs *ruleset.Ruleset, tiles []hexgrid.Tile, ids []ruleset.ResourceID) []hexgrid.Tile {
	allowed := map[int]bool{}
	for _, id := range ids {
		res, err := rs.Resource(id)
		if err != nil {
			continue
		}
		for _, b := range res.AllowedBuckets {
			allowed[b] = true
		}
	}
	if len(allowed) == 0 {
		out := make([]hexgrid.Tile, 0, len(tiles))
		for _, t := range tiles {
			if !tm.HasResource(t) && !tm.IsWater(t) {
				out = append(out, t)
			}
		}
		return out
	}
	var buckets []int
	for b := range allowed {
		buckets = append(buckets, b)
	}
	return TilesForBuckets(tm, rs, tiles, buckets)
}

func frequencyFor(c ruleset.ResourceCategory) int {
	if c == ruleset.CategoryStrategic {
		return 12
	}
	return 6
}
