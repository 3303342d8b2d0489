package luxury

import (
	"math"

	"github.com/talgya/civmapgen/internal/hexgrid"
	"github.com/talgya/civmapgen/internal/rng"
	"github.com/talgya/civmapgen/internal/ruleset"
	"github.com/talgya/civmapgen/internal/tilemap"
)

// PlaceSpecificNumber is place_specific_number_of_resources (spec §4.12):
// shuffles tile_list itself and walks it, stamping (resource, quantityPerTile) on
// the first `amount` (capped by ratio * len(tileList)) tiles with no
// resource and (if a layer is given) zero impact, sampling a radius in
// [minRadius,maxRadius] per placement. Returns the unplaced count.
func PlaceSpecificNumber(tm *tilemap.TileMap, id ruleset.ResourceID, quantityPerTile int, amount int, ratio float64, layer tilemap.LayerKind, hasLayer bool, minRadius, maxRadius int, tileList []hexgrid.Tile, src *rng.Source) int {
	eligible := int(math.Ceil(ratio * float64(len(tileList))))
	if eligible > amount {
		eligible = amount
	}
	if eligible <= 0 {
		return 0
	}

	order := src.ShuffleInts(len(tileList))
	placed := 0
	for _, idx := range order {
		if placed >= eligible {
			break
		}
		t := tileList[idx]
		if tm.HasResource(t) {
			continue
		}
		if hasLayer && tm.Layers.Value(layer, t) != 0 {
			continue
		}
		tm.SetResource(t, id, quantityPerTile)
		if hasLayer {
			r := src.IntRange(minRadius, maxRadius)
			tm.Layers.WriteGenericResource(layer, tm.Grid, t, r)
		}
		placed++
	}
	return eligible - placed
}

// WeightedResourceEntry is one row of a weighted resource table consumed by
// ProcessResourceList.
type WeightedResourceEntry struct {
	ID        ruleset.ResourceID
	Weight    float64
	Quantity  int
	MinRadius int
	MaxRadius int
}

// ProcessResourceList is process_resource_list (spec §4.12): places
// ⌈len(plotList)/frequency⌉ resources sampled by weight onto plotList. The
// first pass requires impact=0 and no existing resource; the second pass
// (when the first fails) picks the plot with the smallest impact value
// below 98.
func ProcessResourceList(tm *tilemap.TileMap, frequency int, layer tilemap.LayerKind, plotList []hexgrid.Tile, table []WeightedResourceEntry, src *rng.Source) {
	if frequency <= 0 || len(plotList) == 0 || len(table) == 0 {
		return
	}
	total := int(math.Ceil(float64(len(plotList)) / float64(frequency)))
	weights := make([]float64, len(table))
	for i, e := range table {
		weights[i] = e.Weight
	}

	order := src.ShuffleInts(len(plotList))
	cursor := 0

	for i := 0; i < total; i++ {
		entry := table[src.WeightedChoice(weights)]

		placed := false
		for cursor < len(order) {
			t := plotList[order[cursor]]
			cursor++
			if tm.HasResource(t) || tm.Layers.Value(layer, t) != 0 {
				continue
			}
			tm.SetResource(t, entry.ID, entry.Quantity)
			r := src.IntRange(entry.MinRadius, entry.MaxRadius)
			tm.Layers.WriteGenericResource(layer, tm.Grid, t, r)
			placed = true
			break
		}
		if placed {
			continue
		}

		// Second pass: smallest impact value below 98.
		bestTile := hexgrid.Tile(0)
		bestVal := 255
		found := false
		for _, t := range plotList {
			if tm.HasResource(t) {
				continue
			}
			v := int(tm.Layers.Value(layer, t))
			if v < 98 && v < bestVal {
				bestVal = v
				bestTile = t
				found = true
			}
		}
		if found {
			tm.SetResource(bestTile, entry.ID, entry.Quantity)
			r := src.IntRange(entry.MinRadius, entry.MaxRadius)
			tm.Layers.WriteGenericResource(layer, tm.Grid, bestTile, r)
		}
	}
}
