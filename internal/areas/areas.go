// Package areas computes connected components ("landmasses" and water
// bodies) over the tile map under 6-neighbor adjacency (spec §4.2).
package areas

import (
	"github.com/talgya/civmapgen/internal/hexgrid"
	"github.com/talgya/civmapgen/internal/tilemap"
)

// Area describes one connected component.
type Area struct {
	ID      int
	IsWater bool
	Size    int
	IsLake  bool
}

// Label runs two flood-fill passes — one over non-water tiles, one over
// water tiles — assigning tilemap.AreaID, and returns the resulting area
// table. Water areas smaller than lakeMaxAreaSize are flagged as lakes.
// Deterministic: tiles are scanned in index order so the resulting area ids
// are stable for a fixed map (spec §9 "deterministic ordering").
func Label(tm *tilemap.TileMap, lakeMaxAreaSize int) []Area {
	g := tm.Grid
	n := g.TileCount()
	visited := make([]bool, n)
	var list []Area
	nextID := 0

	labelPass := func(isWaterPass bool) {
		for i := 0; i < n; i++ {
			t := hexgrid.Tile(i)
			if visited[t] {
				continue
			}
			isWater := tm.IsWater(t)
			if isWater != isWaterPass {
				continue
			}
			visited[t] = true
			// BFS flood fill.
			queue := []hexgrid.Tile{t}
			size := 0
			id := nextID
			nextID++
			for len(queue) > 0 {
				cur := queue[0]
				queue = queue[1:]
				tm.SetAreaID(cur, id)
				size++
				for _, nb := range g.Neighbors(cur) {
					if visited[nb] {
						continue
					}
					if tm.IsWater(nb) != isWaterPass {
						continue
					}
					visited[nb] = true
					queue = append(queue, nb)
				}
			}
			list = append(list, Area{ID: id, IsWater: isWaterPass, Size: size})
		}
	}

	labelPass(false) // land areas first
	labelPass(true)  // then water areas

	for i := range list {
		if list[i].IsWater && list[i].Size < lakeMaxAreaSize {
			list[i].IsLake = true
		}
	}
	return list
}

// BySize returns the water areas (water true) or land areas (water false)
// sorted by descending size (useful for wonder
// "largest landmasses" uniques and for region-divide landmass ranking).
func BySize(areas []Area, water bool) []Area {
	var out []Area
	for _, a := range areas {
		if a.IsWater == water {
			out = append(out, a)
		}
	}
	for i := 1; i < len(out); i++ {
		j := i
		for j > 0 && out[j-1].Size < out[j].Size {
			out[j-1], out[j] = out[j], out[j-1]
			j--
		}
	}
	return out
}
