package regions

import (
	"sort"

	"github.com/talgya/civmapgen/internal/areas"
	"github.com/talgya/civmapgen/internal/hexgrid"
	"github.com/talgya/civmapgen/internal/tilemap"
)

// DivideMethod selects how the map is partitioned into civ regions (§4.3).
type DivideMethod uint8

const (
	DivideSingleLandmass DivideMethod = iota // (a) all civs share the largest landmass
	DivideContinent                          // (b) one civ per landmass, split when >1 civ
	DivideWholeMap                           // (c) whole-map rectangle as one area
	DivideCustomRectangle                    // (d) caller-provided rectangle
)

const minRectDimension = 4

// Partition divides the map into up to civCount regions per the given
// method. It never switches to another method when land is short. The
// returned bool is true when DivideContinent finds no land or yields fewer
// than civCount regions, or when DivideSingleLandmass finds no land and
// splits the whole map instead.
func Partition(tm *tilemap.TileMap, method DivideMethod, civCount int, custom hexgrid.Rectangle, areaList []areas.Area) ([]*Region, bool) {
	g := tm.Grid

	switch method {
	case DivideWholeMap:
		whole, _ := hexgrid.NewRectangle(g, hexgrid.Offset{X: 0, Y: 0}, g.Width, g.Height)
		return splitRectangle(tm, whole, -1, civCount), false
	case DivideCustomRectangle:
		return splitRectangle(tm, custom, -1, civCount), false
	case DivideSingleLandmass:
		biggest := largestLandmass(areaList)
		if biggest == nil {
			whole, _ := hexgrid.NewRectangle(g, hexgrid.Offset{X: 0, Y: 0}, g.Width, g.Height)
			return splitRectangle(tm, whole, -1, civCount), true
		}
		rect := landmassBoundingRectangle(tm, biggest.ID)
		return splitRectangle(tm, rect, biggest.ID, civCount), false
	default: // DivideContinent
		return partitionContinents(tm, civCount, areaList)
	}
}

func largestLandmass(areaList []areas.Area) *areas.Area {
	land := areas.BySize(areaList, false)
	if len(land) == 0 {
		return nil
	}
	a := land[0]
	return &a
}

// partitionContinents allocates civs across inhabited landmasses by
// fertility share (with an average-fertility tiebreak), then recursively
// splits each landmass's bounding rectangle into its allotted civ count.
func partitionContinents(tm *tilemap.TileMap, civCount int, areaList []areas.Area) ([]*Region, bool) {
	land := areas.BySize(areaList, false)
	if len(land) == 0 {
		return nil, true
	}

	type landmassInfo = struct {
		area      areas.Area
		rect      hexgrid.Rectangle
		fertility int
	}
	infos := make([]landmassInfo, 0, len(land))
	for _, a := range land {
		rect := landmassBoundingRectangle(tm, a.ID)
		f := sumFertility(tm, rect, a.ID)
		infos = append(infos, landmassInfo{area: a, rect: rect, fertility: f})
	}

	forced := false
	if len(infos) > civCount {
		// Fewer candidate landmasses' worth of civ slots than needed is not
		// the relevant shortfall here; the real InsufficientLand case is
		// zero land at all (handled above). We keep the largest civCount
		// landmasses and drop the rest.
		infos = infos[:civCount]
	}

	allocation := allocateCivsByFertility(infos, civCount)

	var out []*Region
	idx := 0
	for i, info := range infos {
		n := allocation[i]
		if n <= 0 {
			continue
		}
		regs := splitRectangle(tm, info.rect, info.area.ID, n)
		for _, r := range regs {
			r.Index = idx
			idx++
			out = append(out, r)
		}
	}
	if len(out) < civCount {
		forced = true
	}
	return out, forced
}

// allocateCivsByFertility distributes civCount seats across landmasses
// proportional to each landmass's fertility share, with ties broken in
// favor of landmasses with a higher average fertility (spec §4.3: "larger
// landmasses with lower average yield receive fewer civs").
func allocateCivsByFertility(infos []struct {
	area      areas.Area
	rect      hexgrid.Rectangle
	fertility int
}, civCount int) []int {
	total := 0
	for _, info := range infos {
		total += info.fertility
	}
	alloc := make([]int, len(infos))
	if total <= 0 {
		// Degenerate: spread evenly.
		for i := range alloc {
			alloc[i] = 1
		}
		return normalizeAllocation(alloc, civCount)
	}

	type remInfo struct {
		idx    int
		remain float64
		avgFert float64
	}
	rema := make([]remInfo, len(infos))
	assigned := 0
	for i, info := range infos {
		share := float64(info.fertility) / float64(total) * float64(civCount)
		n := int(share)
		if n < 1 {
			n = 1
		}
		alloc[i] = n
		assigned += n
		rema[i] = remInfo{idx: i, remain: share - float64(int(share)), avgFert: float64(info.fertility) / float64(maxInt(1, info.rect.Width*info.rect.Height))}
	}

	// Adjust to match civCount exactly: remove from landmasses with the
	// lowest average fertility first (spec tiebreak), add to highest
	// remainder first.
	for assigned > civCount {
		worst := -1
		for i := range rema {
			if alloc[i] <= 1 {
				continue
			}
			if worst == -1 || rema[i].avgFert < rema[worst].avgFert {
				worst = i
			}
		}
		if worst == -1 {
			break
		}
		alloc[worst]--
		assigned--
	}
	for assigned < civCount {
		sort.SliceStable(rema, func(i, j int) bool { return rema[i].remain > rema[j].remain })
		alloc[rema[0].idx]++
		assigned++
		rema[0].remain = -1
	}
	return alloc
}

func normalizeAllocation(alloc []int, civCount int) []int {
	sum := 0
	for _, a := range alloc {
		sum += a
	}
	i := 0
	for sum < civCount {
		alloc[i%len(alloc)]++
		sum++
		i++
	}
	for sum > civCount {
		j := i % len(alloc)
		if alloc[j] > 1 {
			alloc[j]--
			sum--
		}
		i++
	}
	return alloc
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// landmassBoundingRectangle returns the smallest rectangle enclosing all
// tiles of the given area id.
func landmassBoundingRectangle(tm *tilemap.TileMap, areaID int) hexgrid.Rectangle {
	g := tm.Grid
	minX, minY := g.Width, g.Height
	maxX, maxY := -1, -1
	for i := 0; i < g.TileCount(); i++ {
		t := hexgrid.Tile(i)
		if tm.AreaID(t) != areaID {
			continue
		}
		o := g.OffsetOfTile(t)
		if o.X < minX {
			minX = o.X
		}
		if o.X > maxX {
			maxX = o.X
		}
		if o.Y < minY {
			minY = o.Y
		}
		if o.Y > maxY {
			maxY = o.Y
		}
	}
	if maxX < 0 {
		r, _ := hexgrid.NewRectangle(g, hexgrid.Offset{X: 0, Y: 0}, g.Width, g.Height)
		return r
	}
	w := maxX - minX + 1
	h := maxY - minY + 1
	r, err := hexgrid.NewRectangle(g, hexgrid.Offset{X: minX, Y: minY}, w, h)
	if err != nil {
		r, _ = hexgrid.NewRectangle(g, hexgrid.Offset{X: 0, Y: 0}, g.Width, g.Height)
	}
	return r
}

func sumFertility(tm *tilemap.TileMap, rect hexgrid.Rectangle, areaID int) int {
	sum := 0
	for _, t := range rect.IterTiles(tm.Grid) {
		if areaID >= 0 && tm.AreaID(t) != areaID {
			continue
		}
		sum += Fertility(tm, t)
	}
	return sum
}

// splitRectangle recursively divides rect into n leaves of close-to-equal
// fertility sum, splitting along the longer axis at the fertility-balance
// point, subject to a minimum width/height of 4 (spec §4.3).
func splitRectangle(tm *tilemap.TileMap, rect hexgrid.Rectangle, areaID int, n int) []*Region {
	if n <= 1 {
		return []*Region{newRegionFromRectangle(tm, rect, areaID)}
	}

	left := n / 2
	right := n - left

	g := tm.Grid
	var a, b hexgrid.Rectangle
	var err error
	if rect.Width >= rect.Height {
		splitX := fertilityBalanceSplit(tm, rect, areaID, true, left, right)
		a, err = hexgrid.NewRectangle(g, rect.Origin, splitX, rect.Height)
		if err != nil || splitX < minRectDimension || rect.Width-splitX < minRectDimension {
			return []*Region{newRegionFromRectangle(tm, rect, areaID)}
		}
		bOrigin := hexgrid.Offset{X: (rect.Origin.X + splitX) % g.Width, Y: rect.Origin.Y}
		b, err = hexgrid.NewRectangle(g, bOrigin, rect.Width-splitX, rect.Height)
	} else {
		splitY := fertilityBalanceSplit(tm, rect, areaID, false, left, right)
		a, err = hexgrid.NewRectangle(g, rect.Origin, rect.Width, splitY)
		if err != nil || splitY < minRectDimension || rect.Height-splitY < minRectDimension {
			return []*Region{newRegionFromRectangle(tm, rect, areaID)}
		}
		bOrigin := hexgrid.Offset{X: rect.Origin.X, Y: (rect.Origin.Y + splitY) % g.Height}
		b, err = hexgrid.NewRectangle(g, bOrigin, rect.Width, rect.Height-splitY)
	}
	if err != nil {
		return []*Region{newRegionFromRectangle(tm, rect, areaID)}
	}

	out := splitRectangle(tm, a, areaID, left)
	out = append(out, splitRectangle(tm, b, areaID, right)...)
	return out
}

// fertilityBalanceSplit finds the split position along the chosen axis
// producing two sub-rectangles whose fertility sums are as close as
// possible to the leftWeight:rightWeight ratio.
func fertilityBalanceSplit(tm *tilemap.TileMap, rect hexgrid.Rectangle, areaID int, splitOnX bool, leftWeight, rightWeight int) int {
	extent := rect.Height
	if splitOnX {
		extent = rect.Width
	}
	colFertility := make([]int, extent)
	g := tm.Grid
	for i := 0; i < extent; i++ {
		var sum int
		if splitOnX {
			x := (rect.Origin.X + i) % g.Width
			for dy := 0; dy < rect.Height; dy++ {
				y := (rect.Origin.Y + dy) % g.Height
				t, ok := g.TileAtOffset(hexgrid.Offset{X: x, Y: y})
				if ok && (areaID < 0 || tm.AreaID(t) == areaID) {
					sum += Fertility(tm, t)
				}
			}
		} else {
			y := (rect.Origin.Y + i) % g.Height
			for dx := 0; dx < rect.Width; dx++ {
				x := (rect.Origin.X + dx) % g.Width
				t, ok := g.TileAtOffset(hexgrid.Offset{X: x, Y: y})
				if ok && (areaID < 0 || tm.AreaID(t) == areaID) {
					sum += Fertility(tm, t)
				}
			}
		}
		colFertility[i] = sum
	}

	total := 0
	for _, f := range colFertility {
		total += f
	}
	targetLeft := float64(total) * float64(leftWeight) / float64(leftWeight+rightWeight)

	best := minRectDimension
	bestDiff := -1.0
	running := 0
	for i := minRectDimension; i <= extent-minRectDimension; i++ {
		running = 0
		for k := 0; k < i; k++ {
			running += colFertility[k]
		}
		diff := running - int(targetLeft)
		if diff < 0 {
			diff = -diff
		}
		fdiff := float64(diff)
		if bestDiff < 0 || fdiff < bestDiff {
			bestDiff = fdiff
			best = i
		}
	}
	return best
}

func newRegionFromRectangle(tm *tilemap.TileMap, rect hexgrid.Rectangle, areaID int) *Region {
	tiles := rect.IterTiles(tm.Grid)
	fert := make([]int, len(tiles))
	sum := 0
	for i, t := range tiles {
		f := Fertility(tm, t)
		fert[i] = f
		sum += f
	}
	r := &Region{
		Rectangle:    rect,
		AreaID:       areaID,
		HasAreaID:    areaID >= 0,
		Fertility:    fert,
		FertilitySum: sum,
	}
	Classify(tm, r)
	return r
}
