// Package starts implements the starting-tile selector (§4.5) and the
// starting-tile normalizer (§4.6).
package starts

import (
	"github.com/talgya/civmapgen/internal/hexgrid"
	"github.com/talgya/civmapgen/internal/regions"
	"github.com/talgya/civmapgen/internal/ruleset"
	"github.com/talgya/civmapgen/internal/tilemap"
)

const (
	centerBias = 1.0 / 3.0
	middleBias = 2.0 / 3.0
)

type ringClass uint8

const (
	classFood ringClass = 1 << iota
	classProduction
	classGood
	classJunk
)

// classifyRingTile buckets a ring member into Food/Production/Good/Junk,
// region-type sensitive per spec §4.5 (Jungle counts Food+Good outside
// Grassland regions, Tundra counts Food+Good only in Tundra regions,
// Mountain is always Junk).
func classifyRingTile(tm *tilemap.TileMap, rs *ruleset.Ruleset, t hexgrid.Tile, rt regions.RegionType) ringClass {
	if tm.TerrainType(t) == tilemap.Mountain {
		return classJunk
	}
	if tm.IsWater(t) {
		if tm.BaseTerrain(t) == tilemap.Coast {
			return classFood
		}
		return classJunk
	}

	var c ringClass
	base := tm.BaseTerrain(t)
	tt := tm.TerrainType(t)

	switch base {
	case tilemap.Grassland:
		c |= classFood | classGood
	case tilemap.Plain:
		c |= classProduction | classGood
	case tilemap.Desert:
		c |= classJunk
	case tilemap.Tundra:
		if rt == regions.RegionTundra {
			c |= classFood | classGood
		} else {
			c |= classJunk
		}
	case tilemap.Snow:
		c |= classJunk
	}

	if tt == tilemap.Hill {
		c |= classProduction
		c &^= classJunk
	}

	if f, ok := tm.Feature(t); ok && rs != nil {
		if def, err := rs.Feature(f); err == nil {
			switch def.Name {
			case "Jungle":
				if rt != regions.RegionGrassland {
					c |= classFood | classGood
				} else {
					c |= classFood
				}
			case "Forest":
				c |= classProduction | classGood
			case "Oasis":
				c |= classFood | classGood
				c &^= classJunk
			case "Marsh":
				c |= classJunk
			}
		}
	}

	if c == 0 {
		c = classJunk
	}
	return c
}

type ringTally struct {
	food, production, good, junk, rivers int
}

func tallyRing(tm *tilemap.TileMap, rs *ruleset.Ruleset, g hexgrid.Grid, center hexgrid.Tile, d int, rt regions.RegionType) ringTally {
	var tally ringTally
	ring := g.TilesAtDistance(center, d)
	expected := 6 * d
	missing := expected - len(ring)
	tally.junk += missing // off-grid-edge neighbors count as Junk

	for _, t := range ring {
		c := classifyRingTile(tm, rs, t, rt)
		if c&classFood != 0 {
			tally.food++
		}
		if c&classProduction != 0 {
			tally.production++
		}
		if c&classGood != 0 {
			tally.good++
		}
		if c&classJunk != 0 {
			tally.junk++
		}
		if tm.IsRiver(t) {
			tally.rivers++
		}
	}
	return tally
}

func capIndex(v, max int) int {
	if v > max {
		return max
	}
	if v < 0 {
		return 0
	}
	return v
}

var innerFoodTable = []int{0, 8, 14, 19, 22, 24, 25}
var innerProdTable = []int{0, 10, 16, 20, 20, 12, 0}
var middleFoodTable = []int{0, 2, 5, 10, 20, 25, 28, 30, 32, 34, 35}
var middleProdTable = []int{0, 10, 20, 25, 30, 35}

func scoreInner(t ringTally) int {
	score := innerFoodTable[capIndex(t.food, len(innerFoodTable)-1)]
	score += innerProdTable[capIndex(t.production, len(innerProdTable)-1)]
	score += 2 * t.good
	score += t.rivers
	score -= 3 * t.junk
	return score
}

func scoreMiddle(t ringTally) int {
	score := middleFoodTable[capIndex(t.food, len(middleFoodTable)-1)]
	production := t.production
	effProd := capIndex(production, len(middleProdTable)-1)
	if t.food*2 < production {
		effProd = capIndex((t.food+1)/2, len(middleProdTable)-1)
	}
	score += middleProdTable[effProd]
	score += 2 * t.good
	score += t.rivers
	score -= 3 * t.junk
	return score
}

func scoreOuter(t ringTally) int {
	return t.food + t.production + t.good + t.rivers - 2*t.junk
}

// Candidate is a scored starting-tile candidate.
type Candidate struct {
	Tile  hexgrid.Tile
	Score int
	Inner ringTally
	Mid   ringTally
	Outer ringTally
}

func meetsMinimum(inner, mid, outer ringTally) bool {
	if inner.food >= 1 && inner.good >= 3 {
		return true
	}
	if mid.food >= 4 && mid.good >= 6 {
		return true
	}
	if outer.food >= 4 && outer.production >= 2 && outer.good >= 8 && outer.junk <= 9 {
		return true
	}
	return false
}

// isCandidate reports whether t is eligible as a starting-tile candidate
// (spec §4.5): Flatland or Hill, and either coastal-land, or (when coastal
// is not mandated) has no Coast within a 2-radius disk.
func isCandidate(tm *tilemap.TileMap, t hexgrid.Tile, mustBeCoastal bool) bool {
	tt := tm.TerrainType(t)
	if tt != tilemap.Flatland && tt != tilemap.Hill {
		return false
	}
	coastal := tm.IsCoastalLand(t)
	if mustBeCoastal {
		return coastal
	}
	if coastal {
		return true
	}
	for _, n := range tm.Grid.TilesWithinDistance(t, 2) {
		if tm.BaseTerrain(n) == tilemap.Coast {
			return false
		}
	}
	return true
}

type bucketKind uint8

const (
	bucketCenterRiver bucketKind = iota
	bucketCenterCoastalFresh
	bucketCenterDry
	bucketMiddleRiver
	bucketMiddleCoastalFresh
	bucketMiddleDry
)

// Select picks the best starting tile for a region using the three-ring,
// six-bucket priority evaluation of spec §4.5. distanceData demotes tiles
// close to existing starts (via the impact/ripple layer's multiplicative
// reduction) so they fall back rather than being disqualified outright.
func Select(tm *tilemap.TileMap, rs *ruleset.Ruleset, r *regions.Region, mustBeCoastal bool) (hexgrid.Tile, bool) {
	g := tm.Grid
	rect := r.Rectangle
	center := rect.Center(g)

	halfW := float64(rect.Width) / 2
	halfH := float64(rect.Height) / 2
	centerRadius := centerBias * (halfW + halfH) / 2
	middleRadius := middleBias * (halfW + halfH) / 2

	buckets := map[bucketKind][]Candidate{}
	var outerBest *Candidate
	outerBestDist := -1

	for _, t := range rect.IterTiles(g) {
		if r.HasAreaID && tm.AreaID(t) != r.AreaID {
			continue
		}
		if !isCandidate(tm, t, mustBeCoastal) {
			continue
		}

		inner := tallyRing(tm, rs, g, t, 1, r.RegionType)
		mid := tallyRing(tm, rs, g, t, 2, r.RegionType)
		outer := tallyRing(tm, rs, g, t, 3, r.RegionType)

		score := scoreInner(inner) + scoreMiddle(mid) + scoreOuter(outer)
		if tm.IsCoastalLand(t) {
			score += 40
		}
		reduction := float64(100-int(tm.Layers.DistanceData[t])) / 100.0
		score = int(float64(score) * reduction)

		cand := Candidate{Tile: t, Score: score, Inner: inner, Mid: mid, Outer: outer}

		dist := g.HexDistance(center, t)
		band := "outer"
		if float64(dist) <= centerRadius {
			band = "center"
		} else if float64(dist) <= middleRadius {
			band = "middle"
		}

		coastalOrFresh := tm.IsCoastalLand(t) || tm.IsFreshwater(t)
		isRiver := tm.IsRiver(t) || tm.NearRiver(t)

		switch band {
		case "center":
			switch {
			case isRiver:
				buckets[bucketCenterRiver] = append(buckets[bucketCenterRiver], cand)
			case coastalOrFresh:
				buckets[bucketCenterCoastalFresh] = append(buckets[bucketCenterCoastalFresh], cand)
			default:
				buckets[bucketCenterDry] = append(buckets[bucketCenterDry], cand)
			}
		case "middle":
			switch {
			case isRiver:
				buckets[bucketMiddleRiver] = append(buckets[bucketMiddleRiver], cand)
			case coastalOrFresh:
				buckets[bucketMiddleCoastalFresh] = append(buckets[bucketMiddleCoastalFresh], cand)
			default:
				buckets[bucketMiddleDry] = append(buckets[bucketMiddleDry], cand)
			}
		default: // outer
			if outerBest == nil || dist < outerBestDist || (dist == outerBestDist && cand.Score > outerBest.Score) {
				c := cand
				outerBest = &c
				outerBestDist = dist
			}
		}
	}

	order := []bucketKind{bucketCenterRiver, bucketCenterCoastalFresh, bucketCenterDry, bucketMiddleRiver, bucketMiddleCoastalFresh, bucketMiddleDry}
	for _, bk := range order {
		best, ok := bestMeetingMinimum(buckets[bk])
		if ok {
			return best.Tile, true
		}
	}
	if outerBest != nil {
		return outerBest.Tile, true
	}
	return 0, false
}

func bestMeetingMinimum(cands []Candidate) (Candidate, bool) {
	var best Candidate
	found := false
	for _, c := range cands {
		if !meetsMinimum(c.Inner, c.Mid, c.Outer) {
			continue
		}
		if !found || c.Score > best.Score {
			best = c
			found = true
		}
	}
	return best, found
}
