// Package hexgrid provides hex cell indexing, wrapping, rectangle queries,
// and distance/direction math on a torus-like grid. Addressed by a dense
// integer tile index derived from an offset coordinate (x, y).
package hexgrid

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is returned for grid/rectangle constructions that
// cannot be made consistent (structural, caller-actionable — see spec §7).
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Orientation is the hex pointy-top vs flat-top layout.
type Orientation uint8

const (
	Pointy Orientation = iota
	Flat
)

// Parity is the offset coordinate system's row/column parity convention.
type Parity uint8

const (
	Odd Parity = iota
	Even
)

// Direction is one of eight compass directions, or None.
type Direction uint8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
	None
)

// Opposite returns the opposite edge direction. Panics on None, mirroring
// the source's "this direction has no opposite" invariant.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case NorthEast:
		return SouthWest
	case East:
		return West
	case SouthEast:
		return NorthWest
	case South:
		return North
	case SouthWest:
		return NorthEast
	case West:
		return East
	case NorthWest:
		return SouthEast
	default:
		panic("hexgrid: direction has no opposite")
	}
}

// WorldSize is the high-level scale selector used to pick default dimensions.
type WorldSize uint8

const (
	Duel WorldSize = iota
	Tiny
	Small
	Standard
	Large
	Huge
)

// DefaultGridSize returns the Civ5-standard default (width, height) for a
// world size. Recovered from original_source/src/grid/hex_grid/mod.rs.
func DefaultGridSize(ws WorldSize) (width, height int) {
	switch ws {
	case Duel:
		return 40, 24
	case Tiny:
		return 56, 36
	case Small:
		return 66, 42
	case Standard:
		return 80, 52
	case Large:
		return 104, 64
	case Huge:
		return 128, 80
	default:
		return 80, 52
	}
}

// Grid describes the dimensions, wrap behavior, and hex layout of the map.
type Grid struct {
	Width, Height int
	WrapX, WrapY  bool
	Orientation   Orientation
	Parity        Parity
}

// NewGrid validates and constructs a Grid. Returns ErrInvalidConfiguration
// when wrap is requested on an axis whose dimension is incompatible with the
// hex orientation (pointy hexes need even height to wrap Y; flat hexes need
// even width to wrap X).
func NewGrid(width, height int, wrapX, wrapY bool, orientation Orientation, parity Parity) (Grid, error) {
	if width <= 0 || height <= 0 {
		return Grid{}, fmt.Errorf("%w: non-positive grid size %dx%d", ErrInvalidConfiguration, width, height)
	}
	switch orientation {
	case Pointy:
		if wrapY && height%2 != 0 {
			return Grid{}, fmt.Errorf("%w: pointy hexes require even height to wrap Y, got %d", ErrInvalidConfiguration, height)
		}
	case Flat:
		if wrapX && width%2 != 0 {
			return Grid{}, fmt.Errorf("%w: flat hexes require even width to wrap X, got %d", ErrInvalidConfiguration, width)
		}
	}
	return Grid{Width: width, Height: height, WrapX: wrapX, WrapY: wrapY, Orientation: orientation, Parity: parity}, nil
}

// Tile is a dense index into the map's per-tile attribute arrays.
type Tile int

// TileCount is the total number of addressable tiles.
func (g Grid) TileCount() int {
	return g.Width * g.Height
}

// Offset is an (x, y) offset coordinate, x in [0,W), y in [0,H) once normalized.
type Offset struct {
	X, Y int
}

// euclidMod is the Euclidean remainder (always non-negative), required so
// negative offsets wrap correctly (spec §9 "Wrap arithmetic").
func euclidMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// Normalize brings an offset coordinate into [0,W) x [0,H) on wrapped axes.
// Returns false if the coordinate is out of bounds on a non-wrapped axis.
func (g Grid) Normalize(o Offset) (Offset, bool) {
	x, y := o.X, o.Y
	if g.WrapX {
		x = euclidMod(x, g.Width)
	}
	if g.WrapY {
		y = euclidMod(y, g.Height)
	}
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return Offset{}, false
	}
	return Offset{X: x, Y: y}, true
}

// TileAtOffset converts an offset coordinate to a dense tile index.
func (g Grid) TileAtOffset(o Offset) (Tile, bool) {
	n, ok := g.Normalize(o)
	if !ok {
		return 0, false
	}
	return Tile(n.X + n.Y*g.Width), true
}

// OffsetOfTile converts a tile index back to its offset coordinate.
func (g Grid) OffsetOfTile(t Tile) Offset {
	idx := int(t)
	return Offset{X: idx % g.Width, Y: idx / g.Width}
}

// hexCube is the underlying cube/axial coordinate for hex math.
type hexCube struct {
	Q, R int
}

func (h hexCube) S() int { return -h.Q - h.R }

func (g Grid) offsetToHex(o Offset) hexCube {
	parity := 1
	if g.Parity == Even {
		parity = -1
	}
	switch g.Orientation {
	case Pointy:
		q := o.X - (o.Y+parity*(o.Y&1))/2
		return hexCube{Q: q, R: o.Y}
	default: // Flat
		r := o.Y - (o.X+parity*(o.X&1))/2
		return hexCube{Q: o.X, R: r}
	}
}

func (g Grid) hexToOffset(h hexCube) Offset {
	parity := 1
	if g.Parity == Even {
		parity = -1
	}
	switch g.Orientation {
	case Pointy:
		x := h.Q + (h.R+parity*(h.R&1))/2
		return Offset{X: x, Y: h.R}
	default: // Flat
		y := h.R + (h.Q+parity*(h.Q&1))/2
		return Offset{X: h.Q, Y: y}
	}
}

// neighborUnitVectors are the six edge directions' unit cube vectors, in the
// fixed North..NorthWest order.
var neighborUnitVectorsPointy = [6]hexCube{
	{Q: 0, R: -1},  // North
	{Q: 1, R: -1},  // NorthEast
	{Q: 1, R: 0},   // East (SouthEast for pointy layouts with 6 edges is folded below)
	{Q: 0, R: 1},   // South
	{Q: -1, R: 1},  // SouthWest
	{Q: -1, R: 0},  // West
}

// For a hex grid only six of the eight Direction values are valid edges
// (North/South and the four diagonals for pointy; East/West and the four
// diagonals for flat). edgeDirections returns the six in a fixed order
// together with their unit cube vector.
func (g Grid) edgeDirections() ([6]Direction, [6]hexCube) {
	switch g.Orientation {
	case Pointy:
		return [6]Direction{North, NorthEast, SouthEast, South, SouthWest, NorthWest},
			[6]hexCube{
				{Q: 0, R: -1},
				{Q: 1, R: -1},
				{Q: 1, R: 0},
				{Q: 0, R: 1},
				{Q: -1, R: 1},
				{Q: -1, R: 0},
			}
	default: // Flat
		return [6]Direction{NorthEast, East, SouthEast, SouthWest, West, NorthWest},
			[6]hexCube{
				{Q: 1, R: -1},
				{Q: 1, R: 0},
				{Q: 0, R: 1},
				{Q: -1, R: 1},
				{Q: -1, R: 0},
				{Q: 0, R: -1},
			}
	}
}

// Neighbors returns the six adjacent tiles in the grid's fixed edge-direction
// order, honoring wrap; a missing (out-of-bounds, non-wrapped) neighbor is
// omitted from the slice (callers that need "Junk" treatment for missing
// edge neighbors, per spec §4.5, must detect a short slice).
func (g Grid) Neighbors(t Tile) []Tile {
	o := g.OffsetOfTile(t)
	h := g.offsetToHex(o)
	_, vecs := g.edgeDirections()
	out := make([]Tile, 0, 6)
	for _, v := range vecs {
		nh := hexCube{Q: h.Q + v.Q, R: h.R + v.R}
		no := g.hexToOffset(nh)
		if nt, ok := g.TileAtOffset(no); ok {
			out = append(out, nt)
		}
	}
	return out
}

// Neighbor returns the single neighbor in the given edge direction, if any.
func (g Grid) Neighbor(t Tile, dir Direction) (Tile, bool) {
	dirs, vecs := g.edgeDirections()
	for i, d := range dirs {
		if d == dir {
			o := g.OffsetOfTile(t)
			h := g.offsetToHex(o)
			nh := hexCube{Q: h.Q + vecs[i].Q, R: h.R + vecs[i].R}
			no := g.hexToOffset(nh)
			return g.TileAtOffset(no)
		}
	}
	return 0, false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// shortestWrappedDelta returns the (dx, dy) offset-space displacement from a
// to b, taking the shorter of the two wrapped representations per axis.
func (g Grid) shortestWrappedDelta(a, b Offset) (int, int) {
	dx := b.X - a.X
	if g.WrapX {
		if dx > g.Width/2 {
			dx -= g.Width
		} else if dx < -g.Width/2 {
			dx += g.Width
		}
	}
	dy := b.Y - a.Y
	if g.WrapY {
		if dy > g.Height/2 {
			dy -= g.Height
		} else if dy < -g.Height/2 {
			dy += g.Height
		}
	}
	return dx, dy
}

// HexDistance returns the hex distance between two tiles, honoring wrap by
// taking the shortest wrapped vector (spec §4.1).
func (g Grid) HexDistance(a, b Tile) int {
	oa, ob := g.OffsetOfTile(a), g.OffsetOfTile(b)
	dx, dy := g.shortestWrappedDelta(oa, ob)
	// Re-derive cube coordinates of the shortest-vector destination,
	// relative to the origin, to get a true hex distance.
	shifted := Offset{X: oa.X + dx, Y: oa.Y + dy}
	ha := g.offsetToHex(oa)
	hb := g.offsetToHex(shifted)
	dq := hb.Q - ha.Q
	dr := hb.R - ha.R
	ds := hb.S() - ha.S()
	return maxInt(abs(dq), maxInt(abs(dr), abs(ds)))
}

// EstimateDirection returns the edge direction whose unit vector maximizes
// the dot product with the shortest wrapped displacement from a to b.
func (g Grid) EstimateDirection(a, b Tile) Direction {
	if a == b {
		return None
	}
	oa, ob := g.OffsetOfTile(a), g.OffsetOfTile(b)
	dx, dy := g.shortestWrappedDelta(oa, ob)
	shifted := Offset{X: oa.X + dx, Y: oa.Y + dy}
	ha := g.offsetToHex(oa)
	hb := g.offsetToHex(shifted)
	vq, vr, vs := hb.Q-ha.Q, hb.R-ha.R, hb.S()-ha.S()

	dirs, vecs := g.edgeDirections()
	best := None
	bestDot := -1 << 30
	for i, v := range vecs {
		dot := v.Q*vq + v.R*vr + v.S()*vs
		if dot > bestDot {
			bestDot = dot
			best = dirs[i]
		}
	}
	return best
}

// TilesAtDistance returns all tiles at exactly hex distance d from center
// (6*d tiles on an unwrapped interior; fewer near non-wrapped edges).
func (g Grid) TilesAtDistance(center Tile, d int) []Tile {
	if d == 0 {
		return []Tile{center}
	}
	oc := g.OffsetOfTile(center)
	hc := g.offsetToHex(oc)
	out := make([]Tile, 0, 6*d)

	// Walk the ring: start d steps along the 5th edge direction (index 4,
	// e.g. SouthWest for Pointy), then walk d steps in each of the six edge
	// directions in fixed order — the standard redblob ring-walk start for
	// this vecs ordering.
	dirs, vecs := g.edgeDirections()
	start := hexCube{Q: hc.Q, R: hc.R}
	startVec := vecs[4]
	for i := 0; i < d; i++ {
		start = hexCube{Q: start.Q + startVec.Q, R: start.R + startVec.R}
	}
	cur := start
	for side := 0; side < 6; side++ {
		v := vecs[side]
		for step := 0; step < d; step++ {
			if o, ok := g.TileAtOffset(g.hexToOffset(cur)); ok {
				out = append(out, o)
			}
			cur = hexCube{Q: cur.Q + v.Q, R: cur.R + v.R}
		}
	}
	_ = dirs
	return out
}

// TilesWithinDistance returns all tiles within hex distance d (inclusive),
// 3*d*(d+1)+1 tiles on an unwrapped interior.
func (g Grid) TilesWithinDistance(center Tile, d int) []Tile {
	out := make([]Tile, 0, 3*d*(d+1)+1)
	for k := 0; k <= d; k++ {
		out = append(out, g.TilesAtDistance(center, k)...)
	}
	return out
}

// Rectangle is an axis-aligned rectangular region with an SW-corner origin,
// possibly crossing a wrapped seam.
type Rectangle struct {
	Origin        Offset
	Width, Height int
}

// NewRectangle validates and normalizes a rectangle against the grid.
func NewRectangle(g Grid, origin Offset, width, height int) (Rectangle, error) {
	if width <= 0 || height <= 0 {
		return Rectangle{}, fmt.Errorf("%w: rectangle dimensions must be positive, got %dx%d", ErrInvalidConfiguration, width, height)
	}
	if width > g.Width || height > g.Height {
		return Rectangle{}, fmt.Errorf("%w: rectangle %dx%d exceeds grid %dx%d", ErrInvalidConfiguration, width, height, g.Width, g.Height)
	}
	norm, ok := g.Normalize(origin)
	if !ok {
		return Rectangle{}, fmt.Errorf("%w: rectangle origin %+v out of bounds", ErrInvalidConfiguration, origin)
	}
	return Rectangle{Origin: norm, Width: width, Height: height}, nil
}

// RectangleFromCorners builds a rectangle from an SW origin and NE corner,
// recovered from original_source's Rectangle::from_corners.
func RectangleFromCorners(g Grid, origin, topRight Offset) (Rectangle, error) {
	norm, ok := g.Normalize(origin)
	if !ok {
		return Rectangle{}, fmt.Errorf("%w: rectangle origin %+v out of bounds", ErrInvalidConfiguration, origin)
	}
	width := topRight.X - norm.X + 1
	height := topRight.Y - norm.Y + 1
	if g.WrapX {
		width = euclidMod(width, g.Width)
	}
	if g.WrapY {
		height = euclidMod(height, g.Height)
	}
	if width <= 0 || width > g.Width || height <= 0 || height > g.Height {
		return Rectangle{}, fmt.Errorf("%w: the rectangle from %+v to %+v does not exist", ErrInvalidConfiguration, origin, topRight)
	}
	return Rectangle{Origin: norm, Width: width, Height: height}, nil
}

// Contains reports whether tile t falls inside the rectangle, accounting for
// both wrap directions.
func (r Rectangle) Contains(g Grid, t Tile) bool {
	o := g.OffsetOfTile(t)
	x, y := o.X, o.Y
	if x < r.Origin.X {
		x += g.Width
	}
	if y < r.Origin.Y {
		y += g.Height
	}
	return x >= r.Origin.X && x < r.Origin.X+r.Width &&
		y >= r.Origin.Y && y < r.Origin.Y+r.Height
}

// IterTiles returns every tile in the rectangle, in left-to-right,
// bottom-to-top order (matching the map's fill order, spec §3 Lifecycle).
func (r Rectangle) IterTiles(g Grid) []Tile {
	out := make([]Tile, 0, r.Width*r.Height)
	for dy := 0; dy < r.Height; dy++ {
		y := euclidMod(r.Origin.Y+dy, g.Height)
		for dx := 0; dx < r.Width; dx++ {
			x := euclidMod(r.Origin.X+dx, g.Width)
			if t, ok := g.TileAtOffset(Offset{X: x, Y: y}); ok {
				out = append(out, t)
			}
		}
	}
	return out
}

// Center returns the tile nearest the rectangle's geometric center.
func (r Rectangle) Center(g Grid) Tile {
	cx := euclidMod(r.Origin.X+r.Width/2, g.Width)
	cy := euclidMod(r.Origin.Y+r.Height/2, g.Height)
	t, _ := g.TileAtOffset(Offset{X: cx, Y: cy})
	return t
}

var _ = minInt
