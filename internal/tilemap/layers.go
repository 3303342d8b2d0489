package tilemap

import "github.com/talgya/civmapgen/internal/hexgrid"

// LayerKind names one of the logical impact/ripple layers (spec §3).
type LayerKind uint8

const (
	LayerStrategic LayerKind = iota
	LayerLuxury
	LayerBonus
	LayerFish
	LayerCityState
	LayerNaturalWonder
	LayerMarble
)

// Layers owns every impact/ripple layer plus the civ-distance and
// player-collision layers, as a single exclusively-mutated object (spec §9
// "Ownership of shared layers"). All writes go through LayerWriter methods
// so a single call both reads and writes a consistent snapshot.
type Layers struct {
	strategic     []uint8
	luxury        []uint8
	bonus         []uint8
	fish          []uint8
	cityState     []uint8
	naturalWonder []uint8
	marble        []uint8

	DistanceData      []uint8
	PlayerCollision    []bool
}

func newLayers(n int) *Layers {
	return &Layers{
		strategic:       make([]uint8, n),
		luxury:          make([]uint8, n),
		bonus:           make([]uint8, n),
		fish:            make([]uint8, n),
		cityState:       make([]uint8, n),
		naturalWonder:   make([]uint8, n),
		marble:          make([]uint8, n),
		DistanceData:    make([]uint8, n),
		PlayerCollision: make([]bool, n),
	}
}

func (l *Layers) slice(k LayerKind) []uint8 {
	switch k {
	case LayerStrategic:
		return l.strategic
	case LayerLuxury:
		return l.luxury
	case LayerBonus:
		return l.bonus
	case LayerFish:
		return l.fish
	case LayerCityState:
		return l.cityState
	case LayerNaturalWonder:
		return l.naturalWonder
	case LayerMarble:
		return l.marble
	default:
		panic("tilemap: unknown layer kind")
	}
}

// Value reads a layer's value at a tile.
func (l *Layers) Value(k LayerKind, t hexgrid.Tile) uint8 {
	return l.slice(k)[t]
}

func ceilDiv1p2(v int) int {
	// ceil(1.2 * v)
	scaled := v*6 + 4 // 1.2*v*5 = 6v, add 4 for ceil over /5
	return scaled / 5
}

// WriteCivStart stamps the distance_data ripple for a newly placed civ
// start (spec §4.8): center=99, ring d in 1..8 gets a fixed ripple table,
// with overlapping writes taking min(97, ceil(1.2*max(existing,new))).
func (l *Layers) WriteCivStart(g hexgrid.Grid, center hexgrid.Tile) {
	ripple := [8]uint8{97, 95, 92, 89, 69, 57, 24, 15}
	l.DistanceData[center] = 99
	l.PlayerCollision[center] = true
	for d := 1; d <= 8; d++ {
		newVal := int(ripple[d-1])
		for _, t := range g.TilesAtDistance(center, d) {
			existing := int(l.DistanceData[t])
			m := existing
			if newVal > m {
				m = newVal
			}
			v := ceilDiv1p2(m)
			if v > 97 {
				v = 97
			}
			if v > existing {
				l.DistanceData[t] = uint8(v)
			}
		}
	}
	// CityState layer: +1 in disk of radius 6.
	for _, t := range g.TilesWithinDistance(center, 6) {
		l.addCapped(LayerCityState, t, 1, 255)
	}
	// Resource layers around a civ start: radii 0/3/3/3/4 for
	// Strategic/Luxury/Bonus/Fish/NaturalWonder respectively.
	l.WriteRipple(LayerStrategic, g, center, 0)
	l.WriteRipple(LayerLuxury, g, center, 3)
	l.WriteRipple(LayerBonus, g, center, 3)
	l.writeSingleImpact(LayerFish, g, center, 3)
	l.WriteRipple(LayerNaturalWonder, g, center, 4)
}

func (l *Layers) addCapped(k LayerKind, t hexgrid.Tile, inc int, cap int) {
	s := l.slice(k)
	v := int(s[t]) + inc
	if v > cap {
		v = cap
	}
	s[t] = uint8(v)
}

// WriteRipple is the generic writer for the Strategic/Luxury/Bonus/
// NaturalWonder layers (spec §4.8): center=99, ring d in 1..r gets
// ripple=r-d+1, overlap takes min(cap, max(existing,new)+inc) with
// (cap,inc)=(50,2) for these four layers.
func (l *Layers) WriteRipple(k LayerKind, g hexgrid.Grid, center hexgrid.Tile, r int) {
	s := l.slice(k)
	cap, inc := 50, 2
	if v := int(s[center]); 99 > v {
		s[center] = 99
	}
	for d := 1; d <= r; d++ {
		newVal := r - d + 1
		for _, t := range g.TilesAtDistance(center, d) {
			existing := int(s[t])
			m := existing
			if newVal > m {
				m = newVal
			}
			v := m + inc
			if v > cap {
				v = cap
			}
			if v > existing {
				s[t] = uint8(v)
			}
		}
	}
}

// writeSingleImpact is the Fish/Marble-style writer: center marked with a
// small value, ring d in 1..r gets ripple=r-d+1, overlap takes
// min(cap,max(existing,new)+inc) with (cap,inc)=(10,1) for Fish.
func (l *Layers) writeSingleImpact(k LayerKind, g hexgrid.Grid, center hexgrid.Tile, r int) {
	s := l.slice(k)
	if s[center] < 1 {
		s[center] = 1
	}
	cap, inc := 10, 1
	for d := 1; d <= r; d++ {
		newVal := r - d + 1
		for _, t := range g.TilesAtDistance(center, d) {
			existing := int(s[t])
			m := existing
			if newVal > m {
				m = newVal
			}
			v := m + inc
			if v > cap {
				v = cap
			}
			if v > existing {
				s[t] = uint8(v)
			}
		}
	}
}

// WriteSingleMark marks the CityState/Marble layers with '=1' only, no
// ripple (spec §4.8).
func (l *Layers) WriteSingleMark(k LayerKind, t hexgrid.Tile) {
	s := l.slice(k)
	if s[t] < 1 {
		s[t] = 1
	}
}

// WriteCityStateImpact stamps the CityState layer's impact+ripple for a
// placed city-state (approximate radius 4, spec §4.10).
func (l *Layers) WriteCityStateImpact(g hexgrid.Grid, center hexgrid.Tile) {
	l.WriteSingleMark(LayerCityState, center)
	cap, inc := 50, 2
	s := l.slice(LayerCityState)
	for d := 1; d <= 4; d++ {
		newVal := 4 - d + 1
		for _, t := range g.TilesAtDistance(center, d) {
			existing := int(s[t])
			m := existing
			if newVal > m {
				m = newVal
			}
			v := m + inc
			if v > cap {
				v = cap
			}
			if v > existing {
				s[t] = uint8(v)
			}
		}
	}
	l.PlayerCollision[center] = true
}

// WriteGenericResource places a resource's impact+ripple at a sampled
// radius, used by place_specific_number_of_resources (spec §4.12).
func (l *Layers) WriteGenericResource(k LayerKind, g hexgrid.Grid, center hexgrid.Tile, radius int) {
	l.WriteRipple(k, g, center, radius)
}

// SaturateNaturalWonder marks the NaturalWonder layer as saturated over the
// whole map (spec §4.9 "effectively infinite radius").
func (l *Layers) SaturateNaturalWonder(g hexgrid.Grid) {
	s := l.slice(LayerNaturalWonder)
	for i := range s {
		if s[i] < 50 {
			s[i] = 50
		}
	}
}
