package ruleset

import (
	"regexp"
	"strconv"
)

// UniqueKind tags a parsed natural-wonder unique predicate.
type UniqueKind uint8

const (
	UniqueAdjacentExactly UniqueKind = iota
	UniqueAdjacentRange
	UniqueOnLargestLandmasses
	UniqueNotOnLargestLandmasses
	UniqueUnknown
)

// Unique is a typed predicate parsed once from a DSL string at ruleset load
// time (spec §9 "Polymorphism" — parse the unique strings once into typed
// predicates rather than re-parsing per tile).
type Unique struct {
	Kind   UniqueKind
	N      int
	M      int // only meaningful for UniqueAdjacentRange
	Filter string
	K      int // only meaningful for the largest-landmasses uniques
}

var (
	reAdjacentExactly = regexp.MustCompile(`^Must be adjacent to (\d+) (.+) tiles?$`)
	reAdjacentRange    = regexp.MustCompile(`^Must be adjacent to (\d+) to (\d+) (.+) tiles?$`)
	reOnLargest        = regexp.MustCompile(`^Must be on (\d+) largest landmasses$`)
	reNotOnLargest     = regexp.MustCompile(`^Must not be on (\d+) largest landmasses$`)
)

// ParseUnique parses one "Must be adjacent to [N] [filter] tiles"-style DSL
// string into a typed Unique. Unrecognized strings parse to UniqueUnknown
// so a ruleset with forward-looking uniques doesn't hard-fail the load.
func ParseUnique(s string) Unique {
	if m := reAdjacentRange.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(m[2])
		return Unique{Kind: UniqueAdjacentRange, N: n, M: mm, Filter: m[3]}
	}
	if m := reAdjacentExactly.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		return Unique{Kind: UniqueAdjacentExactly, N: n, Filter: m[2]}
	}
	if m := reOnLargest.FindStringSubmatch(s); m != nil {
		k, _ := strconv.Atoi(m[1])
		return Unique{Kind: UniqueOnLargestLandmasses, K: k}
	}
	if m := reNotOnLargest.FindStringSubmatch(s); m != nil {
		k, _ := strconv.Atoi(m[1])
		return Unique{Kind: UniqueNotOnLargestLandmasses, K: k}
	}
	return Unique{Kind: UniqueUnknown}
}

// ParseUniques parses every unique string of a wonder definition in order.
func ParseUniques(strs []string) []Unique {
	out := make([]Unique, 0, len(strs))
	for _, s := range strs {
		out = append(out, ParseUnique(s))
	}
	return out
}
