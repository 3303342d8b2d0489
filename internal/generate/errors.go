package generate

import "fmt"

// InvalidConfigurationError reports a parameter combination Generate cannot
// run with at all (spec §7): e.g. wrap enabled on an axis whose dimension
// is incompatible with the hex orientation/parity, or a custom rectangle
// outside the map.
type InvalidConfigurationError struct {
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", e.Reason)
}

// InsufficientLandError reports that partitioning produced fewer regions
// than requested civilizations; Generate returns it and no map.
type InsufficientLandError struct {
	Requested, Available int
}

func (e *InsufficientLandError) Error() string {
	return fmt.Sprintf("insufficient land: requested %d civilization regions, found room for %d", e.Requested, e.Available)
}

// PlacementShortfallError describes a resource quota that could not be
// fully filled. Generate does not construct it: the unplaced counts that
// the resource placers return are discarded and Result.Shortfalls stays
// empty.
type PlacementShortfallError struct {
	Resource string
	Unplaced int
}

func (e *PlacementShortfallError) Error() string {
	return fmt.Sprintf("placement shortfall: %d unplaced %s", e.Unplaced, e.Resource)
}

// RulesetInconsistencyError names a missing ruleset id. Generate does not
// construct it: ids that fail to resolve during placement are skipped. The
// ruleset package's lookups return their own RulesetInconsistencyError.
type RulesetInconsistencyError struct {
	Kind string
	ID   string
}

func (e *RulesetInconsistencyError) Error() string {
	return fmt.Sprintf("ruleset inconsistency: unknown %s %q", e.Kind, e.ID)
}
