package rng_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/civmapgen/internal/rng"
)

func TestNew_SameSeedProducesSameSequence(t *testing.T) {
	a := rng.New(99)
	b := rng.New(99)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}

func TestNew_DifferentSeedsDiverge(t *testing.T) {
	a := rng.New(1)
	b := rng.New(2)
	diverged := false
	for i := 0; i < 20; i++ {
		if a.Intn(1_000_000) != b.Intn(1_000_000) {
			diverged = true
			break
		}
	}
	assert.True(t, diverged)
}

func TestIntRange_StaysWithinInclusiveBounds(t *testing.T) {
	s := rng.New(7)
	for i := 0; i < 200; i++ {
		v := s.IntRange(3, 3)
		assert.Equal(t, 3, v)
		v = s.IntRange(-2, 5)
		assert.GreaterOrEqual(t, v, -2)
		assert.LessOrEqual(t, v, 5)
	}
}

func TestShuffleInts_IsAPermutation(t *testing.T) {
	s := rng.New(123)
	perm := s.ShuffleInts(10)
	seen := make(map[int]bool)
	for _, v := range perm {
		seen[v] = true
	}
	assert.Len(t, seen, 10)
	for i := 0; i < 10; i++ {
		assert.True(t, seen[i])
	}
}

func TestWeightedChoice_AllWeightOnOneIndexAlwaysPicksIt(t *testing.T) {
	s := rng.New(55)
	weights := []float64{0, 0, 5, 0}
	for i := 0; i < 20; i++ {
		assert.Equal(t, 2, s.WeightedChoice(weights))
	}
}

func TestWeightedChoice_ZeroWeightsFallsBackToUniform(t *testing.T) {
	s := rng.New(3)
	idx := s.WeightedChoice([]float64{0, 0, 0})
	assert.GreaterOrEqual(t, idx, 0)
	assert.Less(t, idx, 3)
}

func TestBool_AlwaysTrueAtProbabilityOne(t *testing.T) {
	s := rng.New(10)
	for i := 0; i < 20; i++ {
		assert.True(t, s.Bool(1.0))
	}
}

func TestBool_AlwaysFalseAtProbabilityZero(t *testing.T) {
	s := rng.New(10)
	for i := 0; i < 20; i++ {
		assert.False(t, s.Bool(0.0))
	}
}
