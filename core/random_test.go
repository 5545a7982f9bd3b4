package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pathtracer/core"
)

func TestRNGUnitVectorIsUnitLength(t *testing.T) {
	rng := core.NewRNG(42)
	for i := 0; i < 100; i++ {
		v := rng.UnitVector()
		assert.InDelta(t, 1.0, v.Length(), 1e-4)
	}
}

func TestRNGUnitDiskWithinRadius(t *testing.T) {
	rng := core.NewRNG(7)
	for i := 0; i < 100; i++ {
		p := rng.UnitDisk()
		assert.Less(t, p.LengthSqr(), float32(1))
		assert.Zero(t, p.Z)
	}
}

func TestWangHashIsDeterministic(t *testing.T) {
	assert.Equal(t, core.WangHash(1), core.WangHash(1))
	assert.NotEqual(t, core.WangHash(1), core.WangHash(2))
}

func TestGPURandFloat32InUnitRange(t *testing.T) {
	rng := core.NewGPURand(12345)
	for i := 0; i < 100; i++ {
		f := rng.Float32()
		assert.GreaterOrEqual(t, f, float32(0))
		assert.Less(t, f, float32(1))
	}
}
