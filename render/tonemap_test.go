package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	rmath "pathtracer/math"
)

func TestClampBoundsValue(t *testing.T) {
	assert.Equal(t, float32(0), clamp(-1, 0, 1))
	assert.Equal(t, float32(1), clamp(2, 0, 1))
	assert.Equal(t, float32(0.5), clamp(0.5, 0, 1))
}

func TestGammaByteOfZeroIsZero(t *testing.T) {
	assert.Equal(t, byte(0), gammaByte(0))
}

func TestGammaByteOfOneIsNearMax(t *testing.T) {
	// sqrt(1) = 1, clamped to 0.999, * 256 floors to 255.
	assert.Equal(t, byte(255), gammaByte(1))
}

func TestGammaByteNegativeClampsToZero(t *testing.T) {
	assert.Equal(t, byte(0), gammaByte(-5))
}

func TestToneMapAveragesAcrossSamples(t *testing.T) {
	sum := rmath.Vec3{X: 2, Y: 2, Z: 2} // two full-white samples
	r, g, b := toneMap(sum, 2)

	assert.Equal(t, byte(255), r)
	assert.Equal(t, byte(255), g)
	assert.Equal(t, byte(255), b)
}

func TestToneMapOfBlackIsBlack(t *testing.T) {
	r, g, b := toneMap(rmath.Vec3{}, 4)
	assert.Equal(t, byte(0), r)
	assert.Equal(t, byte(0), g)
	assert.Equal(t, byte(0), b)
}
