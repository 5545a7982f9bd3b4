package material_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pathtracer/material"
	rmath "pathtracer/math"
)

func TestSolidTextureIgnoresUV(t *testing.T) {
	tex := material.NewSolidTexture(rmath.Vec3{X: 0.1, Y: 0.2, Z: 0.3})
	assert.Equal(t, rmath.Vec3{X: 0.1, Y: 0.2, Z: 0.3}, tex.Sample(0, 0))
	assert.Equal(t, rmath.Vec3{X: 0.1, Y: 0.2, Z: 0.3}, tex.Sample(0.9, 0.9))
}

func TestImageTextureNilSafeSample(t *testing.T) {
	var tex *material.ImageTexture
	assert.Equal(t, rmath.Vec3{}, tex.Sample(0.5, 0.5))
}

func TestImageTextureSamplesNearestPixelClamped(t *testing.T) {
	// A 2x1 RGBA8 image: red pixel at x=0, green pixel at x=1.
	tex := &material.ImageTexture{
		Width:  2,
		Height: 1,
		Pixels: []byte{
			255, 0, 0, 255,
			0, 255, 0, 255,
		},
	}

	red := tex.Sample(0, 0)
	assert.InDelta(t, 1.0, red.X, 1e-6)
	assert.InDelta(t, 0.0, red.Y, 1e-6)

	green := tex.Sample(0.9, 0)
	assert.InDelta(t, 0.0, green.X, 1e-6)
	assert.InDelta(t, 1.0, green.Y, 1e-6)

	// UVs outside [0, 1] clamp rather than panic.
	clamped := tex.Sample(5.0, -5.0)
	assert.InDelta(t, 0.0, clamped.X, 1e-6)
	assert.InDelta(t, 1.0, clamped.Y, 1e-6)
}
