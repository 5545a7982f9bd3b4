package render

import (
	"math"

	rmath "pathtracer/math"
)

// toneMap averages an accumulated radiance sum over sampleCount, applies
// sqrt gamma per channel, clamps to [0, 0.999], and quantizes to a byte —
// the one codepath both backends funnel through, so CPU and GPU output
// agree on tone mapping even when they disagree on sample noise.
func toneMap(sum rmath.Vec3, sampleCount int) (r, g, b byte) {
	scale := float32(1) / float32(sampleCount)
	return gammaByte(sum.X * scale), gammaByte(sum.Y * scale), gammaByte(sum.Z * scale)
}

func gammaByte(channel float32) byte {
	gamma := float32(math.Sqrt(float64(clamp(channel, 0, 1))))
	return byte(256 * clamp(gamma, 0, 0.999))
}

func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
