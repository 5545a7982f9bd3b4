package core

import (
	"math"
	"math/rand"

	rmath "pathtracer/math"
)

// RNG is the random source used by the CPU backend. The backend creates one
// per image row, seeded independently, so goroutines never contend on a
// shared generator.
type RNG struct {
	r *rand.Rand
}

// NewRNG seeds a generator. The CPU backend derives seed from the render
// seed plus the row index, so runs stay reproducible.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

// Float32 returns a uniform value in [0, 1).
func (g *RNG) Float32() float32 {
	return g.r.Float32()
}

// Range returns a uniform value in [min, max).
func (g *RNG) Range(min, max float32) float32 {
	return min + (max-min)*g.Float32()
}

// UnitVector returns a uniformly distributed point on the unit sphere,
// built by rejection sampling a point inside the unit cube.
func (g *RNG) UnitVector() rmath.Vec3 {
	for {
		p := rmath.Vec3{
			X: g.Range(-1, 1),
			Y: g.Range(-1, 1),
			Z: g.Range(-1, 1),
		}
		lenSqr := p.LengthSqr()
		if lenSqr <= 1e-40 || lenSqr > 1 {
			continue
		}
		return p.Mul(1.0 / float32(math.Sqrt(float64(lenSqr))))
	}
}

// HemisphereVector returns a unit vector distributed on the sphere, flipped
// into the hemisphere around normal if necessary.
func (g *RNG) HemisphereVector(normal rmath.Vec3) rmath.Vec3 {
	v := g.UnitVector()
	if v.Dot(normal) > 0 {
		return v
	}
	return v.Negate()
}

// UnitDisk returns a uniformly distributed point in the unit disk on the
// XY plane (Z is always zero), used for defocus-blur lens sampling.
func (g *RNG) UnitDisk() rmath.Vec3 {
	for {
		p := rmath.Vec3{X: g.Range(-1, 1), Y: g.Range(-1, 1)}
		if p.LengthSqr() < 1 {
			return p
		}
	}
}

// WangHash advances a GPU-style scalar seed through five rounds of
// bit-mixing. It has no relation to RNG: the GPU backend must reproduce
// this exact sequence so CPU and GPU renders stay statistically
// comparable, not a general-purpose generator of convenience.
func WangHash(seed uint32) uint32 {
	seed ^= 61 ^ (seed >> 16)
	seed *= 9
	seed ^= seed >> 4
	seed *= 0x27d4eb2d
	seed ^= seed >> 15
	return seed
}

// GPURand is the stateful wrapper the GPU parity shim uses in place of RNG,
// producing the same Wang-hash-derived stream a compute shader would.
type GPURand struct {
	state uint32
}

// NewGPURand seeds a Wang-hash stream from a pixel/sample-derived value.
func NewGPURand(seed uint32) *GPURand {
	return &GPURand{state: WangHash(seed)}
}

// Float32 advances the stream one round and returns a value in [0, 1).
func (g *GPURand) Float32() float32 {
	g.state = WangHash(g.state)
	return float32(g.state>>8) / (1 << 24)
}

// Range returns a uniform value in [min, max).
func (g *GPURand) Range(min, max float32) float32 {
	return min + (max-min)*g.Float32()
}

// UnitVector mirrors RNG.UnitVector using the Wang-hash stream.
func (g *GPURand) UnitVector() rmath.Vec3 {
	for {
		p := rmath.Vec3{
			X: g.Range(-1, 1),
			Y: g.Range(-1, 1),
			Z: g.Range(-1, 1),
		}
		lenSqr := p.LengthSqr()
		if lenSqr <= 1e-40 || lenSqr > 1 {
			continue
		}
		return p.Mul(1.0 / float32(math.Sqrt(float64(lenSqr))))
	}
}

// HemisphereVector mirrors RNG.HemisphereVector using the Wang-hash stream.
func (g *GPURand) HemisphereVector(normal rmath.Vec3) rmath.Vec3 {
	v := g.UnitVector()
	if v.Dot(normal) > 0 {
		return v
	}
	return v.Negate()
}

// UnitDisk mirrors RNG.UnitDisk using the Wang-hash stream.
func (g *GPURand) UnitDisk() rmath.Vec3 {
	for {
		p := rmath.Vec3{X: g.Range(-1, 1), Y: g.Range(-1, 1)}
		if p.LengthSqr() < 1 {
			return p
		}
	}
}
