package material

import (
	"math"

	"pathtracer/core"
	"pathtracer/hit"
	rmath "pathtracer/math"
)

// Lambertian is a diffuse material: it scatters toward a direction chosen
// by cosine-weighted hemisphere sampling around the hit normal.
type Lambertian struct {
	Albedo Texture
}

// Metal is a reflective material with a fuzz radius; fuzz is clamped to
// [0, 1] at construction, matching the reference renderer.
type Metal struct {
	Albedo rmath.Vec3
	Fuzz   float32
}

// NewMetal clamps fuzz into [0, 1].
func NewMetal(albedo rmath.Vec3, fuzz float32) Metal {
	if fuzz > 1 {
		fuzz = 1
	}
	if fuzz < 0 {
		fuzz = 0
	}
	return Metal{Albedo: albedo, Fuzz: fuzz}
}

// Dielectric is a transparent material (glass, water) with a refractive
// index, evaluated via Snell's law with Schlick-approximated reflectance.
type Dielectric struct {
	RefractionIndex float32
}

// Set holds every material the scene uses, bucketed by kind so a
// hit.MaterialHandle is a direct (kind, index) lookup — no interface
// dispatch, and the same layout the GPU parity shim flattens into buffers.
type Set struct {
	Lambertians []Lambertian
	Metals      []Metal
	Dielectrics []Dielectric
}

// AddLambertian appends a Lambertian and returns its handle.
func (s *Set) AddLambertian(m Lambertian) hit.MaterialHandle {
	idx := uint32(len(s.Lambertians))
	s.Lambertians = append(s.Lambertians, m)
	return hit.MaterialHandle{Kind: hit.MaterialLambertian, Index: idx}
}

// AddMetal appends a Metal and returns its handle.
func (s *Set) AddMetal(m Metal) hit.MaterialHandle {
	idx := uint32(len(s.Metals))
	s.Metals = append(s.Metals, m)
	return hit.MaterialHandle{Kind: hit.MaterialMetal, Index: idx}
}

// AddDielectric appends a Dielectric and returns its handle.
func (s *Set) AddDielectric(m Dielectric) hit.MaterialHandle {
	idx := uint32(len(s.Dielectrics))
	s.Dielectrics = append(s.Dielectrics, m)
	return hit.MaterialHandle{Kind: hit.MaterialDielectric, Index: idx}
}

// Scatter resolves rec.Mat against the set and evaluates the corresponding
// BSDF. It reports the outgoing ray, its attenuation, and whether the ray
// continues (false means absorbed, e.g. a grazing Metal reflection).
func (s *Set) Scatter(rIn core.Ray, rec hit.Record, rng RandomSource) (scattered core.Ray, attenuation rmath.Vec3, ok bool) {
	switch rec.Mat.Kind {
	case hit.MaterialLambertian:
		return s.Lambertians[rec.Mat.Index].scatter(rec, rng)
	case hit.MaterialMetal:
		return s.Metals[rec.Mat.Index].scatter(rIn, rec, rng)
	case hit.MaterialDielectric:
		return s.Dielectrics[rec.Mat.Index].scatter(rIn, rec, rng)
	default:
		return core.Ray{}, rmath.Vec3{}, false
	}
}

// RandomSource is the subset of core.RNG / core.GPURand that material
// scattering needs, letting the CPU and GPU-parity backends share this
// package without either depending on the other's PRNG concretely.
type RandomSource interface {
	UnitVector() rmath.Vec3
	Float32() float32
}

func (m Lambertian) scatter(rec hit.Record, rng RandomSource) (core.Ray, rmath.Vec3, bool) {
	direction := rec.Normal.Add(rng.UnitVector())
	if direction.NearZero() {
		direction = rec.Normal
	}
	attenuation := m.Albedo.Sample(rec.U, rec.V)
	return core.NewRay(rec.P, direction), attenuation, true
}

func (m Metal) scatter(rIn core.Ray, rec hit.Record, rng RandomSource) (core.Ray, rmath.Vec3, bool) {
	reflected := rIn.Direction.Reflect(rec.Normal)
	reflected = reflected.Normalize().Add(rng.UnitVector().Mul(m.Fuzz))
	scattered := core.NewRay(rec.P, reflected)
	ok := scattered.Direction.Dot(rec.Normal) > 0
	return scattered, m.Albedo, ok
}

func (m Dielectric) scatter(rIn core.Ray, rec hit.Record, rng RandomSource) (core.Ray, rmath.Vec3, bool) {
	attenuation := rmath.Vec3{X: 1, Y: 1, Z: 1}
	ri := m.RefractionIndex
	if rec.FrontFace {
		ri = 1.0 / m.RefractionIndex
	}

	unitDirection := rIn.Direction.Normalize()
	cosTheta := minf(unitDirection.Negate().Dot(rec.Normal), 1.0)
	sinTheta := float32(math.Sqrt(float64(1.0 - cosTheta*cosTheta)))

	cannotRefract := ri*sinTheta > 1.0
	var direction rmath.Vec3
	if cannotRefract || reflectance(cosTheta, ri) > rng.Float32() {
		direction = unitDirection.Reflect(rec.Normal)
	} else {
		direction = unitDirection.Refract(rec.Normal, ri)
	}

	return core.NewRay(rec.P, direction), attenuation, true
}

// reflectance is Schlick's approximation for the Fresnel reflectance of a
// dielectric interface.
func reflectance(cosine, refractionIndex float32) float32 {
	r0 := (1 - refractionIndex) / (1 + refractionIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*float32(math.Pow(float64(1-cosine), 5))
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
