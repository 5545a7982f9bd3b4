package core

import (
	"math"

	rmath "pathtracer/math"
)

// AABB is an axis-aligned bounding box. The zero value is not empty; use
// EmptyAABB to start an accumulation with Grow/GrowPoint.
type AABB struct {
	Min, Max rmath.Vec3
}

// EmptyAABB returns a box with no extent, ready to be grown.
func EmptyAABB() AABB {
	inf := float32(math.Inf(1))
	return AABB{
		Min: rmath.Vec3{X: inf, Y: inf, Z: inf},
		Max: rmath.Vec3{X: -inf, Y: -inf, Z: -inf},
	}
}

// GrowPoint extends the box, in place, to enclose p.
func (b *AABB) GrowPoint(p rmath.Vec3) {
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// Grow extends the box, in place, to enclose other.
func (b *AABB) Grow(other AABB) {
	b.Min = b.Min.Min(other.Min)
	b.Max = b.Max.Max(other.Max)
}

// HalfArea returns x*y + y*z + x*z of the box extents — half the surface
// area, which is all the SAH cost comparison ever needs.
func (b AABB) HalfArea() float32 {
	e := b.Max.Sub(b.Min)
	return e.X*e.Y + e.Y*e.Z + e.X*e.Z
}

// Intersect runs the slab test against ray, returning the ray parameter of
// the earliest entry point, or +Inf on a miss. tMax bounds how far along
// the ray a hit is allowed to be (typically the closest hit found so far).
func (b AABB) Intersect(ray Ray, tMax float32) float32 {
	tx1 := (b.Min.X - ray.Origin.X) * ray.InvDirection.X
	tx2 := (b.Max.X - ray.Origin.X) * ray.InvDirection.X
	tmin := minf(tx1, tx2)
	tmax := maxf(tx1, tx2)

	ty1 := (b.Min.Y - ray.Origin.Y) * ray.InvDirection.Y
	ty2 := (b.Max.Y - ray.Origin.Y) * ray.InvDirection.Y
	tmin = maxf(tmin, minf(ty1, ty2))
	tmax = minf(tmax, maxf(ty1, ty2))

	tz1 := (b.Min.Z - ray.Origin.Z) * ray.InvDirection.Z
	tz2 := (b.Max.Z - ray.Origin.Z) * ray.InvDirection.Z
	tmin = maxf(tmin, minf(tz1, tz2))
	tmax = minf(tmax, maxf(tz1, tz2))

	if tmax >= tmin && tmin < tMax && tmax > 0 {
		return tmin
	}
	return float32(math.Inf(1))
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
