// Package core holds the primitive-agnostic building blocks of the
// path-tracing engine: rays, intervals, axis-aligned bounding boxes, and
// the random number sources of both backends.
package core

import rmath "pathtracer/math"

// Ray is a parametric line: origin + t*direction. InvDirection is cached
// componentwise so AABB slab tests never divide inside the traversal loop.
type Ray struct {
	Origin       rmath.Vec3
	Direction    rmath.Vec3
	InvDirection rmath.Vec3
}

// NewRay builds a Ray and precomputes its inverse direction. Axis-aligned
// rays (a zero direction component) deliberately produce ±Inf, which the
// AABB slab test in Intersect handles correctly.
func NewRay(origin, direction rmath.Vec3) Ray {
	return Ray{
		Origin:    origin,
		Direction: direction,
		InvDirection: rmath.Vec3{
			X: 1.0 / direction.X,
			Y: 1.0 / direction.Y,
			Z: 1.0 / direction.Z,
		},
	}
}

// At evaluates the ray at parameter t.
func (r Ray) At(t float32) rmath.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}
