// Package integrator evaluates the Monte-Carlo light transport estimate for
// a single camera ray: recursive scatter-and-attenuate until the ray is
// absorbed, escapes to the sky, or the depth budget runs out.
package integrator

import (
	"math"

	"pathtracer/bvh"
	"pathtracer/core"
	"pathtracer/hit"
	"pathtracer/material"
	rmath "pathtracer/math"
)

// Scene is the subset of a built scene the integrator needs to trace a ray:
// the BVH, the primitives it indexes, and the materials they reference.
type Scene struct {
	Tree       bvh.Tree
	Primitives []bvh.Hittable
	Materials  *material.Set
}

// shadowEpsilon excludes intersections at t=0 so a scattered ray doesn't
// immediately re-hit the surface it left (shadow acne).
const shadowEpsilon = 0.001

// RayColor recursively evaluates the radiance arriving along ray, for up to
// maxDepth bounces. At depth zero (or below) the estimate is cut off to black,
// matching the reference renderer's Russian-roulette-free depth cap.
func RayColor(scene *Scene, ray core.Ray, depth int, rng material.RandomSource) rmath.Vec3 {
	if depth <= 0 {
		return rmath.Vec3{}
	}

	var rec hit.Record
	rayT := core.Interval{Min: shadowEpsilon, Max: float32(math.Inf(1))}
	if !scene.Tree.Intersect(scene.Primitives, ray, rayT, &rec) {
		return skyColor(ray)
	}

	scattered, attenuation, ok := scene.Materials.Scatter(ray, rec, rng)
	if !ok {
		return rmath.Vec3{}
	}
	return attenuation.MulVec(RayColor(scene, scattered, depth-1, rng))
}

// skyColor is the renderer's only light source: a vertical gradient from
// white straight down, through an even blend at the horizon, to pale blue
// straight up.
func skyColor(ray core.Ray) rmath.Vec3 {
	unitDirection := ray.Direction.Normalize()
	a := 0.5 * (unitDirection.Y + 1.0)
	white := rmath.Vec3{X: 1, Y: 1, Z: 1}
	zenith := rmath.Vec3{X: 0.5, Y: 0.7, Z: 1.0}
	return white.Mul(1 - a).Add(zenith.Mul(a))
}

