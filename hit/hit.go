// Package hit defines the intersectable primitives — spheres and
// triangles — and the record their intersection routines fill in.
package hit

import (
	rmath "pathtracer/math"
)

// MaterialKind tags which material array a MaterialHandle indexes into.
type MaterialKind uint32

const (
	MaterialLambertian MaterialKind = iota
	MaterialMetal
	MaterialDielectric
)

// MaterialHandle is a tagged index into one of the per-kind material
// arrays, mirroring the GPU-side (type, index) pair so CPU and GPU paths
// resolve a hit's material identically.
type MaterialHandle struct {
	Kind  MaterialKind
	Index uint32
}

// Record carries everything a material scatter function and shading step
// need about a ray-primitive intersection.
type Record struct {
	P         rmath.Vec3
	Normal    rmath.Vec3
	T         float32
	U, V      float32
	FrontFace bool
	Mat       MaterialHandle
}

// SetFaceNormal orients Normal to face against the incoming ray direction
// and records which side of the surface was struck. outwardNormal must
// already be unit length.
func (rec *Record) SetFaceNormal(rayDirection, outwardNormal rmath.Vec3) {
	rec.FrontFace = rayDirection.Dot(outwardNormal) < 0
	if rec.FrontFace {
		rec.Normal = outwardNormal
	} else {
		rec.Normal = outwardNormal.Negate()
	}
}
