package hit

import (
	"pathtracer/core"
	rmath "pathtracer/math"
)

const triangleEpsilon = 1.1920929e-7 // float32 machine epsilon

// Triangle is a single triangle with independent per-vertex normals and UVs,
// so both flat-shaded and smooth (imported mesh) geometry share one type.
// UVs are rmath.Vec2 (X = u, Y = v): texture coordinates are just a 2D
// vector, so triangle UV arithmetic reuses the shared Vec2 type rather than
// inventing a parallel one.
type Triangle struct {
	V0, V1, V2    rmath.Vec3
	N0, N1, N2    rmath.Vec3
	UV0, UV1, UV2 rmath.Vec2
	Mat           MaterialHandle
}

// NewFlatTriangle builds a triangle whose three vertex normals are all the
// geometric face normal.
func NewFlatTriangle(v0, v1, v2 rmath.Vec3, uv0, uv1, uv2 rmath.Vec2, mat MaterialHandle) Triangle {
	n := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
	return Triangle{
		V0: v0, V1: v1, V2: v2,
		N0: n, N1: n, N2: n,
		UV0: uv0, UV1: uv1, UV2: uv2,
		Mat: mat,
	}
}

// Hit runs the Möller–Trumbore intersection test. The reported normal is
// always the flat geometric normal, per the reference renderer: per-vertex
// normals are carried for shading consumers that want interpolation, but
// face orientation is decided geometrically.
func (tri Triangle) Hit(r core.Ray, rayT core.Interval, rec *Record) bool {
	edge1 := tri.V1.Sub(tri.V0)
	edge2 := tri.V2.Sub(tri.V0)
	h := r.Direction.Cross(edge2)
	a := edge1.Dot(h)

	if a > -triangleEpsilon && a < triangleEpsilon {
		return false // ray parallel to triangle
	}

	f := 1.0 / a
	s := r.Origin.Sub(tri.V0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return false
	}

	q := s.Cross(edge1)
	v := f * r.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return false
	}

	t := f * edge2.Dot(q)
	if t < triangleEpsilon || !rayT.Contains(t) {
		return false
	}

	rec.T = t
	rec.P = r.At(t)
	rec.U = u
	rec.V = v

	geomNormal := edge1.Cross(edge2).Normalize()
	rec.SetFaceNormal(r.Direction, geomNormal)
	rec.Mat = tri.Mat
	return true
}

// Bounds returns the triangle's world-space AABB.
func (tri Triangle) Bounds() core.AABB {
	b := core.EmptyAABB()
	b.GrowPoint(tri.V0)
	b.GrowPoint(tri.V1)
	b.GrowPoint(tri.V2)
	return b
}

// Centroid returns the average of the three vertices, used by SAH BVH
// construction to bucket primitives along a split axis.
func (tri Triangle) Centroid() rmath.Vec3 {
	return tri.V0.Add(tri.V1).Add(tri.V2).Mul(1.0 / 3.0)
}

// GPUTriangle is the padded, 16-byte-aligned layout matching the parity
// shim's storage buffer, mirroring the reference engine's TriangleGPU.
type GPUTriangle struct {
	V0           rmath.Vec3
	_pad0        float32
	V1           rmath.Vec3
	_pad1        float32
	V2           rmath.Vec3
	_pad2        float32
	N0           rmath.Vec3
	_pad3        float32
	N1           rmath.Vec3
	_pad4        float32
	N2           rmath.Vec3
	_pad5        float32
	UV0, UV1     rmath.Vec2
	UV2          rmath.Vec2
	MaterialIdx  uint32
	MaterialKind uint32
}

// ToGPU converts a Triangle into its flattened, padded GPU representation.
func (tri Triangle) ToGPU() GPUTriangle {
	return GPUTriangle{
		V0: tri.V0, V1: tri.V1, V2: tri.V2,
		N0: tri.N0, N1: tri.N1, N2: tri.N2,
		UV0: tri.UV0, UV1: tri.UV1, UV2: tri.UV2,
		MaterialIdx:  tri.Mat.Index,
		MaterialKind: uint32(tri.Mat.Kind),
	}
}
