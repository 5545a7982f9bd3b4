package hit

import (
	"math"

	"pathtracer/core"
	rmath "pathtracer/math"
)

// Sphere is a stationary sphere primitive.
type Sphere struct {
	Center rmath.Vec3
	Radius float32
	Mat    MaterialHandle
}

// NewSphere clamps radius to non-negative, matching the reference renderer.
func NewSphere(center rmath.Vec3, radius float32, mat MaterialHandle) Sphere {
	if radius < 0 {
		radius = 0
	}
	return Sphere{Center: center, Radius: radius, Mat: mat}
}

// Hit solves the ray-sphere quadratic and reports the nearest root inside
// rayT, if any.
func (s Sphere) Hit(r core.Ray, rayT core.Interval, rec *Record) bool {
	oc := s.Center.Sub(r.Origin)
	a := r.Direction.LengthSqr()
	h := r.Direction.Dot(oc)
	c := oc.LengthSqr() - s.Radius*s.Radius

	discriminant := h*h - a*c
	if discriminant < 0 {
		return false
	}
	sqrtd := float32(math.Sqrt(float64(discriminant)))

	root := (h - sqrtd) / a
	if !rayT.Surrounds(root) {
		root = (h + sqrtd) / a
		if !rayT.Surrounds(root) {
			return false
		}
	}

	rec.T = root
	rec.P = r.At(rec.T)
	outwardNormal := rec.P.Sub(s.Center).Div(s.Radius)
	rec.SetFaceNormal(r.Direction, outwardNormal)
	rec.Mat = s.Mat
	return true
}

// Centroid returns the sphere's center, used by SAH BVH construction to
// bucket primitives along a split axis.
func (s Sphere) Centroid() rmath.Vec3 {
	return s.Center
}

// Bounds returns the sphere's world-space AABB.
func (s Sphere) Bounds() core.AABB {
	radiusVec := rmath.Vec3{X: s.Radius, Y: s.Radius, Z: s.Radius}
	return core.AABB{
		Min: s.Center.Sub(radiusVec),
		Max: s.Center.Add(radiusVec),
	}
}

// GPUSphere is the flattened, GPU-buffer-compatible view of a Sphere: a
// 16-byte-aligned layout matching the parity shim's storage buffer.
type GPUSphere struct {
	Origin       rmath.Vec3
	Radius       float32
	MaterialIdx  uint32
	MaterialKind uint32
	_            [2]uint32 // padding to 32 bytes
}

// ToGPU converts a Sphere into its flattened GPU representation.
func (s Sphere) ToGPU() GPUSphere {
	return GPUSphere{
		Origin:       s.Center,
		Radius:       s.Radius,
		MaterialIdx:  s.Mat.Index,
		MaterialKind: uint32(s.Mat.Kind),
	}
}
