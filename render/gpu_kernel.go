package render

import (
	"math"

	"pathtracer/bvh"
	"pathtracer/core"
	"pathtracer/hit"
)

// gpuIntersectBVH is the compute-kernel-side twin of bvh.Tree.Intersect: it
// walks the same stack-based traversal, but reads node bounds straight out
// of the flattened byte buffer and resolves leaf primitives through the
// (kind, index) arrays instead of a structured Hittable slice.
func gpuIntersectBVH(buffers *GPUBuffers, ray core.Ray, rayT core.Interval) (hit.Record, bool) {
	var rec hit.Record
	if len(buffers.Nodes) == 0 {
		return rec, false
	}

	var stack [64]uint32
	stackPtr := 0
	nodeIdx := uint32(0)
	closestSoFar := rayT.Max
	hitAnything := false

	for {
		node := bvh.NodeAt(buffers.Nodes, int(nodeIdx))
		if node.IsLeaf() {
			for i := uint32(0); i < node.PrimCount; i++ {
				primID := buffers.TriIDs[node.LeftFirst+i]
				kind := buffers.PrimKinds[primID]
				index := buffers.PrimIndices[primID]
				if gpuHitPrimitive(buffers, kind, index, ray, core.Interval{Min: rayT.Min, Max: closestSoFar}, &rec) {
					hitAnything = true
					closestSoFar = rec.T
				}
			}
			if stackPtr == 0 {
				break
			}
			stackPtr--
			nodeIdx = stack[stackPtr]
			continue
		}

		child1 := bvh.NodeAt(buffers.Nodes, int(node.LeftFirst)).Bounds()
		child2 := bvh.NodeAt(buffers.Nodes, int(node.LeftFirst)+1).Bounds()
		idx1, idx2 := node.LeftFirst, node.LeftFirst+1

		dist1 := child1.Intersect(ray, closestSoFar)
		dist2 := child2.Intersect(ray, closestSoFar)
		if dist1 > dist2 {
			dist1, dist2 = dist2, dist1
			idx1, idx2 = idx2, idx1
		}

		if math.IsInf(float64(dist1), 1) {
			if stackPtr == 0 {
				break
			}
			stackPtr--
			nodeIdx = stack[stackPtr]
		} else {
			nodeIdx = idx1
			if !math.IsInf(float64(dist2), 1) {
				stack[stackPtr] = idx2
				stackPtr++
			}
		}
	}

	return rec, hitAnything
}

func gpuHitPrimitive(buffers *GPUBuffers, kind, index uint32, ray core.Ray, rayT core.Interval, rec *hit.Record) bool {
	if kind == 0 {
		return gpuHitSphere(buffers.Spheres[index], ray, rayT, rec)
	}
	return gpuHitTriangle(buffers.Triangles[index], ray, rayT, rec)
}

func gpuHitSphere(s hit.GPUSphere, r core.Ray, rayT core.Interval, rec *hit.Record) bool {
	oc := s.Origin.Sub(r.Origin)
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
	rec.P = r.At(root)
	outwardNormal := rec.P.Sub(s.Origin).Div(s.Radius)
	rec.SetFaceNormal(r.Direction, outwardNormal)
	rec.Mat = hit.MaterialHandle{Kind: hit.MaterialKind(s.MaterialKind), Index: s.MaterialIdx}
	return true
}

const gpuTriangleEpsilon = 1.1920929e-7

func gpuHitTriangle(tri hit.GPUTriangle, r core.Ray, rayT core.Interval, rec *hit.Record) bool {
	edge1 := tri.V1.Sub(tri.V0)
	edge2 := tri.V2.Sub(tri.V0)
	h := r.Direction.Cross(edge2)
	a := edge1.Dot(h)

	if a > -gpuTriangleEpsilon && a < gpuTriangleEpsilon {
		return false
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
	if t < gpuTriangleEpsilon || !rayT.Contains(t) {
		return false
	}

	rec.T = t
	rec.P = r.At(t)
	rec.U = u
	rec.V = v

	geomNormal := edge1.Cross(edge2).Normalize()
	rec.SetFaceNormal(r.Direction, geomNormal)
	rec.Mat = hit.MaterialHandle{Kind: hit.MaterialKind(tri.MaterialKind), Index: tri.MaterialIdx}
	return true
}
