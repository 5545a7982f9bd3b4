package bvh

import (
	"math"

	"pathtracer/core"
	"pathtracer/hit"
)

// Hittable is a Primitive that can also be intersected directly, which is
// everything the traversal needs from a scene's spheres and triangles.
type Hittable interface {
	Primitive
	Hit(r core.Ray, rayT core.Interval, rec *hit.Record) bool
}

// Intersect walks the tree with a fixed-depth explicit stack (no recursion),
// descending into the nearer child first and using the closest hit found so
// far to prune subtrees whose AABB lies beyond it.
func (t Tree) Intersect(prims []Hittable, ray core.Ray, rayT core.Interval, rec *hit.Record) bool {
	if len(t.Nodes) == 0 {
		return false
	}

	var stack [maxDepth]uint32
	stackPtr := 0
	nodeIdx := uint32(0)
	closestSoFar := rayT.Max
	hitAnything := false

	for {
		node := t.Nodes[nodeIdx]
		if node.IsLeaf() {
			for i := uint32(0); i < node.PrimCount; i++ {
				id := t.PrimIDs[node.LeftFirst+i]
				if prims[id].Hit(ray, core.Interval{Min: rayT.Min, Max: closestSoFar}, rec) {
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

		child1 := t.Nodes[node.LeftFirst].Bounds()
		child2 := t.Nodes[node.LeftFirst+1].Bounds()
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

	return hitAnything
}
