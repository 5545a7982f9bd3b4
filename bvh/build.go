package bvh

import (
	"math"

	"pathtracer/core"
	rmath "pathtracer/math"
)

// Primitive is anything the builder can bound and bucket: hit.Sphere and
// hit.Triangle both satisfy this, so one tree can index both kinds. The
// builder itself needs only bounds and centroids, not the hit package.
type Primitive interface {
	Bounds() core.AABB
	Centroid() rmath.Vec3
}

// maxDepth is the hard ceiling on recursion depth; the builder asserts
// against it rather than silently producing a pathological tree.
const maxDepth = 64

// Tree is a built BVH: a flat node array plus the permutation of primitive
// indices the leaves reference. Primitives themselves are never reordered —
// PrimIDs is the only thing the build permutes.
type Tree struct {
	Nodes   []Node
	PrimIDs []uint32
	Depth   uint32
}

// Build runs SAH binary BVH construction over prims, in the exact manner
// of the reference renderer: recursive binned-free SAH split search over
// candidate positions drawn from primitive centroids, in-place partition of
// PrimIDs, and a parent-cost-vs-best-cost stopping rule.
func Build(prims []Primitive) Tree {
	n := len(prims)
	if n == 0 {
		return Tree{}
	}

	primIDs := make([]uint32, n)
	for i := range primIDs {
		primIDs[i] = uint32(i)
	}
	centroids := make([]rmath.Vec3, n)
	for i, p := range prims {
		centroids[i] = p.Centroid()
	}

	nodes := make([]Node, 2*n-1)
	nodesUsed := uint32(1)

	nodes[0].LeftFirst = 0
	nodes[0].PrimCount = uint32(n)
	updateNodeBounds(nodes, prims, primIDs, 0)

	depth := uint32(1)
	subdivide(nodes, prims, primIDs, centroids, 0, &nodesUsed, 1, &depth)

	if depth > maxDepth {
		panic("bvh: tree depth exceeds maximum of 64")
	}

	return Tree{Nodes: nodes[:nodesUsed], PrimIDs: primIDs, Depth: depth}
}

func updateNodeBounds(nodes []Node, prims []Primitive, primIDs []uint32, nodeIdx uint32) {
	node := &nodes[nodeIdx]
	b := core.EmptyAABB()
	for i := uint32(0); i < node.PrimCount; i++ {
		leafID := primIDs[node.LeftFirst+i]
		b.Grow(prims[leafID].Bounds())
	}
	node.AABBMin = b.Min
	node.AABBMax = b.Max
}

// evaluateSAH computes the cost of splitting node's primitive range at pos
// along axis: count(side) * half_area(side), summed over both sides.
func evaluateSAH(node Node, prims []Primitive, primIDs []uint32, centroids []rmath.Vec3, axis int, pos float32) float32 {
	leftBox, rightBox := core.EmptyAABB(), core.EmptyAABB()
	leftCount, rightCount := 0, 0
	for i := uint32(0); i < node.PrimCount; i++ {
		id := primIDs[node.LeftFirst+i]
		if centroids[id].Axis(axis) < pos {
			leftCount++
			leftBox.Grow(prims[id].Bounds())
		} else {
			rightCount++
			rightBox.Grow(prims[id].Bounds())
		}
	}
	cost := float32(leftCount)*leftBox.HalfArea() + float32(rightCount)*rightBox.HalfArea()
	if cost > 0 {
		return cost
	}
	return float32(math.Inf(1))
}

func subdivide(nodes []Node, prims []Primitive, primIDs []uint32, centroids []rmath.Vec3, nodeIdx uint32, nodesUsed *uint32, currentDepth uint32, maxSeenDepth *uint32) {
	if currentDepth > *maxSeenDepth {
		*maxSeenDepth = currentDepth
	}
	node := nodes[nodeIdx]

	bestAxis := -1
	var bestPos float32
	bestCost := float32(math.Inf(1))
	for axis := 0; axis < 3; axis++ {
		for i := uint32(0); i < node.PrimCount-1; i++ {
			candidatePos := centroids[primIDs[node.LeftFirst+i]].Axis(axis)
			cost := evaluateSAH(node, prims, primIDs, centroids, axis, candidatePos)
			if cost < bestCost {
				bestPos, bestAxis, bestCost = candidatePos, axis, cost
			}
		}
	}
	if bestAxis == -1 {
		return
	}

	e := node.AABBMax.Sub(node.AABBMin)
	parentArea := e.X*e.Y + e.Y*e.Z + e.Z*e.X
	parentCost := float32(node.PrimCount) * parentArea
	if bestCost >= parentCost {
		return
	}

	i := int(node.LeftFirst)
	j := i + int(node.PrimCount) - 1
	for i <= j {
		if centroids[primIDs[i]].Axis(bestAxis) < bestPos {
			i++
		} else {
			primIDs[i], primIDs[j] = primIDs[j], primIDs[i]
			j--
		}
	}

	leftCount := uint32(i) - node.LeftFirst
	if leftCount == 0 || leftCount == node.PrimCount {
		return
	}

	leftIdx := *nodesUsed
	rightIdx := *nodesUsed + 1
	*nodesUsed += 2

	nodes[leftIdx].LeftFirst = node.LeftFirst
	nodes[leftIdx].PrimCount = leftCount
	nodes[rightIdx].LeftFirst = uint32(i)
	nodes[rightIdx].PrimCount = node.PrimCount - leftCount

	nodes[nodeIdx].LeftFirst = leftIdx
	nodes[nodeIdx].PrimCount = 0

	updateNodeBounds(nodes, prims, primIDs, leftIdx)
	updateNodeBounds(nodes, prims, primIDs, rightIdx)

	subdivide(nodes, prims, primIDs, centroids, leftIdx, nodesUsed, currentDepth+1, maxSeenDepth)
	subdivide(nodes, prims, primIDs, centroids, rightIdx, nodesUsed, currentDepth+1, maxSeenDepth)
}
