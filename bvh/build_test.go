package bvh_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pathtracer/bvh"
	"pathtracer/core"
	"pathtracer/hit"
	rmath "pathtracer/math"
)

func scatteredSpheres(n int) []bvh.Hittable {
	prims := make([]bvh.Hittable, n)
	for i := 0; i < n; i++ {
		center := rmath.Vec3{X: float32(i) * 3, Y: float32(i % 3), Z: float32(-i)}
		prims[i] = hit.NewSphere(center, 0.5, hit.MaterialHandle{})
	}
	return prims
}

func toPrimitives(h []bvh.Hittable) []bvh.Primitive {
	out := make([]bvh.Primitive, len(h))
	for i, p := range h {
		out[i] = p
	}
	return out
}

func TestBuildEveryPrimitiveInExactlyOneLeaf(t *testing.T) {
	prims := scatteredSpheres(17)
	tree := bvh.Build(toPrimitives(prims))

	seen := make(map[uint32]int)
	for _, node := range tree.Nodes {
		if !node.IsLeaf() {
			continue
		}
		for i := uint32(0); i < node.PrimCount; i++ {
			seen[tree.PrimIDs[node.LeftFirst+i]]++
		}
	}

	assert.Len(t, seen, len(prims))
	for id, count := range seen {
		assert.Equalf(t, 1, count, "primitive %d referenced %d times", id, count)
	}
}

func TestBuildRootBoundsContainAllPrimitives(t *testing.T) {
	prims := scatteredSpheres(9)
	tree := bvh.Build(toPrimitives(prims))

	root := tree.Nodes[0].Bounds()
	for _, p := range prims {
		b := p.(hit.Sphere).Bounds()
		assert.GreaterOrEqual(t, b.Min.X, root.Min.X-1e-4)
		assert.GreaterOrEqual(t, b.Min.Y, root.Min.Y-1e-4)
		assert.GreaterOrEqual(t, b.Min.Z, root.Min.Z-1e-4)
		assert.LessOrEqual(t, b.Max.X, root.Max.X+1e-4)
		assert.LessOrEqual(t, b.Max.Y, root.Max.Y+1e-4)
		assert.LessOrEqual(t, b.Max.Z, root.Max.Z+1e-4)
	}
}

func TestBuildNodeZeroIsRoot(t *testing.T) {
	prims := scatteredSpheres(5)
	tree := bvh.Build(toPrimitives(prims))
	assert.Equal(t, uint32(5), nodePrimCountOrDescendants(tree))
}

// nodePrimCountOrDescendants walks the tree from node 0 and sums the
// primitive counts of every leaf reachable from it.
func nodePrimCountOrDescendants(tree bvh.Tree) uint32 {
	var count func(idx uint32) uint32
	count = func(idx uint32) uint32 {
		node := tree.Nodes[idx]
		if node.IsLeaf() {
			return node.PrimCount
		}
		return count(node.LeftFirst) + count(node.LeftFirst+1)
	}
	return count(0)
}

func TestBuildEmptySceneYieldsEmptyTree(t *testing.T) {
	tree := bvh.Build(nil)
	assert.Empty(t, tree.Nodes)
	assert.Empty(t, tree.PrimIDs)
}

func TestBuildSinglePrimitiveIsOneLeaf(t *testing.T) {
	prims := scatteredSpheres(1)
	tree := bvh.Build(toPrimitives(prims))

	assert.Len(t, tree.Nodes, 1)
	assert.True(t, tree.Nodes[0].IsLeaf())
	assert.Equal(t, uint32(1), tree.Nodes[0].PrimCount)
}

func TestBuildDepthNeverExceedsMaximum(t *testing.T) {
	prims := scatteredSpheres(200)
	tree := bvh.Build(toPrimitives(prims))
	assert.LessOrEqual(t, tree.Depth, uint32(64))
}

func TestFlattenAndNodeAtRoundTrip(t *testing.T) {
	prims := scatteredSpheres(6)
	tree := bvh.Build(toPrimitives(prims))

	buf := bvh.Flatten(tree.Nodes)
	assert.Len(t, buf, len(tree.Nodes)*32)

	for i, want := range tree.Nodes {
		got := bvh.NodeAt(buf, i)
		assert.Equal(t, want, got)
	}
}

func TestTreeIntersectAgreesWithBruteForce(t *testing.T) {
	prims := scatteredSpheres(12)
	tree := bvh.Build(toPrimitives(prims))

	ray := core.NewRay(rmath.Vec3{X: 0, Y: 0, Z: 10}, rmath.Vec3{X: 1, Y: 0, Z: -1}.Normalize())
	rayT := core.Interval{Min: 0.001, Max: 1e9}

	var bvhRec hit.Record
	bvhHit := tree.Intersect(prims, ray, rayT, &bvhRec)

	var bruteRec hit.Record
	bruteHit := false
	closest := rayT.Max
	for _, p := range prims {
		var rec hit.Record
		if p.Hit(ray, core.Interval{Min: rayT.Min, Max: closest}, &rec) {
			bruteHit = true
			closest = rec.T
			bruteRec = rec
		}
	}

	assert.Equal(t, bruteHit, bvhHit)
	if bruteHit {
		assert.InDelta(t, bruteRec.T, bvhRec.T, 1e-4)
	}
}
