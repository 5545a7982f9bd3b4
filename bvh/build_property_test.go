package bvh_test

import (
	"testing"

	"pgregory.net/rapid"

	"pathtracer/bvh"
	"pathtracer/hit"
	rmath "pathtracer/math"
)

// TestBuildInvariantsHoldForArbitraryScenes generates random sphere scenes
// and checks the structural invariants the builder must always preserve:
// every primitive lands in exactly one leaf, every leaf's primitives lie
// within the leaf's own bounds, and depth never exceeds the hard ceiling.
func TestBuildInvariantsHoldForArbitraryScenes(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 64).Draw(rt, "n")
		prims := make([]bvh.Primitive, n)
		hittables := make([]bvh.Hittable, n)
		for i := 0; i < n; i++ {
			center := rmath.Vec3{
				X: float32(rapid.Float64Range(-100, 100).Draw(rt, "x")),
				Y: float32(rapid.Float64Range(-100, 100).Draw(rt, "y")),
				Z: float32(rapid.Float64Range(-100, 100).Draw(rt, "z")),
			}
			radius := float32(rapid.Float64Range(0.01, 5).Draw(rt, "r"))
			s := hit.NewSphere(center, radius, hit.MaterialHandle{})
			prims[i] = s
			hittables[i] = s
		}

		tree := bvh.Build(prims)

		if tree.Depth > 64 {
			rt.Fatalf("tree depth %d exceeds maximum of 64", tree.Depth)
		}

		seen := make(map[uint32]bool)
		for _, node := range tree.Nodes {
			if !node.IsLeaf() {
				continue
			}
			nodeBounds := node.Bounds()
			for i := uint32(0); i < node.PrimCount; i++ {
				id := tree.PrimIDs[node.LeftFirst+i]
				if seen[id] {
					rt.Fatalf("primitive %d appears in more than one leaf", id)
				}
				seen[id] = true

				primBounds := prims[id].Bounds()
				const eps = 1e-3
				if primBounds.Min.X < nodeBounds.Min.X-eps || primBounds.Max.X > nodeBounds.Max.X+eps ||
					primBounds.Min.Y < nodeBounds.Min.Y-eps || primBounds.Max.Y > nodeBounds.Max.Y+eps ||
					primBounds.Min.Z < nodeBounds.Min.Z-eps || primBounds.Max.Z > nodeBounds.Max.Z+eps {
					rt.Fatalf("primitive %d bounds not contained in its leaf's bounds", id)
				}
			}
		}

		if len(seen) != n {
			rt.Fatalf("expected %d primitives referenced, got %d", n, len(seen))
		}
	})
}

// TestBuildIsDeterministic rebuilds the same scene twice and requires a
// byte-identical node array and primitive-id permutation, since the CPU and
// GPU backends both depend on a single deterministic flattening of a tree.
func TestBuildIsDeterministic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 32).Draw(rt, "n")
		centers := make([]rmath.Vec3, n)
		for i := range centers {
			centers[i] = rmath.Vec3{
				X: float32(rapid.Float64Range(-50, 50).Draw(rt, "x")),
				Y: float32(rapid.Float64Range(-50, 50).Draw(rt, "y")),
				Z: float32(rapid.Float64Range(-50, 50).Draw(rt, "z")),
			}
		}

		build := func() bvh.Tree {
			prims := make([]bvh.Primitive, n)
			for i, c := range centers {
				prims[i] = hit.NewSphere(c, 1, hit.MaterialHandle{})
			}
			return bvh.Build(prims)
		}

		a, b := build(), build()
		if len(a.Nodes) != len(b.Nodes) {
			rt.Fatalf("node count differs: %d vs %d", len(a.Nodes), len(b.Nodes))
		}
		for i := range a.Nodes {
			if a.Nodes[i] != b.Nodes[i] {
				rt.Fatalf("node %d differs between builds", i)
			}
		}
		for i := range a.PrimIDs {
			if a.PrimIDs[i] != b.PrimIDs[i] {
				rt.Fatalf("primID %d differs between builds", i)
			}
		}
	})
}
