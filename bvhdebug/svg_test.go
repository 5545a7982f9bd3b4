package bvhdebug_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"pathtracer/bvh"
	"pathtracer/bvhdebug"
	"pathtracer/hit"
	rmath "pathtracer/math"
)

func TestDumpWritesOneRectPerNode(t *testing.T) {
	prims := []bvh.Primitive{
		hit.NewSphere(rmath.Vec3{X: -5, Y: 0, Z: -5}, 1, hit.MaterialHandle{}),
		hit.NewSphere(rmath.Vec3{X: 5, Y: 0, Z: 5}, 1, hit.MaterialHandle{}),
	}
	tree := bvh.Build(prims)

	var buf bytes.Buffer
	bvhdebug.Dump(&buf, tree, bvhdebug.Options{
		Width: 200, Height: 200,
		WorldMinX: -6, WorldMinZ: -6,
		WorldMaxX: 6, WorldMaxZ: 6,
	})

	out := buf.String()
	assert.True(t, strings.Contains(out, "<svg"))
	assert.Equal(t, len(tree.Nodes), strings.Count(out, "<rect")-1) // -1 for the white background rect
}

func TestDumpDegenerateWorldExtentDoesNotPanic(t *testing.T) {
	prims := []bvh.Primitive{hit.NewSphere(rmath.Vec3{}, 1, hit.MaterialHandle{})}
	tree := bvh.Build(prims)

	var buf bytes.Buffer
	assert.NotPanics(t, func() {
		bvhdebug.Dump(&buf, tree, bvhdebug.Options{Width: 10, Height: 10})
	})
}
