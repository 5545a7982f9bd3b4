// Package bvhdebug renders a top-down (X/Z plane) SVG wireframe of a built
// BVH, one nested rectangle per node, for visually sanity-checking a build
// without a full path-traced render.
package bvhdebug

import (
	"io"

	svg "github.com/ajstarks/svgo"

	"pathtracer/bvh"
)

// Options controls how world-space coordinates map onto the SVG canvas.
type Options struct {
	Width, Height int
	// WorldMin/WorldMax bound the X/Z extent mapped onto the canvas.
	WorldMinX, WorldMinZ float32
	WorldMaxX, WorldMaxZ float32
}

// Dump writes an SVG wireframe of tree to w: one stroked rectangle per
// node's X/Z footprint, leaves filled lightly so dense leaf clusters stand
// out from interior splits.
func Dump(w io.Writer, tree bvh.Tree, opts Options) {
	canvas := svg.New(w)
	canvas.Start(opts.Width, opts.Height)
	defer canvas.End()

	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:white")

	spanX := opts.WorldMaxX - opts.WorldMinX
	spanZ := opts.WorldMaxZ - opts.WorldMinZ
	if spanX == 0 {
		spanX = 1
	}
	if spanZ == 0 {
		spanZ = 1
	}

	toPixel := func(x, z float32) (int, int) {
		px := int((x - opts.WorldMinX) / spanX * float32(opts.Width))
		py := int((z - opts.WorldMinZ) / spanZ * float32(opts.Height))
		return px, py
	}

	for _, node := range tree.Nodes {
		x0, y0 := toPixel(node.AABBMin.X, node.AABBMin.Z)
		x1, y1 := toPixel(node.AABBMax.X, node.AABBMax.Z)
		width, height := x1-x0, y1-y0
		if width < 0 {
			width = -width
		}
		if height < 0 {
			height = -height
		}

		style := "fill:none;stroke:#4444aa;stroke-width:1"
		if node.IsLeaf() {
			style = "fill:#ffcc0022;stroke:#aa6600;stroke-width:1"
		}
		canvas.Rect(minInt(x0, x1), minInt(y0, y1), width, height, style)
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
