// Package render drives a built scene through a backend — CPU (a worker
// pool over math/rand) or GPU (a software parity shim over the flattened
// buffer layouts, evaluated with the Wang-hash PRNG) — and produces a
// tone-mapped, gamma-corrected RGB image.
package render

import (
	"pathtracer/bvh"
	"pathtracer/camera"
	"pathtracer/material"
)

// Scene bundles everything a backend needs to render a frame.
type Scene struct {
	Camera     *camera.Camera
	Tree       bvh.Tree
	Primitives []bvh.Hittable
	Materials  *material.Set
}

// Settings controls sampling quality and dispatch, independent of scene
// content. Seed makes a render reproducible: both backends derive their
// per-pixel (or per-row) RNG stream from Seed plus the pixel's own
// position, never from which goroutine happens to process it, so the same
// Seed always produces the same output regardless of scheduling.
type Settings struct {
	SamplesPerPixel int
	MaxDepth        int
	Seed            int64

	// TileSize is the number of image rows handed to a worker at a time on
	// the CPU backend (<= 0 defaults to 1). Workers is the CPU worker-pool
	// size (<= 0 defaults to runtime.GOMAXPROCS(0)). Neither affects output,
	// only how work is scheduled across goroutines.
	TileSize int
	Workers  int
}

// Backend produces a rendered image for scene under settings. CPU and GPU
// backends are expected to agree statistically, not bit-for-bit: both draw
// from the same BSDFs and the same BVH, differing only in their PRNG and
// dispatch strategy.
type Backend interface {
	Render(scene *Scene, settings Settings) *Image
}

// Image is a linear-then-tonemapped RGB8 framebuffer, row-major, top to
// bottom.
type Image struct {
	Width, Height int
	Pixels        []byte // RGB8, 3 bytes per pixel
}

// NewImage allocates a zeroed framebuffer.
func NewImage(width, height int) *Image {
	return &Image{Width: width, Height: height, Pixels: make([]byte, width*height*3)}
}
