package render

import (
	"runtime"
	"sync"

	"pathtracer/core"
	"pathtracer/integrator"
	rmath "pathtracer/math"
)

// CPUBackend renders by handing out row tiles to a pool of worker
// goroutines. Which worker processes a given row is scheduling-dependent,
// but each row's RNG stream is seeded from Settings.Seed and the row's own
// index rather than from the worker — so which goroutine happens to pick up
// a row never changes that row's pixels, and the same Settings.Seed always
// reproduces the same image (spec's CPU determinism contract).
type CPUBackend struct{}

// NewCPUBackend constructs the CPU backend.
func NewCPUBackend() *CPUBackend {
	return &CPUBackend{}
}

// Render implements Backend.
func (b *CPUBackend) Render(scene *Scene, settings Settings) *Image {
	width := int(scene.Camera.ImageWidth)
	height := int(scene.Camera.ImageHeight)
	img := NewImage(width, height)

	integratorScene := &integrator.Scene{
		Tree:       scene.Tree,
		Primitives: scene.Primitives,
		Materials:  scene.Materials,
	}

	workers := settings.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	tileSize := settings.TileSize
	if tileSize <= 0 {
		tileSize = 1
	}

	type rowTile struct{ yStart, yEnd int }
	tiles := make(chan rowTile, (height+tileSize-1)/tileSize)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for t := range tiles {
				for y := t.yStart; y < t.yEnd; y++ {
					renderRow(scene, integratorScene, settings, img, y)
				}
			}
		}()
	}

	for y := 0; y < height; y += tileSize {
		yEnd := y + tileSize
		if yEnd > height {
			yEnd = height
		}
		tiles <- rowTile{yStart: y, yEnd: yEnd}
	}
	close(tiles)
	wg.Wait()

	return img
}

func renderRow(scene *Scene, integratorScene *integrator.Scene, settings Settings, img *Image, y int) {
	width := int(scene.Camera.ImageWidth)
	rng := core.NewRNG(int64(uint64(settings.Seed)*0x9E3779B97F4A7C15) + int64(y) + 1)
	for x := 0; x < width; x++ {
		sum := rmath.Vec3{}
		for s := 0; s < settings.SamplesPerPixel; s++ {
			ray := scene.Camera.GetRay(x, y, rng)
			sum = sum.Add(integrator.RayColor(integratorScene, ray, settings.MaxDepth, rng))
		}
		r, g, bch := toneMap(sum, settings.SamplesPerPixel)
		off := (y*width + x) * 3
		img.Pixels[off] = r
		img.Pixels[off+1] = g
		img.Pixels[off+2] = bch
	}
}
