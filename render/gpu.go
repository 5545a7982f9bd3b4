package render

import (
	"math"
	"sync"

	"pathtracer/bvh"
	"pathtracer/core"
	"pathtracer/hit"
	"pathtracer/material"
	rmath "pathtracer/math"
)

// workGroupSize is the compute-shader dispatch granularity the reference
// renderer uses; the parity shim tiles the image the same way so a real
// Vulkan back-end could replace this file without changing anything else.
const workGroupSize = 8

// GPUBuffers is the flattened, device-buffer-shaped view of a scene: what a
// real compute kernel would bind as storage buffers. Building this from a
// Scene is the part of C10 this shim actually exercises; evaluating it
// below stands in for the kernel itself.
type GPUBuffers struct {
	Nodes       []byte // bvh.Flatten output
	Spheres     []hit.GPUSphere
	Triangles   []hit.GPUTriangle
	Lambertians []material.Lambertian
	Metals      []material.Metal
	Dielectrics []material.Dielectric
	TriIDs      []uint32 // tree.PrimIDs, renamed to match the wire contract
	PrimKinds   []uint32 // per logical primitive: 0 = sphere, 1 = triangle
	PrimIndices []uint32 // per logical primitive: index into Spheres/Triangles
}

// BuildGPUBuffers flattens scene into the device-visible layout described
// in spec §4.10/§6.
func BuildGPUBuffers(scene *Scene) GPUBuffers {
	buf := GPUBuffers{
		Nodes:       bvh.Flatten(scene.Tree.Nodes),
		TriIDs:      scene.Tree.PrimIDs,
		Lambertians: scene.Materials.Lambertians,
		Metals:      scene.Materials.Metals,
		Dielectrics: scene.Materials.Dielectrics,
		PrimKinds:   make([]uint32, len(scene.Primitives)),
		PrimIndices: make([]uint32, len(scene.Primitives)),
	}
	for i, p := range scene.Primitives {
		switch prim := p.(type) {
		case hit.Sphere:
			buf.PrimKinds[i] = 0
			buf.PrimIndices[i] = uint32(len(buf.Spheres))
			buf.Spheres = append(buf.Spheres, prim.ToGPU())
		case hit.Triangle:
			buf.PrimKinds[i] = 1
			buf.PrimIndices[i] = uint32(len(buf.Triangles))
			buf.Triangles = append(buf.Triangles, prim.ToGPU())
		}
	}
	return buf
}

// GPUBackend evaluates the same BVH-traversal-plus-path-tracing kernel as
// CPUBackend, but against the flattened buffers a compute shader would
// bind, using only the Wang-hash PRNG and dispatching in 8x8 work-groups.
// It never opens a real Vulkan device — it is the software parity shim
// described in the render package comment (render/backend.go).
type GPUBackend struct{}

// NewGPUBackend constructs the GPU-parity backend.
func NewGPUBackend() *GPUBackend {
	return &GPUBackend{}
}

// Render implements Backend.
func (b *GPUBackend) Render(scene *Scene, settings Settings) *Image {
	width := int(scene.Camera.ImageWidth)
	height := int(scene.Camera.ImageHeight)
	img := NewImage(width, height)
	buffers := BuildGPUBuffers(scene)

	groupsX := (width + workGroupSize - 1) / workGroupSize
	groupsY := (height + workGroupSize - 1) / workGroupSize

	type group struct{ gx, gy int }
	groups := make(chan group, groupsX*groupsY)
	var wg sync.WaitGroup
	workers := groupsX * groupsY
	if workers > 64 {
		workers = 64
	}
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			seed := baseSeed(settings.Seed)
			for gr := range groups {
				dispatchWorkGroup(scene.Camera, &buffers, settings, img, gr.gx, gr.gy, width, height, seed)
			}
		}()
	}
	for gy := 0; gy < groupsY; gy++ {
		for gx := 0; gx < groupsX; gx++ {
			groups <- group{gx, gy}
		}
	}
	close(groups)
	wg.Wait()

	return img
}

// baseSeed mixes Settings.Seed into a per-pixel seed offset so Seed 0 (the
// zero value) still perturbs the stream, while a byte-identical Seed always
// reproduces the same image.
func baseSeed(seed int64) uint32 {
	return uint32(uint64(seed)*0x9E3779B97F4A7C15) + 1
}

func dispatchWorkGroup(cam interface {
	GetRay(i, j int, rng interface {
		Float32() float32
		UnitDisk() rmath.Vec3
	}) core.Ray
}, buffers *GPUBuffers, settings Settings, img *Image, gx, gy, width, height int, seed uint32) {
	for ly := 0; ly < workGroupSize; ly++ {
		y := gy*workGroupSize + ly
		if y >= height {
			continue
		}
		for lx := 0; lx < workGroupSize; lx++ {
			x := gx*workGroupSize + lx
			if x >= width {
				continue
			}

			pixelSeed := (uint32(y*width+x)+seed)*9781 + 1
			sum := rmath.Vec3{}
			for s := 0; s < settings.SamplesPerPixel; s++ {
				rng := core.NewGPURand(pixelSeed ^ uint32(s)*2654435761)
				ray := cam.GetRay(x, y, rng)
				sum = sum.Add(gpuRayColor(buffers, ray, settings.MaxDepth, rng))
			}
			r, g, bch := toneMap(sum, settings.SamplesPerPixel)
			off := (y*width + x) * 3
			img.Pixels[off] = r
			img.Pixels[off+1] = g
			img.Pixels[off+2] = bch
		}
	}
}

// gpuRayColor mirrors integrator.RayColor exactly, but reads geometry and
// materials from the flattened GPU buffers instead of the CPU's structured
// scene, and draws only from the Wang-hash stream.
func gpuRayColor(buffers *GPUBuffers, ray core.Ray, depth int, rng *core.GPURand) rmath.Vec3 {
	if depth <= 0 {
		return rmath.Vec3{}
	}

	rec, ok := gpuIntersectBVH(buffers, ray, core.Interval{Min: 0.001, Max: float32(math.Inf(1))})
	if !ok {
		return gpuSkyColor(ray)
	}

	scattered, attenuation, scatterOK := gpuScatter(buffers, ray, rec, rng)
	if !scatterOK {
		return rmath.Vec3{}
	}
	return attenuation.MulVec(gpuRayColor(buffers, scattered, depth-1, rng))
}

func gpuSkyColor(ray core.Ray) rmath.Vec3 {
	unitDirection := ray.Direction.Normalize()
	a := 0.5 * (unitDirection.Y + 1.0)
	white := rmath.Vec3{X: 1, Y: 1, Z: 1}
	horizon := rmath.Vec3{X: 0.5, Y: 0.7, Z: 1.0}
	return white.Mul(1 - a).Add(horizon.Mul(a))
}

func gpuScatter(buffers *GPUBuffers, rIn core.Ray, rec hit.Record, rng *core.GPURand) (core.Ray, rmath.Vec3, bool) {
	set := material.Set{Lambertians: buffers.Lambertians, Metals: buffers.Metals, Dielectrics: buffers.Dielectrics}
	return set.Scatter(rIn, rec, rng)
}
