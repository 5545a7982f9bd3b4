// Command pathtrace renders a JSON scene description to a PNG using either
// the CPU or the GPU-parity back-end.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"

	"pathtracer/bvhdebug"
	"pathtracer/render"
	"pathtracer/scene"
)

func main() {
	cpuFlag := flag.Bool("cpu", false, "render with the CPU back-end (overrides -config's backend)")
	gpuFlag := flag.Bool("gpu", false, "render with the GPU-parity back-end (overrides -config's backend)")
	scenePath := flag.String("scene", "", "path to the JSON scene description")
	outputPath := flag.String("out", "", "path to write the rendered PNG (overrides -config's output)")
	bvhSVGPath := flag.String("bvh-debug-svg", "", "optional path to dump a top-down BVH wireframe SVG (overrides -config's bvh_debug_svg)")
	configPath := flag.String("config", "", "optional path to a YAML render config (backend/tile_size/workers/seed/output/bvh_debug_svg)")
	flag.Parse()

	if *cpuFlag && *gpuFlag {
		fmt.Fprintln(os.Stderr, "only one of -cpu or -gpu may be passed")
		os.Exit(2)
	}
	if *scenePath == "" {
		fmt.Fprintln(os.Stderr, "-scene is required")
		os.Exit(2)
	}

	var cfg *scene.RenderConfig
	if *configPath != "" {
		loaded, err := scene.LoadRenderConfig(*configPath)
		if err != nil {
			log.Fatalf("pathtrace: %v", err)
		}
		cfg = loaded
	}

	useCPU, err := resolveBackend(cfg, *cpuFlag, *gpuFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	output := *outputPath
	if output == "" && cfg != nil {
		output = cfg.Output
	}
	if output == "" {
		output = "out.png"
	}

	bvhSVGOut := *bvhSVGPath
	if bvhSVGOut == "" && cfg != nil {
		bvhSVGOut = cfg.BVHDebugSVG
	}

	if err := run(useCPU, *scenePath, output, bvhSVGOut, cfg); err != nil {
		log.Fatalf("pathtrace: %v", err)
	}
}

// resolveBackend prefers an explicit -cpu/-gpu flag over cfg's backend
// field, and reports an error if neither source names one.
func resolveBackend(cfg *scene.RenderConfig, cpuFlag, gpuFlag bool) (bool, error) {
	switch {
	case cpuFlag:
		return true, nil
	case gpuFlag:
		return false, nil
	case cfg != nil:
		return cfg.Backend == "cpu", nil
	default:
		return false, fmt.Errorf("backend must be set via -cpu/-gpu or -config's backend field")
	}
}

func run(useCPU bool, scenePath, outputPath, bvhSVGPath string, cfg *scene.RenderConfig) error {
	sceneFile, err := scene.Load(scenePath)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}

	built, err := scene.Build(sceneFile)
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}
	log.Printf("bvh built: %d nodes, depth %d, %d primitives", len(built.Tree.Nodes), built.Tree.Depth, len(built.Primitives))

	if bvhSVGPath != "" {
		if err := dumpBVHDebugSVG(built, bvhSVGPath); err != nil {
			return fmt.Errorf("bvh debug svg: %w", err)
		}
	}

	renderScene := &render.Scene{
		Camera:     built.Camera,
		Tree:       built.Tree,
		Primitives: built.Primitives,
		Materials:  built.Materials,
	}
	settings := render.Settings{
		SamplesPerPixel: sceneFile.Camera.SamplesPerPixel,
		MaxDepth:        sceneFile.Camera.MaxDepth,
	}
	if cfg != nil {
		settings.Seed = cfg.Seed
		settings.TileSize = cfg.TileSize
		settings.Workers = cfg.Workers
	}

	var backend render.Backend
	if useCPU {
		backend = render.NewCPUBackend()
	} else {
		backend = render.NewGPUBackend()
	}

	log.Printf("rendering %dx%d, %d spp, depth %d", built.Camera.ImageWidth, built.Camera.ImageHeight, settings.SamplesPerPixel, settings.MaxDepth)
	img := backend.Render(renderScene, settings)

	if err := writePNG(img, outputPath); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	log.Printf("wrote %s", outputPath)
	return nil
}

func writePNG(img *render.Image, path string) error {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			off := (y*img.Width + x) * 3
			out.Set(x, y, color.RGBA{R: img.Pixels[off], G: img.Pixels[off+1], B: img.Pixels[off+2], A: 255})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, out)
}

func dumpBVHDebugSVG(built *scene.Built, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	minX, minZ := float32(0), float32(0)
	maxX, maxZ := float32(0), float32(0)
	if len(built.Tree.Nodes) > 0 {
		root := built.Tree.Nodes[0]
		minX, minZ = root.AABBMin.X, root.AABBMin.Z
		maxX, maxZ = root.AABBMax.X, root.AABBMax.Z
	}

	bvhdebug.Dump(f, built.Tree, bvhdebug.Options{
		Width: 800, Height: 800,
		WorldMinX: minX, WorldMinZ: minZ,
		WorldMaxX: maxX, WorldMaxZ: maxZ,
	})
	return nil
}
