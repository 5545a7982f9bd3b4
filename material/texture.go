// Package material implements the Lambertian, Metal, and Dielectric
// surface models, each kept as its own flat array of parameters and
// addressed through a hit.MaterialHandle — the same (kind, index) shape
// the GPU buffers use, so CPU and GPU backends resolve a hit identically.
package material

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	rmath "pathtracer/math"
)

// Texture samples a color given surface UV coordinates.
type Texture interface {
	Sample(u, v float32) rmath.Vec3
}

// SolidTexture is a constant-color texture.
type SolidTexture struct {
	Albedo rmath.Vec3
}

// NewSolidTexture wraps a single RGB color as a Texture.
func NewSolidTexture(albedo rmath.Vec3) SolidTexture {
	return SolidTexture{Albedo: albedo}
}

// Sample ignores u, v and always returns Albedo.
func (t SolidTexture) Sample(u, v float32) rmath.Vec3 {
	return t.Albedo
}

// ImageTexture samples a decoded PNG/JPEG with nearest-pixel lookup and UVs
// clamped to [0, 1] (no wrapping), bypassing gamma correction exactly like the reference renderer
// (image files are assumed already linear-ish for path tracing purposes).
type ImageTexture struct {
	Width, Height int
	Pixels        []byte // RGBA8, row-major, top-to-bottom
}

// LoadImageTexture reads a PNG or JPEG file from disk and converts it to
// RGBA8 for sampling.
func LoadImageTexture(path string) (*ImageTexture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", path, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	rgba := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rgba.Set(x, y, img.At(x, y))
		}
	}

	return &ImageTexture{Width: w, Height: h, Pixels: rgba.Pix}, nil
}

// Sample clamps u, v into [0, 1], flips v (image rows run top-down, texture
// v runs bottom-up), and returns the nearest pixel as a linear 0..1 color.
func (t *ImageTexture) Sample(u, v float32) rmath.Vec3 {
	if t == nil || t.Width == 0 || t.Height == 0 {
		return rmath.Vec3{}
	}
	u = clamp01(u)
	v = 1.0 - clamp01(v)

	x := int(u * float32(t.Width))
	y := int(v * float32(t.Height))
	if x >= t.Width {
		x = t.Width - 1
	}
	if y >= t.Height {
		y = t.Height - 1
	}

	i := (y*t.Width + x) * 4
	const inv255 = 1.0 / 255.0
	return rmath.Vec3{
		X: float32(t.Pixels[i]) * inv255,
		Y: float32(t.Pixels[i+1]) * inv255,
		Z: float32(t.Pixels[i+2]) * inv255,
	}
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
