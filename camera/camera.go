// Package camera builds the pinhole/thin-lens camera basis and generates
// jittered, optionally defocused primary rays for each pixel sample.
package camera

import (
	"math"

	"pathtracer/core"
	rmath "pathtracer/math"
)

// Camera holds the viewport basis derived once from its construction
// parameters; GetRay reads it on every sample without recomputing anything.
type Camera struct {
	ImageWidth  uint32
	ImageHeight uint32

	center       rmath.Vec3
	pixel00Loc   rmath.Vec3
	pixelDeltaU  rmath.Vec3
	pixelDeltaV  rmath.Vec3
	u, v, w      rmath.Vec3
	defocusAngle float32
	defocusDiskU rmath.Vec3
	defocusDiskV rmath.Vec3
}

// Config is the set of parameters a scene file supplies to place and shape
// the camera, mirroring the reference renderer's initialize_camera inputs.
type Config struct {
	ImageWidth      uint32
	AspectRatio     float32
	VFovDegrees     float32
	LookFrom        rmath.Vec3
	LookAt          rmath.Vec3
	Up              rmath.Vec3
	DefocusAngle    float32
	FocusDist       float32
}

// New derives the camera basis and viewport geometry from cfg.
func New(cfg Config) *Camera {
	imageHeight := uint32(float32(cfg.ImageWidth) / cfg.AspectRatio)
	if imageHeight < 1 {
		imageHeight = 1
	}

	theta := degreesToRadians(cfg.VFovDegrees)
	h := float32(math.Tan(float64(theta / 2)))
	viewportHeight := 2 * h * cfg.FocusDist
	viewportWidth := viewportHeight * (float32(cfg.ImageWidth) / float32(imageHeight))

	w := cfg.LookFrom.Sub(cfg.LookAt).Normalize()
	u := cfg.Up.Cross(w).Normalize()
	v := w.Cross(u)

	viewportU := u.Mul(viewportWidth)
	viewportV := v.Negate().Mul(viewportHeight)

	pixelDeltaU := viewportU.Div(float32(cfg.ImageWidth))
	pixelDeltaV := viewportV.Div(float32(imageHeight))

	viewportUpperLeft := cfg.LookFrom.
		Sub(w.Mul(cfg.FocusDist)).
		Sub(viewportU.Div(2)).
		Sub(viewportV.Div(2))
	pixel00Loc := viewportUpperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Mul(0.5))

	defocusRadius := cfg.FocusDist * float32(math.Tan(float64(degreesToRadians(cfg.DefocusAngle/2))))

	return &Camera{
		ImageWidth:   cfg.ImageWidth,
		ImageHeight:  imageHeight,
		center:       cfg.LookFrom,
		pixel00Loc:   pixel00Loc,
		pixelDeltaU:  pixelDeltaU,
		pixelDeltaV:  pixelDeltaV,
		u:            u,
		v:            v,
		w:            w,
		defocusAngle: cfg.DefocusAngle,
		defocusDiskU: u.Mul(defocusRadius),
		defocusDiskV: v.Mul(defocusRadius),
	}
}

// GetRay builds a ray from the defocus disk (or the camera center, if
// defocus is disabled) through a randomly jittered point within pixel i, j.
func (c *Camera) GetRay(i, j int, rng interface {
	Float32() float32
	UnitDisk() rmath.Vec3
}) core.Ray {
	offsetX := rng.Float32() - 0.5
	offsetY := rng.Float32() - 0.5

	pixelSample := c.pixel00Loc.
		Add(c.pixelDeltaU.Mul(float32(i) + offsetX)).
		Add(c.pixelDeltaV.Mul(float32(j) + offsetY))

	var rayOrigin rmath.Vec3
	if c.defocusAngle <= 0 {
		rayOrigin = c.center
	} else {
		p := rng.UnitDisk()
		rayOrigin = c.center.Add(c.defocusDiskU.Mul(p.X)).Add(c.defocusDiskV.Mul(p.Y))
	}

	rayDirection := pixelSample.Sub(rayOrigin)
	return core.NewRay(rayOrigin, rayDirection)
}

func degreesToRadians(deg float32) float32 {
	return deg * math.Pi / 180
}
