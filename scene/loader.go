// Package scene loads a declarative scene description (camera, materials,
// spheres, triangles) from JSON, builds the primitive and material arrays,
// and constructs the BVH over them — matching the teacher's scene/camera
// loading conventions, retargeted to the path-tracing domain.
package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"pathtracer/bvh"
	"pathtracer/camera"
	"pathtracer/hit"
	"pathtracer/material"
	rmath "pathtracer/math"
)

// File is the top-level JSON scene description, matching spec §6.
type File struct {
	Camera    CameraData     `json:"camera"`
	Materials []MaterialData `json:"materials"`
	Spheres   []SphereData   `json:"spheres"`
	Vertices  []VertexData   `json:"vertices"`
	Triangles []TriangleData `json:"triangles"`
}

// CameraData mirrors spec §6's camera block.
type CameraData struct {
	Center          [3]float32 `json:"center"`
	LookAt          [3]float32 `json:"lookat"`
	Vup             [3]float32 `json:"vup"`
	DefocusAngle    float32    `json:"defocus_angle"`
	FocusDist       float32    `json:"focus_dist"`
	ScreenWidth     uint32     `json:"screen_width"`
	AspectRatio     float32    `json:"aspect_ratio"`
	SamplesPerPixel int        `json:"samples_per_pixel"`
	MaxDepth        int        `json:"max_depth"`
	VfovDeg         float32    `json:"vfov_deg"`
}

// Material type_id values, per spec §6.
const (
	MaterialTypeLambert    = 1
	MaterialTypeMetal      = 2
	MaterialTypeDielectric = 4
)

// MaterialData is a tagged union over the three material kinds. Albedo may
// hold either an RGB triple or (when AlbedoTexture is set) be ignored in
// favor of an image texture path.
type MaterialData struct {
	TypeID        int        `json:"type_id"`
	Albedo        [3]float32 `json:"albedo,omitempty"`
	AlbedoTexture string     `json:"albedo_texture,omitempty"`
	Fuzz          float32    `json:"fuzz,omitempty"`
	IOR           float32    `json:"ior,omitempty"`
}

// SphereData is one entry of spec §6's spheres[] array.
type SphereData struct {
	MaterialIndex int        `json:"material_index"`
	Radius        float32    `json:"radius"`
	Center        [3]float32 `json:"center"`
}

// VertexData is one entry of spec §6's vertices[] array. Normal is optional;
// when absent the triangle constructor falls back to the geometric normal.
type VertexData struct {
	Position [3]float32 `json:"position"`
	Texcoord [2]float32 `json:"texcoord"`
	Normal   *[3]float32 `json:"normal,omitempty"`
}

// TriangleData is one entry of spec §6's triangles[] array, indexing into
// Vertices.
type TriangleData struct {
	MaterialIndex int    `json:"material_index"`
	Indices       [3]int `json:"indices"`
}

// Load reads and parses a scene file from path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %q: %w", path, err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse scene %q: %w", path, err)
	}
	return &f, nil
}

// Built is a fully assembled scene: a camera, a BVH-accelerated primitive
// set, and the materials they reference — everything render.Scene needs.
type Built struct {
	Camera     *camera.Camera
	Tree       bvh.Tree
	Primitives []bvh.Hittable
	Materials  *material.Set
}

// Build converts a parsed File into render-ready data: resolves material
// handles, constructs spheres and triangles, and builds the BVH over the
// combined primitive set.
func Build(f *File) (*Built, error) {
	materials := &material.Set{}
	handles := make([]hit.MaterialHandle, len(f.Materials))
	for i, m := range f.Materials {
		handle, err := buildMaterial(materials, m)
		if err != nil {
			return nil, fmt.Errorf("material %d: %w", i, err)
		}
		handles[i] = handle
	}

	hittables := make([]bvh.Hittable, 0, len(f.Spheres)+len(f.Triangles))
	primitives := make([]bvh.Primitive, 0, cap(hittables))

	for i, s := range f.Spheres {
		if s.MaterialIndex < 0 || s.MaterialIndex >= len(handles) {
			return nil, fmt.Errorf("sphere %d: material_index %d out of range", i, s.MaterialIndex)
		}
		sphere := hit.NewSphere(toVec3(s.Center), s.Radius, handles[s.MaterialIndex])
		hittables = append(hittables, sphere)
		primitives = append(primitives, sphere)
	}

	for i, t := range f.Triangles {
		if t.MaterialIndex < 0 || t.MaterialIndex >= len(handles) {
			return nil, fmt.Errorf("triangle %d: material_index %d out of range", i, t.MaterialIndex)
		}
		tri, err := buildTriangle(f, t, handles[t.MaterialIndex])
		if err != nil {
			return nil, fmt.Errorf("triangle %d: %w", i, err)
		}
		hittables = append(hittables, tri)
		primitives = append(primitives, tri)
	}

	tree := bvh.Build(primitives)

	cam := camera.New(camera.Config{
		ImageWidth:   f.Camera.ScreenWidth,
		AspectRatio:  f.Camera.AspectRatio,
		VFovDegrees:  f.Camera.VfovDeg,
		LookFrom:     toVec3(f.Camera.Center),
		LookAt:       toVec3(f.Camera.LookAt),
		Up:           toVec3(f.Camera.Vup),
		DefocusAngle: f.Camera.DefocusAngle,
		FocusDist:    f.Camera.FocusDist,
	})

	return &Built{Camera: cam, Tree: tree, Primitives: hittables, Materials: materials}, nil
}

func buildMaterial(materials *material.Set, m MaterialData) (hit.MaterialHandle, error) {
	switch m.TypeID {
	case MaterialTypeLambert:
		tex, err := buildTexture(m)
		if err != nil {
			return hit.MaterialHandle{}, err
		}
		return materials.AddLambertian(material.Lambertian{Albedo: tex}), nil
	case MaterialTypeMetal:
		return materials.AddMetal(material.NewMetal(toVec3(m.Albedo), m.Fuzz)), nil
	case MaterialTypeDielectric:
		return materials.AddDielectric(material.Dielectric{RefractionIndex: m.IOR}), nil
	default:
		return hit.MaterialHandle{}, fmt.Errorf("unknown material type_id %d", m.TypeID)
	}
}

func buildTexture(m MaterialData) (material.Texture, error) {
	if m.AlbedoTexture != "" {
		img, err := material.LoadImageTexture(m.AlbedoTexture)
		if err != nil {
			return nil, err
		}
		return img, nil
	}
	return material.NewSolidTexture(toVec3(m.Albedo)), nil
}

func buildTriangle(f *File, t TriangleData, mat hit.MaterialHandle) (hit.Triangle, error) {
	for _, idx := range t.Indices {
		if idx < 0 || idx >= len(f.Vertices) {
			return hit.Triangle{}, fmt.Errorf("vertex index %d out of range", idx)
		}
	}
	v0, v1, v2 := f.Vertices[t.Indices[0]], f.Vertices[t.Indices[1]], f.Vertices[t.Indices[2]]
	uv0 := rmath.Vec2{X: v0.Texcoord[0], Y: v0.Texcoord[1]}
	uv1 := rmath.Vec2{X: v1.Texcoord[0], Y: v1.Texcoord[1]}
	uv2 := rmath.Vec2{X: v2.Texcoord[0], Y: v2.Texcoord[1]}

	if v0.Normal == nil || v1.Normal == nil || v2.Normal == nil {
		return hit.NewFlatTriangle(toVec3(v0.Position), toVec3(v1.Position), toVec3(v2.Position), uv0, uv1, uv2, mat), nil
	}
	return hit.Triangle{
		V0: toVec3(v0.Position), V1: toVec3(v1.Position), V2: toVec3(v2.Position),
		N0: toVec3(*v0.Normal), N1: toVec3(*v1.Normal), N2: toVec3(*v2.Normal),
		UV0: uv0, UV1: uv1, UV2: uv2,
		Mat: mat,
	}, nil
}

func toVec3(a [3]float32) rmath.Vec3 {
	return rmath.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
