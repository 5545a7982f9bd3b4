package scene

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"pathtracer/hit"
	rmath "pathtracer/math"
)

// LoadGLTFTriangles opens a .glb/.gltf file and flattens every mesh
// primitive's POSITION/NORMAL/TEXCOORD_0 accessors into world-space
// triangles, all assigned material mat. Node transforms are intentionally
// ignored: the path tracer's scene format has no notion of a transform
// hierarchy, so meshes must already be authored in world space (or a
// caller pre-transforms vertices before calling this for a non-identity
// placement).
func LoadGLTFTriangles(path string, mat hit.MaterialHandle) ([]hit.Triangle, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}

	var triangles []hit.Triangle
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			tris, err := loadGLTFPrimitiveTriangles(doc, *prim, mat)
			if err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
			}
			triangles = append(triangles, tris...)
		}
	}
	return triangles, nil
}

func loadGLTFPrimitiveTriangles(doc *gltf.Document, prim gltf.Primitive, mat hit.MaterialHandle) ([]hit.Triangle, error) {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	var uvs [][2]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		normals, _ = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
	}
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		uvs, _ = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	vertexAt := func(i uint32) rmath.Vec3 {
		p := positions[i]
		return rmath.Vec3{X: p[0], Y: p[1], Z: p[2]}
	}
	normalAt := func(i uint32) (rmath.Vec3, bool) {
		if int(i) >= len(normals) {
			return rmath.Vec3{}, false
		}
		n := normals[i]
		return rmath.Vec3{X: n[0], Y: n[1], Z: n[2]}, true
	}
	uvAt := func(i uint32) rmath.Vec2 {
		if int(i) >= len(uvs) {
			return rmath.Vec2{}
		}
		uv := uvs[i]
		return rmath.Vec2{X: uv[0], Y: uv[1]}
	}

	triangles := make([]hit.Triangle, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		ia, ib, ic := indices[i], indices[i+1], indices[i+2]
		v0, v1, v2 := vertexAt(ia), vertexAt(ib), vertexAt(ic)
		uv0, uv1, uv2 := uvAt(ia), uvAt(ib), uvAt(ic)

		n0, ok0 := normalAt(ia)
		n1, ok1 := normalAt(ib)
		n2, ok2 := normalAt(ic)
		if ok0 && ok1 && ok2 {
			triangles = append(triangles, hit.Triangle{
				V0: v0, V1: v1, V2: v2,
				N0: n0, N1: n1, N2: n2,
				UV0: uv0, UV1: uv1, UV2: uv2,
				Mat: mat,
			})
		} else {
			triangles = append(triangles, hit.NewFlatTriangle(v0, v1, v2, uv0, uv1, uv2, mat))
		}
	}
	return triangles, nil
}
