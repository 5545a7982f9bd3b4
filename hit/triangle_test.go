package hit_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"pathtracer/core"
	"pathtracer/hit"
	rmath "pathtracer/math"
)

func quadTriangles(mat hit.MaterialHandle) (hit.Triangle, hit.Triangle) {
	v00 := rmath.Vec3{X: -1, Y: -1, Z: -1}
	v10 := rmath.Vec3{X: 1, Y: -1, Z: -1}
	v11 := rmath.Vec3{X: 1, Y: 1, Z: -1}
	v01 := rmath.Vec3{X: -1, Y: 1, Z: -1}
	uv := rmath.Vec2{}
	t1 := hit.NewFlatTriangle(v00, v10, v11, uv, uv, uv, mat)
	t2 := hit.NewFlatTriangle(v00, v11, v01, uv, uv, uv, mat)
	return t1, t2
}

func TestTriangleHitThroughCenter(t *testing.T) {
	mat := hit.MaterialHandle{Kind: hit.MaterialLambertian, Index: 3}
	tri1, tri2 := quadTriangles(mat)

	ray := core.NewRay(rmath.Vec3{}, rmath.Vec3{X: 0, Y: 0, Z: -1})
	rayT := core.Interval{Min: 0.001, Max: float32(math.Inf(1))}

	var rec hit.Record
	hit1 := tri1.Hit(ray, rayT, &rec)
	hit2 := tri2.Hit(ray, rayT, &rec)

	assert.True(t, hit1 || hit2)
	assert.Equal(t, mat, rec.Mat)
	assert.InDelta(t, 1.0, rec.T, 1e-5)
}

func TestTriangleMissOutsideSimplex(t *testing.T) {
	mat := hit.MaterialHandle{}
	tri := hit.NewFlatTriangle(
		rmath.Vec3{X: 0, Y: 0, Z: -1},
		rmath.Vec3{X: 1, Y: 0, Z: -1},
		rmath.Vec3{X: 0, Y: 1, Z: -1},
		rmath.Vec2{}, rmath.Vec2{}, rmath.Vec2{},
		mat,
	)
	ray := core.NewRay(rmath.Vec3{X: 10, Y: 10, Z: 0}, rmath.Vec3{X: 0, Y: 0, Z: -1})

	var rec hit.Record
	ok := tri.Hit(ray, core.Interval{Min: 0, Max: float32(math.Inf(1))}, &rec)
	assert.False(t, ok)
}

func TestTriangleParallelRayIsMissNotNaN(t *testing.T) {
	mat := hit.MaterialHandle{}
	tri := hit.NewFlatTriangle(
		rmath.Vec3{X: -1, Y: 0, Z: -1},
		rmath.Vec3{X: 1, Y: 0, Z: -1},
		rmath.Vec3{X: 0, Y: 1, Z: -1},
		rmath.Vec2{}, rmath.Vec2{}, rmath.Vec2{},
		mat,
	)
	ray := core.NewRay(rmath.Vec3{X: 0, Y: 0, Z: 0}, rmath.Vec3{X: 1, Y: 0, Z: 0})

	var rec hit.Record
	ok := tri.Hit(ray, core.Interval{Min: 0, Max: float32(math.Inf(1))}, &rec)
	assert.False(t, ok)
	assert.False(t, math.IsNaN(float64(rec.T)))
}
