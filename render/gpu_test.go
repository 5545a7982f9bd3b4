package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGPUBackendRendersCorrectDimensions(t *testing.T) {
	scene := emptySkyScene(10) // deliberately not a multiple of workGroupSize
	backend := NewGPUBackend()

	img := backend.Render(scene, Settings{SamplesPerPixel: 2, MaxDepth: 4})

	assert.Equal(t, 10, img.Width)
	assert.Equal(t, 10, img.Height)
	assert.Len(t, img.Pixels, 10*10*3)
}

func TestGPUBackendEmptySceneProducesNonBlackSky(t *testing.T) {
	scene := emptySkyScene(4)
	backend := NewGPUBackend()

	img := backend.Render(scene, Settings{SamplesPerPixel: 4, MaxDepth: 4})

	for i := 0; i < len(img.Pixels); i += 3 {
		sum := int(img.Pixels[i]) + int(img.Pixels[i+1]) + int(img.Pixels[i+2])
		assert.Greater(t, sum, 0, "sky-only scene should never render pure black")
	}
}

func TestBuildGPUBuffersEmptySceneHasNoPrimitives(t *testing.T) {
	scene := emptySkyScene(4)
	buffers := BuildGPUBuffers(scene)

	assert.Empty(t, buffers.Spheres)
	assert.Empty(t, buffers.Triangles)
	assert.Equal(t, scene.Tree.PrimIDs, buffers.TriIDs)
}
