// Package bvh builds and traverses a binary bounding-volume hierarchy over
// a scene's primitives using the surface-area heuristic, matching the
// CPU/GPU-shared node layout of the reference renderer.
package bvh

import (
	"encoding/binary"
	"math"

	"pathtracer/core"
	rmath "pathtracer/math"
)

// Node is one BVH node: either an interior node (PrimCount == 0, LeftFirst
// is the index of its first of two consecutive children) or a leaf
// (PrimCount > 0, LeftFirst is the offset into the primitive-id array).
// The field layout matches the 32-byte GPU buffer entry exactly.
type Node struct {
	AABBMin   rmath.Vec3
	LeftFirst uint32
	AABBMax   rmath.Vec3
	PrimCount uint32
}

// IsLeaf reports whether the node stores primitives directly.
func (n Node) IsLeaf() bool {
	return n.PrimCount > 0
}

// Bounds returns the node's AABB as a core.AABB.
func (n Node) Bounds() core.AABB {
	return core.AABB{Min: n.AABBMin, Max: n.AABBMax}
}

// nodeByteSize is the flattened, GPU-buffer size of one Node: two Vec3 (12
// bytes each) plus two uint32 fields, 32 bytes total with no padding.
const nodeByteSize = 32

// Flatten serializes nodes into a tightly packed little-endian byte buffer
// suitable for upload to a GPU storage buffer.
func Flatten(nodes []Node) []byte {
	buf := make([]byte, len(nodes)*nodeByteSize)
	for i, n := range nodes {
		off := i * nodeByteSize
		binary.LittleEndian.PutUint32(buf[off+0:], math.Float32bits(n.AABBMin.X))
		binary.LittleEndian.PutUint32(buf[off+4:], math.Float32bits(n.AABBMin.Y))
		binary.LittleEndian.PutUint32(buf[off+8:], math.Float32bits(n.AABBMin.Z))
		binary.LittleEndian.PutUint32(buf[off+12:], n.LeftFirst)
		binary.LittleEndian.PutUint32(buf[off+16:], math.Float32bits(n.AABBMax.X))
		binary.LittleEndian.PutUint32(buf[off+20:], math.Float32bits(n.AABBMax.Y))
		binary.LittleEndian.PutUint32(buf[off+24:], math.Float32bits(n.AABBMax.Z))
		binary.LittleEndian.PutUint32(buf[off+28:], n.PrimCount)
	}
	return buf
}

// NodeAt decodes the node at index idx out of a buffer produced by
// Flatten — the read side of the GPU wire layout, used by the parity shim
// to traverse a flattened buffer the way a compute shader would.
func NodeAt(buf []byte, idx int) Node {
	off := idx * nodeByteSize
	return Node{
		AABBMin: rmath.Vec3{
			X: math.Float32frombits(binary.LittleEndian.Uint32(buf[off+0:])),
			Y: math.Float32frombits(binary.LittleEndian.Uint32(buf[off+4:])),
			Z: math.Float32frombits(binary.LittleEndian.Uint32(buf[off+8:])),
		},
		LeftFirst: binary.LittleEndian.Uint32(buf[off+12:]),
		AABBMax: rmath.Vec3{
			X: math.Float32frombits(binary.LittleEndian.Uint32(buf[off+16:])),
			Y: math.Float32frombits(binary.LittleEndian.Uint32(buf[off+20:])),
			Z: math.Float32frombits(binary.LittleEndian.Uint32(buf[off+24:])),
		},
		PrimCount: binary.LittleEndian.Uint32(buf[off+28:]),
	}
}
