package scene

import (
	"fmt"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// World owns the materials and shapes of a scene and the BVH over them.
// After Build it is read-only and may be shared by all render workers.
type World struct {
	materials []material.Material
	shapes    []geometry.Shape
	bvh       *geometry.BVH
}

// NewWorld creates an empty world
func NewWorld() *World {
	return &World{}
}

// RegisterMaterial stores m and returns its handle. Handles are never reused.
func (w *World) RegisterMaterial(m material.Material) core.MaterialRef {
	w.materials = append(w.materials, m)
	return core.MaterialRef(len(w.materials) - 1)
}

// Material resolves a handle returned by RegisterMaterial.
// An unknown handle is a programming error and panics.
func (w *World) Material(ref core.MaterialRef) material.Material {
	if ref < 0 || int(ref) >= len(w.materials) {
		panic(fmt.Sprintf("scene: invalid material handle %d (%d registered)", ref, len(w.materials)))
	}
	return w.materials[ref]
}

// Add appends shapes to the world. It panics once the world has been built.
func (w *World) Add(shapes ...geometry.Shape) {
	if w.bvh != nil {
		panic("scene: Add called after Build")
	}
	w.shapes = append(w.shapes, shapes...)
}

// Build constructs the top-level BVH. Calling it again is a no-op.
func (w *World) Build(random *rand.Rand) {
	if w.bvh != nil {
		return
	}
	w.bvh = geometry.NewBVH(w.shapes, random)
}

// Built reports whether Build has been called
func (w *World) Built() bool {
	return w.bvh != nil
}

// Hit returns the nearest intersection in the world. The world must be built.
func (w *World) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*core.HitRecord, bool) {
	return w.bvh.Hit(ray, rayT, sampler)
}

// BoundingBox returns the bounds of everything in the world
func (w *World) BoundingBox() core.AABB {
	if w.bvh == nil {
		return core.EmptyAABB
	}
	return w.bvh.BoundingBox()
}

// ShapeCount returns the number of top-level shapes
func (w *World) ShapeCount() int {
	return len(w.shapes)
}

// MaterialCount returns the number of registered materials
func (w *World) MaterialCount() int {
	return len(w.materials)
}
