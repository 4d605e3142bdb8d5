package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// NewBox creates an axis-aligned box spanning the opposite corners a and b,
// made up of six outward-facing quads
func NewBox(a, b core.Vec3, material core.MaterialRef) *ShapeList {
	minPoint := core.NewVec3(math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z))
	maxPoint := core.NewVec3(math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z))

	dx := core.NewVec3(maxPoint.X-minPoint.X, 0, 0)
	dy := core.NewVec3(0, maxPoint.Y-minPoint.Y, 0)
	dz := core.NewVec3(0, 0, maxPoint.Z-minPoint.Z)

	return NewShapeList(
		NewQuad(core.NewVec3(minPoint.X, minPoint.Y, maxPoint.Z), dx, dy, material),          // front
		NewQuad(core.NewVec3(maxPoint.X, minPoint.Y, maxPoint.Z), dz.Negate(), dy, material), // right
		NewQuad(core.NewVec3(maxPoint.X, minPoint.Y, minPoint.Z), dx.Negate(), dy, material), // back
		NewQuad(core.NewVec3(minPoint.X, minPoint.Y, minPoint.Z), dz, dy, material),          // left
		NewQuad(core.NewVec3(minPoint.X, maxPoint.Y, maxPoint.Z), dx, dz.Negate(), material), // top
		NewQuad(core.NewVec3(minPoint.X, minPoint.Y, minPoint.Z), dx, dz, material),          // bottom
	)
}
