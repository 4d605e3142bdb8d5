package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// exitOffset separates the search for the exit point from the entrance point
const exitOffset = 0.0001

// ConstantVolume is a participating medium of uniform density bounded by a closed shape.
// Rays passing through it scatter at an exponentially distributed free-flight distance.
type ConstantVolume struct {
	Boundary      Shape
	Density       float64
	PhaseFunction core.MaterialRef
	negInvDensity float64
}

// NewConstantVolume creates a volume filling boundary. The phase material is normally isotropic.
func NewConstantVolume(boundary Shape, density float64, phaseFunction core.MaterialRef) *ConstantVolume {
	return &ConstantVolume{
		Boundary:      boundary,
		Density:       density,
		PhaseFunction: phaseFunction,
		negInvDensity: -1.0 / density,
	}
}

// Hit samples a scattering event inside the volume along the ray
func (v *ConstantVolume) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*core.HitRecord, bool) {
	entrance, ok := v.Boundary.Hit(ray, core.UniverseInterval, sampler)
	if !ok {
		return nil, false
	}

	exit, ok := v.Boundary.Hit(ray, core.Interval{Min: entrance.T + exitOffset, Max: math.Inf(1)}, sampler)
	if !ok {
		return nil, false
	}

	tEnter := math.Max(entrance.T, rayT.Min)
	tExit := math.Min(exit.T, rayT.Max)
	if tEnter >= tExit {
		return nil, false
	}
	tEnter = math.Max(tEnter, 0)

	rayLength := ray.Direction.Length()
	distanceInsideBoundary := (tExit - tEnter) * rayLength
	hitDistance := v.negInvDensity * math.Log(sampler.Get1D())

	if hitDistance > distanceInsideBoundary {
		return nil, false
	}

	t := tEnter + hitDistance/rayLength
	return &core.HitRecord{
		T:         t,
		Point:     ray.At(t),
		Normal:    core.NewVec3(1, 0, 0), // arbitrary
		FrontFace: true,
		Material:  v.PhaseFunction,
	}, true
}

// BoundingBox returns the bounding box of the boundary shape
func (v *ConstantVolume) BoundingBox() core.AABB {
	return v.Boundary.BoundingBox()
}
