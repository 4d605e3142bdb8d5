package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// shadowAcneEpsilon keeps scattered rays from re-hitting the surface they left
const shadowAcneEpsilon = 0.001

var (
	skyHorizon = core.NewVec3(1.0, 1.0, 1.0)
	skyZenith  = core.NewVec3(0.5, 0.7, 1.0)
)

// PathTracingIntegrator implements recursive unidirectional path tracing
type PathTracingIntegrator struct {
	maxBounces int
	background *core.Vec3
}

// NewPathTracingIntegrator creates a new path tracing integrator from render settings
func NewPathTracingIntegrator(settings scene.Settings) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		maxBounces: settings.MaxBounces,
		background: settings.Background,
	}
}

// RayColor computes the color for a single camera ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world *scene.World, sampler core.Sampler) core.Vec3 {
	return pt.rayColor(ray, world, sampler, 0)
}

func (pt *PathTracingIntegrator) rayColor(ray core.Ray, world *scene.World, sampler core.Sampler, depth int) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth >= pt.maxBounces {
		return core.Vec3{}
	}

	hit, isHit := world.Hit(ray, core.Interval{Min: shadowAcneEpsilon, Max: math.Inf(1)}, sampler)
	if !isHit {
		return pt.backgroundColor(ray)
	}

	mat := world.Material(hit.Material)
	colorEmitted := material.Emitted(mat, hit.UV, hit.Point)

	scatter, didScatter := mat.Scatter(ray, hit, sampler)
	if !didScatter {
		return colorEmitted
	}

	colorScattered := scatter.Attenuation.MultiplyVec(pt.rayColor(scatter.Scattered, world, sampler, depth+1))
	return colorEmitted.Add(colorScattered)
}

// backgroundColor returns the fixed background, or a white-to-blue sky gradient by ray elevation
func (pt *PathTracingIntegrator) backgroundColor(ray core.Ray) core.Vec3 {
	if pt.background != nil {
		return *pt.background
	}

	unitDirection := ray.Direction.Normalize()
	a := 0.5 * (unitDirection.Y + 1.0)
	return skyHorizon.Multiply(1.0 - a).Add(skyZenith.Multiply(a))
}
