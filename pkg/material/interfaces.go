package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Material interface for surfaces that can scatter rays
type Material interface {
	// Scatter returns the scattered ray and its attenuation, or false if the ray is absorbed
	Scatter(rayIn core.Ray, hit *core.HitRecord, sampler core.Sampler) (ScatterResult, bool)
}

// Emitter interface for materials that emit light
type Emitter interface {
	Emit(uv core.Vec2, point core.Vec3) core.Vec3
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray, carrying the incoming ray's time
	Attenuation core.Vec3 // Color attenuation
}

// Emitted returns the light emitted by m at the hit, or black if m does not emit
func Emitted(m Material, uv core.Vec2, point core.Vec3) core.Vec3 {
	if emitter, ok := m.(Emitter); ok {
		return emitter.Emit(uv, point)
	}
	return core.Vec3{}
}
