package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Shape interface for objects that can be hit by rays.
// Hit returns the nearest intersection with t inside rayT. The sampler is the
// calling worker's random stream; only stochastic shapes draw from it.
type Shape interface {
	Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*core.HitRecord, bool)
	BoundingBox() core.AABB
}
