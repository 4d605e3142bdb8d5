package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Sphere represents a sphere shape, optionally moving linearly over the shutter interval
type Sphere struct {
	CenterStart core.Vec3        // Center at time 0
	Motion      core.Vec3        // Displacement from time 0 to time 1
	Radius      float64          // Radius, never negative
	Material    core.MaterialRef // Material handle
	bbox        core.AABB
}

// NewSphere creates a new stationary sphere
func NewSphere(center core.Vec3, radius float64, material core.MaterialRef) *Sphere {
	return NewMovingSphere(center, center, radius, material)
}

// NewMovingSphere creates a sphere whose center moves from start (time 0) to end (time 1)
func NewMovingSphere(start, end core.Vec3, radius float64, material core.MaterialRef) *Sphere {
	radius = math.Max(0, radius)
	rvec := core.NewVec3(radius, radius, radius)
	startBox := core.NewAABBFromPoints(start.Subtract(rvec), start.Add(rvec))
	endBox := core.NewAABBFromPoints(end.Subtract(rvec), end.Add(rvec))

	return &Sphere{
		CenterStart: start,
		Motion:      end.Subtract(start),
		Radius:      radius,
		Material:    material,
		bbox:        startBox.Combine(endBox),
	}
}

// Center returns the sphere center at the given ray time
func (s *Sphere) Center(time float64) core.Vec3 {
	return s.CenterStart.Add(s.Motion.Multiply(time))
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*core.HitRecord, bool) {
	// A point sphere has no surface to hit
	if s.Radius == 0 {
		return nil, false
	}

	center := s.Center(ray.Time)
	oc := center.Subtract(ray.Origin)

	// Quadratic with reduced discriminant: at² - 2ht + c = 0
	a := ray.Direction.LengthSquared()
	h := ray.Direction.Dot(oc)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := h*h - a*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (h - sqrtD) / a
	if !rayT.Surrounds(root) {
		root = (h + sqrtD) / a
		if !rayT.Surrounds(root) {
			return nil, false
		}
	}

	hitRecord := &core.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	outwardNormal := hitRecord.Point.Subtract(center).Divide(s.Radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)
	hitRecord.UV = SphereUV(outwardNormal)

	return hitRecord, true
}

// BoundingBox returns the axis-aligned bounding box covering the full motion
func (s *Sphere) BoundingBox() core.AABB {
	return s.bbox
}

// SphereUV maps a point on the unit sphere to texture coordinates.
// u runs around the Y axis starting from -X, v runs from -Y (0) to +Y (1).
func SphereUV(p core.Vec3) core.Vec2 {
	theta := math.Acos(math.Max(-1, math.Min(1, -p.Y)))
	phi := math.Atan2(-p.Z, p.X) + math.Pi

	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
}
