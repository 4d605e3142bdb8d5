package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Translate moves a shape by a fixed offset
type Translate struct {
	Object Shape
	Offset core.Vec3
	bbox   core.AABB
}

// NewTranslate wraps object so that it appears moved by offset
func NewTranslate(object Shape, offset core.Vec3) *Translate {
	return &Translate{
		Object: object,
		Offset: offset,
		bbox:   object.BoundingBox().Translate(offset),
	}
}

// Hit intersects the ray with the untranslated object and moves the result back
func (t *Translate) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*core.HitRecord, bool) {
	offsetRay := core.NewRayAtTime(ray.Origin.Subtract(t.Offset), ray.Direction, ray.Time)

	hit, ok := t.Object.Hit(offsetRay, rayT, sampler)
	if !ok {
		return nil, false
	}

	hit.Point = hit.Point.Add(t.Offset)
	return hit, true
}

// BoundingBox returns the translated bounding box
func (t *Translate) BoundingBox() core.AABB {
	return t.bbox
}

// RotateY rotates a shape about the world Y axis
type RotateY struct {
	Object   Shape
	sinTheta float64
	cosTheta float64
	bbox     core.AABB
}

// NewRotateY wraps object rotated by angle degrees about the Y axis.
// Positive angles turn +X towards -Z.
func NewRotateY(object Shape, angle float64) *RotateY {
	radians := angle * math.Pi / 180
	r := &RotateY{
		Object:   object,
		sinTheta: math.Sin(radians),
		cosTheta: math.Cos(radians),
	}

	box := object.BoundingBox()
	corners := box.Corners()
	for i, corner := range corners {
		corners[i] = r.toWorld(corner)
	}
	r.bbox = core.NewAABBFromPoints(corners[:]...)

	return r
}

// toObject rotates a world-space vector into object space
func (r *RotateY) toObject(p core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*p.X-r.sinTheta*p.Z,
		p.Y,
		r.sinTheta*p.X+r.cosTheta*p.Z,
	)
}

// toWorld rotates an object-space vector into world space
func (r *RotateY) toWorld(p core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*p.X+r.sinTheta*p.Z,
		p.Y,
		-r.sinTheta*p.X+r.cosTheta*p.Z,
	)
}

// Hit rotates the ray into object space, intersects, and rotates the hit back
func (r *RotateY) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*core.HitRecord, bool) {
	rotated := core.NewRayAtTime(r.toObject(ray.Origin), r.toObject(ray.Direction), ray.Time)

	hit, ok := r.Object.Hit(rotated, rayT, sampler)
	if !ok {
		return nil, false
	}

	// Normal was already oriented against the object-space ray; rotation preserves that
	hit.Point = r.toWorld(hit.Point)
	hit.Normal = r.toWorld(hit.Normal)
	return hit, true
}

// BoundingBox returns the bounding box of the rotated object
func (r *RotateY) BoundingBox() core.AABB {
	return r.bbox
}
