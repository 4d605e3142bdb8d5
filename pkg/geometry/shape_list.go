package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// ShapeList is a flat collection of shapes tested in order
type ShapeList struct {
	Shapes []Shape
	bbox   core.AABB
}

// NewShapeList creates a shape list from the given shapes
func NewShapeList(shapes ...Shape) *ShapeList {
	list := &ShapeList{bbox: core.EmptyAABB}
	list.Add(shapes...)
	return list
}

// Add appends shapes to the list
func (l *ShapeList) Add(shapes ...Shape) {
	for _, shape := range shapes {
		l.Shapes = append(l.Shapes, shape)
		l.bbox = l.bbox.Combine(shape.BoundingBox())
	}
}

// Hit returns the nearest hit among all shapes
func (l *ShapeList) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*core.HitRecord, bool) {
	var closest *core.HitRecord
	closestSoFar := rayT.Max

	for _, shape := range l.Shapes {
		if hit, ok := shape.Hit(ray, core.Interval{Min: rayT.Min, Max: closestSoFar}, sampler); ok {
			closest = hit
			closestSoFar = hit.T
		}
	}

	return closest, closest != nil
}

// BoundingBox returns the union of all shape bounding boxes
func (l *ShapeList) BoundingBox() core.AABB {
	return l.bbox
}
