package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// parallelEpsilon is float64 machine epsilon; rays closer to parallel than this miss
const parallelEpsilon = 2.220446049250313e-16

// Quad represents a planar parallelogram defined by a corner and two edge vectors
type Quad struct {
	Corner   core.Vec3        // One corner of the quad
	U        core.Vec3        // First edge vector
	V        core.Vec3        // Second edge vector
	Normal   core.Vec3        // Unit normal (direction of U × V)
	Material core.MaterialRef // Material handle
	D        float64          // Plane equation constant: normal · p = D
	W        core.Vec3        // n / (n · n), used for planar coordinates
	bbox     core.AABB
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, material core.MaterialRef) *Quad {
	n := u.Cross(v)
	normal := n.Normalize()

	// Box spans both diagonals so that it stays valid for any edge orientation
	diagonal1 := core.NewAABBFromPoints(corner, corner.Add(u).Add(v))
	diagonal2 := core.NewAABBFromPoints(corner.Add(u), corner.Add(v))

	return &Quad{
		Corner:   corner,
		U:        u,
		V:        v,
		Normal:   normal,
		Material: material,
		D:        normal.Dot(corner),
		W:        n.Divide(n.Dot(n)),
		bbox:     diagonal1.Combine(diagonal2),
	}
}

// Hit tests if a ray intersects with the quad
func (q *Quad) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*core.HitRecord, bool) {
	denominator := q.Normal.Dot(ray.Direction)

	// Ray parallel to the plane
	if math.Abs(denominator) < parallelEpsilon {
		return nil, false
	}

	t := (q.D - q.Normal.Dot(ray.Origin)) / denominator
	if !rayT.Contains(t) {
		return nil, false
	}

	hitPoint := ray.At(t)
	planar := hitPoint.Subtract(q.Corner)
	alpha := q.W.Dot(planar.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(planar))

	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return nil, false
	}

	hitRecord := &core.HitRecord{
		T:        t,
		Point:    hitPoint,
		UV:       core.NewVec2(alpha, beta),
		Material: q.Material,
	}
	hitRecord.SetFaceNormal(ray, q.Normal)

	return hitRecord, true
}

// BoundingBox returns the axis-aligned bounding box for this quad
func (q *Quad) BoundingBox() core.AABB {
	return q.bbox
}
