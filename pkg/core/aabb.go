package core

// MinimumExtent is the smallest size an AABB may have along any axis.
// Thinner boxes (for example around an axis-aligned quad) are padded up to it.
const MinimumExtent = 0.0001

// AABB represents an axis-aligned bounding box as one interval per axis
type AABB struct {
	X, Y, Z Interval
}

// EmptyAABB contains nothing; combining it with any box yields that box
var EmptyAABB = AABB{X: EmptyInterval, Y: EmptyInterval, Z: EmptyInterval}

// NewAABB creates an AABB from three axis intervals
func NewAABB(x, y, z Interval) AABB {
	aabb := AABB{X: x, Y: y, Z: z}
	aabb.padToMinimums()
	return aabb
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return EmptyAABB
	}

	minPoint := points[0]
	maxPoint := points[0]
	for _, point := range points[1:] {
		minPoint = NewVec3(min(minPoint.X, point.X), min(minPoint.Y, point.Y), min(minPoint.Z, point.Z))
		maxPoint = NewVec3(max(maxPoint.X, point.X), max(maxPoint.Y, point.Y), max(maxPoint.Z, point.Z))
	}

	return NewAABB(
		Interval{Min: minPoint.X, Max: maxPoint.X},
		Interval{Min: minPoint.Y, Max: maxPoint.Y},
		Interval{Min: minPoint.Z, Max: maxPoint.Z},
	)
}

func (aabb *AABB) padToMinimums() {
	if aabb.X.Size() < MinimumExtent {
		aabb.X = aabb.X.Expand(MinimumExtent)
	}
	if aabb.Y.Size() < MinimumExtent {
		aabb.Y = aabb.Y.Expand(MinimumExtent)
	}
	if aabb.Z.Size() < MinimumExtent {
		aabb.Z = aabb.Z.Expand(MinimumExtent)
	}
}

// Axis returns the interval for axis 0 (X), 1 (Y) or 2 (Z).
// Any other index is a programming error and panics.
func (aabb AABB) Axis(axis int) Interval {
	switch axis {
	case 0:
		return aabb.X
	case 1:
		return aabb.Y
	case 2:
		return aabb.Z
	default:
		panic("core: invalid AABB axis index")
	}
}

// Hit tests if a ray intersects with this AABB within rayT using the slab method
func (aabb AABB) Hit(ray Ray, rayT Interval) bool {
	for axis := 0; axis < 3; axis++ {
		slab := aabb.Axis(axis)
		origin := ray.Origin.Axis(axis)
		direction := ray.Direction.Axis(axis)

		// Ray parallel to this slab: it either always or never overlaps it
		if direction == 0 {
			if origin < slab.Min || origin > slab.Max {
				return false
			}
			continue
		}

		invDirection := 1.0 / direction
		t0 := (slab.Min - origin) * invDirection
		t1 := (slab.Max - origin) * invDirection
		if t0 > t1 {
			t0, t1 = t1, t0
		}

		if t0 > rayT.Min {
			rayT.Min = t0
		}
		if t1 < rayT.Max {
			rayT.Max = t1
		}

		if rayT.Max <= rayT.Min {
			return false
		}
	}

	return true
}

// Combine returns the tightest AABB that bounds both this AABB and another
func (aabb AABB) Combine(other AABB) AABB {
	return AABB{
		X: aabb.X.Combine(other.X),
		Y: aabb.Y.Combine(other.Y),
		Z: aabb.Z.Combine(other.Z),
	}
}

// Translate returns the AABB moved by offset
func (aabb AABB) Translate(offset Vec3) AABB {
	return AABB{
		X: aabb.X.Shift(offset.X),
		Y: aabb.Y.Shift(offset.Y),
		Z: aabb.Z.Shift(offset.Z),
	}
}

// Min returns the minimum corner
func (aabb AABB) Min() Vec3 {
	return NewVec3(aabb.X.Min, aabb.Y.Min, aabb.Z.Min)
}

// Max returns the maximum corner
func (aabb AABB) Max() Vec3 {
	return NewVec3(aabb.X.Max, aabb.Y.Max, aabb.Z.Max)
}

// Corners returns the eight corner points of the AABB
func (aabb AABB) Corners() [8]Vec3 {
	var corners [8]Vec3
	for i := 0; i < 8; i++ {
		x := aabb.X.Min
		if i&1 != 0 {
			x = aabb.X.Max
		}
		y := aabb.Y.Min
		if i&2 != 0 {
			y = aabb.Y.Max
		}
		z := aabb.Z.Min
		if i&4 != 0 {
			z = aabb.Z.Max
		}
		corners[i] = NewVec3(x, y, z)
	}
	return corners
}

// ContainsBox reports whether other lies entirely inside this AABB
func (aabb AABB) ContainsBox(other AABB) bool {
	for axis := 0; axis < 3; axis++ {
		outer, inner := aabb.Axis(axis), other.Axis(axis)
		if inner.Min < outer.Min || inner.Max > outer.Max {
			return false
		}
	}
	return true
}
