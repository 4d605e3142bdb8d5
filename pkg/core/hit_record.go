package core

// MaterialRef is a handle into a world's material registry
type MaterialRef int

// HitRecord contains information about a ray-surface intersection
type HitRecord struct {
	Point     Vec3        // Point of intersection
	Normal    Vec3        // Surface normal, always facing against the incoming ray
	T         float64     // Parameter t along the ray
	FrontFace bool        // Whether the ray hit the outward-facing side
	UV        Vec2        // Surface texture coordinates
	Material  MaterialRef // Material handle, resolved at shading time
}

// SetFaceNormal sets the normal vector and determines front/back face.
// outwardNormal must be unit length.
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
