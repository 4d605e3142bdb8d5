package material

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// fixedSampler returns scripted values so scattering decisions are predictable
type fixedSampler struct {
	value float64
}

func (s fixedSampler) Get1D() float64   { return s.value }
func (s fixedSampler) Get2D() core.Vec2 { return core.NewVec2(s.value, s.value) }

func newRandomSampler(seed int64) core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// upHit is a front-facing hit at the origin with normal +Y
func upHit() *core.HitRecord {
	return &core.HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1,
		FrontFace: true,
		UV:        core.NewVec2(0.5, 0.5),
	}
}
