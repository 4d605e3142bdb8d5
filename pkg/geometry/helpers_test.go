package geometry

import (
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// constantSampler returns the same value for every dimension
type constantSampler struct {
	value float64
}

func (s constantSampler) Get1D() float64 { return s.value }
func (s constantSampler) Get2D() core.Vec2 {
	return core.NewVec2(s.value, s.value)
}

func newTestSampler(seed int64) core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(seed)))
}

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance && math.Abs(a.Y-b.Y) <= tolerance && math.Abs(a.Z-b.Z) <= tolerance
}

var forwardT = core.NewInterval(0.001, math.Inf(1))
