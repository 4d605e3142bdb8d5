package renderer

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// constantSampler returns the same value for every dimension
type constantSampler struct {
	value float64
}

func (s constantSampler) Get1D() float64 { return s.value }
func (s constantSampler) Get2D() core.Vec2 {
	return core.NewVec2(s.value, s.value)
}

// recordingLogger collects log lines instead of printing them
type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func testSettings(width, height, samples int) scene.Settings {
	return scene.Settings{
		CameraEye:       core.NewVec3(0, 0, 0),
		CameraTarget:    core.NewVec3(0, 0, -1),
		Width:           width,
		Height:          height,
		FOV:             90,
		FocusDistance:   1,
		DefocusAngle:    0,
		SamplesPerPixel: samples,
		MaxBounces:      5,
	}
}

// newSphereWorld builds a diffuse sphere above a ground sphere
func newSphereWorld() *scene.World {
	world := scene.NewWorld()
	ground := world.RegisterMaterial(material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	ball := world.RegisterMaterial(material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3))
	world.Add(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, ground),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, ball),
	)
	world.Build(rand.New(rand.NewSource(7)))
	return world
}

func newEmptyWorld() *scene.World {
	world := scene.NewWorld()
	world.Build(rand.New(rand.NewSource(1)))
	return world
}

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}
