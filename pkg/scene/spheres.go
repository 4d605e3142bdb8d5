package scene

import (
	"fmt"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
)

// randomRange returns a uniform value in [min, max)
func randomRange(random *rand.Rand, min, max float64) float64 {
	return min + (max-min)*random.Float64()
}

// randomVec returns a vector with each component uniform in [min, max)
func randomVec(random *rand.Rand, min, max float64) core.Vec3 {
	return core.NewVec3(randomRange(random, min, max), randomRange(random, min, max), randomRange(random, min, max))
}

// groundChecker is the checker texture shared by the sphere scenes
func groundChecker() *material.CheckerTexture {
	return material.NewCheckerTextureFromColors(0.32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
}

// BouncingSpheres is a field of small random spheres that move during the exposure
type BouncingSpheres struct{}

// DefaultSettings implements Scene
func (s *BouncingSpheres) DefaultSettings() Settings {
	return Settings{
		CameraEye:       core.NewVec3(13, 2, 3),
		CameraTarget:    core.NewVec3(0, 0, -1),
		Width:           1280,
		Height:          720,
		FOV:             20,
		FocusDistance:   10,
		DefocusAngle:    0.6,
		SamplesPerPixel: 100,
		MaxBounces:      50,
	}
}

// Build implements Scene
func (s *BouncingSpheres) Build(random *rand.Rand) (*World, error) {
	world := NewWorld()

	ground := world.RegisterMaterial(material.NewTexturedLambertian(groundChecker()))
	world.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground))

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())

			// Keep clear of the large metal sphere
			if center.Subtract(core.NewVec3(4, 0.2, 0)).Length() <= 0.9 {
				continue
			}

			var mat material.Material
			switch {
			case chooseMat < 0.8:
				albedo := randomVec(random, 0, 1).MultiplyVec(randomVec(random, 0, 1))
				mat = material.NewLambertian(albedo)
			case chooseMat < 0.95:
				mat = material.NewMetal(randomVec(random, 0.5, 1), randomRange(random, 0, 0.5))
			default:
				mat = material.NewDielectric(1.5)
			}

			end := center.Add(core.NewVec3(0, randomRange(random, 0, 0.5), 0))
			world.Add(geometry.NewMovingSphere(center, end, 0.2, world.RegisterMaterial(mat)))
		}
	}

	world.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1, world.RegisterMaterial(material.NewDielectric(1.5))),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1, world.RegisterMaterial(material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1)))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1, world.RegisterMaterial(material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0))),
	)

	world.Build(random)
	return world, nil
}

// CheckeredSpheres is two large spheres sharing a spatial checker texture
type CheckeredSpheres struct{}

// DefaultSettings implements Scene
func (s *CheckeredSpheres) DefaultSettings() Settings {
	return Settings{
		CameraEye:       core.NewVec3(13, 2, 3),
		CameraTarget:    core.NewVec3(0, 0, 0),
		Width:           1280,
		Height:          720,
		FOV:             20,
		FocusDistance:   10,
		DefocusAngle:    0.6,
		SamplesPerPixel: 100,
		MaxBounces:      50,
	}
}

// Build implements Scene
func (s *CheckeredSpheres) Build(random *rand.Rand) (*World, error) {
	world := NewWorld()

	checker := world.RegisterMaterial(material.NewTexturedLambertian(groundChecker()))
	world.Add(
		geometry.NewSphere(core.NewVec3(0, -10, 0), 10, checker),
		geometry.NewSphere(core.NewVec3(0, 10, 0), 10, checker),
	)

	world.Build(random)
	return world, nil
}

// Earth is a single sphere wrapped in an image texture
type Earth struct {
	TexturePath string // Image file for the globe, DefaultTexturePath when empty
}

// DefaultSettings implements Scene
func (s *Earth) DefaultSettings() Settings {
	return Settings{
		CameraEye:       core.NewVec3(0, 0, 12),
		CameraTarget:    core.NewVec3(0, 0, 0),
		Width:           1280,
		Height:          720,
		FOV:             20,
		FocusDistance:   10,
		DefocusAngle:    0.6,
		SamplesPerPixel: 100,
		MaxBounces:      50,
	}
}

// Build implements Scene
func (s *Earth) Build(random *rand.Rand) (*World, error) {
	texture, err := loaders.LoadImageTexture(texturePathOrDefault(s.TexturePath))
	if err != nil {
		return nil, fmt.Errorf("earth scene: %w", err)
	}

	world := NewWorld()
	globe := world.RegisterMaterial(material.NewTexturedLambertian(texture))
	world.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 2, globe))

	world.Build(random)
	return world, nil
}
