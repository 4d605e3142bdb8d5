package scene

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Quads is five colored quads facing the camera from different sides
type Quads struct{}

// DefaultSettings implements Scene
func (s *Quads) DefaultSettings() Settings {
	return Settings{
		CameraEye:       core.NewVec3(0, 0, 9),
		CameraTarget:    core.NewVec3(0, 0, 0),
		Width:           720,
		Height:          720,
		FOV:             80,
		FocusDistance:   10,
		DefocusAngle:    0,
		SamplesPerPixel: 100,
		MaxBounces:      50,
	}
}

// Build implements Scene
func (s *Quads) Build(random *rand.Rand) (*World, error) {
	world := NewWorld()

	red := world.RegisterMaterial(material.NewLambertian(core.NewVec3(1.0, 0.2, 0.2)))
	green := world.RegisterMaterial(material.NewLambertian(core.NewVec3(0.2, 1.0, 0.2)))
	blue := world.RegisterMaterial(material.NewLambertian(core.NewVec3(0.2, 0.2, 1.0)))
	orange := world.RegisterMaterial(material.NewLambertian(core.NewVec3(1.0, 0.5, 0.0)))
	teal := world.RegisterMaterial(material.NewLambertian(core.NewVec3(0.2, 0.8, 0.8)))

	world.Add(
		geometry.NewQuad(core.NewVec3(-3, -2, 5), core.NewVec3(0, 0, -4), core.NewVec3(0, 4, 0), red),  // left
		geometry.NewQuad(core.NewVec3(-2, -2, 0), core.NewVec3(4, 0, 0), core.NewVec3(0, 4, 0), green), // back
		geometry.NewQuad(core.NewVec3(3, -2, 1), core.NewVec3(0, 0, 4), core.NewVec3(0, 4, 0), blue),   // right
		geometry.NewQuad(core.NewVec3(-2, 3, 1), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, 4), orange), // top
		geometry.NewQuad(core.NewVec3(-2, -3, 5), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, -4), teal), // bottom
	)

	world.Build(random)
	return world, nil
}

// SimpleLight is a sphere on a ground sphere lit only by a rectangular area light
type SimpleLight struct{}

// DefaultSettings implements Scene
func (s *SimpleLight) DefaultSettings() Settings {
	return Settings{
		CameraEye:       core.NewVec3(26, 3, 6),
		CameraTarget:    core.NewVec3(0, 2, 0),
		Width:           1280,
		Height:          720,
		FOV:             20,
		FocusDistance:   10,
		DefocusAngle:    0.6,
		SamplesPerPixel: 1000,
		MaxBounces:      10,
		Background:      blackBackground(),
	}
}

// Build implements Scene
func (s *SimpleLight) Build(random *rand.Rand) (*World, error) {
	world := NewWorld()

	diffuse := world.RegisterMaterial(material.NewLambertian(core.NewVec3(1.0, 0.5, 0.5)))
	light := world.RegisterMaterial(material.NewDiffuseLight(core.NewVec3(4, 4, 4)))

	world.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, diffuse),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, diffuse),
		geometry.NewQuad(core.NewVec3(3, 1, -2), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), light),
	)

	world.Build(random)
	return world, nil
}
