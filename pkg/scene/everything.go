package scene

import (
	"fmt"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Everything combines every shape, material and texture kind in one scene
type Everything struct {
	TexturePath string // Image file for the textured sphere, DefaultTexturePath when empty
}

// DefaultSettings implements Scene
func (s *Everything) DefaultSettings() Settings {
	return Settings{
		CameraEye:       core.NewVec3(478, 278, -600),
		CameraTarget:    core.NewVec3(278, 278, 0),
		Width:           720,
		Height:          720,
		FOV:             40,
		FocusDistance:   10,
		DefocusAngle:    0,
		SamplesPerPixel: 500,
		MaxBounces:      50,
		Background:      blackBackground(),
	}
}

// Build implements Scene
func (s *Everything) Build(random *rand.Rand) (*World, error) {
	// Load assets first so a missing file fails before any geometry is built
	earthTexture, err := loaders.LoadImageTexture(texturePathOrDefault(s.TexturePath))
	if err != nil {
		return nil, fmt.Errorf("everything scene: %w", err)
	}

	world := NewWorld()

	// Floor of boxes with random heights
	ground := world.RegisterMaterial(material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53)))
	const boxesPerSide = 20
	floor := make([]geometry.Shape, 0, boxesPerSide*boxesPerSide)
	for i := 0; i < boxesPerSide; i++ {
		for j := 0; j < boxesPerSide; j++ {
			w := 100.0
			x0 := -1000.0 + float64(i)*w
			z0 := -1000.0 + float64(j)*w
			y1 := randomRange(random, 1, 101)
			floor = append(floor, geometry.NewBox(core.NewVec3(x0, 0, z0), core.NewVec3(x0+w, y1, z0+w), ground))
		}
	}
	world.Add(geometry.NewBVH(floor, random))

	light := world.RegisterMaterial(material.NewDiffuseLight(core.NewVec3(7, 7, 7)))
	world.Add(geometry.NewQuad(core.NewVec3(123, 554, 147), core.NewVec3(300, 0, 0), core.NewVec3(0, 0, 265), light))

	// Motion blurred sphere
	center := core.NewVec3(400, 400, 200)
	orange := world.RegisterMaterial(material.NewLambertian(core.NewVec3(0.7, 0.3, 0.1)))
	world.Add(geometry.NewMovingSphere(center, center.Add(core.NewVec3(30, 0, 0)), 50, orange))

	glass := world.RegisterMaterial(material.NewDielectric(1.5))
	world.Add(
		geometry.NewSphere(core.NewVec3(260, 150, 45), 50, glass),
		geometry.NewSphere(core.NewVec3(0, 150, 145), 50, world.RegisterMaterial(material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 1.0))),
	)

	// Glass sphere filled with blue subsurface medium
	boundary := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, glass)
	world.Add(
		boundary,
		geometry.NewConstantVolume(boundary, 0.2, world.RegisterMaterial(material.NewIsotropic(core.NewVec3(0.2, 0.4, 0.9)))),
	)

	// Thin mist over the whole scene
	mist := geometry.NewSphere(core.NewVec3(0, 0, 0), 5000, glass)
	world.Add(geometry.NewConstantVolume(mist, 0.0001, world.RegisterMaterial(material.NewIsotropic(core.NewVec3(1, 1, 1)))))

	earth := world.RegisterMaterial(material.NewTexturedLambertian(earthTexture))
	world.Add(geometry.NewSphere(core.NewVec3(400, 200, 400), 100, earth))

	// Cube of small white spheres
	white := world.RegisterMaterial(material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73)))
	cluster := make([]geometry.Shape, 1000)
	for i := range cluster {
		cluster[i] = geometry.NewSphere(randomVec(random, 0, 165), 10, white)
	}
	world.Add(geometry.NewTranslate(
		geometry.NewRotateY(geometry.NewBVH(cluster, random), 15),
		core.NewVec3(-100, 270, 395),
	))

	world.Build(random)
	return world, nil
}
