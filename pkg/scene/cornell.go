package scene

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// cornellBoxSize is the edge length of the standard Cornell box
const cornellBoxSize = 555.0

// cornellSettings are shared by all Cornell box variants
func cornellSettings() Settings {
	return Settings{
		CameraEye:       core.NewVec3(278, 278, -800), // Outside the open side, looking in
		CameraTarget:    core.NewVec3(278, 278, 0),
		Width:           720,
		Height:          720,
		FOV:             38,
		FocusDistance:   10,
		DefocusAngle:    0,
		SamplesPerPixel: 500,
		MaxBounces:      50,
		Background:      blackBackground(),
	}
}

// cornellMaterials holds the wall materials registered in a Cornell world
type cornellMaterials struct {
	red, white, green, light core.MaterialRef
}

// addCornellWalls registers the wall materials and adds the five walls and the ceiling
// light. lightCorner, lightU and lightV describe the light quad just below the ceiling.
func addCornellWalls(world *World, lightCorner, lightU, lightV core.Vec3) cornellMaterials {
	m := cornellMaterials{
		red:   world.RegisterMaterial(material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))),
		white: world.RegisterMaterial(material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))),
		green: world.RegisterMaterial(material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))),
		light: world.RegisterMaterial(material.NewDiffuseLight(core.NewVec3(15, 15, 15))),
	}

	size := cornellBoxSize
	world.Add(
		geometry.NewQuad(core.NewVec3(size, 0, 0), core.NewVec3(0, size, 0), core.NewVec3(0, 0, size), m.green), // right wall
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, size, 0), core.NewVec3(0, 0, size), m.red),      // left wall
		geometry.NewQuad(lightCorner, lightU, lightV, m.light),
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(size, 0, 0), core.NewVec3(0, 0, size), m.white),            // floor
		geometry.NewQuad(core.NewVec3(size, size, size), core.NewVec3(-size, 0, 0), core.NewVec3(0, 0, -size), m.white), // ceiling
		geometry.NewQuad(core.NewVec3(0, 0, size), core.NewVec3(size, 0, 0), core.NewVec3(0, size, 0), m.white),         // back wall
	)

	return m
}

// addLargeCeilingLight adds the walls with the 245x245 light used by the box variants
func addLargeCeilingLight(world *World) cornellMaterials {
	return addCornellWalls(world,
		core.NewVec3(400, 554, 400),
		core.NewVec3(-(400-155), 0, 0),
		core.NewVec3(0, 0, -(400-155)),
	)
}

// cornellBlocks returns the classic tall and short blocks, rotated and placed in the box
func cornellBlocks(mat core.MaterialRef) (tall, short geometry.Shape) {
	tall = geometry.NewTranslate(
		geometry.NewRotateY(geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), mat), 15),
		core.NewVec3(265, 0, 295),
	)
	short = geometry.NewTranslate(
		geometry.NewRotateY(geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), mat), -18),
		core.NewVec3(130, 0, 65),
	)
	return tall, short
}

// EmptyCornellBox is the Cornell box without its blocks
type EmptyCornellBox struct{}

// DefaultSettings implements Scene
func (s *EmptyCornellBox) DefaultSettings() Settings {
	return cornellSettings()
}

// Build implements Scene
func (s *EmptyCornellBox) Build(random *rand.Rand) (*World, error) {
	world := NewWorld()
	addCornellWalls(world,
		core.NewVec3(343, 554, 332),
		core.NewVec3(-130, 0, 0),
		core.NewVec3(0, 0, -105),
	)
	world.Build(random)
	return world, nil
}

// CornellBox is the classic Cornell box with two rotated white blocks
type CornellBox struct{}

// DefaultSettings implements Scene
func (s *CornellBox) DefaultSettings() Settings {
	return cornellSettings()
}

// Build implements Scene
func (s *CornellBox) Build(random *rand.Rand) (*World, error) {
	world := NewWorld()
	m := addLargeCeilingLight(world)

	tall, short := cornellBlocks(m.white)
	world.Add(tall, short)

	world.Build(random)
	return world, nil
}

// CornellSmoke replaces the Cornell blocks with black and white smoke
type CornellSmoke struct{}

// DefaultSettings implements Scene
func (s *CornellSmoke) DefaultSettings() Settings {
	return cornellSettings()
}

// Build implements Scene
func (s *CornellSmoke) Build(random *rand.Rand) (*World, error) {
	world := NewWorld()
	m := addLargeCeilingLight(world)

	tall, short := cornellBlocks(m.white)
	darkSmoke := world.RegisterMaterial(material.NewIsotropic(core.NewVec3(0, 0, 0)))
	lightSmoke := world.RegisterMaterial(material.NewIsotropic(core.NewVec3(1, 1, 1)))

	world.Add(
		geometry.NewConstantVolume(tall, 0.01, darkSmoke),
		geometry.NewConstantVolume(short, 0.01, lightSmoke),
	)

	world.Build(random)
	return world, nil
}
