package renderer

import (
	"errors"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/scene"
)

var errWorkerPoolClosed = errors.New("worker pool closed unexpectedly")

// RenderConfig contains configuration for a single-pass batch render
type RenderConfig struct {
	TileSize   int   // Size of each square tile in pixels
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Base seed for the per-tile random streams
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileSize:   32,
		NumWorkers: 0, // Auto-detect CPU count
		Seed:       42,
	}
}

// Raytracer renders a world with Settings.SamplesPerPixel samples in one pass
type Raytracer struct {
	world        *scene.World
	settings     scene.Settings
	config       RenderConfig
	camera       *Camera
	tileRenderer *TileRenderer
	logger       core.Logger
}

// NewRaytracer creates a batch raytracer. The world must already be built.
func NewRaytracer(world *scene.World, settings scene.Settings, config RenderConfig, logger core.Logger) (*Raytracer, error) {
	if err := validateRenderInputs(world, settings, config.TileSize, config.NumWorkers); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	camera := NewCamera(settings)
	return &Raytracer{
		world:        world,
		settings:     settings,
		config:       config,
		camera:       camera,
		tileRenderer: NewTileRenderer(camera, world, integrator.NewPathTracingIntegrator(settings)),
		logger:       logger,
	}, nil
}

// Render accumulates every sample of every pixel and returns the final frame
func (rt *Raytracer) Render() (*Frame, RenderStats, error) {
	width, height := rt.settings.Width, rt.settings.Height
	samples := rt.settings.SamplesPerPixel

	pixels := make([]PixelStats, width*height)
	tiles := NewTileGrid(width, height, rt.config.TileSize, rt.config.Seed)

	rt.logger.Printf("Rendering %dx%d at %d samples per pixel (%d tiles, %d workers)...\n",
		width, height, samples, len(tiles), workerCount(rt.config.NumWorkers))

	if err := renderTiles(rt.tileRenderer, tiles, pixels, width, samples, rt.config.NumWorkers); err != nil {
		return nil, RenderStats{}, err
	}

	return newFrame(pixels, width, height), collectStats(pixels, samples), nil
}

// Camera returns the camera used for primary rays
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

func validateRenderInputs(world *scene.World, settings scene.Settings, tileSize, numWorkers int) error {
	if world == nil {
		return errors.New("world must not be nil")
	}
	if !world.Built() {
		return errors.New("world must be built before rendering")
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid render settings: %w", err)
	}
	if tileSize <= 0 {
		return fmt.Errorf("tile size must be positive, got %d", tileSize)
	}
	if numWorkers < 0 {
		return fmt.Errorf("worker count must not be negative, got %d", numWorkers)
	}
	return nil
}
