package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"log"
	"math/rand"
	"net/url"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene        string  `json:"scene"`        // Catalog scene name (e.g., "cornell-box")
	Width        int     `json:"width"`        // Image width
	Height       int     `json:"height"`       // Image height
	Samples      int     `json:"samples"`      // Total samples per pixel
	BatchSize    int     `json:"batch"`        // Samples per pixel added by each pass
	MaxBounces   int     `json:"maxBounces"`   // Maximum ray bounce depth
	FOV          float64 `json:"fov"`          // Vertical field of view in degrees
	DefocusAngle float64 `json:"defocusAngle"` // Depth of field cone angle in degrees
	Seed         int     `json:"seed"`         // Seed for scene construction and sampling
}

// RenderingPipeline contains the configured scene and raytracer
type RenderingPipeline struct {
	Scene     scene.Scene
	World     *scene.World
	Settings  scene.Settings
	Raytracer *renderer.ProgressiveRaytracer
}

// PassUpdate is sent to clients after each delivered pass
type PassUpdate struct {
	Event          string  `json:"event"`
	RenderID       string  `json:"renderId"`
	PassNumber     int     `json:"passNumber"`
	TotalPasses    int     `json:"totalPasses"`
	ElapsedMs      int64   `json:"elapsedMs"`
	PassMs         int64   `json:"passMs"`
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	MaxSamples     int     `json:"maxSamples"`
	MinSamples     int     `json:"minSamples"`
	MaxSamplesUsed int     `json:"maxSamplesUsed"`
	PrimitiveCount int     `json:"primitiveCount"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	ImageData      string  `json:"imageData"` // Base64 encoded PNG
	IsLast         bool    `json:"isLast"`
}

// renderSink receives the events of one streamed render
type renderSink interface {
	Console(msg ConsoleMessage) error
	Pass(update PassUpdate) error
	Error(message string) error
	Complete() error
}

// parseRenderRequest validates query parameters, taking defaults from the scene's settings
func (s *Server) parseRenderRequest(values url.Values) (*RenderRequest, scene.Scene, error) {
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = DefaultScene
	}

	sceneObj, err := scene.LookupWithOptions(req.Scene, s.options)
	if err != nil {
		return nil, nil, err
	}
	defaults := sceneObj.DefaultSettings()

	if req.Width, err = parseIntParam(values, "width", defaults.Width, minImageSize, maxImageSize); err != nil {
		return nil, nil, err
	}
	if req.Height, err = parseIntParam(values, "height", defaults.Height, minImageSize, maxImageSize); err != nil {
		return nil, nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", defaults.SamplesPerPixel, minSamples, maxSamples); err != nil {
		return nil, nil, err
	}
	if req.BatchSize, err = parseIntParam(values, "batch", defaultBatchSize(req.Samples), minBatchSize, maxBatchSize); err != nil {
		return nil, nil, err
	}
	if req.MaxBounces, err = parseIntParam(values, "maxBounces", defaults.MaxBounces, minMaxBounces, maxMaxBounces); err != nil {
		return nil, nil, err
	}
	if req.FOV, err = parseFloatParam(values, "fov", defaults.FOV, 1, 179); err != nil {
		return nil, nil, err
	}
	if req.DefocusAngle, err = parseFloatParam(values, "defocusAngle", defaults.DefocusAngle, 0, 45); err != nil {
		return nil, nil, err
	}
	if req.Seed, err = parseIntParam(values, "seed", 42, 0, maxSeed); err != nil {
		return nil, nil, err
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, sceneObj, nil
}

// setupRenderingPipeline builds the world and configures a progressive raytracer
func (s *Server) setupRenderingPipeline(req *RenderRequest, sceneObj scene.Scene, logger core.Logger) (*RenderingPipeline, error) {
	startTime := time.Now()
	world, err := sceneObj.Build(rand.New(rand.NewSource(int64(req.Seed))))
	if err != nil {
		return nil, fmt.Errorf("failed to build scene %s: %w", req.Scene, err)
	}
	logger.Printf("Built scene %s with %d shapes in %v\n", req.Scene, world.ShapeCount(), time.Since(startTime))

	settings := sceneObj.DefaultSettings()
	settings.Width = req.Width
	settings.Height = req.Height
	settings.SamplesPerPixel = req.Samples
	settings.MaxBounces = req.MaxBounces
	settings.FOV = req.FOV
	settings.DefocusAngle = req.DefocusAngle

	config := renderer.ProgressiveConfig{
		TileSize:           DefaultTileSize,
		BatchSize:          req.BatchSize,
		MaxSamplesPerPixel: req.Samples,
		NumWorkers:         0, // Auto-detect
		Seed:               int64(req.Seed),
	}

	raytracer, err := renderer.NewProgressiveRaytracer(world, settings, config, logger)
	if err != nil {
		return nil, err
	}
	return &RenderingPipeline{
		Scene:     sceneObj,
		World:     world,
		Settings:  settings,
		Raytracer: raytracer,
	}, nil
}

// streamRender runs the pipeline and forwards console, pass and terminal events to sink.
// It returns when rendering ends, the context is cancelled or the sink fails.
func streamRender(ctx context.Context, renderID string, pipeline *RenderingPipeline, consoleChan <-chan ConsoleMessage, sink renderSink) {
	startTime := time.Now()
	totalPasses := pipeline.Raytracer.TotalPasses()
	passChan, errChan := pipeline.Raytracer.RenderProgressive(ctx)

	for passChan != nil || errChan != nil {
		select {
		case msg := <-consoleChan:
			if err := sink.Console(msg); err != nil {
				return
			}

		case result, ok := <-passChan:
			if !ok {
				passChan = nil // Channel closed
				continue
			}
			update, err := newPassUpdate(renderID, result, totalPasses, pipeline.World.ShapeCount(), startTime)
			if err != nil {
				log.Printf("Error encoding pass %d image: %v", result.PassNumber, err)
				continue
			}
			if err := sink.Pass(update); err != nil {
				return
			}

		case err, ok := <-errChan:
			if !ok {
				errChan = nil // Rendering finished
				continue
			}
			if ctx.Err() != nil {
				return
			}
			sink.Error(fmt.Sprintf("Rendering failed: %v", err))
			return

		case <-ctx.Done():
			// Client disconnected
			return
		}
	}

	drainConsole(consoleChan, sink)
	sink.Complete()
}

// drainConsole forwards console messages that are still buffered
func drainConsole(consoleChan <-chan ConsoleMessage, sink renderSink) {
	for {
		select {
		case msg := <-consoleChan:
			if err := sink.Console(msg); err != nil {
				return
			}
		default:
			return
		}
	}
}

func newPassUpdate(renderID string, result renderer.PassResult, totalPasses, primitiveCount int, startTime time.Time) (PassUpdate, error) {
	imageData, err := imageToBase64PNG(result.Frame.Image())
	if err != nil {
		return PassUpdate{}, err
	}

	return PassUpdate{
		Event:          "passComplete",
		RenderID:       renderID,
		PassNumber:     result.PassNumber,
		TotalPasses:    totalPasses,
		ElapsedMs:      time.Since(startTime).Milliseconds(),
		PassMs:         result.Elapsed.Milliseconds(),
		TotalPixels:    result.Stats.TotalPixels,
		TotalSamples:   result.Stats.TotalSamples,
		AverageSamples: result.Stats.AverageSamples,
		MaxSamples:     result.Stats.MaxSamples,
		MinSamples:     result.Stats.MinSamples,
		MaxSamplesUsed: result.Stats.MaxSamplesUsed,
		PrimitiveCount: primitiveCount,
		Width:          result.Frame.Width,
		Height:         result.Frame.Height,
		ImageData:      imageData,
		IsLast:         result.IsLast,
	}, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
