package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	TileSize           int   // Size of each square tile in pixels
	BatchSize          int   // Samples per pixel added by each pass
	MaxSamplesPerPixel int   // Total samples per pixel (0 = use Settings.SamplesPerPixel)
	NumWorkers         int   // Number of parallel workers (0 = use CPU count)
	Seed               int64 // Base seed for the per-tile random streams
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		TileSize:           32,
		BatchSize:          10,
		MaxSamplesPerPixel: 0,
		NumWorkers:         0,
		Seed:               42,
	}
}

// PassResult is a snapshot of the image after a completed pass
type PassResult struct {
	PassNumber int
	Frame      *Frame // Copy of the accumulation buffer, safe to keep
	Stats      RenderStats
	IsLast     bool
	Elapsed    time.Duration // Time spent in this pass
}

// ProgressiveRaytracer refines an image over several passes.
// Pixels hold running averages, so the image after the last pass matches a batch
// render with the same total sample count.
type ProgressiveRaytracer struct {
	width, height int
	config        ProgressiveConfig
	tiles         []*Tile // Tiles keep their random streams across passes
	pixels        []PixelStats
	tileRenderer  *TileRenderer
	samplesDone   int
	passesDone    int
	logger        core.Logger
}

// NewProgressiveRaytracer creates a new progressive raytracer. The world must already be built.
func NewProgressiveRaytracer(world *scene.World, settings scene.Settings, config ProgressiveConfig, logger core.Logger) (*ProgressiveRaytracer, error) {
	if err := validateRenderInputs(world, settings, config.TileSize, config.NumWorkers); err != nil {
		return nil, err
	}
	if config.BatchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", config.BatchSize)
	}
	if config.MaxSamplesPerPixel < 0 {
		return nil, fmt.Errorf("max samples per pixel must not be negative, got %d", config.MaxSamplesPerPixel)
	}
	if config.MaxSamplesPerPixel == 0 {
		config.MaxSamplesPerPixel = settings.SamplesPerPixel
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	camera := NewCamera(settings)
	return &ProgressiveRaytracer{
		width:        settings.Width,
		height:       settings.Height,
		config:       config,
		tiles:        NewTileGrid(settings.Width, settings.Height, config.TileSize, config.Seed),
		pixels:       make([]PixelStats, settings.Width*settings.Height),
		tileRenderer: NewTileRenderer(camera, world, integrator.NewPathTracingIntegrator(settings)),
		logger:       logger,
	}, nil
}

// TotalPasses returns the number of passes needed to reach MaxSamplesPerPixel
func (pr *ProgressiveRaytracer) TotalPasses() int {
	return (pr.config.MaxSamplesPerPixel + pr.config.BatchSize - 1) / pr.config.BatchSize
}

// SamplesPerPixel returns the samples accumulated in every pixel so far
func (pr *ProgressiveRaytracer) SamplesPerPixel() int {
	return pr.samplesDone
}

// samplesForNextPass returns the batch size, truncated so the total never exceeds the maximum
func (pr *ProgressiveRaytracer) samplesForNextPass() int {
	return min(pr.config.BatchSize, pr.config.MaxSamplesPerPixel-pr.samplesDone)
}

// RenderPass renders one pass to completion and returns a snapshot of the result
func (pr *ProgressiveRaytracer) RenderPass(passNumber int) (PassResult, error) {
	samples := pr.samplesForNextPass()
	if samples <= 0 {
		return PassResult{}, fmt.Errorf("all %d samples per pixel already rendered", pr.config.MaxSamplesPerPixel)
	}

	pr.logger.Printf("Pass %d: adding %d samples per pixel (using %d workers)...\n",
		passNumber, samples, workerCount(pr.config.NumWorkers))

	startTime := time.Now()
	if err := renderTiles(pr.tileRenderer, pr.tiles, pr.pixels, pr.width, samples, pr.config.NumWorkers); err != nil {
		return PassResult{}, err
	}
	pr.samplesDone += samples
	pr.passesDone++

	return PassResult{
		PassNumber: passNumber,
		Frame:      newFrame(pr.pixels, pr.width, pr.height),
		Stats:      collectStats(pr.pixels, pr.samplesDone),
		IsLast:     pr.samplesDone >= pr.config.MaxSamplesPerPixel,
		Elapsed:    time.Since(startTime),
	}, nil
}

// RenderProgressive runs the remaining passes in a producer goroutine.
// The pass channel holds only the latest snapshot: an unread older pass is replaced by
// a newer one, so a slow reader never blocks rendering. The context is checked between
// passes; a pass in flight always completes. Both channels are closed when rendering ends.
func (pr *ProgressiveRaytracer) RenderProgressive(ctx context.Context) (<-chan PassResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(errChan)
		defer close(passChan)

		total := pr.TotalPasses()
		pr.logger.Printf("Starting progressive rendering with %d passes...\n", total)

		for pass := pr.passesDone + 1; pass <= total; pass++ {
			// Check if the caller gave up before starting this pass
			select {
			case <-ctx.Done():
				pr.logger.Printf("Rendering cancelled before pass %d\n", pass)
				errChan <- ctx.Err()
				return
			default:
			}

			result, err := pr.RenderPass(pass)
			if err != nil {
				errChan <- err
				return
			}

			pr.logger.Printf("Pass %d completed in %v (%d samples/pixel)\n",
				pass, result.Elapsed, pr.samplesDone)

			publishLatest(passChan, result)
		}

		pr.logger.Printf("Reached maximum samples per pixel (%d), stopping.\n", pr.config.MaxSamplesPerPixel)
	}()

	return passChan, errChan
}

// publishLatest sends result without blocking, discarding an unread older snapshot.
// It relies on being the only sender on ch.
func publishLatest(ch chan PassResult, result PassResult) {
	for {
		select {
		case ch <- result:
			return
		default:
		}

		select {
		case <-ch:
		default:
		}
	}
}
