package renderer

import (
	"image"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// TileRenderer evaluates camera rays for the pixels of a tile using an integrator.
// It only reads shared state, so one instance serves every worker.
type TileRenderer struct {
	camera     *Camera
	world      *scene.World
	integrator integrator.Integrator
}

// NewTileRenderer creates a new tile renderer for a camera, world and integrator
func NewTileRenderer(camera *Camera, world *scene.World, integratorInst integrator.Integrator) *TileRenderer {
	return &TileRenderer{
		camera:     camera,
		world:      world,
		integrator: integratorInst,
	}
}

// RenderTileBounds adds samples new samples to every pixel within bounds.
// pixels is the full row-major image buffer of the given width.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, pixels []PixelStats, width int, sampler core.Sampler, samples int) RenderStats {
	stats := tr.initRenderStatsForBounds(bounds, samples)

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			samplesUsed := tr.samplePixel(i, j, &pixels[j*width+i], sampler, samples)
			tr.updateStats(&stats, samplesUsed)
		}
	}

	tr.finalizeStats(&stats)
	return stats
}

// samplePixel sums a batch of integrator evaluations and folds it into the pixel
func (tr *TileRenderer) samplePixel(i, j int, ps *PixelStats, sampler core.Sampler, samples int) int {
	var sum core.Vec3
	for s := 0; s < samples; s++ {
		ray := tr.camera.GetRay(i, j, sampler)
		sum = sum.Add(tr.integrator.RayColor(ray, tr.world, sampler))
	}
	ps.AddBatch(sum, samples)
	return samples
}

// initRenderStatsForBounds initializes the render statistics tracking for specific bounds
func (tr *TileRenderer) initRenderStatsForBounds(bounds image.Rectangle, maxSamples int) RenderStats {
	pixelCount := bounds.Dx() * bounds.Dy()
	return RenderStats{
		TotalPixels:    pixelCount,
		TotalSamples:   0,
		AverageSamples: 0,
		MaxSamples:     maxSamples,
		MinSamples:     maxSamples, // Start with max, will be reduced
		MaxSamplesUsed: 0,
	}
}

// updateStats updates the render statistics with data from a single pixel
func (tr *TileRenderer) updateStats(stats *RenderStats, samplesUsed int) {
	stats.TotalSamples += samplesUsed
	stats.MinSamples = min(stats.MinSamples, samplesUsed)
	stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, samplesUsed)
}

// finalizeStats calculates final statistics after all pixels are rendered
func (tr *TileRenderer) finalizeStats(stats *RenderStats) {
	if stats.TotalPixels == 0 {
		stats.MinSamples = 0
		return
	}
	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
}
