package renderer

import "github.com/df07/go-pathtracer/pkg/core"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int     // Total number of pixels rendered
	TotalSamples   int     // Total number of samples taken
	AverageSamples float64 // Average samples per pixel
	MaxSamples     int     // Samples per pixel requested so far
	MinSamples     int     // Minimum samples taken per pixel
	MaxSamplesUsed int     // Maximum samples actually used by any pixel
}

// PixelStats holds the running average color of a single pixel
type PixelStats struct {
	Color       core.Vec3 // Average of all samples so far
	SampleCount int       // Number of samples taken
}

// AddBatch folds the sum of n new samples into the running average
func (ps *PixelStats) AddBatch(sum core.Vec3, n int) {
	if n <= 0 {
		return
	}
	total := ps.SampleCount + n
	ps.Color = ps.Color.Multiply(float64(ps.SampleCount)).Add(sum).Divide(float64(total))
	ps.SampleCount = total
}

// collectStats summarizes the sample counts of a pixel buffer
func collectStats(pixels []PixelStats, maxSamples int) RenderStats {
	stats := RenderStats{
		TotalPixels: len(pixels),
		MaxSamples:  maxSamples,
	}
	if len(pixels) == 0 {
		return stats
	}

	stats.MinSamples = pixels[0].SampleCount
	for i := range pixels {
		count := pixels[i].SampleCount
		stats.TotalSamples += count
		stats.MinSamples = min(stats.MinSamples, count)
		stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, count)
	}
	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)

	return stats
}
