package renderer

import (
	"context"
	"errors"
	"testing"
)

func newTestProgressive(t *testing.T, batch, maxSamples int) *ProgressiveRaytracer {
	t.Helper()
	config := ProgressiveConfig{TileSize: 2, BatchSize: batch, MaxSamplesPerPixel: maxSamples, NumWorkers: 2, Seed: 5}
	pr, err := NewProgressiveRaytracer(newSphereWorld(), testSettings(4, 3, maxSamples), config, &recordingLogger{})
	if err != nil {
		t.Fatalf("NewProgressiveRaytracer failed: %v", err)
	}
	return pr
}

func TestProgressiveTotalPasses(t *testing.T) {
	tests := []struct {
		batch, maxSamples int
		expected          int
	}{
		{10, 100, 10},
		{3, 10, 4},
		{16, 10, 1},
		{1, 1, 1},
	}

	for _, tt := range tests {
		pr := newTestProgressive(t, tt.batch, tt.maxSamples)
		if got := pr.TotalPasses(); got != tt.expected {
			t.Errorf("Batch %d max %d: expected %d passes, got %d", tt.batch, tt.maxSamples, tt.expected, got)
		}
	}
}

func TestProgressiveReachesExactSampleCount(t *testing.T) {
	pr := newTestProgressive(t, 3, 10)
	expectedCounts := []int{3, 6, 9, 10}

	for i, expected := range expectedCounts {
		result, err := pr.RenderPass(i + 1)
		if err != nil {
			t.Fatalf("Pass %d failed: %v", i+1, err)
		}
		for p, count := range result.Frame.Samples {
			if count != expected {
				t.Fatalf("Pass %d pixel %d: expected %d samples, got %d", i+1, p, expected, count)
			}
		}
		if result.IsLast != (i == len(expectedCounts)-1) {
			t.Errorf("Pass %d: unexpected IsLast %v", i+1, result.IsLast)
		}
		if result.Stats.MaxSamples != expected {
			t.Errorf("Pass %d: expected stats for %d samples, got %d", i+1, expected, result.Stats.MaxSamples)
		}
	}

	if _, err := pr.RenderPass(5); err == nil {
		t.Error("Expected an error once every sample has been rendered")
	}
}

func TestProgressiveMatchesBatchRender(t *testing.T) {
	world := newSphereWorld()
	settings := testSettings(4, 3, 10)

	// One pixel per tile gives every pixel its own random stream
	rt, err := NewRaytracer(world, settings, RenderConfig{TileSize: 1, NumWorkers: 3, Seed: 8}, &recordingLogger{})
	if err != nil {
		t.Fatalf("NewRaytracer failed: %v", err)
	}
	batch, _, err := rt.Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	pr, err := NewProgressiveRaytracer(world, settings, ProgressiveConfig{TileSize: 1, BatchSize: 3, NumWorkers: 2, Seed: 8}, &recordingLogger{})
	if err != nil {
		t.Fatalf("NewProgressiveRaytracer failed: %v", err)
	}
	var last PassResult
	for pass := 1; pass <= pr.TotalPasses(); pass++ {
		if last, err = pr.RenderPass(pass); err != nil {
			t.Fatalf("Pass %d failed: %v", pass, err)
		}
	}

	if !last.IsLast {
		t.Fatal("Expected the final pass to be marked last")
	}
	for i := range batch.Pixels {
		if !vecNear(batch.Pixels[i], last.Frame.Pixels[i], 1e-9) {
			t.Errorf("Pixel %d: batch %v, progressive %v", i, batch.Pixels[i], last.Frame.Pixels[i])
		}
	}
}

func TestRenderProgressiveDoesNotBlockWithoutReader(t *testing.T) {
	pr := newTestProgressive(t, 2, 9)

	passChan, errChan := pr.RenderProgressive(context.Background())

	// Nobody reads passes until the producer has finished
	for err := range errChan {
		t.Fatalf("Unexpected error: %v", err)
	}

	result, ok := <-passChan
	if !ok {
		t.Fatal("Expected the latest pass to be waiting")
	}
	if result.PassNumber != 5 || !result.IsLast {
		t.Errorf("Expected last pass 5, got pass %d (last %v)", result.PassNumber, result.IsLast)
	}
	if _, ok := <-passChan; ok {
		t.Error("Expected only the latest snapshot to be kept")
	}
	if pr.SamplesPerPixel() != 9 {
		t.Errorf("Expected 9 samples per pixel, got %d", pr.SamplesPerPixel())
	}
}

func TestRenderProgressiveDeliversIncreasingPasses(t *testing.T) {
	pr := newTestProgressive(t, 1, 6)

	passChan, errChan := pr.RenderProgressive(context.Background())

	previous := 0
	var last PassResult
	for result := range passChan {
		if result.PassNumber <= previous {
			t.Errorf("Expected increasing pass numbers, got %d after %d", result.PassNumber, previous)
		}
		previous = result.PassNumber
		last = result
	}
	if err := <-errChan; err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !last.IsLast || last.PassNumber != 6 {
		t.Errorf("Expected to end on pass 6, got %d", last.PassNumber)
	}
}

func TestRenderProgressiveCancelledBeforeStart(t *testing.T) {
	pr := newTestProgressive(t, 1, 4)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	passChan, errChan := pr.RenderProgressive(ctx)

	if err := <-errChan; !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if _, ok := <-passChan; ok {
		t.Error("Expected no passes after cancellation")
	}
	if pr.SamplesPerPixel() != 0 {
		t.Errorf("Expected no samples, got %d", pr.SamplesPerPixel())
	}
}

func TestRenderProgressiveStopsBetweenPasses(t *testing.T) {
	pr := newTestProgressive(t, 1, 100000)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	passChan, errChan := pr.RenderProgressive(ctx)

	first, ok := <-passChan
	if !ok {
		t.Fatal("Expected a first pass")
	}
	cancel()

	for range passChan {
	}
	if err := <-errChan; !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}

	done := pr.SamplesPerPixel()
	if done < first.Stats.MaxSamples || done >= 100000 {
		t.Errorf("Expected rendering to stop early after complete passes, got %d samples", done)
	}
	for p, count := range first.Frame.Samples {
		if count != first.Stats.MaxSamples {
			t.Errorf("Pixel %d: snapshot has %d samples, expected %d", p, count, first.Stats.MaxSamples)
		}
	}
}

func TestPublishLatestReplacesUnreadSnapshot(t *testing.T) {
	ch := make(chan PassResult, 1)

	for pass := 1; pass <= 3; pass++ {
		publishLatest(ch, PassResult{PassNumber: pass})
	}

	if got := <-ch; got.PassNumber != 3 {
		t.Errorf("Expected pass 3, got %d", got.PassNumber)
	}
	select {
	case extra := <-ch:
		t.Errorf("Expected an empty channel, got pass %d", extra.PassNumber)
	default:
	}
}

func TestNewProgressiveRaytracerValidation(t *testing.T) {
	world := newEmptyWorld()
	settings := testSettings(4, 4, 8)

	if _, err := NewProgressiveRaytracer(world, settings, ProgressiveConfig{TileSize: 4, BatchSize: 0}, nil); err == nil {
		t.Error("Expected an error for a zero batch size")
	}
	if _, err := NewProgressiveRaytracer(world, settings, ProgressiveConfig{TileSize: 4, BatchSize: 2, MaxSamplesPerPixel: -1}, nil); err == nil {
		t.Error("Expected an error for negative max samples")
	}

	pr, err := NewProgressiveRaytracer(world, settings, DefaultProgressiveConfig(), &recordingLogger{})
	if err != nil {
		t.Fatalf("NewProgressiveRaytracer failed: %v", err)
	}
	if pr.TotalPasses() != 1 {
		t.Errorf("Expected settings' 8 samples in one default batch, got %d passes", pr.TotalPasses())
	}
}
