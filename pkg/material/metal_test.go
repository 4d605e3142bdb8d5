package material

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestMetal_FuzzClamped(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{-0.5, 0},
		{0.3, 0.3},
		{2, 1},
	}

	for _, tt := range tests {
		if got := NewMetal(core.NewVec3(1, 1, 1), tt.input).Fuzzness; got != tt.expected {
			t.Errorf("NewMetal fuzz %v: expected %v, got %v", tt.input, tt.expected, got)
		}
	}
}

func TestMetal_PerfectMirror(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.8, 0.7)
	metal := NewMetal(albedo, 0)
	ray := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))

	scatter, didScatter := metal.Scatter(ray, upHit(), newRandomSampler(1))
	if !didScatter {
		t.Fatal("Expected perfect mirror to scatter")
	}

	expected := core.NewVec3(1, 1, 0).Normalize()
	got := scatter.Scattered.Direction
	if math.Abs(got.X-expected.X) > 1e-12 || math.Abs(got.Y-expected.Y) > 1e-12 || math.Abs(got.Z) > 1e-12 {
		t.Errorf("Expected reflected direction %v, got %v", expected, got)
	}
	if scatter.Attenuation != albedo {
		t.Errorf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
	}
}

func TestMetal_FuzzyGrazingRaysAlwaysScatter(t *testing.T) {
	albedo := core.NewVec3(0.7, 0.6, 0.5)
	metal := NewMetal(albedo, 1)
	hit := upHit()
	sampler := newRandomSampler(9)

	// Fuzz pushes about half of these reflections below the surface; they still scatter
	ray := core.NewRay(core.NewVec3(-1, 1e-3, 0), core.NewVec3(1, -1e-3, 0))
	below := 0
	for i := 0; i < 10000; i++ {
		scatter, didScatter := metal.Scatter(ray, hit, sampler)
		if !didScatter {
			t.Fatalf("Sample %d: expected fuzzy metal to scatter", i)
		}
		if scatter.Attenuation != albedo {
			t.Fatalf("Sample %d: expected attenuation %v, got %v", i, albedo, scatter.Attenuation)
		}
		if scatter.Scattered.Direction.Dot(hit.Normal) <= 0 {
			below++
		}
	}
	if below == 0 {
		t.Error("Expected some fuzzed directions below the surface")
	}
}
