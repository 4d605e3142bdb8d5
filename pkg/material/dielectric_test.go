package material

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)

	// Exiting the glass at 60 degrees: ratio 1.5 * sin(60) > 1
	hit := upHit()
	hit.FrontFace = false
	direction := core.NewVec3(math.Sin(math.Pi/3), -math.Cos(math.Pi/3), 0)
	ray := core.NewRay(core.NewVec3(0, 1, 0), direction)

	for _, u := range []float64{0, 0.5, 0.999} {
		scatter, didScatter := glass.Scatter(ray, hit, fixedSampler{value: u})
		if !didScatter {
			t.Fatal("Dielectric should always scatter")
		}
		if scatter.Scattered.Direction.Y <= 0 {
			t.Errorf("u=%v: expected reflection above the surface, got %v", u, scatter.Scattered.Direction)
		}
		if scatter.Attenuation != core.NewVec3(1, 1, 1) {
			t.Errorf("Expected white attenuation, got %v", scatter.Attenuation)
		}
	}
}

func TestDielectric_RefractsAtNormalIncidence(t *testing.T) {
	glass := NewDielectric(1.5)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	// Reflectance at normal incidence is 0.04, so a sample of 0.5 refracts
	scatter, _ := glass.Scatter(ray, upHit(), fixedSampler{value: 0.5})
	got := scatter.Scattered.Direction
	if math.Abs(got.Y+1) > 1e-9 || math.Abs(got.X) > 1e-9 || math.Abs(got.Z) > 1e-9 {
		t.Errorf("Expected straight-through refraction, got %v", got)
	}

	// A sample below the reflectance reflects
	scatter, _ = glass.Scatter(ray, upHit(), fixedSampler{value: 0.01})
	if scatter.Scattered.Direction.Y <= 0 {
		t.Errorf("Expected reflection for small sample, got %v", scatter.Scattered.Direction)
	}
}

func TestDielectric_SnellsLaw(t *testing.T) {
	glass := NewDielectric(1.5)
	incident := math.Pi / 6
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(math.Sin(incident), -math.Cos(incident), 0))

	scatter, _ := glass.Scatter(ray, upHit(), fixedSampler{value: 0.999})
	refracted := scatter.Scattered.Direction.Normalize()
	sinOut := refracted.X

	if math.Abs(sinOut-math.Sin(incident)/1.5) > 1e-9 {
		t.Errorf("Expected sin(theta_t)=%f, got %f", math.Sin(incident)/1.5, sinOut)
	}
}

func TestReflectance(t *testing.T) {
	if got := Reflectance(1, 1/1.5); math.Abs(got-0.04) > 1e-12 {
		t.Errorf("Expected normal-incidence reflectance 0.04, got %f", got)
	}
	if got := Reflectance(0, 1/1.5); math.Abs(got-1) > 1e-12 {
		t.Errorf("Expected grazing reflectance 1, got %f", got)
	}
}
