package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, 0)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, forwardT, nil)
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, 0)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, forwardT, nil)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected FrontFace=%v, got %v", tt.expectedFront, hit.FrontFace)
			}
			if !vecNear(hit.Normal, tt.expectedNormal, 1e-9) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestSphere_Hit_HalfRadius(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 0.5, 3)
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, core.NewInterval(0, math.Inf(1)), nil)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.T-0.5) > 1e-12 {
		t.Errorf("Expected t=0.5, got %f", hit.T)
	}
	if !vecNear(hit.Point, core.NewVec3(0, 0, 0.5), 1e-12) {
		t.Errorf("Expected point (0,0,0.5), got %v", hit.Point)
	}
	if !vecNear(hit.Normal, core.NewVec3(0, 0, 1), 1e-12) || !hit.FrontFace {
		t.Errorf("Expected front-facing normal (0,0,1), got %v (front=%v)", hit.Normal, hit.FrontFace)
	}
	if hit.Material != 3 {
		t.Errorf("Expected material ref 3, got %d", hit.Material)
	}
}

func TestSphere_Hit_RespectsInterval(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, 0)
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	// Only the far root lies in the interval
	hit, isHit := sphere.Hit(ray, core.NewInterval(4.5, 10), nil)
	if !isHit || math.Abs(hit.T-6) > 1e-9 {
		t.Errorf("Expected far hit at t=6, got %v (hit=%v)", hit, isHit)
	}

	if _, isHit := sphere.Hit(ray, core.NewInterval(0, 3.9), nil); isHit {
		t.Error("Expected miss when interval ends before the sphere")
	}
}

func TestSphere_ZeroRadiusNeverHits(t *testing.T) {
	tests := []struct {
		name   string
		sphere *Sphere
	}{
		{"zero radius", NewSphere(core.NewVec3(0, 0, 0), 0, 0)},
		{"negative radius clamped", NewMovingSphere(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 0), -1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Aimed straight at the center, so the discriminant is exactly zero
			ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
			if hit, isHit := tt.sphere.Hit(ray, forwardT, nil); isHit {
				t.Errorf("Expected miss, got hit at t=%v with normal %v", hit.T, hit.Normal)
			}
		})
	}
}

func TestSphere_SmallSphereNearerThanGround(t *testing.T) {
	ground := NewSphere(core.NewVec3(0, -1000, 0), 1000, 0)
	small := NewSphere(core.NewVec3(0, 0, 0), 0.5, 1)
	random := rand.New(rand.NewSource(7))

	aggregates := []struct {
		name  string
		shape Shape
	}{
		{"shape list", NewShapeList(ground, small)},
		{"bvh", NewBVH([]Shape{ground, small}, random)},
	}

	const rays = 200
	for _, agg := range aggregates {
		t.Run(agg.name, func(t *testing.T) {
			bothHit := 0
			for i := 0; i < rays; i++ {
				// Aim from above at a point inside the small sphere and above the ground
				origin := core.NewVec3(random.Float64()*4-2, 2+random.Float64()*2, random.Float64()*4-2)
				var target core.Vec3
				for {
					target = core.NewVec3(random.Float64()*0.8-0.4, 0.05+random.Float64()*0.35, random.Float64()*0.8-0.4)
					if target.Length() < 0.45 {
						break
					}
				}
				ray := core.NewRay(origin, target.Subtract(origin))

				smallHit, hitsSmall := small.Hit(ray, forwardT, nil)
				_, hitsGround := ground.Hit(ray, forwardT, nil)
				if !hitsSmall || !hitsGround {
					continue
				}
				bothHit++

				hit, isHit := agg.shape.Hit(ray, forwardT, nil)
				if !isHit {
					t.Fatalf("Ray %d: expected hit, got miss", i)
				}
				if hit.Material != 1 || math.Abs(hit.T-smallHit.T) > 1e-9 {
					t.Errorf("Ray %d: expected small sphere at t=%v, got material %d at t=%v", i, smallHit.T, hit.Material, hit.T)
				}
			}
			if bothHit < rays/2 {
				t.Errorf("Expected most downward rays to cross both spheres, got %d of %d", bothHit, rays)
			}
		})
	}
}

func TestSphereUV(t *testing.T) {
	tests := []struct {
		point core.Vec3
		u, v  float64
	}{
		{core.NewVec3(1, 0, 0), 0.5, 0.5},
		{core.NewVec3(-1, 0, 0), 0.0, 0.5},
		{core.NewVec3(0, 1, 0), 0.5, 1.0},
		{core.NewVec3(0, -1, 0), 0.5, 0.0},
		{core.NewVec3(0, 0, 1), 0.25, 0.5},
		{core.NewVec3(0, 0, -1), 0.75, 0.5},
	}

	for _, tt := range tests {
		uv := SphereUV(tt.point)
		if math.Abs(uv.X-tt.u) > 1e-9 || math.Abs(uv.Y-tt.v) > 1e-9 {
			t.Errorf("SphereUV(%v): expected (%v, %v), got (%v, %v)", tt.point, tt.u, tt.v, uv.X, uv.Y)
		}
	}
}

func TestMovingSphere(t *testing.T) {
	sphere := NewMovingSphere(core.NewVec3(0, 0, 0), core.NewVec3(0, 2, 0), 0.5, 0)

	if got := sphere.Center(0.5); !vecNear(got, core.NewVec3(0, 1, 0), 1e-12) {
		t.Errorf("Expected center (0,1,0) at t=0.5, got %v", got)
	}

	// A horizontal ray at y=2 hits only late in the shutter interval
	origin, direction := core.NewVec3(-5, 2, 0), core.NewVec3(1, 0, 0)
	if _, isHit := sphere.Hit(core.NewRayAtTime(origin, direction, 0), forwardT, nil); isHit {
		t.Error("Expected miss at time 0")
	}
	if _, isHit := sphere.Hit(core.NewRayAtTime(origin, direction, 0.99), forwardT, nil); !isHit {
		t.Error("Expected hit at time 0.99")
	}

	box := sphere.BoundingBox()
	if box.Y.Min > -0.5 || box.Y.Max < 2.5 {
		t.Errorf("Expected bounding box to cover the whole motion, got Y [%v, %v]", box.Y.Min, box.Y.Max)
	}
}
