package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestQuad_Hit(t *testing.T) {
	// Unit quad in the XY plane at z=0, normal +Z
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), 2)

	tests := []struct {
		name       string
		ray        core.Ray
		expectHit  bool
		expectedT  float64
		expectedUV core.Vec2
		frontFace  bool
	}{
		{
			name:       "center hit from front",
			ray:        core.NewRay(core.NewVec3(0.5, 0.5, 1), core.NewVec3(0, 0, -1)),
			expectHit:  true,
			expectedT:  1,
			expectedUV: core.NewVec2(0.5, 0.5),
			frontFace:  true,
		},
		{
			name:       "corner hit from behind",
			ray:        core.NewRay(core.NewVec3(0.25, 0.75, -2), core.NewVec3(0, 0, 1)),
			expectHit:  true,
			expectedT:  2,
			expectedUV: core.NewVec2(0.25, 0.75),
			frontFace:  false,
		},
		{
			name:      "outside bounds",
			ray:       core.NewRay(core.NewVec3(1.5, 0.5, 1), core.NewVec3(0, 0, -1)),
			expectHit: false,
		},
		{
			name:      "parallel ray",
			ray:       core.NewRay(core.NewVec3(0.5, 0.5, 1), core.NewVec3(1, 0, 0)),
			expectHit: false,
		},
		{
			name:      "behind origin",
			ray:       core.NewRay(core.NewVec3(0.5, 0.5, 1), core.NewVec3(0, 0, 1)),
			expectHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := quad.Hit(tt.ray, forwardT, nil)
			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%v, got %v", tt.expectHit, isHit)
			}
			if !isHit {
				return
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, hit.T)
			}
			if math.Abs(hit.UV.X-tt.expectedUV.X) > 1e-9 || math.Abs(hit.UV.Y-tt.expectedUV.Y) > 1e-9 {
				t.Errorf("Expected UV %v, got %v", tt.expectedUV, hit.UV)
			}
			if hit.FrontFace != tt.frontFace {
				t.Errorf("Expected FrontFace=%v, got %v", tt.frontFace, hit.FrontFace)
			}
			if hit.Normal.Dot(tt.ray.Direction) >= 0 {
				t.Errorf("Expected normal %v to face against the ray", hit.Normal)
			}
			if hit.Material != 2 {
				t.Errorf("Expected material 2, got %d", hit.Material)
			}
		})
	}
}

func TestQuad_HitClosedInterval(t *testing.T) {
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), 0)
	ray := core.NewRay(core.NewVec3(0.5, 0.5, 1), core.NewVec3(0, 0, -1))

	if _, isHit := quad.Hit(ray, core.NewInterval(0, 1), nil); !isHit {
		t.Error("Expected hit exactly at the interval bound")
	}
}

func TestQuad_BoundingBox(t *testing.T) {
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), 0)
	box := quad.BoundingBox()

	if box.X.Min != 0 || box.X.Max != 1 || box.Z.Min != 0 || box.Z.Max != 1 {
		t.Errorf("Unexpected bounding box %v", box)
	}
	if box.Y.Size() < core.MinimumExtent-1e-12 {
		t.Errorf("Expected flat axis to be padded, got size %v", box.Y.Size())
	}

	// Skewed edges: the box must span both diagonals
	skewed := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 0), core.NewVec3(1, -1, 0), 0).BoundingBox()
	if skewed.Y.Min > -1 || skewed.Y.Max < 1 || skewed.X.Max < 2 {
		t.Errorf("Expected skewed quad box to cover all corners, got %v", skewed)
	}
}
