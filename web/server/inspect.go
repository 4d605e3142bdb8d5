package server

import (
	"fmt"
	"math"
	"net/http"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	UV           [2]float64             `json:"uv"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// centerSampler pins every sample to 0.5: no pixel jitter, the lens center and mid shutter
type centerSampler struct{}

func (centerSampler) Get1D() float64   { return 0.5 }
func (centerSampler) Get2D() core.Vec2 { return core.NewVec2(0.5, 0.5) }

// inspectPixel casts a ray through the center of pixel (x, y) and reports the first hit
func inspectPixel(world *scene.World, settings scene.Settings, x, y int) InspectResponse {
	camera := renderer.NewCamera(settings)
	sampler := centerSampler{}
	ray := camera.GetRay(x, y, sampler)

	hit, isHit := world.Hit(ray, core.NewInterval(0.001, math.Inf(1)), sampler)
	if !isHit {
		return InspectResponse{Hit: false}
	}

	materialType, properties := extractMaterialInfo(world.Material(hit.Material), hit)
	return InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		Point:        [3]float64{hit.Point.X, hit.Point.Y, hit.Point.Z},
		Normal:       [3]float64{hit.Normal.X, hit.Normal.Y, hit.Normal.Z},
		UV:           [2]float64{hit.UV.X, hit.UV.Y},
		Distance:     hit.T * ray.Direction.Length(),
		FrontFace:    hit.FrontFace,
		Properties:   properties,
	}
}

// extractMaterialInfo describes a material, evaluating textures at the hit
func extractMaterialInfo(mat material.Material, hit *core.HitRecord) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["color"] = hexColor(m.Albedo.Evaluate(hit.UV, hit.Point))
		return "lambertian", properties

	case *material.Metal:
		properties["color"] = hexColor(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	case *material.DiffuseLight:
		emission := m.Emission.Evaluate(hit.UV, hit.Point)
		properties["emission"] = [3]float64{emission.X, emission.Y, emission.Z}
		properties["color"] = hexColor(emission)
		return "diffuse_light", properties

	case *material.Isotropic:
		properties["color"] = hexColor(m.Albedo.Evaluate(hit.UV, hit.Point))
		return "isotropic", properties

	default:
		return "unknown", properties
	}
}

// hexColor formats a linear color as a gamma-corrected #rrggbb string
func hexColor(c core.Vec3) string {
	rgba := core.ToRGBA(c)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	req, sceneObj, err := s.parseRenderRequest(values)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	pixelX, err := parseIntParam(values, "x", -1, 0, req.Width-1)
	if err != nil || pixelX < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := parseIntParam(values, "y", -1, 0, req.Height-1)
	if err != nil || pixelY < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}

	pipeline, err := s.setupRenderingPipeline(req, sceneObj, NewWebLogger("inspect", nil))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(pipeline.World, pipeline.Settings, pixelX, pixelY))
}
