package scene

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Settings holds the camera and sampling parameters of a render
type Settings struct {
	CameraEye       core.Vec3  // Camera position
	CameraTarget    core.Vec3  // Point the camera looks at
	Width           int        // Image width in pixels
	Height          int        // Image height in pixels
	FOV             float64    // Vertical field of view in degrees
	FocusDistance   float64    // Distance from the eye to the plane of perfect focus
	DefocusAngle    float64    // Cone angle in degrees of rays through each pixel; 0 disables depth of field
	SamplesPerPixel int        // Number of rays per pixel
	MaxBounces      int        // Maximum ray bounce depth
	Background      *core.Vec3 // Fixed background color, nil for the sky gradient
}

// Validate checks that the settings describe a renderable image
func (s Settings) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", s.Width, s.Height)
	}
	if s.FOV <= 0 || s.FOV >= 180 {
		return fmt.Errorf("fov must be between 0 and 180 degrees, got %g", s.FOV)
	}
	if s.FocusDistance <= 0 {
		return fmt.Errorf("focus distance must be positive, got %g", s.FocusDistance)
	}
	if s.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel must be positive, got %d", s.SamplesPerPixel)
	}
	if s.MaxBounces < 0 {
		return fmt.Errorf("max bounces must not be negative, got %d", s.MaxBounces)
	}
	if s.CameraEye.Equals(s.CameraTarget) {
		return fmt.Errorf("camera eye and target must differ")
	}
	return nil
}

// AspectRatio returns width / height
func (s Settings) AspectRatio() float64 {
	return float64(s.Width) / float64(s.Height)
}

func blackBackground() *core.Vec3 {
	black := core.NewVec3(0, 0, 0)
	return &black
}
