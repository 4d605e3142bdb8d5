package renderer

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

var worldUp = core.NewVec3(0, 1, 0)

// Camera generates primary rays for a fixed image and viewpoint
type Camera struct {
	center       core.Vec3
	pixel00      core.Vec3 // Center of the upper-left pixel
	pixelDeltaU  core.Vec3 // Offset to the pixel to the right
	pixelDeltaV  core.Vec3 // Offset to the pixel below
	u, v, w      core.Vec3 // Camera frame basis
	defocusAngle float64
	defocusDiskU core.Vec3
	defocusDiskV core.Vec3
}

// NewCamera computes the camera frame and viewport from render settings
func NewCamera(settings scene.Settings) *Camera {
	center := settings.CameraEye

	theta := degreesToRadians(settings.FOV)
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * settings.FocusDistance
	viewportWidth := viewportHeight * settings.AspectRatio()

	w := center.Subtract(settings.CameraTarget).Normalize()
	u := worldUp.Cross(w).Normalize()
	v := w.Cross(u)

	// Viewport edges: U runs left to right, V runs top to bottom
	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Negate().Multiply(viewportHeight)

	pixelDeltaU := viewportU.Divide(float64(settings.Width))
	pixelDeltaV := viewportV.Divide(float64(settings.Height))

	viewportUpperLeft := center.
		Subtract(w.Multiply(settings.FocusDistance)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	pixel00 := viewportUpperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	defocusRadius := settings.FocusDistance * math.Tan(degreesToRadians(settings.DefocusAngle/2))

	return &Camera{
		center:       center,
		pixel00:      pixel00,
		pixelDeltaU:  pixelDeltaU,
		pixelDeltaV:  pixelDeltaV,
		u:            u,
		v:            v,
		w:            w,
		defocusAngle: settings.DefocusAngle,
		defocusDiskU: u.Multiply(defocusRadius),
		defocusDiskV: v.Multiply(defocusRadius),
	}
}

// GetRay returns a jittered ray through pixel (x, y), with (0, 0) at the top left.
// The origin lies on the defocus disk and the ray time is uniform in [0, 1).
func (c *Camera) GetRay(x, y int, sampler core.Sampler) core.Ray {
	offsetX := sampler.Get1D() - 0.5
	offsetY := sampler.Get1D() - 0.5

	pixelSample := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(x) + offsetX)).
		Add(c.pixelDeltaV.Multiply(float64(y) + offsetY))

	origin := c.center
	if c.defocusAngle > 0 {
		origin = c.defocusDiskSample(sampler)
	}

	return core.NewRayAtTime(origin, pixelSample.Subtract(origin), sampler.Get1D())
}

func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Vec3 {
	p := core.SamplePointInUnitDisk(sampler.Get2D())
	return c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
}

// Center returns the camera position
func (c *Camera) Center() core.Vec3 {
	return c.center
}

// Forward returns the unit viewing direction
func (c *Camera) Forward() core.Vec3 {
	return c.w.Negate()
}

// PixelCenter returns the world position of the center of pixel (x, y) on the focus plane
func (c *Camera) PixelCenter(x, y int) core.Vec3 {
	return c.pixel00.Add(c.pixelDeltaU.Multiply(float64(x))).Add(c.pixelDeltaV.Multiply(float64(y)))
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
