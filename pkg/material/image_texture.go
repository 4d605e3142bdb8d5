package material

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
)

const colorScale = 1.0 / 255.0

// ImageTexture provides color from a 2D grid of 8-bit RGB pixels
type ImageTexture struct {
	Width  int
	Height int
	Pixels []uint8 // Row-major RGB triples, top row first
}

// NewImageTexture creates a new image texture from width*height RGB triples
func NewImageTexture(width, height int, pixels []uint8) (*ImageTexture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image texture size %dx%d", width, height)
	}
	if len(pixels) != width*height*3 {
		return nil, fmt.Errorf("image texture %dx%d needs %d bytes, got %d", width, height, width*height*3, len(pixels))
	}

	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}

// Evaluate samples the texture at given UV coordinates using nearest-neighbor filtering
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	unit := core.NewInterval(0, 1)
	u := unit.Clamp(uv.X)
	v := 1.0 - unit.Clamp(uv.Y) // V=0 is the bottom row, image rows start at the top

	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int(v*float64(t.Height)), t.Height-1)

	offset := (y*t.Width + x) * 3
	return core.NewVec3(
		colorScale*float64(t.Pixels[offset]),
		colorScale*float64(t.Pixels[offset+1]),
		colorScale*float64(t.Pixels[offset+2]),
	)
}
