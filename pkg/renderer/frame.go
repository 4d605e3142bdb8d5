package renderer

import (
	"image"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Frame is a row-major buffer of averaged linear colors
type Frame struct {
	Width   int
	Height  int
	Pixels  []core.Vec3 // Linear color, index y*Width + x
	Samples []int       // Samples accumulated per pixel
}

// newFrame copies the current state of a pixel buffer
func newFrame(pixels []PixelStats, width, height int) *Frame {
	frame := &Frame{
		Width:   width,
		Height:  height,
		Pixels:  make([]core.Vec3, len(pixels)),
		Samples: make([]int, len(pixels)),
	}
	for i := range pixels {
		frame.Pixels[i] = pixels[i].Color
		frame.Samples[i] = pixels[i].SampleCount
	}
	return frame
}

// At returns the linear color at (x, y)
func (f *Frame) At(x, y int) core.Vec3 {
	return f.Pixels[y*f.Width+x]
}

// GammaCorrected returns the pixels converted to gamma space
func (f *Frame) GammaCorrected() []core.Vec3 {
	out := make([]core.Vec3, len(f.Pixels))
	for i, c := range f.Pixels {
		out[i] = core.LinearToGamma(c)
	}
	return out
}

// RGB returns gamma-corrected 8-bit RGB triples in row-major order
func (f *Frame) RGB() []uint8 {
	out := make([]uint8, 0, len(f.Pixels)*3)
	for _, c := range f.Pixels {
		rgba := core.ToRGBA(c)
		out = append(out, rgba.R, rgba.G, rgba.B)
	}
	return out
}

// Image returns the frame as an opaque gamma-corrected RGBA image
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			img.SetRGBA(x, y, core.ToRGBA(f.At(x, y)))
		}
	}
	return img
}

// AverageLuminance returns the mean linear luminance of the frame
func (f *Frame) AverageLuminance() float64 {
	if len(f.Pixels) == 0 {
		return 0
	}
	var sum float64
	for _, c := range f.Pixels {
		sum += c.Luminance()
	}
	return sum / float64(len(f.Pixels))
}
