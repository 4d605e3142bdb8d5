package core

import (
	"image/color"
	"math"
)

// LinearToGamma converts a linear color to gamma 2 space (component-wise square root)
func LinearToGamma(c Vec3) Vec3 {
	return Vec3{
		X: linearToGamma(c.X),
		Y: linearToGamma(c.Y),
		Z: linearToGamma(c.Z),
	}
}

func linearToGamma(component float64) float64 {
	if component > 0 {
		return math.Sqrt(component)
	}
	return 0
}

// GammaToLinear is the inverse of LinearToGamma
func GammaToLinear(c Vec3) Vec3 {
	return c.MultiplyVec(c)
}

// ToRGBA gamma-corrects a linear color and quantizes it to 8 bits per channel
func ToRGBA(c Vec3) color.RGBA {
	g := LinearToGamma(c)
	return color.RGBA{
		R: quantize(g.X),
		G: quantize(g.Y),
		B: quantize(g.Z),
		A: 255,
	}
}

func quantize(component float64) uint8 {
	if math.IsNaN(component) || component <= 0 {
		return 0
	}
	if component >= 1 {
		return 255
	}
	return uint8(255 * component)
}
