package bmath

import "math"

// https://www.sjbrown.co.uk/posts/gamma-correct-rendering/ - "linear RGB to sRGB"
// `f` is assumed to be in the range [0,1]
func GammaExpand(f float64) float64 {
	if f <= 0.0031308 {
		return 12.92 * f
	}
	return 1.055 * math.Pow(f, 1.0/2.4) - 0.055
}

// Clamp01 pins a display intensity into [0,1]. Non-finite comes back
// as 0 (masked pixels paint as the bottom of the palette).
func Clamp01(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0.0 {
		return 0.0
	}
	if f > 1.0 {
		return 1.0
	}
	return f
}
