package blink

import(
	"image"
	"image/color"

	"github.com/mdouchement/hdr/hdrcolor"

	"github.com/abworrall/cutout-blink/pkg/bmath"
)

// hdrGrid exposes a FloatGrid as a single-channel hdr.Image, so the
// tonemap operators can auto-stretch a frame that has no shared
// display range. The y axis is flipped so the grid origin paints at
// the bottom-left, as the fixed-range renderer does.
type hdrGrid struct {
	fg bmath.FloatGrid
}

// Implement golang's image.Image interface
func (hg hdrGrid)ColorModel() color.Model { return hdrcolor.RGBModel }
func (hg hdrGrid)Bounds() image.Rectangle { return image.Rect(0, 0, hg.fg.Dx(), hg.fg.Dy()) }
func (hg hdrGrid)At(x, y int) color.Color { return hg.HDRAt(x, y) }

// Implement hdr.Image
func (hg hdrGrid)Size() int { return hg.fg.Dx() * hg.fg.Dy() }
func (hg hdrGrid)HDRAt(x, y int) hdrcolor.Color {
	v := hg.fg.Get(x, hg.fg.Dy()-1-y)
	if !(v > 0.0) { // masked and negative pixels become zero luminance
		v = 0.0
	}
	return hdrcolor.RGB{R: v, G: v, B: v}
}
