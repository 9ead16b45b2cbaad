package blink

import(
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mdouchement/hdr/tmo"

	"github.com/abworrall/cutout-blink/pkg/bmath"
)

// A RenderedFrame is one painted cutout, ready for the assembler. A
// frame carries no duration of its own; the assembler assigns one.
type RenderedFrame struct {
	Img   image.Image
	Title string
}

// A PaletteFunc maps a display intensity in [0,1] to an output color.
type PaletteFunc func(float64) color.Color

var(
	Palettes  = []string{"gray", "grayr", "heat"}
	Stretches = []string{"drago03", "linear", "reinhard05"}

	heatCold = colorful.Color{R: 0.05, G: 0.05, B: 0.35}
	heatHot  = colorful.Color{R: 1.00, G: 0.90, B: 0.20}
)

func ListPalettes() string  { return fmt.Sprintf("%v", Palettes) }
func ListStretches() string { return fmt.Sprintf("%v", Stretches) }

func (c Config)GetPalette() PaletteFunc {
	switch c.Palette {
	case "", "gray":  return PaletteGray
	case "grayr":     return PaletteGrayInverted
	case "heat":      return PaletteHeat
	default:
		log.Fatalf("no palette named '%s', wanted %s", c.Palette, ListPalettes())
		return nil
	}
}

// PaletteGray is gamma-expanded grayscale, dim pixels dark.
func PaletteGray(t float64) color.Color {
	gray := bmath.GammaExpand(t)
	g16 := uint16(gray * 65535.0)
	return color.RGBA64{g16, g16, g16, 0xFFFF}
}

// PaletteGrayInverted paints bright pixels dark, which reads better on
// paper.
func PaletteGrayInverted(t float64) color.Color {
	return PaletteGray(1.0 - t)
}

// PaletteHeat is a two-color false-color ramp, blended perceptually.
func PaletteHeat(t float64) color.Color {
	return heatCold.BlendLuv(heatHot, t).Clamped()
}

// Render paints a grid into a picture, mapping the display range
// [vmin,vmax] onto the full palette. Pixels outside the range clamp to
// the palette ends; masked pixels paint as the bottom end. The grid
// origin paints at the bottom-left. An optional title is drawn into
// the top-left corner.
func Render(c Config, fg bmath.FloatGrid, vmin, vmax float64, title string) RenderedFrame {
	pal := c.GetPalette()
	span := vmax - vmin

	img := image.NewRGBA(image.Rect(0, 0, fg.Dx(), fg.Dy()))
	for x := 0; x < fg.Dx(); x++ {
		for y := 0; y < fg.Dy(); y++ {
			t := bmath.Clamp01((fg.Get(x, y) - vmin) / span)
			img.Set(x, fg.Dy()-1-y, pal(t))
		}
	}

	return RenderedFrame{Img: annotate(img, title), Title: title}
}

// RenderAuto paints a grid with no shared range, the "let the renderer
// auto-scale" case. The grid is wrapped as an hdr.Image and stretched
// by a tonemap operator instead of a fixed linear range.
func RenderAuto(c Config, fg bmath.FloatGrid, title string) RenderedFrame {
	op := c.newStretcher(hdrGrid{fg})
	return RenderedFrame{Img: annotate(op.Perform(), title), Title: title}
}

func (c Config)newStretcher(img hdrGrid) tmo.ToneMappingOperator {
	switch c.Stretch {
	case "", "linear": return tmo.NewLinear(img)
	case "drago03":    return tmo.NewDefaultDrago03(img)
	case "reinhard05": return tmo.NewDefaultReinhard05(img)
	default:
		log.Fatalf("no stretch named '%s', wanted %s", c.Stretch, ListStretches())
		return nil
	}
}

func annotate(img image.Image, title string) image.Image {
	if title == "" {
		return img
	}
	dc := gg.NewContextForImage(img)
	dc.SetRGB(1, 1, 1)
	dc.DrawString(title, 4, 13)
	return dc.Image()
}
