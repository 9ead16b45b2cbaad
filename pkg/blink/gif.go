package blink

import(
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"log"
	"os"
	"path/filepath"
)

var ErrEmptySequence = errors.New("no rendered frames to assemble")

// AssembleGIF encodes the rendered frames, strictly in input order,
// into one looping animated GIF at `filename`, creating parent
// directories as needed. Every frame gets the same display duration.
// An empty sequence means the upstream pipeline produced nothing, and
// is surfaced as ErrEmptySequence rather than writing an empty file.
func AssembleGIF(frames []RenderedFrame, frameDurationMs int, filename string) error {
	if len(frames) == 0 {
		return ErrEmptySequence
	}

	// One shared palette keeps colors steady across frames
	pal := quantizePalette(frames[0].Img)

	delay := (frameDurationMs + 5) / 10 // GIF delays are 100ths of a second
	anim := gif.GIF{LoopCount: 0}       // 0 == loop forever

	for _, f := range frames {
		b := f.Img.Bounds()
		p := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), pal)
		draw.Draw(p, p.Bounds(), f.Img, b.Min, draw.Over)
		anim.Image = append(anim.Image, p)
		anim.Delay = append(anim.Delay, delay)
	}

	if dir := filepath.Dir(filename); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("mkdir '%s': %v", dir, err)
		}
	}

	writer, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	}
	defer writer.Close()

	if err := gif.EncodeAll(writer, &anim); err != nil {
		return fmt.Errorf("gif encode '%s': %v", filename, err)
	}

	log.Printf("GIF saved to '%s' (%d frames)\n", filename, len(frames))
	return nil
}

// quantizePalette derives the shared palette from one representative
// frame, by drawing it through the Plan9 palette.
func quantizePalette(img image.Image) color.Palette {
	b := img.Bounds()
	p := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), palette.Plan9)
	draw.Draw(p, p.Bounds(), img, b.Min, draw.Over)
	return p.Palette
}
