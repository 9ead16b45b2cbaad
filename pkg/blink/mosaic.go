package blink

import(
	"fmt"
	"image"
	"image/png"
	"os"
	"sort"

	"github.com/fogleman/gg"
	"gonum.org/v1/gonum/stat"

	"github.com/abworrall/cutout-blink/pkg/bmath"
)

const mosaicPad = 4

// Mosaic paints the cutouts into one grid image, MosaicColumns cells
// across, for side-by-side inspection. Unlike the animation path,
// every cell gets its own quantile display range (MosaicQMin /
// MosaicQMax), so each cutout shows at full contrast instead of on
// the batch's shared scale. Cells are titled with the cutout name.
func Mosaic(c Config, cutouts []Cutout) (image.Image, error) {
	if len(cutouts) == 0 {
		return nil, ErrEmptyBatch
	}

	ncols := c.MosaicColumns
	if ncols > len(cutouts) {
		ncols = len(cutouts)
	}
	nrows := (len(cutouts) + ncols - 1) / ncols

	cellW, cellH := 0, 0
	for i := range cutouts {
		if w := cutouts[i].Grid.Dx(); w > cellW { cellW = w }
		if h := cutouts[i].Grid.Dy(); h > cellH { cellH = h }
	}

	dc := gg.NewContext(ncols*(cellW+mosaicPad)+mosaicPad, nrows*(cellH+mosaicPad)+mosaicPad)
	dc.SetRGB(0, 0, 0)
	dc.Clear()

	for i, cut := range cutouts {
		vmin, vmax := quantileRange(cut.Grid, c.MosaicQMin, c.MosaicQMax)
		rf := Render(c, cut.Grid, vmin, vmax, cut.Name)

		col, row := i%ncols, i/ncols
		dc.DrawImage(rf.Img, mosaicPad+col*(cellW+mosaicPad), mosaicPad+row*(cellH+mosaicPad))
	}

	return dc.Image(), nil
}

// quantileRange is the per-cutout display range for one mosaic cell,
// with the same degenerate-input defaults as the batch range: an
// all-masked grid gets [0,1], and equal bounds get nudged apart.
func quantileRange(fg bmath.FloatGrid, qlo, qhi float64) (float64, float64) {
	vals := fg.FiniteValues()
	if len(vals) == 0 {
		return 0.0, 1.0
	}

	sort.Float64s(vals)
	vmin := stat.Quantile(qlo, stat.Empirical, vals, nil)
	vmax := stat.Quantile(qhi, stat.Empirical, vals, nil)
	if vmax <= vmin {
		vmax = vmin + displayEpsilon
	}
	return vmin, vmax
}

func WritePNG(img image.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return png.Encode(writer, img)
	}
}
