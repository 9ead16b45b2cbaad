package blink

import(
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abworrall/cutout-blink/pkg/bmath"
)

func TestMosaic_EmptyBatch(t *testing.T) {
	t.Parallel()

	_, err := Mosaic(NewConfig(), nil)
	assert.ErrorIs(t, err, ErrEmptyBatch)
}

func TestMosaic_Layout(t *testing.T) {
	t.Parallel()

	c := NewConfig()
	c.MosaicColumns = 2

	// 5 cutouts in 2 columns: 3 rows, last cell empty
	cutouts := []Cutout{}
	for i := 0; i < 5; i++ {
		cutouts = append(cutouts, Cutout{Name: "x", Grid: constantGrid(10, 8, float64(i))})
	}

	img, err := Mosaic(c, cutouts)
	require.NoError(t, err)
	assert.Equal(t, 2*(10+mosaicPad)+mosaicPad, img.Bounds().Dx())
	assert.Equal(t, 3*(8+mosaicPad)+mosaicPad, img.Bounds().Dy())
}

func TestMosaic_ColumnsCappedAtBatchSize(t *testing.T) {
	t.Parallel()

	c := NewConfig() // 5 columns by default

	cutouts := []Cutout{
		{Grid: constantGrid(6, 6, 1.0)},
		{Grid: constantGrid(6, 6, 2.0)},
	}
	img, err := Mosaic(c, cutouts)
	require.NoError(t, err)
	assert.Equal(t, 2*(6+mosaicPad)+mosaicPad, img.Bounds().Dx())
	assert.Equal(t, 1*(6+mosaicPad)+mosaicPad, img.Bounds().Dy())
}

// Each cell scales independently: two flat cutouts at wildly different
// levels must paint identically, which is the whole point of the
// per-cell range (the shared-range animation path would not do this).
func TestMosaic_PerCellRange(t *testing.T) {
	t.Parallel()

	c := NewConfig()
	c.MosaicColumns = 2

	cutouts := []Cutout{
		{Grid: constantGrid(6, 6, 10.0)},
		{Grid: constantGrid(6, 6, 1000.0)},
	}
	img, err := Mosaic(c, cutouts)
	require.NoError(t, err)

	// Sample the center of each cell
	x0, y0 := mosaicPad+3, mosaicPad+3
	x1 := mosaicPad + (6 + mosaicPad) + 3
	r0, g0, b0, _ := img.At(x0, y0).RGBA()
	r1, g1, b1, _ := img.At(x1, y0).RGBA()
	assert.Equal(t, r0, r1)
	assert.Equal(t, g0, g1)
	assert.Equal(t, b0, b1)
}

func TestQuantileRange(t *testing.T) {
	t.Parallel()

	fg := bmath.NewFloatGrid(10, 10)
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			fg.Set(x, y, float64(y*10+x))
		}
	}

	// qmin=0 pins the bottom to the minimum; qmax=0.99 trims the top
	vmin, vmax := quantileRange(fg, 0.0, 0.99)
	assert.Equal(t, 0.0, vmin)
	assert.InDelta(t, 98.0, vmax, 1.5)

	// Degenerate cases
	vmin, vmax = quantileRange(constantGrid(3, 3, 7.0), 0.0, 0.99)
	assert.Equal(t, 7.0, vmin)
	assert.Greater(t, vmax, vmin)

	vmin, vmax = quantileRange(constantGrid(3, 3, math.NaN()), 0.0, 0.99)
	assert.Equal(t, 0.0, vmin)
	assert.Equal(t, 1.0, vmax)
}
