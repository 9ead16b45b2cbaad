package bmath

import(
	"fmt"
	"math"
)

// A FloatGrid is a 2D grid of float64 pixel samples. Samples may be
// NaN or Inf, meaning masked / missing pixels; every consumer is
// expected to cope with that. A grid is treated as immutable once
// loaded - correction steps return new grids.
type FloatGrid struct {
	stride int
	values []float64
}

func NewFloatGrid(w, h int) FloatGrid {
	return FloatGrid{
		stride: w,
		values: make([]float64, w*h),
	}
}

// NewFloatGridFromRows builds a grid from row-major data. All rows
// must be the same length as the first.
func NewFloatGridFromRows(rows [][]float64) FloatGrid {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return FloatGrid{}
	}
	fg := NewFloatGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, v := range row {
			fg.Set(x, y, v)
		}
	}
	return fg
}

func (fg *FloatGrid)Set(x, y int, v float64) { fg.values[fg.stride*y + x] = v }
func (fg *FloatGrid)Get(x, y int) float64    { return fg.values[fg.stride*y + x] }
func (fg *FloatGrid)Dx() int                 { return fg.stride }

func (fg *FloatGrid)Dy() int {
	if fg.stride == 0 {
		return 0
	}
	return len(fg.values) / fg.stride
}

func (g1 *FloatGrid)Copy() FloatGrid {
	g2 := FloatGrid{stride: g1.stride, values: make([]float64, len(g1.values))}
	copy(g2.values, g1.values)
	return g2
}

// Sub returns a new grid with `v` subtracted from every sample.
// Non-finite samples stay non-finite.
func (g1 *FloatGrid)Sub(v float64) FloatGrid {
	g2 := g1.Copy()
	for i := 0; i < len(g2.values); i++ {
		g2.values[i] -= v
	}
	return g2
}

// Div returns a new grid with every sample divided by `v`.
func (g1 *FloatGrid)Div(v float64) FloatGrid {
	g2 := g1.Copy()
	for i := 0; i < len(g2.values); i++ {
		g2.values[i] /= v
	}
	return g2
}

// FiniteValues flattens the grid, dropping NaN / Inf samples. The
// returned slice is freshly allocated and safe to sort in place.
func (fg *FloatGrid)FiniteValues() []float64 {
	vals := make([]float64, 0, len(fg.values))
	for _, v := range fg.values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			vals = append(vals, v)
		}
	}
	return vals
}

func (fg *FloatGrid)Stats() string {
	min := math.Inf(1)
	max := math.Inf(-1)
	nFinite := 0

	for _, v := range fg.values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		nFinite++
		if v > max { max = v }
		if v < min { min = v }
	}
	return fmt.Sprintf("fg[%dx%d, %d finite, vals{%f,%f}]", fg.Dx(), fg.Dy(), nFinite, min, max)
}
