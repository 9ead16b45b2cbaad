package blink

import(
	"errors"
	"log"
	"math"
	"sort"

	"github.com/skypies/util/histogram"
	"gonum.org/v1/gonum/stat"

	"github.com/abworrall/cutout-blink/pkg/bmath"
)

var ErrEmptyBatch = errors.New("no cutout grids in batch")

const(
	// Guard against dividing a frame by a vanishing noise estimate
	noiseEpsilon   = 1e-12
	// Keeps DisplayMax strictly above DisplayMin for degenerate batches
	displayEpsilon = 1e-12
)

// A Batch is a set of corrected frames that share one display range,
// so they can be compared on an equal footing. Frame order is the
// caller's order - it carries temporal meaning, and is never changed
// here.
type Batch struct {
	Frames     []bmath.FloatGrid
	DisplayMin float64
	DisplayMax float64
}

// Normalize corrects each grid (background subtraction and/or noise
// division, per the config) and computes the shared display range as
// the QMin/QMax quantiles of all finite pixels pooled across the
// corrected frames. A batch whose pixels are all masked gets the
// neutral range [0, 1]. Only an empty batch is an error.
func Normalize(c Config, grids []bmath.FloatGrid) (Batch, error) {
	if len(grids) == 0 {
		return Batch{}, ErrEmptyBatch
	}

	frames := make([]bmath.FloatGrid, 0, len(grids))
	for _, g := range grids {
		fg := g.Copy()
		if c.MatchBackground || c.MatchNoise {
			rs := bmath.SigmaClippedStats(fg, c.Sigma, c.MaxIterations)
			if c.MatchBackground {
				fg = fg.Sub(rs.Background)
			}
			if c.MatchNoise {
				fg = fg.Div(math.Max(rs.Noise, noiseEpsilon))
			}
		}
		frames = append(frames, fg)
	}

	vmin, vmax := sharedRange(c, frames)
	return Batch{Frames: frames, DisplayMin: vmin, DisplayMax: vmax}, nil
}

func sharedRange(c Config, frames []bmath.FloatGrid) (float64, float64) {
	pooled := []float64{}
	for i := range frames {
		pooled = append(pooled, frames[i].FiniteValues()...)
	}
	if len(pooled) == 0 {
		return 0.0, 1.0
	}

	sort.Float64s(pooled)
	vmin := stat.Quantile(c.QMin, stat.Empirical, pooled, nil)
	vmax := stat.Quantile(c.QMax, stat.Empirical, pooled, nil)
	if vmax <= vmin {
		vmax = vmin + displayEpsilon
	}

	if c.Verbosity > 0 {
		h := histogram.Histogram{NumBuckets: 256, ValMin: histogram.ScalarVal(vmin), ValMax: histogram.ScalarVal(vmax) + 1}
		for _, v := range pooled {
			h.Add(histogram.ScalarVal(int(v)))
		}
		log.Printf("pooled %d finite pixels, display range [%f, %f], %v\n", len(pooled), vmin, vmax, h)
	}

	return vmin, vmax
}
