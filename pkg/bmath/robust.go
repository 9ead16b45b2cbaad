package bmath

import(
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// MAD -> stddev conversion for gaussian data
const madToRms = 1.4826

// RobustStats describes one grid: a background level insensitive to
// outliers, and a noise scale. Noise is always finite and > 0, so
// callers can divide by it without checking.
type RobustStats struct {
	Background float64
	Noise      float64
}

// SigmaClippedStats estimates the background and noise of a grid by
// iterative sigma clipping about the median. It cannot fail: an
// all-masked grid gets the neutral {0, 1}, and a degenerate noise
// estimate falls back to the plain stddev, then to 1.0.
func SigmaClippedStats(fg FloatGrid, sigma float64, maxIters int) RobustStats {
	vals := fg.FiniteValues()
	if len(vals) == 0 {
		return RobustStats{Background: 0.0, Noise: 1.0}
	}

	clipped := SigmaClip(vals, sigma, maxIters)

	bg := median(clipped)
	rms := madToRms * mad(clipped, bg)
	if !isPositive(rms) {
		rms = stat.StdDev(clipped, nil)
	}
	if !isPositive(rms) {
		rms = 1.0
	}
	return RobustStats{Background: bg, Noise: rms}
}

// SigmaClip iteratively discards samples more than sigma*rms from the
// median, where rms is the MAD-derived noise of the current working
// set. The working set never grows. Stops early when the rms estimate
// degenerates, when nothing gets clipped, or when everything would.
// May sort `values` in place.
func SigmaClip(values []float64, sigma float64, maxIters int) []float64 {
	clipped := values

	for i := 0; i < maxIters; i++ {
		med := median(clipped)
		rms := madToRms * mad(clipped, med)
		if !isPositive(rms) {
			break
		}

		kept := make([]float64, 0, len(clipped))
		for _, v := range clipped {
			if math.Abs(v-med) <= sigma*rms {
				kept = append(kept, v)
			}
		}
		if len(kept) == len(clipped) || len(kept) == 0 {
			break
		}
		clipped = kept
	}

	return clipped
}

func isPositive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// median sorts in place. Even-sized sets average the middle pair.
func median(values []float64) float64 {
	sort.Float64s(values)
	n := len(values)
	if n%2 == 1 {
		return values[n/2]
	}
	return (values[n/2-1] + values[n/2]) / 2.0
}

// mad is the median absolute deviation about `center`.
func mad(values []float64, center float64) float64 {
	devs := make([]float64, len(values))
	for i, v := range values {
		devs[i] = math.Abs(v - center)
	}
	return median(devs)
}
