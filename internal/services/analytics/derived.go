package analytics

import (
	"math"
	"sort"

	"SpacWatch/internal/domain/models"
)

// MovingAverage computes trailing window-point averages over xs, rounded
// to the nearest integer. The first window-1 entries are nil: a partial
// window never yields an average. The input is not mutated and the
// result has the same length as xs.
func MovingAverage(xs []int64, window int) []*int64 {
	out := make([]*int64, len(xs))
	if window <= 0 {
		return out
	}
	var sum int64
	for i, v := range xs {
		sum += v
		if i >= window {
			sum -= xs[i-window]
		}
		if i >= window-1 {
			avg := int64(math.Round(float64(sum) / float64(window)))
			out[i] = &avg
		}
	}
	return out
}

// MA7Window is the trailing window used for the volume overlay.
const MA7Window = 7

// WithMovingAverage returns a copy of points with the MA7 overlay
// attached. Re-running on the same input yields the same output.
func WithMovingAverage(points []models.VolumePoint, window int) []models.VolumePoint {
	vols := make([]int64, len(points))
	for i, p := range points {
		vols[i] = p.Volume
	}
	ma := MovingAverage(vols, window)

	out := make([]models.VolumePoint, len(points))
	for i, p := range points {
		p.MA7 = ma[i]
		out[i] = p
	}
	return out
}

// PriceChange computes absolute and percent change from the first to the
// last close of a chronological series. Returns nil when the series has
// fewer than two points or a zero first close; callers must treat nil as
// "no change data available".
func PriceChange(prices []models.PricePoint) *models.PriceChange {
	if len(prices) < 2 {
		return nil
	}
	first := prices[0].Close
	last := prices[len(prices)-1].Close
	if first == 0 {
		return nil
	}
	abs := last - first
	return &models.PriceChange{
		Absolute: abs,
		Percent:  abs / first * 100,
	}
}

// LatestClose returns the last close of a series, or 0 for an empty one.
func LatestClose(prices []models.PricePoint) float64 {
	if len(prices) == 0 {
		return 0
	}
	return prices[len(prices)-1].Close
}

// SupportResistance estimates support and resistance as the 25th and
// 75th percentiles of the close prices.
func SupportResistance(prices []models.PricePoint) (support, resistance float64) {
	closes := make([]float64, len(prices))
	for i, p := range prices {
		closes[i] = p.Close
	}
	return percentile(closes, 25), percentile(closes, 75)
}

// percentile computes the q-th percentile with linear interpolation
// between closest ranks.
func percentile(xs []float64, q float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	rank := q / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
