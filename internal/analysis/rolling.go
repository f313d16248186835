// Package analysis holds the per-render computations of the dashboard:
// trailing moving averages, histograms, and descriptive statistics.
package analysis

import "math"

// MovingAverage computes a trailing moving average over the given window.
//
// Positions before a full window is available are NaN, and any window that
// contains a missing value produces NaN, so the output aligns index-for-index
// with the input.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 0 {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}

	sum := 0.0
	missing := 0
	for i, v := range values {
		if math.IsNaN(v) {
			missing++
		} else {
			sum += v
		}
		if i >= window {
			old := values[i-window]
			if math.IsNaN(old) {
				missing--
			} else {
				sum -= old
			}
		}
		if i >= window-1 && missing == 0 {
			out[i] = sum / float64(window)
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}
