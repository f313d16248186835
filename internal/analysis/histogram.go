package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// HistogramData is a binned view of a series over a fixed range. Edges has one
// more entry than Counts.
type HistogramData struct {
	Edges  []float64 `json:"edges"`
	Counts []float64 `json:"counts"`
}

// Histogram bins the non-missing values into bins equal-width buckets over
// [min, max]. Values outside the range are ignored; values exactly at max are
// counted in the last bucket.
func Histogram(values []float64, bins int, min, max float64) HistogramData {
	if bins <= 0 || !(min < max) {
		return HistogramData{}
	}

	edges := make([]float64, bins+1)
	floats.Span(edges, min, max)

	counts := make([]float64, bins)
	inRange := make([]float64, 0, len(values))
	atMax := 0.0
	for _, v := range values {
		if math.IsNaN(v) || v < min || v > max {
			continue
		}
		if v == max {
			atMax++
			continue
		}
		inRange = append(inRange, v)
	}
	sort.Float64s(inRange)
	stat.Histogram(counts, edges, inRange, nil)
	counts[bins-1] += atMax

	return HistogramData{Edges: edges, Counts: counts}
}
