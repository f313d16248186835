// Package transform provides the robust-scaled view of a series used by the
// dashboard's log-scale mode.
package transform

import (
	"math"

	"github.com/montanaflynn/stats"

	"tagplot/domain/series"
)

// RobustScale compresses extreme values of a series while staying roughly
// linear near the median.
//
// With l, m, h the 25th/50th/75th percentiles of the non-missing values and
// iqr = h - l (substituting 1 when iqr is numerically zero), each value is
// mapped to asinh((x-m)/(3*iqr)) * 3*iqr. Missing values stay missing and the
// index is preserved, so the result has the same shape as the input.
func RobustScale(s series.Series) (series.Series, error) {
	out := series.Series{
		Name:   s.Name,
		Index:  append([]string(nil), s.Index...),
		Values: append([]float64(nil), s.Values...),
	}

	valid := s.Valid()
	if len(valid) == 0 {
		return out, nil
	}

	l, err := stats.Percentile(valid, 25)
	if err != nil {
		return series.Series{}, err
	}
	m, err := stats.Percentile(valid, 50)
	if err != nil {
		return series.Series{}, err
	}
	h, err := stats.Percentile(valid, 75)
	if err != nil {
		return series.Series{}, err
	}

	iqr := h - l
	if math.Abs(iqr) <= 1e-9*math.Max(math.Abs(h), math.Abs(l)) || iqr == 0 {
		iqr = 1
	}

	scale := 3 * iqr
	for i, v := range out.Values {
		if math.IsNaN(v) {
			continue
		}
		out.Values[i] = math.Asinh((v-m)/scale) * scale
	}
	return out, nil
}
