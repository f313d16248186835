package analysis

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Summary holds the descriptive statistics shown in the describe panel.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"q25"`
	Median float64 `json:"median"`
	Q75    float64 `json:"q75"`
	Max    float64 `json:"max"`
}

// Describe computes count, mean, sample standard deviation, min, quartiles and
// max over the non-missing values. An all-missing input yields Count 0 with
// NaN statistics.
func Describe(values []float64) (Summary, error) {
	valid := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			valid = append(valid, v)
		}
	}

	if len(valid) == 0 {
		nan := math.NaN()
		return Summary{Count: 0, Mean: nan, Std: nan, Min: nan, Q25: nan, Median: nan, Q75: nan, Max: nan}, nil
	}

	s := Summary{Count: len(valid)}
	var err error
	if s.Mean, err = stats.Mean(valid); err != nil {
		return Summary{}, err
	}
	if len(valid) > 1 {
		if s.Std, err = stats.StandardDeviationSample(valid); err != nil {
			return Summary{}, err
		}
	} else {
		s.Std = math.NaN()
	}
	if s.Min, err = stats.Min(valid); err != nil {
		return Summary{}, err
	}
	if s.Q25, err = stats.Percentile(valid, 25); err != nil {
		return Summary{}, err
	}
	if s.Median, err = stats.Median(valid); err != nil {
		return Summary{}, err
	}
	if s.Q75, err = stats.Percentile(valid, 75); err != nil {
		return Summary{}, err
	}
	if s.Max, err = stats.Max(valid); err != nil {
		return Summary{}, err
	}
	return s, nil
}
