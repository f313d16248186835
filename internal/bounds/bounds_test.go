package bounds

import (
	"math"
	"testing"

	"tagplot/domain/series"
)

func TestForFrame(t *testing.T) {
	nan := math.NaN()
	frame := series.NewFrame(
		[]string{"0", "1", "2", "3"},
		map[string][]float64{
			"normal":   {1, 4, 2, 3},
			"constant": {5, 5, 5, 5},
			"missing":  {nan, nan, nan, nan},
			"partial":  {nan, 7, nan, 9},
		},
	)

	table := ForFrame(frame)

	tests := []struct {
		tag      string
		min, max float64
	}{
		{"normal", 1, 4},
		{"constant", 4.5, 5.5},
		{"missing", -1, 1},
		{"partial", 7, 9},
	}
	for _, tt := range tests {
		r, ok := table[tt.tag]
		if !ok {
			t.Fatalf("no bounds for %q", tt.tag)
		}
		if r.Min != tt.min || r.Max != tt.max {
			t.Errorf("%s: bounds = (%v, %v), want (%v, %v)", tt.tag, r.Min, r.Max, tt.min, tt.max)
		}
	}
}

func TestForFrame_StrictlyIncreasing(t *testing.T) {
	nan := math.NaN()
	frame := series.NewFrame(
		[]string{"0", "1"},
		map[string][]float64{
			"tiny":     {1e-12, 1.0000000001e-12},
			"zero":     {0, 0},
			"negative": {-3, -3},
			"allnan":   {nan, nan},
		},
	)

	for tag, r := range ForFrame(frame) {
		if !(r.Min < r.Max) {
			t.Errorf("%s: bounds (%v, %v) not strictly increasing", tag, r.Min, r.Max)
		}
		if math.IsNaN(r.Min) || math.IsInf(r.Min, 0) || math.IsNaN(r.Max) || math.IsInf(r.Max, 0) {
			t.Errorf("%s: bounds (%v, %v) not finite", tag, r.Min, r.Max)
		}
	}
}

func TestIsClose(t *testing.T) {
	if !isClose(1.0, 1.0+1e-12) {
		t.Error("values within relative tolerance should compare close")
	}
	if isClose(1.0, 1.001) {
		t.Error("distinct values should not compare close")
	}
}
