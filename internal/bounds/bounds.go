// Package bounds computes safe per-column display ranges for slider and axis
// construction.
package bounds

import (
	"math"

	"tagplot/domain/series"
)

// relTol matches the relative tolerance used to detect constant columns.
const relTol = 1e-9

// Range is a strictly increasing (Min, Max) pair.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Table maps a tag to its display range. Min < Max holds for every entry.
type Table map[string]Range

// ForFrame computes a display range for every column of the frame.
//
// An all-missing column gets the placeholder range (-1, 1). A constant column
// with value v gets (v-0.5, v+0.5). Every other column keeps its actual
// (min, max).
func ForFrame(f *series.Frame) Table {
	t := make(Table, f.NumColumns())
	for _, tag := range f.Columns() {
		col, _ := f.Column(tag)
		min, okMin := col.Min()
		max, okMax := col.Max()
		switch {
		case !okMin && !okMax:
			t[tag] = Range{Min: -1, Max: 1}
		case isClose(min, max):
			t[tag] = Range{Min: min - 0.5, Max: max + 0.5}
		default:
			t[tag] = Range{Min: min, Max: max}
		}
	}
	return t
}

// isClose reports whether a and b are equal within relTol, mirroring a
// relative-tolerance closeness test.
func isClose(a, b float64) bool {
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	return diff <= relTol*math.Max(math.Abs(a), math.Abs(b))
}
