package series

import (
	"math"
	"math/rand"
	"sort"
)

// Series is a single named column together with its index labels. Values use
// NaN for missing entries, so Index and Values always have equal length.
type Series struct {
	Name   string
	Index  []string
	Values []float64
}

// FirstValid returns the position of the first non-NaN value, or -1 when the
// series is entirely missing.
func (s Series) FirstValid() int {
	for i, v := range s.Values {
		if !math.IsNaN(v) {
			return i
		}
	}
	return -1
}

// SliceFrom returns the suffix of the series starting at position i. The
// returned series shares no storage with the receiver.
func (s Series) SliceFrom(i int) Series {
	if i < 0 {
		i = 0
	}
	if i > len(s.Values) {
		i = len(s.Values)
	}
	out := Series{
		Name:   s.Name,
		Index:  make([]string, len(s.Index)-i),
		Values: make([]float64, len(s.Values)-i),
	}
	copy(out.Index, s.Index[i:])
	copy(out.Values, s.Values[i:])
	return out
}

// Valid returns the non-NaN values of the series.
func (s Series) Valid() []float64 {
	out := make([]float64, 0, len(s.Values))
	for _, v := range s.Values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Min returns the smallest non-NaN value. ok is false when every value is
// missing.
func (s Series) Min() (min float64, ok bool) {
	min = math.Inf(1)
	for _, v := range s.Values {
		if !math.IsNaN(v) && v < min {
			min = v
			ok = true
		}
	}
	return min, ok
}

// Max returns the largest non-NaN value. ok is false when every value is
// missing.
func (s Series) Max() (max float64, ok bool) {
	max = math.Inf(-1)
	for _, v := range s.Values {
		if !math.IsNaN(v) && v > max {
			max = v
			ok = true
		}
	}
	return max, ok
}

// Frame is an index-ordered table of numeric columns. Construction is the only
// mutation point: loaders build a frame, sort it, and hand it to the dashboard
// which treats it as read-only.
type Frame struct {
	index   []string
	columns []string
	data    map[string][]float64
}

// NewFrame builds a frame from an index and a column map. Column order is
// normalized to ascending name order. Columns whose length does not match the
// index are padded or truncated to fit; callers are expected to hand in
// rectangular data.
func NewFrame(index []string, data map[string][]float64) *Frame {
	f := &Frame{
		index: append([]string(nil), index...),
		data:  make(map[string][]float64, len(data)),
	}
	for name, col := range data {
		fitted := make([]float64, len(index))
		for i := range fitted {
			if i < len(col) {
				fitted[i] = col[i]
			} else {
				fitted[i] = math.NaN()
			}
		}
		f.data[name] = fitted
		f.columns = append(f.columns, name)
	}
	sort.Strings(f.columns)
	return f
}

// Columns returns the column names in ascending order.
func (f *Frame) Columns() []string {
	return append([]string(nil), f.columns...)
}

// NumRows returns the number of index entries.
func (f *Frame) NumRows() int {
	return len(f.index)
}

// NumColumns returns the number of columns.
func (f *Frame) NumColumns() int {
	return len(f.columns)
}

// Index returns a copy of the index labels.
func (f *Frame) Index() []string {
	return append([]string(nil), f.index...)
}

// Column returns the named column as a Series. ok is false for unknown names.
func (f *Frame) Column(name string) (Series, bool) {
	col, ok := f.data[name]
	if !ok {
		return Series{}, false
	}
	return Series{
		Name:   name,
		Index:  append([]string(nil), f.index...),
		Values: append([]float64(nil), col...),
	}, true
}

// SortByIndex reorders all rows so the index is ascending. The sort is stable
// so ties keep their load order.
func (f *Frame) SortByIndex() {
	order := make([]int, len(f.index))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return f.index[order[a]] < f.index[order[b]]
	})
	f.applyOrder(order)
}

// Sample retains approximately frac of the rows, chosen uniformly at random,
// and re-sorts by index. frac outside (0, 1) leaves the frame untouched.
func (f *Frame) Sample(frac float64, rng *rand.Rand) {
	if frac <= 0 || frac >= 1 || len(f.index) == 0 {
		return
	}
	n := int(math.Round(frac * float64(len(f.index))))
	if n < 1 {
		n = 1
	}
	perm := rng.Perm(len(f.index))[:n]
	sort.Ints(perm)
	f.applyOrder(perm)
	f.SortByIndex()
}

func (f *Frame) applyOrder(order []int) {
	newIndex := make([]string, len(order))
	for i, j := range order {
		newIndex[i] = f.index[j]
	}
	f.index = newIndex
	for name, col := range f.data {
		newCol := make([]float64, len(order))
		for i, j := range order {
			newCol[i] = col[j]
		}
		f.data[name] = newCol
	}
}
