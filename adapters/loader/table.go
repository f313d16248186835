package loader

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"tagplot/domain/series"
)

// rawTable is the reader-neutral intermediate form: a header row plus string
// cells. Every strategy produces one of these so the numeric filter and index
// selection behave identically across formats.
type rawTable struct {
	headers []string
	rows    [][]string
}

// indexNames are header names that mark the leading column as the row index.
var indexNames = map[string]bool{
	"":          true,
	"index":     true,
	"timestamp": true,
	"datetime":  true,
	"date":      true,
	"time":      true,
}

// toFrame selects the index column, keeps only the numeric columns, and
// builds a frame. The index column is chosen by the "index" option when
// given, otherwise the first column whose name marks it as an index, then the
// leading column when its content is non-numeric; failing that, rows get
// zero-padded ordinal labels so that lexical index order matches load order.
func (t *rawTable) toFrame(opts Options) (*series.Frame, error) {
	if len(t.headers) == 0 {
		return series.NewFrame(nil, nil), nil
	}

	indexCol := -1
	if name, ok := opts["index"].(string); ok {
		for i, h := range t.headers {
			if h == name {
				indexCol = i
				break
			}
		}
		if indexCol == -1 {
			return nil, fmt.Errorf("index column %q not found", name)
		}
	} else {
		for i, h := range t.headers {
			if indexNames[strings.ToLower(h)] {
				indexCol = i
				break
			}
		}
		if indexCol == -1 && !t.columnNumeric(0) {
			indexCol = 0
		}
	}

	index := make([]string, len(t.rows))
	if indexCol >= 0 {
		for i, row := range t.rows {
			index[i] = cell(row, indexCol)
		}
	} else {
		width := len(strconv.Itoa(len(t.rows)))
		for i := range t.rows {
			index[i] = fmt.Sprintf("%0*d", width, i)
		}
	}

	data := make(map[string][]float64)
	for c, header := range t.headers {
		if c == indexCol {
			continue
		}
		if !t.columnNumeric(c) {
			continue
		}
		col := make([]float64, len(t.rows))
		for i, row := range t.rows {
			v, _, _ := parseCell(cell(row, c))
			col[i] = v
		}
		data[header] = col
	}

	return series.NewFrame(index, data), nil
}

// columnNumeric reports whether every cell of column c is numeric or missing.
func (t *rawTable) columnNumeric(c int) bool {
	for _, row := range t.rows {
		if _, _, ok := parseCell(cell(row, c)); !ok {
			return false
		}
	}
	return true
}

// cell returns the c-th field of a possibly short row.
func cell(row []string, c int) string {
	if c < len(row) {
		return row[c]
	}
	return ""
}

// parseCell parses a string cell. missing is true for the recognized null
// markers, ok is false when the cell is non-numeric text.
func parseCell(s string) (v float64, missing bool, ok bool) {
	s = strings.TrimSpace(s)
	switch s {
	case "", "nan", "NaN", "NAN", "null", "NULL", "None", "NA", "N/A":
		return math.NaN(), true, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, false
	}
	return v, false, true
}
