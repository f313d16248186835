package loader

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/format"
)

// indexTimeLayout keeps timestamp index labels lexically sortable.
const indexTimeLayout = "2006-01-02 15:04:05"

// readParquet reads a flat parquet file without assuming its schema up
// front. Leaf values are rendered to cells and flow through the same numeric
// filter as the text formats; timestamp-typed columns are rendered as
// sortable date strings so they can serve as the index.
func readParquet(path string, _ Options) (*rawTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, err
	}

	fields := pf.Schema().Fields()
	table := &rawTable{headers: make([]string, len(fields))}
	for i, field := range fields {
		table.headers[i] = field.Name()
	}

	buf := make([]parquet.Row, 256)
	for _, group := range pf.RowGroups() {
		rows := group.Rows()
		for {
			n, err := rows.ReadRows(buf)
			for _, row := range buf[:n] {
				rec := make([]string, len(fields))
				for _, v := range row {
					c := v.Column()
					if c < 0 || c >= len(fields) {
						continue
					}
					rec[c] = leafString(v, fields[c])
				}
				table.rows = append(table.rows, rec)
			}
			if err == io.EOF {
				break
			}
			if err != nil {
				rows.Close()
				return nil, err
			}
			if n == 0 {
				break
			}
		}
		if err := rows.Close(); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// leafString renders a parquet leaf value as a cell.
func leafString(v parquet.Value, field parquet.Field) string {
	if v.IsNull() {
		return ""
	}
	switch v.Kind() {
	case parquet.Boolean:
		return strconv.FormatBool(v.Boolean())
	case parquet.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case parquet.Int64:
		if ts := timestampType(field); ts != nil {
			return timestampString(v.Int64(), ts)
		}
		return strconv.FormatInt(v.Int64(), 10)
	case parquet.Float:
		return strconv.FormatFloat(float64(v.Float()), 'g', -1, 32)
	case parquet.Double:
		return strconv.FormatFloat(v.Double(), 'g', -1, 64)
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	default:
		return fmt.Sprintf("%v", v)
	}
}

func timestampType(field parquet.Field) *format.TimestampType {
	lt := field.Type().LogicalType()
	if lt == nil {
		return nil
	}
	return lt.Timestamp
}

func timestampString(raw int64, ts *format.TimestampType) string {
	var t time.Time
	switch {
	case ts.Unit.Micros != nil:
		t = time.UnixMicro(raw)
	case ts.Unit.Nanos != nil:
		t = time.Unix(0, raw)
	default:
		t = time.UnixMilli(raw)
	}
	return t.UTC().Format(indexTimeLayout)
}
