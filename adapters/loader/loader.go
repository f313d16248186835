// Package loader reads tabular data files into frames. Each supported file
// type is a strategy in a closed table, so an unsupported type is rejected
// before any file is touched, and every reader failure is coalesced into a
// single unreadable-file error kind carrying the filename and options.
package loader

import (
	"sort"

	"tagplot/domain/series"
	"tagplot/internal/apperr"
	"tagplot/ports"
)

// FileType identifies a loader strategy.
type FileType string

const (
	TypeCSV     FileType = "csv"
	TypeTSV     FileType = "tsv"
	TypeExcel   FileType = "excel"
	TypeParquet FileType = "parquet"
	TypeJSON    FileType = "json"
)

// Options carries reader-specific settings parsed from --read-kwargs tokens.
type Options map[string]interface{}

// readFunc reads a file into an intermediate string table.
type readFunc func(path string, opts Options) (*rawTable, error)

// readers is the closed strategy set. Formats the original tool accepted but
// that have no Go-native reader (feather, hdf, pickle) are deliberately
// absent: requesting them fails up front like any other unknown type.
var readers = map[FileType]readFunc{
	TypeCSV:     readCSV,
	TypeTSV:     readTSV,
	TypeExcel:   readExcel,
	TypeParquet: readParquet,
	TypeJSON:    readJSON,
}

// SupportedTypes returns the supported file type names in ascending order.
func SupportedTypes() []string {
	out := make([]string, 0, len(readers))
	for t := range readers {
		out = append(out, string(t))
	}
	sort.Strings(out)
	return out
}

// Read loads the file at path using the strategy for filetype, drops
// non-numeric columns, and returns the frame sorted by index ascending.
func Read(path string, filetype FileType, opts Options) (*series.Frame, error) {
	read, ok := readers[filetype]
	if !ok {
		return nil, apperr.UnsupportedFiletype(string(filetype), SupportedTypes())
	}

	table, err := read(path, opts)
	if err != nil {
		return nil, apperr.UnreadableFile(path, opts, err)
	}

	frame, err := table.toFrame(opts)
	if err != nil {
		return nil, apperr.UnreadableFile(path, opts, err)
	}
	frame.SortByIndex()
	return frame, nil
}

// Reader adapts Read to the ports.FrameReader interface.
type Reader struct{}

var _ ports.FrameReader = Reader{}

func (Reader) Read(path, filetype string, options map[string]interface{}) (*series.Frame, error) {
	return Read(path, FileType(filetype), Options(options))
}
