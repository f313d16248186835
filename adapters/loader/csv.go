package loader

import (
	"encoding/csv"
	"fmt"
	"os"
)

// readCSV reads a delimited text file. The "sep" (or "delimiter") option
// overrides the comma separator; "skiprows" skips leading rows before the
// header.
func readCSV(path string, opts Options) (*rawTable, error) {
	return readDelimited(path, opts, ',')
}

// readTSV reads a tab-separated file.
func readTSV(path string, opts Options) (*rawTable, error) {
	return readDelimited(path, opts, '\t')
}

func readDelimited(path string, opts Options, sep rune) (*rawTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if s := optString(opts, "sep", "delimiter"); s != "" {
		runes := []rune(s)
		if len(runes) != 1 {
			return nil, fmt.Errorf("separator must be a single character, got %q", s)
		}
		sep = runes[0]
	}

	reader := csv.NewReader(file)
	reader.Comma = sep
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if skip := optInt(opts, "skiprows"); skip > 0 {
		if skip >= len(rows) {
			rows = nil
		} else {
			rows = rows[skip:]
		}
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("file %s has no header row", path)
	}
	return &rawTable{headers: rows[0], rows: rows[1:]}, nil
}

// optString returns the first of the named options present as a string.
func optString(opts Options, names ...string) string {
	for _, name := range names {
		if v, ok := opts[name].(string); ok {
			return v
		}
	}
	return ""
}

// optInt returns the named option as an int, tolerating float values from the
// kwargs parser.
func optInt(opts Options, name string) int {
	switch v := opts[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}
