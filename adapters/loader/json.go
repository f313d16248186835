package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// readJSON reads an array of flat objects (records orientation). Headers are
// the union of the record keys in ascending order.
func readJSON(path string, _ Options) (*rawTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []map[string]json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var headers []string
	for _, rec := range records {
		for k := range rec {
			if !seen[k] {
				seen[k] = true
				headers = append(headers, k)
			}
		}
	}
	sort.Strings(headers)

	table := &rawTable{headers: headers}
	for _, rec := range records {
		row := make([]string, len(headers))
		for i, h := range headers {
			raw, ok := rec[h]
			if !ok {
				continue
			}
			cell, err := jsonCell(raw)
			if err != nil {
				return nil, err
			}
			row[i] = cell
		}
		table.rows = append(table.rows, row)
	}
	return table, nil
}

func jsonCell(raw json.RawMessage) (string, error) {
	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return "", err
	}
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	case bool:
		return fmt.Sprintf("%v", t), nil
	default:
		return "", fmt.Errorf("unsupported nested value %s", string(raw))
	}
}
