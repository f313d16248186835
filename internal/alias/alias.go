// Package alias normalizes raw feature-alias files into a complete, injective,
// sorted tag→description mapping over a dataset's column set.
package alias

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Mapping is a sanitized tag→description mapping. Its key set equals exactly
// the column set it was sanitized against, every description is a non-empty
// string, descriptions are pairwise distinct, and Tags() is ascending.
type Mapping struct {
	tags []string
	desc map[string]string
}

// Tags returns the mapped tags in ascending order.
func (m Mapping) Tags() []string {
	return append([]string(nil), m.tags...)
}

// Description returns the description for a tag.
func (m Mapping) Description(tag string) (string, bool) {
	d, ok := m.desc[tag]
	return d, ok
}

// Descriptions returns all descriptions in ascending order.
func (m Mapping) Descriptions() []string {
	out := make([]string, 0, len(m.desc))
	for _, d := range m.desc {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of mapped tags.
func (m Mapping) Len() int {
	return len(m.tags)
}

// Reverse builds the description→tag inverse. It is well-defined because
// sanitized descriptions are pairwise distinct.
func (m Mapping) Reverse() map[string]string {
	out := make(map[string]string, len(m.desc))
	for tag, d := range m.desc {
		out[d] = tag
	}
	return out
}

// Raw returns a plain map copy of the mapping.
func (m Mapping) Raw() map[string]string {
	out := make(map[string]string, len(m.desc))
	for tag, d := range m.desc {
		out[tag] = d
	}
	return out
}

// Sanitize normalizes a raw alias mapping against the definitive column set.
//
// A nil raw mapping starts from the identity mapping. Keys outside the column
// set are dropped. Non-string descriptions are coerced to strings; nil and NaN
// descriptions are treated as missing and default to the tag itself. An
// empty-string key with a usable description is re-interpreted as that
// description mapping to itself, otherwise the pair is discarded. Columns with
// no entry get a synthetic "No description available for <tag>" description.
// When several columns share a description, the first such column in ascending
// order keeps it and every later one gets " <tag>" appended, which restores
// uniqueness. The result is keyed by exactly the column set, sorted ascending.
func Sanitize(raw map[string]interface{}, columns []string) Mapping {
	inColumns := make(map[string]bool, len(columns))
	for _, c := range columns {
		inColumns[c] = true
	}

	work := make(map[string]string, len(columns))
	if raw == nil {
		for _, c := range columns {
			work[c] = c
		}
	} else {
		for key, value := range raw {
			desc, ok := coerceString(value)
			if key == "" {
				if !ok || desc == "" {
					continue
				}
				// An empty tag is invalid; promote the description to
				// be both key and description.
				key = desc
			}
			if !ok || desc == "" {
				desc = key
			}
			work[key] = desc
		}
		for key := range work {
			if !inColumns[key] {
				delete(work, key)
			}
		}
	}

	counts := make(map[string]int, len(work))
	for _, d := range work {
		counts[d]++
	}

	sortedColumns := append([]string(nil), columns...)
	sort.Strings(sortedColumns)

	firstHolder := make(map[string]string, len(work))
	for _, c := range sortedColumns {
		d, ok := work[c]
		if !ok {
			continue
		}
		if _, seen := firstHolder[d]; !seen {
			firstHolder[d] = c
		}
	}

	m := Mapping{
		tags: sortedColumns,
		desc: make(map[string]string, len(sortedColumns)),
	}
	for _, c := range sortedColumns {
		d, ok := work[c]
		switch {
		case !ok:
			m.desc[c] = fmt.Sprintf("No description available for %s", c)
		case counts[d] > 1 && firstHolder[d] != c:
			m.desc[c] = d + " " + c
		default:
			m.desc[c] = d
		}
	}
	return m
}

// Normalize converts a raw mapping with arbitrary key types (as produced by
// lenient decoders) into string keys, stringifying numeric keys.
func Normalize(raw map[interface{}]interface{}) map[string]interface{} {
	if raw == nil {
		return nil
	}
	out := make(map[string]interface{}, len(raw))
	for k, v := range raw {
		key, ok := coerceString(k)
		if !ok {
			continue
		}
		out[key] = v
	}
	return out
}

// coerceString converts a raw description value to its string form. ok is
// false for nil and NaN values, which callers treat as missing.
func coerceString(v interface{}) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case float64:
		if math.IsNaN(t) {
			return "", false
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case float32:
		if math.IsNaN(float64(t)) {
			return "", false
		}
		return strconv.FormatFloat(float64(t), 'f', -1, 32), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return fmt.Sprintf("%v", t), true
	}
}
