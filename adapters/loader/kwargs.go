package loader

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseKwargs turns "key=value" tokens into reader options. Each value is
// attempted as a literal first (int, float, bool, None) and falls back to the
// raw string.
func ParseKwargs(tokens []string) (Options, error) {
	opts := make(Options, len(tokens))
	for _, tok := range tokens {
		key, value, found := strings.Cut(tok, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("read kwarg %q is not in key=value form", tok)
		}
		opts[key] = literal(value)
	}
	return opts, nil
}

func literal(s string) interface{} {
	switch s {
	case "None", "null":
		return nil
	case "True", "true":
		return true
	case "False", "false":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return int(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
