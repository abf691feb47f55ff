package liberty

import (
	"strconv"
	"strings"
)

// unquote strips one pair of surrounding double quotes, if present.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// splitArgs splits a complex-attribute argument list at top-level commas.
// Commas inside quoted strings are kept, so `"0.1, 0.2", "0.3"` yields two
// arguments.
func splitArgs(s string) []string {
	var args []string
	start := 0
	inStr := false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case inStr && c == '\\':
			i++
		case inStr && c == '"':
			inStr = false
		case c == '"':
			inStr = true
		case !inStr && c == ',':
			args = append(args, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}
	if tail := strings.TrimSpace(s[start:]); tail != "" || len(args) > 0 {
		args = append(args, tail)
	}
	return args
}

// floatList parses a quoted, comma-separated float list such as the
// index_1/index_2 payloads: `"0.01, 0.02, 0.04"`. Entries may also be
// space-separated.
func floatList(raw string) ([]float64, error) {
	fields := strings.FieldsFunc(unquote(raw), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	vals := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// floatOr coerces a scalar attribute value, falling back to def when the
// text is not numeric.
func floatOr(raw string, def float64) float64 {
	if v := ParseValue(raw); v.IsNum {
		return v.Float
	}
	return def
}
