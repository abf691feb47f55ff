package liberty

import (
	"fmt"
	"strconv"
	"strings"
)

// decodeTable parses the body of a lookup-table group (cell_rise, rise_power,
// ...) into a LookupTable.
//
// index_1 and index_2 are quoted comma-separated float lists. values is one
// or more quoted strings whose rows are separated by `\` line continuations
// and whose entries are comma/space separated. The decoded matrix must be
// rectangular: len(Values) == len(Index1) and every row as long as Index2.
// Any violation or unparsable float yields ErrInvalidTable; no partial table
// is ever returned.
func decodeTable(src string, start, end int) (*LookupTable, error) {
	var tbl LookupTable
	var rawRows []string

	sc := newScanner(src, start, end)
	for {
		st, ok, err := sc.next()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
		}
		if !ok {
			break
		}
		switch st.key {
		case "index_1", "index_2":
			raw := st.value
			if st.kind == stmtComplex && len(st.args) > 0 {
				raw = st.args[0]
			}
			vals, err := floatList(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTable, st.key, err)
			}
			if st.key == "index_1" {
				tbl.Index1 = vals
			} else {
				tbl.Index2 = vals
			}
		case "values":
			rawRows = append(rawRows, st.args...)
			if st.kind == stmtSimple && st.value != "" {
				rawRows = append(rawRows, st.value)
			}
		}
	}

	for _, arg := range rawRows {
		// A single argument may hold several rows joined by `\`.
		for _, part := range strings.Split(unquote(arg), "\\") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			row, err := parseRow(part)
			if err != nil {
				return nil, fmt.Errorf("%w: values: %v", ErrInvalidTable, err)
			}
			tbl.Values = append(tbl.Values, row)
		}
	}

	if len(tbl.Index1) == 0 || len(tbl.Index2) == 0 || len(tbl.Values) == 0 {
		return nil, fmt.Errorf("%w: missing index_1, index_2 or values", ErrInvalidTable)
	}
	if len(tbl.Values) != len(tbl.Index1) {
		return nil, fmt.Errorf("%w: %d rows for %d index_1 entries",
			ErrInvalidTable, len(tbl.Values), len(tbl.Index1))
	}
	for i, row := range tbl.Values {
		if len(row) != len(tbl.Index2) {
			return nil, fmt.Errorf("%w: row %d has %d entries, index_2 has %d",
				ErrInvalidTable, i, len(row), len(tbl.Index2))
		}
	}
	return &tbl, nil
}

func parseRow(part string) ([]float64, error) {
	fields := strings.FieldsFunc(unquote(part), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	row := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		row = append(row, v)
	}
	return row, nil
}
