package liberty

import (
	"errors"
	"testing"
)

func decodeTableString(t *testing.T, body string) (*LookupTable, error) {
	t.Helper()
	return decodeTable(body, 0, len(body))
}

func TestDecodeTable(t *testing.T) {
	body := `
		index_1 ("0.01, 0.02");
		index_2 ("0.1, 0.2, 0.3");
		values ("1.0, 2.0, 3.0", "4.0, 5.0, 6.0");
	`
	tbl, err := decodeTableString(t, body)
	if err != nil {
		t.Fatalf("decodeTable failed: %v", err)
	}
	if len(tbl.Index1) != 2 || len(tbl.Index2) != 3 {
		t.Fatalf("axis lengths wrong: %d x %d", len(tbl.Index1), len(tbl.Index2))
	}
	if len(tbl.Values) != len(tbl.Index1) {
		t.Errorf("row count %d != index_1 length %d", len(tbl.Values), len(tbl.Index1))
	}
	for i, row := range tbl.Values {
		if len(row) != len(tbl.Index2) {
			t.Errorf("row %d length %d != index_2 length %d", i, len(row), len(tbl.Index2))
		}
	}
	if tbl.Values[1][2] != 6.0 {
		t.Errorf("Values[1][2] = %v", tbl.Values[1][2])
	}
}

func TestDecodeTableContinuationRows(t *testing.T) {
	// A single quoted payload whose rows are separated by the Liberty line
	// continuation marker.
	body := `
		index_1 ("0.01, 0.02");
		index_2 ("0.1, 0.2");
		values ("1.0, 2.0 \ 3.0, 4.0");
	`
	tbl, err := decodeTableString(t, body)
	if err != nil {
		t.Fatalf("decodeTable failed: %v", err)
	}
	if len(tbl.Values) != 2 || tbl.Values[1][0] != 3.0 {
		t.Fatalf("continuation rows wrong: %+v", tbl.Values)
	}
}

func TestDecodeTableRaggedRow(t *testing.T) {
	body := `
		index_1 ("0.01, 0.02");
		index_2 ("0.1, 0.2, 0.3");
		values ("1.0, 2.0, 3.0", "4.0, 5.0");
	`
	_, err := decodeTableString(t, body)
	if !errors.Is(err, ErrInvalidTable) {
		t.Fatalf("expected ErrInvalidTable, got %v", err)
	}
}

func TestDecodeTableRowCountMismatch(t *testing.T) {
	body := `
		index_1 ("0.01, 0.02, 0.04");
		index_2 ("0.1, 0.2");
		values ("1.0, 2.0", "3.0, 4.0");
	`
	_, err := decodeTableString(t, body)
	if !errors.Is(err, ErrInvalidTable) {
		t.Fatalf("expected ErrInvalidTable, got %v", err)
	}
}

func TestDecodeTableBadFloat(t *testing.T) {
	body := `
		index_1 ("0.01");
		index_2 ("0.1");
		values ("abc");
	`
	_, err := decodeTableString(t, body)
	if !errors.Is(err, ErrInvalidTable) {
		t.Fatalf("expected ErrInvalidTable, got %v", err)
	}
}

func TestDecodeTableMissingValues(t *testing.T) {
	body := `index_1 ("0.01"); index_2 ("0.1");`
	_, err := decodeTableString(t, body)
	if !errors.Is(err, ErrInvalidTable) {
		t.Fatalf("expected ErrInvalidTable, got %v", err)
	}
}
