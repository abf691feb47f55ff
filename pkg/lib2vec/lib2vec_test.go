package lib2vec

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceLiberty/pkg/interp"
	"github.com/OpenTraceLab/OpenTraceLiberty/pkg/liberty"
)

const exportSrc = `
library (export_test) {
  delay_model : table_lookup;
  nom_voltage : 0.7;
  cell (AND2x1) {
    area : 1.5;
    cell_leakage_power : 0.002;
    pin (A) { direction : input; capacitance : 0.001; }
    pin (B) { direction : input; capacitance : 0.001; }
    pin (Y) {
      direction : output;
      function : "A & B";
      timing () {
        related_pin : "A";
        cell_rise (tmpl) {
          index_1 ("0.01, 0.1");
          index_2 ("0.5, 2.0");
          values ("1.0, 2.0", "3.0, 4.0");
        }
      }
    }
  }
  cell (INVx2) {
    area : 0.5;
    pin (A) { direction : input; capacitance : 0.001; }
    pin (Y) { direction : output; function : "!A"; }
  }
}
`

func parseExportLib(t *testing.T) *liberty.Library {
	t.Helper()
	res, err := liberty.Parse(context.Background(), exportSrc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return res.Library
}

func TestBuildDataset(t *testing.T) {
	ds := Build(parseExportLib(t), nil)

	if ds.Library.Name != "export_test" {
		t.Errorf("library name = %q", ds.Library.Name)
	}
	if len(ds.Cells) != 2 {
		t.Fatalf("got %d cell records, want 2", len(ds.Cells))
	}

	and2 := ds.Cells[0]
	if and2.Name != "AND2x1" || and2.CellType != "AND2" {
		t.Errorf("got %q type %q, want AND2x1 / AND2", and2.Name, and2.CellType)
	}
	if and2.PinCount != 3 || len(and2.Pins) != 3 {
		t.Errorf("pin count = %d", and2.PinCount)
	}
	if and2.Function != "A & B" {
		t.Errorf("function = %q", and2.Function)
	}
	if and2.TimingArcs != 1 {
		t.Errorf("timing arcs = %d, want 1", and2.TimingArcs)
	}

	if ds.Stats.TotalCells != 2 {
		t.Errorf("stats total = %d", ds.Stats.TotalCells)
	}
}

func TestComputeStats(t *testing.T) {
	st := ComputeStats(parseExportLib(t), nil)

	if st.FunctionKinds["and_gate"] != 1 || st.FunctionKinds["inverter"] != 1 {
		t.Errorf("function kinds = %v", st.FunctionKinds)
	}
	if st.CellTypes["AND2"] != 1 || st.CellTypes["INV"] != 1 {
		t.Errorf("cell types = %v", st.CellTypes)
	}
	if st.PinCounts[3] != 1 || st.PinCounts[2] != 1 {
		t.Errorf("pin counts = %v", st.PinCounts)
	}
	if st.Area.Min != 0.5 || st.Area.Max != 1.5 || st.Area.Total != 2.0 || st.Area.Avg != 1.0 {
		t.Errorf("area stats = %+v", st.Area)
	}
	if st.TimingArcsTotal != 1 {
		t.Errorf("timing arcs = %d", st.TimingArcsTotal)
	}
}

func TestFunctional(t *testing.T) {
	fn := Functional(parseExportLib(t))
	rec, ok := fn["AND2x1"]
	if !ok {
		t.Fatal("missing AND2x1 record")
	}
	if rec.Expression != "A & B" {
		t.Errorf("expression = %q", rec.Expression)
	}
	if len(rec.InputPins) != 2 || rec.InputPins[0] != "A" || rec.InputPins[1] != "B" {
		t.Errorf("input pins = %v", rec.InputPins)
	}
	if len(rec.OutputPins) != 1 || rec.OutputPins[0] != "Y" {
		t.Errorf("output pins = %v", rec.OutputPins)
	}
}

func TestDatasetJSONShape(t *testing.T) {
	ds := Build(parseExportLib(t), nil)
	raw, err := json.Marshal(ds)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{
		`"library_info"`, `"cells"`, `"statistics"`,
		`"area_distribution"`, `"pin_count_distribution"`, `"cell_type":"AND2"`,
	} {
		if !strings.Contains(string(raw), key) {
			t.Errorf("JSON missing %s", key)
		}
	}
}

func TestSamplingConfig(t *testing.T) {
	grid, err := interp.SampleGrid(parseExportLib(t), 5)
	if err != nil {
		t.Fatalf("SampleGrid: %v", err)
	}
	cfg := NewSamplingConfig(grid)
	if len(cfg.InputSlewSamples) != 5 || len(cfg.OutputLoadSamples) != 5 {
		t.Fatalf("sample counts = %d/%d", len(cfg.InputSlewSamples), len(cfg.OutputLoadSamples))
	}
	if cfg.InputSlewSamples[0] != 0.01 || cfg.OutputLoadSamples[4] != 2.0 {
		t.Errorf("endpoints = %v ... %v", cfg.InputSlewSamples[0], cfg.OutputLoadSamples[4])
	}
}
