// Package lib2vec flattens a parsed Liberty library into the JSON-friendly
// records a cell-embedding training pipeline consumes: per-cell summaries,
// functional expressions with pin roles, library statistics and a
// characterization sampling configuration.
package lib2vec

import (
	"github.com/OpenTraceLab/OpenTraceLiberty/pkg/interp"
	"github.com/OpenTraceLab/OpenTraceLiberty/pkg/liberty"
	"github.com/OpenTraceLab/OpenTraceLiberty/pkg/taxonomy"
)

// LibraryInfo carries the header of the source library.
type LibraryInfo struct {
	Name                string                   `json:"name"`
	Params              map[string]liberty.Value `json:"params,omitempty"`
	VoltageMaps         map[string]float64       `json:"voltage_maps,omitempty"`
	OperatingConditions string                   `json:"operating_conditions,omitempty"`
}

// PinRecord is the flattened form of one pin.
type PinRecord struct {
	Name           string  `json:"name"`
	Direction      string  `json:"direction"`
	Capacitance    float64 `json:"capacitance"`
	TimingArcCount int     `json:"timing_arc_count"`
}

// CellRecord is the flattened form of one cell.
type CellRecord struct {
	Name         string      `json:"name"`
	Area         float64     `json:"area"`
	LeakagePower float64     `json:"leakage_power"`
	PinCount     int         `json:"pin_count"`
	Pins         []PinRecord `json:"pins"`
	Function     string      `json:"function,omitempty"`
	CellType     string      `json:"cell_type"`
	Footprint    string      `json:"cell_footprint,omitempty"`
	TimingArcs   int         `json:"timing_arcs"`
}

// Dataset is the top-level export: library header, one record per cell, and
// the summary statistics over all of them.
type Dataset struct {
	Library LibraryInfo  `json:"library_info"`
	Cells   []CellRecord `json:"cells"`
	Stats   Stats        `json:"statistics"`
}

// Build flattens lib into a Dataset. Cell types come from cl; a nil
// classifier uses the default rule set.
func Build(lib *liberty.Library, cl *taxonomy.Classifier) *Dataset {
	if cl == nil {
		cl = taxonomy.NewClassifier(nil)
	}

	ds := &Dataset{
		Library: LibraryInfo{
			Name:                lib.Name,
			Params:              lib.Params,
			VoltageMaps:         lib.VoltageMaps,
			OperatingConditions: lib.OperatingConditions,
		},
		Cells: make([]CellRecord, 0, len(lib.Cells)),
	}

	for _, cell := range lib.Cells {
		rec := CellRecord{
			Name:         cell.Name,
			Area:         cell.Area,
			LeakagePower: cell.LeakagePower,
			PinCount:     len(cell.Pins),
			Pins:         make([]PinRecord, 0, len(cell.Pins)),
			Function:     cell.Function(),
			CellType:     cl.Classify(cell.Name, cell.Function()),
			Footprint:    cell.Footprint,
		}
		for _, pin := range cell.Pins {
			rec.Pins = append(rec.Pins, PinRecord{
				Name:           pin.Name,
				Direction:      string(pin.Direction),
				Capacitance:    pin.Capacitance,
				TimingArcCount: len(pin.Timing),
			})
			rec.TimingArcs += len(pin.Timing)
		}
		ds.Cells = append(ds.Cells, rec)
	}

	ds.Stats = ComputeStats(lib, cl)
	return ds
}

// FunctionalRecord pairs a cell's boolean expression with its pin roles.
type FunctionalRecord struct {
	Expression string   `json:"expression"`
	InputPins  []string `json:"input_pins"`
	OutputPins []string `json:"output_pins"`
}

// Functional returns one record per cell that declares a function. Cells
// without a function expression are skipped.
func Functional(lib *liberty.Library) map[string]FunctionalRecord {
	out := make(map[string]FunctionalRecord)
	for _, cell := range lib.Cells {
		fn := cell.Function()
		if fn == "" {
			continue
		}
		rec := FunctionalRecord{Expression: fn}
		for _, pin := range cell.Pins {
			switch pin.Direction {
			case liberty.DirInput:
				rec.InputPins = append(rec.InputPins, pin.Name)
			case liberty.DirOutput:
				rec.OutputPins = append(rec.OutputPins, pin.Name)
			}
		}
		out[cell.Name] = rec
	}
	return out
}

// SamplingConfig is the serialized form of a characterization grid.
type SamplingConfig struct {
	InputSlewSamples  []float64 `json:"input_slew_samples"`
	OutputLoadSamples []float64 `json:"output_load_samples"`
}

// NewSamplingConfig converts a sampling grid into its export form.
func NewSamplingConfig(g *interp.Grid) SamplingConfig {
	return SamplingConfig{
		InputSlewSamples:  g.Slew,
		OutputLoadSamples: g.Load,
	}
}
