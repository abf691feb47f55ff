package lib2vec

import (
	"github.com/OpenTraceLab/OpenTraceLiberty/pkg/boolexpr"
	"github.com/OpenTraceLab/OpenTraceLiberty/pkg/liberty"
	"github.com/OpenTraceLab/OpenTraceLiberty/pkg/taxonomy"
)

// AreaStats summarizes cell areas across a library.
type AreaStats struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Avg   float64 `json:"avg"`
	Total float64 `json:"total"`
}

// Stats summarizes a library for dataset manifests.
type Stats struct {
	TotalCells      int            `json:"total_cells"`
	PinCounts       map[int]int    `json:"pin_count_distribution"`
	FunctionKinds   map[string]int `json:"function_types"`
	CellTypes       map[string]int `json:"cell_types"`
	Area            AreaStats      `json:"area_distribution"`
	TimingArcsTotal int            `json:"timing_arcs_total"`
}

// ComputeStats walks lib once and tallies its distributions. Function kinds
// come from parsing each cell's expression; an unparseable or missing
// expression counts under "unknown". Cell types come from cl, or the default
// classifier when cl is nil.
func ComputeStats(lib *liberty.Library, cl *taxonomy.Classifier) Stats {
	if cl == nil {
		cl = taxonomy.NewClassifier(nil)
	}

	st := Stats{
		TotalCells:    len(lib.Cells),
		PinCounts:     make(map[int]int),
		FunctionKinds: make(map[string]int),
		CellTypes:     make(map[string]int),
	}

	var totalArea float64
	first := true
	for _, cell := range lib.Cells {
		st.PinCounts[len(cell.Pins)]++
		st.CellTypes[cl.Classify(cell.Name, cell.Function())]++

		kind := "unknown"
		if fn := cell.Function(); fn != "" {
			if expr, err := boolexpr.Parse(fn); err == nil {
				kind = string(expr.Kind())
			}
		}
		st.FunctionKinds[kind]++

		totalArea += cell.Area
		if first || cell.Area < st.Area.Min {
			st.Area.Min = cell.Area
		}
		if first || cell.Area > st.Area.Max {
			st.Area.Max = cell.Area
		}
		first = false

		st.TimingArcsTotal += len(cell.TimingArcs())
	}

	if st.TotalCells > 0 {
		st.Area.Total = totalArea
		st.Area.Avg = totalArea / float64(st.TotalCells)
	}
	return st
}
