package interp

import (
	"errors"
	"math"
	"testing"

	"github.com/OpenTraceLab/OpenTraceLiberty/pkg/liberty"
)

func gridLibrary() *liberty.Library {
	arc := func(i1, i2 []float64) *liberty.TimingArc {
		rows := make([][]float64, len(i1))
		for i := range rows {
			rows[i] = make([]float64, len(i2))
		}
		return &liberty.TimingArc{
			CellRise: &liberty.LookupTable{Index1: i1, Index2: i2, Values: rows},
		}
	}
	return &liberty.Library{
		Name: "grid_test",
		Cells: []*liberty.Cell{
			{
				Name: "A",
				Pins: []*liberty.Pin{{
					Name:   "Y",
					Timing: []*liberty.TimingArc{arc([]float64{0.01, 0.1}, []float64{0.5, 2.0})},
				}},
			},
			{
				Name: "B",
				Pins: []*liberty.Pin{{
					Name:   "Y",
					Timing: []*liberty.TimingArc{arc([]float64{0.05, 0.8}, []float64{0.1, 1.0})},
				}},
			},
		},
	}
}

func TestSampleGridSpansAllTables(t *testing.T) {
	g, err := SampleGrid(gridLibrary(), 10)
	if err != nil {
		t.Fatalf("SampleGrid: %v", err)
	}
	if len(g.Slew) != 10 || len(g.Load) != 10 {
		t.Fatalf("got %d slew / %d load samples, want 10 each", len(g.Slew), len(g.Load))
	}
	if g.Slew[0] != 0.01 || g.Slew[9] != 0.8 {
		t.Errorf("slew range [%v, %v], want [0.01, 0.8]", g.Slew[0], g.Slew[9])
	}
	if g.Load[0] != 0.1 || g.Load[9] != 2.0 {
		t.Errorf("load range [%v, %v], want [0.1, 2.0]", g.Load[0], g.Load[9])
	}
}

func TestSampleGridLogSpacing(t *testing.T) {
	lib := &liberty.Library{
		Cells: []*liberty.Cell{{
			Name: "A",
			Pins: []*liberty.Pin{{
				Name: "Y",
				Timing: []*liberty.TimingArc{{
					CellRise: &liberty.LookupTable{
						Index1: []float64{1e-3, 1e1},
						Index2: []float64{1e-3, 1e1},
						Values: [][]float64{{0, 0}, {0, 0}},
					},
				}},
			}},
		}},
	}
	g, err := SampleGrid(lib, 4)
	if err != nil {
		t.Fatalf("SampleGrid: %v", err)
	}
	if g.Slew[0] != 1e-3 || g.Slew[3] != 1e1 {
		t.Fatalf("endpoints not exact: %v", g.Slew)
	}
	// Consecutive ratio constant in log space.
	prev := g.Slew[1] / g.Slew[0]
	for i := 2; i < 4; i++ {
		r := g.Slew[i] / g.Slew[i-1]
		if math.Abs(r-prev) > 1e-9*prev {
			t.Fatalf("ratios not constant: %v", g.Slew)
		}
		if g.Slew[i] <= g.Slew[i-1] {
			t.Fatalf("samples not increasing: %v", g.Slew)
		}
	}
}

func TestSampleGridDefaultPoints(t *testing.T) {
	g, err := SampleGrid(gridLibrary(), 0)
	if err != nil {
		t.Fatalf("SampleGrid: %v", err)
	}
	if len(g.Slew) != DefaultPoints {
		t.Fatalf("got %d samples, want %d", len(g.Slew), DefaultPoints)
	}
}

func TestSampleGridEmptyLibrary(t *testing.T) {
	_, err := SampleGrid(&liberty.Library{Name: "empty"}, 10)
	if !errors.Is(err, ErrEmptyDomain) {
		t.Fatalf("got %v, want ErrEmptyDomain", err)
	}
}

func TestConditionsCrossProduct(t *testing.T) {
	g := &Grid{Slew: []float64{1, 2}, Load: []float64{10, 20, 30}}
	conds := g.Conditions()
	if len(conds) != 6 {
		t.Fatalf("got %d conditions, want 6", len(conds))
	}
	if conds[0] != [2]float64{1, 10} || conds[5] != [2]float64{2, 30} {
		t.Fatalf("unexpected ordering: %v", conds)
	}
}
