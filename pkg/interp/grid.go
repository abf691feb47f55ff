package interp

import (
	"errors"
	"fmt"
	"math"

	"github.com/OpenTraceLab/OpenTraceLiberty/pkg/liberty"
)

// DefaultPoints is the per-axis sample count used when a caller does not
// specify one.
const DefaultPoints = 150

// ErrEmptyDomain is returned by SampleGrid when the library contains no
// lookup tables to derive a range from, or the derived range is not
// positive (log spacing needs strictly positive endpoints).
var ErrEmptyDomain = errors.New("interp: no table domain to sample")

// Grid is a library-wide sampling grid: logarithmically spaced input slews
// and output loads spanning the union of every lookup-table axis in the
// library.
type Grid struct {
	Slew []float64
	Load []float64
}

// SampleGrid scans every lookup table of every timing arc in lib, takes the
// global min and max of each axis, and returns points log-spaced samples per
// axis between them. The first and last samples equal the range endpoints
// exactly. points <= 0 selects DefaultPoints.
func SampleGrid(lib *liberty.Library, points int) (*Grid, error) {
	if points <= 0 {
		points = DefaultPoints
	}

	slewMin, slewMax := math.Inf(1), math.Inf(-1)
	loadMin, loadMax := math.Inf(1), math.Inf(-1)
	seen := false

	for _, cell := range lib.Cells {
		for _, arc := range cell.TimingArcs() {
			for _, tbl := range arc.Tables() {
				seen = true
				slewMin = math.Min(slewMin, tbl.Index1[0])
				slewMax = math.Max(slewMax, tbl.Index1[len(tbl.Index1)-1])
				loadMin = math.Min(loadMin, tbl.Index2[0])
				loadMax = math.Max(loadMax, tbl.Index2[len(tbl.Index2)-1])
			}
		}
	}
	if !seen {
		return nil, ErrEmptyDomain
	}
	if slewMin <= 0 || loadMin <= 0 {
		return nil, fmt.Errorf("%w: non-positive axis minimum", ErrEmptyDomain)
	}

	return &Grid{
		Slew: logspace(slewMin, slewMax, points),
		Load: logspace(loadMin, loadMax, points),
	}, nil
}

// Conditions returns the full cross product of the grid, slew-major: every
// (slew, load) pair a characterization sweep would evaluate.
func (g *Grid) Conditions() [][2]float64 {
	out := make([][2]float64, 0, len(g.Slew)*len(g.Load))
	for _, s := range g.Slew {
		for _, l := range g.Load {
			out = append(out, [2]float64{s, l})
		}
	}
	return out
}

// logspace returns n samples between lo and hi, evenly spaced in log10.
// Endpoints are assigned exactly rather than through the exponential, so
// round-trip error in math.Pow cannot perturb them.
func logspace(lo, hi float64, n int) []float64 {
	if n == 1 || lo == hi {
		return []float64{lo}
	}
	out := make([]float64, n)
	llo, lhi := math.Log10(lo), math.Log10(hi)
	step := (lhi - llo) / float64(n-1)
	out[0] = lo
	for i := 1; i < n-1; i++ {
		out[i] = math.Pow(10, llo+float64(i)*step)
	}
	out[n-1] = hi
	return out
}
