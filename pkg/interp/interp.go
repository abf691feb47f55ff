// Package interp evaluates Liberty lookup tables at arbitrary operating
// points and derives library-wide sampling grids for electrical
// characterization sweeps.
package interp

import (
	"github.com/OpenTraceLab/OpenTraceLiberty/pkg/liberty"
)

// Lookup evaluates a lookup table at the query point (slew, load) using
// bilinear interpolation between the four bracketing grid values.
//
// Queries outside the table's domain clamp to the nearest edge; there is no
// extrapolation. When the bracketing indices coincide on one axis the blend
// degrades to linear interpolation, and to a direct table read when they
// coincide on both. A single-point axis is the degenerate direct-read case,
// never a division by zero.
//
// The table is assumed valid (the liberty decoder never exposes a
// non-rectangular table).
func Lookup(tbl *liberty.LookupTable, slew, load float64) float64 {
	x := clamp(slew, tbl.Index1[0], tbl.Index1[len(tbl.Index1)-1])
	y := clamp(load, tbl.Index2[0], tbl.Index2[len(tbl.Index2)-1])

	i1, i2 := bracket(tbl.Index1, x)
	j1, j2 := bracket(tbl.Index2, y)

	switch {
	case i1 == i2 && j1 == j2:
		return tbl.Values[i1][j1]

	case i1 == i2:
		t := frac(y, tbl.Index2[j1], tbl.Index2[j2])
		return lerp(tbl.Values[i1][j1], tbl.Values[i1][j2], t)

	case j1 == j2:
		t := frac(x, tbl.Index1[i1], tbl.Index1[i2])
		return lerp(tbl.Values[i1][j1], tbl.Values[i2][j1], t)

	default:
		t1 := frac(x, tbl.Index1[i1], tbl.Index1[i2])
		t2 := frac(y, tbl.Index2[j1], tbl.Index2[j2])
		v11, v12 := tbl.Values[i1][j1], tbl.Values[i1][j2]
		v21, v22 := tbl.Values[i2][j1], tbl.Values[i2][j2]
		return v11*(1-t1)*(1-t2) +
			v21*t1*(1-t2) +
			v12*(1-t1)*t2 +
			v22*t1*t2
	}
}

// bracket returns indices i1 <= i2 with axis[i1] <= v <= axis[i2]. For v at
// or beyond the last point both indices collapse onto it; likewise at an
// exact grid point, so callers hit the degenerate branches instead of
// dividing a zero interval.
func bracket(axis []float64, v float64) (int, int) {
	i1 := 0
	for i1 < len(axis)-1 && axis[i1+1] <= v {
		i1++
	}
	if axis[i1] == v || i1 == len(axis)-1 {
		return i1, i1
	}
	return i1, i1 + 1
}

func frac(v, lo, hi float64) float64 {
	if hi == lo {
		return 0
	}
	return (v - lo) / (hi - lo)
}

func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
