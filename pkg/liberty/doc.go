// Package liberty parses Liberty standard-cell library files into a typed
// Library → Cell → Pin → TimingArc → LookupTable model.
//
// Liberty is the nested group/attribute text format used to describe
// combinational and sequential cells, their pins, and their timing/power
// characterization as 2D lookup tables.
//
// # Pipeline
//
// Parsing is a single pass over an in-memory text buffer:
//  1. Strip // and /* */ comments (quote-aware, offsets preserved)
//  2. Locate the library group and decode its header attributes
//  3. Scan the library body for cell group headers (sequential, cheap)
//  4. Decode cell bodies in parallel, each worker owning a disjoint span
//  5. Merge cells and diagnostics in header order
//
// Recoverable problems — an unbalanced cell body, a non-numeric value where
// a float was expected, a malformed lookup table — never abort the parse.
// They are collected as Diagnostics alongside the partial Library.
//
// # Usage
//
//	res, err := liberty.Parse(ctx, src)
//	if err != nil {
//		// fatal, or ctx expired (res then holds the partial library)
//	}
//	for _, cell := range res.Library.Cells {
//		fmt.Println(cell.Name, cell.Area)
//	}
//	for _, d := range res.Diagnostics {
//		fmt.Println(d)
//	}
//
// The parser targets the practically-occurring subset of the grammar
// (library, cell, pin, timing and lookup-table groups; scalar and
// comma-separated-list attributes). Constructs outside that subset are
// passed over or reported, never silently corrupted.
package liberty
