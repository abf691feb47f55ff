package liberty

import (
	"errors"
	"fmt"
)

var (
	// ErrUnbalancedGroup is reported when a group body runs out of input
	// before its braces balance. Per-cell and recoverable: the cell is
	// skipped and parsing continues with the next one.
	ErrUnbalancedGroup = errors.New("liberty: unbalanced group")

	// ErrUnterminatedComment is reported for a /* comment still open at end
	// of input. Fatal: the text structure cannot be trusted past it.
	ErrUnterminatedComment = errors.New("liberty: unterminated block comment")

	// ErrInvalidTable is reported when a lookup table fails float parsing or
	// the rectangular-shape check. Recoverable: the table slot stays nil.
	ErrInvalidTable = errors.New("liberty: invalid lookup table")

	// ErrMalformedAttribute is reported when an attribute expected to be
	// numeric does not parse as a float. Recoverable: the raw string is
	// retained in the open attribute map.
	ErrMalformedAttribute = errors.New("liberty: malformed attribute")

	// ErrDuplicateCell is reported when a library defines the same cell name
	// twice. The last definition wins; the diagnostic preserves the fact.
	ErrDuplicateCell = errors.New("liberty: duplicate cell definition")

	// ErrNoLibrary is reported when the input contains no library group.
	ErrNoLibrary = errors.New("liberty: no library group found")
)

// Diagnostic records a recoverable decode failure. Cell is empty for
// library-level conditions. Line is 1-based in the original source, 0 when
// unknown.
type Diagnostic struct {
	Cell string
	Line int
	Err  error
}

func (d Diagnostic) String() string {
	switch {
	case d.Cell != "" && d.Line > 0:
		return fmt.Sprintf("cell %s (line %d): %v", d.Cell, d.Line, d.Err)
	case d.Cell != "":
		return fmt.Sprintf("cell %s: %v", d.Cell, d.Err)
	case d.Line > 0:
		return fmt.Sprintf("line %d: %v", d.Line, d.Err)
	default:
		return d.Err.Error()
	}
}
