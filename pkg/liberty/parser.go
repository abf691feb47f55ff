package liberty

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Config controls the behavior of a Parser.
type Config struct {
	// MaxCells limits the number of cells decoded (0 = no limit). Useful for
	// smoke-testing multi-hundred-megabyte vendor libraries.
	MaxCells int

	// Workers bounds the parallel cell-decoding stage (0 = GOMAXPROCS).
	Workers int

	// Progress, when non-nil, receives progress updates during parsing.
	Progress chan<- Progress
}

// DefaultConfig returns a Config with defaults suitable for full parses.
func DefaultConfig() *Config {
	return &Config{}
}

// Validate normalizes out-of-range settings.
func (c *Config) Validate() error {
	if c.MaxCells < 0 {
		c.MaxCells = 0
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	return nil
}

// Progress reports the current state of a parse.
type Progress struct {
	Phase string // "scan" or "decode"
	Cell  string // cell just merged (decode phase)
	Index int    // 0-based cell index
	Total int    // total cells scheduled
}

// Result is the outcome of one parse: the (possibly partial) library plus
// every recoverable diagnostic collected along the way. Incomplete is set
// when the context expired before all scheduled cells were decoded.
type Result struct {
	Library     *Library
	Diagnostics []Diagnostic
	Incomplete  bool
}

// Parser decodes Liberty source text into a Library.
//
// The pipeline: strip comments, locate the library group, decode its header
// attributes, locate every cell group header with a sequential quote-aware
// scan, then decode the cell bodies in parallel. Cells are independent by
// construction, so one malformed cell is skipped with a diagnostic and never
// aborts the library.
type Parser struct {
	cfg *Config
}

// NewParser creates a Parser. A nil cfg means DefaultConfig().
func NewParser(cfg *Config) (*Parser, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("liberty: invalid config: %w", err)
	}
	return &Parser{cfg: cfg}, nil
}

// Parse decodes src with the default configuration.
func Parse(ctx context.Context, src string) (*Result, error) {
	p, err := NewParser(nil)
	if err != nil {
		return nil, err
	}
	return p.Parse(ctx, src)
}

// Parse decodes one Liberty source buffer.
//
// Fatal errors (unterminated comment, no library group) return a nil Result.
// When ctx expires, the partial Result decoded so far is returned together
// with the context error and Result.Incomplete set; callers may use both.
func (p *Parser) Parse(ctx context.Context, src string) (*Result, error) {
	text, err := StripComments(src)
	if err != nil {
		return nil, err
	}

	libHeaders := findGroupHeaders(text, 0, len(text), "library")
	if len(libHeaders) == 0 {
		return nil, ErrNoLibrary
	}
	libHdr := libHeaders[0]

	lib := &Library{
		Name:        libHdr.name,
		Params:      make(map[string]Value),
		VoltageMaps: make(map[string]float64),
	}
	res := &Result{Library: lib}

	libEnd, err := matchBrace(text, libHdr.bodyStart, len(text))
	if err != nil {
		// The library group never closes. Decode what is there anyway.
		libEnd = len(text)
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Line: lineAt(text, libHdr.off),
			Err:  fmt.Errorf("library %s: %w", lib.Name, ErrUnbalancedGroup),
		})
	}

	headers := findGroupHeaders(text, libHdr.bodyStart, libEnd, "cell")
	if p.cfg.MaxCells > 0 && len(headers) > p.cfg.MaxCells {
		headers = headers[:p.cfg.MaxCells]
	}

	// Library header attributes precede the first cell group.
	attrEnd := libEnd
	if len(headers) > 0 {
		attrEnd = headers[0].off
	}
	p.decodeLibraryAttrs(lib, text, libHdr.bodyStart, attrEnd, res)

	p.emit(Progress{Phase: "scan", Total: len(headers)})

	// Parallel per-cell decode. Each worker owns a disjoint span of text and
	// writes only its own result slot; no shared state until the merge.
	type cellResult struct {
		cell  *Cell
		diags []Diagnostic
	}
	results := make([]cellResult, len(headers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Workers)
	for i, h := range headers {
		i, h := i, h
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			bodyEnd, err := matchBrace(text, h.bodyStart, libEnd)
			if err != nil {
				results[i].diags = []Diagnostic{{
					Cell: h.name,
					Line: lineAt(text, h.off),
					Err:  ErrUnbalancedGroup,
				}}
				return nil
			}
			cell, diags := decodeCell(text, h.name, h.bodyStart, bodyEnd)
			results[i] = cellResult{cell: cell, diags: diags}
			return nil
		})
	}
	waitErr := g.Wait()

	for i, r := range results {
		res.Diagnostics = append(res.Diagnostics, r.diags...)
		if r.cell == nil {
			continue
		}
		if lib.addCell(r.cell) {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Cell: r.cell.Name,
				Err:  ErrDuplicateCell,
			})
		}
		p.emit(Progress{Phase: "decode", Cell: r.cell.Name, Index: i, Total: len(headers)})
	}

	if waitErr != nil {
		res.Incomplete = true
		return res, fmt.Errorf("liberty: parse aborted: %w", waitErr)
	}
	return res, nil
}

func (p *Parser) emit(pr Progress) {
	if p.cfg.Progress != nil {
		p.cfg.Progress <- pr
	}
}

// decodeLibraryAttrs decodes the statements between the library's opening
// brace and its first cell: scalar parameters, voltage_map entries and the
// operating_conditions group name. Template and wire-load groups are passed
// over; their contents do not feed the cell model.
func (p *Parser) decodeLibraryAttrs(lib *Library, src string, start, end int, res *Result) {
	sc := newScanner(src, start, end)
	for {
		st, ok, err := sc.next()
		if err != nil {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Line: lineAt(src, st.off),
				Err:  err,
			})
			return
		}
		if !ok {
			return
		}
		switch {
		case st.kind == stmtSimple:
			lib.Params[st.key] = ParseValue(st.value)
		case st.kind == stmtComplex && st.key == "voltage_map" && len(st.args) == 2:
			v := ParseValue(st.args[1])
			if !v.IsNum {
				res.Diagnostics = append(res.Diagnostics, Diagnostic{
					Line: lineAt(src, st.off),
					Err:  fmt.Errorf("%w: voltage_map %s", ErrMalformedAttribute, st.args[0]),
				})
				continue
			}
			lib.VoltageMaps[unquote(st.args[0])] = v.Float
		case st.kind == stmtGroup && st.key == "operating_conditions" && len(st.args) > 0:
			lib.OperatingConditions = unquote(st.args[0])
		}
	}
}

// decodeCell decodes one cell body span into a Cell plus any recoverable
// diagnostics. It touches nothing outside [start, end).
func decodeCell(src, name string, start, end int) (*Cell, []Diagnostic) {
	c := &Cell{Name: name, Attributes: make(map[string]Value)}
	var diags []Diagnostic

	sc := newScanner(src, start, end)
	for {
		st, ok, err := sc.next()
		if err != nil {
			diags = append(diags, Diagnostic{Cell: name, Line: lineAt(src, st.off), Err: err})
			break
		}
		if !ok {
			break
		}
		switch st.kind {
		case stmtSimple:
			switch st.key {
			case "area":
				diags = setFloat(&c.Area, c.Attributes, st, name, src, diags)
			case "cell_leakage_power":
				diags = setFloat(&c.LeakagePower, c.Attributes, st, name, src, diags)
			case "cell_footprint":
				c.Footprint = unquote(st.value)
			default:
				c.Attributes[st.key] = ParseValue(st.value)
			}
		case stmtComplex:
			c.Attributes[st.key] = ParseValue(strings.Join(st.args, ", "))
		case stmtGroup:
			if st.key != "pin" || len(st.args) == 0 {
				continue // ff, latch, statetable, leakage_power groups
			}
			pin, pdiags := decodePin(src, name, unquote(st.args[0]), st.bodyOff, st.bodyOff+len(st.body))
			c.addPin(pin)
			diags = append(diags, pdiags...)
		}
	}
	return c, diags
}

func decodePin(src, cellName, pinName string, start, end int) (*Pin, []Diagnostic) {
	p := &Pin{Name: pinName, Direction: DirUnknown, Attributes: make(map[string]Value)}
	var diags []Diagnostic

	sc := newScanner(src, start, end)
	for {
		st, ok, err := sc.next()
		if err != nil {
			diags = append(diags, Diagnostic{Cell: cellName, Line: lineAt(src, st.off), Err: err})
			break
		}
		if !ok {
			break
		}
		switch st.kind {
		case stmtSimple:
			switch st.key {
			case "direction":
				p.Direction = parseDirection(st.value)
			case "function":
				p.Function = unquote(st.value)
			case "capacitance":
				diags = setFloat(&p.Capacitance, p.Attributes, st, cellName, src, diags)
			case "max_capacitance":
				diags = setFloat(&p.MaxCapacitance, p.Attributes, st, cellName, src, diags)
			case "min_capacitance":
				diags = setFloat(&p.MinCapacitance, p.Attributes, st, cellName, src, diags)
			case "max_transition":
				diags = setFloat(&p.MaxTransition, p.Attributes, st, cellName, src, diags)
			default:
				p.Attributes[st.key] = ParseValue(st.value)
			}
		case stmtGroup:
			if st.key != "timing" {
				continue // internal_power and other pin groups
			}
			arc, adiags := decodeArc(src, cellName, pinName, st.bodyOff, st.bodyOff+len(st.body))
			p.Timing = append(p.Timing, arc)
			diags = append(diags, adiags...)
		}
	}
	return p, diags
}

func decodeArc(src, cellName, pinName string, start, end int) (*TimingArc, []Diagnostic) {
	arc := &TimingArc{Pin: pinName}
	var diags []Diagnostic

	sc := newScanner(src, start, end)
	for {
		st, ok, err := sc.next()
		if err != nil {
			diags = append(diags, Diagnostic{Cell: cellName, Line: lineAt(src, st.off), Err: err})
			break
		}
		if !ok {
			break
		}
		switch st.kind {
		case stmtSimple:
			switch st.key {
			case "related_pin":
				arc.RelatedPin = unquote(st.value)
			case "timing_sense":
				arc.TimingSense = unquote(st.value)
			case "timing_type":
				arc.TimingType = unquote(st.value)
			}
		case stmtGroup:
			slot := arc.tableSlot(st.key)
			if slot == nil {
				continue
			}
			tbl, err := decodeTable(src, st.bodyOff, st.bodyOff+len(st.body))
			if err != nil {
				// Table slot stays nil; the arc survives without it.
				diags = append(diags, Diagnostic{Cell: cellName, Line: lineAt(src, st.off), Err: err})
				continue
			}
			*slot = tbl
		}
	}
	return arc, diags
}

func (a *TimingArc) tableSlot(name string) **LookupTable {
	switch name {
	case "cell_rise":
		return &a.CellRise
	case "cell_fall":
		return &a.CellFall
	case "rise_transition":
		return &a.RiseTransition
	case "fall_transition":
		return &a.FallTransition
	case "rise_power":
		return &a.RisePower
	case "fall_power":
		return &a.FallPower
	}
	return nil
}

// setFloat assigns a numeric attribute, or records ErrMalformedAttribute and
// retains the raw string when the value does not parse.
func setFloat(dst *float64, attrs map[string]Value, st stmt, cellName, src string, diags []Diagnostic) []Diagnostic {
	v := ParseValue(st.value)
	if v.IsNum {
		*dst = v.Float
		return diags
	}
	attrs[st.key] = v
	return append(diags, Diagnostic{
		Cell: cellName,
		Line: lineAt(src, st.off),
		Err:  fmt.Errorf("%w: %s: %q", ErrMalformedAttribute, st.key, v.Str),
	})
}

func parseDirection(raw string) Direction {
	switch unquote(raw) {
	case "input":
		return DirInput
	case "output":
		return DirOutput
	case "inout":
		return DirInout
	}
	return DirUnknown
}
