package liberty

import (
	"encoding/json"
	"strconv"
)

// Direction identifies the signal direction of a pin.
type Direction string

const (
	DirInput   Direction = "input"
	DirOutput  Direction = "output"
	DirInout   Direction = "inout"
	DirUnknown Direction = "unknown"
)

// Value is an attribute value. Liberty attributes are untyped text; a value
// is coerced to float64 when possible and retains its raw string form
// otherwise.
type Value struct {
	Float float64
	Str   string
	IsNum bool
}

// ParseValue unquotes raw and attempts float64 coercion.
func ParseValue(raw string) Value {
	s := unquote(raw)
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Value{Float: f, Str: s, IsNum: true}
	}
	return Value{Str: s}
}

// String returns the raw textual form of the value.
func (v Value) String() string {
	return v.Str
}

// MarshalJSON renders numeric values as JSON numbers and everything else as
// strings, matching the shape of the exported dataset files.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsNum {
		return json.Marshal(v.Float)
	}
	return json.Marshal(v.Str)
}

// Library is the root of a parsed Liberty file. It is constructed once by
// the parser and read-only afterwards.
type Library struct {
	Name string

	// Params holds library-level scalar attributes (delay_model,
	// nom_voltage, nom_temperature, ...).
	Params map[string]Value

	// VoltageMaps holds voltage_map(name, volts) entries.
	VoltageMaps map[string]float64

	// OperatingConditions is the name of the operating_conditions group,
	// empty when the library declares none.
	OperatingConditions string

	// Cells in parse order.
	Cells []*Cell

	cellIndex map[string]int
}

// Cell returns the cell with the given name, or nil.
func (l *Library) Cell(name string) *Cell {
	if i, ok := l.cellIndex[name]; ok {
		return l.Cells[i]
	}
	return nil
}

// CellNames returns all cell names in parse order.
func (l *Library) CellNames() []string {
	names := make([]string, len(l.Cells))
	for i, c := range l.Cells {
		names[i] = c.Name
	}
	return names
}

// addCell appends or replaces a cell. It reports whether an existing cell of
// the same name was overwritten (duplicate definitions: last one wins).
func (l *Library) addCell(c *Cell) bool {
	if l.cellIndex == nil {
		l.cellIndex = make(map[string]int)
	}
	if i, ok := l.cellIndex[c.Name]; ok {
		l.Cells[i] = c
		return true
	}
	l.cellIndex[c.Name] = len(l.Cells)
	l.Cells = append(l.Cells, c)
	return false
}

// Cell is one library element with its pins and timing characterization.
type Cell struct {
	Name         string
	Area         float64
	LeakagePower float64
	Footprint    string

	// Attributes holds cell-level attributes not modeled as fields above,
	// so unknown keys survive a parse round-trip.
	Attributes map[string]Value

	// Pins in parse order.
	Pins []*Pin

	pinIndex map[string]int
}

// Pin returns the pin with the given name, or nil.
func (c *Cell) Pin(name string) *Pin {
	if i, ok := c.pinIndex[name]; ok {
		return c.Pins[i]
	}
	return nil
}

func (c *Cell) addPin(p *Pin) {
	if c.pinIndex == nil {
		c.pinIndex = make(map[string]int)
	}
	if i, ok := c.pinIndex[p.Name]; ok {
		c.Pins[i] = p
		return
	}
	c.pinIndex[p.Name] = len(c.Pins)
	c.Pins = append(c.Pins, p)
}

// Function returns the boolean function of the first output pin that has
// one, or "".
func (c *Cell) Function() string {
	for _, p := range c.Pins {
		if p.Direction == DirOutput && p.Function != "" {
			return p.Function
		}
	}
	return ""
}

// TimingArcs returns all timing arcs of the cell across its pins.
func (c *Cell) TimingArcs() []*TimingArc {
	var arcs []*TimingArc
	for _, p := range c.Pins {
		arcs = append(arcs, p.Timing...)
	}
	return arcs
}

// Pin is a named terminal of a cell.
type Pin struct {
	Name      string
	Direction Direction

	// Function is the boolean expression of an output pin, e.g. "A&B".
	// Empty for pins without one.
	Function string

	Capacitance    float64
	MaxCapacitance float64
	MinCapacitance float64
	MaxTransition  float64

	// Attributes holds pin-level attributes not modeled as fields above.
	Attributes map[string]Value

	// Timing arcs characterized on this (output) pin.
	Timing []*TimingArc
}

// TimingArc is the characterized relationship between an input pin and the
// output pin that owns it. Table slots are nil when the arc is not
// characterized for that quantity.
type TimingArc struct {
	Pin         string // owning output pin
	RelatedPin  string
	TimingSense string
	TimingType  string

	CellRise       *LookupTable
	CellFall       *LookupTable
	RiseTransition *LookupTable
	FallTransition *LookupTable
	RisePower      *LookupTable
	FallPower      *LookupTable
}

// Tables returns the arc's non-nil lookup tables keyed by their Liberty
// group name.
func (a *TimingArc) Tables() map[string]*LookupTable {
	m := make(map[string]*LookupTable, 6)
	for name, tbl := range map[string]*LookupTable{
		"cell_rise":       a.CellRise,
		"cell_fall":       a.CellFall,
		"rise_transition": a.RiseTransition,
		"fall_transition": a.FallTransition,
		"rise_power":      a.RisePower,
		"fall_power":      a.FallPower,
	} {
		if tbl != nil {
			m[name] = tbl
		}
	}
	return m
}

// LookupTable is a 2D characterization table indexed by input transition
// time (Index1) and output load (Index2). Values is row-major with
// len(Values) == len(Index1) and len(Values[i]) == len(Index2); the decoder
// never exposes a table violating that shape.
type LookupTable struct {
	Index1 []float64
	Index2 []float64
	Values [][]float64
}
