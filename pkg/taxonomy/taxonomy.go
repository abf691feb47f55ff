// Package taxonomy groups standard cells by logical function, collapsing
// drive-strength and threshold-voltage variants of one gate into a single
// canonical type key (AND2x2 and AND2x6 are both "AND2").
package taxonomy

import (
	"strconv"
	"strings"

	"github.com/OpenTraceLab/OpenTraceLiberty/pkg/boolexpr"
	"github.com/OpenTraceLab/OpenTraceLiberty/pkg/liberty"
)

// Rule recognizes one base-function token in a cell name. Arity marks
// tokens whose canonical key carries the input count (NAND2, NAND3, ...).
type Rule struct {
	Token string
	Arity bool
}

// DefaultRules returns the ASAP7-style rule table. Order is a committed
// contract: negated and longer tokens come before their substrings (XNOR
// before XOR before OR, NAND before AND), since the first matching rule
// decides the equivalence class.
func DefaultRules() []Rule {
	return []Rule{
		{Token: "XNOR", Arity: true},
		{Token: "XOR", Arity: true},
		{Token: "NAND", Arity: true},
		{Token: "NOR", Arity: true},
		{Token: "AND", Arity: true},
		{Token: "OR", Arity: true},
		{Token: "INV"},
		{Token: "BUF"},
		{Token: "MUX"},
		{Token: "DFF"},
		{Token: "LATCH"},
		{Token: "ADDER"},
		{Token: "AOI"},
		{Token: "OAI"},
	}
}

// Classifier maps cell names to canonical type keys.
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a classifier. A nil rules slice means
// DefaultRules(); passing an explicit table adapts the classifier to other
// naming conventions.
func NewClassifier(rules []Rule) *Classifier {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

// Classify returns the canonical type key for a cell. It is a pure function
// of the cell name and its optional function expression.
//
// The name is first stripped of its drive-strength suffix (everything from
// the ASAP7 `x<digit>` marker on). The first rule whose token occurs in the
// stripped base name wins; arity-bearing tokens get the input count appended
// when one can be detected, first from a digit following the token in the
// name, then from the function expression's distinct inputs. Names matching
// no rule classify as their stripped base.
func (c *Classifier) Classify(name, function string) string {
	base := baseName(name)
	upper := strings.ToUpper(base)

	for _, r := range c.rules {
		i := strings.Index(upper, r.Token)
		if i < 0 {
			continue
		}
		if !r.Arity {
			return r.Token
		}
		if d := digitAfter(upper, i+len(r.Token)); d != "" {
			return r.Token + d
		}
		if n := functionArity(function); n >= 2 {
			return r.Token + strconv.Itoa(n)
		}
		return r.Token
	}
	return base
}

// ClassifyLibrary builds the type key → cell names mapping for a parsed
// library. Cell names within a type keep their parse order.
func (c *Classifier) ClassifyLibrary(lib *liberty.Library) map[string][]string {
	types := make(map[string][]string)
	for _, cell := range lib.Cells {
		key := c.Classify(cell.Name, cell.Function())
		types[key] = append(types[key], cell.Name)
	}
	return types
}

// baseName strips the drive-strength/variant suffix: everything from the
// first lowercase 'x' that starts a drive marker, either x<digit> or the
// fractional xp<digit> form ("AND2x2_ASAP7_75t_R" → "AND2",
// "HB1xp67_ASAP7_75t_R" → "HB1").
func baseName(name string) string {
	for i := 0; i+1 < len(name); i++ {
		if name[i] != 'x' {
			continue
		}
		if isDigit(name[i+1]) {
			return name[:i]
		}
		if name[i+1] == 'p' && i+2 < len(name) && isDigit(name[i+2]) {
			return name[:i]
		}
	}
	// No drive marker; strip any library suffix after an underscore.
	if i := strings.IndexByte(name, '_'); i > 0 {
		return name[:i]
	}
	return name
}

// digitAfter returns the run of digits starting at i, or "".
func digitAfter(s string, i int) string {
	j := i
	for j < len(s) && isDigit(s[j]) {
		j++
	}
	return s[i:j]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// functionArity counts the distinct inputs of a function expression,
// 0 when absent or unparsable.
func functionArity(function string) int {
	if function == "" {
		return 0
	}
	expr, err := boolexpr.Parse(function)
	if err != nil {
		return 0
	}
	return len(expr.Inputs())
}
