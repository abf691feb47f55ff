package boolexpr

import (
	"sort"
	"strings"
)

// Expr is a parsed pin-function expression. Operator precedence follows the
// Liberty convention: OR binds loosest, then XOR, then AND; conjunction may
// be written without an operator ("A B" means "A & B").
type Expr struct {
	Terms []*XorTerm `parser:"@@ ( Or @@ )*"`
}

// XorTerm is one OR operand.
type XorTerm struct {
	Terms []*AndTerm `parser:"@@ ( Xor @@ )*"`
}

// AndTerm is one XOR operand. The AND operator between factors is optional.
type AndTerm struct {
	Factors []*Factor `parser:"@@ ( And? @@ )*"`
}

// Factor is a possibly negated operand; negation may be prefix (!A) or
// postfix (A').
type Factor struct {
	Negs   []string `parser:"@Not*"`
	Base   *Base    `parser:"@@"`
	Primes []string `parser:"@Prime*"`
}

// Base is an identifier, a 0/1 constant, or a parenthesized sub-expression.
type Base struct {
	Var   *string `parser:"  @Ident"`
	Const *string `parser:"| @Const"`
	Sub   *Expr   `parser:"| LParen @@ RParen"`
}

// Inputs returns the distinct input pin names referenced by the expression,
// sorted.
func (e *Expr) Inputs() []string {
	seen := make(map[string]bool)
	e.collect(seen)
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (e *Expr) collect(seen map[string]bool) {
	for _, x := range e.Terms {
		for _, a := range x.Terms {
			for _, f := range a.Factors {
				switch {
				case f.Base.Var != nil:
					seen[*f.Base.Var] = true
				case f.Base.Sub != nil:
					f.Base.Sub.collect(seen)
				}
			}
		}
	}
}

// Kind categorizes the expression by its dominant gate function.
type Kind string

const (
	KindBuffer   Kind = "buffer"
	KindInverter Kind = "inverter"
	KindAnd      Kind = "and_gate"
	KindNand     Kind = "nand_gate"
	KindOr       Kind = "or_gate"
	KindNor      Kind = "nor_gate"
	KindXor      Kind = "xor_gate"
	KindXnor     Kind = "xnor_gate"
	KindConstant Kind = "constant"
	KindComplex  Kind = "combinational"
)

// Kind categorizes the expression by its top-level operator, folding an odd
// number of negations into the inverted gate kind ("!(A|B)" is a NOR).
func (e *Expr) Kind() Kind {
	if len(e.Terms) > 1 {
		return KindOr
	}
	return e.Terms[0].kind()
}

func (x *XorTerm) kind() Kind {
	if len(x.Terms) > 1 {
		return KindXor
	}
	return x.Terms[0].kind()
}

func (a *AndTerm) kind() Kind {
	if len(a.Factors) > 1 {
		return KindAnd
	}
	return a.Factors[0].kind()
}

func (f *Factor) kind() Kind {
	var k Kind
	switch {
	case f.Base.Var != nil:
		k = KindBuffer
	case f.Base.Const != nil:
		k = KindConstant
	default:
		k = f.Base.Sub.Kind()
	}
	if (len(f.Negs)+len(f.Primes))%2 == 1 {
		k = negated(k)
	}
	return k
}

func negated(k Kind) Kind {
	switch k {
	case KindBuffer:
		return KindInverter
	case KindInverter:
		return KindBuffer
	case KindAnd:
		return KindNand
	case KindNand:
		return KindAnd
	case KindOr:
		return KindNor
	case KindNor:
		return KindOr
	case KindXor:
		return KindXnor
	case KindXnor:
		return KindXor
	}
	return k
}

// String renders the expression in canonical form with explicit operators.
func (e *Expr) String() string {
	parts := make([]string, len(e.Terms))
	for i, x := range e.Terms {
		parts[i] = x.String()
	}
	return strings.Join(parts, " | ")
}

func (x *XorTerm) String() string {
	parts := make([]string, len(x.Terms))
	for i, a := range x.Terms {
		parts[i] = a.String()
	}
	return strings.Join(parts, " ^ ")
}

func (a *AndTerm) String() string {
	parts := make([]string, len(a.Factors))
	for i, f := range a.Factors {
		parts[i] = f.String()
	}
	return strings.Join(parts, " & ")
}

func (f *Factor) String() string {
	var b strings.Builder
	for range f.Negs {
		b.WriteByte('!')
	}
	switch {
	case f.Base.Var != nil:
		b.WriteString(*f.Base.Var)
	case f.Base.Const != nil:
		b.WriteString(*f.Base.Const)
	default:
		b.WriteByte('(')
		b.WriteString(f.Base.Sub.String())
		b.WriteByte(')')
	}
	for range f.Primes {
		b.WriteByte('\'')
	}
	return b.String()
}
