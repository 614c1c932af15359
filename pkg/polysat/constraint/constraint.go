// Package constraint defines the signed atomic constraints exchanged
// between the decision trail, the conflict core and the saturation
// rules.
package constraint

import (
	"fmt"
	"sort"

	"github.com/go-polysat/polysat/pkg/polysat"
	"github.com/go-polysat/polysat/pkg/polysat/poly"
)

// Kind discriminates the constraint families understood by the
// solver.
type Kind int

const (
	// KindUle is an unsigned "less or equal" between two polynomials.
	KindUle Kind = iota
	// KindEq asserts that a polynomial is zero.
	KindEq
)

// Constraint is an atomic constraint paired with an asserted
// polarity. The zero value is not a valid constraint.
type Constraint struct {
	kind     Kind
	lhs, rhs poly.Poly
	positive bool
}

// Ule returns the constraint lhs <= rhs over the unsigned ring order.
func Ule(lhs, rhs poly.Poly) Constraint {
	return Constraint{kind: KindUle, lhs: lhs, rhs: rhs, positive: true}
}

// Ult returns the constraint lhs < rhs, encoded as the negation of
// rhs <= lhs.
func Ult(lhs, rhs poly.Poly) Constraint {
	return Ule(rhs, lhs).Not()
}

// Eq returns the constraint p == 0.
func Eq(p poly.Poly) Constraint {
	return Constraint{kind: KindEq, lhs: p, rhs: p.Manager().Zero(), positive: true}
}

// Not returns the constraint with the opposite polarity.
func (c Constraint) Not() Constraint {
	c.positive = !c.positive
	return c
}

// Kind returns the constraint family of c.
func (c Constraint) Kind() Kind { return c.kind }

// Positive reports the asserted polarity.
func (c Constraint) Positive() bool { return c.positive }

// IsUle reports whether c is an inequality of either polarity.
func (c Constraint) IsUle() bool { return c.kind == KindUle }

// Inequality is the normalized inequality view of a signed ule
// constraint: Lhs < Rhs when Strict, Lhs <= Rhs otherwise. Src is the
// signed constraint the view was taken from.
type Inequality struct {
	Lhs, Rhs poly.Poly
	Strict   bool
	Src      Constraint
}

// AsInequality returns the inequality view of a ule constraint. A
// negated lhs <= rhs reads as the strict rhs < lhs.
func (c Constraint) AsInequality() Inequality {
	if c.kind != KindUle {
		panic("constraint: AsInequality on non-ule constraint")
	}
	if c.positive {
		return Inequality{Lhs: c.lhs, Rhs: c.rhs, Src: c}
	}
	return Inequality{Lhs: c.rhs, Rhs: c.lhs, Strict: true, Src: c}
}

// Eval evaluates c under the given model. The result is Undef if any
// referenced variable is unassigned.
func (c Constraint) Eval(model polysat.Model) polysat.Lbool {
	lval, ok := c.lhs.Eval(model)
	if !ok {
		return polysat.Undef
	}
	rval, ok := c.rhs.Eval(model)
	if !ok {
		return polysat.Undef
	}
	var holds bool
	switch c.kind {
	case KindUle:
		holds = lval.Cmp(rval) <= 0
	case KindEq:
		holds = lval.Sign() == 0
	default:
		panic(fmt.Sprintf("constraint: unknown kind %d", c.kind))
	}
	if holds == c.positive {
		return polysat.True
	}
	return polysat.False
}

// IsCurrentlyFalse reports whether c evaluates to false under the
// current partial model. Unassigned terms make this false, not an
// error.
func (c Constraint) IsCurrentlyFalse(model polysat.Model) bool {
	return c.Eval(model) == polysat.False
}

// Vars returns the distinct variables referenced by c, in ascending
// order.
func (c Constraint) Vars() []polysat.Var {
	lv := c.lhs.Vars()
	rv := c.rhs.Vars()
	seen := make(map[polysat.Var]struct{}, len(lv)+len(rv))
	out := make([]polysat.Var, 0, len(lv)+len(rv))
	for _, v := range lv {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	for _, v := range rv {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Equal reports structural equality including polarity.
func (c Constraint) Equal(d Constraint) bool {
	return c.kind == d.kind && c.positive == d.positive && c.lhs.Equal(d.lhs) && c.rhs.Equal(d.rhs)
}

// String renders c canonically. Two constraints are structurally
// equal exactly when their strings coincide, which the boolean layer
// relies on for literal interning.
func (c Constraint) String() string {
	var body string
	switch c.kind {
	case KindUle:
		body = fmt.Sprintf("%s <= %s", c.lhs, c.rhs)
	case KindEq:
		body = fmt.Sprintf("%s == 0", c.lhs)
	default:
		body = fmt.Sprintf("kind<%d>", c.kind)
	}
	if !c.positive {
		return "~(" + body + ")"
	}
	return body
}
