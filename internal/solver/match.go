package solver

import (
	"math/big"

	"github.com/go-polysat/polysat/pkg/polysat"
	"github.com/go-polysat/polysat/pkg/polysat/constraint"
	"github.com/go-polysat/polysat/pkg/polysat/poly"
)

// shapeKind classifies a polynomial relative to a distinguished
// variable x.
type shapeKind int

const (
	shapeConst  shapeKind = iota // a ring constant
	shapeVar                     // the bare variable x
	shapeLinear                  // x * rest, rest free of x
	shapeOther                   // anything else
)

// shape is the decomposition of a polynomial relative to x, carrying
// the explicit factoring result for the linear case.
type shape struct {
	kind shapeKind
	val  *big.Int  // shapeConst
	rest poly.Poly // shapeVar (the constant one) and shapeLinear
}

// decompose classifies p relative to x. A bare x decomposes as
// shapeVar with rest one, so shapeVar and shapeLinear both witness
// p = x * rest.
func decompose(x polysat.Var, p poly.Poly) shape {
	if p.IsVal() {
		return shape{kind: shapeConst, val: p.Val()}
	}
	if p.IsVar() && p.VarID() == x {
		return shape{kind: shapeVar, rest: p.Manager().One()}
	}
	if p.Degree(x) == 1 {
		if rest, ok := p.Factor(x, 1); ok && rest.Degree(x) == 0 {
			return shape{kind: shapeLinear, rest: rest}
		}
	}
	return shape{kind: shapeOther}
}

// isLV matches [v] ... <= v.
func isLV(v polysat.Var, c constraint.Inequality) bool {
	return c.Rhs.IsVar() && c.Rhs.VarID() == v
}

// isGV matches [v] v <= ...
func isGV(v polysat.Var, c constraint.Inequality) bool {
	return c.Lhs.IsVar() && c.Lhs.VarID() == v
}

// isXY matches p = x * y, reporting y.
func isXY(x polysat.Var, p poly.Poly) (poly.Poly, bool) {
	switch s := decompose(x, p); s.kind {
	case shapeVar, shapeLinear:
		return s.rest, true
	default:
		return poly.Poly{}, false
	}
}

// isCoeffXY matches p = coeff*x * y for a unary term coeff*x: the
// coefficient must divide p exactly and the quotient must factor as
// x * y. General polynomial divisors are unsupported; only a single
// variable scaled by a constant is accepted.
func isCoeffXY(cx poly.Poly, p poly.Poly) (poly.Poly, bool) {
	if !cx.IsUnary() {
		return poly.Poly{}, false
	}
	quo, ok := p.TryDivConst(cx.UnaryCoeff())
	if !ok {
		return poly.Poly{}, false
	}
	return isXY(cx.UnaryVar(), quo)
}

// isXlY matches [x] x <= y, reporting y.
func isXlY(x polysat.Var, c constraint.Inequality) (poly.Poly, bool) {
	if !isGV(x, c) {
		return poly.Poly{}, false
	}
	return c.Rhs, true
}

// isYlAx matches [x] y <= a*x, reporting a and y.
func isYlAx(x polysat.Var, c constraint.Inequality) (a, y poly.Poly, ok bool) {
	a, ok = isXY(x, c.Rhs)
	return a, c.Lhs, ok
}

func verifyYlAx(x polysat.Var, c constraint.Inequality, a, y poly.Poly) bool {
	m := a.Manager()
	return c.Lhs.Equal(y) && c.Rhs.Equal(a.Mul(m.Var(x)))
}

// isXYlXZ matches [x] x*y <= x*z, reporting y and z.
func isXYlXZ(x polysat.Var, c constraint.Inequality) (y, z poly.Poly, ok bool) {
	y, ok = isXY(x, c.Lhs)
	if !ok {
		return poly.Poly{}, poly.Poly{}, false
	}
	z, ok = isXY(x, c.Rhs)
	if !ok {
		return poly.Poly{}, poly.Poly{}, false
	}
	return y, z, true
}

// isXylXZ matches [v] v*x <= z*x with x a variable term, reporting x
// and z.
func isXylXZ(v polysat.Var, c constraint.Inequality) (x, z poly.Poly, ok bool) {
	x, ok = isXY(v, c.Lhs)
	if !ok {
		return poly.Poly{}, poly.Poly{}, false
	}
	z, ok = isCoeffXY(x, c.Rhs)
	if !ok {
		return poly.Poly{}, poly.Poly{}, false
	}
	return x, z, true
}

func verifyXylXZ(v polysat.Var, c constraint.Inequality, x, z poly.Poly) bool {
	m := x.Manager()
	return c.Lhs.Equal(m.Var(v).Mul(x)) && c.Rhs.Equal(z.Mul(x))
}

// isYXlZX matches [z] y*x <= z*x with x a variable term, reporting x
// and y.
func isYXlZX(z polysat.Var, c constraint.Inequality) (x, y poly.Poly, ok bool) {
	x, ok = isXY(z, c.Rhs)
	if !ok {
		return poly.Poly{}, poly.Poly{}, false
	}
	y, ok = isCoeffXY(x, c.Lhs)
	if !ok {
		return poly.Poly{}, poly.Poly{}, false
	}
	return x, y, true
}

func verifyYXlZX(z polysat.Var, c constraint.Inequality, x, y poly.Poly) bool {
	m := x.Manager()
	return c.Lhs.Equal(y.Mul(x)) && c.Rhs.Equal(m.Var(z).Mul(x))
}

// isNonOverflow reports whether the current values of x and y
// multiply below the ring bound. Unassigned terms make this false.
func (s *Saturator) isNonOverflow(x, y poly.Poly) bool {
	xVal, ok := s.trail.Eval(x)
	if !ok {
		return false
	}
	yVal, ok := s.trail.Eval(y)
	if !ok {
		return false
	}
	return new(big.Int).Mul(xVal, yVal).Cmp(s.man.Bound()) < 0
}
