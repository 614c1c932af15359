package solver

import (
	"math/big"

	"github.com/go-polysat/polysat/pkg/polysat/constraint"
	"github.com/go-polysat/polysat/pkg/polysat/poly"
)

// pushOmega appends premises entailing that x*y does not overflow the
// ring bound. When even the worst-case feasible values cannot
// overflow, the existing bound justifications are reused; otherwise a
// bisection derives fresh concrete bounds from the current model.
func (s *Saturator) pushOmega(dst []constraint.Constraint, x, y poly.Poly) []constraint.Constraint {
	bound := s.man.Bound()
	maxVal := new(big.Int).Sub(bound, big.NewInt(1))
	xMax, yMax := maxVal, maxVal
	if x.IsVar() {
		xMax = s.viable.MaxViable(x.VarID())
	}
	if y.IsVar() {
		yMax = s.viable.MaxViable(y.VarID())
	}

	if new(big.Int).Mul(xMax, yMax).Cmp(bound) >= 0 {
		return s.pushOmegaBisect(dst, x, xMax, y, yMax)
	}
	if y.IsVar() {
		dst = append(dst, s.viable.Justifications(y.VarID())...)
	}
	if x.IsVar() {
		dst = append(dst, s.viable.Justifications(x.VarID())...)
	}
	return dst
}

// pushOmegaBisect appends the premises x <= xLo and y <= yLo for a
// maximal corner (xLo, yLo) of the region {(a,b): a*b < bound}
// reachable from the current values of x and y without decreasing
// them. Both terms must be fully assigned and their product must be
// below the bound.
func (s *Saturator) pushOmegaBisect(dst []constraint.Constraint, x poly.Poly, xMax *big.Int, y poly.Poly, yMax *big.Int) []constraint.Constraint {
	bound := s.man.Bound()
	xVal, ok := s.trail.Eval(x)
	invariant(ok, "bisection on unassigned term %s", x)
	yVal, ok := s.trail.Eval(y)
	invariant(ok, "bisection on unassigned term %s", y)
	invariant(mulLess(xVal, yVal, bound), "bisection start %s*%s overflows", xVal, yVal)

	xLo, xHi := new(big.Int).Set(xVal), new(big.Int).Set(xMax)
	yLo, yHi := new(big.Int).Set(yVal), new(big.Int).Set(yMax)

	// Joint bisection: both brackets shrink in tandem until each
	// collapses to a single point with xLo*yLo below the bound.
	for xLo.Cmp(xHi) < 0 || yLo.Cmp(yHi) < 0 {
		xMid := ceilMid(xLo, xHi)
		yMid := ceilMid(yLo, yHi)
		if !mulLess(xMid, yMid, bound) {
			if xLo.Cmp(xHi) < 0 {
				xHi.Sub(xMid, bigIntOne)
			}
			if yLo.Cmp(yHi) < 0 {
				yHi.Sub(yMid, bigIntOne)
			}
		} else {
			xLo.Set(xMid)
			yLo.Set(yMid)
		}
	}
	invariant(mulLess(xLo, yLo, bound), "bisection lost the feasible corner")

	// Unilateral extension: push one coordinate further toward its
	// maximum while the product stays under the bound.
	if mulLess(plusOne(xLo), yLo, bound) {
		xHi.Set(xMax)
		for xLo.Cmp(xHi) < 0 {
			xMid := ceilMid(xLo, xHi)
			if !mulLess(xMid, yLo, bound) {
				xHi.Sub(xMid, bigIntOne)
			} else {
				xLo.Set(xMid)
			}
		}
	} else if mulLess(xLo, plusOne(yLo), bound) {
		yHi.Set(yMax)
		for yLo.Cmp(yHi) < 0 {
			yMid := ceilMid(yLo, yHi)
			if !mulLess(xLo, yMid, bound) {
				yHi.Sub(yMid, bigIntOne)
			} else {
				yLo.Set(yMid)
			}
		}
	}

	invariant(xVal.Cmp(xLo) <= 0 && xLo.Cmp(xMax) <= 0, "x corner %s outside [%s, %s]", xLo, xVal, xMax)
	invariant(yVal.Cmp(yLo) <= 0 && yLo.Cmp(yMax) <= 0, "y corner %s outside [%s, %s]", yLo, yVal, yMax)
	invariant(mulLess(xLo, yLo, bound), "corner %s*%s overflows", xLo, yLo)
	invariant(!mulLess(plusOne(xLo), yLo, bound) || xLo.Cmp(xMax) == 0, "x corner %s not maximal", xLo)
	invariant(!mulLess(xLo, plusOne(yLo), bound) || yLo.Cmp(yMax) == 0, "y corner %s not maximal", yLo)

	// The corner is justified by the current assignment; conflict
	// resolution picks these up as premises of the lemma.
	dst = append(dst, constraint.Ule(x, s.man.Val(xLo)))
	dst = append(dst, constraint.Ule(y, s.man.Val(yLo)))
	return dst
}

// OmegaPremises returns premises entailing that x*y stays below the
// ring bound under the current assignment, starting from an empty
// premise list.
func (s *Saturator) OmegaPremises(x, y poly.Poly) []constraint.Constraint {
	return s.pushOmega(nil, x, y)
}

var bigIntOne = big.NewInt(1)

// ceilMid returns the upper integer midpoint of [lo, hi], so that
// raising lo to the midpoint always makes progress.
func ceilMid(lo, hi *big.Int) *big.Int {
	mid := new(big.Int).Add(lo, hi)
	mid.Add(mid, bigIntOne)
	return mid.Rsh(mid, 1)
}

func plusOne(a *big.Int) *big.Int {
	return new(big.Int).Add(a, bigIntOne)
}

func mulLess(a, b, bound *big.Int) bool {
	return new(big.Int).Mul(a, b).Cmp(bound) < 0
}
