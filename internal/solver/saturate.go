// Package solver implements conflict saturation for nonlinear
// bit-vector inequalities: given a variable at the heart of the
// current conflict, it recognizes multiplicative inequality patterns
// in the conflict core and injects a new lemma guarded by explicit
// non-overflow side conditions.
package solver

import (
	"errors"

	"github.com/go-polysat/polysat/pkg/polysat"
	"github.com/go-polysat/polysat/pkg/polysat/constraint"
	"github.com/go-polysat/polysat/pkg/polysat/poly"
)

// Saturator derives multiplicative monotonicity lemmas from a
// conflict core. It borrows the trail and viable store of the
// enclosing session and holds no per-conflict state of its own.
type Saturator struct {
	man    *poly.Manager
	trail  *Trail
	viable *ViableStore
	tracer Tracer
}

func NewSaturator(options ...Option) (*Saturator, error) {
	s := Saturator{}
	for _, option := range append(options, defaults...) {
		if err := option(&s); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

type Option func(s *Saturator) error

func WithTrail(t *Trail) Option {
	return func(s *Saturator) error {
		s.trail = t
		return nil
	}
}

func WithViable(v *ViableStore) Option {
	return func(s *Saturator) error {
		s.viable = v
		return nil
	}
}

func WithTracer(t Tracer) Option {
	return func(s *Saturator) error {
		s.tracer = t
		return nil
	}
}

var defaults = []Option{
	func(s *Saturator) error {
		if s.trail == nil {
			return errors.New("a trail is required")
		}
		s.man = s.trail.Manager()
		return nil
	},
	func(s *Saturator) error {
		if s.viable == nil {
			s.viable = NewViableStore(s.trail.Manager())
		}
		return nil
	},
	func(s *Saturator) error {
		if s.tracer == nil {
			s.tracer = DefaultTracer{}
		}
		return nil
	},
}

// Perform tries each saturation rule on every inequality literal of
// the core, in a fixed priority order, and stops at the first rule
// that injects a new literal. It returns false when no rule applies;
// the core is then unchanged. A single call yields at most one lemma;
// callers loop externally if more are desired.
func (s *Saturator) Perform(v polysat.Var, core *Core) bool {
	for i, cc := range core.Constraints() {
		if !cc.IsUle() {
			continue
		}
		c := cc.AsInequality()
		core.focusOn(i)
		if s.tryUgtX(v, core, c) {
			return true
		}
		if s.tryUgtY(v, core, c) {
			return true
		}
		if s.tryUgtZ(v, core, c) {
			return true
		}
		if s.tryYlAxAndXlZ(v, core, c) {
			return true
		}
	}
	core.focusOn(-1)
	return false
}

// tryUgtX implements
//
//	[x] z*x > y*x  ==>  Ω*(x,y) \/ z > y
//	[x] y*x <= z*x  ==>  Ω*(x,y) \/ y <= z \/ x = 0
func (s *Saturator) tryUgtX(v polysat.Var, core *Core, c constraint.Inequality) bool {
	x := s.man.Var(v)
	y, z, ok := isXYlXZ(v, c)
	if !ok {
		return false
	}
	if !s.isNonOverflow(x, y) {
		return false
	}
	if !c.Strict {
		val, assigned := s.trail.Value(v)
		if !assigned || val.Sign() == 0 {
			return false
		}
	}

	var side []constraint.Constraint
	if !c.Strict {
		side = append(side, constraint.Eq(x).Not())
	}
	side = s.pushOmega(side, x, y)
	return s.propagate("ugt_x", v, core, c, c, ineq(c.Strict, y, z), side)
}

// tryUgtY implements
//
//	[y] z' <= y /\ z*x > y*x  ==>  Ω*(x,y) \/ z*x > z'*x
//	[y] z' <= y /\ y*x <= z*x  ==>  Ω*(x,y) \/ z'*x <= z*x
//
// The companion literal y*x <= z*x is found by linear scan over the
// core; the first structural match wins.
func (s *Saturator) tryUgtY(v polysat.Var, core *Core, c constraint.Inequality) bool {
	if !isLV(v, c) {
		return false
	}
	for _, dd := range core.Constraints() {
		if !dd.IsUle() {
			continue
		}
		d := dd.AsInequality()
		if x, z, ok := isXylXZ(v, d); ok && s.applyUgtY(v, core, c, d, x, z) {
			return true
		}
	}
	return false
}

func (s *Saturator) applyUgtY(v polysat.Var, core *Core, leY, yxLzx constraint.Inequality, x, z poly.Poly) bool {
	y := s.man.Var(v)
	invariant(isLV(v, leY), "ugt_y premise lost its shape")
	invariant(verifyXylXZ(v, yxLzx, x, z), "ugt_y companion lost its shape")
	if !s.isNonOverflow(x, y) {
		return false
	}

	zPrime := leY.Lhs

	side := []constraint.Constraint{leY.Src, yxLzx.Src}
	side = s.pushOmega(side, x, y)
	// z'x <= zx
	return s.propagate("ugt_y", v, core, leY, yxLzx, ineq(yxLzx.Strict || leY.Strict, zPrime.Mul(x), z.Mul(x)), side)
}

// tryUgtZ implements
//
//	[z] z <= y' /\ z*x > y*x  ==>  Ω*(x,y') \/ y'*x > y*x
//	[z] z <= y' /\ y*x <= z*x  ==>  Ω*(x,y') \/ y*x <= y'*x
func (s *Saturator) tryUgtZ(v polysat.Var, core *Core, c constraint.Inequality) bool {
	if !isGV(v, c) {
		return false
	}
	for _, dd := range core.Constraints() {
		if !dd.IsUle() {
			continue
		}
		d := dd.AsInequality()
		if x, y, ok := isYXlZX(v, d); ok && s.applyUgtZ(v, core, c, d, x, y) {
			return true
		}
	}
	return false
}

func (s *Saturator) applyUgtZ(v polysat.Var, core *Core, zLy, yxLzx constraint.Inequality, x, y poly.Poly) bool {
	invariant(isGV(v, zLy), "ugt_z premise lost its shape")
	invariant(verifyYXlZX(v, yxLzx, x, y), "ugt_z companion lost its shape")
	yPrime := zLy.Rhs
	if !s.isNonOverflow(x, yPrime) {
		return false
	}
	side := []constraint.Constraint{zLy.Src, yxLzx.Src}
	side = s.pushOmega(side, x, yPrime)
	// yx <= y'x
	return s.propagate("ugt_z", v, core, zLy, yxLzx, ineq(zLy.Strict || yxLzx.Strict, y.Mul(x), yPrime.Mul(x)), side)
}

// tryYlAxAndXlZ implements
//
//	[x] y <= a*x /\ x <= z  ==>  Ω*(a,z) \/ y <= a*z
func (s *Saturator) tryYlAxAndXlZ(v polysat.Var, core *Core, c constraint.Inequality) bool {
	if !isGV(v, c) {
		return false
	}
	for _, dd := range core.Constraints() {
		if !dd.IsUle() {
			continue
		}
		d := dd.AsInequality()
		if a, y, ok := isYlAx(v, d); ok && s.applyYlAxAndXlZ(v, core, c, d, a, y) {
			return true
		}
	}
	return false
}

func (s *Saturator) applyYlAxAndXlZ(v polysat.Var, core *Core, xLz, yLax constraint.Inequality, a, y poly.Poly) bool {
	z, ok := isXlY(v, xLz)
	invariant(ok, "y_l_ax premise lost its shape")
	invariant(verifyYlAx(v, yLax, a, y), "y_l_ax companion lost its shape")
	if !s.isNonOverflow(a, z) {
		return false
	}
	side := []constraint.Constraint{xLz.Src, yLax.Src}
	side = s.pushOmega(side, a, z)
	return s.propagate("y_l_ax_and_x_l_z", v, core, xLz, yLax, ineq(xLz.Strict || yLax.Strict, y, a.Mul(z)), side)
}
