package solver

import (
	"github.com/go-polysat/polysat/pkg/polysat"
	"github.com/go-polysat/polysat/pkg/polysat/constraint"
	"github.com/go-polysat/polysat/pkg/polysat/poly"
)

// ineq builds the candidate lemma constraint.
func ineq(strict bool, lhs, rhs poly.Poly) constraint.Constraint {
	if strict {
		return constraint.Ult(lhs, rhs)
	}
	return constraint.Ule(lhs, rhs)
}

// propagate injects the candidate lemma c into the core together with
// the derived side conditions, provided the step stays
// conflict-directed: at least one critical premise must be false
// under the model, and c itself must contradict either the boolean
// trail or the model. Otherwise the core is left untouched.
func (s *Saturator) propagate(rule string, v polysat.Var, core *Core, crit1, crit2 constraint.Inequality, c constraint.Constraint, side []constraint.Constraint) bool {
	crit1False := crit1.Src.IsCurrentlyFalse(s.trail)
	crit2False := crit2.Src.IsCurrentlyFalse(s.trail)
	if !crit1False && !crit2False {
		return false
	}
	isBoolFalse := s.trail.BoolValue(c) == polysat.False
	isModelFalse := c.IsCurrentlyFalse(s.trail)
	if !isBoolFalse && !isModelFalse {
		return false
	}

	// Pin the critical premises before any mutation; mutation
	// rehashes the dependency bookkeeping.
	edit := core.Edit(crit1.Src, crit2.Src)
	derived := c
	if isBoolFalse {
		derived = c.Not()
		edit.Insert(derived)
	} else {
		edit.Set(c)
	}
	for _, d := range side {
		edit.Insert(d)
	}

	s.tracer.Trace(InferenceStep{
		Rule:     rule,
		Var:      v,
		Premises: []constraint.Constraint{crit1.Src, crit2.Src},
		Derived:  derived,
		Side:     side,
	})
	return true
}
