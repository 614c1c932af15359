package solver

import (
	"math/big"

	"github.com/go-polysat/polysat/pkg/polysat"
	"github.com/go-polysat/polysat/pkg/polysat/constraint"
	"github.com/go-polysat/polysat/pkg/polysat/poly"
)

// ViableStore tracks, per variable, the largest value still feasible
// under the bounds asserted so far, together with the constraints
// justifying that bound.
type ViableStore struct {
	man  *poly.Manager
	max  map[polysat.Var]*big.Int
	just map[polysat.Var][]constraint.Constraint
}

// NewViableStore returns a store where every variable ranges over the
// full ring.
func NewViableStore(man *poly.Manager) *ViableStore {
	return &ViableStore{
		man:  man,
		max:  make(map[polysat.Var]*big.Int),
		just: make(map[polysat.Var][]constraint.Constraint),
	}
}

// MaxViable implements polysat.ViableSet. Unrestricted variables
// report 2^w - 1.
func (s *ViableStore) MaxViable(v polysat.Var) *big.Int {
	if m, ok := s.max[v]; ok {
		return new(big.Int).Set(m)
	}
	return new(big.Int).Sub(s.man.Bound(), big.NewInt(1))
}

// RestrictMax tightens the upper bound of v to max, recording the
// constraints that justify it. Looser bounds are ignored.
func (s *ViableStore) RestrictMax(v polysat.Var, max *big.Int, because ...constraint.Constraint) {
	if cur, ok := s.max[v]; ok && cur.Cmp(max) <= 0 {
		return
	}
	s.max[v] = new(big.Int).Set(max)
	s.just[v] = append([]constraint.Constraint(nil), because...)
}

// Justifications returns the constraints justifying the current upper
// bound of v.
func (s *ViableStore) Justifications(v polysat.Var) []constraint.Constraint {
	return append([]constraint.Constraint(nil), s.just[v]...)
}

var _ polysat.ViableSet = (*ViableStore)(nil)
