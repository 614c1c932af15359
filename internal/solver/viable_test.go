package solver

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-polysat/polysat/pkg/polysat/constraint"
	"github.com/go-polysat/polysat/pkg/polysat/poly"
)

func TestViableDefaultsToRingMax(t *testing.T) {
	man := poly.NewManager(4)
	s := NewViableStore(man)
	assert.Equal(t, int64(15), s.MaxViable(v1).Int64())
	assert.Empty(t, s.Justifications(v1))
}

func TestViableRestrictMaxOnlyTightens(t *testing.T) {
	man := poly.NewManager(4)
	s := NewViableStore(man)
	because := constraint.Ule(man.Var(v1), man.Uint64Val(6))

	s.RestrictMax(v1, big.NewInt(6), because)
	assert.Equal(t, int64(6), s.MaxViable(v1).Int64())
	assert.Equal(t, []constraint.Constraint{because}, s.Justifications(v1))

	// a looser bound must not widen the store
	s.RestrictMax(v1, big.NewInt(9), constraint.Ule(man.Var(v1), man.Uint64Val(9)))
	assert.Equal(t, int64(6), s.MaxViable(v1).Int64())
	assert.Equal(t, []constraint.Constraint{because}, s.Justifications(v1))

	tight := constraint.Ule(man.Var(v1), man.Uint64Val(2))
	s.RestrictMax(v1, big.NewInt(2), tight)
	assert.Equal(t, int64(2), s.MaxViable(v1).Int64())
	assert.Equal(t, []constraint.Constraint{tight}, s.Justifications(v1))
}
