package constraint_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-polysat/polysat/pkg/polysat"
	"github.com/go-polysat/polysat/pkg/polysat/constraint"
	"github.com/go-polysat/polysat/pkg/polysat/poly"
)

type model map[polysat.Var]uint64

func (m model) Value(v polysat.Var) (*big.Int, bool) {
	val, ok := m[v]
	if !ok {
		return nil, false
	}
	return new(big.Int).SetUint64(val), true
}

const v1 = polysat.Var(1)

func TestAsInequality(t *testing.T) {
	m := poly.NewManager(4)
	a, b := m.Var(v1), m.Uint64Val(5)

	le := constraint.Ule(a, b).AsInequality()
	assert.True(t, le.Lhs.Equal(a))
	assert.True(t, le.Rhs.Equal(b))
	assert.False(t, le.Strict)

	// a < b is carried as the negation of b <= a
	lt := constraint.Ult(a, b)
	assert.False(t, lt.Positive())
	ineq := lt.AsInequality()
	assert.True(t, ineq.Lhs.Equal(a))
	assert.True(t, ineq.Rhs.Equal(b))
	assert.True(t, ineq.Strict)
	assert.True(t, ineq.Src.Equal(lt))
}

func TestEval(t *testing.T) {
	m := poly.NewManager(4)
	x := m.Var(v1)

	type tc struct {
		Name     string
		C        constraint.Constraint
		Model    model
		Expected polysat.Lbool
	}

	for _, tt := range []tc{
		{
			Name:     "ule holds",
			C:        constraint.Ule(x, m.Uint64Val(5)),
			Model:    model{v1: 3},
			Expected: polysat.True,
		},
		{
			Name:     "ule fails",
			C:        constraint.Ule(x, m.Uint64Val(5)),
			Model:    model{v1: 9},
			Expected: polysat.False,
		},
		{
			Name:     "ult strict at the boundary",
			C:        constraint.Ult(x, m.Uint64Val(3)),
			Model:    model{v1: 3},
			Expected: polysat.False,
		},
		{
			Name:     "eq zero",
			C:        constraint.Eq(x),
			Model:    model{v1: 0},
			Expected: polysat.True,
		},
		{
			Name:     "negated eq",
			C:        constraint.Eq(x).Not(),
			Model:    model{v1: 0},
			Expected: polysat.False,
		},
		{
			Name:     "unassigned is undetermined",
			C:        constraint.Ule(x, m.Uint64Val(5)),
			Model:    model{},
			Expected: polysat.Undef,
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			assert.Equal(t, tt.Expected, tt.C.Eval(tt.Model))
		})
	}
}

func TestIsCurrentlyFalse(t *testing.T) {
	m := poly.NewManager(4)
	x := m.Var(v1)
	c := constraint.Ule(x, m.Uint64Val(2))

	assert.True(t, c.IsCurrentlyFalse(model{v1: 7}))
	assert.False(t, c.IsCurrentlyFalse(model{v1: 1}))
	// undetermined is not false
	assert.False(t, c.IsCurrentlyFalse(model{}))
}

func TestStringInterning(t *testing.T) {
	m := poly.NewManager(4)
	x := m.Var(v1)

	a := constraint.Ule(x, m.Uint64Val(5))
	b := constraint.Ule(x.MulConst(big.NewInt(17)), m.Uint64Val(21))
	require.True(t, a.Equal(b))
	assert.Equal(t, a.String(), b.String())
	assert.NotEqual(t, a.String(), a.Not().String())
}
