package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-polysat/polysat/pkg/polysat"
	"github.com/go-polysat/polysat/pkg/polysat/constraint"
	"github.com/go-polysat/polysat/pkg/polysat/poly"
)

const (
	v1 = polysat.Var(1)
	v2 = polysat.Var(2)
	v3 = polysat.Var(3)
)

func TestTrailAssignments(t *testing.T) {
	man := poly.NewManager(4)
	trail := NewTrail(man)

	_, ok := trail.Value(v1)
	assert.False(t, ok)

	trail.AssignUint64(v1, 19)
	val, ok := trail.Value(v1)
	require.True(t, ok)
	// values reduce into the ring
	assert.Equal(t, int64(3), val.Int64())

	got, ok := trail.Eval(man.Var(v1).MulConst(bigIntOne).Add(man.Uint64Val(2)))
	require.True(t, ok)
	assert.Equal(t, int64(5), got.Int64())

	_, ok = trail.Eval(man.Var(v2))
	assert.False(t, ok)
}

func TestTrailBoolLayer(t *testing.T) {
	man := poly.NewManager(4)
	trail := NewTrail(man)
	c := constraint.Ule(man.Var(v1), man.Uint64Val(5))

	assert.Equal(t, polysat.Undef, trail.BoolValue(c))

	require.NoError(t, trail.Assert(c))
	assert.Equal(t, polysat.True, trail.BoolValue(c))
	assert.Equal(t, polysat.False, trail.BoolValue(c.Not()))
}

func TestTrailBoolConflict(t *testing.T) {
	man := poly.NewManager(4)
	trail := NewTrail(man)
	c := constraint.Ule(man.Var(v1), man.Uint64Val(5))

	require.NoError(t, trail.Assert(c))
	err := trail.Assert(c.Not())
	require.Error(t, err)
	assert.ErrorContains(t, err, "conflicts with boolean trail")

	// the failed assertion leaves the layer unchanged
	assert.Equal(t, polysat.True, trail.BoolValue(c))
}

func TestTrailClausePropagation(t *testing.T) {
	man := poly.NewManager(4)
	trail := NewTrail(man)
	a := constraint.Ule(man.Var(v1), man.Uint64Val(5))
	b := constraint.Ule(man.Var(v2), man.Uint64Val(9))

	// a -> b
	trail.AddClause(a.Not(), b)
	require.NoError(t, trail.Assert(a))
	assert.Equal(t, polysat.True, trail.BoolValue(b))
}
