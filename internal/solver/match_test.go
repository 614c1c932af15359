package solver

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-polysat/polysat/pkg/polysat/constraint"
	"github.com/go-polysat/polysat/pkg/polysat/poly"
)

func TestDecompose(t *testing.T) {
	man := poly.NewManager(4)
	x, y := man.Var(v1), man.Var(v2)

	type tc struct {
		Name string
		P    poly.Poly
		Kind shapeKind
	}

	for _, tt := range []tc{
		{Name: "constant", P: man.Uint64Val(7), Kind: shapeConst},
		{Name: "bare variable", P: x, Kind: shapeVar},
		{Name: "scaled variable", P: x.MulConst(big.NewInt(3)), Kind: shapeLinear},
		{Name: "product", P: x.Mul(y), Kind: shapeLinear},
		{Name: "other variable", P: y, Kind: shapeOther},
		{Name: "affine", P: x.Add(man.One()), Kind: shapeOther},
		{Name: "quadratic", P: x.Mul(x), Kind: shapeOther},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			assert.Equal(t, tt.Kind, decompose(v1, tt.P).kind)
		})
	}
}

func TestIsXY(t *testing.T) {
	man := poly.NewManager(4)
	x, y := man.Var(v1), man.Var(v2)

	rest, ok := isXY(v1, x.Mul(y))
	require.True(t, ok)
	assert.True(t, rest.Equal(y))

	rest, ok = isXY(v1, x)
	require.True(t, ok)
	assert.True(t, rest.Equal(man.One()))

	_, ok = isXY(v1, x.Mul(y).Add(man.One()))
	assert.False(t, ok)
}

func TestIsCoeffXY(t *testing.T) {
	man := poly.NewManager(4)
	x, y := man.Var(v1), man.Var(v2)
	cx := x.MulConst(big.NewInt(2))

	// 2x against 6xy: divide by 2, factor out x
	rest, ok := isCoeffXY(cx, x.Mul(y).MulConst(big.NewInt(6)))
	require.True(t, ok)
	assert.True(t, rest.Equal(y.MulConst(big.NewInt(3))))

	// not exactly divisible
	_, ok = isCoeffXY(cx, x.Mul(y).MulConst(big.NewInt(3)))
	assert.False(t, ok)

	// only unary divisors are supported
	_, ok = isCoeffXY(x.Add(man.One()), x.Mul(y))
	assert.False(t, ok)
}

func TestCompositeShapes(t *testing.T) {
	man := poly.NewManager(4)
	x, w := man.Var(v1), man.Var(v2)

	// x*2 <= x*5
	c := constraint.Ule(x.MulConst(big.NewInt(2)), x.MulConst(big.NewInt(5))).AsInequality()
	y, z, ok := isXYlXZ(v1, c)
	require.True(t, ok)
	assert.True(t, y.Equal(man.Uint64Val(2)))
	assert.True(t, z.Equal(man.Uint64Val(5)))

	// v*w <= 3*w
	c = constraint.Ule(x.Mul(w), w.MulConst(big.NewInt(3))).AsInequality()
	gotX, gotZ, ok := isXylXZ(v1, c)
	require.True(t, ok)
	assert.True(t, gotX.Equal(w))
	assert.True(t, gotZ.Equal(man.Uint64Val(3)))
	assert.True(t, verifyXylXZ(v1, c, gotX, gotZ))

	// 3*w <= v*w
	c = constraint.Ule(w.MulConst(big.NewInt(3)), x.Mul(w)).AsInequality()
	gotX, gotY, ok := isYXlZX(v1, c)
	require.True(t, ok)
	assert.True(t, gotX.Equal(w))
	assert.True(t, gotY.Equal(man.Uint64Val(3)))
	assert.True(t, verifyYXlZX(v1, c, gotX, gotY))

	// w <= 3*v
	c = constraint.Ule(w, x.MulConst(big.NewInt(3))).AsInequality()
	a, yy, ok := isYlAx(v1, c)
	require.True(t, ok)
	assert.True(t, a.Equal(man.Uint64Val(3)))
	assert.True(t, yy.Equal(w))
	assert.True(t, verifyYlAx(v1, c, a, yy))

	// side anchors
	assert.True(t, isGV(v1, constraint.Ule(x, w).AsInequality()))
	assert.False(t, isGV(v2, constraint.Ule(x, w).AsInequality()))
	assert.True(t, isLV(v2, constraint.Ule(x, w).AsInequality()))
}

func TestIsNonOverflow(t *testing.T) {
	man := poly.NewManager(4)
	trail := NewTrail(man)
	trail.AssignUint64(v1, 3)
	s := newTestSaturator(t, trail)

	assert.True(t, s.isNonOverflow(man.Var(v1), man.Uint64Val(5)))
	assert.False(t, s.isNonOverflow(man.Var(v1), man.Uint64Val(6)))
	// unassigned terms never count as non-overflowing
	assert.False(t, s.isNonOverflow(man.Var(v1), man.Var(v2)))
}
