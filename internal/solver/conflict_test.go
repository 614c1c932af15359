package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-polysat/polysat/pkg/polysat"
	"github.com/go-polysat/polysat/pkg/polysat/constraint"
	"github.com/go-polysat/polysat/pkg/polysat/poly"
)

func TestCoreInsertAndContains(t *testing.T) {
	man := poly.NewManager(4)
	c1 := constraint.Ule(man.Var(v1), man.Uint64Val(5))
	c2 := constraint.Ule(man.Var(v2), man.Var(v1))

	core := NewCore(c1)
	assert.Equal(t, 1, core.Len())
	assert.True(t, core.Contains(c1))
	assert.False(t, core.Contains(c2))

	core.Edit().Insert(c2)
	assert.Equal(t, 2, core.Len())
	assert.True(t, core.Contains(c2))

	// inserting an existing constraint is a no-op
	core.Edit().Insert(c2)
	assert.Equal(t, 2, core.Len())

	got := core.Constraints()
	require.Len(t, got, 2)
	assert.True(t, got[0].Equal(c1))
	assert.True(t, got[1].Equal(c2))
}

func TestCoreDependencyBookkeeping(t *testing.T) {
	man := poly.NewManager(4)
	c1 := constraint.Ule(man.Var(v1), man.Uint64Val(5))
	c2 := constraint.Ule(man.Var(v2), man.Var(v1))

	core := NewCore(c1)
	deps, ok := core.Deps(c1)
	require.True(t, ok)
	assert.Equal(t, []polysat.Var{v1}, deps)

	deps, ok = core.Deps(c2)
	assert.False(t, ok)

	core.Edit().Insert(c2)
	deps, ok = core.Deps(c2)
	require.True(t, ok)
	assert.Equal(t, []polysat.Var{v1, v2}, deps)
}

func TestCoreSetReplacesFocusedLiteral(t *testing.T) {
	man := poly.NewManager(4)
	c1 := constraint.Ule(man.Var(v1), man.Uint64Val(5))
	c2 := constraint.Ule(man.Var(v2), man.Var(v1))
	c3 := constraint.Ule(man.Uint64Val(2), man.Uint64Val(5))

	core := NewCore(c1, c2)
	core.focusOn(0)
	core.Edit(c1).Set(c3)

	got := core.Constraints()
	require.Len(t, got, 2)
	assert.True(t, got[0].Equal(c3))
	assert.True(t, got[1].Equal(c2))

	// pinned bookkeeping survives the rehash, the replaced
	// literal's does not
	_, ok := core.Deps(c1)
	assert.True(t, ok)
}

func TestCoreRehashDropsUnpinned(t *testing.T) {
	man := poly.NewManager(4)
	c1 := constraint.Ule(man.Var(v1), man.Uint64Val(5))
	c2 := constraint.Ule(man.Var(v2), man.Var(v1))
	c3 := constraint.Ule(man.Uint64Val(2), man.Uint64Val(5))

	core := NewCore(c1, c2)
	core.focusOn(0)
	core.Edit().Set(c3)

	// c1 was replaced without being pinned; its bookkeeping is gone
	_, ok := core.Deps(c1)
	assert.False(t, ok)
}

func TestCoreSetWithoutFocusPanics(t *testing.T) {
	man := poly.NewManager(4)
	c1 := constraint.Ule(man.Var(v1), man.Uint64Val(5))

	core := NewCore(c1)
	assert.Panics(t, func() {
		core.Edit().Set(c1)
	})
}
