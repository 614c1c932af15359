package solver

import (
	"github.com/go-polysat/polysat/pkg/polysat"
	"github.com/go-polysat/polysat/pkg/polysat/constraint"
)

// Core is the working set of signed constraints currently believed
// jointly unsatisfiable under the trail. It is created fresh per
// conflict episode; the saturation engine borrows it for the duration
// of one Perform call and never retains it.
//
// The core keeps per-constraint variable-dependency bookkeeping that
// is rebuilt ("rehashed") on every mutation. Entries for constraints
// no longer present are dropped by the rehash unless they were
// pinned. All mutation goes through Edit, whose construction pins the
// dependencies of the constraints the caller intends to keep
// referencing, so pin-before-mutate is enforced by the type rather
// than by calling convention.
type Core struct {
	entries []constraint.Constraint
	focus   int
	pinned  map[string]struct{}
	deps    map[string][]polysat.Var
}

// NewCore returns a core holding the given constraints.
func NewCore(cs ...constraint.Constraint) *Core {
	core := &Core{
		focus:  -1,
		pinned: make(map[string]struct{}),
		deps:   make(map[string][]polysat.Var),
	}
	for _, c := range cs {
		core.insert(c)
	}
	return core
}

// Constraints returns a snapshot of the core's constraints in
// insertion order. Mutating the core does not affect a snapshot
// already taken.
func (c *Core) Constraints() []constraint.Constraint {
	return append([]constraint.Constraint(nil), c.entries...)
}

// Len returns the number of constraints in the core.
func (c *Core) Len() int { return len(c.entries) }

// Contains reports whether d is in the core.
func (c *Core) Contains(d constraint.Constraint) bool {
	return c.indexOf(d) >= 0
}

// Deps returns the recorded variable dependencies of d. The second
// return is false when the bookkeeping for d was lost to a rehash.
func (c *Core) Deps(d constraint.Constraint) ([]polysat.Var, bool) {
	vs, ok := c.deps[d.String()]
	return vs, ok
}

func (c *Core) indexOf(d constraint.Constraint) int {
	for i, e := range c.entries {
		if e.Equal(d) {
			return i
		}
	}
	return -1
}

// focusOn marks entry i as the literal currently under resolution.
func (c *Core) focusOn(i int) {
	c.focus = i
}

func (c *Core) insert(d constraint.Constraint) {
	if c.Contains(d) {
		return
	}
	c.entries = append(c.entries, d)
	c.rehash()
}

// rehash rebuilds the dependency bookkeeping from the current
// entries. Pinned entries survive even when absent from the core.
func (c *Core) rehash() {
	next := make(map[string][]polysat.Var, len(c.entries))
	for key := range c.pinned {
		if vs, ok := c.deps[key]; ok {
			next[key] = vs
		}
	}
	for _, e := range c.entries {
		next[e.String()] = depsOf(e)
	}
	c.deps = next
}

func depsOf(d constraint.Constraint) []polysat.Var {
	return d.Vars()
}

// Edit pins the dependency bookkeeping of the given constraints and
// returns an editor for the core. Pinning must precede any mutation
// in the same resolution step, which the editor's construction
// guarantees.
func (c *Core) Edit(pins ...constraint.Constraint) *Edit {
	for _, p := range pins {
		key := p.String()
		c.pinned[key] = struct{}{}
		if _, ok := c.deps[key]; !ok {
			c.deps[key] = depsOf(p)
		}
	}
	return &Edit{core: c}
}

// Edit is a scoped mutation capability for a Core.
type Edit struct {
	core *Core
}

// Insert adds d to the core. Inserting a constraint already present
// is a no-op.
func (e *Edit) Insert(d constraint.Constraint) {
	e.core.insert(d)
}

// Set replaces the literal currently under resolution with d.
func (e *Edit) Set(d constraint.Constraint) {
	core := e.core
	invariant(core.focus >= 0 && core.focus < len(core.entries), "Set without a focused literal")
	core.entries[core.focus] = d
	core.rehash()
}
