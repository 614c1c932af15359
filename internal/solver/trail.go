package solver

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/go-polysat/polysat/pkg/polysat"
	"github.com/go-polysat/polysat/pkg/polysat/constraint"
	"github.com/go-polysat/polysat/pkg/polysat/poly"
)

const (
	satisfiable   = 1
	unsatisfiable = -1
	unknown       = 0
)

// BoolConflict is returned by Trail.Assert when the asserted
// constraint contradicts the boolean layer. It carries a set of
// previously asserted constraints sufficient for the contradiction.
type BoolConflict []constraint.Constraint

func (e BoolConflict) Error() string {
	const msg = "assertion conflicts with boolean trail"
	if len(e) == 0 {
		return msg
	}
	s := make([]string, len(e))
	for i, c := range e {
		s[i] = c.String()
	}
	return fmt.Sprintf("%s:\n%s", msg, strings.Join(s, "\n"))
}

// Trail is the partial assignment of one solver session. It has two
// layers: the arithmetic layer maps variables to concrete ring
// values, and the boolean layer tracks the asserted truth of signed
// constraints through a SAT engine so that boolean-level conflicts
// and implied constraint values surface at assertion time.
type Trail struct {
	man    *poly.Manager
	values map[polysat.Var]*big.Int

	g     *gini.Gini
	lits  *litMapping
	bools map[z.Lit]polysat.Lbool
}

// NewTrail returns an empty trail over the given ring.
func NewTrail(man *poly.Manager) *Trail {
	return &Trail{
		man:    man,
		values: make(map[polysat.Var]*big.Int),
		g:      gini.New(),
		lits:   newLitMapping(),
		bools:  make(map[z.Lit]polysat.Lbool),
	}
}

// Manager returns the ring the trail's values live in.
func (t *Trail) Manager() *poly.Manager { return t.man }

// Assign records a concrete value for v, reduced into the ring.
func (t *Trail) Assign(v polysat.Var, val *big.Int) {
	t.values[v] = new(big.Int).Mod(val, t.man.Bound())
}

// AssignUint64 is a convenience form of Assign.
func (t *Trail) AssignUint64(v polysat.Var, val uint64) {
	t.Assign(v, new(big.Int).SetUint64(val))
}

// Value implements polysat.Model.
func (t *Trail) Value(v polysat.Var) (*big.Int, bool) {
	val, ok := t.values[v]
	if !ok {
		return nil, false
	}
	return new(big.Int).Set(val), true
}

// Eval evaluates a polynomial under the arithmetic layer.
func (t *Trail) Eval(p poly.Poly) (*big.Int, bool) {
	return p.Eval(t)
}

// AddClause teaches a disjunction of signed constraints to the
// boolean layer. Subsequent assertions propagate through it.
func (t *Trail) AddClause(cs ...constraint.Constraint) {
	for _, c := range cs {
		t.g.Add(t.lits.LitOf(c))
	}
	t.g.Add(z.LitNull)
}

// Assert records c as true on the boolean layer. Propagated
// consequences become visible through BoolValue. If the assertion
// contradicts the boolean layer the trail is left unchanged and a
// BoolConflict naming the offending assertions is returned.
func (t *Trail) Assert(c constraint.Constraint) error {
	m := t.lits.LitOf(c)
	t.g.Assume(m)
	res, implied := t.g.Test(nil)
	if res == unsatisfiable {
		whys := t.g.Why(nil)
		conflict := make(BoolConflict, 0, len(whys))
		for _, why := range whys {
			if d, ok := t.lits.ConstraintOf(why); ok {
				conflict = append(conflict, d)
			}
		}
		t.g.Untest()
		return conflict
	}
	t.record(m)
	for _, w := range implied {
		t.record(w)
	}
	if err := t.lits.Error(); err != nil {
		return err
	}
	return nil
}

func (t *Trail) record(m z.Lit) {
	t.bools[m] = polysat.True
	t.bools[m.Not()] = polysat.False
}

// BoolValue returns the truth of c on the boolean layer, Undef if the
// trail has not determined it either way.
func (t *Trail) BoolValue(c constraint.Constraint) polysat.Lbool {
	val, ok := t.bools[t.lits.LitOf(c)]
	if !ok {
		return polysat.Undef
	}
	return val
}
